package types

// Chat message roles.
const (
	RoleUser = "user"
	RoleAI   = "ai"
)

// ChatMessage is one turn in the mentor conversation. The transcript is
// append-only; messages are never reordered or deleted.
type ChatMessage struct {
	Role string `json:"role"`
	Text string `json:"text"`
}
