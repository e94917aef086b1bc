package types

// DriftCheckResult is the statistical verdict returned by the drift endpoint.
// The verdict is computed server-side; the client displays it as-is.
type DriftCheckResult struct {
	IsDrift   bool    `json:"is_drift"`
	PValueAvg float64 `json:"p_value_avg"`
	Message   string  `json:"message"`

	// Extended diagnostics the backend includes alongside the verdict.
	DriftedFeatureCount int     `json:"drifted_feature_count,omitempty"`
	Threshold           float64 `json:"threshold,omitempty"`
	Timestamp           string  `json:"timestamp,omitempty"`
}
