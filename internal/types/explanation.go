package types

// FeatureWeight is one contributing feature (skill) and its importance weight
// in a match explanation.
type FeatureWeight struct {
	Feature string  `json:"feature"`
	Value   float64 `json:"value"`
}

// ExplanationResult holds the per-feature contribution weights explaining why
// a resume matched a job role. Feature names are unique per job role.
type ExplanationResult struct {
	JobRole     string          `json:"job_role"`
	Explanation []FeatureWeight `json:"explanation"`
}
