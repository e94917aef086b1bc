// Package types provides type definitions for structured data exchanged with the career mentor backend.
package types

// JobMatch represents one ranked job recommendation returned by the matcher.
// Matches arrive sorted by match score (highest first); ties keep the backend
// ordering and are never re-sorted client-side.
type JobMatch struct {
	JobRole       string   `json:"job_role"`
	Company       string   `json:"company"`
	Domain        string   `json:"domain"`
	MinExperience string   `json:"min_experience"`
	MatchScore    float64  `json:"match_score"`
	MissingSkills []string `json:"missing_skills"`
}

// AnalysisResult is the output of submitting one resume: the skills the
// extractor found (deduplicated, in extraction order) plus the ranked job
// matches. It is immutable once produced; a new upload replaces it wholesale.
type AnalysisResult struct {
	ExtractedSkills []string   `json:"extracted_skills"`
	Matches         []JobMatch `json:"matches"`
	// ResumeTextPreview is returned by the upload endpoint for display only.
	ResumeTextPreview string `json:"resume_text_preview,omitempty"`
}

// TopMatch returns the highest-scored match, or nil if there are none.
func (r *AnalysisResult) TopMatch() *JobMatch {
	if r == nil || len(r.Matches) == 0 {
		return nil
	}
	return &r.Matches[0]
}
