package models

// AnalysisRequest is the payload forwarded to the external analysis
// backend after a successful extraction.
type AnalysisRequest struct {
	Filename string   `json:"filename"`
	Text     string   `json:"text"`
	Tasks    []string `json:"tasks"`
}

// AnalysisReport is the backend's answer for one AnalysisRequest.
type AnalysisReport struct {
	Enabled  bool              `json:"enabled"`
	Findings map[string]string `json:"findings,omitempty"`
	Error    string            `json:"error,omitempty"`
}
