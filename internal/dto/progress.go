package dto

// UpdateProgressRequest sets one axis of one unit.
// @Description Request body for updating unit progress
type UpdateProgressRequest struct {
	UnitID   string `json:"unitId"`
	Axis     string `json:"axis"`
	Value    *int   `json:"value"`
	Category string `json:"category,omitempty"`
}

// UnitProgressResponse is the stored row after an update.
type UnitProgressResponse struct {
	UnitID          string `json:"unitId"`
	Category        string `json:"category"`
	ConceptProgress int    `json:"conceptProgress"`
	ProblemProgress int    `json:"problemProgress"`
	VocabProgress   int    `json:"vocabProgress"`
}

// AxisProgressItem reports one unit on one axis. Only the field of the requested
// axis is set.
type AxisProgressItem struct {
	UnitID          string `json:"unitId"`
	UnitTitle       string `json:"unitTitle,omitempty"`
	ConceptProgress *int   `json:"conceptProgress,omitempty"`
	ProblemProgress *int   `json:"problemProgress,omitempty"`
	VocabProgress   *int   `json:"vocabProgress,omitempty"`
	Status          string `json:"status"`
}

type AxisProgressResponse struct {
	Axis  string             `json:"axis"`
	Units []AxisProgressItem `json:"units"`
}
