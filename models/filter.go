package models

// FilterRequest carries post-hoc filter criteria. Dates are "2006-01-02";
// an empty string leaves that bound unconstrained.
type FilterRequest struct {
	MinScore        int    `json:"minScore"`
	DateFrom        string `json:"dateFrom"`
	DateTo          string `json:"dateTo"`
	RequireComments bool   `json:"requireComments"`
}
