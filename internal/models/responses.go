package models

// InsightResponse is the success payload of the insights endpoint.
type InsightResponse struct {
	Success bool   `json:"success"`
	Data    string `json:"data"`
}

// ErrorResponse is the payload for every failed request.
// Details is only set for provider failures, Fields only for validation failures.
type ErrorResponse struct {
	Error   string   `json:"error"`
	Details string   `json:"details,omitempty"`
	Fields  []string `json:"fields,omitempty"`
}
