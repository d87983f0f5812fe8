package models

// InsightRequest is the body of a request for an AI narrative over the
// executive dashboard.
type InsightRequest struct {
	Question string `json:"question"`
}
