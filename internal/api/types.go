package api

import (
	"github.com/ashumnni/juris-ai/domain/entities"
)

// AnalyzeRequest represents the request payload for contract analysis
type AnalyzeRequest struct {
	Text string `json:"text" validate:"required"`
}

// RewriteRequest represents the request payload for clause redrafting
type RewriteRequest struct {
	ClauseTitle string `json:"clause_title"`
	ClauseText  string `json:"clause_text" validate:"required"`
	Instruction string `json:"instruction" validate:"required"`
}

// ResearchRequest represents the request payload for legal research
type ResearchRequest struct {
	Query string `json:"query" validate:"required"`
}

// NewsResponse wraps the curated news list
type NewsResponse struct {
	Items []entities.NewsItem `json:"items"`
}

// DashboardResponse aggregates everything the dashboard renders at once
type DashboardResponse struct {
	Deadlines    []entities.Deadline    `json:"deadlines"`
	WatchedCases []entities.WatchedCase `json:"watchedCases"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
