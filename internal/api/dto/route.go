package dto

import "time"

type OptimalRouteQuery struct {
	Start string `validate:"required"`
	End   string `validate:"required"`
}

type HistoryQuery struct {
	Limit int `validate:"min=1,max=100"`
}

type RouteResponse struct {
	Start    string  `json:"start"`
	End      string  `json:"end"`
	Duration float64 `json:"duration"`
	Distance float64 `json:"distance"`
}

type RunResponse struct {
	RunID          int64          `json:"run_id"`
	Start          string         `json:"start"`
	End            string         `json:"end"`
	Outcome        string         `json:"outcome"`
	CandidateCount int            `json:"candidate_count"`
	Selected       *RouteResponse `json:"selected"`
	CreatedAt      time.Time      `json:"created_at"`
}

type ListRunsResponse struct {
	Runs []RunResponse `json:"runs"`
}
