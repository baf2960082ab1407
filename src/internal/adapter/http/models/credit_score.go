package models

type RecalculateScoreRequest struct {
	Reason string `json:"reason,omitempty"`
}

type SubScoresResponse struct {
	PaymentHistory float64 `json:"paymentHistory"`
	Utilization    float64 `json:"utilization"`
	AccountAge     float64 `json:"accountAge"`
	Diversity      float64 `json:"diversity"`
	Inquiries      float64 `json:"inquiries"`
}

type CreditScoreResponse struct {
	UserID        int64              `json:"userId"`
	Score         int                `json:"score"`
	ReasonSummary string             `json:"reasonSummary,omitempty"`
	CalculatedAt  string             `json:"calculatedAt,omitempty"`
	SubScores     *SubScoresResponse `json:"subScores,omitempty"`
}

type CreditScoreHistoryResponse struct {
	UserID  int64                 `json:"userId"`
	Current int                   `json:"current"`
	History []CreditScoreResponse `json:"history"`
}
