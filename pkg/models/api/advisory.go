package api

import "time"

type Recommendation struct {
	CheckID           string    `json:"check_id"`
	Category          string    `json:"category"`
	Title             string    `json:"title"`
	Description       string    `json:"description"`
	Status            string    `json:"status"`
	EstimatedSavings  float64   `json:"estimated_savings"`
	CanImplement      bool      `json:"can_implement"`
	AffectedResources []string  `json:"affected_resources"`
	LastUpdated       time.Time `json:"last_updated"`
}

type RecommendationList struct {
	Recommendations []Recommendation `json:"recommendations"`
	TotalCount      int              `json:"total_count"`
	TotalSavings    float64          `json:"total_savings"`
	LastRefresh     time.Time        `json:"last_refresh"`
}

type Health struct {
	Status        string    `json:"status"`
	Timestamp     time.Time `json:"timestamp"`
	AWSConnection bool      `json:"aws_connection"`
}
