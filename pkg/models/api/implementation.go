package api

import "time"

type ImplementationRequest struct {
	DryRun bool `json:"dry_run"`
}

type ImplementationOutcome struct {
	Success           bool      `json:"success"`
	Message           string    `json:"message"`
	Savings           float64   `json:"savings"`
	AffectedResources []string  `json:"affected_resources"`
	DryRun            bool      `json:"dry_run"`
	ExecutedAt        time.Time `json:"executed_at"`
}

type Automation struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Description      string `json:"description"`
	Service          string `json:"service"`
	RiskLevel        string `json:"risk_level"`
	EstimatedSavings string `json:"estimated_savings"`
}

type AutomationList struct {
	Automations []Automation `json:"automations"`
}

type SpendRecord struct {
	Date     time.Time `json:"date"`
	Service  string    `json:"service"`
	Amount   float64   `json:"amount"`
	Currency string    `json:"currency"`
}
