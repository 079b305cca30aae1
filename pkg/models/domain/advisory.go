package domain

import "time"

type CheckStatus string

const (
	StatusOk           CheckStatus = "ok"
	StatusWarning      CheckStatus = "warning"
	StatusError        CheckStatus = "error"
	StatusNotAvailable CheckStatus = "not_available"
)

type CheckCategory string

const (
	CategoryCostOptimization CheckCategory = "cost_optimization"
	CategorySecurity         CheckCategory = "security"
	CategoryFaultTolerance   CheckCategory = "fault_tolerance"
	CategoryPerformance      CheckCategory = "performance"
)

// AdvisoryCheck is a Trusted Advisor check descriptor as returned by the
// catalog listing call. The result (status + flagged resources) is fetched
// separately per check.
type AdvisoryCheck struct {
	ID          string
	Name        string
	Description string
	Category    CheckCategory
}

// FlaggedResource is one resource implicated by a check result. Metadata is
// positional in the Trusted Advisor API; the resource identifier, when
// present, is the first metadata entry.
type FlaggedResource struct {
	ResourceID string
	Metadata   []string
}

// CheckFinding is the result of a single advisory check for the current
// polling cycle.
type CheckFinding struct {
	CheckID          string
	Status           CheckStatus
	FlaggedResources []FlaggedResource
}

// Recommendation is a check finding translated for consumers: it carries the
// category, whether the registry can automate it, and a coarse pre-remediation
// savings estimate derived from the flagged resource count.
type Recommendation struct {
	CheckID           string
	Category          CheckCategory
	Title             string
	Description       string
	Status            CheckStatus
	EstimatedSavings  float64
	CanImplement      bool
	AffectedResources []string
	LastUpdated       time.Time
}
