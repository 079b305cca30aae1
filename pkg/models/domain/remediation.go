package domain

import (
	"strings"
	"time"
)

type ResourceKind string

const (
	KindComputeInstance  ResourceKind = "compute_instance"
	KindBlockVolume      ResourceKind = "block_volume"
	KindObjectBucket     ResourceKind = "object_bucket"
	KindObjectEntry      ResourceKind = "object_entry"
	KindDatabaseInstance ResourceKind = "database_instance"
)

// ResourceCandidate is a live resource snapshot taken at evaluation time.
// Candidates are always fetched fresh from the provider: attachment state and
// age are safety-critical inputs to the eligibility decision.
type ResourceCandidate struct {
	ID        string
	Kind      ResourceKind
	State     string
	CreatedAt time.Time
	Tags      map[string]string // keys lowercased at construction

	// Kind-specific attributes.
	InstanceType string // compute / database instances
	VolumeType   string
	SizeGB       float64
	IOPS         int32
	HasSnapshot  bool

	Bucket       string // object entries
	Key          string
	SizeBytes    int64
	StorageClass string

	VersioningEnabled bool // buckets
	LoggingEnabled    bool
	PublicAccess      bool
}

// Tag returns the value for any of the given tag keys, matched
// case-insensitively.
func (r ResourceCandidate) Tag(keys ...string) (string, bool) {
	for _, k := range keys {
		if v, ok := r.Tags[strings.ToLower(k)]; ok {
			return v, true
		}
	}
	return "", false
}

// ImplementationOutcome is the single, always well-formed result of a
// remediation run. AffectedResources lists only resources that were eligible
// and, outside dry run, actually mutated; a resource that fails mutation is
// excluded from both the list and the savings sum.
type ImplementationOutcome struct {
	Success           bool
	Message           string
	Savings           float64
	AffectedResources []string
	DryRun            bool
	ExecutedAt        time.Time
}

// Automation describes one executable action for catalog listings.
type Automation struct {
	ID               string
	Name             string
	Description      string
	Service          string
	RiskLevel        string
	EstimatedSavings string
}
