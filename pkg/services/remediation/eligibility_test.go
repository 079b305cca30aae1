package remediation

import (
	"testing"
	"time"

	"github.com/ganeshnikumbh/finops/pkg/models/domain"
	"github.com/stretchr/testify/assert"
)

func TestIdleInstance(t *testing.T) {
	tests := []struct {
		name     string
		resource domain.ResourceCandidate
		eligible bool
	}{
		{
			name: "production tag always wins",
			resource: domain.ResourceCandidate{
				ID:           "i-prod",
				InstanceType: "t2.micro",
				CreatedAt:    time.Now().Add(-72 * time.Hour),
				Tags:         map[string]string{"environment": "production"},
			},
			eligible: false,
		},
		{
			name: "dev environment tag",
			resource: domain.ResourceCandidate{
				ID:           "i-dev",
				InstanceType: "m5.large",
				Tags:         map[string]string{"environment": "dev"},
			},
			eligible: true,
		},
		{
			name: "staging role tag",
			resource: domain.ResourceCandidate{
				ID:           "i-staging",
				InstanceType: "m5.large",
				Tags:         map[string]string{"role": "staging"},
			},
			eligible: true,
		},
		{
			name: "burstable older than a day",
			resource: domain.ResourceCandidate{
				ID:           "i-burst",
				InstanceType: "t3.small",
				CreatedAt:    time.Now().Add(-48 * time.Hour),
			},
			eligible: true,
		},
		{
			name: "burstable launched an hour ago",
			resource: domain.ResourceCandidate{
				ID:           "i-fresh",
				InstanceType: "t3.small",
				CreatedAt:    time.Now().Add(-time.Hour),
			},
			eligible: false,
		},
		{
			name: "untagged non-burstable",
			resource: domain.ResourceCandidate{
				ID:           "i-plain",
				InstanceType: "m5.xlarge",
				CreatedAt:    time.Now().Add(-720 * time.Hour),
			},
			eligible: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eligible, reason := IdleInstance(tt.resource)
			assert.Equal(t, tt.eligible, eligible)
			if !eligible {
				assert.NotEmpty(t, reason)
			}
		})
	}
}

func TestUnusedVolume(t *testing.T) {
	old := time.Now().Add(-100 * 24 * time.Hour)

	tests := []struct {
		name     string
		resource domain.ResourceCandidate
		eligible bool
		reason   string
	}{
		{
			name: "attached volume is never eligible regardless of age",
			resource: domain.ResourceCandidate{
				ID:        "vol-attached",
				State:     "in-use",
				CreatedAt: time.Now().Add(-400 * 24 * time.Hour),
			},
			eligible: false,
			reason:   "volume is not detached",
		},
		{
			name: "detached but young",
			resource: domain.ResourceCandidate{
				ID:        "vol-young",
				State:     "available",
				CreatedAt: time.Now().Add(-10 * 24 * time.Hour),
			},
			eligible: false,
			reason:   "volume is younger than 30 days",
		},
		{
			name: "snapshot blocks deletion even when old and detached",
			resource: domain.ResourceCandidate{
				ID:          "vol-snap",
				State:       "available",
				CreatedAt:   old,
				HasSnapshot: true,
			},
			eligible: false,
			reason:   "volume has a snapshot",
		},
		{
			name: "protected tag blocks deletion",
			resource: domain.ResourceCandidate{
				ID:        "vol-protected",
				State:     "available",
				CreatedAt: old,
				Tags:      map[string]string{"protected": "true"},
			},
			eligible: false,
			reason:   "volume is protected by tag",
		},
		{
			name: "protected tag with falsy value does not block",
			resource: domain.ResourceCandidate{
				ID:        "vol-unprotected",
				State:     "available",
				CreatedAt: old,
				Tags:      map[string]string{"protected": "false"},
			},
			eligible: true,
		},
		{
			name: "old detached snapshot-free untagged volume",
			resource: domain.ResourceCandidate{
				ID:        "vol-unused",
				State:     "available",
				CreatedAt: old,
			},
			eligible: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eligible, reason := UnusedVolume(tt.resource)
			assert.Equal(t, tt.eligible, eligible)
			assert.Equal(t, tt.reason, reason)
		})
	}
}

func TestDownsizeTarget(t *testing.T) {
	tests := []struct {
		instanceType string
		target       string
		ok           bool
	}{
		{"m5.4xlarge", "m5.2xlarge", true},
		{"m5.2xlarge", "m5.xlarge", true},
		{"c5.xlarge", "c5.large", true},
		{"m5.large", "", false},
		{"weird", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.instanceType, func(t *testing.T) {
			target, ok := DownsizeTarget(tt.instanceType)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.target, target)
		})
	}
}

func TestOversizedInstance(t *testing.T) {
	eligible, _ := OversizedInstance(domain.ResourceCandidate{InstanceType: "m5.2xlarge"})
	assert.True(t, eligible)

	eligible, reason := OversizedInstance(domain.ResourceCandidate{InstanceType: "m5.large"})
	assert.False(t, eligible)
	assert.Equal(t, "already at smallest size", reason)

	eligible, _ = OversizedInstance(domain.ResourceCandidate{InstanceType: "t3.micro"})
	assert.False(t, eligible)
}

func TestOverProvisionedVolume(t *testing.T) {
	tests := []struct {
		name     string
		resource domain.ResourceCandidate
		eligible bool
	}{
		{"io1 with low IOPS", domain.ResourceCandidate{VolumeType: "io1", IOPS: 500}, true},
		{"io2 with high IOPS", domain.ResourceCandidate{VolumeType: "io2", IOPS: 4000}, false},
		{"large gp2", domain.ResourceCandidate{VolumeType: "gp2", SizeGB: 500}, true},
		{"small gp2", domain.ResourceCandidate{VolumeType: "gp2", SizeGB: 20}, false},
		{"gp3 already efficient", domain.ResourceCandidate{VolumeType: "gp3", SizeGB: 500}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eligible, _ := OverProvisionedVolume(tt.resource)
			assert.Equal(t, tt.eligible, eligible)
		})
	}
}

func TestIdleDBInstance(t *testing.T) {
	eligible, _ := IdleDBInstance(domain.ResourceCandidate{
		State: "available",
		Tags:  map[string]string{"environment": "test"},
	})
	assert.True(t, eligible)

	eligible, reason := IdleDBInstance(domain.ResourceCandidate{
		State: "stopped",
		Tags:  map[string]string{"environment": "test"},
	})
	assert.False(t, eligible)
	assert.Equal(t, "database instance is not running", reason)

	eligible, _ = IdleDBInstance(domain.ResourceCandidate{State: "available"})
	assert.False(t, eligible)
}

func TestBucketPredicates(t *testing.T) {
	eligible, _ := BucketWithoutVersioning(domain.ResourceCandidate{VersioningEnabled: false})
	assert.True(t, eligible)
	eligible, _ = BucketWithoutVersioning(domain.ResourceCandidate{VersioningEnabled: true})
	assert.False(t, eligible)

	eligible, _ = BucketWithoutLogging(domain.ResourceCandidate{LoggingEnabled: false})
	assert.True(t, eligible)

	eligible, _ = PublicBucket(domain.ResourceCandidate{PublicAccess: true})
	assert.True(t, eligible)
	eligible, _ = PublicBucket(domain.ResourceCandidate{PublicAccess: false})
	assert.False(t, eligible)

	eligible, _ = StandardObject(domain.ResourceCandidate{StorageClass: "STANDARD"})
	assert.True(t, eligible)
	eligible, _ = StandardObject(domain.ResourceCandidate{StorageClass: "GLACIER"})
	assert.False(t, eligible)
}
