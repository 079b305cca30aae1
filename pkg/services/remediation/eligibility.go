package remediation

import (
	"strings"
	"time"

	"github.com/ganeshnikumbh/finops/pkg/models/domain"
)

const (
	burstableIdleAge = 24 * time.Hour
	unusedVolumeAge  = 30 * 24 * time.Hour
)

// IdleInstance marks a running instance as stoppable when it is explicitly
// tagged as a dev/test workload, or when it is a burstable instance older
// than a day. Production-tagged instances are never eligible.
func IdleInstance(r domain.ResourceCandidate) (bool, string) {
	if env, ok := r.Tag("environment", "env"); ok {
		switch strings.ToLower(env) {
		case "prod", "production":
			return false, "tagged as production workload"
		case "dev", "development", "test":
			return true, ""
		}
	}
	if purpose, ok := r.Tag("purpose", "role"); ok {
		switch strings.ToLower(purpose) {
		case "dev", "test", "staging":
			return true, ""
		}
	}
	if isBurstable(r.InstanceType) && time.Since(r.CreatedAt) > burstableIdleAge {
		return true, ""
	}
	return false, "no idle signal"
}

// OversizedInstance selects general-purpose and compute-optimized families
// that have a smaller size to downshift to.
func OversizedInstance(r domain.ResourceCandidate) (bool, string) {
	if strings.HasPrefix(r.InstanceType, "m5.") || strings.HasPrefix(r.InstanceType, "c5.") {
		if _, ok := DownsizeTarget(r.InstanceType); ok {
			return true, ""
		}
		return false, "already at smallest size"
	}
	return false, "instance family not considered for rightsizing"
}

// DownsizeTarget returns the next smaller size within the same family.
func DownsizeTarget(instanceType string) (string, bool) {
	family, size, ok := strings.Cut(instanceType, ".")
	if !ok {
		return "", false
	}
	smaller := map[string]string{
		"4xlarge": "2xlarge",
		"2xlarge": "xlarge",
		"xlarge":  "large",
	}
	target, ok := smaller[size]
	if !ok {
		return "", false
	}
	return family + "." + target, true
}

// UnusedVolume requires every safety condition to hold: the volume must be
// detached, older than 30 days, snapshot-free, and not protected by tag. An
// attached volume is never eligible, whatever its age.
func UnusedVolume(r domain.ResourceCandidate) (bool, string) {
	if r.State != "available" {
		return false, "volume is not detached"
	}
	if time.Since(r.CreatedAt) <= unusedVolumeAge {
		return false, "volume is younger than 30 days"
	}
	if r.HasSnapshot {
		return false, "volume has a snapshot"
	}
	if v, ok := r.Tag("protected", "keep", "important"); ok && truthy(v) {
		return false, "volume is protected by tag"
	}
	return true, ""
}

// Gp2Volume selects any gp2 volume for migration, regardless of age or
// attachment.
func Gp2Volume(r domain.ResourceCandidate) (bool, string) {
	if r.VolumeType != "gp2" {
		return false, "volume is not gp2"
	}
	return true, ""
}

// OverProvisionedVolume selects io volumes whose provisioned IOPS do not
// justify the class, and large gp2 volumes.
func OverProvisionedVolume(r domain.ResourceCandidate) (bool, string) {
	switch r.VolumeType {
	case "io1", "io2":
		if r.IOPS < 1000 {
			return true, ""
		}
		return false, "provisioned IOPS justify the volume class"
	case "gp2":
		if r.SizeGB > 100 {
			return true, ""
		}
		return false, "gp2 volume is not large enough to benefit"
	}
	return false, "volume type is already cost-efficient"
}

// BucketWithoutVersioning selects buckets whose versioning is not enabled.
func BucketWithoutVersioning(r domain.ResourceCandidate) (bool, string) {
	if r.VersioningEnabled {
		return false, "versioning already enabled"
	}
	return true, ""
}

// BucketWithoutLogging selects buckets without an access-logging target.
func BucketWithoutLogging(r domain.ResourceCandidate) (bool, string) {
	if r.LoggingEnabled {
		return false, "logging already enabled"
	}
	return true, ""
}

// PublicBucket selects buckets whose ACL grants AllUsers or that carry any
// bucket policy. Treating any policy as public is a deliberate
// over-approximation carried over from the product definition.
func PublicBucket(r domain.ResourceCandidate) (bool, string) {
	if !r.PublicAccess {
		return false, "bucket is not publicly accessible"
	}
	return true, ""
}

// StandardObject selects objects still in the STANDARD storage class.
func StandardObject(r domain.ResourceCandidate) (bool, string) {
	if r.StorageClass != "STANDARD" {
		return false, "object is not in STANDARD storage"
	}
	return true, ""
}

// IdleDBInstance selects available database instances tagged as dev/test
// workloads.
func IdleDBInstance(r domain.ResourceCandidate) (bool, string) {
	if r.State != "available" {
		return false, "database instance is not running"
	}
	if env, ok := r.Tag("environment", "env"); ok {
		switch strings.ToLower(env) {
		case "dev", "development", "test":
			return true, ""
		}
	}
	if purpose, ok := r.Tag("purpose", "role"); ok {
		switch strings.ToLower(purpose) {
		case "dev", "test", "staging":
			return true, ""
		}
	}
	return false, "no idle signal"
}

func isBurstable(instanceType string) bool {
	return strings.HasPrefix(instanceType, "t2.") || strings.HasPrefix(instanceType, "t3.")
}

func truthy(v string) bool {
	switch strings.ToLower(v) {
	case "true", "yes", "1":
		return true
	}
	return false
}
