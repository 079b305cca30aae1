package remediation

import (
	"strings"

	"github.com/ganeshnikumbh/finops/pkg/models/domain"
	"github.com/ganeshnikumbh/finops/pkg/store/pricing"
)

const bytesPerGB = 1 << 30

// ComputeShutdownSavings sums flat monthly rates per instance type.
func ComputeShutdownSavings(candidates []domain.ResourceCandidate, rates *pricing.Store) float64 {
	var total float64
	for _, c := range candidates {
		total += rates.InstanceMonthlyRate(c.InstanceType)
	}
	return total
}

// DBShutdownSavings sums flat monthly rates per database instance class.
func DBShutdownSavings(candidates []domain.ResourceCandidate, rates *pricing.Store) float64 {
	var total float64
	for _, c := range candidates {
		total += rates.DBInstanceMonthlyRate(c.InstanceType)
	}
	return total
}

// RightsizingSavings is a flat per-family estimate for instance downsizing.
func RightsizingSavings(candidates []domain.ResourceCandidate, _ *pricing.Store) float64 {
	var total float64
	for _, c := range candidates {
		switch {
		case strings.HasPrefix(c.InstanceType, "m5."):
			total += 20.0
		case strings.HasPrefix(c.InstanceType, "c5."):
			total += 15.0
		}
	}
	return total
}

// VolumeDeletionSavings sums size times the per-GB rate of each volume type.
func VolumeDeletionSavings(candidates []domain.ResourceCandidate, rates *pricing.Store) float64 {
	var total float64
	for _, c := range candidates {
		total += c.SizeGB * rates.VolumeGBMonthRate(c.VolumeType)
	}
	return total
}

// VolumeMigrationSavings is the gp2/gp3 rate delta over the candidate sizes.
func VolumeMigrationSavings(candidates []domain.ResourceCandidate, rates *pricing.Store) float64 {
	delta := rates.VolumeGBMonthRate("gp2") - rates.VolumeGBMonthRate("gp3")
	var total float64
	for _, c := range candidates {
		total += c.SizeGB * delta
	}
	return total
}

// VolumeTypeOptimizationSavings assumes migration to gp3 from the current
// volume class.
func VolumeTypeOptimizationSavings(candidates []domain.ResourceCandidate, rates *pricing.Store) float64 {
	gp3 := rates.VolumeGBMonthRate("gp3")
	var total float64
	for _, c := range candidates {
		switch c.VolumeType {
		case "io1", "io2":
			total += c.SizeGB * (rates.VolumeGBMonthRate(c.VolumeType) - gp3)
		case "gp2":
			total += c.SizeGB * (rates.VolumeGBMonthRate("gp2") - gp3)
		}
	}
	return total
}

// StorageClassSavings is the STANDARD to infrequent-access rate delta over
// the candidate object sizes.
func StorageClassSavings(candidates []domain.ResourceCandidate, rates *pricing.Store) float64 {
	delta := rates.StorageGBMonthRate("STANDARD") - rates.StorageGBMonthRate("STANDARD_IA")
	var total float64
	for _, c := range candidates {
		total += float64(c.SizeBytes) / bytesPerGB * delta
	}
	return total
}

// NoSavings is the model for security and compliance actions. They preserve
// value rather than reduce cost and must never contribute to savings totals.
func NoSavings([]domain.ResourceCandidate, *pricing.Store) float64 {
	return 0
}
