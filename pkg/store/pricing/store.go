package pricing

import (
	"fmt"

	"github.com/spf13/viper"
)

const (
	// Fallback rates for subtypes missing from the table. Unknown inputs
	// degrade to an estimate, never to an error.
	DefaultInstanceMonthlyRate = 50.0
	DefaultVolumeGBMonthRate   = 0.10 // gp2
	DefaultStorageGBMonthRate  = 0.023
)

// Store is a static monthly-rate table keyed by resource subtype. Rates are
// configuration, not live pricing: they may be overridden from a file but are
// immutable during a run.
type Store struct {
	instanceMonthly map[string]float64
	dbMonthly       map[string]float64
	volumeGBMonth   map[string]float64
	storageGBMonth  map[string]float64
}

func NewStore() *Store {
	return &Store{
		instanceMonthly: map[string]float64{
			"t2.micro":  8.47,
			"t2.small":  16.94,
			"t2.medium": 33.88,
			"t3.micro":  7.47,
			"t3.small":  14.94,
			"t3.medium": 29.88,
		},
		dbMonthly: map[string]float64{
			"db.t3.micro":  12.41,
			"db.t3.small":  24.82,
			"db.t3.medium": 49.64,
			"db.m5.large":  124.83,
		},
		volumeGBMonth: map[string]float64{
			"gp2": 0.10,
			"gp3": 0.08,
			"io1": 0.125,
			"io2": 0.125,
			"st1": 0.045,
			"sc1": 0.015,
		},
		storageGBMonth: map[string]float64{
			"STANDARD":    0.023,
			"STANDARD_IA": 0.0125,
			"GLACIER":     0.004,
		},
	}
}

type overrides struct {
	Instances map[string]float64 `mapstructure:"instances"`
	Databases map[string]float64 `mapstructure:"databases"`
	Volumes   map[string]float64 `mapstructure:"volumes"`
	Storage   map[string]float64 `mapstructure:"storage"`
}

// NewStoreFromFile returns the default table with per-subtype rates replaced
// by entries from the given file.
func NewStoreFromFile(path string) (*Store, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read pricing file: %w", err)
	}

	var o overrides
	if err := v.Unmarshal(&o); err != nil {
		return nil, fmt.Errorf("failed to parse pricing file: %w", err)
	}

	s := NewStore()
	for k, rate := range o.Instances {
		s.instanceMonthly[k] = rate
	}
	for k, rate := range o.Databases {
		s.dbMonthly[k] = rate
	}
	for k, rate := range o.Volumes {
		s.volumeGBMonth[k] = rate
	}
	for k, rate := range o.Storage {
		s.storageGBMonth[k] = rate
	}
	return s, nil
}

// InstanceMonthlyRate returns the flat monthly rate for an EC2 instance type.
func (s *Store) InstanceMonthlyRate(instanceType string) float64 {
	if rate, ok := s.instanceMonthly[instanceType]; ok {
		return rate
	}
	return DefaultInstanceMonthlyRate
}

// DBInstanceMonthlyRate returns the flat monthly rate for an RDS instance
// class.
func (s *Store) DBInstanceMonthlyRate(instanceClass string) float64 {
	if rate, ok := s.dbMonthly[instanceClass]; ok {
		return rate
	}
	return DefaultInstanceMonthlyRate
}

// VolumeGBMonthRate returns the per GB-month rate for an EBS volume type.
// Unknown types fall back to the gp2 rate.
func (s *Store) VolumeGBMonthRate(volumeType string) float64 {
	if rate, ok := s.volumeGBMonth[volumeType]; ok {
		return rate
	}
	return DefaultVolumeGBMonthRate
}

// StorageGBMonthRate returns the per GB-month rate for an S3 storage class.
func (s *Store) StorageGBMonthRate(storageClass string) float64 {
	if rate, ok := s.storageGBMonth[storageClass]; ok {
		return rate
	}
	return DefaultStorageGBMonthRate
}
