package aws

import (
	"fmt"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/ganeshnikumbh/finops/pkg/models/domain"
	"github.com/ganeshnikumbh/finops/pkg/services/remediation"
)

// NewActionRegistry builds the full static registry of AWS remediation
// actions and their advisory check mappings.
func NewActionRegistry(cfg awssdk.Config) (*remediation.Registry, error) {
	registry := remediation.NewRegistry()

	type binding struct {
		action   *remediation.Action
		checkIDs []string
	}

	bindings := []binding{
		{
			action: &remediation.Action{
				ID:           "stop_idle_instances",
				Name:         "Stop Idle EC2 Instances",
				Description:  "Stop idle EC2 instances to reduce costs",
				Service:      "EC2",
				RiskLevel:    "Low",
				Kind:         domain.KindComputeInstance,
				Verb:         "stop",
				VerbPast:     "stopped",
				Noun:         "idle instances",
				SavingsLabel: "Variable",
				Eligible:     remediation.IdleInstance,
				Savings:      remediation.ComputeShutdownSavings,
				Lister:       NewInstanceLister(cfg),
				Mutator:      NewInstanceStopper(cfg),
			},
			checkIDs: []string{"idleEC2InstanceCheck", "idleLoadBalancerCheck"},
		},
		{
			action: &remediation.Action{
				ID:           "optimize_instance_types",
				Name:         "Optimize EC2 Instance Types",
				Description:  "Downsize over-provisioned EC2 instances",
				Service:      "EC2",
				RiskLevel:    "Medium",
				Kind:         domain.KindComputeInstance,
				Verb:         "resize",
				VerbPast:     "resized",
				Noun:         "oversized instances",
				SavingsLabel: "Variable",
				Eligible:     remediation.OversizedInstance,
				Savings:      remediation.RightsizingSavings,
				Lister:       NewInstanceLister(cfg),
				Mutator:      NewInstanceResizer(cfg),
			},
			checkIDs: []string{"ec2InstanceCheck"},
		},
		{
			action: &remediation.Action{
				ID:           "delete_unused_volumes",
				Name:         "Delete Unused EBS Volumes",
				Description:  "Delete unattached EBS volumes to reduce costs",
				Service:      "EBS",
				RiskLevel:    "Medium",
				Kind:         domain.KindBlockVolume,
				Verb:         "delete",
				VerbPast:     "deleted",
				Noun:         "unused volumes",
				SavingsLabel: "Variable",
				Eligible:     remediation.UnusedVolume,
				Savings:      remediation.VolumeDeletionSavings,
				Lister:       NewVolumeLister(cfg),
				Mutator:      NewVolumeDeleter(cfg),
			},
			checkIDs: []string{"unusedEBSVolumeCheck", "unattachedEBSVolumeCheck"},
		},
		{
			action: &remediation.Action{
				ID:           "migrate_gp2_to_gp3",
				Name:         "Migrate GP2 to GP3",
				Description:  "Migrate GP2 volumes to GP3 for cost savings",
				Service:      "EBS",
				RiskLevel:    "Low",
				Kind:         domain.KindBlockVolume,
				Verb:         "migrate",
				VerbPast:     "migrated",
				Noun:         "gp2 volumes",
				SavingsLabel: "20% cost reduction",
				Eligible:     remediation.Gp2Volume,
				Savings:      remediation.VolumeMigrationSavings,
				Lister:       NewVolumeLister(cfg),
				Mutator:      NewVolumeMigrator(cfg),
			},
			checkIDs: []string{"eBSgp2Check"},
		},
		{
			action: &remediation.Action{
				ID:           "optimize_volume_types",
				Name:         "Optimize EBS Volume Types",
				Description:  "Move over-provisioned io1/io2 and large gp2 volumes to gp3",
				Service:      "EBS",
				RiskLevel:    "Low",
				Kind:         domain.KindBlockVolume,
				Verb:         "migrate",
				VerbPast:     "migrated",
				Noun:         "over-provisioned volumes",
				SavingsLabel: "Variable",
				Eligible:     remediation.OverProvisionedVolume,
				Savings:      remediation.VolumeTypeOptimizationSavings,
				Lister:       NewVolumeLister(cfg),
				Mutator:      NewVolumeMigrator(cfg),
			},
			checkIDs: []string{"ebsVolumeTypeCheck"},
		},
		{
			action: &remediation.Action{
				ID:           "enable_versioning",
				Name:         "Enable S3 Versioning",
				Description:  "Enable versioning on S3 buckets for data protection",
				Service:      "S3",
				RiskLevel:    "Low",
				Kind:         domain.KindObjectBucket,
				Verb:         "enable versioning on",
				VerbPast:     "enabled versioning on",
				Noun:         "unversioned buckets",
				SavingsLabel: "0 (security improvement)",
				Eligible:     remediation.BucketWithoutVersioning,
				Savings:      remediation.NoSavings,
				Lister:       NewBucketVersioningLister(cfg),
				Mutator:      NewVersioningEnabler(cfg),
			},
			checkIDs: []string{"s3BucketVersioningCheck"},
		},
		{
			action: &remediation.Action{
				ID:           "enable_logging",
				Name:         "Enable S3 Access Logging",
				Description:  "Enable access logging on S3 buckets for security and compliance",
				Service:      "S3",
				RiskLevel:    "Low",
				Kind:         domain.KindObjectBucket,
				Verb:         "enable logging on",
				VerbPast:     "enabled logging on",
				Noun:         "unlogged buckets",
				SavingsLabel: "0 (security improvement)",
				Eligible:     remediation.BucketWithoutLogging,
				Savings:      remediation.NoSavings,
				Lister:       NewBucketLoggingLister(cfg),
				Mutator:      NewLoggingEnabler(cfg),
			},
			checkIDs: []string{"s3BucketLoggingCheck"},
		},
		{
			action: &remediation.Action{
				ID:           "remove_public_access",
				Name:         "Remove S3 Public Access",
				Description:  "Set publicly accessible S3 buckets to private",
				Service:      "S3",
				RiskLevel:    "Medium",
				Kind:         domain.KindObjectBucket,
				Verb:         "secure",
				VerbPast:     "secured",
				Noun:         "public buckets",
				SavingsLabel: "0 (security improvement)",
				Eligible:     remediation.PublicBucket,
				Savings:      remediation.NoSavings,
				Lister:       NewBucketAccessLister(cfg),
				Mutator:      NewACLPrivater(cfg),
			},
			checkIDs: []string{"s3BucketPublicReadCheck"},
		},
		{
			action: &remediation.Action{
				ID:           "optimize_storage_classes",
				Name:         "Optimize S3 Storage Classes",
				Description:  "Transition STANDARD objects to infrequent access",
				Service:      "S3",
				RiskLevel:    "Low",
				Kind:         domain.KindObjectEntry,
				Verb:         "transition",
				VerbPast:     "transitioned",
				Noun:         "standard-class objects",
				SavingsLabel: "Variable",
				Eligible:     remediation.StandardObject,
				Savings:      remediation.StorageClassSavings,
				Lister:       NewObjectLister(cfg),
				Mutator:      NewObjectTransitioner(cfg),
			},
			checkIDs: []string{"s3StorageOptimizationCheck"},
		},
		{
			action: &remediation.Action{
				ID:           "stop_idle_db_instances",
				Name:         "Stop Idle RDS Instances",
				Description:  "Stop idle dev/test RDS instances to reduce costs",
				Service:      "RDS",
				RiskLevel:    "Medium",
				Kind:         domain.KindDatabaseInstance,
				Verb:         "stop",
				VerbPast:     "stopped",
				Noun:         "idle database instances",
				SavingsLabel: "Variable",
				Eligible:     remediation.IdleDBInstance,
				Savings:      remediation.DBShutdownSavings,
				Lister:       NewDBInstanceLister(cfg),
				Mutator:      NewDBInstanceStopper(cfg),
			},
			checkIDs: []string{"rdsIdleDBInstanceCheck"},
		},
	}

	for _, b := range bindings {
		if err := registry.Register(b.action, b.checkIDs...); err != nil {
			return nil, fmt.Errorf("failed to register action %s: %w", b.action.ID, err)
		}
	}
	return registry, nil
}
