package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/ganeshnikumbh/finops/pkg/models/domain"
)

type volumeLister struct {
	client *ec2.Client
}

func NewVolumeLister(cfg awssdk.Config) *volumeLister {
	return &volumeLister{client: ec2.NewFromConfig(cfg)}
}

// List returns every EBS volume in the region, whatever its state; the
// eligibility predicates decide what is actionable.
func (l *volumeLister) List(ctx context.Context) ([]domain.ResourceCandidate, error) {
	var (
		candidates []domain.ResourceCandidate
		nextToken  *string
	)

	for {
		resp, err := l.client.DescribeVolumes(ctx, &ec2.DescribeVolumesInput{
			NextToken: nextToken,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to describe EBS volumes: %w", err)
		}

		for _, volume := range resp.Volumes {
			candidate := domain.ResourceCandidate{
				ID:          aws.ToString(volume.VolumeId),
				Kind:        domain.KindBlockVolume,
				State:       string(volume.State),
				CreatedAt:   aws.ToTime(volume.CreateTime),
				VolumeType:  string(volume.VolumeType),
				SizeGB:      float64(aws.ToInt32(volume.Size)),
				IOPS:        aws.ToInt32(volume.Iops),
				HasSnapshot: aws.ToString(volume.SnapshotId) != "",
				Tags:        ec2TagMap(volume.Tags),
			}
			candidates = append(candidates, candidate)
		}

		if resp.NextToken == nil {
			break
		}
		nextToken = resp.NextToken
	}
	return candidates, nil
}

type volumeDeleter struct {
	client *ec2.Client
}

func NewVolumeDeleter(cfg awssdk.Config) *volumeDeleter {
	return &volumeDeleter{client: ec2.NewFromConfig(cfg)}
}

func (m *volumeDeleter) Apply(ctx context.Context, candidate domain.ResourceCandidate) error {
	_, err := m.client.DeleteVolume(ctx, &ec2.DeleteVolumeInput{
		VolumeId: aws.String(candidate.ID),
	})
	if err != nil {
		return fmt.Errorf("failed to delete volume %s: %w", candidate.ID, err)
	}
	return nil
}

type volumeMigrator struct {
	client *ec2.Client
}

func NewVolumeMigrator(cfg awssdk.Config) *volumeMigrator {
	return &volumeMigrator{client: ec2.NewFromConfig(cfg)}
}

func (m *volumeMigrator) Apply(ctx context.Context, candidate domain.ResourceCandidate) error {
	_, err := m.client.ModifyVolume(ctx, &ec2.ModifyVolumeInput{
		VolumeId:   aws.String(candidate.ID),
		VolumeType: types.VolumeTypeGp3,
	})
	if err != nil {
		return fmt.Errorf("failed to migrate volume %s to gp3: %w", candidate.ID, err)
	}
	return nil
}
