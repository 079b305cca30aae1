package aws

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/ganeshnikumbh/finops/pkg/models/domain"
	"github.com/ganeshnikumbh/finops/pkg/services/remediation"
)

type instanceLister struct {
	client *ec2.Client
}

func NewInstanceLister(cfg awssdk.Config) *instanceLister {
	return &instanceLister{client: ec2.NewFromConfig(cfg)}
}

// List returns all running instances as candidates.
func (l *instanceLister) List(ctx context.Context) ([]domain.ResourceCandidate, error) {
	var (
		candidates []domain.ResourceCandidate
		nextToken  *string
	)

	for {
		resp, err := l.client.DescribeInstances(ctx, &ec2.DescribeInstancesInput{
			Filters: []types.Filter{
				{
					Name:   aws.String("instance-state-name"),
					Values: []string{"running"},
				},
			},
			NextToken: nextToken,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to describe EC2 instances: %w", err)
		}

		for _, reservation := range resp.Reservations {
			for _, instance := range reservation.Instances {
				candidate := domain.ResourceCandidate{
					ID:           aws.ToString(instance.InstanceId),
					Kind:         domain.KindComputeInstance,
					State:        string(instance.State.Name),
					CreatedAt:    aws.ToTime(instance.LaunchTime),
					InstanceType: string(instance.InstanceType),
					Tags:         ec2TagMap(instance.Tags),
				}
				candidates = append(candidates, candidate)
			}
		}

		if resp.NextToken == nil {
			break
		}
		nextToken = resp.NextToken
	}
	return candidates, nil
}

type instanceStopper struct {
	client *ec2.Client
}

func NewInstanceStopper(cfg awssdk.Config) *instanceStopper {
	return &instanceStopper{client: ec2.NewFromConfig(cfg)}
}

func (m *instanceStopper) Apply(ctx context.Context, candidate domain.ResourceCandidate) error {
	_, err := m.client.StopInstances(ctx, &ec2.StopInstancesInput{
		InstanceIds: []string{candidate.ID},
	})
	if err != nil {
		return fmt.Errorf("failed to stop instance %s: %w", candidate.ID, err)
	}
	return nil
}

type instanceResizer struct {
	client *ec2.Client
}

func NewInstanceResizer(cfg awssdk.Config) *instanceResizer {
	return &instanceResizer{client: ec2.NewFromConfig(cfg)}
}

// Apply downsizes the instance type one step within its family. The call
// fails for running instances; the executor's isolation turns that into a
// skipped candidate.
func (m *instanceResizer) Apply(ctx context.Context, candidate domain.ResourceCandidate) error {
	target, ok := remediation.DownsizeTarget(candidate.InstanceType)
	if !ok {
		return fmt.Errorf("no downsize target for instance type %s", candidate.InstanceType)
	}

	_, err := m.client.ModifyInstanceAttribute(ctx, &ec2.ModifyInstanceAttributeInput{
		InstanceId: aws.String(candidate.ID),
		InstanceType: &types.AttributeValue{
			Value: aws.String(target),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to resize instance %s to %s: %w", candidate.ID, target, err)
	}
	return nil
}

func ec2TagMap(tags []types.Tag) map[string]string {
	m := make(map[string]string, len(tags))
	for _, tag := range tags {
		m[strings.ToLower(aws.ToString(tag.Key))] = aws.ToString(tag.Value)
	}
	return m
}
