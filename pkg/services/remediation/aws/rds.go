package aws

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rds"
	"github.com/aws/aws-sdk-go-v2/service/rds/types"
	"github.com/ganeshnikumbh/finops/pkg/models/domain"
	"github.com/rs/zerolog"
)

type dbInstanceLister struct {
	client *rds.Client
}

func NewDBInstanceLister(cfg awssdk.Config) *dbInstanceLister {
	return &dbInstanceLister{client: rds.NewFromConfig(cfg)}
}

// List enumerates DB instances with a per-instance tag fetch. An instance
// whose tag lookup fails is logged and skipped; the scan continues.
func (l *dbInstanceLister) List(ctx context.Context) ([]domain.ResourceCandidate, error) {
	logger := zerolog.Ctx(ctx)

	var (
		candidates []domain.ResourceCandidate
		marker     *string
	)

	for {
		resp, err := l.client.DescribeDBInstances(ctx, &rds.DescribeDBInstancesInput{
			Marker: marker,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to describe DB instances: %w", err)
		}

		for _, instance := range resp.DBInstances {
			tagsResp, err := l.client.ListTagsForResource(ctx, &rds.ListTagsForResourceInput{
				ResourceName: instance.DBInstanceArn,
			})
			if err != nil {
				logger.Warn().
					Err(err).
					Str("db_instance", aws.ToString(instance.DBInstanceIdentifier)).
					Msg("tag lookup failed, instance skipped")
				continue
			}

			candidates = append(candidates, domain.ResourceCandidate{
				ID:           aws.ToString(instance.DBInstanceIdentifier),
				Kind:         domain.KindDatabaseInstance,
				State:        aws.ToString(instance.DBInstanceStatus),
				CreatedAt:    aws.ToTime(instance.InstanceCreateTime),
				InstanceType: aws.ToString(instance.DBInstanceClass),
				Tags:         rdsTagMap(tagsResp.TagList),
			})
		}

		if resp.Marker == nil {
			break
		}
		marker = resp.Marker
	}
	return candidates, nil
}

type dbInstanceStopper struct {
	client *rds.Client
}

func NewDBInstanceStopper(cfg awssdk.Config) *dbInstanceStopper {
	return &dbInstanceStopper{client: rds.NewFromConfig(cfg)}
}

func (m *dbInstanceStopper) Apply(ctx context.Context, candidate domain.ResourceCandidate) error {
	_, err := m.client.StopDBInstance(ctx, &rds.StopDBInstanceInput{
		DBInstanceIdentifier: aws.String(candidate.ID),
	})
	if err != nil {
		return fmt.Errorf("failed to stop DB instance %s: %w", candidate.ID, err)
	}
	return nil
}

func rdsTagMap(tags []types.Tag) map[string]string {
	m := make(map[string]string, len(tags))
	for _, tag := range tags {
		m[strings.ToLower(aws.ToString(tag.Key))] = aws.ToString(tag.Value)
	}
	return m
}
