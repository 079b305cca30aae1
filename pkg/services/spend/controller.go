package spend

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer/types"
	"github.com/ganeshnikumbh/finops/pkg/models/domain"
)

var supportedServices = map[string]string{
	"EC2": "Amazon Elastic Compute Cloud - Compute",
	"EBS": "Amazon Elastic Block Store",
	"S3":  "Amazon Simple Storage Service",
	"RDS": "Amazon Relational Database Service",
}

// Controller reads billed account spend per service. It is a read-only
// companion to the advisory surface; nothing here mutates resources.
type Controller interface {
	SupportedServices() []string
	GetServiceSpend(ctx context.Context, service string, days int) ([]domain.SpendRecord, error)
}

type controller struct {
	client *costexplorer.Client
}

func NewController(cfg awssdk.Config) Controller {
	return &controller{client: costexplorer.NewFromConfig(cfg)}
}

func (c *controller) SupportedServices() []string {
	services := make([]string, 0, len(supportedServices))
	for service := range supportedServices {
		services = append(services, service)
	}
	return services
}

func (c *controller) GetServiceSpend(ctx context.Context, service string, days int) ([]domain.SpendRecord, error) {
	serviceFilter, ok := supportedServices[service]
	if !ok {
		return nil, fmt.Errorf("unsupported service: %s", service)
	}

	end := time.Now()
	start := end.AddDate(0, 0, -days)

	input := &costexplorer.GetCostAndUsageInput{
		TimePeriod: &types.DateInterval{
			Start: aws.String(start.Format("2006-01-02")),
			End:   aws.String(end.Format("2006-01-02")),
		},
		Granularity: types.GranularityDaily,
		Metrics:     []string{"UnblendedCost"},
		Filter: &types.Expression{
			Dimensions: &types.DimensionValues{
				Key:    types.DimensionService,
				Values: []string{serviceFilter},
			},
		},
	}

	result, err := c.client.GetCostAndUsage(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to get cost and usage: %w", err)
	}

	var records []domain.SpendRecord
	for _, resultByTime := range result.ResultsByTime {
		date, err := time.Parse("2006-01-02", aws.ToString(resultByTime.TimePeriod.Start))
		if err != nil {
			return nil, fmt.Errorf("failed to parse spend period start: %w", err)
		}

		metric, ok := resultByTime.Total["UnblendedCost"]
		if !ok {
			continue
		}
		amount, err := strconv.ParseFloat(aws.ToString(metric.Amount), 64)
		if err != nil {
			return nil, fmt.Errorf("failed to parse spend amount: %w", err)
		}

		records = append(records, domain.SpendRecord{
			Date:     date,
			Service:  service,
			Amount:   amount,
			Currency: aws.ToString(metric.Unit),
		})
	}
	return records, nil
}
