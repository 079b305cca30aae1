package advisor

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/support"
	"github.com/ganeshnikumbh/finops/pkg/models/domain"
)

// Catalog is the advisory-check collaborator: it lists the available checks
// and fetches the current finding for one check.
type Catalog interface {
	ListChecks(ctx context.Context) ([]domain.AdvisoryCheck, error)
	GetCheckFinding(ctx context.Context, checkID string) (*domain.CheckFinding, error)
}

type supportCatalog struct {
	client *support.Client
}

// NewSupportCatalog returns a Catalog backed by the AWS Support Trusted
// Advisor API.
func NewSupportCatalog(cfg awssdk.Config) Catalog {
	return &supportCatalog{client: support.NewFromConfig(cfg)}
}

func (c *supportCatalog) ListChecks(ctx context.Context) ([]domain.AdvisoryCheck, error) {
	resp, err := c.client.DescribeTrustedAdvisorChecks(ctx, &support.DescribeTrustedAdvisorChecksInput{
		Language: aws.String("en"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to describe advisory checks: %w", err)
	}

	checks := make([]domain.AdvisoryCheck, 0, len(resp.Checks))
	for _, check := range resp.Checks {
		checks = append(checks, domain.AdvisoryCheck{
			ID:          aws.ToString(check.Id),
			Name:        aws.ToString(check.Name),
			Description: aws.ToString(check.Description),
			Category:    mapCategory(aws.ToString(check.Category)),
		})
	}
	return checks, nil
}

func (c *supportCatalog) GetCheckFinding(ctx context.Context, checkID string) (*domain.CheckFinding, error) {
	resp, err := c.client.DescribeTrustedAdvisorCheckResult(ctx, &support.DescribeTrustedAdvisorCheckResultInput{
		CheckId:  aws.String(checkID),
		Language: aws.String("en"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch result for check %s: %w", checkID, err)
	}
	if resp.Result == nil {
		return nil, nil
	}

	finding := &domain.CheckFinding{
		CheckID: checkID,
		Status:  mapStatus(aws.ToString(resp.Result.Status)),
	}
	for _, flagged := range resp.Result.FlaggedResources {
		resource := domain.FlaggedResource{
			ResourceID: aws.ToString(flagged.ResourceId),
			Metadata:   aws.ToStringSlice(flagged.Metadata),
		}
		if resource.ResourceID == "" && len(flagged.Metadata) > 0 {
			resource.ResourceID = aws.ToString(flagged.Metadata[0])
		}
		finding.FlaggedResources = append(finding.FlaggedResources, resource)
	}
	return finding, nil
}

func mapStatus(status string) domain.CheckStatus {
	switch status {
	case "ok":
		return domain.StatusOk
	case "warning":
		return domain.StatusWarning
	case "error":
		return domain.StatusError
	default:
		return domain.StatusNotAvailable
	}
}

func mapCategory(category string) domain.CheckCategory {
	switch category {
	case "cost_optimizing":
		return domain.CategoryCostOptimization
	case "security":
		return domain.CategorySecurity
	case "fault_tolerance":
		return domain.CategoryFaultTolerance
	case "performance":
		return domain.CategoryPerformance
	default:
		return domain.CategoryCostOptimization
	}
}
