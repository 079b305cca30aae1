package advisor

import (
	"context"
	"time"

	"github.com/ganeshnikumbh/finops/pkg/models/domain"
	"github.com/rs/zerolog"
)

// perResourceEstimate is the coarse pre-remediation savings figure per
// flagged resource. It deliberately stays cruder than the post-hoc savings
// models: at this point no resource has been evaluated yet.
const perResourceEstimate = 50.0

// Implementability answers whether automation exists for a check ID; the
// remediation registry satisfies it.
type Implementability interface {
	Implementable(checkID string) bool
}

// Service translates raw advisory findings into recommendations.
type Service struct {
	catalog  Catalog
	registry Implementability
}

func NewService(catalog Catalog, registry Implementability) *Service {
	return &Service{catalog: catalog, registry: registry}
}

// Recommendations fetches every check's current finding and maps it. A check
// whose result fetch fails is skipped; only the catalog listing itself is
// fatal.
func (s *Service) Recommendations(ctx context.Context) ([]domain.Recommendation, error) {
	logger := zerolog.Ctx(ctx)

	checks, err := s.catalog.ListChecks(ctx)
	if err != nil {
		return nil, err
	}

	var recommendations []domain.Recommendation
	for _, check := range checks {
		finding, err := s.catalog.GetCheckFinding(ctx, check.ID)
		if err != nil {
			logger.Warn().Err(err).Str("check_id", check.ID).Msg("check result unavailable, skipped")
			continue
		}
		if finding == nil {
			continue
		}
		recommendations = append(recommendations, s.mapFinding(check, finding))
	}
	return recommendations, nil
}

func (s *Service) mapFinding(check domain.AdvisoryCheck, finding *domain.CheckFinding) domain.Recommendation {
	resources := make([]string, 0, len(finding.FlaggedResources))
	for _, flagged := range finding.FlaggedResources {
		if flagged.ResourceID != "" {
			resources = append(resources, flagged.ResourceID)
		}
	}

	return domain.Recommendation{
		CheckID:           check.ID,
		Category:          check.Category,
		Title:             check.Name,
		Description:       check.Description,
		Status:            finding.Status,
		EstimatedSavings:  float64(len(finding.FlaggedResources)) * perResourceEstimate,
		CanImplement:      s.registry.Implementable(check.ID),
		AffectedResources: resources,
		LastUpdated:       time.Now(),
	}
}

// Probe reports whether the advisory catalog is reachable.
func (s *Service) Probe(ctx context.Context) bool {
	_, err := s.catalog.ListChecks(ctx)
	return err == nil
}
