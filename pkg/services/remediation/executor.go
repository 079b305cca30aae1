package remediation

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ganeshnikumbh/finops/pkg/models/domain"
	"github.com/ganeshnikumbh/finops/pkg/store/pricing"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const defaultApplyConcurrency = 4

// Executor runs one action through a single pass:
// list, evaluate, then either report (dry run) or apply and aggregate.
// Candidates are independent, so mutations run concurrently up to a bounded
// limit; a failed mutation only removes that candidate from the result.
type Executor struct {
	rates            *pricing.Store
	applyConcurrency int
}

func NewExecutor(rates *pricing.Store, applyConcurrency int) *Executor {
	if applyConcurrency <= 0 {
		applyConcurrency = defaultApplyConcurrency
	}
	return &Executor{rates: rates, applyConcurrency: applyConcurrency}
}

// Run executes the action and always returns a well-formed outcome; no error
// escapes to the caller.
func (e *Executor) Run(ctx context.Context, action *Action, dryRun bool) domain.ImplementationOutcome {
	logger := zerolog.Ctx(ctx).With().
		Str("action", action.ID).
		Bool("dry_run", dryRun).
		Logger()
	executedAt := time.Now()

	resources, err := action.Lister.List(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("resource enumeration failed")
		return domain.ImplementationOutcome{
			Success:           false,
			Message:           fmt.Sprintf("failed to %s %s: %v", action.Verb, action.Noun, err),
			AffectedResources: []string{},
			DryRun:            dryRun,
			ExecutedAt:        executedAt,
		}
	}

	var candidates []domain.ResourceCandidate
	for _, r := range resources {
		eligible, reason := action.Eligible(r)
		if !eligible {
			logger.Debug().Str("resource", r.ID).Str("reason", reason).Msg("resource skipped")
			continue
		}
		candidates = append(candidates, r)
	}

	if len(candidates) == 0 {
		return domain.ImplementationOutcome{
			Success:           true,
			Message:           fmt.Sprintf("no %s found", action.Noun),
			AffectedResources: []string{},
			DryRun:            dryRun,
			ExecutedAt:        executedAt,
		}
	}

	if dryRun {
		return domain.ImplementationOutcome{
			Success:           true,
			Message:           fmt.Sprintf("would %s %d %s", action.Verb, len(candidates), action.Noun),
			Savings:           action.Savings(candidates, e.rates),
			AffectedResources: resourceIDs(candidates),
			DryRun:            true,
			ExecutedAt:        executedAt,
		}
	}

	applied := e.apply(ctx, &logger, action, candidates)

	message := fmt.Sprintf("successfully %s %d %s", action.VerbPast, len(applied), action.Noun)
	if len(applied) != len(candidates) {
		message = fmt.Sprintf("%s %d of %d eligible %s", action.VerbPast, len(applied), len(candidates), action.Noun)
	}

	return domain.ImplementationOutcome{
		Success:           true,
		Message:           message,
		Savings:           action.Savings(applied, e.rates),
		AffectedResources: resourceIDs(applied),
		DryRun:            false,
		ExecutedAt:        executedAt,
	}
}

// apply mutates each candidate independently and returns the subset that
// succeeded. Failures are logged and excluded, never propagated.
func (e *Executor) apply(
	ctx context.Context,
	logger *zerolog.Logger,
	action *Action,
	candidates []domain.ResourceCandidate,
) []domain.ResourceCandidate {
	var (
		mu      sync.Mutex
		applied []domain.ResourceCandidate
	)

	g := new(errgroup.Group)
	g.SetLimit(e.applyConcurrency)

	for _, candidate := range candidates {
		candidate := candidate
		g.Go(func() error {
			if err := action.Mutator.Apply(ctx, candidate); err != nil {
				logger.Warn().
					Err(err).
					Str("resource", candidate.ID).
					Msg("mutation failed, resource excluded from outcome")
				return nil
			}
			mu.Lock()
			applied = append(applied, candidate)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return applied
}

func resourceIDs(candidates []domain.ResourceCandidate) []string {
	ids := make([]string, 0, len(candidates))
	for _, c := range candidates {
		ids = append(ids, c.ID)
	}
	return ids
}
