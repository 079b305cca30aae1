package remediation

import (
	"context"
	"fmt"
	"sort"

	"github.com/ganeshnikumbh/finops/pkg/models/domain"
	"github.com/ganeshnikumbh/finops/pkg/store/pricing"
)

// Lister enumerates the live resource population for one resource kind.
// An enumeration error fails the whole run; there is no partial state yet.
type Lister interface {
	List(ctx context.Context) ([]domain.ResourceCandidate, error)
}

// Mutator applies a remediation to a single candidate. Failures are isolated
// per candidate by the executor and never abort the batch.
type Mutator interface {
	Apply(ctx context.Context, candidate domain.ResourceCandidate) error
}

// Predicate decides whether a resource is a candidate for an action. The
// second return value is the disqualifying reason, for logging.
type Predicate func(domain.ResourceCandidate) (bool, string)

// SavingsModel estimates monthly savings for a set of candidates. Models must
// not fail: unknown subtypes fall back to default rates.
type SavingsModel func(candidates []domain.ResourceCandidate, rates *pricing.Store) float64

// Action is an executable remediation descriptor. Actions are registered
// statically and immutable at runtime.
type Action struct {
	ID          string
	Name        string
	Description string
	Service     string
	RiskLevel   string
	Kind        domain.ResourceKind

	// Verb/VerbPast/Noun compose outcome messages, e.g.
	// "would stop 3 idle instances" / "stopped 2 of 3 idle instances".
	Verb     string
	VerbPast string
	Noun     string

	// SavingsLabel is the human description for catalog listings, e.g.
	// "Variable" or "0 (security improvement)".
	SavingsLabel string

	Eligible Predicate
	Savings  SavingsModel
	Lister   Lister
	Mutator  Mutator
}

// Registry is the static mapping from advisory check IDs to actions.
// Several check IDs may resolve to the same action.
type Registry struct {
	actions map[string]*Action
	checks  map[string]*Action
}

func NewRegistry() *Registry {
	return &Registry{
		actions: make(map[string]*Action),
		checks:  make(map[string]*Action),
	}
}

func (r *Registry) Register(action *Action, checkIDs ...string) error {
	if action == nil || action.ID == "" {
		return fmt.Errorf("action must have an ID")
	}
	if _, exists := r.actions[action.ID]; exists {
		return fmt.Errorf("duplicate action: %s", action.ID)
	}
	r.actions[action.ID] = action

	for _, checkID := range checkIDs {
		if _, exists := r.checks[checkID]; exists {
			return fmt.Errorf("check %q is already mapped", checkID)
		}
		r.checks[checkID] = action
	}
	return nil
}

// Resolve returns the action mapped to an advisory check ID.
func (r *Registry) Resolve(checkID string) (*Action, bool) {
	action, ok := r.checks[checkID]
	return action, ok
}

// Action returns an action by its own ID.
func (r *Registry) Action(actionID string) (*Action, bool) {
	action, ok := r.actions[actionID]
	return action, ok
}

// Implementable reports whether automation exists for a check ID.
func (r *Registry) Implementable(checkID string) bool {
	_, ok := r.checks[checkID]
	return ok
}

// Automations lists the registered actions for catalog endpoints, sorted by
// action ID.
func (r *Registry) Automations() []domain.Automation {
	automations := make([]domain.Automation, 0, len(r.actions))
	for _, a := range r.actions {
		automations = append(automations, domain.Automation{
			ID:               a.ID,
			Name:             a.Name,
			Description:      a.Description,
			Service:          a.Service,
			RiskLevel:        a.RiskLevel,
			EstimatedSavings: a.SavingsLabel,
		})
	}
	sort.Slice(automations, func(i, j int) bool {
		return automations[i].ID < automations[j].ID
	})
	return automations
}
