package remediation

import (
	"context"
	"fmt"
	"time"

	"github.com/ganeshnikumbh/finops/pkg/models/domain"
)

// Engine resolves advisory check IDs to actions and runs them. Every path
// resolves to a well-formed outcome; an unmapped check is a normal terminal
// case, not an error.
type Engine struct {
	registry *Registry
	executor *Executor
}

func NewEngine(registry *Registry, executor *Executor) *Engine {
	return &Engine{registry: registry, executor: executor}
}

// Execute runs the automation mapped to an advisory check ID.
func (e *Engine) Execute(ctx context.Context, checkID string, dryRun bool) domain.ImplementationOutcome {
	action, ok := e.registry.Resolve(checkID)
	if !ok {
		return domain.ImplementationOutcome{
			Success:           false,
			Message:           fmt.Sprintf("no automation available for check %q", checkID),
			AffectedResources: []string{},
			DryRun:            dryRun,
			ExecutedAt:        time.Now(),
		}
	}
	return e.executor.Run(ctx, action, dryRun)
}

// ExecuteAutomation runs an action by its own ID. The second return value
// reports whether the automation exists.
func (e *Engine) ExecuteAutomation(ctx context.Context, automationID string, dryRun bool) (domain.ImplementationOutcome, bool) {
	action, ok := e.registry.Action(automationID)
	if !ok {
		return domain.ImplementationOutcome{}, false
	}
	return e.executor.Run(ctx, action, dryRun), true
}

// Implementable reports whether a check has a registered automation.
func (e *Engine) Implementable(checkID string) bool {
	return e.registry.Implementable(checkID)
}

// Automations lists the registered automation catalog.
func (e *Engine) Automations() []domain.Automation {
	return e.registry.Automations()
}
