package remediation

import (
	"context"
	"testing"

	"github.com/ganeshnikumbh/finops/pkg/models/domain"
	"github.com/ganeshnikumbh/finops/pkg/store/pricing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRegistryRegister(t *testing.T) {
	registry := NewRegistry()

	action := stopAction(&mockLister{}, &mockMutator{})
	require.NoError(t, registry.Register(action, "idleEC2InstanceCheck", "idleLoadBalancerCheck"))

	resolved, ok := registry.Resolve("idleEC2InstanceCheck")
	assert.True(t, ok)
	assert.Same(t, action, resolved)

	resolved, ok = registry.Resolve("idleLoadBalancerCheck")
	assert.True(t, ok)
	assert.Same(t, action, resolved)

	assert.True(t, registry.Implementable("idleEC2InstanceCheck"))
	assert.False(t, registry.Implementable("unmappedCheck"))

	byID, ok := registry.Action("stop_idle_instances")
	assert.True(t, ok)
	assert.Same(t, action, byID)
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	registry := NewRegistry()

	first := stopAction(&mockLister{}, &mockMutator{})
	require.NoError(t, registry.Register(first, "idleEC2InstanceCheck"))

	duplicate := stopAction(&mockLister{}, &mockMutator{})
	assert.Error(t, registry.Register(duplicate))

	other := stopAction(&mockLister{}, &mockMutator{})
	other.ID = "other_action"
	assert.Error(t, registry.Register(other, "idleEC2InstanceCheck"))

	assert.Error(t, registry.Register(nil))
	assert.Error(t, registry.Register(&Action{}))
}

func TestRegistryAutomationsSorted(t *testing.T) {
	registry := NewRegistry()

	b := stopAction(&mockLister{}, &mockMutator{})
	b.ID = "b_action"
	a := stopAction(&mockLister{}, &mockMutator{})
	a.ID = "a_action"
	a.SavingsLabel = "Variable"

	require.NoError(t, registry.Register(b))
	require.NoError(t, registry.Register(a))

	automations := registry.Automations()
	require.Len(t, automations, 2)
	assert.Equal(t, "a_action", automations[0].ID)
	assert.Equal(t, "Variable", automations[0].EstimatedSavings)
	assert.Equal(t, "b_action", automations[1].ID)
}

func TestEngineUnknownCheck(t *testing.T) {
	engine := NewEngine(NewRegistry(), NewExecutor(pricing.NewStore(), 0))

	outcome := engine.Execute(context.Background(), "doesNotExist", false)

	assert.False(t, outcome.Success)
	assert.Contains(t, outcome.Message, "doesNotExist")
	assert.Empty(t, outcome.AffectedResources)
	assert.NotNil(t, outcome.AffectedResources)
	assert.Zero(t, outcome.Savings)
	assert.False(t, outcome.ExecutedAt.IsZero())
}

func TestEngineExecuteResolvesCheck(t *testing.T) {
	lister := &mockLister{}
	lister.On("List", mock.Anything).Return([]domain.ResourceCandidate{
		{ID: "i-1", InstanceType: "t2.micro"},
	}, nil)

	registry := NewRegistry()
	require.NoError(t, registry.Register(stopAction(lister, &mockMutator{}), "idleEC2InstanceCheck"))

	engine := NewEngine(registry, NewExecutor(pricing.NewStore(), 0))
	outcome := engine.Execute(context.Background(), "idleEC2InstanceCheck", true)

	assert.True(t, outcome.Success)
	assert.True(t, outcome.DryRun)
	assert.Equal(t, []string{"i-1"}, outcome.AffectedResources)
}

func TestEngineExecuteAutomation(t *testing.T) {
	lister := &mockLister{}
	lister.On("List", mock.Anything).Return([]domain.ResourceCandidate{}, nil)

	registry := NewRegistry()
	require.NoError(t, registry.Register(stopAction(lister, &mockMutator{})))

	engine := NewEngine(registry, NewExecutor(pricing.NewStore(), 0))

	outcome, found := engine.ExecuteAutomation(context.Background(), "stop_idle_instances", true)
	assert.True(t, found)
	assert.True(t, outcome.Success)

	_, found = engine.ExecuteAutomation(context.Background(), "unknown_automation", true)
	assert.False(t, found)
}
