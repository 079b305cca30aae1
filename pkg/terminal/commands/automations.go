package commands

import (
	"encoding/json"
	"fmt"

	"github.com/ganeshnikumbh/finops/pkg/services/remediation"
	"github.com/ganeshnikumbh/finops/pkg/services/remediation/aws"
	"github.com/ganeshnikumbh/finops/pkg/store/pricing"
	"github.com/spf13/cobra"
)

type AutomationsCmd struct {
	profile string
	execute string
	dryRun  bool
}

func NewAutomationsCmd() *cobra.Command {
	ac := &AutomationsCmd{}
	cmd := &cobra.Command{
		Use:   "automations",
		Short: "List the automation catalog, or execute one entry",
		RunE:  ac.run,
	}

	cmd.Flags().StringVar(&ac.profile, "profile", "default", "AWS profile to use")
	cmd.Flags().StringVar(&ac.execute, "execute", "", "Automation ID to execute instead of listing")
	cmd.Flags().BoolVar(&ac.dryRun, "dry-run", true, "Report what would change without mutating anything")

	return cmd
}

func (ac *AutomationsCmd) run(cmd *cobra.Command, _ []string) error {
	ctx, cancel, cfg, err := commandContext(cmd, ac.profile)
	if err != nil {
		return fmt.Errorf("failed to load AWS config: %w", err)
	}
	defer cancel()

	registry, err := aws.NewActionRegistry(*cfg)
	if err != nil {
		return fmt.Errorf("failed to build action registry: %w", err)
	}
	engine := remediation.NewEngine(registry, remediation.NewExecutor(pricing.NewStore(), 0))

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")

	if ac.execute == "" {
		return encoder.Encode(engine.Automations())
	}

	outcome, found := engine.ExecuteAutomation(ctx, ac.execute, ac.dryRun)
	if !found {
		return fmt.Errorf("unknown automation %q", ac.execute)
	}
	return encoder.Encode(outcome)
}
