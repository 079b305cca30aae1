package commands

import (
	"encoding/json"
	"fmt"

	"github.com/ganeshnikumbh/finops/pkg/services/remediation"
	"github.com/ganeshnikumbh/finops/pkg/services/remediation/aws"
	"github.com/ganeshnikumbh/finops/pkg/store/pricing"
	"github.com/spf13/cobra"
)

type ImplementCmd struct {
	profile string
	dryRun  bool
}

func NewImplementCmd() *cobra.Command {
	ic := &ImplementCmd{}
	cmd := &cobra.Command{
		Use:   "implement <check-id>",
		Short: "Run the remediation mapped to an advisory check",
		Args:  cobra.ExactArgs(1),
		RunE:  ic.run,
	}

	cmd.Flags().StringVar(&ic.profile, "profile", "default", "AWS profile to use")
	cmd.Flags().BoolVar(&ic.dryRun, "dry-run", true, "Report what would change without mutating anything")

	return cmd
}

func (ic *ImplementCmd) run(cmd *cobra.Command, args []string) error {
	ctx, cancel, cfg, err := commandContext(cmd, ic.profile)
	if err != nil {
		return fmt.Errorf("failed to load AWS config: %w", err)
	}
	defer cancel()

	registry, err := aws.NewActionRegistry(*cfg)
	if err != nil {
		return fmt.Errorf("failed to build action registry: %w", err)
	}

	engine := remediation.NewEngine(registry, remediation.NewExecutor(pricing.NewStore(), 0))
	outcome := engine.Execute(ctx, args[0], ic.dryRun)

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(outcome)
}
