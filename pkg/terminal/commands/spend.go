package commands

import (
	"encoding/json"
	"fmt"

	"github.com/ganeshnikumbh/finops/pkg/services/spend"
	"github.com/spf13/cobra"
)

type SpendCmd struct {
	profile string
	days    int
}

func NewSpendCmd() *cobra.Command {
	sc := &SpendCmd{}
	cmd := &cobra.Command{
		Use:   "spend <service>",
		Short: "Show billed daily spend for a service",
		Args:  cobra.ExactArgs(1),
		RunE:  sc.run,
	}

	cmd.Flags().StringVar(&sc.profile, "profile", "default", "AWS profile to use")
	cmd.Flags().IntVar(&sc.days, "days", 30, "Number of days to look back")

	return cmd
}

func (sc *SpendCmd) run(cmd *cobra.Command, args []string) error {
	ctx, cancel, cfg, err := commandContext(cmd, sc.profile)
	if err != nil {
		return fmt.Errorf("failed to load AWS config: %w", err)
	}
	defer cancel()

	ctrl := spend.NewController(*cfg)
	records, err := ctrl.GetServiceSpend(ctx, args[0], sc.days)
	if err != nil {
		return fmt.Errorf("failed to fetch spend: %w", err)
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(records)
}
