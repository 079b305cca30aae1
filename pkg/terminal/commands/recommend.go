package commands

import (
	"encoding/json"
	"fmt"

	"github.com/ganeshnikumbh/finops/pkg/services/advisor"
	"github.com/ganeshnikumbh/finops/pkg/services/remediation/aws"
	"github.com/spf13/cobra"
)

type RecommendCmd struct {
	profile string
}

func NewRecommendCmd() *cobra.Command {
	rc := &RecommendCmd{}
	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "List advisory recommendations with estimated savings",
		RunE:  rc.run,
	}

	cmd.Flags().StringVar(&rc.profile, "profile", "default", "AWS profile to use")

	return cmd
}

func (rc *RecommendCmd) run(cmd *cobra.Command, _ []string) error {
	ctx, cancel, cfg, err := commandContext(cmd, rc.profile)
	if err != nil {
		return fmt.Errorf("failed to load AWS config: %w", err)
	}
	defer cancel()

	registry, err := aws.NewActionRegistry(*cfg)
	if err != nil {
		return fmt.Errorf("failed to build action registry: %w", err)
	}

	svc := advisor.NewService(advisor.NewSupportCatalog(*cfg), registry)
	recommendations, err := svc.Recommendations(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch recommendations: %w", err)
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(recommendations)
}
