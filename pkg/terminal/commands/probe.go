package commands

import (
	"fmt"

	"github.com/ganeshnikumbh/finops/pkg/services/advisor"
	"github.com/ganeshnikumbh/finops/pkg/services/remediation/aws"
	"github.com/spf13/cobra"
)

type ProbeCmd struct {
	profile string
}

func NewProbeCmd() *cobra.Command {
	pc := &ProbeCmd{}
	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Verify AWS credentials and advisory API access",
		RunE:  pc.run,
	}

	cmd.Flags().StringVar(&pc.profile, "profile", "default", "AWS profile to use")

	return cmd
}

func (pc *ProbeCmd) run(cmd *cobra.Command, _ []string) error {
	ctx, cancel, cfg, err := commandContext(cmd, pc.profile)
	if err != nil {
		return fmt.Errorf("failed to load AWS config: %w", err)
	}
	defer cancel()

	registry, err := aws.NewActionRegistry(*cfg)
	if err != nil {
		return fmt.Errorf("failed to build action registry: %w", err)
	}

	svc := advisor.NewService(advisor.NewSupportCatalog(*cfg), registry)
	if !svc.Probe(ctx) {
		return fmt.Errorf("advisory API unreachable for profile %q", pc.profile)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "profile %q: advisory API reachable\n", pc.profile)
	return nil
}
