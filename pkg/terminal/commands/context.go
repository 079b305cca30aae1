package commands

import (
	"context"
	"os"
	"time"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	remediationaws "github.com/ganeshnikumbh/finops/pkg/services/remediation/aws"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const commandTimeout = 5 * time.Minute

// commandContext returns a logging, deadline-bound context plus the AWS
// config for the selected profile. Shared by every subcommand.
func commandContext(cmd *cobra.Command, profile string) (context.Context, context.CancelFunc, *awssdk.Config, error) {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	ctx, cancel := context.WithTimeout(logger.WithContext(cmd.Context()), commandTimeout)

	cfg, err := remediationaws.LoadConfig(ctx, profile)
	if err != nil {
		cancel()
		return nil, nil, nil, err
	}
	return ctx, cancel, cfg, nil
}
