package main

import (
	"fmt"
	"os"

	"github.com/ganeshnikumbh/finops/pkg/terminal/commands"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "finops",
		Short: "Advisory recommendations and cost remediations for AWS accounts",
	}

	rootCmd.AddCommand(
		commands.NewRecommendCmd(),
		commands.NewImplementCmd(),
		commands.NewAutomationsCmd(),
		commands.NewSpendCmd(),
		commands.NewProbeCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
