package main

import (
	"fmt"
	"net"
	"os"
	"os/user"
	"time"

	"github.com/ganeshnikumbh/finops/pkg/server"
	"github.com/ganeshnikumbh/finops/pkg/services/advisor"
	"github.com/ganeshnikumbh/finops/pkg/services/config"
	"github.com/ganeshnikumbh/finops/pkg/services/remediation"
	"github.com/ganeshnikumbh/finops/pkg/services/remediation/aws"
	"github.com/ganeshnikumbh/finops/pkg/services/spend"
	"github.com/ganeshnikumbh/finops/pkg/store/pricing"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the advisory and remediation web server",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "settings.yaml",
		"Path to the settings file")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	settings, err := config.LoadSettings(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	usr, _ := user.Current()
	sharedConfigPath := fmt.Sprintf("%s/.aws/config", usr.HomeDir)
	if registry, err := config.NewProfileRegistry(sharedConfigPath); err == nil {
		profiles, _ := registry.GetProfiles(ctx)
		logger.Info().Msgf("Shared AWS config found at `%s`.", sharedConfigPath)
		for _, profile := range profiles {
			logger.Info().Msgf("Profile: `%s`", profile)
		}
	}

	awsCfg, err := aws.LoadConfig(ctx, settings.AWS.Profile)
	if err != nil {
		return fmt.Errorf("failed to load AWS config: %w", err)
	}

	rates := pricing.NewStore()
	if settings.PricingFile != "" {
		rates, err = pricing.NewStoreFromFile(settings.PricingFile)
		if err != nil {
			return fmt.Errorf("failed to load pricing overrides: %w", err)
		}
	}

	actionRegistry, err := aws.NewActionRegistry(*awsCfg)
	if err != nil {
		return fmt.Errorf("failed to build action registry: %w", err)
	}

	engine := remediation.NewEngine(
		actionRegistry,
		remediation.NewExecutor(rates, settings.Remediation.ApplyConcurrency),
	)
	advisorService := advisor.NewService(advisor.NewSupportCatalog(*awsCfg), actionRegistry)
	spendController := spend.NewController(*awsCfg)

	host := settings.Server.Host
	port := settings.Server.Port
	if env := os.Getenv("SERVER_HOST"); env != "" {
		host = env
	}
	if env := os.Getenv("SERVER_PORT"); env != "" {
		port = env
	}

	api := server.NewWebAPI(logger, server.Config{
		Addr:            net.JoinHostPort(host, port),
		ShutdownTimeout: 10 * time.Second,
		Dependencies: server.Dependencies{
			Recommender: advisorService,
			Engine:      engine,
			Spend:       spendController,
		},
	})

	return api.Start()
}
