package main

import (
	"context"
	"fmt"
	"os"

	"benigna-backend/cmd/config"
	migration "benigna-backend/cmd/database/migrate"
	"benigna-backend/cmd/database/seed"
	"benigna-backend/internal/utils"
	"benigna-backend/internal/utils/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	env     string
	envFile string
	logger  *zap.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "benigna",
		Short: "Benigna - donation matching backend",
		Long:  `HTTP API connecting donors with charitable institutions, plus database maintenance commands.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (development, production, ...); overrides APP_ENV")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file read before config.yaml")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(seedCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func initApp() error {
	if env != "" {
		if err := os.Setenv("APP_ENV", env); err != nil {
			return err
		}
	}
	utils.SetEnvFile(envFile)
	utils.LoadConfig()

	var err error
	logger, err = logging.InitLogger(utils.GetConfig("APP_ENV"), logging.LogsDir)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger.Info("Starting application", zap.String("environment", utils.GetConfig("APP_ENV")))
	return nil
}

func serveCmd() *cobra.Command {
	var (
		memory   bool
		withSeed bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			repos, err := repositories(memory)
			if err != nil {
				return err
			}

			if withSeed {
				if err := seed.Seed(contextOf(cmd), repos.Users, repos.Categories, logger); err != nil {
					return fmt.Errorf("failed to seed: %w", err)
				}
			}

			app, err := config.NewApp(repos, logger)
			if err != nil {
				return err
			}

			addr := ":" + utils.GetConfig("APP_PORT")
			logger.Info("Listening", zap.String("address", addr), zap.Bool("memory", memory))
			return app.Listen(addr)
		},
	}

	cmd.Flags().BoolVar(&memory, "memory", false, "Keep all data in memory instead of PostgreSQL")
	cmd.Flags().BoolVar(&withSeed, "seed", false, "Seed categories, the admin account and sample institutions on start")
	return cmd
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := config.ConnectDB()
			if err != nil {
				return err
			}
			return migration.Migrate(db, logger)
		},
	}
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert default categories, the admin account and sample institutions",
		RunE: func(cmd *cobra.Command, args []string) error {
			repos, err := repositories(false)
			if err != nil {
				return err
			}
			return seed.Seed(contextOf(cmd), repos.Users, repos.Categories, logger)
		},
	}
}

func repositories(memory bool) (config.Repositories, error) {
	if memory {
		logger.Warn("Using in-memory storage, data is lost on exit")
		return config.NewMemoryRepositories(), nil
	}

	db, err := config.ConnectDB()
	if err != nil {
		return config.Repositories{}, err
	}
	if err := migration.Migrate(db, logger); err != nil {
		return config.Repositories{}, err
	}
	return config.NewRepositories(db), nil
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
