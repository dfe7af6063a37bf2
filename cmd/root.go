package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"dispatchsim/internal/observability"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewRootCommand builds the dispatchsim CLI.
func NewRootCommand() *cobra.Command {
	var cfgFile string

	root := &cobra.Command{
		Use:   "dispatchsim",
		Short: "Delivery allocation and financial simulation service",
		Long: `dispatchsim assigns pending delivery orders to available drivers under
shift and fatigue limits, scores the outcome and records every run.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML or JSON); environment variables take precedence")

	root.AddCommand(
		newServeCommand(&cfgFile),
		newSimulateCommand(&cfgFile),
		newMigrateCommand(&cfgFile),
		newSeedCommand(&cfgFile),
		newHistoryCommand(&cfgFile),
	)
	return root
}

// Execute runs the CLI and exits non-zero on failure.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// runtime is what every subcommand needs: config, logger and a database.
type runtime struct {
	cfg    Config
	logger *slog.Logger
	db     *gorm.DB
}

func bootstrap(ctx context.Context, cfgFile string) (*runtime, error) {
	cfg, err := LoadConfig(viper.New(), cfgFile)
	if err != nil {
		return nil, err
	}

	log := observability.NewLogger(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(log)

	gormLogLevel := logger.Warn
	if cfg.Debug {
		gormLogLevel = logger.Info
	}
	db, err := gorm.Open(postgresdriver.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(gormLogLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	log.DebugContext(ctx, "database connected", "host", cfg.DBHost, "db", cfg.DBName)
	return &runtime{cfg: cfg, logger: log, db: db}, nil
}

func (r *runtime) close() {
	if sqlDB, err := r.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
