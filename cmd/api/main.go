package main

import (
	"fmt"
	"os"

	"github.com/fitzone/fitzone-backend/internal/config"
	"github.com/fitzone/fitzone-backend/internal/database"
	"github.com/fitzone/fitzone-backend/internal/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var migrate bool

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(migrate)
		},
	}
	serve.Flags().BoolVar(&migrate, "migrate", false, "Apply database migrations before serving")

	cmd := &cobra.Command{
		Use:   "fitzone",
		Short: "FitZone gym management API",
		Long: `FitZone serves the gym's REST API: trainers, class schedules,
bookings, memberships, services and contact messages.

Run "fitzone migrate" and "fitzone bootstrap-admin" once per deployment
before starting the server.`,
		SilenceUsage: true,
		RunE:         serve.RunE,
	}
	cmd.Flags().AddFlagSet(serve.Flags())

	cmd.AddCommand(serve)
	cmd.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(func(db *gorm.DB, _ *config.Config, log *zap.Logger) error {
				if err := database.RunMigrations(db); err != nil {
					return err
				}
				log.Info("Migrations applied")
				return nil
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "bootstrap-admin",
		Short: "Create the admin account from ADMIN_* settings if it does not exist",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(func(db *gorm.DB, cfg *config.Config, log *zap.Logger) error {
				created, err := database.EnsureAdmin(db, cfg.AdminName, cfg.AdminEmail, cfg.AdminPassword)
				if err != nil {
					return err
				}
				if created {
					log.Info("Admin account created", zap.String("email", cfg.AdminEmail))
				} else {
					log.Info("Admin account already exists", zap.String("email", cfg.AdminEmail))
				}
				return nil
			})
		},
	})

	return cmd
}

// withDatabase runs fn with config, logger and an open database, closing
// everything afterwards.
func withDatabase(fn func(db *gorm.DB, cfg *config.Config, log *zap.Logger) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log, err := logger.New(cfg.Env)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	db, err := database.InitDB(cfg)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("get database instance: %w", err)
	}
	defer sqlDB.Close()

	return fn(db, cfg, log)
}
