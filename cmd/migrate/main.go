// Command migrate runs schema operations for the forum database.
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"bridgeforum/internal/config"
	"bridgeforum/internal/database"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var rootCmd = &cobra.Command{
	Use:          "migrate [command]",
	Short:        "Apply, inspect and roll back the forum schema",
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply pending SQL migrations",
			Args:  cobra.NoArgs,
			RunE: withDB(func(ctx context.Context, db *gorm.DB, _ *config.Config, _ []string) error {
				if err := database.RunMigrations(ctx, db); err != nil {
					return fmt.Errorf("sql migrations failed: %w", err)
				}
				color.Green("sql migrations applied")
				return nil
			}),
		},
		&cobra.Command{
			Use:   "auto",
			Short: "Run GORM AutoMigrate for the forum models",
			Args:  cobra.NoArgs,
			RunE: withDB(func(ctx context.Context, db *gorm.DB, cfg *config.Config, _ []string) error {
				cfg.DBSchemaMode = database.SchemaModeAuto
				if err := database.ApplySchema(ctx, db, cfg); err != nil {
					return fmt.Errorf("auto schema apply failed: %w", err)
				}
				color.Green("automigrations applied")
				return nil
			}),
		},
		&cobra.Command{
			Use:   "status",
			Short: "Show the schema policy and every migration's state",
			Args:  cobra.NoArgs,
			RunE:  withDB(status),
		},
		&cobra.Command{
			Use:   "down <version>",
			Short: "Roll back one applied migration",
			Args:  cobra.ExactArgs(1),
			RunE: withDB(func(ctx context.Context, db *gorm.DB, _ *config.Config, args []string) error {
				version, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid version %q: %w", args[0], err)
				}
				m := database.GetMigrationByVersion(version)
				if m == nil {
					return fmt.Errorf("unknown migration version %d", version)
				}
				if err := database.RollbackMigration(ctx, db, version); err != nil {
					return fmt.Errorf("rollback failed: %w", err)
				}
				color.Green("rolled back %s", m)
				return nil
			}),
		},
	)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
}

type dbCommand func(ctx context.Context, db *gorm.DB, cfg *config.Config, args []string) error

// withDB connects without applying the schema so each subcommand decides what runs.
func withDB(fn dbCommand) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		db, err := database.ConnectWithOptions(cfg, database.ConnectOptions{ApplySchema: false})
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}
		if sqlDB, err := db.DB(); err == nil {
			defer func() { _ = sqlDB.Close() }()
		}
		return fn(cmd.Context(), db, cfg, args)
	}
}

func status(ctx context.Context, db *gorm.DB, cfg *config.Config, _ []string) error {
	st, err := database.GetSchemaStatus(ctx, db, cfg)
	if err != nil {
		return fmt.Errorf("schema status failed: %w", err)
	}
	fmt.Printf("mode=%s env=%s run_sql=%t run_auto=%t\n", st.Mode, st.Environment, st.WillRunSQL, st.WillRunAutoMigrate)
	if !st.WillRunSQL {
		return nil
	}

	pending := make(map[int]bool, len(st.PendingMigrations))
	for _, m := range st.PendingMigrations {
		pending[m.Version] = true
	}
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Migration", "State"})
	for _, m := range database.GetMigrations() {
		state := color.GreenString("applied")
		if pending[m.Version] {
			state = color.YellowString("pending")
		}
		table.Append([]string{m.String(), state})
	}
	table.Render()
	return nil
}
