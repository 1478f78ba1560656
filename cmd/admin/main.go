// Package main provides admin management utilities for the forum.
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"bridgeforum/internal/cache"
	"bridgeforum/internal/config"
	"bridgeforum/internal/database"
	"bridgeforum/internal/repository"
	"bridgeforum/internal/validation"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "admin [command]",
	Short: "Manage forum administrators",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()
		return nil
	},
	SilenceUsage: true,
}

var promoteCmd = &cobra.Command{
	Use:   "promote <email>",
	Short: "Promote user to admin",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withUsers(func(ctx context.Context, users repository.UserRepository) error {
			return setAdmin(ctx, users, args[0], true)
		})
	},
}

var demoteCmd = &cobra.Command{
	Use:   "demote <email>",
	Short: "Demote user from admin",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withUsers(func(ctx context.Context, users repository.UserRepository) error {
			return setAdmin(ctx, users, args[0], false)
		})
	},
}

var listAdminsCmd = &cobra.Command{
	Use:   "list-admins",
	Short: "List all admins",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withUsers(listAdmins)
	},
}

func init() {
	rootCmd.AddCommand(promoteCmd, demoteCmd, listAdminsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
}

func withUsers(fn func(ctx context.Context, users repository.UserRepository) error) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer func() { _ = sqlDB.Close() }()
	}
	defer connectCache(cfg)()

	return fn(context.Background(), repository.NewUserRepository(db))
}

// connectCache points the shared Redis client at the server's cache so role changes evict the
// cached user the server reads on every request.
func connectCache(cfg *config.Config) func() {
	cache.InitRedis(cfg.RedisURL)
	return func() {
		if c := cache.GetClient(); c != nil {
			_ = c.Close()
			cache.SetClient(nil)
		}
	}
}

func setAdmin(ctx context.Context, users repository.UserRepository, email string, admin bool) error {
	email = validation.NormalizeEmail(email)
	user, err := users.GetByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("database error: %w", err)
	}
	if user == nil {
		return fmt.Errorf("user with email %s not found", email)
	}

	if user.IsAdmin == admin {
		color.Yellow("User %s (ID: %d) already has admin=%t", user.DisplayName(), user.ID, admin)
		return nil
	}
	if err := users.SetAdmin(ctx, user.ID, admin); err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	verb := "promoted"
	if !admin {
		verb = "demoted"
	}
	color.Green("✅ Successfully %s %s (ID: %d)", verb, user.DisplayName(), user.ID)
	return nil
}

func listAdmins(ctx context.Context, users repository.UserRepository) error {
	admins, err := users.ListAdmins(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch admins: %w", err)
	}

	if len(admins) == 0 {
		fmt.Println("No admins found in the system")
		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"ID", "Username", "Email"})
	for _, admin := range admins {
		table.Append([]string{strconv.FormatUint(uint64(admin.ID), 10), admin.Username, admin.Email})
	}
	table.Render()
	return nil
}
