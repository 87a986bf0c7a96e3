package cmd

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/chemiz/internal/auth"
	"github.com/abhisek/chemiz/internal/users"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage accounts in the user store",
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, repo, err := openUsersCmd(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		snap, err := repo.LoadAll(cmd.Context())
		if err != nil {
			return fmt.Errorf("load users: %w", err)
		}
		if snap.Skipped > 0 {
			fmt.Printf("warning: %d stored record(s) could not be decoded\n", snap.Skipped)
		}
		if len(snap.Users) == 0 {
			fmt.Println("No accounts found.")
			return nil
		}

		names := make([]string, 0, len(snap.Users))
		for name := range snap.Users {
			names = append(names, name)
		}
		sort.Strings(names)

		fmt.Printf("%-20s  %-8s  %-10s  %6s  %9s  %s\n",
			"Username", "Role", "Created", "Tests", "Correct", "Last login")
		fmt.Println(strings.Repeat("─", 76))
		for _, name := range names {
			u := snap.Users[name]
			last := "never"
			if u.LastLoginAt != nil {
				last = u.LastLoginAt.Local().Format("2006-01-02 15:04")
			}
			fmt.Printf("%-20s  %-8s  %-10s  %6d  %4d/%-4d  %s\n",
				truncate(u.Username, 20), u.Role, u.CreatedAt.Local().Format("2006-01-02"),
				u.Stats.TestsCompleted, u.Stats.CorrectAnswers, u.Stats.TotalQuestions, last)
		}
		return nil
	},
}

// deleter is implemented by backends that can remove an account.
type deleter interface {
	Delete(ctx context.Context, username string) error
}

var usersDeleteCmd = &cobra.Command{
	Use:   "delete <username>",
	Short: "Delete an account with its answer history and gems",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		st, repo, err := openUsersCmd(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		d, ok := repo.(deleter)
		if !ok {
			return fmt.Errorf("the %s backend does not support deleting accounts", usersConfig(cmd).Backend)
		}
		if _, err := lookupUser(ctx, repo, args[0]); err != nil {
			return err
		}
		if err := d.Delete(ctx, args[0]); err != nil {
			return fmt.Errorf("delete user: %w", err)
		}
		fmt.Printf("Deleted %s.\n", args[0])
		return deleteEvents(ctx, cmd.OutOrStdout(), st.EventRepo(), args[0], false)
	},
}

var usersAddCmd = &cobra.Command{
	Use:   "add <username>",
	Short: "Register an account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		password, _ := cmd.Flags().GetString("password")
		email, _ := cmd.Flags().GetString("email")

		st, repo, err := openUsersCmd(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := newAuthService(repo).Register(cmd.Context(), args[0], password, email); err != nil {
			return err
		}
		fmt.Printf("Registered %s.\n", args[0])
		return nil
	},
}

var usersDemoCmd = &cobra.Command{
	Use:   "seed-demo",
	Short: "Create the demo account if it does not exist",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, repo, err := openUsersCmd(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		created, err := newAuthService(repo).SeedDemo(cmd.Context())
		if err != nil {
			return fmt.Errorf("seed demo account: %w", err)
		}
		if created {
			fmt.Println("Demo account created.")
		} else {
			fmt.Println("Demo account already exists.")
		}
		return nil
	},
}

var sheetCmd = &cobra.Command{
	Use:   "sheet",
	Short: "Manage the spreadsheet user store",
}

var sheetInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the worksheet and header row",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := usersConfig(cmd)
		cfg.Backend = users.BackendSheets

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		repo, err := openUsers(cmd.Context(), cfg, st, stderrLogger())
		if err != nil {
			return err
		}
		ensurer, ok := repo.(users.SchemaEnsurer)
		if !ok {
			return fmt.Errorf("sheets backend cannot create its schema")
		}
		if err := ensurer.EnsureSchema(cmd.Context()); err != nil {
			return fmt.Errorf("initialize worksheet: %w", err)
		}
		fmt.Printf("Worksheet %q of spreadsheet %s is ready.\n", cfg.Sheet.Worksheet, cfg.Sheet.SpreadsheetID)
		return nil
	},
}

func newAuthService(repo users.Repository) *auth.Service {
	return auth.NewService(repo, auth.DefaultConfig(), stderrLogger())
}

func init() {
	usersAddCmd.Flags().String("password", "", "Password of the new account")
	usersAddCmd.Flags().String("email", "", "Optional email address")
	_ = usersAddCmd.MarkFlagRequired("password")

	usersCmd.AddCommand(usersListCmd)
	usersCmd.AddCommand(usersAddCmd)
	usersCmd.AddCommand(usersDeleteCmd)
	usersCmd.AddCommand(usersDemoCmd)
	sheetCmd.AddCommand(sheetInitCmd)
}
