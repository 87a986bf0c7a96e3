package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/abhisek/chemiz/internal/store"
	"github.com/abhisek/chemiz/internal/users"
)

var resetCmd = &cobra.Command{
	Use:   "reset <username>",
	Short: "Clear an account's answer history and gems",
	Long: "Clear an account's answer history and gems. Account totals " +
		"(tests completed, correct answers, questions) only ever grow and are kept.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, repo, err := openUsersCmd(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		keepGems, _ := cmd.Flags().GetBool("keep-gems")
		return resetHistory(cmd.Context(), cmd.OutOrStdout(), repo, st.EventRepo(), args[0], keepGems)
	},
}

func init() {
	resetCmd.Flags().Bool("keep-gems", false, "Keep awarded gems")
}

// resetHistory deletes username's answer events and, unless keepGems,
// gem events. The account record is not written.
func resetHistory(ctx context.Context, w io.Writer, repo users.Repository, events store.EventRepo, username string, keepGems bool) error {
	u, err := lookupUser(ctx, repo, username)
	if err != nil {
		return err
	}
	return deleteEvents(ctx, w, events, u.Username, keepGems)
}

func deleteEvents(ctx context.Context, w io.Writer, events store.EventRepo, username string, keepGems bool) error {
	n, err := events.DeleteAnswers(ctx, username)
	if err != nil {
		return fmt.Errorf("delete answer history: %w", err)
	}
	fmt.Fprintf(w, "Deleted %d answer event(s) of %s.\n", n, username)

	if keepGems {
		return nil
	}
	n, err = events.DeleteGemEvents(ctx, username)
	if err != nil {
		return fmt.Errorf("delete gems: %w", err)
	}
	fmt.Fprintf(w, "Deleted %d gem(s).\n", n)
	return nil
}
