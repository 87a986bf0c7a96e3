package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats <username>",
	Short: "Show account statistics",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		st, repo, err := openUsersCmd(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		u, err := lookupUser(ctx, repo, args[0])
		if err != nil {
			return err
		}

		fmt.Printf("User:             %s (%s)\n", u.Username, u.Role)
		fmt.Printf("Member since:     %s\n", u.CreatedAt.Local().Format("2006-01-02"))
		if u.LastLoginAt != nil {
			fmt.Printf("Last login:       %s\n", u.LastLoginAt.Local().Format("2006-01-02 15:04"))
		}
		fmt.Printf("Tests completed:  %d\n", u.Stats.TestsCompleted)
		fmt.Printf("Correct answers:  %d of %d\n", u.Stats.CorrectAnswers, u.Stats.TotalQuestions)
		if pct, ok := u.Stats.Accuracy(); ok {
			fmt.Printf("Accuracy:         %.1f%%\n", pct)
		}

		summary, err := st.EventRepo().AnswerSummaryByUser(ctx, u.Username)
		if err != nil {
			return fmt.Errorf("query answer history: %w", err)
		}
		if len(summary) == 0 {
			return nil
		}

		cat, _ := loadCatalog(cmd)
		limit, _ := cmd.Flags().GetInt("weakest")
		fmt.Println()
		fmt.Println("Weakest elements")
		fmt.Println(strings.Repeat("─", 40))
		for _, s := range summary[:min(len(summary), limit)] {
			name := s.Symbol
			if cat != nil {
				if e, ok := cat.Get(s.Symbol); ok {
					name = e.Name
				}
			}
			fmt.Printf("%-3s %-16s %3d/%-3d\n", s.Symbol, name, s.Correct, s.Attempts)
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().Int("weakest", 10, "Number of per-element rows to show")
}
