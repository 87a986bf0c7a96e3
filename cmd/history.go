package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/chemiz/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history [username]",
	Short: "List recent quiz answers",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		wrongOnly, _ := cmd.Flags().GetBool("wrong")

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		opts := store.QueryOpts{Limit: limit}
		if len(args) == 1 {
			opts.Username = args[0]
		}
		answers, err := st.EventRepo().QueryAnswers(cmd.Context(), opts)
		if err != nil {
			return fmt.Errorf("query answers: %w", err)
		}
		if len(answers) == 0 {
			fmt.Println("No answers recorded.")
			return nil
		}

		fmt.Printf("%-5s  %-16s  %-12s  %-6s  %-3s  %-20s  %-20s  %s\n",
			"ID", "Time", "User", "Level", "El", "Choice", "Answer", "OK")
		fmt.Println(strings.Repeat("─", 100))
		for _, a := range answers {
			if wrongOnly && a.Correct {
				continue
			}
			fmt.Printf("%-5d  %-16s  %-12s  %-6s  %-3s  %-20s  %-20s  %s\n",
				a.ID,
				a.Timestamp.Local().Format("2006-01-02 15:04"),
				truncate(a.Username, 12),
				a.Level,
				a.Symbol,
				truncate(a.Choice, 20),
				truncate(a.CorrectAnswer, 20),
				mark(a.Correct),
			)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 30, "Number of answers to show")
	historyCmd.Flags().Bool("wrong", false, "Only show wrong answers")
}
