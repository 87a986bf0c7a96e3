package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/chemiz/internal/llm"
	"github.com/abhisek/chemiz/internal/store"
)

const timeLayout = "2006-01-02 15:04:05"

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect recorded tutor requests",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")
		failed, _ := cmd.Flags().GetBool("failed")

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		events, err := st.EventRepo().QueryLLMEvents(cmd.Context(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query llm events: %w", err)
		}

		var rows [][]string
		for _, e := range events {
			if (purpose != "" && e.Purpose != purpose) || (failed && e.Success) {
				continue
			}
			rows = append(rows, []string{
				strconv.Itoa(e.ID),
				e.Timestamp.Local().Format(timeLayout),
				e.Purpose,
				truncate(e.Model, 28),
				fmt.Sprintf("%d/%d", e.InputTokens, e.OutputTokens),
				fmt.Sprintf("%dms", e.LatencyMs),
				mark(e.Success),
			})
		}
		out := cmd.OutOrStdout()
		if len(rows) == 0 {
			fmt.Fprintln(out, "No LLM requests recorded.")
			return nil
		}
		printTable(out, []string{"ID", "Time", "Purpose", "Model", "Tokens", "Latency", "OK"}, rows)
		return nil
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show the prompt and reply of one LLM request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid id %q", args[0])
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		e, err := st.EventRepo().GetLLMEvent(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("get llm event: %w", err)
		}
		if e == nil {
			return fmt.Errorf("no llm request with id %d", id)
		}
		writeLLMEvent(cmd.OutOrStdout(), e)
		return nil
	},
}

func writeLLMEvent(w io.Writer, e *store.LLMEventRecord) {
	fields := [][2]string{
		{"Time", e.Timestamp.Local().Format(timeLayout)},
		{"Backend", e.Provider + " / " + e.Model},
		{"Purpose", e.Purpose},
		{"Tokens", fmt.Sprintf("%d in, %d out", e.InputTokens, e.OutputTokens)},
		{"Latency", fmt.Sprintf("%dms", e.LatencyMs)},
		{"Status", map[bool]string{true: "ok", false: "failed"}[e.Success]},
	}
	if e.ErrorMessage != "" {
		fields = append(fields, [2]string{"Error", e.ErrorMessage})
	}
	fmt.Fprintf(w, "LLM request #%d\n", e.ID)
	for _, f := range fields {
		fmt.Fprintf(w, "  %-8s %s\n", f[0]+":", f[1])
	}

	section := func(title, body string) {
		fmt.Fprintf(w, "\n== %s ==\n", title)
		if body == "" {
			body = "(empty)"
		}
		fmt.Fprintln(w, strings.TrimRight(body, "\n"))
	}
	section("request", e.RequestBody)
	section("response", e.ResponseBody)
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize token usage and estimated cost",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		byPurpose, err := st.EventRepo().LLMUsageByPurpose(ctx)
		if err != nil {
			return fmt.Errorf("usage by purpose: %w", err)
		}
		byModel, err := st.EventRepo().LLMUsageByModel(ctx)
		if err != nil {
			return fmt.Errorf("usage by model: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(byPurpose) == 0 {
			fmt.Fprintln(out, "No LLM requests recorded.")
			return nil
		}

		fmt.Fprintln(out, "By purpose")
		var rows [][]string
		var sum store.LLMUsage
		for _, u := range byPurpose {
			rows = append(rows, usageRow(u.Key, u, strconv.FormatInt(u.AvgLatencyMs, 10)))
			sum.Calls += u.Calls
			sum.InputTokens += u.InputTokens
			sum.OutputTokens += u.OutputTokens
		}
		rows = append(rows, usageRow("total", sum, ""))
		printTable(out, []string{"Purpose", "Calls", "In", "Out", "Avg ms"}, rows)

		fmt.Fprintln(out, "\nEstimated cost (USD)")
		rows, unpriced := costRows(byModel)
		printTable(out, []string{"Model", "Calls", "In", "Out", "Cost"}, rows)
		if len(unpriced) > 0 {
			fmt.Fprintf(out, "No price known for %s; total excludes them.\n", strings.Join(unpriced, ", "))
		}
		return nil
	},
}

func usageRow(key string, u store.LLMUsage, last string) []string {
	return []string{key, strconv.Itoa(u.Calls), strconv.Itoa(u.InputTokens), strconv.Itoa(u.OutputTokens), last}
}

// costRows prices each model's usage and appends a total row. Models
// without a known price show "?" and are returned in unpriced.
func costRows(usage []store.LLMUsage) (rows [][]string, unpriced []string) {
	var total float64
	for _, u := range usage {
		cost := "?"
		if p, ok := llm.PriceOf(u.Key); ok {
			c := p.Cost(llm.Usage{InputTokens: u.InputTokens, OutputTokens: u.OutputTokens})
			total += c
			cost = formatUSD(c)
		} else {
			unpriced = append(unpriced, u.Key)
		}
		rows = append(rows, usageRow(truncate(u.Key, 32), u, cost))
	}
	rows = append(rows, []string{"total", "", "", "", formatUSD(total)})
	return rows, unpriced
}

func formatUSD(v float64) string {
	if v > 0 && v < 0.01 {
		return fmt.Sprintf("$%.4f", v)
	}
	return fmt.Sprintf("$%.2f", v)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of requests to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Only show one purpose (explain, advice)")
	llmListCmd.Flags().Bool("failed", false, "Only show failed requests")

	llmCmd.AddCommand(llmListCmd, llmViewCmd, llmStatsCmd)
}
