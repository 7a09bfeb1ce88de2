package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/curanostics/curanostics/internal/llm"
	"github.com/curanostics/curanostics/internal/store"
)

var (
	heading = color.New(color.Bold)
	dimmed  = color.New(color.Faint)
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Show the AI provider setup and inspect recorded requests",
	Long: `Without a subcommand, prints which AI provider the dashboard will use
and how to configure one. The subcommands read the request log kept in
the local database.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, source, err := llmConfig()
		if errors.Is(err, errNoProvider) {
			printProviderHelp()
			return nil
		}
		if err != nil {
			return err
		}

		heading.Println("AI provider")
		fmt.Printf("  provider  %s\n", c.Provider)
		if m := c.SelectedModel(); m != "" {
			fmt.Printf("  model     %s\n", m)
		}
		fmt.Printf("  timeout   %s\n", c.Timeout)
		fmt.Printf("  source    %s\n", source)
		if err := c.Validate(); err != nil {
			fmt.Println()
			color.Red("  %v", err)
		}
		return nil
	},
}

func printProviderHelp() {
	color.Yellow("No AI provider configured.")
	fmt.Println()
	fmt.Println("Set one of these API keys and the provider is picked automatically:")
	for _, k := range []string{"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY"} {
		fmt.Printf("  %s\n", k)
	}
	fmt.Println()
	fmt.Println("Or choose explicitly:")
	fmt.Println("  CURANOSTICS_LLM_PROVIDER=anthropic|openai|gemini|openrouter")
	fmt.Println("  CURANOSTICS_<PROVIDER>_API_KEY, CURANOSTICS_<PROVIDER>_MODEL")
	fmt.Println()
	dimmed.Println("The config file accepts llm.provider, llm.model and llm.timeout.")
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded AI requests, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")
		failed, _ := cmd.Flags().GetBool("failed")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		// Filters apply after the query, so fetch everything when one is set.
		opts := store.QueryOpts{Limit: limit}
		if purpose != "" || failed {
			opts.Limit = 0
		}
		events, err := s.EventRepo().QueryLLMEvents(cmd.Context(), opts)
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}

		var shown []store.LLMRequestEventRecord
		for _, e := range events {
			if purpose != "" && e.Purpose != purpose {
				continue
			}
			if failed && e.Success {
				continue
			}
			shown = append(shown, e)
			if limit > 0 && len(shown) == limit {
				break
			}
		}
		if len(shown) == 0 {
			fmt.Println("No AI requests recorded.")
			return nil
		}

		heading.Printf("%5s  %-16s  %-18s  %-26s  %11s  %7s\n",
			"ID", "When", "Purpose", "Model", "Tokens", "Ms")
		for _, e := range shown {
			status := color.GreenString("ok")
			if !e.Success {
				status = color.RedString("failed")
			}
			fmt.Printf("%5d  %-16s  %-18s  %-26s  %5d/%-5d  %7d  %s\n",
				e.ID,
				e.Timestamp.Local().Format("Jan 02 15:04:05"),
				clip(e.Purpose, 18),
				clip(e.Model, 26),
				e.InputTokens, e.OutputTokens,
				e.LatencyMs,
				status,
			)
		}
		return nil
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show one recorded AI request with its prompt and reply",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid request ID %q", args[0])
		}
		raw, _ := cmd.Flags().GetBool("raw")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		e, err := s.EventRepo().GetLLMEvent(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		if e == nil {
			return fmt.Errorf("no AI request with ID %d", id)
		}

		heading.Printf("Request #%d", e.ID)
		dimmed.Printf("  %s\n", e.Timestamp.Local().Format("2006-01-02 15:04:05"))
		fmt.Printf("  %s / %s, purpose %s\n", e.Provider, e.Model, e.Purpose)
		fmt.Printf("  %d input + %d output tokens in %dms\n", e.InputTokens, e.OutputTokens, e.LatencyMs)
		if !e.Success {
			color.Red("  failed: %s", e.ErrorMessage)
		}

		fmt.Println()
		heading.Println("Prompt")
		fmt.Println(orNone(e.RequestBody))

		fmt.Println()
		heading.Println("Reply")
		if raw || e.ResponseBody == "" || strings.HasPrefix(strings.TrimSpace(e.ResponseBody), "{") {
			fmt.Println(orNone(e.ResponseBody))
			return nil
		}
		return printMarkdown(e.ResponseBody)
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize token usage and estimated cost",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		repo := s.EventRepo()
		byPurpose, err := repo.LLMUsageByPurpose(cmd.Context())
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}
		if len(byPurpose) == 0 {
			fmt.Println("No AI usage recorded yet.")
			return nil
		}

		heading.Printf("%-18s  %6s  %9s  %9s  %8s\n", "Purpose", "Calls", "Input", "Output", "Avg ms")
		var calls, in, out int
		for _, u := range byPurpose {
			fmt.Printf("%-18s  %6d  %9d  %9d  %8d\n",
				clip(u.Purpose, 18), u.Calls, u.InputTokens, u.OutputTokens, u.AvgLatencyMs)
			calls += u.Calls
			in += u.InputTokens
			out += u.OutputTokens
		}
		dimmed.Printf("%-18s  %6d  %9d  %9d\n", "all", calls, in, out)

		byModel, err := repo.LLMUsageByModel(cmd.Context())
		if err != nil {
			return fmt.Errorf("query model usage: %w", err)
		}

		fmt.Println()
		heading.Printf("%-30s  %6s  %10s\n", "Model", "Calls", "Est. cost")
		var total float64
		var unpriced []string
		for _, u := range byModel {
			cost := llm.LookupCost(u.Model)
			if cost == nil {
				unpriced = append(unpriced, u.Model)
				fmt.Printf("%-30s  %6d  %10s\n", clip(u.Model, 30), u.Calls, "n/a")
				continue
			}
			usd := cost.Cost(u.InputTokens, u.OutputTokens)
			total += usd
			fmt.Printf("%-30s  %6d  %10s\n", clip(u.Model, 30), u.Calls, llm.FormatUSD(usd))
		}
		dimmed.Printf("%-30s  %6s  %10s\n", "all", "", llm.FormatUSD(total))
		if len(unpriced) > 0 {
			fmt.Printf("\nNo pricing for %s; the total leaves them out.\n", strings.Join(unpriced, ", "))
		}
		return nil
	},
}

func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}

func orNone(s string) string {
	if s == "" {
		return "(not captured)"
	}
	return s
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Maximum number of requests to show (0 for all)")
	llmListCmd.Flags().StringP("purpose", "p", "", "Only show requests with this purpose, e.g. daily-insight")
	llmListCmd.Flags().Bool("failed", false, "Only show failed requests")
	llmViewCmd.Flags().Bool("raw", false, "Print the reply without markdown rendering")

	llmCmd.AddCommand(llmListCmd, llmViewCmd, llmStatsCmd)
}
