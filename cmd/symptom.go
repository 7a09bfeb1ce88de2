package cmd

import (
	"fmt"
	"slices"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/curanostics/curanostics/internal/symptoms"
)

var symptomCmd = &cobra.Command{
	Use:   "symptom",
	Short: "Record and review daily symptom check-ins",
}

var symptomLogCmd = &cobra.Command{
	Use:   "log",
	Short: "Record a check-in (each score 0-10)",
	RunE: func(cmd *cobra.Command, args []string) error {
		entry := symptoms.DefaultEntry()
		flags := cmd.Flags()
		entry.Fatigue, _ = flags.GetInt("fatigue")
		entry.Nausea, _ = flags.GetInt("nausea")
		entry.Pain, _ = flags.GetInt("pain")
		entry.Mood, _ = flags.GetInt("mood")
		entry.Notes, _ = flags.GetString("notes")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		log, err := symptoms.NewService(s.EventRepo(), logger).Log(cmd.Context(), entry)
		if err != nil {
			return err
		}
		fmt.Printf("Logged %s for %s.\n", log.ID, log.Date)
		return nil
	},
}

var symptomListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent check-ins with averages",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		logs, err := symptoms.NewService(s.EventRepo(), logger).History(cmd.Context(), limit)
		if err != nil {
			return err
		}
		if len(logs) == 0 {
			fmt.Println("No symptom check-ins recorded yet.")
			return nil
		}

		fmt.Printf("%-12s  %7s  %6s  %4s  %4s  %s\n", "Date", "Fatigue", "Nausea", "Pain", "Mood", "Notes")
		fmt.Println(strings.Repeat("─", 72))
		for _, l := range slices.Backward(logs) {
			fmt.Printf("%-12s  %7s  %6s  %4s  %4s  %s\n", l.Date,
				scoreColor(l.Fatigue, false), scoreColor(l.Nausea, false),
				scoreColor(l.Pain, false), scoreColor(l.Mood, true), l.Notes)
		}

		avg := symptoms.Trend(logs, 0)
		fmt.Println(strings.Repeat("─", 72))
		fmt.Printf("%-12s  %7.1f  %6.1f  %4.1f  %4.1f\n", fmt.Sprintf("avg of %d", avg.Count),
			avg.Fatigue, avg.Nausea, avg.Pain, avg.Mood)
		return nil
	},
}

// scoreColor renders a 0-10 score, red when severe. Mood is inverted.
func scoreColor(v int, inverted bool) string {
	severity := v
	if inverted {
		severity = symptoms.MaxScore - v
	}
	s := fmt.Sprint(v)
	switch {
	case severity >= 7:
		return color.RedString(s)
	case severity >= 4:
		return color.YellowString(s)
	default:
		return s
	}
}

func init() {
	d := symptoms.DefaultEntry()
	symptomLogCmd.Flags().Int("fatigue", d.Fatigue, "Fatigue, 0 (none) to 10 (exhausted)")
	symptomLogCmd.Flags().Int("nausea", d.Nausea, "Nausea, 0 (none) to 10 (severe)")
	symptomLogCmd.Flags().Int("pain", d.Pain, "Pain, 0 (none) to 10 (worst)")
	symptomLogCmd.Flags().Int("mood", d.Mood, "Mood, 0 (low) to 10 (great)")
	symptomLogCmd.Flags().String("notes", "", "Free-text notes")

	symptomListCmd.Flags().IntP("limit", "n", 14, "Number of check-ins to show (0 for all)")

	symptomCmd.AddCommand(symptomLogCmd)
	symptomCmd.AddCommand(symptomListCmd)
}
