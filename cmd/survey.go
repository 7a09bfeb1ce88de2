package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/curanostics/curanostics/internal/export"
	"github.com/curanostics/curanostics/internal/screening"
	"github.com/curanostics/curanostics/internal/surveys"
)

var surveyCmd = &cobra.Command{
	Use:   "survey",
	Short: "Inspect completed screenings",
}

var surveyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List completed screenings, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		typ, _ := cmd.Flags().GetString("type")
		inst, err := parseInstrument(typ)
		if err != nil {
			return err
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		results, err := surveys.NewService(s.EventRepo(), logger).History(cmd.Context(), inst, limit)
		if err != nil {
			return err
		}
		if len(results) == 0 {
			fmt.Println("No screenings recorded yet.")
			return nil
		}

		bold := color.New(color.Bold).SprintFunc()
		fmt.Printf("%-12s  %-6s  %5s  %s\n", bold("Date"), bold("Type"), bold("Score"), bold("Interpretation"))
		fmt.Println(strings.Repeat("─", 72))
		for _, r := range results {
			fmt.Printf("%-12s  %-6s  %5d  %s\n", r.Date, r.Type, r.Score, severityColor(r).Sprint(r.Interpretation))
			if verbose, _ := cmd.Flags().GetBool("details"); verbose && len(r.Details) > 0 {
				fmt.Printf("%22s%s\n", "", color.New(color.Faint).Sprint(export.FormatDetails(r.Details)))
			}
		}
		return nil
	},
}

var surveyLatestCmd = &cobra.Command{
	Use:   "latest <GAD-7|SDOH>",
	Short: "Show the most recent result of an instrument",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inst, err := parseInstrument(args[0])
		if err != nil {
			return err
		}
		if inst == "" {
			return fmt.Errorf("instrument is required")
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		r, ok, err := surveys.NewService(s.EventRepo(), logger).Latest(cmd.Context(), inst)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Printf("No %s screening recorded yet.\n", inst)
			return nil
		}

		fmt.Printf("ID:              %s\n", r.ID)
		fmt.Printf("Date:            %s\n", r.Date)
		fmt.Printf("Score:           %d\n", r.Score)
		fmt.Printf("Interpretation:  %s\n", severityColor(r).Sprint(r.Interpretation))
		if r.RequestedBy != "" {
			fmt.Printf("Requested by:    %s\n", r.RequestedBy)
		}
		if len(r.Details) > 0 {
			fmt.Printf("Details:         %s\n", export.FormatDetails(r.Details))
		}
		return nil
	},
}

// parseInstrument accepts instrument names case-insensitively. Empty
// matches every instrument.
func parseInstrument(s string) (screening.Instrument, error) {
	switch strings.ToUpper(strings.ReplaceAll(s, "-", "")) {
	case "":
		return "", nil
	case "GAD7":
		return screening.InstrumentGAD7, nil
	case "SDOH":
		return screening.InstrumentSDOH, nil
	default:
		return "", fmt.Errorf("unknown instrument %q (want GAD-7 or SDOH)", s)
	}
}

// severityColor highlights results that call for follow-up.
func severityColor(r screening.SurveyResult) *color.Color {
	switch {
	case r.Type == screening.InstrumentGAD7 && r.Score >= 15,
		r.Type == screening.InstrumentSDOH && strings.Contains(r.Interpretation, "High Safety Risk"):
		return color.New(color.FgRed, color.Bold)
	case r.Type == screening.InstrumentGAD7 && r.Score >= 10,
		r.Type == screening.InstrumentSDOH && r.Score > 0:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgGreen)
	}
}

func init() {
	surveyListCmd.Flags().IntP("limit", "n", 20, "Number of screenings to show (0 for all)")
	surveyListCmd.Flags().StringP("type", "t", "", "Filter by instrument (GAD-7 or SDOH)")
	surveyListCmd.Flags().BoolP("details", "d", false, "Show result details")

	surveyCmd.AddCommand(surveyListCmd)
	surveyCmd.AddCommand(surveyLatestCmd)
}
