package cmd

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/curanostics/curanostics/internal/insights"
	"github.com/curanostics/curanostics/internal/screens/insight"
	"github.com/curanostics/curanostics/internal/surveys"
	"github.com/curanostics/curanostics/internal/symptoms"
)

// insightKinds maps command-line names to insight kinds.
var insightKinds = map[string]insight.Kind{
	"summary":    insight.KindClinicalSummary,
	"trends":     insight.KindSymptomTrends,
	"labs":       insight.KindLabSummary,
	"questions":  insight.KindVisitQuestions,
	"engagement": insight.KindEngagement,
	"diagnosis":  insight.KindExplainDiagnosis,
	"medication": insight.KindExplainMedication,
}

func insightKindNames() []string {
	names := make([]string, 0, len(insightKinds)+1)
	for n := range insightKinds {
		names = append(names, n)
	}
	names = append(names, "daily")
	slices.Sort(names)
	return names
}

var insightCmd = &cobra.Command{
	Use:   "insight <kind>",
	Short: "Generate an AI insight from the patient record",
	Long: "Generate an AI insight from the patient record.\n\nKinds: " +
		strings.Join(insightKindNames(), ", "),
	Args:      cobra.ExactArgs(1),
	ValidArgs: insightKindNames(),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		name := strings.ToLower(args[0])
		kind, ok := insightKinds[name]
		if !ok && name != "daily" {
			return fmt.Errorf("unknown insight %q (want one of %s)", args[0], strings.Join(insightKindNames(), ", "))
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		repo := s.EventRepo()
		svc, err := newInsights(ctx, repo)
		if err != nil {
			return err
		}

		var md string
		if name == "daily" {
			d := svc.DailyInsight(ctx)
			md = fmt.Sprintf("# %s\n\n%s\n", d.Title, d.Content)
		} else {
			p, err := loadProfile(ctx, surveys.NewService(repo, logger), symptoms.NewService(repo, logger))
			if err != nil {
				return err
			}
			md = insight.Generate(ctx, svc, kind, p)
		}
		return printMarkdown(md)
	},
}

var insightExplainCmd = &cobra.Command{
	Use:   "explain <term>",
	Short: "Explain a medical term in plain language",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		kindFlag, _ := cmd.Flags().GetString("kind")
		kind := insights.ConceptKind(kindFlag)
		switch kind {
		case insights.KindCondition, insights.KindMedication, insights.KindGeneral:
		default:
			return fmt.Errorf("invalid --kind %q (want condition, medication or general)", kindFlag)
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		repo := s.EventRepo()
		svc, err := newInsights(ctx, repo)
		if err != nil {
			return err
		}
		p, err := loadProfile(ctx, surveys.NewService(repo, logger), symptoms.NewService(repo, logger))
		if err != nil {
			return err
		}

		e := svc.ExplainConcept(ctx, strings.Join(args, " "), kind, p)
		return printMarkdown(fmt.Sprintf("# %s\n\n%s\n\n**Next step:** %s\n", e.Title, e.Explanation, e.ActionItem))
	},
}

// printMarkdown renders md for the terminal, printing the source if
// rendering fails.
func printMarkdown(md string) error {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		fmt.Println(md)
		return nil
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Println(md)
		return nil
	}
	fmt.Print(out)
	return nil
}

func init() {
	insightExplainCmd.Flags().StringP("kind", "k", string(insights.KindGeneral), "Term kind: condition, medication or general")
	insightCmd.AddCommand(insightExplainCmd)
}
