package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/curanostics/curanostics/internal/export"
	"github.com/curanostics/curanostics/internal/patient"
	"github.com/curanostics/curanostics/internal/surveys"
	"github.com/curanostics/curanostics/internal/symptoms"
)

const defaultExportFile = "curanostics-export.xlsx"

var exportCmd = &cobra.Command{
	Use:   "export [file.xlsx]",
	Short: "Export screenings and symptom check-ins to an Excel workbook",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		path := defaultExportFile
		if len(args) == 1 {
			path = args[0]
		}
		withDemo, _ := cmd.Flags().GetBool("include-demo")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		repo := s.EventRepo()
		sv := surveys.NewService(repo, logger)
		sy := symptoms.NewService(repo, logger)

		var p patient.Profile
		if withDemo {
			p, err = loadProfile(ctx, sv, sy)
			if err != nil {
				return err
			}
		} else {
			if p, err = sv.Restore(ctx, p); err != nil {
				return err
			}
			if p, err = sy.Restore(ctx, p); err != nil {
				return err
			}
		}

		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create %s: %w", path, err)
		}
		if err := export.WriteWorkbook(f, p.Surveys, p.Symptoms); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("close %s: %w", path, err)
		}

		logger.Info("exported workbook", zap.String("path", path),
			zap.Int("surveys", len(p.Surveys)), zap.Int("symptoms", len(p.Symptoms)))
		fmt.Printf("Wrote %d screenings and %d check-ins to %s\n", len(p.Surveys), len(p.Symptoms), path)
		return nil
	},
}

func init() {
	exportCmd.Flags().Bool("include-demo", false, "Include the seeded demo records")
}
