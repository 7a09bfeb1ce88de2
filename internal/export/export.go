// Package export writes survey and symptom history to an Excel workbook.
package export

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/curanostics/curanostics/internal/patient"
	"github.com/curanostics/curanostics/internal/screening"
)

// Sheet names in the exported workbook.
const (
	SurveySheet  = "Surveys"
	SymptomSheet = "Symptoms"
)

// SurveyHeader is the header row of the survey sheet.
var SurveyHeader = []string{
	"ID", "Type", "Date", "Score", "Interpretation", "Requested By", "Details",
}

// SymptomHeader is the header row of the symptom sheet.
var SymptomHeader = []string{
	"ID", "Date", "Fatigue", "Nausea", "Pain", "Mood", "Notes",
}

var surveyWidths = []float64{42, 10, 12, 8, 32, 14, 60}
var symptomWidths = []float64{42, 12, 9, 9, 9, 9, 48}

// WriteWorkbook writes an .xlsx file with one sheet per history to w.
func WriteWorkbook(w io.Writer, surveys []screening.SurveyResult, symptoms []patient.SymptomLog) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SurveySheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(SymptomSheet); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#FCE4EC"},
			Pattern: 1,
		},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	surveyRows := make([][]any, len(surveys))
	for i, s := range surveys {
		surveyRows[i] = []any{
			s.ID, string(s.Type), s.Date, s.Score,
			s.Interpretation, s.RequestedBy, FormatDetails(s.Details),
		}
	}
	if err := writeSheet(f, SurveySheet, SurveyHeader, surveyWidths, header, surveyRows); err != nil {
		return err
	}

	symptomRows := make([][]any, len(symptoms))
	for i, l := range symptoms {
		symptomRows[i] = []any{l.ID, l.Date, l.Fatigue, l.Nausea, l.Pain, l.Mood, l.Notes}
	}
	if err := writeSheet(f, SymptomSheet, SymptomHeader, symptomWidths, header, symptomRows); err != nil {
		return err
	}

	f.SetActiveSheet(0)
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, header []string, widths []float64, style int, rows [][]any) error {
	cells := make([]any, len(header))
	for i, h := range header {
		cells[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &cells); err != nil {
		return fmt.Errorf("write %s header: %w", sheet, err)
	}

	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
		return fmt.Errorf("style %s header: %w", sheet, err)
	}

	for i, w := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, col, col, w); err != nil {
			return fmt.Errorf("set %s column width: %w", sheet, err)
		}
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+2, err)
		}
	}
	return nil
}

// FormatDetails renders details as "key: value" pairs sorted by key.
func FormatDetails(details map[string]string) string {
	keys := slices.Sorted(maps.Keys(details))
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + details[k]
	}
	return strings.Join(parts, "; ")
}
