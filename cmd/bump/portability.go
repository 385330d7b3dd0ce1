package bump

import (
	"database/sql"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/saadjs/bump-cli/internal/service"
	"github.com/spf13/cobra"
)

var (
	exportFormat string
	exportOut    string
	importFormat string
	importIn     string
	importMode   string
	importDryRun bool
)

var weightCSVHeader = []string{"recorded_at", "weight_kg", "notes"}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export local data (json snapshot or csv weights)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if strings.TrimSpace(exportOut) == "" {
			return fmt.Errorf("--out is required")
		}
		return withDB(func(sqldb *sql.DB) error {
			data, err := service.ExportDataSnapshot(sqldb)
			if err != nil {
				return err
			}
			switch strings.ToLower(strings.TrimSpace(exportFormat)) {
			case "json":
				b, err := json.MarshalIndent(data, "", "  ")
				if err != nil {
					return fmt.Errorf("marshal export json: %w", err)
				}
				if err := os.WriteFile(exportOut, b, 0o644); err != nil {
					return fmt.Errorf("write export file: %w", err)
				}
			case "csv":
				f, err := os.Create(exportOut)
				if err != nil {
					return fmt.Errorf("create export csv: %w", err)
				}
				defer f.Close()
				w := csv.NewWriter(f)
				if err := w.Write(weightCSVHeader); err != nil {
					return fmt.Errorf("write export csv header: %w", err)
				}
				for _, e := range data.Weights {
					if err := w.Write([]string{e.RecordedAt, strconv.FormatFloat(e.WeightKg, 'f', -1, 64), e.Notes}); err != nil {
						return fmt.Errorf("write export csv row: %w", err)
					}
				}
				w.Flush()
				if err := w.Error(); err != nil {
					return fmt.Errorf("flush export csv: %w", err)
				}
			default:
				return fmt.Errorf("unsupported --format %q (use json or csv)", exportFormat)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported data to %s (export %s)\n", exportOut, data.ExportID)
			return nil
		})
	},
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import data from a json snapshot or csv weights",
	RunE: func(cmd *cobra.Command, args []string) error {
		if strings.TrimSpace(importIn) == "" {
			return fmt.Errorf("--in is required")
		}
		mode, err := service.ParseImportMode(importMode)
		if err != nil {
			return err
		}
		var payload *service.ExportData
		switch strings.ToLower(strings.TrimSpace(importFormat)) {
		case "json":
			raw, err := os.ReadFile(importIn)
			if err != nil {
				return fmt.Errorf("read import file: %w", err)
			}
			payload = &service.ExportData{}
			if err := json.Unmarshal(raw, payload); err != nil {
				return fmt.Errorf("parse import json: %w", err)
			}
		case "csv":
			payload, err = readWeightCSV(importIn)
			if err != nil {
				return err
			}
		default:
			return fmt.Errorf("unsupported --format %q (use json or csv)", importFormat)
		}
		return withDB(func(sqldb *sql.DB) error {
			report, err := service.ImportDataSnapshot(sqldb, payload, service.ImportOptions{Mode: mode, DryRun: importDryRun})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Import report: inserted=%d skipped=%d conflicts=%d\n", report.Inserted, report.Skipped, report.Conflicts)
			for _, w := range report.Warnings {
				fmt.Fprintf(cmd.OutOrStdout(), "warning: %s\n", w)
			}
			if importDryRun {
				fmt.Fprintf(cmd.OutOrStdout(), "Dry-run import validated %s\n", importIn)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported data from %s\n", importIn)
			return nil
		})
	},
}

func readWeightCSV(path string) (*service.ExportData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open import csv: %w", err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read import csv: %w", err)
	}
	if len(records) <= 1 {
		return nil, fmt.Errorf("import csv contains no data rows")
	}
	out := &service.ExportData{}
	for i := 1; i < len(records); i++ {
		row := records[i]
		if len(row) != len(weightCSVHeader) {
			return nil, fmt.Errorf("csv row %d has %d columns, expected %d", i+1, len(row), len(weightCSVHeader))
		}
		recorded, err := parseCSVTime(row[0])
		if err != nil {
			return nil, fmt.Errorf("csv row %d recorded_at: %w", i+1, err)
		}
		kg, err := strconv.ParseFloat(strings.TrimSpace(row[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("csv row %d weight_kg: invalid number %q", i+1, row[1])
		}
		out.Weights = append(out.Weights, service.ExportWeight{RecordedAt: recorded.Format(time.RFC3339), WeightKg: kg, Notes: row[2]})
	}
	return out, nil
}

func parseCSVTime(value string) (t time.Time, err error) {
	layouts := []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02 15:04", "2006-01-02"}
	for _, l := range layouts {
		t, err = time.ParseInLocation(l, strings.TrimSpace(value), time.Local)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", value)
}

func init() {
	rootCmd.AddCommand(exportCmd, importCmd)
	exportCmd.Flags().StringVar(&exportFormat, "format", "json", "Export format: json or csv")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "Output file path")
	importCmd.Flags().StringVar(&importFormat, "format", "json", "Import format: json or csv")
	importCmd.Flags().StringVar(&importIn, "in", "", "Input file path")
	importCmd.Flags().StringVar(&importMode, "mode", "fail", "Conflict handling: fail|skip|replace")
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Validate and report without writing data")
}
