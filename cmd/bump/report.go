package bump

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/saadjs/bump-cli/internal/report"
	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate printable reports",
}

var (
	reportOut  string
	reportDate string
	reportUnit string
)

var reportPDFCmd = &cobra.Command{
	Use:   "pdf",
	Short: "Write a PDF with the 40-week size table and weekly weight gain",
	RunE: func(cmd *cobra.Command, args []string) error {
		if strings.TrimSpace(reportOut) == "" {
			return fmt.Errorf("--out is required")
		}
		ref, err := parseDateOrToday(reportDate)
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			data, err := report.Collect(sqldb, ref, reportUnit)
			if err != nil {
				return err
			}
			if err := report.WriteFile(reportOut, data); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "PDF report generated: %s\n", reportOut)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.AddCommand(reportPDFCmd)
	reportPDFCmd.Flags().StringVar(&reportOut, "out", "", "Output PDF path")
	reportPDFCmd.Flags().StringVar(&reportDate, "date", "", "Reference date (YYYY-MM-DD, default today)")
	reportPDFCmd.Flags().StringVar(&reportUnit, "unit", "kg", "Weight unit (kg|lb)")
}
