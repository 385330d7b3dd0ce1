package bump

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/saadjs/bump-cli/internal/service"
	"github.com/spf13/cobra"
)

var doctorFix bool

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run data integrity checks",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			now := time.Now()
			report, err := service.RunDoctor(sqldb, doctorFix, now)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Profile set: %t\n", !report.MissingProfile)
			fmt.Fprintf(out, "LMP in the future: %t\n", report.FutureLMP)
			fmt.Fprintf(out, "Implausible weight rows: %d\n", report.ImplausibleWeights)
			fmt.Fprintf(out, "Duplicate weight rows: %d\n", report.DuplicateWeightRows)
			fmt.Fprintf(out, "Empty content rows: %d\n", report.EmptyContentRows)
			if doctorFix {
				fmt.Fprintf(out, "Fixed rows: %d\n", report.FixedRows)
				report, err = service.RunDoctor(sqldb, false, now)
				if err != nil {
					return err
				}
			}
			if report.Problems() {
				return fmt.Errorf("doctor found integrity issues")
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "Remove duplicate weight rows and empty content rows")
}
