package bump

import (
	"database/sql"
	"fmt"

	"github.com/saadjs/bump-cli/internal/render"
	"github.com/saadjs/bump-cli/internal/service"
	"github.com/spf13/cobra"
)

var (
	todayDate   string
	todayDay    int
	todayOffset int
	todayJSON   bool
	todayUnit   string
	todayWidth  int
)

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show the pregnancy dashboard for today (or a navigated day)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("day") && cmd.Flags().Changed("offset") {
			return fmt.Errorf("--day cannot be combined with --offset")
		}
		ref, err := parseDateOrToday(todayDate)
		if err != nil {
			return err
		}
		limits := cfg.Navigation
		in := service.DashboardInput{Ref: ref, TargetDay: todayDay, Offset: todayOffset, Limits: &limits}
		return withDB(func(sqldb *sql.DB) error {
			status, err := service.Dashboard(sqldb, in)
			if err != nil {
				return err
			}
			if todayJSON {
				return writeJSON(cmd.OutOrStdout(), status)
			}
			out, err := render.Dashboard(status, render.Options{Unit: todayUnit, Width: todayWidth})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(todayCmd)
	todayCmd.Flags().StringVar(&todayDate, "date", "", "Reference date (YYYY-MM-DD, default today)")
	todayCmd.Flags().IntVar(&todayDay, "day", 0, "Jump to pregnancy day (1-280, 0 = current day)")
	todayCmd.Flags().IntVar(&todayOffset, "offset", 0, "Move relative to the current day (e.g. -3 or 2)")
	todayCmd.Flags().BoolVar(&todayJSON, "json", false, "Print dashboard as JSON")
	todayCmd.Flags().StringVar(&todayUnit, "unit", "kg", "Weight unit for display (kg|lb)")
	todayCmd.Flags().IntVar(&todayWidth, "width", 60, "Dashboard width in columns")
}
