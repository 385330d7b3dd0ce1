package bump

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/saadjs/bump-cli/internal/pregnancy"
	"github.com/saadjs/bump-cli/internal/render"
	"github.com/saadjs/bump-cli/internal/service"
	"github.com/spf13/cobra"
)

var weightCmd = &cobra.Command{
	Use:   "weight",
	Short: "Track weight and pregnancy weight gain",
}

var (
	weightValue float64
	weightUnit  string
	weightDate  string
	weightTime  string
	weightNotes string
)

var weightAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add weight entry",
	RunE: func(cmd *cobra.Command, args []string) error {
		recordedAt, err := parseDateTimeOrNow(weightDate, weightTime)
		if err != nil {
			return err
		}
		in := service.WeightEntryInput{Weight: weightValue, Unit: weightUnit, RecordedAt: recordedAt, Notes: weightNotes}
		return withDB(func(sqldb *sql.DB) error {
			id, err := service.AddWeightEntry(sqldb, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added weight entry %d\n", id)
			return nil
		})
	},
}

var (
	weightListDate string
	weightFrom     string
	weightTo       string
	weightLimit    int
	weightOutUnit  string
)

var weightListCmd = &cobra.Command{
	Use:   "list",
	Short: "List weight entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		filter := service.WeightEntryFilter{Date: weightListDate, FromDate: weightFrom, ToDate: weightTo, Limit: weightLimit}
		return withDB(func(sqldb *sql.DB) error {
			items, err := service.ListWeightEntries(sqldb, filter)
			if err != nil {
				return err
			}
			unit := weightOutUnit
			if unit == "" {
				unit = "kg"
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tDATE\tWEIGHT\tUNIT\tNOTES")
			for _, e := range items {
				w, err := service.FormatWeight(e.WeightKg, unit, 2)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\t%s\t%s\n", e.ID, e.RecordedAt.Local().Format("2006-01-02 15:04"), w, unit, e.Notes)
			}
			return nil
		})
	},
}

var weightUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update weight entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("weight entry id", args[0])
		if err != nil {
			return err
		}
		recordedAt, err := parseDateTime(weightDate, weightTime)
		if err != nil {
			return err
		}
		in := service.UpdateWeightEntryInput{
			ID:               id,
			WeightEntryInput: service.WeightEntryInput{Weight: weightValue, Unit: weightUnit, RecordedAt: recordedAt, Notes: weightNotes},
		}
		return withDB(func(sqldb *sql.DB) error {
			if err := service.UpdateWeightEntry(sqldb, in); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated weight entry %d\n", id)
			return nil
		})
	},
}

var weightDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete weight entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("weight entry id", args[0])
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			if err := service.DeleteWeightEntry(sqldb, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted weight entry %d\n", id)
			return nil
		})
	},
}

var (
	weightStatusDate   string
	weightStatusWeekly bool
	weightStatusJSON   bool
)

var weightStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Classify weight gain against the current trimester band",
	RunE: func(cmd *cobra.Command, args []string) error {
		ref, err := parseDateOrToday(weightStatusDate)
		if err != nil {
			return err
		}
		return withDB(func(sqldb *sql.DB) error {
			profile, err := service.GetProfile(sqldb)
			if err != nil {
				return err
			}
			opts := render.Options{Unit: weightOutUnit}
			if weightStatusWeekly {
				weeks, err := service.WeeklyWeights(sqldb, profile)
				if err != nil {
					return err
				}
				if weightStatusJSON {
					return writeJSON(cmd.OutOrStdout(), weeks)
				}
				out, err := render.WeeklyTable(weeks, opts)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), out)
				return nil
			}

			var lmp *time.Time
			if profile != nil {
				lmp = profile.LMPDate
			}
			trimester := pregnancy.TimelineForDay(pregnancy.DayFromProfile(lmp, ref)).Trimester
			progress, err := service.WeightStatus(sqldb, profile, trimester)
			if err != nil {
				return err
			}
			if weightStatusJSON {
				return writeJSON(cmd.OutOrStdout(), progress)
			}
			out, err := render.Weight(progress, opts)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(weightCmd)
	weightCmd.AddCommand(weightAddCmd, weightListCmd, weightUpdateCmd, weightDeleteCmd, weightStatusCmd)

	for _, c := range []*cobra.Command{weightAddCmd, weightUpdateCmd} {
		c.Flags().Float64Var(&weightValue, "weight", 0, "Weight value")
		c.Flags().StringVar(&weightUnit, "unit", "kg", "Weight unit (kg|lb)")
		c.Flags().StringVar(&weightDate, "date", "", "Date (YYYY-MM-DD)")
		c.Flags().StringVar(&weightTime, "time", "", "Time (HH:MM)")
		c.Flags().StringVar(&weightNotes, "notes", "", "Optional notes")
		_ = c.MarkFlagRequired("weight")
	}

	weightListCmd.Flags().StringVar(&weightListDate, "date", "", "Date filter (YYYY-MM-DD)")
	weightListCmd.Flags().StringVar(&weightFrom, "from", "", "Start date (YYYY-MM-DD)")
	weightListCmd.Flags().StringVar(&weightTo, "to", "", "End date (YYYY-MM-DD)")
	weightListCmd.Flags().IntVar(&weightLimit, "limit", 100, "Max rows")
	weightListCmd.Flags().StringVar(&weightOutUnit, "unit", "kg", "Display unit (kg|lb)")

	weightStatusCmd.Flags().StringVar(&weightStatusDate, "date", "", "Reference date (YYYY-MM-DD, default today)")
	weightStatusCmd.Flags().BoolVar(&weightStatusWeekly, "weekly", false, "Show gain per pregnancy week")
	weightStatusCmd.Flags().BoolVar(&weightStatusJSON, "json", false, "Print as JSON")
	weightStatusCmd.Flags().StringVar(&weightOutUnit, "unit", "kg", "Display unit (kg|lb)")
}
