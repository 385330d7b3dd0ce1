package bump

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/saadjs/bump-cli/internal/pregnancy"
	"github.com/saadjs/bump-cli/internal/service"
	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage the pregnancy profile (LMP or due date)",
}

var (
	profileName        string
	profileLMP         string
	profileDueDate     string
	profilePremium     bool
	profileStartWeight float64
	profileUnit        string
	profileJSON        bool
)

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set last menstrual period or due date",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			in := service.SetProfileInput{
				DisplayName: profileName,
				LMPDate:     profileLMP,
				DueDate:     profileDueDate,
				Premium:     profilePremium,
				StartWeight: profileStartWeight,
				Unit:        profileUnit,
			}
			if !cmd.Flags().Changed("premium") {
				existing, err := service.GetProfile(sqldb)
				if err != nil {
					return err
				}
				if existing != nil {
					in.Premium = existing.Premium
				}
			}
			if err := service.SetProfile(sqldb, in); err != nil {
				return err
			}
			p, err := service.GetProfile(sqldb)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved profile: LMP %s, due %s\n", p.LMPDate.Format("2006-01-02"), p.DueDate.Format("2006-01-02"))
			return nil
		})
	},
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the pregnancy profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			p, err := service.GetProfile(sqldb)
			if err != nil {
				return err
			}
			if profileJSON {
				return writeJSON(cmd.OutOrStdout(), p)
			}
			out := cmd.OutOrStdout()
			if p == nil {
				fmt.Fprintln(out, "No profile set. Run `bump profile set --lmp YYYY-MM-DD`.")
				return nil
			}
			if strings.TrimSpace(p.DisplayName) != "" {
				fmt.Fprintf(out, "Name: %s\n", p.DisplayName)
			}
			if p.LMPDate != nil {
				fmt.Fprintf(out, "LMP: %s\n", p.LMPDate.Format("2006-01-02"))
			}
			if p.DueDate != nil {
				fmt.Fprintf(out, "Due date: %s\n", p.DueDate.Format("2006-01-02"))
			}
			fmt.Fprintf(out, "Premium: %t (look-ahead %d days)\n", p.Premium, pregnancy.LookAheadFor(p.Premium, cfg.Navigation))
			if p.StartWeightKg != nil {
				unit := profileUnit
				if unit == "" {
					unit = "kg"
				}
				w, err := service.FormatWeight(*p.StartWeightKg, unit, 1)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Start weight: %s %s\n", w, unit)
			}
			return nil
		})
	},
}

var profilePremiumCmd = &cobra.Command{
	Use:       "premium <on|off>",
	Short:     "Toggle premium look-ahead navigation",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"on", "off"},
	RunE: func(cmd *cobra.Command, args []string) error {
		var on bool
		switch strings.ToLower(strings.TrimSpace(args[0])) {
		case "on":
			on = true
		case "off":
			on = false
		default:
			return fmt.Errorf("invalid value %q (use on or off)", args[0])
		}
		return withDB(func(sqldb *sql.DB) error {
			if err := service.SetPremium(sqldb, on); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Premium %s\n", args[0])
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileSetCmd, profileShowCmd, profilePremiumCmd)

	profileSetCmd.Flags().StringVar(&profileName, "name", "", "Display name")
	profileSetCmd.Flags().StringVar(&profileLMP, "lmp", "", "First day of last menstrual period (YYYY-MM-DD)")
	profileSetCmd.Flags().StringVar(&profileDueDate, "due-date", "", "Estimated due date (YYYY-MM-DD)")
	profileSetCmd.Flags().BoolVar(&profilePremium, "premium", false, "Enable premium look-ahead navigation")
	profileSetCmd.Flags().Float64Var(&profileStartWeight, "start-weight", 0, "Pre-pregnancy weight")
	profileSetCmd.Flags().StringVar(&profileUnit, "unit", "kg", "Weight unit (kg|lb)")
	profileSetCmd.MarkFlagsMutuallyExclusive("lmp", "due-date")

	profileShowCmd.Flags().BoolVar(&profileJSON, "json", false, "Print profile as JSON")
	profileShowCmd.Flags().StringVar(&profileUnit, "unit", "kg", "Weight unit for display (kg|lb)")
}
