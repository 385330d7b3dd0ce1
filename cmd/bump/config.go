package bump

import (
	"database/sql"
	"fmt"
	"sort"

	"github.com/saadjs/bump-cli/internal/service"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage bump local configuration",
}

var (
	cfgBands      []string
	cfgResetBands []int
)

var configSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set configuration values",
	Example: `  bump config set --band 2=4,8
  bump config set --band 1=0.5,2 --band 3=8,14
  bump config set --reset-band 2`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			updates := 0
			for _, spec := range cfgBands {
				trimester, band, err := service.ParseBandSpec(spec)
				if err != nil {
					return err
				}
				if err := service.SetGainBand(sqldb, trimester, band); err != nil {
					return err
				}
				updates++
			}
			for _, trimester := range cfgResetBands {
				if trimester < 1 || trimester > 3 {
					return fmt.Errorf("trimester must be 1, 2 or 3")
				}
				if err := service.DeleteConfig(sqldb, service.GainBandKey(trimester)); err != nil {
					return err
				}
				updates++
			}
			if updates == 0 {
				return fmt.Errorf("set at least one flag")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %d config value(s)\n", updates)
			return nil
		})
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			stored, err := service.ListConfig(sqldb)
			if err != nil {
				return err
			}
			bands, err := service.GainBands(sqldb)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "KEY\tVALUE")
			for t := 1; t <= 3; t++ {
				b := bands.For(t)
				fmt.Fprintf(out, "%s\t%g,%g\n", service.GainBandKey(t), b.Min, b.Max)
			}
			keys := make([]string, 0, len(stored))
			for k := range stored {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				if isBandKey(k) {
					continue
				}
				fmt.Fprintf(out, "%s\t%s\n", k, stored[k])
			}
			fmt.Fprintf(out, "navigation.free_look_ahead\t%d\n", cfg.Navigation.Free)
			fmt.Fprintf(out, "navigation.premium_look_ahead\t%d\n", cfg.Navigation.Premium)
			return nil
		})
	},
}

func isBandKey(k string) bool {
	for t := 1; t <= 3; t++ {
		if k == service.GainBandKey(t) {
			return true
		}
	}
	return false
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configSetCmd, configGetCmd)

	configSetCmd.Flags().StringArrayVar(&cfgBands, "band", nil, "Weight-gain band as TRIMESTER=MIN,MAX in kg (repeatable)")
	configSetCmd.Flags().IntSliceVar(&cfgResetBands, "reset-band", nil, "Restore the default band for a trimester (repeatable)")
}
