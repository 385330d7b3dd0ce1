package bump

import (
	"fmt"
	"os"

	"github.com/saadjs/bump-cli/internal/config"
	"github.com/saadjs/bump-cli/internal/logger"
	"github.com/spf13/cobra"
)

var (
	dbPath     string
	configPath string
	cfg        = config.Default()
)

var rootCmd = &cobra.Command{
	Use:           "bump",
	Short:         "bump follows a pregnancy day by day from your terminal",
	Long:          "bump is a local-first pregnancy tracker: timeline and day navigation, baby size by week, weight-gain checks, export and a read-only JSON API.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
		logger.Init(cfg.Log)
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to SQLite database")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to YAML config file")
}
