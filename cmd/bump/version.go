package bump

import (
	"fmt"
	"runtime"

	"github.com/saadjs/bump-cli/internal/db"
	"github.com/spf13/cobra"
)

// Set with -ldflags "-X github.com/saadjs/bump-cli/cmd/bump.version=...".
var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version/build metadata",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "bump %s\n", version)
		fmt.Fprintf(cmd.OutOrStdout(), "commit: %s\n", commit)
		fmt.Fprintf(cmd.OutOrStdout(), "built: %s\n", buildDate)
		fmt.Fprintf(cmd.OutOrStdout(), "schema: v%d\n", db.LatestVersion())
		fmt.Fprintf(cmd.OutOrStdout(), "go: %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
