package bump

import (
	"fmt"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/saadjs/bump-cli/internal/db"
	"github.com/saadjs/bump-cli/internal/service"
	"github.com/spf13/cobra"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Snapshot and restore the pregnancy database",
}

var (
	backupOut      string
	backupDir      string
	backupListJSON bool
	restoreFile    string
	restoreForce   bool
)

// backupDirFor defaults to a backups/ directory next to the database.
func backupDirFor(dbFile string) string {
	if backupDir != "" {
		return backupDir
	}
	return filepath.Join(filepath.Dir(dbFile), "backups")
}

func schemaLabel(v int) string {
	if v == 0 {
		return "unknown"
	}
	return fmt.Sprintf("v%d", v)
}

var backupCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Copy the database to a checksummed snapshot",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbFile, err := resolveDBPath()
		if err != nil {
			return err
		}
		out := backupOut
		if out == "" {
			name := fmt.Sprintf("bump-%s.db", time.Now().Format("20060102-150405"))
			out = filepath.Join(backupDirFor(dbFile), name)
		}
		info, err := service.CreateBackup(dbFile, out)
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "Snapshot: %s\n", info.Path)
		fmt.Fprintf(w, "Schema: %s (this build: v%d)\n", schemaLabel(info.SchemaVersion), db.LatestVersion())
		fmt.Fprintf(w, "SHA-256: %s\n", info.Checksum)
		return nil
	},
}

var backupListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show snapshots, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbFile, err := resolveDBPath()
		if err != nil {
			return err
		}
		items, err := service.ListBackups(backupDirFor(dbFile))
		if err != nil {
			return err
		}
		if backupListJSON {
			return writeJSON(cmd.OutOrStdout(), items)
		}
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "SNAPSHOT\tSCHEMA\tBYTES\tTAKEN")
		for _, it := range items {
			fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", it.Path, schemaLabel(it.SchemaVersion), it.SizeBytes, it.CreatedAt.Format(time.RFC3339))
		}
		return tw.Flush()
	},
}

var backupRestoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Replace the database with a snapshot",
	RunE: func(cmd *cobra.Command, args []string) error {
		if restoreFile == "" {
			return fmt.Errorf("--file is required")
		}
		dbFile, err := resolveDBPath()
		if err != nil {
			return err
		}
		if err := service.RestoreBackup(restoreFile, dbFile, restoreForce); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Restored %s into %s\n", restoreFile, dbFile)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(backupCmd)
	backupCmd.AddCommand(backupCreateCmd, backupListCmd, backupRestoreCmd)

	backupCreateCmd.Flags().StringVar(&backupOut, "out", "", "Snapshot file path")
	backupCreateCmd.Flags().StringVar(&backupDir, "dir", "", "Snapshot directory when --out is empty")
	backupListCmd.Flags().StringVar(&backupDir, "dir", "", "Snapshot directory (default: backups/ next to the database)")
	backupListCmd.Flags().BoolVar(&backupListJSON, "json", false, "Print as JSON")
	backupRestoreCmd.Flags().StringVar(&restoreFile, "file", "", "Snapshot .db file")
	backupRestoreCmd.Flags().BoolVar(&restoreForce, "force", false, "Overwrite an existing database")
}
