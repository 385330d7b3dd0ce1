package service

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/saadjs/bump-cli/internal/db"
)

const (
	minPlausibleWeightKg = 30
	maxPlausibleWeightKg = 250
)

type BackupInfo struct {
	Path      string    `json:"path"`
	Checksum  string    `json:"checksum"`
	CreatedAt time.Time `json:"created_at"`
	SizeBytes int64     `json:"size_bytes"`
	// SchemaVersion is 0 when the file could not be read as a bump database.
	SchemaVersion int `json:"schema_version"`
}

type DoctorReport struct {
	MissingProfile      bool `json:"missing_profile"`
	FutureLMP           bool `json:"future_lmp"`
	ImplausibleWeights  int  `json:"implausible_weights"`
	DuplicateWeightRows int  `json:"duplicate_weight_rows"`
	EmptyContentRows    int  `json:"empty_content_rows"`
	FixedRows           int  `json:"fixed_rows,omitempty"`
}

// Problems reports whether anything other than a missing profile was found.
func (r DoctorReport) Problems() bool {
	return r.FutureLMP || r.ImplausibleWeights > 0 || r.DuplicateWeightRows > 0 || r.EmptyContentRows > 0
}

func CreateBackup(dbPath, outPath string) (BackupInfo, error) {
	if strings.TrimSpace(dbPath) == "" {
		return BackupInfo{}, fmt.Errorf("db path is required")
	}
	if strings.TrimSpace(outPath) == "" {
		return BackupInfo{}, fmt.Errorf("backup output path is required")
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return BackupInfo{}, fmt.Errorf("create backup directory: %w", err)
	}
	if err := copyFile(dbPath, outPath); err != nil {
		return BackupInfo{}, err
	}
	checksum, err := fileSHA256(outPath)
	if err != nil {
		return BackupInfo{}, err
	}
	if err := os.WriteFile(outPath+".sha256", []byte(checksum+"\n"), 0o644); err != nil {
		return BackupInfo{}, fmt.Errorf("write checksum file: %w", err)
	}
	return backupInfo(outPath, checksum)
}

func RestoreBackup(backupPath, dbPath string, force bool) error {
	if strings.TrimSpace(backupPath) == "" || strings.TrimSpace(dbPath) == "" {
		return fmt.Errorf("backup path and db path are required")
	}
	if !force {
		if _, err := os.Stat(dbPath); err == nil {
			return fmt.Errorf("target db already exists; use --force to overwrite")
		}
	}
	if err := verifyChecksum(backupPath); err != nil {
		return err
	}
	version, err := SchemaVersion(backupPath)
	if err != nil {
		return fmt.Errorf("backup is not a bump database: %w", err)
	}
	if version > db.LatestVersion() {
		return fmt.Errorf("backup schema v%d is newer than this build (v%d); upgrade bump first", version, db.LatestVersion())
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return fmt.Errorf("create db directory: %w", err)
	}
	return copyFile(backupPath, dbPath)
}

func ListBackups(dir string) ([]BackupInfo, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read backup dir: %w", err)
	}
	out := make([]BackupInfo, 0)
	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(f.Name(), ".db") {
			continue
		}
		full := filepath.Join(dir, f.Name())
		checksum := ""
		if b, err := os.ReadFile(full + ".sha256"); err == nil {
			checksum = strings.TrimSpace(string(b))
		}
		info, err := backupInfo(full, checksum)
		if err != nil {
			continue
		}
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func RunDoctor(db *sql.DB, fix bool, now time.Time) (DoctorReport, error) {
	report := DoctorReport{}

	profile, err := GetProfile(db)
	if err != nil {
		return report, err
	}
	if profile == nil || profile.LMPDate == nil {
		report.MissingProfile = true
	} else if profile.LMPDate.After(now) {
		report.FutureLMP = true
	}

	if err := db.QueryRow(`SELECT COUNT(1) FROM weight_entries WHERE weight_kg < ? OR weight_kg > ?`,
		minPlausibleWeightKg, maxPlausibleWeightKg).Scan(&report.ImplausibleWeights); err != nil {
		return report, fmt.Errorf("doctor weight range check: %w", err)
	}
	if err := db.QueryRow(`
SELECT COALESCE(SUM(cnt-1),0) FROM (
  SELECT COUNT(*) AS cnt FROM weight_entries GROUP BY recorded_at, weight_kg HAVING cnt > 1
)
`).Scan(&report.DuplicateWeightRows); err != nil {
		return report, fmt.Errorf("doctor duplicate weight check: %w", err)
	}
	if err := db.QueryRow(`
SELECT COUNT(1) FROM day_content
WHERE fruit_name = '' AND length_cm IS NULL AND weight_g IS NULL AND title = '' AND body = ''
`).Scan(&report.EmptyContentRows); err != nil {
		return report, fmt.Errorf("doctor empty content check: %w", err)
	}

	if fix && (report.DuplicateWeightRows > 0 || report.EmptyContentRows > 0) {
		tx, err := db.Begin()
		if err != nil {
			return report, fmt.Errorf("doctor fix begin tx: %w", err)
		}
		res, err := tx.Exec(`
DELETE FROM weight_entries
WHERE id NOT IN (SELECT MIN(id) FROM weight_entries GROUP BY recorded_at, weight_kg)
`)
		if err != nil {
			_ = tx.Rollback()
			return report, fmt.Errorf("doctor fix duplicate weights: %w", err)
		}
		n, _ := res.RowsAffected()
		report.FixedRows += int(n)
		res, err = tx.Exec(`
DELETE FROM day_content
WHERE fruit_name = '' AND length_cm IS NULL AND weight_g IS NULL AND title = '' AND body = ''
`)
		if err != nil {
			_ = tx.Rollback()
			return report, fmt.Errorf("doctor fix empty content: %w", err)
		}
		n, _ = res.RowsAffected()
		report.FixedRows += int(n)
		if err := tx.Commit(); err != nil {
			return report, fmt.Errorf("doctor fix commit: %w", err)
		}
	}

	return report, nil
}

func backupInfo(path, checksum string) (BackupInfo, error) {
	st, err := os.Stat(path)
	if err != nil {
		return BackupInfo{}, fmt.Errorf("stat backup: %w", err)
	}
	info := BackupInfo{Path: path, Checksum: checksum, CreatedAt: st.ModTime(), SizeBytes: st.Size()}
	if v, err := SchemaVersion(path); err == nil {
		info.SchemaVersion = v
	}
	return info, nil
}

// SchemaVersion reads the highest applied migration from the database file at
// path without migrating it.
func SchemaVersion(path string) (int, error) {
	if _, err := os.Stat(path); err != nil {
		return 0, fmt.Errorf("stat database: %w", err)
	}
	sqldb, err := db.Open(path)
	if err != nil {
		return 0, err
	}
	defer sqldb.Close()
	var version sql.NullInt64
	if err := sqldb.QueryRow(`SELECT MAX(version) FROM schema_migrations`).Scan(&version); err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	return int(version.Int64), nil
}

// verifyChecksum passes when no .sha256 sidecar exists.
func verifyChecksum(path string) error {
	expected, err := os.ReadFile(path + ".sha256")
	if err != nil {
		return nil
	}
	actual, err := fileSHA256(path)
	if err != nil {
		return err
	}
	if strings.TrimSpace(string(expected)) != actual {
		return fmt.Errorf("backup checksum mismatch")
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source file: %w", err)
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create destination file: %w", err)
	}
	defer out.Close()
	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copy file: %w", err)
	}
	if err := out.Sync(); err != nil {
		return fmt.Errorf("sync destination file: %w", err)
	}
	return nil
}

func fileSHA256(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open file for checksum: %w", err)
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash file: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
