package service

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/saadjs/bump-cli/internal/db"
	"github.com/saadjs/bump-cli/internal/model"
	"github.com/saadjs/bump-cli/internal/pregnancy"
)

type ExportProfile struct {
	DisplayName   string   `json:"display_name"`
	LMPDate       string   `json:"lmp_date,omitempty"`
	Premium       bool     `json:"premium"`
	StartWeightKg *float64 `json:"start_weight_kg,omitempty"`
}

type ExportWeight struct {
	RecordedAt string  `json:"recorded_at"`
	WeightKg   float64 `json:"weight_kg"`
	Notes      string  `json:"notes,omitempty"`
}

type ExportData struct {
	ExportID      string             `json:"export_id"`
	ExportedAt    string             `json:"exported_at"`
	SchemaVersion int                `json:"schema_version"`
	Profile       *ExportProfile     `json:"profile,omitempty"`
	Weights       []ExportWeight     `json:"weights"`
	Days          []model.DayContent `json:"days"`
	Weeks         []model.WeekImage  `json:"weeks"`
	Config        map[string]string  `json:"config"`
}

type ImportMode string

const (
	ImportModeFail    ImportMode = "fail"
	ImportModeSkip    ImportMode = "skip"
	ImportModeReplace ImportMode = "replace"
)

func ParseImportMode(v string) (ImportMode, error) {
	switch ImportMode(strings.ToLower(strings.TrimSpace(v))) {
	case "", ImportModeFail:
		return ImportModeFail, nil
	case ImportModeSkip:
		return ImportModeSkip, nil
	case ImportModeReplace:
		return ImportModeReplace, nil
	default:
		return "", fmt.Errorf("invalid import mode %q (use fail, skip or replace)", v)
	}
}

type ImportOptions struct {
	Mode   ImportMode
	DryRun bool
}

type ImportReport struct {
	Inserted  int      `json:"inserted"`
	Skipped   int      `json:"skipped"`
	Conflicts int      `json:"conflicts"`
	Warnings  []string `json:"warnings,omitempty"`
}

func ExportDataSnapshot(sqldb *sql.DB) (*ExportData, error) {
	out := &ExportData{
		ExportID:      uuid.NewString(),
		ExportedAt:    time.Now().Format(time.RFC3339),
		SchemaVersion: db.LatestVersion(),
	}

	profile, err := GetProfile(sqldb)
	if err != nil {
		return nil, err
	}
	if profile != nil {
		p := &ExportProfile{DisplayName: profile.DisplayName, Premium: profile.Premium, StartWeightKg: profile.StartWeightKg}
		if profile.LMPDate != nil {
			p.LMPDate = profile.LMPDate.Format(dateLayout)
		}
		out.Profile = p
	}

	rows, err := sqldb.Query(`SELECT recorded_at, weight_kg, IFNULL(notes, '') FROM weight_entries ORDER BY recorded_at ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("export weights: %w", err)
	}
	if out.Weights, err = scanExportWeights(rows); err != nil {
		return nil, err
	}

	if out.Days, err = ListDayContent(sqldb); err != nil {
		return nil, err
	}
	if out.Weeks, err = ListWeekImages(sqldb); err != nil {
		return nil, err
	}
	if out.Config, err = ListConfig(sqldb); err != nil {
		return nil, err
	}
	return out, nil
}

type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
}

func scanExportWeights(rows rowScanner) ([]ExportWeight, error) {
	items := make([]ExportWeight, 0)
	for rows.Next() {
		var w ExportWeight
		if err := rows.Scan(&w.RecordedAt, &w.WeightKg, &w.Notes); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("scan export weight: %w", err)
		}
		items = append(items, w)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, fmt.Errorf("iterate export weights: %w", err)
	}
	if err := rows.Close(); err != nil {
		return nil, fmt.Errorf("close export weights: %w", err)
	}
	return items, nil
}

// ImportDataSnapshot loads an export. Weight rows are matched on
// (recorded_at, weight_kg); content rows on day or week. In fail mode any
// match aborts the import, in skip mode matches are left untouched, and
// replace mode clears existing data first.
func ImportDataSnapshot(sqldb *sql.DB, data *ExportData, opts ImportOptions) (ImportReport, error) {
	report := ImportReport{}
	if data == nil {
		return report, fmt.Errorf("import data is required")
	}
	if opts.Mode == "" {
		opts.Mode = ImportModeFail
	}
	if data.SchemaVersion > db.LatestVersion() {
		report.Warnings = append(report.Warnings, fmt.Sprintf("export schema version %d is newer than %d", data.SchemaVersion, db.LatestVersion()))
	}

	tx, err := sqldb.Begin()
	if err != nil {
		return report, fmt.Errorf("begin import tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if opts.Mode == ImportModeReplace {
		for _, table := range []string{"weight_entries", "day_content", "week_images", "app_config", "profile"} {
			if _, err := tx.Exec(`DELETE FROM ` + table); err != nil {
				return report, fmt.Errorf("clear %s: %w", table, err)
			}
		}
	}

	if data.Profile != nil && data.Profile.LMPDate != "" {
		var exists int
		err := tx.QueryRow(`SELECT COUNT(1) FROM profile WHERE id = 1`).Scan(&exists)
		if err != nil {
			return report, fmt.Errorf("check profile: %w", err)
		}
		switch {
		case exists > 0 && opts.Mode == ImportModeFail:
			report.Conflicts++
			return report, fmt.Errorf("profile already exists (use --mode skip or replace)")
		case exists > 0:
			report.Skipped++
		default:
			lmp, err := parseDate("lmp date", data.Profile.LMPDate)
			if err != nil {
				return report, err
			}
			premium := 0
			if data.Profile.Premium {
				premium = 1
			}
			if _, err := tx.Exec(`
INSERT INTO profile(id, display_name, lmp_date, due_date, premium, start_weight_kg)
VALUES(1, ?, ?, ?, ?, ?)
`, data.Profile.DisplayName, lmp.Format(dateLayout), pregnancy.DueDateFromLMP(lmp).Format(dateLayout), premium, data.Profile.StartWeightKg); err != nil {
				return report, fmt.Errorf("import profile: %w", err)
			}
			report.Inserted++
		}
	}

	for _, w := range data.Weights {
		recorded, err := time.Parse(time.RFC3339, w.RecordedAt)
		if err != nil {
			return report, fmt.Errorf("invalid weight recorded_at %q: %w", w.RecordedAt, err)
		}
		if !finite(w.WeightKg) || w.WeightKg <= 0 {
			return report, fmt.Errorf("invalid weight %.2f at %s", w.WeightKg, w.RecordedAt)
		}
		var exists int
		if err := tx.QueryRow(`SELECT COUNT(1) FROM weight_entries WHERE recorded_at = ? AND weight_kg = ?`,
			recorded.Format(time.RFC3339), w.WeightKg).Scan(&exists); err != nil {
			return report, fmt.Errorf("check weight entry: %w", err)
		}
		if exists > 0 {
			if opts.Mode == ImportModeFail {
				report.Conflicts++
				return report, fmt.Errorf("weight entry at %s already exists (use --mode skip or replace)", w.RecordedAt)
			}
			report.Skipped++
			continue
		}
		if _, err := tx.Exec(`INSERT INTO weight_entries(recorded_at, weight_kg, notes) VALUES(?, ?, ?)`,
			recorded.Format(time.RFC3339), w.WeightKg, strings.TrimSpace(w.Notes)); err != nil {
			return report, fmt.Errorf("import weight entry: %w", err)
		}
		report.Inserted++
	}

	for _, d := range data.Days {
		skip, err := importConflict(tx, `SELECT COUNT(1) FROM day_content WHERE day = ?`, d.Day, opts.Mode, &report, fmt.Sprintf("day %d content", d.Day))
		if err != nil {
			return report, err
		}
		if skip {
			continue
		}
		if err := setDayContent(tx, d); err != nil {
			return report, err
		}
		report.Inserted++
	}
	for _, w := range data.Weeks {
		skip, err := importConflict(tx, `SELECT COUNT(1) FROM week_images WHERE week = ?`, w.Week, opts.Mode, &report, fmt.Sprintf("week %d image", w.Week))
		if err != nil {
			return report, err
		}
		if skip {
			continue
		}
		if err := setWeekImage(tx, w); err != nil {
			return report, err
		}
		report.Inserted++
	}

	for key, value := range data.Config {
		skip, err := importConflict(tx, `SELECT COUNT(1) FROM app_config WHERE key = ?`, key, opts.Mode, &report, fmt.Sprintf("config %q", key))
		if err != nil {
			return report, err
		}
		if skip {
			continue
		}
		if _, err := tx.Exec(`INSERT INTO app_config(key, value) VALUES(?, ?)`, key, value); err != nil {
			return report, fmt.Errorf("import config %q: %w", key, err)
		}
		report.Inserted++
	}

	if opts.DryRun {
		return report, nil
	}
	if err := tx.Commit(); err != nil {
		return report, fmt.Errorf("commit import: %w", err)
	}
	return report, nil
}

func importConflict(tx *sql.Tx, query string, key any, mode ImportMode, report *ImportReport, label string) (bool, error) {
	var exists int
	if err := tx.QueryRow(query, key).Scan(&exists); err != nil {
		return false, fmt.Errorf("check %s: %w", label, err)
	}
	if exists == 0 {
		return false, nil
	}
	if mode == ImportModeFail {
		report.Conflicts++
		return false, fmt.Errorf("%s already exists (use --mode skip or replace)", label)
	}
	report.Skipped++
	return true, nil
}
