package service

import (
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/saadjs/bump-cli/internal/model"
	"github.com/saadjs/bump-cli/internal/pregnancy"
	"github.com/shopspring/decimal"
)

const kgPerPound = 0.45359237

type WeightEntryInput struct {
	Weight     float64
	Unit       string
	RecordedAt time.Time
	Notes      string
}

type WeightEntryFilter struct {
	Date     string
	FromDate string
	ToDate   string
	Limit    int
}

type UpdateWeightEntryInput struct {
	ID int64
	WeightEntryInput
}

func AddWeightEntry(db *sql.DB, in WeightEntryInput) (int64, error) {
	weightKg, err := convertWeightToKg(in.Weight, in.Unit)
	if err != nil {
		return 0, err
	}
	if in.RecordedAt.IsZero() {
		in.RecordedAt = time.Now()
	}
	res, err := db.Exec(`
INSERT INTO weight_entries(recorded_at, weight_kg, notes)
VALUES(?, ?, ?)
`, in.RecordedAt.Format(time.RFC3339), weightKg, strings.TrimSpace(in.Notes))
	if err != nil {
		return 0, fmt.Errorf("add weight entry: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("resolve weight entry id: %w", err)
	}
	return id, nil
}

func ListWeightEntries(db *sql.DB, f WeightEntryFilter) ([]model.WeightEntry, error) {
	if strings.TrimSpace(f.Date) != "" && (strings.TrimSpace(f.FromDate) != "" || strings.TrimSpace(f.ToDate) != "") {
		return nil, fmt.Errorf("--date cannot be combined with --from or --to")
	}
	query := `SELECT id, recorded_at, weight_kg, IFNULL(notes, '') FROM weight_entries WHERE 1=1`
	args := make([]any, 0)

	if strings.TrimSpace(f.Date) != "" {
		start, end, err := dayBounds(f.Date)
		if err != nil {
			return nil, err
		}
		query += ` AND recorded_at >= ? AND recorded_at < ?`
		args = append(args, start, end)
	}
	if strings.TrimSpace(f.FromDate) != "" {
		from, err := parseDateStart(f.FromDate)
		if err != nil {
			return nil, err
		}
		query += ` AND recorded_at >= ?`
		args = append(args, from)
	}
	if strings.TrimSpace(f.ToDate) != "" {
		to, err := parseDateEndExclusive(f.ToDate)
		if err != nil {
			return nil, err
		}
		query += ` AND recorded_at < ?`
		args = append(args, to)
	}

	query += ` ORDER BY recorded_at DESC, id DESC`
	if f.Limit <= 0 {
		f.Limit = 50
	}
	query += ` LIMIT ?`
	args = append(args, f.Limit)

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list weight entries: %w", err)
	}
	defer rows.Close()

	items := make([]model.WeightEntry, 0)
	for rows.Next() {
		var w model.WeightEntry
		var recordedAtRaw string
		if err := rows.Scan(&w.ID, &recordedAtRaw, &w.WeightKg, &w.Notes); err != nil {
			return nil, fmt.Errorf("scan weight entry: %w", err)
		}
		recorded, err := time.Parse(time.RFC3339, recordedAtRaw)
		if err != nil {
			return nil, fmt.Errorf("parse recorded_at: %w", err)
		}
		w.RecordedAt = recorded
		items = append(items, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate weight entries: %w", err)
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].RecordedAt.After(items[j].RecordedAt) })
	return items, nil
}

func UpdateWeightEntry(db *sql.DB, in UpdateWeightEntryInput) error {
	if in.ID <= 0 {
		return fmt.Errorf("weight entry id must be > 0")
	}
	weightKg, err := convertWeightToKg(in.Weight, in.Unit)
	if err != nil {
		return err
	}
	if in.RecordedAt.IsZero() {
		return fmt.Errorf("weight entry date/time is required")
	}
	res, err := db.Exec(`
UPDATE weight_entries
SET recorded_at = ?, weight_kg = ?, notes = ?, updated_at = CURRENT_TIMESTAMP
WHERE id = ?
`, in.RecordedAt.Format(time.RFC3339), weightKg, strings.TrimSpace(in.Notes), in.ID)
	if err != nil {
		return fmt.Errorf("update weight entry %d: %w", in.ID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("weight entry %d not found", in.ID)
	}
	return nil
}

func DeleteWeightEntry(db *sql.DB, id int64) error {
	if id <= 0 {
		return fmt.Errorf("weight entry id must be > 0")
	}
	res, err := db.Exec(`DELETE FROM weight_entries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete weight entry %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("weight entry %d not found", id)
	}
	return nil
}

// WeightSamples loads every weight entry as classifier input, oldest first.
// recorded_at keeps the offset it was written with, so ordering happens on the
// parsed instant rather than the stored text.
func WeightSamples(db *sql.DB) ([]pregnancy.WeightSample, error) {
	rows, err := db.Query(`SELECT recorded_at, weight_kg FROM weight_entries ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("load weight samples: %w", err)
	}
	defer rows.Close()

	items := make([]pregnancy.WeightSample, 0)
	for rows.Next() {
		var s pregnancy.WeightSample
		var recordedAtRaw string
		if err := rows.Scan(&recordedAtRaw, &s.WeightKg); err != nil {
			return nil, fmt.Errorf("scan weight sample: %w", err)
		}
		recorded, err := time.Parse(time.RFC3339, recordedAtRaw)
		if err != nil {
			return nil, fmt.Errorf("parse recorded_at: %w", err)
		}
		s.RecordedAt = recorded
		items = append(items, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate weight samples: %w", err)
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].RecordedAt.Before(items[j].RecordedAt) })
	return items, nil
}

// WeightStatus classifies cumulative gain for the trimester. A profile start
// weight counts as the oldest sample, dated at the LMP.
func WeightStatus(db *sql.DB, profile *model.Profile, trimester int) (pregnancy.WeightProgress, error) {
	samples, err := WeightSamples(db)
	if err != nil {
		return pregnancy.WeightProgress{}, err
	}
	if profile != nil && profile.StartWeightKg != nil {
		at := time.Time{}
		if profile.LMPDate != nil {
			at = *profile.LMPDate
		}
		samples = append([]pregnancy.WeightSample{{WeightKg: *profile.StartWeightKg, RecordedAt: at}}, samples...)
	}
	bands, err := GainBands(db)
	if err != nil {
		return pregnancy.WeightProgress{}, err
	}
	return pregnancy.ProgressFromSamples(samples, trimester, bands), nil
}

func convertWeightToKg(value float64, unit string) (float64, error) {
	if !finite(value) {
		return 0, fmt.Errorf("weight must be a finite number")
	}
	if value <= 0 {
		return 0, fmt.Errorf("weight must be > 0")
	}
	switch normalizeUnit(unit) {
	case "kg":
		return value, nil
	case "lb":
		return value * kgPerPound, nil
	default:
		return 0, fmt.Errorf("invalid weight unit %q (use kg or lb)", unit)
	}
}

func weightFromKg(weightKg float64, unit string) (float64, error) {
	switch normalizeUnit(unit) {
	case "kg":
		return weightKg, nil
	case "lb":
		return weightKg / kgPerPound, nil
	default:
		return 0, fmt.Errorf("invalid weight unit %q (use kg or lb)", unit)
	}
}

func normalizeUnit(unit string) string {
	u := strings.ToLower(strings.TrimSpace(unit))
	switch u {
	case "":
		return "kg"
	case "lbs":
		return "lb"
	}
	return u
}

// FormatWeight renders a kilogram value in unit with the given decimals.
func FormatWeight(weightKg float64, unit string, places int32) (string, error) {
	v, err := weightFromKg(weightKg, unit)
	if err != nil {
		return "", err
	}
	return decimal.NewFromFloat(v).Round(places).StringFixed(places), nil
}
