package service

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/saadjs/bump-cli/internal/model"
	"github.com/saadjs/bump-cli/internal/pregnancy"
	"gopkg.in/yaml.v3"
)

func validateDayContent(in model.DayContent) error {
	if in.Day < 1 || in.Day > pregnancy.TermDays {
		return fmt.Errorf("day must be between 1 and %d", pregnancy.TermDays)
	}
	if err := validateNonNegativeFloat("length", in.LengthCm); err != nil {
		return err
	}
	return validateNonNegativeFloat("weight", in.WeightGrams)
}

func validateWeekImage(in model.WeekImage) error {
	if in.Week < 1 || in.Week > pregnancy.TermWeeks {
		return fmt.Errorf("week must be between 1 and %d", pregnancy.TermWeeks)
	}
	if err := validateNonNegativeFloat("length", in.LengthCm); err != nil {
		return err
	}
	return validateNonNegativeFloat("weight", in.WeightGrams)
}

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func SetDayContent(db *sql.DB, in model.DayContent) error {
	return setDayContent(db, in)
}

func setDayContent(db execer, in model.DayContent) error {
	if err := validateDayContent(in); err != nil {
		return err
	}
	_, err := db.Exec(`
INSERT INTO day_content(day, fruit_name, length_cm, weight_g, title, body, updated_at)
VALUES(?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(day) DO UPDATE SET
  fruit_name=excluded.fruit_name,
  length_cm=excluded.length_cm,
  weight_g=excluded.weight_g,
  title=excluded.title,
  body=excluded.body,
  updated_at=excluded.updated_at
`, in.Day, strings.TrimSpace(in.FruitName), in.LengthCm, in.WeightGrams, strings.TrimSpace(in.Title), strings.TrimSpace(in.Body))
	if err != nil {
		return fmt.Errorf("set day %d content: %w", in.Day, err)
	}
	return nil
}

func DeleteDayContent(db *sql.DB, day int) error {
	res, err := db.Exec(`DELETE FROM day_content WHERE day = ?`, day)
	if err != nil {
		return fmt.Errorf("delete day %d content: %w", day, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("no content for day %d", day)
	}
	return nil
}

func ListDayContent(db *sql.DB) ([]model.DayContent, error) {
	rows, err := db.Query(`SELECT day, fruit_name, length_cm, weight_g, title, body FROM day_content ORDER BY day ASC`)
	if err != nil {
		return nil, fmt.Errorf("list day content: %w", err)
	}
	defer rows.Close()

	items := make([]model.DayContent, 0)
	for rows.Next() {
		var c model.DayContent
		var length, weight sql.NullFloat64
		if err := rows.Scan(&c.Day, &c.FruitName, &length, &weight, &c.Title, &c.Body); err != nil {
			return nil, fmt.Errorf("scan day content: %w", err)
		}
		c.LengthCm = nullFloatPtr(length)
		c.WeightGrams = nullFloatPtr(weight)
		items = append(items, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate day content: %w", err)
	}
	return items, nil
}

func SetWeekImage(db *sql.DB, in model.WeekImage) error {
	return setWeekImage(db, in)
}

func setWeekImage(db execer, in model.WeekImage) error {
	if err := validateWeekImage(in); err != nil {
		return err
	}
	_, err := db.Exec(`
INSERT INTO week_images(week, fruit_name, length_cm, weight_g, image_url, updated_at)
VALUES(?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(week) DO UPDATE SET
  fruit_name=excluded.fruit_name,
  length_cm=excluded.length_cm,
  weight_g=excluded.weight_g,
  image_url=excluded.image_url,
  updated_at=excluded.updated_at
`, in.Week, strings.TrimSpace(in.FruitName), in.LengthCm, in.WeightGrams, strings.TrimSpace(in.ImageURL))
	if err != nil {
		return fmt.Errorf("set week %d image: %w", in.Week, err)
	}
	return nil
}

func DeleteWeekImage(db *sql.DB, week int) error {
	res, err := db.Exec(`DELETE FROM week_images WHERE week = ?`, week)
	if err != nil {
		return fmt.Errorf("delete week %d image: %w", week, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("no image record for week %d", week)
	}
	return nil
}

func ListWeekImages(db *sql.DB) ([]model.WeekImage, error) {
	rows, err := db.Query(`SELECT week, fruit_name, length_cm, weight_g, image_url FROM week_images ORDER BY week ASC`)
	if err != nil {
		return nil, fmt.Errorf("list week images: %w", err)
	}
	defer rows.Close()

	items := make([]model.WeekImage, 0)
	for rows.Next() {
		var w model.WeekImage
		var length, weight sql.NullFloat64
		if err := rows.Scan(&w.Week, &w.FruitName, &length, &weight, &w.ImageURL); err != nil {
			return nil, fmt.Errorf("scan week image: %w", err)
		}
		w.LengthCm = nullFloatPtr(length)
		w.WeightGrams = nullFloatPtr(weight)
		items = append(items, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate week images: %w", err)
	}
	return items, nil
}

// LoadContent reads both content tables into the lookup maps used by
// pregnancy.ResolveFruitData.
func LoadContent(db *sql.DB) (pregnancy.DayContent, pregnancy.WeekContent, error) {
	days, err := ListDayContent(db)
	if err != nil {
		return nil, nil, err
	}
	weeks, err := ListWeekImages(db)
	if err != nil {
		return nil, nil, err
	}
	perDay := make(pregnancy.DayContent, len(days))
	for _, d := range days {
		perDay[d.Day] = pregnancy.SizeFields{FruitName: d.FruitName, LengthCm: d.LengthCm, WeightGrams: d.WeightGrams}
	}
	perWeek := make(pregnancy.WeekContent, len(weeks))
	for _, w := range weeks {
		perWeek[w.Week] = pregnancy.SizeFields{FruitName: w.FruitName, LengthCm: w.LengthCm, WeightGrams: w.WeightGrams}
	}
	return perDay, perWeek, nil
}

func FruitForDay(db *sql.DB, day int) (pregnancy.FruitSizeRecord, error) {
	perDay, perWeek, err := LoadContent(db)
	if err != nil {
		return pregnancy.FruitSizeRecord{}, err
	}
	tl := pregnancy.TimelineForDay(day)
	return pregnancy.ResolveFruitData(tl.Day, tl.Week, perDay, perWeek), nil
}

type ContentBundle struct {
	Days  []model.DayContent `json:"days" yaml:"days"`
	Weeks []model.WeekImage  `json:"weeks" yaml:"weeks"`
}

// ParseContentBundle decodes JSON or YAML, chosen by the file extension.
func ParseContentBundle(name string, data []byte) (*ContentBundle, error) {
	var bundle ContentBundle
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &bundle); err != nil {
			return nil, fmt.Errorf("decode content yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &bundle); err != nil {
			return nil, fmt.Errorf("decode content json: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported content file %q (use .json, .yaml or .yml)", name)
	}
	return &bundle, nil
}

type ContentImportReport struct {
	Days  int `json:"days"`
	Weeks int `json:"weeks"`
}

// ImportContent upserts every record in one transaction. With replace set,
// existing content is cleared first.
func ImportContent(db *sql.DB, bundle ContentBundle, replace bool) (ContentImportReport, error) {
	report := ContentImportReport{}
	for _, d := range bundle.Days {
		if err := validateDayContent(d); err != nil {
			return report, fmt.Errorf("day %d: %w", d.Day, err)
		}
	}
	for _, w := range bundle.Weeks {
		if err := validateWeekImage(w); err != nil {
			return report, fmt.Errorf("week %d: %w", w.Week, err)
		}
	}

	tx, err := db.Begin()
	if err != nil {
		return report, fmt.Errorf("begin content import tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if replace {
		if _, err := tx.Exec(`DELETE FROM day_content`); err != nil {
			return report, fmt.Errorf("clear day content: %w", err)
		}
		if _, err := tx.Exec(`DELETE FROM week_images`); err != nil {
			return report, fmt.Errorf("clear week images: %w", err)
		}
	}
	for _, d := range bundle.Days {
		if err := setDayContent(tx, d); err != nil {
			return report, err
		}
		report.Days++
	}
	for _, w := range bundle.Weeks {
		if err := setWeekImage(tx, w); err != nil {
			return report, err
		}
		report.Weeks++
	}
	if err := tx.Commit(); err != nil {
		return report, fmt.Errorf("commit content import: %w", err)
	}
	return report, nil
}
