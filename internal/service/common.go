package service

import (
	"database/sql"
	"fmt"
	"math"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

func parseDate(name, value string) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, strings.TrimSpace(value), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s %q (expected YYYY-MM-DD)", name, value)
	}
	return t, nil
}

func parseOptionalDate(name string, raw sql.NullString) (*time.Time, error) {
	if !raw.Valid || strings.TrimSpace(raw.String) == "" {
		return nil, nil
	}
	t, err := parseDate(name, raw.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func dayBounds(date string) (string, string, error) {
	start, err := parseDate("date", date)
	if err != nil {
		return "", "", err
	}
	return start.Format(time.RFC3339), start.AddDate(0, 0, 1).Format(time.RFC3339), nil
}

func parseDateStart(value string) (string, error) {
	t, err := parseDate("date", value)
	if err != nil {
		return "", err
	}
	return t.Format(time.RFC3339), nil
}

func parseDateEndExclusive(value string) (string, error) {
	t, err := parseDate("date", value)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, 1).Format(time.RFC3339), nil
}

func validateNonNegativeFloat(name string, value *float64) error {
	if value == nil {
		return nil
	}
	if !finite(*value) {
		return fmt.Errorf("%s must be a finite number", name)
	}
	if *value < 0 {
		return fmt.Errorf("%s must be >= 0", name)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func nullFloatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	out := v.Float64
	return &out
}
