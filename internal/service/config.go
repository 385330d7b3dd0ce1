package service

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/saadjs/bump-cli/internal/logger"
	"github.com/saadjs/bump-cli/internal/pregnancy"
)

const gainBandKeyPrefix = "gain_band.t"

func GainBandKey(trimester int) string {
	return fmt.Sprintf("%s%d", gainBandKeyPrefix, trimester)
}

func SetConfig(db *sql.DB, key, value string) error {
	key = strings.TrimSpace(strings.ToLower(key))
	if key == "" {
		return fmt.Errorf("config key is required")
	}
	_, err := db.Exec(`
INSERT INTO app_config(key, value, updated_at)
VALUES(?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at
`, key, strings.TrimSpace(value))
	if err != nil {
		return fmt.Errorf("set config %q: %w", key, err)
	}
	return nil
}

func GetConfig(db *sql.DB, key string) (string, bool, error) {
	key = strings.TrimSpace(strings.ToLower(key))
	if key == "" {
		return "", false, fmt.Errorf("config key is required")
	}
	var value string
	err := db.QueryRow(`SELECT value FROM app_config WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get config %q: %w", key, err)
	}
	return value, true, nil
}

func DeleteConfig(db *sql.DB, key string) error {
	key = strings.TrimSpace(strings.ToLower(key))
	if _, err := db.Exec(`DELETE FROM app_config WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete config %q: %w", key, err)
	}
	return nil
}

func ListConfig(db *sql.DB) (map[string]string, error) {
	rows, err := db.Query(`SELECT key, value FROM app_config ORDER BY key ASC`)
	if err != nil {
		return nil, fmt.Errorf("list config: %w", err)
	}
	defer rows.Close()
	out := map[string]string{}
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scan config: %w", err)
		}
		out[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate config: %w", err)
	}
	return out, nil
}

// ParseBandSpec parses "T=MIN,MAX", e.g. "2=4,8".
func ParseBandSpec(spec string) (int, pregnancy.Band, error) {
	left, right, ok := strings.Cut(strings.TrimSpace(spec), "=")
	if !ok {
		return 0, pregnancy.Band{}, fmt.Errorf("invalid band %q (expected TRIMESTER=MIN,MAX)", spec)
	}
	trimester, err := strconv.Atoi(strings.TrimSpace(left))
	if err != nil || trimester < 1 || trimester > 3 {
		return 0, pregnancy.Band{}, fmt.Errorf("invalid trimester %q (use 1, 2 or 3)", left)
	}
	band, err := parseBand(right)
	if err != nil {
		return 0, pregnancy.Band{}, err
	}
	return trimester, band, nil
}

func parseBand(value string) (pregnancy.Band, error) {
	lo, hi, ok := strings.Cut(strings.TrimSpace(value), ",")
	if !ok {
		return pregnancy.Band{}, fmt.Errorf("invalid band %q (expected MIN,MAX)", value)
	}
	minKg, err := strconv.ParseFloat(strings.TrimSpace(lo), 64)
	if err != nil {
		return pregnancy.Band{}, fmt.Errorf("invalid band minimum %q", lo)
	}
	maxKg, err := strconv.ParseFloat(strings.TrimSpace(hi), 64)
	if err != nil {
		return pregnancy.Band{}, fmt.Errorf("invalid band maximum %q", hi)
	}
	if !finite(minKg) || !finite(maxKg) {
		return pregnancy.Band{}, fmt.Errorf("band limits must be finite numbers")
	}
	if minKg < 0 || maxKg <= 0 || minKg > maxKg {
		return pregnancy.Band{}, fmt.Errorf("band must satisfy 0 <= min <= max and max > 0")
	}
	return pregnancy.Band{Min: minKg, Max: maxKg}, nil
}

func formatBand(b pregnancy.Band) string {
	return strconv.FormatFloat(b.Min, 'f', -1, 64) + "," + strconv.FormatFloat(b.Max, 'f', -1, 64)
}

func SetGainBand(db *sql.DB, trimester int, band pregnancy.Band) error {
	if trimester < 1 || trimester > 3 {
		return fmt.Errorf("trimester must be 1, 2 or 3")
	}
	if _, err := parseBand(formatBand(band)); err != nil {
		return err
	}
	return SetConfig(db, GainBandKey(trimester), formatBand(band))
}

// GainBands returns stored overrides merged over the built-in defaults.
// Malformed stored values are skipped so the defaults still apply.
func GainBands(db *sql.DB) (pregnancy.Bands, error) {
	bands := pregnancy.DefaultBands()
	for trimester := 1; trimester <= 3; trimester++ {
		raw, ok, err := GetConfig(db, GainBandKey(trimester))
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		band, err := parseBand(raw)
		if err != nil {
			logger.Warn("ignoring malformed gain band", "trimester", trimester, "value", raw, "err", err)
			continue
		}
		bands[trimester] = band
	}
	return bands, nil
}
