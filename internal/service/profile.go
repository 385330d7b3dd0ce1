package service

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/saadjs/bump-cli/internal/model"
	"github.com/saadjs/bump-cli/internal/pregnancy"
)

type SetProfileInput struct {
	DisplayName string
	LMPDate     string
	DueDate     string
	Premium     bool
	StartWeight float64
	Unit        string
}

// SetProfile stores the single profile row. Exactly one of LMPDate or DueDate
// is required; a due date is converted to the LMP it implies.
func SetProfile(db *sql.DB, in SetProfileInput) error {
	in.LMPDate = strings.TrimSpace(in.LMPDate)
	in.DueDate = strings.TrimSpace(in.DueDate)
	if in.LMPDate == "" && in.DueDate == "" {
		return fmt.Errorf("either --lmp or --due-date is required")
	}
	if in.LMPDate != "" && in.DueDate != "" {
		return fmt.Errorf("--lmp cannot be combined with --due-date")
	}

	var lmp time.Time
	if in.LMPDate != "" {
		parsed, err := parseDate("lmp date", in.LMPDate)
		if err != nil {
			return err
		}
		lmp = parsed
	} else {
		due, err := parseDate("due date", in.DueDate)
		if err != nil {
			return err
		}
		lmp = pregnancy.LMPFromDueDate(due)
	}
	due := pregnancy.DueDateFromLMP(lmp)

	var startWeight *float64
	if in.StartWeight != 0 {
		kg, err := convertWeightToKg(in.StartWeight, in.Unit)
		if err != nil {
			return err
		}
		startWeight = &kg
	}

	premium := 0
	if in.Premium {
		premium = 1
	}
	_, err := db.Exec(`
INSERT INTO profile(id, display_name, lmp_date, due_date, premium, start_weight_kg, updated_at)
VALUES(1, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(id) DO UPDATE SET
  display_name=excluded.display_name,
  lmp_date=excluded.lmp_date,
  due_date=excluded.due_date,
  premium=excluded.premium,
  start_weight_kg=excluded.start_weight_kg,
  updated_at=excluded.updated_at
`, strings.TrimSpace(in.DisplayName), lmp.Format(dateLayout), due.Format(dateLayout), premium, startWeight)
	if err != nil {
		return fmt.Errorf("set profile: %w", err)
	}
	return nil
}

// GetProfile returns nil when no profile has been set.
func GetProfile(db *sql.DB) (*model.Profile, error) {
	var out model.Profile
	var lmpRaw, dueRaw sql.NullString
	var premium int
	var startWeight sql.NullFloat64
	err := db.QueryRow(`
SELECT display_name, lmp_date, due_date, premium, start_weight_kg, updated_at
FROM profile
WHERE id = 1
`).Scan(&out.DisplayName, &lmpRaw, &dueRaw, &premium, &startWeight, &out.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	if out.LMPDate, err = parseOptionalDate("lmp date", lmpRaw); err != nil {
		return nil, err
	}
	if out.DueDate, err = parseOptionalDate("due date", dueRaw); err != nil {
		return nil, err
	}
	out.Premium = premium != 0
	out.StartWeightKg = nullFloatPtr(startWeight)
	return &out, nil
}

func SetPremium(db *sql.DB, premium bool) error {
	v := 0
	if premium {
		v = 1
	}
	res, err := db.Exec(`UPDATE profile SET premium = ?, updated_at = CURRENT_TIMESTAMP WHERE id = 1`, v)
	if err != nil {
		return fmt.Errorf("set premium: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("profile not set; run `bump profile set` first")
	}
	return nil
}
