package service

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/saadjs/bump-cli/internal/pregnancy"
)

type DashboardInput struct {
	Ref       time.Time
	TargetDay int
	Offset    int
	LookAhead int
	// Limits, when set, picks LookAhead from the profile's premium flag.
	Limits *pregnancy.LookAheadLimits
}

type DashboardStatus struct {
	Date       string                    `json:"date"`
	HasProfile bool                      `json:"has_profile"`
	Premium    bool                      `json:"premium"`
	LMPDate    string                    `json:"lmp_date,omitempty"`
	DueDate    string                    `json:"due_date,omitempty"`
	Navigation pregnancy.NavigationState `json:"navigation"`
	Fruit      pregnancy.FruitSizeRecord `json:"fruit"`
	Tip        string                    `json:"tip,omitempty"`
	Weight     pregnancy.WeightProgress  `json:"weight"`
}

// Dashboard builds the home-screen view for in.Ref. TargetDay wins over Offset;
// with neither set the actual current day is shown. Weight status always uses
// the actual trimester, not the viewed one.
func Dashboard(db *sql.DB, in DashboardInput) (*DashboardStatus, error) {
	if in.Ref.IsZero() {
		in.Ref = time.Now()
	}
	profile, err := GetProfile(db)
	if err != nil {
		return nil, err
	}

	status := &DashboardStatus{Date: in.Ref.Format(dateLayout)}
	var lmp *time.Time
	if profile != nil {
		status.HasProfile = true
		status.Premium = profile.Premium
		lmp = profile.LMPDate
		if profile.LMPDate != nil {
			status.LMPDate = profile.LMPDate.Format(dateLayout)
			status.DueDate = pregnancy.DueDateFromLMP(*profile.LMPDate).Format(dateLayout)
		}
	}

	if in.Limits != nil {
		in.LookAhead = pregnancy.LookAheadFor(status.Premium, *in.Limits)
	}
	nav := pregnancy.NewNavigator(pregnancy.DayFromProfile(lmp, in.Ref), in.LookAhead)
	switch {
	case in.TargetDay != 0:
		status.Navigation = nav.NavigateToDay(in.TargetDay)
	case in.Offset != 0:
		status.Navigation = nav.Step(nav.Current(), in.Offset)
	default:
		status.Navigation = nav.Current()
	}

	perDay, perWeek, err := LoadContent(db)
	if err != nil {
		return nil, err
	}
	viewed := status.Navigation.Timeline
	status.Fruit = pregnancy.ResolveFruitData(viewed.Day, viewed.Week, perDay, perWeek)

	tip, err := dayTip(db, viewed.Day)
	if err != nil {
		return nil, err
	}
	status.Tip = tip

	weight, err := WeightStatus(db, profile, status.Navigation.Actual.Trimester)
	if err != nil {
		return nil, err
	}
	status.Weight = weight
	return status, nil
}

func dayTip(db *sql.DB, day int) (string, error) {
	var title, body string
	err := db.QueryRow(`SELECT title, body FROM day_content WHERE day = ?`, day).Scan(&title, &body)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("load day %d tip: %w", day, err)
	}
	switch {
	case title != "" && body != "":
		return title + ": " + body, nil
	case title != "":
		return title, nil
	default:
		return body, nil
	}
}
