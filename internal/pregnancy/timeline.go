// Package pregnancy holds the pregnancy timeline math: day counting from the
// last menstrual period, day navigation, fruit/size lookup and weight-gain
// classification. Every function is pure; callers pass the reference date.
package pregnancy

import "time"

const (
	TermDays    = 280
	TermWeeks   = 40
	DaysPerWeek = 7
)

type Timeline struct {
	Day           int     `json:"day"`
	Week          int     `json:"week"`
	DayInWeek     int     `json:"day_in_week"`
	Trimester     int     `json:"trimester"`
	DaysRemaining int     `json:"days_remaining"`
	Progress      float64 `json:"progress"`
}

// ComputeDay returns the 1-based pregnancy day for ref, with the LMP date itself
// being day 1. Results are clamped to [1, TermDays].
func ComputeDay(lmp, ref time.Time) int {
	return clampInt(daysBetween(lmp, ref)+1, 1, TermDays)
}

// DayFromProfile treats a missing LMP as day 1.
func DayFromProfile(lmp *time.Time, ref time.Time) int {
	if lmp == nil || lmp.IsZero() {
		return 1
	}
	return ComputeDay(*lmp, ref)
}

func LMPFromDueDate(due time.Time) time.Time {
	return civilDate(due).AddDate(0, 0, -TermDays)
}

func DueDateFromLMP(lmp time.Time) time.Time {
	return civilDate(lmp).AddDate(0, 0, TermDays)
}

func TimelineForDay(day int) Timeline {
	day = clampInt(day, 1, TermDays)
	week := WeekForDay(day)
	return Timeline{
		Day:           day,
		Week:          week,
		DayInWeek:     DayInWeek(day),
		Trimester:     TrimesterForWeek(week),
		DaysRemaining: TermDays - day,
		Progress:      float64(day) / float64(TermDays),
	}
}

func WeekForDay(day int) int {
	if day < 1 {
		day = 1
	}
	return clampInt((day+DaysPerWeek-1)/DaysPerWeek, 1, TermWeeks)
}

func DayInWeek(day int) int {
	if day < 1 {
		day = 1
	}
	return ((day - 1) % DaysPerWeek) + 1
}

func TrimesterForWeek(week int) int {
	switch {
	case week <= 12:
		return 1
	case week <= 26:
		return 2
	default:
		return 3
	}
}

// daysBetween counts calendar days from a to b using each value's own
// year/month/day, so wall-clock time and DST shifts never change the result.
func daysBetween(a, b time.Time) int {
	from := civilDate(a)
	to := civilDate(b)
	return int(to.Sub(from).Hours() / 24)
}

func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
