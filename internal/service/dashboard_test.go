package service_test

import (
	"testing"
	"time"

	"github.com/saadjs/bump-cli/internal/model"
	"github.com/saadjs/bump-cli/internal/pregnancy"
	"github.com/saadjs/bump-cli/internal/service"
)

func TestDashboardWithoutProfileShowsDayOne(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	status, err := service.Dashboard(db, service.DashboardInput{Ref: time.Date(2026, 5, 1, 9, 0, 0, 0, time.Local)})
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if status.HasProfile || status.Navigation.ActualDay != 1 || status.Navigation.Timeline.Week != 1 {
		t.Fatalf("unexpected dashboard without profile: %+v", status)
	}
	if status.Fruit.FruitName != "poppy seed" {
		t.Fatalf("expected week 1 fruit, got %+v", status.Fruit)
	}
}

func TestDashboardNavigatesAndKeepsActualDay(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	if err := service.SetProfile(db, service.SetProfileInput{LMPDate: "2026-01-01"}); err != nil {
		t.Fatalf("set profile: %v", err)
	}
	if err := service.SetDayContent(db, model.DayContent{Day: 100, Title: "Day 100", Body: "Halfway through the second trimester."}); err != nil {
		t.Fatalf("set day content: %v", err)
	}
	ref := time.Date(2026, 4, 20, 9, 0, 0, 0, time.Local)

	status, err := service.Dashboard(db, service.DashboardInput{Ref: ref})
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if status.Navigation.ActualDay != 110 || !status.Navigation.IsViewingCurrentDay {
		t.Fatalf("expected actual day 110, got %+v", status.Navigation)
	}
	if status.DueDate != "2026-10-08" {
		t.Fatalf("expected due date 2026-10-08, got %s", status.DueDate)
	}

	back, err := service.Dashboard(db, service.DashboardInput{Ref: ref, TargetDay: 100})
	if err != nil {
		t.Fatalf("dashboard target day: %v", err)
	}
	if back.Navigation.Selected.Value != 100 || back.Navigation.ActualDay != 110 || back.Navigation.IsViewingCurrentDay {
		t.Fatalf("unexpected navigation: %+v", back.Navigation)
	}
	if back.Tip != "Day 100: Halfway through the second trimester." {
		t.Fatalf("unexpected tip %q", back.Tip)
	}

	ahead, err := service.Dashboard(db, service.DashboardInput{Ref: ref, Offset: 10})
	if err != nil {
		t.Fatalf("dashboard offset: %v", err)
	}
	if ahead.Navigation.Selected.Value != 110 || !ahead.Navigation.Selected.WasClamped {
		t.Fatalf("expected free user to be clamped at actual day, got %+v", ahead.Navigation.Selected)
	}

	premium, err := service.Dashboard(db, service.DashboardInput{Ref: ref, Offset: 10, LookAhead: 7})
	if err != nil {
		t.Fatalf("dashboard premium offset: %v", err)
	}
	if premium.Navigation.Selected.Value != 117 {
		t.Fatalf("expected clamp at 117 for premium look-ahead, got %+v", premium.Navigation.Selected)
	}
}

func TestDashboardWeightUsesActualTrimester(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	if err := service.SetProfile(db, service.SetProfileInput{LMPDate: "2026-01-01", StartWeight: 60, Unit: "kg"}); err != nil {
		t.Fatalf("set profile: %v", err)
	}
	if _, err := service.AddWeightEntry(db, service.WeightEntryInput{Weight: 61, Unit: "kg", RecordedAt: time.Date(2026, 4, 15, 8, 0, 0, 0, time.Local)}); err != nil {
		t.Fatalf("add weight: %v", err)
	}
	ref := time.Date(2026, 4, 20, 9, 0, 0, 0, time.Local)
	status, err := service.Dashboard(db, service.DashboardInput{Ref: ref, TargetDay: 10})
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	c := status.Weight.Classification
	if c.Trimester != 2 || c.TotalGain != 1 || c.Status != pregnancy.StatusLow {
		t.Fatalf("expected second-trimester low status, got %+v", c)
	}
}

func TestDashboardLimitsFollowPremiumFlag(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	if err := service.SetProfile(db, service.SetProfileInput{LMPDate: "2026-01-01"}); err != nil {
		t.Fatalf("set profile: %v", err)
	}
	ref := time.Date(2026, 4, 20, 9, 0, 0, 0, time.Local)
	limits := pregnancy.LookAheadLimits{Free: 2, Premium: 5}

	free, err := service.Dashboard(db, service.DashboardInput{Ref: ref, TargetDay: 200, Limits: &limits})
	if err != nil {
		t.Fatalf("dashboard free: %v", err)
	}
	if free.Navigation.MaxDay != 112 {
		t.Fatalf("expected free max day 112, got %d", free.Navigation.MaxDay)
	}

	if err := service.SetPremium(db, true); err != nil {
		t.Fatalf("set premium: %v", err)
	}
	premium, err := service.Dashboard(db, service.DashboardInput{Ref: ref, TargetDay: 200, Limits: &limits})
	if err != nil {
		t.Fatalf("dashboard premium: %v", err)
	}
	if premium.Navigation.MaxDay != 115 || premium.Navigation.Selected.Value != 115 {
		t.Fatalf("expected premium max day 115, got %+v", premium.Navigation)
	}
}
