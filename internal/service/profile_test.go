package service_test

import (
	"math"
	"testing"

	"github.com/saadjs/bump-cli/internal/service"
)

func TestGetProfileMissingReturnsNil(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	profile, err := service.GetProfile(db)
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if profile != nil {
		t.Fatalf("expected nil profile, got %+v", profile)
	}
}

func TestSetProfileFromDueDateDerivesLMP(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	if err := service.SetProfile(db, service.SetProfileInput{DisplayName: "Sam", DueDate: "2026-10-08", Premium: true}); err != nil {
		t.Fatalf("set profile: %v", err)
	}
	profile, err := service.GetProfile(db)
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if profile == nil || profile.LMPDate == nil {
		t.Fatalf("expected profile with LMP, got %+v", profile)
	}
	if got := profile.LMPDate.Format("2006-01-02"); got != "2026-01-01" {
		t.Fatalf("expected LMP 2026-01-01, got %s", got)
	}
	if got := profile.DueDate.Format("2006-01-02"); got != "2026-10-08" {
		t.Fatalf("expected due date 2026-10-08, got %s", got)
	}
	if !profile.Premium || profile.DisplayName != "Sam" {
		t.Fatalf("unexpected profile fields: %+v", profile)
	}
}

func TestSetProfileOverwritesAndConvertsStartWeight(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	if err := service.SetProfile(db, service.SetProfileInput{LMPDate: "2026-01-01"}); err != nil {
		t.Fatalf("set first profile: %v", err)
	}
	if err := service.SetProfile(db, service.SetProfileInput{LMPDate: "2026-02-01", StartWeight: 132, Unit: "lb"}); err != nil {
		t.Fatalf("set second profile: %v", err)
	}
	profile, err := service.GetProfile(db)
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if profile.LMPDate.Format("2006-01-02") != "2026-02-01" {
		t.Fatalf("expected overwritten LMP, got %s", profile.LMPDate.Format("2006-01-02"))
	}
	if profile.StartWeightKg == nil || *profile.StartWeightKg < 59.8 || *profile.StartWeightKg > 59.9 {
		t.Fatalf("expected start weight around 59.87kg, got %v", profile.StartWeightKg)
	}
	if profile.Premium {
		t.Fatalf("expected premium reset to false")
	}
}

func TestSetProfileValidation(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	cases := []service.SetProfileInput{
		{},
		{LMPDate: "2026-01-01", DueDate: "2026-10-08"},
		{LMPDate: "01/02/2026"},
		{LMPDate: "2026-01-01", StartWeight: 60, Unit: "stone"},
		{LMPDate: "2026-01-01", StartWeight: math.Inf(1)},
		{LMPDate: "2026-01-01", StartWeight: math.NaN()},
		{LMPDate: "2026-01-01", StartWeight: -60},
	}
	for _, in := range cases {
		if err := service.SetProfile(db, in); err == nil {
			t.Fatalf("expected error for %+v", in)
		}
	}
}

func TestSetPremiumRequiresProfile(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	if err := service.SetPremium(db, true); err == nil {
		t.Fatalf("expected error without profile")
	}
	if err := service.SetProfile(db, service.SetProfileInput{LMPDate: "2026-01-01"}); err != nil {
		t.Fatalf("set profile: %v", err)
	}
	if err := service.SetPremium(db, true); err != nil {
		t.Fatalf("set premium: %v", err)
	}
	profile, err := service.GetProfile(db)
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if !profile.Premium {
		t.Fatalf("expected premium profile")
	}
}
