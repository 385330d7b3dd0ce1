package service_test

import (
	"testing"
	"time"

	"github.com/saadjs/bump-cli/internal/model"
	"github.com/saadjs/bump-cli/internal/service"
)

func TestExportImportRoundTrip(t *testing.T) {
	t.Parallel()
	src := newTestDB(t)
	defer src.Close()

	if err := service.SetProfile(src, service.SetProfileInput{DisplayName: "Sam", LMPDate: "2026-01-01", Premium: true, StartWeight: 60}); err != nil {
		t.Fatalf("set profile: %v", err)
	}
	if _, err := service.AddWeightEntry(src, service.WeightEntryInput{Weight: 62, Unit: "kg", RecordedAt: time.Date(2026, 3, 1, 8, 0, 0, 0, time.Local)}); err != nil {
		t.Fatalf("add weight: %v", err)
	}
	if err := service.SetDayContent(src, model.DayContent{Day: 60, FruitName: "grape"}); err != nil {
		t.Fatalf("set day content: %v", err)
	}
	if err := service.SetWeekImage(src, model.WeekImage{Week: 9, ImageURL: "https://cdn.example.com/w9.png"}); err != nil {
		t.Fatalf("set week image: %v", err)
	}
	if err := service.SetConfig(src, service.GainBandKey(1), "1,3"); err != nil {
		t.Fatalf("set config: %v", err)
	}

	data, err := service.ExportDataSnapshot(src)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if data.ExportID == "" || data.Profile == nil || len(data.Weights) != 1 || len(data.Days) != 1 || len(data.Weeks) != 1 {
		t.Fatalf("unexpected export: %+v", data)
	}

	dst := newTestDB(t)
	defer dst.Close()
	report, err := service.ImportDataSnapshot(dst, data, service.ImportOptions{Mode: service.ImportModeFail})
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if report.Inserted != 5 {
		t.Fatalf("expected 5 inserted rows, got %+v", report)
	}

	profile, err := service.GetProfile(dst)
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if profile == nil || !profile.Premium || profile.DueDate.Format("2006-01-02") != "2026-10-08" {
		t.Fatalf("unexpected imported profile: %+v", profile)
	}

	if _, err := service.ImportDataSnapshot(dst, data, service.ImportOptions{Mode: service.ImportModeFail}); err == nil {
		t.Fatalf("expected second fail-mode import to conflict")
	}
	skipped, err := service.ImportDataSnapshot(dst, data, service.ImportOptions{Mode: service.ImportModeSkip})
	if err != nil {
		t.Fatalf("skip import: %v", err)
	}
	if skipped.Inserted != 0 || skipped.Skipped != 5 {
		t.Fatalf("expected everything skipped, got %+v", skipped)
	}
	replaced, err := service.ImportDataSnapshot(dst, data, service.ImportOptions{Mode: service.ImportModeReplace})
	if err != nil {
		t.Fatalf("replace import: %v", err)
	}
	if replaced.Inserted != 5 {
		t.Fatalf("expected replace to reinsert, got %+v", replaced)
	}
}

func TestImportDryRunWritesNothing(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	data := &service.ExportData{
		Weights: []service.ExportWeight{{RecordedAt: "2026-03-01T08:00:00Z", WeightKg: 61}},
	}
	report, err := service.ImportDataSnapshot(db, data, service.ImportOptions{Mode: service.ImportModeFail, DryRun: true})
	if err != nil {
		t.Fatalf("dry-run import: %v", err)
	}
	if report.Inserted != 1 {
		t.Fatalf("expected dry-run to count one insert, got %+v", report)
	}
	items, err := service.ListWeightEntries(db, service.WeightEntryFilter{})
	if err != nil {
		t.Fatalf("list weights: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected dry-run to write nothing, got %+v", items)
	}
}

func TestParseImportMode(t *testing.T) {
	t.Parallel()
	if mode, err := service.ParseImportMode(""); err != nil || mode != service.ImportModeFail {
		t.Fatalf("expected default fail mode, got %q %v", mode, err)
	}
	if _, err := service.ParseImportMode("merge"); err == nil {
		t.Fatalf("expected merge to be rejected")
	}
}
