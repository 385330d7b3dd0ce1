package service_test

import (
	"math"
	"testing"
	"time"

	"github.com/saadjs/bump-cli/internal/pregnancy"
	"github.com/saadjs/bump-cli/internal/service"
)

func TestWeightEntryCRUDAndUnitConversion(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	id, err := service.AddWeightEntry(db, service.WeightEntryInput{
		Weight:     140,
		Unit:       "lb",
		RecordedAt: time.Date(2026, 2, 20, 8, 0, 0, 0, time.Local),
	})
	if err != nil {
		t.Fatalf("add weight entry: %v", err)
	}

	items, err := service.ListWeightEntries(db, service.WeightEntryFilter{Date: "2026-02-20"})
	if err != nil {
		t.Fatalf("list weight entries: %v", err)
	}
	if len(items) != 1 || items[0].ID != id {
		t.Fatalf("expected entry %d, got %+v", id, items)
	}
	if items[0].WeightKg < 63.4 || items[0].WeightKg > 63.6 {
		t.Fatalf("expected converted weight around 63.5kg, got %.4f", items[0].WeightKg)
	}

	if err := service.UpdateWeightEntry(db, service.UpdateWeightEntryInput{
		ID: id,
		WeightEntryInput: service.WeightEntryInput{
			Weight:     64,
			Unit:       "kg",
			RecordedAt: time.Date(2026, 2, 21, 8, 0, 0, 0, time.Local),
		},
	}); err != nil {
		t.Fatalf("update weight entry: %v", err)
	}
	items, err = service.ListWeightEntries(db, service.WeightEntryFilter{FromDate: "2026-02-21", ToDate: "2026-02-21"})
	if err != nil {
		t.Fatalf("list updated weight entries: %v", err)
	}
	if len(items) != 1 || items[0].WeightKg != 64 {
		t.Fatalf("expected updated entry, got %+v", items)
	}

	if err := service.DeleteWeightEntry(db, id); err != nil {
		t.Fatalf("delete weight entry: %v", err)
	}
	if err := service.DeleteWeightEntry(db, id); err == nil {
		t.Fatalf("expected second delete to fail")
	}
}

func TestWeightEntryValidation(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	if _, err := service.AddWeightEntry(db, service.WeightEntryInput{Weight: 0, Unit: "kg"}); err == nil {
		t.Fatalf("expected zero weight to fail")
	}
	if _, err := service.AddWeightEntry(db, service.WeightEntryInput{Weight: 60, Unit: "st"}); err == nil {
		t.Fatalf("expected invalid unit to fail")
	}
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if _, err := service.AddWeightEntry(db, service.WeightEntryInput{Weight: v, Unit: "kg"}); err == nil {
			t.Fatalf("expected weight %v to fail", v)
		}
	}
	if _, err := service.ListWeightEntries(db, service.WeightEntryFilter{Date: "2026-01-01", FromDate: "2026-01-01"}); err == nil {
		t.Fatalf("expected --date with --from to fail")
	}
	if err := service.UpdateWeightEntry(db, service.UpdateWeightEntryInput{ID: 99, WeightEntryInput: service.WeightEntryInput{Weight: 60, RecordedAt: time.Now()}}); err == nil {
		t.Fatalf("expected update of missing entry to fail")
	}
}

func TestWeightStatusUsesOldestAndNewest(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.Local)
	for i, w := range []float64{60, 62, 65} {
		if _, err := service.AddWeightEntry(db, service.WeightEntryInput{Weight: w, Unit: "kg", RecordedAt: base.AddDate(0, 0, 14*i)}); err != nil {
			t.Fatalf("add weight %v: %v", w, err)
		}
	}

	progress, err := service.WeightStatus(db, nil, 2)
	if err != nil {
		t.Fatalf("weight status: %v", err)
	}
	c := progress.Classification
	if progress.StartWeight != 60 || progress.CurrentWeight != 65 || c.TotalGain != 5 || c.Status != pregnancy.StatusNormal {
		t.Fatalf("unexpected progress: %+v", progress)
	}
	if c.ProgressRatio != 0.625 {
		t.Fatalf("expected ratio 0.625, got %v", c.ProgressRatio)
	}
}

func TestWeightStatusWithoutEntries(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	progress, err := service.WeightStatus(db, nil, 1)
	if err != nil {
		t.Fatalf("weight status: %v", err)
	}
	if progress.Entries != 0 || progress.Classification.TotalGain != 0 {
		t.Fatalf("expected empty progress, got %+v", progress)
	}
}

func TestFormatWeightRounds(t *testing.T) {
	t.Parallel()
	got, err := service.FormatWeight(63.5029318, "lb", 1)
	if err != nil {
		t.Fatalf("format weight: %v", err)
	}
	if got != "140.0" {
		t.Fatalf("expected 140.0, got %s", got)
	}
	got, err = service.FormatWeight(61.25, "kg", 2)
	if err != nil {
		t.Fatalf("format weight: %v", err)
	}
	if got != "61.25" {
		t.Fatalf("expected 61.25, got %s", got)
	}
}
