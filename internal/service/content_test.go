package service_test

import (
	"math"
	"testing"

	"github.com/saadjs/bump-cli/internal/model"
	"github.com/saadjs/bump-cli/internal/pregnancy"
	"github.com/saadjs/bump-cli/internal/service"
)

func TestContentUpsertListDelete(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	if err := service.SetDayContent(db, model.DayContent{Day: 140, FruitName: "small melon", Title: "Halfway"}); err != nil {
		t.Fatalf("set day content: %v", err)
	}
	if err := service.SetDayContent(db, model.DayContent{Day: 140, FruitName: "melon", Title: "Halfway there"}); err != nil {
		t.Fatalf("upsert day content: %v", err)
	}
	if err := service.SetWeekImage(db, model.WeekImage{Week: 20, LengthCm: floatPtr(26), ImageURL: "https://cdn.example.com/w20.png"}); err != nil {
		t.Fatalf("set week image: %v", err)
	}

	days, err := service.ListDayContent(db)
	if err != nil {
		t.Fatalf("list day content: %v", err)
	}
	if len(days) != 1 || days[0].FruitName != "melon" || days[0].LengthCm != nil {
		t.Fatalf("unexpected day content: %+v", days)
	}

	weeks, err := service.ListWeekImages(db)
	if err != nil {
		t.Fatalf("list week images: %v", err)
	}
	if len(weeks) != 1 || weeks[0].LengthCm == nil || *weeks[0].LengthCm != 26 {
		t.Fatalf("unexpected week images: %+v", weeks)
	}

	if err := service.DeleteDayContent(db, 140); err != nil {
		t.Fatalf("delete day content: %v", err)
	}
	if err := service.DeleteDayContent(db, 140); err == nil {
		t.Fatalf("expected second delete to fail")
	}
	if err := service.DeleteWeekImage(db, 21); err == nil {
		t.Fatalf("expected delete of missing week to fail")
	}
}

func TestContentValidation(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	if err := service.SetDayContent(db, model.DayContent{Day: 0, FruitName: "x"}); err == nil {
		t.Fatalf("expected day 0 to fail")
	}
	if err := service.SetWeekImage(db, model.WeekImage{Week: 41}); err == nil {
		t.Fatalf("expected week 41 to fail")
	}
	if err := service.SetWeekImage(db, model.WeekImage{Week: 10, WeightGrams: floatPtr(-1)}); err == nil {
		t.Fatalf("expected negative weight to fail")
	}
	if err := service.SetDayContent(db, model.DayContent{Day: 10, LengthCm: floatPtr(math.NaN())}); err == nil {
		t.Fatalf("expected NaN length to fail")
	}
}

func TestFruitForDayUsesStoredContent(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	if err := service.SetDayContent(db, model.DayContent{Day: 140, FruitName: "small melon"}); err != nil {
		t.Fatalf("set day content: %v", err)
	}
	if err := service.SetWeekImage(db, model.WeekImage{Week: 20, LengthCm: floatPtr(26)}); err != nil {
		t.Fatalf("set week image: %v", err)
	}

	rec, err := service.FruitForDay(db, 140)
	if err != nil {
		t.Fatalf("fruit for day: %v", err)
	}
	if rec.FruitName != "small melon" || rec.LengthCm != 26 || rec.WeightGrams != 300 {
		t.Fatalf("unexpected fruit record: %+v", rec)
	}
	if rec.Sources.WeightGrams != pregnancy.SourceStatic {
		t.Fatalf("expected static weight source, got %+v", rec.Sources)
	}
}

func TestImportContentFromYAML(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	bundle, err := service.ParseContentBundle("content.yaml", []byte(`
days:
  - day: 1
    title: Day one
    body: Your journey starts here.
  - day: 70
    fruit_name: kumquat
weeks:
  - week: 10
    fruit_name: date
    length_cm: 3.1
    weight_g: 4
`))
	if err != nil {
		t.Fatalf("parse bundle: %v", err)
	}
	if err := service.SetDayContent(db, model.DayContent{Day: 200, FruitName: "stale"}); err != nil {
		t.Fatalf("seed stale content: %v", err)
	}

	report, err := service.ImportContent(db, *bundle, true)
	if err != nil {
		t.Fatalf("import content: %v", err)
	}
	if report.Days != 2 || report.Weeks != 1 {
		t.Fatalf("unexpected import report: %+v", report)
	}
	days, err := service.ListDayContent(db)
	if err != nil {
		t.Fatalf("list day content: %v", err)
	}
	if len(days) != 2 {
		t.Fatalf("expected replace to drop stale content, got %+v", days)
	}
}

func TestImportContentRejectsInvalidBundle(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	defer db.Close()

	bundle, err := service.ParseContentBundle("content.json", []byte(`{"days":[{"day":1,"fruit_name":"seed"},{"day":300}]}`))
	if err != nil {
		t.Fatalf("parse bundle: %v", err)
	}
	if _, err := service.ImportContent(db, *bundle, false); err == nil {
		t.Fatalf("expected invalid day to fail")
	}
	days, err := service.ListDayContent(db)
	if err != nil {
		t.Fatalf("list day content: %v", err)
	}
	if len(days) != 0 {
		t.Fatalf("expected nothing imported, got %+v", days)
	}
	if _, err := service.ParseContentBundle("content.txt", nil); err == nil {
		t.Fatalf("expected unsupported extension to fail")
	}
}
