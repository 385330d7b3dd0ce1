package pregnancy_test

import (
	"testing"

	"github.com/saadjs/bump-cli/internal/pregnancy"
)

func floatPtr(v float64) *float64 {
	return &v
}

func TestResolveFruitDataFallsBackToStaticTable(t *testing.T) {
	t.Parallel()
	rec := pregnancy.ResolveFruitData(140, 20, nil, nil)
	if rec.FruitName != "banana" || rec.LengthCm != 25.6 || rec.WeightGrams != 300 {
		t.Fatalf("unexpected static record: %+v", rec)
	}
	if rec.Sources.FruitName != pregnancy.SourceStatic {
		t.Fatalf("expected static source, got %+v", rec.Sources)
	}
}

func TestResolveFruitDataFieldLevelFallback(t *testing.T) {
	t.Parallel()
	perDay := pregnancy.DayContent{
		140: {FruitName: "small melon"},
	}
	perWeek := pregnancy.WeekContent{
		20: {LengthCm: floatPtr(26)},
	}
	rec := pregnancy.ResolveFruitData(140, 20, perDay, perWeek)
	if rec.FruitName != "small melon" || rec.Sources.FruitName != pregnancy.SourceDay {
		t.Fatalf("expected fruit name from day content, got %+v", rec)
	}
	if rec.LengthCm != 26 || rec.Sources.LengthCm != pregnancy.SourceWeek {
		t.Fatalf("expected length from week content, got %+v", rec)
	}
	if rec.WeightGrams != 300 || rec.Sources.WeightGrams != pregnancy.SourceStatic {
		t.Fatalf("expected weight from static table, got %+v", rec)
	}
}

func TestResolveFruitDataDayBeatsWeek(t *testing.T) {
	t.Parallel()
	perDay := pregnancy.DayContent{
		70: {FruitName: "kumquat", LengthCm: floatPtr(3.5), WeightGrams: floatPtr(5)},
	}
	perWeek := pregnancy.WeekContent{
		10: {FruitName: "date", LengthCm: floatPtr(3.1), WeightGrams: floatPtr(4)},
	}
	rec := pregnancy.ResolveFruitData(70, 10, perDay, perWeek)
	if rec.FruitName != "kumquat" || rec.LengthCm != 3.5 || rec.WeightGrams != 5 {
		t.Fatalf("expected day content to win, got %+v", rec)
	}
}

func TestResolveFruitDataBlankNameFallsThrough(t *testing.T) {
	t.Parallel()
	perDay := pregnancy.DayContent{8: {FruitName: "   ", WeightGrams: floatPtr(0)}}
	rec := pregnancy.ResolveFruitData(8, 2, perDay, nil)
	if rec.FruitName != "poppy seed" {
		t.Fatalf("expected static fruit name for blank day content, got %q", rec.FruitName)
	}
	if rec.Sources.WeightGrams != pregnancy.SourceDay {
		t.Fatalf("expected explicit zero weight from day content, got %+v", rec.Sources)
	}
}

func TestResolveFruitDataIgnoresOtherKeys(t *testing.T) {
	t.Parallel()
	perDay := pregnancy.DayContent{141: {FruitName: "wrong day"}}
	perWeek := pregnancy.WeekContent{21: {FruitName: "wrong week"}}
	rec := pregnancy.ResolveFruitData(140, 20, perDay, perWeek)
	if rec.FruitName != "banana" {
		t.Fatalf("expected static banana, got %q", rec.FruitName)
	}
}

func TestStaticSizeClampsWeek(t *testing.T) {
	t.Parallel()
	if got := pregnancy.StaticSize(55).FruitName; got != "pumpkin" {
		t.Fatalf("expected week 55 to clamp to pumpkin, got %q", got)
	}
	if got := pregnancy.StaticSize(0).FruitName; got != "poppy seed" {
		t.Fatalf("expected week 0 to clamp to poppy seed, got %q", got)
	}
	for week := 1; week <= pregnancy.TermWeeks; week++ {
		s := pregnancy.StaticSize(week)
		if s.FruitName == "" || s.LengthCm == nil || s.WeightGrams == nil {
			t.Fatalf("static table incomplete at week %d", week)
		}
	}
}
