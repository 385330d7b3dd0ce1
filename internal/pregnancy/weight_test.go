package pregnancy_test

import (
	"testing"
	"time"

	"github.com/saadjs/bump-cli/internal/pregnancy"
)

func TestClassifySecondTrimester(t *testing.T) {
	t.Parallel()
	bands := pregnancy.DefaultBands()
	cases := []struct {
		current float64
		gain    float64
		status  pregnancy.Status
	}{
		{61, 1, pregnancy.StatusLow},
		{64, 4, pregnancy.StatusNormal},
		{65, 5, pregnancy.StatusNormal},
		{68, 8, pregnancy.StatusNormal},
		{70, 10, pregnancy.StatusHigh},
	}
	for _, tc := range cases {
		got := pregnancy.Classify(60, tc.current, 2, bands)
		if got.TotalGain != tc.gain || got.Status != tc.status {
			t.Fatalf("current %.1f: expected gain %.1f status %s, got %+v", tc.current, tc.gain, tc.status, got)
		}
	}
}

func TestClassifyProgressRatio(t *testing.T) {
	t.Parallel()
	bands := pregnancy.DefaultBands()
	if got := pregnancy.Classify(60, 65, 2, bands).ProgressRatio; got != 0.625 {
		t.Fatalf("expected ratio 0.625, got %v", got)
	}
	if got := pregnancy.Classify(60, 58, 2, bands).ProgressRatio; got != 0 {
		t.Fatalf("expected ratio clamped to 0 for weight loss, got %v", got)
	}
	if got := pregnancy.Classify(60, 90, 2, bands).ProgressRatio; got != 1 {
		t.Fatalf("expected ratio clamped to 1, got %v", got)
	}
}

func TestClassifyZeroMaxBandDoesNotDivide(t *testing.T) {
	t.Parallel()
	got := pregnancy.Classify(60, 61, 1, pregnancy.Bands{1: {Min: 0, Max: 0}})
	if got.ProgressRatio != 0 || got.Status != pregnancy.StatusHigh {
		t.Fatalf("unexpected classification for zero band: %+v", got)
	}
}

func TestBandsFallBackToDefaults(t *testing.T) {
	t.Parallel()
	custom := pregnancy.Bands{2: {Min: 3, Max: 7}}
	if b := custom.For(2); b.Min != 3 || b.Max != 7 {
		t.Fatalf("expected override for trimester 2, got %+v", b)
	}
	if b := custom.For(3); b.Min != 8 || b.Max != 14 {
		t.Fatalf("expected default for trimester 3, got %+v", b)
	}
	var empty pregnancy.Bands
	if b := empty.For(1); b.Min != 0.5 || b.Max != 2 {
		t.Fatalf("expected default for nil bands, got %+v", b)
	}
	if b := empty.For(9); b.Max != 14 {
		t.Fatalf("expected third-trimester default for unknown trimester, got %+v", b)
	}
}

func TestProgressFromSamplesUsesOldestAndNewest(t *testing.T) {
	t.Parallel()
	base := time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)
	samples := []pregnancy.WeightSample{
		{WeightKg: 63, RecordedAt: base.AddDate(0, 0, 30)},
		{WeightKg: 60, RecordedAt: base},
		{WeightKg: 65, RecordedAt: base.AddDate(0, 0, 60)},
	}
	got := pregnancy.ProgressFromSamples(samples, 2, pregnancy.DefaultBands())
	if got.StartWeight != 60 || got.CurrentWeight != 65 || got.Entries != 3 {
		t.Fatalf("unexpected progress: %+v", got)
	}
	if got.Classification.Status != pregnancy.StatusNormal || got.Classification.TotalGain != 5 {
		t.Fatalf("unexpected classification: %+v", got.Classification)
	}
	if samples[0].WeightKg != 63 {
		t.Fatalf("expected input samples to stay unsorted")
	}
}

func TestProgressFromSamplesEmpty(t *testing.T) {
	t.Parallel()
	got := pregnancy.ProgressFromSamples(nil, 1, nil)
	if got.Classification.TotalGain != 0 || got.Entries != 0 {
		t.Fatalf("expected zero gain without samples, got %+v", got)
	}
}
