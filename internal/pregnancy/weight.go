package pregnancy

import (
	"sort"
	"time"
)

type Status string

const (
	StatusLow    Status = "low"
	StatusNormal Status = "normal"
	StatusHigh   Status = "high"
)

// Band is a recommended cumulative weight-gain range in kilograms.
type Band struct {
	Min float64 `json:"min_kg"`
	Max float64 `json:"max_kg"`
}

// Bands maps trimester (1..3) to its recommended gain band.
type Bands map[int]Band

func DefaultBands() Bands {
	return Bands{
		1: {Min: 0.5, Max: 2},
		2: {Min: 4, Max: 8},
		3: {Min: 8, Max: 14},
	}
}

// For returns the band for trimester, falling back to the built-in default.
func (b Bands) For(trimester int) Band {
	if band, ok := b[trimester]; ok {
		return band
	}
	defaults := DefaultBands()
	if band, ok := defaults[trimester]; ok {
		return band
	}
	return defaults[TrimesterForWeek(TermWeeks)]
}

type Classification struct {
	Status        Status  `json:"status"`
	TotalGain     float64 `json:"total_gain_kg"`
	ProgressRatio float64 `json:"progress_ratio"`
	Band          Band    `json:"band"`
	Trimester     int     `json:"trimester"`
}

func Classify(startWeight, currentWeight float64, trimester int, bands Bands) Classification {
	band := bands.For(trimester)
	gain := currentWeight - startWeight

	status := StatusNormal
	switch {
	case gain < band.Min:
		status = StatusLow
	case gain > band.Max:
		status = StatusHigh
	}

	ratio := 0.0
	if band.Max > 0 {
		ratio = gain / band.Max
	}
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}

	return Classification{
		Status:        status,
		TotalGain:     gain,
		ProgressRatio: ratio,
		Band:          band,
		Trimester:     trimester,
	}
}

type WeightSample struct {
	WeightKg   float64   `json:"weight_kg"`
	RecordedAt time.Time `json:"recorded_at"`
}

type WeightProgress struct {
	StartWeight    float64        `json:"start_weight_kg"`
	CurrentWeight  float64        `json:"current_weight_kg"`
	Entries        int            `json:"entries"`
	Classification Classification `json:"classification"`
}

// ProgressFromSamples takes the oldest sample as the start weight and the
// newest as the current one. With no samples the gain is zero.
func ProgressFromSamples(samples []WeightSample, trimester int, bands Bands) WeightProgress {
	out := WeightProgress{Entries: len(samples)}
	if len(samples) > 0 {
		sorted := make([]WeightSample, len(samples))
		copy(sorted, samples)
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].RecordedAt.Before(sorted[j].RecordedAt)
		})
		out.StartWeight = sorted[0].WeightKg
		out.CurrentWeight = sorted[len(sorted)-1].WeightKg
	}
	out.Classification = Classify(out.StartWeight, out.CurrentWeight, trimester, bands)
	return out
}
