package service

import (
	"database/sql"
	"sort"

	"github.com/saadjs/bump-cli/internal/model"
	"github.com/saadjs/bump-cli/internal/pregnancy"
)

type WeekWeight struct {
	Week      int              `json:"week"`
	Trimester int              `json:"trimester"`
	Entries   int              `json:"entries"`
	AverageKg float64          `json:"average_kg"`
	LatestKg  float64          `json:"latest_kg"`
	GainKg    float64          `json:"gain_kg"`
	Status    pregnancy.Status `json:"status"`
}

// WeeklyWeights groups weight entries by pregnancy week relative to the
// profile LMP. Entries before the LMP are ignored. Gain is measured from the
// oldest counted sample (or the profile start weight when set).
func WeeklyWeights(db *sql.DB, profile *model.Profile) ([]WeekWeight, error) {
	if profile == nil || profile.LMPDate == nil {
		return []WeekWeight{}, nil
	}
	samples, err := WeightSamples(db)
	if err != nil {
		return nil, err
	}
	bands, err := GainBands(db)
	if err != nil {
		return nil, err
	}

	lmp := *profile.LMPDate
	byWeek := map[int][]pregnancy.WeightSample{}
	var start *float64
	if profile.StartWeightKg != nil {
		v := *profile.StartWeightKg
		start = &v
	}
	for _, s := range samples {
		if s.RecordedAt.Before(lmp) {
			continue
		}
		if start == nil {
			v := s.WeightKg
			start = &v
		}
		week := pregnancy.WeekForDay(pregnancy.ComputeDay(lmp, s.RecordedAt))
		byWeek[week] = append(byWeek[week], s)
	}

	out := make([]WeekWeight, 0, len(byWeek))
	for week, items := range byWeek {
		sum := 0.0
		for _, s := range items {
			sum += s.WeightKg
		}
		latest := items[len(items)-1].WeightKg
		trimester := pregnancy.TrimesterForWeek(week)
		c := pregnancy.Classify(*start, latest, trimester, bands)
		out = append(out, WeekWeight{
			Week:      week,
			Trimester: trimester,
			Entries:   len(items),
			AverageKg: sum / float64(len(items)),
			LatestKg:  latest,
			GainKg:    c.TotalGain,
			Status:    c.Status,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Week < out[j].Week })
	return out, nil
}
