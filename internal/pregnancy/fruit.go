package pregnancy

import "strings"

const (
	SourceDay    = "day"
	SourceWeek   = "week"
	SourceStatic = "static"
)

// SizeFields is one source's view of a day or week. A blank name or a nil
// pointer means the source has nothing for that field.
type SizeFields struct {
	FruitName   string   `json:"fruit_name,omitempty" yaml:"fruit_name"`
	LengthCm    *float64 `json:"length_cm,omitempty" yaml:"length_cm"`
	WeightGrams *float64 `json:"weight_g,omitempty" yaml:"weight_g"`
}

type DayContent map[int]SizeFields

type WeekContent map[int]SizeFields

type FieldSources struct {
	FruitName   string `json:"fruit_name"`
	LengthCm    string `json:"length_cm"`
	WeightGrams string `json:"weight_g"`
}

type FruitSizeRecord struct {
	Day         int          `json:"day"`
	Week        int          `json:"week"`
	FruitName   string       `json:"fruit_name"`
	LengthCm    float64      `json:"length_cm"`
	WeightGrams float64      `json:"weight_g"`
	Sources     FieldSources `json:"sources"`
}

type sizeSource struct {
	name   string
	fields SizeFields
	ok     bool
}

type fieldResolver func(rec *FruitSizeRecord, src sizeSource) bool

// Each resolver fills one field from one source and reports whether it did.
var fieldResolvers = []fieldResolver{
	func(rec *FruitSizeRecord, src sizeSource) bool {
		name := strings.TrimSpace(src.fields.FruitName)
		if name == "" {
			return false
		}
		rec.FruitName = name
		rec.Sources.FruitName = src.name
		return true
	},
	func(rec *FruitSizeRecord, src sizeSource) bool {
		if src.fields.LengthCm == nil {
			return false
		}
		rec.LengthCm = *src.fields.LengthCm
		rec.Sources.LengthCm = src.name
		return true
	},
	func(rec *FruitSizeRecord, src sizeSource) bool {
		if src.fields.WeightGrams == nil {
			return false
		}
		rec.WeightGrams = *src.fields.WeightGrams
		rec.Sources.WeightGrams = src.name
		return true
	},
}

// ResolveFruitData fills each field independently from the first source that
// has it: per-day content, then per-week content, then the built-in table.
func ResolveFruitData(day, week int, perDay DayContent, perWeek WeekContent) FruitSizeRecord {
	rec := FruitSizeRecord{Day: day, Week: week}

	dayFields, dayOK := perDay[day]
	weekFields, weekOK := perWeek[week]
	chain := []sizeSource{
		{name: SourceDay, fields: dayFields, ok: dayOK},
		{name: SourceWeek, fields: weekFields, ok: weekOK},
		{name: SourceStatic, fields: StaticSize(week), ok: true},
	}

	for _, resolve := range fieldResolvers {
		for _, src := range chain {
			if src.ok && resolve(&rec, src) {
				break
			}
		}
	}
	return rec
}

type staticSize struct {
	fruit  string
	length float64
	weight float64
}

// Index 0 is week 1.
var staticSizes = [TermWeeks]staticSize{
	{"poppy seed", 0, 0},
	{"poppy seed", 0, 0},
	{"poppy seed", 0.1, 0},
	{"poppy seed", 0.1, 0},
	{"sesame seed", 0.2, 0},
	{"lentil", 0.4, 0},
	{"blueberry", 1.0, 1},
	{"raspberry", 1.6, 1},
	{"cherry", 2.3, 2},
	{"strawberry", 3.1, 4},
	{"lime", 4.1, 7},
	{"plum", 5.4, 14},
	{"peach", 7.4, 23},
	{"lemon", 8.7, 43},
	{"apple", 10.1, 70},
	{"avocado", 11.6, 100},
	{"pear", 13.0, 140},
	{"bell pepper", 14.2, 190},
	{"mango", 15.3, 240},
	{"banana", 25.6, 300},
	{"carrot", 26.7, 360},
	{"papaya", 27.8, 430},
	{"grapefruit", 28.9, 501},
	{"cantaloupe", 30.0, 600},
	{"cauliflower", 34.6, 660},
	{"lettuce", 35.6, 760},
	{"cabbage", 36.6, 875},
	{"eggplant", 37.6, 1005},
	{"butternut squash", 38.6, 1153},
	{"cucumber", 39.9, 1319},
	{"coconut", 41.1, 1502},
	{"jicama", 42.4, 1702},
	{"pineapple", 43.7, 1918},
	{"honeydew melon", 45.0, 2146},
	{"spaghetti squash", 46.2, 2383},
	{"romaine lettuce", 47.4, 2622},
	{"swiss chard", 48.6, 2859},
	{"leek", 49.8, 3083},
	{"watermelon", 50.7, 3288},
	{"pumpkin", 51.2, 3462},
}

// StaticSize returns the built-in entry for week, clamped to [1, TermWeeks].
func StaticSize(week int) SizeFields {
	s := staticSizes[clampInt(week, 1, TermWeeks)-1]
	length := s.length
	weight := s.weight
	return SizeFields{FruitName: s.fruit, LengthCm: &length, WeightGrams: &weight}
}
