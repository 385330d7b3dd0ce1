package model

import "time"

type Profile struct {
	DisplayName   string     `json:"display_name"`
	LMPDate       *time.Time `json:"lmp_date,omitempty"`
	DueDate       *time.Time `json:"due_date,omitempty"`
	Premium       bool       `json:"premium"`
	StartWeightKg *float64   `json:"start_weight_kg,omitempty"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

type WeightEntry struct {
	ID         int64     `json:"id"`
	RecordedAt time.Time `json:"recorded_at"`
	WeightKg   float64   `json:"weight_kg"`
	Notes      string    `json:"notes,omitempty"`
}

type DayContent struct {
	Day         int      `json:"day" yaml:"day"`
	FruitName   string   `json:"fruit_name,omitempty" yaml:"fruit_name"`
	LengthCm    *float64 `json:"length_cm,omitempty" yaml:"length_cm"`
	WeightGrams *float64 `json:"weight_g,omitempty" yaml:"weight_g"`
	Title       string   `json:"title,omitempty" yaml:"title"`
	Body        string   `json:"body,omitempty" yaml:"body"`
}

type WeekImage struct {
	Week        int      `json:"week" yaml:"week"`
	FruitName   string   `json:"fruit_name,omitempty" yaml:"fruit_name"`
	LengthCm    *float64 `json:"length_cm,omitempty" yaml:"length_cm"`
	WeightGrams *float64 `json:"weight_g,omitempty" yaml:"weight_g"`
	ImageURL    string   `json:"image_url,omitempty" yaml:"image_url"`
}
