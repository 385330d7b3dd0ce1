package pregnancy

const (
	DefaultFreeLookAhead    = 0
	DefaultPremiumLookAhead = 7
)

type LookAheadLimits struct {
	Free    int `json:"free" yaml:"free_look_ahead"`
	Premium int `json:"premium" yaml:"premium_look_ahead"`
}

func DefaultLookAheadLimits() LookAheadLimits {
	return LookAheadLimits{Free: DefaultFreeLookAhead, Premium: DefaultPremiumLookAhead}
}

func LookAheadFor(premium bool, limits LookAheadLimits) int {
	v := limits.Free
	if premium {
		v = limits.Premium
	}
	if v < 0 {
		return 0
	}
	return v
}

// ClampedDay is a navigated day plus whether the request had to be bounded,
// so callers can decide whether to show limit feedback.
type ClampedDay struct {
	Requested  int  `json:"requested"`
	Value      int  `json:"value"`
	WasClamped bool `json:"was_clamped"`
}

type NavigationState struct {
	ActualDay           int        `json:"actual_day"`
	Actual              Timeline   `json:"actual"`
	Selected            ClampedDay `json:"selected"`
	Timeline            Timeline   `json:"timeline"`
	MaxDay              int        `json:"max_day"`
	IsViewingCurrentDay bool       `json:"is_viewing_current_day"`
}

type Navigator struct {
	ActualDay int
	LookAhead int
}

func NewNavigator(actualDay, lookAhead int) Navigator {
	if lookAhead < 0 {
		lookAhead = 0
	}
	return Navigator{ActualDay: clampInt(actualDay, 1, TermDays), LookAhead: lookAhead}
}

// MaxDay is the furthest day a caller may view.
func (n Navigator) MaxDay() int {
	actual := clampInt(n.ActualDay, 1, TermDays)
	if n.LookAhead <= 0 {
		return actual
	}
	if n.LookAhead >= TermDays-actual {
		return TermDays
	}
	return actual + n.LookAhead
}

func (n Navigator) Current() NavigationState {
	return n.NavigateToDay(n.ActualDay)
}

// NavigateToDay bounds target to [1, MaxDay()] and derives the timeline for the
// selected day. The actual day is never changed.
func (n Navigator) NavigateToDay(target int) NavigationState {
	actual := clampInt(n.ActualDay, 1, TermDays)
	maxDay := n.MaxDay()
	value := clampInt(target, 1, maxDay)
	return NavigationState{
		ActualDay: actual,
		Actual:    TimelineForDay(actual),
		Selected: ClampedDay{
			Requested:  target,
			Value:      value,
			WasClamped: value != target,
		},
		Timeline:            TimelineForDay(value),
		MaxDay:              maxDay,
		IsViewingCurrentDay: value == actual,
	}
}

// Step moves relative to the selected day of state. Any delta beyond the
// length of the term lands on a bound, so it is capped before adding.
func (n Navigator) Step(state NavigationState, delta int) NavigationState {
	delta = clampInt(delta, -TermDays, TermDays)
	return n.NavigateToDay(state.Selected.Value + delta)
}
