// Package render formats dashboard and weight views for the terminal.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/saadjs/bump-cli/internal/pregnancy"
	"github.com/saadjs/bump-cli/internal/service"
	"github.com/shopspring/decimal"
)

const defaultBarWidth = 30

type Options struct {
	Unit  string
	Width int
	Theme *Theme
}

func (o Options) withDefaults() Options {
	if o.Unit == "" {
		o.Unit = "kg"
	}
	if o.Width <= 0 {
		o.Width = 60
	}
	if o.Theme == nil {
		th := DefaultTheme()
		o.Theme = &th
	}
	return o
}

func newBar(width int) progress.Model {
	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = width
	return bar
}

// Dashboard renders the home view: timeline with progress bar, fruit size,
// daily tip and weight classification.
func Dashboard(status *service.DashboardStatus, opts Options) (string, error) {
	opts = opts.withDefaults()
	th := *opts.Theme
	nav := status.Navigation
	tl := nav.Timeline

	var b strings.Builder
	b.WriteString(th.Header.Render(fmt.Sprintf("Day %d of %d", tl.Day, pregnancy.TermDays)))
	b.WriteString(th.Dim.Render(fmt.Sprintf("  week %d, day %d  |  trimester %d", tl.Week, tl.DayInWeek, tl.Trimester)))
	b.WriteString("\n")
	b.WriteString(newBar(barWidth(opts.Width)).ViewAs(tl.Progress))
	b.WriteString("\n")
	b.WriteString(th.Label.Render(fmt.Sprintf("%d days to go", tl.DaysRemaining)))
	if status.DueDate != "" {
		b.WriteString(th.Label.Render("  |  due " + status.DueDate))
	}
	b.WriteString("\n")

	if !status.HasProfile {
		b.WriteString(th.Notice.Render("No profile yet; run `bump profile set --lmp YYYY-MM-DD`."))
		b.WriteString("\n")
	}
	if !nav.IsViewingCurrentDay {
		b.WriteString(th.Notice.Render(fmt.Sprintf("Viewing day %d (today is day %d)", nav.Selected.Value, nav.ActualDay)))
		b.WriteString("\n")
	}
	if nav.Selected.WasClamped {
		b.WriteString(th.Notice.Render(fmt.Sprintf("Day %d is out of reach; showing day %d", nav.Selected.Requested, nav.Selected.Value)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(th.Section.Render("Baby size"))
	b.WriteString("\n")
	b.WriteString(fruitLine(status.Fruit, th))
	b.WriteString("\n")

	if status.Tip != "" {
		b.WriteString("\n")
		b.WriteString(th.Section.Render("Today"))
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Width(opts.Width).Render(status.Tip))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	weight, err := Weight(status.Weight, opts)
	if err != nil {
		return "", err
	}
	b.WriteString(weight)

	frame := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(th.Border).
		Padding(0, 1)
	return frame.Render(strings.TrimRight(b.String(), "\n")), nil
}

// Weight renders the cumulative gain against the trimester band.
func Weight(wp pregnancy.WeightProgress, opts Options) (string, error) {
	opts = opts.withDefaults()
	th := *opts.Theme
	c := wp.Classification

	var b strings.Builder
	b.WriteString(th.Section.Render(fmt.Sprintf("Weight gain (trimester %d)", c.Trimester)))
	b.WriteString("\n")
	if wp.Entries == 0 {
		b.WriteString(th.Dim.Render("No weight entries yet."))
		b.WriteString("\n")
		return b.String(), nil
	}

	gain, err := service.FormatWeight(c.TotalGain, opts.Unit, 1)
	if err != nil {
		return "", err
	}
	lo, err := service.FormatWeight(c.Band.Min, opts.Unit, 1)
	if err != nil {
		return "", err
	}
	hi, err := service.FormatWeight(c.Band.Max, opts.Unit, 1)
	if err != nil {
		return "", err
	}
	current, err := service.FormatWeight(wp.CurrentWeight, opts.Unit, 1)
	if err != nil {
		return "", err
	}
	unit := strings.ToLower(opts.Unit)

	b.WriteString(th.Label.Render("Gained "))
	b.WriteString(th.Value.Render(gain + " " + unit))
	b.WriteString(th.Label.Render(fmt.Sprintf(" of %s-%s %s  ", lo, hi, unit)))
	b.WriteString(StatusStyle(c.Status, th).Render(string(c.Status)))
	b.WriteString("\n")
	b.WriteString(newBar(barWidth(opts.Width)).ViewAs(c.ProgressRatio))
	b.WriteString("\n")
	b.WriteString(th.Dim.Render(fmt.Sprintf("current %s %s from %d entries", current, unit, wp.Entries)))
	b.WriteString("\n")
	return b.String(), nil
}

// WeeklyTable renders one row per pregnancy week with weight entries.
func WeeklyTable(weeks []service.WeekWeight, opts Options) (string, error) {
	opts = opts.withDefaults()
	th := *opts.Theme
	if len(weeks) == 0 {
		return th.Dim.Render("No weight entries since LMP."), nil
	}
	var b strings.Builder
	b.WriteString(th.Label.Render(fmt.Sprintf("%-6s %-4s %-8s %-8s %s", "week", "tri", "latest", "gain", "status")))
	b.WriteString("\n")
	for _, w := range weeks {
		latest, err := service.FormatWeight(w.LatestKg, opts.Unit, 1)
		if err != nil {
			return "", err
		}
		gain, err := service.FormatWeight(w.GainKg, opts.Unit, 1)
		if err != nil {
			return "", err
		}
		b.WriteString(fmt.Sprintf("%-6d %-4d %-8s %-8s ", w.Week, w.Trimester, latest, gain))
		b.WriteString(StatusStyle(w.Status, th).Render(string(w.Status)))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

func StatusStyle(s pregnancy.Status, th Theme) lipgloss.Style {
	switch s {
	case pregnancy.StatusLow:
		return th.Low
	case pregnancy.StatusHigh:
		return th.High
	default:
		return th.Normal
	}
}

func fruitLine(rec pregnancy.FruitSizeRecord, th Theme) string {
	length := decimal.NewFromFloat(rec.LengthCm).Round(1).String()
	weight := decimal.NewFromFloat(rec.WeightGrams).Round(1).String()
	return th.Label.Render("About the size of a ") +
		th.Value.Render(rec.FruitName) +
		th.Dim.Render(fmt.Sprintf("  %s cm, %s g", length, weight))
}

func barWidth(width int) int {
	if w := width - 10; w < defaultBarWidth {
		if w < 10 {
			return 10
		}
		return w
	}
	return defaultBarWidth
}
