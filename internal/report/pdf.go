// Package report builds the printable pregnancy summary.
package report

import (
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/saadjs/bump-cli/internal/pregnancy"
	"github.com/saadjs/bump-cli/internal/service"
	"github.com/shopspring/decimal"
)

// Data is everything the PDF shows. Collect fills it from the database.
type Data struct {
	GeneratedAt time.Time
	Dashboard   *service.DashboardStatus
	Weeks       []pregnancy.FruitSizeRecord
	Weights     []service.WeekWeight
	Unit        string
}

// Collect gathers the 40-week size table, weekly weights and today's
// dashboard for ref.
func Collect(db *sql.DB, ref time.Time, unit string) (*Data, error) {
	status, err := service.Dashboard(db, service.DashboardInput{Ref: ref})
	if err != nil {
		return nil, err
	}
	perDay, perWeek, err := service.LoadContent(db)
	if err != nil {
		return nil, err
	}
	profile, err := service.GetProfile(db)
	if err != nil {
		return nil, err
	}
	weights, err := service.WeeklyWeights(db, profile)
	if err != nil {
		return nil, err
	}

	weeks := make([]pregnancy.FruitSizeRecord, 0, pregnancy.TermWeeks)
	for week := 1; week <= pregnancy.TermWeeks; week++ {
		day := (week-1)*pregnancy.DaysPerWeek + 1
		weeks = append(weeks, pregnancy.ResolveFruitData(day, week, perDay, perWeek))
	}
	if unit == "" {
		unit = "kg"
	}
	return &Data{GeneratedAt: ref, Dashboard: status, Weeks: weeks, Weights: weights, Unit: unit}, nil
}

func Build(d *Data) (*fpdf.Fpdf, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Pregnancy report", true)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "Pregnancy Report")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, "Generated "+d.GeneratedAt.Format("2006-01-02 15:04"))
	pdf.Ln(10)

	if s := d.Dashboard; s != nil {
		tl := s.Navigation.Actual
		pdf.SetFont("Arial", "B", 13)
		pdf.Cell(0, 8, "Today")
		pdf.Ln(8)
		pdf.SetFont("Arial", "", 11)
		lines := []string{
			fmt.Sprintf("Day %d of %d, week %d day %d, trimester %d", tl.Day, pregnancy.TermDays, tl.Week, tl.DayInWeek, tl.Trimester),
			fmt.Sprintf("%d days remaining", tl.DaysRemaining),
		}
		if s.LMPDate != "" {
			lines = append(lines, fmt.Sprintf("LMP %s, due %s", s.LMPDate, s.DueDate))
		} else {
			lines = append(lines, "No profile set")
		}
		if s.Weight.Entries > 0 {
			c := s.Weight.Classification
			gain, err := service.FormatWeight(c.TotalGain, d.Unit, 1)
			if err != nil {
				return nil, err
			}
			lines = append(lines, fmt.Sprintf("Weight gain %s %s (%s for trimester %d)", gain, d.Unit, c.Status, c.Trimester))
		}
		for _, line := range lines {
			pdf.Cell(0, 6, tr(line))
			pdf.Ln(6)
		}
		pdf.Ln(4)
	}

	pdf.SetFont("Arial", "B", 13)
	pdf.Cell(0, 8, "Baby size by week")
	pdf.Ln(9)
	current := 0
	if d.Dashboard != nil {
		current = d.Dashboard.Navigation.Actual.Week
	}
	widths := []float64{20, 70, 35, 35}
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(240, 220, 230)
	for i, h := range []string{"Week", "Fruit", "Length (cm)", "Weight (g)"} {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	for _, w := range d.Weeks {
		fill := w.Week == current
		pdf.CellFormat(widths[0], 6, fmt.Sprintf("%d", w.Week), "1", 0, "C", fill, 0, "")
		pdf.CellFormat(widths[1], 6, tr(w.FruitName), "1", 0, "L", fill, 0, "")
		pdf.CellFormat(widths[2], 6, decimal.NewFromFloat(w.LengthCm).StringFixed(1), "1", 0, "R", fill, 0, "")
		pdf.CellFormat(widths[3], 6, decimal.NewFromFloat(w.WeightGrams).StringFixed(1), "1", 0, "R", fill, 0, "")
		pdf.Ln(-1)
	}

	if len(d.Weights) > 0 {
		pdf.AddPage()
		pdf.SetFont("Arial", "B", 13)
		pdf.Cell(0, 8, "Weight by week")
		pdf.Ln(9)
		pdf.SetFont("Arial", "B", 10)
		cols := []float64{20, 25, 20, 35, 35, 30}
		for i, h := range []string{"Week", "Trimester", "Entries", "Latest (" + d.Unit + ")", "Gain (" + d.Unit + ")", "Status"} {
			pdf.CellFormat(cols[i], 7, h, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Arial", "", 10)
		for _, w := range d.Weights {
			latest, err := service.FormatWeight(w.LatestKg, d.Unit, 1)
			if err != nil {
				return nil, err
			}
			gain, err := service.FormatWeight(w.GainKg, d.Unit, 1)
			if err != nil {
				return nil, err
			}
			pdf.CellFormat(cols[0], 6, fmt.Sprintf("%d", w.Week), "1", 0, "C", false, 0, "")
			pdf.CellFormat(cols[1], 6, fmt.Sprintf("%d", w.Trimester), "1", 0, "C", false, 0, "")
			pdf.CellFormat(cols[2], 6, fmt.Sprintf("%d", w.Entries), "1", 0, "C", false, 0, "")
			pdf.CellFormat(cols[3], 6, latest, "1", 0, "R", false, 0, "")
			pdf.CellFormat(cols[4], 6, gain, "1", 0, "R", false, 0, "")
			pdf.CellFormat(cols[5], 6, string(w.Status), "1", 0, "C", false, 0, "")
			pdf.Ln(-1)
		}
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("build pdf: %w", err)
	}
	return pdf, nil
}

func Write(w io.Writer, d *Data) error {
	pdf, err := Build(d)
	if err != nil {
		return err
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func WriteFile(path string, d *Data) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create report directory: %w", err)
	}
	pdf, err := Build(d)
	if err != nil {
		return err
	}
	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("write pdf %s: %w", path, err)
	}
	return nil
}
