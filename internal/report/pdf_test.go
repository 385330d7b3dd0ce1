package report_test

import (
	"bytes"
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/saadjs/bump-cli/internal/db"
	"github.com/saadjs/bump-cli/internal/model"
	"github.com/saadjs/bump-cli/internal/report"
	"github.com/saadjs/bump-cli/internal/service"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	sqldb, err := db.Open(filepath.Join(t.TempDir(), "bump.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	return sqldb
}

func TestCollectResolvesAllWeeks(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	defer sqldb.Close()

	if err := service.SetProfile(sqldb, service.SetProfileInput{LMPDate: "2026-01-01", StartWeight: 60}); err != nil {
		t.Fatalf("set profile: %v", err)
	}
	if err := service.SetWeekImage(sqldb, model.WeekImage{Week: 12, FruitName: "key lime"}); err != nil {
		t.Fatalf("set week image: %v", err)
	}
	if _, err := service.AddWeightEntry(sqldb, service.WeightEntryInput{Weight: 63, Unit: "kg", RecordedAt: time.Date(2026, 4, 1, 8, 0, 0, 0, time.Local)}); err != nil {
		t.Fatalf("add weight: %v", err)
	}

	data, err := report.Collect(sqldb, time.Date(2026, 4, 20, 9, 0, 0, 0, time.Local), "")
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if len(data.Weeks) != 40 || data.Weeks[11].FruitName != "key lime" {
		t.Fatalf("unexpected week table: %d rows, week 12 %+v", len(data.Weeks), data.Weeks[11])
	}
	if len(data.Weights) != 1 || data.Unit != "kg" {
		t.Fatalf("unexpected weights: %+v", data.Weights)
	}
}

func TestWriteFileProducesPDF(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	defer sqldb.Close()

	data, err := report.Collect(sqldb, time.Now(), "lb")
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	path := filepath.Join(t.TempDir(), "out", "report.pdf")
	if err := report.WriteFile(path, data); err != nil {
		t.Fatalf("write pdf: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read pdf: %v", err)
	}
	if !bytes.HasPrefix(raw, []byte("%PDF")) {
		t.Fatalf("expected pdf header, got %q", raw[:8])
	}
}

func TestWriteToBuffer(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	defer sqldb.Close()

	data, err := report.Collect(sqldb, time.Now(), "kg")
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	var buf bytes.Buffer
	if err := report.Write(&buf, data); err != nil {
		t.Fatalf("write pdf: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatalf("expected non-empty pdf output")
	}
}
