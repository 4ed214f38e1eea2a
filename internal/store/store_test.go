package store

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/talentscout/hiring-assistant/internal/candidate"
)

func testRecord() *candidate.Record {
	return &candidate.Record{
		Name:       "John Doe",
		Email:      "john@example.com",
		Phone:      "5551234567",
		Experience: "3.5",
		Position:   "Backend Engineer",
		Location:   "Berlin",
		TechStack:  "Go, PostgreSQL",
		TechnicalQA: []candidate.TechnicalQA{
			{
				Technology: "AI-Generated",
				Question:   "What is a goroutine?",
				Answer:     "A lightweight thread.",
				Evaluation: "ACKNOWLEDGMENT: Good.\nSCORE: 8/10",
				Score:      "8/10",
			},
		},
		Status:            candidate.StatusScreened,
		ScreeningDecision: "SCREEN IN",
	}
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(t.TempDir(), zap.NewNop())
	if err != nil {
		t.Fatalf("creating store: %v", err)
	}
	return s
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	s := newTestStore(t)
	rec := testRecord()

	path, err := s.Save(rec)
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	base := filepath.Base(path)
	if !strings.HasPrefix(base, "john_doe_") || !strings.HasSuffix(base, ".json") {
		t.Fatalf("unexpected filename: %s", base)
	}

	if rec.SubmissionTime == "" {
		t.Fatal("expected submission time to be stamped")
	}
	if _, err := time.Parse(time.RFC3339, rec.SubmissionTime); err != nil {
		t.Fatalf("submission time not RFC3339: %v", err)
	}

	loaded, err := s.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if loaded.TechnicalQA[0] != rec.TechnicalQA[0] {
		t.Fatalf("QA entry mismatch: %+v vs %+v", loaded.TechnicalQA[0], rec.TechnicalQA[0])
	}
	loadedCopy := *loaded
	recCopy := *rec
	loadedCopy.TechnicalQA = nil
	recCopy.TechnicalQA = nil
	if !reflect.DeepEqual(loadedCopy, recCopy) {
		t.Fatalf("record mismatch:\nloaded: %+v\nsaved:  %+v", loadedCopy, recCopy)
	}
}

func TestFilenamesDoNotCollide(t *testing.T) {
	s := newTestStore(t)

	base := time.Date(2026, 8, 29, 10, 30, 0, 0, time.UTC)
	calls := 0
	s.now = func() time.Time {
		calls++
		return base.Add(time.Duration(calls) * time.Second)
	}

	first, err := s.Save(testRecord())
	if err != nil {
		t.Fatalf("first save: %v", err)
	}
	second, err := s.Save(testRecord())
	if err != nil {
		t.Fatalf("second save: %v", err)
	}

	if first == second {
		t.Fatalf("expected distinct filenames, both were %s", first)
	}
}

func TestLoadAllSkipsUnreadableEntries(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.Save(testRecord()); err != nil {
		t.Fatalf("save: %v", err)
	}

	// Entries that must be ignored by the listing.
	if err := os.WriteFile(filepath.Join(s.Dir(), "garbage.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(s.Dir(), "notes.txt"), []byte("unrelated"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(s.Dir(), "nested.json"), 0o755); err != nil {
		t.Fatal(err)
	}

	records, err := s.LoadAll()
	if err != nil {
		t.Fatalf("load all: %v", err)
	}

	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].Name != "John Doe" {
		t.Fatalf("unexpected record: %+v", records[0])
	}
}

func TestSessionSaverWritesOnce(t *testing.T) {
	s := newTestStore(t)
	saver := NewSessionSaver(s)

	rec := testRecord()
	first, err := saver.Save(rec)
	if err != nil {
		t.Fatalf("first save: %v", err)
	}
	if !saver.Saved() {
		t.Fatal("expected saver to be marked saved")
	}

	second, err := saver.Save(rec)
	if err != nil {
		t.Fatalf("second save: %v", err)
	}
	if second != first {
		t.Fatalf("expected second save to return the original path, got %s vs %s", second, first)
	}

	entries, err := os.ReadDir(s.Dir())
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected exactly one persisted record, got %d", len(entries))
	}
}

func TestSessionSaverRetriesAfterFailure(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}

	// First attempt fails because the directory is gone.
	if err := os.RemoveAll(dir); err != nil {
		t.Fatal(err)
	}

	saver := NewSessionSaver(s)
	if _, err := saver.Save(testRecord()); err == nil {
		t.Fatal("expected save failure")
	}
	if saver.Saved() {
		t.Fatal("failed save must not mark the session as saved")
	}

	// Restoring the directory lets the retry succeed.
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if _, err := saver.Save(testRecord()); err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	if !saver.Saved() {
		t.Fatal("expected saver to be marked saved after retry")
	}
}

func TestExportCSV(t *testing.T) {
	s := newTestStore(t)

	first := testRecord()
	if _, err := s.Save(first); err != nil {
		t.Fatal(err)
	}

	second := testRecord()
	second.Name = "Jane Roe"
	second.ScreeningDecision = ""
	if _, err := s.Save(second); err != nil {
		t.Fatal(err)
	}

	dest := filepath.Join(t.TempDir(), "candidates.csv")
	if err := s.ExportCSV(dest); err != nil {
		t.Fatalf("export: %v", err)
	}

	file, err := os.Open(dest)
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("reading export: %v", err)
	}

	if len(rows) != 3 {
		t.Fatalf("expected header and 2 rows, got %d", len(rows))
	}

	header := rows[0]
	column := func(name string) int {
		for i, col := range header {
			if col == name {
				return i
			}
		}
		t.Fatalf("column %q missing from header %v", name, header)
		return -1
	}

	names := map[string]bool{}
	for _, row := range rows[1:] {
		names[row[column("name")]] = true
		if qa := row[column("technicalQA")]; !strings.Contains(qa, "What is a goroutine?") {
			t.Fatalf("expected QA serialized into its cell, got %q", qa)
		}
	}
	if !names["John Doe"] || !names["Jane Roe"] {
		t.Fatalf("expected both candidates exported, got %v", names)
	}
}

func TestExportCSVNoRecordsIsNoOp(t *testing.T) {
	s := newTestStore(t)

	dest := filepath.Join(t.TempDir(), "candidates.csv")
	if err := s.ExportCSV(dest); err != nil {
		t.Fatalf("export: %v", err)
	}

	if _, err := os.Stat(dest); !os.IsNotExist(err) {
		t.Fatalf("expected no export file for empty store, got %v", err)
	}
}
