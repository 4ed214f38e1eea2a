// Package store persists completed candidate records as one JSON file per
// record and can enumerate or export everything collected so far.
package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/talentscout/hiring-assistant/internal/candidate"
)

const recordExt = ".json"

// Store writes and reads candidate records under a single directory.
type Store struct {
	dir    string
	logger *zap.Logger
	now    func() time.Time
}

// New creates a store rooted at dir, creating the directory when missing.
func New(dir string, log *zap.Logger) (*Store, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("store directory is required")
	}
	if log == nil {
		log = zap.NewNop()
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create store directory %q: %w", dir, err)
	}

	return &Store{dir: dir, logger: log, now: time.Now}, nil
}

// Dir returns the directory records are written to.
func (s *Store) Dir() string {
	return s.dir
}

// Save stamps the record with the submission time and writes it to a file
// named after the slugified candidate name and the timestamp. It returns the
// path of the written file.
func (s *Store) Save(rec *candidate.Record) (string, error) {
	if rec == nil {
		return "", fmt.Errorf("record is required")
	}

	now := s.now()
	rec.SubmissionTime = now.Format(time.RFC3339)

	filename := fmt.Sprintf("%s_%s%s", rec.Slug(), now.Format("20060102_150405"), recordExt)
	path := filepath.Join(s.dir, filename)

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal candidate record: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write candidate record %q: %w", path, err)
	}

	s.logger.Info("candidate record saved",
		zap.String("path", path),
		zap.String("candidate", rec.Name),
	)

	return path, nil
}

// Load reads a single record by path.
func (s *Store) Load(path string) (*candidate.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read candidate record %q: %w", path, err)
	}

	var rec candidate.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode candidate record %q: %w", path, err)
	}

	return &rec, nil
}

// LoadAll enumerates every record in the store. Unreadable or non-matching
// entries are skipped with a warning rather than failing the listing.
func (s *Store) LoadAll() ([]*candidate.Record, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read store directory %q: %w", s.dir, err)
	}

	var records []*candidate.Record
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != recordExt {
			continue
		}

		rec, err := s.Load(filepath.Join(s.dir, entry.Name()))
		if err != nil {
			s.logger.Warn("skipping unreadable candidate record",
				zap.String("file", entry.Name()),
				zap.Error(err),
			)
			continue
		}

		records = append(records, rec)
	}

	return records, nil
}

// ExportCSV flattens all records into a CSV at dest. Columns are the sorted
// union of all keys seen across records; absent fields are left blank. When
// the store holds no records nothing is written.
func (s *Store) ExportCSV(dest string) error {
	records, err := s.LoadAll()
	if err != nil {
		return err
	}

	if len(records) == 0 {
		s.logger.Info("no candidate records to export")
		return nil
	}

	rows := make([]map[string]string, 0, len(records))
	keys := make(map[string]struct{})
	for _, rec := range records {
		row, err := flatten(rec)
		if err != nil {
			return err
		}
		for key := range row {
			keys[key] = struct{}{}
		}
		rows = append(rows, row)
	}

	columns := make([]string, 0, len(keys))
	for key := range keys {
		columns = append(columns, key)
	}
	sort.Strings(columns)

	file, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("create export file %q: %w", dest, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(columns); err != nil {
		return fmt.Errorf("write export header: %w", err)
	}

	for _, row := range rows {
		line := make([]string, len(columns))
		for i, column := range columns {
			line[i] = row[column]
		}
		if err := w.Write(line); err != nil {
			return fmt.Errorf("write export row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush export file: %w", err)
	}

	s.logger.Info("candidate records exported",
		zap.String("path", dest),
		zap.Int("count", len(records)),
	)

	return nil
}

// flatten turns a record into CSV cells keyed by its JSON field names.
// The technicalQA list is serialized as JSON into its single cell.
func flatten(rec *candidate.Record) (map[string]string, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("marshal candidate record: %w", err)
	}

	var generic map[string]any
	if err := json.Unmarshal(data, &generic); err != nil {
		return nil, fmt.Errorf("flatten candidate record: %w", err)
	}

	row := make(map[string]string, len(generic))
	for key, value := range generic {
		switch v := value.(type) {
		case string:
			row[key] = v
		case nil:
			row[key] = ""
		default:
			cell, err := json.Marshal(v)
			if err != nil {
				return nil, fmt.Errorf("flatten field %q: %w", key, err)
			}
			row[key] = string(cell)
		}
	}

	return row, nil
}
