package store

import "github.com/talentscout/hiring-assistant/internal/candidate"

// SessionSaver guards the write-once rule for one completed session: the
// first Save persists the record, later calls are no-ops returning the
// original path. A failed write leaves the guard unset so the save can be
// retried.
type SessionSaver struct {
	store *Store
	saved bool
	path  string
}

// NewSessionSaver wraps the store for a single session.
func NewSessionSaver(s *Store) *SessionSaver {
	return &SessionSaver{store: s}
}

// Save persists the record at most once per session.
func (s *SessionSaver) Save(rec *candidate.Record) (string, error) {
	if s.saved {
		return s.path, nil
	}

	path, err := s.store.Save(rec)
	if err != nil {
		return "", err
	}

	s.saved = true
	s.path = path
	return path, nil
}

// Saved reports whether the session record has been persisted.
func (s *SessionSaver) Saved() bool {
	return s.saved
}
