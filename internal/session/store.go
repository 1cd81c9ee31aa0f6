package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
)

// ErrNoSession indicates no session file exists in the working directory.
var ErrNoSession = errors.New("no session found - run 'podsmith init' first")

// DefaultFileName is the session snapshot file created in the working
// directory.
const DefaultFileName = "podsmith.json"

// Store owns a session snapshot and serializes all mutation. Every mutator
// that can invalidate previously rendered audio clears the duration map in
// the same critical section, so a subtitle export can never observe stale
// timing data alongside new script content.
type Store struct {
	path string

	mu      sync.Mutex
	current *Session
}

// NewStore creates a store around the snapshot file at path. The file is
// not touched until Init, Load or a mutator runs.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the snapshot file location.
func (st *Store) Path() string { return st.path }

// Init creates a fresh session and writes the snapshot. An existing
// snapshot is an error; init never silently discards work.
func (st *Store) Init() (*Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	if _, err := os.Stat(st.path); err == nil {
		return nil, fmt.Errorf("session file %s already exists", st.path)
	}
	st.current = New()
	if err := st.persist(); err != nil {
		return nil, err
	}
	return st.snapshot(), nil
}

// Load reads the snapshot from disk.
func (st *Store) Load() (*Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	if err := st.load(); err != nil {
		return nil, err
	}
	return st.snapshot(), nil
}

// Update applies fn to the loaded session under the store lock and persists
// the result. fn reports whether its change invalidates rendered audio; when
// it does, the duration map is cleared before the snapshot is written.
func (st *Store) Update(fn func(*Session) (invalidates bool, err error)) (*Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	if err := st.load(); err != nil {
		return nil, err
	}
	invalidates, err := fn(st.current)
	if err != nil {
		return nil, err
	}
	if invalidates {
		if n := len(st.current.Durations); n > 0 {
			log.Debug("clearing recorded durations", "count", n)
		}
		st.current.Durations = map[string]Duration{}
	}
	if err := st.persist(); err != nil {
		return nil, err
	}
	return st.snapshot(), nil
}

// SetLines replaces the dialogue lines wholesale and clears durations.
func (st *Store) SetLines(lines []DialogueLine) (*Session, error) {
	return st.Update(func(s *Session) (bool, error) {
		s.Lines = lines
		return true, nil
	})
}

// SetMode switches the script mode and clears durations.
func (st *Store) SetMode(m Mode) (*Session, error) {
	return st.Update(func(s *Session) (bool, error) {
		s.Mode = m
		return true, nil
	})
}

// SetContent replaces the source material and clears durations.
func (st *Store) SetContent(src Source) (*Session, error) {
	return st.Update(func(s *Session) (bool, error) {
		s.Content = src
		return true, nil
	})
}

// SetTargetMinutes updates the requested script length and clears durations.
func (st *Store) SetTargetMinutes(minutes float64) (*Session, error) {
	return st.Update(func(s *Session) (bool, error) {
		s.TargetMinutes = minutes
		return true, nil
	})
}

// UpdateSpeaker replaces the speaker at index and clears durations; voice
// and style changes invalidate any audio rendered with the old settings.
func (st *Store) UpdateSpeaker(index int, sp Speaker) (*Session, error) {
	return st.Update(func(s *Session) (bool, error) {
		if index < 0 || index >= len(s.Speakers) {
			return false, fmt.Errorf("speaker index %d out of range", index)
		}
		sp.ID = s.Speakers[index].ID // identity is stable across edits
		s.Speakers[index] = sp
		return true, nil
	})
}

// SetSEO stores generated metadata. Metadata is derived output; recording it
// does not invalidate rendered audio.
func (st *Store) SetSEO(meta Meta) (*Session, error) {
	return st.Update(func(s *Session) (bool, error) {
		s.SEO = &meta
		return false, nil
	})
}

// RecordDuration stores the resolved duration for one line.
func (st *Store) RecordDuration(lineID string, d Duration) (*Session, error) {
	return st.Update(func(s *Session) (bool, error) {
		if s.Durations == nil {
			s.Durations = map[string]Duration{}
		}
		s.Durations[lineID] = d
		return false, nil
	})
}

func (st *Store) load() error {
	if st.current != nil {
		return nil
	}
	data, err := os.ReadFile(st.path)
	if errors.Is(err, os.ErrNotExist) {
		return ErrNoSession
	}
	if err != nil {
		return fmt.Errorf("reading session: %w", err)
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("corrupt session file %s: %w", st.path, err)
	}
	if s.Durations == nil {
		s.Durations = map[string]Duration{}
	}
	st.current = &s
	return nil
}

func (st *Store) persist() error {
	data, err := json.MarshalIndent(st.current, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	tmp := st.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing session: %w", err)
	}
	if err := os.Rename(tmp, st.path); err != nil {
		return fmt.Errorf("replacing session: %w", err)
	}
	return nil
}

// snapshot returns a deep copy so callers never alias store-owned state.
func (st *Store) snapshot() *Session {
	cp := *st.current
	cp.Speakers = append([]Speaker(nil), st.current.Speakers...)
	cp.Lines = append([]DialogueLine(nil), st.current.Lines...)
	cp.Durations = make(map[string]Duration, len(st.current.Durations))
	for k, v := range st.current.Durations {
		cp.Durations[k] = v
	}
	if st.current.SEO != nil {
		meta := *st.current.SEO
		cp.SEO = &meta
	}
	return &cp
}

// DefaultPath returns the snapshot location inside dir (or the working
// directory when dir is empty).
func DefaultPath(dir string) string {
	if dir == "" {
		dir = "."
	}
	return filepath.Join(dir, DefaultFileName)
}
