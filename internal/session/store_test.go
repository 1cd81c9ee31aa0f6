package session

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/podsmith/podsmith/internal/voice"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	st := NewStore(filepath.Join(t.TempDir(), DefaultFileName))
	if _, err := st.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	return st
}

func seedDurations(t *testing.T, st *Store) {
	t.Helper()
	if _, err := st.SetLines([]DialogueLine{
		{ID: "l1", SpeakerID: "speaker1", Text: "Hello there."},
		{ID: "l2", SpeakerID: "speaker2", Text: "Good to see you."},
	}); err != nil {
		t.Fatalf("SetLines() error = %v", err)
	}
	for _, id := range []string{"l1", "l2"} {
		if _, err := st.RecordDuration(id, Duration{Seconds: 2.5, Source: SourceMeasured}); err != nil {
			t.Fatalf("RecordDuration() error = %v", err)
		}
	}
}

func TestInitRefusesExistingSession(t *testing.T) {
	st := newTestStore(t)
	if _, err := st.Init(); err == nil {
		t.Error("second Init() succeeded, want error")
	}
}

func TestLoadMissingSession(t *testing.T) {
	st := NewStore(filepath.Join(t.TempDir(), DefaultFileName))
	if _, err := st.Load(); !errors.Is(err, ErrNoSession) {
		t.Errorf("Load() error = %v, want ErrNoSession", err)
	}
}

func TestInvalidatingMutations(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(st *Store) error
	}{
		{
			name: "script content change",
			mutate: func(st *Store) error {
				_, err := st.SetLines([]DialogueLine{{ID: "l3", SpeakerID: "speaker1", Text: "New script."}})
				return err
			},
		},
		{
			name: "speaker voice change",
			mutate: func(st *Store) error {
				s, err := st.Load()
				if err != nil {
					return err
				}
				sp := s.Speakers[0]
				sp.Voice = "cmn-TW-Standard-B"
				_, err = st.UpdateSpeaker(0, sp)
				return err
			},
		},
		{
			name: "speaker style change",
			mutate: func(st *Store) error {
				s, err := st.Load()
				if err != nil {
					return err
				}
				sp := s.Speakers[0]
				sp.Style = voice.Style{Emotion: voice.EmotionExcited}
				_, err = st.UpdateSpeaker(0, sp)
				return err
			},
		},
		{
			name: "script mode change",
			mutate: func(st *Store) error {
				_, err := st.SetMode(ModeSingle)
				return err
			},
		},
		{
			name: "target length change",
			mutate: func(st *Store) error {
				_, err := st.SetTargetMinutes(12)
				return err
			},
		},
		{
			name: "source content change",
			mutate: func(st *Store) error {
				_, err := st.SetContent(Source{URL: "https://example.com", Text: "fresh content"})
				return err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := newTestStore(t)
			seedDurations(t, st)

			if err := tt.mutate(st); err != nil {
				t.Fatalf("mutation error = %v", err)
			}
			s, err := st.Load()
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if len(s.Durations) != 0 {
				t.Errorf("durations after mutation = %d entries, want empty map", len(s.Durations))
			}
		})
	}
}

func TestRecordDurationDoesNotInvalidate(t *testing.T) {
	st := newTestStore(t)
	seedDurations(t, st)

	s, err := st.RecordDuration("l1", Duration{Seconds: FailedSeconds, Source: SourceMeasured})
	if err != nil {
		t.Fatalf("RecordDuration() error = %v", err)
	}
	if len(s.Durations) != 2 {
		t.Errorf("durations = %d entries, want 2", len(s.Durations))
	}
	if d := s.Durations["l1"]; d.OK() {
		t.Error("failure sentinel reported OK()")
	}
}

func TestSetSEODoesNotInvalidate(t *testing.T) {
	st := newTestStore(t)
	seedDurations(t, st)

	s, err := st.SetSEO(Meta{Title: "t", Description: "d"})
	if err != nil {
		t.Fatalf("SetSEO() error = %v", err)
	}
	if len(s.Durations) != 2 {
		t.Errorf("durations = %d entries, want 2 (metadata must not invalidate)", len(s.Durations))
	}
}

func TestStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultFileName)

	st := NewStore(path)
	if _, err := st.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	seedDurations(t, st)

	// A second store over the same file sees the persisted state.
	again, err := NewStore(path).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(again.Lines) != 2 || len(again.Durations) != 2 {
		t.Errorf("reloaded session has %d lines, %d durations; want 2, 2",
			len(again.Lines), len(again.Durations))
	}
	if again.Mode != ModeMulti {
		t.Errorf("reloaded mode = %q, want %q", again.Mode, ModeMulti)
	}
}

func TestSpeakerNameFallback(t *testing.T) {
	s := New()
	if got := s.SpeakerName("speaker1"); got != "Host Alpha" {
		t.Errorf("SpeakerName(speaker1) = %q", got)
	}
	if got := s.SpeakerName("gone"); got != UnknownSpeakerName {
		t.Errorf("SpeakerName(gone) = %q, want %q", got, UnknownSpeakerName)
	}
}

func TestActiveSpeakers(t *testing.T) {
	s := New()
	if got := len(s.ActiveSpeakers()); got != 2 {
		t.Errorf("multi mode active speakers = %d, want 2", got)
	}
	s.Mode = ModeSingle
	if got := len(s.ActiveSpeakers()); got != 1 {
		t.Errorf("single mode active speakers = %d, want 1", got)
	}
}

func TestSnapshotIsolation(t *testing.T) {
	st := newTestStore(t)
	seedDurations(t, st)

	snap, err := st.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	snap.Lines[0].Text = "mutated copy"
	snap.Durations["l1"] = Duration{Seconds: 99}

	fresh, err := st.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if fresh.Lines[0].Text != "Hello there." {
		t.Error("snapshot mutation leaked into store state")
	}
	if fresh.Durations["l1"].Seconds == 99 {
		t.Error("duration mutation leaked into store state")
	}
}
