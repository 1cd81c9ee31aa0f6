package synth

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"

	"github.com/podsmith/podsmith/internal/archive"
	"github.com/podsmith/podsmith/internal/session"
	"github.com/podsmith/podsmith/internal/voice"
	"github.com/podsmith/podsmith/pkg/wav"
)

// State is the lifecycle of a full-podcast synthesis run.
type State int32

const (
	StateIdle State = iota
	StateRunning
	StateCompleted
	StateFailed
)

// String returns the state name for logs.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

var (
	// ErrNoScript indicates a run was requested before any script exists.
	ErrNoScript = errors.New("no script to synthesize - generate one first")

	// ErrRunInFlight indicates a run was requested while one is active.
	ErrRunInFlight = errors.New("a synthesis run is already in flight")

	// ErrSpeakerNotFound indicates a line references a speaker missing from
	// the roster, which per-line synthesis cannot voice.
	ErrSpeakerNotFound = errors.New("no speaker configured for line")
)

// LineError reports which dialogue line a per-line run failed on. Line is
// 1-based to match the script the user sees.
type LineError struct {
	Line   int
	Reason error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: synthesis failed: %v", e.Line, e.Reason)
}

func (e *LineError) Unwrap() error { return e.Reason }

// DurationResolver resolves playback time of rendered audio. Measure is
// expected to enforce its own bounded wait.
type DurationResolver interface {
	Measure(ctx context.Context, data []byte, ext string) (float64, error)
	Estimate(text string) float64
}

// Options configures an Orchestrator.
type Options struct {
	Encoding  Encoding   // requested provider encoding; defaults to MP3
	PCMFormat wav.Format // layout of raw PCM payloads; defaults to wav.DefaultFormat
	OutDir    string     // artifact output directory; defaults to "."
}

// Orchestrator sequences per-line or whole-conversation synthesis.
//
// Calls are issued strictly sequentially, never in parallel, so artifact and
// duration order always matches dialogue order. There are no automatic
// retries: the first failing unit aborts the rest of the sequence. Durations
// recorded for earlier lines are kept; their artifacts are discarded from
// the final packaging step.
type Orchestrator struct {
	provider Provider
	store    *session.Store
	resolver DurationResolver
	opts     Options

	runMu sync.Mutex // held for the whole of one run
	state atomic.Int32
}

// NewOrchestrator wires an orchestrator over the given collaborators.
func NewOrchestrator(provider Provider, store *session.Store, resolver DurationResolver, opts Options) *Orchestrator {
	if opts.Encoding == "" {
		opts.Encoding = EncodingMP3
	}
	if opts.PCMFormat == (wav.Format{}) {
		opts.PCMFormat = wav.DefaultFormat()
	}
	if opts.OutDir == "" {
		opts.OutDir = "."
	}
	return &Orchestrator{provider: provider, store: store, resolver: resolver, opts: opts}
}

// State returns the current run state.
func (o *Orchestrator) State() State {
	return State(o.state.Load())
}

// Segment is one named per-line artifact.
type Segment struct {
	Name     string
	Artifact Artifact
}

// Result describes a completed run. Exactly one of ArchivePath / OutputPath
// is set: ArchivePath when multiple per-line segments were packaged,
// OutputPath for a joint render or a single segment written directly.
type Result struct {
	Joint       bool
	Segments    []Segment
	ArchivePath string
	OutputPath  string
}

// Run executes one full-podcast synthesis pass.
//
// Topology: multi-speaker scripts with at most two distinct voices are
// rendered as one joint call; single-speaker mode and scripts with more than
// two distinct voices fall back to sequential per-line synthesis.
func (o *Orchestrator) Run(ctx context.Context) (*Result, error) {
	if !o.runMu.TryLock() {
		return nil, ErrRunInFlight
	}
	defer o.runMu.Unlock()
	o.state.Store(int32(StateRunning))

	result, err := o.run(ctx)
	if err != nil {
		o.state.Store(int32(StateFailed))
		return nil, err
	}
	o.state.Store(int32(StateCompleted))
	return result, nil
}

func (o *Orchestrator) run(ctx context.Context) (*Result, error) {
	s, err := o.store.Load()
	if err != nil {
		return nil, err
	}
	if len(s.Lines) == 0 {
		return nil, ErrNoScript
	}

	if s.Mode == session.ModeMulti && s.DistinctVoices() <= 2 {
		return o.runJoint(ctx, s)
	}
	return o.runPerLine(ctx, s)
}

// runJoint renders the whole conversation in one synthesis call. Segment
// boundaries are not recoverable from the merged render, so every line gets
// an estimated duration.
func (o *Orchestrator) runJoint(ctx context.Context, s *session.Session) (*Result, error) {
	active := s.ActiveSpeakers()

	assignments := make([]VoiceAssignment, 0, len(active))
	var directives []string
	names := make([]string, 0, len(active))
	for _, sp := range active {
		assignments = append(assignments, VoiceAssignment{Speaker: sp.Name, Voice: sp.Voice})
		names = append(names, sp.Name)
		if d := voice.Instruction(sp.Name, sp.Style); d != "" {
			directives = append(directives, d)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Read aloud the following conversation between %s.\n", strings.Join(names, " and "))
	for _, d := range directives {
		b.WriteString(d)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	for _, l := range s.Lines {
		fmt.Fprintf(&b, "%s: %s\n", s.SpeakerName(l.SpeakerID), l.Text)
	}

	log.Debug("joint synthesis", "speakers", len(assignments), "lines", len(s.Lines))
	resp, err := o.provider.Synthesize(ctx, Request{
		Text:     b.String(),
		Speakers: assignments,
		Encoding: o.opts.Encoding,
	})
	if err != nil {
		return nil, err
	}
	artifact, err := Containerize(resp.Audio, resp.MIME, o.opts.PCMFormat)
	if err != nil {
		return nil, err
	}

	for _, l := range s.Lines {
		if _, err := o.store.RecordDuration(l.ID, session.Duration{
			Seconds: o.resolver.Estimate(l.Text),
			Source:  session.SourceEstimated,
		}); err != nil {
			return nil, err
		}
	}

	path := filepath.Join(o.opts.OutDir, "podcast_conversation."+artifact.Ext)
	if err := os.WriteFile(path, artifact.Data, 0o644); err != nil {
		return nil, fmt.Errorf("writing conversation audio: %w", err)
	}
	return &Result{Joint: true, OutputPath: path}, nil
}

// runPerLine renders each line with its own synthesis call, fail-fast.
func (o *Orchestrator) runPerLine(ctx context.Context, s *session.Session) (*Result, error) {
	segments := make([]Segment, 0, len(s.Lines))

	for i, line := range s.Lines {
		if err := ctx.Err(); err != nil {
			return nil, &LineError{Line: i + 1, Reason: err}
		}

		sp, ok := s.SpeakerByID(line.SpeakerID)
		if !ok {
			return nil, &LineError{Line: i + 1, Reason: ErrSpeakerNotFound}
		}

		text := line.Text
		if d := voice.Instruction(sp.Name, sp.Style); d != "" {
			text = d + "\n\n" + text
		}

		log.Debug("synthesizing line", "line", i+1, "speaker", sp.Name)
		resp, err := o.provider.Synthesize(ctx, Request{
			Text:     text,
			Voice:    sp.Voice,
			Encoding: o.opts.Encoding,
		})
		if err != nil {
			return nil, &LineError{Line: i + 1, Reason: err}
		}
		artifact, err := Containerize(resp.Audio, resp.MIME, o.opts.PCMFormat)
		if err != nil {
			return nil, &LineError{Line: i + 1, Reason: err}
		}

		// A measurement failure is recorded as the sentinel and the run
		// continues; only synthesis failures abort the sequence.
		d := session.Duration{Source: session.SourceMeasured}
		if seconds, err := o.resolver.Measure(ctx, artifact.Data, artifact.Ext); err != nil {
			log.Warn("duration measurement failed", "line", i+1, "error", err)
			d.Seconds = session.FailedSeconds
		} else {
			d.Seconds = seconds
		}
		if _, err := o.store.RecordDuration(line.ID, d); err != nil {
			return nil, err
		}

		segments = append(segments, Segment{
			Name:     SegmentFileName(i+1, sp.Name, artifact.Ext),
			Artifact: artifact,
		})
	}

	result := &Result{Segments: segments}
	if len(segments) == 1 {
		path := filepath.Join(o.opts.OutDir, segments[0].Name)
		if err := os.WriteFile(path, segments[0].Artifact.Data, 0o644); err != nil {
			return nil, fmt.Errorf("writing segment audio: %w", err)
		}
		result.OutputPath = path
		return result, nil
	}

	entries := make([]archive.Entry, 0, len(segments))
	for _, seg := range segments {
		entries = append(entries, archive.Entry{Name: seg.Name, Data: seg.Artifact.Data})
	}
	path := filepath.Join(o.opts.OutDir, "podcast_audio_segments.zip")
	if err := archive.WriteFile(path, entries); err != nil {
		return nil, err
	}
	result.ArchivePath = path
	return result, nil
}
