// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package session holds the single live conversion session and the state
// machine that drives it: idle, validated, converting, converted.
//
// The record is mutated only through Orchestrator methods. A run walks the
// fixed checkpoints 20, 40, 60, 80, 100 with a pause before each; Reset and
// SetMode cancel a run in flight, and a cancelled run never writes to the
// session again. Observers receive every state change as a ProgressEvent
// through Subscribe.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pdiddy/doc-converter/internal/synth"
	"github.com/pdiddy/doc-converter/internal/upload"
	"github.com/pdiddy/doc-converter/pkg/types"
)

var (
	// ErrInvalidTransition is returned when an operation is not allowed from
	// the current status. The session is left unchanged.
	ErrInvalidTransition = errors.New("invalid session transition")

	// ErrBusy is returned when an operation would interfere with the run in
	// flight, including a second Start.
	ErrBusy = errors.New("conversion already in progress")

	// ErrCanceled is returned by Start when its run was cancelled before
	// producing a result.
	ErrCanceled = errors.New("conversion canceled")
)

// Cancellation causes recorded on a run's context.
var (
	errResetRequested = errors.New("session reset")
	errModeChanged    = errors.New("mode changed")
)

// checkpoints is the fixed progress sequence of every run.
var checkpoints = [...]int{20, 40, 60, 80, 100}

// Checkpoints returns the progress values a run applies, in order.
func Checkpoints() []int {
	return append([]int(nil), checkpoints[:]...)
}

const subscriberBuffer = 16

// Recorder receives the snapshot of every completed run.
type Recorder interface {
	RecordRun(ctx context.Context, snap types.Snapshot) error
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Orchestrator) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithStageInterval overrides the pause before each checkpoint.
func WithStageInterval(d time.Duration) Option {
	return func(o *Orchestrator) {
		if d > 0 {
			o.interval = d
		}
	}
}

// WithRecorder registers a recorder for completed runs.
func WithRecorder(r Recorder) Option {
	return func(o *Orchestrator) {
		o.recorder = r
	}
}

// Orchestrator owns the session record. All methods are safe for
// concurrent use.
type Orchestrator struct {
	logger   *slog.Logger
	interval time.Duration
	recorder Recorder

	mu       sync.Mutex
	mode     types.Mode
	status   types.Status
	progress int
	file     *types.UploadedFile
	result   *types.ResultMetadata
	runID    string
	cancel   context.CancelCauseFunc // set only while converting

	subs    map[int]chan types.ProgressEvent
	nextSub int
}

// New creates an idle session in cfg.Mode.
func New(cfg types.Config, opts ...Option) *Orchestrator {
	cfg = cfg.WithDefaults()
	o := &Orchestrator{
		logger:   slog.Default(),
		interval: cfg.StageInterval,
		mode:     cfg.Mode,
		status:   types.StatusIdle,
		subs:     make(map[int]chan types.ProgressEvent),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Mode returns the selected mode.
func (o *Orchestrator) Mode() types.Mode {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.mode
}

// Snapshot returns a copy of the session record.
func (o *Orchestrator) Snapshot() types.Snapshot {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.snapshotLocked()
}

// SelectFile validates c and attaches it, replacing any previous file and
// discarding any previous result. A rejected candidate leaves the session
// unchanged and the *upload.ValidationError is returned.
func (o *Orchestrator) SelectFile(c types.Candidate) error {
	f, err := upload.Validate(c)
	if err != nil {
		o.logger.Debug("candidate rejected", "name", c.Name, "mime_type", c.MimeType, "error", err)
		return err
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	if o.status == types.StatusConverting {
		return fmt.Errorf("%w: cannot replace file while converting", ErrBusy)
	}
	o.file = &f
	o.status = types.StatusValidated
	o.progress = 0
	o.result = nil
	o.logger.Info("file selected", "name", f.Name, "size", f.Size, "mode", o.mode)
	o.publishLocked()
	return nil
}

// RemoveFile detaches the file of a validated session.
func (o *Orchestrator) RemoveFile() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.status != types.StatusValidated {
		return fmt.Errorf("%w: remove file from %s", ErrInvalidTransition, o.status)
	}
	o.file = nil
	o.status = types.StatusIdle
	o.logger.Info("file removed", "mode", o.mode)
	o.publishLocked()
	return nil
}

// Reset returns the session to idle from any status, keeping the mode. A
// run in flight is cancelled before Reset returns.
func (o *Orchestrator) Reset() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.resetLocked(errResetRequested)
	o.publishLocked()
}

// SetMode selects m. Outside idle it resets the session first, cancelling
// any run in flight.
func (o *Orchestrator) SetMode(m types.Mode) error {
	if !m.Valid() {
		return fmt.Errorf("%w: %q", types.ErrUnknownMode, m)
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.status != types.StatusIdle {
		o.resetLocked(errModeChanged)
	}
	o.mode = m
	o.logger.Info("mode selected", "mode", m)
	o.publishLocked()
	return nil
}

// Outcome is how a run started with Begin ended.
type Outcome struct {
	Result types.ResultMetadata
	Err    error
}

// Start runs a conversion of the attached file and blocks until it ends.
// It is valid only from validated. On success the session is converted and
// the result is returned. If the run is cancelled by Reset, SetMode, or ctx,
// Start returns an error matching ErrCanceled and no result is stored; a
// ctx cancellation also returns the session to idle.
func (o *Orchestrator) Start(ctx context.Context) (types.ResultMetadata, error) {
	done, err := o.Begin(ctx)
	if err != nil {
		return types.ResultMetadata{}, err
	}
	out := <-done
	return out.Result, out.Err
}

// Begin is Start without the wait: the session is converting when Begin
// returns, and the run's Outcome is delivered on the returned channel.
func (o *Orchestrator) Begin(ctx context.Context) (<-chan Outcome, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	switch o.status {
	case types.StatusValidated:
	case types.StatusConverting:
		return nil, ErrBusy
	default:
		return nil, fmt.Errorf("%w: start from %s", ErrInvalidTransition, o.status)
	}

	runCtx, cancel := context.WithCancelCause(ctx)
	runID := uuid.NewString()
	mode := o.mode
	o.runID = runID
	o.cancel = cancel
	o.status = types.StatusConverting
	o.progress = 0
	o.logger.Info("conversion started", "run_id", runID, "mode", mode, "file", o.file.Name)
	o.publishLocked()

	done := make(chan Outcome, 1)
	go func() {
		defer close(done)
		defer cancel(nil)
		result, err := o.run(ctx, runCtx, runID, mode)
		done <- Outcome{Result: result, Err: err}
	}()
	return done, nil
}

// run walks the checkpoints of one run.
func (o *Orchestrator) run(ctx, runCtx context.Context, runID string, mode types.Mode) (types.ResultMetadata, error) {
	timer := time.NewTimer(o.interval)
	defer timer.Stop()

	for i, cp := range checkpoints {
		if i > 0 {
			timer.Reset(o.interval)
		}
		select {
		case <-runCtx.Done():
			return types.ResultMetadata{}, o.abort(runCtx, runID)
		case <-timer.C:
		}

		var result *types.ResultMetadata
		if i == len(checkpoints)-1 {
			r, err := synth.Synthesize(mode)
			if err != nil {
				o.mu.Lock()
				if o.runID == runID && o.status == types.StatusConverting {
					o.resetLocked(err)
					o.publishLocked()
				}
				o.mu.Unlock()
				return types.ResultMetadata{}, err
			}
			result = &r
		}

		snap, ok := o.apply(runCtx, runID, cp, result)
		if !ok {
			return types.ResultMetadata{}, o.abort(runCtx, runID)
		}
		if result != nil {
			o.record(ctx, snap)
			return *result, nil
		}
	}
	panic("unreachable")
}

// apply writes checkpoint cp if the run is still the live one. When result
// is non-nil the run completes in the same critical section.
func (o *Orchestrator) apply(runCtx context.Context, runID string, cp int, result *types.ResultMetadata) (types.Snapshot, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.runID != runID || o.status != types.StatusConverting || runCtx.Err() != nil {
		return types.Snapshot{}, false
	}

	o.progress = cp
	if result != nil {
		o.result = result
		o.status = types.StatusConverted
		o.cancel = nil
		o.logger.Info("conversion finished", "run_id", runID, "mode", o.mode)
	} else {
		o.logger.Debug("checkpoint applied", "run_id", runID, "progress", cp)
	}
	o.publishLocked()
	return o.snapshotLocked(), true
}

// abort finishes a cancelled run. If the run is still live (its parent ctx
// was cancelled rather than the session being reset) the session is reset.
func (o *Orchestrator) abort(runCtx context.Context, runID string) error {
	cause := context.Cause(runCtx)
	o.mu.Lock()
	if o.runID == runID && o.status == types.StatusConverting {
		o.resetLocked(cause)
		o.publishLocked()
	}
	o.mu.Unlock()
	o.logger.Info("conversion canceled", "run_id", runID, "cause", cause)
	return fmt.Errorf("%w: %w", ErrCanceled, cause)
}

func (o *Orchestrator) record(ctx context.Context, snap types.Snapshot) {
	if o.recorder == nil {
		return
	}
	if err := o.recorder.RecordRun(ctx, snap); err != nil {
		o.logger.Warn("recording run failed", "run_id", snap.RunID, "error", err)
	}
}

func (o *Orchestrator) resetLocked(cause error) {
	if o.cancel != nil {
		o.cancel(cause)
		o.cancel = nil
	}
	o.status = types.StatusIdle
	o.file = nil
	o.progress = 0
	o.result = nil
	o.logger.Info("session reset", "mode", o.mode, "cause", cause)
}

func (o *Orchestrator) snapshotLocked() types.Snapshot {
	s := types.Snapshot{
		Mode:     o.mode,
		Status:   o.status,
		Progress: o.progress,
		RunID:    o.runID,
	}
	if o.file != nil {
		f := *o.file
		s.File = &f
	}
	if o.result != nil {
		r := *o.result
		r.Metrics = append([]types.Metric(nil), o.result.Metrics...)
		s.Result = &r
	}
	return s
}
