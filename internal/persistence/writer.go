package persistence

import (
	"bytes"
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/palemoky/dynasty-timeline/internal/logger"
	"github.com/palemoky/dynasty-timeline/internal/model"
)

// DefaultDebounce is how long the Writer waits for further changes before saving
const DefaultDebounce = 500 * time.Millisecond

const flushTimeout = 10 * time.Second

// Writer saves store snapshots to a backend in the background.
// Bursts of changes are coalesced into one save after the debounce delay,
// and only collections whose encoded bytes changed are written.
type Writer struct {
	backend Backend
	prefix  string
	delay   time.Duration
	log     *zap.Logger

	mu      sync.Mutex
	pending *model.State
	timer   *time.Timer
	closed  bool

	// writeMu serializes saves and guards last
	writeMu sync.Mutex
	last    map[string][]byte
}

// NewWriter creates a writer; a non-positive delay uses DefaultDebounce
func NewWriter(b Backend, prefix string, delay time.Duration) *Writer {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Writer{
		backend: b,
		prefix:  prefix,
		delay:   delay,
		log:     logger.Named("persistence"),
		last:    make(map[string][]byte),
	}
}

// Prime records st as already stored, so the first save skips unchanged collections
func (w *Writer) Prime(st model.State) error {
	docs, err := Encode(st)
	if err != nil {
		return err
	}
	w.writeMu.Lock()
	defer w.writeMu.Unlock()
	w.last = docs
	return nil
}

// Notify schedules st to be saved. It matches store.Listener.
func (w *Writer) Notify(st model.State) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	w.pending = &st
	if w.timer == nil {
		w.timer = time.AfterFunc(w.delay, w.fire)
		return
	}
	w.timer.Reset(w.delay)
}

func (w *Writer) fire() {
	ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
	defer cancel()
	if err := w.Flush(ctx); err != nil {
		w.log.Error("failed to save dataset", zap.Error(err))
	}
}

// Flush saves any pending snapshot immediately
func (w *Writer) Flush(ctx context.Context) error {
	w.writeMu.Lock()
	defer w.writeMu.Unlock()

	w.mu.Lock()
	st := w.pending
	w.pending = nil
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	w.mu.Unlock()

	if st == nil {
		return nil
	}

	docs, err := Encode(*st)
	if err != nil {
		return err
	}
	changed := make(map[string][]byte)
	for key, data := range docs {
		if !bytes.Equal(w.last[key], data) {
			changed[key] = data
		}
	}
	if len(changed) == 0 {
		return nil
	}

	if err := putAll(ctx, w.backend, w.prefix, changed); err != nil {
		// Keep the snapshot so the next Notify or Flush retries it
		w.mu.Lock()
		if w.pending == nil {
			w.pending = st
		}
		w.mu.Unlock()
		return err
	}
	for key, data := range changed {
		w.last[key] = data
	}
	w.log.Debug("saved dataset", zap.Int("collections", len(changed)))
	return nil
}

// Close flushes pending changes and stops accepting new ones
func (w *Writer) Close(ctx context.Context) error {
	w.mu.Lock()
	w.closed = true
	w.mu.Unlock()
	return w.Flush(ctx)
}

// Reload reads the backend and hands the state to apply when it differs from
// what this writer last saved. It reports whether apply was called.
// A reload discards any snapshot still waiting to be saved, so the external
// edit is not overwritten by the next flush.
func (w *Writer) Reload(ctx context.Context, apply func(model.State)) (bool, error) {
	w.writeMu.Lock()
	defer w.writeMu.Unlock()

	docs, err := readAll(ctx, w.backend, w.prefix)
	if err != nil {
		return false, err
	}
	same := len(docs) == len(w.last)
	for key, data := range docs {
		if !bytes.Equal(w.last[key], data) {
			same = false
			break
		}
	}
	if same {
		return false, nil
	}

	st, err := Decode(docs)
	if err != nil {
		return false, err
	}
	w.mu.Lock()
	if w.pending != nil {
		w.log.Warn("discarding unsaved changes in favour of external edit")
	}
	w.pending = nil
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	w.mu.Unlock()

	w.last = docs
	apply(st)
	return true, nil
}
