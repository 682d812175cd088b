// Package persist moves roster snapshots to storage off the caller's path.
//
// A single goroutine owns all writes, so they can never land out of order.
// Snapshots submitted while a write is pending replace each other; only the
// newest one is written once the debounce window closes.
package persist

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/mcoot/benched/internal/model"
	"github.com/mcoot/benched/internal/storage"
)

// Config holds writer timing settings
type Config struct {
	// Debounce is how long the writer waits for further changes before writing
	Debounce time.Duration
	// WriteTimeout bounds a single SaveRoster call
	WriteTimeout time.Duration
}

// DefaultConfig returns sensible defaults for the writer
func DefaultConfig() Config {
	return Config{
		Debounce:     200 * time.Millisecond,
		WriteTimeout: 10 * time.Second,
	}
}

// Result describes one completed write
type Result struct {
	Seq     uint64
	Players int
	Err     error
	At      time.Time
}

// Writer serialises roster saves
type Writer struct {
	storage storage.Storage
	cfg     Config
	logger  *slog.Logger

	mu         sync.Mutex
	pending    []model.Player
	hasPending bool
	submitted  uint64
	written    uint64
	lastErr    error
	progress   chan struct{}
	listeners  []func(Result)
	closed     bool

	wake     chan struct{}
	flushNow chan struct{}
	done     chan struct{}
	stopped  chan struct{}
	stopOnce sync.Once
}

// New creates a writer and starts its goroutine
func New(store storage.Storage, cfg Config, logger *slog.Logger) *Writer {
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = DefaultConfig().WriteTimeout
	}
	w := &Writer{
		storage:  store,
		cfg:      cfg,
		logger:   logger.With(slog.String("component", "persist")),
		progress: make(chan struct{}),
		wake:     make(chan struct{}, 1),
		flushNow: make(chan struct{}, 1),
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
	go w.run()
	return w
}

// OnResult registers fn to be called after every write attempt.
// fn runs on the writer goroutine and must not call back into the writer.
func (w *Writer) OnResult(fn func(Result)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.listeners = append(w.listeners, fn)
}

// Submit queues players to be written. It never blocks on I/O.
func (w *Writer) Submit(players []model.Player) {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		w.logger.Warn("roster change dropped, writer closed", slog.Int("players", len(players)))
		return
	}
	w.pending = model.ClonePlayers(players)
	w.hasPending = true
	w.submitted++
	w.mu.Unlock()

	signal(w.wake)
}

// Flush waits until everything submitted so far has been written and returns
// the error from the most recent write, if any.
func (w *Writer) Flush(ctx context.Context) error {
	for {
		w.mu.Lock()
		if w.written >= w.submitted {
			err := w.lastErr
			w.mu.Unlock()
			return err
		}
		progress := w.progress
		w.mu.Unlock()

		signal(w.flushNow)
		signal(w.wake)

		select {
		case <-progress:
		case <-w.stopped:
			w.mu.Lock()
			err := w.lastErr
			w.mu.Unlock()
			return err
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// LastError returns the error from the most recent write, nil if it succeeded
func (w *Writer) LastError() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastErr
}

// Close writes anything still pending and stops the writer
func (w *Writer) Close() error {
	w.stopOnce.Do(func() {
		close(w.done)
	})
	<-w.stopped
	return w.LastError()
}

func (w *Writer) run() {
	defer close(w.stopped)
	for {
		select {
		case <-w.wake:
		case <-w.done:
			w.stop()
			return
		}

		if w.cfg.Debounce > 0 {
			timer := time.NewTimer(w.cfg.Debounce)
			select {
			case <-timer.C:
			case <-w.flushNow:
				timer.Stop()
			case <-w.done:
				timer.Stop()
			}
		}

		w.writePending()
	}
}

func (w *Writer) stop() {
	w.mu.Lock()
	w.closed = true
	w.mu.Unlock()
	w.writePending()
}

func (w *Writer) writePending() {
	w.mu.Lock()
	if !w.hasPending {
		w.mu.Unlock()
		return
	}
	players := w.pending
	seq := w.submitted
	w.pending = nil
	w.hasPending = false
	w.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), w.cfg.WriteTimeout)
	err := w.storage.SaveRoster(ctx, players)
	cancel()

	if err != nil {
		w.logger.Error("roster write failed",
			slog.Uint64("seq", seq),
			slog.Int("players", len(players)),
			slog.Any("error", err))
	} else {
		w.logger.Debug("roster written",
			slog.Uint64("seq", seq),
			slog.Int("players", len(players)))
	}

	w.mu.Lock()
	listeners := append([]func(Result){}, w.listeners...)
	w.mu.Unlock()

	// listeners see the result before Flush callers are released
	result := Result{Seq: seq, Players: len(players), Err: err, At: time.Now()}
	for _, fn := range listeners {
		fn(result)
	}

	w.mu.Lock()
	w.written = seq
	w.lastErr = err
	close(w.progress)
	w.progress = make(chan struct{})
	w.mu.Unlock()
}

// signal does a non-blocking send on a 1-buffered channel
func signal(ch chan struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}
