// Package watch classifies media files as they appear in a directory.
// File system events are debounced per path and classification is rate limited,
// so a burst of writes to one file yields a single result.
package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/hoaxlens/internal/core/domain"
	"github.com/custodia-labs/hoaxlens/internal/core/ports/driving"
	"github.com/custodia-labs/hoaxlens/internal/logger"
)

// Default configuration values.
const (
	DefaultDebounce      = 500 * time.Millisecond
	DefaultRatePerSecond = 2.0
	DefaultBurst         = 4
)

// ErrClosed is returned by Watch after Close.
var ErrClosed = errors.New("watcher is closed")

// Config holds configuration for a Watcher.
type Config struct {
	// Root is the directory to watch. Subdirectories are not followed.
	Root string

	// Debounce is how long a path must stay quiet before it is classified (default: 500ms).
	Debounce time.Duration

	// RatePerSecond and Burst bound classification throughput (default: 2/s, burst 4).
	RatePerSecond float64
	Burst         int

	// Extensions overrides domain.MediaExtensions.
	Extensions map[string]domain.Modality
}

// Event is the classification of one file.
type Event struct {
	Path string
	Item domain.EvidenceItem
	At   time.Time
}

// Watcher classifies files written to a directory.
type Watcher struct {
	analysis   driving.AnalysisService
	root       string
	debounce   time.Duration
	limiter    *rate.Limiter
	extensions map[string]domain.Modality

	mu      sync.Mutex
	closed  bool
	cancel  context.CancelFunc
	timers  map[string]*time.Timer
	watcher *fsnotify.Watcher
}

// New creates a new watcher.
func New(analysis driving.AnalysisService, cfg Config) *Watcher {
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	if cfg.RatePerSecond <= 0 {
		cfg.RatePerSecond = DefaultRatePerSecond
	}
	if cfg.Burst <= 0 {
		cfg.Burst = DefaultBurst
	}
	if cfg.Extensions == nil {
		cfg.Extensions = domain.MediaExtensions()
	}

	return &Watcher{
		analysis:   analysis,
		root:       cfg.Root,
		debounce:   cfg.Debounce,
		limiter:    rate.NewLimiter(rate.Limit(cfg.RatePerSecond), cfg.Burst),
		extensions: cfg.Extensions,
		timers:     make(map[string]*time.Timer),
	}
}

// Watch starts watching the root directory. The returned channel is closed
// when ctx is cancelled or Close is called.
func (w *Watcher) Watch(ctx context.Context) (<-chan Event, error) {
	info, err := os.Stat(w.root)
	if err != nil {
		return nil, fmt.Errorf("root path error: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root path error: %s is not a directory", w.root)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fsw.Add(w.root); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", w.root, err)
	}

	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		fsw.Close()
		return nil, ErrClosed
	}
	ctx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.watcher = fsw
	w.mu.Unlock()

	ready := make(chan string)
	out := make(chan Event)

	go w.collect(ctx, fsw, ready)
	go w.process(ctx, ready, out)

	logger.Info("Watching %s", w.root)
	return out, nil
}

// collect turns file system events into debounced paths. It owns fsw and
// closes it on return.
func (w *Watcher) collect(ctx context.Context, fsw *fsnotify.Watcher, ready chan<- string) {
	defer w.stopTimers()
	defer fsw.Close() //nolint:errcheck
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-fsw.Events:
			if !ok {
				return
			}
			if _, ok := w.handleFsEvent(ev); ok {
				w.schedule(ctx, ev.Name, ready)
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			logger.Warn("Watch error: %v", err)
		}
	}
}

// schedule (re)starts the debounce timer of a path.
func (w *Watcher) schedule(ctx context.Context, path string, ready chan<- string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if t, ok := w.timers[path]; ok {
		t.Stop()
	}
	w.timers[path] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.timers, path)
		w.mu.Unlock()

		select {
		case ready <- path:
		case <-ctx.Done():
		}
	})
}

func (w *Watcher) stopTimers() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for path, t := range w.timers {
		t.Stop()
		delete(w.timers, path)
	}
}

// process classifies debounced paths.
func (w *Watcher) process(ctx context.Context, ready <-chan string, out chan<- Event) {
	defer close(out)
	for {
		select {
		case <-ctx.Done():
			return
		case path := <-ready:
			if err := w.limiter.Wait(ctx); err != nil {
				return
			}
			ev, ok := w.classify(ctx, path)
			if !ok {
				continue
			}
			select {
			case out <- ev:
			case <-ctx.Done():
				return
			}
		}
	}
}

func (w *Watcher) classify(ctx context.Context, path string) (Event, bool) {
	m, ok := w.modalityOf(path)
	if !ok {
		return Event{}, false
	}

	in := domain.FileInput(path)
	if m == domain.ModalityText {
		data, err := os.ReadFile(path)
		if err != nil {
			logger.Warn("Skipping %s: %v", path, err)
			return Event{}, false
		}
		in = domain.TextInput(strings.TrimSpace(string(data)))
	}

	item, err := w.analysis.Classify(ctx, m, in)
	if err != nil {
		logger.Warn("Skipping %s: %v", path, err)
		return Event{}, false
	}
	return Event{Path: path, Item: item, At: time.Now()}, true
}

// handleFsEvent reports whether an event names a file worth classifying.
// Only creations and writes of visible regular files with a known extension qualify.
func (w *Watcher) handleFsEvent(ev fsnotify.Event) (domain.Modality, bool) {
	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
		return "", false
	}
	if strings.HasPrefix(filepath.Base(ev.Name), ".") {
		return "", false
	}
	m, ok := w.modalityOf(ev.Name)
	if !ok {
		return "", false
	}
	info, err := os.Stat(ev.Name)
	if err != nil || !info.Mode().IsRegular() {
		return "", false
	}
	return m, true
}

func (w *Watcher) modalityOf(path string) (domain.Modality, bool) {
	m, ok := w.extensions[strings.ToLower(filepath.Ext(path))]
	return m, ok
}

// Close stops watching. It is safe to call more than once.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	cancel, fsw := w.cancel, w.watcher
	w.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if fsw != nil {
		return fsw.Close()
	}
	return nil
}
