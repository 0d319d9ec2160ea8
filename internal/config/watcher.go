package config

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"
)

// Watcher monitors a configuration file and atomically replaces the current
// [Document] when the file changes and the replacement passes validation.
// Old readers keep the Document they already hold and new readers see the
// new one; the document itself is never mutated in place. Polling (not
// fsnotify) keeps dependencies minimal.
type Watcher struct {
	path      string
	interval  time.Duration
	validator *Validator
	onChange  func(old, new *Document)

	mu       sync.Mutex
	current  *Document
	done     chan struct{}
	stopOnce sync.Once

	// last known file state for change detection
	lastMtime time.Time
	lastHash  [sha256.Size]byte
}

// WatcherOption configures a [Watcher].
type WatcherOption func(*Watcher)

// WithInterval sets the polling interval. The default is 5 seconds.
func WithInterval(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d > 0 {
			w.interval = d
		}
	}
}

// NewWatcher creates a configuration watcher. It loads and validates the
// initial document immediately and starts polling in a background
// goroutine. A nil validator means the default schema and [Requirements].
func NewWatcher(path string, validator *Validator, onChange func(old, new *Document), opts ...WatcherOption) (*Watcher, error) {
	if validator == nil {
		validator = NewValidator(nil)
	}
	w := &Watcher{
		path:      path,
		interval:  5 * time.Second,
		validator: validator,
		onChange:  onChange,
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	doc, hash, mtime, err := w.loadAndHash()
	if err != nil {
		return nil, fmt.Errorf("config: watcher initial load: %w", err)
	}
	w.current = doc
	w.lastHash = hash
	w.lastMtime = mtime

	go w.poll()
	return w, nil
}

// Current returns the most recently accepted document.
func (w *Watcher) Current() *Document {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.current
}

// Stop stops the file watcher.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
	})
}

func (w *Watcher) poll() {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.done:
			return
		case <-ticker.C:
			w.check()
		}
	}
}

// check reads the configuration file and, if its content changed and the
// replacement is execution-ready, swaps the current document and invokes
// the callback.
func (w *Watcher) check() {
	// Quick mtime check first to avoid hashing unchanged files.
	info, err := os.Stat(w.path)
	if err != nil {
		slog.Warn("config watcher: cannot stat file", "path", w.path, "err", err)
		return
	}

	w.mu.Lock()
	mtime := w.lastMtime
	w.mu.Unlock()

	if info.ModTime().Equal(mtime) {
		return
	}

	doc, hash, newMtime, err := w.loadAndHash()
	if err != nil {
		slog.Warn("config watcher: keeping previous configuration", "path", w.path, "err", err)
		return
	}

	w.mu.Lock()

	if hash == w.lastHash {
		// File was touched but content is identical.
		w.lastMtime = newMtime
		w.mu.Unlock()
		return
	}

	old := w.current
	w.current = doc
	w.lastHash = hash
	w.lastMtime = newMtime
	w.mu.Unlock()

	slog.Info("config watcher: configuration reloaded", "path", w.path)

	// Invoke the callback outside the lock so it can safely call Current().
	if w.onChange != nil {
		w.onChange(old, doc)
	}
}

// loadAndHash reads, parses, and validates the configuration file,
// returning the document alongside the file's SHA-256 hash and modification
// time. A document that fails validation is rejected so the caller keeps
// the previous one.
func (w *Watcher) loadAndHash() (*Document, [sha256.Size]byte, time.Time, error) {
	var zeroHash [sha256.Size]byte

	f, err := os.Open(w.path)
	if err != nil {
		return nil, zeroHash, time.Time{}, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, zeroHash, time.Time{}, err
	}

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, zeroHash, time.Time{}, err
	}

	hash := sha256.Sum256(data)

	doc, err := LoadFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, zeroHash, time.Time{}, err
	}

	if res := w.validator.Validate(doc); !res.Clean() {
		var blocking []Finding
		for _, f := range res.Findings {
			if f.Kind != UnknownKeyWarning {
				blocking = append(blocking, f)
			}
		}
		return nil, zeroHash, time.Time{}, fmt.Errorf("config: %d blocking finding(s), first: %s",
			len(blocking), blocking[0])
	}

	return doc, hash, info.ModTime(), nil
}
