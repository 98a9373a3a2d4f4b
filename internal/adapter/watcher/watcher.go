// Package watcher reloads the knowledge base when its markdown sources change.
package watcher

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const defaultDebounce = 400 * time.Millisecond

// MatchFunc reports whether a path relative to the root is a knowledge source.
type MatchFunc func(relPath string) bool

// KnowledgeWatcher watches a knowledge root recursively. Bursts of changes to
// matching files collapse into a single onChange call after the debounce delay.
type KnowledgeWatcher struct {
	root     string
	match    MatchFunc
	onChange func()
	debounce time.Duration
	logger   *zap.Logger

	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	timer    *time.Timer
	done     chan struct{}
	stopOnce sync.Once
}

// Option configures a KnowledgeWatcher.
type Option func(*KnowledgeWatcher)

func WithLogger(l *zap.Logger) Option {
	return func(w *KnowledgeWatcher) {
		if l != nil {
			w.logger = l
		}
	}
}

func WithDebounce(d time.Duration) Option {
	return func(w *KnowledgeWatcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// New creates a watcher for root. A nil match accepts every file.
func New(root string, match MatchFunc, onChange func(), opts ...Option) *KnowledgeWatcher {
	w := &KnowledgeWatcher{
		root:     root,
		match:    match,
		onChange: onChange,
		debounce: defaultDebounce,
		logger:   zap.NewNop(),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start begins watching. It runs until ctx is cancelled or Stop is called.
func (w *KnowledgeWatcher) Start(ctx context.Context) error {
	root, err := filepath.Abs(w.root)
	if err != nil {
		return err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return fw.Add(path)
		}
		return nil
	})
	if err != nil {
		_ = fw.Close()
		return err
	}

	w.mu.Lock()
	w.root = root
	w.watcher = fw
	w.mu.Unlock()

	w.logger.Info("watching knowledge sources", zap.String("root", root), zap.Duration("debounce", w.debounce))
	go w.run(ctx, fw)
	return nil
}

func (w *KnowledgeWatcher) run(ctx context.Context, fw *fsnotify.Watcher) {
	for {
		select {
		case <-ctx.Done():
			w.Stop()
			return
		case <-w.done:
			return
		case ev, ok := <-fw.Events:
			if !ok {
				return
			}
			w.handleEvent(fw, ev)
		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watcher error", zap.Error(err))
		}
	}
}

func (w *KnowledgeWatcher) handleEvent(fw *fsnotify.Watcher, ev fsnotify.Event) {
	w.logger.Debug("watcher event", zap.String("op", ev.Op.String()), zap.String("path", ev.Name))

	if ev.Has(fsnotify.Create) {
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			if err := fw.Add(ev.Name); err != nil {
				w.logger.Warn("failed to watch new directory", zap.String("path", ev.Name), zap.Error(err))
			}
			return
		}
	}

	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) &&
		!ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return
	}
	if !w.matches(ev.Name) {
		return
	}
	w.schedule()
}

func (w *KnowledgeWatcher) matches(path string) bool {
	if w.match == nil {
		return true
	}
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return false
	}
	return w.match(filepath.ToSlash(rel))
}

func (w *KnowledgeWatcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		select {
		case <-w.done:
			return
		default:
		}
		w.logger.Debug("knowledge sources changed, reloading")
		if w.onChange != nil {
			w.onChange()
		}
	})
}

// Stop stops the watcher and any pending reload. Safe to call more than once.
func (w *KnowledgeWatcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
		w.mu.Lock()
		defer w.mu.Unlock()
		if w.timer != nil {
			w.timer.Stop()
		}
		if w.watcher != nil {
			_ = w.watcher.Close()
		}
	})
}
