// Package filewatch turns filesystem notifications into debounced change
// events that subscribers can filter by glob pattern.
package filewatch

import (
	"context"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/oklog/ulid/v2"

	"github.com/odvcencio/gridview/pkg/errors"
	"github.com/odvcencio/gridview/pkg/logging"
)

// ChangeType describes the kind of file change observed.
type ChangeType string

const (
	ChangeCreated  ChangeType = "created"
	ChangeModified ChangeType = "modified"
	ChangeDeleted  ChangeType = "deleted"
	ChangeRenamed  ChangeType = "renamed"
)

const (
	defaultMaxHistory = 100
	defaultDebounce   = 100 * time.Millisecond
)

// FileChange records a change to a watched file.
type FileChange struct {
	Path    string
	Type    ChangeType
	Size    int64
	ModTime time.Time
}

// FileChangeHandler receives file change notifications.
type FileChangeHandler func(change FileChange)

// Subscription binds a pattern to a handler.
type Subscription struct {
	ID      string
	Pattern string
	Handler FileChangeHandler
}

// Option configures a FileWatcher.
type Option func(*FileWatcher)

// WithDebounce sets how long a file must stay quiet before its change is
// delivered. Editors often write a file in several steps.
func WithDebounce(d time.Duration) Option {
	return func(fw *FileWatcher) {
		if d > 0 {
			fw.debounce = d
		}
	}
}

// WithLogger sets the logger used for watch errors.
func WithLogger(l *logging.Logger) Option {
	return func(fw *FileWatcher) {
		if l != nil {
			fw.logger = l
		}
	}
}

// FileWatcher tracks file changes and fans them out to subscribers.
type FileWatcher struct {
	mu            sync.RWMutex
	subscriptions map[string]*Subscription
	recentChanges []FileChange
	maxHistory    int
	debounce      time.Duration
	logger        *logging.Logger
}

// NewFileWatcher creates a watcher with bounded history.
func NewFileWatcher(maxHistory int, opts ...Option) *FileWatcher {
	if maxHistory <= 0 {
		maxHistory = defaultMaxHistory
	}
	fw := &FileWatcher{
		subscriptions: make(map[string]*Subscription),
		maxHistory:    maxHistory,
		debounce:      defaultDebounce,
		logger:        logging.Discard(),
	}
	for _, opt := range opts {
		opt(fw)
	}
	return fw
}

// Subscribe registers a file change handler for a glob pattern.
func (fw *FileWatcher) Subscribe(pattern string, handler FileChangeHandler) string {
	if fw == nil || handler == nil {
		return ""
	}
	id := ulid.Make().String()
	sub := &Subscription{
		ID:      id,
		Pattern: strings.TrimSpace(pattern),
		Handler: handler,
	}
	fw.mu.Lock()
	if fw.subscriptions == nil {
		fw.subscriptions = make(map[string]*Subscription)
	}
	fw.subscriptions[id] = sub
	fw.mu.Unlock()
	return id
}

// Unsubscribe removes a subscription.
func (fw *FileWatcher) Unsubscribe(id string) {
	if fw == nil || strings.TrimSpace(id) == "" {
		return
	}
	fw.mu.Lock()
	delete(fw.subscriptions, id)
	fw.mu.Unlock()
}

// Notify publishes a file change event.
func (fw *FileWatcher) Notify(change FileChange) {
	if fw == nil {
		return
	}
	fw.mu.Lock()
	fw.ensureHistoryLocked()
	fw.recentChanges = append(fw.recentChanges, change)
	if len(fw.recentChanges) > fw.maxHistory {
		fw.recentChanges = fw.recentChanges[len(fw.recentChanges)-fw.maxHistory:]
	}
	subs := make([]*Subscription, 0, len(fw.subscriptions))
	for _, sub := range fw.subscriptions {
		subs = append(subs, sub)
	}
	fw.mu.Unlock()

	for _, sub := range subs {
		if sub == nil || sub.Handler == nil {
			continue
		}
		if matchesPattern(sub.Pattern, change.Path) {
			sub.Handler(change)
		}
	}
}

// RecentChanges returns the most recent changes (newest first).
func (fw *FileWatcher) RecentChanges(limit int) []FileChange {
	if fw == nil {
		return nil
	}
	fw.mu.RLock()
	defer fw.mu.RUnlock()
	if limit <= 0 || limit > len(fw.recentChanges) {
		limit = len(fw.recentChanges)
	}
	out := make([]FileChange, 0, limit)
	for i := len(fw.recentChanges) - 1; i >= len(fw.recentChanges)-limit; i-- {
		out = append(out, fw.recentChanges[i])
	}
	return out
}

// Watch starts delivering changes to the given files or directories until
// ctx is done. Files are watched through their parent directory so that
// atomic saves, which replace the file, are still seen.
func (fw *FileWatcher) Watch(ctx context.Context, paths ...string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "failed to create file watcher")
	}

	targets := make(map[string]bool)
	whole := make(map[string]bool)
	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			_ = watcher.Close()
			return errors.Wrap(err, errors.ErrCodeInvalidInput, "invalid watch path").WithContext("path", p)
		}
		dir := filepath.Dir(abs)
		if info, err := os.Stat(abs); err == nil && info.IsDir() {
			dir = abs
			whole[abs] = true
		} else {
			targets[abs] = true
		}
		if dirs[dir] {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			_ = watcher.Close()
			return errors.Wrap(err, errors.ErrCodeInvalidInput, "failed to watch path").WithContext("path", p)
		}
		dirs[dir] = true
		fw.logger.Debug("watching path", slog.String("path", dir))
	}

	relevant := func(name string) bool {
		abs, err := filepath.Abs(name)
		if err != nil {
			return false
		}
		return targets[abs] || whole[filepath.Dir(abs)]
	}

	go fw.run(ctx, watcher, relevant)
	return nil
}

func (fw *FileWatcher) run(ctx context.Context, watcher *fsnotify.Watcher, relevant func(string) bool) {
	defer watcher.Close()

	pending := make(map[string]ChangeType)
	var order []string
	timer := time.NewTimer(fw.debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case evt, ok := <-watcher.Events:
			if !ok {
				return
			}
			kind, ok := changeType(evt.Op)
			if !ok || !relevant(evt.Name) {
				continue
			}
			fw.logger.Debug("file event", slog.String("event", evt.String()))
			if _, seen := pending[evt.Name]; !seen {
				order = append(order, evt.Name)
			}
			pending[evt.Name] = merge(pending[evt.Name], kind)
			timer.Reset(fw.debounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			fw.logger.Warn("file watch error", slog.String("error", err.Error()))
		case <-timer.C:
			for _, name := range order {
				fw.Notify(describe(name, pending[name]))
			}
			clear(pending)
			order = order[:0]
		}
	}
}

func changeType(op fsnotify.Op) (ChangeType, bool) {
	switch {
	case op.Has(fsnotify.Remove):
		return ChangeDeleted, true
	case op.Has(fsnotify.Rename):
		return ChangeRenamed, true
	case op.Has(fsnotify.Create):
		return ChangeCreated, true
	case op.Has(fsnotify.Write):
		return ChangeModified, true
	}
	return "", false
}

// merge folds a burst of events on one path into a single change. A file
// that ends up existing after a delete or rename was replaced, which is a
// modification as far as readers are concerned.
func merge(prev, next ChangeType) ChangeType {
	switch {
	case prev == "":
		return next
	case next == ChangeDeleted || next == ChangeRenamed:
		return next
	case prev == ChangeCreated:
		return ChangeCreated
	}
	return ChangeModified
}

func describe(name string, kind ChangeType) FileChange {
	change := FileChange{Path: name, Type: kind}
	if info, err := os.Stat(name); err == nil {
		change.Size = info.Size()
		change.ModTime = info.ModTime()
		if kind == ChangeDeleted || kind == ChangeRenamed {
			change.Type = ChangeModified
		}
	}
	return change
}

func (fw *FileWatcher) ensureHistoryLocked() {
	if fw.maxHistory <= 0 {
		fw.maxHistory = defaultMaxHistory
	}
}

func matchesPattern(pattern, filePath string) bool {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" || pattern == "*" {
		return true
	}
	cleanPath := filepath.ToSlash(strings.TrimSpace(filePath))
	cleanPattern := filepath.ToSlash(pattern)
	if ok, _ := path.Match(cleanPattern, cleanPath); ok {
		return true
	}
	if !strings.Contains(cleanPattern, "/") {
		base := path.Base(cleanPath)
		if ok, _ := path.Match(cleanPattern, base); ok {
			return true
		}
	}
	return false
}
