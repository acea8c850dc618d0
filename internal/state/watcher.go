package state

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"github.com/Paintersrp/quire/internal/binder"
	"github.com/Paintersrp/quire/internal/pathutil"
)

// DefaultSettle is how long the watcher waits for a burst of writes to finish
// before reporting a change. Editors commonly write, rename and chmod in quick
// succession.
const DefaultSettle = 150 * time.Millisecond

type ProjectChangedMsg struct {
	Path string
}

type ProjectWatcherErrMsg struct {
	Err error
}

type ProjectWatcher struct {
	watcher  *fsnotify.Watcher
	dir      string
	settle   time.Duration
	done     chan struct{}
	once     sync.Once
	mu       sync.Mutex
	onChange func(string)
	onClose  func()
}

func NewProjectWatcher(dir string) (*ProjectWatcher, error) {
	normalized := pathutil.NormalizePath(dir)
	if normalized == "" {
		return nil, errors.New("project directory cannot be empty")
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	watcher := &ProjectWatcher{
		watcher: w,
		dir:     normalized,
		settle:  DefaultSettle,
		done:    make(chan struct{}),
	}

	if err := watcher.addRecursive(normalized); err != nil {
		_ = watcher.Close()
		return nil, err
	}

	return watcher, nil
}

// Start returns a command that blocks until the next relevant change. The
// receiver of ProjectChangedMsg must call Start again to keep watching.
func (w *ProjectWatcher) Start() tea.Cmd {
	if w == nil {
		return nil
	}

	return func() tea.Msg {
		var (
			first  string
			settle <-chan time.Time
		)

		for {
			select {
			case <-w.done:
				return nil
			case <-settle:
				return ProjectChangedMsg{Path: first}
			case event, ok := <-w.watcher.Events:
				if !ok {
					return nil
				}

				if event.Op&fsnotify.Create != 0 {
					if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
						_ = w.addRecursive(event.Name)
					}
				}

				if !w.isRelevant(event) {
					continue
				}

				rel, err := w.relativePath(event.Name)
				if err != nil || rel == "" {
					continue
				}

				if fn := w.changeHook(); fn != nil {
					fn(rel)
				}

				if settle == nil {
					first = rel
					settle = time.After(w.settleDelay())
				}
			case err, ok := <-w.watcher.Errors:
				if !ok {
					return nil
				}
				if err != nil {
					return ProjectWatcherErrMsg{Err: err}
				}
			}
		}
	}
}

func (w *ProjectWatcher) Close() error {
	if w == nil {
		return nil
	}

	var closeErr error
	w.once.Do(func() {
		close(w.done)
		closeErr = w.watcher.Close()
		w.mu.Lock()
		fn := w.onClose
		w.mu.Unlock()
		if fn != nil {
			fn()
		}
	})

	return closeErr
}

// OnChange registers a callback that receives project-relative paths whenever
// the watcher sees a relevant change.
func (w *ProjectWatcher) OnChange(fn func(string)) {
	if w == nil {
		return
	}
	w.mu.Lock()
	w.onChange = fn
	w.mu.Unlock()
}

// OnClose registers a callback that is invoked exactly once when the watcher
// shuts down.
func (w *ProjectWatcher) OnClose(fn func()) {
	if w == nil {
		return
	}
	w.mu.Lock()
	w.onClose = fn
	w.mu.Unlock()
}

// SetSettle changes how long bursts of events are coalesced.
func (w *ProjectWatcher) SetSettle(d time.Duration) {
	if w == nil {
		return
	}
	w.mu.Lock()
	w.settle = d
	w.mu.Unlock()
}

func (w *ProjectWatcher) changeHook() func(string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.onChange
}

func (w *ProjectWatcher) settleDelay() time.Duration {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.settle
}

func (w *ProjectWatcher) addRecursive(root string) error {
	normalized := pathutil.NormalizePath(root)
	return filepath.WalkDir(normalized, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrPermission) {
				return filepath.SkipDir
			}
			return err
		}

		if !d.IsDir() {
			return nil
		}

		if path != normalized && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}

		return w.watcher.Add(path)
	})
}

// isRelevant keeps events for files the binder loads, folder metadata, and
// directories (a removed or renamed folder no longer stats as one).
func (w *ProjectWatcher) isRelevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}

	rel, err := w.relativePath(event.Name)
	if err != nil || rel == "" {
		return false
	}

	for _, part := range strings.Split(rel, "/") {
		if strings.HasPrefix(part, ".") {
			return false
		}
	}

	name := filepath.Base(rel)
	if name == binder.FolderMetaFile {
		return true
	}
	if _, ok := binder.KindOf(name); ok {
		return true
	}

	return filepath.Ext(name) == ""
}

func (w *ProjectWatcher) relativePath(path string) (string, error) {
	return pathutil.ProjectRelative(w.dir, path)
}
