package watcher

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/getlawrence/hooklog/internal/config"
	"github.com/getlawrence/hooklog/internal/detector"
	"github.com/getlawrence/hooklog/internal/logger"
)

// FileWatcher reports batches of changed script files under a set of roots
type FileWatcher struct {
	watcher   *fsnotify.Watcher
	config    *config.Config
	log       logger.Logger
	debouncer *debouncer

	mu          sync.Mutex
	watchedDirs map[string]bool

	started   bool
	done      chan struct{}
	closeOnce sync.Once
}

type FileChangeEvent struct {
	Path      string
	Operation string
	Timestamp time.Time
}

// FileChangeHandler receives the sorted paths changed since the last batch
type FileChangeHandler func([]string) error

func NewFileWatcher(cfg *config.Config, log logger.Logger) (*FileWatcher, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if log == nil {
		log = logger.Nop{}
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	fw := &FileWatcher{
		watcher:     watcher,
		config:      cfg,
		log:         log,
		watchedDirs: make(map[string]bool),
		done:        make(chan struct{}),
	}
	fw.debouncer = newDebouncer(time.Duration(cfg.Watch.DebounceMs)*time.Millisecond, func(err error) {
		fw.log.Logf("⚠️  Handler error: %v\n", err)
	})
	return fw, nil
}

// Watch registers every directory under paths and starts delivering batches
// to handler. It returns once the directories are registered.
func (fw *FileWatcher) Watch(paths []string, handler FileChangeHandler) error {
	for _, path := range paths {
		if err := fw.addPath(path); err != nil {
			return fmt.Errorf("failed to watch path %s: %w", path, err)
		}
	}
	fw.mu.Lock()
	defer fw.mu.Unlock()
	if fw.started {
		return fmt.Errorf("watcher already started")
	}
	fw.started = true
	go fw.eventLoop(handler)
	return nil
}

func (fw *FileWatcher) addPath(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fw.addDir(filepath.Dir(path))
	}
	return filepath.Walk(path, func(walkPath string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}
		if walkPath != path && detector.IsExcludedDir(walkPath, fw.config) {
			return filepath.SkipDir
		}
		return fw.addDir(walkPath)
	})
}

func (fw *FileWatcher) addDir(dir string) error {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	if fw.watchedDirs[dir] {
		return nil
	}
	if err := fw.watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to add directory %s to watcher: %w", dir, err)
	}
	fw.watchedDirs[dir] = true
	return nil
}

func (fw *FileWatcher) eventLoop(handler FileChangeHandler) {
	defer close(fw.done)
	for {
		select {
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			fw.handleEvent(event, handler)
		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			fw.log.Logf("⚠️  File watcher error: %v\n", err)
		}
	}
}

func (fw *FileWatcher) handleEvent(event fsnotify.Event, handler FileChangeHandler) {
	if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
		return
	}
	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if !detector.IsExcludedDir(event.Name, fw.config) {
				if err := fw.addPath(event.Name); err != nil {
					fw.log.Debugf("failed to watch new directory %s: %v\n", event.Name, err)
				}
			}
			return
		}
	}
	if !detector.IsSourceFile(event.Name, fw.config) || fw.shouldSkipFile(event.Name) {
		return
	}
	fw.debouncer.add(FileChangeEvent{
		Path:      event.Name,
		Operation: eventOpToString(event.Op),
		Timestamp: time.Now(),
	}, handler)
}

func (fw *FileWatcher) shouldSkipFile(path string) bool {
	filename := filepath.Base(path)
	if strings.HasPrefix(filename, ".") || strings.HasSuffix(filename, "~") {
		return true
	}
	return strings.HasSuffix(filename, ".min.js")
}

func eventOpToString(op fsnotify.Op) string {
	switch {
	case op&fsnotify.Create == fsnotify.Create:
		return "CREATE"
	case op&fsnotify.Write == fsnotify.Write:
		return "WRITE"
	default:
		return "UNKNOWN"
	}
}

// Close stops the watcher and waits for its goroutines to exit
func (fw *FileWatcher) Close() error {
	var err error
	fw.closeOnce.Do(func() {
		err = fw.watcher.Close()
		fw.mu.Lock()
		started := fw.started
		fw.mu.Unlock()
		if started {
			<-fw.done
		}
		fw.debouncer.stop()
	})
	return err
}

func (fw *FileWatcher) GetWatchedPaths() []string {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	paths := make([]string, 0, len(fw.watchedDirs))
	for path := range fw.watchedDirs {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}
