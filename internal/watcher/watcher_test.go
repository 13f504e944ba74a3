package watcher

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/getlawrence/hooklog/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type batches struct {
	mu  sync.Mutex
	got [][]string
	ch  chan struct{}
}

func newBatches() *batches { return &batches{ch: make(chan struct{}, 16)} }

func (b *batches) handle(paths []string) error {
	b.mu.Lock()
	b.got = append(b.got, paths)
	b.mu.Unlock()
	b.ch <- struct{}{}
	return nil
}

func (b *batches) wait(t *testing.T) []string {
	t.Helper()
	select {
	case <-b.ch:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for change batch")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.got[len(b.got)-1]
}

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Watch.DebounceMs = 200
	return cfg
}

func TestFileWatcher_BatchesSourceChanges(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "src"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "node_modules", "react"), 0755))

	fw, err := NewFileWatcher(testConfig(), nil)
	require.NoError(t, err)
	defer fw.Close()

	b := newBatches()
	require.NoError(t, fw.Watch([]string{root}, b.handle))

	watched := fw.GetWatchedPaths()
	assert.Contains(t, watched, filepath.Join(root, "src"))
	assert.NotContains(t, watched, filepath.Join(root, "node_modules"))

	app := filepath.Join(root, "src", "App.jsx")
	hook := filepath.Join(root, "src", "useThing.ts")
	require.NoError(t, os.WriteFile(app, []byte("function App() {}\n"), 0644))
	require.NoError(t, os.WriteFile(hook, []byte("export function useThing() {}\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "src", "notes.md"), []byte("# notes\n"), 0644))

	assert.Equal(t, []string{app, hook}, b.wait(t))
}

func TestFileWatcher_NewDirectoriesAreWatched(t *testing.T) {
	root := t.TempDir()
	fw, err := NewFileWatcher(testConfig(), nil)
	require.NoError(t, err)
	defer fw.Close()

	b := newBatches()
	require.NoError(t, fw.Watch([]string{root}, b.handle))

	dir := filepath.Join(root, "components")
	require.NoError(t, os.Mkdir(dir, 0755))
	require.Eventually(t, func() bool {
		for _, p := range fw.GetWatchedPaths() {
			if p == dir {
				return true
			}
		}
		return false
	}, 5*time.Second, 10*time.Millisecond)

	card := filepath.Join(dir, "Card.tsx")
	require.NoError(t, os.WriteFile(card, []byte("export const Card = () => null;\n"), 0644))
	assert.Equal(t, []string{card}, b.wait(t))
}

func TestFileWatcher_CloseWithoutWatch(t *testing.T) {
	fw, err := NewFileWatcher(testConfig(), nil)
	require.NoError(t, err)
	assert.NoError(t, fw.Close())
	assert.NoError(t, fw.Close())
}

func TestFileWatcher_WatchTwice(t *testing.T) {
	root := t.TempDir()
	fw, err := NewFileWatcher(testConfig(), nil)
	require.NoError(t, err)
	defer fw.Close()

	handler := func([]string) error { return nil }
	require.NoError(t, fw.Watch([]string{root}, handler))
	assert.Error(t, fw.Watch([]string{root}, handler))
}

func TestDebouncer_StopCancelsPendingFlush(t *testing.T) {
	d := newDebouncer(time.Hour, nil)
	called := false
	d.add(FileChangeEvent{Path: "a.js"}, func([]string) error {
		called = true
		return nil
	})
	d.stop()
	assert.False(t, called)

	// adds after stop are ignored
	d.add(FileChangeEvent{Path: "b.js"}, func([]string) error { return nil })
	assert.Empty(t, d.events["b.js"])
}
