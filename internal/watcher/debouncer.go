package watcher

import (
	"sort"
	"sync"
	"time"
)

// debouncer collects change events and flushes them as one batch once no new
// event has arrived for delay.
type debouncer struct {
	delay   time.Duration
	events  map[string]FileChangeEvent
	timer   *time.Timer
	mutex   sync.Mutex
	stopped bool
	pending sync.WaitGroup
	onError func(error)
}

func newDebouncer(delay time.Duration, onError func(error)) *debouncer {
	return &debouncer{
		delay:   delay,
		events:  make(map[string]FileChangeEvent),
		onError: onError,
	}
}

func (d *debouncer) add(event FileChangeEvent, handler FileChangeHandler) {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	if d.stopped {
		return
	}
	d.events[event.Path] = event
	if d.timer != nil && d.timer.Stop() {
		d.pending.Done()
	}
	d.pending.Add(1)
	d.timer = time.AfterFunc(d.delay, func() {
		defer d.pending.Done()
		d.flush(handler)
	})
}

func (d *debouncer) flush(handler FileChangeHandler) {
	d.mutex.Lock()
	if d.stopped || len(d.events) == 0 {
		d.mutex.Unlock()
		return
	}
	changedFiles := make([]string, 0, len(d.events))
	for path := range d.events {
		changedFiles = append(changedFiles, path)
	}
	d.events = make(map[string]FileChangeEvent)
	d.mutex.Unlock()

	sort.Strings(changedFiles)
	if err := handler(changedFiles); err != nil && d.onError != nil {
		d.onError(err)
	}
}

// stop cancels any scheduled flush and waits for a running one to return
func (d *debouncer) stop() {
	d.mutex.Lock()
	if d.stopped {
		d.mutex.Unlock()
		return
	}
	d.stopped = true
	if d.timer != nil && d.timer.Stop() {
		d.pending.Done()
	}
	d.mutex.Unlock()
	d.pending.Wait()
}
