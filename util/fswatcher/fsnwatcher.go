package fswatcher

import (
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watches files by watching their parent directories, so a file that is
// replaced (removed and created again, or renamed over) keeps being reported.
// Sends *Event and error values to the events channel.
type FsnWatcher struct {
	w      *fsnotify.Watcher
	events chan<- any
	opMask Op

	mu    sync.Mutex
	files map[string]bool // cleaned names
	dirs  map[string]int  // refcount

	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

func NewFsnWatcher(events chan<- any, opMask Op) (*FsnWatcher, error) {
	w0, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &FsnWatcher{
		w:      w0,
		events: events,
		opMask: opMask,
		files:  map[string]bool{},
		dirs:   map[string]int{},
		done:   make(chan struct{}),
	}
	w.wg.Add(1)
	go w.eventLoop()
	return w, nil
}

func (w *FsnWatcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		err = w.w.Close()
		w.wg.Wait()
	})
	return err
}

//----------

func (w *FsnWatcher) AddFile(name string) error {
	name = filepath.Clean(name)
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.files[name] {
		return nil
	}
	dir := filepath.Dir(name)
	if w.dirs[dir] == 0 {
		if err := w.w.Add(dir); err != nil {
			return err
		}
	}
	w.dirs[dir]++
	w.files[name] = true
	return nil
}

func (w *FsnWatcher) RemoveFile(name string) error {
	name = filepath.Clean(name)
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.files[name] {
		return nil
	}
	delete(w.files, name)
	dir := filepath.Dir(name)
	w.dirs[dir]--
	if w.dirs[dir] > 0 {
		return nil
	}
	delete(w.dirs, dir)
	return w.w.Remove(dir)
}

func (w *FsnWatcher) watching(name string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.files[filepath.Clean(name)]
}

//----------

func (w *FsnWatcher) eventLoop() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case err, ok := <-w.w.Errors:
			if !ok {
				return
			}
			w.send(err)
		case ev, ok := <-w.w.Events:
			if !ok {
				return
			}
			if !w.watching(ev.Name) {
				continue
			}
			op := translateOp(ev.Op) & w.opMask
			if op == 0 {
				continue
			}
			w.send(&Event{Op: op, Name: filepath.Clean(ev.Name)})
		}
	}
}

func (w *FsnWatcher) send(v any) {
	select {
	case w.events <- v:
	case <-w.done:
	}
}

func translateOp(op0 fsnotify.Op) Op {
	var op Op
	if op0&fsnotify.Create != 0 {
		op |= Create
	}
	if op0&fsnotify.Write != 0 {
		op |= Modify
	}
	if op0&fsnotify.Remove != 0 {
		op |= Remove
	}
	if op0&fsnotify.Rename != 0 {
		op |= Rename
	}
	if op0&fsnotify.Chmod != 0 {
		op |= Attrib
	}
	return op
}
