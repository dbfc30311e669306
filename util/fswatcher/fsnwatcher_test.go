package fswatcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func mustNew(t *testing.T, opMask Op) (*FsnWatcher, chan any) {
	t.Helper()
	events := make(chan any, 16)
	w, err := NewFsnWatcher(events, opMask)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = w.Close() })
	return w, events
}

func mustWriteFile(t *testing.T, name, s string) {
	t.Helper()
	if err := os.WriteFile(name, []byte(s), 0644); err != nil {
		t.Fatal(err)
	}
}

func readEvent(t *testing.T, events <-chan any, fn func(*Event) bool) {
	t.Helper()
	timeout := time.After(3 * time.Second)
	for {
		select {
		case <-timeout:
			t.Fatal("event timeout")
		case ev := <-events:
			switch t2 := ev.(type) {
			case error:
				t.Fatal(t2)
			case *Event:
				if fn(t2) {
					return
				}
			}
		}
	}
}

//----------

func TestFsnWatcher1(t *testing.T) {
	dir := t.TempDir()
	file1 := filepath.Join(dir, "file1")
	mustWriteFile(t, file1, "a")

	w, events := mustNew(t, AllOps)
	if err := w.AddFile(file1); err != nil {
		t.Fatal(err)
	}
	mustWriteFile(t, file1, "b")
	readEvent(t, events, func(ev *Event) bool {
		return ev.Name == file1 && ev.Op.HasAny(Modify)
	})
}

func TestFsnWatcherReplace(t *testing.T) {
	// file replaced by a rename keeps being watched
	dir := t.TempDir()
	file1 := filepath.Join(dir, "localtime")
	tmp := filepath.Join(dir, "localtime.tmp")
	mustWriteFile(t, file1, "a")

	w, events := mustNew(t, Create|Remove|Rename|Modify)
	if err := w.AddFile(file1); err != nil {
		t.Fatal(err)
	}
	for _, s := range []string{"b", "c"} {
		mustWriteFile(t, tmp, s)
		if err := os.Rename(tmp, file1); err != nil {
			t.Fatal(err)
		}
		readEvent(t, events, func(ev *Event) bool {
			return ev.Name == file1 && ev.Op.HasAny(Create|Rename)
		})
	}
}

func TestFsnWatcherFilter(t *testing.T) {
	dir := t.TempDir()
	file1 := filepath.Join(dir, "file1")
	file2 := filepath.Join(dir, "file2")
	mustWriteFile(t, file1, "a")

	w, events := mustNew(t, AllOps)
	if err := w.AddFile(file1); err != nil {
		t.Fatal(err)
	}
	// not watched: no events
	mustWriteFile(t, file2, "a")
	// watched
	mustWriteFile(t, file1, "b")
	readEvent(t, events, func(ev *Event) bool {
		if ev.Name == file2 {
			t.Fatal("unexpected event", ev.Name)
		}
		return ev.Name == file1
	})

	if err := w.RemoveFile(file1); err != nil {
		t.Fatal(err)
	}
	if len(w.dirs) != 0 {
		t.Fatal(w.dirs)
	}
}

func TestOpString(t *testing.T) {
	if s := (Create | Rename).String(); s != "create|rename" {
		t.Fatal(s)
	}
}
