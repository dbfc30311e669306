package syncutil

import (
	"errors"
	"testing"
	"time"
)

func TestWaitForSet1(t *testing.T) {
	w := NewWaitForSet()
	for i := 0; i < 100; i++ {
		w.Start(time.Second)
		go func() {
			if err := w.Set(i); err != nil {
				t.Error(err)
			}
		}()
		v, err := w.WaitForSet()
		if err != nil {
			t.Fatal(err)
		}
		if v.(int) != i {
			t.Fatal(v)
		}
	}
}

func TestWaitForSetTimeout(t *testing.T) {
	w := NewWaitForSet()
	w.Start(10 * time.Millisecond)
	_, err := w.WaitForSet()
	if !errors.Is(err, ErrTimeout) {
		t.Fatal(err)
	}
	// not started: set fails
	if err := w.Set(1); err == nil {
		t.Fatal("expecting error")
	}
}

func TestWaitForSetEarlySet(t *testing.T) {
	w := NewWaitForSet()
	w.Start(time.Second)
	if err := w.Set("a"); err != nil {
		t.Fatal(err)
	}
	v, err := w.WaitForSet()
	if err != nil || v != "a" {
		t.Fatal(v, err)
	}
}
