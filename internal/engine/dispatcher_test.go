package engine

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestDispatcherCoalesces(t *testing.T) {
	var fires atomic.Int32
	fired := make(chan struct{}, 8)
	d := NewDispatcher(false, func() {
		fires.Add(1)
		fired <- struct{}{}
	})
	defer d.Stop()

	for i := 0; i < 10; i++ {
		d.Trigger()
	}

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("refresh never fired")
	}

	// Quiet period; nothing else may fire from the burst.
	time.Sleep(2 * debounceDelay)
	if got := fires.Load(); got != 1 {
		t.Fatalf("fires = %d for one burst, want 1", got)
	}
}

func TestDispatcherRearms(t *testing.T) {
	fired := make(chan struct{}, 2)
	d := NewDispatcher(false, func() { fired <- struct{}{} })
	defer d.Stop()

	d.Trigger()
	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("first refresh never fired")
	}

	d.Trigger()
	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("dispatcher did not re-arm after firing")
	}
}

func TestDispatcherStop(t *testing.T) {
	var fires atomic.Int32
	d := NewDispatcher(false, func() { fires.Add(1) })

	d.Trigger()
	d.Stop()
	d.Stop()

	time.Sleep(2 * debounceDelay)
	if got := fires.Load(); got != 0 {
		t.Fatalf("fires = %d after Stop, want 0", got)
	}
}

func TestDispatcherCompatibilityDelay(t *testing.T) {
	d := NewDispatcher(true, func() {})
	defer d.Stop()
	if d.delay != compatDelay {
		t.Errorf("delay = %v, want %v", d.delay, compatDelay)
	}
	if NewDispatcher(false, func() {}).delay != debounceDelay {
		t.Error("default delay not applied")
	}
}
