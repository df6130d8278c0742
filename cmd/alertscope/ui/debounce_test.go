package ui

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestDebounceCollapsesRapidCalls(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)
	var calls atomic.Int32

	for i := 0; i < 5; i++ {
		d.Debounce(func() { calls.Add(1) })
		time.Sleep(5 * time.Millisecond)
	}

	time.Sleep(100 * time.Millisecond)
	if got := calls.Load(); got != 1 {
		t.Fatalf("expected 1 call, got %d", got)
	}
}

func TestDebounceCancel(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	var calls atomic.Int32

	d.Debounce(func() { calls.Add(1) })
	d.Cancel()

	time.Sleep(60 * time.Millisecond)
	if got := calls.Load(); got != 0 {
		t.Fatalf("cancelled call still ran %d times", got)
	}
}

func TestDebounceFlush(t *testing.T) {
	d := NewDebouncer(time.Hour)
	var calls atomic.Int32

	d.Debounce(func() { calls.Add(100) })
	d.Flush(func() { calls.Add(1) })

	if got := calls.Load(); got != 1 {
		t.Fatalf("expected immediate call only, got %d", got)
	}
}
