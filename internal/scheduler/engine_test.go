package scheduler

import (
	"errors"
	"testing"
	"time"
)

func TestEngineEmitsInDueOrder(t *testing.T) {
	engine := NewEngine(8)
	engine.Start()
	defer engine.Stop()

	now := time.Now()
	if err := engine.Schedule(DueEvent{TaskID: "later", DueAt: now.Add(80 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule later: %v", err)
	}
	if err := engine.Schedule(DueEvent{TaskID: "sooner", DueAt: now.Add(20 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule sooner: %v", err)
	}

	first := waitEvent(t, engine.C(), time.Second)
	second := waitEvent(t, engine.C(), time.Second)
	if first.TaskID != "sooner" || second.TaskID != "later" {
		t.Fatalf("unexpected order: first=%s second=%s", first.TaskID, second.TaskID)
	}
}

func TestEngineNonBlockingDropsWhenConsumerIsSlow(t *testing.T) {
	engine := NewEngine(1)
	engine.Start()
	defer engine.Stop()

	due := time.Now().Add(20 * time.Millisecond)
	for i := 0; i < 25; i++ {
		if err := engine.Schedule(DueEvent{TaskID: "evt", DueAt: due}); err != nil {
			t.Fatalf("schedule event: %v", err)
		}
	}

	time.Sleep(120 * time.Millisecond)
	if engine.Dropped() == 0 {
		t.Fatalf("expected dropped events > 0, got %d", engine.Dropped())
	}
}

func TestScheduleValidatesDueTime(t *testing.T) {
	engine := NewEngine(1)
	if err := engine.Schedule(DueEvent{TaskID: "bad"}); !errors.Is(err, ErrInvalidDueTime) {
		t.Fatalf("expected ErrInvalidDueTime, got %v", err)
	}
}

func TestReplaceSkipsPastEventsAndDropsOldQueue(t *testing.T) {
	engine := NewEngine(4)
	fixed := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	engine.now = func() time.Time { return fixed }

	if err := engine.Schedule(DueEvent{TaskID: "stale", DueAt: fixed.Add(time.Hour)}); err != nil {
		t.Fatalf("schedule: %v", err)
	}
	err := engine.Replace([]DueEvent{
		{TaskID: "past", DueAt: fixed.Add(-time.Minute)},
		{TaskID: "now", DueAt: fixed},
		{TaskID: "zero"},
		{TaskID: "future", DueAt: fixed.Add(2 * time.Hour)},
	})
	if err != nil {
		t.Fatalf("replace: %v", err)
	}
	if engine.Pending() != 1 {
		t.Fatalf("expected 1 queued event, got %d", engine.Pending())
	}
	if next, ok := engine.peek(); !ok || next.TaskID != "future" {
		t.Fatalf("unexpected head: %+v ok=%v", next, ok)
	}
}

func TestScheduleAfterStopFails(t *testing.T) {
	engine := NewEngine(1)
	engine.Start()
	engine.Stop()
	if err := engine.Schedule(DueEvent{TaskID: "x", DueAt: time.Now()}); !errors.Is(err, ErrStopped) {
		t.Fatalf("expected ErrStopped, got %v", err)
	}
	if err := engine.Replace(nil); !errors.Is(err, ErrStopped) {
		t.Fatalf("expected ErrStopped from replace, got %v", err)
	}
	if _, ok := <-engine.C(); ok {
		t.Fatal("expected closed channel after stop")
	}
}

func waitEvent(t *testing.T, ch <-chan DueEvent, timeout time.Duration) DueEvent {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(timeout):
		t.Fatalf("timed out waiting for event")
		return DueEvent{}
	}
}
