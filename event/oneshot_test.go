package event

import (
	"errors"
	"testing"
)

func TestSubscribersRunInOrderOnFire(t *testing.T) {
	e := New()
	var order []int
	for i := 1; i <= 3; i++ {
		if err := e.Subscribe(func() error {
			order = append(order, i)
			return nil
		}); err != nil {
			t.Fatalf("Subscribe failed: %v", err)
		}
	}
	if len(order) != 0 {
		t.Fatal("expected no subscriber to run before Fire")
	}
	if e.Pending() != 3 {
		t.Errorf("expected 3 pending subscribers, got %d", e.Pending())
	}

	if err := e.Fire(); err != nil {
		t.Fatalf("Fire failed: %v", err)
	}
	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Errorf("expected [1 2 3], got %v", order)
	}
	if !e.Fired() {
		t.Error("expected event to be fired")
	}
}

func TestLateSubscriberRunsImmediatelyOnce(t *testing.T) {
	e := New()
	if err := e.Fire(); err != nil {
		t.Fatalf("Fire failed: %v", err)
	}

	calls := 0
	if err := e.Subscribe(func() error {
		calls++
		return nil
	}); err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected immediate invocation, got %d calls", calls)
	}

	_ = e.Fire()
	if calls != 1 {
		t.Errorf("expected exactly one invocation, got %d", calls)
	}
}

func TestSecondFireIsNoop(t *testing.T) {
	e := New()
	calls := 0
	_ = e.Subscribe(func() error {
		calls++
		return nil
	})
	_ = e.Fire()
	_ = e.Fire()
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

func TestFireJoinsErrors(t *testing.T) {
	e := New()
	errA := errors.New("a")
	errB := errors.New("b")
	ran := 0
	_ = e.Subscribe(func() error { ran++; return errA })
	_ = e.Subscribe(func() error { ran++; return nil })
	_ = e.Subscribe(func() error { ran++; return errB })

	err := e.Fire()
	if ran != 3 {
		t.Errorf("expected all subscribers to run, got %d", ran)
	}
	if !errors.Is(err, errA) || !errors.Is(err, errB) {
		t.Errorf("expected joined error, got %v", err)
	}
}

func TestLateSubscriberError(t *testing.T) {
	e := New()
	_ = e.Fire()
	boom := errors.New("boom")
	if err := e.Subscribe(func() error { return boom }); !errors.Is(err, boom) {
		t.Errorf("expected boom, got %v", err)
	}
}

func TestSubscribeDuringFire(t *testing.T) {
	e := New()
	inner := 0
	_ = e.Subscribe(func() error {
		return e.Subscribe(func() error {
			inner++
			return nil
		})
	})
	if err := e.Fire(); err != nil {
		t.Fatalf("Fire failed: %v", err)
	}
	if inner != 1 {
		t.Errorf("expected nested subscriber to run immediately, got %d", inner)
	}
}

func TestReset(t *testing.T) {
	e := New()
	_ = e.Fire()
	e.Reset()

	if e.State() != Pending {
		t.Fatalf("expected pending after reset, got %s", e.State())
	}

	calls := 0
	_ = e.Subscribe(func() error { calls++; return nil })
	if calls != 0 {
		t.Error("expected subscriber to be queued after reset")
	}
	_ = e.Fire()
	if calls != 1 {
		t.Errorf("expected 1 call after re-fire, got %d", calls)
	}
}

func TestResetKeepsPendingQueue(t *testing.T) {
	e := New()
	calls := 0
	_ = e.Subscribe(func() error { calls++; return nil })
	e.Reset()
	_ = e.Fire()
	if calls != 1 {
		t.Errorf("expected queued subscriber to survive reset, got %d calls", calls)
	}
}

func TestNilSubscriber(t *testing.T) {
	e := New()
	if err := e.Subscribe(nil); err != nil {
		t.Errorf("expected nil subscriber to be ignored, got %v", err)
	}
	if e.Pending() != 0 {
		t.Error("expected nil subscriber not to be queued")
	}
}
