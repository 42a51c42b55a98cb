package hardware_test

import (
	"fmt"
	"testing"

	"github.com/go-miniso/miniso/internal/hardware"
)

type countingSubscriber struct{ ticks int }

func (c *countingSubscriber) Tick(int) error {
	c.ticks++
	return nil
}

func TestClockDoTicksNotifiesInOrder(t *testing.T) {
	clock := hardware.NewClock()

	var order []string

	clock.AddSubscriber(tickerFunc(func(int) error {
		order = append(order, "first")
		return nil
	}))
	clock.AddSubscriber(tickerFunc(func(int) error {
		order = append(order, "second")
		return nil
	}))

	if err := clock.DoTicks(3); err != nil {
		t.Fatalf("do ticks: %s", err)
	}

	if len(order) != 6 {
		t.Fatalf("got %d notifications, want 6", len(order))
	}

	for i := 0; i < len(order); i += 2 {
		if order[i] != "first" || order[i+1] != "second" {
			t.Fatalf("subscribers notified out of order: %v", order)
		}
	}
}

func TestClockDoTicksStopsOnError(t *testing.T) {
	clock := hardware.NewClock()
	sub := &countingSubscriber{}
	clock.AddSubscriber(sub)

	failing := tickerFunc(func(n int) error {
		if n == 2 {
			return errBoom
		}

		return nil
	})
	clock.AddSubscriber(failing)

	err := clock.DoTicks(5)
	if err != errBoom {
		t.Fatalf("err = %v, want errBoom", err)
	}

	if sub.ticks != 3 {
		t.Errorf("ticks = %d, want 3 (ticks 0, 1, 2 before failing on tick 2)", sub.ticks)
	}
}

type tickerFunc func(int) error

func (f tickerFunc) Tick(n int) error { return f(n) }

var errBoom = fmt.Errorf("boom")
