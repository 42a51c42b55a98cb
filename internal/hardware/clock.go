package hardware

// clock.go is the cooperative ticker that drives every other clocked
// component. Subscribers are notified in subscription order on every tick;
// the hardware wires the I/O device ahead of the timer so that, within one
// tick, a device's IO_OUT is delivered before the timer's possible TIMEOUT.

import (
	"context"
	"time"

	"github.com/go-miniso/miniso/internal/log"
)

// Subscriber is notified once per clock tick. A non-nil error halts the
// clock -- it is fatal.
type Subscriber interface {
	Tick(tickNbr int) error
}

// Clock holds an ordered list of subscribers and a tick period.
type Clock struct {
	TimeUnit time.Duration // Wall-clock duration of one tick, for Start.

	subscribers []Subscriber
	running     bool
	cancel      context.CancelFunc

	log *log.Logger
}

// NewClock creates a clock with a default tick period of one second.
func NewClock() *Clock {
	return &Clock{
		TimeUnit: time.Second,
		log:      log.DefaultLogger(),
	}
}

// AddSubscriber appends a subscriber to the notification order.
func (c *Clock) AddSubscriber(s Subscriber) {
	c.subscribers = append(c.subscribers, s)
}

// tick notifies every subscriber, in order, of tick number n.
func (c *Clock) tick(n int) error {
	c.log.Debug("tick", "n", n)

	for _, s := range c.subscribers {
		if err := s.Tick(n); err != nil {
			return err
		}
	}

	return nil
}

// DoTicks synchronously steps the clock n times, returning the first fatal
// error encountered, if any. This is how the shell and the test harness
// drive the machine.
func (c *Clock) DoTicks(n int) error {
	for i := 0; i < n; i++ {
		if err := c.tick(i); err != nil {
			c.running = false
			return err
		}
	}

	return nil
}

// Start begins ticking on a background goroutine, sleeping TimeUnit between
// ticks, until the context is cancelled or a subscriber returns a fatal
// error. The returned channel receives that error (or nil, on cancellation)
// exactly once.
func (c *Clock) Start(ctx context.Context) <-chan error {
	ctx, c.cancel = context.WithCancel(ctx)
	done := make(chan error, 1)

	c.running = true

	go func() {
		defer close(done)

		for n := 0; ; n++ {
			select {
			case <-ctx.Done():
				done <- nil
				return
			default:
			}

			if err := c.tick(n); err != nil {
				c.running = false
				done <- err

				return
			}

			time.Sleep(c.TimeUnit)
		}
	}()

	return done
}

// Stop halts a clock started with Start.
func (c *Clock) Stop() {
	c.running = false

	if c.cancel != nil {
		c.cancel()
	}
}

// Running reports whether the clock is actively ticking.
func (c *Clock) Running() bool { return c.running }
