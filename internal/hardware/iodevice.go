package hardware

// iodevice.go is a single-slot I/O device: it accepts one operation at a
// time, counts ticks while busy, and raises IO_OUT when the operation's
// service time has elapsed.

import (
	"fmt"

	"github.com/go-miniso/miniso/internal/log"
)

// IODevice is a generic single-slot device, e.g. a printer.
type IODevice struct {
	ID         string
	ServiceTime int // Ticks an operation is busy; it completes on the next tick.

	busy  bool
	ticks int

	intr *InterruptVector
	log  *log.Logger
}

// NewIODevice creates an idle device identified by id, completing any
// operation on the first tick after serviceTime ticks have been counted.
func NewIODevice(id string, serviceTime int, intr *InterruptVector) *IODevice {
	return &IODevice{
		ID:          id,
		ServiceTime: serviceTime,
		intr:        intr,
		log:         log.DefaultLogger(),
	}
}

// IsBusy reports whether the device is currently servicing an operation.
func (d *IODevice) IsBusy() bool { return d.busy }

// IsIdle reports the complement of IsBusy.
func (d *IODevice) IsIdle() bool { return !d.busy }

// Execute begins servicing op. It is a precondition violation -- and
// therefore a programmer bug, not a runtime condition -- to call Execute
// while the device is already busy; callers (the I/O device controller)
// must check IsIdle first.
func (d *IODevice) Execute(op string) {
	if d.busy {
		panic(fmt.Sprintf("iodevice: %s: execute while busy: %s", d.ID, op))
	}

	d.busy = true
	d.ticks = 0

	d.log.Debug("device executing", "device", d.ID, "op", op)
}

// Tick implements Subscriber.
func (d *IODevice) Tick(tickNbr int) error {
	if !d.busy {
		return nil
	}

	d.ticks++

	if d.ticks > d.ServiceTime {
		d.busy = false

		d.log.Debug("device finished", "device", d.ID)

		return d.intr.Handle(KindIOOut, d.ID)
	}

	return nil
}
