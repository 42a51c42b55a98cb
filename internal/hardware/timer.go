package hardware

// timer.go is the quantum timer: a clock subscriber that either forwards a
// tick to the CPU or, if a quantum is configured and exceeded, raises
// TIMEOUT instead.

import (
	"github.com/go-miniso/miniso/internal/log"
)

// Timer counts ticks since the last reset and, when a quantum is active,
// raises TIMEOUT once the count exceeds it.
type Timer struct {
	count   int
	quantum int
	active  bool

	cpu  *CPU
	intr *InterruptVector

	log *log.Logger
}

// NewTimer creates a timer with no quantum configured -- it simply forwards
// every tick to the CPU, as FCFS requires.
func NewTimer(cpu *CPU, intr *InterruptVector) *Timer {
	return &Timer{cpu: cpu, intr: intr, log: log.DefaultLogger()}
}

// SetQuantum activates quantum counting with the given number of ticks, as
// Round Robin requires.
func (t *Timer) SetQuantum(quantum int) {
	t.active = true
	t.quantum = quantum
}

// Reset zeroes the tick count. Called by the dispatcher on every context
// load, by the IO_IN handler, and after a TIMEOUT is serviced.
func (t *Timer) Reset() {
	t.count = 0
}

// Tick implements Subscriber.
func (t *Timer) Tick(tickNbr int) error {
	t.count++

	if t.active && t.count > t.quantum && t.cpu.Busy() {
		t.log.Debug("quantum exceeded", "count", t.count, "quantum", t.quantum)
		return t.intr.Handle(KindTimeout, nil)
	}

	if !t.cpu.Busy() {
		return nil
	}

	return t.cpu.Step()
}
