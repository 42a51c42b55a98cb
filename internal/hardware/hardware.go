package hardware

// hardware.go assembles the machine from its parts and exposes the
// kernel-to-environment setup/control surface from spec section 6.

import (
	"context"
	"time"

	"github.com/go-miniso/miniso/internal/log"
)

// Hardware is the simulated machine: memory, MMU, CPU, clock, timer, a
// single I/O device, and the interrupt vector that ties them together. The
// kernel owns one Hardware and is handed it explicitly; there is no global
// singleton.
type Hardware struct {
	Memory    *Memory
	MMU       *MMU
	CPU       *CPU
	Clock     *Clock
	Timer     *Timer
	IODevice  *IODevice
	Interrupts *InterruptVector

	done <-chan error
	log  *log.Logger
}

// New creates hardware with no memory configured; call Setup before use.
func New() *Hardware {
	return &Hardware{log: log.DefaultLogger()}
}

// Setup configures memory of the given size divided into frames of
// frameSize cells, and wires the CPU, clock, timer, and I/O device around
// it. deviceServiceTime is how many ticks the single I/O device takes to
// complete an operation.
func (h *Hardware) Setup(memSize, frameSize, deviceServiceTime int) {
	h.Interrupts = NewInterruptVector()
	h.Memory = NewMemory(memSize, frameSize)
	h.MMU = NewMMU(h.Memory, h.Interrupts, frameSize)
	h.CPU = NewCPU(h.MMU, h.Interrupts)
	h.Timer = NewTimer(h.CPU, h.Interrupts)
	h.IODevice = NewIODevice("printer0", deviceServiceTime, h.Interrupts)
	h.Clock = NewClock()

	// Ordering guarantee: within a tick, the device is notified before the
	// timer, so a device's IO_OUT is delivered before the timer's possible
	// TIMEOUT.
	h.Clock.AddSubscriber(h.IODevice)
	h.Clock.AddSubscriber(h.Timer)
}

// SwitchOn starts the clock ticking on a background goroutine.
func (h *Hardware) SwitchOn(ctx context.Context) <-chan error {
	h.log.Info("switch on")
	h.done = h.Clock.Start(ctx)

	return h.done
}

// SwitchOff stops the clock.
func (h *Hardware) SwitchOff() {
	h.log.Info("switch off")
	h.Clock.Stop()
}

// SetTimeUnit configures the wall-clock duration of one tick, used only by
// SwitchOn; DoTicks ignores it.
func (h *Hardware) SetTimeUnit(seconds float64) {
	h.Clock.TimeUnit = time.Duration(seconds * float64(time.Second))
}
