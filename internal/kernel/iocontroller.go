package kernel

import "github.com/go-miniso/miniso/internal/hardware"

// IOController fronts a single hardware I/O device with a waiting queue:
// only one process's operation can be in service at a time, so later
// requests queue up FIFO until the device is free.
type IOController struct {
	device  *hardware.IODevice
	waiting []*PCB
	current *PCB
}

// NewIOController creates a controller fronting device.
func NewIOController(device *hardware.IODevice) *IOController {
	return &IOController{device: device}
}

// RunOperation starts pcb's I/O operation immediately if the device is
// idle, or enqueues it to wait otherwise.
func (c *IOController) RunOperation(pcb *PCB) {
	pcb.State = StateWaiting

	if c.device.IsIdle() {
		c.current = pcb
		c.device.Execute("IO")

		return
	}

	c.waiting = append(c.waiting, pcb)
}

// Finished is called on IO_OUT: it returns the PCB whose operation just
// completed and starts the next waiting operation, if any.
func (c *IOController) Finished() *PCB {
	done := c.current
	c.current = nil

	if len(c.waiting) > 0 {
		next := c.waiting[0]
		c.waiting = c.waiting[1:]

		c.current = next
		c.device.Execute("IO")
	}

	return done
}
