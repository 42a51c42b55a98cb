package kernel

// handlers.go implements the interrupt handlers registered against the
// hardware interrupt vector: NEW, KILL, IO_IN, IO_OUT, TIMEOUT, and
// PAGE_FAULT. Each is a thin method on Handlers built on three shared
// primitives: dispatch, preempt, and readyOrDispatch.

import (
	"fmt"

	"github.com/go-miniso/miniso/internal/hardware"
	"github.com/go-miniso/miniso/internal/log"
	"github.com/go-miniso/miniso/internal/program"
)

// Handlers holds every dependency the interrupt handlers need: the process
// table, the active scheduling policy, the dispatcher, memory management,
// the loader, the file system programs are read from, and the I/O
// controller.
type Handlers struct {
	PCBTable   *PCBTable
	Scheduler  Scheduler
	Dispatcher *Dispatcher
	MM         *MemoryManager
	Loader     *Loader
	FS         *FileSystem
	IO         *IOController
	FrameSize  int
	Trace      *StateTrace

	log *log.Logger
}

// NewHandlers creates a Handlers bundle and wires it to h's interrupt
// vector under the standard kinds.
func NewHandlers(h *Handlers, vector *hardware.InterruptVector) {
	h.log = log.DefaultLogger()

	vector.Register(hardware.KindNew, hardware.HandlerFunc(h.handleNew))
	vector.Register(hardware.KindKill, hardware.HandlerFunc(h.handleKill))
	vector.Register(hardware.KindIOIn, hardware.HandlerFunc(h.handleIOIn))
	vector.Register(hardware.KindIOOut, hardware.HandlerFunc(h.handleIOOut))
	vector.Register(hardware.KindTimeout, hardware.HandlerFunc(h.handleTimeout))
	vector.Register(hardware.KindPageFault, hardware.HandlerFunc(h.handlePageFault))
}

// readyOrDispatch puts pcb on the CPU immediately if nothing is running,
// or onto the ready queue otherwise -- preempting the running process
// first if the scheduler's policy calls for it.
func (h *Handlers) readyOrDispatch(pcb *PCB) {
	running := h.PCBTable.Running()

	if running == nil {
		h.dispatch(pcb)
		return
	}

	if h.Scheduler.MustPreempt(running, pcb) {
		h.preempt(running)
		h.dispatch(pcb)

		return
	}

	h.Scheduler.Add(pcb)
	h.trace(pcb)
}

// dispatch installs pcb onto the CPU and marks it running.
func (h *Handlers) dispatch(pcb *PCB) {
	h.Dispatcher.Load(pcb)

	if err := h.PCBTable.SetRunning(pcb); err != nil {
		h.log.Error("dispatch", "err", err)
	}

	h.trace(pcb)
}

// preempt saves the running process's context and returns it to the ready
// queue.
func (h *Handlers) preempt(running *PCB) {
	h.Dispatcher.Save(running)
	h.PCBTable.ClearRunning(running)
	h.Scheduler.Add(running)
	h.trace(running)
}

// switchToNext dispatches the next ready process, if any, or idles the CPU.
func (h *Handlers) switchToNext() {
	if !h.Scheduler.HasNext() {
		h.Dispatcher.Idle()
		return
	}

	h.dispatch(h.Scheduler.GetNext())
}

func (h *Handlers) trace(pcb *PCB) {
	if h.Trace != nil {
		h.Trace.Record(pcb)
	}
}

// handleNew services KindNew: params is the *PCB just created by Run.
func (h *Handlers) handleNew(params any) error {
	pcb, ok := params.(*PCB)
	if !ok {
		return fmt.Errorf("kernel: handleNew: unexpected params %T", params)
	}

	h.readyOrDispatch(pcb)

	return nil
}

// handleKill services KindKill, raised by the CPU executing EXIT: it
// terminates the currently running process.
func (h *Handlers) handleKill(params any) error {
	pcb := h.PCBTable.Running()
	if pcb == nil {
		return fmt.Errorf("kernel: handleKill: no process running")
	}

	pcb.State = StateTerminated
	h.MM.FreeFrames(pcb.Pid)
	h.PCBTable.Remove(pcb.Pid)
	h.trace(pcb)

	h.switchToNext()

	return nil
}

// handleIOIn services KindIOIn: the running process blocks on an I/O
// operation.
func (h *Handlers) handleIOIn(params any) error {
	pcb := h.PCBTable.Running()
	if pcb == nil {
		return fmt.Errorf("kernel: handleIOIn: no process running")
	}

	h.Dispatcher.Save(pcb)
	h.PCBTable.ClearRunning(pcb)
	h.IO.RunOperation(pcb)
	h.trace(pcb)

	h.switchToNext()

	return nil
}

// handleIOOut services KindIOOut: the device has finished the current
// operation; the process that was waiting on it returns to ready (or runs
// immediately, if the CPU is idle).
func (h *Handlers) handleIOOut(params any) error {
	pcb := h.IO.Finished()
	if pcb == nil {
		return nil
	}

	h.readyOrDispatch(pcb)

	return nil
}

// handleTimeout services KindTimeout: the running process's quantum has
// expired; it returns to the back of the ready queue.
func (h *Handlers) handleTimeout(params any) error {
	pcb := h.PCBTable.Running()
	if pcb == nil {
		return nil
	}

	h.Dispatcher.Save(pcb)
	h.PCBTable.ClearRunning(pcb)
	h.Scheduler.Add(pcb)
	h.trace(pcb)

	h.switchToNext()

	return nil
}

// handlePageFault services KindPageFault: params is the logical page index
// that faulted. It loads the running process's page from swap or from its
// own program image, then returns, letting the MMU retry the translation.
func (h *Handlers) handlePageFault(params any) error {
	index, ok := params.(int)
	if !ok {
		return fmt.Errorf("kernel: handlePageFault: unexpected params %T", params)
	}

	pcb := h.PCBTable.Running()
	if pcb == nil {
		return fmt.Errorf("kernel: handlePageFault: no process running")
	}

	p, err := h.FS.Get(pcb.Path)
	if err != nil {
		return fmt.Errorf("kernel: handlePageFault: %w", err)
	}

	return h.pageIn(pcb.Pid, index, p)
}

func (h *Handlers) pageIn(pid, index int, p *program.Program) error {
	return h.Loader.LoadPage(pid, index, p, h.FrameSize)
}
