package kernel

import (
	"fmt"

	"github.com/go-miniso/miniso/internal/hardware"
	"github.com/go-miniso/miniso/internal/log"
	"github.com/go-miniso/miniso/internal/program"
)

// Default machine geometry for a freshly constructed kernel.
const (
	DefaultMemorySize      = 32
	DefaultFrameSize       = 4
	DefaultDeviceService   = 3
	DefaultRoundRobinQuant = 2
)

// Kernel wires the hardware to the process control plane: the PCB table,
// a pluggable scheduler, the memory manager and loader, the file system,
// and the I/O controller, all reachable through the handlers registered
// against the hardware's interrupt vector.
type Kernel struct {
	HW *hardware.Hardware

	PCBTable   *PCBTable
	Scheduler  Scheduler
	MM         *MemoryManager
	Loader     *Loader
	FS         *FileSystem
	IO         *IOController
	Dispatcher *Dispatcher
	Trace      *StateTrace
	handlers   *Handlers

	frameSize int
	log       *log.Logger
}

// KernelOption configures a Kernel at construction.
type KernelOption func(*Kernel)

// WithScheduler overrides the default FCFS scheduler.
func WithScheduler(s Scheduler) KernelOption {
	return func(k *Kernel) { k.Scheduler = s }
}

// WithReplacementPolicy overrides the default FIFO page replacement
// policy with second-chance.
func WithReplacementPolicy(secondChance bool) KernelOption {
	return func(k *Kernel) {
		if secondChance {
			k.MM.policy = secondChancePolicy{}
		} else {
			k.MM.policy = fifoPolicy{}
		}
	}
}

// WithStateTrace attaches a Gantt-style state-trace recorder.
func WithStateTrace(t *StateTrace) KernelOption {
	return func(k *Kernel) { k.Trace = t }
}

// WithSeedPrograms preloads the kernel's file system with name/program
// pairs, so a fresh kernel has demonstration programs ready to run.
func WithSeedPrograms(seeds map[string]*program.Program) KernelOption {
	return func(k *Kernel) {
		for path, p := range seeds {
			k.FS.Put(path, p)
		}
	}
}

// New creates a kernel around hw, which must already have had Setup
// called, with frameSize matching hw's own configuration.
func New(hw *hardware.Hardware, frameSize int, opts ...KernelOption) *Kernel {
	mm := NewMemoryManager(hw.Memory, hw.MMU, fifoPolicy{})

	k := &Kernel{
		HW:         hw,
		PCBTable:   NewPCBTable(),
		Scheduler:  NewFCFSScheduler(),
		MM:         mm,
		Loader:     NewLoader(mm),
		FS:         NewFileSystem(),
		IO:         NewIOController(hw.IODevice),
		Dispatcher: NewDispatcher(hw.CPU, hw.MMU, hw.Timer, mm),
		frameSize:  frameSize,
		log:        log.DefaultLogger(),
	}

	for _, opt := range opts {
		opt(k)
	}

	k.handlers = &Handlers{
		PCBTable:   k.PCBTable,
		Scheduler:  k.Scheduler,
		Dispatcher: k.Dispatcher,
		MM:         k.MM,
		Loader:     k.Loader,
		FS:         k.FS,
		IO:         k.IO,
		FrameSize:  k.frameSize,
		Trace:      k.Trace,
	}
	NewHandlers(k.handlers, hw.Interrupts)

	return k
}

// ConfigureRoundRobin arms the hardware timer with a quantum and replaces
// the scheduler with Round Robin (timer quantum is how RR differs from
// FCFS, not the queue structure).
func (k *Kernel) ConfigureRoundRobin(quantum int) {
	k.Scheduler = NewRoundRobinScheduler()
	k.handlers.Scheduler = k.Scheduler
	k.HW.Timer.SetQuantum(quantum)
}

// Run synthesizes a NEW interrupt for the program at path: it loads the
// program from the file system, creates a PCB and page table for it, and
// hands the resulting PCB to the NEW handler, which either dispatches it
// immediately or enqueues it depending on what else is running. Priority
// is clamped to [0,4].
func (k *Kernel) Run(path string, priority int) (*PCB, error) {
	p, err := k.FS.Get(path)
	if err != nil {
		return nil, fmt.Errorf("kernel: run: %w", err)
	}

	priority = clampPriority(priority)

	pcb := k.PCBTable.New(path, priority, 0)

	limit, err := k.Loader.Create(pcb.Pid, p, k.frameSize)
	if err != nil {
		k.PCBTable.Remove(pcb.Pid)
		return nil, fmt.Errorf("kernel: run: %w", err)
	}

	pcb.Limit = limit
	pcb.State = StateNew

	k.log.Info("new process", "pid", pcb.Pid, "path", path, "priority", priority)

	if err := k.HW.Interrupts.Handle(hardware.KindNew, pcb); err != nil {
		return nil, fmt.Errorf("kernel: run: %w", err)
	}

	return pcb, nil
}
