package kernel

// Scheduler is the capability the dispatcher needs from any scheduling
// policy: somewhere to put a ready process, somewhere to pull the next one
// from, and a say in whether the currently running process should be
// preempted in favor of one just added.
type Scheduler interface {
	// Add enqueues pcb as ready to run.
	Add(pcb *PCB)

	// GetNext removes and returns the next process to run. It panics if
	// HasNext is false; callers must check first.
	GetNext() *PCB

	// HasNext reports whether any process is waiting to run.
	HasNext() bool

	// MustPreempt reports whether running should be preempted now that
	// justAdded has become ready. Non-preemptive policies always return
	// false.
	MustPreempt(running, justAdded *PCB) bool
}

// fifoScheduler is a single FIFO ready queue. It backs both FCFS and Round
// Robin: the two differ only in whether the kernel arms a timer quantum
// when it configures the scheduler, not in queueing behavior.
type fifoScheduler struct {
	queue []*PCB
}

// NewFCFSScheduler returns a first-come-first-served scheduler: processes
// run to completion or to their own blocking I/O, never preempted by the
// timer.
func NewFCFSScheduler() Scheduler {
	return &fifoScheduler{}
}

// NewRoundRobinScheduler returns the same FIFO queue as NewFCFSScheduler;
// Round Robin behavior comes entirely from the kernel arming a quantum on
// the hardware timer when this scheduler is selected.
func NewRoundRobinScheduler() Scheduler {
	return &fifoScheduler{}
}

func (s *fifoScheduler) Add(pcb *PCB) {
	pcb.State = StateReady
	s.queue = append(s.queue, pcb)
}

func (s *fifoScheduler) GetNext() *PCB {
	pcb := s.queue[0]
	s.queue = s.queue[1:]

	return pcb
}

func (s *fifoScheduler) HasNext() bool { return len(s.queue) > 0 }

func (s *fifoScheduler) MustPreempt(running, justAdded *PCB) bool { return false }
