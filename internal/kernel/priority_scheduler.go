package kernel

// priorityScheduler holds five FIFO queues, one per priority level 0
// (highest) through 4 (lowest). To avoid starvation of low-priority
// processes, every agingEvery calls to GetNext it promotes one waiting
// process one queue towards priority 0 (see age).
type priorityScheduler struct {
	queues     [5][]*PCB
	agingEvery int
	calls      int
	preempt    bool
}

const numPriorities = 5

func clampPriority(p int) int {
	if p < 0 {
		return 0
	}

	if p > numPriorities-1 {
		return numPriorities - 1
	}

	return p
}

// NewPriorityScheduler returns a non-preemptive priority scheduler with
// five queues. agingEvery is how many GetNext calls occur between aging
// passes; values less than 1 default to 1.
func NewPriorityScheduler(agingEvery int) Scheduler {
	if agingEvery < 1 {
		agingEvery = 1
	}

	return &priorityScheduler{agingEvery: agingEvery}
}

// NewPreemptivePriorityScheduler is NewPriorityScheduler, except
// MustPreempt compares numeric priority: a newly-ready process with a
// strictly better (lower) priority than the running one preempts it.
func NewPreemptivePriorityScheduler(agingEvery int) Scheduler {
	s := NewPriorityScheduler(agingEvery).(*priorityScheduler)
	s.preempt = true

	return s
}

func (s *priorityScheduler) Add(pcb *PCB) {
	pcb.State = StateReady

	q := clampPriority(pcb.Priority)
	s.queues[q] = append(s.queues[q], pcb)
}

func (s *priorityScheduler) HasNext() bool {
	for _, q := range s.queues {
		if len(q) > 0 {
			return true
		}
	}

	return false
}

func (s *priorityScheduler) GetNext() *PCB {
	s.calls++
	if s.calls%s.agingEvery == 0 {
		s.age()
	}

	for i := range s.queues {
		if len(s.queues[i]) > 0 {
			pcb := s.queues[i][0]
			s.queues[i] = s.queues[i][1:]

			return pcb
		}
	}

	panic("kernel: priorityScheduler: GetNext called with no ready process")
}

// age promotes exactly one waiting process one priority level towards 0,
// preventing low-priority starvation under sustained load: the tail of the
// lowest-numbered non-empty queue at level 1 or below moves to the back of
// the next queue up. It takes repeated aging passes, not one, to cascade a
// process from the lowest queue to the highest.
func (s *priorityScheduler) age() {
	for level := 1; level < numPriorities; level++ {
		q := s.queues[level]
		if len(q) == 0 {
			continue
		}

		last := len(q) - 1
		pcb := q[last]
		s.queues[level] = q[:last]

		pcb.Priority = level - 1
		s.queues[level-1] = append(s.queues[level-1], pcb)

		return
	}
}

func (s *priorityScheduler) MustPreempt(running, justAdded *PCB) bool {
	if !s.preempt || running == nil {
		return false
	}

	return justAdded.Priority < running.Priority
}
