package kernel_test

import (
	"testing"

	"github.com/go-miniso/miniso/internal/kernel"
)

func TestFIFOSchedulerOrder(t *testing.T) {
	s := kernel.NewFCFSScheduler()

	p1 := &kernel.PCB{Pid: 1}
	p2 := &kernel.PCB{Pid: 2}

	s.Add(p1)
	s.Add(p2)

	if !s.HasNext() {
		t.Fatal("expected HasNext true")
	}

	if got := s.GetNext(); got.Pid != 1 {
		t.Errorf("first out = %d, want 1 (FIFO)", got.Pid)
	}

	if got := s.GetNext(); got.Pid != 2 {
		t.Errorf("second out = %d, want 2", got.Pid)
	}

	if s.HasNext() {
		t.Error("expected HasNext false once drained")
	}
}

func TestFIFOSchedulerNeverPreempts(t *testing.T) {
	s := kernel.NewFCFSScheduler()
	running := &kernel.PCB{Pid: 1}
	justAdded := &kernel.PCB{Pid: 2}

	if s.MustPreempt(running, justAdded) {
		t.Error("FCFS must never preempt")
	}
}

func TestPriorityScheduerOrdersByPriority(t *testing.T) {
	s := kernel.NewPriorityScheduler(100)

	low := &kernel.PCB{Pid: 1, Priority: 4}
	high := &kernel.PCB{Pid: 2, Priority: 0}

	s.Add(low)
	s.Add(high)

	if got := s.GetNext(); got.Pid != 2 {
		t.Errorf("first out = %d, want 2 (higher priority)", got.Pid)
	}
}

func TestPriorityAgingPromotesStarvedProcesses(t *testing.T) {
	s := kernel.NewPriorityScheduler(1)

	starved := &kernel.PCB{Pid: 1, Priority: 4}
	s.Add(starved)

	// Keep a higher-priority process always ready so starved never gets
	// picked without aging.
	for i := 0; i < 4; i++ {
		s.Add(&kernel.PCB{Pid: 100 + i, Priority: 0})
		next := s.GetNext()

		if next.Pid == starved.Pid {
			t.Fatalf("starved process picked too early, at aging step %d", i)
		}
	}

	if starved.Priority >= 4 {
		t.Errorf("starved.Priority = %d, want it promoted below 4 after aging", starved.Priority)
	}
}

func TestPreemptivePriorityScheduler(t *testing.T) {
	s := kernel.NewPreemptivePriorityScheduler(100)

	running := &kernel.PCB{Pid: 1, Priority: 2}
	higher := &kernel.PCB{Pid: 2, Priority: 0}
	lower := &kernel.PCB{Pid: 3, Priority: 4}

	if !s.MustPreempt(running, higher) {
		t.Error("expected preemption for strictly higher priority arrival")
	}

	if s.MustPreempt(running, lower) {
		t.Error("expected no preemption for lower priority arrival")
	}
}
