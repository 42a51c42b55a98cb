package kernel_test

import (
	"testing"

	"github.com/go-miniso/miniso/internal/kernel"
)

func TestPCBTableAssignsMonotonicPids(t *testing.T) {
	table := kernel.NewPCBTable()

	first := table.New("a.mo", 0, 10)
	second := table.New("b.mo", 0, 10)

	if second.Pid <= first.Pid {
		t.Errorf("pids not monotonic: first=%d second=%d", first.Pid, second.Pid)
	}
}

func TestPCBTableAtMostOneRunning(t *testing.T) {
	table := kernel.NewPCBTable()
	p1 := table.New("a.mo", 0, 10)
	p2 := table.New("b.mo", 0, 10)

	if err := table.SetRunning(p1); err != nil {
		t.Fatalf("set running: %s", err)
	}

	if err := table.SetRunning(p2); err == nil {
		t.Error("expected an error setting a second process running while one is already running")
	}
}

func TestPCBTableRemoveClearsRunning(t *testing.T) {
	table := kernel.NewPCBTable()
	p1 := table.New("a.mo", 0, 10)

	if err := table.SetRunning(p1); err != nil {
		t.Fatalf("set running: %s", err)
	}

	table.Remove(p1.Pid)

	if table.Running() != nil {
		t.Error("expected no running process after removing the running pid")
	}

	if _, ok := table.Get(p1.Pid); ok {
		t.Error("expected pid to be gone after Remove")
	}
}
