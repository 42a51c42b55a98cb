// Package kernel implements the process control plane: process lifecycle,
// the scheduler family, memory management with demand paging, and the
// interrupt handlers that tie them to the hardware.
package kernel

import (
	"fmt"

	"github.com/go-miniso/miniso/internal/hardware"
)

// ProcessState is one of the five states a process can be in.
type ProcessState int

const (
	StateNew ProcessState = iota
	StateReady
	StateRunning
	StateWaiting
	StateTerminated
)

func (s ProcessState) String() string {
	switch s {
	case StateNew:
		return "NEW"
	case StateReady:
		return "READY"
	case StateRunning:
		return "RUNNING"
	case StateWaiting:
		return "WAITING"
	case StateTerminated:
		return "TERMINATED"
	default:
		return fmt.Sprintf("ProcessState(%d)", int(s))
	}
}

// PCB is a process control block: everything the kernel needs to know
// about one process besides its pages, which live in the memory manager.
type PCB struct {
	Pid      int
	Path     string
	Priority int
	Limit    int // Last valid logical address (program size minus one).

	Context hardware.Context
	State   ProcessState
}

func (p *PCB) String() string {
	return fmt.Sprintf("pid=%d path=%s priority=%d state=%s pc=%d",
		p.Pid, p.Path, p.Priority, p.State, p.Context.PC)
}
