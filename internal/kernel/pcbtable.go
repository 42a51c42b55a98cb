package kernel

import "fmt"

// PCBTable is the registry of every process the kernel knows about,
// indexed by pid, plus a record of whichever one is currently running.
type PCBTable struct {
	nextPid int
	byPid   map[int]*PCB
	running *PCB
}

// NewPCBTable creates an empty table. Pids are assigned starting at 1.
func NewPCBTable() *PCBTable {
	return &PCBTable{
		nextPid: 1,
		byPid:   make(map[int]*PCB),
	}
}

// New allocates a pid and registers a new PCB for path, in StateNew.
func (t *PCBTable) New(path string, priority, limit int) *PCB {
	pcb := &PCB{
		Pid:      t.nextPid,
		Path:     path,
		Priority: priority,
		Limit:    limit,
		State:    StateNew,
	}
	pcb.Context.PC = 0
	pcb.Context.SP = -1

	t.byPid[pcb.Pid] = pcb
	t.nextPid++

	return pcb
}

// Get looks up a PCB by pid.
func (t *PCBTable) Get(pid int) (*PCB, bool) {
	pcb, ok := t.byPid[pid]
	return pcb, ok
}

// Remove deletes a pid's PCB, e.g. on termination.
func (t *PCBTable) Remove(pid int) {
	if t.running != nil && t.running.Pid == pid {
		t.running = nil
	}

	delete(t.byPid, pid)
}

// Running returns the PCB currently marked StateRunning, if any.
func (t *PCBTable) Running() *PCB { return t.running }

// SetRunning marks pcb as the running process. It is an error to call this
// while another PCB is already running.
func (t *PCBTable) SetRunning(pcb *PCB) error {
	if t.running != nil && t.running.Pid != pcb.Pid {
		return fmt.Errorf("kernel: pcbtable: pid %d already running", t.running.Pid)
	}

	pcb.State = StateRunning
	t.running = pcb

	return nil
}

// ClearRunning unmarks the currently running PCB, if it is pcb.
func (t *PCBTable) ClearRunning(pcb *PCB) {
	if t.running != nil && t.running.Pid == pcb.Pid {
		t.running = nil
	}
}

// All returns every registered PCB, unordered.
func (t *PCBTable) All() []*PCB {
	all := make([]*PCB, 0, len(t.byPid))
	for _, pcb := range t.byPid {
		all = append(all, pcb)
	}

	return all
}

// Len reports how many processes are currently registered.
func (t *PCBTable) Len() int { return len(t.byPid) }
