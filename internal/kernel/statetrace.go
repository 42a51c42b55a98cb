package kernel

import "fmt"

// StateTrace records each process's state transitions, stamped with the
// tick they happened on, for a Gantt-style trace: one row per recorded
// transition, rendered oldest first.
type StateTrace struct {
	tick int
	rows []traceRow
}

type traceRow struct {
	tick  int
	pid   int
	path  string
	state ProcessState
}

// NewStateTrace creates an empty trace.
func NewStateTrace() *StateTrace { return &StateTrace{} }

// Record appends pcb's current state at the current tick count. Handlers
// call this whenever a PCB's state changes.
func (t *StateTrace) Record(pcb *PCB) {
	t.rows = append(t.rows, traceRow{tick: t.tick, pid: pcb.Pid, path: pcb.Path, state: pcb.State})
}

// Tick implements hardware.Subscriber, advancing the trace's tick counter.
// Callers add it to the clock alongside the I/O device and timer.
func (t *StateTrace) Tick(tickNbr int) error {
	t.tick = tickNbr
	return nil
}

// Lines renders the trace as one line per recorded transition, oldest
// first.
func (t *StateTrace) Lines() []string {
	lines := make([]string, len(t.rows))
	for i, r := range t.rows {
		lines[i] = fmt.Sprintf("tick=%-4d pid=%-3d path=%-20s state=%s", r.tick, r.pid, r.path, r.state)
	}

	return lines
}
