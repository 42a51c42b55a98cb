package kernel

import "github.com/go-miniso/miniso/internal/hardware"

// Dispatcher moves a PCB's saved context and page table onto the hardware,
// and later saves the hardware's state back into the PCB. It is the only
// component that touches the CPU, MMU, and timer directly on behalf of
// process switches.
type Dispatcher struct {
	cpu   *hardware.CPU
	mmu   *hardware.MMU
	timer *hardware.Timer
	mm    *MemoryManager
}

// NewDispatcher creates a dispatcher over the given hardware and memory
// manager.
func NewDispatcher(cpu *hardware.CPU, mmu *hardware.MMU, timer *hardware.Timer, mm *MemoryManager) *Dispatcher {
	return &Dispatcher{cpu: cpu, mmu: mmu, timer: timer, mm: mm}
}

// Load installs pcb as the running process: its page table (valid and
// invalid entries alike, so demand paging can still raise PAGE_FAULT for
// the ones not yet resident) into the MMU's TLB, its saved register
// context into the CPU, and resets the timer's quantum count.
func (d *Dispatcher) Load(pcb *PCB) {
	d.mmu.ResetTLB()
	d.mmu.Limit = pcb.Limit

	for i, page := range d.mm.Tables[pcb.Pid] {
		d.mmu.SetPageFrame(i, page)
	}

	d.cpu.Load(pcb.Context)
	d.timer.Reset()
}

// Save copies the CPU's current register state back into pcb, to be
// restored the next time it is dispatched.
func (d *Dispatcher) Save(pcb *PCB) {
	pcb.Context = d.cpu.Save()
}

// Idle clears the CPU, leaving no process dispatched.
func (d *Dispatcher) Idle() {
	d.cpu.Idle()
}
