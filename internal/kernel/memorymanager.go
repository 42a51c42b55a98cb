package kernel

import (
	"fmt"

	"github.com/go-miniso/miniso/internal/hardware"
	"github.com/go-miniso/miniso/internal/log"
)

// replacementPolicy selects which resident page to evict to make room for
// a new one. Implementations may reorder or mutate resident in place
// (second chance flips Chance bits and rotates), which is why Select takes
// and returns the slice rather than just an index.
type replacementPolicy interface {
	Select(resident []*hardware.Page) (victim *hardware.Page, rest []*hardware.Page)
}

// fifoPolicy always evicts the oldest resident page.
type fifoPolicy struct{}

func (fifoPolicy) Select(resident []*hardware.Page) (*hardware.Page, []*hardware.Page) {
	return resident[0], resident[1:]
}

// secondChancePolicy is the clock algorithm: walk from the front, and if a
// page's Chance bit is set, clear it and move the page to the back instead
// of evicting it.
type secondChancePolicy struct{}

func (secondChancePolicy) Select(resident []*hardware.Page) (*hardware.Page, []*hardware.Page) {
	for i := 0; i < len(resident); i++ {
		head := resident[0]
		resident = resident[1:]

		if head.Chance > 0 {
			head.Chance = 0
			resident = append(resident, head)

			continue
		}

		return head, resident
	}

	// Every page had a second chance; evict whichever is now at the front.
	return resident[0], resident[1:]
}

// MemoryManager tracks free frames, the resident set (frames currently
// backing a page, oldest first), per-pid page tables, and the swap store
// pages are evicted to.
type MemoryManager struct {
	mem    *hardware.Memory
	mmu    *hardware.MMU
	policy replacementPolicy

	Free     []hardware.Frame
	Resident []*hardware.Page
	Tables   map[int][]*hardware.Page
	Swap     *SwapStore

	log *log.Logger
}

// NewMemoryManager creates a memory manager over mem, with every frame
// initially free, using policy for eviction (defaulting to FIFO when
// policy is nil).
func NewMemoryManager(mem *hardware.Memory, mmu *hardware.MMU, policy replacementPolicy) *MemoryManager {
	if policy == nil {
		policy = fifoPolicy{}
	}

	free := make([]hardware.Frame, mem.FrameCount())
	for i := range free {
		free[i] = hardware.Frame(i)
	}

	return &MemoryManager{
		mem:    mem,
		mmu:    mmu,
		policy: policy,
		Free:   free,
		Tables: make(map[int][]*hardware.Page),
		Swap:   NewSwapStore(),
		log:    log.DefaultLogger(),
	}
}

// CreateTable allocates an all-invalid page table of pageCount entries for
// pid and registers it, ready for demand paging to fill in on first
// reference.
func (m *MemoryManager) CreateTable(pid, pageCount int) []*hardware.Page {
	table := hardware.NewPageTable(pid, pageCount)
	m.Tables[pid] = table

	return table
}

// allocateFrame returns a free frame, evicting a resident page via the
// configured policy if none is free.
func (m *MemoryManager) allocateFrame() (hardware.Frame, error) {
	if len(m.Free) > 0 {
		f := m.Free[0]
		m.Free = m.Free[1:]

		return f, nil
	}

	if len(m.Resident) == 0 {
		return 0, ErrNoFreeFrames
	}

	victim, rest := m.policy.Select(m.Resident)
	m.Resident = rest

	if err := m.evict(victim); err != nil {
		return 0, fmt.Errorf("kernel: memorymanager: evict: %w", err)
	}

	frame := victim.Frame
	victim.Valid = false

	return frame, nil
}

// evict writes a victim page's frame contents to swap if dirty, or drops
// them if clean (they're still on disk, unchanged).
func (m *MemoryManager) evict(victim *hardware.Page) error {
	if !victim.Dirty {
		return nil
	}

	cells, err := m.mem.ReadFrame(victim.Frame)
	if err != nil {
		return err
	}

	m.Swap.Put(victim.Pid, victim.Index, cells)
	m.log.Debug("page evicted to swap", "pid", victim.Pid, "index", victim.Index)

	return nil
}

// PageIn brings page index of pid's table into a frame, loading its
// content from swap if present there, or otherwise from source (the
// process's original program image), and installs the mapping in mmu.
func (m *MemoryManager) PageIn(pid, index int, source []string) error {
	table, ok := m.Tables[pid]
	if !ok || index >= len(table) {
		return fmt.Errorf("kernel: memorymanager: pid %d has no page %d", pid, index)
	}

	page := table[index]

	frame, err := m.allocateFrame()
	if err != nil {
		return err
	}

	cells, fromSwap := m.Swap.Get(pid, index)
	if !fromSwap {
		cells = source
	}

	if err := m.mem.WriteFrame(frame, cells); err != nil {
		return err
	}

	page.Frame = frame
	page.Valid = true
	page.Dirty = false
	page.Chance = 1

	m.Resident = append(m.Resident, page)
	m.mmu.SetPageFrame(index, page)

	m.log.Debug("page in", "pid", pid, "index", index, "frame", frame, "from_swap", fromSwap)

	return nil
}

// FreeFrames releases every resident frame belonging to pid, drops its
// page table and swap entries, and returns the frames to the free list.
// KILL always calls this unconditionally; nothing reclaims frames lazily.
func (m *MemoryManager) FreeFrames(pid int) {
	kept := m.Resident[:0]

	for _, page := range m.Resident {
		if page.Pid == pid {
			m.Free = append(m.Free, page.Frame)
			page.Valid = false
		} else {
			kept = append(kept, page)
		}
	}

	m.Resident = kept

	delete(m.Tables, pid)
	m.Swap.Clear(pid)
}
