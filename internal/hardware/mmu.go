package hardware

// mmu.go is the memory management unit: logical-to-physical address
// translation through a per-process page table cached in the TLB, and
// demand paging via the PAGE_FAULT interrupt.

import (
	"errors"
	"fmt"

	"github.com/go-miniso/miniso/internal/log"
)

// ErrInvalidAddress is fatal: a logical address beyond the running
// process's limit.
var ErrInvalidAddress = errors.New("mmu: invalid address")

// ErrNoPageTable is fatal: a translation was attempted for a page with no
// entry in the TLB at all (as opposed to an entry marked not valid, which
// is serviceable with a page fault).
var ErrNoPageTable = errors.New("mmu: no page table loaded")

// MMU translates logical addresses for the currently-dispatched process and
// raises PAGE_FAULT when a page isn't resident.
type MMU struct {
	FrameSize int
	Limit     int // Inclusive upper bound of the running process's address space.

	tlb  map[int]*Page
	mem  *Memory
	intr *InterruptVector

	log *log.Logger
}

// NewMMU creates an MMU bound to the machine's memory and interrupt vector.
// frameSize is fixed for the lifetime of the machine.
func NewMMU(mem *Memory, intr *InterruptVector, frameSize int) *MMU {
	return &MMU{
		FrameSize: frameSize,
		tlb:       make(map[int]*Page),
		mem:       mem,
		intr:      intr,
		log:       log.DefaultLogger(),
	}
}

// ResetTLB clears all entries. The dispatcher calls this on every context
// load, before installing the incoming process's pages.
func (m *MMU) ResetTLB() {
	m.tlb = make(map[int]*Page)
}

// SetPageFrame installs (or updates) the TLB entry for a logical page.
func (m *MMU) SetPageFrame(pageIndex int, page *Page) {
	m.tlb[pageIndex] = page
}

// IsResident reports whether pageIndex has a valid (frame-backed) TLB
// entry, for tests observing demand paging without driving a fault.
func (m *MMU) IsResident(pageIndex int) bool {
	page, ok := m.tlb[pageIndex]
	return ok && page.Valid
}

// translate resolves a logical address to a physical one, raising
// PAGE_FAULT and retrying if the page isn't resident. It is fatal if the
// address exceeds the process limit or if no page table entry exists for
// the page at all.
func (m *MMU) translate(logical int) (int, error) {
	if logical > m.Limit || logical < 0 {
		return 0, fmt.Errorf("%w: %d exceeds limit %d", ErrInvalidAddress, logical, m.Limit)
	}

	pageIndex := logical / m.FrameSize
	offset := logical % m.FrameSize

	for {
		page, ok := m.tlb[pageIndex]
		if !ok {
			return 0, fmt.Errorf("%w: page %d", ErrNoPageTable, pageIndex)
		}

		if page.Valid {
			return int(page.Frame)*m.FrameSize + offset, nil
		}

		m.log.Debug("page fault", "page", pageIndex)

		if err := m.intr.Handle(KindPageFault, pageIndex); err != nil {
			return 0, fmt.Errorf("mmu: page fault: %w", err)
		}
		// Loop: the handler must have installed a valid frame for pageIndex.
	}
}

// Fetch reads the value at a logical address.
func (m *MMU) Fetch(logical int) (string, error) {
	phys, err := m.translate(logical)
	if err != nil {
		return "", err
	}

	return m.mem.Read(phys)
}

// Write stores a value at a logical address and marks the owning page
// dirty.
func (m *MMU) Write(logical int, value string) error {
	pageIndex := logical / m.FrameSize

	phys, err := m.translate(logical)
	if err != nil {
		return err
	}

	if err := m.mem.Write(phys, value); err != nil {
		return err
	}

	if page, ok := m.tlb[pageIndex]; ok {
		page.Dirty = true
	}

	return nil
}
