package kernel

import "github.com/go-miniso/miniso/internal/program"

// Loader registers a process's page table with the memory manager. No
// frames are allocated at creation: every page starts invalid, and the
// first and every later page comes in on demand via PAGE_FAULT.
type Loader struct {
	mm *MemoryManager
}

// NewLoader creates a loader backed by mm.
func NewLoader(mm *MemoryManager) *Loader {
	return &Loader{mm: mm}
}

// Create registers pid's page table, sized to fit p, with every entry
// invalid. Returns the process's address limit (its last valid logical
// address). The dispatcher sets PC = 0 on first dispatch; the resulting
// fetch from an invalid page 0 is what raises the process's first
// PAGE_FAULT.
func (l *Loader) Create(pid int, p *program.Program, frameSize int) (limit int, err error) {
	l.mm.CreateTable(pid, p.PageCount(frameSize))

	return p.Size() - 1, nil
}

// LoadPage pages in page index of pid's table, sourcing its content from
// p's own image (the memory manager decides swap-vs-source internally by
// whether a swap entry exists for (pid, index)).
func (l *Loader) LoadPage(pid, index int, p *program.Program, frameSize int) error {
	return l.mm.PageIn(pid, index, p.Page(index, frameSize))
}
