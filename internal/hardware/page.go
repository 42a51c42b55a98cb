package hardware

import "fmt"

// Page describes how one logical page of a process is mapped. It is shared
// -- by pointer -- between the kernel's per-pid page table, its resident
// list, and the MMU's TLB, so that a handler mutating a page is visible
// everywhere the page is referenced, with no separate synchronization step.
type Page struct {
	Frame Frame // Physical frame, meaningful only if Valid.
	Valid bool  // True iff resident in a frame.
	Dirty bool  // True iff written since last load from file or swap.
	Chance int  // Second-chance bit, used by the second-chance victim policy.

	Pid   int // Owning process.
	Index int // Logical page number within the owning process.
}

func (p *Page) String() string {
	return fmt.Sprintf("page{pid:%d idx:%d frame:%d valid:%t dirty:%t chance:%d}",
		p.Pid, p.Index, p.Frame, p.Valid, p.Dirty, p.Chance)
}

// NewPageTable builds an empty page table of n pages for the given pid, none
// of them resident.
func NewPageTable(pid, n int) []*Page {
	pages := make([]*Page, n)

	for i := range pages {
		pages[i] = &Page{Pid: pid, Index: i}
	}

	return pages
}
