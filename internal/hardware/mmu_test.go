package hardware_test

import (
	"testing"

	"github.com/go-miniso/miniso/internal/hardware"
)

func TestMMUPageFaultServiced(t *testing.T) {
	mem := hardware.NewMemory(16, 4)
	intr := hardware.NewInterruptVector()
	mmu := hardware.NewMMU(mem, intr, 4)
	mmu.Limit = 7

	page := &hardware.Page{Frame: 0, Valid: false}
	mmu.SetPageFrame(0, page)

	var faulted int

	intr.Register(hardware.KindPageFault, hardware.HandlerFunc(func(params any) error {
		faulted++

		idx, ok := params.(int)
		if !ok || idx != 0 {
			t.Fatalf("unexpected params %v", params)
		}

		if err := mem.Write(0, "CPU"); err != nil {
			return err
		}

		page.Valid = true

		return nil
	}))

	got, err := mmu.Fetch(0)
	if err != nil {
		t.Fatalf("fetch: %s", err)
	}

	if got != "CPU" {
		t.Errorf("fetch = %q, want CPU", got)
	}

	if faulted != 1 {
		t.Errorf("handler called %d times, want 1", faulted)
	}
}

func TestMMUInvalidAddressFatal(t *testing.T) {
	mem := hardware.NewMemory(16, 4)
	intr := hardware.NewInterruptVector()
	mmu := hardware.NewMMU(mem, intr, 4)
	mmu.Limit = 3

	if _, err := mmu.Fetch(10); err == nil {
		t.Fatal("expected an error for an out-of-limit address")
	}
}

func TestMMUWriteMarksDirty(t *testing.T) {
	mem := hardware.NewMemory(16, 4)
	intr := hardware.NewInterruptVector()
	mmu := hardware.NewMMU(mem, intr, 4)
	mmu.Limit = 7

	page := &hardware.Page{Frame: 0, Valid: true}
	mmu.SetPageFrame(0, page)

	if err := mmu.Write(1, "5"); err != nil {
		t.Fatalf("write: %s", err)
	}

	if !page.Dirty {
		t.Error("expected page to be marked dirty after write")
	}
}
