package hardware_test

import (
	"testing"

	"github.com/go-miniso/miniso/internal/hardware"
)

func TestTimerForwardsWithoutQuantum(t *testing.T) {
	mem := hardware.NewMemory(16, 4)
	intr := hardware.NewInterruptVector()
	mmu := hardware.NewMMU(mem, intr, 4)
	mmu.Limit = 3

	page := &hardware.Page{Frame: 0, Valid: true}
	mmu.SetPageFrame(0, page)

	for i, tok := range []string{string(hardware.OpCPU), string(hardware.OpCPU)} {
		mem.Write(i, tok)
	}

	cpu := hardware.NewCPU(mmu, intr)
	cpu.PC = 0

	timer := hardware.NewTimer(cpu, intr)

	if err := timer.Tick(0); err != nil {
		t.Fatalf("tick: %s", err)
	}

	if cpu.PC != 1 {
		t.Errorf("PC = %d, want 1 (FCFS timer forwards every tick)", cpu.PC)
	}
}

func TestTimerRaisesTimeoutAfterQuantum(t *testing.T) {
	mem := hardware.NewMemory(16, 4)
	intr := hardware.NewInterruptVector()
	mmu := hardware.NewMMU(mem, intr, 4)
	mmu.Limit = 3

	page := &hardware.Page{Frame: 0, Valid: true}
	mmu.SetPageFrame(0, page)

	for i := 0; i < 4; i++ {
		mem.Write(i, string(hardware.OpCPU))
	}

	cpu := hardware.NewCPU(mmu, intr)
	cpu.PC = 0

	timer := hardware.NewTimer(cpu, intr)
	timer.SetQuantum(2)

	var timedOut bool

	intr.Register(hardware.KindTimeout, hardware.HandlerFunc(func(any) error {
		timedOut = true
		return nil
	}))

	for n := 0; n < 3; n++ {
		if err := timer.Tick(n); err != nil {
			t.Fatalf("tick %d: %s", n, err)
		}
	}

	if !timedOut {
		t.Error("expected TIMEOUT after quantum exceeded")
	}
}
