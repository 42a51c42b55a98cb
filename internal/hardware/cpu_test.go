package hardware_test

import (
	"testing"

	"github.com/go-miniso/miniso/internal/hardware"
)

func newMachine(t *testing.T, program []string) (*hardware.CPU, *hardware.MMU) {
	t.Helper()

	mem := hardware.NewMemory(16, 4)
	intr := hardware.NewInterruptVector()
	mmu := hardware.NewMMU(mem, intr, 4)
	// The whole memory is addressable, so the stack above the program
	// (SP starts at 7) can be pushed to.
	mmu.Limit = 15

	for i := 0; i < mem.FrameCount(); i++ {
		mmu.SetPageFrame(i, &hardware.Page{Frame: hardware.Frame(i), Valid: true})
	}

	for i, tok := range program {
		if err := mem.Write(i, tok); err != nil {
			t.Fatalf("write: %s", err)
		}
	}

	cpu := hardware.NewCPU(mmu, intr)
	cpu.PC = 0
	cpu.SP = 7

	intr.Register(hardware.KindKill, hardware.HandlerFunc(func(any) error {
		cpu.Idle()
		return nil
	}))
	intr.Register(hardware.KindIOIn, hardware.HandlerFunc(func(any) error { return nil }))

	return cpu, mmu
}

func TestCPUArithmetic(t *testing.T) {
	program := []string{
		string(hardware.OpSTORA), "5",
		string(hardware.OpSTORB), "3",
		string(hardware.OpADDAB),
		string(hardware.OpEXIT),
	}

	cpu, _ := newMachine(t, program)

	for cpu.Busy() {
		if err := cpu.Step(); err != nil {
			t.Fatalf("step: %s", err)
		}
	}

	if cpu.A != 8 {
		t.Errorf("A = %d, want 8", cpu.A)
	}
}

func TestCPUCallRet(t *testing.T) {
	program := []string{
		string(hardware.OpCALL), "3",
		string(hardware.OpEXIT),
		string(hardware.OpINCA),
		string(hardware.OpRET),
	}

	cpu, _ := newMachine(t, program)

	if err := cpu.Step(); err != nil { // CALL 3
		t.Fatalf("step: %s", err)
	}

	if cpu.PC != 3 {
		t.Fatalf("PC = %d, want 3", cpu.PC)
	}

	if err := cpu.Step(); err != nil { // INCA
		t.Fatalf("step: %s", err)
	}

	if err := cpu.Step(); err != nil { // RET
		t.Fatalf("step: %s", err)
	}

	if cpu.PC != 2 {
		t.Errorf("PC = %d, want 2 (return address)", cpu.PC)
	}

	if cpu.A != 1 {
		t.Errorf("A = %d, want 1", cpu.A)
	}
}

func TestCPUJumpZero(t *testing.T) {
	program := []string{
		string(hardware.OpSTORA), "0",
		string(hardware.OpCMPAB),
		string(hardware.OpJZ), "6",
		string(hardware.OpINCA),
		string(hardware.OpEXIT),
		string(hardware.OpEXIT),
	}

	cpu, _ := newMachine(t, program)

	for cpu.Busy() {
		if err := cpu.Step(); err != nil {
			t.Fatalf("step: %s", err)
		}
	}

	if cpu.A != 0 {
		t.Errorf("A = %d, want 0 (jump over INCA)", cpu.A)
	}
}
