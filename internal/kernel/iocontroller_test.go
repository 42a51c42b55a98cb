package kernel_test

import (
	"testing"

	"github.com/go-miniso/miniso/internal/hardware"
	"github.com/go-miniso/miniso/internal/kernel"
)

func TestIOControllerQueuesWhileDeviceBusy(t *testing.T) {
	intr := hardware.NewInterruptVector()
	device := hardware.NewIODevice("printer0", 2, intr)
	ctrl := kernel.NewIOController(device)

	// The device raises IO_OUT on completion; the test calls Finished itself.
	intr.Register(hardware.KindIOOut, hardware.HandlerFunc(func(any) error { return nil }))

	p1 := &kernel.PCB{Pid: 1}
	p2 := &kernel.PCB{Pid: 2}

	ctrl.RunOperation(p1)
	if !device.IsBusy() {
		t.Fatal("expected device to start servicing p1 immediately")
	}

	ctrl.RunOperation(p2)

	if p2.State != kernel.StateWaiting {
		t.Errorf("p2 state = %s, want WAITING", p2.State)
	}

	for n := 1; n <= 3; n++ {
		if err := device.Tick(n); err != nil {
			t.Fatalf("tick: %s", err)
		}
	}

	done := ctrl.Finished()
	if done != p1 {
		t.Fatalf("Finished() = %v, want p1", done)
	}

	if !device.IsBusy() {
		t.Error("expected the device to start p2's operation immediately after p1 finishes")
	}
}
