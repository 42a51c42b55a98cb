package program_test

import (
	"testing"

	"github.com/go-miniso/miniso/internal/program"
)

func TestExpandAppendsExit(t *testing.T) {
	p := program.New("t", []string{"CPU", "CPU"})

	if got := p.Instructions[len(p.Instructions)-1]; got != "EXIT" {
		t.Errorf("last instruction = %q, want EXIT", got)
	}
}

func TestExpandLeavesExistingTerminator(t *testing.T) {
	p := program.New("t", []string{"CPU", "RET"})

	if len(p.Instructions) != 2 {
		t.Errorf("Expand should not append past an existing RET: got %v", p.Instructions)
	}
}

func TestPageCount(t *testing.T) {
	cases := []struct {
		size, frameSize, want int
	}{
		{8, 4, 2},
		{9, 4, 3},
		{4, 4, 1},
	}

	for _, c := range cases {
		p := &program.Program{Instructions: make([]string, c.size)}
		if got := p.PageCount(c.frameSize); got != c.want {
			t.Errorf("PageCount(%d, %d) = %d, want %d", c.size, c.frameSize, got, c.want)
		}
	}
}

func TestPagePadsLastPage(t *testing.T) {
	p := &program.Program{Instructions: []string{"CPU", "CPU", "EXIT"}}

	page := p.Page(0, 4)
	if len(page) != 4 {
		t.Fatalf("page length = %d, want 4", len(page))
	}

	if page[3] != "CPU" {
		t.Errorf("padding cell = %q, want CPU (no-op)", page[3])
	}
}

func TestBuilder(t *testing.T) {
	p := program.NewBuilder().StoreA(1).IncA().Exit().Build("t")

	want := []string{"STORA", "1", "INCA", "EXIT"}

	if len(p.Instructions) != len(want) {
		t.Fatalf("instructions = %v, want %v", p.Instructions, want)
	}

	for i := range want {
		if p.Instructions[i] != want[i] {
			t.Errorf("instructions[%d] = %q, want %q", i, p.Instructions[i], want[i])
		}
	}
}
