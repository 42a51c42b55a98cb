// Package program represents assembled miniso programs: flat token streams
// ready for the loader to page into memory.
package program

import "github.com/go-miniso/miniso/internal/hardware"

// Program is a flat sequence of instruction and operand tokens, in the
// opcode vocabulary hardware understands.
type Program struct {
	Name         string
	Instructions []string
}

// Size returns the number of cells the program occupies.
func (p *Program) Size() int { return len(p.Instructions) }

// PageCount returns how many frames of frameSize cells the program needs.
func (p *Program) PageCount(frameSize int) int {
	if frameSize <= 0 {
		panic("program: PageCount: frameSize must be positive")
	}

	n := p.Size() / frameSize
	if p.Size()%frameSize != 0 {
		n++
	}

	return n
}

// Page returns the tokens belonging to page index i, padded with CPU (a
// no-op) out to frameSize cells if the program doesn't fill the last page.
// A page wholly past the end of the program is frameSize empty cells.
func (p *Program) Page(index, frameSize int) []string {
	start := index * frameSize
	end := start + frameSize

	if start >= len(p.Instructions) {
		return make([]string, frameSize)
	}

	if end > len(p.Instructions) {
		end = len(p.Instructions)
	}

	page := make([]string, frameSize)
	copy(page, p.Instructions[start:end])

	for i := end - start; i < frameSize; i++ {
		page[i] = string(hardware.OpCPU)
	}

	return page
}

// Expand returns instructions with a terminating EXIT appended if the last
// instruction is not already EXIT or RET, so every program ends in a
// terminator rather than running off the end of its own pages. Only EXIT
// raises KILL; a final RET returns to whatever address is on the stack.
func Expand(instructions []string) []string {
	if len(instructions) > 0 {
		last := hardware.Op(instructions[len(instructions)-1])
		if hardware.IsExit(last) {
			return instructions
		}
	}

	return append(append([]string{}, instructions...), string(hardware.OpEXIT))
}

// New builds a Program named name from instructions, expanding it to
// guarantee termination.
func New(name string, instructions []string) *Program {
	return &Program{Name: name, Instructions: Expand(instructions)}
}
