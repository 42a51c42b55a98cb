package hardware

// memory.go is the machine's main memory: a fixed-size array of cells, each
// holding one instruction token, addressed by frame index * frame size +
// offset.

import (
	"errors"
	"fmt"

	"github.com/go-miniso/miniso/internal/log"
)

// ErrMemory is the sentinel wrapped by every memory access error.
var ErrMemory = errors.New("memory error")

// Frame is an index into Memory identifying one fixed-size, contiguous
// block of cells.
type Frame int

// Memory is the machine's RAM: a flat array of cells, each holding one
// instruction token (or the zero value, the empty string, for an
// uninitialized cell).
type Memory struct {
	cells     []string
	frameSize int

	log *log.Logger
}

// NewMemory allocates size cells organized into frames of frameSize cells
// each. size need not be an exact multiple of frameSize, but usually is.
func NewMemory(size, frameSize int) *Memory {
	return &Memory{
		cells:     make([]string, size),
		frameSize: frameSize,
		log:       log.DefaultLogger(),
	}
}

// FrameSize returns the configured frame size, in cells.
func (m *Memory) FrameSize() int { return m.frameSize }

// FrameCount returns the number of frames the memory is divided into.
func (m *Memory) FrameCount() int { return len(m.cells) / m.frameSize }

// Read returns the cell at the given physical address.
func (m *Memory) Read(addr int) (string, error) {
	if addr < 0 || addr >= len(m.cells) {
		return "", fmt.Errorf("%w: read: address %d out of range", ErrMemory, addr)
	}

	return m.cells[addr], nil
}

// Write stores a value at the given physical address.
func (m *Memory) Write(addr int, value string) error {
	if addr < 0 || addr >= len(m.cells) {
		return fmt.Errorf("%w: write: address %d out of range", ErrMemory, addr)
	}

	m.cells[addr] = value

	return nil
}

// ReadFrame returns a copy of the contents of a frame, used by the memory
// manager to snapshot a dirty page for the swap store.
func (m *Memory) ReadFrame(f Frame) ([]string, error) {
	start := int(f) * m.frameSize
	if start < 0 || start+m.frameSize > len(m.cells) {
		return nil, fmt.Errorf("%w: read frame: frame %d out of range", ErrMemory, f)
	}

	out := make([]string, m.frameSize)
	copy(out, m.cells[start:start+m.frameSize])

	return out, nil
}

// WriteFrame overwrites a frame's contents with the given cells, padding
// with empty cells if fewer than a full frame is given.
func (m *Memory) WriteFrame(f Frame, cells []string) error {
	start := int(f) * m.frameSize
	if start < 0 || start+m.frameSize > len(m.cells) {
		return fmt.Errorf("%w: write frame: frame %d out of range", ErrMemory, f)
	}

	n := copy(m.cells[start:start+m.frameSize], cells)

	for i := start + n; i < start+m.frameSize; i++ {
		m.cells[i] = ""
	}

	return nil
}

// View returns a defensive copy of every cell, for debugging and shell
// output. It is not cheap; don't call it on a hot path.
func (m *Memory) View() []string {
	view := make([]string, len(m.cells))
	copy(view, m.cells)

	return view
}
