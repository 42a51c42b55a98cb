package program

import (
	"strconv"

	"github.com/go-miniso/miniso/internal/hardware"
)

// Builder assembles a token stream fluently, for hand-writing
// demonstration programs without a parser round-trip.
type Builder struct {
	tokens []string
}

// NewBuilder starts an empty program.
func NewBuilder() *Builder { return &Builder{} }

func (b *Builder) op(op hardware.Op) *Builder {
	b.tokens = append(b.tokens, string(op))
	return b
}

func (b *Builder) opWithOperand(op hardware.Op, operand int) *Builder {
	b.tokens = append(b.tokens, string(op), strconv.Itoa(operand))
	return b
}

// CPU appends n CPU-bound instructions.
func (b *Builder) CPU(n int) *Builder {
	for i := 0; i < n; i++ {
		b.op(hardware.OpCPU)
	}

	return b
}

// IO appends one I/O instruction.
func (b *Builder) IO() *Builder { return b.op(hardware.OpIO) }

// Exit appends EXIT, terminating the process.
func (b *Builder) Exit() *Builder { return b.op(hardware.OpEXIT) }

// StoreA appends STORA v.
func (b *Builder) StoreA(v int) *Builder { return b.opWithOperand(hardware.OpSTORA, v) }

// StoreB appends STORB v.
func (b *Builder) StoreB(v int) *Builder { return b.opWithOperand(hardware.OpSTORB, v) }

// IncA, DecA, IncB, DecB, AddAB, CmpAB append their zero-operand opcodes.
func (b *Builder) IncA() *Builder  { return b.op(hardware.OpINCA) }
func (b *Builder) DecA() *Builder  { return b.op(hardware.OpDECA) }
func (b *Builder) IncB() *Builder  { return b.op(hardware.OpINCB) }
func (b *Builder) DecB() *Builder  { return b.op(hardware.OpDECB) }
func (b *Builder) AddAB() *Builder { return b.op(hardware.OpADDAB) }
func (b *Builder) CmpAB() *Builder { return b.op(hardware.OpCMPAB) }

// Jmp, Jz, Jnz, Call append their opcode with a target address operand.
func (b *Builder) Jmp(addr int) *Builder { return b.opWithOperand(hardware.OpJMP, addr) }
func (b *Builder) Jz(addr int) *Builder  { return b.opWithOperand(hardware.OpJZ, addr) }
func (b *Builder) Jnz(addr int) *Builder { return b.opWithOperand(hardware.OpJNZ, addr) }
func (b *Builder) Call(addr int) *Builder {
	return b.opWithOperand(hardware.OpCALL, addr)
}

// Ret, PushA, PopA, PushB, PopB append their zero-operand opcodes.
func (b *Builder) Ret() *Builder   { return b.op(hardware.OpRET) }
func (b *Builder) PushA() *Builder { return b.op(hardware.OpPUSHA) }
func (b *Builder) PopA() *Builder  { return b.op(hardware.OpPOPA) }
func (b *Builder) PushB() *Builder { return b.op(hardware.OpPUSHB) }
func (b *Builder) PopB() *Builder  { return b.op(hardware.OpPOPB) }

// Build returns the finished Program named name, expanded to guarantee
// termination.
func (b *Builder) Build(name string) *Program {
	return New(name, b.tokens)
}
