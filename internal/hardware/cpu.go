package hardware

// cpu.go is the single-issue CPU: fetch, decode, execute, one step per
// clock tick while not idle.

import (
	"fmt"
	"strconv"

	"github.com/go-miniso/miniso/internal/log"
)

// CPU is the machine's single core. PC == -1 means idle: no process is
// loaded.
type CPU struct {
	PC int // Program counter. -1 iff no process is running.
	A  int // General register A.
	B  int // General register B.
	SP int // Stack pointer. Grows upward in the process's own pages.
	ZF bool

	mmu  *MMU
	intr *InterruptVector

	log *log.Logger
}

// NewCPU creates a CPU bound to an MMU and interrupt vector. It starts
// idle.
func NewCPU(mmu *MMU, intr *InterruptVector) *CPU {
	return &CPU{
		PC:   -1,
		SP:   -1,
		mmu:  mmu,
		intr: intr,
		log:  log.DefaultLogger(),
	}
}

// Busy reports whether a process is currently loaded.
func (c *CPU) Busy() bool { return c.PC != -1 }

// Context is the CPU's saved state, as stored in and restored from a PCB.
type Context struct {
	PC, A, B, SP int
	ZF           bool
}

// Save returns the CPU's current register state.
func (c *CPU) Save() Context {
	return Context{PC: c.PC, A: c.A, B: c.B, SP: c.SP, ZF: c.ZF}
}

// Load installs a saved register state, resuming where it left off.
func (c *CPU) Load(ctx Context) {
	c.PC, c.A, c.B, c.SP, c.ZF = ctx.PC, ctx.A, ctx.B, ctx.SP, ctx.ZF
}

// Idle clears the program counter, marking the CPU as having no running
// process.
func (c *CPU) Idle() { c.PC = -1 }

// Step fetches, decodes, and executes one instruction. It returns nil even
// when the instruction raised KILL or IO_IN -- those are normal outcomes
// serviced by the interrupt vector, not CPU errors. A non-nil error is
// fatal: a bad address or a decode failure.
func (c *CPU) Step() error {
	op, err := c.fetch()
	if err != nil {
		return fmt.Errorf("cpu: fetch: %w", err)
	}

	var operand int

	if HasOperand(op) {
		operand, err = c.fetchOperand()
		if err != nil {
			return fmt.Errorf("cpu: fetch operand: %w", err)
		}
	}

	c.log.Debug("exec", "op", op, "pc", c.PC, "a", c.A, "b", c.B, "sp", c.SP, "zf", c.ZF)

	return c.execute(op, operand)
}

func (c *CPU) fetch() (Op, error) {
	tok, err := c.mmu.Fetch(c.PC)
	if err != nil {
		return "", err
	}

	c.PC++

	return Op(tok), nil
}

func (c *CPU) fetchOperand() (int, error) {
	tok, err := c.mmu.Fetch(c.PC)
	if err != nil {
		return 0, err
	}

	c.PC++

	v, err := strconv.Atoi(tok)
	if err != nil {
		return 0, fmt.Errorf("cpu: bad operand %q: %w", tok, err)
	}

	return v, nil
}

// push writes v onto the process's own stack, growing upward.
func (c *CPU) push(v int) error {
	c.SP++
	return c.mmu.Write(c.SP, strconv.Itoa(v))
}

// pop reads and removes the top of the process's own stack.
func (c *CPU) pop() (int, error) {
	tok, err := c.mmu.Fetch(c.SP)
	if err != nil {
		return 0, err
	}

	c.SP--

	v, err := strconv.Atoi(tok)
	if err != nil {
		return 0, fmt.Errorf("cpu: corrupt stack value %q: %w", tok, err)
	}

	return v, nil
}

func (c *CPU) execute(op Op, operand int) error {
	switch op {
	case OpCPU:
		// Consume one cycle; no effect.
	case OpIO:
		return c.intr.Handle(KindIOIn, string(op))
	case OpEXIT:
		return c.intr.Handle(KindKill, nil)
	case OpSTORA:
		c.A = operand
	case OpSTORB:
		c.B = operand
	case OpINCA:
		c.A++
		c.ZF = c.A == 0
	case OpDECA:
		c.A--
		c.ZF = c.A == 0
	case OpINCB:
		c.B++
		c.ZF = c.B == 0
	case OpDECB:
		c.B--
		c.ZF = c.B == 0
	case OpADDAB:
		c.A += c.B
		c.ZF = c.A == 0
	case OpCMPAB:
		c.ZF = c.A == c.B
	case OpJMP:
		c.PC = operand
	case OpJZ:
		if c.ZF {
			c.PC = operand
		}
	case OpJNZ:
		if !c.ZF {
			c.PC = operand
		}
	case OpCALL:
		if err := c.push(c.PC); err != nil {
			return fmt.Errorf("cpu: call: %w", err)
		}

		c.PC = operand
	case OpRET:
		pc, err := c.pop()
		if err != nil {
			return fmt.Errorf("cpu: ret: %w", err)
		}

		c.PC = pc
	case OpPUSHA:
		if err := c.push(c.A); err != nil {
			return fmt.Errorf("cpu: pusha: %w", err)
		}
	case OpPOPA:
		v, err := c.pop()
		if err != nil {
			return fmt.Errorf("cpu: popa: %w", err)
		}

		c.A = v
	case OpPUSHB:
		if err := c.push(c.B); err != nil {
			return fmt.Errorf("cpu: pushb: %w", err)
		}
	case OpPOPB:
		v, err := c.pop()
		if err != nil {
			return fmt.Errorf("cpu: popb: %w", err)
		}

		c.B = v
	default:
		return fmt.Errorf("cpu: unknown opcode %q", op)
	}

	return nil
}
