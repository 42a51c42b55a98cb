// Package hardware simulates the machine the kernel runs on: memory, the MMU
// and its TLB, the CPU and its tiny instruction set, the clock and its
// subscribers, and the interrupt vector that ties them together.
//
// Nothing in this package knows about processes, schedulers, or page
// tables belonging to anyone in particular -- that's the kernel's job.
// hardware only knows how to step an instruction, translate an address, and
// raise an interrupt when something goes wrong.
package hardware

// Op is an opcode token. The machine's "instructions" are opaque strings, as
// if punched onto a card; the CPU only cares whether a token matches one it
// knows.
type Op string

// The instruction set. Operands, where present, follow the opcode as
// separate tokens in program order.
const (
	OpCPU    Op = "CPU"    // consume one cycle
	OpIO     Op = "IO"     // raise IO_IN
	OpEXIT   Op = "EXIT"   // raise KILL
	OpSTORA  Op = "STORA"  // STORA v: A <- v
	OpSTORB  Op = "STORB"  // STORB v: B <- v
	OpINCA   Op = "INCA"   // A <- A+1
	OpDECA   Op = "DECA"   // A <- A-1
	OpINCB   Op = "INCB"   // B <- B+1
	OpDECB   Op = "DECB"   // B <- B-1
	OpADDAB  Op = "ADDAB"  // A <- A+B
	OpCMPAB  Op = "CMPAB"  // zf <- A == B
	OpJMP    Op = "JMP"    // JMP a: pc <- a
	OpJZ     Op = "JZ"     // JZ a: if zf, pc <- a
	OpJNZ    Op = "JNZ"    // JNZ a: if !zf, pc <- a
	OpCALL   Op = "CALL"   // CALL a: push pc; pc <- a
	OpRET    Op = "RET"    // pc <- pop
	OpPUSHA  Op = "PUSHA"  // push A
	OpPOPA   Op = "POPA"   // A <- pop
	OpPUSHB  Op = "PUSHB"  // push B
	OpPOPB   Op = "POPB"   // B <- pop
)

// unaryOperands holds the opcodes that consume one operand token immediately
// following them in the instruction stream.
var unaryOperands = map[Op]bool{
	OpSTORA: true,
	OpSTORB: true,
	OpJMP:   true,
	OpJZ:    true,
	OpJNZ:   true,
	OpCALL:  true,
}

// HasOperand reports whether op reads one operand token.
func HasOperand(op Op) bool {
	return unaryOperands[op]
}

// IsExit reports whether op terminates a program (the last instruction of
// every loaded program is EXIT or RET).
func IsExit(op Op) bool {
	return op == OpEXIT || op == OpRET
}
