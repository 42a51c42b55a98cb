package program

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-miniso/miniso/internal/hardware"
)

// Grammar is the line-oriented program source format Parse accepts:
//
//	program  := line*
//	line     := ws* (instruction | comment | "") "\n"
//	instruction := opcode (ws+ operand)?
//	opcode   := one of the hardware.Op mnemonics, case-insensitive
//	operand  := signed decimal integer
//	comment  := "#" any*
//
// Blank lines and comment lines are skipped. Operand-taking opcodes
// without an operand, or operands that don't parse as integers, are
// parse errors.
const Grammar = "opcode [operand] per line; '#' starts a comment"

// Parse reads a program's source text and returns the assembled Program.
func Parse(name string, src string) (*Program, error) {
	scanner := bufio.NewScanner(strings.NewReader(src))

	var tokens []string

	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := strings.TrimSpace(scanner.Text())
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = strings.TrimSpace(line[:i])
		}

		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		op := hardware.Op(strings.ToUpper(fields[0]))

		if hardware.HasOperand(op) {
			if len(fields) != 2 {
				return nil, fmt.Errorf("program: parse %s:%d: %s requires an operand", name, lineNo, op)
			}

			if _, err := strconv.Atoi(fields[1]); err != nil {
				return nil, fmt.Errorf("program: parse %s:%d: bad operand %q: %w", name, lineNo, fields[1], err)
			}

			tokens = append(tokens, string(op), fields[1])
		} else {
			if len(fields) != 1 {
				return nil, fmt.Errorf("program: parse %s:%d: %s takes no operand", name, lineNo, op)
			}

			tokens = append(tokens, string(op))
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("program: parse %s: %w", name, err)
	}

	return New(name, tokens), nil
}
