package shell

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// REPL reads commands from in, one line at a time, evaluating each against
// s and writing errors to s.out, until in is exhausted, the context is
// cancelled, or a `quit` command is read.
func (s *Shell) REPL(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)

	fmt.Fprint(s.out, "miniso> ")

	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line := scanner.Text()

		for _, cmd := range strings.Split(line, ";") {
			if err := s.Eval(ctx, strings.TrimSpace(cmd)); err != nil {
				if IsQuit(err) {
					return nil
				}

				fmt.Fprintln(s.out, "error:", err)
			}
		}

		fmt.Fprint(s.out, "miniso> ")
	}

	return scanner.Err()
}
