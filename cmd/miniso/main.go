// miniso is an educational emulator of a preemptive multiprogramming
// operating system: a tiny CPU, a paged MMU with demand paging, an
// interrupt-driven kernel, and a pluggable scheduler family.
package main

import (
	"context"
	"os"

	"github.com/go-miniso/miniso/internal/cli"
	"github.com/go-miniso/miniso/internal/cli/cmd"
)

var commands = []cli.Command{
	cmd.Shell(),
	cmd.Demo(),
}

// Entry point.
func main() {
	result :=
		cli.New(context.Background()).
			WithLogger(os.Stderr).
			WithCommands(commands).
			WithHelp(cmd.Help(commands)).
			Execute(os.Args[1:])

	os.Exit(result)
}
