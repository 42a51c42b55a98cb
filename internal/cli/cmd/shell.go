package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/go-miniso/miniso/internal/cli"
	"github.com/go-miniso/miniso/internal/hardware"
	"github.com/go-miniso/miniso/internal/kernel"
	"github.com/go-miniso/miniso/internal/log"
	"github.com/go-miniso/miniso/internal/shell"
)

// Shell is the interactive command interpreter: it wires up a fresh
// machine and kernel, seeds the file system with demonstration programs,
// and reads commands from stdin until `quit` or EOF.
func Shell() cli.Command {
	return &shellCmd{memSize: kernel.DefaultMemorySize, frameSize: kernel.DefaultFrameSize}
}

type shellCmd struct {
	memSize   int
	frameSize int
	roundRobin bool
	quantum   int
}

func (shellCmd) Description() string {
	return "start the interactive shell"
}

func (shellCmd) Usage(out io.Writer) error {
	_, err := fmt.Fprintln(out, `shell [-rr] [-quantum n]

Sets up the machine and an interactive command shell reading from stdin;
the clock runs once the start command is given.
Commands: start, stop, quit, state, memory, pcbtable, readyqueue, iodevice,
ls, tick n, ticktime f, run path [prio], or a bare path as shorthand for
run.`)

	return err
}

func (s *shellCmd) FlagSet() *cli.FlagSet {
	fs := flag.NewFlagSet("shell", flag.ExitOnError)
	fs.BoolVar(&s.roundRobin, "rr", false, "use round-robin scheduling")
	fs.IntVar(&s.quantum, "quantum", kernel.DefaultRoundRobinQuant, "round-robin quantum, in ticks")

	return fs
}

func (s *shellCmd) Run(ctx context.Context, args []string, out io.Writer, logger *log.Logger) int {
	hw := hardware.New()
	hw.Setup(kernel.DefaultMemorySize, kernel.DefaultFrameSize, kernel.DefaultDeviceService)

	trace := kernel.NewStateTrace()
	hw.Clock.AddSubscriber(trace)

	k := kernel.New(hw, kernel.DefaultFrameSize,
		kernel.WithStateTrace(trace),
		kernel.WithSeedPrograms(DemoPrograms()),
	)

	if s.roundRobin {
		k.ConfigureRoundRobin(s.quantum)
	}

	sh := shell.New(k, out)

	if err := sh.REPL(ctx, os.Stdin); err != nil {
		logger.Error("shell", "err", err)
		return 1
	}

	return 0
}
