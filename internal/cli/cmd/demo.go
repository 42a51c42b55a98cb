package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/go-miniso/miniso/internal/cli"
	"github.com/go-miniso/miniso/internal/hardware"
	"github.com/go-miniso/miniso/internal/kernel"
	"github.com/go-miniso/miniso/internal/log"
	"github.com/go-miniso/miniso/internal/program"
)

// DemoPrograms returns a handful of small programs exercising CPU-bound,
// I/O-bound, and mixed behavior, for the shell and demo commands to run
// without a separate authoring step.
func DemoPrograms() map[string]*program.Program {
	return map[string]*program.Program{
		"cpu_bound.mo": program.NewBuilder().CPU(8).Exit().Build("cpu_bound.mo"),
		"io_bound.mo":  program.NewBuilder().IO().CPU(1).IO().CPU(1).Exit().Build("io_bound.mo"),
		"mixed.mo": program.NewBuilder().
			StoreA(0).
			IncA().IncA().IncA().
			IO().
			DecA().
			Exit().
			Build("mixed.mo"),
	}
}

// Demo runs a short, non-interactive scenario against the demo programs,
// then prints the recorded state trace.
func Demo() cli.Command {
	return &demoCmd{ticks: 40}
}

type demoCmd struct {
	ticks int
}

func (demoCmd) Description() string {
	return "run a short demonstration scenario"
}

func (demoCmd) Usage(out io.Writer) error {
	_, err := fmt.Fprintln(out, `demo [-ticks n]

Runs the bundled cpu_bound.mo and io_bound.mo programs under round-robin
scheduling for n ticks (default 40), printing a state trace.`)

	return err
}

func (d *demoCmd) FlagSet() *cli.FlagSet {
	fs := flag.NewFlagSet("demo", flag.ExitOnError)
	fs.IntVar(&d.ticks, "ticks", 40, "number of ticks to run")

	return fs
}

func (d *demoCmd) Run(ctx context.Context, args []string, out io.Writer, logger *log.Logger) int {
	hw := hardware.New()
	hw.Setup(kernel.DefaultMemorySize, kernel.DefaultFrameSize, kernel.DefaultDeviceService)

	trace := kernel.NewStateTrace()
	hw.Clock.AddSubscriber(trace)

	k := kernel.New(hw, kernel.DefaultFrameSize,
		kernel.WithStateTrace(trace),
		kernel.WithSeedPrograms(DemoPrograms()),
	)
	k.ConfigureRoundRobin(kernel.DefaultRoundRobinQuant)

	if _, err := k.Run("cpu_bound.mo", 2); err != nil {
		logger.Error("demo", "err", err)
		return 1
	}

	if _, err := k.Run("io_bound.mo", 2); err != nil {
		logger.Error("demo", "err", err)
		return 1
	}

	if err := hw.Clock.DoTicks(d.ticks); err != nil {
		logger.Error("demo", "err", err)
		return 1
	}

	for _, line := range trace.Lines() {
		fmt.Fprintln(out, line)
	}

	return 0
}
