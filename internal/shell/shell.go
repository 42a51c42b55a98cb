// Package shell implements a line-oriented command interpreter: a small
// set of semicolon-separated commands for starting and stopping the
// machine, running programs, and inspecting kernel and hardware state.
package shell

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/go-miniso/miniso/internal/kernel"
	"github.com/go-miniso/miniso/internal/log"
	"github.com/go-miniso/miniso/internal/program"
)

// Shell interprets commands against a kernel.
type Shell struct {
	k   *kernel.Kernel
	out io.Writer
	log *log.Logger

	ctx    context.Context
	cancel context.CancelFunc
}

// New creates a shell over k, writing command output to out.
func New(k *kernel.Kernel, out io.Writer) *Shell {
	return &Shell{k: k, out: out, log: log.DefaultLogger()}
}

// RunScript interprets every command in src, commands separated by ';' or
// newlines, stopping at the first error.
func (s *Shell) RunScript(ctx context.Context, src string) error {
	scanner := bufio.NewScanner(strings.NewReader(src))

	for scanner.Scan() {
		for _, cmd := range strings.Split(scanner.Text(), ";") {
			cmd = strings.TrimSpace(cmd)
			if cmd == "" {
				continue
			}

			if err := s.Eval(ctx, cmd); err != nil {
				return err
			}
		}
	}

	return scanner.Err()
}

// Eval interprets one command line.
func (s *Shell) Eval(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "start":
		return s.start(ctx)
	case "stop":
		s.stop()
		return nil
	case "quit":
		s.stop()
		return errQuit
	case "state":
		return s.state()
	case "memory":
		return s.memory()
	case "pcbtable":
		return s.pcbtable()
	case "readyqueue":
		return s.readyqueue()
	case "iodevice":
		return s.iodevice()
	case "ls":
		return s.ls()
	case "tick":
		return s.tick(args)
	case "ticktime":
		return s.ticktime(args)
	case "run":
		return s.run(args)
	default:
		// A bare path is shorthand for `run path`.
		return s.run(fields)
	}
}

var errQuit = fmt.Errorf("shell: quit")

// IsQuit reports whether err is the sentinel Eval returns for `quit`.
func IsQuit(err error) bool { return err == errQuit }

func (s *Shell) start(ctx context.Context) error {
	s.ctx, s.cancel = context.WithCancel(ctx)
	s.k.HW.SwitchOn(s.ctx)

	return nil
}

func (s *Shell) stop() {
	if s.cancel != nil {
		s.cancel()
	}

	s.k.HW.SwitchOff()
}

func (s *Shell) tick(args []string) error {
	n := 1

	if len(args) > 0 {
		v, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("shell: tick: %w", err)
		}

		n = v
	}

	return s.k.HW.Clock.DoTicks(n)
}

func (s *Shell) ticktime(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("shell: ticktime: requires one argument, seconds per tick")
	}

	f, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("shell: ticktime: %w", err)
	}

	s.k.HW.SetTimeUnit(f)

	return nil
}

func (s *Shell) run(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("shell: run: requires a path")
	}

	priority := 0

	if len(args) > 1 {
		p, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("shell: run: %w", err)
		}

		priority = p
	}

	_, err := s.k.Run(args[0], priority)

	return err
}

func (s *Shell) ls() error {
	for _, path := range s.k.FS.List() {
		fmt.Fprintln(s.out, path)
	}

	return nil
}

func (s *Shell) state() error {
	table := tablewriter.NewWriter(s.out)
	table.SetHeader([]string{"PID", "PATH", "PRIORITY", "STATE", "PC"})

	pcbs := s.k.PCBTable.All()
	sort.Slice(pcbs, func(i, j int) bool { return pcbs[i].Pid < pcbs[j].Pid })

	for _, pcb := range pcbs {
		table.Append([]string{
			strconv.Itoa(pcb.Pid),
			pcb.Path,
			strconv.Itoa(pcb.Priority),
			pcb.State.String(),
			strconv.Itoa(pcb.Context.PC),
		})
	}

	table.Render()

	return nil
}

func (s *Shell) pcbtable() error { return s.state() }

func (s *Shell) readyqueue() error {
	fmt.Fprintf(s.out, "ready: %t\n", s.k.Scheduler.HasNext())
	return nil
}

func (s *Shell) iodevice() error {
	table := tablewriter.NewWriter(s.out)
	table.SetHeader([]string{"DEVICE", "BUSY"})
	table.Append([]string{s.k.HW.IODevice.ID, strconv.FormatBool(s.k.HW.IODevice.IsBusy())})
	table.Render()

	return nil
}

func (s *Shell) memory() error {
	frameSize := s.k.HW.Memory.FrameSize()
	cells := s.k.HW.Memory.View()

	table := tablewriter.NewWriter(s.out)
	table.SetHeader([]string{"FRAME", "CELLS"})

	for f := 0; f*frameSize < len(cells); f++ {
		start := f * frameSize
		end := start + frameSize

		if end > len(cells) {
			end = len(cells)
		}

		table.Append([]string{strconv.Itoa(f), strings.Join(cells[start:end], " ")})
	}

	table.Render()

	return nil
}

// LoadProgram parses src as a program and registers it in the kernel's
// file system under path, for `ls`/`run` to find.
func (s *Shell) LoadProgram(path, src string) error {
	p, err := program.Parse(path, src)
	if err != nil {
		return err
	}

	s.k.FS.Put(path, p)

	return nil
}
