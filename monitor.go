// monitor.go - Interactive machine monitor for the MMIO bridge

package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// Monitor is a line-oriented debugger over a HostBridge, in the spirit of a
// machine monitor: peek and poke registers, step the clock, inspect the
// register map and the trigger state.
type Monitor struct {
	host   *HostBridge
	bridge *MMIOBridge
	in     io.Reader
	out    io.Writer
	prompt bool
}

// NewMonitor builds a monitor over stdin/stdout. The prompt is suppressed
// when stdin is not a terminal so piped command files stay clean.
func NewMonitor(host *HostBridge, bridge *MMIOBridge) *Monitor {
	return &Monitor{
		host:   host,
		bridge: bridge,
		in:     os.Stdin,
		out:    os.Stdout,
		prompt: term.IsTerminal(int(os.Stdin.Fd())),
	}
}

// Run reads and executes commands until quit or EOF.
func (m *Monitor) Run() error {
	scanner := bufio.NewScanner(m.in)
	for {
		if m.prompt {
			fmt.Fprint(m.out, "mmio> ")
		}
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if quit := m.execute(line); quit {
			return nil
		}
	}
}

func (m *Monitor) execute(line string) (quit bool) {
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "q", "quit", "exit":
		return true
	case "h", "help", "?":
		m.printHelp()
	case "rd":
		m.cmdRead(args)
	case "wr":
		m.cmdWrite(args)
	case "step":
		m.cmdStep(args)
	case "io":
		fmt.Fprint(m.out, FormatIOView(BuildIOView(m.bridge)))
	case "regs":
		m.cmdRegs()
	case "manifest":
		m.cmdManifest()
	case "trigger":
		m.cmdTrigger(args)
	case "cycles":
		fmt.Fprintf(m.out, "%d\n", m.bridge.Cycles())
	case "reset":
		m.bridge.Reset()
		fmt.Fprintln(m.out, "bridge reset")
	default:
		fmt.Fprintf(m.out, "unknown command %q, try help\n", cmd)
	}
	return false
}

func (m *Monitor) printHelp() {
	fmt.Fprint(m.out, `commands:
  rd <addr>            read a 32-bit word
  wr <addr> <value>    write a 32-bit word
  step [n]             advance the clock n cycles (default 1)
  io                   show the register map
  regs                 dump header registers and path state
  manifest             fetch and print the manifest from the ROM window
  trigger <hostaddr>   drive the manifest transfer trigger pair
  cycles               show the cycle counter
  reset                hard reset the bridge
  quit                 leave the monitor
numbers accept 0x prefixes
`)
}

func (m *Monitor) cmdRead(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(m.out, "usage: rd <addr>")
		return
	}
	addr, err := parseNum(args[0])
	if err != nil {
		fmt.Fprintln(m.out, err)
		return
	}
	value, err := m.host.Read32(uint32(addr))
	if err != nil {
		fmt.Fprintln(m.out, err)
		return
	}
	fmt.Fprintf(m.out, "%#07x: %#010x\n", uint32(addr), value)
}

func (m *Monitor) cmdWrite(args []string) {
	if len(args) != 2 {
		fmt.Fprintln(m.out, "usage: wr <addr> <value>")
		return
	}
	addr, err1 := parseNum(args[0])
	value, err2 := parseNum(args[1])
	if err1 != nil || err2 != nil {
		fmt.Fprintln(m.out, "bad number")
		return
	}
	if err := m.host.Write32(uint32(addr), uint32(value)); err != nil {
		fmt.Fprintln(m.out, err)
		return
	}
	fmt.Fprintf(m.out, "%#07x <- %#010x\n", uint32(addr), uint32(value))
}

func (m *Monitor) cmdStep(args []string) {
	n := 1
	if len(args) == 1 {
		v, err := parseNum(args[0])
		if err != nil {
			fmt.Fprintln(m.out, err)
			return
		}
		n = int(v)
	}
	m.host.Step(n)
	fmt.Fprintf(m.out, "cycle %d\n", m.bridge.Cycles())
}

func (m *Monitor) cmdRegs() {
	for word := 0; word < HEADER_WORDS; word++ {
		value, err := m.host.Read32(uint32(word) * 4)
		if err != nil {
			fmt.Fprintln(m.out, err)
			return
		}
		fmt.Fprintf(m.out, "header[%d] = %#010x\n", word, value)
	}
	fmt.Fprintf(m.out, "read outstanding: %v\n", !m.bridge.Read.ARReady())
	fmt.Fprintf(m.out, "write in flight:  %v\n", m.bridge.Write.Writing())
	fmt.Fprintf(m.out, "trigger count:    %d\n", m.bridge.Write.TriggerCount())
}

func (m *Monitor) cmdManifest() {
	manifest, err := m.host.ReadManifest()
	if err != nil {
		fmt.Fprintln(m.out, err)
		return
	}
	fmt.Fprintf(m.out, "%s\n", manifest)
}

func (m *Monitor) cmdTrigger(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(m.out, "usage: trigger <hostaddr>")
		return
	}
	hostAddr, err := parseNum(args[0])
	if err != nil {
		fmt.Fprintln(m.out, err)
		return
	}
	if err := m.host.TriggerManifestTransfer(hostAddr); err != nil {
		fmt.Fprintln(m.out, err)
		return
	}
	fmt.Fprintf(m.out, "trigger count now %d\n", m.bridge.Write.TriggerCount())
}

func parseNum(s string) (uint64, error) {
	v, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("bad number %q", s)
	}
	return v, nil
}
