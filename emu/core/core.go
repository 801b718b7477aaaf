/*
 * POXIM - Simulator main loop.
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

package core

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	config "github.com/rcornwell/poxim/config/configparser"
	"github.com/rcornwell/poxim/emu/cpu"
	Dv "github.com/rcornwell/poxim/emu/device"
	"github.com/rcornwell/poxim/emu/fpu"
	"github.com/rcornwell/poxim/emu/interrupt"
	"github.com/rcornwell/poxim/emu/memory"
	"github.com/rcornwell/poxim/emu/terminal"
	"github.com/rcornwell/poxim/emu/watchdog"
)

const (
	msgStart = "[START OF SIMULATION]"
	msgEnd   = "[END OF SIMULATION]"
)

// Configured memory size in K and cycle limit.
var (
	memSize   = memory.DefaultSize
	maxCycles uint64
)

// Core owns the whole machine.
type Core struct {
	mem       *memory.Memory
	bus       *Dv.Bus
	cpu       *cpu.CPU
	irq       *interrupt.Controller
	wdt       *watchdog.Watchdog
	fpu       *fpu.FPU
	term      *terminal.Terminal
	out       io.Writer // Trace output.
	cycles    uint64    // Fetch cycles run.
	maxCycles uint64    // Zero is unlimited.
	started   bool
	finished  bool
}

// register options on initialize.
func init() {
	config.RegisterOption("MEMSIZE", setMemSize)
	config.RegisterOption("MAXCYCLES", setMaxCycles)
}

// MEMSIZE <n>, plain number is in K, K or M suffix is bytes.
func setMemSize(value string, _ []config.Option) error {
	size, err := config.ParseNumber(value)
	if err != nil {
		return err
	}
	upper := strings.ToUpper(value)
	if !strings.HasSuffix(upper, "K") && !strings.HasSuffix(upper, "M") {
		size *= 1024
	}
	if size < 1024 || size > memory.MaxSize*1024 {
		return fmt.Errorf("memory size out of range: %s", value)
	}
	memSize = size / 1024
	return nil
}

// MAXCYCLES <n>, zero runs until halted.
func setMaxCycles(value string, _ []config.Option) error {
	number, err := config.ParseNumber(value)
	if err != nil {
		return err
	}
	maxCycles = uint64(number)
	return nil
}

// Create a machine writing trace to out.
func New(out io.Writer) *Core {
	core := &Core{out: out, maxCycles: maxCycles}
	core.mem = memory.New(memSize)
	core.bus = Dv.NewBus(core.mem)
	core.irq = interrupt.New(nil)
	core.cpu = cpu.New(core.bus, out)
	core.irq.SetTarget(core.cpu)
	core.wdt = watchdog.New(core.irq)
	core.fpu = fpu.New(core.irq)
	core.term = terminal.New()

	devices := []struct {
		addr uint32
		dev  Dv.Device
	}{
		{Dv.WatchdogAddr, core.wdt},
		{Dv.FPUXAddr, core.fpu},
		{Dv.FPUYAddr, core.fpu},
		{Dv.FPUZAddr, core.fpu},
		{Dv.FPUControlAddr, core.fpu},
		{Dv.TerminalAddr, core.term},
	}
	for _, d := range devices {
		if err := core.bus.Attach(d.addr, d.dev); err != nil {
			panic(err)
		}
	}
	return core
}

// Load program image at address 0.
func (core *Core) Load(input io.Reader) error {
	n, err := core.mem.LoadImage(input)
	if err != nil {
		return err
	}
	slog.Info(fmt.Sprintf("Loaded %d words", n))
	return nil
}

// Write start marker, only once.
func (core *Core) Start() {
	if core.started {
		return
	}
	core.started = true
	fmt.Fprintln(core.out, msgStart)
}

// Run one fetch cycle. Returns false once halted.
func (core *Core) Step() bool {
	if core.cpu.Halted() {
		return false
	}
	core.Start()
	pc := core.cpu.PC()
	core.cpu.Execute()
	core.cycles++
	if core.cpu.Halted() {
		slog.Info(fmt.Sprintf("Halted at %08x after %d cycles", pc, core.cycles))
		return false
	}
	core.irq.DrainOne()
	core.wdt.Tick(pc)
	core.fpu.Tick(pc)
	core.cpu.AdvancePC()
	return true
}

// Run until halt or cycle limit, then finish.
func (core *Core) Run() error {
	core.Start()
	for core.Step() {
		if core.maxCycles != 0 && core.cycles >= core.maxCycles {
			slog.Warn(fmt.Sprintf("Cycle limit %d reached at %08x", core.maxCycles, core.cpu.PC()))
			break
		}
	}
	return core.Finish()
}

// Flush terminal and write end marker, only once.
func (core *Core) Finish() error {
	if core.finished {
		return nil
	}
	core.Start()
	core.finished = true
	core.cpu.Dump(core.mem.Words())
	if err := core.term.Flush(core.out); err != nil {
		return err
	}
	_, err := fmt.Fprintln(core.out, msgEnd)
	return err
}

// Echo trace to a second writer, nil stops echo.
func (core *Core) SetEcho(echo io.Writer) {
	if echo == nil {
		core.cpu.SetOutput(core.out)
		return
	}
	core.cpu.SetOutput(io.MultiWriter(core.out, echo))
}

// Change cycle limit.
func (core *Core) SetMaxCycles(n uint64) {
	core.maxCycles = n
}

func (core *Core) CPU() *cpu.CPU {
	return core.cpu
}

func (core *Core) Memory() *memory.Memory {
	return core.mem
}

func (core *Core) Bus() *Dv.Bus {
	return core.bus
}

// Snapshot of pending interrupts.
func (core *Core) Interrupts() []interrupt.Entry {
	return core.irq.Pending()
}

func (core *Core) Cycles() uint64 {
	return core.cycles
}

func (core *Core) Halted() bool {
	return core.cpu.Halted()
}

func (core *Core) Finished() bool {
	return core.finished
}

// Reset configuration to defaults.
func ResetConfig() {
	memSize = memory.DefaultSize
	maxCycles = 0
}

// Has start marker been written.
func (core *Core) Started() bool {
	return core.started
}
