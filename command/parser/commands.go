/*
 * POXIM - Monitor commands.
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

package parser

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	core "github.com/rcornwell/poxim/emu/core"
	"github.com/rcornwell/poxim/emu/cpu"
	op "github.com/rcornwell/poxim/emu/opcodemap"
	"github.com/rcornwell/poxim/util/hex"
)

var cmdList = []cmd{
	{Name: "step", Min: 1, Process: step},
	{Name: "continue", Min: 1, Process: cont},
	{Name: "registers", Min: 1, Process: registers},
	{Name: "examine", Min: 1, Process: examine, Complete: memoryComplete},
	{Name: "deposit", Min: 2, Process: deposit, Complete: memoryComplete},
	{Name: "disassemble", Min: 2, Process: disassemble},
	{Name: "interrupts", Min: 1, Process: interrupts},
	{Name: "quit", Min: 1, Process: quit},
}

var errFinished = errors.New("simulation has finished")

// Handle commands that quit simulation.
func quit(line *cmdLine, _ *core.Core) (bool, error) {
	slog.Debug("Command Quit")
	if err := line.checkEOL(); err != nil {
		return false, err
	}
	return true, nil
}

// Run count cycles, default one.
func step(line *cmdLine, core *core.Core) (bool, error) {
	slog.Debug("Command Step")
	count, err := line.getCount(1)
	if err != nil {
		return false, err
	}
	if err := line.checkEOL(); err != nil {
		return false, err
	}
	if core.Finished() {
		return false, errFinished
	}
	for range count {
		if !core.Step() {
			return false, core.Finish()
		}
	}
	return false, nil
}

// Run until halt or cycle limit.
func cont(line *cmdLine, core *core.Core) (bool, error) {
	slog.Debug("Command Continue")
	if err := line.checkEOL(); err != nil {
		return false, err
	}
	if core.Finished() {
		return false, errFinished
	}
	return false, core.Run()
}

// Show all registers, four per line, then the status flags.
func registers(line *cmdLine, core *core.Core) (bool, error) {
	slog.Debug("Command Registers")
	if err := line.checkEOL(); err != nil {
		return false, err
	}
	regs := core.CPU().Registers()
	str := strings.Builder{}
	for i, value := range regs {
		fmt.Fprintf(&str, "%-3s %08X", op.RegNameUpper(uint8(i)), value)
		if (i & 3) == 3 {
			str.WriteByte('\n')
		} else {
			str.WriteString("  ")
		}
	}
	str.WriteString("FLAGS ")
	hex.FormatFlags(&str, cpu.FlagNames, regs[op.RegSR])
	fmt.Fprintln(output, str.String())
	return false, nil
}

// List pending interrupts in dispatch order.
func interrupts(line *cmdLine, core *core.Core) (bool, error) {
	slog.Debug("Command Interrupts")
	if err := line.checkEOL(); err != nil {
		return false, err
	}
	pending := core.Interrupts()
	if len(pending) == 0 {
		fmt.Fprintln(output, "No pending interrupts")
		return false, nil
	}
	for _, entry := range pending {
		fmt.Fprintf(output, "Priority %d Cause=%08X PC=%08X\n", entry.Priority, entry.Cause, entry.SavedPC)
	}
	return false, nil
}
