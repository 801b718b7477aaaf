/*
 * POXIM - Monitor memory commands.
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
	Dv "github.com/rcornwell/poxim/emu/device"
	disassembler "github.com/rcornwell/poxim/emu/disassemble"
	"github.com/rcornwell/poxim/util/hex"
)

// Number of bytes shown per line.
const lineBytes = 16

// Parse optional -b, -h or -w size switch.
func (line *cmdLine) getSize() (int, error) {
	line.skipSpace()
	if line.peek() != '-' {
		return Dv.SizeWord, nil
	}
	line.pos++
	size := Dv.SizeWord
	switch strings.ToLower(string(line.getCurrent())) {
	case "b":
		size = Dv.SizeByte
	case "h":
		size = Dv.SizeHalf
	case "w":
	default:
		return 0, errors.New("size must be -b, -h or -w")
	}
	if by := line.peek(); by != 0 && by != ' ' && by != '\t' {
		return 0, errors.New("size must be -b, -h or -w")
	}
	return size, nil
}

// Make sure address is usable for access of size.
func checkAddress(core *core.Core, addr uint32, size int) error {
	if (addr & uint32(size-1)) != 0 {
		return fmt.Errorf("address %08X not aligned", addr)
	}
	if !core.Bus().IsDevice(addr) && !core.Memory().CheckAddr(addr) {
		return fmt.Errorf("address %08X out of range", addr)
	}
	return nil
}

// examine [-b|-h|-w] addr [count]
func examine(line *cmdLine, core *core.Core) (bool, error) {
	slog.Debug("Command Examine")
	size, err := line.getSize()
	if err != nil {
		return false, err
	}
	addr, err := line.getHex()
	if err != nil {
		return false, errors.New("examine requires address")
	}
	count, err := line.getCount(1)
	if err != nil {
		return false, err
	}
	if err := line.checkEOL(); err != nil {
		return false, err
	}

	bus := core.Bus()
	str := strings.Builder{}
	for i := range count {
		current := addr + i*uint32(size)
		if err := checkAddress(core, current, size); err != nil {
			return false, err
		}
		if (current-addr)%lineBytes == 0 {
			if i != 0 {
				str.WriteByte('\n')
			}
			fmt.Fprintf(&str, "%08X: ", current)
		}
		value := bus.Load(current, size)
		switch size {
		case Dv.SizeByte:
			hex.FormatBytes(&str, true, []uint8{uint8(value)})
		case Dv.SizeHalf:
			hex.FormatHalf(&str, true, []uint16{uint16(value)})
		default:
			hex.FormatWord(&str, []uint32{value})
		}
	}
	fmt.Fprintln(output, strings.TrimRight(str.String(), " "))
	return false, nil
}

// deposit [-b|-h|-w] addr value
func deposit(line *cmdLine, core *core.Core) (bool, error) {
	slog.Debug("Command Deposit")
	size, err := line.getSize()
	if err != nil {
		return false, err
	}
	addr, err := line.getHex()
	if err != nil {
		return false, errors.New("deposit requires address")
	}
	value, err := line.getHex()
	if err != nil {
		return false, errors.New("deposit requires value")
	}
	if err := line.checkEOL(); err != nil {
		return false, err
	}
	if err := checkAddress(core, addr, size); err != nil {
		return false, err
	}
	if size != Dv.SizeWord && value >= uint32(1)<<(8*size) {
		return false, fmt.Errorf("value %X too large", value)
	}
	core.Bus().Store(addr, size, value)
	return false, nil
}

// disassemble addr [count]
func disassemble(line *cmdLine, core *core.Core) (bool, error) {
	slog.Debug("Command Disassemble")
	addr, err := line.getHex()
	if err != nil {
		return false, errors.New("disassemble requires address")
	}
	count, err := line.getCount(1)
	if err != nil {
		return false, err
	}
	if err := line.checkEOL(); err != nil {
		return false, err
	}

	mem := core.Memory()
	for i := range count {
		current := addr + i*4
		inst, bad := mem.GetWord(current)
		if bad || (current&3) != 0 {
			return false, fmt.Errorf("address %08X out of range", current)
		}
		fmt.Fprintf(output, "%08X: %08X  %s\n", current, inst, disassembler.Disassemble(inst))
	}
	return false, nil
}
