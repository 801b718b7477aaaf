/*
 * POXIM - Memory mapped device bus.
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

package device

import (
	"fmt"

	"github.com/rcornwell/poxim/emu/memory"
)

// Device addresses.
const (
	WatchdogAddr   uint32 = 0x80808080
	FPUXAddr       uint32 = 0x80808880
	FPUYAddr       uint32 = 0x80808884
	FPUZAddr       uint32 = 0x80808888
	FPUControlAddr uint32 = 0x8080888C
	TerminalAddr   uint32 = 0x88888888
)

// Access sizes.
const (
	SizeByte = 1
	SizeHalf = 2
	SizeWord = 4
)

// Interface for memory mapped device registers. Addresses passed are
// word aligned.
type Device interface {
	ReadReg(addr uint32) uint32
	WriteReg(addr uint32, value uint32)
}

// Devices that take the stored value as is for sub word stores rather
// than having it merged into the register.
type Port interface {
	WritePort(addr uint32, value uint32)
}

// Bus routes loads and stores to either a device register or memory.
type Bus struct {
	mem     *memory.Memory
	devices map[uint32]Device
}

func NewBus(mem *memory.Memory) *Bus {
	return &Bus{mem: mem, devices: map[uint32]Device{}}
}

// Return memory attached to bus.
func (bus *Bus) Memory() *memory.Memory {
	return bus.mem
}

// Attach a device register at address.
func (bus *Bus) Attach(addr uint32, dev Device) error {
	if (addr & 3) != 0 {
		return fmt.Errorf("device address not word aligned: %08x", addr)
	}
	if _, ok := bus.devices[addr]; ok {
		return fmt.Errorf("device address already in use: %08x", addr)
	}
	bus.devices[addr] = dev
	return nil
}

// Return device at address if any.
func (bus *Bus) device(addr uint32) (Device, bool) {
	dev, ok := bus.devices[addr&^3]
	return dev, ok
}

// Check if address is a device register.
func (bus *Bus) IsDevice(addr uint32) bool {
	_, ok := bus.device(addr)
	return ok
}

// Load a value of size bytes from addr.
func (bus *Bus) Load(addr uint32, size int) uint32 {
	dev, ok := bus.device(addr)
	if !ok {
		var value uint32
		switch size {
		case SizeByte:
			value, _ = bus.mem.GetByte(addr)
		case SizeHalf:
			value, _ = bus.mem.GetHalf(addr)
		default:
			value, _ = bus.mem.GetWord(addr)
		}
		return value
	}

	word := dev.ReadReg(addr &^ 3)
	switch size {
	case SizeByte:
		return memory.ExtractByte(word, addr)
	case SizeHalf:
		return memory.ExtractHalf(word, addr)
	}
	return word
}

// Store a value of size bytes to addr.
func (bus *Bus) Store(addr uint32, size int, value uint32) {
	dev, ok := bus.device(addr)
	if !ok {
		switch size {
		case SizeByte:
			_ = bus.mem.PutByte(addr, value&0xff)
		case SizeHalf:
			_ = bus.mem.PutHalf(addr, value&0xffff)
		default:
			_ = bus.mem.PutWord(addr, value)
		}
		return
	}

	base := addr &^ 3
	if size == SizeWord {
		dev.WriteReg(base, value)
		return
	}

	if port, ok := dev.(Port); ok {
		port.WritePort(base, value)
		return
	}

	var shift, mask uint32
	if size == SizeByte {
		shift = memory.ByteShift(addr)
		mask = 0xff << shift
	} else {
		shift = memory.HalfShift(addr)
		mask = 0xffff << shift
	}
	word := dev.ReadReg(base)
	dev.WriteReg(base, (word &^ mask)|((value<<shift)&mask))
}
