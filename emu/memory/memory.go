/*
 * POXIM - Main memory.
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

package memory

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/rcornwell/poxim/util/debug"
)

// Memory is a word array addressed by byte address. Half words and
// bytes are numbered from the most significant end of each word.
type Memory struct {
	mem  []uint32
	size uint32
}

const (
	DefaultSize = 32 // Default size in K.
	MaxSize     = 1024 * 1024
)

var debugMsk int

var debugOption = map[string]int{
	"MEM": debugMem,
}

const debugMem = 1 << iota

// Create memory of size K bytes.
func New(k int) *Memory {
	if k <= 0 {
		k = DefaultSize
	}
	if k > MaxSize {
		k = MaxSize
	}
	size := uint32(k * 1024)
	return &Memory{mem: make([]uint32, size>>2), size: size}
}

// Return size of memory in bytes.
func (m *Memory) Size() uint32 {
	return m.size
}

// Check if address in range.
func (m *Memory) CheckAddr(addr uint32) bool {
	return addr < m.size
}

// Backing words, for dumps.
func (m *Memory) Words() []uint32 {
	return m.mem
}

// Clear all of memory.
func (m *Memory) Clear() {
	clear(m.mem)
}

// Get a word from memory.
func (m *Memory) GetWord(addr uint32) (value uint32, error bool) {
	if addr >= m.size {
		debug.Debugf("MEM", debugMsk, debugMem, "read word out of range %08x", addr)
		return 0, true
	}
	return m.mem[addr>>2], false
}

// Put a word to memory.
func (m *Memory) PutWord(addr, data uint32) bool {
	if addr >= m.size {
		debug.Debugf("MEM", debugMsk, debugMem, "write word out of range %08x=%08x", addr, data)
		return true
	}
	m.mem[addr>>2] = data
	return false
}

// Put a word to memory under mask.
func (m *Memory) PutWordMask(addr, data, mask uint32) bool {
	if addr >= m.size {
		debug.Debugf("MEM", debugMsk, debugMem, "write word out of range %08x=%08x", addr, data)
		return true
	}
	addr >>= 2
	m.mem[addr] &= ^mask
	m.mem[addr] |= data & mask
	return false
}

// Get a half word, offset 0 in a word is the upper half.
func (m *Memory) GetHalf(addr uint32) (uint32, bool) {
	word, err := m.GetWord(addr)
	if err {
		return 0, true
	}
	return ExtractHalf(word, addr), false
}

// Put a half word.
func (m *Memory) PutHalf(addr, data uint32) bool {
	shift := HalfShift(addr)
	return m.PutWordMask(addr, data<<shift, 0xffff<<shift)
}

// Get a byte, offset 0 in a word is the most significant byte.
func (m *Memory) GetByte(addr uint32) (uint32, bool) {
	word, err := m.GetWord(addr)
	if err {
		return 0, true
	}
	return ExtractByte(word, addr), false
}

// Put a byte.
func (m *Memory) PutByte(addr, data uint32) bool {
	shift := ByteShift(addr)
	return m.PutWordMask(addr, data<<shift, 0xff<<shift)
}

// Bit position of the half word at addr within its word.
func HalfShift(addr uint32) uint32 {
	return 16 * (1 - ((addr >> 1) & 1))
}

// Bit position of the byte at addr within its word.
func ByteShift(addr uint32) uint32 {
	return 8 * (3 - (addr & 3))
}

// Half word of word selected by addr.
func ExtractHalf(word, addr uint32) uint32 {
	return (word >> HalfShift(addr)) & 0xffff
}

// Byte of word selected by addr.
func ExtractByte(word, addr uint32) uint32 {
	return (word >> ByteShift(addr)) & 0xff
}

// Load a program image of hex words starting at address 0.
// Returns number of words loaded.
func (m *Memory) LoadImage(input io.Reader) (int, error) {
	scanner := bufio.NewScanner(input)
	scanner.Split(bufio.ScanWords)
	addr := uint32(0)
	count := 0
	for scanner.Scan() {
		token := strings.TrimPrefix(strings.ToLower(scanner.Text()), "0x")
		word, err := strconv.ParseUint(token, 16, 32)
		if err != nil {
			slog.Warn(fmt.Sprintf("image stopped at non hex token: %s", scanner.Text()))
			break
		}
		if m.PutWord(addr, uint32(word)) {
			slog.Warn(fmt.Sprintf("image larger than memory, dropped at %08x", addr))
			break
		}
		addr += 4
		count++
	}
	if err := scanner.Err(); err != nil && !errors.Is(err, io.EOF) {
		return count, err
	}
	return count, nil
}

// Enable debug options.
func Debug(opt string) error {
	flag, ok := debugOption[opt]
	if !ok {
		return errors.New("Memory debug option invalid: " + opt)
	}
	debugMsk |= flag
	return nil
}
