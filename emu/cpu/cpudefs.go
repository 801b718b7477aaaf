/*
 * POXIM - CPU definitions.
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

package cpu

import op "github.com/rcornwell/poxim/emu/opcodemap"

// Decoded instruction.
type stepInfo struct {
	inst   uint32 // Instruction word
	pc     uint32 // Address of instruction
	opcode uint8  // Primary opcode
	z      uint8  // Register fields
	x      uint8
	y      uint8
	l      uint8
	imm    int32 // Sign extended immediate for the instruction form
}

// Special registers.
const (
	CR  = op.RegCR
	IPC = op.RegIPC
	IR  = op.RegIR
	PC  = op.RegPC
	SP  = op.RegSP
	SR  = op.RegSR
)

// Status register flags.
const (
	FlagCY uint32 = 1 << iota // Carry
	FlagIE                    // Interrupt enable
	FlagIV                    // Invalid instruction
	FlagOV                    // Overflow
	FlagSN                    // Sign
	FlagZD                    // Divide by zero
	FlagZN                    // Zero
)

// Flag names, bit 0 first.
var FlagNames = []string{"CY", "IE", "IV", "OV", "SN", "ZD", "ZN"}

// Trap vectors.
const (
	vecInvalid  uint32 = 0x04
	vecDivZero  uint32 = 0x08
	vecSoftware uint32 = 0x0C
)

// Trace markers.
const (
	msgSoftware = "[SOFTWARE INTERRUPTION]"
	msgInvalid  = "[INVALID INSTRUCTION @ 0x%08X]"
	msgHardware = "[HARDWARE INTERRUPTION %d]"
)

// Debug options.
const (
	debugInst = 1 << iota
	debugTrap
	debugDump
)

var debugOption = map[string]int{
	"INST": debugInst,
	"TRAP": debugTrap,
	"DUMP": debugDump,
}

var debugMsk int
