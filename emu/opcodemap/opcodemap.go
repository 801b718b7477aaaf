/*
 * POXIM - Opcode definitions and instruction field decoding.
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

package opcodemap

import "golang.org/x/exp/constraints"

const (
	// Primary opcodes, bits 31..26.
	OpMOV   = 0x00 // z, imm21
	OpMOVS  = 0x01 // z, signed imm21
	OpADD   = 0x02 // z, x, y
	OpSUB   = 0x03 // z, x, y
	OpMULDV = 0x04 // family selected by bits 10..8
	OpCMP   = 0x05 // x, y
	OpAND   = 0x06 // z, x, y
	OpOR    = 0x07 // z, x, y
	OpNOT   = 0x08 // z, x
	OpXOR   = 0x09 // z, x, y
	OpPUSH  = 0x0A // v, w, x, y, z
	OpPOP   = 0x0B // v, w, x, y, z
	OpADDI  = 0x12 // z, x, imm16
	OpSUBI  = 0x13
	OpMULI  = 0x14
	OpDIVI  = 0x15
	OpMODI  = 0x16
	OpCMPI  = 0x17 // x, imm16
	OpL8    = 0x18 // z, [x+imm16]
	OpL16   = 0x19
	OpL32   = 0x1A
	OpS8    = 0x1B // [x+imm16], z
	OpS16   = 0x1C
	OpS32   = 0x1D
	OpCALLF = 0x1E // [x+imm16]
	OpRET   = 0x1F
	OpRETI  = 0x20
	OpBIT   = 0x21 // cbr/sbr selected by bit 0
	OpBAE   = 0x2A // imm26
	OpBAT   = 0x2B
	OpBBE   = 0x2C
	OpBBT   = 0x2D
	OpBEQ   = 0x2E
	OpBGE   = 0x2F
	OpBGT   = 0x30
	OpBIV   = 0x31
	OpBLE   = 0x32
	OpBLT   = 0x33
	OpBNE   = 0x34
	OpBNI   = 0x35
	OpBNZ   = 0x36
	OpBUN   = 0x37
	OpBZD   = 0x38
	OpCALLS = 0x39 // imm26
	OpINT   = 0x3F // imm26

	// Secondary codes for OpMULDV.
	SubMUL  = 0
	SubSLL  = 1
	SubMULS = 2
	SubSLA  = 3
	SubDIV  = 4
	SubSRL  = 5
	SubDIVS = 6
	SubSRA  = 7

	// Secondary codes for OpBIT.
	SubCBR = 0
	SubSBR = 1
)

// Special register numbers.
const (
	RegCR  = 26
	RegIPC = 27
	RegIR  = 28
	RegPC  = 29
	RegSP  = 30
	RegSR  = 31
)

var regNames = [32]string{
	"r0", "r1", "r2", "r3", "r4", "r5", "r6", "r7",
	"r8", "r9", "r10", "r11", "r12", "r13", "r14", "r15",
	"r16", "r17", "r18", "r19", "r20", "r21", "r22", "r23",
	"r24", "r25", "cr", "ipc", "ir", "pc", "sp", "sr",
}

var upperNames = [32]string{
	"R0", "R1", "R2", "R3", "R4", "R5", "R6", "R7",
	"R8", "R9", "R10", "R11", "R12", "R13", "R14", "R15",
	"R16", "R17", "R18", "R19", "R20", "R21", "R22", "R23",
	"R24", "R25", "CR", "IPC", "IR", "PC", "SP", "SR",
}

// Lower case register name as used in mnemonics.
func RegName(reg uint8) string {
	return regNames[reg&0x1f]
}

// Upper case register name as used in trace effects.
func RegNameUpper(reg uint8) string {
	return upperNames[reg&0x1f]
}

// Look up register by either form of name.
func RegNumber(name string) (uint8, bool) {
	for i := range regNames {
		if regNames[i] == name || upperNames[i] == name {
			return uint8(i), true
		}
	}
	return 0, false
}

func Opcode(inst uint32) uint8 {
	return uint8(inst >> 26)
}

func FieldZ(inst uint32) uint8 {
	return uint8(inst>>21) & 0x1f
}

func FieldX(inst uint32) uint8 {
	return uint8(inst>>16) & 0x1f
}

func FieldY(inst uint32) uint8 {
	return uint8(inst>>11) & 0x1f
}

// Low five bits, L for the multiply family and W for push/pop.
func FieldL(inst uint32) uint8 {
	return uint8(inst) & 0x1f
}

// Push/pop first register.
func FieldV(inst uint32) uint8 {
	return uint8(inst>>6) & 0x1f
}

// Multiply/shift/divide selector.
func FieldSub(inst uint32) uint8 {
	return uint8(inst>>8) & 0x7
}

func Imm16(inst uint32) int32 {
	return SignExtend(inst&0xffff, 16)
}

func Imm21(inst uint32) uint32 {
	return inst & 0x1fffff
}

func SImm21(inst uint32) int32 {
	return SignExtend(inst&0x1fffff, 21)
}

func Imm26(inst uint32) uint32 {
	return inst & 0x3ffffff
}

func SImm26(inst uint32) int32 {
	return SignExtend(inst&0x3ffffff, 26)
}

// Sign extend the low bits of value.
func SignExtend[T constraints.Unsigned](value T, bits uint) int32 {
	shift := 32 - bits
	return int32(uint32(value)<<shift) >> shift
}

// Register list for push and pop, in encoding order, stopping at first zero.
func StackList(inst uint32) []uint8 {
	fields := [5]uint8{FieldV(inst), FieldL(inst), FieldX(inst), FieldY(inst), FieldZ(inst)}
	list := make([]uint8, 0, len(fields))
	for _, reg := range fields {
		if reg == 0 {
			break
		}
		list = append(list, reg)
	}
	return list
}
