/*
 * POXIM - Load and store instructions.
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

import (
	Dv "github.com/rcornwell/poxim/emu/device"
	op "github.com/rcornwell/poxim/emu/opcodemap"
)

// Access size and address scale for each load/store opcode.
type memAccess struct {
	size  int
	shift uint
	digit int
}

var accessMap = map[uint8]memAccess{
	op.OpL8:  {Dv.SizeByte, 0, 2},
	op.OpL16: {Dv.SizeHalf, 1, 4},
	op.OpL32: {Dv.SizeWord, 2, 8},
	op.OpS8:  {Dv.SizeByte, 0, 2},
	op.OpS16: {Dv.SizeHalf, 1, 4},
	op.OpS32: {Dv.SizeWord, 2, 8},
}

// Compute byte address of operand. l16/s16 index half words,
// l32/s32 index words.
func (cpu *CPU) effectiveAddr(step *stepInfo) (uint32, memAccess) {
	acc := accessMap[step.opcode]
	ea := cpu.Reg(step.x) + uint32(step.imm)
	return ea << acc.shift, acc
}

// l8, l16, l32 z,[x+i]
func (cpu *CPU) opLoad(step *stepInfo) {
	addr, acc := cpu.effectiveAddr(step)
	cpu.SetReg(step.z, cpu.bus.Load(addr, acc.size))
	cpu.trace(step, "%s=MEM[0x%08X]=0x%0*X", op.RegNameUpper(step.z), addr, acc.digit, cpu.Reg(step.z))
}

// s8, s16, s32 [x+i],z
func (cpu *CPU) opStore(step *stepInfo) {
	addr, acc := cpu.effectiveAddr(step)
	value := cpu.Reg(step.z)
	switch acc.size {
	case Dv.SizeByte:
		value &= 0xff
	case Dv.SizeHalf:
		value &= 0xffff
	}
	cpu.bus.Store(addr, acc.size, value)
	cpu.trace(step, "MEM[0x%08X]=%s=0x%0*X", addr, op.RegNameUpper(step.z), acc.digit, value)
}
