/*
 * POXIM - Integer arithmetic and logical instructions.
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
	op "github.com/rcornwell/poxim/emu/opcodemap"
)

const signBit uint32 = 0x80000000

// Set zero and sign from a 32 bit result.
func (cpu *CPU) setZS(result uint32) {
	cpu.setFlag(FlagZN, result == 0)
	cpu.setFlag(FlagSN, (result&signBit) != 0)
}

// Flags for addition of a and b giving sum.
func (cpu *CPU) addFlags(a, b uint32, sum uint64) {
	result := uint32(sum)
	cpu.setZS(result)
	cpu.setFlag(FlagOV, ((a^b)&signBit) == 0 && ((result^a)&signBit) != 0)
	cpu.setFlag(FlagCY, ((sum>>32)&1) != 0)
}

// Flags for subtraction of b from a giving diff.
func (cpu *CPU) subFlags(a, b uint32, diff uint64) {
	result := uint32(diff)
	cpu.setZS(result)
	cpu.setFlag(FlagOV, ((a^b)&signBit) != 0 && ((result^a)&signBit) != 0)
	cpu.setFlag(FlagCY, ((diff>>32)&1) != 0)
}

// Split a 64 bit value.
func split(v uint64) (high, low uint32) {
	return uint32(v >> 32), uint32(v)
}

// Join two registers into 64 bit value.
func (cpu *CPU) pair(high, low uint8) uint64 {
	return (uint64(cpu.Reg(high)) << 32) | uint64(cpu.Reg(low))
}

// mov z,imm21
func (cpu *CPU) opMov(step *stepInfo) {
	cpu.SetReg(step.z, op.Imm21(step.inst))
	cpu.trace(step, "%s=0x%08X", op.RegNameUpper(step.z), cpu.Reg(step.z))
}

// movs z,simm21
func (cpu *CPU) opMovs(step *stepInfo) {
	cpu.SetReg(step.z, uint32(op.SImm21(step.inst)))
	cpu.trace(step, "%s=0x%08X", op.RegNameUpper(step.z), cpu.Reg(step.z))
}

// add z,x,y
func (cpu *CPU) opAdd(step *stepInfo) {
	a := cpu.Reg(step.x)
	b := cpu.Reg(step.y)
	sum := uint64(a) + uint64(b)
	cpu.SetReg(step.z, uint32(sum))
	cpu.addFlags(a, b, sum)
	cpu.traceRRR(step, "+")
}

// sub z,x,y
func (cpu *CPU) opSub(step *stepInfo) {
	a := cpu.Reg(step.x)
	b := cpu.Reg(step.y)
	diff := uint64(a) - uint64(b)
	cpu.SetReg(step.z, uint32(diff))
	cpu.subFlags(a, b, diff)
	cpu.traceRRR(step, "-")
}

// cmp x,y
func (cpu *CPU) opCmp(step *stepInfo) {
	a := cpu.Reg(step.x)
	b := cpu.Reg(step.y)
	cpu.subFlags(a, b, uint64(a)-uint64(b))
	cpu.trace(step, "SR=0x%08X", cpu.regs[SR])
}

// and, or, xor z,x,y
func (cpu *CPU) opLogic(step *stepInfo) {
	a := cpu.Reg(step.x)
	b := cpu.Reg(step.y)
	var result uint32
	var sym string
	switch step.opcode {
	case op.OpAND:
		result = a & b
		sym = "&"
	case op.OpOR:
		result = a | b
		sym = "|"
	default:
		result = a ^ b
		sym = "^"
	}
	cpu.SetReg(step.z, result)
	cpu.setZS(result)
	cpu.traceRRR(step, sym)
}

// not z,x
func (cpu *CPU) opNot(step *stepInfo) {
	result := ^cpu.Reg(step.x)
	cpu.SetReg(step.z, result)
	cpu.setZS(result)
	cpu.trace(step, "%s=~%s=0x%08X,SR=0x%08X", op.RegNameUpper(step.z), op.RegNameUpper(step.x),
		cpu.Reg(step.z), cpu.regs[SR])
}

// Trace for three register forms.
func (cpu *CPU) traceRRR(step *stepInfo, sym string) {
	cpu.trace(step, "%s=%s%s%s=0x%08X,SR=0x%08X", op.RegNameUpper(step.z), op.RegNameUpper(step.x), sym,
		op.RegNameUpper(step.y), cpu.Reg(step.z), cpu.regs[SR])
}

// Multiply, shift and divide family.
func (cpu *CPU) opMulDiv(step *stepInfo) {
	cpu.mulOps[op.FieldSub(step.inst)](step)
}

// mul l,z,x,y
func (cpu *CPU) opMul(step *stepInfo) {
	p := uint64(cpu.Reg(step.x)) * uint64(cpu.Reg(step.y))
	high, low := split(p)
	cpu.SetReg(step.l, high)
	cpu.SetReg(step.z, low)
	cpu.setFlag(FlagZN, p == 0)
	cpu.setFlag(FlagCY, high != 0)
	cpu.traceMul(step)
}

// muls l,z,x,y
func (cpu *CPU) opMuls(step *stepInfo) {
	p := int64(int32(cpu.Reg(step.x))) * int64(int32(cpu.Reg(step.y)))
	high, low := split(uint64(p))
	cpu.SetReg(step.l, high)
	cpu.SetReg(step.z, low)
	cpu.setFlag(FlagZN, p == 0)
	cpu.setFlag(FlagOV, high != 0)
	cpu.traceMul(step)
}

func (cpu *CPU) traceMul(step *stepInfo) {
	cpu.trace(step, "%s:%s=%s*%s=0x%016X,SR=0x%08X", op.RegNameUpper(step.l), op.RegNameUpper(step.z),
		op.RegNameUpper(step.x), op.RegNameUpper(step.y), cpu.pair(step.l, step.z), cpu.regs[SR])
}

// sll, srl, sla, sra z,x,y,l. Shifts z:y by l+1 into z:x.
func (cpu *CPU) opShift(step *stepInfo) {
	v := cpu.pair(step.z, step.y)
	count := uint(step.l) + 1
	sub := op.FieldSub(step.inst)
	sym := "<<"
	switch sub {
	case op.SubSLL, op.SubSLA:
		v <<= count
	case op.SubSRL:
		v >>= count
		sym = ">>"
	case op.SubSRA:
		v = uint64(int64(v) >> count)
		sym = ">>"
	}
	high, low := split(v)
	cpu.SetReg(step.z, high)
	cpu.SetReg(step.x, low)
	cpu.setFlag(FlagZN, v == 0)
	if sub == op.SubSLL || sub == op.SubSRL {
		cpu.setFlag(FlagCY, high != 0)
	} else {
		cpu.setFlag(FlagOV, high != 0)
	}
	cpu.trace(step, "%s:%s=%s:%s%s%d=0x%016X,SR=0x%08X", op.RegNameUpper(step.z), op.RegNameUpper(step.x),
		op.RegNameUpper(step.z), op.RegNameUpper(step.y), sym, count, cpu.pair(step.z, step.x), cpu.regs[SR])
}

// Divide by zero. Returns true if a trap was taken.
func (cpu *CPU) divideByZero() bool {
	cpu.setFlag(FlagZD, true)
	if !cpu.flag(FlagIE) {
		return false
	}
	cpu.trap(0, vecDivZero)
	return true
}

// div, divs l,z,x,y
func (cpu *CPU) opDiv(step *stepInfo) {
	a := cpu.Reg(step.x)
	b := cpu.Reg(step.y)
	trapped := false
	if b == 0 {
		trapped = cpu.divideByZero()
	} else {
		var q, r uint32
		signed := op.FieldSub(step.inst) == op.SubDIVS
		if signed {
			q = uint32(int32(a) / int32(b))
			r = uint32(int32(a) % int32(b))
		} else {
			q = a / b
			r = a % b
		}
		cpu.SetReg(step.l, r)
		cpu.SetReg(step.z, q)
		cpu.setFlag(FlagZN, q == 0)
		cpu.setFlag(FlagZD, false)
		if signed {
			cpu.setFlag(FlagOV, r != 0)
		} else {
			cpu.setFlag(FlagCY, r != 0)
		}
	}
	x := op.RegNameUpper(step.x)
	y := op.RegNameUpper(step.y)
	cpu.trace(step, "%s=%s%%%s=0x%08X,%s=%s/%s=0x%08X,SR=0x%08X", op.RegNameUpper(step.l), x, y, cpu.Reg(step.l),
		op.RegNameUpper(step.z), x, y, cpu.Reg(step.z), cpu.regs[SR])
	if trapped {
		cpu.marker(msgSoftware)
	}
}

// addi z,x,i
func (cpu *CPU) opAddi(step *stepInfo) {
	a := cpu.Reg(step.x)
	b := uint32(step.imm)
	sum := uint64(a) + uint64(b)
	cpu.SetReg(step.z, uint32(sum))
	cpu.addFlags(a, b, sum)
	cpu.traceImm(step, "+")
}

// subi z,x,i
func (cpu *CPU) opSubi(step *stepInfo) {
	a := cpu.Reg(step.x)
	b := uint32(step.imm)
	diff := uint64(a) - uint64(b)
	cpu.SetReg(step.z, uint32(diff))
	cpu.subFlags(a, b, diff)
	cpu.traceImm(step, "-")
}

// muli z,x,i
func (cpu *CPU) opMuli(step *stepInfo) {
	p := int64(int32(cpu.Reg(step.x))) * int64(step.imm)
	high, low := split(uint64(p))
	cpu.SetReg(step.z, low)
	cpu.setFlag(FlagZN, low == 0)
	cpu.setFlag(FlagOV, high != 0)
	cpu.traceImm(step, "*")
}

// divi, modi z,x,i
func (cpu *CPU) opDivi(step *stepInfo) {
	sym := "/"
	if step.opcode == op.OpMODI {
		sym = "%"
	}
	trapped := false
	if step.imm == 0 {
		trapped = cpu.divideByZero()
	} else {
		a := int32(cpu.Reg(step.x))
		var result uint32
		if step.opcode == op.OpMODI {
			result = uint32(a % step.imm)
		} else {
			result = uint32(a / step.imm)
		}
		cpu.SetReg(step.z, result)
		cpu.setFlag(FlagZN, result == 0)
		cpu.setFlag(FlagZD, false)
		cpu.setFlag(FlagOV, false)
	}
	cpu.traceImm(step, sym)
	if trapped {
		cpu.marker(msgSoftware)
	}
}

// cmpi x,i
func (cpu *CPU) opCmpi(step *stepInfo) {
	a := cpu.Reg(step.x)
	b := uint32(step.imm)
	cpu.subFlags(a, b, uint64(a)-uint64(b))
	cpu.trace(step, "SR=0x%08X", cpu.regs[SR])
}

// Trace for immediate forms.
func (cpu *CPU) traceImm(step *stepInfo, sym string) {
	cpu.trace(step, "%s=%s%s0x%08X=0x%08X,SR=0x%08X", op.RegNameUpper(step.z), op.RegNameUpper(step.x), sym,
		uint32(step.imm), cpu.Reg(step.z), cpu.regs[SR])
}

// cbr, sbr z[x]
func (cpu *CPU) opBit(step *stepInfo) {
	bit := uint32(1) << step.x
	if (step.inst & 1) == op.SubSBR {
		cpu.SetReg(step.z, cpu.Reg(step.z)|bit)
	} else {
		cpu.SetReg(step.z, cpu.Reg(step.z)&^bit)
	}
	cpu.trace(step, "%s=0x%08X", op.RegNameUpper(step.z), cpu.Reg(step.z))
}
