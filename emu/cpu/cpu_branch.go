/*
 * POXIM - Branch, call, stack and trap instructions.
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
	"fmt"
	"strings"

	op "github.com/rcornwell/poxim/emu/opcodemap"
)

// Check branch condition.
func (cpu *CPU) condition(opcode uint8) bool {
	zn := cpu.flag(FlagZN)
	cy := cpu.flag(FlagCY)
	sn := cpu.flag(FlagSN)
	ov := cpu.flag(FlagOV)
	switch opcode {
	case op.OpBAE:
		return !cy
	case op.OpBAT:
		return !zn && !cy
	case op.OpBBE:
		return zn || cy
	case op.OpBBT:
		return cy
	case op.OpBEQ:
		return zn
	case op.OpBGE:
		return sn == ov
	case op.OpBGT:
		return !zn && sn == ov
	case op.OpBIV:
		return cpu.flag(FlagIV)
	case op.OpBLE:
		return zn || sn != ov
	case op.OpBLT:
		return sn != ov
	case op.OpBNE:
		return !zn
	case op.OpBNI:
		return !cpu.flag(FlagIV)
	case op.OpBNZ:
		return !cpu.flag(FlagZD)
	case op.OpBUN:
		return true
	case op.OpBZD:
		return cpu.flag(FlagZD)
	}
	return false
}

// Conditional branches.
func (cpu *CPU) opBranch(step *stepInfo) {
	if cpu.condition(step.opcode) {
		cpu.regs[PC] += uint32(op.SImm26(step.inst) << 2)
	}
	cpu.trace(step, "PC=0x%08X", cpu.regs[PC]+4)
}

// call simm26
func (cpu *CPU) opCalls(step *stepInfo) {
	sp := cpu.regs[SP]
	cpu.push(step.pc + 4)
	cpu.regs[PC] += uint32(op.SImm26(step.inst) << 2)
	cpu.trace(step, "PC=0x%08X,MEM[0x%08X]=0x%08X", cpu.regs[PC]+4, sp, step.pc+4)
}

// call [x+i]
func (cpu *CPU) opCallf(step *stepInfo) {
	sp := cpu.regs[SP]
	cpu.push(step.pc + 4)
	cpu.regs[PC] = ((cpu.Reg(step.x) + uint32(step.imm)) << 2) - 4
	cpu.trace(step, "PC=0x%08X,MEM[0x%08X]=0x%08X", cpu.regs[PC]+4, sp, step.pc+4)
}

// ret
func (cpu *CPU) opRet(step *stepInfo) {
	target := cpu.pop()
	cpu.regs[PC] = target - 4
	cpu.trace(step, "PC=MEM[0x%08X]=0x%08X", cpu.regs[SP], target)
}

// reti, reverse of interrupt entry.
func (cpu *CPU) opReti(step *stepInfo) {
	cpu.regs[IPC] = cpu.pop()
	spIPC := cpu.regs[SP]
	cpu.regs[CR] = cpu.pop()
	spCR := cpu.regs[SP]
	target := cpu.pop()
	cpu.regs[PC] = target - 4
	cpu.trace(step, "IPC=MEM[0x%08X]=0x%08X,CR=MEM[0x%08X]=0x%08X,PC=MEM[0x%08X]=0x%08X",
		spIPC, cpu.regs[IPC], spCR, cpu.regs[CR], cpu.regs[SP], target)
}

// push v,w,x,y,z
func (cpu *CPU) opPush(step *stepInfo) {
	sp := cpu.regs[SP]
	list := op.StackList(step.inst)
	values := make([]string, len(list))
	names := make([]string, len(list))
	for i, r := range list {
		values[i] = fmt.Sprintf("0x%08X", cpu.Reg(r))
		names[i] = op.RegNameUpper(r)
		cpu.push(cpu.Reg(r))
	}
	cpu.trace(step, "MEM[0x%08X]{%s}={%s}", sp, strings.Join(values, ","), strings.Join(names, ","))
}

// pop v,w,x,y,z
func (cpu *CPU) opPop(step *stepInfo) {
	sp := cpu.regs[SP]
	list := op.StackList(step.inst)
	values := make([]string, len(list))
	names := make([]string, len(list))
	for i, r := range list {
		cpu.SetReg(r, cpu.pop())
		values[i] = fmt.Sprintf("0x%08X", cpu.Reg(r))
		names[i] = op.RegNameUpper(r)
	}
	cpu.trace(step, "{%s}=MEM[0x%08X]{%s}", strings.Join(names, ","), sp, strings.Join(values, ","))
}

// int n. Zero halts.
func (cpu *CPU) opInt(step *stepInfo) {
	n := op.Imm26(step.inst)
	if n == 0 {
		cpu.halted = true
		cpu.trace(step, "CR=0x%08X,PC=0x%08X", 0, 0)
		return
	}
	cpu.trap(n, vecSoftware)
	cpu.trace(step, "CR=0x%08X,PC=0x%08X", cpu.regs[CR], cpu.regs[PC]+4)
	cpu.marker(msgSoftware)
}
