/*
 * POXIM - CPU fetch, decode and interrupt entry.
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
	"errors"
	"fmt"
	"io"

	Dv "github.com/rcornwell/poxim/emu/device"
	disassembler "github.com/rcornwell/poxim/emu/disassemble"
	"github.com/rcornwell/poxim/emu/interrupt"
	op "github.com/rcornwell/poxim/emu/opcodemap"
	"github.com/rcornwell/poxim/util/debug"
)

// Memory and device access used by the CPU.
type Bus interface {
	Load(addr uint32, size int) uint32
	Store(addr uint32, size int, value uint32)
}

// CPU holds the register file and executes instructions against a bus.
type CPU struct {
	regs   [32]uint32
	bus    Bus
	out    io.Writer
	halted bool
	table  [64]func(*stepInfo)
	mulOps [8]func(*stepInfo)
}

// Create a CPU attached to bus, writing trace to out.
func New(bus Bus, out io.Writer) *CPU {
	cpu := &CPU{bus: bus, out: out}
	cpu.createTable()
	return cpu
}

// Clear registers and halt flag.
func (cpu *CPU) Reset() {
	cpu.regs = [32]uint32{}
	cpu.halted = false
}

// Change trace output.
func (cpu *CPU) SetOutput(out io.Writer) {
	cpu.out = out
}

// Return value of register.
func (cpu *CPU) Reg(r uint8) uint32 {
	return cpu.regs[r&0x1f]
}

// Set register, register 0 stays zero.
func (cpu *CPU) SetReg(r uint8, value uint32) {
	r &= 0x1f
	if r != 0 {
		cpu.regs[r] = value
	}
}

// Return copy of all registers.
func (cpu *CPU) Registers() [32]uint32 {
	return cpu.regs
}

// Has an int 0 been executed.
func (cpu *CPU) Halted() bool {
	return cpu.halted
}

// Current program counter.
func (cpu *CPU) PC() uint32 {
	return cpu.regs[PC]
}

// Move to next instruction.
func (cpu *CPU) AdvancePC() {
	cpu.regs[PC] += 4
}

// Fetch, decode and execute one instruction.
func (cpu *CPU) Execute() {
	step := stepInfo{pc: cpu.regs[PC]}
	step.inst = cpu.bus.Load(step.pc, Dv.SizeWord)
	cpu.regs[IR] = step.inst
	step.opcode = op.Opcode(step.inst)
	step.z = op.FieldZ(step.inst)
	step.x = op.FieldX(step.inst)
	step.y = op.FieldY(step.inst)
	step.l = op.FieldL(step.inst)
	step.imm = op.Imm16(step.inst)

	if (debugMsk & debugInst) != 0 {
		debug.Debugf("CPU", debugMsk, debugInst, "%08x %08x %s", step.pc, step.inst, disassembler.Disassemble(step.inst))
	}

	fn := cpu.table[step.opcode]
	if fn == nil {
		cpu.opInvalid(&step)
		return
	}
	fn(&step)
}

// Create function table.
func (cpu *CPU) createTable() {
	cpu.table = [64]func(*stepInfo){
		op.OpMOV:   cpu.opMov,
		op.OpMOVS:  cpu.opMovs,
		op.OpADD:   cpu.opAdd,
		op.OpSUB:   cpu.opSub,
		op.OpMULDV: cpu.opMulDiv,
		op.OpCMP:   cpu.opCmp,
		op.OpAND:   cpu.opLogic,
		op.OpOR:    cpu.opLogic,
		op.OpNOT:   cpu.opNot,
		op.OpXOR:   cpu.opLogic,
		op.OpPUSH:  cpu.opPush,
		op.OpPOP:   cpu.opPop,
		op.OpADDI:  cpu.opAddi,
		op.OpSUBI:  cpu.opSubi,
		op.OpMULI:  cpu.opMuli,
		op.OpDIVI:  cpu.opDivi,
		op.OpMODI:  cpu.opDivi,
		op.OpCMPI:  cpu.opCmpi,
		op.OpL8:    cpu.opLoad,
		op.OpL16:   cpu.opLoad,
		op.OpL32:   cpu.opLoad,
		op.OpS8:    cpu.opStore,
		op.OpS16:   cpu.opStore,
		op.OpS32:   cpu.opStore,
		op.OpCALLF: cpu.opCallf,
		op.OpRET:   cpu.opRet,
		op.OpRETI:  cpu.opReti,
		op.OpBIT:   cpu.opBit,
		op.OpBAE:   cpu.opBranch,
		op.OpBAT:   cpu.opBranch,
		op.OpBBE:   cpu.opBranch,
		op.OpBBT:   cpu.opBranch,
		op.OpBEQ:   cpu.opBranch,
		op.OpBGE:   cpu.opBranch,
		op.OpBGT:   cpu.opBranch,
		op.OpBIV:   cpu.opBranch,
		op.OpBLE:   cpu.opBranch,
		op.OpBLT:   cpu.opBranch,
		op.OpBNE:   cpu.opBranch,
		op.OpBNI:   cpu.opBranch,
		op.OpBNZ:   cpu.opBranch,
		op.OpBUN:   cpu.opBranch,
		op.OpBZD:   cpu.opBranch,
		op.OpCALLS: cpu.opCalls,
		op.OpINT:   cpu.opInt,
	}
	cpu.mulOps = [8]func(*stepInfo){
		op.SubMUL:  cpu.opMul,
		op.SubSLL:  cpu.opShift,
		op.SubMULS: cpu.opMuls,
		op.SubSLA:  cpu.opShift,
		op.SubDIV:  cpu.opDiv,
		op.SubSRL:  cpu.opShift,
		op.SubDIVS: cpu.opDiv,
		op.SubSRA:  cpu.opShift,
	}
}

// Write one trace line for the instruction.
func (cpu *CPU) trace(step *stepInfo, format string, a ...interface{}) {
	fmt.Fprintf(cpu.out, "0x%08X:\t%-25s\t", step.pc, disassembler.Disassemble(step.inst))
	fmt.Fprintf(cpu.out, format+"\n", a...)
}

// Write a marker line.
func (cpu *CPU) marker(format string, a ...interface{}) {
	fmt.Fprintf(cpu.out, format+"\n", a...)
}

// Test status flag.
func (cpu *CPU) flag(f uint32) bool {
	return (cpu.regs[SR] & f) != 0
}

// Set or clear status flag.
func (cpu *CPU) setFlag(f uint32, set bool) {
	if set {
		cpu.regs[SR] |= f
	} else {
		cpu.regs[SR] &^= f
	}
}

// Push word on stack.
func (cpu *CPU) push(value uint32) {
	cpu.bus.Store(cpu.regs[SP], Dv.SizeWord, value)
	cpu.regs[SP] -= 4
}

// Pop word from stack.
func (cpu *CPU) pop() uint32 {
	cpu.regs[SP] += 4
	return cpu.bus.Load(cpu.regs[SP], Dv.SizeWord)
}

// Enter interrupt routine. Saves return address, CR and IPC on stack.
func (cpu *CPU) enter(cause uint32, vector uint32, ipc uint32) {
	cpu.push(cpu.regs[PC] + 4)
	cpu.push(cpu.regs[CR])
	cpu.push(cpu.regs[IPC])
	cpu.regs[CR] = cause
	cpu.regs[IPC] = ipc
	cpu.regs[PC] = vector - 4
	debug.Debugf("CPU", debugMsk, debugTrap, "enter cause=%08x vector=%08x ipc=%08x sp=%08x",
		cause, vector, ipc, cpu.regs[SP])
}

// Software trap taken by the instruction itself.
func (cpu *CPU) trap(cause uint32, vector uint32) {
	cpu.enter(cause, vector, cpu.regs[PC])
}

// Check if interrupts enabled.
func (cpu *CPU) InterruptsEnabled() bool {
	return cpu.flag(FlagIE)
}

// Take a hardware interrupt.
func (cpu *CPU) HardwareInterrupt(entry interrupt.Entry) {
	cpu.marker(msgHardware, entry.Priority)
	cpu.enter(entry.Cause, interrupt.Vector(entry.Priority), entry.SavedPC)
}

// Unknown opcode.
func (cpu *CPU) opInvalid(step *stepInfo) {
	cpu.marker(msgInvalid, step.pc)
	cpu.marker(msgSoftware)
	cpu.setFlag(FlagIV, true)
	cpu.trap(uint32(step.opcode), vecInvalid)
}

// Write register and memory contents to debug file.
func (cpu *CPU) Dump(mem []uint32) {
	debug.DumpWords("CPU", debugMsk, debugDump, 0, cpu.regs[:])
	debug.DumpWords("MEM", debugMsk, debugDump, 0, mem)
}

// Enable debug options.
func Debug(opt string) error {
	flag, ok := debugOption[opt]
	if !ok {
		return errors.New("CPU debug option invalid: " + opt)
	}
	debugMsk |= flag
	return nil
}
