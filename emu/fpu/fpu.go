/*
 * POXIM - Floating point coprocessor.
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

package fpu

import (
	"errors"
	"math"

	"github.com/rcornwell/poxim/emu/interrupt"
	"github.com/rcornwell/poxim/util/debug"
)

// Operation codes in the control register.
const (
	OpNone = iota
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMoveX // X = Z
	OpMoveY // Y = Z
	OpCeil
	OpFloor
	OpRound
)

const (
	opMask    uint32 = 0x1f
	statusBit uint32 = 0x20
)

// Raise interrupts.
type Scheduler interface {
	Schedule(priority int, cause uint32, savedPC uint32)
}

// Operand register. Raw values were stored by the CPU or a conversion
// and hold an integer, the others hold float32 bits.
type register struct {
	bits  uint32
	float bool
}

// Value of register as a float.
func (r register) value() float32 {
	if r.float {
		return math.Float32frombits(r.bits)
	}
	return float32(int32(r.bits))
}

// FPU runs one operation at a time, completing after a latency.
type FPU struct {
	irq       Scheduler
	x, y, z   register
	op        uint32 // Last operation written.
	status    bool   // Error status.
	request   bool   // Operation waiting to start.
	busy      bool   // Operation in flight.
	countdown uint32 // Cycles left for operation in flight.
	class     int    // Interrupt priority of operation in flight.
	dest      *register
	result    register
}

var debugMsk int

var debugOption = map[string]int{
	"CMD":  debugCmd,
	"DONE": debugDone,
}

const (
	debugCmd = 1 << iota
	debugDone
)

func New(irq Scheduler) *FPU {
	return &FPU{irq: irq}
}

// Read X, Y, Z or control.
func (f *FPU) ReadReg(addr uint32) uint32 {
	switch addr & 0xf {
	case 0x0:
		return f.x.bits
	case 0x4:
		return f.y.bits
	case 0x8:
		return f.z.bits
	}
	value := f.op
	if f.status {
		value |= statusBit
	}
	return value
}

// Write X, Y, Z or control. Writing a nonzero operation requests it.
func (f *FPU) WriteReg(addr uint32, value uint32) {
	switch addr & 0xf {
	case 0x0:
		f.x = register{bits: value}
	case 0x4:
		f.y = register{bits: value}
	case 0x8:
		f.z = register{bits: value}
	default:
		f.op = value & opMask
		f.status = false
		f.request = f.op != OpNone
		debug.Debugf("FPU", debugMsk, debugCmd, "control op=%d busy=%t", f.op, f.busy)
	}
}

// Advance one cycle. pc is the address of the instruction just run.
func (f *FPU) Tick(pc uint32) {
	if f.busy {
		f.countdown--
		if f.countdown == 0 {
			f.complete(pc)
		}
		return
	}
	if f.request {
		f.request = false
		f.start()
	}
}

// Is an operation in flight.
func (f *FPU) Busy() bool {
	return f.busy
}

// Cycles remaining for operation in flight.
func (f *FPU) Countdown() uint32 {
	return f.countdown
}

// Idle and clear all registers.
func (f *FPU) Reset() {
	irq := f.irq
	*f = FPU{irq: irq}
}

// Biased exponent of value.
func exponent(v float32) int {
	return int((math.Float32bits(v) >> 23) & 0xff)
}

// Latency of arithmetic is the exponent distance plus one.
func arithLatency(x, y float32) uint32 {
	diff := exponent(x) - exponent(y)
	if diff < 0 {
		diff = -diff
	}
	return uint32(diff) + 1
}

// Convert to integer register, saturating.
func toInteger(v float64) register {
	switch {
	case math.IsNaN(v):
		return register{bits: 0}
	case v >= math.MaxInt32:
		return register{bits: uint32(math.MaxInt32)}
	case v <= math.MinInt32:
		v = math.MinInt32
	}
	return register{bits: uint32(int32(v))}
}

// Latch operands, compute result and start counting.
func (f *FPU) start() {
	x := f.x.value()
	y := f.y.value()
	z := f.z.value()
	f.busy = true
	f.dest = nil
	f.countdown = 1
	f.class = interrupt.PrioFPUConv

	switch f.op {
	case OpAdd, OpSub, OpMul, OpDiv:
		f.countdown = arithLatency(x, y)
		f.class = interrupt.PrioFPUArith
		var r float32
		switch f.op {
		case OpAdd:
			r = x + y
		case OpSub:
			r = x - y
		case OpMul:
			r = x * y
		case OpDiv:
			if y == 0 {
				f.class = interrupt.PrioFPUError
				break
			}
			r = x / y
		}
		if f.class == interrupt.PrioFPUArith {
			f.dest = &f.z
			f.result = register{bits: math.Float32bits(r), float: true}
		}
	case OpMoveX:
		f.dest = &f.x
		f.result = f.z
	case OpMoveY:
		f.dest = &f.y
		f.result = f.z
	case OpCeil:
		f.dest = &f.z
		f.result = toInteger(math.Ceil(float64(z)))
	case OpFloor:
		f.dest = &f.z
		f.result = toInteger(math.Floor(float64(z)))
	case OpRound:
		f.dest = &f.z
		f.result = toInteger(math.RoundToEven(float64(z)))
	default:
		f.class = interrupt.PrioFPUError
	}
	debug.Debugf("FPU", debugMsk, debugCmd, "start op=%d x=%g y=%g z=%g latency=%d", f.op, x, y, z, f.countdown)
}

// Commit result and raise completion interrupt.
func (f *FPU) complete(pc uint32) {
	f.busy = false
	if f.dest != nil {
		*f.dest = f.result
		f.dest = nil
	}
	if f.class == interrupt.PrioFPUError {
		f.status = true
	}
	debug.Debugf("FPU", debugMsk, debugDone, "done op=%d class=%d z=%08x", f.op, f.class, f.z.bits)
	f.irq.Schedule(f.class, interrupt.CauseFPU, pc)
}

// Enable debug options.
func Debug(opt string) error {
	flag, ok := debugOption[opt]
	if !ok {
		return errors.New("FPU debug option invalid: " + opt)
	}
	debugMsk |= flag
	return nil
}
