/*
 * POXIM - FPU test routines.
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
	"math"
	"testing"

	"github.com/rcornwell/poxim/emu/interrupt"
)

const (
	regX    = 0x80808880
	regY    = 0x80808884
	regZ    = 0x80808888
	regCtrl = 0x8080888c
)

type request struct {
	priority int
	cause    uint32
	pc       uint32
}

type testScheduler struct {
	requests []request
}

func (ts *testScheduler) Schedule(priority int, cause uint32, savedPC uint32) {
	ts.requests = append(ts.requests, request{priority, cause, savedPC})
}

func setup() (*FPU, *testScheduler) {
	irq := &testScheduler{}
	return New(irq), irq
}

// Tick until the operation finishes, return number of ticks.
func (f *FPU) run(limit int) int {
	for i := 1; i <= limit; i++ {
		f.Tick(uint32(i * 4))
		if !f.busy && !f.request {
			return i
		}
	}
	return -1
}

func TestControlReadback(t *testing.T) {
	f, _ := setup()
	for op := uint32(0); op < 32; op++ {
		f.WriteReg(regCtrl, op)
		if r := f.ReadReg(regCtrl); r != op {
			t.Errorf("Control readback was incorrect got: %08x wanted: %08x", r, op)
		}
		f.Reset()
	}
}

func TestAdd(t *testing.T) {
	f, irq := setup()
	f.WriteReg(regX, 3)
	f.WriteReg(regY, 4)
	f.WriteReg(regCtrl, OpAdd)
	// exp(3.0) = 128, exp(4.0) = 129, start plus two cycles.
	if n := f.run(100); n != 3 {
		t.Errorf("Add cycles incorrect got: %d wanted: %d", n, 3)
	}
	if r := f.ReadReg(regZ); r != math.Float32bits(7) {
		t.Errorf("Add result was incorrect got: %08x wanted: %08x", r, math.Float32bits(7))
	}
	if len(irq.requests) != 1 || irq.requests[0].priority != interrupt.PrioFPUArith ||
		irq.requests[0].cause != interrupt.CauseFPU {
		t.Errorf("Add request incorrect got: %+v", irq.requests)
	}
	if f.ReadReg(regCtrl) != OpAdd {
		t.Errorf("Control after add was incorrect got: %08x wanted: %08x", f.ReadReg(regCtrl), OpAdd)
	}
}

func TestArithmetic(t *testing.T) {
	tests := []struct {
		op   uint32
		x, y int32
		want float32
	}{
		{OpAdd, -3, 10, 7},
		{OpSub, 3, 10, -7},
		{OpMul, 6, -7, -42},
		{OpDiv, 5, 2, 2.5},
	}
	for _, test := range tests {
		f, irq := setup()
		f.WriteReg(regX, uint32(test.x))
		f.WriteReg(regY, uint32(test.y))
		f.WriteReg(regCtrl, test.op)
		f.run(300)
		if r := math.Float32frombits(f.ReadReg(regZ)); r != test.want {
			t.Errorf("Op %d result was incorrect got: %g wanted: %g", test.op, r, test.want)
		}
		if len(irq.requests) != 1 || irq.requests[0].priority != interrupt.PrioFPUArith {
			t.Errorf("Op %d request incorrect got: %+v", test.op, irq.requests)
		}
	}
}

func TestDivideByZero(t *testing.T) {
	f, irq := setup()
	f.WriteReg(regX, 1)
	f.WriteReg(regY, 0)
	f.WriteReg(regZ, 0x55)
	f.WriteReg(regCtrl, OpDiv)
	// exp(1.0) = 127, exp(0.0) = 0.
	if n := f.run(300); n != 129 {
		t.Errorf("Divide cycles incorrect got: %d wanted: %d", n, 129)
	}
	if f.ReadReg(regZ) != 0x55 {
		t.Errorf("Divide by zero changed Z got: %08x", f.ReadReg(regZ))
	}
	if f.ReadReg(regCtrl) != OpDiv|statusBit {
		t.Errorf("Status was incorrect got: %08x wanted: %08x", f.ReadReg(regCtrl), OpDiv|statusBit)
	}
	if len(irq.requests) != 1 || irq.requests[0].priority != interrupt.PrioFPUError {
		t.Errorf("Divide request incorrect got: %+v", irq.requests)
	}
	// Writing control clears status.
	f.WriteReg(regCtrl, OpNone)
	if f.ReadReg(regCtrl) != 0 {
		t.Errorf("Status not cleared got: %08x", f.ReadReg(regCtrl))
	}
}

func TestInvalidOp(t *testing.T) {
	f, irq := setup()
	f.WriteReg(regCtrl, 0x1f)
	if n := f.run(10); n != 2 {
		t.Errorf("Invalid cycles incorrect got: %d wanted: %d", n, 2)
	}
	if len(irq.requests) != 1 || irq.requests[0].priority != interrupt.PrioFPUError {
		t.Errorf("Invalid request incorrect got: %+v", irq.requests)
	}
	if (f.ReadReg(regCtrl) & statusBit) == 0 {
		t.Error("Invalid did not set status")
	}
}

// Divide into Z then convert.
func convert(x, y int32, op uint32) (uint32, []request) {
	f, irq := setup()
	f.WriteReg(regX, uint32(x))
	f.WriteReg(regY, uint32(y))
	f.WriteReg(regCtrl, OpDiv)
	f.run(300)
	irq.requests = nil
	f.WriteReg(regCtrl, op)
	f.run(10)
	return f.ReadReg(regZ), irq.requests
}

func TestConvert(t *testing.T) {
	tests := []struct {
		x, y int32
		op   uint32
		want int32
	}{
		{5, 2, OpCeil, 3},
		{5, 2, OpFloor, 2},
		{5, 2, OpRound, 2},
		{7, 2, OpRound, 4},
		{-5, 2, OpRound, -2},
		{-5, 2, OpFloor, -3},
		{-5, 2, OpCeil, -2},
		{11, 4, OpRound, 3},
	}
	for _, test := range tests {
		r, req := convert(test.x, test.y, test.op)
		if int32(r) != test.want {
			t.Errorf("Convert %d/%d op %d was incorrect got: %d wanted: %d", test.x, test.y, test.op, int32(r), test.want)
		}
		if len(req) != 1 || req[0].priority != interrupt.PrioFPUConv {
			t.Errorf("Convert request incorrect got: %+v", req)
		}
	}
}

func TestMove(t *testing.T) {
	f, _ := setup()
	f.WriteReg(regZ, 0x12345678)
	f.WriteReg(regCtrl, OpMoveX)
	f.run(10)
	f.WriteReg(regCtrl, OpMoveY)
	f.run(10)
	if f.ReadReg(regX) != 0x12345678 || f.ReadReg(regY) != 0x12345678 {
		t.Errorf("Move was incorrect got: %08x %08x", f.ReadReg(regX), f.ReadReg(regY))
	}
}

// A request made while busy starts after the first completes.
func TestBusyRequest(t *testing.T) {
	f, irq := setup()
	f.WriteReg(regX, 1)
	f.WriteReg(regY, 1)
	f.WriteReg(regCtrl, OpAdd)
	f.Tick(0)
	if !f.Busy() {
		t.Fatal("FPU not busy after start")
	}
	f.WriteReg(regCtrl, OpMoveX)
	f.Tick(4)
	if len(irq.requests) != 1 {
		t.Fatalf("First operation not complete got: %d", len(irq.requests))
	}
	f.Tick(8)
	f.Tick(12)
	if len(irq.requests) != 2 || irq.requests[1].priority != interrupt.PrioFPUConv {
		t.Errorf("Second operation incorrect got: %+v", irq.requests)
	}
	if f.ReadReg(regX) != math.Float32bits(2) {
		t.Errorf("X was incorrect got: %08x wanted: %08x", f.ReadReg(regX), math.Float32bits(2))
	}
}

func TestDebug(t *testing.T) {
	if err := Debug("CMD"); err != nil {
		t.Errorf("Debug CMD returned error: %v", err)
	}
	if err := Debug("XYZ"); err == nil {
		t.Error("Debug XYZ did not return error")
	}
	debugMsk = 0
}
