/*
 * POXIM - Disassembler test routines.
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

package disassembler

import (
	"testing"

	op "github.com/rcornwell/poxim/emu/opcodemap"
)

func enc(opcode uint8, z, x, y uint32) uint32 {
	return uint32(opcode)<<26 | z<<21 | x<<16 | y<<11
}

func TestDisassemble(t *testing.T) {
	tests := []struct {
		inst uint32
		want string
	}{
		{0x00200005, "mov r1,5"},
		{enc(op.OpMOVS, 26, 0, 0) | 0x100000, "movs cr,-1048576"},
		{enc(op.OpADD, 3, 1, 2), "add r3,r1,r2"},
		{enc(op.OpSUB, 31, 30, 29), "sub sr,sp,pc"},
		{enc(op.OpMULDV, 3, 1, 2) | 4, "mul r4,r3,r1,r2"},
		{enc(op.OpMULDV, 3, 1, 2) | 1<<8 | 4, "sll r3,r1,r2,4"},
		{enc(op.OpMULDV, 3, 1, 2) | 2<<8 | 4, "muls r4,r3,r1,r2"},
		{enc(op.OpMULDV, 3, 1, 2) | 3<<8, "sla r3,r1,r2,0"},
		{enc(op.OpMULDV, 3, 1, 2) | 4<<8 | 5, "div r5,r3,r1,r2"},
		{enc(op.OpMULDV, 3, 1, 2) | 5<<8 | 31, "srl r3,r1,r2,31"},
		{enc(op.OpMULDV, 3, 1, 2) | 6<<8 | 5, "divs r5,r3,r1,r2"},
		{enc(op.OpMULDV, 3, 1, 2) | 7<<8 | 1, "sra r3,r1,r2,1"},
		{enc(op.OpCMP, 0, 1, 2), "cmp r1,r2"},
		{enc(op.OpAND, 1, 2, 3), "and r1,r2,r3"},
		{enc(op.OpOR, 1, 2, 3), "or r1,r2,r3"},
		{enc(op.OpNOT, 1, 2, 0), "not r1,r2"},
		{enc(op.OpXOR, 1, 2, 3), "xor r1,r2,r3"},
		{enc(op.OpPUSH, 5, 3, 4) | 1<<6 | 2, "push r1,r2,r3,r4,r5"},
		{enc(op.OpPUSH, 0, 0, 0), "push -"},
		{enc(op.OpPOP, 0, 0, 0) | 27<<6, "pop ipc"},
		{enc(op.OpADDI, 2, 1, 0) | 0xffff, "addi r2,r1,-1"},
		{enc(op.OpSUBI, 2, 1, 0) | 10, "subi r2,r1,10"},
		{enc(op.OpMULI, 2, 1, 0) | 3, "muli r2,r1,3"},
		{enc(op.OpDIVI, 2, 1, 0) | 3, "divi r2,r1,3"},
		{enc(op.OpMODI, 2, 1, 0) | 3, "modi r2,r1,3"},
		{enc(op.OpCMPI, 0, 1, 0) | 0x8000, "cmpi r1,-32768"},
		{enc(op.OpL8, 2, 1, 0) | 3, "l8 r2,[r1+3]"},
		{enc(op.OpL16, 2, 1, 0), "l16 r2,[r1+0]"},
		{enc(op.OpL32, 2, 1, 0) | 0xfffc, "l32 r2,[r1-4]"},
		{enc(op.OpS8, 2, 1, 0) | 1, "s8 [r1+1],r2"},
		{enc(op.OpS16, 2, 1, 0) | 0xffff, "s16 [r1-1],r2"},
		{enc(op.OpS32, 2, 1, 0), "s32 [r1+0],r2"},
		{enc(op.OpCALLF, 0, 1, 0) | 2, "call [r1+2]"},
		{enc(op.OpRET, 0, 0, 0), "ret"},
		{enc(op.OpRETI, 0, 0, 0), "reti"},
		{enc(op.OpBIT, 1, 4, 0), "cbr r1[4]"},
		{enc(op.OpBIT, 1, 31, 0) | 1, "sbr r1[31]"},
		{enc(op.OpBEQ, 0, 0, 0) | 3, "beq 3"},
		{enc(op.OpBUN, 0, 0, 0) | 0x3ffffff, "bun -1"},
		{enc(op.OpBZD, 0, 0, 0) | 0x2000000, "bzd -33554432"},
		{enc(op.OpCALLS, 0, 0, 0) | 4, "call 4"},
		{enc(op.OpINT, 0, 0, 0), "int 0"},
		{enc(op.OpINT, 0, 0, 0) | 0x3ffffff, "int 67108863"},
		{0x3e << 26, ".word 0xf8000000"},
	}
	for _, test := range tests {
		got := Disassemble(test.inst)
		if got != test.want {
			t.Errorf("Disassemble %08x was incorrect got: '%s' wanted: '%s'", test.inst, got, test.want)
		}
	}
}

func TestValid(t *testing.T) {
	valid := 0
	for opc := range 64 {
		if Valid(uint32(opc) << 26) {
			valid++
		}
	}
	if valid != len(opMap) {
		t.Errorf("Valid count was incorrect got: %d wanted: %d", valid, len(opMap))
	}
	if Valid(0x0c << 26) {
		t.Error("Opcode 0c reported valid")
	}
}
