/*
 * POXIM - Disassembler.
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
	"fmt"
	"strings"

	op "github.com/rcornwell/poxim/emu/opcodemap"
)

const (
	tyImm21  = 1 + iota // z,imm21
	tySImm21            // z,simm21
	tyRRR               // z,x,y
	tyZX                // z,x
	tyXY                // x,y
	tyMulDiv            // l,z,x,y or z,x,y,l
	tyStack             // register list
	tyImm16             // z,x,simm16
	tyXImm16            // x,simm16
	tyLoad              // z,[x+i]
	tyStore             // [x+i],z
	tyCallf             // [x+i]
	tyNone
	tyBit    // z[x]
	tyBranch // simm26
	tyInt    // imm26
)

type opcode struct {
	opName string // Opcode string.
	opType int    // Opcode type.
}

var opMap = map[uint8]opcode{
	op.OpMOV:   {"mov", tyImm21},
	op.OpMOVS:  {"movs", tySImm21},
	op.OpADD:   {"add", tyRRR},
	op.OpSUB:   {"sub", tyRRR},
	op.OpMULDV: {"", tyMulDiv},
	op.OpCMP:   {"cmp", tyXY},
	op.OpAND:   {"and", tyRRR},
	op.OpOR:    {"or", tyRRR},
	op.OpNOT:   {"not", tyZX},
	op.OpXOR:   {"xor", tyRRR},
	op.OpPUSH:  {"push", tyStack},
	op.OpPOP:   {"pop", tyStack},
	op.OpADDI:  {"addi", tyImm16},
	op.OpSUBI:  {"subi", tyImm16},
	op.OpMULI:  {"muli", tyImm16},
	op.OpDIVI:  {"divi", tyImm16},
	op.OpMODI:  {"modi", tyImm16},
	op.OpCMPI:  {"cmpi", tyXImm16},
	op.OpL8:    {"l8", tyLoad},
	op.OpL16:   {"l16", tyLoad},
	op.OpL32:   {"l32", tyLoad},
	op.OpS8:    {"s8", tyStore},
	op.OpS16:   {"s16", tyStore},
	op.OpS32:   {"s32", tyStore},
	op.OpCALLF: {"call", tyCallf},
	op.OpRET:   {"ret", tyNone},
	op.OpRETI:  {"reti", tyNone},
	op.OpBIT:   {"", tyBit},
	op.OpBAE:   {"bae", tyBranch},
	op.OpBAT:   {"bat", tyBranch},
	op.OpBBE:   {"bbe", tyBranch},
	op.OpBBT:   {"bbt", tyBranch},
	op.OpBEQ:   {"beq", tyBranch},
	op.OpBGE:   {"bge", tyBranch},
	op.OpBGT:   {"bgt", tyBranch},
	op.OpBIV:   {"biv", tyBranch},
	op.OpBLE:   {"ble", tyBranch},
	op.OpBLT:   {"blt", tyBranch},
	op.OpBNE:   {"bne", tyBranch},
	op.OpBNI:   {"bni", tyBranch},
	op.OpBNZ:   {"bnz", tyBranch},
	op.OpBUN:   {"bun", tyBranch},
	op.OpBZD:   {"bzd", tyBranch},
	op.OpCALLS: {"call", tyBranch},
	op.OpINT:   {"int", tyInt},
}

// Names of multiply family, indexed by secondary code.
var mulNames = [8]string{"mul", "sll", "muls", "sla", "div", "srl", "divs", "sra"}

// Check if instruction word has a defined opcode.
func Valid(inst uint32) bool {
	_, ok := opMap[op.Opcode(inst)]
	return ok
}

// Return mnemonic text for instruction.
func Disassemble(inst uint32) string {
	opc, ok := opMap[op.Opcode(inst)]
	if !ok {
		return undefined(inst)
	}

	z := op.RegName(op.FieldZ(inst))
	x := op.RegName(op.FieldX(inst))
	y := op.RegName(op.FieldY(inst))
	switch opc.opType {
	case tyImm21:
		return fmt.Sprintf("%s %s,%d", opc.opName, z, op.Imm21(inst))
	case tySImm21:
		return fmt.Sprintf("%s %s,%d", opc.opName, z, op.SImm21(inst))
	case tyRRR:
		return fmt.Sprintf("%s %s,%s,%s", opc.opName, z, x, y)
	case tyZX:
		return fmt.Sprintf("%s %s,%s", opc.opName, z, x)
	case tyXY:
		return fmt.Sprintf("%s %s,%s", opc.opName, x, y)
	case tyMulDiv:
		sub := op.FieldSub(inst)
		l := op.FieldL(inst)
		if (sub & 1) != 0 {
			// Shifts print the raw count.
			return fmt.Sprintf("%s %s,%s,%s,%d", mulNames[sub], z, x, y, l)
		}
		return fmt.Sprintf("%s %s,%s,%s,%s", mulNames[sub], op.RegName(l), z, x, y)
	case tyStack:
		list := op.StackList(inst)
		if len(list) == 0 {
			return opc.opName + " -"
		}
		names := make([]string, len(list))
		for i, r := range list {
			names[i] = op.RegName(r)
		}
		return opc.opName + " " + strings.Join(names, ",")
	case tyImm16:
		return fmt.Sprintf("%s %s,%s,%d", opc.opName, z, x, op.Imm16(inst))
	case tyXImm16:
		return fmt.Sprintf("%s %s,%d", opc.opName, x, op.Imm16(inst))
	case tyLoad:
		return fmt.Sprintf("%s %s,%s", opc.opName, z, address(x, op.Imm16(inst)))
	case tyStore:
		return fmt.Sprintf("%s %s,%s", opc.opName, address(x, op.Imm16(inst)), z)
	case tyCallf:
		return opc.opName + " " + address(x, op.Imm16(inst))
	case tyBit:
		name := "cbr"
		if (inst & 1) == op.SubSBR {
			name = "sbr"
		}
		return fmt.Sprintf("%s %s[%d]", name, z, op.FieldX(inst))
	case tyBranch:
		return fmt.Sprintf("%s %d", opc.opName, op.SImm26(inst))
	case tyInt:
		return fmt.Sprintf("%s %d", opc.opName, op.Imm26(inst))
	}
	return opc.opName
}

// Base register plus displacement.
func address(x string, disp int32) string {
	if disp >= 0 {
		return fmt.Sprintf("[%s+%d]", x, disp)
	}
	return fmt.Sprintf("[%s%d]", x, disp)
}

func undefined(inst uint32) string {
	return fmt.Sprintf(".word 0x%08x", inst)
}
