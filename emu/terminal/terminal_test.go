/*
 * POXIM - Terminal test routines.
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

package terminal

import (
	"strings"
	"testing"
)

func TestFlush(t *testing.T) {
	term := New()
	out := &strings.Builder{}
	if err := term.Flush(out); err != nil {
		t.Errorf("Flush returned error: %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("Empty terminal wrote: %q", out.String())
	}

	for _, c := range "Hi!" {
		term.WriteReg(0, uint32(c)|0xffffff00)
	}
	term.WritePort(0, '\n')
	if term.Len() != 4 {
		t.Errorf("Length was incorrect got: %d wanted: %d", term.Len(), 4)
	}
	if err := term.Flush(out); err != nil {
		t.Errorf("Flush returned error: %v", err)
	}
	want := "[TERMINAL]\nHi!\n\n"
	if out.String() != want {
		t.Errorf("Flush was incorrect got: %q wanted: %q", out.String(), want)
	}
	if term.ReadReg(0) != 0 {
		t.Errorf("ReadReg was incorrect got: %08x wanted: %08x", term.ReadReg(0), 0)
	}
}
