/*
 * POXIM - Terminal output port.
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
	"bytes"
	"io"
)

// Terminal collects bytes written to its port until shutdown.
type Terminal struct {
	buffer bytes.Buffer
}

func New() *Terminal {
	return &Terminal{}
}

// Port reads as zero.
func (term *Terminal) ReadReg(_ uint32) uint32 {
	return 0
}

// Append low byte of value.
func (term *Terminal) WriteReg(_ uint32, value uint32) {
	term.buffer.WriteByte(byte(value))
}

// Sub word stores also append their low byte.
func (term *Terminal) WritePort(_ uint32, value uint32) {
	term.buffer.WriteByte(byte(value))
}

// Number of bytes collected.
func (term *Terminal) Len() int {
	return term.buffer.Len()
}

// Contents so far.
func (term *Terminal) String() string {
	return term.buffer.String()
}

// Write the labeled block if anything was output.
func (term *Terminal) Flush(out io.Writer) error {
	if term.buffer.Len() == 0 {
		return nil
	}
	if _, err := io.WriteString(out, "[TERMINAL]\n"); err != nil {
		return err
	}
	if _, err := term.buffer.WriteTo(out); err != nil {
		return err
	}
	_, err := io.WriteString(out, "\n")
	return err
}
