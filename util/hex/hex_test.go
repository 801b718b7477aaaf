/*
 * POXIM - Hex formatting test set.
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

package hex

import (
	"strings"
	"testing"
)

func TestFormatWord(t *testing.T) {
	str := strings.Builder{}
	FormatWord(&str, []uint32{0x0123abcd, 0xffffffff})
	if str.String() != "0123ABCD FFFFFFFF " {
		t.Errorf("FormatWord incorrect got: '%s' wanted: '%s'", str.String(), "0123ABCD FFFFFFFF ")
	}
}

func TestFormatHalf(t *testing.T) {
	str := strings.Builder{}
	FormatHalf(&str, true, []uint16{0x12, 0xbeef})
	if str.String() != "0012 BEEF " {
		t.Errorf("FormatHalf spaced incorrect got: '%s'", str.String())
	}
	str.Reset()
	FormatHalf(&str, false, []uint16{0x12, 0xbeef})
	if str.String() != "0012BEEF " {
		t.Errorf("FormatHalf packed incorrect got: '%s'", str.String())
	}
}

func TestFormatBytes(t *testing.T) {
	str := strings.Builder{}
	FormatBytes(&str, true, []byte{0x0a, 0xf0})
	if str.String() != "0A F0 " {
		t.Errorf("FormatBytes incorrect got: '%s'", str.String())
	}
}

func TestFormatFlags(t *testing.T) {
	str := strings.Builder{}
	FormatFlags(&str, []string{"CY", "IE", "IV"}, 0x5)
	if str.String() != "IV -- CY" {
		t.Errorf("FormatFlags incorrect got: '%s' wanted: '%s'", str.String(), "IV -- CY")
	}
}
