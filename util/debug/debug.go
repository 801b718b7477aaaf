/*
 * POXIM - Debug message routines.
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

package debug

import (
	"fmt"
	"io"
	"os"
	"strings"

	config "github.com/rcornwell/poxim/config/configparser"
	"github.com/rcornwell/poxim/util/hex"
)

var logFile io.Writer

// Generic debug message.
func Debugf(module string, mask int, level int, format string, a ...interface{}) {
	if (mask&level) != 0 && logFile != nil {
		fmt.Fprintf(logFile, module+": "+format+"\n", a...)
	}
}

// Dump a block of words, four per line, each line prefixed by its address.
func DumpWords(module string, mask int, level int, addr uint32, words []uint32) {
	if (mask&level) == 0 || logFile == nil {
		return
	}
	for i := 0; i < len(words); i += 4 {
		end := min(i+4, len(words))
		str := strings.Builder{}
		hex.FormatWord(&str, []uint32{addr + uint32(i*4)})
		str.WriteString(": ")
		hex.FormatWord(&str, words[i:end])
		fmt.Fprintln(logFile, module+": "+strings.TrimSpace(str.String()))
	}
}

// Redirect debug output, nil disables it.
func SetOutput(out io.Writer) {
	logFile = out
}

// register a device on initialize.
func init() {
	config.RegisterFile("DEBUGFILE", create)
}

// Create the debug file.
func create(fileName string) error {
	if file, ok := logFile.(*os.File); ok && file != nil {
		return fmt.Errorf("Can't have more then one debug file, previous: %s", file.Name())
	}

	file, err := os.Create(fileName)
	if err != nil {
		return fmt.Errorf("unable to create debug file: %s", fileName)
	}

	logFile = file
	return nil
}

// Close the debug file if one was opened.
func Close() {
	if file, ok := logFile.(*os.File); ok && file != nil {
		file.Close()
	}
	logFile = nil
}
