/*
 * POXIM - Monitor command parser.
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

package parser

import (
	"errors"
	"io"
	"os"
	"strings"
	"unicode"

	core "github.com/rcornwell/poxim/emu/core"
)

type cmd struct {
	Name     string // Command name.
	Min      int    // Minimum match size.
	Process  func(*cmdLine, *core.Core) (bool, error)
	Complete func(*cmdLine) []string
}

type cmdLine struct {
	line string // Current command.
	pos  int    // Position in line.
}

// Where command output is written.
var output io.Writer = os.Stdout

// Change where command output goes.
func SetOutput(w io.Writer) {
	output = w
}

// Execute the command line given. Returns true when the monitor should exit.
func ProcessCommand(commandLine string, core *core.Core) (bool, error) {
	line := cmdLine{line: commandLine}
	command := line.getWord()
	if command == "" {
		line.skipSpace()
		if !line.isEOL() {
			return false, errors.New("command not found: " + commandLine)
		}
		return false, nil
	}

	match := matchList(command)
	if len(match) == 0 {
		return false, errors.New("command not found: " + command)
	}

	if len(match) > 1 {
		return false, errors.New("unique command not found: " + command)
	}

	return match[0].Process(&line, core)
}

// Check if command matches at least to minimum length.
func matchCommand(match cmd, command string) bool {
	if len(command) > len(match.Name) {
		return false
	}
	return strings.HasPrefix(match.Name, command) && len(command) >= match.Min
}

// Check if command matches one of the commands.
func matchList(command string) []cmd {
	if command == "" {
		return []cmd{}
	}

	var match []cmd
	for _, m := range cmdList {
		if matchCommand(m, command) {
			match = append(match, m)
		}
	}
	return match
}

// Skip forward over line until none whitespace character found.
func (line *cmdLine) skipSpace() {
	for line.pos < len(line.line) && unicode.IsSpace(rune(line.line[line.pos])) {
		line.pos++
	}
}

// Check if at end of line.
func (line *cmdLine) isEOL() bool {
	if line.pos >= len(line.line) {
		return true
	}
	return line.line[line.pos] == '#'
}

// Return current character and advance to next.
func (line *cmdLine) getCurrent() byte {
	if line.isEOL() {
		return 0
	}
	by := line.line[line.pos]
	line.pos++
	return by
}

// Peek at current character.
func (line *cmdLine) peek() byte {
	if line.isEOL() {
		return 0
	}
	return line.line[line.pos]
}

// Parse a word of letters, returned in lower case.
func (line *cmdLine) getWord() string {
	line.skipSpace()

	value := ""
	pos := line.pos
	for {
		by := line.peek()
		if by == 0 || unicode.IsSpace(rune(by)) {
			break
		}
		if !unicode.IsLetter(rune(by)) {
			line.pos = pos
			return ""
		}
		value += string([]byte{by})
		line.pos++
	}
	return strings.ToLower(value)
}

const hexDigits = "0123456789abcdef"

var errNotNumber = errors.New("not a number")

// Parse hex number, an optional 0x prefix is allowed.
func (line *cmdLine) getHex() (uint32, error) {
	line.skipSpace()

	if line.isEOL() {
		return 0, errNotNumber
	}
	pos := line.pos
	if strings.HasPrefix(strings.ToLower(line.line[pos:]), "0x") {
		line.pos += 2
	}
	value := uint32(0)
	digits := 0
	for {
		by := line.peek()
		if by == 0 || unicode.IsSpace(rune(by)) {
			break
		}
		digit := strings.IndexByte(hexDigits, strings.ToLower(string(by))[0])
		if digit == -1 || digits == 8 {
			line.pos = pos
			return 0, errNotNumber
		}
		value = (value << 4) + uint32(digit)
		digits++
		line.pos++
	}
	if digits == 0 {
		line.pos = pos
		return 0, errNotNumber
	}
	return value, nil
}

// Parse optional hex count, default if none given.
func (line *cmdLine) getCount(def uint32) (uint32, error) {
	line.skipSpace()
	if line.isEOL() {
		return def, nil
	}
	count, err := line.getHex()
	if err != nil {
		return 0, errors.New("count must be hex number")
	}
	if count == 0 {
		return 0, errors.New("count must be nonzero")
	}
	return count, nil
}

// Make sure nothing follows the command.
func (line *cmdLine) checkEOL() error {
	line.skipSpace()
	if !line.isEOL() {
		return errors.New("extra text after command: " + line.line[line.pos:])
	}
	return nil
}
