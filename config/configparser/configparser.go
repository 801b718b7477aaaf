/*
 * POXIM - Configuration file parser.
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

package configparser

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"unicode"
)

// List of options to pass to create routine.
type Option struct {
	Name     string    // Name of option.
	EqualOpt string    // Value of string after =.
	Value    []*string // Value of option.
}

// Current option line being parsed.
type optionLine struct {
	line string // Current option line.
	pos  int    // Current position in line.
}

/* Configuration file format:
 *
 * '#' indicates comment, rest of line is ignored.
 * <line> := <option> <whitespace> <value> |
 *           <file> <whitespace> <quoteopt> |
 *           <options> <whitespace> <unit> <whitespace> *(<opt>) |
 *           <switch>
 * <opt> ::= <string> ['=' <quoteopt>] *(',' *(<whitespace>) <string>)
 * <quoteopt> ::= <filename> | '"' *(<letter> | <whitespace>) '"'
 * <value> ::= <string>
 * <string> ::= *(<letter> | <number>)
 */

const (
	TypeOption  = 1 + iota // Accepts a single value.
	TypeOptions            // Accepts a unit name and list of options.
	TypeSwitch             // Option only used to set a flag.
	TypeFile               // Accepts a file name.
)

// Option creation list.
type modelDef struct {
	create     func(string, []Option) error
	createFile func(string) error
	ty         int
}

var models = map[string]modelDef{}

var lineNumber int

// Return type of option or 0 if not registered.
func getModel(mod string) int {
	model, ok := models[mod]
	if !ok {
		return 0
	}
	return model.ty
}

// Register an option followed by a unit and options, called from init functions.
func RegisterModel(mod string, fn func(string, []Option) error) {
	mod = strings.ToUpper(mod)
	slog.Debug("Registering options: " + mod)
	models[mod] = modelDef{create: fn, ty: TypeOptions}
}

// Register should be called from init functions.
func RegisterSwitch(mod string, fn func(string, []Option) error) {
	mod = strings.ToUpper(mod)
	slog.Debug("Registering switch: " + mod)
	models[mod] = modelDef{create: fn, ty: TypeSwitch}
}

// Register should be called from init functions.
func RegisterOption(mod string, fn func(string, []Option) error) {
	mod = strings.ToUpper(mod)
	slog.Debug("Registering simple option: " + mod)
	models[mod] = modelDef{create: fn, ty: TypeOption}
}

// Register an option that takes a file name.
func RegisterFile(mod string, fn func(string) error) {
	mod = strings.ToUpper(mod)
	slog.Debug("Registering file option: " + mod)
	models[mod] = modelDef{createFile: fn, ty: TypeFile}
}

// Create a option with one parameter.
func createOption(mod string, value string) error {
	mod = strings.ToUpper(mod)
	model, ok := models[mod]
	if !ok {
		return errors.New("Unknown option: " + mod)
	}
	if model.ty != TypeOption {
		return errors.New("Not a optional type: " + mod)
	}
	return model.create(value, []Option{})
}

// Create a option with options.
func createOptions(mod string, value string, options []Option) error {
	mod = strings.ToUpper(mod)
	model, ok := models[mod]
	if !ok {
		return errors.New("Unknown option: " + mod)
	}
	if model.ty != TypeOptions {
		return errors.New("Not a options type: " + mod)
	}
	return model.create(value, options)
}

// Create switch option.
func createSwitch(mod string) error {
	mod = strings.ToUpper(mod)
	model, ok := models[mod]
	if !ok {
		return errors.New("Unknown switch: " + mod)
	}
	if model.ty != TypeSwitch {
		return errors.New("Not a switch type: " + mod)
	}
	return model.create("", nil)
}

// Create file option.
func createFile(mod string, name string) error {
	mod = strings.ToUpper(mod)
	model, ok := models[mod]
	if !ok {
		return errors.New("Unknown file option: " + mod)
	}
	if model.ty != TypeFile {
		return errors.New("Not a file type: " + mod)
	}
	return model.createFile(name)
}

// Load in a configuration file.
func LoadConfigFile(name string) error {
	file, err := os.Open(name)
	if err != nil {
		return err
	}
	defer file.Close()
	return LoadConfig(file)
}

// Process configuration lines from reader.
func LoadConfig(input io.Reader) error {
	lineNumber = 0
	reader := bufio.NewReader(input)
	for {
		var err error

		line := optionLine{}
		line.line, err = reader.ReadString('\n')
		lineNumber++
		if len(line.line) == 0 && err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}
		err = line.parseLine()
		if err != nil {
			return err
		}
	}
	return nil
}

// Parse one line from file.
func (line *optionLine) parseLine() error {
	name := line.parseName()
	if name == "" {
		line.skipSpace()
		if !line.isEOL() {
			return fmt.Errorf("invalid option name, line: %d", lineNumber)
		}
		return nil
	}
	switch getModel(name) {
	case TypeOption:
		value := line.parseValue()
		line.skipSpace()
		if !line.isEOL() || value == "" {
			return fmt.Errorf("option: %s not followed by value, line: %d", name, lineNumber)
		}
		return createOption(name, value)

	case TypeOptions:
		value := line.parseValue()
		if value == "" {
			return fmt.Errorf("option: %s not followed by value, line: %d", name, lineNumber)
		}
		options, err := line.parseOptions()
		if err != nil {
			return err
		}
		return createOptions(name, value, options)

	case TypeSwitch:
		line.skipSpace()
		if !line.isEOL() {
			return fmt.Errorf("switch option: %s followed by options, line: %d", name, lineNumber)
		}
		return createSwitch(name)

	case TypeFile:
		line.skipSpace()
		fileName, ok := line.parseQuoteString()
		if !ok || fileName == "" {
			return fmt.Errorf("option: %s requires file name, line: %d", name, lineNumber)
		}
		line.skipSpace()
		if !line.isEOL() {
			return fmt.Errorf("option: %s followed by extra text, line: %d", name, lineNumber)
		}
		return createFile(name, fileName)
	}
	return fmt.Errorf("no type: %s registered, line: %d", name, lineNumber)
}

// Skip forward over line until none whitespace character found.
func (line *optionLine) skipSpace() {
	for {
		if line.pos >= len(line.line) {
			return
		}
		if unicode.IsSpace(rune(line.line[line.pos])) {
			line.pos++
			continue
		}
		return
	}
}

// Check if at end of line.
func (line *optionLine) isEOL() bool {
	if line.pos >= len(line.line) {
		return true
	}

	return line.line[line.pos] == '#'
}

// Return next letter or digit in line. 0 if EOL or space.
func (line *optionLine) getNext(inQuote bool) byte {
	line.pos++
	if line.pos >= len(line.line) {
		return 0
	}
	by := line.line[line.pos]
	if inQuote {
		return by
	}
	if line.isEOL() {
		return 0
	}
	if unicode.IsLetter(rune(by)) || unicode.IsNumber(rune(by)) {
		return by
	}
	return 0
}

// Collect a run of letters and digits.
func (line *optionLine) collect() string {
	value := ""
	for !line.isEOL() {
		by := line.line[line.pos]
		if unicode.IsLetter(rune(by)) || unicode.IsNumber(rune(by)) {
			value += string([]byte{by})
			line.pos++
			continue
		}
		break
	}
	return value
}

// Parse the option name at start of line.
func (line *optionLine) parseName() string {
	line.skipSpace()
	return strings.ToUpper(line.collect())
}

// Parse first value after the option name.
func (line *optionLine) parseValue() string {
	line.skipSpace()
	return line.collect()
}

// Parse string that is "string" or just string, stopping at space.
func (line *optionLine) parseQuoteString() (string, bool) {
	if line.isEOL() {
		return "", false
	}
	value := ""
	if line.line[line.pos] != '"' {
		for !line.isEOL() {
			by := line.line[line.pos]
			if unicode.IsSpace(rune(by)) || by == ',' {
				break
			}
			value += string(by)
			line.pos++
		}
		return value, true
	}

	for {
		by := line.getNext(true)
		if by == 0 {
			// Hit end of line inside quote.
			return value, false
		}
		// Inside quoted string "" gets replaced by single quote.
		if by == '"' {
			line.pos++
			if line.pos < len(line.line) && line.line[line.pos] == '"' {
				value += "\""
				continue
			}
			return value, true
		}
		value += string(by)
	}
}

// Parse option name.
func (line *optionLine) getName() (string, error) {
	// Check if end of line.
	if line.isEOL() {
		return "", nil
	}

	// First character must be alphabetic.
	by := line.line[line.pos]
	if !unicode.IsLetter(rune(by)) {
		return "", fmt.Errorf("invalid option encountered line: %d [%d]", lineNumber, line.pos)
	}

	return line.collect(), nil
}

// Parse options for a line.
func (line *optionLine) parseOption() (*Option, error) {
	// Skip leading space
	line.skipSpace()

	// Grab option name
	value, err := line.getName()
	if value == "" {
		return nil, err
	}

	// Empty option.
	option := Option{Name: value}

	// If at end of line done.
	if line.isEOL() {
		return &option, nil
	}

	// Check if equals option.
	if line.line[line.pos] == '=' {
		line.pos++
		v, ok := line.parseQuoteString()
		if !ok {
			return nil, fmt.Errorf("invalid quoted string line: %d [%d]", lineNumber, line.pos)
		}
		option.EqualOpt = v
	}

	// Skip any spaces.
	line.skipSpace()

	// Grab all , options
	for !line.isEOL() && line.line[line.pos] == ',' {
		line.pos++ // Skip comma
		// Skip space between , and next option
		line.skipSpace()
		v, err := line.getName()
		if err != nil {
			return nil, err
		}
		if v != "" {
			option.Value = append(option.Value, &v)
		}
		// Skip any trailing spaces.
		line.skipSpace()
	}

	return &option, nil
}

// Collect all options for line.
func (line *optionLine) parseOptions() ([]Option, error) {
	options := []Option{}
	for {
		option, err := line.parseOption()
		if err != nil {
			return nil, err
		}
		if option == nil {
			break
		}
		options = append(options, *option)
	}
	return options, nil
}

// Convert decimal option value, accepting a trailing K or M multiplier.
func ParseNumber(value string) (int, error) {
	mult := 1
	upper := strings.ToUpper(value)
	switch {
	case strings.HasSuffix(upper, "K"):
		mult = 1024
		upper = strings.TrimSuffix(upper, "K")
	case strings.HasSuffix(upper, "M"):
		mult = 1024 * 1024
		upper = strings.TrimSuffix(upper, "M")
	}
	number, err := strconv.Atoi(upper)
	if err != nil || number < 0 {
		return 0, errors.New("invalid number: " + value)
	}
	return number * mult, nil
}
