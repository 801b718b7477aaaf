/*
 * POXIM - Debug configuration options.
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

package debugconfig

import (
	"errors"
	"strings"

	config "github.com/rcornwell/poxim/config/configparser"
	"github.com/rcornwell/poxim/emu/cpu"
	"github.com/rcornwell/poxim/emu/fpu"
	"github.com/rcornwell/poxim/emu/interrupt"
	"github.com/rcornwell/poxim/emu/memory"
	"github.com/rcornwell/poxim/emu/watchdog"
)

// Debug routine for each unit.
var units = map[string]func(string) error{
	"CPU":       cpu.Debug,
	"FPU":       fpu.Debug,
	"WATCHDOG":  watchdog.Debug,
	"INTERRUPT": interrupt.Debug,
	"MEMORY":    memory.Debug,
}

// register debug option on initialize.
func init() {
	config.RegisterModel("DEBUG", setDebug)
}

// Process DEBUG <unit> options.
func setDebug(unit string, options []config.Option) error {
	debug, ok := units[strings.ToUpper(unit)]
	if !ok {
		return errors.New("debug option invalid: " + unit)
	}
	if len(options) == 0 {
		return errors.New("debug " + unit + " requires options")
	}

	for _, opt := range options {
		err := debug(strings.ToUpper(opt.Name))
		if err != nil {
			return err
		}
		for _, value := range opt.Value {
			err = debug(strings.ToUpper(*value))
			if err != nil {
				return err
			}
		}
	}
	return nil
}
