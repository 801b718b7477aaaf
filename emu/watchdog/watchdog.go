/*
 * POXIM - Watchdog timer.
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

package watchdog

import (
	"errors"

	"github.com/rcornwell/poxim/emu/interrupt"
	"github.com/rcornwell/poxim/util/debug"
)

const (
	enableBit uint32 = 0x80000000
	countMask uint32 = 0x7fffffff
)

// Raise interrupts.
type Scheduler interface {
	Schedule(priority int, cause uint32, savedPC uint32)
}

// Watchdog counts down once per cycle while enabled.
type Watchdog struct {
	irq     Scheduler
	enabled bool
	counter uint32
}

var debugMsk int

var debugOption = map[string]int{
	"CMD":    debugCmd,
	"EXPIRE": debugExpire,
}

const (
	debugCmd = 1 << iota
	debugExpire
)

func New(irq Scheduler) *Watchdog {
	return &Watchdog{irq: irq}
}

// Read control register.
func (wd *Watchdog) ReadReg(_ uint32) uint32 {
	value := wd.counter & countMask
	if wd.enabled {
		value |= enableBit
	}
	return value
}

// Write control register, top bit enables, rest is count.
func (wd *Watchdog) WriteReg(_ uint32, value uint32) {
	wd.enabled = (value & enableBit) != 0
	wd.counter = value & countMask
	debug.Debugf("WDT", debugMsk, debugCmd, "load en=%t count=%d", wd.enabled, wd.counter)
}

// Advance one cycle. pc is the address of the instruction just run.
func (wd *Watchdog) Tick(pc uint32) {
	if !wd.enabled {
		return
	}
	if wd.counter == 0 {
		wd.enabled = false
		debug.Debugf("WDT", debugMsk, debugExpire, "expired pc=%08x", pc)
		wd.irq.Schedule(interrupt.PrioWatchdog, interrupt.CauseWatchdog, pc)
		return
	}
	wd.counter--
}

// Is the watchdog counting.
func (wd *Watchdog) Enabled() bool {
	return wd.enabled
}

// Stop and clear.
func (wd *Watchdog) Reset() {
	wd.enabled = false
	wd.counter = 0
}

// Enable debug options.
func Debug(opt string) error {
	flag, ok := debugOption[opt]
	if !ok {
		return errors.New("Watchdog debug option invalid: " + opt)
	}
	debugMsk |= flag
	return nil
}
