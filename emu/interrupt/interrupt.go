/*
 * POXIM - Hardware interrupt controller.
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

package interrupt

import (
	"errors"
	"slices"

	"github.com/rcornwell/poxim/util/debug"
)

// Interrupt priorities, lower value dispatched first.
const (
	PrioWatchdog = 1
	PrioFPUError = 2
	PrioFPUArith = 3
	PrioFPUConv  = 4
)

// Interrupt cause codes.
const (
	CauseWatchdog uint32 = 0xE1AC04DA
	CauseFPU      uint32 = 0x01EEE754
)

// Vector address for a priority class.
func Vector(priority int) uint32 {
	return 0x0C + uint32(priority)*4
}

// Pending interrupt.
type Entry struct {
	Priority int    // Priority class.
	Cause    uint32 // Value placed in CR.
	SavedPC  uint32 // PC when the interrupt was raised.
	seq      uint64 // Insertion order for equal priorities.
}

// Target takes interrupts when they are dispatched.
type Target interface {
	InterruptsEnabled() bool
	HardwareInterrupt(entry Entry)
}

// Controller keeps pending interrupts ordered by priority.
type Controller struct {
	target  Target
	pending []Entry
	seq     uint64
}

var debugMsk int

var debugOption = map[string]int{
	"QUEUE":    debugQueue,
	"DISPATCH": debugDispatch,
}

const (
	debugQueue = 1 << iota
	debugDispatch
)

func New(target Target) *Controller {
	return &Controller{target: target}
}

// Set where interrupts are delivered.
func (ctl *Controller) SetTarget(target Target) {
	ctl.target = target
}

// Raise an interrupt. If interrupts are enabled it is taken at once,
// otherwise it replaces any pending entry with the same priority and
// cause.
func (ctl *Controller) Schedule(priority int, cause uint32, savedPC uint32) {
	entry := Entry{Priority: priority, Cause: cause, SavedPC: savedPC}
	if ctl.target != nil && ctl.target.InterruptsEnabled() {
		debug.Debugf("IRQ", debugMsk, debugDispatch, "direct %d cause=%08x pc=%08x", priority, cause, savedPC)
		ctl.target.HardwareInterrupt(entry)
		return
	}

	ctl.remove(priority, cause)
	ctl.seq++
	entry.seq = ctl.seq
	pos, _ := slices.BinarySearchFunc(ctl.pending, entry, compare)
	ctl.pending = slices.Insert(ctl.pending, pos, entry)
	debug.Debugf("IRQ", debugMsk, debugQueue, "queue %d cause=%08x pc=%08x depth=%d", priority, cause, savedPC, len(ctl.pending))
}

// Dispatch highest priority pending interrupt if interrupts are enabled.
// Returns true if one was taken.
func (ctl *Controller) DrainOne() bool {
	if len(ctl.pending) == 0 || ctl.target == nil || !ctl.target.InterruptsEnabled() {
		return false
	}
	entry := ctl.pending[0]
	ctl.pending = slices.Delete(ctl.pending, 0, 1)
	debug.Debugf("IRQ", debugMsk, debugDispatch, "dispatch %d cause=%08x pc=%08x", entry.Priority, entry.Cause, entry.SavedPC)
	ctl.target.HardwareInterrupt(entry)
	return true
}

// Number of pending interrupts.
func (ctl *Controller) Len() int {
	return len(ctl.pending)
}

// Copy of pending interrupts in dispatch order.
func (ctl *Controller) Pending() []Entry {
	return slices.Clone(ctl.pending)
}

// Drop all pending interrupts.
func (ctl *Controller) Reset() {
	ctl.pending = nil
	ctl.seq = 0
}

// Remove entry matching priority and cause.
func (ctl *Controller) remove(priority int, cause uint32) {
	ctl.pending = slices.DeleteFunc(ctl.pending, func(e Entry) bool {
		return e.Priority == priority && e.Cause == cause
	})
}

// Order by priority then by arrival.
func compare(a, b Entry) int {
	if a.Priority != b.Priority {
		return a.Priority - b.Priority
	}
	switch {
	case a.seq < b.seq:
		return -1
	case a.seq > b.seq:
		return 1
	}
	return 0
}

// Enable debug options.
func Debug(opt string) error {
	flag, ok := debugOption[opt]
	if !ok {
		return errors.New("Interrupt debug option invalid: " + opt)
	}
	debugMsk |= flag
	return nil
}
