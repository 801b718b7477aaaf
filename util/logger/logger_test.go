/*
 * POXIM - Log handler test set.
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

package logger

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func setup(debug bool) (*slog.Logger, *bytes.Buffer, *bytes.Buffer) {
	file := &bytes.Buffer{}
	console := &bytes.Buffer{}
	level := new(slog.LevelVar)
	level.Set(slog.LevelDebug)
	handler := NewHandler(file, &slog.HandlerOptions{Level: level}, debug)
	handler.SetConsole(console)
	return slog.New(handler), file, console
}

func TestHandlerFormat(t *testing.T) {
	log, file, _ := setup(false)
	log.Info("loaded", "words", 12)
	line := file.String()
	fields := strings.Fields(line)
	if len(fields) != 5 {
		t.Fatalf("Log line incorrect got: '%s'", line)
	}
	if fields[2] != "INFO:" || fields[3] != "loaded" || fields[4] != "12" {
		t.Errorf("Log fields incorrect got: %v", fields)
	}
	if !strings.HasSuffix(line, "\n") {
		t.Errorf("Log line not terminated")
	}
}

func TestHandlerConsole(t *testing.T) {
	log, file, console := setup(false)
	log.Debug("quiet")
	if console.Len() != 0 {
		t.Errorf("Debug message copied to console: '%s'", console.String())
	}
	if !strings.Contains(file.String(), "quiet") {
		t.Errorf("Debug message missing from file")
	}
	log.Warn("loud")
	if !strings.Contains(console.String(), "WARN: loud") {
		t.Errorf("Warning not copied to console got: '%s'", console.String())
	}

	log, _, console = setup(true)
	log.Debug("shown")
	if !strings.Contains(console.String(), "DEBUG: shown") {
		t.Errorf("Debug message not copied when debug set got: '%s'", console.String())
	}
}

func TestHandlerWithAttrs(t *testing.T) {
	log, file, _ := setup(false)
	log.With("unit", "fpu").Info("done")
	if !strings.Contains(file.String(), "INFO: done fpu") {
		t.Errorf("Attribute not written got: '%s'", file.String())
	}
}
