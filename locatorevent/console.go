// Copyright (c) 2026 Uber Technologies, Inc.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package locatorevent

import (
	"fmt"
	"io"
)

// ConsoleLogger is a locator event logger that attempts to write
// human-readable messages to the console.
//
// Use this during development.
type ConsoleLogger struct {
	W io.Writer
}

var _ Logger = (*ConsoleLogger)(nil)

func (l *ConsoleLogger) logf(msg string, args ...interface{}) {
	fmt.Fprintf(l.W, "[Locator] "+msg+"\n", args...)
}

// LogEvent logs the given event to the provided writer.
func (l *ConsoleLogger) LogEvent(event Event) {
	switch e := event.(type) {
	case *UnitLoaded:
		if e.Err != nil {
			l.logf("SKIP\t\t%s: %v", e.Path, e.Err)
		} else {
			l.logf("LOAD\t\t%s", e.Path)
		}
	case *UnitScanned:
		if e.Err != nil {
			l.logf("SKIP\t\t%s: %v", e.Unit, e.Err)
		} else {
			l.logf("SCAN\t\t%s (%d types)", e.Unit, e.Types)
		}
	case *Registered:
		name := e.Contract
		if e.Key != "" {
			name = fmt.Sprintf("%s[%q]", e.Contract, e.Key)
		}
		if e.Err != nil {
			l.logf("ERROR\t\tFailed to register %s <= %s: %v", name, e.Implementation, e.Err)
		} else {
			l.logf("REGISTER\t%s <= %s (%s)", name, e.Implementation, e.Lifetime)
		}
	case *Discovered:
		if e.Err != nil {
			l.logf("ERROR\t\tDiscovery failed: %v", e.Err)
		} else {
			l.logf("DISCOVERED\t%d registrations from %d units", e.Registrations, e.Units)
		}
	case *Armed:
		l.logf("ARMED\t\t%s (caller: %s)", e.Resolver, e.CallerName)
	case *Fallback:
		l.logf("FALLBACK\t%s %s[%q] found=%v", e.Operation, e.Contract, e.Key, e.Found)
	}
}
