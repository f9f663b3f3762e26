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

// Event defines an event emitted by locator.
type Event interface {
	event() // Only locatorevent can implement this interface.
}

// Passing events by type to make Event hashable in the future.
func (*UnitLoaded) event()  {}
func (*UnitScanned) event() {}
func (*Registered) event()  {}
func (*Discovered) event()  {}
func (*Armed) event()       {}
func (*Fallback) event()    {}

// UnitLoaded is emitted after an attempt to load an external unit from the
// deployment directory. A non-nil Err means the unit was skipped.
type UnitLoaded struct {
	Path string
	Err  error
}

// UnitScanned is emitted after the types of a unit were enumerated. A
// non-nil Err means the unit was skipped.
type UnitScanned struct {
	Unit string

	// Types is the number of types the unit described.
	Types int
	Err   error
}

// Registered is emitted for every registration handed to a registrar.
type Registered struct {
	Contract       string
	Implementation string

	// ConstructorName is the name of the implementation's constructor, if
	// it has one.
	ConstructorName string
	Lifetime        string
	Key             string

	// Synthetic is set for the extra transient registration made under the
	// reserved synthetic key.
	Synthetic bool
	Err       error
}

// Discovered is emitted when discovery has finished.
type Discovered struct {
	// Units is the number of units whose types were scanned.
	Units int

	// Registrations is the number of registrations made.
	Registrations int

	// Skipped holds the errors of the units that were skipped.
	Skipped error
	Err     error
}

// Armed is emitted when a handle is armed with a resolver.
type Armed struct {
	Resolver string

	// CallerName is the function that armed the handle.
	CallerName string
}

// Fallback is emitted when a lookup missed and was retried under the
// synthetic key.
type Fallback struct {
	Operation    string
	Contract     string
	Key          string
	SyntheticKey string

	// Found reports whether the retry produced an instance.
	Found bool
	Err   error
}
