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

package locator

import (
	"fmt"
	"strings"
)

// Lifetime controls how often the container builds a new instance of a
// registered implementation.
//
// The zero value is Scoped, which is also what discovery assumes when an
// implementation carries no registration marker.
type Lifetime int

const (
	// Scoped builds one instance per container scope.
	Scoped Lifetime = iota
	// Singleton builds a single instance for the lifetime of the container.
	Singleton
	// Transient builds a new instance on every lookup.
	Transient
)

var _lifetimeNames = map[Lifetime]string{
	Scoped:    "scoped",
	Singleton: "singleton",
	Transient: "transient",
}

// Valid reports whether l is one of the known lifetimes.
func (l Lifetime) Valid() bool {
	_, ok := _lifetimeNames[l]
	return ok
}

func (l Lifetime) String() string {
	if name, ok := _lifetimeNames[l]; ok {
		return name
	}
	return fmt.Sprintf("Lifetime(%d)", int(l))
}

// ParseLifetime parses the case-insensitive name of a lifetime.
// An empty string parses as Scoped.
func ParseLifetime(s string) (Lifetime, error) {
	if s == "" {
		return Scoped, nil
	}
	for l, name := range _lifetimeNames {
		if strings.EqualFold(s, name) {
			return l, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidLifetime, s)
}

// MarshalText implements encoding.TextMarshaler.
func (l Lifetime) MarshalText() ([]byte, error) {
	if !l.Valid() {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLifetime, l)
	}
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Lifetime) UnmarshalText(text []byte) error {
	parsed, err := ParseLifetime(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}
