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
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrNotInitialized is returned when a Handle is read before it was
	// armed, or when a registration surface is used before it exists.
	ErrNotInitialized = errors.New("locator: not initialized")

	// ErrNotFound is returned by required lookups that match no
	// registration. Use errors.Is to test for it; the concrete error is a
	// *NotFoundError.
	ErrNotFound = errors.New("locator: no registration found")

	// ErrInvalidLifetime is returned when an unknown Lifetime reaches a
	// Registrar.
	ErrInvalidLifetime = errors.New("locator: invalid lifetime")

	// ErrReservedKey is returned by Discover when a registration key starts
	// with SyntheticKey.
	ErrReservedKey = errors.New("locator: key uses the reserved synthetic prefix")
)

// NotFoundError reports a required lookup that had no matching
// registration.
type NotFoundError struct {
	// Type is the contract type that was looked up.
	Type reflect.Type
	// Key is the key that was looked up. Empty for unkeyed lookups.
	Key string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("locator: no registration found for %v", e.Type)
	}
	return fmt.Sprintf("locator: no registration found for %v with key %q", e.Type, e.Key)
}

// Is reports whether target is ErrNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// CheckLifetime returns an error matching ErrInvalidLifetime when l is not
// one of the known lifetimes. Registrar implementations call it before
// recording a binding.
func CheckLifetime(l Lifetime) error {
	if !l.Valid() {
		return fmt.Errorf("%w: %v", ErrInvalidLifetime, l)
	}
	return nil
}
