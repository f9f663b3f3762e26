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

package locatortest

import (
	"fmt"
	"reflect"
	"sync"

	"go.uber.org/locator"
)

// Resolver is an in-memory locator.Resolver. Registered values are
// returned as-is; registered functions are called on every lookup.
type Resolver struct {
	mu      sync.RWMutex
	entries map[entryKey]func() (interface{}, error)
	lookups []Lookup
}

var _ locator.Resolver = (*Resolver)(nil)

// Lookup is a lookup made through a Resolver.
type Lookup struct {
	Type     reflect.Type
	Key      string
	Required bool
}

type entryKey struct {
	t   reflect.Type
	key string
}

// NewResolver builds an empty Resolver.
func NewResolver() *Resolver {
	return &Resolver{entries: make(map[entryKey]func() (interface{}, error))}
}

// Set makes r resolve value as T under key. An empty key sets the unkeyed
// value.
func Set[T any](r *Resolver, key string, value T) *Resolver {
	return SetFunc[T](r, key, func() (T, error) { return value, nil })
}

// SetFunc makes r call f for every lookup of T under key.
func SetFunc[T any](r *Resolver, key string, f func() (T, error)) *Resolver {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[entryKey{t: locator.TypeOf[T](), key: key}] = func() (interface{}, error) {
		return f()
	}
	return r
}

// Lookups returns every lookup made through r, in order.
func (r *Resolver) Lookups() []Lookup {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Lookup(nil), r.lookups...)
}

// Resolve implements locator.Resolver.
func (r *Resolver) Resolve(t reflect.Type) (interface{}, bool, error) {
	return r.lookup(t, "", false)
}

// ResolveKeyed implements locator.Resolver.
func (r *Resolver) ResolveKeyed(t reflect.Type, key string) (interface{}, bool, error) {
	return r.lookup(t, key, false)
}

// ResolveRequired implements locator.Resolver.
func (r *Resolver) ResolveRequired(t reflect.Type) (interface{}, error) {
	return r.require(t, "")
}

// ResolveKeyedRequired implements locator.Resolver.
func (r *Resolver) ResolveKeyedRequired(t reflect.Type, key string) (interface{}, error) {
	return r.require(t, key)
}

func (r *Resolver) require(t reflect.Type, key string) (interface{}, error) {
	v, ok, err := r.lookup(t, key, true)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &locator.NotFoundError{Type: t, Key: key}
	}
	return v, nil
}

func (r *Resolver) lookup(t reflect.Type, key string, required bool) (interface{}, bool, error) {
	r.mu.Lock()
	r.lookups = append(r.lookups, Lookup{Type: t, Key: key, Required: required})
	f, ok := r.entries[entryKey{t: t, key: key}]
	r.mu.Unlock()

	if !ok {
		return nil, false, nil
	}
	v, err := f()
	if err != nil {
		return nil, false, fmt.Errorf("resolve %v: %w", t, err)
	}
	return v, v != nil, nil
}
