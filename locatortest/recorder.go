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
	"reflect"
	"strings"
	"sync"

	"go.uber.org/locator"
)

// Recorder is a locator.Registrar that records every registration it
// receives. It rejects invalid lifetimes like a real registrar.
type Recorder struct {
	mu    sync.Mutex
	descs []locator.Descriptor

	// Err, if set, is returned from every registration after recording
	// it.
	Err error
}

var _ locator.Registrar = (*Recorder)(nil)

// Register records an unkeyed registration.
func (r *Recorder) Register(contract reflect.Type, impl locator.Implementation, lifetime locator.Lifetime) error {
	return r.RegisterKeyed(contract, impl, lifetime, "")
}

// RegisterKeyed records a keyed registration.
func (r *Recorder) RegisterKeyed(contract reflect.Type, impl locator.Implementation, lifetime locator.Lifetime, key string) error {
	if err := locator.CheckLifetime(lifetime); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.descs = append(r.descs, locator.Descriptor{
		Contract:       contract,
		Implementation: impl,
		Lifetime:       lifetime,
		Key:            key,
		Synthetic:      strings.HasPrefix(key, locator.SyntheticKey),
	})
	return r.Err
}

// Descriptors returns the recorded registrations in order.
func (r *Recorder) Descriptors() []locator.Descriptor {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]locator.Descriptor(nil), r.descs...)
}

// For returns the recorded registrations of contract in order.
func (r *Recorder) For(contract reflect.Type) []locator.Descriptor {
	var out []locator.Descriptor
	for _, d := range r.Descriptors() {
		if d.Contract == contract {
			out = append(out, d)
		}
	}
	return out
}

// Pair returns the recorded registrations of impl as contract in order.
func (r *Recorder) Pair(contract, impl reflect.Type) []locator.Descriptor {
	var out []locator.Descriptor
	for _, d := range r.For(contract) {
		if d.Implementation.Type == impl {
			out = append(out, d)
		}
	}
	return out
}
