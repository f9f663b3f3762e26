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
	"context"
	"errors"

	"go.uber.org/locator/internal/locatorreflect"
	"go.uber.org/locator/locatorevent"
)

// SyntheticKey is the reserved key prefix under which Discover registers a
// transient copy of every Scoped implementation. The copy of an
// implementation registered under key k uses SyntheticKeyFor(k).
//
// Real keys must not start with SyntheticKey.
const SyntheticKey = "__locator_transient__"

// SyntheticKeyFor returns the synthetic key qualified by key.
func SyntheticKeyFor(key string) string {
	return SyntheticKey + key
}

// Factory is the lookup surface for contract T.
//
// Each lookup first asks the resolver for the registration the caller named
// and, only if that is missing, retries once under the synthetic key. A
// lookup on a handle that was never armed fails with ErrNotInitialized and
// is not retried.
type Factory[T any] struct {
	h *Handle
}

// For returns the Factory of T that resolves through h.
func For[T any](h *Handle) Factory[T] {
	return Factory[T]{h: h}
}

// FactoryFrom returns the Factory of T that resolves through the Handle
// carried by ctx.
func FactoryFrom[T any](ctx context.Context) Factory[T] {
	return For[T](FromContext(ctx))
}

// GetInstance returns the unkeyed instance of T, falling back to the
// synthetic registration. It reports false if neither exists.
func (f Factory[T]) GetInstance() (T, bool, error) {
	v, ok, err := Resolve[T](f.h)
	if err != nil || ok {
		return v, ok, err
	}
	v, ok, err = ResolveKeyed[T](f.h, SyntheticKey)
	f.fellBack("GetInstance", "", ok, err)
	return v, ok, err
}

// GetRequiredInstance returns the unkeyed instance of T, falling back to
// the synthetic registration. It fails with ErrNotFound if neither exists.
func (f Factory[T]) GetRequiredInstance() (T, error) {
	v, err := ResolveRequired[T](f.h)
	if !errors.Is(err, ErrNotFound) {
		return v, err
	}
	fv, ferr := ResolveKeyedRequired[T](f.h, SyntheticKey)
	f.fellBack("GetRequiredInstance", "", ferr == nil, ferr)
	if errors.Is(ferr, ErrNotFound) {
		return v, err
	}
	return fv, ferr
}

// GetKeyedInstance returns the instance of T registered under key, falling
// back to the synthetic registration for key. It reports false if neither
// exists.
func (f Factory[T]) GetKeyedInstance(key string) (T, bool, error) {
	v, ok, err := ResolveKeyed[T](f.h, key)
	if err != nil || ok {
		return v, ok, err
	}
	v, ok, err = ResolveKeyed[T](f.h, SyntheticKeyFor(key))
	f.fellBack("GetKeyedInstance", key, ok, err)
	return v, ok, err
}

// GetRequiredKeyedInstance returns the instance of T registered under key,
// falling back to the synthetic registration for key. It fails with
// ErrNotFound if neither exists.
func (f Factory[T]) GetRequiredKeyedInstance(key string) (T, error) {
	v, err := ResolveKeyedRequired[T](f.h, key)
	if !errors.Is(err, ErrNotFound) {
		return v, err
	}
	fv, ferr := ResolveKeyedRequired[T](f.h, SyntheticKeyFor(key))
	f.fellBack("GetRequiredKeyedInstance", key, ferr == nil, ferr)
	if errors.Is(ferr, ErrNotFound) {
		return v, err
	}
	return fv, ferr
}

func (f Factory[T]) fellBack(op, key string, found bool, err error) {
	if errors.Is(err, ErrNotFound) {
		err = nil
	}
	f.h.log(&locatorevent.Fallback{
		Operation:    op,
		Contract:     locatorreflect.TypeName(TypeOf[T]()),
		Key:          key,
		SyntheticKey: SyntheticKeyFor(key),
		Found:        found,
		Err:          err,
	})
}
