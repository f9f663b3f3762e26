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
	"reflect"
)

// Registrar is the registration side of a container adapter. Discover
// hands every registration it derives to a Registrar.
type Registrar interface {
	// Register binds contract to impl without a key. It behaves like
	// RegisterKeyed with an empty key.
	Register(contract reflect.Type, impl Implementation, lifetime Lifetime) error

	// RegisterKeyed binds contract to impl under key. An empty key
	// registers without a key.
	//
	// Implementations return an error matching ErrInvalidLifetime for an
	// unknown lifetime and ErrNotInitialized when their registration
	// surface does not exist.
	RegisterKeyed(contract reflect.Type, impl Implementation, lifetime Lifetime, key string) error
}

// Resolver is the lookup side of a container adapter.
//
// The optional lookups report a missing registration with a false second
// result. The required lookups report it with an error matching
// ErrNotFound.
type Resolver interface {
	Resolve(t reflect.Type) (interface{}, bool, error)
	ResolveKeyed(t reflect.Type, key string) (interface{}, bool, error)
	ResolveRequired(t reflect.Type) (interface{}, error)
	ResolveKeyedRequired(t reflect.Type, key string) (interface{}, error)
}

// Resolve looks up the unkeyed registration of T through the resolver
// armed on h. It reports false if there is none.
func Resolve[T any](h *Handle) (T, bool, error) {
	r, err := h.Resolver()
	if err != nil {
		var zero T
		return zero, false, err
	}
	v, ok, err := r.Resolve(TypeOf[T]())
	return optional[T](v, ok, err)
}

// ResolveKeyed looks up the registration of T under key through the
// resolver armed on h. It reports false if there is none.
func ResolveKeyed[T any](h *Handle, key string) (T, bool, error) {
	r, err := h.Resolver()
	if err != nil {
		var zero T
		return zero, false, err
	}
	v, ok, err := r.ResolveKeyed(TypeOf[T](), key)
	return optional[T](v, ok, err)
}

// ResolveRequired looks up the unkeyed registration of T through the
// resolver armed on h, failing with ErrNotFound if there is none.
func ResolveRequired[T any](h *Handle) (T, error) {
	r, err := h.Resolver()
	if err != nil {
		var zero T
		return zero, err
	}
	v, err := r.ResolveRequired(TypeOf[T]())
	return required[T](v, err, "")
}

// ResolveKeyedRequired looks up the registration of T under key through the
// resolver armed on h, failing with ErrNotFound if there is none.
func ResolveKeyedRequired[T any](h *Handle, key string) (T, error) {
	r, err := h.Resolver()
	if err != nil {
		var zero T
		return zero, err
	}
	v, err := r.ResolveKeyedRequired(TypeOf[T](), key)
	return required[T](v, err, key)
}

func optional[T any](v interface{}, ok bool, err error) (T, bool, error) {
	var zero T
	if err != nil || !ok || v == nil {
		return zero, false, err
	}
	t, err := cast[T](v)
	if err != nil {
		return zero, false, err
	}
	return t, true, nil
}

func required[T any](v interface{}, err error, key string) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	if v == nil {
		return zero, &NotFoundError{Type: TypeOf[T](), Key: key}
	}
	return cast[T](v)
}

func cast[T any](v interface{}) (T, error) {
	t, ok := v.(T)
	if !ok {
		return t, fmt.Errorf("locator: resolved %T is not a %v", v, TypeOf[T]())
	}
	return t, nil
}
