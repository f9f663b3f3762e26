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
	"strings"

	"go.uber.org/locator/internal/locatorreflect"
)

// TypeInfo is the metadata discovery needs about a single type. Units
// describe their types with TypeInfo values, usually built with Contract and
// Implement.
type TypeInfo struct {
	// Type is the described type.
	Type reflect.Type

	// FactoryOf is the type argument of the factory marker carried by an
	// interface, or nil when the type carries no marker. An interface is a
	// contract only when FactoryOf is the interface itself.
	FactoryOf reflect.Type

	// Abstract types are never instantiated, even when they would otherwise
	// satisfy a contract.
	Abstract bool

	// Generic marks an uninstantiated generic definition.
	Generic bool

	// Ignore excludes the type from discovery.
	Ignore bool

	// Registration is the registration marker of an implementation. A nil
	// Registration means Scoped without a key.
	Registration *Registration

	// Constructor optionally builds instances of Type. It must be a
	// function returning Type, or Type and an error. Its parameters are
	// supplied by the container.
	Constructor interface{}
}

// Registration is the marker an implementation carries to control how it is
// registered.
type Registration struct {
	Lifetime Lifetime

	// Key distinguishes one of several implementations of the same
	// contract. An empty Key registers the implementation without a key.
	Key string
}

// Implementation is what a Registrar receives for the implementing side of
// a registration.
type Implementation struct {
	Type        reflect.Type
	Constructor interface{}
}

func (t TypeInfo) String() string {
	var b strings.Builder
	b.WriteString(locatorreflect.TypeName(t.Type))
	var flags []string
	if t.FactoryOf != nil {
		flags = append(flags, fmt.Sprintf("factory of %v", locatorreflect.TypeName(t.FactoryOf)))
	}
	if t.Abstract {
		flags = append(flags, "abstract")
	}
	if t.Generic {
		flags = append(flags, "generic")
	}
	if t.Ignore {
		flags = append(flags, "ignored")
	}
	if r := t.Registration; r != nil {
		if r.Key != "" {
			flags = append(flags, fmt.Sprintf("%v %q", r.Lifetime, r.Key))
		} else {
			flags = append(flags, r.Lifetime.String())
		}
	}
	if len(flags) > 0 {
		fmt.Fprintf(&b, " (%s)", strings.Join(flags, ", "))
	}
	return b.String()
}

// Implementation returns the implementing side of a registration of t.
func (t TypeInfo) Implementation() Implementation {
	return Implementation{Type: t.Type, Constructor: t.Constructor}
}

// TypeOption configures a TypeInfo built by Contract, Marked or Implement.
type TypeOption interface {
	apply(*TypeInfo)
}

type typeOptionFunc func(*TypeInfo)

func (f typeOptionFunc) apply(t *TypeInfo) { f(t) }

// WithLifetime sets the lifetime of an implementation.
func WithLifetime(l Lifetime) TypeOption {
	return typeOptionFunc(func(t *TypeInfo) {
		t.registration().Lifetime = l
	})
}

// WithKey registers an implementation under key.
func WithKey(key string) TypeOption {
	return typeOptionFunc(func(t *TypeInfo) {
		t.registration().Key = key
	})
}

// WithConstructor sets the function used to build instances of an
// implementation.
//
//	locator.Implement[*Mailer](locator.WithConstructor(NewMailer))
func WithConstructor(ctor interface{}) TypeOption {
	return typeOptionFunc(func(t *TypeInfo) {
		t.Constructor = ctor
	})
}

// Ignore excludes a type from discovery.
func Ignore() TypeOption {
	return typeOptionFunc(func(t *TypeInfo) {
		t.Ignore = true
	})
}

// Abstract marks a type that must never be instantiated.
func Abstract() TypeOption {
	return typeOptionFunc(func(t *TypeInfo) {
		t.Abstract = true
	})
}

// Generic marks an uninstantiated generic definition.
func Generic() TypeOption {
	return typeOptionFunc(func(t *TypeInfo) {
		t.Generic = true
	})
}

func (t *TypeInfo) registration() *Registration {
	if t.Registration == nil {
		t.Registration = &Registration{}
	}
	return t.Registration
}

// TypeOf returns the reflect.Type of T. Unlike reflect.TypeOf it works for
// interface types.
func TypeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// Contract describes interface I as a contract: I carries the factory marker
// bound to itself.
//
//	type Mailer interface {
//		Send(to, body string) error
//	}
//
//	locator.Contract[Mailer]()
func Contract[I any](opts ...TypeOption) TypeInfo {
	return Marked[I, I](opts...)
}

// Marked describes type I carrying the factory marker bound to T. It is a
// contract only when I and T are the same interface; Contract is the
// shorthand for that case.
func Marked[I, T any](opts ...TypeOption) TypeInfo {
	return newTypeInfo(TypeOf[I](), TypeOf[T](), opts)
}

// Implement describes T as a candidate implementation.
//
//	locator.Implement[*smtpMailer](
//		locator.WithLifetime(locator.Singleton),
//		locator.WithKey("smtp"),
//		locator.WithConstructor(newSMTPMailer),
//	)
func Implement[T any](opts ...TypeOption) TypeInfo {
	return newTypeInfo(TypeOf[T](), nil, opts)
}

func newTypeInfo(t, factoryOf reflect.Type, opts []TypeOption) TypeInfo {
	info := TypeInfo{Type: t, FactoryOf: factoryOf}
	for _, opt := range opts {
		opt.apply(&info)
	}
	return info
}
