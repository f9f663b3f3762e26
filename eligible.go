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

import "reflect"

// IsContract reports whether t describes a contract: an interface carrying
// the factory marker bound to itself. An interface marked as the factory of
// some other type is not a contract.
func IsContract(t TypeInfo) bool {
	return t.Type != nil &&
		t.Type.Kind() == reflect.Interface &&
		t.FactoryOf == t.Type
}

// IsConcrete reports whether t describes a type discovery may register as
// an implementation: not an interface, not abstract, not an uninstantiated
// generic definition, and not ignored.
func IsConcrete(t TypeInfo) bool {
	return t.Type != nil &&
		t.Type.Kind() != reflect.Interface &&
		!t.Abstract &&
		!t.Generic &&
		!t.Ignore
}

// ContractsOf returns, in order, the contracts among contracts that impl
// implements. It returns nil if impl is not concrete.
func ContractsOf(impl TypeInfo, contracts []reflect.Type) []reflect.Type {
	if !IsConcrete(impl) {
		return nil
	}
	var out []reflect.Type
	for _, c := range contracts {
		if impl.Type.Implements(c) {
			out = append(out, c)
		}
	}
	return out
}

// RegistrationOf returns the registration marker of t, or the default
// registration (Scoped, no key) if t carries none.
func RegistrationOf(t TypeInfo) Registration {
	if t.Registration == nil {
		return Registration{Lifetime: Scoped}
	}
	return *t.Registration
}
