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

package locatordig

import (
	"fmt"
	"reflect"

	"go.uber.org/locator"
)

var (
	_typeOfError reflect.Type = reflect.TypeOf((*error)(nil)).Elem()
	_nilError                 = reflect.Zero(_typeOfError)
)

// constructor builds a function that dig can call to produce impl as
// contract. The function takes the parameters of impl's constructor and
// returns (contract, error).
func constructor(contract reflect.Type, impl locator.Implementation) (reflect.Value, error) {
	if contract == nil {
		return reflect.Value{}, fmt.Errorf("contract type must not be nil")
	}
	if impl.Type == nil {
		return reflect.Value{}, fmt.Errorf("implementation of %v must have a type", contract)
	}
	if !impl.Type.AssignableTo(contract) {
		return reflect.Value{}, fmt.Errorf("%v does not implement %v", impl.Type, contract)
	}

	outTypes := []reflect.Type{contract, _typeOfError}

	if impl.Constructor == nil {
		t := impl.Type
		ft := reflect.FuncOf(nil, outTypes, false)
		return reflect.MakeFunc(ft, func([]reflect.Value) []reflect.Value {
			var inst reflect.Value
			if t.Kind() == reflect.Ptr {
				inst = reflect.New(t.Elem())
			} else {
				inst = reflect.New(t).Elem()
			}
			v := reflect.New(contract).Elem()
			v.Set(inst)
			return []reflect.Value{v, _nilError}
		}), nil
	}

	fn := reflect.ValueOf(impl.Constructor)
	ft := fn.Type()
	if ft.Kind() != reflect.Func {
		return reflect.Value{}, fmt.Errorf(
			"constructor of %v must be a function, got %v", impl.Type, ft)
	}
	switch {
	case ft.NumOut() == 1:
	case ft.NumOut() == 2 && ft.Out(1) == _typeOfError:
	default:
		return reflect.Value{}, fmt.Errorf(
			"constructor of %v must return a value, or a value and an error, got %v", impl.Type, ft)
	}
	if !ft.Out(0).AssignableTo(contract) {
		return reflect.Value{}, fmt.Errorf(
			"constructor of %v returns %v, which does not implement %v", impl.Type, ft.Out(0), contract)
	}

	inTypes := make([]reflect.Type, ft.NumIn())
	for i := range inTypes {
		inTypes[i] = ft.In(i)
	}
	newFt := reflect.FuncOf(inTypes, outTypes, ft.IsVariadic())
	return reflect.MakeFunc(newFt, func(args []reflect.Value) []reflect.Value {
		var results []reflect.Value
		if ft.IsVariadic() {
			results = fn.CallSlice(args)
		} else {
			results = fn.Call(args)
		}

		v := reflect.New(contract).Elem()
		if len(results) == 2 && !results[1].IsNil() {
			return []reflect.Value{v, results[1]}
		}
		if isNil(results[0]) {
			return []reflect.Value{v, reflect.ValueOf(
				fmt.Errorf("constructor of %v returned nil", impl.Type),
			).Convert(_typeOfError)}
		}
		v.Set(results[0])
		return []reflect.Value{v, _nilError}
	}), nil
}

func isNil(v reflect.Value) bool {
	if !v.IsValid() {
		return true
	}
	switch v.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Ptr, reflect.Slice:
		return v.IsNil()
	}
	return false
}
