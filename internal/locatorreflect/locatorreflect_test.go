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

package locatorreflect

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

type hollerer interface {
	Holler()
}

func someFunc() {}

func TestTypeName(t *testing.T) {
	assert.Equal(t, "<nil>", TypeName(nil))
	assert.Equal(t, "locatorreflect.hollerer", TypeName(reflect.TypeOf((*hollerer)(nil)).Elem()))
	assert.Equal(t, "*int", TypeName(reflect.TypeOf((*int)(nil))))
}

func TestFuncName(t *testing.T) {
	assert.Equal(t, "go.uber.org/locator/internal/locatorreflect.someFunc()", FuncName(someFunc))
	assert.Equal(t, "n/a", FuncName(struct{}{}))
	assert.Equal(t, "n/a", FuncName(nil))
}

func TestCaller(t *testing.T) {
	assert.Equal(t, "go.uber.org/locator/internal/locatorreflect.TestCaller", Caller())
}
