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
	"go.uber.org/locator"
)

// TB is a subset of the standard library's testing.TB interface. It's
// satisfied by both *testing.T and *testing.B.
type TB interface {
	Errorf(string, ...interface{})
	FailNow()
}

// NewHandle returns a Handle armed with r.
func NewHandle(r locator.Resolver, opts ...locator.HandleOption) *locator.Handle {
	h := locator.NewHandle(opts...)
	h.Arm(r)
	return h
}

// MustDiscover calls locator.Discover, failing the test if it returns an
// error.
func MustDiscover(t TB, loader locator.Loader, registrar locator.Registrar, opts ...locator.DiscoverOption) locator.Report {
	report, err := locator.Discover(loader, registrar, opts...)
	if err != nil {
		t.Errorf("discovery failed: %v", err)
		t.FailNow()
	}
	return report
}

// Loader returns a Loader over units that offers no external candidates.
func Loader(units ...locator.Unit) locator.Loader {
	return staticLoader(units)
}

type staticLoader []locator.Unit

func (l staticLoader) Units() []locator.Unit { return append([]locator.Unit(nil), l...) }

func (staticLoader) Candidates() ([]string, error) { return nil, nil }

func (staticLoader) Load(path string) (locator.Unit, error) {
	return nil, &unknownUnitError{path: path}
}

type unknownUnitError struct{ path string }

func (e *unknownUnitError) Error() string { return "locatortest: no unit at " + e.path }
