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

package locator_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/locator"
	"go.uber.org/locator/internal/locatorlog"
	"go.uber.org/locator/locatortest"
	"go.uber.org/multierr"
)

var (
	_exampleType = locator.TypeOf[IExample]()
	_closerType  = locator.TypeOf[ICloser]()
	_myType      = locator.TypeOf[*MyExample]()
	_otherType   = locator.TypeOf[*OtherExample]()
	_bothType    = locator.TypeOf[*Both]()
)

func discover(t *testing.T, units ...locator.Unit) (*locatortest.Recorder, locator.Report) {
	t.Helper()
	rec := &locatortest.Recorder{}
	report := locatortest.MustDiscover(t, locatortest.Loader(units...), rec)
	return rec, report
}

func TestDiscoverRegistrationsPerPair(t *testing.T) {
	tests := []struct {
		name string
		give locator.TypeInfo
		want []locator.Descriptor
	}{
		{
			name: "unmarked is scoped with synthetic copy",
			give: locator.Implement[*MyExample](),
			want: []locator.Descriptor{
				{Contract: _exampleType, Lifetime: locator.Scoped},
				{Contract: _exampleType, Lifetime: locator.Transient, Key: locator.SyntheticKey, Synthetic: true},
			},
		},
		{
			name: "keyed scoped",
			give: locator.Implement[*MyExample](locator.WithKey("K")),
			want: []locator.Descriptor{
				{Contract: _exampleType, Lifetime: locator.Scoped, Key: "K"},
				{Contract: _exampleType, Lifetime: locator.Transient, Key: locator.SyntheticKeyFor("K"), Synthetic: true},
			},
		},
		{
			name: "singleton",
			give: locator.Implement[*MyExample](locator.WithLifetime(locator.Singleton)),
			want: []locator.Descriptor{
				{Contract: _exampleType, Lifetime: locator.Singleton},
			},
		},
		{
			name: "keyed transient",
			give: locator.Implement[*MyExample](locator.WithLifetime(locator.Transient), locator.WithKey("K")),
			want: []locator.Descriptor{
				{Contract: _exampleType, Lifetime: locator.Transient, Key: "K"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, report := discover(t, locator.NewUnit("a",
				locator.Contract[IExample](),
				tt.give,
				// Keeps the contract from being singly implemented.
				locator.Implement[*OtherExample](locator.WithLifetime(locator.Singleton), locator.WithKey("other")),
			))

			got := rec.Pair(_exampleType, _myType)
			require.Len(t, got, len(tt.want))
			for i := range got {
				assert.Equal(t, _myType, got[i].Implementation.Type)
				got[i].Implementation = locator.Implementation{}
			}
			assert.Equal(t, tt.want, got)
			assert.Equal(t, len(rec.Descriptors()), report.Registrations)
			assert.Equal(t, 1, report.Units)
			assert.NoError(t, report.Skipped)
		})
	}
}

func TestDiscoverIgnoresOtherMarkers(t *testing.T) {
	rec, report := discover(t, locator.NewUnit("a",
		locator.Marked[IMarkedForOther, IExample](),
		locator.Implement[*MyExample](),
	))
	assert.Empty(t, rec.Descriptors(), "an interface marked for another type is not a contract")
	assert.Zero(t, report.Registrations)
}

func TestDiscoverIgnoreMarker(t *testing.T) {
	rec, _ := discover(t, locator.NewUnit("a",
		locator.Contract[IExample](),
		locator.Implement[*MyExample](locator.Ignore()),
		locator.Implement[*OtherExample](locator.Abstract()),
		locator.Implement[*Both](locator.Generic()),
	))
	assert.Empty(t, rec.Descriptors())
}

func TestDiscoverNoEligibleInterfaces(t *testing.T) {
	rec, _ := discover(t, locator.NewUnit("a",
		locator.Contract[IExample](),
		locator.Implement[plain](),
		locator.Implement[MyExample](),
	))
	assert.Empty(t, rec.Descriptors())
}

func TestDiscoverOnePerContract(t *testing.T) {
	rec, _ := discover(t, locator.NewUnit("a",
		locator.Contract[IExample](),
		locator.Contract[ICloser](),
		locator.Implement[*Both](locator.WithLifetime(locator.Singleton)),
	))

	assert.Equal(t, []locator.Descriptor{
		{Contract: _exampleType, Implementation: locator.Implementation{Type: _bothType}, Lifetime: locator.Singleton},
		{Contract: _closerType, Implementation: locator.Implementation{Type: _bothType}, Lifetime: locator.Singleton},
	}, rec.Descriptors())
}

func TestDiscoverContractsAcrossUnits(t *testing.T) {
	rec, report := discover(t,
		locator.NewUnit("impls", locator.Implement[*MyExample](locator.WithLifetime(locator.Singleton))),
		locator.NewUnit("contracts", locator.Contract[IExample](), locator.Contract[IExample]()),
	)
	assert.Equal(t, 2, report.Units)
	assert.Len(t, rec.For(_exampleType), 1, "duplicate contract declarations count once")
}

func TestDiscoverDoesNotDeduplicate(t *testing.T) {
	rec, _ := discover(t,
		locator.NewUnit("a", locator.Contract[IExample](), locator.Implement[*MyExample](locator.WithLifetime(locator.Singleton))),
		locator.NewUnit("b", locator.Implement[*MyExample](locator.WithLifetime(locator.Singleton))),
	)
	assert.Len(t, rec.Pair(_exampleType, _myType), 2)
}

func TestDiscoverSyntheticAlias(t *testing.T) {
	t.Run("sole keyed scoped implementation", func(t *testing.T) {
		rec, _ := discover(t, locator.NewUnit("a",
			locator.Contract[IExample](),
			locator.Implement[*MyExample](locator.WithKey("K")),
		))

		var keys []string
		for _, d := range rec.For(_exampleType) {
			keys = append(keys, d.Key)
		}
		assert.Equal(t, []string{"K", locator.SyntheticKeyFor("K"), locator.SyntheticKey}, keys)
	})

	t.Run("several implementations", func(t *testing.T) {
		rec, _ := discover(t, locator.NewUnit("a",
			locator.Contract[IExample](),
			locator.Implement[*MyExample](locator.WithKey("K")),
			locator.Implement[*OtherExample](locator.WithKey("L")),
		))
		for _, d := range rec.For(_exampleType) {
			assert.NotEqual(t, locator.SyntheticKey, d.Key)
		}
		assert.Len(t, rec.Descriptors(), 4)
	})

	t.Run("sole keyed singleton", func(t *testing.T) {
		rec, _ := discover(t, locator.NewUnit("a",
			locator.Contract[IExample](),
			locator.Implement[*MyExample](locator.WithKey("K"), locator.WithLifetime(locator.Singleton)),
		))
		assert.Len(t, rec.Descriptors(), 1)
	})
}

func TestDiscoverSkipsBrokenUnits(t *testing.T) {
	broken := errors.New("missing dependency")
	spy := &locatorlog.Spy{}
	rec := &locatortest.Recorder{}

	report, err := locator.Discover(locatortest.Loader(
		locator.UnitFunc("broken", func() ([]locator.TypeInfo, error) {
			return []locator.TypeInfo{locator.Contract[ICloser](), locator.Implement[*Both]()}, broken
		}),
		locator.UnitFunc("panicky", func() ([]locator.TypeInfo, error) {
			panic("type load failure")
		}),
		locator.NewUnit("healthy",
			locator.Contract[IExample](),
			locator.Implement[*MyExample](locator.WithLifetime(locator.Singleton)),
		),
	), rec, locator.WithLogger(spy))
	require.NoError(t, err)

	assert.Equal(t, 1, report.Units)
	assert.Equal(t, 1, report.Registrations)
	assert.Len(t, rec.Pair(_exampleType, _myType), 1)
	assert.Empty(t, rec.For(_closerType), "types of a failed unit are skipped")

	skipped := multierr.Errors(report.Skipped)
	require.Len(t, skipped, 2)
	assert.ErrorIs(t, skipped[0], broken)
	assert.Contains(t, skipped[1].Error(), "type load failure")

	assert.Equal(t, []string{
		"UnitScanned", "UnitScanned", "UnitScanned", "Registered", "Discovered",
	}, spy.EventTypes())
}

type fakeLoader struct {
	units      []locator.Unit
	candidates []string
	available  map[string]locator.Unit
	listErr    error
}

func (l *fakeLoader) Units() []locator.Unit { return l.units }

func (l *fakeLoader) Candidates() ([]string, error) { return l.candidates, l.listErr }

func (l *fakeLoader) Load(path string) (locator.Unit, error) {
	u, ok := l.available[path]
	if !ok {
		return nil, errors.New("not a plugin")
	}
	l.units = append(l.units, u)
	return u, nil
}

func TestDiscoverIncludeExternal(t *testing.T) {
	newLoader := func() *fakeLoader {
		return &fakeLoader{
			units:      []locator.Unit{locator.NewUnit("builtin", locator.Contract[IExample]())},
			candidates: []string{"/app/README.so", "/app/mine.so"},
			available: map[string]locator.Unit{
				"/app/mine.so": locator.NewUnit("/app/mine.so",
					locator.Implement[*MyExample](locator.WithLifetime(locator.Singleton))),
			},
		}
	}

	t.Run("excluded by default", func(t *testing.T) {
		rec := &locatortest.Recorder{}
		report, err := locator.Discover(newLoader(), rec)
		require.NoError(t, err)
		assert.Empty(t, rec.Descriptors())
		assert.Equal(t, 1, report.Units)
	})

	t.Run("included", func(t *testing.T) {
		rec := &locatortest.Recorder{}
		spy := &locatorlog.Spy{}
		report, err := locator.Discover(newLoader(), rec, locator.IncludeExternal(true), locator.WithLogger(spy))
		require.NoError(t, err)

		assert.Len(t, rec.Pair(_exampleType, _myType), 1)
		assert.Equal(t, 2, report.Units)
		assert.Len(t, multierr.Errors(report.Skipped), 1, "unloadable candidate is skipped")
		assert.Equal(t, []string{
			"UnitLoaded", "UnitLoaded", "UnitScanned", "UnitScanned", "Registered", "Discovered",
		}, spy.EventTypes())
	})

	t.Run("listing fails", func(t *testing.T) {
		l := newLoader()
		l.listErr = errors.New("permission denied")
		rec := &locatortest.Recorder{}
		report, err := locator.Discover(l, rec, locator.IncludeExternal(true))
		require.NoError(t, err)
		assert.ErrorIs(t, report.Skipped, l.listErr)
		assert.Equal(t, 1, report.Units)
	})
}

func TestDiscoverErrors(t *testing.T) {
	t.Run("reserved key", func(t *testing.T) {
		rec := &locatortest.Recorder{}
		_, err := locator.Discover(locatortest.Loader(locator.NewUnit("a",
			locator.Contract[IExample](),
			locator.Implement[*OtherExample](),
			locator.Implement[*MyExample](locator.WithKey(locator.SyntheticKeyFor("x"))),
		)), rec)
		assert.ErrorIs(t, err, locator.ErrReservedKey)
		assert.Empty(t, rec.Descriptors(), "nothing is registered when a key is reserved")
	})

	t.Run("invalid lifetime", func(t *testing.T) {
		_, err := locator.Discover(locatortest.Loader(locator.NewUnit("a",
			locator.Contract[IExample](),
			locator.Implement[*MyExample](locator.WithLifetime(locator.Lifetime(9))),
		)), &locatortest.Recorder{})
		assert.ErrorIs(t, err, locator.ErrInvalidLifetime)
	})

	t.Run("registrar failure", func(t *testing.T) {
		failed := errors.New("great sadness")
		rec := &locatortest.Recorder{Err: failed}
		spy := &locatorlog.Spy{}
		report, err := locator.Discover(locatortest.Loader(locator.NewUnit("a",
			locator.Contract[IExample](),
			locator.Implement[*MyExample](),
		)), rec, locator.WithLogger(spy))
		assert.ErrorIs(t, err, failed)
		assert.Len(t, rec.Descriptors(), 1, "discovery stops at the first failure")
		assert.Zero(t, report.Registrations)

		registered := spy.Registered()
		require.Len(t, registered, 1)
		assert.ErrorIs(t, registered[0].Err, failed)
	})

	t.Run("no registrar", func(t *testing.T) {
		_, err := locator.Discover(locatortest.Loader(), nil)
		assert.ErrorIs(t, err, locator.ErrNotInitialized)
	})

	t.Run("no loader", func(t *testing.T) {
		_, err := locator.Discover(nil, &locatortest.Recorder{})
		assert.Error(t, err)
	})
}
