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
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/locator"
	"go.uber.org/locator/internal/locatorlog"
	"go.uber.org/locator/locatorevent"
	"go.uber.org/locator/locatortest"
)

func TestHandleUnarmed(t *testing.T) {
	handles := map[string]*locator.Handle{
		"new":       locator.NewHandle(),
		"nil":       nil,
		"armed nil": locatortest.NewHandle(nil),
		"empty ctx": locator.FromContext(context.Background()),
	}

	for name, h := range handles {
		t.Run(name, func(t *testing.T) {
			assert.False(t, h.Armed())

			_, err := h.Resolver()
			assert.ErrorIs(t, err, locator.ErrNotInitialized)

			_, _, err = locator.Resolve[IExample](h)
			assert.ErrorIs(t, err, locator.ErrNotInitialized)
			_, _, err = locator.ResolveKeyed[IExample](h, "K")
			assert.ErrorIs(t, err, locator.ErrNotInitialized)
			_, err = locator.ResolveRequired[IExample](h)
			assert.ErrorIs(t, err, locator.ErrNotInitialized)
			_, err = locator.ResolveKeyedRequired[IExample](h, "K")
			assert.ErrorIs(t, err, locator.ErrNotInitialized)

			f := locator.For[IExample](h)
			_, _, err = f.GetInstance()
			assert.ErrorIs(t, err, locator.ErrNotInitialized)
			_, err = f.GetRequiredInstance()
			assert.ErrorIs(t, err, locator.ErrNotInitialized)
			_, _, err = f.GetKeyedInstance("K")
			assert.ErrorIs(t, err, locator.ErrNotInitialized)
			_, err = f.GetRequiredKeyedInstance("K")
			assert.ErrorIs(t, err, locator.ErrNotInitialized)
		})
	}
}

func TestHandleArm(t *testing.T) {
	spy := &locatorlog.Spy{}
	h := locator.NewHandle(locator.WithLogger(spy))
	r := locatortest.Set[IExample](locatortest.NewResolver(), "", &MyExample{})

	h.Arm(r)
	require.True(t, h.Armed())

	got, err := h.Resolver()
	require.NoError(t, err)
	assert.Same(t, r, got)

	events := spy.Events()
	require.Len(t, events, 1)
	armed, ok := events[0].(*locatorevent.Armed)
	require.True(t, ok)
	assert.Equal(t, "*locatortest.Resolver", armed.Resolver)
	assert.Equal(t, "go.uber.org/locator_test.TestHandleArm", armed.CallerName)

	t.Run("disarm", func(t *testing.T) {
		h.Arm(nil)
		assert.False(t, h.Armed())
		assert.Len(t, spy.Events(), 1, "arming with nil logs nothing")
	})
}

func TestHandleContext(t *testing.T) {
	h := locatortest.NewHandle(
		locatortest.Set[IExample](locatortest.NewResolver(), "", &MyExample{}))
	ctx := locator.NewContext(context.Background(), h)

	assert.Same(t, h, locator.FromContext(ctx))

	v, err := locator.FactoryFrom[IExample](ctx).GetRequiredInstance()
	require.NoError(t, err)
	assert.Equal(t, "MyExample", v.Name())
}

func TestResolveRequiredMissing(t *testing.T) {
	r := locatortest.NewResolver()
	locatortest.Set[IExample](r, "", &MyExample{})
	h := locatortest.NewHandle(r)

	v, ok, err := locator.Resolve[IExample](h)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.IsType(t, &MyExample{}, v)

	_, err = locator.ResolveRequired[ICloser](h)
	assert.ErrorIs(t, err, locator.ErrNotFound)

	var nf *locator.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, locator.TypeOf[ICloser](), nf.Type)
	assert.Empty(t, nf.Key)
}
