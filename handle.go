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
	"fmt"

	"go.uber.org/locator/internal/locatorreflect"
	"go.uber.org/locator/locatorevent"
)

// Handle holds the Resolver that Factory lookups go through.
//
// The host creates a Handle during startup and arms it once the container
// is built. Arming must happen before any concurrent lookup; Handle does
// no locking of its own.
//
//	h := locator.NewHandle()
//	h.Arm(provider)
//	ctx = locator.NewContext(ctx, h)
type Handle struct {
	resolver Resolver
	logger   locatorevent.Logger
}

// HandleOption configures a Handle.
type HandleOption interface {
	applyHandle(*Handle)
}

// NewHandle builds an unarmed Handle.
func NewHandle(opts ...HandleOption) *Handle {
	h := &Handle{logger: locatorevent.NopLogger}
	for _, opt := range opts {
		opt.applyHandle(h)
	}
	return h
}

// Arm sets the resolver used by lookups through h, replacing any resolver
// set before. Arming with a nil resolver leaves h unarmed.
func (h *Handle) Arm(r Resolver) {
	h.resolver = r
	if r != nil {
		h.log(&locatorevent.Armed{
			Resolver:   fmt.Sprintf("%T", r),
			CallerName: locatorreflect.Caller(),
		})
	}
}

// Armed reports whether h holds a resolver.
func (h *Handle) Armed() bool {
	return h != nil && h.resolver != nil
}

// Resolver returns the resolver h was armed with. It fails with
// ErrNotInitialized if h is nil or was never armed.
func (h *Handle) Resolver() (Resolver, error) {
	if !h.Armed() {
		return nil, fmt.Errorf("%w: resolution handle is not armed", ErrNotInitialized)
	}
	return h.resolver, nil
}

func (h *Handle) log(e locatorevent.Event) {
	if h != nil && h.logger != nil {
		h.logger.LogEvent(e)
	}
}

type handleKey struct{}

// NewContext returns a copy of ctx carrying h.
func NewContext(ctx context.Context, h *Handle) context.Context {
	return context.WithValue(ctx, handleKey{}, h)
}

// FromContext returns the Handle carried by ctx, or nil. Lookups through a
// nil Handle fail with ErrNotInitialized.
func FromContext(ctx context.Context) *Handle {
	h, _ := ctx.Value(handleKey{}).(*Handle)
	return h
}
