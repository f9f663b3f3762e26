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

import "go.uber.org/locator/locatorevent"

// LoggerOption is accepted by both Discover and NewHandle.
type LoggerOption interface {
	DiscoverOption
	HandleOption
}

// WithLogger sends the events of Discover or of a Handle to l.
func WithLogger(l locatorevent.Logger) LoggerOption {
	return loggerOption{l}
}

type loggerOption struct{ l locatorevent.Logger }

func (o loggerOption) applyDiscover(opts *discoverOptions) {
	if o.l != nil {
		opts.logger = o.l
	}
}

func (o loggerOption) applyHandle(h *Handle) {
	if o.l != nil {
		h.logger = o.l
	}
}

// IncludeExternal controls whether Discover loads the units the loader
// offers as candidates before scanning. It is off by default.
func IncludeExternal(include bool) DiscoverOption {
	return includeExternalOption(include)
}

type includeExternalOption bool

func (o includeExternalOption) applyDiscover(opts *discoverOptions) {
	opts.includeExternal = bool(o)
}
