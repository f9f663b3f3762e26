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

// Package locator finds the implementations of contract interfaces,
// registers them with a dependency injection container, and looks them up
// again through a single generic surface.
//
// # Contracts and implementations
//
// A contract is an interface that carries the factory marker bound to
// itself. Units describe their types, and mark contracts, with TypeInfo
// values:
//
//	type Greeter interface {
//		Greet(name string) string
//	}
//
//	type englishGreeter struct{}
//
//	func (englishGreeter) Greet(name string) string { return "Hello, " + name }
//
//	var Unit = locator.NewUnit("greet",
//		locator.Contract[Greeter](),
//		locator.Implement[englishGreeter](locator.WithKey("en")),
//	)
//
// # Discovery
//
// Discover walks the units of a Loader, pairs every concrete type with each
// contract it implements and hands the registrations to a Registrar, such
// as the dig adapter in package locatordig:
//
//	c := locatordig.New()
//	report, err := locator.Discover(locator.NewLoader("", greet.Unit), c)
//
// Implementations without a registration marker are Scoped and unkeyed.
// Every Scoped implementation is registered a second time, as Transient,
// under a reserved synthetic key.
//
// # Lookups
//
// Once the container is built, arm a Handle with its Resolver and look
// contracts up with Factory:
//
//	provider, err := c.Build()
//	h := locator.NewHandle()
//	h.Arm(provider)
//
//	g, err := locator.For[Greeter](h).GetRequiredKeyedInstance("en")
//
// Lookups that miss are retried once under the synthetic key, so a caller
// that does not know whether a contract was registered with a key still
// finds its only implementation.
package locator
