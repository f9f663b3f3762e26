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
	"errors"
	"fmt"
	"log"

	"go.uber.org/locator"
	"go.uber.org/locator/locatordig"
)

type Greeter interface {
	Greet() string
}

type englishGreeter struct{}

func (*englishGreeter) Greet() string { return "hello" }

func Example() {
	unit := locator.NewUnit("greetings",
		locator.Contract[Greeter](),
		locator.Implement[*englishGreeter](locator.WithKey("english")),
	)

	container := locatordig.New()
	if _, err := locator.Discover(locator.NewLoader("", unit), container); err != nil {
		log.Fatal(err)
	}
	provider, err := container.Build()
	if err != nil {
		log.Fatal(err)
	}

	h := locator.NewHandle()
	h.Arm(provider)
	ctx := locator.NewContext(context.Background(), h)

	greeters := locator.FactoryFrom[Greeter](ctx)

	g, ok, err := greeters.GetInstance()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(ok, g.Greet())

	g, err = greeters.GetRequiredKeyedInstance("english")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(g.Greet())

	_, err = greeters.GetRequiredKeyedInstance("french")
	fmt.Println(errors.Is(err, locator.ErrNotFound))

	// Output:
	// true hello
	// hello
	// true
}
