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
	"bufio"
	"fmt"
	"io"
	"reflect"

	"go.uber.org/dig"
)

// Visualize writes the bindings of c and the parameters of their
// constructors to w as a DOT graph. Parameters that no binding satisfies
// are drawn dashed; they come from the dig container.
func (c *Container) Visualize(w io.Writer) error {
	if c == nil || c.dig == nil {
		return errNotBuilt()
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "digraph {")
	fmt.Fprintln(bw, "\trankdir=RL;")
	fmt.Fprintln(bw, "\tgraph [compound=true];")

	external := make(map[string]struct{})
	for _, k := range c.order {
		b := c.bindings[k]
		fmt.Fprintf(bw, "\t%q [shape=box label=%q];\n",
			k.String(), fmt.Sprintf("%v\n%v\n%v", k, b.impl.Type, b.lifetime))

		for _, dep := range c.params(b.ctor.Type()) {
			if _, ok := c.bindings[dep]; !ok {
				if _, seen := external[dep.String()]; !seen {
					external[dep.String()] = struct{}{}
					fmt.Fprintf(bw, "\t%q [style=dashed];\n", dep.String())
				}
			}
			fmt.Fprintf(bw, "\t%q -> %q;\n", k.String(), dep.String())
		}
	}
	fmt.Fprintln(bw, "}")
	return bw.Flush()
}

// params lists the dependencies of a constructor of type ft, expanding
// dig.In structs.
func (c *Container) params(ft reflect.Type) []bindingKey {
	var deps []bindingKey
	var add func(t reflect.Type, tag reflect.StructTag)
	add = func(t reflect.Type, tag reflect.StructTag) {
		if dig.IsIn(t) {
			for i := 0; i < t.NumField(); i++ {
				if f := t.Field(i); !(f.Anonymous && f.Type == _inType) && f.PkgPath == "" {
					add(f.Type, f.Tag)
				}
			}
			return
		}
		deps = append(deps, bindingKey{contract: t, key: tag.Get("name")})
	}
	for i := 0; i < ft.NumIn(); i++ {
		if ft.IsVariadic() && i == ft.NumIn()-1 {
			continue
		}
		add(ft.In(i), "")
	}
	return deps
}
