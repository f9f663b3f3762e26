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
	"strings"
	"sync"

	"go.uber.org/dig"
	"go.uber.org/locator"
)

var (
	_inType = reflect.TypeOf(dig.In{})

	// field used for embedding dig.In in generated param structs.
	_inField = reflect.StructField{
		Name:      "In",
		Type:      _inType,
		Anonymous: true,
	}
)

// Provider resolves registrations from one scope of a built Container.
// Providers are safe for concurrent use.
type Provider struct {
	c    *Container
	root *Provider
	name string

	mu        sync.Mutex // guards instances
	instances map[bindingKey]*instance
}

var _ locator.Resolver = (*Provider)(nil)

func newProvider(c *Container, name string, root *Provider) *Provider {
	p := &Provider{
		c:         c,
		root:      root,
		name:      name,
		instances: make(map[bindingKey]*instance),
	}
	if p.root == nil {
		p.root = p
	}
	return p
}

func errNoProvider() error {
	return fmt.Errorf("%w: Provider must come from Container.Build", locator.ErrNotInitialized)
}

// Name returns the name of the scope p resolves from.
func (p *Provider) Name() string { return p.name }

// Scope opens a new scope with its own instances of the Scoped bindings.
// Singletons are shared with every other scope.
func (p *Provider) Scope(name string) (*Provider, error) {
	if p == nil || p.c == nil {
		return nil, errNoProvider()
	}
	return newProvider(p.c, name, p.root), nil
}

// Invoke calls fn with its parameters supplied from p's scope, the way
// constructor parameters are. It returns the error fn returns, if any.
func (p *Provider) Invoke(fn interface{}) error {
	if p == nil || p.c == nil {
		return errNoProvider()
	}
	fv := reflect.ValueOf(fn)
	if fv.Kind() != reflect.Func {
		return fmt.Errorf("can't invoke non-function %v (type %T)", fn, fn)
	}
	out, err := p.call(fv, nil)
	if err != nil {
		return err
	}
	if n := len(out); n > 0 && out[n-1].Type() == _typeOfError && !out[n-1].IsNil() {
		return out[n-1].Interface().(error)
	}
	return nil
}

// Resolve returns the unkeyed instance of t, if there is one.
func (p *Provider) Resolve(t reflect.Type) (interface{}, bool, error) {
	return p.lookup(t, "")
}

// ResolveKeyed returns the instance of t registered under key, if there is
// one.
func (p *Provider) ResolveKeyed(t reflect.Type, key string) (interface{}, bool, error) {
	return p.lookup(t, key)
}

// ResolveRequired returns the unkeyed instance of t, failing with
// locator.ErrNotFound if there is none.
func (p *Provider) ResolveRequired(t reflect.Type) (interface{}, error) {
	return p.require(t, "")
}

// ResolveKeyedRequired returns the instance of t registered under key,
// failing with locator.ErrNotFound if there is none.
func (p *Provider) ResolveKeyedRequired(t reflect.Type, key string) (interface{}, error) {
	return p.require(t, key)
}

func (p *Provider) require(t reflect.Type, key string) (interface{}, error) {
	v, ok, err := p.lookup(t, key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &locator.NotFoundError{Type: t, Key: key}
	}
	return v, nil
}

// lookup resolves a binding of (t, key), or failing that an optional value
// provided to dig. Errors building a binding are returned as is; only a
// missing binding reports false.
func (p *Provider) lookup(t reflect.Type, key string) (interface{}, bool, error) {
	if p == nil || p.c == nil {
		return nil, false, errNoProvider()
	}
	if t == nil {
		return nil, false, fmt.Errorf("cannot resolve a nil type")
	}

	if b, ok := p.c.binding(bindingKey{contract: t, key: key}); ok {
		v, err := p.resolve(b, nil)
		if err != nil {
			return nil, false, err
		}
		return v.Interface(), true, nil
	}

	tag := `optional:"true"`
	if key != "" {
		tag = fmt.Sprintf(`name:%q optional:"true"`, key)
	}
	v, err := p.c.fromDig(t, reflect.StructTag(tag))
	if err != nil {
		return nil, false, fmt.Errorf("resolve %v: %w", t, err)
	}
	if !v.IsValid() || v.IsZero() {
		return nil, false, nil
	}
	return v.Interface(), true, nil
}

// resolve returns the instance of b for p. path lists the bindings being
// built by the caller, innermost last.
func (p *Provider) resolve(b *binding, path []bindingKey) (reflect.Value, error) {
	for i, k := range path {
		if k == b.bindingKey {
			cycle := append(append([]bindingKey(nil), path[i:]...), k)
			return reflect.Value{}, cycleError(cycle)
		}
	}
	path = append(path[:len(path):len(path)], b.bindingKey)

	switch b.lifetime {
	case locator.Singleton:
		return b.singleton.get(func() (reflect.Value, error) {
			return p.root.build(b, path)
		})
	case locator.Scoped:
		return p.instance(b.bindingKey).get(func() (reflect.Value, error) {
			return p.build(b, path)
		})
	default:
		return p.build(b, path)
	}
}

func (p *Provider) instance(k bindingKey) *instance {
	p.mu.Lock()
	defer p.mu.Unlock()
	i, ok := p.instances[k]
	if !ok {
		i = &instance{}
		p.instances[k] = i
	}
	return i
}

// build calls the constructor of b with parameters from p.
func (p *Provider) build(b *binding, path []bindingKey) (reflect.Value, error) {
	out, err := p.call(b.ctor, path)
	if err == nil && !out[1].IsNil() {
		err = out[1].Interface().(error)
	}
	if err != nil {
		return reflect.Value{}, fmt.Errorf("construct %v as %v: %w", b.impl.Type, b.bindingKey, err)
	}
	return out[0], nil
}

// call calls fn with its parameters supplied from p. Variadic parameters
// are left empty.
func (p *Provider) call(fn reflect.Value, path []bindingKey) ([]reflect.Value, error) {
	ft := fn.Type()
	args := make([]reflect.Value, ft.NumIn())
	for i := range args {
		t := ft.In(i)
		if ft.IsVariadic() && i == len(args)-1 {
			args[i] = reflect.Zero(t)
			continue
		}
		v, err := p.value(t, "", path)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	if ft.IsVariadic() {
		return fn.CallSlice(args), nil
	}
	return fn.Call(args), nil
}

// value supplies a parameter of type t tagged with tag, as found on a
// dig.In field.
func (p *Provider) value(t reflect.Type, tag reflect.StructTag, path []bindingKey) (reflect.Value, error) {
	if _, grouped := tag.Lookup("group"); !grouped {
		if b, ok := p.c.binding(bindingKey{contract: t, key: tag.Get("name")}); ok {
			return p.resolve(b, path)
		}
		if dig.IsIn(t) {
			return p.paramObject(t, path)
		}
	}
	return p.c.fromDig(t, tag)
}

// paramObject fills a dig.In struct field by field.
func (p *Provider) paramObject(t reflect.Type, path []bindingKey) (reflect.Value, error) {
	v := reflect.New(t).Elem()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Anonymous && f.Type == _inType {
			continue
		}
		if f.PkgPath != "" {
			return reflect.Value{}, fmt.Errorf("bad field %q of %v: unexported fields not allowed in dig.In", f.Name, t)
		}
		fv, err := p.value(f.Type, f.Tag, path)
		if err != nil {
			return reflect.Value{}, err
		}
		v.Field(i).Set(fv)
	}
	return v, nil
}

func cycleError(cycle []bindingKey) error {
	names := make([]string, len(cycle))
	for i, k := range cycle {
		names[i] = k.String()
	}
	return fmt.Errorf("cycle detected in dependency graph: %s", strings.Join(names, " -> "))
}
