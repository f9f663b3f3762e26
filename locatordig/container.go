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

// Package locatordig adapts a dig container to the locator Registrar and
// Resolver interfaces.
//
// Register and RegisterKeyed record bindings; Build seals them and returns
// the root Provider. Bindings are built by locatordig itself:
//
//   - Singleton bindings are built once per Container, with parameters from
//     the root Provider.
//   - Scoped bindings are built once per Provider. Every Provider.Scope is a
//     new sibling scope with its own instances.
//   - Transient bindings are built on every lookup and every injection.
//
// Constructor parameters are bindings when their type (and dig.In name tag)
// matches one, and values from the underlying dig container otherwise, so
// any lifetime can be injected into any other. No lock is held while a
// constructor runs: constructors may resolve through a Handle armed with a
// Provider of the same Container. Cycles between constructor parameters are
// reported as errors; a cycle that passes through such a Handle is not
// detected and blocks.
//
// Registering the same contract and key twice keeps the last registration.
package locatordig

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"go.uber.org/dig"
	"go.uber.org/locator"
)

// Container records registrations until Build.
type Container struct {
	mu       sync.Mutex // guards bindings, order and built until Build
	bindings map[bindingKey]*binding
	order    []bindingKey
	built    bool

	// dig caches values without locking.
	digMu sync.Mutex
	dig   *dig.Container
}

var _ locator.Registrar = (*Container)(nil)

type bindingKey struct {
	contract reflect.Type
	key      string
}

func (k bindingKey) String() string {
	if k.key == "" {
		return k.contract.String()
	}
	return fmt.Sprintf("%v[name=%q]", k.contract, k.key)
}

type binding struct {
	bindingKey

	impl     locator.Implementation
	lifetime locator.Lifetime
	ctor     reflect.Value

	// singleton holds the instance of a Singleton binding.
	singleton instance
}

// instance is a lazily built value. A failed build is retried by the next
// lookup.
type instance struct {
	mu    sync.Mutex
	built bool
	v     reflect.Value
}

func (i *instance) get(build func() (reflect.Value, error)) (reflect.Value, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.built {
		return i.v, nil
	}
	v, err := build()
	if err != nil {
		return reflect.Value{}, err
	}
	i.v, i.built = v, true
	return v, nil
}

// Option configures a Container.
type Option interface {
	apply(*Container)
}

type optionFunc func(*Container)

func (f optionFunc) apply(c *Container) { f(c) }

// WithDig makes the Container take the dependencies of its bindings from an
// existing dig container instead of a new one.
func WithDig(d *dig.Container) Option {
	return optionFunc(func(c *Container) {
		if d != nil {
			c.dig = d
		}
	})
}

// New builds a Container.
func New(opts ...Option) *Container {
	c := &Container{
		dig:      dig.New(),
		bindings: make(map[bindingKey]*binding),
	}
	for _, opt := range opts {
		opt.apply(c)
	}
	return c
}

func errNotBuilt() error {
	return fmt.Errorf("%w: locatordig.Container must be built with New", locator.ErrNotInitialized)
}

// Register binds contract to impl without a key.
func (c *Container) Register(contract reflect.Type, impl locator.Implementation, lifetime locator.Lifetime) error {
	return c.RegisterKeyed(contract, impl, lifetime, "")
}

// RegisterKeyed binds contract to impl under key, replacing any earlier
// binding of contract under the same key. Keys follow the rules of
// dig.Name and cannot contain backquotes.
func (c *Container) RegisterKeyed(contract reflect.Type, impl locator.Implementation, lifetime locator.Lifetime, key string) error {
	if c == nil || c.dig == nil {
		return errNotBuilt()
	}
	if err := locator.CheckLifetime(lifetime); err != nil {
		return err
	}
	if strings.ContainsRune(key, '`') {
		return fmt.Errorf("invalid key %q for %v: keys cannot contain backquotes", key, contract)
	}
	ctor, err := constructor(contract, impl)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.built {
		return fmt.Errorf("cannot register %v after Build", contract)
	}
	k := bindingKey{contract: contract, key: key}
	if _, ok := c.bindings[k]; !ok {
		c.order = append(c.order, k)
	}
	c.bindings[k] = &binding{
		bindingKey: k,
		impl:       impl,
		lifetime:   lifetime,
		ctor:       ctor,
	}
	return nil
}

// Provide adds a constructor straight to the underlying dig container. Use
// it for the dependencies of registered implementations. ctor must not
// resolve through Providers of c.
func (c *Container) Provide(ctor interface{}, opts ...dig.ProvideOption) error {
	if c == nil || c.dig == nil {
		return errNotBuilt()
	}
	c.digMu.Lock()
	defer c.digMu.Unlock()
	return c.dig.Provide(ctor, opts...)
}

// Build seals the Container and returns its root Provider. A Container can
// be built once; registrations fail afterwards.
func (c *Container) Build() (*Provider, error) {
	if c == nil || c.dig == nil {
		return nil, errNotBuilt()
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.built {
		return nil, errors.New("container was already built")
	}
	c.built = true
	return newProvider(c, "root", nil), nil
}

// binding returns the binding of k. The table is read-only once built.
func (c *Container) binding(k bindingKey) (*binding, bool) {
	b, ok := c.bindings[k]
	return b, ok
}

// fromDig reads a value of type t out of the dig container, honoring the
// dig.In field tag.
func (c *Container) fromDig(t reflect.Type, tag reflect.StructTag) (reflect.Value, error) {
	paramType := reflect.StructOf([]reflect.StructField{
		_inField,
		{Name: "Value", Type: t, Tag: tag},
	})

	var value reflect.Value
	fn := reflect.MakeFunc(
		reflect.FuncOf([]reflect.Type{paramType}, nil, false),
		func(args []reflect.Value) []reflect.Value {
			value = args[0].Field(1)
			return nil
		},
	)

	c.digMu.Lock()
	defer c.digMu.Unlock()
	if err := c.dig.Invoke(fn.Interface()); err != nil {
		return reflect.Value{}, err
	}
	return value, nil
}
