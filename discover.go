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
	"errors"
	"fmt"
	"reflect"
	"strings"

	"go.uber.org/locator/internal/locatorreflect"
	"go.uber.org/locator/locatorevent"
	"go.uber.org/multierr"
)

// DiscoverOption configures Discover.
type DiscoverOption interface {
	applyDiscover(*discoverOptions)
}

type discoverOptions struct {
	includeExternal bool
	logger          locatorevent.Logger
}

// Report summarizes a call to Discover.
type Report struct {
	// Units is the number of units whose types were scanned.
	Units int

	// Registrations is the number of registrations handed to the
	// registrar.
	Registrations int

	// Skipped combines the errors of every unit that failed to load or to
	// describe its types. Use multierr.Errors to split it.
	Skipped error
}

// Descriptor is a registration derived by Discover.
type Descriptor struct {
	Contract       reflect.Type
	Implementation Implementation
	Lifetime       Lifetime
	Key            string

	// Synthetic is set for registrations made under the synthetic key.
	Synthetic bool
}

// Discover scans the units of loader for implementations of contracts and
// registers each one with registrar.
//
// Every concrete type is registered once per contract it implements, using
// the lifetime and key of its registration marker (Scoped without a key if
// it has none). Scoped implementations are also registered as Transient
// under SyntheticKeyFor(key). A keyed, Scoped implementation that is the
// only implementation of its contract is additionally registered as
// Transient under SyntheticKey, so unkeyed lookups can find it.
//
// Units that fail to load or to describe their types are skipped and
// reported in Report.Skipped; they never fail discovery. Errors from
// registrar abort discovery and are returned.
func Discover(loader Loader, registrar Registrar, opts ...DiscoverOption) (Report, error) {
	o := discoverOptions{logger: locatorevent.NopLogger}
	for _, opt := range opts {
		opt.applyDiscover(&o)
	}

	d := discovery{
		loader:    loader,
		registrar: registrar,
		logger:    o.logger,
	}
	err := d.run(o.includeExternal)
	report := Report{
		Units:         d.units,
		Registrations: d.registrations,
		Skipped:       d.skipped,
	}
	o.logger.LogEvent(&locatorevent.Discovered{
		Units:         report.Units,
		Registrations: report.Registrations,
		Skipped:       report.Skipped,
		Err:           err,
	})
	return report, err
}

type discovery struct {
	loader    Loader
	registrar Registrar
	logger    locatorevent.Logger

	units         int
	registrations int
	skipped       error
}

func (d *discovery) run(includeExternal bool) error {
	if d.loader == nil {
		return errors.New("locator: Discover requires a Loader")
	}
	if d.registrar == nil {
		return fmt.Errorf("%w: Discover requires a Registrar", ErrNotInitialized)
	}

	if includeExternal {
		d.loadExternal()
	}

	plan, err := d.plan(d.scan())
	if err != nil {
		return err
	}
	for _, desc := range plan {
		if err := d.emit(desc); err != nil {
			return err
		}
	}
	return nil
}

// loadExternal loads every candidate unit, skipping the ones that fail.
func (d *discovery) loadExternal() {
	paths, err := d.loader.Candidates()
	if err != nil {
		d.skip(err)
		d.logger.LogEvent(&locatorevent.UnitLoaded{Err: err})
		return
	}
	for _, path := range paths {
		_, err := d.loader.Load(path)
		if err != nil {
			d.skip(fmt.Errorf("load %q: %w", path, err))
		}
		d.logger.LogEvent(&locatorevent.UnitLoaded{Path: path, Err: err})
	}
}

// scan returns the types of every unit that describes them without error.
func (d *discovery) scan() []TypeInfo {
	var types []TypeInfo
	for _, u := range d.loader.Units() {
		ts, err := unitTypes(u)
		d.logger.LogEvent(&locatorevent.UnitScanned{
			Unit:  u.Name(),
			Types: len(ts),
			Err:   err,
		})
		if err != nil {
			d.skip(fmt.Errorf("scan %q: %w", u.Name(), err))
			continue
		}
		d.units++
		types = append(types, ts...)
	}
	return types
}

// unitTypes calls u.Types, turning a panic into an error.
func unitTypes(u Unit) (types []TypeInfo, err error) {
	defer func() {
		if r := recover(); r != nil {
			types, err = nil, fmt.Errorf("panic: %v", r)
		}
	}()
	return u.Types()
}

// plan derives the registrations for types, in the order they are emitted.
func (d *discovery) plan(types []TypeInfo) ([]Descriptor, error) {
	var contracts []reflect.Type
	seen := make(map[reflect.Type]struct{})
	for _, t := range types {
		if !IsContract(t) {
			continue
		}
		if _, ok := seen[t.Type]; ok {
			continue
		}
		seen[t.Type] = struct{}{}
		contracts = append(contracts, t.Type)
	}

	var (
		plan    []Descriptor
		primary = make(map[reflect.Type][]Descriptor)
	)
	for _, t := range types {
		for _, c := range ContractsOf(t, contracts) {
			reg := RegistrationOf(t)
			if strings.HasPrefix(reg.Key, SyntheticKey) {
				return nil, fmt.Errorf("%w: %v registers %v under %q",
					ErrReservedKey, locatorreflect.TypeName(t.Type), c, reg.Key)
			}

			desc := Descriptor{
				Contract:       c,
				Implementation: t.Implementation(),
				Lifetime:       reg.Lifetime,
				Key:            reg.Key,
			}
			plan = append(plan, desc)
			primary[c] = append(primary[c], desc)

			if reg.Lifetime == Scoped {
				plan = append(plan, Descriptor{
					Contract:       c,
					Implementation: desc.Implementation,
					Lifetime:       Transient,
					Key:            SyntheticKeyFor(reg.Key),
					Synthetic:      true,
				})
			}
		}
	}

	// A contract whose only implementation is keyed and Scoped also gets an
	// alias under the bare synthetic key.
	for _, c := range contracts {
		descs := primary[c]
		if len(descs) != 1 {
			continue
		}
		if only := descs[0]; only.Lifetime == Scoped && only.Key != "" {
			plan = append(plan, Descriptor{
				Contract:       c,
				Implementation: only.Implementation,
				Lifetime:       Transient,
				Key:            SyntheticKey,
				Synthetic:      true,
			})
		}
	}
	return plan, nil
}

func (d *discovery) emit(desc Descriptor) error {
	var err error
	if desc.Key == "" {
		err = d.registrar.Register(desc.Contract, desc.Implementation, desc.Lifetime)
	} else {
		err = d.registrar.RegisterKeyed(desc.Contract, desc.Implementation, desc.Lifetime, desc.Key)
	}

	e := &locatorevent.Registered{
		Contract:       locatorreflect.TypeName(desc.Contract),
		Implementation: locatorreflect.TypeName(desc.Implementation.Type),
		Lifetime:       desc.Lifetime.String(),
		Key:            desc.Key,
		Synthetic:      desc.Synthetic,
		Err:            err,
	}
	if desc.Implementation.Constructor != nil {
		e.ConstructorName = locatorreflect.FuncName(desc.Implementation.Constructor)
	}
	d.logger.LogEvent(e)

	if err != nil {
		return fmt.Errorf("register %v as %v: %w",
			locatorreflect.TypeName(desc.Implementation.Type), desc.Contract, err)
	}
	d.registrations++
	return nil
}

func (d *discovery) skip(err error) {
	d.skipped = multierr.Append(d.skipped, err)
}
