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
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// Unit is a loadable unit of types, such as a package compiled into the
// binary or a plugin loaded at runtime.
type Unit interface {
	// Name identifies the unit in logs.
	Name() string

	// Types describes the types of the unit. It may fail, for example when
	// the unit depends on something that is missing; Discover then skips
	// the whole unit.
	Types() ([]TypeInfo, error)
}

// NewUnit returns a Unit that describes a fixed list of types.
//
//	var Unit = locator.NewUnit("mail",
//		locator.Contract[Sender](),
//		locator.Implement[*smtpSender](locator.WithKey("smtp")),
//	)
func NewUnit(name string, types ...TypeInfo) Unit {
	return UnitFunc(name, func() ([]TypeInfo, error) {
		return types, nil
	})
}

// UnitFunc returns a Unit whose types are described by f.
func UnitFunc(name string, f func() ([]TypeInfo, error)) Unit {
	return funcUnit{name: name, f: f}
}

type funcUnit struct {
	name string
	f    func() ([]TypeInfo, error)
}

func (u funcUnit) Name() string { return u.name }

func (u funcUnit) Types() ([]TypeInfo, error) {
	if u.f == nil {
		return nil, nil
	}
	return u.f()
}

func (u funcUnit) String() string { return u.name }

// Loader is the source of types that Discover scans.
type Loader interface {
	// Units lists the units currently loaded.
	Units() []Unit

	// Candidates lists the paths of units in the deployment directory that
	// are not loaded yet.
	Candidates() ([]string, error)

	// Load loads the unit at path. Once loaded, the unit is part of Units.
	Load(path string) (Unit, error)
}

// DefaultPattern is the glob matched against the file names of the
// deployment directory to find plugin candidates.
const DefaultPattern = "*.so"

// DirLoader is a Loader over units compiled into the binary plus Go plugins
// found in a deployment directory.
type DirLoader struct {
	mu      sync.Mutex
	dir     string
	pattern string
	units   []Unit
	loaded  map[string]Unit
	open    func(path string) (Unit, error)
}

var _ Loader = (*DirLoader)(nil)

// NewLoader returns a DirLoader that scans units and the plugins in dir.
// An empty dir means the directory of the running executable.
func NewLoader(dir string, units ...Unit) *DirLoader {
	return &DirLoader{
		dir:     dir,
		pattern: DefaultPattern,
		units:   append([]Unit(nil), units...),
		loaded:  make(map[string]Unit),
		open:    openPlugin,
	}
}

// WithPattern sets the glob used to find plugin candidates and returns l.
func (l *DirLoader) WithPattern(pattern string) *DirLoader {
	l.mu.Lock()
	defer l.mu.Unlock()
	if pattern != "" {
		l.pattern = pattern
	}
	return l
}

// Units lists the built-in units followed by loaded plugins in load order.
func (l *DirLoader) Units() []Unit {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Unit(nil), l.units...)
}

// Candidates lists the plugin files in the deployment directory that have
// not been loaded.
func (l *DirLoader) Candidates() ([]string, error) {
	dir, err := l.deploymentDir()
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	matches, err := filepath.Glob(filepath.Join(dir, l.pattern))
	if err != nil {
		return nil, fmt.Errorf("list units in %q: %w", dir, err)
	}
	sort.Strings(matches)

	candidates := matches[:0]
	for _, m := range matches {
		if _, ok := l.loaded[m]; !ok {
			candidates = append(candidates, m)
		}
	}
	return candidates, nil
}

// Load opens the plugin at path. Loading a path twice returns the unit
// loaded the first time.
func (l *DirLoader) Load(path string) (Unit, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if u, ok := l.loaded[path]; ok {
		return u, nil
	}
	u, err := l.open(path)
	if err != nil {
		return nil, err
	}
	l.loaded[path] = u
	l.units = append(l.units, u)
	return u, nil
}

func (l *DirLoader) deploymentDir() (string, error) {
	if l.dir != "" {
		return l.dir, nil
	}
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locate deployment directory: %w", err)
	}
	return filepath.Dir(exe), nil
}
