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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("not a plugin"), 0o644))
	}
}

func TestUnitFunc(t *testing.T) {
	u := UnitFunc("empty", nil)
	assert.Equal(t, "empty", u.Name())
	types, err := u.Types()
	assert.NoError(t, err)
	assert.Empty(t, types)

	u = NewUnit("fixed", TypeInfo{Type: TypeOf[error]()})
	types, err = u.Types()
	require.NoError(t, err)
	assert.Len(t, types, 1)
}

func TestDirLoaderCandidates(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "b.so", "a.so", "readme.txt")

	l := NewLoader(dir, NewUnit("builtin"))
	got, err := l.Candidates()
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.so"), filepath.Join(dir, "b.so")}, got)

	t.Run("custom pattern", func(t *testing.T) {
		got, err := NewLoader(dir).WithPattern("*.txt").Candidates()
		require.NoError(t, err)
		assert.Equal(t, []string{filepath.Join(dir, "readme.txt")}, got)
	})

	t.Run("bad pattern", func(t *testing.T) {
		_, err := NewLoader(dir).WithPattern("[").Candidates()
		assert.Error(t, err)
	})
}

func TestDirLoaderLoad(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a.so", "b.so")

	var opened []string
	l := NewLoader(dir, NewUnit("builtin"))
	l.open = func(path string) (Unit, error) {
		opened = append(opened, path)
		if filepath.Base(path) == "b.so" {
			return nil, errors.New("plugin was built with a different version of package")
		}
		return NewUnit(path), nil
	}

	a := filepath.Join(dir, "a.so")
	u, err := l.Load(a)
	require.NoError(t, err)
	assert.Equal(t, a, u.Name())

	again, err := l.Load(a)
	require.NoError(t, err)
	assert.Equal(t, u.Name(), again.Name())

	_, err = l.Load(filepath.Join(dir, "b.so"))
	assert.Error(t, err)

	assert.Equal(t, []string{a, filepath.Join(dir, "b.so")}, opened, "a unit is opened once")

	var names []string
	for _, u := range l.Units() {
		names = append(names, u.Name())
	}
	assert.Equal(t, []string{"builtin", a}, names)

	candidates, err := l.Candidates()
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "b.so")}, candidates, "loaded units are no longer candidates")
}

func TestDirLoaderDefaultDir(t *testing.T) {
	exe, err := os.Executable()
	require.NoError(t, err)

	dir, err := NewLoader("").deploymentDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Dir(exe), dir)
}

func TestOpenPluginRejectsGarbage(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "garbage.so")

	_, err := openPlugin(filepath.Join(dir, "garbage.so"))
	assert.Error(t, err)

	_, err = NewLoader(dir).Load(filepath.Join(dir, "garbage.so"))
	assert.Error(t, err)
}
