// Copyright (c) 2026 The konf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

// Package sysprop holds the process-wide system properties.
//
// System properties are flat `key=value` pairs set programmatically with Set,
// or from command line arguments like `-Dserver.port=8080` with ParseArgs.
// SysProp loads them as a tree.Value by splitting the keys by `.`, e.g.
// `server.port=8080` is loaded as `{server: {port: "8080"}}`.
// All values are strings.
package sysprop

import (
	"strings"
	"sync"

	"github.com/magiconair/properties"

	"github.com/ktong/konfig/parser"
	"github.com/ktong/konfig/tree"
)

// SysProp is a Loader that loads the system properties.
type SysProp struct {
	_      [0]func() // Ensure it's incomparable.
	prefix string
}

// New returns a SysProp with the given Option(s).
func New(opts ...Option) SysProp {
	option := &options{}
	for _, opt := range opts {
		opt(option)
	}

	return SysProp(*option)
}

func (s SysProp) Load() (tree.Value, error) {
	mutex.RLock()
	defer mutex.RUnlock()

	if s.prefix == "" {
		return parser.FromProperties(store) //nolint:wrapcheck
	}

	// FilterStripPrefix would expand the values, so the prefix is stripped here.
	props := newStore()
	for _, key := range store.Keys() {
		if stripped, ok := strings.CutPrefix(key, s.prefix); ok && stripped != "" {
			value, _ := store.Get(key)
			_, _, _ = props.Set(stripped, value)
		}
	}

	return parser.FromProperties(props) //nolint:wrapcheck
}

func (s SysProp) String() string {
	if s.prefix == "" {
		return "system properties"
	}

	return "system properties:" + s.prefix
}

// Get returns the system property with the given key.
func Get(key string) (string, bool) {
	mutex.RLock()
	defer mutex.RUnlock()

	return store.Get(key)
}

// Set sets the system property with the given key and value.
func Set(key, value string) {
	mutex.Lock()
	defer mutex.Unlock()

	// Only fails when expanding values, which is disabled.
	_, _, _ = store.Set(key, value)
}

// Delete deletes the system property with the given key.
func Delete(key string) {
	mutex.Lock()
	defer mutex.Unlock()

	store.Delete(key)
}

// Keys returns all keys of system properties in insertion order.
func Keys() []string {
	mutex.RLock()
	defer mutex.RUnlock()

	return store.Keys()
}

// ParseArgs sets system properties from `-Dkey=value` arguments,
// and returns the remaining arguments in order.
// A `-Dkey` without value sets the key to an empty string.
func ParseArgs(args []string) []string {
	remaining := make([]string, 0, len(args))
	for _, arg := range args {
		definition, ok := strings.CutPrefix(arg, "-D")
		if !ok || definition == "" || strings.HasPrefix(definition, "=") {
			remaining = append(remaining, arg)

			continue
		}
		key, value, _ := strings.Cut(definition, "=")
		Set(key, value)
	}

	return remaining
}

//nolint:gochecknoglobals
var (
	mutex sync.RWMutex
	store = newStore()
)

func newStore() *properties.Properties {
	props := properties.NewProperties()
	props.DisableExpansion = true

	return props
}
