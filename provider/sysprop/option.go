// Copyright (c) 2026 The konf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package sysprop

// WithPrefix loads only the system properties with the given key prefix,
// and strips the prefix from the keys.
//
// For example, with prefix "app.", the property `app.server.port` is loaded as `{server: {port: ...}}`.
func WithPrefix(prefix string) Option {
	return func(options *options) {
		options.prefix = prefix
	}
}

type (
	// Option configures a SysProp with specific options.
	Option  func(*options)
	options SysProp
)
