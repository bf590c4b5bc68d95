// Copyright (c) 2026 The konf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

/*
Package konfig loads hierarchical configuration from composable sources
and converts it into typed values, reporting every problem at once.

A [Source] is a deferred computation producing a [tree.Value] from an origin,
such as a file ([File]), a URL ([URL]), embedded resources ([Resources]),
system properties ([SystemProperties]) or an in-memory tree ([FromConfig]).
Sources are evaluated again on every access, so a changed file is picked up
by the next call of Value.

An [ObjectSource] always yields an object and composes with fallbacks:

	source := konfig.File("app.yaml").
		WithOptionalFallback(konfig.Resources("defaults.yaml")).
		WithFallback(konfig.DefaultReference())

References like `${server.host}` in string values are resolved after merging.

A [Cursor] navigates the tree and fails immediately with a [Failure] carrying
the attempted path, while a [FluentCursor] defers the failure to the end of a chain.
A [Reader] converts the node of a cursor into a Go value; package read provides
readers for common types. [Load] evaluates a source and applies a reader,
returning all failures as [Failures]. [MustLoad] panics instead, for start-up code.
*/
package konfig
