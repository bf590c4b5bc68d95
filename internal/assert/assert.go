// Copyright (c) 2026 The konf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package assert

import (
	"reflect"
	"strings"
	"testing"
)

func Equal[T any](tb testing.TB, expected, actual T) {
	tb.Helper()

	if !reflect.DeepEqual(expected, actual) {
		tb.Errorf("expected: %v; actual: %v", expected, actual)
	}
}

// Equivalent uses the Equal method of the expected value for comparison.
func Equivalent[T interface{ Equal(other T) bool }](tb testing.TB, expected, actual T) {
	tb.Helper()

	if !expected.Equal(actual) {
		tb.Errorf("expected: %v; actual: %v", expected, actual)
	}
}

func NoError(tb testing.TB, err error) {
	tb.Helper()

	if err != nil {
		tb.Errorf("unexpected error: %v", err)
	}
}

func EqualError(tb testing.TB, err error, message string) {
	tb.Helper()

	switch {
	case err == nil:
		tb.Errorf("expected error: %v; actual: nil", message)
	case err.Error() != message:
		tb.Errorf("expected: %v; actual: %v", message, err.Error())
	}
}

func ErrorContains(tb testing.TB, err error, substr string) {
	tb.Helper()

	switch {
	case err == nil:
		tb.Errorf("expected error containing: %v; actual: nil", substr)
	case !strings.Contains(err.Error(), substr):
		tb.Errorf("expected error containing: %v; actual: %v", substr, err.Error())
	}
}

func True(tb testing.TB, value bool) {
	tb.Helper()

	if !value {
		tb.Errorf("expected True")
	}
}

func Panics(tb testing.TB, fn func()) (recovered any) { //nolint:nonamedreturns
	tb.Helper()

	defer func() {
		recovered = recover()
		if recovered == nil {
			tb.Errorf("expected panic")
		}
	}()
	fn()

	return nil
}
