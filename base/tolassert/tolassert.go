// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tolassert provides functions for asserting the equality of numbers
// with tolerance (in other words, it checks whether numbers are about equal).
package tolassert

import (
	"github.com/stretchr/testify/assert"
)

// Float is a floating point type constraint.
type Float interface {
	~float32 | ~float64
}

// DefaultTol is the tolerance used by [Equal].
const DefaultTol = 0.0001

// Equal asserts that the given two numbers are about equal to each other,
// using a default tolerance of 0.0001.
func Equal[T Float](t assert.TestingT, expected T, actual T, msgAndArgs ...any) bool {
	if h, ok := t.(interface{ Helper() }); ok {
		h.Helper()
	}
	return EqualTol(t, expected, actual, DefaultTol, msgAndArgs...)
}

// EqualTol asserts that the given two numbers are about equal to each other,
// using the given tolerance value.
func EqualTol[T Float](t assert.TestingT, expected T, actual, tolerance T, msgAndArgs ...any) bool {
	if h, ok := t.(interface{ Helper() }); ok {
		h.Helper()
	}
	diff := expected - actual
	if diff < 0 {
		diff = -diff
	}
	if diff > tolerance || diff != diff {
		return assert.Equal(t, expected, actual, msgAndArgs...)
	}
	return true
}

// EqualTolSlice is a slice version of [EqualTol].
func EqualTolSlice[T Float](t assert.TestingT, expected, actual []T, tolerance T, msgAndArgs ...any) bool {
	if h, ok := t.(interface{ Helper() }); ok {
		h.Helper()
	}
	if !assert.Len(t, actual, len(expected), msgAndArgs...) {
		return false
	}
	ok := true
	for i := range expected {
		ok = EqualTol(t, expected[i], actual[i], tolerance, msgAndArgs...) && ok
	}
	return ok
}
