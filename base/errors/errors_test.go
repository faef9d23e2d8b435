// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLog1(t *testing.T) {
	assert.Equal(t, 3, Log1(3, nil))
	assert.Equal(t, 0, Log1(0, New("oops")))
}

func TestMust(t *testing.T) {
	assert.NotPanics(t, func() { Must(nil) })
	assert.Panics(t, func() { Must(ErrStaleReference) })
}

func TestRecover(t *testing.T) {
	assert.NoError(t, Recover(nil))
	err := Recover(ErrAllocationFailure)
	assert.ErrorIs(t, err, ErrAllocationFailure)
	assert.EqualError(t, Recover("boom"), "panic: boom")
}

func TestTaxonomyWrapping(t *testing.T) {
	err := fmt.Errorf("scene: add child %q: %w", "a", ErrInvalidHierarchy)
	assert.True(t, Is(err, ErrInvalidHierarchy))
	assert.False(t, Is(err, ErrStaleReference))
}
