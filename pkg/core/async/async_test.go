// Copyright (c) 2026 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package async_test

import (
	"context"
	"errors"
	"testing"

	"github.com/momeni/carsync/pkg/core/async"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoDeliversOneResult(t *testing.T) {
	ch := async.Go(context.Background(), func(context.Context) (int, error) {
		return 7, nil
	})
	r, ok := <-ch
	require.True(t, ok)
	assert.True(t, r.OK())
	assert.Equal(t, 7, r.Value)
	_, ok = <-ch
	assert.False(t, ok, "channel is closed after the result")
}

func TestAwaitReportsErrors(t *testing.T) {
	boom := errors.New("boom")
	_, err := async.Await(context.Background(), func(context.Context) (string, error) {
		return "", boom
	})
	assert.ErrorIs(t, err, boom)
}

func TestGoRecoversPanics(t *testing.T) {
	v, err := async.Await(context.Background(), func(context.Context) (*int, error) {
		panic("bad call")
	})
	assert.Nil(t, v)
	assert.EqualError(t, err, "panicked: bad call")
}
