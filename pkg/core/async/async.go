// Copyright (c) 2026 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package async runs blocking calls, such as remote requests, on worker
// goroutines and delivers their outcome as a Result value. It lets the
// use cases keep their own goroutine free while a call is in flight.
package async

import (
	"context"
	"fmt"
)

// Result is the outcome of one call: either a Value or an Err.
type Result[T any] struct {
	Value T
	Err   error
}

// OK reports whether the call succeeded.
func (r Result[T]) OK() bool {
	return r.Err == nil
}

// Go runs call on a new goroutine and returns a channel which receives
// exactly one Result and is closed afterwards. A panic in call is
// recovered and reported as the Result error, so a failing call never
// crashes its caller. The channel is buffered, so the worker goroutine
// terminates even if nobody receives the Result.
func Go[T any](
	ctx context.Context, call func(ctx context.Context) (T, error),
) <-chan Result[T] {
	ch := make(chan Result[T], 1)
	go func() {
		defer close(ch)
		var r Result[T]
		defer func() {
			if p := recover(); p != nil {
				var zero T
				r = Result[T]{Value: zero, Err: fmt.Errorf("panicked: %v", p)}
			}
			ch <- r
		}()
		r.Value, r.Err = call(ctx)
	}()
	return ch
}

// Await runs call by Go and waits for its Result.
func Await[T any](
	ctx context.Context, call func(ctx context.Context) (T, error),
) (T, error) {
	r := <-Go(ctx, call)
	return r.Value, r.Err
}
