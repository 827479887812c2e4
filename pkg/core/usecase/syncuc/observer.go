// Copyright (c) 2026 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package syncuc

import "sync"

// observer delivers the published states to one callback function, in
// the order of their publication, on its own goroutine. States are
// queued without bound, so a slow callback never blocks the Store.
type observer struct {
	fn func(State)

	mu      sync.Mutex
	cond    *sync.Cond
	queue   []State
	stopped bool
}

func newObserver(fn func(State)) *observer {
	o := &observer{fn: fn}
	o.cond = sync.NewCond(&o.mu)
	return o
}

func (o *observer) push(st State) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.stopped {
		return
	}
	o.queue = append(o.queue, st)
	o.cond.Signal()
}

func (o *observer) stop() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.stopped = true
	o.queue = nil
	o.cond.Signal()
}

// run calls fn for each queued state until stop is called.
func (o *observer) run() {
	for {
		o.mu.Lock()
		for len(o.queue) == 0 && !o.stopped {
			o.cond.Wait()
		}
		if o.stopped {
			o.mu.Unlock()
			return
		}
		st := o.queue[0]
		o.queue[0] = State{}
		o.queue = o.queue[1:]
		o.mu.Unlock()

		o.fn(st)
	}
}
