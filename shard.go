// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package csp

import (
	"math"
	"sync"
)

// maxCounter is the position at which first/next are pulled back toward
// zero so they can never wrap.
const maxCounter = math.MaxUint64

// shard is one bounded ring buffer with its own mutex and wait state.
//
// first and next grow monotonically; the live elements occupy positions
// [first, next) mapped onto buf[pos%len(buf)]. first==next means empty,
// next-first==len(buf) means full. A rendezvous shard (blocking policy,
// user capacity 0) has one physical slot that transiently holds the
// element being handed off; its pusher parks on overflow until the
// element is taken.
type shard[T any] struct {
	mu       sync.Mutex
	pushers  waitCond
	poppers  waitCond
	overflow *sync.Cond // rendezvous handoff, blocking zero-capacity only
	policy   Policy
	closed   bool
	first    uint64 // next position to pop
	next     uint64 // next position to write
	buf      []T
}

// newShard normalizes capacity: a zero-capacity shard gets one physical
// slot, and in blocking mode that slot is the rendezvous handoff area
// guarded by the overflow cond. Non-blocking policies never park a
// pusher, so capacity 0 degrades to a plain 1-slot buffer.
func newShard[T any](capacity int, policy Policy) *shard[T] {
	rendezvous := capacity == 0 && policy == Blocking
	if capacity == 0 {
		capacity = 1
	}
	q := &shard[T]{
		policy: policy,
		buf:    make([]T, capacity),
	}
	q.pushers.init(&q.mu)
	q.poppers.init(&q.mu)
	if rendezvous {
		q.overflow = sync.NewCond(&q.mu)
	}
	return q
}

func (q *shard[T]) freeCount() uint64 {
	return q.first + uint64(len(q.buf)) - q.next
}

func (q *shard[T]) isEmpty() bool {
	return q.first >= q.next
}

// push delivers v, parking while the buffer is full under the blocking
// policy. Reports false when the channel closed before delivery, or when
// a full DiscardNew buffer dropped the value.
func (q *shard[T]) push(v T) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.pushers.wait(func() bool {
		return q.policy != Blocking || q.freeCount() > 0 || q.closed
	})
	if q.closed {
		return false
	}
	if !q.insert(v) {
		return false
	}
	q.poppers.notifyOne()
	if q.overflow != nil {
		// Rendezvous: hold the pusher until its element has been taken.
		// Any advance of first settles the wait; with several parked
		// pushers a consumption may satisfy an earlier one, which is
		// harmless because the remaining pusher is satisfied by the
		// next consumption.
		old := q.first
		for q.first == old && !q.closed {
			q.overflow.Wait()
		}
	}
	return !q.closed
}

// tryPush is the non-parking variant. On a rendezvous shard the handoff
// can only complete without parking when a consumer is already waiting.
func (q *shard[T]) tryPush(v T) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return ErrClosed
	}
	if q.overflow != nil && q.poppers.parked == 0 {
		return ErrWouldBlock
	}
	if q.policy == Blocking && q.freeCount() == 0 {
		return ErrWouldBlock
	}
	if !q.insert(v) {
		return ErrWouldBlock
	}
	q.poppers.notifyOne()
	return nil
}

// insert places v according to the shard policy. Caller holds mu and has
// already ruled out closed; under the blocking policy the buffer has
// free space. Reports false only for DiscardNew on a full buffer, in
// which case no state changed.
func (q *shard[T]) insert(v T) bool {
	if q.freeCount() > 0 {
		q.buf[q.next%uint64(len(q.buf))] = v
		q.next++
	} else if q.policy == DiscardOldest {
		q.first++ // drop the oldest
		q.buf[q.next%uint64(len(q.buf))] = v
		q.next++
	} else {
		return false
	}
	if q.next >= maxCounter {
		q.resetPos()
	}
	return true
}

// resetPos pulls first and next back toward zero. Subtracting a multiple
// of len(buf) keeps every live position's slot index and the logical
// size unchanged.
func (q *shard[T]) resetPos() {
	newFirst := q.first % uint64(len(q.buf))
	q.next -= q.first - newFirst
	q.first = newFirst
}

// pop takes the front element, parking while the shard is empty and
// open. Reports false only when the shard is drained and closed.
func (q *shard[T]) pop(consume func(T)) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.poppers.wait(func() bool { return !q.isEmpty() || q.closed })
	if q.isEmpty() {
		return false
	}
	q.take(consume)
	return true
}

// tryPop is the non-parking variant.
func (q *shard[T]) tryPop(consume func(T)) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.isEmpty() {
		if q.closed {
			return ErrClosed
		}
		return ErrWouldBlock
	}
	q.take(consume)
	return nil
}

// take removes the front element. Caller holds mu; the shard is
// non-empty. The vacated slot is zeroed so referenced objects can be
// collected while the position waits for reuse.
func (q *shard[T]) take(consume func(T)) {
	slot := &q.buf[q.first%uint64(len(q.buf))]
	v := *slot
	var zero T
	*slot = zero
	q.first++
	consume(v)
	if q.overflow != nil {
		q.overflow.Signal()
	}
	q.pushers.notifyOne()
}

// close marks the shard closed and wakes every waiter. On a rendezvous
// shard an in-flight handoff element is dropped so its pusher reports
// failure. Idempotent.
func (q *shard[T]) close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.closed = true
	if q.overflow != nil && !q.isEmpty() {
		q.next--
		var zero T
		q.buf[q.next%uint64(len(q.buf))] = zero
		q.overflow.Broadcast()
	}
	q.pushers.notifyAll()
	q.poppers.notifyAll()
}

func (q *shard[T]) isClosed() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.closed
}
