// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package csp

import "code.hybscloud.com/atomix"

// Chan is a bounded multi-producer multi-consumer channel striped over
// 2^shift independent shards.
//
// Each operation is dispatched round-robin to one shard via an atomic
// counter, so producers and consumers on different shards never contend
// on a lock. Values land on their shard in push order and are consumed
// from it in FIFO order; across shards no global order is promised. Use
// a single shard (NewChan, or shift 0) when global FIFO matters.
//
// Chan is a cheap value handle: copies share the same underlying shards,
// and closing through any copy closes the channel for all holders.
//
// Example:
//
//	ch := csp.NewChan[int](4, csp.Blocking)
//
//	go func() {
//	    for i := range 10 {
//	        ch.Push(i)
//	    }
//	    ch.Close()
//	}()
//
//	for v, ok := ch.Pop(); ok; v, ok = ch.Pop() {
//	    fmt.Println(v)
//	}
type Chan[T any] struct {
	d *chanData[T]
}

// chanData is the state shared by every copy of a handle. The dispatch
// counters sit on their own cache lines; uint32 wraparound keeps the
// round-robin uniform because the shard count divides 2^32.
type chanData[T any] struct {
	_       pad
	pushIx  atomix.Uint32 // producer dispatch
	_       pad
	popIx   atomix.Uint32 // consumer dispatch
	_       pad
	shards  []*shard[T]
	mask    uint32
	userCap int
}

var (
	_ Sender[int]   = Chan[int]{}
	_ Receiver[int] = Chan[int]{}
)

// NewChan creates a single-shard channel. The whole channel is one FIFO:
// values are consumed in push order.
//
// Capacity 0 with the Blocking policy creates a rendezvous channel where
// every Push synchronizes with the Pop that takes its value. Capacity 0
// with a non-blocking policy is a 1-slot buffer.
func NewChan[T any](capacity int, policy Policy) Chan[T] {
	return NewSharded[T](0, capacity, policy)
}

// NewSharded creates a channel with 2^shift shards, each an independent
// FIFO of the given capacity and policy. Striping reduces lock
// contention at the cost of global ordering.
//
// Panics if shift is outside [0, 16] or capacity is negative.
func NewSharded[T any](shift, capacity int, policy Policy) Chan[T] {
	if shift < 0 || shift > 16 {
		panic("csp: shift must be in [0, 16]")
	}
	if capacity < 0 {
		panic("csp: capacity must be >= 0")
	}
	n := 1 << shift
	d := &chanData[T]{
		shards:  make([]*shard[T], n),
		mask:    uint32(n - 1),
		userCap: capacity,
	}
	for i := range d.shards {
		d.shards[i] = newShard[T](capacity, policy)
	}
	return Chan[T]{d: d}
}

// Push delivers v to the next shard in round-robin order.
//
// Under the Blocking policy Push parks while the shard is full, and on a
// rendezvous channel it additionally parks until a consumer has taken v.
// Reports false when the channel closed before delivery, or when a full
// DiscardNew shard dropped the value.
func (c Chan[T]) Push(v T) bool {
	d := c.d
	i := d.pushIx.AddAcqRel(1) - 1
	return d.shards[i&d.mask].push(v)
}

// TryPush attempts delivery without parking, probing a single shard.
//
// Returns nil on delivery, ErrWouldBlock when the probed shard could not
// accept the value without parking, and ErrClosed once the channel is
// closed. On a rendezvous channel TryPush succeeds only when a consumer
// is already waiting on the probed shard; the handoff then completes
// unless the channel is closed before the consumer resumes.
func (c Chan[T]) TryPush(v T) error {
	d := c.d
	i := d.pushIx.AddAcqRel(1) - 1
	return d.shards[i&d.mask].tryPush(v)
}

// Pop takes a value from the next shard in round-robin order, parking
// while that shard is empty and open. The second result is false only
// when the channel is closed and the shard drained.
//
// The idiomatic drain loop:
//
//	for v, ok := ch.Pop(); ok; v, ok = ch.Pop() {
//	    process(v)
//	}
func (c Chan[T]) Pop() (T, bool) {
	var out T
	ok := c.PopFunc(func(v T) { out = v })
	return out, ok
}

// PopInto is Pop writing through out. Reports whether a value was
// delivered; on false *out is left unchanged.
func (c Chan[T]) PopInto(out *T) bool {
	return c.PopFunc(func(v T) { *out = v })
}

// PopFunc takes a value and hands it to consume, which runs under the
// shard lock and must not call back into the channel. The callback form
// lets the caller move the value into any destination without an extra
// copy.
func (c Chan[T]) PopFunc(consume func(T)) bool {
	d := c.d
	i := d.popIx.AddAcqRel(1) - 1
	return d.shards[i&d.mask].pop(consume)
}

// TryPop attempts to take a value without parking, probing a single
// shard. Returns ErrWouldBlock when the probed shard is empty but open,
// and ErrClosed once it is empty and the channel is closed.
func (c Chan[T]) TryPop() (T, error) {
	d := c.d
	i := d.popIx.AddAcqRel(1) - 1
	var out T
	err := d.shards[i&d.mask].tryPop(func(v T) { out = v })
	return out, err
}

// Close closes every shard and wakes every parked producer and consumer.
// Parked pushers report failure; consumers drain the remaining buffered
// values before Pop reports false. Close is idempotent and safe to call
// from any handle copy.
func (c Chan[T]) Close() {
	for _, q := range c.d.shards {
		q.close()
	}
}

// IsClosed reports whether Close has been observed on shard 0. Because
// Close visits shards one by one, the observation is eventually
// consistent: push/pop correctness never depends on it.
func (c Chan[T]) IsClosed() bool {
	return c.d.shards[0].isClosed()
}

// Cap returns the total configured capacity: the per-shard capacity
// times the shard count. A rendezvous channel reports 0.
func (c Chan[T]) Cap() int {
	return c.d.userCap * len(c.d.shards)
}

// Shards returns the number of independent shards.
func (c Chan[T]) Shards() int {
	return len(c.d.shards)
}
