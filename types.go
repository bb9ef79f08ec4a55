// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package csp

// Sender is the producer side of a channel.
//
// Hand a Sender to code that should only feed the channel, the way a
// send-only `chan<-` restricts a built-in channel. Push parks under the
// Blocking policy; TryPush never parks and reports ErrWouldBlock or
// ErrClosed instead.
//
// Close lives on the Sender because shutdown is a producer decision:
// consumers drain what remains and then observe end of stream.
type Sender[T any] interface {
	// Push delivers v. Reports false when the channel closed before
	// delivery, or when a full DiscardNew shard dropped the value.
	Push(v T) bool

	// TryPush attempts delivery without parking.
	// Returns nil, ErrWouldBlock, or ErrClosed.
	TryPush(v T) error

	// Close ends the stream. Idempotent.
	Close()
}

// Receiver is the consumer side of a channel.
//
// Pop and its variants park while their shard is empty and open, and
// report false only once the channel is closed and the probed shard is
// drained. TryPop never parks.
//
// The interface intentionally excludes length: a sharded channel has no
// single moment at which a total count is meaningful, and per-shard
// counts are stale the instant the shard mutex is released. Track
// counts in application logic when needed.
type Receiver[T any] interface {
	// Pop takes the next value from one shard.
	Pop() (T, bool)

	// PopInto is Pop writing through out.
	PopInto(out *T) bool

	// PopFunc hands the value to consume under the shard lock.
	PopFunc(consume func(T)) bool

	// TryPop attempts to take a value without parking.
	// Returns ErrWouldBlock or ErrClosed on failure.
	TryPop() (T, error)
}

// pad is cache line padding to prevent false sharing.
type pad [64]byte
