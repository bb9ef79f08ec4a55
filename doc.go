// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package csp provides a bounded multi-producer multi-consumer channel
// with configurable back-pressure and lock-contention striping.
//
// A [Chan] carries values from producers to consumers in FIFO order with
// a fixed buffer capacity. When the buffer is full the push [Policy]
// decides what happens: park the producer ([Blocking]), overwrite the
// oldest value ([DiscardOldest]), or drop the new one ([DiscardNew]).
// Capacity 0 under the blocking policy gives a rendezvous channel where
// every push synchronizes with the pop that takes its value.
//
// # Quick Start
//
//	ch := csp.NewChan[int](64, csp.Blocking)
//
//	// Producer
//	go func() {
//	    for i := range 1000 {
//	        ch.Push(i)
//	    }
//	    ch.Close()
//	}()
//
//	// Consumer
//	for v, ok := ch.Pop(); ok; v, ok = ch.Pop() {
//	    process(v)
//	}
//
// # Push Policies
//
// Blocking is the default back-pressure mode: Push parks until space
// frees up or the channel closes.
//
//	ch := csp.NewChan[Job](128, csp.Blocking)
//
// DiscardOldest suits real-time feeds where the latest value matters
// more than a complete history. Push never parks; a full buffer sheds
// its oldest element.
//
//	ch := csp.NewChan[Sample](16, csp.DiscardOldest)
//
// DiscardNew sheds load at the producer instead. Push never parks; a
// push into a full buffer reports false and the value is gone.
//
//	ch := csp.NewChan[Event](16, csp.DiscardNew)
//	if !ch.Push(ev) && !ch.IsClosed() {
//	    dropped.Add(1)
//	}
//
// # Rendezvous Channels
//
// Capacity 0 with the blocking policy creates a synchronous channel,
// like an unbuffered built-in channel: Push does not return true until
// a consumer has taken the value.
//
//	ch := csp.NewChan[string](0, csp.Blocking)
//
//	go func() {
//	    ch.Push("ready") // parks until the pop below
//	}()
//
//	v, _ := ch.Pop()
//
// Under a non-blocking policy capacity 0 degrades to a 1-slot buffer,
// since a producer that never parks cannot wait for a hand-off.
//
// # Sharding
//
// NewSharded stripes a channel over 2^shift independent shards, each
// with its own lock and buffer. Operations pick a shard round-robin via
// an atomic counter, so under concurrent load producers and consumers
// mostly touch disjoint locks.
//
//	ch := csp.NewSharded[Task](3, 256, csp.Blocking) // 8 shards
//
// The trade-off is ordering: values on the same shard arrive in push
// order, but the interleave across shards is unspecified. A program
// that needs global FIFO must use a single shard (shift 0). A single
// goroutine that pushes n values and then pops n values does see them
// in order, because both round-robin counters advance in lockstep.
//
// # Close Semantics
//
// Close is idempotent and wakes everything: parked pushers report
// false, and consumers drain the remaining buffered values before Pop
// reports false. A rendezvous push parked mid-hand-off reports false
// and its value is dropped. Closing is the only way to unblock a parked
// operation; the package has no per-operation timeouts.
//
//	for v, ok := ch.Pop(); ok; v, ok = ch.Pop() {
//	    process(v) // every buffered value is delivered before ok=false
//	}
//
// On a multi-shard channel each shard drains independently: a false
// from Pop means the shard it probed is empty, not that the whole
// channel is. A full drain keeps popping until it has seen one false
// per shard in a row.
//
// # Non-Blocking Operations
//
// TryPush and TryPop never park. They return [ErrWouldBlock] when the
// probed shard cannot make progress and [ErrClosed] once the channel is
// closed (and, for TryPop, drained). Both are control flow signals, not
// failures; pair them with [iox.Backoff] for adaptive retry:
//
//	backoff := iox.Backoff{}
//	for {
//	    v, err := ch.TryPop()
//	    if err == nil {
//	        backoff.Reset()
//	        process(v)
//	        continue
//	    }
//	    if csp.IsClosed(err) {
//	        break
//	    }
//	    backoff.Wait()
//	}
//
// Each Try call probes a single shard; on a multi-shard channel an
// ErrWouldBlock says nothing about the other shards.
//
// # Handle Semantics
//
// Chan is a small value handle; copies share the same shards. Pass it
// by value, close it from any copy, and restrict direction by handing
// out the [Sender] or [Receiver] interface.
//
// # Thundering Herd
//
// Shard wakeups go through a counting condition-variable wrapper that
// tracks how many goroutines are parked and how many wakeups are
// outstanding, so a push wakes at most one parked popper and a pop at
// most one pusher parked for space (on a rendezvous channel it also
// wakes one pusher waiting for its hand-off). A burst of operations does
// not stampede the waiters.
//
// # Dependencies
//
// This package uses [code.hybscloud.com/iox] for semantic errors and
// [code.hybscloud.com/atomix] for the round-robin dispatch counters
// with explicit memory ordering.
package csp
