// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package csp

// Options configures channel creation.
type Options struct {
	shift    int
	capacity int
	policy   Policy
}

// Builder creates channels with fluent configuration.
//
// The direct constructors NewChan and NewSharded remain the recommended
// path when the configuration is known up front; the builder is for
// call sites that assemble it piecemeal.
//
// Example:
//
//	// Rendezvous channel (capacity 0, blocking)
//	ch := csp.Build[string](csp.New(0))
//
//	// Four shards of eight slots, dropping the oldest under pressure
//	ch := csp.Build[Sample](csp.New(8).Sharded(2).DiscardOldest())
type Builder struct {
	opts Options
}

// New creates a channel builder with the given per-shard capacity.
//
// Capacity 0 with the default Blocking policy builds a rendezvous
// channel; with a non-blocking policy it builds a 1-slot buffer.
//
// Panics if capacity is negative.
func New(capacity int) *Builder {
	if capacity < 0 {
		panic("csp: capacity must be >= 0")
	}
	return &Builder{opts: Options{capacity: capacity}}
}

// Sharded stripes the channel over 2^shift independent shards.
// Values lose global FIFO order across shards; see [NewSharded].
func (b *Builder) Sharded(shift int) *Builder {
	b.opts.shift = shift
	return b
}

// DiscardOldest selects the policy that overwrites the oldest buffered
// value when a shard is full. Push never parks.
func (b *Builder) DiscardOldest() *Builder {
	b.opts.policy = DiscardOldest
	return b
}

// DiscardNew selects the policy that drops the pushed value when a
// shard is full. Push never parks and reports false for dropped values.
func (b *Builder) DiscardNew() *Builder {
	b.opts.policy = DiscardNew
	return b
}

// Build creates the configured channel.
func Build[T any](b *Builder) Chan[T] {
	return NewSharded[T](b.opts.shift, b.opts.capacity, b.opts.policy)
}
