// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package csp

// Policy controls what Push does when a shard's buffer is full.
type Policy uint8

const (
	// Blocking parks the pusher until space frees up or the channel
	// closes. With capacity 0 this is a rendezvous: Push does not
	// return true until a consumer has taken the value.
	Blocking Policy = iota

	// DiscardOldest overwrites the oldest buffered value with the new
	// one. Push never parks and reports success unless the channel is
	// closed.
	DiscardOldest

	// DiscardNew drops the pushed value and reports failure when the
	// buffer is full. Push never parks.
	DiscardNew
)

// String returns the policy name.
func (p Policy) String() string {
	switch p {
	case Blocking:
		return "blocking"
	case DiscardOldest:
		return "discard-oldest"
	case DiscardNew:
		return "discard-new"
	}
	return "unknown"
}
