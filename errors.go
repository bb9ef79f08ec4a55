// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package csp

import (
	"errors"

	"code.hybscloud.com/iox"
)

// ErrWouldBlock indicates a non-parking operation cannot proceed
// immediately.
//
// For TryPush: the probed shard is full (backpressure), or a rendezvous
// shard has no waiting consumer.
// For TryPop: the probed shard is empty but the channel is still open.
//
// ErrWouldBlock is a control flow signal, not a failure. The caller
// should retry later (with backoff or yield) rather than propagating
// the error.
//
// This is an alias for [iox.ErrWouldBlock] for ecosystem consistency.
//
// Example:
//
//	backoff := iox.Backoff{}
//	for {
//	    err := ch.TryPush(v)
//	    if err == nil {
//	        break
//	    }
//	    if csp.IsClosed(err) {
//	        return // end of stream
//	    }
//	    backoff.Wait() // adaptive backpressure
//	}
var ErrWouldBlock = iox.ErrWouldBlock

// ErrClosed indicates the channel has been closed.
//
// For TryPush: the value was not delivered and never will be.
// For TryPop: the probed shard is drained and no more values will arrive.
//
// ErrClosed is the expected end-of-stream signal, not a failure.
var ErrClosed = errors.New("csp: channel closed")

// IsWouldBlock reports whether err indicates the operation would block.
// Delegates to [iox.IsWouldBlock] for wrapped error support.
func IsWouldBlock(err error) bool {
	return iox.IsWouldBlock(err)
}

// IsClosed reports whether err indicates the channel is closed.
func IsClosed(err error) bool {
	return errors.Is(err, ErrClosed)
}

// IsSemantic reports whether err is a control flow signal (not a
// failure). True for ErrWouldBlock and ErrClosed; delegates other
// errors to [iox.IsSemantic].
func IsSemantic(err error) bool {
	return errors.Is(err, ErrClosed) || iox.IsSemantic(err)
}

// IsNonFailure reports whether err represents a non-failure condition.
// Returns true for nil, ErrWouldBlock, or ErrClosed.
// Delegates to [iox.IsNonFailure] for iox errors.
func IsNonFailure(err error) bool {
	return errors.Is(err, ErrClosed) || iox.IsNonFailure(err)
}
