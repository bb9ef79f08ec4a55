// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package csp_test

import (
	"errors"
	"testing"
	"time"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/csp"
	"code.hybscloud.com/iox"
)

// =============================================================================
// Rendezvous (capacity 0, blocking)
// =============================================================================

// TestRendezvousHandoff verifies the synchronous hand-off: the push does
// not return until the pop has taken its value.
func TestRendezvousHandoff(t *testing.T) {
	ch := csp.NewChan[string](0, csp.Blocking)

	var returned atomix.Bool
	var delivered atomix.Bool
	go func() {
		delivered.Store(ch.Push("a"))
		returned.Store(true)
	}()

	// The pusher must stay parked while nobody pops.
	time.Sleep(50 * time.Millisecond)
	if returned.Load() {
		t.Fatal("Push returned before any Pop")
	}

	v, ok := ch.Pop()
	if !ok || v != "a" {
		t.Fatalf("Pop: got (%q, %v), want (\"a\", true)", v, ok)
	}
	waitUntil(t, time.Second, returned.Load, "pusher did not resume after pop")
	if !delivered.Load() {
		t.Fatal("Push: reported failure for a consumed value")
	}
}

// TestRendezvousCloseDropsHandoff closes the channel while a pusher is
// parked mid-hand-off. The push fails and the value never surfaces.
func TestRendezvousCloseDropsHandoff(t *testing.T) {
	ch := csp.NewChan[string](0, csp.Blocking)

	var returned atomix.Bool
	var delivered atomix.Bool
	go func() {
		delivered.Store(ch.Push("x"))
		returned.Store(true)
	}()

	time.Sleep(50 * time.Millisecond)
	ch.Close()

	waitUntil(t, time.Second, returned.Load, "pusher did not resume after close")
	if delivered.Load() {
		t.Fatal("Push: reported delivery for a dropped value")
	}
	if v, ok := ch.Pop(); ok {
		t.Fatalf("Pop after close: got %q, want end of stream", v)
	}
}

// TestRendezvousMultiplePushers parks two pushers on the same shard;
// two pops release both.
func TestRendezvousMultiplePushers(t *testing.T) {
	ch := csp.NewChan[int](0, csp.Blocking)

	var done atomix.Int64
	for _, v := range []int{1, 2} {
		go func() {
			if !ch.Push(v) {
				t.Errorf("Push(%d): delivery failed", v)
			}
			done.Add(1)
		}()
	}

	got := make(map[int]bool)
	for range 2 {
		v, ok := ch.Pop()
		if !ok {
			t.Fatal("Pop: premature end of stream")
		}
		got[v] = true
	}
	if !got[1] || !got[2] {
		t.Fatalf("Pop: got values %v, want {1, 2}", got)
	}
	waitUntil(t, time.Second, func() bool { return done.Load() == 2 },
		"pushers did not resume after their values were consumed")
}

// TestRendezvousPingPong sequences values through a rendezvous channel
// one at a time; every value arrives in order.
func TestRendezvousPingPong(t *testing.T) {
	total := scaled(1000)
	ch := csp.NewChan[int](0, csp.Blocking)

	go func() {
		for i := range total {
			if !ch.Push(i) {
				t.Errorf("Push(%d): delivery failed before close", i)
				return
			}
		}
		ch.Close()
	}()

	want := 0
	for v, ok := ch.Pop(); ok; v, ok = ch.Pop() {
		if v != want {
			t.Fatalf("Pop: got %d, want %d", v, want)
		}
		want++
	}
	if want != total {
		t.Fatalf("consumed %d values, want %d", want, total)
	}
}

// TestRendezvousTryPush verifies the non-parking hand-off: it fails
// without a waiting consumer and succeeds once one is parked.
func TestRendezvousTryPush(t *testing.T) {
	ch := csp.NewChan[int](0, csp.Blocking)

	if err := ch.TryPush(1); !errors.Is(err, csp.ErrWouldBlock) {
		t.Fatalf("TryPush with no consumer: got %v, want ErrWouldBlock", err)
	}

	var got atomix.Int64
	popped := make(chan struct{})
	go func() {
		v, ok := ch.Pop()
		if !ok {
			t.Error("Pop: premature end of stream")
		}
		got.Store(int64(v))
		close(popped)
	}()

	// The consumer parks at its own pace; retry until the hand-off
	// finds it waiting.
	backoff := iox.Backoff{}
	deadline := time.Now().Add(time.Second)
	for {
		err := ch.TryPush(42)
		if err == nil {
			break
		}
		if !csp.IsWouldBlock(err) {
			t.Fatalf("TryPush: %v", err)
		}
		if time.Now().After(deadline) {
			t.Fatal("TryPush: consumer never observed waiting")
		}
		backoff.Wait()
	}

	<-popped
	if got.Load() != 42 {
		t.Fatalf("Pop: got %d, want 42", got.Load())
	}

	ch.Close()
	if err := ch.TryPush(7); !errors.Is(err, csp.ErrClosed) {
		t.Fatalf("TryPush after close: got %v, want ErrClosed", err)
	}
}
