package notify

import (
	"testing"
	"time"
)

func TestHubSubscribeNotify(t *testing.T) {
	hub := NewHub()
	ch, cancel := hub.Subscribe("conv-1")
	defer cancel()

	hub.NotifyAppend("conv-1", 5)

	select {
	case inv := <-ch:
		if inv.ConversationID != "conv-1" || inv.EventCount != 5 {
			t.Errorf("invalidation = %+v, want conv-1/5", inv)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for invalidation")
	}
}

func TestHubIsolatesConversations(t *testing.T) {
	hub := NewHub()
	ch, cancel := hub.Subscribe("conv-1")
	defer cancel()

	hub.NotifyAppend("conv-other", 1)

	select {
	case inv := <-ch:
		t.Errorf("received signal for wrong conversation: %+v", inv)
	default:
	}
}

func TestHubCancelUnsubscribes(t *testing.T) {
	hub := NewHub()
	_, cancel := hub.Subscribe("conv-1")

	if got := hub.WatcherCount("conv-1"); got != 1 {
		t.Fatalf("watcher count = %d, want 1", got)
	}
	cancel()
	if got := hub.WatcherCount("conv-1"); got != 0 {
		t.Errorf("watcher count after cancel = %d, want 0", got)
	}

	// Notifying with no watchers must not panic or block.
	hub.NotifyAppend("conv-1", 1)
}

func TestHubDropsWhenSlow(t *testing.T) {
	hub := NewHub()
	ch, cancel := hub.Subscribe("conv-1")
	defer cancel()

	// Overfill the subscriber buffer; the surplus is dropped, not blocked.
	for i := 0; i < subscriberBuffer+4; i++ {
		hub.NotifyAppend("conv-1", int64(i))
	}

	if got := len(ch); got != subscriberBuffer {
		t.Errorf("buffered signals = %d, want %d", got, subscriberBuffer)
	}
}
