package live

import (
	"testing"
	"time"
)

func TestPublishReachesSubscribers(t *testing.T) {
	b := NewBroker()
	defer b.Close()

	ch1, cancel1 := b.Subscribe()
	ch2, cancel2 := b.Subscribe()
	defer cancel1()
	defer cancel2()

	b.Publish(Event{Collection: "sales", Action: "create", ID: "s1"})

	for i, ch := range []<-chan Event{ch1, ch2} {
		select {
		case e := <-ch:
			if e.ID != "s1" || e.At.IsZero() {
				t.Errorf("subscriber %d got %+v", i, e)
			}
		case <-time.After(time.Second):
			t.Fatalf("subscriber %d got nothing", i)
		}
	}
}

func TestCancelStopsDelivery(t *testing.T) {
	b := NewBroker()
	defer b.Close()

	ch, cancel := b.Subscribe()
	cancel()
	cancel() // idempotent

	if _, open := <-ch; open {
		t.Error("channel still open after cancel")
	}

	// Publishing after cancel must not panic or block.
	b.Publish(Event{Collection: "sales", Action: "delete", ID: "s2"})
}

func TestSlowSubscriberDropsEvents(t *testing.T) {
	b := NewBroker()
	defer b.Close()

	ch, cancel := b.Subscribe()
	defer cancel()

	// Overfill the buffer; the publisher must never block.
	done := make(chan struct{})
	go func() {
		for i := 0; i < subBuffer*3; i++ {
			b.Publish(Event{Collection: "sales", Action: "update", ID: "x"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publisher blocked on a slow subscriber")
	}

	if got := len(ch); got > subBuffer {
		t.Errorf("buffered %d events, cap %d", got, subBuffer)
	}
}

func TestSubscribeAfterClose(t *testing.T) {
	b := NewBroker()
	b.Close()

	ch, cancel := b.Subscribe()
	defer cancel()
	if _, open := <-ch; open {
		t.Error("subscription after close should be closed immediately")
	}
}
