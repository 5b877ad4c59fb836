package realtime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBrokerDeliversToMatchingSubscribers(t *testing.T) {
	b := NewBroker()

	all := b.Subscribe("messages", nil)
	defer all.Close()

	filtered := b.Subscribe("messages", func(e Event) bool {
		row, _ := e.Row.(map[string]string)
		return row["thread_id"] == "t1"
	})
	defer filtered.Close()

	other := b.Subscribe("verses", nil)
	defer other.Close()

	b.Publish(Event{Collection: "messages", Kind: EventInsert, Row: map[string]string{"thread_id": "t2"}})
	b.Publish(Event{Collection: "messages", Kind: EventInsert, Row: map[string]string{"thread_id": "t1"}})

	require.Len(t, drain(all.C), 2)
	got := drain(filtered.C)
	require.Len(t, got, 1)
	require.Equal(t, "t1", got[0].Row.(map[string]string)["thread_id"])
	require.Empty(t, drain(other.C))
}

func TestBrokerCloseIsIdempotent(t *testing.T) {
	b := NewBroker()

	sub := b.Subscribe("verses", nil)
	require.Equal(t, 1, b.SubscriberCount("verses"))

	sub.Close()
	sub.Close() // second close must not panic
	require.Equal(t, 0, b.SubscriberCount("verses"))

	// publish after close must not panic either
	b.Publish(Event{Collection: "verses", Kind: EventInsert})
}

func TestBrokerSlowSubscriberDoesNotBlockPublish(t *testing.T) {
	b := NewBroker()

	sub := b.Subscribe("messages", nil)
	defer sub.Close()

	done := make(chan struct{})
	go func() {
		for i := 0; i < subscriptionBuffer*2; i++ {
			b.Publish(Event{Collection: "messages", Kind: EventInsert, Row: i})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked on a slow subscriber")
	}
}

func drain(c chan Event) []Event {
	var out []Event
	for {
		select {
		case e := <-c:
			out = append(out, e)
		default:
			return out
		}
	}
}
