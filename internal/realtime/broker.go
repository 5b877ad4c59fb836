package realtime

import (
	"sync"

	"github.com/rs/zerolog/log"
)

type EventKind string

const (
	EventInsert EventKind = "insert"
	EventUpdate EventKind = "update"
)

// Event is one change notification for a row in a named collection.
type Event struct {
	Collection string      `json:"collection"`
	Kind       EventKind   `json:"kind"`
	Row        interface{} `json:"row"`
}

// FilterFunc decides whether a subscription wants an event. A nil filter
// matches everything in the collection.
type FilterFunc func(Event) bool

// Subscription is a cancellable event stream. Close is idempotent and must
// be called when the consuming view deactivates.
type Subscription struct {
	C chan Event

	broker     *Broker
	collection string
	filter     FilterFunc
	once       sync.Once
}

func (s *Subscription) Close() {
	s.once.Do(func() {
		s.broker.remove(s)
		close(s.C)
	})
}

// Broker fans change events out to subscribers, keyed by collection name.
// Delivery is at-least-once from the consumer's perspective: publishers may
// emit the same logical row more than once, and merge logic downstream must
// de-duplicate. A subscriber that cannot keep up loses events rather than
// blocking publishers.
type Broker struct {
	mu   sync.RWMutex
	subs map[string]map[*Subscription]struct{}
}

func NewBroker() *Broker {
	return &Broker{subs: make(map[string]map[*Subscription]struct{})}
}

const subscriptionBuffer = 64

func (b *Broker) Subscribe(collection string, filter FilterFunc) *Subscription {
	sub := &Subscription{
		C:          make(chan Event, subscriptionBuffer),
		broker:     b,
		collection: collection,
		filter:     filter,
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.subs[collection] == nil {
		b.subs[collection] = make(map[*Subscription]struct{})
	}
	b.subs[collection][sub] = struct{}{}
	return sub
}

func (b *Broker) Publish(event Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for sub := range b.subs[event.Collection] {
		if sub.filter != nil && !sub.filter(event) {
			continue
		}
		select {
		case sub.C <- event:
		default:
			log.Warn().
				Str("collection", event.Collection).
				Msg("slow realtime subscriber, event dropped")
		}
	}
}

func (b *Broker) remove(sub *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if set, ok := b.subs[sub.collection]; ok {
		delete(set, sub)
		if len(set) == 0 {
			delete(b.subs, sub.collection)
		}
	}
}

// SubscriberCount reports live subscriptions for a collection.
func (b *Broker) SubscriberCount(collection string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[collection])
}
