package events

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"
)

const subscriberBuffer = 256

// Subscription receives every event published to one topic, already
// marshaled, until Unsubscribe. A subscriber that stops draining loses
// events instead of blocking publishers.
type Subscription struct {
	Topic string
	C     chan []byte
}

// Broadcaster routes events to topic-scoped subscriber sets. Delivery is
// fire-and-forget and at-most-once; events a single goroutine publishes
// to one topic arrive at every subscriber of that topic in publish order.
type Broadcaster struct {
	mu     sync.RWMutex
	topics map[string]map[*Subscription]struct{}
	log    *zap.Logger
}

func NewBroadcaster(log *zap.Logger) *Broadcaster {
	return &Broadcaster{
		topics: make(map[string]map[*Subscription]struct{}),
		log:    log,
	}
}

func (b *Broadcaster) Subscribe(topic string) *Subscription {
	sub := &Subscription{
		Topic: topic,
		C:     make(chan []byte, subscriberBuffer),
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	subs, ok := b.topics[topic]
	if !ok {
		subs = make(map[*Subscription]struct{})
		b.topics[topic] = subs
	}
	subs[sub] = struct{}{}

	return sub
}

func (b *Broadcaster) Unsubscribe(sub *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs, ok := b.topics[sub.Topic]
	if !ok {
		return
	}
	if _, ok := subs[sub]; !ok {
		return
	}
	delete(subs, sub)
	if len(subs) == 0 {
		delete(b.topics, sub.Topic)
	}
	// Safe: publishes send while holding the read lock, so nobody is
	// mid-send on this channel here.
	close(sub.C)
}

// Publish delivers the event to every subscriber currently attached to
// the topic. A topic with no subscribers is a silent no-op.
func (b *Broadcaster) Publish(topic string, event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		b.log.Error("marshal event", zap.String("topic", topic), zap.Error(err))
		return
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	for sub := range b.topics[topic] {
		select {
		case sub.C <- data:
		default:
			b.log.Warn("subscriber buffer full, dropping event",
				zap.String("topic", topic),
				zap.String("type", string(event.Type)))
		}
	}
}

// SubscriberCount reports how many subscribers a topic currently has.
func (b *Broadcaster) SubscriberCount(topic string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.topics[topic])
}
