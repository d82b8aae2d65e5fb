package pipeline

import (
	"sync"
	"sync/atomic"

	"github.com/floodguard/go-flood-alerts/internal/models"
)

// CityAlert pairs an emitted hazard alert with the city it was evaluated for.
type CityAlert struct {
	City  string
	Alert models.WeatherAlert
}

// Broadcaster fans CRITICAL and HIGH hazard alerts out to in-process
// subscribers (dashboard push, chat context refresh). Delivery is
// best-effort: a slow subscriber is skipped, never blocks an evaluation.
type Broadcaster struct {
	subscribers map[uint64]chan CityAlert
	nextID      atomic.Uint64
	mu          sync.RWMutex
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[uint64]chan CityAlert),
	}
}

func (b *Broadcaster) Subscribe() (uint64, chan CityAlert) {
	id := b.nextID.Add(1)
	ch := make(chan CityAlert, 64) // buffer for a full current+forecast evaluation burst

	b.mu.Lock()
	b.subscribers[id] = ch
	b.mu.Unlock()

	return id, ch
}

func (b *Broadcaster) Unsubscribe(id uint64) {
	b.mu.Lock()
	if ch, ok := b.subscribers[id]; ok {
		close(ch)
		delete(b.subscribers, id)
	}
	b.mu.Unlock()
}

func (b *Broadcaster) Broadcast(a CityAlert) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, ch := range b.subscribers {
		select {
		case ch <- a:
		default:
			// Skip slow subscribers
		}
	}
}

func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}

// Close closes all subscriber channels, causing consumers to exit gracefully
func (b *Broadcaster) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for id, ch := range b.subscribers {
		close(ch)
		delete(b.subscribers, id)
	}
}
