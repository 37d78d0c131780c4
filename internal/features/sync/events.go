package sync

import (
	stdsync "sync"
	"time"
)

// Event is a live status update for one sync operation, pushed to
// dashboard websocket clients.
type Event struct {
	Type        string          `json:"type"`
	LogID       string          `json:"log_id"`
	FacilityID  string          `json:"source_facility_id"`
	TargetID    string          `json:"target_id"`
	Status      OperationStatus `json:"status"`
	RecordCount int             `json:"record_count"`
	Timestamp   time.Time       `json:"timestamp"`
}

// Broadcaster fans out operation events to subscribers. Slow subscribers
// lose events rather than block the orchestrator.
type Broadcaster struct {
	mu   stdsync.RWMutex
	subs map[chan Event]struct{}
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subs: make(map[chan Event]struct{}),
	}
}

// Subscribe returns a channel receiving all future events. The caller
// must Unsubscribe when done.
func (b *Broadcaster) Subscribe() chan Event {
	ch := make(chan Event, 16)
	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

func (b *Broadcaster) Unsubscribe(ch chan Event) {
	b.mu.Lock()
	if _, ok := b.subs[ch]; ok {
		delete(b.subs, ch)
		close(ch)
	}
	b.mu.Unlock()
}

func (b *Broadcaster) Publish(ev Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for ch := range b.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}
