package services

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/celadonapp/celadon-backend/internal/database"
	"github.com/celadonapp/celadon-backend/internal/models"
)

const feedChannel = "celadon:feed"

// Feed event types delivered over the WebSocket gateway.
const (
	FeedEventEntry       = "entry"
	FeedEventSuggestions = "location_suggestions"
	FeedEventError       = "error"
	FeedEventPong        = "pong"
)

// FeedEvent is the payload broadcast over Redis and WebSocket.
type FeedEvent struct {
	Type        string               `json:"type"`
	Entry       *models.JournalEntry `json:"entry,omitempty"`
	Input       string               `json:"input,omitempty"`
	Suggestions []string             `json:"suggestions,omitempty"`
	Error       string               `json:"error,omitempty"`
	Timestamp   time.Time            `json:"timestamp,omitempty"`
}

// feedSubscriber is one WebSocket connection's view of the feed.
type feedSubscriber struct {
	userID string
	events chan FeedEvent
}

// FeedHub is the per-instance registry of feed subscribers. Entry events
// fan out only to subscribers the entry is shared with.
type FeedHub struct {
	mu     sync.RWMutex
	nextID uint64
	subs   map[uint64]*feedSubscriber
}

var (
	feedHub        = &FeedHub{subs: make(map[uint64]*feedSubscriber)}
	feedSubStarted sync.Once
)

// FeedSubscribe registers a subscriber for the given user. The returned
// cancel func must be called on disconnect.
func FeedSubscribe(userID string) (<-chan FeedEvent, func()) {
	sub := &feedSubscriber{
		userID: userID,
		events: make(chan FeedEvent, 16),
	}

	feedHub.mu.Lock()
	feedHub.nextID++
	id := feedHub.nextID
	feedHub.subs[id] = sub
	feedHub.mu.Unlock()

	cancel := func() {
		feedHub.mu.Lock()
		if _, ok := feedHub.subs[id]; ok {
			delete(feedHub.subs, id)
			close(sub.events)
		}
		feedHub.mu.Unlock()
	}
	return sub.events, cancel
}

// fanOutFeedEvent delivers an entry event to every local subscriber the
// entry is shared with. Slow consumers are skipped, not waited on.
func fanOutFeedEvent(event FeedEvent) {
	if event.Entry == nil {
		return
	}

	feedHub.mu.RLock()
	defer feedHub.mu.RUnlock()

	for _, sub := range feedHub.subs {
		shared := false
		for _, id := range event.Entry.SharedWith {
			if id == sub.userID {
				shared = true
				break
			}
		}
		if !shared {
			continue
		}
		select {
		case sub.events <- event:
		default:
		}
	}
}

// PublishFeedEntry publishes a freshly saved entry to Redis; each instance's
// subscriber fans it out to its local WebSocket connections.
func PublishFeedEntry(ctx context.Context, entry models.JournalEntry) error {
	event := FeedEvent{
		Type:      FeedEventEntry,
		Entry:     &entry,
		Timestamp: time.Now().UTC(),
	}
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return database.RedisClient.Publish(ctx, feedChannel, data).Err()
}

// StartFeedSubscriber ensures a single shared Redis listener per instance.
func StartFeedSubscriber(ctx context.Context) {
	feedSubStarted.Do(func() {
		go runFeedSubscriber(ctx)
	})
}

func runFeedSubscriber(ctx context.Context) {
	client := database.RedisClient
	if client == nil {
		log.Println("Redis client not initialized; feed subscriber not started")
		return
	}

	backoff := time.Second

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		func() {
			pubsub := client.Subscribe(ctx, feedChannel)
			defer pubsub.Close()

			log.Printf("✅ Feed Redis subscriber started (channel: %s)", feedChannel)

			for {
				msg, err := pubsub.ReceiveMessage(ctx)
				if err != nil {
					if ctx.Err() != nil {
						return
					}
					log.Printf("Feed subscriber error: %v", err)
					time.Sleep(backoff)
					backoff *= 2
					if backoff > 30*time.Second {
						backoff = 30 * time.Second
					}
					return
				}

				backoff = time.Second

				var event FeedEvent
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					log.Printf("failed to unmarshal feed event: %v", err)
					continue
				}

				fanOutFeedEvent(event)
			}
		}()
	}
}
