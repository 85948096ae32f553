// Package notifier pushes cache-invalidation hints to a user's live
// sessions. Delivery is best effort: the requests collection stays the
// source of truth and an event carries no state a fetch would not see.
package notifier

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/pkg/errors"

	"github.com/Harishsaini91/BlenderHub-sub001/cache"
	"github.com/Harishsaini91/BlenderHub-sub001/util"
)

// Event tells a session what changed so it can refetch.
type Event struct {
	Kind           string    `json:"kind"`
	Category       string    `json:"category"`
	CounterpartyID string    `json:"counterpartyId"`
	OccurredAt     time.Time `json:"occurredAt"`
}

// event kinds
const (
	KindRequestReceived = "request.received"
	KindRequestResolved = "request.resolved"
)

// Notifier - publish/subscribe channel keyed by user identifier. The
// transport is swappable; production rides redis pub/sub.
type Notifier interface {
	Publish(userID string, event Event) error
	Subscribe(userID string) (<-chan Event, error)
}

type redisNotifier struct {
	cache *cache.Cache
}

// NewRedis creates a Notifier on top of the redis cache client.
func NewRedis(c *cache.Cache) Notifier {
	return &redisNotifier{cache: c}
}

func channelFor(userID string) string {
	return fmt.Sprintf("user:%s:events", userID)
}

func (n *redisNotifier) Publish(userID string, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return errors.Wrap(err, "unable to marshal event")
	}
	return n.cache.Publish(channelFor(userID), string(payload))
}

func (n *redisNotifier) Subscribe(userID string) (<-chan Event, error) {
	msgs, err := n.cache.Subscribe(channelFor(userID))
	if err != nil {
		return nil, errors.Wrap(err, "unable to subscribe to user channel")
	}

	events := make(chan Event)
	go func() {
		defer util.RecoverGoroutinePanic(nil)
		defer close(events)
		for msg := range msgs {
			var event Event
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				continue
			}
			events <- event
		}
	}()
	return events, nil
}
