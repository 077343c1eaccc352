package store

import (
	"time"

	"local-market-backend/internal/model"
	"local-market-backend/internal/query"
)

// SubscriptionStore holds web push subscriptions keyed by endpoint.
type SubscriptionStore struct {
	*Collection[model.PushSubscription, *model.PushSubscription]
}

func NewSubscriptionStore(opts Options) *SubscriptionStore {
	return &SubscriptionStore{Collection: NewCollection[model.PushSubscription](KeySubscriptions, opts)}
}

// Put inserts sub or replaces the subscription with the same endpoint.
func (s *SubscriptionStore) Put(sub model.PushSubscription) (model.PushSubscription, error) {
	if sub.Endpoint == "" {
		return model.PushSubscription{}, invalidField("endpoint", "endpoint is required")
	}
	if sub.CreatedAt.IsZero() {
		sub.CreatedAt = time.Now().UTC()
	}
	s.Mutate(func(items []model.PushSubscription) []model.PushSubscription {
		for i := range items {
			if items[i].Endpoint == sub.Endpoint {
				sub.CreatedAt = items[i].CreatedAt
				items[i] = sub
				return items
			}
		}
		return append(items, sub)
	})
	return sub, nil
}

func (s *SubscriptionStore) Remove(endpoint string) Result {
	return s.Delete(endpoint)
}

// ForBooking lists the subscriptions that want updates about bookingID.
func (s *SubscriptionStore) ForBooking(bookingID string) []model.PushSubscription {
	subs, _ := query.Partition(s.List(), func(sub model.PushSubscription) bool {
		return sub.Covers(bookingID)
	})
	return subs
}
