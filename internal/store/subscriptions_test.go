package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"local-market-backend/internal/model"
)

func TestSubscriptionStore(t *testing.T) {
	s := NewSubscriptionStore(Options{})

	_, err := s.Put(model.PushSubscription{})
	assert.Error(t, err)

	first, err := s.Put(model.PushSubscription{Endpoint: "https://push/1", Auth: "a"})
	require.NoError(t, err)
	_, err = s.Put(model.PushSubscription{Endpoint: "https://push/2", BookingIDs: []string{"b2"}})
	require.NoError(t, err)

	replaced, err := s.Put(model.PushSubscription{Endpoint: "https://push/1", Auth: "b"})
	require.NoError(t, err)
	assert.Equal(t, first.CreatedAt, replaced.CreatedAt)
	assert.Equal(t, 2, s.Len())

	assert.Len(t, s.ForBooking("b1"), 1)
	assert.Len(t, s.ForBooking("b2"), 2)

	assert.Equal(t, Deleted, s.Remove("https://push/1"))
	assert.Equal(t, NotFound, s.Remove("https://push/1"))
}
