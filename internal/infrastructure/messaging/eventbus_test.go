package messaging

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polaris-hub/polaris-mentoring-hub/internal/domain/mentoring"
	"github.com/polaris-hub/polaris-mentoring-hub/internal/domain/shared"
)

func newSyncBus() *InMemoryEventBus {
	return NewInMemoryEventBus(InMemoryEventBusConfig{
		AsyncMode:     false,
		EnableMetrics: true,
	})
}

func TestInMemoryEventBus_PublishSubscribe(t *testing.T) {
	bus := newSyncBus()
	defer bus.Close()

	var received []shared.Event
	err := bus.Subscribe(shared.EventSurveySubmitted, func(e shared.Event) error {
		received = append(received, e)
		return nil
	})
	require.NoError(t, err)

	event := shared.NewSurveySubmittedEvent("user-1", "survey-1", false)
	require.NoError(t, bus.Publish(event))

	require.Len(t, received, 1)
	assert.Equal(t, shared.EventSurveySubmitted, received[0].EventType())
	assert.Equal(t, "user-1", received[0].AggregateID())
}

func TestInMemoryEventBus_SubscribeAll(t *testing.T) {
	bus := newSyncBus()
	defer bus.Close()

	count := 0
	require.NoError(t, bus.SubscribeAll(func(shared.Event) error {
		count++
		return nil
	}))

	require.NoError(t, bus.Publish(shared.NewSurveySubmittedEvent("u", "s", false)))
	require.NoError(t, bus.Publish(shared.NewSurveySubmittedEvent("u", "s2", true)))

	assert.Equal(t, 2, count)

	snap := bus.Metrics().Snapshot()
	assert.Equal(t, int64(2), snap.TotalPublished)
	assert.Equal(t, int64(2), snap.TotalHandlerExecs)
}

func TestInMemoryEventBus_ClosedBusRejectsPublish(t *testing.T) {
	bus := newSyncBus()
	require.NoError(t, bus.Close())

	err := bus.Publish(shared.NewSurveySubmittedEvent("u", "s", false))
	assert.ErrorIs(t, err, ErrEventBusClosed)
}

func TestInMemoryEventBus_AsyncDelivery(t *testing.T) {
	bus := NewInMemoryEventBus(InMemoryEventBusConfig{
		AsyncMode:      true,
		WorkerPoolSize: 2,
	})

	var mu sync.Mutex
	count := 0
	require.NoError(t, bus.Subscribe(shared.EventSurveySubmitted, func(shared.Event) error {
		mu.Lock()
		count++
		mu.Unlock()
		return nil
	}))

	for i := 0; i < 5; i++ {
		require.NoError(t, bus.Publish(shared.NewSurveySubmittedEvent("u", "s", false)))
	}

	// Close waits for in-flight handlers.
	require.NoError(t, bus.Close())

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 5, count)
}

// trackingCache records invalidations for the invalidator tests.
type trackingCache struct {
	mu          sync.Mutex
	invalidated []shared.UserID
}

func (c *trackingCache) GetRanking(context.Context, shared.UserID) ([]mentoring.ScoredCandidate, int, bool, error) {
	return nil, 0, false, nil
}

func (c *trackingCache) SetRanking(context.Context, shared.UserID, []mentoring.ScoredCandidate, int) error {
	return nil
}

func (c *trackingCache) Invalidate(_ context.Context, userID shared.UserID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated = append(c.invalidated, userID)
	return nil
}

func TestCacheInvalidator_DropsRankingOnRetake(t *testing.T) {
	bus := newSyncBus()
	defer bus.Close()

	cache := &trackingCache{}
	invalidator := NewCacheInvalidator(cache, nil)
	require.NoError(t, invalidator.Register(bus))

	userID := "11111111-1111-1111-1111-111111111111"
	require.NoError(t, bus.Publish(shared.NewSurveySubmittedEvent(userID, "survey-1", true)))

	require.Len(t, cache.invalidated, 1)
	assert.Equal(t, shared.UserID(userID), cache.invalidated[0])
}
