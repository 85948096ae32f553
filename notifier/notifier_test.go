package notifier_test

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Harishsaini91/BlenderHub-sub001/cache"
	"github.com/Harishsaini91/BlenderHub-sub001/consts"
	"github.com/Harishsaini91/BlenderHub-sub001/notifier"
)

func newTestNotifier(t *testing.T) notifier.Notifier {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	c := &cache.Cache{Client: redis.NewClient(&redis.Options{Addr: mr.Addr()})}
	t.Cleanup(func() { c.Close() })

	return notifier.NewRedis(c)
}

func TestPublishReachesSubscriber(t *testing.T) {
	n := newTestNotifier(t)

	events, err := n.Subscribe("u2")
	require.NoError(t, err)

	sent := notifier.Event{
		Kind:           notifier.KindRequestReceived,
		Category:       consts.Team,
		CounterpartyID: "u1",
		OccurredAt:     time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, n.Publish("u2", sent))

	select {
	case got := <-events:
		assert.Equal(t, sent.Kind, got.Kind)
		assert.Equal(t, sent.Category, got.Category)
		assert.Equal(t, sent.CounterpartyID, got.CounterpartyID)
		assert.True(t, sent.OccurredAt.Equal(got.OccurredAt))
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestPublishWithoutSubscriberIsDropped(t *testing.T) {
	n := newTestNotifier(t)

	// nobody listening: a hint simply evaporates
	err := n.Publish("u9", notifier.Event{Kind: notifier.KindRequestResolved, Category: consts.Connection})
	assert.NoError(t, err)
}

func TestChannelsAreKeyedByUser(t *testing.T) {
	n := newTestNotifier(t)

	events1, err := n.Subscribe("u1")
	require.NoError(t, err)
	events2, err := n.Subscribe("u2")
	require.NoError(t, err)

	require.NoError(t, n.Publish("u2", notifier.Event{Kind: notifier.KindRequestReceived, Category: consts.Event}))

	select {
	case <-events2:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event on u2")
	}

	select {
	case e := <-events1:
		t.Fatalf("u1 should not receive u2's event, got %+v", e)
	case <-time.After(100 * time.Millisecond):
	}
}
