package request

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Harishsaini91/BlenderHub-sub001/consts"
	"github.com/Harishsaini91/BlenderHub-sub001/model"
)

func pendingEntry(id, target string) model.Entry {
	return model.Entry{
		ID:           id,
		TargetUserID: target,
		Status:       consts.StatusPending,
		Date:         time.Now().UTC(),
	}
}

func TestMemStoreAppendSentGuard(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()

	err := store.AppendSent(ctx, "u1", "Ada", consts.Connection, pendingEntry("e1", "u2"))
	require.NoError(t, err)

	// second pending entry for the same counterparty is refused
	err = store.AppendSent(ctx, "u1", "Ada", consts.Connection, pendingEntry("e2", "u2"))
	assert.Equal(t, ErrDuplicatePending, err)

	// a different counterparty or category is fine
	err = store.AppendSent(ctx, "u1", "Ada", consts.Connection, pendingEntry("e3", "u3"))
	assert.NoError(t, err)
	err = store.AppendSent(ctx, "u1", "Ada", consts.Team, pendingEntry("e4", "u2"))
	assert.NoError(t, err)
}

func TestMemStoreResolveEntryCompareAndSet(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()

	err := store.ResolveEntry(ctx, "u1", consts.Team, SideReceived, "e1", consts.StatusPending, consts.StatusAccepted)
	assert.Equal(t, ErrNoRecord, err)

	require.NoError(t, store.AppendReceived(ctx, "u1", "", consts.Team, pendingEntry("e1", "u2")))

	err = store.ResolveEntry(ctx, "u1", consts.Team, SideReceived, "missing", consts.StatusPending, consts.StatusAccepted)
	assert.Equal(t, ErrNoEntry, err)

	err = store.ResolveEntry(ctx, "u1", consts.Team, SideReceived, "e1", consts.StatusPending, consts.StatusAccepted)
	require.NoError(t, err)

	// the guard no longer matches once the status moved
	err = store.ResolveEntry(ctx, "u1", consts.Team, SideReceived, "e1", consts.StatusPending, consts.StatusRejected)
	assert.Equal(t, ErrEntryResolved, err)

	record, err := store.GetRecord(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, consts.StatusAccepted, record.Team.Received[0].Status)
}

func TestMemStoreFindNewestMatch(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()

	resolved := pendingEntry("e1", "u2")
	resolved.Status = consts.StatusRejected
	require.NoError(t, store.AppendSent(ctx, "u1", "", consts.Connection, resolved))
	require.NoError(t, store.AppendSent(ctx, "u1", "", consts.Connection, pendingEntry("e2", "u2")))

	entry, err := store.FindEntry(ctx, "u1", consts.Connection, SideSent, "u2")
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, "e2", entry.ID)

	pending, err := store.FindPending(ctx, "u1", consts.Connection, SideSent, "u2")
	require.NoError(t, err)
	require.NotNil(t, pending)
	assert.Equal(t, "e2", pending.ID)

	none, err := store.FindPending(ctx, "u1", consts.Connection, SideSent, "u9")
	require.NoError(t, err)
	assert.Nil(t, none)

	none, err = store.FindEntry(ctx, "ghost", consts.Connection, SideSent, "u2")
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestMemStoreRemoveEntry(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()

	require.NoError(t, store.AppendSent(ctx, "u1", "", consts.Event, pendingEntry("e1", "u2")))
	require.NoError(t, store.RemoveEntry(ctx, "u1", consts.Event, SideSent, "e1"))

	record, err := store.GetRecord(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, record.Event.Sent)

	// removing from an unknown user is a no-op
	assert.NoError(t, store.RemoveEntry(ctx, "ghost", consts.Event, SideSent, "e1"))
}

func TestMemStoreGetRecordIsACopy(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()

	require.NoError(t, store.AppendSent(ctx, "u1", "Ada", consts.Team, pendingEntry("e1", "u2")))

	record, err := store.GetRecord(ctx, "u1")
	require.NoError(t, err)
	record.Team.Sent[0].Status = consts.StatusAccepted

	again, err := store.GetRecord(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, consts.StatusPending, again.Team.Sent[0].Status)
	assert.Equal(t, "Ada", again.OwnerName)

	_, err = store.GetRecord(ctx, "ghost")
	assert.Equal(t, ErrNoRecord, err)
}
