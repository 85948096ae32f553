package request

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Harishsaini91/BlenderHub-sub001/app/config"
	"github.com/Harishsaini91/BlenderHub-sub001/consts"
	"github.com/Harishsaini91/BlenderHub-sub001/model"
	"github.com/Harishsaini91/BlenderHub-sub001/notifier"
)

type recordingNotifier struct {
	mu     sync.Mutex
	events map[string][]notifier.Event
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{events: make(map[string][]notifier.Event)}
}

func (r *recordingNotifier) Publish(userID string, event notifier.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events[userID] = append(r.events[userID], event)
	return nil
}

func (r *recordingNotifier) Subscribe(userID string) (<-chan notifier.Event, error) {
	return nil, nil
}

func (r *recordingNotifier) eventsFor(userID string) []notifier.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]notifier.Event(nil), r.events[userID]...)
}

type recordingFeed struct {
	mu            sync.Mutex
	created       []model.Notification
	failCreations bool
}

func (f *recordingFeed) CreateNotification(n *model.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCreations {
		return errors.New("feed down")
	}
	f.created = append(f.created, *n)
	return nil
}

func (f *recordingFeed) MarkNotificationAsRead(notificationID, userID string) error { return nil }
func (f *recordingFeed) MarkAllNotificationAsRead(userID string) error              { return nil }
func (f *recordingFeed) GetNotificationList(userID string) ([]model.Notification, error) {
	return nil, nil
}
func (f *recordingFeed) GetNotificationDisplayCount(userID string) (int64, error) { return 0, nil }

func newTestService() (Service, *recordingNotifier, *recordingFeed) {
	rt := newRecordingNotifier()
	feed := &recordingFeed{}
	svc := NewService(&config.Config{}, NewMemStore(), rt, feed)
	return svc, rt, feed
}

func TestSendInviteCreatesMirroredEntries(t *testing.T) {
	svc, rt, feed := newTestService()
	ctx := context.Background()

	entry, err := svc.SendInvite(ctx, consts.Team, "u1", "u2", &model.InvitePayload{
		SenderName:   "Ada",
		ReceiverName: "Ben",
		Skills:       []string{"rigging"},
	})
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, consts.StatusPending, entry.Status)
	assert.Equal(t, "u2", entry.TargetUserID)
	assert.Equal(t, "u2", entry.ReceiverID)
	assert.Equal(t, "Ben", entry.ReceiverName)

	senderView, err := svc.ListInvites(ctx, "u1", consts.Team)
	require.NoError(t, err)
	require.Len(t, senderView.Sent, 1)
	assert.Empty(t, senderView.Received)

	receiverView, err := svc.ListInvites(ctx, "u2", consts.Team)
	require.NoError(t, err)
	require.Len(t, receiverView.Received, 1)
	assert.Empty(t, receiverView.Sent)

	mirror := receiverView.Received[0]
	assert.Equal(t, entry.ID, mirror.ID)
	assert.Equal(t, entry.Date, mirror.Date)
	assert.Equal(t, consts.StatusPending, mirror.Status)
	assert.Equal(t, "u1", mirror.SenderID)
	assert.Equal(t, "Ada", mirror.SenderName)
	assert.Equal(t, []string{"rigging"}, mirror.Skills)

	// recipient got exactly one live hint and one feed item
	events := rt.eventsFor("u2")
	require.Len(t, events, 1)
	assert.Equal(t, notifier.KindRequestReceived, events[0].Kind)
	assert.Equal(t, "u1", events[0].CounterpartyID)
	require.Len(t, feed.created, 1)
	assert.Equal(t, consts.RequestReceived, feed.created[0].ActionType)
	assert.Equal(t, "u2", feed.created[0].RecipientID)
}

func TestSendInviteValidation(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.SendInvite(ctx, consts.Connection, "u1", "u1", nil)
	assert.ErrorIs(t, err, consts.InvalidRequestError)

	_, err = svc.SendInvite(ctx, "friendship", "u1", "u2", nil)
	assert.ErrorIs(t, err, consts.InvalidRequestError)

	_, err = svc.SendInvite(ctx, consts.Connection, "", "u2", nil)
	assert.ErrorIs(t, err, consts.InvalidRequestError)
}

func TestSendInviteDuplicatePending(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.SendInvite(ctx, consts.Connection, "u1", "u2", nil)
	require.NoError(t, err)

	_, err = svc.SendInvite(ctx, consts.Connection, "u1", "u2", nil)
	assert.ErrorIs(t, err, consts.ConflictError)

	// same pair, other category: no conflict
	_, err = svc.SendInvite(ctx, consts.Team, "u1", "u2", nil)
	assert.NoError(t, err)

	// after resolution the pair may interact again
	_, err = svc.Respond(ctx, consts.Connection, "u2", "u1", consts.StatusRejected)
	require.NoError(t, err)
	_, err = svc.SendInvite(ctx, consts.Connection, "u1", "u2", nil)
	assert.NoError(t, err)
}

func TestRespondResolvesBothSides(t *testing.T) {
	svc, rt, feed := newTestService()
	ctx := context.Background()

	_, err := svc.SendInvite(ctx, consts.Team, "u1", "u2", &model.InvitePayload{Skills: []string{"rigging"}})
	require.NoError(t, err)

	status, err := svc.Respond(ctx, consts.Team, "u2", "u1", consts.StatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, consts.StatusAccepted, status)

	senderView, err := svc.ListInvites(ctx, "u1", consts.Team)
	require.NoError(t, err)
	require.Len(t, senderView.Sent, 1)
	assert.Equal(t, consts.StatusAccepted, senderView.Sent[0].Status)

	receiverView, err := svc.ListInvites(ctx, "u2", consts.Team)
	require.NoError(t, err)
	require.Len(t, receiverView.Received, 1)
	assert.Equal(t, consts.StatusAccepted, receiverView.Received[0].Status)

	// the original sender hears about the resolution
	events := rt.eventsFor("u1")
	require.Len(t, events, 1)
	assert.Equal(t, notifier.KindRequestResolved, events[0].Kind)

	var actions []string
	for _, n := range feed.created {
		if n.RecipientID == "u1" {
			actions = append(actions, n.ActionType)
		}
	}
	assert.Equal(t, []string{consts.RequestAccepted}, actions)
}

func TestRespondIsTerminal(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.SendInvite(ctx, consts.Challenge, "u1", "u2", nil)
	require.NoError(t, err)

	_, err = svc.Respond(ctx, consts.Challenge, "u2", "u1", consts.StatusRejected)
	require.NoError(t, err)

	_, err = svc.Respond(ctx, consts.Challenge, "u2", "u1", consts.StatusAccepted)
	assert.ErrorIs(t, err, consts.AlreadyResolvedError)

	// the first decision sticks on both sides
	receiverView, err := svc.ListInvites(ctx, "u2", consts.Challenge)
	require.NoError(t, err)
	assert.Equal(t, consts.StatusRejected, receiverView.Received[0].Status)
	senderView, err := svc.ListInvites(ctx, "u1", consts.Challenge)
	require.NoError(t, err)
	assert.Equal(t, consts.StatusRejected, senderView.Sent[0].Status)
}

func TestRespondValidation(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Respond(ctx, consts.Team, "u2", "u1", consts.StatusAccepted)
	assert.ErrorIs(t, err, consts.NotFoundError)

	_, err = svc.SendInvite(ctx, consts.Team, "u1", "u2", nil)
	require.NoError(t, err)

	_, err = svc.Respond(ctx, consts.Team, "u2", "u1", "maybe")
	assert.ErrorIs(t, err, consts.InvalidRequestError)

	_, err = svc.Respond(ctx, "friendship", "u2", "u1", consts.StatusAccepted)
	assert.ErrorIs(t, err, consts.InvalidRequestError)

	// responding user must be the receiver, not the sender
	_, err = svc.Respond(ctx, consts.Team, "u1", "u2", consts.StatusAccepted)
	assert.ErrorIs(t, err, consts.NotFoundError)
}

func TestConcurrentRespondSingleWinner(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.SendInvite(ctx, consts.Connection, "u1", "u2", nil)
	require.NoError(t, err)

	const responders = 32
	decisions := [2]string{consts.StatusAccepted, consts.StatusRejected}

	var wg sync.WaitGroup
	results := make([]error, responders)
	winners := make([]string, responders)
	for i := 0; i < responders; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			decision := decisions[i%2]
			_, err := svc.Respond(ctx, consts.Connection, "u2", "u1", decision)
			results[i] = err
			winners[i] = decision
		}(i)
	}
	wg.Wait()

	var won []string
	for i, err := range results {
		if err == nil {
			won = append(won, winners[i])
		} else {
			assert.ErrorIs(t, err, consts.AlreadyResolvedError)
		}
	}
	require.Len(t, won, 1, "exactly one respond call must win")

	receiverView, err := svc.ListInvites(ctx, "u2", consts.Connection)
	require.NoError(t, err)
	assert.Equal(t, won[0], receiverView.Received[0].Status)
	senderView, err := svc.ListInvites(ctx, "u1", consts.Connection)
	require.NoError(t, err)
	assert.Equal(t, won[0], senderView.Sent[0].Status)
}

func TestFeedFailureDoesNotFailOperation(t *testing.T) {
	rt := newRecordingNotifier()
	feed := &recordingFeed{failCreations: true}
	svc := NewService(&config.Config{}, NewMemStore(), rt, feed)
	ctx := context.Background()

	_, err := svc.SendInvite(ctx, consts.Connection, "u1", "u2", nil)
	assert.NoError(t, err)

	_, err = svc.Respond(ctx, consts.Connection, "u2", "u1", consts.StatusAccepted)
	assert.NoError(t, err)

	// live hints still went out even though the feed was down
	assert.Len(t, rt.eventsFor("u2"), 1)
	assert.Len(t, rt.eventsFor("u1"), 1)
}

func TestListInvitesUnknownUserIsEmpty(t *testing.T) {
	svc, _, _ := newTestService()

	view, err := svc.ListInvites(context.Background(), "nobody", consts.Event)
	require.NoError(t, err)
	assert.Empty(t, view.Sent)
	assert.Empty(t, view.Received)
	assert.NotNil(t, view.Sent)
	assert.NotNil(t, view.Received)

	_, err = svc.ListInvites(context.Background(), "nobody", "friendship")
	assert.ErrorIs(t, err, consts.InvalidRequestError)
}

func TestPayloadShapeFollowsCategory(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	payload := &model.InvitePayload{
		Skills:           []string{"sculpting"},
		EventID:          "ev-9",
		EventName:        "BlendJam",
		EventDescription: "48h sprint",
		Link:             "https://example.com/ev-9",
		Passkey:          "open-sesame",
	}

	entry, err := svc.SendInvite(ctx, consts.Event, "u1", "u2", payload)
	require.NoError(t, err)
	assert.Empty(t, entry.Skills)
	assert.Equal(t, "ev-9", entry.EventID)
	assert.Equal(t, "BlendJam", entry.EventName)
	assert.Equal(t, "open-sesame", entry.Passkey)

	entry, err = svc.SendInvite(ctx, consts.Connection, "u1", "u3", payload)
	require.NoError(t, err)
	assert.Empty(t, entry.Skills)
	assert.Empty(t, entry.EventID)

	entry, err = svc.SendInvite(ctx, consts.Challenge, "u1", "u4", payload)
	require.NoError(t, err)
	assert.Equal(t, []string{"sculpting"}, entry.Skills)
	assert.Empty(t, entry.EventID)
}

func TestOrderIsInsertionOrder(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	for _, sender := range []string{"a", "b", "c"} {
		_, err := svc.SendInvite(ctx, consts.Connection, sender, "u2", nil)
		require.NoError(t, err)
	}

	view, err := svc.ListInvites(ctx, "u2", consts.Connection)
	require.NoError(t, err)
	require.Len(t, view.Received, 3)
	assert.Equal(t, "a", view.Received[0].SenderID)
	assert.Equal(t, "b", view.Received[1].SenderID)
	assert.Equal(t, "c", view.Received[2].SenderID)

	// resolving one entry does not reorder the list
	_, err = svc.Respond(ctx, consts.Connection, "u2", "b", consts.StatusAccepted)
	require.NoError(t, err)
	view, err = svc.ListInvites(ctx, "u2", consts.Connection)
	require.NoError(t, err)
	assert.Equal(t, "b", view.Received[1].SenderID)
	assert.Equal(t, consts.StatusAccepted, view.Received[1].Status)
}
