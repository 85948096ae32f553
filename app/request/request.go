package request

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Harishsaini91/BlenderHub-sub001/app/notification"
	"github.com/Harishsaini91/BlenderHub-sub001/consts"
	"github.com/Harishsaini91/BlenderHub-sub001/model"
	"github.com/Harishsaini91/BlenderHub-sub001/notifier"
)

func sendInvite(ctx context.Context, store Store, rt notifier.Notifier, feed notification.Service, category, fromUser, toUser string, payload *model.InvitePayload) (*model.Entry, error) {
	if payload == nil {
		payload = &model.InvitePayload{}
	}
	if err := validateParties(category, fromUser, toUser); err != nil {
		return nil, err
	}

	// fast duplicate check; the guarded append below closes the race window
	existing, err := store.FindPending(ctx, fromUser, category, SideSent, toUser)
	if err != nil {
		return nil, storeFailure(err, "unable to check for pending request")
	}
	if existing != nil {
		return nil, errors.Wrapf(consts.ConflictError, "pending %s request from %s to %s", category, fromUser, toUser)
	}

	sent, received := buildEntries(category, fromUser, toUser, payload)

	err = store.AppendSent(ctx, fromUser, payload.SenderName, category, sent)
	if err == ErrDuplicatePending {
		return nil, errors.Wrapf(consts.ConflictError, "pending %s request from %s to %s", category, fromUser, toUser)
	}
	if err != nil {
		return nil, storeFailure(err, "unable to record sent request")
	}

	err = store.AppendReceived(ctx, toUser, payload.ReceiverName, category, received)
	if err != nil {
		// undo the half-applied invite so neither party sees partial state
		if rbErr := store.RemoveEntry(ctx, fromUser, category, SideSent, sent.ID); rbErr != nil {
			logrus.WithError(rbErr).Errorf("unable to roll back sent entry %s for user %s", sent.ID, fromUser)
		}
		return nil, storeFailure(err, "unable to record received request")
	}

	deliverHints(rt, feed, toUser, fromUser, category, sent.ID,
		notifier.KindRequestReceived, consts.RequestReceived,
		"You have received a new "+category+" request")

	return &sent, nil
}

func respond(ctx context.Context, store Store, rt notifier.Notifier, feed notification.Service, category, respondingUser, counterpartyID, decision string) (string, error) {
	if err := validateParties(category, counterpartyID, respondingUser); err != nil {
		return "", err
	}
	if !consts.IsTerminalStatus(decision) {
		return "", errors.Wrapf(consts.InvalidRequestError, "unknown decision %q", decision)
	}

	entry, err := store.FindEntry(ctx, respondingUser, category, SideReceived, counterpartyID)
	if err != nil {
		return "", storeFailure(err, "unable to look up received request")
	}
	if entry == nil {
		return "", errors.Wrapf(consts.NotFoundError, "no %s request from %s to %s", category, counterpartyID, respondingUser)
	}
	if entry.Status != consts.StatusPending {
		return "", errors.Wrapf(consts.AlreadyResolvedError, "request is already %s", entry.Status)
	}

	// mirror must exist before anything is mutated
	mirror, err := store.FindEntry(ctx, counterpartyID, category, SideSent, respondingUser)
	if err != nil {
		return "", storeFailure(err, "unable to look up sent request")
	}
	if mirror == nil {
		return "", errors.Wrapf(consts.NotFoundError, "no mirrored %s request on sender %s", category, counterpartyID)
	}

	// compare-and-set on the receiver's copy decides the race: of N
	// concurrent responders exactly one passes, the rest see the entry
	// already resolved
	err = store.ResolveEntry(ctx, respondingUser, category, SideReceived, entry.ID, consts.StatusPending, decision)
	switch err {
	case nil:
	case ErrEntryResolved:
		return "", errors.Wrap(consts.AlreadyResolvedError, "request was resolved concurrently")
	case ErrNoEntry, ErrNoRecord:
		return "", errors.Wrapf(consts.NotFoundError, "no %s request from %s to %s", category, counterpartyID, respondingUser)
	default:
		return "", storeFailure(err, "unable to resolve received request")
	}

	err = store.ResolveEntry(ctx, counterpartyID, category, SideSent, mirror.ID, consts.StatusPending, decision)
	if err != nil {
		// receiver side already flipped; the winning CAS makes a competing
		// resolve of the mirror impossible, so this is a store fault
		return "", storeFailure(err, "unable to resolve sent request")
	}

	actionType := consts.RequestAccepted
	text := "Your " + category + " request has been accepted"
	if decision == consts.StatusRejected {
		actionType = consts.RequestRejected
		text = "Your " + category + " request has been rejected"
	}
	deliverHints(rt, feed, counterpartyID, respondingUser, category, entry.ID,
		notifier.KindRequestResolved, actionType, text)

	return decision, nil
}

func listInvites(ctx context.Context, store Store, userID, category string) (*model.Category, error) {
	if userID == "" {
		return nil, errors.Wrap(consts.InvalidRequestError, "missing user id")
	}
	if !consts.IsValidCategory(category) {
		return nil, errors.Wrapf(consts.InvalidRequestError, "unknown category %q", category)
	}

	record, err := store.GetRecord(ctx, userID)
	if err == ErrNoRecord {
		// records are created on first interaction; absent means empty
		return &model.Category{Sent: []model.Entry{}, Received: []model.Entry{}}, nil
	}
	if err != nil {
		return nil, storeFailure(err, "unable to fetch request record")
	}

	cat := *record.Category(category)
	if cat.Sent == nil {
		cat.Sent = []model.Entry{}
	}
	if cat.Received == nil {
		cat.Received = []model.Entry{}
	}
	return &cat, nil
}

func validateParties(category, fromUser, toUser string) error {
	if !consts.IsValidCategory(category) {
		return errors.Wrapf(consts.InvalidRequestError, "unknown category %q", category)
	}
	if fromUser == "" || toUser == "" {
		return errors.Wrap(consts.InvalidRequestError, "missing user id")
	}
	if fromUser == toUser {
		return errors.Wrap(consts.InvalidRequestError, "users cannot send requests to themselves")
	}
	return nil
}

// buildEntries creates the sender's copy and the recipient's mirror with a
// shared id and timestamp. Display fields are snapshots taken now; they are
// not refreshed when the users later rename themselves.
func buildEntries(category, fromUser, toUser string, payload *model.InvitePayload) (model.Entry, model.Entry) {
	now := time.Now().UTC()
	id := uuid.NewString()

	sent := model.Entry{
		ID:            id,
		TargetUserID:  toUser,
		ReceiverID:    toUser,
		ReceiverName:  payload.ReceiverName,
		ReceiverImage: payload.ReceiverImage,
		Status:        consts.StatusPending,
		Date:          now,
	}
	received := model.Entry{
		ID:           id,
		TargetUserID: fromUser,
		SenderID:     fromUser,
		SenderName:   payload.SenderName,
		SenderImage:  payload.SenderImage,
		Status:       consts.StatusPending,
		Date:         now,
	}

	switch category {
	case consts.Team, consts.Challenge:
		sent.Skills = append([]string(nil), payload.Skills...)
		received.Skills = append([]string(nil), payload.Skills...)
	case consts.Event:
		for _, entry := range []*model.Entry{&sent, &received} {
			entry.EventID = payload.EventID
			entry.EventName = payload.EventName
			entry.EventDescription = payload.EventDescription
			entry.Link = payload.Link
			entry.Passkey = payload.Passkey
		}
	}
	return sent, received
}

// deliverHints fires the activity-feed write and the live-session event.
// Both are cache-invalidation hints: failures are logged and never roll
// back the store mutation that preceded them.
func deliverHints(rt notifier.Notifier, feed notification.Service, recipientID, senderID, category, entryID, kind, actionType, text string) {
	if feed != nil {
		err := feed.CreateNotification(&model.Notification{
			ID:               primitive.NewObjectID(),
			RecipientID:      recipientID,
			SenderID:         senderID,
			Category:         category,
			EntryID:          entryID,
			ActionType:       actionType,
			NotificationText: text,
			IsRead:           false,
			CreatedDate:      time.Now().UTC(),
		})
		if err != nil {
			logrus.WithError(err).Errorf("unable to create %s notification for user %s", actionType, recipientID)
		}
	}

	if rt != nil {
		err := rt.Publish(recipientID, notifier.Event{
			Kind:           kind,
			Category:       category,
			CounterpartyID: senderID,
			OccurredAt:     time.Now().UTC(),
		})
		if err != nil {
			logrus.WithError(err).Errorf("unable to publish %s event for user %s", kind, recipientID)
		}
	}
}

func storeFailure(err error, message string) error {
	return errors.Wrapf(consts.StoreError, "%s: %v", message, err)
}
