package request

import (
	"context"

	"github.com/pkg/errors"

	"github.com/Harishsaini91/BlenderHub-sub001/consts"
	"github.com/Harishsaini91/BlenderHub-sub001/model"
)

// list sides within a category
const (
	SideSent     = "sent"
	SideReceived = "received"
)

var (
	// ErrNoRecord - the user has no request record yet
	ErrNoRecord = errors.New("no request record for user")
	// ErrNoEntry - no entry matched the given id
	ErrNoEntry = errors.New("no matching entry")
	// ErrEntryResolved - the entry exists but its status no longer matches
	ErrEntryResolved = errors.New("entry is not in the expected status")
	// ErrDuplicatePending - a pending entry for the same counterparty already exists
	ErrDuplicatePending = errors.New("pending entry already exists for counterparty")
)

// Store is the document store contract the lifecycle engine runs on. All
// mutations are field-level: appends push onto a nested list and resolves
// flip a single entry's status, so concurrent writers touching sibling
// entries of the same record never lose updates.
type Store interface {
	// GetRecord returns the user's record or ErrNoRecord. Records are
	// created lazily on first write, never by reads.
	GetRecord(ctx context.Context, userID string) (*model.Record, error)

	// AppendSent appends entry to the user's sent list, upserting the
	// record if absent. The append is conditional: if a pending entry for
	// the same counterparty already exists in the list it fails with
	// ErrDuplicatePending. ownerName, when non-empty, refreshes the
	// record's denormalized display name.
	AppendSent(ctx context.Context, userID, ownerName, category string, entry model.Entry) error

	// AppendReceived appends entry to the user's received list,
	// upserting the record if absent.
	AppendReceived(ctx context.Context, userID, ownerName, category string, entry model.Entry) error

	// RemoveEntry pulls an entry out of a list. Used only to compensate a
	// half-applied invite; resolved history is never deleted.
	RemoveEntry(ctx context.Context, userID, category, side, entryID string) error

	// FindEntry returns the newest entry in the list whose counterparty
	// matches, any status. (nil, nil) when record or entry is absent.
	FindEntry(ctx context.Context, userID, category, side, counterpartyID string) (*model.Entry, error)

	// FindPending is FindEntry restricted to pending entries.
	FindPending(ctx context.Context, userID, category, side, counterpartyID string) (*model.Entry, error)

	// ResolveEntry sets the entry's status to `to` only while it still
	// equals `from`. ErrNoRecord / ErrNoEntry when nothing matches the id,
	// ErrEntryResolved when the entry exists with a different status. This
	// compare-and-set is what keeps the pending -> terminal transition
	// monotonic under concurrent responders.
	ResolveEntry(ctx context.Context, userID, category, side, entryID, from, to string) error
}

// findInList scans newest-first for the counterparty. Lists are insertion
// ordered so the last match is the most recent interaction.
func findInList(list []model.Entry, counterpartyID string, pendingOnly bool) *model.Entry {
	for i := len(list) - 1; i >= 0; i-- {
		if list[i].TargetUserID != counterpartyID {
			continue
		}
		if pendingOnly && list[i].Status != consts.StatusPending {
			continue
		}
		found := list[i]
		return &found
	}
	return nil
}
