package request

import (
	"context"
	"sync"

	"github.com/Harishsaini91/BlenderHub-sub001/consts"
	"github.com/Harishsaini91/BlenderHub-sub001/model"
)

// memStore is a mutex-guarded Store with the same conditional-update
// semantics as the mongo store. Used by tests and local development.
type memStore struct {
	mu      sync.Mutex
	records map[string]*model.Record
}

// NewMemStore - creates an in-memory Store
func NewMemStore() Store {
	return &memStore{records: make(map[string]*model.Record)}
}

func (s *memStore) record(userID string) *model.Record {
	record, ok := s.records[userID]
	if !ok {
		record = &model.Record{OwnerID: userID}
		s.records[userID] = record
	}
	return record
}

func (s *memStore) list(record *model.Record, category, side string) *[]model.Entry {
	cat := record.Category(category)
	if cat == nil {
		return nil
	}
	if side == SideReceived {
		return &cat.Received
	}
	return &cat.Sent
}

func (s *memStore) GetRecord(ctx context.Context, userID string) (*model.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[userID]
	if !ok {
		return nil, ErrNoRecord
	}
	copied := *record
	for _, name := range consts.Categories {
		src, dst := record.Category(name), copied.Category(name)
		dst.Sent = append([]model.Entry(nil), src.Sent...)
		dst.Received = append([]model.Entry(nil), src.Received...)
	}
	return &copied, nil
}

func (s *memStore) AppendSent(ctx context.Context, userID, ownerName, category string, entry model.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record := s.record(userID)
	list := s.list(record, category, SideSent)
	if findInList(*list, entry.TargetUserID, true) != nil {
		return ErrDuplicatePending
	}
	if ownerName != "" {
		record.OwnerName = ownerName
	}
	*list = append(*list, entry)
	return nil
}

func (s *memStore) AppendReceived(ctx context.Context, userID, ownerName, category string, entry model.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record := s.record(userID)
	if ownerName != "" {
		record.OwnerName = ownerName
	}
	list := s.list(record, category, SideReceived)
	*list = append(*list, entry)
	return nil
}

func (s *memStore) RemoveEntry(ctx context.Context, userID, category, side, entryID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[userID]
	if !ok {
		return nil
	}
	list := s.list(record, category, side)
	kept := (*list)[:0]
	for _, entry := range *list {
		if entry.ID != entryID {
			kept = append(kept, entry)
		}
	}
	*list = kept
	return nil
}

func (s *memStore) FindEntry(ctx context.Context, userID, category, side, counterpartyID string) (*model.Entry, error) {
	return s.find(userID, category, side, counterpartyID, false)
}

func (s *memStore) FindPending(ctx context.Context, userID, category, side, counterpartyID string) (*model.Entry, error) {
	return s.find(userID, category, side, counterpartyID, true)
}

func (s *memStore) find(userID, category, side, counterpartyID string, pendingOnly bool) (*model.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[userID]
	if !ok {
		return nil, nil
	}
	list := s.list(record, category, side)
	if list == nil {
		return nil, nil
	}
	return findInList(*list, counterpartyID, pendingOnly), nil
}

func (s *memStore) ResolveEntry(ctx context.Context, userID, category, side, entryID, from, to string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[userID]
	if !ok {
		return ErrNoRecord
	}
	list := s.list(record, category, side)
	if list == nil {
		return ErrNoEntry
	}
	for i := range *list {
		if (*list)[i].ID != entryID {
			continue
		}
		if (*list)[i].Status != from {
			return ErrEntryResolved
		}
		(*list)[i].Status = to
		return nil
	}
	return ErrNoEntry
}
