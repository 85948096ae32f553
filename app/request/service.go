package request

import (
	"context"

	"github.com/Harishsaini91/BlenderHub-sub001/app/config"
	"github.com/Harishsaini91/BlenderHub-sub001/app/notification"
	"github.com/Harishsaini91/BlenderHub-sub001/model"
	"github.com/Harishsaini91/BlenderHub-sub001/notifier"
)

// Service - defines the request lifecycle engine. The engine is stateless
// between calls; identity is passed explicitly into every operation.
type Service interface {
	SendInvite(ctx context.Context, category, fromUser, toUser string, payload *model.InvitePayload) (*model.Entry, error)
	Respond(ctx context.Context, category, respondingUser, counterpartyID, decision string) (string, error)
	ListInvites(ctx context.Context, userID, category string) (*model.Category, error)
}

type service struct {
	config   *config.Config
	store    Store
	notifier notifier.Notifier
	feed     notification.Service
}

// NewService - creates new Request service
func NewService(conf *config.Config, store Store, rt notifier.Notifier, feed notification.Service) Service {
	return &service{
		config:   conf,
		store:    store,
		notifier: rt,
		feed:     feed,
	}
}

func (s *service) SendInvite(ctx context.Context, category, fromUser, toUser string, payload *model.InvitePayload) (*model.Entry, error) {
	return sendInvite(ctx, s.store, s.notifier, s.feed, category, fromUser, toUser, payload)
}

func (s *service) Respond(ctx context.Context, category, respondingUser, counterpartyID, decision string) (string, error) {
	return respond(ctx, s.store, s.notifier, s.feed, category, respondingUser, counterpartyID, decision)
}

func (s *service) ListInvites(ctx context.Context, userID, category string) (*model.Category, error) {
	return listInvites(ctx, s.store, userID, category)
}
