package notification

import (
	"github.com/Harishsaini91/BlenderHub-sub001/app/config"
	"github.com/Harishsaini91/BlenderHub-sub001/cache"
	"github.com/Harishsaini91/BlenderHub-sub001/database"
	"github.com/Harishsaini91/BlenderHub-sub001/model"
	"github.com/Harishsaini91/BlenderHub-sub001/mongodatabase"
)

// Service - defines Notification service
type Service interface {
	CreateNotification(notification *model.Notification) error
	MarkNotificationAsRead(notificationID, userID string) error
	MarkAllNotificationAsRead(userID string) error
	GetNotificationList(userID string) ([]model.Notification, error)
	GetNotificationDisplayCount(userID string) (int64, error)
}

type service struct {
	config    *config.Config
	dbMaster  *database.Database
	dbReplica *database.Database
	mongodb   *mongodatabase.DBConfig
	cache     *cache.Cache
}

// NewService - creates new Notification service
func NewService(repos *model.Repos, conf *config.Config) Service {
	return &service{
		config:    conf,
		mongodb:   repos.MongoDB,
		dbMaster:  repos.MasterDB,
		dbReplica: repos.ReplicaDB,
		cache:     repos.Cache,
	}
}

func (s *service) CreateNotification(notification *model.Notification) error {
	return createNotification(s.mongodb, s.dbMaster, notification)
}

func (s *service) MarkNotificationAsRead(notificationID, userID string) error {
	return markNotificationAsRead(s.mongodb, s.dbMaster, notificationID, userID)
}

func (s *service) MarkAllNotificationAsRead(userID string) error {
	return markAllNotificationAsRead(s.mongodb, s.dbMaster, userID)
}

func (s *service) GetNotificationList(userID string) ([]model.Notification, error) {
	return getNotificationList(s.mongodb, userID)
}

func (s *service) GetNotificationDisplayCount(userID string) (int64, error) {
	return getNotificationDisplayCount(s.dbMaster, userID)
}
