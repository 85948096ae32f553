package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification - one activity feed item for a user.
type Notification struct {
	ID               primitive.ObjectID `json:"id" bson:"_id"`
	RecipientID      string             `json:"recipientId" bson:"recipientId"`
	SenderID         string             `json:"senderId" bson:"senderId"`
	Category         string             `json:"category" bson:"category"`
	EntryID          string             `json:"entryId" bson:"entryId"`
	ActionType       string             `json:"actionType" bson:"actionType"`
	NotificationText string             `json:"notificationText" bson:"notificationText"`
	IsRead           bool               `json:"isRead" bson:"isRead"`
	CreatedDate      time.Time          `json:"createdDate" bson:"createdDate"`
}
