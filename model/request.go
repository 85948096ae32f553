package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Harishsaini91/BlenderHub-sub001/consts"
)

// Entry - one invite/request between two users. The sender's copy carries the
// receiver* fields, the recipient's mirror carries the sender* fields. Name
// and image fields are snapshots taken at invite time, not live joins.
type Entry struct {
	ID           string `json:"id" bson:"id"`
	TargetUserID string `json:"targetUserId" bson:"targetUserId"`

	SenderID    string `json:"senderId,omitempty" bson:"senderId,omitempty"`
	SenderName  string `json:"senderName,omitempty" bson:"senderName,omitempty"`
	SenderImage string `json:"senderImage,omitempty" bson:"senderImage,omitempty"`

	ReceiverID    string `json:"receiverId,omitempty" bson:"receiverId,omitempty"`
	ReceiverName  string `json:"receiverName,omitempty" bson:"receiverName,omitempty"`
	ReceiverImage string `json:"receiverImage,omitempty" bson:"receiverImage,omitempty"`

	// team / challenge only
	Skills []string `json:"skills,omitempty" bson:"skills,omitempty"`

	// event only
	EventID          string `json:"eventId,omitempty" bson:"eventId,omitempty"`
	EventName        string `json:"eventName,omitempty" bson:"eventName,omitempty"`
	EventDescription string `json:"eventDescription,omitempty" bson:"eventDescription,omitempty"`
	Link             string `json:"link,omitempty" bson:"link,omitempty"`
	Passkey          string `json:"passkey,omitempty" bson:"passkey,omitempty"`

	Status string    `json:"status" bson:"status"`
	Date   time.Time `json:"date" bson:"date"`
}

// Category - the two ordered entry lists of one interaction kind. Order is
// insertion order and is never changed after creation.
type Category struct {
	Sent     []Entry `json:"sent" bson:"sent"`
	Received []Entry `json:"received" bson:"received"`
}

// Record - per-user container of all categories' sent/received entries.
// One document per user in the requests collection, created lazily on the
// user's first interaction.
type Record struct {
	ID         primitive.ObjectID `json:"-" bson:"_id,omitempty"`
	OwnerID    string             `json:"ownerId" bson:"ownerId"`
	OwnerName  string             `json:"ownerName" bson:"ownerName"`
	Connection Category           `json:"connection" bson:"connection"`
	Team       Category           `json:"team" bson:"team"`
	Challenge  Category           `json:"challenge" bson:"challenge"`
	Event      Category           `json:"event" bson:"event"`
}

// Category returns the sub-document for the given category name.
func (r *Record) Category(name string) *Category {
	switch name {
	case consts.Connection:
		return &r.Connection
	case consts.Team:
		return &r.Team
	case consts.Challenge:
		return &r.Challenge
	case consts.Event:
		return &r.Event
	}
	return nil
}

// InvitePayload - category specific fields supplied by the caller on send.
// Sender and receiver display fields are denormalized onto the created
// entries so lists render without a join.
type InvitePayload struct {
	SenderName    string `json:"senderName"`
	SenderImage   string `json:"senderImage"`
	ReceiverName  string `json:"receiverName"`
	ReceiverImage string `json:"receiverImage"`

	Skills []string `json:"skills,omitempty"`

	EventID          string `json:"eventId,omitempty"`
	EventName        string `json:"eventName,omitempty"`
	EventDescription string `json:"eventDescription,omitempty"`
	Link             string `json:"link,omitempty"`
	Passkey          string `json:"passkey,omitempty"`
}
