package notification

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Harishsaini91/BlenderHub-sub001/consts"
	"github.com/Harishsaini91/BlenderHub-sub001/database"
	"github.com/Harishsaini91/BlenderHub-sub001/model"
	"github.com/Harishsaini91/BlenderHub-sub001/mongodatabase"
)

func createNotification(db *mongodatabase.DBConfig, mysql *database.Database, notification *model.Notification) error {
	dbConn, err := db.New(consts.NotificationCollection)
	if err != nil {
		return err
	}

	notificationCollection, notificationClient := dbConn.Collection, dbConn.Client
	defer notificationClient.Disconnect(context.TODO())

	_, err = notificationCollection.InsertOne(context.TODO(), notification)
	if err != nil {
		return err
	}

	stmt := "UPDATE `blenderhub-dev`.UserProfile SET unread_notification_count = unread_notification_count + 1 WHERE userID = ?"
	_, err = mysql.Conn.Exec(stmt, notification.RecipientID)
	if err != nil {
		return errors.Wrap(err, "unable to update unread_notification_count")
	}

	return nil
}

// Update the isRead field of a notification based on its ID.
func markNotificationAsRead(db *mongodatabase.DBConfig, mysql *database.Database, notificationID string, userID string) error {
	dbConn, err := db.New(consts.NotificationCollection)
	if err != nil {
		return err
	}

	notificationCollection, notificationClient := dbConn.Collection, dbConn.Client
	defer notificationClient.Disconnect(context.TODO())

	objectID, err := primitive.ObjectIDFromHex(notificationID)
	if err != nil {
		fmt.Println("Error:", err)
		return err
	}

	filter := bson.M{"_id": objectID, "recipientId": userID, "isRead": false}
	update := bson.M{
		"$set": bson.M{"isRead": true},
	}

	result, err := notificationCollection.UpdateOne(context.TODO(), filter, update)
	if err != nil {
		return err
	}

	if result.ModifiedCount > 0 {
		stmt := "UPDATE `blenderhub-dev`.UserProfile SET unread_notification_count = unread_notification_count - 1 WHERE userID = ? AND unread_notification_count > 0"
		_, err = mysql.Conn.Exec(stmt, userID)
		if err != nil {
			return errors.Wrap(err, "unable to update unread_notification_count")
		}
	}

	return nil
}

func markAllNotificationAsRead(db *mongodatabase.DBConfig, mysql *database.Database, userID string) error {
	dbConn, err := db.New(consts.NotificationCollection)
	if err != nil {
		return err
	}

	notificationCollection, notificationClient := dbConn.Collection, dbConn.Client
	defer notificationClient.Disconnect(context.TODO())

	filter := bson.M{"recipientId": userID}
	update := bson.M{
		"$set": bson.M{"isRead": true},
	}
	_, err = notificationCollection.UpdateMany(context.TODO(), filter, update)
	if err != nil {
		return err
	}

	stmt := "UPDATE `blenderhub-dev`.UserProfile SET unread_notification_count = 0 WHERE userID = ?"
	_, err = mysql.Conn.Exec(stmt, userID)
	if err != nil {
		return errors.Wrap(err, "unable to update unread_notification_count")
	}
	return nil
}

func getNotificationList(db *mongodatabase.DBConfig, recipientID string) ([]model.Notification, error) {
	dbConn, err := db.New(consts.NotificationCollection)
	if err != nil {
		return []model.Notification{}, err
	}

	var notifications []model.Notification

	notificationCollection, notificationClient := dbConn.Collection, dbConn.Client
	defer notificationClient.Disconnect(context.TODO())

	findOptions := options.Find()
	findOptions.SetSort(bson.M{"createdDate": -1})
	cur, err := notificationCollection.Find(context.TODO(), bson.M{"recipientId": recipientID}, findOptions)
	if err != nil {
		return []model.Notification{}, err
	}

	err = cur.All(context.TODO(), &notifications)
	if err != nil {
		return []model.Notification{}, err
	}

	return notifications, nil
}

func getNotificationDisplayCount(mysql *database.Database, recipientID string) (int64, error) {
	stmt := "SELECT unread_notification_count FROM `blenderhub-dev`.UserProfile WHERE userID = ?;"
	var count int64

	err := mysql.Conn.Get(&count, stmt, recipientID)
	if err != nil {
		return 0, err
	}

	return count, nil
}
