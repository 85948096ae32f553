package request

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Harishsaini91/BlenderHub-sub001/consts"
	"github.com/Harishsaini91/BlenderHub-sub001/model"
	"github.com/Harishsaini91/BlenderHub-sub001/mongodatabase"
)

// mongoStore keeps one request document per user in the requests
// collection. The unique index on ownerId is what turns the guarded
// upsert in AppendSent into a duplicate-pending check: when the guard
// filter rejects the existing record the upsert tries to insert a second
// record for the owner and the index refuses it.
type mongoStore struct {
	db      *mongodatabase.DBConfig
	indexed atomic.Bool
}

// NewMongoStore - creates a Store backed by the mongo requests collection
func NewMongoStore(db *mongodatabase.DBConfig) Store {
	return &mongoStore{db: db}
}

func (s *mongoStore) connect() (*mongodatabase.MongoDBConn, error) {
	dbConn, err := s.db.New(consts.RequestCollection)
	if err != nil {
		return nil, err
	}

	if s.indexed.CompareAndSwap(false, true) {
		_, err := dbConn.Collection.Indexes().CreateOne(context.TODO(), mongo.IndexModel{
			Keys:    bson.D{{Key: "ownerId", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("owner_id_unique"),
		})
		if err != nil {
			// next connect retries
			s.indexed.Store(false)
		}
	}

	return dbConn, nil
}

func listPath(category, side string) string {
	return fmt.Sprintf("%s.%s", category, side)
}

func (s *mongoStore) GetRecord(ctx context.Context, userID string) (*model.Record, error) {
	dbConn, err := s.connect()
	if err != nil {
		return nil, err
	}
	collection, client := dbConn.Collection, dbConn.Client
	defer client.Disconnect(context.TODO())

	var record model.Record
	err = collection.FindOne(ctx, bson.M{"ownerId": userID}).Decode(&record)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNoRecord
	}
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch request record")
	}
	return &record, nil
}

func (s *mongoStore) AppendSent(ctx context.Context, userID, ownerName, category string, entry model.Entry) error {
	dbConn, err := s.connect()
	if err != nil {
		return err
	}
	collection, client := dbConn.Collection, dbConn.Client
	defer client.Disconnect(context.TODO())

	// Matches the record only while no pending entry for this counterparty
	// exists in the list.
	filter := bson.M{
		"ownerId": userID,
		listPath(category, SideSent): bson.M{
			"$not": bson.M{"$elemMatch": bson.M{
				"targetUserId": entry.TargetUserID,
				"status":       consts.StatusPending,
			}},
		},
	}
	update := bson.M{"$push": bson.M{listPath(category, SideSent): entry}}
	if ownerName != "" {
		update["$set"] = bson.M{"ownerName": ownerName}
	}

	_, err = collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicatePending
	}
	if err != nil {
		return errors.Wrap(err, "unable to append sent entry")
	}
	return nil
}

func (s *mongoStore) AppendReceived(ctx context.Context, userID, ownerName, category string, entry model.Entry) error {
	dbConn, err := s.connect()
	if err != nil {
		return err
	}
	collection, client := dbConn.Collection, dbConn.Client
	defer client.Disconnect(context.TODO())

	update := bson.M{"$push": bson.M{listPath(category, SideReceived): entry}}
	if ownerName != "" {
		update["$set"] = bson.M{"ownerName": ownerName}
	}

	_, err = collection.UpdateOne(ctx, bson.M{"ownerId": userID}, update, options.Update().SetUpsert(true))
	if err != nil {
		return errors.Wrap(err, "unable to append received entry")
	}
	return nil
}

func (s *mongoStore) RemoveEntry(ctx context.Context, userID, category, side, entryID string) error {
	dbConn, err := s.connect()
	if err != nil {
		return err
	}
	collection, client := dbConn.Collection, dbConn.Client
	defer client.Disconnect(context.TODO())

	update := bson.M{"$pull": bson.M{listPath(category, side): bson.M{"id": entryID}}}
	_, err = collection.UpdateOne(ctx, bson.M{"ownerId": userID}, update)
	if err != nil {
		return errors.Wrap(err, "unable to remove entry")
	}
	return nil
}

func (s *mongoStore) FindEntry(ctx context.Context, userID, category, side, counterpartyID string) (*model.Entry, error) {
	return s.find(ctx, userID, category, side, counterpartyID, false)
}

func (s *mongoStore) FindPending(ctx context.Context, userID, category, side, counterpartyID string) (*model.Entry, error) {
	return s.find(ctx, userID, category, side, counterpartyID, true)
}

func (s *mongoStore) find(ctx context.Context, userID, category, side, counterpartyID string, pendingOnly bool) (*model.Entry, error) {
	record, err := s.GetRecord(ctx, userID)
	if err == ErrNoRecord {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	cat := record.Category(category)
	if cat == nil {
		return nil, nil
	}
	list := cat.Sent
	if side == SideReceived {
		list = cat.Received
	}
	return findInList(list, counterpartyID, pendingOnly), nil
}

func (s *mongoStore) ResolveEntry(ctx context.Context, userID, category, side, entryID, from, to string) error {
	dbConn, err := s.connect()
	if err != nil {
		return err
	}
	collection, client := dbConn.Collection, dbConn.Client
	defer client.Disconnect(context.TODO())

	update := bson.M{"$set": bson.M{listPath(category, side) + ".$[e].status": to}}
	opts := options.Update().SetArrayFilters(options.ArrayFilters{
		Filters: []interface{}{bson.M{"e.id": entryID, "e.status": from}},
	})

	result, err := collection.UpdateOne(ctx, bson.M{"ownerId": userID}, update, opts)
	if err != nil {
		return errors.Wrap(err, "unable to resolve entry")
	}
	if result.MatchedCount == 0 {
		return ErrNoRecord
	}
	if result.ModifiedCount == 0 {
		// the array filter matched nothing: entry gone or already resolved
		return s.classifyResolveMiss(ctx, userID, category, side, entryID)
	}
	return nil
}

func (s *mongoStore) classifyResolveMiss(ctx context.Context, userID, category, side, entryID string) error {
	record, err := s.GetRecord(ctx, userID)
	if err != nil {
		return err
	}
	cat := record.Category(category)
	if cat == nil {
		return ErrNoEntry
	}
	list := cat.Sent
	if side == SideReceived {
		list = cat.Received
	}
	for _, entry := range list {
		if entry.ID == entryID {
			return ErrEntryResolved
		}
	}
	return ErrNoEntry
}
