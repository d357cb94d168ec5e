package repository

import (
	"context"
	"errors"
	"time"

	"aichat-server/internal/domain/chat"
	aichat_errors "aichat-server/pkg/errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type MongoUserChatsRepository struct {
	coll *mongo.Collection
}

func NewUserChatsRepository(coll *mongo.Collection) UserChatsRepository {
	return &MongoUserChatsRepository{coll: coll}
}

func (r *MongoUserChatsRepository) ListForOwner(ctx context.Context, ownerID string) ([]chat.Summary, error) {
	var uc chat.UserChats
	err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: ownerID}}).Decode(&uc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, aichat_errors.ErrNoChats
		}
		return nil, err
	}
	return uc.Chats, nil
}

// EnsureAndAppend is a single upsert keyed on the owner id: $push
// appends to the existing document, $setOnInsert fills the fields of
// a fresh one. Two concurrent calls for a new owner race on the same
// primary key, so exactly one insert wins and the other lands as an
// append.
func (r *MongoUserChatsRepository) EnsureAndAppend(ctx context.Context, ownerID string, summary chat.Summary, now time.Time) error {
	filter := bson.D{{Key: "_id", Value: ownerID}}
	update := bson.D{
		{Key: "$push", Value: bson.D{{Key: "chats", Value: summary}}},
		{Key: "$set", Value: bson.D{{Key: "updatedAt", Value: now}}},
		{Key: "$setOnInsert", Value: bson.D{{Key: "createdAt", Value: now}}},
	}

	_, err := r.coll.UpdateOne(ctx, filter, update, options.UpdateOne().SetUpsert(true))
	return err
}
