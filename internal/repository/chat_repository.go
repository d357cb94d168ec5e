package repository

import (
	"context"
	"errors"

	"aichat-server/internal/domain/chat"
	aichat_errors "aichat-server/pkg/errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type MongoChatRepository struct {
	coll *mongo.Collection
}

func NewChatRepository(coll *mongo.Collection) ChatRepository {
	return &MongoChatRepository{coll: coll}
}

func (r *MongoChatRepository) Create(ctx context.Context, c *chat.Conversation) error {
	_, err := r.coll.InsertOne(ctx, c)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return aichat_errors.ErrConflict
		}
		return err
	}
	return nil
}

func (r *MongoChatRepository) GetByOwner(ctx context.Context, id, ownerID string) (chat.Conversation, error) {
	filter := bson.D{
		{Key: "_id", Value: id},
		{Key: "userId", Value: ownerID},
	}

	var c chat.Conversation
	err := r.coll.FindOne(ctx, filter).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return chat.Conversation{}, aichat_errors.ErrNotFound
		}
		return chat.Conversation{}, err
	}
	return c, nil
}

func (r *MongoChatRepository) AppendHistory(ctx context.Context, id, ownerID string, turns []chat.Turn) (int64, error) {
	filter := bson.D{
		{Key: "_id", Value: id},
		{Key: "userId", Value: ownerID},
	}
	update := bson.D{
		{Key: "$push", Value: bson.D{
			{Key: "history", Value: bson.D{{Key: "$each", Value: turns}}},
		}},
		{Key: "$currentDate", Value: bson.D{{Key: "updatedAt", Value: true}}},
	}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}
