package database

import (
	"context"
	"log"
	"time"

	"aichat-server/config"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

var (
	Client *mongo.Client
	DB     *mongo.Database
)

const (
	ChatsCollection     = "chats"
	UserChatsCollection = "userchats"
)

func Connect(cfg *config.Config) {
	opts := options.Client().
		ApplyURI(cfg.MongoURI).
		SetMaxPoolSize(100).
		SetMinPoolSize(10)

	var err error
	Client, err = mongo.Connect(opts)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := Client.Ping(ctx, nil); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}

	DB = Client.Database(cfg.MongoDB)

	if err := EnsureIndexes(ctx, DB); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}

	log.Println("Database connection established")
}

// EnsureIndexes creates the index the conversation store relies on.
// The userchats collection needs none: the owner id is its _id, so
// uniqueness and point lookups come with the primary key.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(ChatsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}},
	})
	return err
}

func HealthCheck() error {
	if Client == nil {
		return mongo.ErrClientDisconnected
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return Client.Ping(ctx, nil)
}

func Disconnect(ctx context.Context) error {
	if Client == nil {
		return nil
	}
	return Client.Disconnect(ctx)
}
