package chat

import (
	"context"

	"github.com/transitline/transitline/pkg/ctdf"
	"github.com/transitline/transitline/pkg/database"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MessageStore interface {
	Save(ctx context.Context, message *ctdf.ChatMessage) error
	// History returns up to limit of the most recent messages in a room, oldest first
	History(ctx context.Context, room string, limit int) ([]*ctdf.ChatMessage, error)
}

type MongoStore struct{}

func (s MongoStore) Save(ctx context.Context, message *ctdf.ChatMessage) error {
	_, err := database.GetCollection("chat_messages").InsertOne(ctx, message)

	return err
}

func (s MongoStore) History(ctx context.Context, room string, limit int) ([]*ctdf.ChatMessage, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "creationdatetime", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := database.GetCollection("chat_messages").Find(ctx, bson.M{"room": room}, opts)
	if err != nil {
		return nil, err
	}

	var messages []*ctdf.ChatMessage
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, err
	}

	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	return messages, nil
}
