package notify

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"github.com/rs/zerolog/log"
	"github.com/transitline/transitline/pkg/ctdf"
	"github.com/transitline/transitline/pkg/database"
	"github.com/transitline/transitline/pkg/util"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"google.golang.org/api/option"
)

var ErrNoPushTarget = errors.New("failed to find user token")

// MessageSender is satisfied by *messaging.Client
type MessageSender interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

type PushManager struct {
	Sender MessageSender

	LookupTarget func(ctx context.Context, userID string) (*ctdf.UserPushNotificationTarget, error)
}

func (m *PushManager) Setup() error {
	env := util.GetEnvironmentVariables()

	decodedKey, err := base64.StdEncoding.DecodeString(env["TRANSITLINE_FIREBASE_SERVICE_ACCOUNT"])
	if err != nil {
		return fmt.Errorf("decoding firebase service account: %w", err)
	}

	opts := []option.ClientOption{option.WithCredentialsJSON(decodedKey)}

	app, err := firebase.NewApp(context.Background(), nil, opts...)
	if err != nil {
		return err
	}

	fcmClient, err := app.Messaging(context.Background())
	if err != nil {
		return err
	}

	m.Sender = fcmClient
	m.LookupTarget = lookupTargetFromDatabase

	return nil
}

func (m *PushManager) SendPush(ctx context.Context, notification ctdf.Notification) error {
	userPushNotificationTarget, err := m.LookupTarget(ctx, notification.TargetUser)
	if err != nil {
		return err
	}

	if userPushNotificationTarget == nil || userPushNotificationTarget.PushNotificationToken == "" {
		return ErrNoPushTarget
	}

	_, err = m.Sender.Send(ctx, &messaging.Message{
		Notification: &messaging.Notification{
			Title: notification.Title,
			Body:  notification.Message,
		},
		Token: userPushNotificationTarget.PushNotificationToken,
	})
	if err != nil {
		return err
	}

	log.Info().Str("target", notification.TargetUser).Msg("Sent Push Notification")

	return nil
}

func lookupTargetFromDatabase(ctx context.Context, userID string) (*ctdf.UserPushNotificationTarget, error) {
	collection := database.GetCollection("user_push_notification_target")

	var userPushNotificationTarget *ctdf.UserPushNotificationTarget
	err := collection.FindOne(ctx, bson.M{"userid": userID}).Decode(&userPushNotificationTarget)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNoPushTarget
	}

	return userPushNotificationTarget, err
}
