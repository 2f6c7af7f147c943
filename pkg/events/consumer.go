package events

import (
	"context"
	"encoding/json"

	"github.com/adjust/rmq/v5"
	"github.com/rs/zerolog/log"
	"github.com/transitline/transitline/pkg/consumer"
	"github.com/transitline/transitline/pkg/ctdf"
	"github.com/transitline/transitline/pkg/database"
	"github.com/transitline/transitline/pkg/redis_client"
	"github.com/transitline/transitline/pkg/util"
	"go.mongodb.org/mongo-driver/bson"
)

// Longer alert texts are cut before being pushed
const MaxNotificationMessageLength = 240

type Publisher interface {
	PublishBytes(payload ...[]byte) error
}

type EventsBatchConsumer struct {
	NotifyQueue Publisher
	Matcher     *SubscriptionMatcher

	LoadSubscriptions func() ([]*ctdf.UserAlertSubscription, error)
}

func NewEventsBatchConsumer() *EventsBatchConsumer {
	notifyQueue, err := redis_client.QueueConnection.OpenQueue("notify-queue")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to start notify queue")
	}

	return &EventsBatchConsumer{
		NotifyQueue:       notifyQueue,
		Matcher:           NewSubscriptionMatcher(),
		LoadSubscriptions: loadSubscriptionsFromDatabase,
	}
}

func (c *EventsBatchConsumer) Consume(batch rmq.Deliveries) {
	failed := map[int]bool{}

	for i, payload := range batch.Payloads() {
		if err := c.HandlePayload([]byte(payload)); err != nil {
			log.Error().Err(err).Msg("Failed to handle event")
			failed[i] = true
		}
	}

	consumer.AckBatch(batch, failed)
}

// HandlePayload publishes a notification for every subscription matching the event
func (c *EventsBatchConsumer) HandlePayload(payload []byte) error {
	var event ctdf.Event
	if err := json.Unmarshal(payload, &event); err != nil {
		return err
	}

	environment, err := NewAlertEnvironment(&event)
	if err != nil {
		return err
	}

	subscriptions, err := c.LoadSubscriptions()
	if err != nil {
		return err
	}

	notificationData := event.GetNotificationData()
	matched := c.Matcher.Match(environment, subscriptions)

	// One publish per event, a failed delivery never leaves part of it queued
	var notifications [][]byte
	for _, subscription := range matched {
		notification := ctdf.Notification{
			TargetUser: subscription.UserID,
			Type:       ctdf.NotificationTypePush,
			Title:      notificationData.Title,
			Message:    util.TrimString(notificationData.Message, MaxNotificationMessageLength),
		}

		notificationBytes, err := json.Marshal(notification)
		if err != nil {
			return err
		}

		notifications = append(notifications, notificationBytes)
	}

	if len(notifications) == 0 {
		return nil
	}

	if err := c.NotifyQueue.PublishBytes(notifications...); err != nil {
		return err
	}

	for _, subscription := range matched {
		log.Info().
			Str("type", string(event.Type)).
			Str("user", subscription.UserID).
			Str("subscription", subscription.PrimaryIdentifier).
			Msg("Queued notification")
	}

	return nil
}

func loadSubscriptionsFromDatabase() ([]*ctdf.UserAlertSubscription, error) {
	collection := database.GetCollection("user_alert_subscriptions")

	cursor, err := collection.Find(context.Background(), bson.M{})
	if err != nil {
		return nil, err
	}

	var subscriptions []*ctdf.UserAlertSubscription
	if err := cursor.All(context.Background(), &subscriptions); err != nil {
		return nil, err
	}

	return subscriptions, nil
}
