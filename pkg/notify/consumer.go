package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/adjust/rmq/v5"
	"github.com/rs/zerolog/log"
	"github.com/transitline/transitline/pkg/consumer"
	"github.com/transitline/transitline/pkg/ctdf"
)

type NotifyBatchConsumer struct {
	PushManager *PushManager
}

func NewNotifyBatchConsumer(pushManager *PushManager) *NotifyBatchConsumer {
	return &NotifyBatchConsumer{
		PushManager: pushManager,
	}
}

func (c *NotifyBatchConsumer) Consume(batch rmq.Deliveries) {
	failed := map[int]bool{}

	for i, payload := range batch.Payloads() {
		if err := c.HandlePayload(context.Background(), []byte(payload)); err != nil {
			log.Error().Err(err).Msg("Failed to send notification")
			failed[i] = true
		}
	}

	consumer.AckBatch(batch, failed)
}

func (c *NotifyBatchConsumer) HandlePayload(ctx context.Context, payload []byte) error {
	var notification ctdf.Notification
	if err := json.Unmarshal(payload, &notification); err != nil {
		return err
	}

	switch notification.Type {
	case ctdf.NotificationTypePush:
		return c.PushManager.SendPush(ctx, notification)
	default:
		return fmt.Errorf("unknown notification type %q", notification.Type)
	}
}
