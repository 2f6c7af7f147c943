package consumer

import (
	"fmt"
	"net/http"
	"time"

	"github.com/adjust/rmq/v5"
	"github.com/rs/zerolog/log"
	"github.com/transitline/transitline/pkg/redis_client"
)

const defaultStatsListen = ":3333"

type RedisConsumer struct {
	QueueName string

	NumberConsumers int
	BatchSize       int

	Timeout time.Duration

	Consumer rmq.BatchConsumer

	StatsListen string
}

func (c *RedisConsumer) Setup() error {
	if err := c.startConsumers(); err != nil {
		return err
	}

	go c.startStatsServer()

	return nil
}

func (c *RedisConsumer) startConsumers() error {
	// Run the background consumers
	log.Info().Str("queue", c.QueueName).Msg("Starting consumers")

	queue, err := redis_client.QueueConnection.OpenQueue(c.QueueName)
	if err != nil {
		return err
	}
	if err := queue.StartConsuming(int64(c.NumberConsumers*c.BatchSize), 1*time.Second); err != nil {
		return err
	}

	for i := 0; i < c.NumberConsumers; i++ {
		log.Info().Msgf("Starting %s consumer %d", c.QueueName, i)

		if _, err := queue.AddBatchConsumer(fmt.Sprintf("%s-%d", c.QueueName, i), int64(c.BatchSize), c.Timeout, c.Consumer); err != nil {
			return err
		}
	}

	return nil
}

func (c *RedisConsumer) startStatsServer() {
	listen := c.StatsListen
	if listen == "" {
		listen = defaultStatsListen
	}

	mux := http.NewServeMux()
	endpoint := fmt.Sprintf("/%s/stats", c.QueueName)
	mux.Handle(endpoint, NewStatsHandler(redis_client.QueueConnection))
	mux.Handle("/health", NewHealthHandler())

	log.Info().Msgf("Stats server listening on http://localhost%s%s", listen, endpoint)
	if err := http.ListenAndServe(listen, mux); err != nil {
		log.Error().Err(err).Msg("Stats server stopped")
	}
}

// AckBatch acks the whole batch, rejecting the payloads at the given indexes
func AckBatch(batch rmq.Deliveries, failed map[int]bool) {
	for i, delivery := range batch {
		var err error
		if failed[i] {
			err = delivery.Reject()
		} else {
			err = delivery.Ack()
		}

		if err != nil {
			log.Error().Err(err).Msg("Failed to acknowledge delivery")
		}
	}
}
