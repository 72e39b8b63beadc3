package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/Pesokrava/storefront/internal/config"
	"github.com/Pesokrava/storefront/internal/pkg/logger"
)

const (
	fetchBatchSize = 10
	fetchMaxWait   = 5 * time.Second
)

// Consumer pulls storefront events from the durable JetStream consumer
type Consumer struct {
	nc     *nats.Conn
	sub    *nats.Subscription
	logger *logger.Logger
}

// NewConsumer connects to NATS, ensures the stream and durable consumer, and binds a pull subscription
func NewConsumer(cfg *config.Config, log *logger.Logger) (*Consumer, error) {
	nc, err := nats.Connect(cfg.NATS.URL, nats.Name("storefront-notifier"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := nc.JetStream()
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	streamConfig := NewStreamConfig(js, log)
	if err := streamConfig.EnsureStream(); err != nil {
		nc.Close()
		return nil, err
	}
	if err := streamConfig.EnsureConsumer(); err != nil {
		nc.Close()
		return nil, err
	}

	sub, err := js.PullSubscribe(StreamSubjects, ConsumerName, nats.Bind(StreamName, ConsumerName), nats.ManualAck())
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to subscribe to JetStream consumer: %w", err)
	}

	log.Infof("Connected to NATS at %s", cfg.NATS.URL)

	return &Consumer{
		nc:     nc,
		sub:    sub,
		logger: log,
	}, nil
}

// Run fetches batches until ctx is cancelled, acking handled messages and nacking failures
func (c *Consumer) Run(ctx context.Context, handler func(subject string, data []byte) error) error {
	for {
		if ctx.Err() != nil {
			return nil
		}

		msgs, err := c.sub.Fetch(fetchBatchSize, nats.MaxWait(fetchMaxWait))
		if err != nil {
			if errors.Is(err, nats.ErrTimeout) {
				continue
			}
			c.logger.Error("Failed to fetch messages from JetStream", err)

			select {
			case <-time.After(fetchMaxWait):
			case <-ctx.Done():
				return nil
			}
			continue
		}

		for _, msg := range msgs {
			if err := handler(msg.Subject, msg.Data); err != nil {
				c.logger.Errorf(err, "Failed to handle message on subject %s", msg.Subject)
				if nakErr := msg.Nak(); nakErr != nil {
					c.logger.Error("Failed to nak message", nakErr)
				}
				continue
			}
			if ackErr := msg.Ack(); ackErr != nil {
				c.logger.Error("Failed to ack message", ackErr)
			}
		}
	}
}

// Close closes the NATS connection
func (c *Consumer) Close() {
	if c.sub != nil {
		if err := c.sub.Unsubscribe(); err != nil {
			c.logger.Warnf("Failed to unsubscribe from NATS: %v", err)
		}
	}
	if c.nc != nil {
		c.nc.Close()
		c.logger.Info("NATS consumer connection closed")
	}
}

// LoggingHandler creates a handler that logs every event
func LoggingHandler(log *logger.Logger) func(subject string, data []byte) error {
	return func(subject string, data []byte) error {
		var event map[string]any
		if err := json.Unmarshal(data, &event); err != nil {
			log.Error("Failed to unmarshal event", err)
			return err
		}

		prettyJSON, err := json.MarshalIndent(event, "", "  ")
		if err != nil {
			log.Error("Failed to marshal pretty JSON", err)
			return err
		}

		log.Infof("Received event on %s:\n%s", subject, string(prettyJSON))
		return nil
	}
}
