package eventbus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	nc "github.com/nats-io/nats.go"
)

// EventBus is the pub/sub surface the scoreboard module talks to. Publish
// sends one message to a subject; Subscribe returns the raw message channel
// so callers control their own consume loop and cancellation.
type EventBus interface {
	Publish(ctx context.Context, subject string, msg *message.Message) error
	Subscribe(ctx context.Context, subject string) (<-chan *message.Message, error)
	Close() error
}

// eventBus implements EventBus on top of Watermill's NATS JetStream transport.
type eventBus struct {
	publisher  message.Publisher
	subscriber message.Subscriber
	logger     *slog.Logger
}

// NewEventBus creates an EventBus connected to NATS JetStream.
func NewEventBus(ctx context.Context, natsURL string, logger *slog.Logger) (EventBus, error) {
	watermillLogger := watermill.NewSlogLogger(logger)
	marshaler := &nats.NATSMarshaler{}

	options := []nc.Option{
		nc.RetryOnFailedConnect(true),
	}

	publisher, err := nats.NewPublisher(
		nats.PublisherConfig{
			URL:         natsURL,
			Marshaler:   marshaler,
			NatsOptions: options,
			JetStream: nats.JetStreamConfig{
				AutoProvision: true,
			},
		},
		watermillLogger,
	)
	if err != nil {
		logger.Error("Failed to create Watermill publisher", slog.Any("error", err))
		return nil, fmt.Errorf("failed to create Watermill publisher: %w", err)
	}

	subscriber, err := nats.NewSubscriber(
		nats.SubscriberConfig{
			URL:         natsURL,
			Unmarshaler: marshaler,
			NatsOptions: options,
			JetStream: nats.JetStreamConfig{
				AutoProvision: true,
			},
		},
		watermillLogger,
	)
	if err != nil {
		publisher.Close()
		logger.Error("Failed to create Watermill subscriber", slog.Any("error", err))
		return nil, fmt.Errorf("failed to create Watermill subscriber: %w", err)
	}

	return &eventBus{
		publisher:  publisher,
		subscriber: subscriber,
		logger:     logger,
	}, nil
}

func (eb *eventBus) Publish(ctx context.Context, subject string, msg *message.Message) error {
	if msg.UUID == "" {
		msg.UUID = watermill.NewUUID()
	}

	eb.logger.Debug("Publishing message",
		slog.String("subject", subject),
		slog.String("uuid", msg.UUID),
	)

	if err := eb.publisher.Publish(subject, msg); err != nil {
		eb.logger.Error("Failed to publish message",
			slog.String("subject", subject),
			slog.Any("error", err),
		)
		return fmt.Errorf("failed to publish to %s: %w", subject, err)
	}
	return nil
}

func (eb *eventBus) Subscribe(ctx context.Context, subject string) (<-chan *message.Message, error) {
	messages, err := eb.subscriber.Subscribe(ctx, subject)
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to subject %s: %w", subject, err)
	}

	eb.logger.Info("Subscription started", slog.String("subject", subject))
	return messages, nil
}

// Close closes the Watermill publisher and subscriber. Both are always
// attempted; any failures are reported together.
func (eb *eventBus) Close() error {
	pubErr := eb.publisher.Close()
	if pubErr != nil {
		eb.logger.Error("Error closing publisher", slog.Any("error", pubErr))
	}
	subErr := eb.subscriber.Close()
	if subErr != nil {
		eb.logger.Error("Error closing subscriber", slog.Any("error", subErr))
	}
	return errors.Join(pubErr, subErr)
}
