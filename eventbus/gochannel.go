package eventbus

import (
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// NewInProcessEventBus builds an EventBus backed by Watermill's gochannel
// pub/sub. It serves single-node deployments without a NATS server and the
// test suite; subscribers registered on the same bus instance see every
// publish.
func NewInProcessEventBus(logger *slog.Logger) EventBus {
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{
			OutputChannelBuffer: 16,
		},
		watermill.NewSlogLogger(logger),
	)

	return &eventBus{
		publisher:  pubSub,
		subscriber: pubSub,
		logger:     logger,
	}
}
