package events

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// Bus implements Publisher and Subscriber on watermill's GoChannel.
type Bus struct {
	ch *gochannel.GoChannel
}

// NewBus creates an in-memory bus.
func NewBus() *Bus {
	logger := watermill.NewStdLogger(false, false)
	return &Bus{
		ch: gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 64}, logger),
	}
}

// Publish implements Publisher. A zero At is stamped with the current time.
func (b *Bus) Publish(ctx context.Context, ev Event) error {
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}
	payload, err := encode(ev)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)
	return b.ch.Publish(ev.Topic, msg)
}

// Subscribe implements Subscriber. It returns once the subscription is
// active; messages are handled on a background goroutine.
func (b *Bus) Subscribe(ctx context.Context, topic string, handler Handler) error {
	messages, err := b.ch.Subscribe(ctx, topic)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			ev, err := decode(msg.Payload)
			if err != nil {
				slog.Error("Dropping undecodable event", "topic", topic, "msg_id", msg.UUID, "error", err)
				msg.Ack()
				continue
			}
			if err := handler(ctx, ev); err != nil {
				slog.Error("Failed to handle event", "topic", topic, "msg_id", msg.UUID, "error", err)
				// GoChannel redelivers nacked messages; acknowledge so a bad
				// handler cannot spin on the same event.
			}
			msg.Ack()
		}
		slog.Debug("Event subscription ended", "topic", topic)
	}()
	return nil
}

// Close shuts the bus down and ends all subscriptions.
func (b *Bus) Close() error {
	return b.ch.Close()
}
