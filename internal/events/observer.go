package events

import (
	"context"
	"log/slog"

	"github.com/nfrund/panel/internal/guard"
)

// GuardObserver publishes every settled guard transition on TopicMount.
// Checking transitions are not published.
type GuardObserver struct {
	pub Publisher
}

// NewGuardObserver returns a guard.Observer backed by pub.
func NewGuardObserver(pub Publisher) *GuardObserver {
	return &GuardObserver{pub: pub}
}

func (o *GuardObserver) MountChanged(ev guard.MountEvent) {
	if ev.State == guard.Checking {
		return
	}
	out := Event{Topic: TopicMount, MountID: ev.MountID, State: ev.State.String()}
	if ev.Err != nil {
		out.Reason = ev.Err.Error()
	}
	if ev.User != nil {
		out.Email = ev.User.Email
	}
	if err := o.pub.Publish(context.Background(), out); err != nil {
		slog.Warn("failed to publish mount event", "mount_id", ev.MountID, "error", err)
	}
}

// Audit logs every session event until ctx ends.
func Audit(ctx context.Context, sub Subscriber, logger *slog.Logger) error {
	for _, topic := range []string{TopicMount, TopicLogin, TopicLogout} {
		err := sub.Subscribe(ctx, topic, func(_ context.Context, ev Event) error {
			logger.Info("session event",
				"topic", ev.Topic,
				"mount_id", ev.MountID,
				"state", ev.State,
				"reason", ev.Reason,
				"email", ev.Email,
				"at", ev.At,
			)
			return nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}
