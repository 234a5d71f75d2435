// Package events carries session lifecycle notifications (guard
// transitions, logins, logouts) over an in-process watermill bus.
package events

import (
	"context"
	"encoding/json"
	"time"
)

// Topics published by the panel.
const (
	TopicMount  = "session.mount"
	TopicLogin  = "session.login"
	TopicLogout = "session.logout"
)

// Event is one session lifecycle notification.
type Event struct {
	Topic   string    `json:"topic"`
	MountID string    `json:"mount_id,omitempty"`
	State   string    `json:"state,omitempty"`
	Reason  string    `json:"reason,omitempty"`
	Email   string    `json:"email,omitempty"`
	At      time.Time `json:"at"`
}

// Handler processes a received event.
type Handler func(ctx context.Context, ev Event) error

// Publisher sends events.
type Publisher interface {
	Publish(ctx context.Context, ev Event) error
}

// Subscriber receives events for a topic until ctx ends.
type Subscriber interface {
	Subscribe(ctx context.Context, topic string, handler Handler) error
}

func encode(ev Event) ([]byte, error) {
	return json.Marshal(ev)
}

func decode(payload []byte) (Event, error) {
	var ev Event
	err := json.Unmarshal(payload, &ev)
	return ev, err
}
