package kafka

import (
	"context"
	"errors"
	"fmt"
)

// EventPublisher routes events to their topic by event name, so callers
// hold a single publisher regardless of how many topics exist.
type EventPublisher struct {
	users  *Producer
	clicks *Producer
}

func NewEventPublisher(brokers []string, topicUser, topicClick string) *EventPublisher {
	return &EventPublisher{
		users:  NewProducer(brokers, topicUser),
		clicks: NewProducer(brokers, topicClick),
	}
}

func (p *EventPublisher) Publish(ctx context.Context, key string, value interface{}) error {
	switch key {
	case EventUserRegistered:
		return p.users.Publish(ctx, key, value)
	case EventClickRecorded:
		return p.clicks.Publish(ctx, key, value)
	default:
		return fmt.Errorf("unknown event: %s", key)
	}
}

func (p *EventPublisher) Close() error {
	return errors.Join(p.users.Close(), p.clicks.Close())
}
