// Package events publishes domain events to RabbitMQ.
package events

import (
	"context"
	"time"
)

// RoutingKeyUserSignedUp is published once per committed signup.
const RoutingKeyUserSignedUp = "user.signed_up"

// UserSignedUp is the body of a RoutingKeyUserSignedUp message.
type UserSignedUp struct {
	UserID     string    `json:"userId"`
	UserName   string    `json:"username"`
	AccountID  string    `json:"accountId"`
	OccurredAt time.Time `json:"occurredAt"`
}

// Publisher sends an event body, JSON encoded, under routingKey.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, body any) error
	Close()
}
