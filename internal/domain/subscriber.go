package domain

import (
	"context"
	"time"
)

type Subscriber struct {
	ID           int       `json:"id"`
	Email        string    `json:"email"`
	SubscribedAt time.Time `json:"subscribed_at"`
}

type SubscriberRepository interface {
	CreateSubscriber(ctx context.Context, email string) (*Subscriber, error)
	ListSubscribers(ctx context.Context) ([]Subscriber, error)
}
