package domain

import (
	"context"
	"time"
)

// ContactMessage is write-once: there is no update or delete path.
type ContactMessage struct {
	ID         int       `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Subject    string    `json:"subject"`
	Message    string    `json:"message"`
	ReceivedAt time.Time `json:"received_at"`
}

type ContactRepository interface {
	CreateContactMessage(ctx context.Context, msg *ContactMessage) error
}

// Mailer delivers a rendered contact notification to the shop owner.
type Mailer interface {
	SendContactMessage(msg *ContactMessage) error
}
