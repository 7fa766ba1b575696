package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"storefront/internal/domain"
)

// uniqueViolation is the Postgres error code for a unique constraint hit.
const uniqueViolation = "23505"

type postgresSubscriberRepository struct {
	db  *sql.DB
	log *logrus.Logger
}

func NewPostgresSubscriberRepository(db *sql.DB, logger *logrus.Logger) domain.SubscriberRepository {
	return &postgresSubscriberRepository{
		db:  db,
		log: logger,
	}
}

func (r *postgresSubscriberRepository) CreateSubscriber(ctx context.Context, email string) (*domain.Subscriber, error) {
	query := `
        INSERT INTO subscribers (email)
        VALUES ($1)
        RETURNING id, email, subscribed_at`
	subscriber := &domain.Subscriber{}
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&subscriber.ID, &subscriber.Email, &subscriber.SubscribedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			r.log.Warnf("Duplicate subscription attempt for %s", email)
			return nil, fmt.Errorf("subscriber %s: %w", email, domain.ErrAlreadySubscribed)
		}
		r.log.Errorf("Failed to create subscriber %s: %v", email, err)
		return nil, fmt.Errorf("could not create subscriber: %w", err)
	}

	r.log.Infof("Subscriber created with ID: %d", subscriber.ID)
	return subscriber, nil
}

func (r *postgresSubscriberRepository) ListSubscribers(ctx context.Context) ([]domain.Subscriber, error) {
	query := `
        SELECT id, email, subscribed_at
        FROM subscribers
        ORDER BY subscribed_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.log.Errorf("Failed to list subscribers: %v", err)
		return nil, fmt.Errorf("could not list subscribers: %w", err)
	}
	defer rows.Close()

	subscribers := []domain.Subscriber{}
	for rows.Next() {
		var subscriber domain.Subscriber
		if err := rows.Scan(&subscriber.ID, &subscriber.Email, &subscriber.SubscribedAt); err != nil {
			r.log.Errorf("Failed to scan subscriber row: %v", err)
			return nil, fmt.Errorf("error scanning subscriber data: %w", err)
		}
		subscribers = append(subscribers, subscriber)
	}
	if err = rows.Err(); err != nil {
		r.log.Errorf("Error during subscribers list iteration: %v", err)
		return nil, fmt.Errorf("error iterating subscribers: %w", err)
	}
	return subscribers, nil
}
