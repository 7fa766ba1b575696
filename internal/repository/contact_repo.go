package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sirupsen/logrus"

	"storefront/internal/domain"
)

type postgresContactRepository struct {
	db  *sql.DB
	log *logrus.Logger
}

func NewPostgresContactRepository(db *sql.DB, logger *logrus.Logger) domain.ContactRepository {
	return &postgresContactRepository{
		db:  db,
		log: logger,
	}
}

func (r *postgresContactRepository) CreateContactMessage(ctx context.Context, msg *domain.ContactMessage) error {
	query := `
        INSERT INTO contact_messages (name, email, subject, message)
        VALUES ($1, $2, $3, $4)
        RETURNING id, received_at`
	err := r.db.QueryRowContext(ctx, query,
		msg.Name, msg.Email, msg.Subject, msg.Message,
	).Scan(&msg.ID, &msg.ReceivedAt)
	if err != nil {
		r.log.Errorf("Failed to save contact message from %s: %v", msg.Email, err)
		return fmt.Errorf("could not save contact message: %w", err)
	}

	r.log.Infof("Contact message saved with ID: %d", msg.ID)
	return nil
}
