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

type postgresUserRepository struct {
	db  *sql.DB
	log *logrus.Logger
}

func NewPostgresUserRepository(db *sql.DB, logger *logrus.Logger) domain.UserRepository {
	return &postgresUserRepository{
		db:  db,
		log: logger,
	}
}

func (r *postgresUserRepository) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `
        SELECT id, username, password
        FROM users
        WHERE username = $1`
	user := &domain.User{}
	err := r.db.QueryRowContext(ctx, query, username).Scan(&user.ID, &user.Username, &user.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user %s: %w", username, domain.ErrNotFound)
		}
		r.log.Errorf("Failed to get user %s: %v", username, err)
		return nil, fmt.Errorf("could not get user: %w", err)
	}
	return user, nil
}

func (r *postgresUserRepository) CreateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	query := `
        INSERT INTO users (username, password)
        VALUES ($1, $2)
        RETURNING id`
	err := r.db.QueryRowContext(ctx, query, user.Username, user.PasswordHash).Scan(&user.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, fmt.Errorf("user %s already exists: %w", user.Username, domain.ErrValidation)
		}
		r.log.Errorf("Failed to create user %s: %v", user.Username, err)
		return nil, fmt.Errorf("could not create user: %w", err)
	}

	r.log.Infof("User created with ID: %d, Username: %s", user.ID, user.Username)
	return user, nil
}
