package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain"
)

type fakeContactRepo struct {
	err   error
	saved []*domain.ContactMessage
}

func (f *fakeContactRepo) CreateContactMessage(ctx context.Context, msg *domain.ContactMessage) error {
	if f.err != nil {
		return f.err
	}
	f.saved = append(f.saved, msg)
	return nil
}

type fakeMailer struct {
	err  error
	sent []*domain.ContactMessage
}

func (f *fakeMailer) SendContactMessage(msg *domain.ContactMessage) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

func validMessage() *domain.ContactMessage {
	return &domain.ContactMessage{
		Name:    "Ada",
		Email:   "ada@example.com",
		Subject: "Inquiry",
		Message: "Is the oak table still available?",
	}
}

func TestSubmitMessage(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		repo := &fakeContactRepo{}
		mail := &fakeMailer{}
		uc := NewContactUseCase(repo, mail, "owner@example.com", newTestLogger())

		err := uc.SubmitMessage(context.Background(), validMessage())

		require.NoError(t, err)
		assert.Len(t, repo.saved, 1)
		assert.Len(t, mail.sent, 1)
	})

	t.Run("PersistenceFailureIsNonFatal", func(t *testing.T) {
		repo := &fakeContactRepo{err: errors.New("database unavailable")}
		mail := &fakeMailer{}
		uc := NewContactUseCase(repo, mail, "owner@example.com", newTestLogger())

		err := uc.SubmitMessage(context.Background(), validMessage())

		require.NoError(t, err, "submission succeeds as long as the email is dispatched")
		assert.Len(t, mail.sent, 1)
	})

	t.Run("EmailFailureIsFatal", func(t *testing.T) {
		repo := &fakeContactRepo{}
		mail := &fakeMailer{err: errors.New("smtp connection refused")}
		uc := NewContactUseCase(repo, mail, "owner@example.com", newTestLogger())

		err := uc.SubmitMessage(context.Background(), validMessage())

		assert.ErrorIs(t, err, domain.ErrUpstream)
	})

	t.Run("MissingRequiredFields", func(t *testing.T) {
		tests := []struct {
			field string
			mut   func(*domain.ContactMessage)
		}{
			{"name", func(m *domain.ContactMessage) { m.Name = "" }},
			{"email", func(m *domain.ContactMessage) { m.Email = "" }},
			{"message", func(m *domain.ContactMessage) { m.Message = "" }},
		}
		for _, tt := range tests {
			t.Run(fmt.Sprintf("Missing_%s", tt.field), func(t *testing.T) {
				mail := &fakeMailer{}
				uc := NewContactUseCase(&fakeContactRepo{}, mail, "owner@example.com", newTestLogger())

				msg := validMessage()
				tt.mut(msg)
				err := uc.SubmitMessage(context.Background(), msg)

				assert.ErrorIs(t, err, domain.ErrValidation)
				assert.Empty(t, mail.sent)
			})
		}
	})

	t.Run("MissingSubjectIsAllowed", func(t *testing.T) {
		mail := &fakeMailer{}
		uc := NewContactUseCase(&fakeContactRepo{}, mail, "owner@example.com", newTestLogger())

		msg := validMessage()
		msg.Subject = ""
		err := uc.SubmitMessage(context.Background(), msg)

		require.NoError(t, err)
		assert.Len(t, mail.sent, 1)
	})

	t.Run("UnconfiguredDestinationRejects", func(t *testing.T) {
		mail := &fakeMailer{}
		uc := NewContactUseCase(&fakeContactRepo{}, mail, "", newTestLogger())

		err := uc.SubmitMessage(context.Background(), validMessage())

		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.Empty(t, mail.sent)
	})
}

func TestSubscribe(t *testing.T) {
	t.Run("NormalizesEmail", func(t *testing.T) {
		repo := &fakeSubscriberRepo{}
		uc := NewSubscriberUseCase(repo, newTestLogger())

		sub, err := uc.Subscribe(context.Background(), "  Ada@Example.COM ")

		require.NoError(t, err)
		assert.Equal(t, "ada@example.com", sub.Email)
	})

	t.Run("EmptyEmailFailsValidation", func(t *testing.T) {
		uc := NewSubscriberUseCase(&fakeSubscriberRepo{}, newTestLogger())

		_, err := uc.Subscribe(context.Background(), "   ")

		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("DuplicateReportsConflict", func(t *testing.T) {
		repo := &fakeSubscriberRepo{}
		uc := NewSubscriberUseCase(repo, newTestLogger())

		_, err := uc.Subscribe(context.Background(), "ada@example.com")
		require.NoError(t, err)
		_, err = uc.Subscribe(context.Background(), "ada@example.com")

		assert.ErrorIs(t, err, domain.ErrAlreadySubscribed)
	})
}

type fakeSubscriberRepo struct {
	subscribers []domain.Subscriber
	nextID      int
}

func (f *fakeSubscriberRepo) CreateSubscriber(ctx context.Context, email string) (*domain.Subscriber, error) {
	for _, s := range f.subscribers {
		if s.Email == email {
			return nil, fmt.Errorf("subscriber %s: %w", email, domain.ErrAlreadySubscribed)
		}
	}
	f.nextID++
	sub := domain.Subscriber{ID: f.nextID, Email: email}
	f.subscribers = append(f.subscribers, sub)
	return &sub, nil
}

func (f *fakeSubscriberRepo) ListSubscribers(ctx context.Context) ([]domain.Subscriber, error) {
	return f.subscribers, nil
}
