package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"storefront/internal/domain"
)

type SubscriberUseCase interface {
	Subscribe(ctx context.Context, email string) (*domain.Subscriber, error)
	ListSubscribers(ctx context.Context) ([]domain.Subscriber, error)
}

type subscriberUseCase struct {
	subscriberRepo domain.SubscriberRepository
	log            *logrus.Logger
}

func NewSubscriberUseCase(repo domain.SubscriberRepository, logger *logrus.Logger) SubscriberUseCase {
	return &subscriberUseCase{
		subscriberRepo: repo,
		log:            logger,
	}
}

func (uc *subscriberUseCase) Subscribe(ctx context.Context, email string) (*domain.Subscriber, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, fmt.Errorf("email address is required: %w", domain.ErrValidation)
	}

	subscriber, err := uc.subscriberRepo.CreateSubscriber(ctx, email)
	if err != nil {
		return nil, err
	}

	uc.log.Infof("Use Case: New subscriber %s", email)
	return subscriber, nil
}

func (uc *subscriberUseCase) ListSubscribers(ctx context.Context) ([]domain.Subscriber, error) {
	return uc.subscriberRepo.ListSubscribers(ctx)
}
