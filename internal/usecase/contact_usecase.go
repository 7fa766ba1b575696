package usecase

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"storefront/internal/domain"
)

type ContactUseCase interface {
	SubmitMessage(ctx context.Context, msg *domain.ContactMessage) error
}

type contactUseCase struct {
	contactRepo domain.ContactRepository
	mailer      domain.Mailer
	// destination is the shop owner's notification address. Submissions
	// are rejected when it is unconfigured.
	destination string
	log         *logrus.Logger
}

func NewContactUseCase(repo domain.ContactRepository, mailer domain.Mailer, destination string, logger *logrus.Logger) ContactUseCase {
	return &contactUseCase{
		contactRepo: repo,
		mailer:      mailer,
		destination: destination,
		log:         logger,
	}
}

// SubmitMessage persists the message best-effort and then dispatches the
// notification email. Only the email decides success: a failed database
// write is logged and swallowed, a failed dispatch fails the submission.
func (uc *contactUseCase) SubmitMessage(ctx context.Context, msg *domain.ContactMessage) error {
	if msg.Name == "" || msg.Email == "" || msg.Message == "" {
		return fmt.Errorf("name, email, and message are required: %w", domain.ErrValidation)
	}
	if uc.destination == "" {
		uc.log.Warn("Use Case: Contact submission rejected - no destination address configured")
		return fmt.Errorf("contact destination address is not configured: %w", domain.ErrValidation)
	}

	if err := uc.contactRepo.CreateContactMessage(ctx, msg); err != nil {
		uc.log.Warnf("Use Case: Failed to save contact message, continuing to send email: %v", err)
	}

	if err := uc.mailer.SendContactMessage(msg); err != nil {
		uc.log.Errorf("Use Case: Contact email dispatch failed for %s: %v", msg.Email, err)
		return fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}

	uc.log.Infof("Use Case: Contact message from %s dispatched", msg.Email)
	return nil
}
