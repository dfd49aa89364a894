package services

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"groundedwarriors/internal/models/db_models"
	"groundedwarriors/internal/repositories"
	"groundedwarriors/pkg/utils"
)

type NewsletterServiceInterface interface {
	Subscribe(ctx context.Context, email string) (*db_models.NewsletterSubscription, error)
}

type NewsletterService struct {
	repo   repositories.NewsletterRepositoryInterface
	logger *zap.Logger
}

func NewNewsletterService(repo repositories.NewsletterRepositoryInterface, logger *zap.Logger) NewsletterServiceInterface {
	return &NewsletterService{repo: repo, logger: logger}
}

func (s *NewsletterService) Subscribe(ctx context.Context, email string) (*db_models.NewsletterSubscription, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return nil, utils.ValidationError("Validation error: email is required")
	}

	subscription := &db_models.NewsletterSubscription{Email: email}
	if err := s.repo.CreateSubscription(ctx, subscription); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, utils.ConflictError("This email is already subscribed")
		}
		return nil, utils.InternalError("Failed to subscribe", err)
	}

	s.logger.Info("newsletter subscription", zap.Int64("subscription_id", subscription.ID))
	return subscription, nil
}
