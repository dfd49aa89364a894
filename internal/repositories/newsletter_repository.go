package repositories

import (
	"context"

	"gorm.io/gorm"

	"groundedwarriors/internal/models/db_models"
)

type NewsletterRepositoryInterface interface {
	// CreateSubscription returns ErrDuplicate when the email is already subscribed.
	CreateSubscription(ctx context.Context, subscription *db_models.NewsletterSubscription) error
	ListSubscriptions(ctx context.Context) ([]db_models.NewsletterSubscription, error)
}

type newsletterRepository struct {
	db *gorm.DB
}

func NewNewsletterRepository(db *gorm.DB) NewsletterRepositoryInterface {
	return &newsletterRepository{db: db}
}

func (r *newsletterRepository) CreateSubscription(ctx context.Context, subscription *db_models.NewsletterSubscription) error {
	return translateError(r.db.WithContext(ctx).Create(subscription).Error)
}

func (r *newsletterRepository) ListSubscriptions(ctx context.Context) ([]db_models.NewsletterSubscription, error) {
	var subscriptions []db_models.NewsletterSubscription
	err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&subscriptions).Error
	return subscriptions, err
}
