package repositories

import (
	"context"

	"gorm.io/gorm"

	"groundedwarriors/internal/models/db_models"
)

type RegistrationRepositoryInterface interface {
	CreateRegistration(ctx context.Context, registration *db_models.RetreatRegistration) error
	ListByUser(ctx context.Context, userID string) ([]db_models.RetreatRegistration, error)
	// UpdateStatusBySession never moves a completed registration. It returns
	// the number of rows changed.
	UpdateStatusBySession(ctx context.Context, stripeSessionID string, status db_models.PaymentStatus) (int64, error)
}

type registrationRepository struct {
	db *gorm.DB
}

func NewRegistrationRepository(db *gorm.DB) RegistrationRepositoryInterface {
	return &registrationRepository{db: db}
}

func (r *registrationRepository) CreateRegistration(ctx context.Context, registration *db_models.RetreatRegistration) error {
	return translateError(r.db.WithContext(ctx).Create(registration).Error)
}

func (r *registrationRepository) ListByUser(ctx context.Context, userID string) ([]db_models.RetreatRegistration, error) {
	var registrations []db_models.RetreatRegistration
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&registrations).Error
	return registrations, err
}

func (r *registrationRepository) UpdateStatusBySession(ctx context.Context, stripeSessionID string, status db_models.PaymentStatus) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&db_models.RetreatRegistration{}).
		Where("stripe_session_id = ? AND payment_status <> ?", stripeSessionID, db_models.PaymentStatusCompleted).
		Update("payment_status", status)
	return result.RowsAffected, result.Error
}
