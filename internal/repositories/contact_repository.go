package repositories

import (
	"context"

	"gorm.io/gorm"

	"groundedwarriors/internal/models/db_models"
)

type ContactRepositoryInterface interface {
	CreateSubmission(ctx context.Context, submission *db_models.ContactSubmission) error
	ListSubmissions(ctx context.Context) ([]db_models.ContactSubmission, error)
}

type contactRepository struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) ContactRepositoryInterface {
	return &contactRepository{db: db}
}

func (r *contactRepository) CreateSubmission(ctx context.Context, submission *db_models.ContactSubmission) error {
	return r.db.WithContext(ctx).Create(submission).Error
}

func (r *contactRepository) ListSubmissions(ctx context.Context) ([]db_models.ContactSubmission, error) {
	var submissions []db_models.ContactSubmission
	err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&submissions).Error
	return submissions, err
}
