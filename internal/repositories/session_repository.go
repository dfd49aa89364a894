package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"groundedwarriors/internal/models/db_models"
)

// SessionRepository persists login sessions.
type SessionRepository interface {
	Create(ctx context.Context, session *db_models.Session) error
	// Get returns nil for unknown and for expired sessions.
	Get(ctx context.Context, sid string, now time.Time) (*db_models.Session, error)
	Touch(ctx context.Context, sid string, expire time.Time) error
	Destroy(ctx context.Context, sid string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(ctx context.Context, session *db_models.Session) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *sessionRepository) Get(ctx context.Context, sid string, now time.Time) (*db_models.Session, error) {
	var session db_models.Session
	err := r.db.WithContext(ctx).
		Where("sid = ? AND expire > ?", sid, now).
		First(&session).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &session, nil
}

func (r *sessionRepository) Touch(ctx context.Context, sid string, expire time.Time) error {
	return r.db.WithContext(ctx).
		Model(&db_models.Session{}).
		Where("sid = ?", sid).
		Update("expire", expire).Error
}

func (r *sessionRepository) Destroy(ctx context.Context, sid string) error {
	return r.db.WithContext(ctx).
		Where("sid = ?", sid).
		Delete(&db_models.Session{}).Error
}

func (r *sessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expire <= ?", now).
		Delete(&db_models.Session{})
	return result.RowsAffected, result.Error
}
