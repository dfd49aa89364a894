package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"groundedwarriors/internal/models/db_models"
)

type UserRepository interface {
	Insert(ctx context.Context, user *db_models.User) error
	FindById(ctx context.Context, id string) (*db_models.User, error)
	FindByEmail(ctx context.Context, email string) (*db_models.User, error)
	FindByResetToken(ctx context.Context, token string) (*db_models.User, error)
	SetResetToken(ctx context.Context, userID, token string, expiry time.Time) error
	ClearResetToken(ctx context.Context, userID string) error
	// ConsumeResetToken replaces the password only while token is still the
	// user's outstanding token. It reports whether a row was updated.
	ConsumeResetToken(ctx context.Context, userID, token, passwordHash string) (bool, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{
		db: db,
	}
}

func (r *userRepository) Insert(ctx context.Context, user *db_models.User) error {
	return translateError(r.db.WithContext(ctx).Create(user).Error)
}

func (r *userRepository) FindById(ctx context.Context, id string) (*db_models.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*db_models.User, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *userRepository) FindByResetToken(ctx context.Context, token string) (*db_models.User, error) {
	return r.first(ctx, "reset_token = ?", token)
}

func (r *userRepository) first(ctx context.Context, query string, args ...interface{}) (*db_models.User, error) {
	var user db_models.User
	err := r.db.WithContext(ctx).Where(query, args...).First(&user).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &user, nil
}

func (r *userRepository) SetResetToken(ctx context.Context, userID, token string, expiry time.Time) error {
	return r.db.WithContext(ctx).
		Model(&db_models.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"reset_token":        token,
			"reset_token_expiry": expiry,
			"updated_at":         time.Now().UTC(),
		}).Error
}

func (r *userRepository) ClearResetToken(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).
		Model(&db_models.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"reset_token":        nil,
			"reset_token_expiry": nil,
		}).Error
}

func (r *userRepository) ConsumeResetToken(ctx context.Context, userID, token, passwordHash string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&db_models.User{}).
		Where("id = ? AND reset_token = ?", userID, token).
		Updates(map[string]interface{}{
			"password":           passwordHash,
			"reset_token":        nil,
			"reset_token_expiry": nil,
			"updated_at":         time.Now().UTC(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}
