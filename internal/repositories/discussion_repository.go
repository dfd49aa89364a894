package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"groundedwarriors/internal/models/db_models"
)

type DiscussionRepositoryInterface interface {
	CreateDiscussion(ctx context.Context, discussion *db_models.Discussion) error
	ListDiscussions(ctx context.Context) ([]db_models.Discussion, error)
	FindDiscussion(ctx context.Context, id int64) (*db_models.Discussion, error)
	CreateReply(ctx context.Context, reply *db_models.DiscussionReply) error
	ListReplies(ctx context.Context, discussionID int64) ([]db_models.DiscussionReply, error)
}

type discussionRepository struct {
	db *gorm.DB
}

func NewDiscussionRepository(db *gorm.DB) DiscussionRepositoryInterface {
	return &discussionRepository{db: db}
}

func (r *discussionRepository) CreateDiscussion(ctx context.Context, discussion *db_models.Discussion) error {
	return r.db.WithContext(ctx).Create(discussion).Error
}

func (r *discussionRepository) ListDiscussions(ctx context.Context) ([]db_models.Discussion, error) {
	var discussions []db_models.Discussion
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&discussions).Error
	return discussions, err
}

func (r *discussionRepository) FindDiscussion(ctx context.Context, id int64) (*db_models.Discussion, error) {
	var discussion db_models.Discussion
	err := r.db.WithContext(ctx).First(&discussion, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &discussion, nil
}

func (r *discussionRepository) CreateReply(ctx context.Context, reply *db_models.DiscussionReply) error {
	return r.db.WithContext(ctx).Create(reply).Error
}

func (r *discussionRepository) ListReplies(ctx context.Context, discussionID int64) ([]db_models.DiscussionReply, error) {
	var replies []db_models.DiscussionReply
	err := r.db.WithContext(ctx).
		Where("discussion_id = ?", discussionID).
		Order("created_at ASC").
		Find(&replies).Error
	return replies, err
}
