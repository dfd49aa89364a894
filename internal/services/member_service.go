package services

import (
	"context"
	"strings"

	"groundedwarriors/internal/models/db_models"
	"groundedwarriors/internal/models/request_models"
	"groundedwarriors/internal/repositories"
	"groundedwarriors/pkg/utils"
)

type MemberServiceInterface interface {
	ListRegistrations(ctx context.Context, userID string) ([]db_models.RetreatRegistration, error)
	ListDiscussions(ctx context.Context) ([]db_models.Discussion, error)
	GetDiscussion(ctx context.Context, id int64) (*db_models.Discussion, []db_models.DiscussionReply, error)
	CreateDiscussion(ctx context.Context, author *db_models.User, request request_models.CreateDiscussionRequest) (*db_models.Discussion, error)
	CreateReply(ctx context.Context, author *db_models.User, discussionID int64, request request_models.CreateReplyRequest) (*db_models.DiscussionReply, error)
}

type MemberService struct {
	registrations repositories.RegistrationRepositoryInterface
	discussions   repositories.DiscussionRepositoryInterface
}

func NewMemberService(
	registrations repositories.RegistrationRepositoryInterface,
	discussions repositories.DiscussionRepositoryInterface,
) MemberServiceInterface {
	return &MemberService{
		registrations: registrations,
		discussions:   discussions,
	}
}

func (m *MemberService) ListRegistrations(ctx context.Context, userID string) ([]db_models.RetreatRegistration, error) {
	registrations, err := m.registrations.ListByUser(ctx, userID)
	if err != nil {
		return nil, utils.InternalError("Failed to fetch registrations", err)
	}
	if registrations == nil {
		registrations = []db_models.RetreatRegistration{}
	}
	return registrations, nil
}

func (m *MemberService) ListDiscussions(ctx context.Context) ([]db_models.Discussion, error) {
	discussions, err := m.discussions.ListDiscussions(ctx)
	if err != nil {
		return nil, utils.InternalError("Failed to fetch discussions", err)
	}
	if discussions == nil {
		discussions = []db_models.Discussion{}
	}
	return discussions, nil
}

func (m *MemberService) GetDiscussion(ctx context.Context, id int64) (*db_models.Discussion, []db_models.DiscussionReply, error) {
	discussion, err := m.discussions.FindDiscussion(ctx, id)
	if err != nil {
		return nil, nil, utils.InternalError("Failed to fetch discussion", err)
	}
	if discussion == nil {
		return nil, nil, utils.NotFoundError("Discussion not found")
	}

	replies, err := m.discussions.ListReplies(ctx, id)
	if err != nil {
		return nil, nil, utils.InternalError("Failed to fetch replies", err)
	}
	if replies == nil {
		replies = []db_models.DiscussionReply{}
	}
	return discussion, replies, nil
}

func (m *MemberService) CreateDiscussion(ctx context.Context, author *db_models.User, request request_models.CreateDiscussionRequest) (*db_models.Discussion, error) {
	title := strings.TrimSpace(request.Title)
	content := strings.TrimSpace(request.Content)
	if title == "" || content == "" {
		return nil, utils.ValidationError("Title and content are required")
	}

	discussion := &db_models.Discussion{
		UserID:    author.ID,
		UserName:  author.DisplayName(),
		UserImage: author.ProfileImageURL,
		Title:     title,
		Content:   content,
	}
	if err := m.discussions.CreateDiscussion(ctx, discussion); err != nil {
		return nil, utils.InternalError("Failed to create discussion", err)
	}
	return discussion, nil
}

func (m *MemberService) CreateReply(ctx context.Context, author *db_models.User, discussionID int64, request request_models.CreateReplyRequest) (*db_models.DiscussionReply, error) {
	content := strings.TrimSpace(request.Content)
	if content == "" {
		return nil, utils.ValidationError("Content is required")
	}

	discussion, err := m.discussions.FindDiscussion(ctx, discussionID)
	if err != nil {
		return nil, utils.InternalError("Failed to create reply", err)
	}
	if discussion == nil {
		return nil, utils.NotFoundError("Discussion not found")
	}

	reply := &db_models.DiscussionReply{
		DiscussionID: discussionID,
		UserID:       author.ID,
		UserName:     author.DisplayName(),
		UserImage:    author.ProfileImageURL,
		Content:      content,
	}
	if err := m.discussions.CreateReply(ctx, reply); err != nil {
		return nil, utils.InternalError("Failed to create reply", err)
	}
	return reply, nil
}
