package services

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"groundedwarriors/internal/models/db_models"
	"groundedwarriors/internal/models/request_models"
	"groundedwarriors/internal/repositories"
	"groundedwarriors/pkg/utils"
)

type ContactServiceInterface interface {
	SubmitContact(ctx context.Context, request request_models.ContactRequest) (*db_models.ContactSubmission, error)
	ListSubmissions(ctx context.Context) ([]db_models.ContactSubmission, error)
}

type ContactService struct {
	repo        repositories.ContactRepositoryInterface
	mail        IMailService
	notifyEmail string
	logger      *zap.Logger
}

func NewContactService(
	repo repositories.ContactRepositoryInterface,
	mail IMailService,
	notifyEmail string,
	logger *zap.Logger,
) ContactServiceInterface {
	return &ContactService{
		repo:        repo,
		mail:        mail,
		notifyEmail: notifyEmail,
		logger:      logger,
	}
}

func (s *ContactService) SubmitContact(ctx context.Context, request request_models.ContactRequest) (*db_models.ContactSubmission, error) {
	submission := &db_models.ContactSubmission{
		Name:    strings.TrimSpace(request.Name),
		Email:   strings.TrimSpace(request.Email),
		Message: strings.TrimSpace(request.Message),
	}
	if len(submission.Name) < 2 {
		return nil, utils.ValidationError("Validation error: name must be at least 2 characters")
	}
	if len(submission.Message) < 10 {
		return nil, utils.ValidationError("Validation error: message must be at least 10 characters")
	}

	if err := s.repo.CreateSubmission(ctx, submission); err != nil {
		return nil, utils.InternalError("Failed to submit contact form", err)
	}

	if s.notifyEmail != "" {
		if err := s.mail.SendContactNotification(ctx, s.notifyEmail, submission); err != nil {
			s.logger.Error("failed to send contact notification",
				zap.Int64("submission_id", submission.ID),
				zap.Error(err))
		}
	}

	return submission, nil
}

func (s *ContactService) ListSubmissions(ctx context.Context) ([]db_models.ContactSubmission, error) {
	submissions, err := s.repo.ListSubmissions(ctx)
	if err != nil {
		return nil, utils.InternalError("Failed to fetch contact submissions", err)
	}
	if submissions == nil {
		submissions = []db_models.ContactSubmission{}
	}
	return submissions, nil
}
