package services

import (
	"context"

	"github.com/EngKARANGWA/rugalika-backend/domain"
	serrors "github.com/EngKARANGWA/rugalika-backend/errors"
)

// FeedbackService handles citizen feedback on articles and admin responses.
type FeedbackService struct {
	repo domain.FeedbackRepository
	news domain.NewsRepository
}

func NewFeedbackService(repo domain.FeedbackRepository, news domain.NewsRepository) *FeedbackService {
	return &FeedbackService{repo: repo, news: news}
}

func (s *FeedbackService) Submit(ctx context.Context, user *domain.User, newsID, message string) (*domain.Feedback, error) {
	if message == "" {
		return nil, serrors.NewInvalidRequest("message is required")
	}
	if _, err := s.news.GetByID(ctx, newsID); err != nil {
		return nil, err
	}
	f := &domain.Feedback{
		NewsID:  newsID,
		UserID:  user.ID,
		Message: message,
		Status:  domain.FeedbackStatusPending,
	}
	if err := s.repo.Create(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *FeedbackService) ListForNews(ctx context.Context, newsID string) ([]*domain.Feedback, error) {
	return s.repo.ListByNews(ctx, newsID)
}

func (s *FeedbackService) ListPending(ctx context.Context, limit, offset int64) ([]*domain.Feedback, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.repo.ListByStatus(ctx, domain.FeedbackStatusPending, limit, offset)
}

// Respond records an admin answer and flips the status.
func (s *FeedbackService) Respond(ctx context.Context, admin *domain.User, id, response string) (*domain.Feedback, error) {
	if response == "" {
		return nil, serrors.NewInvalidRequest("response is required")
	}
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	f.Response = response
	f.RespondedBy = admin.ID
	f.Status = domain.FeedbackStatusResponded
	if err := s.repo.Update(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}
