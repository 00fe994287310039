package services

import (
	"context"

	"github.com/EngKARANGWA/rugalika-backend/domain"
)

// AnalyticsSummary is the admin dashboard's raw counts.
type AnalyticsSummary struct {
	Users             int64                       `json:"users"`
	PublishedNews     int64                       `json:"publishedNews"`
	PendingFeedback   int64                       `json:"pendingFeedback"`
	RespondedFeedback int64                       `json:"respondedFeedback"`
	OpenHelpRequests  map[domain.Department]int64 `json:"openHelpRequests"`
}

// AnalyticsService aggregates counts across collections. No derived
// computation happens here, only raw totals.
type AnalyticsService struct {
	users    domain.UserRepository
	news     domain.NewsRepository
	feedback domain.FeedbackRepository
	requests domain.HelpRequestRepository
}

func NewAnalyticsService(
	users domain.UserRepository,
	news domain.NewsRepository,
	feedback domain.FeedbackRepository,
	requests domain.HelpRequestRepository,
) *AnalyticsService {
	return &AnalyticsService{users: users, news: news, feedback: feedback, requests: requests}
}

func (s *AnalyticsService) Summary(ctx context.Context) (*AnalyticsSummary, error) {
	users, err := s.users.CountUsers(ctx)
	if err != nil {
		return nil, err
	}
	news, err := s.news.CountPublished(ctx)
	if err != nil {
		return nil, err
	}
	pending, err := s.feedback.CountByStatus(ctx, domain.FeedbackStatusPending)
	if err != nil {
		return nil, err
	}
	responded, err := s.feedback.CountByStatus(ctx, domain.FeedbackStatusResponded)
	if err != nil {
		return nil, err
	}
	open, err := s.requests.CountOpenByDepartment(ctx)
	if err != nil {
		return nil, err
	}
	return &AnalyticsSummary{
		Users:             users,
		PublishedNews:     news,
		PendingFeedback:   pending,
		RespondedFeedback: responded,
		OpenHelpRequests:  open,
	}, nil
}
