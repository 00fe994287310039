package services

import (
	"context"

	"github.com/EngKARANGWA/rugalika-backend/domain"
	serrors "github.com/EngKARANGWA/rugalika-backend/errors"
)

// HelpRequestService routes citizen requests to departments and walks them
// through the status machine. Transitions outside CanTransition are refused.
type HelpRequestService struct {
	repo domain.HelpRequestRepository
}

func NewHelpRequestService(repo domain.HelpRequestRepository) *HelpRequestService {
	return &HelpRequestService{repo: repo}
}

type HelpRequestInput struct {
	Department domain.Department `json:"department"`
	Subject    string            `json:"subject"`
	Message    string            `json:"message"`
}

func (s *HelpRequestService) Submit(ctx context.Context, user *domain.User, in HelpRequestInput) (*domain.HelpRequest, error) {
	if !domain.ValidDepartment(in.Department) {
		return nil, serrors.NewInvalidRequest("unknown department")
	}
	if in.Subject == "" || in.Message == "" {
		return nil, serrors.NewInvalidRequest("subject and message are required")
	}
	r := &domain.HelpRequest{
		UserID:     user.ID,
		Department: in.Department,
		Subject:    in.Subject,
		Message:    in.Message,
		Status:     domain.HelpRequestPending,
	}
	if err := s.repo.Create(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *HelpRequestService) Get(ctx context.Context, id string, viewer *domain.User) (*domain.HelpRequest, error) {
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.UserID != viewer.ID && !HasRole(viewer, domain.RoleAdmin) {
		return nil, serrors.ErrForbidden
	}
	return r, nil
}

func (s *HelpRequestService) ListMine(ctx context.Context, user *domain.User) ([]*domain.HelpRequest, error) {
	return s.repo.ListByUser(ctx, user.ID)
}

func (s *HelpRequestService) ListForDepartment(ctx context.Context, dept domain.Department, status domain.HelpRequestStatus, limit, offset int64) ([]*domain.HelpRequest, error) {
	if !domain.ValidDepartment(dept) {
		return nil, serrors.NewInvalidRequest("unknown department")
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.repo.ListByDepartment(ctx, dept, status, limit, offset)
}

// Transition moves a request to the next status, optionally assigning it and
// attaching a note.
func (s *HelpRequestService) Transition(ctx context.Context, id string, to domain.HelpRequestStatus, assigneeID, note string) (*domain.HelpRequest, error) {
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !domain.CanTransition(r.Status, to) {
		return nil, serrors.ErrInvalidTransition
	}
	r.Status = to
	if assigneeID != "" {
		r.AssigneeID = assigneeID
	}
	if note != "" {
		r.Note = note
	}
	if err := s.repo.Update(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}
