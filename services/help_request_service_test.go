package services

import (
	"context"
	"testing"

	"github.com/EngKARANGWA/rugalika-backend/domain"
	serrors "github.com/EngKARANGWA/rugalika-backend/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockHelpRequestRepository struct {
	mock.Mock
}

func (m *MockHelpRequestRepository) Create(ctx context.Context, r *domain.HelpRequest) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockHelpRequestRepository) GetByID(ctx context.Context, id string) (*domain.HelpRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.HelpRequest), args.Error(1)
}

func (m *MockHelpRequestRepository) ListByDepartment(ctx context.Context, dept domain.Department, status domain.HelpRequestStatus, limit, offset int64) ([]*domain.HelpRequest, error) {
	args := m.Called(ctx, dept, status, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.HelpRequest), args.Error(1)
}

func (m *MockHelpRequestRepository) ListByUser(ctx context.Context, userID string) ([]*domain.HelpRequest, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.HelpRequest), args.Error(1)
}

func (m *MockHelpRequestRepository) Update(ctx context.Context, r *domain.HelpRequest) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockHelpRequestRepository) CountOpenByDepartment(ctx context.Context) (map[domain.Department]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.Department]int64), args.Error(1)
}

func TestHelpRequestService_Submit(t *testing.T) {
	ctx := context.Background()
	citizen := &domain.User{ID: "user-1", Role: domain.RoleCitizen}

	t.Run("valid request starts pending", func(t *testing.T) {
		repo := new(MockHelpRequestRepository)
		svc := NewHelpRequestService(repo)
		repo.On("Create", ctx, mock.AnythingOfType("*domain.HelpRequest")).Return(nil)

		r, err := svc.Submit(ctx, citizen, HelpRequestInput{
			Department: domain.DepartmentHealth,
			Subject:    "Clinic hours",
			Message:    "When does the Remera clinic open on Saturdays?",
		})
		require.NoError(t, err)
		assert.Equal(t, domain.HelpRequestPending, r.Status)
		assert.Equal(t, citizen.ID, r.UserID)
	})

	t.Run("unknown department", func(t *testing.T) {
		svc := NewHelpRequestService(new(MockHelpRequestRepository))
		_, err := svc.Submit(ctx, citizen, HelpRequestInput{
			Department: "finance", Subject: "s", Message: "m",
		})
		require.Error(t, err)
	})

	t.Run("empty subject", func(t *testing.T) {
		svc := NewHelpRequestService(new(MockHelpRequestRepository))
		_, err := svc.Submit(ctx, citizen, HelpRequestInput{
			Department: domain.DepartmentLand, Message: "m",
		})
		require.Error(t, err)
	})
}

func TestHelpRequestService_Get(t *testing.T) {
	ctx := context.Background()
	owner := &domain.User{ID: "user-1", Role: domain.RoleCitizen}
	other := &domain.User{ID: "user-2", Role: domain.RoleCitizen}
	admin := &domain.User{ID: "admin-1", Role: domain.RoleAdmin}

	repo := new(MockHelpRequestRepository)
	svc := NewHelpRequestService(repo)
	repo.On("GetByID", ctx, "req-1").Return(&domain.HelpRequest{
		ID: "req-1", UserID: owner.ID, Status: domain.HelpRequestPending,
	}, nil)

	t.Run("owner may view", func(t *testing.T) {
		_, err := svc.Get(ctx, "req-1", owner)
		assert.NoError(t, err)
	})

	t.Run("admin may view", func(t *testing.T) {
		_, err := svc.Get(ctx, "req-1", admin)
		assert.NoError(t, err)
	})

	t.Run("other citizens may not", func(t *testing.T) {
		_, err := svc.Get(ctx, "req-1", other)
		assert.ErrorIs(t, err, serrors.ErrForbidden)
	})
}

func TestHelpRequestService_Transition(t *testing.T) {
	ctx := context.Background()

	t.Run("pending to assigned records the assignee", func(t *testing.T) {
		repo := new(MockHelpRequestRepository)
		svc := NewHelpRequestService(repo)
		repo.On("GetByID", ctx, "req-1").Return(&domain.HelpRequest{
			ID: "req-1", Status: domain.HelpRequestPending,
		}, nil)
		repo.On("Update", ctx, mock.AnythingOfType("*domain.HelpRequest")).Return(nil)

		r, err := svc.Transition(ctx, "req-1", domain.HelpRequestAssigned, "officer-3", "taking this")
		require.NoError(t, err)
		assert.Equal(t, domain.HelpRequestAssigned, r.Status)
		assert.Equal(t, "officer-3", r.AssigneeID)
		assert.Equal(t, "taking this", r.Note)
	})

	t.Run("pending straight to resolved is refused", func(t *testing.T) {
		repo := new(MockHelpRequestRepository)
		svc := NewHelpRequestService(repo)
		repo.On("GetByID", ctx, "req-1").Return(&domain.HelpRequest{
			ID: "req-1", Status: domain.HelpRequestPending,
		}, nil)

		_, err := svc.Transition(ctx, "req-1", domain.HelpRequestResolved, "", "")
		assert.ErrorIs(t, err, serrors.ErrInvalidTransition)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("terminal states are frozen", func(t *testing.T) {
		repo := new(MockHelpRequestRepository)
		svc := NewHelpRequestService(repo)
		repo.On("GetByID", ctx, "req-1").Return(&domain.HelpRequest{
			ID: "req-1", Status: domain.HelpRequestResolved,
		}, nil)

		_, err := svc.Transition(ctx, "req-1", domain.HelpRequestRejected, "", "")
		assert.ErrorIs(t, err, serrors.ErrInvalidTransition)
	})
}
