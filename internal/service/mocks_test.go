package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"edgeos-client/internal/api"
	"edgeos-client/internal/domain"
)

// MockAPI mocks ApplicationsAPI
type MockAPI struct {
	mock.Mock
}

func (m *MockAPI) ListApplications(ctx context.Context, params api.ListApplicationsParams) (*domain.ApplicationPage, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ApplicationPage), args.Error(1)
}

func (m *MockAPI) GetApplication(ctx context.Context, id int64) (*domain.Application, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}

func (m *MockAPI) SubmitReview(ctx context.Context, applicationID int64, decision domain.ReviewDecision) (*domain.Review, error) {
	args := m.Called(ctx, applicationID, decision)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Review), args.Error(1)
}

func (m *MockAPI) GetReviewSummary(ctx context.Context, applicationID int64) (*domain.ReviewSummary, error) {
	args := m.Called(ctx, applicationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReviewSummary), args.Error(1)
}

func (m *MockAPI) GetApprovalStrategy(ctx context.Context, popupID int64) (*domain.ApprovalStrategy, error) {
	args := m.Called(ctx, popupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ApprovalStrategy), args.Error(1)
}

func (m *MockAPI) GetApplicationSchema(ctx context.Context, popupID int64) (*domain.ApplicationSchema, error) {
	args := m.Called(ctx, popupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ApplicationSchema), args.Error(1)
}

func (m *MockAPI) GetDashboardStats(ctx context.Context, popupID int64) (*domain.DashboardStats, error) {
	args := m.Called(ctx, popupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DashboardStats), args.Error(1)
}
