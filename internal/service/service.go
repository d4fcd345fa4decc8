package service

import (
	"context"

	"edgeos-client/internal/api"
	"edgeos-client/internal/domain"
)

// ApplicationsAPI is the slice of the EdgeOS API the review workflow
// depends on. *api.Client satisfies it; tests substitute a mock.
type ApplicationsAPI interface {
	ListApplications(ctx context.Context, params api.ListApplicationsParams) (*domain.ApplicationPage, error)
	GetApplication(ctx context.Context, id int64) (*domain.Application, error)
	SubmitReview(ctx context.Context, applicationID int64, decision domain.ReviewDecision) (*domain.Review, error)
	GetReviewSummary(ctx context.Context, applicationID int64) (*domain.ReviewSummary, error)
	GetApprovalStrategy(ctx context.Context, popupID int64) (*domain.ApprovalStrategy, error)
	GetApplicationSchema(ctx context.Context, popupID int64) (*domain.ApplicationSchema, error)
	GetDashboardStats(ctx context.Context, popupID int64) (*domain.DashboardStats, error)
}

type ReviewService interface {
	ListApplications(ctx context.Context, params api.ListApplicationsParams) (*domain.ApplicationPage, error)
	GetApplication(ctx context.Context, id int64) (*domain.Application, error)
	GetReviewSummary(ctx context.Context, applicationID int64) (*domain.ReviewSummary, error)
	GetApplicationSchema(ctx context.Context, popupID int64) (*domain.ApplicationSchema, error)
	SubmitReview(ctx context.Context, popupID, applicationID int64, decision domain.ReviewDecision) error
	SubmitBulkReview(ctx context.Context, popupID int64, applicationIDs []int64, decision domain.ReviewDecision) (int, error)
}

type StrategyService interface {
	GetStrategy(ctx context.Context, popupID int64) *domain.ApprovalStrategy
	IsWeightedVoting(ctx context.Context, popupID int64) bool
}
