package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"edgeos-client/internal/api"
	"edgeos-client/internal/cache"
	"edgeos-client/internal/domain"
)

func TestStrategyService_NotFoundFallsBackToSimple(t *testing.T) {
	mockAPI := new(MockAPI)
	svc := NewStrategyService(mockAPI, cache.New())
	ctx := context.Background()

	mockAPI.On("GetApprovalStrategy", mock.Anything, testPopupID).
		Return(nil, &api.APIError{Status: 404, Detail: "Approval strategy not found"}).Once()

	// The 404 is swallowed: no error escapes and the popup votes simple.
	assert.False(t, svc.IsWeightedVoting(ctx, testPopupID))

	// The fallback is cached; the lookup is not retried.
	assert.False(t, svc.IsWeightedVoting(ctx, testPopupID))
	mockAPI.AssertNumberOfCalls(t, "GetApprovalStrategy", 1)
}

func TestStrategyService_TransportFailureFallsBackToSimple(t *testing.T) {
	mockAPI := new(MockAPI)
	svc := NewStrategyService(mockAPI, cache.New())

	mockAPI.On("GetApprovalStrategy", mock.Anything, testPopupID).
		Return(nil, errors.New("connection refused")).Once()

	assert.False(t, svc.IsWeightedVoting(context.Background(), testPopupID))
}

func TestStrategyService_WeightedStrategy(t *testing.T) {
	mockAPI := new(MockAPI)
	svc := NewStrategyService(mockAPI, cache.New())

	mockAPI.On("GetApprovalStrategy", mock.Anything, testPopupID).
		Return(&domain.ApprovalStrategy{PopupID: testPopupID, Mode: domain.StrategyWeighted}, nil).Once()

	assert.True(t, svc.IsWeightedVoting(context.Background(), testPopupID))
	mockAPI.AssertExpectations(t)
}
