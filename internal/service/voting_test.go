package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edgeos-client/internal/domain"
)

func testApp() *domain.Application {
	return &domain.Application{ID: 42, FirstName: "Ada", LastName: "Lovelace", Status: domain.ApplicationStatusInReview}
}

func TestVotingSession_SimpleFlow(t *testing.T) {
	strategy := &domain.ApprovalStrategy{Mode: domain.StrategySimple}
	session := NewVotingSession(strategy, testApp())
	assert.Equal(t, StateIdle, session.State())

	require.NoError(t, session.Select(domain.DecisionYes))
	assert.Equal(t, StateDecisionSelected, session.State())

	prompt, err := session.ConfirmationPrompt()
	require.NoError(t, err)
	assert.Equal(t, StateConfirming, session.State())
	assert.Contains(t, prompt, "approve")
	assert.Contains(t, prompt, "Ada Lovelace")

	var submitted domain.ReviewDecision
	err = session.Submit(context.Background(), func(_ context.Context, d domain.ReviewDecision) error {
		submitted = d
		assert.Equal(t, StateSubmitting, session.State())
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, domain.DecisionYes, submitted)
	assert.Equal(t, StateIdle, session.State())
}

func TestVotingSession_SimpleOffersOnlyYesNo(t *testing.T) {
	strategy := &domain.ApprovalStrategy{Mode: domain.StrategySimple}
	session := NewVotingSession(strategy, testApp())

	err := session.Select(domain.DecisionStrongYes)
	assert.ErrorIs(t, err, ErrDecisionNotOffered)
	assert.Equal(t, StateIdle, session.State())
}

func TestVotingSession_WeightedPromptNamesDecision(t *testing.T) {
	strategy := &domain.ApprovalStrategy{Mode: domain.StrategyWeighted}
	session := NewVotingSession(strategy, testApp())

	require.NoError(t, session.Select(domain.DecisionStrongNo))
	prompt, err := session.ConfirmationPrompt()
	require.NoError(t, err)
	assert.Contains(t, prompt, "Strong No")
	assert.Contains(t, prompt, "Ada Lovelace")
}

func TestVotingSession_FailureReturnsToConfirming(t *testing.T) {
	strategy := &domain.ApprovalStrategy{Mode: domain.StrategySimple}
	session := NewVotingSession(strategy, testApp())

	require.NoError(t, session.Select(domain.DecisionNo))
	_, err := session.ConfirmationPrompt()
	require.NoError(t, err)

	submitErr := errors.New("Payment already approved")
	err = session.Submit(context.Background(), func(context.Context, domain.ReviewDecision) error {
		return submitErr
	})
	assert.ErrorIs(t, err, submitErr)

	// The dialog stays open with the error surfaced so the reviewer may
	// retry; no automatic retry happens.
	assert.Equal(t, StateConfirming, session.State())
	assert.Equal(t, submitErr, session.Err())
	assert.Equal(t, domain.DecisionNo, session.Decision())

	// Retry succeeds and resets the session.
	err = session.Submit(context.Background(), func(context.Context, domain.ReviewDecision) error {
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, StateIdle, session.State())
	assert.NoError(t, session.Err())
}

func TestVotingSession_CancelAllowedExceptWhileSubmitting(t *testing.T) {
	strategy := &domain.ApprovalStrategy{Mode: domain.StrategySimple}
	session := NewVotingSession(strategy, testApp())

	require.NoError(t, session.Select(domain.DecisionYes))
	require.NoError(t, session.Cancel())
	assert.Equal(t, StateIdle, session.State())
	assert.Empty(t, session.Decision())

	require.NoError(t, session.Select(domain.DecisionYes))
	_, err := session.ConfirmationPrompt()
	require.NoError(t, err)

	err = session.Submit(context.Background(), func(context.Context, domain.ReviewDecision) error {
		return session.Cancel()
	})
	assert.ErrorIs(t, err, ErrCancelWhileSubmit)
}

func TestVotingSession_SubmitRequiresConfirmation(t *testing.T) {
	strategy := &domain.ApprovalStrategy{Mode: domain.StrategySimple}
	session := NewVotingSession(strategy, testApp())

	err := session.Submit(context.Background(), func(context.Context, domain.ReviewDecision) error {
		return nil
	})
	assert.ErrorIs(t, err, ErrWrongVotingState)

	require.NoError(t, session.Select(domain.DecisionYes))
	err = session.Submit(context.Background(), func(context.Context, domain.ReviewDecision) error {
		return nil
	})
	assert.ErrorIs(t, err, ErrWrongVotingState, "selection alone is not confirmation")
}
