package service

import (
	"context"
	"errors"
	"fmt"

	"edgeos-client/internal/domain"
)

// VotingState tracks a voting panel through one decision.
type VotingState string

const (
	StateIdle             VotingState = "idle"
	StateDecisionSelected VotingState = "decision_selected"
	StateConfirming       VotingState = "confirming"
	StateSubmitting       VotingState = "submitting"
)

var (
	ErrDecisionNotOffered = errors.New("decision not offered under this strategy")
	ErrWrongVotingState   = errors.New("action not allowed in current voting state")
	ErrCancelWhileSubmit  = errors.New("cannot cancel while submitting")
)

// VotingSession is one voting panel instance: pick a decision, confirm
// it against the named applicant, submit exactly once. Submission
// failure returns the session to confirming with the error retained, so
// the caller may retry or cancel; success returns it to idle. Not safe
// for concurrent use; a session belongs to one reviewer interaction.
type VotingSession struct {
	strategy *domain.ApprovalStrategy
	app      *domain.Application
	state    VotingState
	decision domain.ReviewDecision
	lastErr  error
}

func NewVotingSession(strategy *domain.ApprovalStrategy, app *domain.Application) *VotingSession {
	return &VotingSession{
		strategy: strategy,
		app:      app,
		state:    StateIdle,
	}
}

func (v *VotingSession) State() VotingState               { return v.state }
func (v *VotingSession) Decision() domain.ReviewDecision  { return v.decision }
func (v *VotingSession) Err() error                       { return v.lastErr }
func (v *VotingSession) Offered() []domain.ReviewDecision { return v.strategy.OfferedDecisions() }

// Select picks a decision from the offered set.
func (v *VotingSession) Select(d domain.ReviewDecision) error {
	if v.state != StateIdle {
		return ErrWrongVotingState
	}
	for _, offered := range v.Offered() {
		if d == offered {
			v.decision = d
			v.state = StateDecisionSelected
			return nil
		}
	}
	return ErrDecisionNotOffered
}

// ConfirmationPrompt moves the session to the confirmation step and
// returns the prompt naming the decision and the applicant. Simple
// voting phrases it as approve/reject; weighted voting names the
// specific decision.
func (v *VotingSession) ConfirmationPrompt() (string, error) {
	if v.state != StateDecisionSelected {
		return "", ErrWrongVotingState
	}
	v.state = StateConfirming

	if !v.strategy.IsWeighted() {
		verb := "approve"
		if !v.decision.IsPositive() {
			verb = "reject"
		}
		return fmt.Sprintf("Are you sure you want to %s the application from %s?", verb, v.app.FullName()), nil
	}
	return fmt.Sprintf("Submit %q for the application from %s?", v.strategy.DecisionLabel(v.decision), v.app.FullName()), nil
}

// Submit dispatches the confirmed decision through submit. While the
// call is in flight the session is submitting and both cancel and a
// second submit are rejected.
func (v *VotingSession) Submit(ctx context.Context, submit func(ctx context.Context, decision domain.ReviewDecision) error) error {
	if v.state != StateConfirming {
		return ErrWrongVotingState
	}
	v.state = StateSubmitting

	if err := submit(ctx, v.decision); err != nil {
		// Stay on the confirmation step so the reviewer may retry.
		v.state = StateConfirming
		v.lastErr = err
		return err
	}
	v.state = StateIdle
	v.decision = ""
	v.lastErr = nil
	return nil
}

// Cancel abandons the current decision. Allowed in every state except
// submitting.
func (v *VotingSession) Cancel() error {
	if v.state == StateSubmitting {
		return ErrCancelWhileSubmit
	}
	v.state = StateIdle
	v.decision = ""
	v.lastErr = nil
	return nil
}
