package domain

import "time"

type ReviewDecision string

const (
	DecisionStrongYes ReviewDecision = "strong_yes"
	DecisionYes       ReviewDecision = "yes"
	DecisionNo        ReviewDecision = "no"
	DecisionStrongNo  ReviewDecision = "strong_no"
)

// Valid reports whether d is one of the four known decisions.
func (d ReviewDecision) Valid() bool {
	switch d {
	case DecisionStrongYes, DecisionYes, DecisionNo, DecisionStrongNo:
		return true
	}
	return false
}

// IsPositive reports whether the decision argues for acceptance.
func (d ReviewDecision) IsPositive() bool {
	return d == DecisionYes || d == DecisionStrongYes
}

// StatusForDecision maps a review decision to the application status the
// client shows optimistically while the submission is in flight. Positive
// decisions map to accepted, negative ones to rejected; nothing else is
// ever produced.
func StatusForDecision(d ReviewDecision) ApplicationStatus {
	if d.IsPositive() {
		return ApplicationStatusAccepted
	}
	return ApplicationStatusRejected
}

// Review is one reviewer's recorded decision on one application.
type Review struct {
	ID            int64          `json:"id"`
	ApplicationID int64          `json:"application_id"`
	ReviewerID    int64          `json:"reviewer_id"`
	ReviewerName  string         `json:"reviewer_name,omitempty"`
	ReviewerEmail string         `json:"reviewer_email,omitempty"`
	Decision      ReviewDecision `json:"decision"`
	Note          string         `json:"note,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
}

// ReviewSummary is the server-computed aggregate over an application's
// reviews. The client renders it as-is and never recomputes any part of
// it; WeightedScore is nil unless the popup uses the weighted strategy.
type ReviewSummary struct {
	ApplicationID int64                  `json:"application_id"`
	TotalReviews  int                    `json:"total_reviews"`
	Counts        map[ReviewDecision]int `json:"counts"`
	WeightedScore *float64               `json:"weighted_score,omitempty"`
	Reviews       []Review               `json:"reviews"`
}

// CountFor returns the number of reviews with the given decision.
func (s *ReviewSummary) CountFor(d ReviewDecision) int {
	if s.Counts == nil {
		return 0
	}
	return s.Counts[d]
}
