package domain

type StrategyMode string

const (
	StrategySimple   StrategyMode = "simple"
	StrategyWeighted StrategyMode = "weighted"
)

// ApprovalStrategy is the per-popup configuration selecting the voting
// semantics. Read-only from the client's perspective; when the server has
// no strategy configured the client falls back to simple.
type ApprovalStrategy struct {
	PopupID       int64        `json:"popup_city_id"`
	Mode          StrategyMode `json:"mode"`
	RequiredVotes int          `json:"required_votes,omitempty"`
	Threshold     *float64     `json:"threshold,omitempty"`
}

// IsWeighted reports whether the weighted voting panel applies.
func (s *ApprovalStrategy) IsWeighted() bool {
	return s != nil && s.Mode == StrategyWeighted
}

// OfferedDecisions lists the decisions a reviewer may pick under the
// strategy: simple voting offers approve/reject only, weighted voting
// offers all four levels.
func (s *ApprovalStrategy) OfferedDecisions() []ReviewDecision {
	if s.IsWeighted() {
		return []ReviewDecision{DecisionStrongYes, DecisionYes, DecisionNo, DecisionStrongNo}
	}
	return []ReviewDecision{DecisionYes, DecisionNo}
}

// DecisionLabel returns the label shown for a decision under the
// strategy. Simple voting phrases yes/no as approve/reject.
func (s *ApprovalStrategy) DecisionLabel(d ReviewDecision) string {
	if !s.IsWeighted() {
		switch d {
		case DecisionYes:
			return "Approve"
		case DecisionNo:
			return "Reject"
		}
	}
	switch d {
	case DecisionStrongYes:
		return "Strong Yes"
	case DecisionYes:
		return "Yes"
	case DecisionNo:
		return "No"
	case DecisionStrongNo:
		return "Strong No"
	}
	return string(d)
}
