package service

import (
	"fmt"
	"strings"

	"edgeos-client/internal/domain"
)

// SummaryView is the display model for a review summary. It is pure
// presentation over server-provided aggregates; nothing here recomputes
// counts or scores.
type SummaryView struct {
	Empty            bool
	TotalReviews     int
	Counts           []DecisionCount
	HasWeightedScore bool
	WeightedScore    float64
	Reviews          []ReviewLine
}

type DecisionCount struct {
	Label string
	Count int
}

type ReviewLine struct {
	Reviewer string
	Decision string
	Note     string
}

// NewSummaryView builds the display model. A nil weighted score
// suppresses the weighted-score row entirely; a numeric zero keeps it.
func NewSummaryView(summary *domain.ReviewSummary, strategy *domain.ApprovalStrategy) SummaryView {
	if summary == nil || summary.TotalReviews == 0 {
		return SummaryView{Empty: true}
	}

	view := SummaryView{
		TotalReviews: summary.TotalReviews,
	}
	for _, d := range []domain.ReviewDecision{domain.DecisionStrongYes, domain.DecisionYes, domain.DecisionNo, domain.DecisionStrongNo} {
		if count := summary.CountFor(d); count > 0 {
			view.Counts = append(view.Counts, DecisionCount{
				Label: strategy.DecisionLabel(d),
				Count: count,
			})
		}
	}
	if summary.WeightedScore != nil {
		view.HasWeightedScore = true
		view.WeightedScore = *summary.WeightedScore
	}
	for _, r := range summary.Reviews {
		reviewer := r.ReviewerName
		if reviewer == "" {
			reviewer = r.ReviewerEmail
		}
		view.Reviews = append(view.Reviews, ReviewLine{
			Reviewer: reviewer,
			Decision: strategy.DecisionLabel(r.Decision),
			Note:     r.Note,
		})
	}
	return view
}

// Render formats the view as terminal text.
func (v SummaryView) Render() string {
	if v.Empty {
		return "No reviews yet\n"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Total Reviews: %d\n", v.TotalReviews)
	for _, c := range v.Counts {
		fmt.Fprintf(&b, "  %s: %d\n", c.Label, c.Count)
	}
	if v.HasWeightedScore {
		fmt.Fprintf(&b, "Weighted Score: %g\n", v.WeightedScore)
	}
	if len(v.Reviews) > 0 {
		b.WriteString("Reviews:\n")
		for _, r := range v.Reviews {
			if r.Note != "" {
				fmt.Fprintf(&b, "  %s: %s (%s)\n", r.Reviewer, r.Decision, r.Note)
			} else {
				fmt.Fprintf(&b, "  %s: %s\n", r.Reviewer, r.Decision)
			}
		}
	}
	return b.String()
}
