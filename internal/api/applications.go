package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"edgeos-client/internal/domain"
)

// ListApplicationsParams narrows an application listing. Zero values are
// omitted from the query; Limit falls back to the server default.
type ListApplicationsParams struct {
	PopupID      int64
	Skip         int
	Limit        int
	Search       string
	StatusFilter domain.ApplicationStatus
}

func (p ListApplicationsParams) query() url.Values {
	q := url.Values{}
	if p.PopupID != 0 {
		q.Set("popup_id", strconv.FormatInt(p.PopupID, 10))
	}
	if p.Skip > 0 {
		q.Set("skip", strconv.Itoa(p.Skip))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	if p.StatusFilter != "" {
		q.Set("status_filter", string(p.StatusFilter))
	}
	return q
}

// ListApplications returns one page of applications for a popup.
func (c *Client) ListApplications(ctx context.Context, params ListApplicationsParams) (*domain.ApplicationPage, error) {
	var page domain.ApplicationPage
	if err := c.do(ctx, http.MethodGet, "/applications", params.query(), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetApplication fetches one application by ID.
func (c *Client) GetApplication(ctx context.Context, id int64) (*domain.Application, error) {
	var app domain.Application
	if err := c.do(ctx, http.MethodGet, "/applications/"+formatID(id), nil, nil, &app); err != nil {
		return nil, err
	}
	return &app, nil
}

// SubmitReview records one review decision for one application, on
// behalf of the authenticated reviewer. Not idempotent: calling twice
// submits two decisions and the server keeps the active one.
func (c *Client) SubmitReview(ctx context.Context, applicationID int64, decision domain.ReviewDecision) (*domain.Review, error) {
	body := map[string]string{"decision": string(decision)}
	var review domain.Review
	if err := c.do(ctx, http.MethodPost, "/applications/"+formatID(applicationID)+"/reviews", nil, body, &review); err != nil {
		return nil, err
	}
	return &review, nil
}

// GetReviewSummary fetches the server-computed review aggregate for an
// application.
func (c *Client) GetReviewSummary(ctx context.Context, applicationID int64) (*domain.ReviewSummary, error) {
	var summary domain.ReviewSummary
	if err := c.do(ctx, http.MethodGet, "/applications/"+formatID(applicationID)+"/review-summary", nil, nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// GetApprovalStrategy fetches the per-popup approval strategy. A 404
// means no strategy is configured; callers treat that as simple voting.
func (c *Client) GetApprovalStrategy(ctx context.Context, popupID int64) (*domain.ApprovalStrategy, error) {
	var strategy domain.ApprovalStrategy
	if err := c.do(ctx, http.MethodGet, "/popups/"+formatID(popupID)+"/approval-strategy", nil, nil, &strategy); err != nil {
		return nil, err
	}
	return &strategy, nil
}

// GetApplicationSchema fetches the popup's custom field catalog.
func (c *Client) GetApplicationSchema(ctx context.Context, popupID int64) (*domain.ApplicationSchema, error) {
	var schema domain.ApplicationSchema
	if err := c.do(ctx, http.MethodGet, "/popups/"+formatID(popupID)+"/application-schema", nil, nil, &schema); err != nil {
		return nil, err
	}
	return &schema, nil
}

// GetDashboardStats fetches the per-popup status counts shown on the
// backoffice dashboard.
func (c *Client) GetDashboardStats(ctx context.Context, popupID int64) (*domain.DashboardStats, error) {
	var stats domain.DashboardStats
	if err := c.do(ctx, http.MethodGet, "/popups/"+formatID(popupID)+"/dashboard-stats", nil, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
