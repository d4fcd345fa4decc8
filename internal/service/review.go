package service

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"edgeos-client/internal/api"
	"edgeos-client/internal/cache"
	"edgeos-client/internal/domain"
	"edgeos-client/internal/logger"
)

// Cache namespaces. Everything an optimistic review patch may touch
// lives under nsApplications; dashboard stats are a dependent aggregate
// that is only ever invalidated, never patched.
const (
	nsApplications = "applications"
	nsDashboard    = "dashboard"
	nsSummaries    = "review-summaries"
	nsSchemas      = "application-schemas"
)

func pageKey(p api.ListApplicationsParams) string {
	return cache.Key(nsApplications, p.PopupID, "page", p.Skip, p.Limit, p.Search, string(p.StatusFilter))
}

func detailKey(applicationID int64) string {
	return cache.Key(nsApplications, "detail", applicationID)
}

type reviewService struct {
	api   ApplicationsAPI
	store *cache.Store
	log   *slog.Logger
}

func NewReviewService(apiClient ApplicationsAPI, store *cache.Store) ReviewService {
	return &reviewService{
		api:   apiClient,
		store: store,
		log:   logger.WithService("review"),
	}
}

// ListApplications returns a cached page when one is live, otherwise
// fetches and caches it. A stale page triggers a refetch; the stale copy
// stays readable in the store until the fresh one lands.
func (s *reviewService) ListApplications(ctx context.Context, params api.ListApplicationsParams) (*domain.ApplicationPage, error) {
	key := pageKey(params)
	if v, ok, stale := s.store.Get(key); ok && !stale {
		return v.(*domain.ApplicationPage), nil
	}
	page, err := s.api.ListApplications(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	s.store.Set(key, page)
	return page, nil
}

func (s *reviewService) GetApplication(ctx context.Context, id int64) (*domain.Application, error) {
	key := detailKey(id)
	if v, ok, stale := s.store.Get(key); ok && !stale {
		return v.(*domain.Application), nil
	}
	app, err := s.api.GetApplication(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get application %d: %w", id, err)
	}
	s.store.Set(key, app)
	return app, nil
}

func (s *reviewService) GetReviewSummary(ctx context.Context, applicationID int64) (*domain.ReviewSummary, error) {
	key := cache.Key(nsSummaries, applicationID)
	if v, ok, stale := s.store.Get(key); ok && !stale {
		return v.(*domain.ReviewSummary), nil
	}
	summary, err := s.api.GetReviewSummary(ctx, applicationID)
	if err != nil {
		return nil, fmt.Errorf("get review summary %d: %w", applicationID, err)
	}
	s.store.Set(key, summary)
	return summary, nil
}

func (s *reviewService) GetApplicationSchema(ctx context.Context, popupID int64) (*domain.ApplicationSchema, error) {
	key := cache.Key(nsSchemas, popupID)
	if v, ok, stale := s.store.Get(key); ok && !stale {
		return v.(*domain.ApplicationSchema), nil
	}
	schema, err := s.api.GetApplicationSchema(ctx, popupID)
	if err != nil {
		return nil, fmt.Errorf("get application schema %d: %w", popupID, err)
	}
	s.store.Set(key, schema)
	return schema, nil
}

// SubmitReview records one decision for one application. The cached
// status is rewritten optimistically across every entry in the
// applications namespace before the call is dispatched, restored
// verbatim if the call fails, and the applications and dashboard-stats
// namespaces are invalidated either way. Not idempotent: calling twice
// submits two decisions.
func (s *reviewService) SubmitReview(ctx context.Context, popupID, applicationID int64, decision domain.ReviewDecision) error {
	if !decision.Valid() {
		return fmt.Errorf("invalid review decision %q", decision)
	}
	status := domain.StatusForDecision(decision)
	s.log.Debug("submitting review", "application_id", applicationID, "decision", decision, "optimistic_status", status)

	return runOptimistic(ctx, s.store, optimisticMutation{
		namespace: []any{nsApplications},
		patch: func() {
			s.patchStatus(map[int64]bool{applicationID: true}, status)
		},
		call: func(ctx context.Context) error {
			_, err := s.api.SubmitReview(ctx, applicationID, decision)
			return err
		},
		invalidate: [][]any{
			{nsApplications},
			{nsSummaries, applicationID},
			{nsDashboard, "stats", popupID},
		},
	})
}

// SubmitBulkReview submits one decision for every selected application
// whose cached status is exactly "in review"; other selections are
// silently excluded. The eligible submissions are dispatched
// concurrently with no ordering guarantee, and each runs to completion
// regardless of the others: one failure never cancels an in-flight
// sibling. The optimistic patch and its rollback cover the whole batch
// atomically on the cache even though the network calls are not atomic:
// any failure rolls every row back, and the settle invalidation corrects
// whatever the successful calls already changed server-side. Returns the
// number of submissions dispatched.
func (s *reviewService) SubmitBulkReview(ctx context.Context, popupID int64, applicationIDs []int64, decision domain.ReviewDecision) (int, error) {
	if !decision.Valid() {
		return 0, fmt.Errorf("invalid review decision %q", decision)
	}

	eligible := s.eligibleForReview(applicationIDs)
	if len(eligible) == 0 {
		s.log.Debug("bulk review skipped, no eligible applications", "selected", len(applicationIDs))
		return 0, nil
	}
	status := domain.StatusForDecision(decision)
	s.log.Debug("submitting bulk review", "eligible", len(eligible), "selected", len(applicationIDs), "decision", decision)

	err := runOptimistic(ctx, s.store, optimisticMutation{
		namespace: []any{nsApplications},
		patch: func() {
			s.patchStatus(eligible, status)
		},
		call: func(ctx context.Context) error {
			var g errgroup.Group
			for id := range eligible {
				id := id
				g.Go(func() error {
					_, err := s.api.SubmitReview(ctx, id, decision)
					return err
				})
			}
			return g.Wait()
		},
		invalidate: [][]any{
			{nsApplications},
			{nsSummaries},
			{nsDashboard, "stats", popupID},
		},
	})
	return len(eligible), err
}

// eligibleForReview filters the selection down to applications whose
// last known cached status is "in review". Selections the cache has
// never seen are excluded as well; a row has to be listed before it can
// be reviewed in bulk.
func (s *reviewService) eligibleForReview(applicationIDs []int64) map[int64]bool {
	selected := make(map[int64]bool, len(applicationIDs))
	for _, id := range applicationIDs {
		selected[id] = true
	}

	eligible := make(map[int64]bool)
	for _, v := range s.store.GetPrefix(nsApplications) {
		switch cached := v.(type) {
		case *domain.ApplicationPage:
			for _, app := range cached.Items {
				if selected[app.ID] && app.IsReviewable() {
					eligible[app.ID] = true
				}
			}
		case *domain.Application:
			if selected[cached.ID] && cached.IsReviewable() {
				eligible[cached.ID] = true
			}
		}
	}
	return eligible
}

// patchStatus rewrites the cached status of the given applications
// across every entry in the applications namespace. Entries are replaced
// with fresh copies; cached values are never mutated in place, so an
// earlier snapshot stays intact for rollback.
func (s *reviewService) patchStatus(ids map[int64]bool, status domain.ApplicationStatus) {
	s.store.UpdatePrefix(func(_ string, v any) any {
		switch cached := v.(type) {
		case *domain.ApplicationPage:
			return patchPage(cached, ids, status)
		case *domain.Application:
			if ids[cached.ID] {
				return patchApplication(cached, status)
			}
		}
		return v
	}, nsApplications)
}

func patchPage(page *domain.ApplicationPage, ids map[int64]bool, status domain.ApplicationStatus) *domain.ApplicationPage {
	touched := false
	for _, app := range page.Items {
		if ids[app.ID] {
			touched = true
			break
		}
	}
	if !touched {
		return page
	}
	next := *page
	next.Items = make([]domain.Application, len(page.Items))
	copy(next.Items, page.Items)
	for i := range next.Items {
		if ids[next.Items[i].ID] {
			next.Items[i].Status = status
		}
	}
	return &next
}

func patchApplication(app *domain.Application, status domain.ApplicationStatus) *domain.Application {
	next := *app
	next.Status = status
	return &next
}
