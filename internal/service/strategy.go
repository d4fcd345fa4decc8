package service

import (
	"context"
	"log/slog"

	"edgeos-client/internal/cache"
	"edgeos-client/internal/domain"
	"edgeos-client/internal/logger"
)

const nsStrategies = "approval-strategies"

type strategyService struct {
	api   ApplicationsAPI
	store *cache.Store
	log   *slog.Logger
}

func NewStrategyService(apiClient ApplicationsAPI, store *cache.Store) StrategyService {
	return &strategyService{
		api:   apiClient,
		store: store,
		log:   logger.WithService("strategy"),
	}
}

// GetStrategy resolves the approval strategy for a popup. Any lookup
// failure, a 404 included, resolves to the simple strategy: inability to
// resolve the strategy must not block the reviewer, so the failure is
// swallowed, logged at debug, and not retried. The resolved strategy is
// cached either way.
func (s *strategyService) GetStrategy(ctx context.Context, popupID int64) *domain.ApprovalStrategy {
	key := cache.Key(nsStrategies, popupID)
	if v, ok, stale := s.store.Get(key); ok && !stale {
		return v.(*domain.ApprovalStrategy)
	}

	strategy, err := s.api.GetApprovalStrategy(ctx, popupID)
	if err != nil {
		s.log.Debug("approval strategy lookup failed, using simple", "popup_id", popupID, "error", err)
		strategy = &domain.ApprovalStrategy{PopupID: popupID, Mode: domain.StrategySimple}
	}
	s.store.Set(key, strategy)
	return strategy
}

// IsWeightedVoting reports whether the weighted voting panel applies for
// the popup.
func (s *strategyService) IsWeightedVoting(ctx context.Context, popupID int64) bool {
	return s.GetStrategy(ctx, popupID).IsWeighted()
}
