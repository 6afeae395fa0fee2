package analytics

import (
	"context"
	"fmt"
	"log"
	"time"

	"restomart/internal/caching"
	"restomart/internal/repositories"

	"github.com/google/uuid"
)

const summaryCacheTTL = 5 * time.Minute

// Service computes the dashboard summary for a business. Results are cached
// briefly; every stock mutation invalidates the cache.
type Service interface {
	Summary(ctx context.Context, businessID uuid.UUID) (map[string]interface{}, error)
}

type service struct {
	itemRepo     repositories.InventoryItemRepository
	transferRepo repositories.TransferRepository
	cacheSvc     caching.CacheService
}

func NewService(itemRepo repositories.InventoryItemRepository, transferRepo repositories.TransferRepository,
	cacheSvc caching.CacheService) Service {
	return &service{itemRepo: itemRepo, transferRepo: transferRepo, cacheSvc: cacheSvc}
}

func (s *service) Summary(ctx context.Context, businessID uuid.UUID) (map[string]interface{}, error) {
	if cached, err := s.cacheSvc.GetSummary(ctx, businessID); err == nil && cached != nil {
		return cached, nil
	}

	itemCount, stockValue, lowStockCount, err := s.itemRepo.StockSummary(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute stock summary: %w", err)
	}
	pendingTransfers, err := s.transferRepo.CountPending(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to count pending transfers: %w", err)
	}

	summary := map[string]interface{}{
		"item_count":        itemCount,
		"stock_value":       stockValue,
		"low_stock_count":   lowStockCount,
		"pending_transfers": pendingTransfers,
		"generated_at":      time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.cacheSvc.SetSummary(ctx, businessID, summary, summaryCacheTTL); err != nil {
		log.Printf("Failed to cache summary for business %s: %v", businessID, err)
	}
	return summary, nil
}
