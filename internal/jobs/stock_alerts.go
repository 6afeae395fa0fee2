package jobs

import (
	"context"
	"fmt"
	"log"

	"restomart/internal/repositories"
)

// StockAlertScanner walks every active business and logs items sitting below
// their minimum stock. Alerts are advisory only; the low-stock state itself is
// always derived on read.
type StockAlertScanner struct {
	businessRepo repositories.BusinessRepository
	itemRepo     repositories.InventoryItemRepository
}

func NewStockAlertScanner(businessRepo repositories.BusinessRepository, itemRepo repositories.InventoryItemRepository) *StockAlertScanner {
	return &StockAlertScanner{businessRepo: businessRepo, itemRepo: itemRepo}
}

func (s *StockAlertScanner) Scan(ctx context.Context) error {
	businesses, err := s.businessRepo.List(ctx, 500, 0)
	if err != nil {
		return fmt.Errorf("failed to list businesses: %w", err)
	}

	total := 0
	for _, business := range businesses {
		items, err := s.itemRepo.LowStock(ctx, business.ID)
		if err != nil {
			log.Printf("Stock alert scan failed for business %s: %v", business.ID, err)
			continue
		}
		for _, item := range items {
			log.Printf("Low stock: business %s item %s (%s) at %v, minimum %v",
				business.Name, item.Name, item.ID, item.QuantityInStock, item.MinStock)
		}
		total += len(items)
	}
	log.Printf("Stock alert scan complete: %d businesses, %d alerts", len(businesses), total)
	return nil
}
