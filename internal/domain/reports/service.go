package reports

import (
	"context"
	"fmt"

	"stockbook/internal/core/tx"
	"stockbook/internal/domain"
	"stockbook/internal/domain/registers/stock"
)

// Service provides report generation operations.
type Service struct {
	repo      Repository
	stock     *stock.Service
	txManager tx.ReadOnlyManager
}

// NewService creates a new reports service.
func NewService(repo Repository, stock *stock.Service, txManager tx.ReadOnlyManager) *Service {
	return &Service{repo: repo, stock: stock, txManager: txManager}
}

// Financial builds the financial report for r. All sums are read from one
// snapshot.
func (s *Service) Financial(ctx context.Context, r domain.DateRange) (*FinancialReport, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	var totals FinancialTotals
	err := s.txManager.ReadOnly(ctx, func(ctx context.Context) error {
		var err error
		totals, err = s.repo.FinancialTotals(ctx, r)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("get financial totals: %w", err)
	}

	report := NewFinancialReport(totals)
	report.StartDate, report.EndDate = r.From, r.To
	return report, nil
}

// Inventory lists every product with its purchased, sold and stock totals.
func (s *Service) Inventory(ctx context.Context) ([]InventoryItem, error) {
	var items []InventoryItem
	err := s.txManager.ReadOnly(ctx, func(ctx context.Context) error {
		var err error
		items, err = s.stock.All(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []InventoryItem{}
	}
	return items, nil
}
