package stock

import (
	"context"
	"fmt"

	"stockbook/internal/core/id"
)

// Service provides stock queries.
type Service struct {
	repo Repository
}

// NewService creates a new stock service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// All returns the balance of every product.
func (s *Service) All(ctx context.Context) ([]Balance, error) {
	balances, err := s.repo.Balances(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("load balances: %w", err)
	}
	for i := range balances {
		balances[i].Settle()
	}
	return balances, nil
}

// StockOf returns the stock of each requested product. Unknown products
// map to zero.
func (s *Service) StockOf(ctx context.Context, productIDs []id.ID) (map[id.ID]int64, error) {
	out := make(map[id.ID]int64, len(productIDs))
	if len(productIDs) == 0 {
		return out, nil
	}

	balances, err := s.repo.Balances(ctx, productIDs)
	if err != nil {
		return nil, fmt.Errorf("load balances: %w", err)
	}
	for _, pid := range productIDs {
		out[pid] = 0
	}
	for i := range balances {
		balances[i].Settle()
		out[balances[i].ProductID] = balances[i].Stock
	}
	return out, nil
}
