package product

import (
	"context"
	"fmt"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/id"
	"stockbook/internal/core/tx"
	"stockbook/internal/domain"
	"stockbook/internal/domain/audit"
	"stockbook/pkg/logger"
)

// entityName is the name used in errors returned to clients.
const entityName = "Product"

// Service provides business operations for products.
type Service struct {
	repo      Repository
	batches   BatchSweeper
	txManager tx.Manager
	audit     audit.Recorder
	hooks     *domain.HookRegistry[*Product]
}

// NewService creates a new product service.
func NewService(repo Repository, batches BatchSweeper, txManager tx.Manager, recorder audit.Recorder) *Service {
	return &Service{
		repo:      repo,
		batches:   batches,
		txManager: txManager,
		audit:     audit.OrNop(recorder),
		hooks:     domain.NewHookRegistry[*Product](),
	}
}

// Hooks returns the hook registry for registering callbacks.
func (s *Service) Hooks() *domain.HookRegistry[*Product] {
	return s.hooks
}

// DeleteResult describes what a product deletion removed besides the product.
type DeleteResult struct {
	ProductID      id.ID   `json:"productId"`
	RemovedBatches []id.ID `json:"removedBatches"`
}

// Create stores a new product and assigns it the smallest free product number.
func (s *Service) Create(ctx context.Context, p *Product) error {
	if err := s.hooks.Run(ctx, domain.BeforeCreate, p); err != nil {
		return err
	}
	if err := p.Validate(ctx); err != nil {
		return domain.NormalizeValidationErr(err)
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.LockNumbering(ctx); err != nil {
			return fmt.Errorf("lock product numbering: %w", err)
		}
		number, err := s.repo.NextProductNumber(ctx)
		if err != nil {
			return fmt.Errorf("next product number: %w", err)
		}
		p.ProductNumber = number

		if err := s.repo.Create(ctx, p); err != nil {
			return err
		}
		return s.audit.Record(ctx, audit.EntityProduct, p.ID, audit.ActionCreate, p)
	})
	if err != nil {
		return err
	}

	if err := s.hooks.Run(ctx, domain.AfterCreate, p); err != nil {
		logger.Warn(ctx, "after-create hook failed", "error", err)
	}

	logger.Info(ctx, "product created",
		"id", p.ID,
		"product_number", p.ProductNumber)
	return nil
}

// GetByID returns a product or a NotFoundError.
func (s *Service) GetByID(ctx context.Context, productID id.ID) (*Product, error) {
	p, err := s.repo.GetByID(ctx, productID)
	if err != nil {
		return nil, domain.NormalizeGetErr(err, entityName, productID)
	}
	return p, nil
}

// List returns products ordered by name unless filter says otherwise.
func (s *Service) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Product], error) {
	filter.Normalize()
	return s.repo.List(ctx, filter)
}

// Update replaces the mutable fields of a product. The product number and
// creation time of the stored product are kept.
func (s *Service) Update(ctx context.Context, p *Product) error {
	if err := s.hooks.Run(ctx, domain.BeforeUpdate, p); err != nil {
		return err
	}
	if err := p.Validate(ctx); err != nil {
		return domain.NormalizeValidationErr(err)
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		current, err := s.repo.GetByID(ctx, p.ID)
		if err != nil {
			return domain.NormalizeGetErr(err, entityName, p.ID)
		}
		p.ProductNumber = current.ProductNumber
		p.CreatedAt = current.CreatedAt

		if err := s.repo.Update(ctx, p); err != nil {
			return err
		}
		return s.audit.Record(ctx, audit.EntityProduct, p.ID, audit.ActionUpdate, p)
	})
	if err != nil {
		return err
	}

	if err := s.hooks.Run(ctx, domain.AfterUpdate, p); err != nil {
		logger.Warn(ctx, "after-update hook failed", "error", err)
	}
	logger.Info(ctx, "product updated", "id", p.ID)
	return nil
}

// Delete removes a product together with its purchase lines and sales, then
// deletes every purchase batch left without lines. It all happens in one
// transaction.
func (s *Service) Delete(ctx context.Context, productID id.ID) (*DeleteResult, error) {
	result := &DeleteResult{ProductID: productID, RemovedBatches: []id.ID{}}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		p, err := s.repo.GetByID(ctx, productID)
		if err != nil {
			return domain.NormalizeGetErr(err, entityName, productID)
		}
		if err := s.hooks.Run(ctx, domain.BeforeDelete, p); err != nil {
			return err
		}

		touched, err := s.batches.BatchIDsForProduct(ctx, productID)
		if err != nil {
			return fmt.Errorf("collect batches: %w", err)
		}

		if err := s.repo.Delete(ctx, productID); err != nil {
			return err
		}

		if len(touched) > 0 {
			removed, err := s.batches.DeleteEmpty(ctx, touched)
			if err != nil {
				return fmt.Errorf("remove empty batches: %w", err)
			}
			result.RemovedBatches = append(result.RemovedBatches, removed...)
		}

		if err := s.audit.Record(ctx, audit.EntityProduct, productID, audit.ActionDelete, p); err != nil {
			return err
		}
		for _, batchID := range result.RemovedBatches {
			if err := s.audit.Record(ctx, audit.EntityPurchaseBatch, batchID, audit.ActionDelete, nil); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if apperror.IsAppError(err) {
			return nil, err
		}
		return nil, apperror.NewInternal(err).WithDetail("id", productID)
	}

	logger.Info(ctx, "product deleted",
		"id", productID,
		"removed_batches", len(result.RemovedBatches))
	return result, nil
}
