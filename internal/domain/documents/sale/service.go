package sale

import (
	"context"
	"fmt"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/id"
	"stockbook/internal/core/numerator"
	"stockbook/internal/core/tx"
	"stockbook/internal/domain"
	"stockbook/internal/domain/audit"
	"stockbook/internal/domain/documents"
	"stockbook/pkg/logger"
)

const entityName = "Sale"

// Service provides business operations for sales.
type Service struct {
	repo      Repository
	products  *documents.ProductResolver
	numerator numerator.Generator
	txManager tx.Manager
	audit     audit.Recorder
	hooks     *domain.HookRegistry[*Sale]
}

// NewService creates a new sale service.
func NewService(
	repo Repository,
	products *documents.ProductResolver,
	numerator numerator.Generator,
	txManager tx.Manager,
	recorder audit.Recorder,
) *Service {
	return &Service{
		repo:      repo,
		products:  products,
		numerator: numerator,
		txManager: txManager,
		audit:     audit.OrNop(recorder),
		hooks:     domain.NewHookRegistry[*Sale](),
	}
}

// Hooks returns the hook registry for registering callbacks.
func (s *Service) Hooks() *domain.HookRegistry[*Sale] {
	return s.hooks
}

// Create stores a sale. Stock is not checked: it may go negative.
func (s *Service) Create(ctx context.Context, sale *Sale) error {
	if err := s.hooks.Run(ctx, domain.BeforeCreate, sale); err != nil {
		return err
	}
	if err := sale.Validate(ctx); err != nil {
		return domain.NormalizeValidationErr(err)
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.resolveProduct(ctx, sale); err != nil {
			return err
		}
		if err := s.repo.Create(ctx, sale); err != nil {
			return err
		}
		return s.audit.Record(ctx, audit.EntitySale, sale.ID, audit.ActionCreate, sale)
	})
	if err != nil {
		return err
	}

	if err := s.assignNumbers(ctx, []*Sale{sale}); err != nil {
		return err
	}
	if err := s.hooks.Run(ctx, domain.AfterCreate, sale); err != nil {
		logger.Warn(ctx, "after-create hook failed", "error", err)
	}

	logger.Info(ctx, "sale created",
		"id", sale.ID,
		"product_id", sale.ProductID,
		"total", sale.Total().StringFixed(2),
		"paid", sale.Paid)
	return nil
}

// GetByID returns a sale with its sequence number.
func (s *Service) GetByID(ctx context.Context, saleID id.ID) (*Sale, error) {
	sale, err := s.repo.GetByID(ctx, saleID)
	if err != nil {
		return nil, domain.NormalizeGetErr(err, entityName, saleID)
	}
	if err := s.assignNumbers(ctx, []*Sale{sale}); err != nil {
		return nil, err
	}
	return sale, nil
}

// List returns a page of sales.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*Sale], error) {
	filter.Normalize()
	if err := s.validateFilter(filter); err != nil {
		return domain.ListResult[*Sale]{}, err
	}

	result, err := s.repo.List(ctx, filter)
	if err != nil {
		return result, err
	}
	if err := s.assignNumbers(ctx, result.Items); err != nil {
		return result, err
	}
	return result, nil
}

// Summary totals the sales matched by filter, split by payment status.
func (s *Service) Summary(ctx context.Context, filter ListFilter) (Summary, error) {
	if err := s.validateFilter(filter); err != nil {
		return Summary{}, err
	}
	return s.repo.Summary(ctx, filter)
}

// Update writes the sale as given. Callers load the sale first and apply
// their changes on top of it.
func (s *Service) Update(ctx context.Context, sale *Sale) error {
	if err := s.hooks.Run(ctx, domain.BeforeUpdate, sale); err != nil {
		return err
	}
	if err := sale.Validate(ctx); err != nil {
		return domain.NormalizeValidationErr(err)
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.resolveProduct(ctx, sale); err != nil {
			return err
		}
		if err := s.repo.Update(ctx, sale); err != nil {
			return domain.NormalizeGetErr(err, entityName, sale.ID)
		}
		return s.audit.Record(ctx, audit.EntitySale, sale.ID, audit.ActionUpdate, sale)
	})
	if err != nil {
		return err
	}

	if err := s.assignNumbers(ctx, []*Sale{sale}); err != nil {
		return err
	}
	if err := s.hooks.Run(ctx, domain.AfterUpdate, sale); err != nil {
		logger.Warn(ctx, "after-update hook failed", "error", err)
	}
	logger.Info(ctx, "sale updated", "id", sale.ID)
	return nil
}

// Delete removes a sale.
func (s *Service) Delete(ctx context.Context, saleID id.ID) error {
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Delete(ctx, saleID); err != nil {
			return domain.NormalizeGetErr(err, entityName, saleID)
		}
		return s.audit.Record(ctx, audit.EntitySale, saleID, audit.ActionDelete, nil)
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "sale deleted", "id", saleID)
	return nil
}

func (s *Service) validateFilter(filter ListFilter) error {
	if err := filter.Range.Validate(); err != nil {
		return err
	}
	if filter.Channel != nil && !filter.Channel.IsValid() {
		return apperror.NewFieldValidation("channel", "unknown channel").
			WithDetail("value", string(*filter.Channel))
	}
	return nil
}

func (s *Service) resolveProduct(ctx context.Context, sale *Sale) error {
	name, err := s.products.ResolveOne(ctx, sale.ProductID)
	if err != nil {
		return err
	}
	sale.ProductName = name
	return nil
}

func (s *Service) assignNumbers(ctx context.Context, sales []*Sale) error {
	if len(sales) == 0 {
		return nil
	}
	index, err := s.numerator.Index(ctx, numerator.KindSale)
	if err != nil {
		return apperror.NewInternal(fmt.Errorf("load sale dates: %w", err))
	}
	numerator.Assign(index, sales)
	return nil
}
