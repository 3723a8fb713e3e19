package purchase

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

const entityName = "Purchase"

// Service provides business operations for individual purchase lines.
type Service struct {
	repo      Repository
	products  *documents.ProductResolver
	numerator numerator.Generator
	txManager tx.Manager
	audit     audit.Recorder
}

// NewService creates a new purchase service.
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
	}
}

// Create stores a standalone purchase line (or one attached to an existing
// batch through BatchID).
func (s *Service) Create(ctx context.Context, line *Line) error {
	if err := line.Validate(ctx); err != nil {
		return domain.NormalizeValidationErr(err)
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		name, err := s.products.ResolveOne(ctx, line.ProductID)
		if err != nil {
			return err
		}
		line.ProductName = name

		if err := s.repo.Create(ctx, line); err != nil {
			return err
		}
		return s.audit.Record(ctx, audit.EntityPurchaseLine, line.ID, audit.ActionCreate, line)
	})
	if err != nil {
		return err
	}

	if err := s.assignOne(ctx, line); err != nil {
		return err
	}

	logger.Info(ctx, "purchase created",
		"id", line.ID,
		"product_id", line.ProductID,
		"quantity", line.Quantity)
	return nil
}

// GetByID returns a purchase line with its sequence number.
func (s *Service) GetByID(ctx context.Context, lineID id.ID) (*Line, error) {
	line, err := s.repo.GetByID(ctx, lineID)
	if err != nil {
		return nil, domain.NormalizeGetErr(err, entityName, lineID)
	}
	if err := s.assignOne(ctx, line); err != nil {
		return nil, err
	}
	return line, nil
}

// List returns a page of purchase lines, numbered against all stored dates.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*Line], error) {
	filter.Normalize()
	if err := filter.Range.Validate(); err != nil {
		return domain.ListResult[*Line]{}, err
	}

	result, err := s.repo.List(ctx, filter)
	if err != nil {
		return result, err
	}
	if err := s.AssignNumbers(ctx, result.Items); err != nil {
		return result, err
	}
	return result, nil
}

// Summary totals the lines matched by filter. Pagination is ignored.
func (s *Service) Summary(ctx context.Context, filter ListFilter) (Summary, error) {
	if err := filter.Range.Validate(); err != nil {
		return Summary{}, err
	}
	return s.repo.Summary(ctx, filter)
}

// Update writes the line as given. Callers load the line first and apply
// their changes on top of it.
func (s *Service) Update(ctx context.Context, line *Line) error {
	if err := line.Validate(ctx); err != nil {
		return domain.NormalizeValidationErr(err)
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		name, err := s.products.ResolveOne(ctx, line.ProductID)
		if err != nil {
			return err
		}
		line.ProductName = name

		if err := s.repo.Update(ctx, line); err != nil {
			return domain.NormalizeGetErr(err, entityName, line.ID)
		}
		return s.audit.Record(ctx, audit.EntityPurchaseLine, line.ID, audit.ActionUpdate, line)
	})
	if err != nil {
		return err
	}

	if err := s.assignOne(ctx, line); err != nil {
		return err
	}
	logger.Info(ctx, "purchase updated", "id", line.ID)
	return nil
}

// Delete removes a purchase line. The batch it belongs to is kept even when
// it becomes empty.
func (s *Service) Delete(ctx context.Context, lineID id.ID) error {
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Delete(ctx, lineID); err != nil {
			return domain.NormalizeGetErr(err, entityName, lineID)
		}
		return s.audit.Record(ctx, audit.EntityPurchaseLine, lineID, audit.ActionDelete, nil)
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "purchase deleted", "id", lineID)
	return nil
}

// AssignNumbers sets the sequence number of each line from one snapshot of
// stored purchase dates.
func (s *Service) AssignNumbers(ctx context.Context, lines []*Line) error {
	if len(lines) == 0 {
		return nil
	}
	index, err := s.numerator.Index(ctx, numerator.KindPurchaseLine)
	if err != nil {
		return apperror.NewInternal(fmt.Errorf("load purchase dates: %w", err))
	}
	numerator.Assign(index, lines)
	return nil
}

func (s *Service) assignOne(ctx context.Context, line *Line) error {
	return s.AssignNumbers(ctx, []*Line{line})
}
