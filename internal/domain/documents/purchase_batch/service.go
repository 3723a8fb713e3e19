package purchase_batch

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
	"stockbook/internal/domain/documents/purchase"
	"stockbook/pkg/logger"
)

const entityName = "Purchase batch"

// Service provides business operations for purchase batches.
type Service struct {
	repo      Repository
	lines     purchase.Repository
	products  *documents.ProductResolver
	numerator numerator.Generator
	txManager tx.Manager
	audit     audit.Recorder
	hooks     *domain.HookRegistry[*Batch]
}

// NewService creates a new purchase batch service.
func NewService(
	repo Repository,
	lines purchase.Repository,
	products *documents.ProductResolver,
	numerator numerator.Generator,
	txManager tx.Manager,
	recorder audit.Recorder,
) *Service {
	return &Service{
		repo:      repo,
		lines:     lines,
		products:  products,
		numerator: numerator,
		txManager: txManager,
		audit:     audit.OrNop(recorder),
		hooks:     domain.NewHookRegistry[*Batch](),
	}
}

// Hooks returns the hook registry for registering callbacks.
func (s *Service) Hooks() *domain.HookRegistry[*Batch] {
	return s.hooks
}

// Create stores the batch header together with lines. Nothing is written
// unless every line is valid and refers to an existing product.
func (s *Service) Create(ctx context.Context, batch *Batch, lines []*purchase.Line) error {
	if err := s.hooks.Run(ctx, domain.BeforeCreate, batch); err != nil {
		return err
	}
	if err := s.validate(ctx, batch, lines); err != nil {
		return err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.resolveProducts(ctx, lines); err != nil {
			return err
		}
		batch.AttachLines(lines)

		if err := s.repo.Create(ctx, batch); err != nil {
			return fmt.Errorf("create batch: %w", err)
		}
		return s.writeLines(ctx, batch, audit.ActionCreate)
	})
	if err != nil {
		return err
	}

	if err := s.assignNumbers(ctx, []*Batch{batch}); err != nil {
		return err
	}
	if err := s.hooks.Run(ctx, domain.AfterCreate, batch); err != nil {
		logger.Warn(ctx, "after-create hook failed", "error", err)
	}

	logger.Info(ctx, "purchase batch created",
		"id", batch.ID,
		"lines", len(batch.Lines),
		"total_cost", batch.TotalCost.StringFixed(2))
	return nil
}

// Update writes the batch header and, when lines is non-nil, replaces all
// lines of the batch with it. A nil lines slice keeps the stored lines; an
// empty one removes them. The whole update is one transaction.
func (s *Service) Update(ctx context.Context, batch *Batch, lines []*purchase.Line) error {
	if err := s.hooks.Run(ctx, domain.BeforeUpdate, batch); err != nil {
		return err
	}
	if err := s.validate(ctx, batch, lines); err != nil {
		return err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if lines != nil {
			if err := s.resolveProducts(ctx, lines); err != nil {
				return err
			}
		}

		if err := s.repo.Update(ctx, batch); err != nil {
			return domain.NormalizeGetErr(err, entityName, batch.ID)
		}

		if lines == nil {
			stored, err := s.lines.ListByBatches(ctx, []id.ID{batch.ID})
			if err != nil {
				return fmt.Errorf("load lines: %w", err)
			}
			batch.AttachLines(stored)
			return s.audit.Record(ctx, audit.EntityPurchaseBatch, batch.ID, audit.ActionUpdate, batch)
		}

		if err := s.lines.DeleteByBatch(ctx, batch.ID); err != nil {
			return fmt.Errorf("delete lines: %w", err)
		}
		batch.AttachLines(lines)
		return s.writeLines(ctx, batch, audit.ActionUpdate)
	})
	if err != nil {
		return err
	}

	if err := s.assignNumbers(ctx, []*Batch{batch}); err != nil {
		return err
	}
	if err := s.hooks.Run(ctx, domain.AfterUpdate, batch); err != nil {
		logger.Warn(ctx, "after-update hook failed", "error", err)
	}

	logger.Info(ctx, "purchase batch updated",
		"id", batch.ID,
		"lines_replaced", lines != nil,
		"lines", len(batch.Lines))
	return nil
}

// GetByID returns a batch with its lines.
func (s *Service) GetByID(ctx context.Context, batchID id.ID) (*Batch, error) {
	batch, err := s.repo.GetByID(ctx, batchID)
	if err != nil {
		return nil, domain.NormalizeGetErr(err, entityName, batchID)
	}

	lines, err := s.lines.ListByBatches(ctx, []id.ID{batchID})
	if err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}
	batch.Lines = lines

	if err := s.assignNumbers(ctx, []*Batch{batch}); err != nil {
		return nil, err
	}
	return batch, nil
}

// List returns a page of batches, each with its lines.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*Batch], error) {
	filter.Normalize()
	if err := filter.Range.Validate(); err != nil {
		return domain.ListResult[*Batch]{}, err
	}

	result, err := s.repo.List(ctx, filter)
	if err != nil {
		return result, err
	}
	if len(result.Items) == 0 {
		return result, nil
	}

	ids := make([]id.ID, len(result.Items))
	byID := make(map[id.ID]*Batch, len(result.Items))
	for i, b := range result.Items {
		ids[i] = b.ID
		b.Lines = make([]*purchase.Line, 0)
		byID[b.ID] = b
	}

	lines, err := s.lines.ListByBatches(ctx, ids)
	if err != nil {
		return result, fmt.Errorf("get lines: %w", err)
	}
	for _, line := range lines {
		if line.BatchID == nil {
			continue
		}
		if b, ok := byID[*line.BatchID]; ok {
			b.Lines = append(b.Lines, line)
		}
	}

	if err := s.assignNumbers(ctx, result.Items); err != nil {
		return result, err
	}
	return result, nil
}

// Summary totals the batches matched by filter. Pagination is ignored.
func (s *Service) Summary(ctx context.Context, filter ListFilter) (Summary, error) {
	if err := filter.Range.Validate(); err != nil {
		return Summary{}, err
	}
	return s.repo.Summary(ctx, filter)
}

// Delete removes a batch and its lines.
func (s *Service) Delete(ctx context.Context, batchID id.ID) error {
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Delete(ctx, batchID); err != nil {
			return domain.NormalizeGetErr(err, entityName, batchID)
		}
		return s.audit.Record(ctx, audit.EntityPurchaseBatch, batchID, audit.ActionDelete, nil)
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "purchase batch deleted", "id", batchID)
	return nil
}

// validate checks the header, then each line, naming the failing line.
func (s *Service) validate(ctx context.Context, batch *Batch, lines []*purchase.Line) error {
	if err := batch.Validate(ctx); err != nil {
		return domain.NormalizeValidationErr(err)
	}
	if err := purchase.ValidateLines(ctx, lines); err != nil {
		return domain.NormalizeValidationErr(err)
	}
	return nil
}

// resolveProducts checks every referenced product with one lookup and
// fills in product names.
func (s *Service) resolveProducts(ctx context.Context, lines []*purchase.Line) error {
	productIDs := make([]id.ID, len(lines))
	for i, line := range lines {
		productIDs[i] = line.ProductID
	}
	names, err := s.products.ResolveLines(ctx, productIDs)
	if err != nil {
		return err
	}
	for _, line := range lines {
		line.ProductName = names[line.ProductID]
	}
	return nil
}

// writeLines inserts the batch lines and records the change.
func (s *Service) writeLines(ctx context.Context, batch *Batch, action audit.Action) error {
	if len(batch.Lines) > 0 {
		if err := s.lines.CreateMany(ctx, batch.Lines); err != nil {
			return fmt.Errorf("save lines: %w", err)
		}
	}
	return s.audit.Record(ctx, audit.EntityPurchaseBatch, batch.ID, action, batch)
}

// assignNumbers numbers batches and their lines, each against its own kind.
func (s *Service) assignNumbers(ctx context.Context, batches []*Batch) error {
	batchIndex, err := s.numerator.Index(ctx, numerator.KindPurchaseBatch)
	if err != nil {
		return apperror.NewInternal(fmt.Errorf("load batch dates: %w", err))
	}
	numerator.Assign(batchIndex, batches)

	var lines []*purchase.Line
	for _, b := range batches {
		lines = append(lines, b.Lines...)
	}
	if len(lines) == 0 {
		return nil
	}
	lineIndex, err := s.numerator.Index(ctx, numerator.KindPurchaseLine)
	if err != nil {
		return apperror.NewInternal(fmt.Errorf("load purchase dates: %w", err))
	}
	numerator.Assign(lineIndex, lines)
	return nil
}
