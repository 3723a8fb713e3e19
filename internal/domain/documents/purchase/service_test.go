package purchase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/id"
	"stockbook/internal/core/numerator"
	"stockbook/internal/core/types"
	"stockbook/internal/domain"
	"stockbook/internal/domain/documents"
)

type passThroughTx struct{}

func (passThroughTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type names map[id.ID]string

func (n names) NamesByID(_ context.Context, ids []id.ID) (map[id.ID]string, error) {
	out := make(map[id.ID]string)
	for _, pid := range ids {
		if v, ok := n[pid]; ok {
			out[pid] = v
		}
	}
	return out, nil
}

// memRepo implements Repository over a slice kept in insertion order.
type memRepo struct {
	lines []*Line
}

func (r *memRepo) Create(_ context.Context, line *Line) error {
	cp := *line
	r.lines = append(r.lines, &cp)
	return nil
}

func (r *memRepo) CreateMany(ctx context.Context, lines []*Line) error {
	for _, l := range lines {
		_ = r.Create(ctx, l)
	}
	return nil
}

func (r *memRepo) Update(_ context.Context, line *Line) error {
	for i, l := range r.lines {
		if l.ID == line.ID {
			cp := *line
			r.lines[i] = &cp
			return nil
		}
	}
	return apperror.NewNotFound("purchase_lines", line.ID)
}

func (r *memRepo) Delete(_ context.Context, lineID id.ID) error {
	for i, l := range r.lines {
		if l.ID == lineID {
			r.lines = append(r.lines[:i], r.lines[i+1:]...)
			return nil
		}
	}
	return apperror.NewNotFound("purchase_lines", lineID)
}

func (r *memRepo) GetByID(_ context.Context, lineID id.ID) (*Line, error) {
	for _, l := range r.lines {
		if l.ID == lineID {
			cp := *l
			return &cp, nil
		}
	}
	return nil, apperror.NewNotFound("purchase_lines", lineID)
}

func (r *memRepo) match(filter ListFilter) []*Line {
	var out []*Line
	for _, l := range r.lines {
		if !filter.Range.Contains(l.Date) {
			continue
		}
		if filter.ProductID != nil && l.ProductID != *filter.ProductID {
			continue
		}
		if filter.BatchID != nil && (l.BatchID == nil || *l.BatchID != *filter.BatchID) {
			continue
		}
		cp := *l
		out = append(out, &cp)
	}
	return out
}

func (r *memRepo) List(_ context.Context, filter ListFilter) (domain.ListResult[*Line], error) {
	items := r.match(filter)
	return domain.ListResult[*Line]{Items: items, TotalCount: int64(len(items)), Limit: filter.Limit}, nil
}

func (r *memRepo) Summary(_ context.Context, filter ListFilter) (Summary, error) {
	sum := Summary{TotalSpent: types.Zero()}
	for _, l := range r.match(filter) {
		sum.TotalSpent = sum.TotalSpent.Add(l.TotalCost())
		sum.PurchaseCount++
	}
	return sum, nil
}

func (r *memRepo) ListByBatches(_ context.Context, batchIDs []id.ID) ([]*Line, error) {
	var out []*Line
	for _, l := range r.lines {
		for _, b := range batchIDs {
			if l.BatchID != nil && *l.BatchID == b {
				out = append(out, l)
			}
		}
	}
	return out, nil
}

func (r *memRepo) DeleteByBatch(_ context.Context, batchID id.ID) error {
	kept := r.lines[:0]
	for _, l := range r.lines {
		if l.BatchID == nil || *l.BatchID != batchID {
			kept = append(kept, l)
		}
	}
	r.lines = kept
	return nil
}

// dateSnapshot numbers against the dates currently held by repo.
type dateSnapshot struct{ repo *memRepo }

func (d dateSnapshot) Index(context.Context, numerator.Kind) (*numerator.Index, error) {
	return numerator.NewIndex(numerator.Dates(d.repo.lines), numerator.PolicyAscending), nil
}

func (d dateSnapshot) Number(ctx context.Context, kind numerator.Kind, date time.Time) (int, error) {
	x, _ := d.Index(ctx, kind)
	return x.Ordinal(date), nil
}

func day(s string) time.Time {
	t, err := types.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}

func validLine(date string, productID id.ID) *Line {
	l := NewLine(day(date), productID)
	l.Quantity = 2
	l.UnitCost = 15
	l.SaleValue = 25
	l.Supplier = "Acme"
	return l
}

func newTestService(products names) (*Service, *memRepo) {
	repo := &memRepo{}
	svc := NewService(repo, documents.NewProductResolver(products), dateSnapshot{repo}, passThroughTx{}, nil)
	return svc, repo
}

func TestLine_Validate(t *testing.T) {
	ctx := context.Background()
	pid := id.New()

	tests := []struct {
		name   string
		mutate func(l *Line)
		field  string
	}{
		{"zero quantity", func(l *Line) { l.Quantity = 0 }, "quantity"},
		{"negative unit cost", func(l *Line) { l.UnitCost = -3 }, "unitCost"},
		{"zero sale value", func(l *Line) { l.SaleValue = 0 }, "saleValue"},
		{"blank supplier", func(l *Line) { l.Supplier = "  " }, "supplier"},
		{"missing product", func(l *Line) { l.ProductID = id.ID{} }, "productId"},
		{"missing date", func(l *Line) { l.Date = time.Time{} }, "date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := validLine("2024-03-01", pid)
			tt.mutate(l)
			err := l.Validate(ctx)
			require.Error(t, err)
			appErr, ok := apperror.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, apperror.CodeValidation, appErr.Code)
			assert.Equal(t, tt.field, appErr.Details["field"])
		})
	}

	assert.NoError(t, validLine("2024-03-01", pid).Validate(ctx))
}

func TestValidateLines_TagsLineNumber(t *testing.T) {
	pid := id.New()
	bad := validLine("2024-03-01", pid)
	bad.Quantity = 0

	err := ValidateLines(context.Background(), []*Line{validLine("2024-03-01", pid), bad})
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 2, appErr.Details["line"])
	assert.Equal(t, "quantity", appErr.Details["field"])
}

func TestLine_TotalCost(t *testing.T) {
	l := validLine("2024-03-01", id.New())
	l.Quantity, l.UnitCost = 4, 15
	assert.Equal(t, "60.00", types.FormatMoney(l.TotalCost()))
}

func TestService_Create_UnknownProduct(t *testing.T) {
	svc, repo := newTestService(names{})

	err := svc.Create(context.Background(), validLine("2024-03-01", id.New()))
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
	assert.Contains(t, err.Error(), "Product not found")
	assert.Empty(t, repo.lines)
}

func TestService_List_NumbersByDistinctDate(t *testing.T) {
	ctx := context.Background()
	pid := id.New()
	svc, _ := newTestService(names{pid: "Rice"})

	for _, d := range []string{"2024-03-05", "2024-03-01", "2024-03-05", "2024-03-09"} {
		require.NoError(t, svc.Create(ctx, validLine(d, pid)))
	}

	res, err := svc.List(ctx, ListFilter{})
	require.NoError(t, err)
	require.Len(t, res.Items, 4)

	got := map[string]int{}
	for _, l := range res.Items {
		got[types.FormatDate(l.Date)] = l.SequenceNumber
		assert.Equal(t, "Rice", l.ProductName)
	}
	assert.Equal(t, map[string]int{"2024-03-01": 1, "2024-03-05": 2, "2024-03-09": 3}, got)
}

func TestService_List_RejectsInvertedRange(t *testing.T) {
	svc, _ := newTestService(names{})
	from, to := day("2024-03-10"), day("2024-03-01")

	_, err := svc.List(context.Background(), ListFilter{Range: domain.DateRange{From: &from, To: &to}})
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
}

func TestService_Summary(t *testing.T) {
	ctx := context.Background()
	a, b := id.New(), id.New()
	svc, _ := newTestService(names{a: "A", b: "B"})

	la := validLine("2024-03-01", a)
	la.Quantity, la.UnitCost = 3, 20
	lb := validLine("2024-03-02", b)
	lb.Quantity, lb.UnitCost = 1, 7
	require.NoError(t, svc.Create(ctx, la))
	require.NoError(t, svc.Create(ctx, lb))

	sum, err := svc.Summary(ctx, ListFilter{ProductID: &a})
	require.NoError(t, err)
	assert.Equal(t, "60.00", types.FormatMoney(sum.TotalSpent))
	assert.Equal(t, int64(1), sum.PurchaseCount)
}

func TestService_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	pid := id.New()
	svc, repo := newTestService(names{pid: "Rice"})

	line := validLine("2024-03-01", pid)
	require.NoError(t, svc.Create(ctx, line))

	loaded, err := svc.GetByID(ctx, line.ID)
	require.NoError(t, err)
	loaded.Quantity = 9
	require.NoError(t, svc.Update(ctx, loaded))
	assert.Equal(t, 9, repo.lines[0].Quantity)

	require.NoError(t, svc.Delete(ctx, line.ID))
	assert.Empty(t, repo.lines)

	err = svc.Delete(ctx, line.ID)
	assert.True(t, apperror.IsNotFound(err))
	assert.Contains(t, err.Error(), "Purchase not found")
}
