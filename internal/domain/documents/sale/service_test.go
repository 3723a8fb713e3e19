package sale

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

type memRepo struct{ sales []*Sale }

func (r *memRepo) Create(_ context.Context, s *Sale) error {
	cp := *s
	r.sales = append(r.sales, &cp)
	return nil
}

func (r *memRepo) Update(_ context.Context, s *Sale) error {
	for i, cur := range r.sales {
		if cur.ID == s.ID {
			cp := *s
			r.sales[i] = &cp
			return nil
		}
	}
	return apperror.NewNotFound("sales", s.ID)
}

func (r *memRepo) Delete(_ context.Context, saleID id.ID) error {
	for i, cur := range r.sales {
		if cur.ID == saleID {
			r.sales = append(r.sales[:i], r.sales[i+1:]...)
			return nil
		}
	}
	return apperror.NewNotFound("sales", saleID)
}

func (r *memRepo) GetByID(_ context.Context, saleID id.ID) (*Sale, error) {
	for _, cur := range r.sales {
		if cur.ID == saleID {
			cp := *cur
			return &cp, nil
		}
	}
	return nil, apperror.NewNotFound("sales", saleID)
}

func (r *memRepo) match(f ListFilter) []*Sale {
	var out []*Sale
	for _, s := range r.sales {
		switch {
		case !f.Range.Contains(s.Date):
		case f.ProductID != nil && s.ProductID != *f.ProductID:
		case f.Channel != nil && s.Channel != *f.Channel:
		case f.Paid != nil && s.Paid != *f.Paid:
		default:
			cp := *s
			out = append(out, &cp)
		}
	}
	return out
}

func (r *memRepo) List(_ context.Context, f ListFilter) (domain.ListResult[*Sale], error) {
	items := r.match(f)
	return domain.ListResult[*Sale]{Items: items, TotalCount: int64(len(items))}, nil
}

func (r *memRepo) Summary(_ context.Context, f ListFilter) (Summary, error) {
	sum := Summary{TotalIncome: types.Zero(), PaidIncome: types.Zero(), PendingIncome: types.Zero()}
	for _, s := range r.match(f) {
		sum.TotalIncome = sum.TotalIncome.Add(s.Total())
		if s.Paid {
			sum.PaidIncome = sum.PaidIncome.Add(s.Total())
		} else {
			sum.PendingIncome = sum.PendingIncome.Add(s.Total())
		}
		sum.SaleCount++
	}
	return sum, nil
}

type snapshot struct{ repo *memRepo }

func (d snapshot) Index(context.Context, numerator.Kind) (*numerator.Index, error) {
	return numerator.NewIndex(numerator.Dates(d.repo.sales), numerator.PolicyDescending), nil
}

func (d snapshot) Number(ctx context.Context, kind numerator.Kind, date time.Time) (int, error) {
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

func newSale(date string, productID id.ID, qty, price int, paid bool) *Sale {
	s := NewSale(day(date), productID)
	s.Customer = "Ana"
	s.Quantity = qty
	s.UnitPrice = price
	s.Paid = paid
	return s
}

func newTestService(products names) (*Service, *memRepo) {
	repo := &memRepo{}
	return NewService(repo, documents.NewProductResolver(products), snapshot{repo}, passThroughTx{}, nil), repo
}

func TestNewSale_Defaults(t *testing.T) {
	s := NewSale(day("2024-01-01"), id.New())
	assert.Equal(t, ChannelLocal, s.Channel)
	assert.Equal(t, PaymentCash, s.PaymentMethod)
	assert.True(t, s.Paid)
}

func TestSale_Validate(t *testing.T) {
	ctx := context.Background()
	pid := id.New()

	tests := []struct {
		name   string
		mutate func(s *Sale)
		field  string
	}{
		{"zero quantity", func(s *Sale) { s.Quantity = 0 }, "quantity"},
		{"zero unit price", func(s *Sale) { s.UnitPrice = 0 }, "unitPrice"},
		{"blank customer", func(s *Sale) { s.Customer = "" }, "customer"},
		{"unknown channel", func(s *Sale) { s.Channel = "telegram" }, "channel"},
		{"unknown payment method", func(s *Sale) { s.PaymentMethod = "barter" }, "paymentMethod"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSale("2024-01-01", pid, 1, 10, true)
			tt.mutate(s)
			appErr, ok := apperror.AsAppError(s.Validate(ctx))
			require.True(t, ok)
			assert.Equal(t, tt.field, appErr.Details["field"])
		})
	}

	s := newSale("2024-01-01", pid, 1, 10, true)
	s.Channel, s.PaymentMethod = "", ""
	require.NoError(t, s.Validate(ctx))
	assert.Equal(t, ChannelLocal, s.Channel)
	assert.Equal(t, PaymentCash, s.PaymentMethod)
}

func TestService_Summary_SplitsByPaid(t *testing.T) {
	ctx := context.Background()
	pid := id.New()
	svc, _ := newTestService(names{pid: "Soap"})

	require.NoError(t, svc.Create(ctx, newSale("2024-02-01", pid, 2, 100, true)))
	require.NoError(t, svc.Create(ctx, newSale("2024-02-02", pid, 1, 50, false)))

	sum, err := svc.Summary(ctx, ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, "250.00", types.FormatMoney(sum.TotalIncome))
	assert.Equal(t, "200.00", types.FormatMoney(sum.PaidIncome))
	assert.Equal(t, "50.00", types.FormatMoney(sum.PendingIncome))
	assert.Equal(t, int64(2), sum.SaleCount)

	paid := false
	sum, err = svc.Summary(ctx, ListFilter{Paid: &paid})
	require.NoError(t, err)
	assert.Equal(t, int64(1), sum.SaleCount)
}

func TestService_List_DescendingPolicy(t *testing.T) {
	ctx := context.Background()
	pid := id.New()
	svc, _ := newTestService(names{pid: "Soap"})

	older := newSale("2024-02-01", pid, 1, 1, true)
	newer := newSale("2024-02-09", pid, 1, 1, true)
	require.NoError(t, svc.Create(ctx, older))
	require.NoError(t, svc.Create(ctx, newer))

	res, err := svc.List(ctx, ListFilter{})
	require.NoError(t, err)
	for _, s := range res.Items {
		if s.ID == newer.ID {
			assert.Equal(t, 1, s.SequenceNumber)
		} else {
			assert.Equal(t, 2, s.SequenceNumber)
		}
	}
}

func TestService_List_RejectsUnknownChannel(t *testing.T) {
	svc, _ := newTestService(names{})
	ch := Channel("fax")

	_, err := svc.List(context.Background(), ListFilter{Channel: &ch})
	assert.True(t, apperror.IsValidation(err))
}

func TestService_Create_UnknownProduct(t *testing.T) {
	svc, repo := newTestService(names{})

	err := svc.Create(context.Background(), newSale("2024-02-01", id.New(), 1, 1, true))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Product not found")
	assert.Empty(t, repo.sales)
}

func TestService_UpdateDelete(t *testing.T) {
	ctx := context.Background()
	pid := id.New()
	svc, repo := newTestService(names{pid: "Soap"})

	s := newSale("2024-02-01", pid, 1, 10, false)
	require.NoError(t, svc.Create(ctx, s))

	loaded, err := svc.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "Soap", loaded.ProductName)

	loaded.Paid = true
	require.NoError(t, svc.Update(ctx, loaded))
	assert.True(t, repo.sales[0].Paid)

	require.NoError(t, svc.Delete(ctx, s.ID))
	_, err = svc.GetByID(ctx, s.ID)
	assert.True(t, apperror.IsNotFound(err))
	assert.Contains(t, err.Error(), "Sale not found")
}
