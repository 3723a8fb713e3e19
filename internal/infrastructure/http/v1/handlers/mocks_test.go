package handlers

import (
	"context"

	"github.com/stretchr/testify/mock"

	"stockbook/internal/core/id"
	"stockbook/internal/domain"
	"stockbook/internal/domain/audit"
	"stockbook/internal/domain/catalogs/product"
	"stockbook/internal/domain/documents/purchase"
	"stockbook/internal/domain/documents/purchase_batch"
	"stockbook/internal/domain/documents/sale"
	"stockbook/internal/domain/registers/stock"
	"stockbook/internal/domain/reports"
)

// MockProductService implements ProductService for testing
type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) Create(ctx context.Context, p *product.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProductService) GetByID(ctx context.Context, productID id.ID) (*product.Product, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductService) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*product.Product], error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(domain.ListResult[*product.Product]), args.Error(1)
}

func (m *MockProductService) Update(ctx context.Context, p *product.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProductService) Delete(ctx context.Context, productID id.ID) (*product.DeleteResult, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.DeleteResult), args.Error(1)
}

// MockStockService implements StockService for testing
type MockStockService struct {
	mock.Mock
}

func (m *MockStockService) All(ctx context.Context) ([]stock.Balance, error) {
	args := m.Called(ctx)
	return args.Get(0).([]stock.Balance), args.Error(1)
}

func (m *MockStockService) StockOf(ctx context.Context, productIDs []id.ID) (map[id.ID]int64, error) {
	args := m.Called(ctx, productIDs)
	return args.Get(0).(map[id.ID]int64), args.Error(1)
}

// MockPurchaseService implements PurchaseService for testing
type MockPurchaseService struct {
	mock.Mock
}

func (m *MockPurchaseService) Create(ctx context.Context, line *purchase.Line) error {
	args := m.Called(ctx, line)
	return args.Error(0)
}

func (m *MockPurchaseService) GetByID(ctx context.Context, lineID id.ID) (*purchase.Line, error) {
	args := m.Called(ctx, lineID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*purchase.Line), args.Error(1)
}

func (m *MockPurchaseService) List(ctx context.Context, filter purchase.ListFilter) (domain.ListResult[*purchase.Line], error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(domain.ListResult[*purchase.Line]), args.Error(1)
}

func (m *MockPurchaseService) Summary(ctx context.Context, filter purchase.ListFilter) (purchase.Summary, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(purchase.Summary), args.Error(1)
}

func (m *MockPurchaseService) Update(ctx context.Context, line *purchase.Line) error {
	args := m.Called(ctx, line)
	return args.Error(0)
}

func (m *MockPurchaseService) Delete(ctx context.Context, lineID id.ID) error {
	args := m.Called(ctx, lineID)
	return args.Error(0)
}

// MockBatchService implements BatchService for testing
type MockBatchService struct {
	mock.Mock
}

func (m *MockBatchService) Create(ctx context.Context, batch *purchase_batch.Batch, lines []*purchase.Line) error {
	args := m.Called(ctx, batch, lines)
	return args.Error(0)
}

func (m *MockBatchService) Update(ctx context.Context, batch *purchase_batch.Batch, lines []*purchase.Line) error {
	args := m.Called(ctx, batch, lines)
	return args.Error(0)
}

func (m *MockBatchService) GetByID(ctx context.Context, batchID id.ID) (*purchase_batch.Batch, error) {
	args := m.Called(ctx, batchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*purchase_batch.Batch), args.Error(1)
}

func (m *MockBatchService) List(ctx context.Context, filter purchase_batch.ListFilter) (domain.ListResult[*purchase_batch.Batch], error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(domain.ListResult[*purchase_batch.Batch]), args.Error(1)
}

func (m *MockBatchService) Summary(ctx context.Context, filter purchase_batch.ListFilter) (purchase_batch.Summary, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(purchase_batch.Summary), args.Error(1)
}

func (m *MockBatchService) Delete(ctx context.Context, batchID id.ID) error {
	args := m.Called(ctx, batchID)
	return args.Error(0)
}

// MockSaleService implements SaleService for testing
type MockSaleService struct {
	mock.Mock
}

func (m *MockSaleService) Create(ctx context.Context, s *sale.Sale) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSaleService) GetByID(ctx context.Context, saleID id.ID) (*sale.Sale, error) {
	args := m.Called(ctx, saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sale.Sale), args.Error(1)
}

func (m *MockSaleService) List(ctx context.Context, filter sale.ListFilter) (domain.ListResult[*sale.Sale], error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(domain.ListResult[*sale.Sale]), args.Error(1)
}

func (m *MockSaleService) Summary(ctx context.Context, filter sale.ListFilter) (sale.Summary, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(sale.Summary), args.Error(1)
}

func (m *MockSaleService) Update(ctx context.Context, s *sale.Sale) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSaleService) Delete(ctx context.Context, saleID id.ID) error {
	args := m.Called(ctx, saleID)
	return args.Error(0)
}

// MockReportService implements ReportService for testing
type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) Financial(ctx context.Context, r domain.DateRange) (*reports.FinancialReport, error) {
	args := m.Called(ctx, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reports.FinancialReport), args.Error(1)
}

func (m *MockReportService) Inventory(ctx context.Context) ([]reports.InventoryItem, error) {
	args := m.Called(ctx)
	return args.Get(0).([]reports.InventoryItem), args.Error(1)
}

// MockAuditReader implements audit.Reader for testing
type MockAuditReader struct {
	mock.Mock
}

func (m *MockAuditReader) History(ctx context.Context, q audit.HistoryQuery) ([]audit.Entry, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]audit.Entry), args.Error(1)
}
