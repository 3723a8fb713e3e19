// Package app wires repositories and domain services over one database.
package app

import (
	"fmt"

	corenumerator "stockbook/internal/core/numerator"
	"stockbook/internal/domain/catalogs/product"
	"stockbook/internal/domain/documents"
	"stockbook/internal/domain/documents/purchase"
	"stockbook/internal/domain/documents/purchase_batch"
	"stockbook/internal/domain/documents/sale"
	"stockbook/internal/domain/registers/stock"
	"stockbook/internal/domain/reports"
	"stockbook/internal/infrastructure/numerator"
	"stockbook/internal/infrastructure/storage/postgres"
	"stockbook/internal/infrastructure/storage/postgres/catalog_repo"
	"stockbook/internal/infrastructure/storage/postgres/document_repo"
	"stockbook/internal/infrastructure/storage/postgres/register_repo"
	"stockbook/internal/infrastructure/storage/postgres/report_repo"
)

// Services holds every domain service of the application.
type Services struct {
	Products  *product.Service
	Purchases *purchase.Service
	Batches   *purchase_batch.Service
	Sales     *sale.Service
	Stock     *stock.Service
	Reports   *reports.Service
	Audit     *postgres.AuditLog
}

// NewServices builds the services on top of txm. Sequence numbers follow
// policy.
func NewServices(txm *postgres.TxManager, policy corenumerator.Policy) (*Services, error) {
	auditLog, err := postgres.NewAuditLog(txm)
	if err != nil {
		return nil, fmt.Errorf("audit log: %w", err)
	}

	num := numerator.New(txm, policy)

	productRepo := catalog_repo.NewProductRepo(txm)
	batchRepo := document_repo.NewPurchaseBatchRepo(txm)
	lineRepo := document_repo.NewPurchaseLineRepo(txm)
	saleRepo := document_repo.NewSaleRepo(txm)
	resolver := documents.NewProductResolver(productRepo)

	stockSvc := stock.NewService(register_repo.NewStockRepo(txm))

	return &Services{
		Products:  product.NewService(productRepo, batchRepo, txm, auditLog),
		Purchases: purchase.NewService(lineRepo, resolver, num, txm, auditLog),
		Batches:   purchase_batch.NewService(batchRepo, lineRepo, resolver, num, txm, auditLog),
		Sales:     sale.NewService(saleRepo, resolver, num, txm, auditLog),
		Stock:     stockSvc,
		Reports:   reports.NewService(report_repo.NewReportRepo(txm), stockSvc, txm),
		Audit:     auditLog,
	}, nil
}
