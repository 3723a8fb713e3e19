// Package main provides a CLI tool for seeding the database with demo data.
// Records are written through the domain services, so numbering, validation
// and the audit trail behave exactly as for API requests.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"stockbook/internal/app"
	"stockbook/internal/config"
	"stockbook/internal/core/id"
	"stockbook/internal/domain"
	"stockbook/internal/domain/catalogs/product"
	"stockbook/internal/domain/documents/purchase"
	"stockbook/internal/domain/documents/purchase_batch"
	"stockbook/internal/domain/documents/sale"
	"stockbook/internal/infrastructure/storage/postgres"
	"stockbook/pkg/logger"
)

type demoProduct struct {
	name, unit, description string
}

var demoProducts = []demoProduct{
	{"Lavender soap", "pcs", "Cold-process soap bar"},
	{"Beeswax candle", "pcs", "Hand-rolled, 20 cm"},
	{"Shea butter", "jar", "100 ml"},
	{"Linen tea towel", "pcs", ""},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := logger.WithLogger(context.Background(), log)

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(cfg.Database.URL))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	services, err := app.NewServices(postgres.NewTxManager(pool), cfg.Numbering.Policy)
	if err != nil {
		log.Fatalw("failed to build services", "error", err)
	}

	existing, err := services.Products.List(ctx, domain.ListFilter{Limit: 1})
	if err != nil {
		log.Fatalw("failed to check existing products", "error", err)
	}
	if existing.TotalCount > 0 && os.Getenv("SEED_FORCE") != "true" {
		log.Infow("database already has products, skipping", "products", existing.TotalCount)
		return
	}

	if err := seedDemoData(ctx, services, log); err != nil {
		log.Fatalw("failed to seed demo data", "error", err)
	}

	log.Info("seeding completed successfully")
}

func seedDemoData(ctx context.Context, services *app.Services, log *logger.Logger) error {
	productIDs := make([]id.ID, 0, len(demoProducts))
	for _, dp := range demoProducts {
		p := product.NewProduct(dp.name, dp.unit)
		p.Description = dp.description
		if err := services.Products.Create(ctx, p); err != nil {
			return fmt.Errorf("create product %q: %w", dp.name, err)
		}
		productIDs = append(productIDs, p.ID)
	}
	log.Infow("products created", "count", len(productIDs))

	today := time.Now().UTC()
	day := func(daysAgo int) time.Time { return today.AddDate(0, 0, -daysAgo) }

	// Two deliveries and one standalone purchase.
	deliveries := []struct {
		daysAgo  int
		supplier string
		qty      []int
		cost     []int
	}{
		{14, "Meadow Supplies", []int{40, 25, 12}, []int{120, 300, 450}},
		{3, "Northern Crafts", []int{20, 0, 0}, []int{130, 0, 0}},
	}
	for _, d := range deliveries {
		batch := purchase_batch.NewBatch(day(d.daysAgo), d.supplier)
		var lines []*purchase.Line
		for i, qty := range d.qty {
			if qty == 0 {
				continue
			}
			line := purchase.NewLine(batch.Date, productIDs[i])
			line.Quantity = qty
			line.UnitCost = d.cost[i]
			line.SaleValue = d.cost[i] * 2
			lines = append(lines, line)
		}
		if err := services.Batches.Create(ctx, batch, lines); err != nil {
			return fmt.Errorf("create batch from %s: %w", d.supplier, err)
		}
	}

	towels := purchase.NewLine(day(7), productIDs[3])
	towels.Quantity = 10
	towels.UnitCost = 200
	towels.Supplier = "Local market"
	if err := services.Purchases.Create(ctx, towels); err != nil {
		return fmt.Errorf("create purchase: %w", err)
	}
	log.Info("purchases created")

	sales := []struct {
		daysAgo  int
		product  int
		qty      int
		price    int
		customer string
		channel  sale.Channel
		method   sale.PaymentMethod
		paid     bool
	}{
		{12, 0, 3, 250, "Ana", sale.ChannelLocal, sale.PaymentCash, true},
		{10, 1, 2, 600, "Boris", sale.ChannelInstagram, sale.PaymentTransfer, true},
		{5, 2, 1, 900, "Carla", sale.ChannelWhatsApp, sale.PaymentTransfer, false},
		{1, 0, 5, 240, "Dmitri", sale.ChannelDelivery, sale.PaymentCard, true},
	}
	for _, s := range sales {
		rec := sale.NewSale(day(s.daysAgo), productIDs[s.product])
		rec.Quantity = s.qty
		rec.UnitPrice = s.price
		rec.Customer = s.customer
		rec.Channel = s.channel
		rec.PaymentMethod = s.method
		rec.Paid = s.paid
		if err := services.Sales.Create(ctx, rec); err != nil {
			return fmt.Errorf("create sale for %s: %w", s.customer, err)
		}
	}
	log.Infow("sales created", "count", len(sales))
	return nil
}
