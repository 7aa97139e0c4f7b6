// Command demo carga el escenario de referencia (laptop + mouse) y imprime los reportes.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockbook/internal/application/inventory"
	"github.com/jhoicas/stockbook/internal/domain"
	"github.com/jhoicas/stockbook/internal/infrastructure/report"
	"github.com/jhoicas/stockbook/internal/infrastructure/storage"
	"github.com/jhoicas/stockbook/pkg/config"
	"github.com/jhoicas/stockbook/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cargar configuración:", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, Output: os.Stderr})

	ctx := context.Background()
	backend, err := storage.New(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento")
	}
	defer backend.Close()

	svc := inventory.NewWarehouseService(backend.Repo, backend.Tx,
		inventory.WithLogger(log.Component("inventory")),
		inventory.WithWarehouseName(cfg.Warehouse.Name),
	)

	if err := seed(ctx, svc); err != nil {
		log.Fatal().Err(err).Msg("escenario de demostración")
	}

	total, err := svc.GetTotalInventoryValue(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("valor del inventario")
	}

	r, err := svc.Report(ctx, report.ConsoleFactory(cfg.Report.Lang))
	if err != nil {
		log.Fatal().Err(err).Msg("reporte")
	}
	fmt.Print(r.GenerateInventoryReport())
	fmt.Println()
	fmt.Print(r.GenerateMovementReport())
	fmt.Printf("\nValor total (%s): %s\n", svc.WarehouseName(), total.StringFixed(2))
}

func seed(ctx context.Context, svc *inventory.WarehouseService) error {
	products := []inventory.CreateProductInput{
		{ID: "LAPTOP-001", Name: "Laptop Dell XPS 15", Price: decimal.NewFromInt(1200), Category: "Informática", InitialQuantity: 5},
		{ID: "MOUSE-001", Name: "Mouse Logitech MX Master", Price: decimal.NewFromInt(25), Category: "Periféricos", InitialQuantity: 50},
	}
	for _, in := range products {
		if _, err := svc.CreateProduct(ctx, in); err != nil {
			// Backends persistentes: el escenario puede estar cargado de una ejecución previa.
			if errors.Is(err, domain.ErrDuplicate) {
				continue
			}
			return err
		}
	}

	if _, err := svc.AddToStock(ctx, "LAPTOP-001", 3, "Compra a proveedor", "admin"); err != nil {
		return err
	}
	if _, err := svc.RemoveFromStock(ctx, "LAPTOP-001", 2, "Venta", "vendedor"); err != nil {
		return err
	}
	if _, err := svc.AddToStock(ctx, "MOUSE-001", 10, "Compra a proveedor", "admin"); err != nil {
		return err
	}

	// Salida que excede el stock: debe rechazarse sin registrar nada.
	_, err := svc.RemoveFromStock(ctx, "LAPTOP-001", 100, "Venta mayorista", "vendedor")
	var insufficient *domain.InsufficientStockError
	if errors.As(err, &insufficient) {
		fmt.Printf("Rechazado: %s (disponible %d, solicitado %d)\n\n",
			insufficient.ProductID, insufficient.Available, insufficient.Requested)
		return nil
	}
	if err != nil {
		return err
	}
	return fmt.Errorf("se esperaba stock insuficiente para LAPTOP-001")
}
