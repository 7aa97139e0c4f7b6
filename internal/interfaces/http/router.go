package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/stockbook/internal/application/inventory"
	"github.com/jhoicas/stockbook/internal/application/ports"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Service   *inventory.WarehouseService
	Reports   ports.ReportFactory
	PDF       inventoryPDF
	Gatherer  prometheus.Gatherer // nil: sin /metrics
	JWTSecret string              // vacío: /api sin autenticación
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	api := app.Group("/api")
	// Con JWT_SECRET, todas las rutas requieren Bearer Token y las destructivas rol admin.
	adminOnly := func(c *fiber.Ctx) error { return c.Next() }
	if deps.JWTSecret != "" {
		api.Use(AuthMiddleware(deps.JWTSecret))
		adminOnly = RequireRole(RoleAdmin)
	}

	productHandler := NewProductHandler(deps.Service)
	inventoryHandler := NewInventoryHandler(deps.Service)
	reportHandler := NewReportHandler(deps.Service, deps.Reports, deps.PDF)

	// Products
	products := api.Group("/products")
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Delete("/:id", adminOnly, productHandler.Retire)

	// Stock
	products.Post("/:id/stock/in", inventoryHandler.StockIn)
	products.Post("/:id/stock/out", inventoryHandler.StockOut)
	products.Post("/:id/stock/correct", adminOnly, inventoryHandler.Correct)
	products.Get("/:id/movements", inventoryHandler.ProductMovements)

	api.Get("/movements", inventoryHandler.Movements)

	inv := api.Group("/inventory")
	inv.Get("/value", inventoryHandler.Value)
	inv.Get("/report", inventoryHandler.Report)

	// Reports
	reports := api.Group("/reports")
	reports.Get("/inventory", reportHandler.InventoryText)
	reports.Get("/movements", reportHandler.MovementsText)
	reports.Get("/inventory.pdf", reportHandler.InventoryPDF)
}
