package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockbook/internal/application/inventory"
	"github.com/jhoicas/stockbook/internal/application/ports"
	"github.com/jhoicas/stockbook/internal/domain/entity"
)

// inventoryPDF lo implementa *report.PDFReportGenerator.
type inventoryPDF interface {
	GenerateInventoryPDF(products map[string]*entity.Product, generatedAt time.Time) ([]byte, error)
}

// ReportHandler expone los reportes de texto y PDF.
type ReportHandler struct {
	svc     *inventory.WarehouseService
	factory ports.ReportFactory
	pdf     inventoryPDF
}

// NewReportHandler construye el handler. pdf puede ser nil (ruta PDF devuelve 501).
func NewReportHandler(svc *inventory.WarehouseService, factory ports.ReportFactory, pdf inventoryPDF) *ReportHandler {
	return &ReportHandler{svc: svc, factory: factory, pdf: pdf}
}

// InventoryText godoc
// @Summary      Reporte de inventario en texto plano
// @Tags         reports
// @Security     Bearer
// @Produce      plain
// @Success      200  {string}  string
// @Router       /api/reports/inventory [get]
func (h *ReportHandler) InventoryText(c *fiber.Ctx) error {
	r, err := h.svc.Report(c.UserContext(), h.factory)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.SendString(r.GenerateInventoryReport())
}

// MovementsText godoc
// @Summary      Libro de movimientos en texto plano (orden cronológico)
// @Tags         reports
// @Security     Bearer
// @Produce      plain
// @Success      200  {string}  string
// @Router       /api/reports/movements [get]
func (h *ReportHandler) MovementsText(c *fiber.Ctx) error {
	r, err := h.svc.Report(c.UserContext(), h.factory)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.SendString(r.GenerateMovementReport())
}

// InventoryPDF godoc
// @Summary      Reporte de inventario en PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Router       /api/reports/inventory.pdf [get]
func (h *ReportHandler) InventoryPDF(c *fiber.Ctx) error {
	if h.pdf == nil {
		return fiber.NewError(fiber.StatusNotImplemented, "generador PDF no configurado")
	}
	products, err := h.svc.GetAllProducts(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	pdfBytes, err := h.pdf.GenerateInventoryPDF(products, time.Now())
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="inventario.pdf"`)
	return c.Send(pdfBytes)
}
