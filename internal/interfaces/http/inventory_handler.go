package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockbook/internal/application/dto"
	"github.com/jhoicas/stockbook/internal/application/inventory"
	"github.com/jhoicas/stockbook/internal/domain/entity"
)

// InventoryHandler maneja movimientos de stock y consultas de inventario.
type InventoryHandler struct {
	svc *inventory.WarehouseService
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(svc *inventory.WarehouseService) *InventoryHandler {
	return &InventoryHandler{svc: svc}
}

// StockIn godoc
// @Summary      Ingresar stock (movimiento IN)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string            true  "ID del producto"
// @Param        body  body  dto.StockRequest  true  "quantity > 0, reason"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/stock/in [post]
func (h *InventoryHandler) StockIn(c *fiber.Ctx) error {
	var in dto.StockRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	mov, err := h.svc.AddToStock(c.UserContext(), c.Params("id"), in.Quantity, in.Reason, performer(c, in.PerformedBy))
	return h.movementResult(c, mov, err)
}

// StockOut godoc
// @Summary      Retirar stock (movimiento OUT)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string            true  "ID del producto"
// @Param        body  body  dto.StockRequest  true  "quantity > 0, reason"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.InsufficientStockResponse
// @Router       /api/products/{id}/stock/out [post]
func (h *InventoryHandler) StockOut(c *fiber.Ctx) error {
	var in dto.StockRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	mov, err := h.svc.RemoveFromStock(c.UserContext(), c.Params("id"), in.Quantity, in.Reason, performer(c, in.PerformedBy))
	return h.movementResult(c, mov, err)
}

// Correct godoc
// @Summary      Corrección de inventario (movimiento CORRECTION)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del producto"
// @Param        body  body  dto.CorrectionRequest  true  "delta con signo, distinto de cero"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/stock/correct [post]
func (h *InventoryHandler) Correct(c *fiber.Ctx) error {
	var in dto.CorrectionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	mov, err := h.svc.CorrectStock(c.UserContext(), c.Params("id"), in.Delta, in.Reason, performer(c, in.PerformedBy))
	return h.movementResult(c, mov, err)
}

func (h *InventoryHandler) movementResult(c *fiber.Ctx, mov *entity.Movement, err error) error {
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MovementFromEntity(mov))
}

// ProductMovements godoc
// @Summary      Movimientos de un producto (orden de inserción)
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {array}  dto.MovementResponse
// @Router       /api/products/{id}/movements [get]
func (h *InventoryHandler) ProductMovements(c *fiber.Ctx) error {
	ms, err := h.svc.GetMovementsByProduct(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MovementsFromEntities(ms))
}

// Movements godoc
// @Summary      Libro de movimientos completo
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(100)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200  {object}  dto.MovementListResponse
// @Router       /api/movements [get]
func (h *InventoryHandler) Movements(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 100)
	offset := c.QueryInt("offset", 0)
	if limit <= 0 {
		limit = 100
	}
	if limit > 1000 {
		limit = 1000
	}
	if offset < 0 {
		offset = 0
	}
	ms, err := h.svc.GetMovements(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	total := len(ms)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return c.JSON(dto.MovementListResponse{
		Items: dto.MovementsFromEntities(ms[offset:end]),
		Page:  dto.PageResponse{Limit: limit, Offset: offset, Total: total},
	})
}

// Value godoc
// @Summary      Valor total del inventario
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.InventoryValueResponse
// @Router       /api/inventory/value [get]
func (h *InventoryHandler) Value(c *fiber.Ctx) error {
	ctx := c.UserContext()
	total, err := h.svc.GetTotalInventoryValue(ctx)
	if err != nil {
		return writeError(c, err)
	}
	products, err := h.svc.GetAllProducts(ctx)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.InventoryValueResponse{
		Warehouse:  h.svc.WarehouseName(),
		Products:   len(products),
		TotalValue: total,
	})
}

// Report godoc
// @Summary      Reporte de inventario (id → nombre, cantidad, precio, valor)
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.InventoryReportResponse
// @Router       /api/inventory/report [get]
func (h *InventoryHandler) Report(c *fiber.Ctx) error {
	items, err := h.svc.GetInventoryReport(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.InventoryReportResponse{Warehouse: h.svc.WarehouseName(), Items: items})
}
