package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Atelier-api/internal/application/dto"
	"github.com/jhoicas/Atelier-api/internal/application/stock"
)

// StockHandler movimientos de mercadería terminada, saldos y entregas.
type StockHandler struct {
	movements *stock.MovementUseCase
	supplies  *stock.SupplyUseCase
}

func NewStockHandler(movements *stock.MovementUseCase, supplies *stock.SupplyUseCase) *StockHandler {
	return &StockHandler{movements: movements, supplies: supplies}
}

// RecordMovement POST /api/stock/movements
func (h *StockHandler) RecordMovement(c *fiber.Ctx) error {
	var in dto.RecordStockMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.movements.RecordMovement(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetMovement GET /api/stock/movements/:id
func (h *StockHandler) GetMovement(c *fiber.Ctx) error {
	out, err := h.movements.GetMovement(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListMovements GET /api/stock/movements
func (h *StockHandler) ListMovements(c *fiber.Ctx) error {
	p := page(c)
	out, err := h.movements.ListMovements(c.UserContext(), p.Limit, p.Offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Balance GET /api/stock/balance?article=&location_id=[&format=xlsx]
func (h *StockHandler) Balance(c *fiber.Ctx) error {
	var f dto.StockBalanceFilter
	if err := c.QueryParser(&f); err != nil {
		return badBody(c)
	}
	if c.Query("format") == "xlsx" {
		data, err := h.movements.BalanceXLSX(c.UserContext(), f)
		if err != nil {
			return writeError(c, err)
		}
		c.Set(fiber.HeaderContentType, xlsxContentType)
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="saldos-mercaderia.xlsx"`)
		return c.Send(data)
	}
	out, err := h.movements.Balance(c.UserContext(), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateSupply POST /api/orders/:id/supplies
func (h *StockHandler) CreateSupply(c *fiber.Ctx) error {
	var in dto.CreateSupplyRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.supplies.Create(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListOrderSupplies GET /api/orders/:id/supplies
func (h *StockHandler) ListOrderSupplies(c *fiber.Ctx) error {
	out, err := h.supplies.ListByOrder(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"items": out})
}

// GetSupply GET /api/supplies/:id
func (h *StockHandler) GetSupply(c *fiber.Ctx) error {
	out, err := h.supplies.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateSupplyStatus POST /api/supplies/:id/status
// Al pasar a "accepted" las unidades entran al saldo de cada ubicación destino.
func (h *StockHandler) UpdateSupplyStatus(c *fiber.Ctx) error {
	var in dto.UpdateSupplyStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.supplies.UpdateStatus(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
