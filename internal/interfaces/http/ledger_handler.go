package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Atelier-api/internal/application/dto"
	"github.com/jhoicas/Atelier-api/internal/application/inventory"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// LedgerHandler movimientos manuales, saldos, compras y actas.
type LedgerHandler struct {
	movements *inventory.RecordMovementUseCase
	balances  *inventory.BalanceUseCase
	purchases *inventory.PurchaseUseCase
	acts      *inventory.ActUseCase
}

// NewLedgerHandler construye el handler.
func NewLedgerHandler(
	movements *inventory.RecordMovementUseCase,
	balances *inventory.BalanceUseCase,
	purchases *inventory.PurchaseUseCase,
	acts *inventory.ActUseCase,
) *LedgerHandler {
	return &LedgerHandler{movements: movements, balances: balances, purchases: purchases, acts: acts}
}

// RecordMovement POST /api/ledger/entries (entrada o traslado).
func (h *LedgerHandler) RecordMovement(c *fiber.Ctx) error {
	var in dto.RecordMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.movements.RecordMovement(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetEntry GET /api/ledger/entries/:id
func (h *LedgerHandler) GetEntry(c *fiber.Ctx) error {
	out, err := h.balances.GetEntry(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// EntryPDF GET /api/ledger/entries/:id/pdf
func (h *LedgerHandler) EntryPDF(c *fiber.Ctx) error {
	id := c.Params("id")
	data, err := h.acts.ActPDF(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="acta-%s.pdf"`, id))
	return c.Send(data)
}

// ListLocationEntries GET /api/locations/:id/entries
func (h *LedgerHandler) ListLocationEntries(c *fiber.Ctx) error {
	p := page(c)
	out, err := h.balances.ListEntries(c.UserContext(), c.Params("id"), p.Limit, p.Offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"items": out, "page": dto.PageResponse{Limit: p.Limit, Offset: p.Offset}})
}

// Balance GET /api/locations/:id/balance[?format=xlsx]
func (h *LedgerHandler) Balance(c *fiber.Ctx) error {
	id := c.Params("id")
	if c.Query("format") == "xlsx" {
		data, err := h.balances.ReportXLSX(c.UserContext(), id)
		if err != nil {
			return writeError(c, err)
		}
		c.Set(fiber.HeaderContentType, xlsxContentType)
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="saldos-%s.xlsx"`, id))
		return c.Send(data)
	}
	out, err := h.balances.Report(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreatePurchase POST /api/purchases
func (h *LedgerHandler) CreatePurchase(c *fiber.Ctx) error {
	var in dto.CreatePurchaseRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.purchases.CreatePurchase(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetPurchase GET /api/purchases/:id
func (h *LedgerHandler) GetPurchase(c *fiber.Ctx) error {
	out, err := h.purchases.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListPurchases GET /api/purchases
func (h *LedgerHandler) ListPurchases(c *fiber.Ctx) error {
	p := page(c)
	out, err := h.purchases.List(c.UserContext(), p.Limit, p.Offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
