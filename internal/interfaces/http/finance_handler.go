package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Atelier-api/internal/application/dto"
	"github.com/jhoicas/Atelier-api/internal/application/finance"
)

// FinanceHandler cuentas, partidas y operaciones de dinero.
type FinanceHandler struct {
	uc *finance.UseCase
}

func NewFinanceHandler(uc *finance.UseCase) *FinanceHandler {
	return &FinanceHandler{uc: uc}
}

// CreateAccount POST /api/finance/accounts
func (h *FinanceHandler) CreateAccount(c *fiber.Ctx) error {
	var in dto.CreateMoneyAccountRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateAccount(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListAccounts GET /api/finance/accounts
func (h *FinanceHandler) ListAccounts(c *fiber.Ctx) error {
	p := page(c)
	out, err := h.uc.ListAccounts(c.UserContext(), p.Limit, p.Offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AccountBalance GET /api/finance/accounts/:id/balance
func (h *FinanceHandler) AccountBalance(c *fiber.Ctx) error {
	out, err := h.uc.AccountBalance(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateCategory POST /api/finance/categories
func (h *FinanceHandler) CreateCategory(c *fiber.Ctx) error {
	var in dto.CreateMoneyCategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateCategory(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListCategories GET /api/finance/categories
func (h *FinanceHandler) ListCategories(c *fiber.Ctx) error {
	p := page(c)
	out, err := h.uc.ListCategories(c.UserContext(), p.Limit, p.Offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateTransaction POST /api/finance/transactions
func (h *FinanceHandler) CreateTransaction(c *fiber.Ctx) error {
	var in dto.CreateMoneyTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateTransaction(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetTransaction GET /api/finance/transactions/:id
func (h *FinanceHandler) GetTransaction(c *fiber.Ctx) error {
	out, err := h.uc.GetTransaction(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListTransactions GET /api/finance/transactions?account_id=&order_id=&kind=
func (h *FinanceHandler) ListTransactions(c *fiber.Ctx) error {
	var f dto.MoneyTransactionFilter
	if err := c.QueryParser(&f); err != nil {
		return badBody(c)
	}
	p := page(c)
	out, err := h.uc.ListTransactions(c.UserContext(), f, p.Limit, p.Offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// OrderPayments GET /api/orders/:id/payments
func (h *FinanceHandler) OrderPayments(c *fiber.Ctx) error {
	out, err := h.uc.OrderPayments(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
