package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Atelier-api/internal/application/dto"
	"github.com/jhoicas/Atelier-api/internal/application/inventory"
	"github.com/jhoicas/Atelier-api/internal/application/production"
)

// ProductionHandler fichas técnicas, pedidos, partidas y descargo por ficha.
type ProductionHandler struct {
	recipes  *production.RecipeUseCase
	orders   *production.OrderUseCase
	writeOff *production.WriteOffUseCase
}

// NewProductionHandler construye el handler.
func NewProductionHandler(recipes *production.RecipeUseCase, orders *production.OrderUseCase, writeOff *production.WriteOffUseCase) *ProductionHandler {
	return &ProductionHandler{recipes: recipes, orders: orders, writeOff: writeOff}
}

// CreateRecipe POST /api/recipes
func (h *ProductionHandler) CreateRecipe(c *fiber.Ctx) error {
	var in dto.CreateRecipeRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.recipes.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetRecipe GET /api/recipes/:id
func (h *ProductionHandler) GetRecipe(c *fiber.Ctx) error {
	out, err := h.recipes.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// SetDefaultRecipe POST /api/recipes/:id/default
func (h *ProductionHandler) SetDefaultRecipe(c *fiber.Ctx) error {
	out, err := h.recipes.SetDefault(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListProductRecipes GET /api/products/:id/recipes
func (h *ProductionHandler) ListProductRecipes(c *fiber.Ctx) error {
	out, err := h.recipes.ListByProduct(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"items": out})
}

// CreateOrder POST /api/orders
func (h *ProductionHandler) CreateOrder(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.orders.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetOrder GET /api/orders/:id
func (h *ProductionHandler) GetOrder(c *fiber.Ctx) error {
	out, err := h.orders.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListOrders GET /api/orders
func (h *ProductionHandler) ListOrders(c *fiber.Ctx) error {
	p := page(c)
	out, err := h.orders.List(c.UserContext(), p.Limit, p.Offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListOrderBatches GET /api/orders/:id/batches
func (h *ProductionHandler) ListOrderBatches(c *fiber.Ctx) error {
	out, err := h.orders.ListBatches(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"items": out})
}

// GetBatch GET /api/batches/:id
func (h *ProductionHandler) GetBatch(c *fiber.Ctx) error {
	out, err := h.orders.GetBatch(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// WriteOff POST /api/batches/:id/writeoff
// Descarga los materiales de la partida desde la ubicación indicada según su ficha técnica.
func (h *ProductionHandler) WriteOff(c *fiber.Ctx) error {
	var in dto.WriteOffRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	entry, err := h.writeOff.WriteOff(c.UserContext(), c.Params("id"), in.LocationID)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(inventory.ToLedgerEntryResponse(entry))
}

// AddOrderItem POST /api/orders/:id/items
func (h *ProductionHandler) AddOrderItem(c *fiber.Ctx) error {
	var in dto.AddOrderItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.orders.AddItem(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
