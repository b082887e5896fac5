package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Atelier-api/internal/application/dto"
	"github.com/jhoicas/Atelier-api/internal/domain"
)

// writeError traduce errores de dominio a status HTTP + dto.ErrorResponse.
// Los errores de saldo insuficiente (materiales o mercadería) incluyen la lista completa de faltantes.
func writeError(c *fiber.Ctx, err error) error {
	var shortage *domain.InsufficientStockError
	if errors.As(err, &shortage) {
		body := dto.InsufficientStockResponse{
			Code:      "INSUFFICIENT_STOCK",
			Message:   err.Error(),
			Shortages: make([]dto.ShortageResponse, 0, len(shortage.Shortages)),
		}
		for _, s := range shortage.Shortages {
			body.Shortages = append(body.Shortages, dto.ShortageResponse{
				MaterialID:   s.MaterialID,
				MaterialName: s.MaterialName,
				Required:     s.Required,
				Available:    s.Available,
			})
		}
		return c.Status(fiber.StatusConflict).JSON(body)
	}

	var goods *domain.InsufficientGoodsError
	if errors.As(err, &goods) {
		body := dto.InsufficientGoodsResponse{
			Code:      "INSUFFICIENT_STOCK",
			Message:   err.Error(),
			Shortages: make([]dto.GoodsShortageResponse, 0, len(goods.Shortages)),
		}
		for _, s := range goods.Shortages {
			body.Shortages = append(body.Shortages, dto.GoodsShortageResponse{
				BatchID:   s.BatchID,
				Article:   s.Article,
				Required:  s.Required,
				Available: s.Available,
			})
		}
		return c.Status(fiber.StatusConflict).JSON(body)
	}

	status, code := errorStatus(err)
	msg := err.Error()
	if status == fiber.StatusInternalServerError {
		msg = "error interno"
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidBatch):
		return fiber.StatusUnprocessableEntity, "INVALID_BATCH"
	case errors.Is(err, domain.ErrMissingRecipe):
		return fiber.StatusUnprocessableEntity, "MISSING_RECIPE"
	case errors.Is(err, domain.ErrMissingCost):
		return fiber.StatusUnprocessableEntity, "MISSING_COST"
	case errors.Is(err, domain.ErrInsufficientStock):
		return fiber.StatusConflict, "INSUFFICIENT_STOCK"
	case errors.Is(err, domain.ErrAlreadyWrittenOff):
		return fiber.StatusConflict, "ALREADY_WRITTEN_OFF"
	case errors.Is(err, domain.ErrDefaultRecipeExists):
		return fiber.StatusConflict, "DEFAULT_RECIPE_EXISTS"
	case errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusConflict, "DUPLICATE"
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, "CONFLICT"
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, "FORBIDDEN"
	default:
		return fiber.StatusInternalServerError, "INTERNAL"
	}
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

// page lee limit/offset de la query; dto.PageRequest.DefaultPage los acota.
func page(c *fiber.Ctx) dto.PageRequest {
	p := dto.PageRequest{Limit: c.QueryInt("limit", dto.DefaultLimit), Offset: c.QueryInt("offset", 0)}
	p.DefaultPage()
	return p
}
