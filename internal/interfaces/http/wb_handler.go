package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Atelier-api/internal/application/dto"
	"github.com/jhoicas/Atelier-api/internal/application/wb"
)

// WBHandler importación de reportes de stock de Wildberries.
type WBHandler struct {
	uc *wb.ImportStocksUseCase
}

// NewWBHandler construye el handler.
func NewWBHandler(uc *wb.ImportStocksUseCase) *WBHandler {
	return &WBHandler{uc: uc}
}

// ImportStocks POST /api/wb/imports (multipart, campo "file").
func (h *WBHandler) ImportStocks(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FILE", Message: "campo multipart \"file\" requerido"})
	}
	f, err := fh.Open()
	if err != nil {
		return writeError(c, err)
	}
	defer f.Close()

	out, err := h.uc.ImportStocks(c.UserContext(), fh.Filename, GetUserID(c), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
