package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/MedStock-api/internal/application/auth"
	"github.com/jhoicas/MedStock-api/internal/domain/entity"
)

// CatalogHandler expone datos de referencia públicos: sedes permitidas y categorías.
type CatalogHandler struct {
	auth *auth.AuthUseCase
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(authUC *auth.AuthUseCase) *CatalogHandler {
	return &CatalogHandler{auth: authUC}
}

// Sites godoc
// @Summary      Sedes permitidas
// @Tags         catalog
// @Produce      json
// @Success      200  {array}  dto.SiteResponse
// @Router       /api/sites [get]
func (h *CatalogHandler) Sites(c *fiber.Ctx) error {
	return c.JSON(h.auth.Sites())
}

// Categories godoc
// @Summary      Categorías de insumos
// @Tags         catalog
// @Produce      json
// @Success      200  {array}  string
// @Router       /api/categories [get]
func (h *CatalogHandler) Categories(c *fiber.Ctx) error {
	return c.JSON(entity.Categories)
}
