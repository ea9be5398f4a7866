package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
)

// ProductsHandler serves synchronous catalog search. This is the only
// endpoint on the public surface allowed to return a non-200 status.
type ProductsHandler struct {
	Catalog      ProductSearcher
	DefaultLimit int
}

// Handle searches the catalog by the query term.
func (h *ProductsHandler) Handle(c *fiber.Ctx) error {
	term := c.Query("term")
	limit := c.QueryInt("limit", h.DefaultLimit)

	products, err := h.Catalog.Search(c.Context(), term, limit)
	if err != nil {
		slog.Error("Product search failed", "error", err, "term", term)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Busca de produtos indisponível no momento.",
		})
	}

	return c.JSON(fiber.Map{"products": products})
}
