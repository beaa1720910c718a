package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"shopfront/internal/es"
	"shopfront/internal/service"
	"shopfront/internal/util"
)

// SearchHandler answers /search from the elasticsearch index when one is
// configured, and from the catalog store otherwise.
type SearchHandler struct {
	Catalog *service.CatalogService
	Indexer *es.Indexer
}

func (h *SearchHandler) Search(c echo.Context) error {
	q := c.QueryParam("q")
	if q == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing query")
	}

	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	from, limit := util.Calculate(page, size)

	ctx := c.Request().Context()

	if h.Indexer.Enabled() {
		total, products, err := h.Indexer.Search(ctx, q, from, limit)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"total": total, "products": products})
	}

	total, products, err := h.Catalog.Search(ctx, q, from, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"total": total, "products": products})
}
