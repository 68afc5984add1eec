package handlers

import (
	"net/http"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"

	"github.com/SantiPratti/FerrariMenudencias-Backend/internal/service/search"
	"github.com/SantiPratti/FerrariMenudencias-Backend/internal/util"
)

// SearchHandler expone la búsqueda de productos sobre Elasticsearch. Es un
// componente opcional: sin cliente configurado responde 503.
type SearchHandler struct {
	ES    *elasticsearch.Client
	Index string
}

func (h *SearchHandler) BuscarProductos(c echo.Context) error {
	if h.ES == nil {
		return errorResponse(c, http.StatusServiceUnavailable, "Búsqueda no configurada", nil)
	}

	q := c.QueryParam("q")
	if q == "" {
		return errorResponse(c, http.StatusBadRequest, "Falta el parámetro q", nil)
	}

	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	from, size := util.Calculate(page, size)

	total, productos, err := search.Buscar(c.Request().Context(), h.ES, h.Index, q, from, size)
	if err != nil {
		return errorResponse(c, http.StatusInternalServerError, "Error al buscar productos", err)
	}

	return c.JSON(http.StatusOK, echo.Map{"total": total, "productos": productos})
}
