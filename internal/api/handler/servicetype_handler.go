package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/simanis/notary-system/internal/core/ports"
)

// ServiceTypeHandler serves the seeded service catalog: categories and
// the service type templates the wizard derives checklists from.
type ServiceTypeHandler struct {
	types      ports.ServiceTypeRepository
	categories ports.CategoryRepository
}

func NewServiceTypeHandler(types ports.ServiceTypeRepository, categories ports.CategoryRepository) *ServiceTypeHandler {
	return &ServiceTypeHandler{types: types, categories: categories}
}

// ListTypes handles GET /v1/service-types.
//
// @Summary      List active service types
// @Tags         catalog
// @Produce      json
// @Security     BearerAuth
// @Param        category  query     string  false  "Filter by category (notaris|ppat|syariah)"
// @Success      200       {array}   domain.ServiceType
// @Router       /v1/service-types [get]
func (h *ServiceTypeHandler) ListTypes(c echo.Context) error {
	types, err := h.types.List(c.Request().Context(), c.QueryParam("category"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, types)
}

// GetType handles GET /v1/service-types/:id.
//
// @Summary      Get a service type with its document template
// @Tags         catalog
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Service type ID"
// @Success      200  {object}  domain.ServiceType
// @Failure      404  {object}  map[string]string
// @Router       /v1/service-types/{id} [get]
func (h *ServiceTypeHandler) GetType(c echo.Context) error {
	st, err := h.types.FindByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, st)
}

// ListCategories handles GET /v1/categories.
//
// @Summary      List active service categories
// @Tags         catalog
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.ServiceCategory
// @Router       /v1/categories [get]
func (h *ServiceTypeHandler) ListCategories(c echo.Context) error {
	cats, err := h.categories.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cats)
}
