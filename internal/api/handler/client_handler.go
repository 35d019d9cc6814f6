package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/simanis/notary-system/internal/core/domain"
	"github.com/simanis/notary-system/internal/core/ports"
)

// ClientHandler handles HTTP requests for client records.
type ClientHandler struct {
	service ports.ClientService
}

func NewClientHandler(service ports.ClientService) *ClientHandler {
	return &ClientHandler{service: service}
}

type createClientRequest struct {
	ClientType string                    `json:"client_type" validate:"required,oneof=individual corporate"`
	FullName   string                    `json:"full_name"   validate:"required"`
	Email      string                    `json:"email,omitempty" validate:"omitempty,email"`
	Phone      string                    `json:"phone,omitempty"`
	Address    string                    `json:"address,omitempty"`
	Individual *domain.IndividualDetails `json:"individual,omitempty"`
	Corporate  *domain.CorporateDetails  `json:"corporate,omitempty"`
}

type updateClientRequest struct {
	FullName   *string                   `json:"full_name,omitempty"`
	Email      *string                   `json:"email,omitempty" validate:"omitempty,email"`
	Phone      *string                   `json:"phone,omitempty"`
	Address    *string                   `json:"address,omitempty"`
	Individual *domain.IndividualDetails `json:"individual,omitempty"`
	Corporate  *domain.CorporateDetails  `json:"corporate,omitempty"`
}

type listClientsResponse struct {
	Items []*domain.Client `json:"items"`
	Meta  listMeta         `json:"meta"`
}

// Create handles POST /v1/clients.
//
// @Summary      Create a client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createClientRequest  true  "Client details; exactly one of individual/corporate per client_type"
// @Success      201   {object}  domain.Client
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /v1/clients [post]
func (h *ClientHandler) Create(c echo.Context) error {
	var req createClientRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	username, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	client, err := h.service.CreateClient(c.Request().Context(), ports.CreateClientInput{
		ClientType: req.ClientType,
		FullName:   req.FullName,
		Email:      req.Email,
		Phone:      req.Phone,
		Address:    req.Address,
		Individual: req.Individual,
		Corporate:  req.Corporate,
		CreatedBy:  username,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, client)
}

// Get handles GET /v1/clients/:id.
//
// @Summary      Get a client by ID
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Client ID"
// @Success      200  {object}  domain.Client
// @Failure      404  {object}  map[string]string
// @Router       /v1/clients/{id} [get]
func (h *ClientHandler) Get(c echo.Context) error {
	client, err := h.service.GetClient(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, client)
}

// List handles GET /v1/clients.
//
// @Summary      List clients
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Param        type    query     string  false  "Filter by client type (individual|corporate)"
// @Param        search  query     string  false  "Partial match on name or company name"
// @Param        page    query     int     false  "Page number (1-based)"
// @Param        limit   query     int     false  "Page size"
// @Success      200     {object}  listClientsResponse
// @Router       /v1/clients [get]
func (h *ClientHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.service.ListClients(c.Request().Context(), ports.ListClientsFilter{
		ClientType: c.QueryParam("type"),
		Search:     c.QueryParam("search"),
		SortBy:     c.QueryParam("sort_by"),
		SortAsc:    c.QueryParam("order") == "asc",
		Page:       page,
		Limit:      limit,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listClientsResponse{
		Items: result.Items,
		Meta: listMeta{
			Total:      result.Total,
			Page:       result.Page,
			Limit:      result.Limit,
			TotalPages: result.TotalPages,
		},
	})
}

// Update handles PUT /v1/clients/:id.
//
// @Summary      Update a client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Client ID"
// @Param        body  body      updateClientRequest  true  "Fields to update; omitted fields are unchanged"
// @Success      200   {object}  domain.Client
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/clients/{id} [put]
func (h *ClientHandler) Update(c echo.Context) error {
	var req updateClientRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	client, err := h.service.UpdateClient(c.Request().Context(), c.Param("id"), ports.UpdateClientInput{
		FullName:   req.FullName,
		Email:      req.Email,
		Phone:      req.Phone,
		Address:    req.Address,
		Individual: req.Individual,
		Corporate:  req.Corporate,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, client)
}
