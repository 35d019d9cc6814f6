package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/simanis/notary-system/internal/core/domain"
	"github.com/simanis/notary-system/internal/core/ports"
)

// InvoiceHandler handles HTTP requests for finance records.
type InvoiceHandler struct {
	service ports.InvoiceService
}

func NewInvoiceHandler(service ports.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{service: service}
}

type createInvoiceRequest struct {
	ClientID    string     `json:"client_id" validate:"required"`
	CaseID      string     `json:"case_id,omitempty"`
	Amount      float64    `json:"amount"    validate:"required,gt=0"`
	Description string     `json:"description,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

type listInvoicesResponse struct {
	Items []*domain.Invoice `json:"items"`
	Meta  listMeta          `json:"meta"`
}

// Create handles POST /v1/invoices.
//
// @Summary      Create an invoice
// @Tags         finance
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createInvoiceRequest  true  "Invoice details"
// @Success      201   {object}  domain.Invoice
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /v1/invoices [post]
func (h *InvoiceHandler) Create(c echo.Context) error {
	var req createInvoiceRequest
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

	inv, err := h.service.CreateInvoice(c.Request().Context(), ports.CreateInvoiceInput{
		ClientID:    req.ClientID,
		CaseID:      req.CaseID,
		Amount:      req.Amount,
		Description: req.Description,
		DueDate:     req.DueDate,
		CreatedBy:   username,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, inv)
}

// Get handles GET /v1/invoices/:id.
//
// @Summary      Get an invoice by ID
// @Tags         finance
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Invoice ID"
// @Success      200  {object}  domain.Invoice
// @Failure      404  {object}  map[string]string
// @Router       /v1/invoices/{id} [get]
func (h *InvoiceHandler) Get(c echo.Context) error {
	inv, err := h.service.GetInvoice(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, inv)
}

// List handles GET /v1/invoices.
//
// @Summary      List invoices
// @Tags         finance
// @Produce      json
// @Security     BearerAuth
// @Param        status     query     string  false  "Filter by status (unpaid|paid|overdue)"
// @Param        client_id  query     string  false  "Scope to one client"
// @Param        search     query     string  false  "Partial match on number or description"
// @Param        page       query     int     false  "Page number (1-based)"
// @Param        limit      query     int     false  "Page size"
// @Success      200        {object}  listInvoicesResponse
// @Router       /v1/invoices [get]
func (h *InvoiceHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.service.ListInvoices(c.Request().Context(), ports.ListInvoicesFilter{
		Status:   c.QueryParam("status"),
		ClientID: c.QueryParam("client_id"),
		Search:   c.QueryParam("search"),
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listInvoicesResponse{
		Items: result.Items,
		Meta: listMeta{
			Total: result.Total,
			Page:  result.Page,
			Limit: result.Limit,
		},
	})
}

// MarkPaid handles POST /v1/invoices/:id/pay.
//
// @Summary      Mark an invoice as paid
// @Tags         finance
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Invoice ID"
// @Success      200  {object}  domain.Invoice
// @Failure      404  {object}  map[string]string
// @Router       /v1/invoices/{id}/pay [post]
func (h *InvoiceHandler) MarkPaid(c echo.Context) error {
	inv, err := h.service.MarkPaid(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, inv)
}
