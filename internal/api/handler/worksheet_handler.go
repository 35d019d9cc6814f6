package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/simanis/notary-system/internal/core/domain"
	"github.com/simanis/notary-system/internal/core/ports"
)

// WorksheetHandler handles HTTP requests for internal worksheets.
type WorksheetHandler struct {
	service ports.WorksheetService
}

func NewWorksheetHandler(service ports.WorksheetService) *WorksheetHandler {
	return &WorksheetHandler{service: service}
}

type createWorksheetRequest struct {
	Title       string     `json:"title"        validate:"required"`
	ClientID    string     `json:"client_id"    validate:"required"`
	CaseID      string     `json:"case_id,omitempty"`
	ServiceName string     `json:"service_name" validate:"required"`
	Priority    string     `json:"priority,omitempty" validate:"omitempty,oneof=low normal high urgent"`
	Steps       []string   `json:"steps,omitempty"`
	Fee         float64    `json:"fee,omitempty" validate:"omitempty,gte=0"`
	Notes       string     `json:"notes,omitempty"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	Responsible string     `json:"responsible_id,omitempty"`
}

type updateWorksheetRequest struct {
	Title       *string                `json:"title,omitempty"`
	Status      *string                `json:"status,omitempty" validate:"omitempty,oneof=in_progress completed on_hold"`
	Priority    *string                `json:"priority,omitempty" validate:"omitempty,oneof=low normal high urgent"`
	Notes       *string                `json:"notes,omitempty"`
	Fee         *float64               `json:"fee,omitempty" validate:"omitempty,gte=0"`
	Deadline    *time.Time             `json:"deadline,omitempty"`
	Responsible *string                `json:"responsible_id,omitempty"`
	Steps       []domain.WorksheetStep `json:"steps,omitempty"`
}

type worksheetResponse struct {
	Worksheet *domain.Worksheet `json:"worksheet"`
	Progress  float64           `json:"progress"`
}

type listWorksheetsResponse struct {
	Items []worksheetResponse `json:"items"`
	Meta  listMeta            `json:"meta"`
}

// Create handles POST /v1/worksheets.
//
// @Summary      Create a worksheet
// @Tags         worksheets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createWorksheetRequest  true  "Worksheet details"
// @Success      201   {object}  domain.Worksheet
// @Failure      400   {object}  map[string]string
// @Router       /v1/worksheets [post]
func (h *WorksheetHandler) Create(c echo.Context) error {
	var req createWorksheetRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	w, err := h.service.CreateWorksheet(c.Request().Context(), ports.CreateWorksheetInput{
		Title:       req.Title,
		ClientID:    req.ClientID,
		CaseID:      req.CaseID,
		ServiceName: req.ServiceName,
		Priority:    req.Priority,
		Steps:       req.Steps,
		Fee:         req.Fee,
		Notes:       req.Notes,
		Deadline:    req.Deadline,
		Responsible: req.Responsible,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, w)
}

// Get handles GET /v1/worksheets/:id.
//
// @Summary      Get a worksheet with progress
// @Tags         worksheets
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Worksheet ID"
// @Success      200  {object}  worksheetResponse
// @Failure      404  {object}  map[string]string
// @Router       /v1/worksheets/{id} [get]
func (h *WorksheetHandler) Get(c echo.Context) error {
	view, err := h.service.GetWorksheet(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, worksheetResponse{Worksheet: view.Worksheet, Progress: view.Progress})
}

// List handles GET /v1/worksheets.
//
// @Summary      List worksheets
// @Tags         worksheets
// @Produce      json
// @Security     BearerAuth
// @Param        status    query     string  false  "Filter by status"
// @Param        priority  query     string  false  "Filter by priority"
// @Param        search    query     string  false  "Partial match on title, number or service name"
// @Param        page      query     int     false  "Page number (1-based)"
// @Param        limit     query     int     false  "Page size"
// @Success      200       {object}  listWorksheetsResponse
// @Router       /v1/worksheets [get]
func (h *WorksheetHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.service.ListWorksheets(c.Request().Context(), ports.ListWorksheetsFilter{
		Status:   c.QueryParam("status"),
		Priority: c.QueryParam("priority"),
		Search:   c.QueryParam("search"),
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		return err
	}

	items := make([]worksheetResponse, 0, len(result.Items))
	for _, v := range result.Items {
		items = append(items, worksheetResponse{Worksheet: v.Worksheet, Progress: v.Progress})
	}

	return c.JSON(http.StatusOK, listWorksheetsResponse{
		Items: items,
		Meta: listMeta{
			Total: result.Total,
			Page:  result.Page,
			Limit: result.Limit,
		},
	})
}

// Update handles PUT /v1/worksheets/:id.
//
// @Summary      Update a worksheet
// @Tags         worksheets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                  true  "Worksheet ID"
// @Param        body  body      updateWorksheetRequest  true  "Fields to update; steps replaces the whole checklist"
// @Success      200   {object}  worksheetResponse
// @Failure      404   {object}  map[string]string
// @Router       /v1/worksheets/{id} [put]
func (h *WorksheetHandler) Update(c echo.Context) error {
	var req updateWorksheetRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	view, err := h.service.UpdateWorksheet(c.Request().Context(), c.Param("id"), ports.UpdateWorksheetInput{
		Title:       req.Title,
		Status:      req.Status,
		Priority:    req.Priority,
		Notes:       req.Notes,
		Fee:         req.Fee,
		Deadline:    req.Deadline,
		Responsible: req.Responsible,
		Steps:       req.Steps,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, worksheetResponse{Worksheet: view.Worksheet, Progress: view.Progress})
}
