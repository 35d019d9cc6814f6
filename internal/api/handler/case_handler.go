package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/simanis/notary-system/internal/core/domain"
	"github.com/simanis/notary-system/internal/core/ports"
)

// CaseHandler handles HTTP requests for service cases.
type CaseHandler struct {
	service ports.CaseService
}

func NewCaseHandler(service ports.CaseService) *CaseHandler {
	return &CaseHandler{service: service}
}

// Create handles POST /v1/cases — the direct (non-wizard) create path.
//
// @Summary      Create a case
// @Tags         cases
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createCaseRequest  true  "Case details"
// @Success      201   {object}  createCaseResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /v1/cases [post]
func (h *CaseHandler) Create(c echo.Context) error {
	var req createCaseRequest
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

	result, err := h.service.CreateCase(c.Request().Context(), ports.CreateCaseInput{
		Title:               req.Title,
		Description:         req.Description,
		ClientID:            req.ClientID,
		ServiceTypeID:       req.ServiceTypeID,
		CategoryID:          req.CategoryID,
		Priority:            req.Priority,
		FeeAmount:           req.FeeAmount,
		Notes:               req.Notes,
		EstimatedCompletion: req.EstimatedCompletion,
		RequiredDocuments:   req.RequiredDocuments,
		CreatedBy:           username,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, createCaseResponse{
		ReferenceNumber: result.ReferenceNumber,
		Status:          result.Status,
		CreatedAt:       result.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	})
}

// Get handles GET /v1/cases/:reference_number.
//
// @Summary      Get a case with documents and timeline
// @Tags         cases
// @Produce      json
// @Security     BearerAuth
// @Param        reference_number  path      string  true  "Reference number (e.g. SRV-1700000000000-AB12C)"
// @Success      200               {object}  caseDetailResponse
// @Failure      404               {object}  map[string]string
// @Router       /v1/cases/{reference_number} [get]
func (h *CaseHandler) Get(c echo.Context) error {
	detail, err := h.service.GetCase(c.Request().Context(), c.Param("reference_number"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, caseDetailResponse{
		Case:             detail.Case,
		Documents:        detail.Documents,
		Timeline:         detail.Timeline,
		DocumentProgress: detail.DocumentProgress,
	})
}

// List handles GET /v1/cases.
//
// @Summary      List cases
// @Tags         cases
// @Produce      json
// @Security     BearerAuth
// @Param        status     query     string  false  "Filter by status"
// @Param        category   query     string  false  "Filter by category"
// @Param        priority   query     string  false  "Filter by priority"
// @Param        client_id  query     string  false  "Scope to one client"
// @Param        search     query     string  false  "Partial match on title or reference number"
// @Param        sort_by    query     string  false  "Sort field"
// @Param        order      query     string  false  "asc or desc (default desc)"
// @Param        page       query     int     false  "Page number (1-based)"
// @Param        limit      query     int     false  "Page size (max 100)"
// @Success      200        {object}  listCasesResponse
// @Router       /v1/cases [get]
func (h *CaseHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.service.ListCases(c.Request().Context(), ports.ListCasesInput{
		Status:   c.QueryParam("status"),
		Category: c.QueryParam("category"),
		Priority: c.QueryParam("priority"),
		ClientID: c.QueryParam("client_id"),
		Search:   c.QueryParam("search"),
		SortBy:   c.QueryParam("sort_by"),
		SortAsc:  c.QueryParam("order") == "asc",
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listCasesResponse{
		Items: result.Items,
		Meta: listMeta{
			Total:      result.Total,
			Page:       result.Page,
			Limit:      result.Limit,
			TotalPages: result.TotalPages,
		},
	})
}

// Update handles PUT /v1/cases/:reference_number.
//
// @Summary      Update mutable case fields
// @Tags         cases
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        reference_number  path      string             true  "Reference number"
// @Param        body              body      updateCaseRequest  true  "Fields to update; omitted fields are unchanged"
// @Success      200               {object}  domain.Case
// @Failure      404               {object}  map[string]string
// @Router       /v1/cases/{reference_number} [put]
func (h *CaseHandler) Update(c echo.Context) error {
	var req updateCaseRequest
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

	updated, err := h.service.UpdateCase(c.Request().Context(), c.Param("reference_number"), ports.UpdateCaseInput{
		Title:               req.Title,
		Description:         req.Description,
		Priority:            req.Priority,
		AssignedTo:          req.AssignedTo,
		FeeAmount:           req.FeeAmount,
		FeeStatus:           req.FeeStatus,
		Notes:               req.Notes,
		EstimatedCompletion: req.EstimatedCompletion,
		UpdatedBy:           username,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, updated)
}

// Transition handles POST /v1/cases/:reference_number/transition.
//
// @Summary      Move a case to the next lifecycle status
// @Tags         cases
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        reference_number  path      string             true  "Reference number"
// @Param        body              body      transitionRequest  true  "Target status"
// @Success      200               {object}  domain.Case
// @Failure      403               {object}  map[string]string
// @Failure      422               {object}  map[string]string
// @Router       /v1/cases/{reference_number}/transition [post]
func (h *CaseHandler) Transition(c echo.Context) error {
	var req transitionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	username, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	target := domain.CaseStatus(req.Target)
	// Cancelling is an administrator action; other transitions only need
	// the shared transition capability checked on the route.
	if target == domain.StatusCancelled && !domain.HasCapability(role, domain.CapCasesCancel) {
		return domain.ErrForbidden
	}

	updated, err := h.service.Transition(c.Request().Context(), c.Param("reference_number"), target, username)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, updated)
}

// AddNote handles POST /v1/cases/:reference_number/notes.
//
// @Summary      Append a note to the case timeline
// @Tags         cases
// @Accept       json
// @Security     BearerAuth
// @Param        reference_number  path  string          true  "Reference number"
// @Param        body              body  addNoteRequest  true  "Note text"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /v1/cases/{reference_number}/notes [post]
func (h *CaseHandler) AddNote(c echo.Context) error {
	var req addNoteRequest
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

	if err := h.service.AddNote(c.Request().Context(), c.Param("reference_number"), req.Note, username); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// MarkDocumentReceived handles POST /v1/cases/:reference_number/documents/received.
//
// @Summary      Mark a required document as received
// @Tags         cases
// @Accept       json
// @Security     BearerAuth
// @Param        reference_number  path  string               true  "Reference number"
// @Param        body              body  markDocumentRequest  true  "Document name"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /v1/cases/{reference_number}/documents/received [post]
func (h *CaseHandler) MarkDocumentReceived(c echo.Context) error {
	var req markDocumentRequest
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

	if err := h.service.MarkDocumentReceived(c.Request().Context(), c.Param("reference_number"), req.DocumentName, username); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// VerifyDocument handles POST /v1/documents/:id/verify.
//
// @Summary      Verify a received document
// @Tags         cases
// @Security     BearerAuth
// @Param        id  path  string  true  "Document ID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /v1/documents/{id}/verify [post]
func (h *CaseHandler) VerifyDocument(c echo.Context) error {
	username, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.service.VerifyDocument(c.Request().Context(), c.Param("id"), username); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Summary handles GET /v1/dashboard/summary.
//
// @Summary      Case counts by status
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  summaryResponse
// @Router       /v1/dashboard/summary [get]
func (h *CaseHandler) Summary(c echo.Context) error {
	summary, err := h.service.Summary(c.Request().Context())
	if err != nil {
		return err
	}

	byStatus := make(map[string]int64, len(summary.ByStatus))
	for status, n := range summary.ByStatus {
		byStatus[string(status)] = n
	}
	return c.JSON(http.StatusOK, summaryResponse{ByStatus: byStatus, Total: summary.Total})
}
