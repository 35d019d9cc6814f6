package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/simanis/notary-system/internal/core/ports"
)

// WizardHandler handles the four-step case creation flow. Drafts live
// server-side so the flow survives page reloads and lost connections.
type WizardHandler struct {
	service ports.WizardService
}

func NewWizardHandler(service ports.WizardService) *WizardHandler {
	return &WizardHandler{service: service}
}

type wizardBasicInfoRequest struct {
	Title         string `json:"title"`
	Description   string `json:"description,omitempty"`
	ServiceTypeID string `json:"service_type_id"`
	CategoryID    string `json:"category_id"`
}

type wizardClientRequest struct {
	ClientID            string     `json:"client_id"`
	Priority            string     `json:"priority,omitempty" validate:"omitempty,oneof=low normal high urgent"`
	FeeAmount           float64    `json:"fee_amount,omitempty" validate:"omitempty,gte=0"`
	EstimatedCompletion *time.Time `json:"estimated_completion_date,omitempty"`
}

type saveStepRequest struct {
	Step      int                     `json:"step" validate:"required,min=1,max=4"`
	BasicInfo *wizardBasicInfoRequest `json:"basic_info,omitempty"`
	Client    *wizardClientRequest    `json:"client,omitempty"`
	Checklist map[string]bool         `json:"checklist,omitempty"`
	Notes     string                  `json:"notes,omitempty"`
}

// Start handles POST /v1/wizard.
//
// @Summary      Start a new creation wizard draft
// @Tags         wizard
// @Produce      json
// @Security     BearerAuth
// @Success      201  {object}  ports.WizardDraft
// @Router       /v1/wizard [post]
func (h *WizardHandler) Start(c echo.Context) error {
	username, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	draft, err := h.service.StartDraft(c.Request().Context(), username)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, draft)
}

// Get handles GET /v1/wizard/:id.
//
// @Summary      Get a wizard draft
// @Tags         wizard
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Draft ID"
// @Success      200  {object}  ports.WizardDraft
// @Failure      404  {object}  map[string]string
// @Router       /v1/wizard/{id} [get]
func (h *WizardHandler) Get(c echo.Context) error {
	draft, err := h.service.GetDraft(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, draft)
}

// SaveStep handles PUT /v1/wizard/:id/steps.
//
// @Summary      Save one wizard step
// @Tags         wizard
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string           true  "Draft ID"
// @Param        body  body      saveStepRequest  true  "Step payload; only the field matching step is read"
// @Success      200   {object}  ports.WizardDraft
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/wizard/{id}/steps [put]
func (h *WizardHandler) SaveStep(c echo.Context) error {
	var req saveStepRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	input := ports.SaveStepInput{Step: req.Step, Checklist: req.Checklist}
	if req.BasicInfo != nil {
		input.BasicInfo = &ports.WizardBasicInfo{
			Title:         req.BasicInfo.Title,
			Description:   req.BasicInfo.Description,
			ServiceTypeID: req.BasicInfo.ServiceTypeID,
			CategoryID:    req.BasicInfo.CategoryID,
		}
	}
	if req.Client != nil {
		input.Client = &ports.WizardClientStep{
			ClientID:            req.Client.ClientID,
			Priority:            req.Client.Priority,
			FeeAmount:           req.Client.FeeAmount,
			EstimatedCompletion: req.Client.EstimatedCompletion,
		}
	}
	if req.Step == ports.WizardStepFinalize {
		input.Finalize = &ports.WizardFinalizeStep{Notes: req.Notes}
	}

	draft, err := h.service.SaveStep(c.Request().Context(), c.Param("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, draft)
}

// Submit handles POST /v1/wizard/:id/submit.
//
// @Summary      Submit the wizard, creating the case
// @Tags         wizard
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Draft ID"
// @Success      201  {object}  createCaseResponse
// @Failure      404  {object}  map[string]string
// @Failure      422  {object}  map[string]string
// @Router       /v1/wizard/{id}/submit [post]
func (h *WizardHandler) Submit(c echo.Context) error {
	result, err := h.service.Submit(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, createCaseResponse{
		ReferenceNumber: result.ReferenceNumber,
		Status:          result.Status,
		CreatedAt:       result.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	})
}

// Discard handles DELETE /v1/wizard/:id.
//
// @Summary      Discard a wizard draft
// @Tags         wizard
// @Security     BearerAuth
// @Param        id  path  string  true  "Draft ID"
// @Success      204
// @Router       /v1/wizard/{id} [delete]
func (h *WizardHandler) Discard(c echo.Context) error {
	if err := h.service.Discard(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
