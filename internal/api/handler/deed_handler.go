package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/simanis/notary-system/internal/core/ports"
)

// DeedHandler handles deed drafting and legality verification.
type DeedHandler struct {
	service ports.DeedService
}

func NewDeedHandler(service ports.DeedService) *DeedHandler {
	return &DeedHandler{service: service}
}

type createDeedDraftRequest struct {
	DeedNumber string `json:"deed_number,omitempty"`
	Content    string `json:"content,omitempty"`
}

type updateDeedDraftRequest struct {
	Content            *string    `json:"content,omitempty"`
	Status             *string    `json:"status,omitempty" validate:"omitempty,oneof=drafting review approved signed"`
	DeedNumber         *string    `json:"deed_number,omitempty"`
	ReviewedBy         *string    `json:"reviewed_by,omitempty"`
	ApprovedBy         *string    `json:"approved_by,omitempty"`
	SignatureScheduled *time.Time `json:"signature_scheduled_at,omitempty"`
	SignedAt           *time.Time `json:"signed_at,omitempty"`
}

type recordVerificationRequest struct {
	VerificationType string `json:"verification_type" validate:"required"`
	Status           string `json:"status"            validate:"required"`
	Details          string `json:"details,omitempty"`
}

// CreateDraft handles POST /v1/cases/:reference_number/deed-drafts.
//
// @Summary      Open a new deed draft version for a case
// @Tags         deeds
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        reference_number  path      string                  true  "Case reference number"
// @Param        body              body      createDeedDraftRequest  true  "Draft content"
// @Success      201               {object}  domain.DeedDraft
// @Failure      404               {object}  map[string]string
// @Router       /v1/cases/{reference_number}/deed-drafts [post]
func (h *DeedHandler) CreateDraft(c echo.Context) error {
	var req createDeedDraftRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}

	username, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	draft, err := h.service.CreateDraft(c.Request().Context(), ports.CreateDeedDraftInput{
		CaseID:     c.Param("reference_number"),
		DeedNumber: req.DeedNumber,
		Content:    req.Content,
		CreatedBy:  username,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, draft)
}

// ListDrafts handles GET /v1/cases/:reference_number/deed-drafts.
//
// @Summary      List deed drafts of a case, newest version first
// @Tags         deeds
// @Produce      json
// @Security     BearerAuth
// @Param        reference_number  path     string  true  "Case reference number"
// @Success      200               {array}  domain.DeedDraft
// @Router       /v1/cases/{reference_number}/deed-drafts [get]
func (h *DeedHandler) ListDrafts(c echo.Context) error {
	drafts, err := h.service.ListDrafts(c.Request().Context(), c.Param("reference_number"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, drafts)
}

// UpdateDraft handles PUT /v1/deed-drafts/:id.
//
// @Summary      Update a deed draft
// @Tags         deeds
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                  true  "Deed draft ID"
// @Param        body  body      updateDeedDraftRequest  true  "Fields to update"
// @Success      200   {object}  domain.DeedDraft
// @Failure      404   {object}  map[string]string
// @Router       /v1/deed-drafts/{id} [put]
func (h *DeedHandler) UpdateDraft(c echo.Context) error {
	var req updateDeedDraftRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	draft, err := h.service.UpdateDraft(c.Request().Context(), c.Param("id"), ports.UpdateDeedDraftInput{
		Content:            req.Content,
		Status:             req.Status,
		DeedNumber:         req.DeedNumber,
		ReviewedBy:         req.ReviewedBy,
		ApprovedBy:         req.ApprovedBy,
		SignatureScheduled: req.SignatureScheduled,
		SignedAt:           req.SignedAt,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, draft)
}

// RecordVerification handles POST /v1/cases/:reference_number/verifications.
//
// @Summary      Record a legality verification on a case
// @Tags         deeds
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        reference_number  path      string                     true  "Case reference number"
// @Param        body              body      recordVerificationRequest  true  "Verification result"
// @Success      201               {object}  domain.LegalityVerification
// @Failure      404               {object}  map[string]string
// @Router       /v1/cases/{reference_number}/verifications [post]
func (h *DeedHandler) RecordVerification(c echo.Context) error {
	var req recordVerificationRequest
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

	v, err := h.service.RecordVerification(c.Request().Context(), ports.RecordVerificationInput{
		CaseID:           c.Param("reference_number"),
		VerificationType: req.VerificationType,
		Status:           req.Status,
		Details:          req.Details,
		VerifiedBy:       username,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, v)
}

// ListVerifications handles GET /v1/cases/:reference_number/verifications.
//
// @Summary      List legality verifications of a case
// @Tags         deeds
// @Produce      json
// @Security     BearerAuth
// @Param        reference_number  path     string  true  "Case reference number"
// @Success      200               {array}  domain.LegalityVerification
// @Router       /v1/cases/{reference_number}/verifications [get]
func (h *DeedHandler) ListVerifications(c echo.Context) error {
	checks, err := h.service.ListVerifications(c.Request().Context(), c.Param("reference_number"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, checks)
}
