package handler

import (
	"time"

	"github.com/simanis/notary-system/internal/core/domain"
	"github.com/simanis/notary-system/internal/core/ports"
)

// --- Request types ---

type createCaseRequest struct {
	Title               string     `json:"title"           validate:"required"`
	Description         string     `json:"description,omitempty"`
	ClientID            string     `json:"client_id"       validate:"required"`
	ServiceTypeID       string     `json:"service_type_id" validate:"required"`
	CategoryID          string     `json:"category_id"     validate:"required"`
	Priority            string     `json:"priority,omitempty" validate:"omitempty,oneof=low normal high urgent"`
	FeeAmount           float64    `json:"fee_amount,omitempty" validate:"omitempty,gte=0"`
	Notes               string     `json:"notes,omitempty"`
	EstimatedCompletion *time.Time `json:"estimated_completion_date,omitempty"`
	RequiredDocuments   []string   `json:"required_documents,omitempty"`
}

type updateCaseRequest struct {
	Title               *string    `json:"title,omitempty"`
	Description         *string    `json:"description,omitempty"`
	Priority            *string    `json:"priority,omitempty" validate:"omitempty,oneof=low normal high urgent"`
	AssignedTo          *string    `json:"assigned_to,omitempty"`
	FeeAmount           *float64   `json:"fee_amount,omitempty" validate:"omitempty,gte=0"`
	FeeStatus           *string    `json:"fee_status,omitempty" validate:"omitempty,oneof=unpaid partial paid"`
	Notes               *string    `json:"notes,omitempty"`
	EstimatedCompletion *time.Time `json:"estimated_completion_date,omitempty"`
}

type transitionRequest struct {
	Target string `json:"target" validate:"required,oneof=in_progress review completed cancelled"`
}

type addNoteRequest struct {
	Note string `json:"note" validate:"required"`
}

type markDocumentRequest struct {
	DocumentName string `json:"document_name" validate:"required"`
}

// --- Response types ---

type createCaseResponse struct {
	ReferenceNumber string `json:"reference_number"`
	Status          string `json:"status"`
	CreatedAt       string `json:"created_at"`
}

type caseDetailResponse struct {
	Case             *domain.Case         `json:"case"`
	Documents        []ports.DocumentItem `json:"documents"`
	Timeline         []ports.TimelineItem `json:"timeline"`
	DocumentProgress float64              `json:"document_progress"`
}

type listCasesResponse struct {
	Items []*domain.Case `json:"items"`
	Meta  listMeta       `json:"meta"`
}

type summaryResponse struct {
	ByStatus map[string]int64 `json:"by_status"`
	Total    int64            `json:"total"`
}
