package domain

import (
	"errors"
	"time"
)

// DocumentType tags whether a case document is still outstanding or has
// been handed in by the client.
type DocumentType string

const (
	DocumentRequired DocumentType = "required"
	DocumentReceived DocumentType = "received"
)

var ErrDocumentNotFound = errors.New("document not found")

// CaseDocument is one entry of a case's document checklist.
type CaseDocument struct {
	ID           string       `json:"id" bson:"_id,omitempty"`
	CaseID       string       `json:"case_id" bson:"case_id"`
	DocumentName string       `json:"document_name" bson:"document_name"`
	DocumentType DocumentType `json:"document_type" bson:"document_type"`
	FileURL      string       `json:"file_url,omitempty" bson:"file_url,omitempty"`
	Notes        string       `json:"notes,omitempty" bson:"notes,omitempty"`
	UploadedAt   *time.Time   `json:"uploaded_at,omitempty" bson:"uploaded_at,omitempty"`
	VerifiedAt   *time.Time   `json:"verified_at,omitempty" bson:"verified_at,omitempty"`
	VerifiedBy   string       `json:"verified_by,omitempty" bson:"verified_by,omitempty"`
	CreatedAt    time.Time    `json:"created_at" bson:"created_at"`
}

var ErrVerificationNotFound = errors.New("legality verification not found")

// LegalityVerification records one legality check performed on a case.
type LegalityVerification struct {
	ID               string     `json:"id" bson:"_id,omitempty"`
	CaseID           string     `json:"case_id" bson:"case_id"`
	VerificationType string     `json:"verification_type" bson:"verification_type"`
	Status           string     `json:"status" bson:"status"`
	Details          string     `json:"details,omitempty" bson:"details,omitempty"`
	VerifiedBy       string     `json:"verified_by,omitempty" bson:"verified_by,omitempty"`
	VerifiedAt       *time.Time `json:"verified_at,omitempty" bson:"verified_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at" bson:"created_at"`
}

// DeedDraftStatus is the review state of a deed draft.
type DeedDraftStatus string

const (
	DeedDraftDrafting DeedDraftStatus = "drafting"
	DeedDraftReview   DeedDraftStatus = "review"
	DeedDraftApproved DeedDraftStatus = "approved"
	DeedDraftSigned   DeedDraftStatus = "signed"
)

var ErrDeedDraftNotFound = errors.New("deed draft not found")

// DeedDraft is a versioned draft of the deed text for a case.
type DeedDraft struct {
	ID                 string          `json:"id" bson:"_id,omitempty"`
	CaseID             string          `json:"case_id" bson:"case_id"`
	DeedNumber         string          `json:"deed_number,omitempty" bson:"deed_number,omitempty"`
	Version            int             `json:"version" bson:"version"`
	DraftContent       string          `json:"draft_content,omitempty" bson:"draft_content,omitempty"`
	Status             DeedDraftStatus `json:"status" bson:"status"`
	CreatedBy          string          `json:"created_by" bson:"created_by"`
	ReviewedBy         string          `json:"reviewed_by,omitempty" bson:"reviewed_by,omitempty"`
	ApprovedBy         string          `json:"approved_by,omitempty" bson:"approved_by,omitempty"`
	SignatureScheduled *time.Time      `json:"signature_scheduled_at,omitempty" bson:"signature_scheduled_at,omitempty"`
	SignedAt           *time.Time      `json:"signed_at,omitempty" bson:"signed_at,omitempty"`
	CreatedAt          time.Time       `json:"created_at" bson:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at" bson:"updated_at"`
}
