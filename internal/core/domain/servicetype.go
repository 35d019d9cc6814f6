package domain

import "time"

// ServiceCategoryType separates the notary function from the PPAT
// (land-deed official) function and the syariah practice.
type ServiceCategoryType string

const (
	CategoryNotaris ServiceCategoryType = "notaris"
	CategoryPPAT    ServiceCategoryType = "ppat"
	CategorySyariah ServiceCategoryType = "syariah"
)

// ServiceCategory groups service types for the tabbed workspaces.
type ServiceCategory struct {
	ID          string              `json:"id" bson:"_id,omitempty"`
	Name        string              `json:"name" bson:"name"`
	Type        ServiceCategoryType `json:"type" bson:"type"`
	Description string              `json:"description,omitempty" bson:"description,omitempty"`
	IsActive    bool                `json:"is_active" bson:"is_active"`
	CreatedAt   time.Time           `json:"created_at" bson:"created_at"`
}

// ServiceType is a seeded template for a kind of engagement: which
// documents it needs and which workflow steps it goes through. Read-only
// from the case-creation flow.
type ServiceType struct {
	ID               string              `json:"id" bson:"_id,omitempty"`
	Name             string              `json:"name" bson:"name"`
	Category         ServiceCategoryType `json:"category" bson:"category"`
	Description      string              `json:"description,omitempty" bson:"description,omitempty"`
	DocumentTemplate DocumentTemplate    `json:"document_template" bson:"document_template"`
	WorkflowSteps    []string            `json:"workflow_steps" bson:"workflow_steps"`
	IsActive         bool                `json:"is_active" bson:"is_active"`
	CreatedAt        time.Time           `json:"created_at" bson:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at" bson:"updated_at"`
}
