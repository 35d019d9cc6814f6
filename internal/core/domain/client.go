package domain

import (
	"errors"
	"time"
)

// ClientType discriminates the two client variants.
type ClientType string

const (
	ClientIndividual ClientType = "individual"
	ClientCorporate  ClientType = "corporate"
)

var (
	ErrInvalidClientType = errors.New("invalid client type")
	// ErrMixedClientFields is returned when a payload carries fields of
	// the variant not selected by client_type.
	ErrMixedClientFields = errors.New("client payload mixes individual and corporate fields")
)

// IndividualDetails holds the identity fields of a natural-person client.
type IndividualDetails struct {
	NIK                    string `json:"nik" bson:"nik"`
	NPWP                   string `json:"npwp,omitempty" bson:"npwp,omitempty"`
	KTPURL                 string `json:"ktp_url,omitempty" bson:"ktp_url,omitempty"`
	NPWPURL                string `json:"npwp_url,omitempty" bson:"npwp_url,omitempty"`
	KKURL                  string `json:"kk_url,omitempty" bson:"kk_url,omitempty"`
	MarriageCertificateURL string `json:"marriage_certificate_url,omitempty" bson:"marriage_certificate_url,omitempty"`
}

// CorporateDetails holds the registration fields of a legal-entity client.
type CorporateDetails struct {
	CompanyName         string   `json:"company_name" bson:"company_name"`
	CompanyNPWP         string   `json:"company_npwp,omitempty" bson:"company_npwp,omitempty"`
	CompanyAddress      string   `json:"company_address,omitempty" bson:"company_address,omitempty"`
	CompanyPhone        string   `json:"company_phone,omitempty" bson:"company_phone,omitempty"`
	FoundingDate        string   `json:"company_founding_date,omitempty" bson:"company_founding_date,omitempty"`
	RegistrationNumber  string   `json:"company_registration_number,omitempty" bson:"company_registration_number,omitempty"`
	SKKemenkumham       string   `json:"company_sk_kemenkumham,omitempty" bson:"company_sk_kemenkumham,omitempty"`
	NIB                 string   `json:"company_nib,omitempty" bson:"company_nib,omitempty"`
	DirectorKTP         string   `json:"director_ktp,omitempty" bson:"director_ktp,omitempty"`
	DirectorNPWP        string   `json:"director_npwp,omitempty" bson:"director_npwp,omitempty"`
	CommissionerDetails string   `json:"commissioner_details,omitempty" bson:"commissioner_details,omitempty"`
	RUPSApproval        string   `json:"rups_approval_details,omitempty" bson:"rups_approval_details,omitempty"`
	DocumentURLs        []string `json:"corporate_documents_url,omitempty" bson:"corporate_documents_url,omitempty"`
}

// Client is a customer of the office, either a natural person or a legal
// entity. Exactly one of Individual/Corporate is populated, discriminated
// by ClientType.
type Client struct {
	ID         string             `json:"id" bson:"_id,omitempty"`
	ClientType ClientType         `json:"client_type" bson:"client_type"`
	FullName   string             `json:"full_name" bson:"full_name"`
	Email      string             `json:"email,omitempty" bson:"email,omitempty"`
	Phone      string             `json:"phone,omitempty" bson:"phone,omitempty"`
	Address    string             `json:"address,omitempty" bson:"address,omitempty"`
	Individual *IndividualDetails `json:"individual,omitempty" bson:"individual,omitempty"`
	Corporate  *CorporateDetails  `json:"corporate,omitempty" bson:"corporate,omitempty"`
	CreatedBy  string             `json:"created_by" bson:"created_by"`
	CreatedAt  time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at" bson:"updated_at"`
}

// Validate enforces the tagged-union invariant: the type tag must be one
// of the two known values and only the matching field group may be set.
func (c *Client) Validate() error {
	switch c.ClientType {
	case ClientIndividual:
		if c.Corporate != nil {
			return ErrMixedClientFields
		}
		if c.Individual == nil {
			c.Individual = &IndividualDetails{}
		}
	case ClientCorporate:
		if c.Individual != nil {
			return ErrMixedClientFields
		}
		if c.Corporate == nil {
			return ErrMixedClientFields
		}
	default:
		return ErrInvalidClientType
	}
	return nil
}

// DisplayName returns the company name for corporate clients and the
// personal name otherwise, matching how lists render clients.
func (c *Client) DisplayName() string {
	if c.ClientType == ClientCorporate && c.Corporate != nil && c.Corporate.CompanyName != "" {
		return c.Corporate.CompanyName
	}
	return c.FullName
}
