package domain

import (
	"time"

	"github.com/google/uuid"
)

// MerchantStatus represents the state of a merchant account.
type MerchantStatus string

const (
	MerchantStatusActive      MerchantStatus = "active"
	MerchantStatusSuspended   MerchantStatus = "suspended"
	MerchantStatusDeactivated MerchantStatus = "deactivated"
)

// MerchantAccount is the authenticated caller of every payment operation.
type MerchantAccount struct {
	MerchantID       string         `json:"merchant_id"`
	MerchantName     string         `json:"merchant_name"`
	DefaultConnector *string        `json:"default_connector,omitempty"`
	ReturnURL        *string        `json:"return_url,omitempty"`
	Status           MerchantStatus `json:"status"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

// IsActive returns true if the merchant account is active.
func (m *MerchantAccount) IsActive() bool {
	return m.Status == MerchantStatusActive
}

// ConnectorAuthType describes how decrypted credentials are presented to a connector.
type ConnectorAuthType string

const (
	ConnectorAuthHeaderKey ConnectorAuthType = "header_key"
	ConnectorAuthBodyKey   ConnectorAuthType = "body_key"
)

// MerchantConnectorAccount binds a merchant to one connector with its credentials.
type MerchantConnectorAccount struct {
	ID             uuid.UUID         `json:"id"`
	MerchantID     string            `json:"merchant_id"`
	ConnectorName  string            `json:"connector_name"`
	AuthType       ConnectorAuthType `json:"auth_type"`
	CredentialsEnc string            `json:"-"` // AES-GCM encrypted JSON, never expose
	Disabled       bool              `json:"disabled"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}
