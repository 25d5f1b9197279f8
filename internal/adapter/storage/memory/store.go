package memory

import (
	"time"

	"payment-router/internal/payments"
)

// Store bundles a full set of in-memory repositories.
type Store struct {
	Intents            *IntentRepo
	Attempts           *AttemptRepo
	ConnectorResponses *ConnectorResponseRepo
	Addresses          *AddressRepo
	Merchants          *MerchantRepo
	ConnectorAccounts  *ConnectorAccountRepo
}

func NewStore() *Store {
	return &Store{
		Intents:            NewIntentRepo(),
		Attempts:           NewAttemptRepo(),
		ConnectorResponses: NewConnectorResponseRepo(),
		Addresses:          NewAddressRepo(),
		Merchants:          NewMerchantRepo(),
		ConnectorAccounts:  NewConnectorAccountRepo(),
	}
}

// PaymentStore returns the repositories the payments core writes to.
func (s *Store) PaymentStore() payments.Store {
	return payments.Store{
		Intents:            s.Intents,
		Attempts:           s.Attempts,
		ConnectorResponses: s.ConnectorResponses,
		Addresses:          s.Addresses,
	}
}

func now() time.Time { return time.Now().UTC() }
