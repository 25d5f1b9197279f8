// Package memory provides in-process repositories for local runs and tests.
// Every repository hands out copies; callers never alias stored records.
package memory

import (
	"context"
	"fmt"
	"sync"

	"payment-router/internal/core/domain"
	"payment-router/internal/core/ports"
)

var (
	_ ports.PaymentIntentRepository            = (*IntentRepo)(nil)
	_ ports.PaymentAttemptRepository           = (*AttemptRepo)(nil)
	_ ports.ConnectorResponseRepository        = (*ConnectorResponseRepo)(nil)
	_ ports.AddressRepository                  = (*AddressRepo)(nil)
	_ ports.MerchantRepository                 = (*MerchantRepo)(nil)
	_ ports.MerchantConnectorAccountRepository = (*ConnectorAccountRepo)(nil)
)

type paymentKey struct {
	paymentID  string
	merchantID string
}

// --- Payment intents ---

type IntentRepo struct {
	mu      sync.RWMutex
	intents map[paymentKey]domain.PaymentIntent
}

func NewIntentRepo() *IntentRepo {
	return &IntentRepo{intents: make(map[paymentKey]domain.PaymentIntent)}
}

func (r *IntentRepo) Insert(_ context.Context, intent *domain.PaymentIntent) (*domain.PaymentIntent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := paymentKey{intent.PaymentID, intent.MerchantID}
	if _, ok := r.intents[k]; ok {
		return nil, fmt.Errorf("payment intent %s: %w", intent.PaymentID, domain.ErrDuplicate)
	}
	r.intents[k] = *intent
	out := *intent
	return &out, nil
}

func (r *IntentRepo) FindByPaymentIDMerchantID(_ context.Context, paymentID, merchantID string) (*domain.PaymentIntent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	intent, ok := r.intents[paymentKey{paymentID, merchantID}]
	if !ok {
		return nil, fmt.Errorf("payment intent %s: %w", paymentID, domain.ErrNotFound)
	}
	return &intent, nil
}

func (r *IntentRepo) Update(_ context.Context, intent *domain.PaymentIntent, upd domain.IntentUpdate) (*domain.PaymentIntent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := paymentKey{intent.PaymentID, intent.MerchantID}
	stored, ok := r.intents[k]
	if !ok {
		return nil, fmt.Errorf("payment intent %s: %w", intent.PaymentID, domain.ErrNotFound)
	}
	upd.Apply(&stored)
	stored.ModifiedAt = now()
	r.intents[k] = stored
	return &stored, nil
}

// --- Payment attempts ---

type AttemptRepo struct {
	mu       sync.RWMutex
	attempts map[paymentKey][]domain.PaymentAttempt // oldest first
}

func NewAttemptRepo() *AttemptRepo {
	return &AttemptRepo{attempts: make(map[paymentKey][]domain.PaymentAttempt)}
}

func (r *AttemptRepo) Insert(_ context.Context, attempt *domain.PaymentAttempt) (*domain.PaymentAttempt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := paymentKey{attempt.PaymentID, attempt.MerchantID}
	for _, a := range r.attempts[k] {
		if a.AttemptID == attempt.AttemptID {
			return nil, fmt.Errorf("payment attempt %s: %w", attempt.AttemptID, domain.ErrDuplicate)
		}
	}
	r.attempts[k] = append(r.attempts[k], *attempt)
	out := *attempt
	return &out, nil
}

func (r *AttemptRepo) FindByPaymentIDMerchantID(_ context.Context, paymentID, merchantID string) (*domain.PaymentAttempt, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := r.attempts[paymentKey{paymentID, merchantID}]
	if len(list) == 0 {
		return nil, fmt.Errorf("payment attempt for %s: %w", paymentID, domain.ErrNotFound)
	}
	out := list[len(list)-1]
	return &out, nil
}

func (r *AttemptRepo) FindByConnectorTransactionID(_ context.Context, merchantID, connectorTxnID string) (*domain.PaymentAttempt, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for k, list := range r.attempts {
		if k.merchantID != merchantID {
			continue
		}
		for _, a := range list {
			if a.ConnectorTransactionID != nil && *a.ConnectorTransactionID == connectorTxnID {
				out := a
				return &out, nil
			}
		}
	}
	return nil, fmt.Errorf("payment attempt with connector txn %s: %w", connectorTxnID, domain.ErrNotFound)
}

func (r *AttemptRepo) Update(_ context.Context, attempt *domain.PaymentAttempt, upd domain.AttemptUpdate) (*domain.PaymentAttempt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := paymentKey{attempt.PaymentID, attempt.MerchantID}
	list := r.attempts[k]
	for i := range list {
		if list[i].AttemptID == attempt.AttemptID {
			upd.Apply(&list[i])
			list[i].ModifiedAt = now()
			out := list[i]
			return &out, nil
		}
	}
	return nil, fmt.Errorf("payment attempt %s: %w", attempt.AttemptID, domain.ErrNotFound)
}

// --- Connector responses ---

type responseKey struct {
	paymentKey
	txnID string
}

type ConnectorResponseRepo struct {
	mu        sync.RWMutex
	responses map[responseKey]domain.ConnectorResponse
}

func NewConnectorResponseRepo() *ConnectorResponseRepo {
	return &ConnectorResponseRepo{responses: make(map[responseKey]domain.ConnectorResponse)}
}

func (r *ConnectorResponseRepo) Insert(_ context.Context, resp *domain.ConnectorResponse) (*domain.ConnectorResponse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := responseKey{paymentKey{resp.PaymentID, resp.MerchantID}, resp.TxnID}
	if _, ok := r.responses[k]; ok {
		return nil, fmt.Errorf("connector response %s/%s: %w", resp.PaymentID, resp.TxnID, domain.ErrDuplicate)
	}
	r.responses[k] = *resp
	out := *resp
	return &out, nil
}

func (r *ConnectorResponseRepo) Find(_ context.Context, paymentID, merchantID, txnID string) (*domain.ConnectorResponse, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	resp, ok := r.responses[responseKey{paymentKey{paymentID, merchantID}, txnID}]
	if !ok {
		return nil, fmt.Errorf("connector response %s/%s: %w", paymentID, txnID, domain.ErrNotFound)
	}
	return &resp, nil
}

func (r *ConnectorResponseRepo) Upsert(_ context.Context, resp *domain.ConnectorResponse) (*domain.ConnectorResponse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := responseKey{paymentKey{resp.PaymentID, resp.MerchantID}, resp.TxnID}
	stored := *resp
	if prev, ok := r.responses[k]; ok {
		stored.CreatedAt = prev.CreatedAt
	}
	r.responses[k] = stored
	return &stored, nil
}

// --- Addresses ---

type AddressRepo struct {
	mu        sync.RWMutex
	addresses map[string]domain.Address
}

func NewAddressRepo() *AddressRepo {
	return &AddressRepo{addresses: make(map[string]domain.Address)}
}

func (r *AddressRepo) Insert(_ context.Context, addr *domain.Address) (*domain.Address, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.addresses[addr.AddressID]; ok {
		return nil, fmt.Errorf("address %s: %w", addr.AddressID, domain.ErrDuplicate)
	}
	r.addresses[addr.AddressID] = *addr
	out := *addr
	return &out, nil
}

func (r *AddressRepo) FindByID(_ context.Context, addressID string) (*domain.Address, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	addr, ok := r.addresses[addressID]
	if !ok {
		return nil, fmt.Errorf("address %s: %w", addressID, domain.ErrNotFound)
	}
	return &addr, nil
}

func (r *AddressRepo) Update(_ context.Context, addr *domain.Address, upd domain.AddressUpdate) (*domain.Address, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.addresses[addr.AddressID]
	if !ok {
		return nil, fmt.Errorf("address %s: %w", addr.AddressID, domain.ErrNotFound)
	}
	upd.Apply(&stored)
	stored.ModifiedAt = now()
	r.addresses[addr.AddressID] = stored
	return &stored, nil
}

// --- Merchants ---

type MerchantRepo struct {
	mu        sync.RWMutex
	merchants map[string]domain.MerchantAccount
}

func NewMerchantRepo() *MerchantRepo {
	return &MerchantRepo{merchants: make(map[string]domain.MerchantAccount)}
}

// Put stores or replaces a merchant account.
func (r *MerchantRepo) Put(m domain.MerchantAccount) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.merchants[m.MerchantID] = m
}

func (r *MerchantRepo) GetByID(_ context.Context, merchantID string) (*domain.MerchantAccount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.merchants[merchantID]
	if !ok {
		return nil, fmt.Errorf("merchant %s: %w", merchantID, domain.ErrNotFound)
	}
	return &m, nil
}

// --- Merchant connector accounts ---

type ConnectorAccountRepo struct {
	mu       sync.RWMutex
	accounts map[[2]string]domain.MerchantConnectorAccount
}

func NewConnectorAccountRepo() *ConnectorAccountRepo {
	return &ConnectorAccountRepo{accounts: make(map[[2]string]domain.MerchantConnectorAccount)}
}

// Put stores or replaces the account for (merchant, connector).
func (r *ConnectorAccountRepo) Put(a domain.MerchantConnectorAccount) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.accounts[[2]string{a.MerchantID, a.ConnectorName}] = a
}

func (r *ConnectorAccountRepo) Find(_ context.Context, merchantID, connectorName string) (*domain.MerchantConnectorAccount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.accounts[[2]string{merchantID, connectorName}]
	if !ok {
		return nil, fmt.Errorf("connector account %s/%s: %w", merchantID, connectorName, domain.ErrNotFound)
	}
	return &a, nil
}
