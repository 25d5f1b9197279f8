package payments

import (
	"context"
	"encoding/json"
	"errors"

	"payment-router/internal/connector"
	"payment-router/internal/core/domain"
	"payment-router/pkg/apperror"
)

// credentials is the decrypted payload of a merchant connector account.
type credentials struct {
	APIKey string `json:"api_key"`
	Key1   string `json:"key1,omitempty"`
}

// DecideFlows performs at most one connector call for record and merges the
// outcome into data. The working state is returned on every path. A failed
// call yields a *connector.Error that callers treat as non-fatal.
func DecideFlows[Req any](ctx context.Context, c *Core, record connector.RouterData[Req], connectorName string, customer *domain.CustomerDetails, data *PaymentData, action connector.CallAction) (connector.RouterData[Req], *PaymentData, error) {
	if action == connector.Skip {
		data.Outcome = ConnectorOutcome{Kind: OutcomeSkipped, Connector: connectorName}
		return record, data, nil
	}

	result, err := decideFlow(ctx, c, record, connectorName, action)
	if err != nil {
		var cerr *connector.Error
		if !errors.As(err, &cerr) {
			return record, data, err
		}
		data.Outcome = ConnectorOutcome{Kind: OutcomeFailure, Connector: connectorName, Err: cerr}
		return record, data, cerr
	}

	data.Outcome = ConnectorOutcome{Kind: OutcomeSuccess, Connector: connectorName, Response: result.Response}
	return result, data, nil
}

// decideFlow resolves the strategy for (connector, flow), loads the merchant's
// credentials and runs the call.
func decideFlow[Req any](ctx context.Context, c *Core, record connector.RouterData[Req], connectorName string, action connector.CallAction) (connector.RouterData[Req], error) {
	integ, err := connector.Lookup[Req](c.registry, connectorName, record.Flow)
	switch {
	case errors.Is(err, connector.ErrUnknownConnector):
		return record, apperror.ErrConnectorNotConfigured(connectorName)
	case err != nil:
		return record, apperror.ErrFlowNotSupported(connectorName, string(record.Flow))
	}

	auth, err := c.resolveAuth(ctx, record.MerchantID, connectorName)
	if err != nil {
		return record, err
	}
	return connector.Execute(ctx, c.executor, integ, record, auth, action)
}

func (c *Core) resolveAuth(ctx context.Context, merchantID, connectorName string) (connector.Auth, error) {
	mca, err := c.accounts.Find(ctx, merchantID, connectorName)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return connector.Auth{}, apperror.ErrConnectorNotConfigured(connectorName)
		}
		return connector.Auth{}, apperror.ErrDatabaseError(err)
	}
	if mca.Disabled {
		return connector.Auth{}, apperror.ErrConnectorNotConfigured(connectorName)
	}

	plain, err := c.enc.Decrypt(mca.CredentialsEnc)
	if err != nil {
		return connector.Auth{}, apperror.ErrEncryptionFailure(err)
	}
	var creds credentials
	if err := json.Unmarshal([]byte(plain), &creds); err != nil {
		return connector.Auth{}, apperror.ErrEncryptionFailure(err)
	}
	return connector.Auth{Type: mca.AuthType, APIKey: creds.APIKey, Key1: creds.Key1}, nil
}
