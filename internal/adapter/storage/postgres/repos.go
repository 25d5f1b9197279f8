package postgres

import "payment-router/internal/core/ports"

var (
	_ ports.PaymentIntentRepository            = (*IntentRepo)(nil)
	_ ports.PaymentAttemptRepository           = (*AttemptRepo)(nil)
	_ ports.ConnectorResponseRepository        = (*ConnectorResponseRepo)(nil)
	_ ports.AddressRepository                  = (*AddressRepo)(nil)
	_ ports.MerchantRepository                 = (*MerchantRepo)(nil)
	_ ports.MerchantConnectorAccountRepository = (*ConnectorAccountRepo)(nil)
	_ ports.HealthChecker                      = (*HealthCheck)(nil)
)
