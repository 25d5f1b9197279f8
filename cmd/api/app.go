package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"payment-router/config"
	httpHandler "payment-router/internal/adapter/http/handler"
	"payment-router/internal/adapter/messaging/kafka"
	"payment-router/internal/adapter/storage/memory"
	pgStorage "payment-router/internal/adapter/storage/postgres"
	redisStorage "payment-router/internal/adapter/storage/redis"
	"payment-router/internal/connector"
	"payment-router/internal/connector/checkout"
	"payment-router/internal/connector/stripe"
	"payment-router/internal/core/domain"
	"payment-router/internal/core/ports"
	"payment-router/internal/payments"
	"payment-router/internal/service"
	"payment-router/internal/telemetry"

	"github.com/rs/zerolog"
)

// repositories is the storage backend selected by storage.driver.
type repositories struct {
	payments  payments.Store
	merchants ports.MerchantRepository
	accounts  ports.MerchantConnectorAccountRepository
	health    []ports.HealthChecker
	memory    *memory.Store
}

// app is the fully wired process. closers run in reverse order.
type app struct {
	handler http.Handler
	tokens  *service.JWTTokenService
	closers []func(context.Context) error
}

func newApp(ctx context.Context, cfg *config.Config, log zerolog.Logger) (_ *app, err error) {
	a := &app{}
	defer func() {
		if err != nil {
			a.close(context.WithoutCancel(ctx), log)
		}
	}()

	tracing, err := telemetry.InitTracing(ctx, cfg.Telemetry, log)
	if err != nil {
		return nil, fmt.Errorf("initializing tracing: %w", err)
	}
	a.onClose(tracing.Shutdown)
	metrics := telemetry.NewMetrics()

	encSvc, err := service.NewAESEncryptionService(cfg.AES.Key)
	if err != nil {
		return nil, fmt.Errorf("initializing encryption service: %w", err)
	}
	a.tokens = service.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.Issuer)

	repos, err := a.openStorage(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	if repos.memory != nil && cfg.Storage.SeedMerchant != "" {
		if err := seedMerchant(repos.memory, cfg, encSvc); err != nil {
			return nil, fmt.Errorf("seeding merchant: %w", err)
		}
		log.Info().Str("merchant_id", cfg.Storage.SeedMerchant).Msg("Seeded in-memory merchant")
	}

	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}
	a.onClose(func(context.Context) error { return rdb.Close() })
	repos.health = append(repos.health, redisStorage.NewHealthCheck(rdb))

	var events ports.EventPublisher
	if cfg.Kafka.Enabled {
		publisher := kafka.NewPublisher(kafka.NewWriter(cfg.Kafka))
		a.onClose(func(context.Context) error { return publisher.Close() })
		events = publisher
		log.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.Topic).Msg("Kafka publisher enabled")
	}

	registry := connector.NewRegistry()
	for name, cc := range cfg.Connectors {
		switch name {
		case stripe.Name:
			stripe.Register(registry, stripe.Config{BaseURL: cc.BaseURL, Timeout: cc.Timeout})
		case checkout.Name:
			checkout.Register(registry, checkout.Config{BaseURL: cc.BaseURL, Timeout: cc.Timeout})
		default:
			log.Warn().Str("connector", name).Msg("Unknown connector in config, skipping")
			continue
		}
		log.Info().Str("connector", name).Str("base_url", cc.BaseURL).Msg("Connector registered")
	}

	core := payments.NewCore(payments.Deps{
		Store:      repos.payments,
		Accounts:   repos.accounts,
		Encryption: encSvc,
		Registry:   registry,
		Executor:   connector.NewExecutor(&http.Client{}, cfg.Router.ConnectorTimeout, metrics, tracing.Tracer, log),
		Events:     events,
		Observer:   metrics,
	}, log)
	paymentSvc := service.NewPaymentService(core, redisStorage.NewPaymentLock(rdb), cfg.Router.LockTTL, log)

	a.handler = httpHandler.SetupRouter(httpHandler.RouterDeps{
		PaymentSvc:     paymentSvc,
		MerchantRepo:   repos.merchants,
		TokenSvc:       a.tokens,
		RateLimiter:    redisStorage.NewRateLimitStore(rdb),
		RateLimit:      cfg.Router.RateLimit,
		HealthCheckers: repos.health,
		Metrics:        metrics.Handler(),
		Tracer:         tracing.Tracer,
		Logger:         log,
	})
	return a, nil
}

func (a *app) openStorage(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*repositories, error) {
	switch cfg.Storage.Driver {
	case "memory":
		store := memory.NewStore()
		log.Warn().Msg("Using in-memory storage, data is lost on restart")
		return &repositories{
			payments:  store.PaymentStore(),
			merchants: store.Merchants,
			accounts:  store.ConnectorAccounts,
			memory:    store,
		}, nil
	case "postgres", "":
		pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
		if err != nil {
			return nil, fmt.Errorf("connecting to postgres: %w", err)
		}
		a.onClose(func(context.Context) error { pool.Close(); return nil })
		return &repositories{
			payments: payments.Store{
				Intents:            pgStorage.NewIntentRepo(pool),
				Attempts:           pgStorage.NewAttemptRepo(pool),
				ConnectorResponses: pgStorage.NewConnectorResponseRepo(pool),
				Addresses:          pgStorage.NewAddressRepo(pool),
			},
			merchants: pgStorage.NewMerchantRepo(pool),
			accounts:  pgStorage.NewConnectorAccountRepo(pool),
			health:    []ports.HealthChecker{pgStorage.NewHealthCheck(pool)},
		}, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

// seedMerchant creates the configured merchant with an account for every
// connector that has an api_key. Stripe becomes the default connector
// when it is among them.
func seedMerchant(store *memory.Store, cfg *config.Config, enc ports.EncryptionService) error {
	var defaultConnector *string
	for name, cc := range cfg.Connectors {
		if cc.APIKey == "" {
			continue
		}
		creds, err := json.Marshal(map[string]string{"api_key": cc.APIKey, "key1": cc.Key1})
		if err != nil {
			return err
		}
		credsEnc, err := enc.Encrypt(string(creds))
		if err != nil {
			return fmt.Errorf("encrypting %s credentials: %w", name, err)
		}
		authType := domain.ConnectorAuthHeaderKey
		if cc.Key1 != "" {
			authType = domain.ConnectorAuthBodyKey
		}
		store.ConnectorAccounts.Put(domain.MerchantConnectorAccount{
			MerchantID:     cfg.Storage.SeedMerchant,
			ConnectorName:  name,
			AuthType:       authType,
			CredentialsEnc: credsEnc,
		})
		if defaultConnector == nil || name == stripe.Name {
			n := name
			defaultConnector = &n
		}
	}

	store.Merchants.Put(domain.MerchantAccount{
		MerchantID:       cfg.Storage.SeedMerchant,
		MerchantName:     cfg.Storage.SeedMerchant,
		DefaultConnector: defaultConnector,
		Status:           domain.MerchantStatusActive,
	})
	return nil
}

func (a *app) onClose(fn func(context.Context) error) {
	a.closers = append(a.closers, fn)
}

func (a *app) close(ctx context.Context, log zerolog.Logger) {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			log.Error().Err(err).Msg("Shutdown step failed")
		}
	}
	a.closers = nil
}
