package cmd

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"concert-pass/config"
	"concert-pass/handlers"
	"concert-pass/internal/api"
	"concert-pass/internal/telemetry"
	"concert-pass/monitoring"
	"concert-pass/security"
	"concert-pass/services"
	"concert-pass/utils"

	pubnub "github.com/pubnub/go/v7"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const serviceName = "concert-pass"

// Start wires the storefront from cfg and serves until SIGINT or SIGTERM.
func Start(cfg *config.Config) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.IsProduction() {
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))
	}

	shutdownTracing := telemetry.Setup(ctx, serviceName, cfg.Environment, cfg.OTLPEndpoint, cfg.OTLPInsecure)
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			log.Printf("Error shutting down tracing: %v", err)
		}
	}()

	var (
		sessionStore services.SessionStore
		draftStore   services.DraftStore
		redisClient  *redis.Client
		healthCheck  func(context.Context) error
	)
	if cfg.RedisURL != "" {
		var err error
		redisClient, err = utils.NewRedisClient(cfg.RedisURL)
		if err != nil {
			return err
		}
		defer redisClient.Close()

		sessionStore = services.NewRedisSessionStore(redisClient)
		draftStore = services.NewRedisDraftStore(redisClient)
		healthCheck = func(ctx context.Context) error {
			return utils.RedisHealthCheck(ctx, redisClient)
		}
		if cfg.EnableMetrics {
			monitoring.NewMonitor(ctx, redisClient, services.SessionKeyPattern)
		}
	} else {
		log.Println("REDIS_URL not set, keeping sessions and drafts in memory")
		sessionStore = services.NewMemorySessionStore()
		draftStore = services.NewMemoryDraftStore()
	}

	backend := api.NewClient(api.Config{
		BaseURL: cfg.BackendURL,
		Timeout: cfg.BackendTimeout,
		Breaker: utils.BreakerSettings{
			MaxRequests:  uint32(cfg.BreakerMaxRequests),
			Timeout:      cfg.BreakerTimeout,
			FailureRatio: cfg.BreakerFailureRatio,
		},
	})

	sessions := services.NewSessionService(sessionStore, cfg.SessionTTL)
	drafts := services.NewDraftService(draftStore, cfg.DraftTTL)
	notifier := newNotifier(cfg)

	e := handlers.NewServer(handlers.Dependencies{
		Sessions:      sessions,
		Auth:          services.NewAuthService(backend, sessions, drafts),
		Catalog:       services.NewCatalogService(backend),
		Bookings:      services.NewBookingService(backend, drafts, notifier, cfg.SubmitLockTTL, cfg.BookingRedirectDelay),
		Listings:      services.NewListingService(backend, drafts, notifier, cfg.SubmitLockTTL),
		Admin:         services.NewAdminService(backend),
		Limiter:       security.NewRateLimiter(redisClient, cfg.LoginRatePerMinute),
		CookieSecure:  cfg.CookieSecure,
		EnableMetrics: cfg.EnableMetrics,
		HealthCheck:   healthCheck,
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           otelhttp.NewHandler(e, serviceName),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go handleShutdown(cancel)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Concert Pass listening on %s (backend %s)", server.Addr, cfg.BackendURL)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Println("Server stopped")
	return nil
}

// newNotifier publishes outcomes over PubNub when keys are configured.
func newNotifier(cfg *config.Config) services.Notifier {
	if cfg.PubNubPublishKey == "" || cfg.PubNubSubscribeKey == "" {
		return services.NopNotifier{}
	}

	pnConfig := pubnub.NewConfigWithUserId(pubnub.UserId(cfg.PubNubUserID))
	pnConfig.PublishKey = cfg.PubNubPublishKey
	pnConfig.SubscribeKey = cfg.PubNubSubscribeKey
	pnConfig.SecretKey = cfg.PubNubSecretKey

	return services.NewPubNubNotifier(pubnub.NewPubNub(pnConfig))
}

// handleShutdown handles graceful shutdown
func handleShutdown(cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Println("Shutdown signal received, cleaning up...")
	cancel()
}
