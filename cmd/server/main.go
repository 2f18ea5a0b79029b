package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/twmb/franz-go/pkg/kgo"
	"golang.org/x/sync/errgroup"

	"mintgate/internal/issuance"
	"mintgate/internal/issuance/events"
	issuancemetrics "mintgate/internal/issuance/metrics"
	"mintgate/internal/issuance/service"
	pgjournal "mintgate/internal/issuance/store/postgres"
	redisjournal "mintgate/internal/issuance/store/redis"
	jwttoken "mintgate/internal/jwt_token"
	"mintgate/internal/platform/config"
	"mintgate/internal/platform/httpserver"
	"mintgate/internal/platform/kafka"
	"mintgate/internal/platform/logger"
	"mintgate/internal/platform/metrics"
	"mintgate/internal/platform/postgres"
	"mintgate/internal/platform/redis"
	"mintgate/pkg/platform/circuit"
	"mintgate/pkg/platform/httputil"
	adminmw "mintgate/pkg/platform/middleware/admin"
	"mintgate/pkg/platform/middleware/metadata"
	request "mintgate/pkg/platform/middleware/request"
	"mintgate/pkg/platform/middleware/requesttime"
	"mintgate/pkg/requestcontext"
)

// infra holds the connections the chosen storage and event backends opened.
type infra struct {
	db    *sql.DB
	redis *redis.Client
	kafka *kgo.Client
}

func (i *infra) close(log *slog.Logger) {
	if i.kafka != nil {
		i.kafka.Close()
	}
	if i.redis != nil {
		if err := i.redis.Close(); err != nil {
			log.Error("failed to close redis", "error", err)
		}
	}
	if i.db != nil {
		if err := i.db.Close(); err != nil {
			log.Error("failed to close postgres", "error", err)
		}
	}
}

func (i *infra) health(ctx context.Context) error {
	if i.db != nil {
		if err := i.db.PingContext(ctx); err != nil {
			return fmt.Errorf("postgres: %w", err)
		}
	}
	if i.redis != nil {
		if err := i.redis.Health(ctx); err != nil {
			return fmt.Errorf("redis: %w", err)
		}
	}
	return nil
}

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Server, log *slog.Logger) error {
	appMetrics := metrics.New()
	appMetrics.BuildInfo.WithLabelValues(cfg.StorageBackend).Set(1)

	deps := &infra{}
	defer deps.close(log)

	journal, err := buildJournal(ctx, cfg, deps)
	if err != nil {
		return err
	}

	publishers := events.Multi{events.NewLogPublisher(log)}
	if deps.kafka, err = kafka.NewClient(ctx, cfg.Kafka, log); err != nil {
		return err
	}
	if deps.kafka != nil {
		breaker := circuit.New("kafka", circuit.WithFailureThreshold(5), circuit.WithCooldown(30*time.Second))
		publishers = append(publishers, events.NewGuarded(events.NewKafkaPublisher(deps.kafka, cfg.Kafka.Topic), breaker, log))
	}

	opts := []service.Option{
		service.WithLogger(log),
		service.WithMetrics(issuancemetrics.New(appMetrics.Registry)),
		service.WithPublisher(publishers),
		service.WithAssetCapacity(cfg.AssetCapacity),
	}
	if journal != nil {
		opts = append(opts, service.WithJournal(journal))
	}
	registry, owner := issuance.NewRegistry(opts...)

	bootCtx := requestcontext.WithRequestID(ctx, "startup")
	if err := registry.Load(bootCtx); err != nil {
		return fmt.Errorf("load registry: %w", err)
	}
	created, err := registry.EnsureAssets(bootCtx, owner, cfg.InitialAssets)
	if err != nil {
		return fmt.Errorf("create initial assets: %w", err)
	}
	log.InfoContext(ctx, "registry ready",
		"storage_backend", cfg.StorageBackend,
		"assets", registry.AssetCount(),
		"assets_created", created,
		"whitelisted", registry.WhitelistCount(),
		"total_mints", registry.TotalMints(),
	)

	verifier := adminmw.PlainToken(cfg.AdminToken)
	if cfg.AdminTokenHash != "" {
		verifier = adminmw.HashedToken(cfg.AdminTokenHash)
	}
	jwtService := jwttoken.NewJWTService(cfg.JWTSigningKey, cfg.JWTIssuer, cfg.JWTAudience)
	issuanceHandler := issuance.NewHandler(registry, owner, log, jwttoken.NewJWTServiceAdapter(jwtService), verifier)

	r := chi.NewRouter()
	r.Use(request.RequestID)
	r.Use(metadata.ClientMetadata)
	r.Use(requesttime.Middleware)
	r.Use(middleware.Recoverer)
	r.Use(appMetrics.Instrument)

	r.Handle("/metrics", appMetrics.Handler())
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		hctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := deps.health(hctx); err != nil {
			log.WarnContext(r.Context(), "health check failed", "error", err)
			httputil.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	issuanceHandler.Register(r)

	srv := httpserver.New(cfg.Addr, r)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting mintgate", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		return nil
	})
	return g.Wait()
}

// buildJournal opens the configured storage backend. The memory backend has
// no journal.
func buildJournal(ctx context.Context, cfg config.Server, deps *infra) (service.Journal, error) {
	switch cfg.StorageBackend {
	case config.StoragePostgres:
		db, err := postgres.Open(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		deps.db = db
		j := pgjournal.New(db)
		if err := j.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		return j, nil
	case config.StorageRedis:
		client, err := redis.New(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		deps.redis = client
		return redisjournal.New(client.Client, redisjournal.WithPrefix(cfg.Redis.KeyPrefix)), nil
	default:
		return nil, nil
	}
}
