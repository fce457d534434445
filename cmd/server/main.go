package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"

	"github.com/qrhunt/scavenger/internal/config"
	"github.com/qrhunt/scavenger/internal/database"
	"github.com/qrhunt/scavenger/internal/gate"
	"github.com/qrhunt/scavenger/internal/handler/health"
	"github.com/qrhunt/scavenger/internal/hunt"
	"github.com/qrhunt/scavenger/internal/server"
	"github.com/qrhunt/scavenger/internal/session"
	"github.com/qrhunt/scavenger/internal/store"
	"github.com/qrhunt/scavenger/internal/verification"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, stdout io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	// --- Document store ---
	backend, err := openBackend(ctx, cfg)
	if err != nil {
		return err
	}
	defer backend.Close()
	logger.Info("connected to document store", "driver", cfg.StoreDriver)

	checks := map[string]health.Checker{
		"store": health.CheckFunc(backend.Ping),
	}

	// --- Clue sessions ---
	var sessions session.Store = session.NewMemoryStore(cfg.SessionTTL)
	if cfg.RedisURL != "" {
		rdb, err := openRedis(ctx, cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("connecting to redis: %w", err)
		}
		defer rdb.Close()

		rs := session.NewRedisStore(rdb, cfg.SessionTTL)
		sessions = rs
		checks["redis"] = rs
		logger.Info("connected to redis")
	}

	// --- Hunt ---
	catalog := hunt.DefaultCatalog()
	resolver := hunt.NewResolver(backend, catalog, logger)
	if err := resolver.EnsureSeeded(ctx); err != nil {
		// Printed tokens still resolve statically; seeding retries on demand.
		logger.Warn("seeding hunt data", "error", err)
	}
	verifier := verification.New(backend, logger)

	var accessGate *gate.Gate
	if cfg.GateBaseURL != "" {
		c := gate.NewHTTPClient(cfg.GateBaseURL)
		accessGate = gate.New(c, c, cfg.GateTimeout, logger)
		logger.Info("gate uses remote verification", "base_url", cfg.GateBaseURL)
	} else {
		accessGate = gate.New(gate.StoreFlags{Store: verifier}, gate.StoreVerifier{Store: verifier}, cfg.GateTimeout, logger)
	}

	adminHash, err := adminPasswordHash(cfg)
	if err != nil {
		return err
	}

	// --- HTTP Server ---
	srv := server.New(cfg.HTTPAddr, logger, server.Deps{
		Resolver:     resolver,
		Catalog:      catalog,
		Verification: verifier,
		Sessions:     sessions,
		Gate:         accessGate,
		Health:       checks,
		Admin:        server.AdminCredentials{Username: cfg.AdminUsername, PasswordHash: adminHash},
		CORSOrigins:  cfg.CORSAllowedOrigins,
		CookieSecure: cfg.CookieSecure,
		SessionTTL:   cfg.SessionTTL,
		SPADir:       cfg.SPADir,
	})

	// --- Run ---
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting http server", "addr", cfg.HTTPAddr)
		return srv.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server")
		return srv.Shutdown(context.Background())
	})

	return g.Wait()
}

func openBackend(ctx context.Context, cfg *config.Config) (store.Backend, error) {
	switch cfg.StoreDriver {
	case config.DriverMongo:
		s, err := store.NewMongoStore(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, fmt.Errorf("connecting to mongodb: %w", err)
		}
		return s, nil
	default:
		db, err := database.Open(ctx, cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("connecting to sqlite: %w", err)
		}
		s, err := store.NewDocStore(ctx, db)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("running migrations: %w", err)
		}
		return s, nil
	}
}

func openRedis(ctx context.Context, rawURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}
	return rdb, nil
}

// adminPasswordHash prefers a configured bcrypt hash and otherwise hashes
// the plain password once at startup.
func adminPasswordHash(cfg *config.Config) ([]byte, error) {
	if cfg.AdminPasswordHash != "" {
		if _, err := bcrypt.Cost([]byte(cfg.AdminPasswordHash)); err != nil {
			return nil, fmt.Errorf("invalid ADMIN_PASSWORD_HASH: %w", err)
		}
		return []byte(cfg.AdminPasswordHash), nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing admin password: %w", err)
	}
	return hash, nil
}
