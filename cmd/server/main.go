package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"github.com/muhammadali233755/blogging-app/blog/application"
	"github.com/muhammadali233755/blogging-app/blog/domain"
	"github.com/muhammadali233755/blogging-app/blog/infra"
	"github.com/muhammadali233755/blogging-app/httpapi"
)

// dataStore is everything the services need from a backing store. Both
// infra.MemoryStore and infra.PostgresStore satisfy it.
type dataStore interface {
	domain.UserStore
	domain.CategoryStore
	domain.PostStore
	domain.CommentStore
	domain.LikeStore
	domain.ViewStore
}

func main() {
	// Missing .env is fine: plain environment variables still apply.
	_ = godotenv.Load()

	cfg, err := readConfig()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var store dataStore
	if cfg.databaseURL == "" {
		log.Printf("DATABASE_URL empty, using in-memory store (data is lost on restart)")
		store = infra.NewMemoryStore()
	} else {
		pool, err := infra.NewPool(ctx, cfg.databaseURL)
		if err != nil {
			log.Fatalf("database error: %v", err)
		}
		defer pool.Close()

		pg := infra.NewPostgresStore(pool)
		if err := pg.EnsureSchema(ctx); err != nil {
			log.Fatalf("database error: %v", err)
		}
		store = pg
	}

	if cfg.adminUsername != "" {
		if err := seedAdmin(ctx, store, cfg.adminUsername, cfg.adminPassword); err != nil {
			log.Fatalf("admin seed error: %v", err)
		}
	}

	auth := &application.AuthService{
		Users:      store,
		Secret:     []byte(cfg.secretKey),
		AccessTTL:  cfg.accessTTL,
		RefreshTTL: cfg.refreshTTL,
	}

	api := &httpapi.API{
		Auth:       auth,
		Users:      &application.UserService{Users: store},
		Posts:      &application.PostService{Posts: store, Categories: store},
		Comments:   &application.CommentService{Comments: store, Posts: store, Users: store},
		Likes:      &application.LikeService{Likes: store, Posts: store},
		Categories: &application.CategoryService{Categories: store, Posts: store},
		Views:      &application.ViewService{Views: store},
		TrustXFF:   cfg.trustXFF,
	}

	buckets := infra.NewBucketStore(cfg.rateRPS, cfg.rateBurst)
	buckets.StartJanitor(ctx)

	var throttleStats domain.ThrottleStatsStore
	if cfg.rateStatsEnabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.rateStatsRedisAddr,
			Password: cfg.rateStatsRedisPassword,
			DB:       cfg.rateStatsRedisDB,
		})
		defer func() { _ = rdb.Close() }()

		pingCtx, cancelPing := context.WithTimeout(ctx, 2*time.Second)
		_, err := rdb.Ping(pingCtx).Result()
		cancelPing()
		if err != nil {
			log.Fatalf("redis stats ping error: %v", err)
		}

		throttleStats = infra.NewRedisThrottleStats(
			rdb,
			infra.WithStatsPrefix(cfg.rateStatsPrefix),
			infra.WithStatsTTL(cfg.rateStatsTTL),
			infra.WithStatsBucket(cfg.rateStatsBucket),
			infra.WithStatsTrackKeys(cfg.rateStatsTrackKeys),
		)
	}

	mws := []httpapi.Middleware{
		httpapi.RequestLogger(),
		httpapi.SecurityHeaders(httpapi.SecurityHeaderOptions{HSTS: cfg.hstsEnabled}),
		httpapi.CORS(httpapi.CORSOptions{AllowedOrigins: cfg.allowedOrigins}),
	}
	if cfg.concurrencyMax > 0 {
		mws = append(mws, httpapi.Admission(httpapi.AdmissionOptions{
			Max:            cfg.concurrencyMax,
			AcquireTimeout: cfg.concurrencyTimeout,
		}, infra.NewChanPool(cfg.concurrencyMax)))
	}
	if cfg.rateEnabled {
		mws = append(mws, httpapi.Throttle(httpapi.ThrottleOptions{
			Store:              buckets,
			Stats:              throttleStats,
			KeyHeader:          cfg.rateKeyHeader,
			TrustXForwardedFor: cfg.trustXFF,
			RetryAfter:         cfg.retryAfter,
			AddHeaders:         cfg.addHeaders,
		}))
	}
	mws = append(mws, httpapi.Authenticate(auth))

	srv := &http.Server{
		Addr:              cfg.listenAddr,
		Handler:           httpapi.Chain(api.Routes(), mws...),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Printf("blogging api listening on %s env=%s", cfg.listenAddr, cfg.environment)
	log.Printf("rate: enabled=%v rps=%.3f burst=%d keyHeader=%q trustXFF=%v", cfg.rateEnabled, cfg.rateRPS, cfg.rateBurst, cfg.rateKeyHeader, cfg.trustXFF)
	log.Printf("rate-stats: enabled=%v redisAddr=%q bucket=%q ttl=%s", cfg.rateStatsEnabled, cfg.rateStatsRedisAddr, cfg.rateStatsBucket, cfg.rateStatsTTL)
	log.Printf("concurrency: max=%d acquireTimeout=%s", cfg.concurrencyMax, cfg.concurrencyTimeout)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server error: %v", err)
	}
}

// seedAdmin makes sure the configured admin account exists. An existing
// user with that name is promoted rather than recreated.
func seedAdmin(ctx context.Context, users domain.UserStore, username, password string) error {
	u, err := users.UserByUsername(ctx, username)
	switch {
	case err == nil:
		if u.Role == domain.RoleAdmin {
			return nil
		}
		u.Role = domain.RoleAdmin
		return users.UpdateUser(ctx, u)
	case errors.Is(err, domain.ErrUserNotFound):
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		return users.CreateUser(ctx, &domain.User{
			Username:     username,
			PasswordHash: string(hash),
			Role:         domain.RoleAdmin,
		})
	default:
		return err
	}
}
