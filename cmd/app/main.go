package main

import (
	"context"
	"time"

	"kinetica/internal/auth"
	"kinetica/internal/catalog"
	"kinetica/internal/config"
	"kinetica/internal/dashboard"
	"kinetica/internal/db"
	"kinetica/internal/gym"
	"kinetica/internal/ledger"
	"kinetica/internal/logger"
	"kinetica/internal/member"
	"kinetica/internal/server"
	"kinetica/internal/session"
	"kinetica/internal/user"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

// @title Kinetica API
// @version 1.0
// @description Multi-tenant gym and personal training backend.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	logger.InitWithLevel(cfg.LogLevel)
	logger.Info("Starting Kinetica", "env", cfg.Environment, "timezone", cfg.Timezone.String())

	app := fx.New(
		fx.Supply(cfg),
		fx.StopTimeout(30*time.Second),
		fx.WithLogger(func() fxevent.Logger {
			return &fxevent.SlogLogger{Logger: logger.Default()}
		}),
		fx.Provide(
			newDatabase,
			newRedis,
			db.NewTransactor,
			newTokens,
			auth.NewDenylist,

			gym.NewRepository,
			user.NewRepository,
			member.NewRepository,
			catalog.NewRepository,
			ledger.NewRepository,
			session.NewRepository,
			dashboard.NewRepository,

			gym.NewService,
			newUserService,
			newMemberService,
			catalog.NewService,
			newLedgerService,
			newSessionService,
			newDashboardService,

			server.NewSystemHandler,
			newHandlers,
			newServer,
		),
		fx.Invoke(func(*server.Server) {}),
	)

	app.Run()
	logger.Info("Server stopped")
}

func newDatabase(lc fx.Lifecycle, cfg *config.Config) (*sqlx.DB, error) {
	logger.Info("Connecting to database...")
	database, err := db.Connect(context.Background(), cfg.DatabaseURL, db.PoolOptions{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
	})
	if err != nil {
		return nil, err
	}

	if err := db.RunMigrations(database, cfg.MigrationsPath); err != nil {
		database.Close()
		return nil, err
	}
	logger.Info("Migrations completed")

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return database.Close()
		},
	})
	return database, nil
}

func newRedis(lc fx.Lifecycle, cfg *config.Config) *redis.Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			// Logout revocation degrades without Redis; startup continues.
			if err := rdb.Ping(ctx).Err(); err != nil {
				logger.WithError(err).Warn("redis unreachable, token denylist disabled until it recovers", "addr", cfg.RedisAddr)
			}
			return nil
		},
		OnStop: func(context.Context) error {
			return rdb.Close()
		},
	})
	return rdb
}

func newTokens(cfg *config.Config) *auth.Tokens {
	return auth.NewTokens(cfg.JWTSecret, cfg.JWTRefreshSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
}

func newUserService(repo user.Repository, gyms gym.Repository, tx db.Transactor, tokens *auth.Tokens, denylist *auth.Denylist) user.Service {
	return user.NewService(repo, gyms, tx, tokens, denylist)
}

func newMemberService(repo member.Repository, users user.Repository) member.Service {
	return member.NewService(repo, users)
}

func newLedgerService(repo ledger.Repository, members member.Service, packages catalog.Service, tx db.Transactor) ledger.Service {
	return ledger.NewService(repo, members, packages, tx)
}

func newSessionService(repo session.Repository, members member.Service, users user.Repository, payments ledger.Service, tx db.Transactor) session.Service {
	return session.NewService(repo, members, users, payments, tx)
}

func newDashboardService(repo dashboard.Repository, cfg *config.Config) dashboard.Service {
	return dashboard.NewService(repo, cfg.Timezone)
}

func newHandlers(
	users user.Service,
	gyms gym.Service,
	members member.Service,
	packages catalog.Service,
	payments ledger.Service,
	sessions session.Service,
	stats dashboard.Service,
	system *server.SystemHandler,
) server.Handlers {
	return server.Handlers{
		User:      user.NewHandler(users),
		Gym:       gym.NewHandler(gyms),
		Member:    member.NewHandler(members),
		Catalog:   catalog.NewHandler(packages),
		Ledger:    ledger.NewHandler(payments),
		Session:   session.NewHandler(sessions),
		Dashboard: dashboard.NewHandler(stats),
		System:    system,
	}
}

func newServer(
	lc fx.Lifecycle,
	shutdowner fx.Shutdowner,
	cfg *config.Config,
	h server.Handlers,
	tokens *auth.Tokens,
	users user.Repository,
	denylist *auth.Denylist,
) *server.Server {
	srv := server.New(cfg, h, tokens, user.ActiveCheck(users), denylist.Check())

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				if err := srv.Start(); err != nil {
					logger.WithError(err).Error("http server failed")
					_ = shutdowner.Shutdown(fx.ExitCode(1))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Shutting down gracefully...")
			return srv.Shutdown(ctx)
		},
	})
	return srv
}
