package bootstrap

import (
	"context"
	"errors"
	"net/http"

	"remit-service/internal/application"
	"remit-service/internal/config"
	"remit-service/internal/infrastructure/logx"
	"remit-service/internal/infrastructure/pg"
	"remit-service/internal/infrastructure/provider"
	redisstore "remit-service/internal/infrastructure/redis"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var ErrMissingDBURL = errors.New("DATABASE_URL is required")

type Repos struct {
	Quotes   application.QuoteStore
	Accounts application.AccountDirectory
}

func ProvideLogger() *zap.Logger { return logx.L() }

func ProvideConfig() config.Config { return config.Load() }

func ProvideDB(ctx context.Context, log *zap.Logger, cfg config.Config) (*pg.DB, func(), error) {
	if cfg.DatabaseURL == "" {
		return nil, func() {}, ErrMissingDBURL
	}
	db, err := pg.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, func() {}, err
	}
	if err := pg.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, func() {}, err
	}
	cleanup := func() {
		if log != nil {
			log.Info("closing pg")
		}
		db.Close()
	}
	return db, cleanup, nil
}

func ProvideRepos(db *pg.DB) Repos {
	return Repos{
		Quotes:   pg.NewQuoteRepo(db),
		Accounts: pg.NewAccountRepo(db),
	}
}

func ProvideUnitOfWork(db *pg.DB) application.UnitOfWork {
	return &pg.UnitOfWork{Pool: db.Pool}
}

func ProvideRedisClient(cfg config.Config) (*redis.Client, func(), error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	return client, func() { _ = client.Close() }, nil
}

// ProvideAccountLocker picks the admission lock backend. A single-instance
// deployment serializes in process; "redis" extends the lock across replicas.
func ProvideAccountLocker(client *redis.Client, cfg config.Config) application.AccountLocker {
	if cfg.LockBackend == "redis" {
		return redisstore.New(client, cfg.LockTTL, cfg.LockRetry)
	}
	return application.NewKeyedMutex()
}

func ProvideRateGateway(cfg config.Config) application.RateGateway {
	switch cfg.Provider {
	case "upbit":
		return &provider.UpbitGateway{
			BaseURL: cfg.ExchangeAPIBase,
			Client:  &http.Client{Timeout: cfg.RequestTimeout},
		}
	default:
		return provider.NewFake()
	}
}

func ProvideCalculator(rates application.RateGateway) *application.QuoteCalculator {
	return application.NewQuoteCalculator(rates, nil)
}

func ProvideAggregator(r Repos) *application.DailyLimitAggregator {
	return application.NewDailyLimitAggregator(r.Quotes)
}

func ProvideTransferService(r Repos, calc *application.QuoteCalculator, agg *application.DailyLimitAggregator, locker application.AccountLocker, uow application.UnitOfWork) *application.TransferService {
	return application.NewTransferService(r.Accounts, r.Quotes, calc, agg, locker, uow)
}
