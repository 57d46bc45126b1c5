package bootstrap

import (
	"context"

	"remit-service/internal/application"
	"remit-service/internal/config"
	httpserver "remit-service/internal/infrastructure/http"
)

// BuildAPI assembles the HTTP server and everything behind it. The returned
// cleanup closes the backends in reverse construction order.
func BuildAPI(ctx context.Context, cfg config.Config) (*httpserver.Server, func(), error) {
	log := ProvideLogger()

	db, closeDB, err := ProvideDB(ctx, log, cfg)
	if err != nil {
		return nil, func() {}, err
	}
	repos := ProvideRepos(db)

	cleanup := closeDB
	var locker application.AccountLocker = application.NewKeyedMutex()
	if cfg.LockBackend == "redis" {
		client, closeRedis, err := ProvideRedisClient(cfg)
		if err != nil {
			closeDB()
			return nil, func() {}, err
		}
		locker = ProvideAccountLocker(client, cfg)
		cleanup = func() {
			closeRedis()
			closeDB()
		}
	}

	svc := ProvideTransferService(
		repos,
		ProvideCalculator(ProvideRateGateway(cfg)),
		ProvideAggregator(repos),
		locker,
		ProvideUnitOfWork(db),
	)
	srv := httpserver.NewServer(svc).WithPing(db.Ping)
	return srv, cleanup, nil
}
