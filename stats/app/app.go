package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Astemirdum/pinjam-rt/pkg/kafka"
	"github.com/Astemirdum/pinjam-rt/pkg/logger"
	"github.com/Astemirdum/pinjam-rt/pkg/postgres"
	"github.com/Astemirdum/pinjam-rt/pkg/redis"
	"github.com/Astemirdum/pinjam-rt/pkg/server"
	"github.com/Astemirdum/pinjam-rt/stats/config"
	"github.com/Astemirdum/pinjam-rt/stats/internal/cache"
	"github.com/Astemirdum/pinjam-rt/stats/internal/handler"
	"github.com/Astemirdum/pinjam-rt/stats/internal/repository"
	"github.com/Astemirdum/pinjam-rt/stats/internal/service"
	"github.com/Astemirdum/pinjam-rt/stats/migrations"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func Run(cfg *config.Config) error {
	log := logger.NewLogger(cfg.Log, "stats")
	defer log.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	db, err := postgres.NewPostgresDB(ctx, &cfg.Database, migrations.MigrationFiles)
	if err != nil {
		return fmt.Errorf("db init %w", err)
	}
	defer db.Close()

	repo, err := repository.NewRepository(db, log)
	if err != nil {
		return fmt.Errorf("repo %w", err)
	}

	var summaryCache cache.Cache = cache.Noop{}
	if cfg.Redis.Enabled() {
		rdb, err := redis.NewClient(ctx, cfg.Redis)
		if err != nil {
			return fmt.Errorf("redis.NewClient %w", err)
		}
		defer rdb.Close()
		summaryCache = cache.NewRedis(rdb, cfg.CacheTTL)
	}
	svc := service.NewService(repo, summaryCache, log)

	if err := kafka.CreateTopics(cfg.Kafka, kafka.LoanTopic); err != nil {
		log.Error("create topics", zap.Error(err))
	}
	consumer, err := kafka.NewConsumer(cfg.Kafka, kafka.StatsConsumerGroup)
	if err != nil {
		return fmt.Errorf("kafka.NewConsumer %w", err)
	}

	h := handler.New(svc, log)
	srv := server.NewServer(cfg.Server, h.NewRouter())

	gg, ctx := errgroup.WithContext(ctx)
	gg.Go(func() error {
		return kafka.Consume(ctx, consumer, handler.NewConsumer(svc.Stats, log), kafka.LoanTopic)
	})
	gg.Go(func() error {
		log.Info("http server start ON: ", zap.String("addr", cfg.Server.Addr()))
		return srv.Run()
	})
	gg.Go(func() error {
		<-ctx.Done()
		log.Debug("Graceful shutdown", zap.Error(context.Cause(ctx)))

		closeCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
		defer cancel()
		if err := srv.Stop(closeCtx); err != nil {
			log.Error("srv.Stop", zap.Error(err))
		}
		return consumer.Close()
	})

	if err := gg.Wait(); err != nil {
		log.Error("stats stopped", zap.Error(err))
		return err
	}
	log.Info("Graceful shutdown finished")
	return nil
}
