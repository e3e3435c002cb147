package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Astemirdum/pinjam-rt/loans/config"
	"github.com/Astemirdum/pinjam-rt/loans/internal/handler"
	"github.com/Astemirdum/pinjam-rt/loans/internal/publisher"
	"github.com/Astemirdum/pinjam-rt/loans/internal/registry"
	"github.com/Astemirdum/pinjam-rt/loans/internal/service"
	"github.com/Astemirdum/pinjam-rt/pkg/kafka"
	"github.com/Astemirdum/pinjam-rt/pkg/logger"
	"github.com/Astemirdum/pinjam-rt/pkg/server"
	"go.uber.org/zap"
)

func Run(cfg *config.Config) error {
	log := logger.NewLogger(cfg.Log, "loans")
	defer log.Sync() //nolint:errcheck

	var pub publisher.Publisher = publisher.Noop{}
	if cfg.Kafka.Enabled {
		if err := kafka.CreateTopics(cfg.Kafka, kafka.LoanTopic); err != nil {
			log.Error("create topics", zap.Error(err))
		}
		producer, err := kafka.NewSyncProducer(cfg.Kafka)
		if err != nil {
			return fmt.Errorf("kafka.NewSyncProducer: %w", err)
		}
		defer producer.Close()
		pub = publisher.NewKafka(producer, kafka.LoanTopic)
	} else {
		log.Info("kafka disabled, loan events are not published")
	}

	svc := service.NewService(registry.New(), pub, log)
	h := handler.New(svc, log)

	srv := server.NewServer(cfg.Server, h.NewRouter())
	log.Info("http server start ON: ", zap.String("addr", cfg.Server.Addr()))
	go func() {
		if err := srv.Run(); err != nil {
			log.Error("server run", zap.Error(err))
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	termSig := <-sig

	log.Debug("Graceful shutdown", zap.Any("signal", termSig))

	closeCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err := srv.Stop(closeCtx); err != nil {
		log.Error("srv.Stop", zap.Error(err))
	}
	log.Info("Graceful shutdown finished")
	return nil
}
