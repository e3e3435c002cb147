package service

import (
	"context"

	"github.com/Astemirdum/pinjam-rt/pkg/kafka"
	"github.com/Astemirdum/pinjam-rt/stats/internal/cache"
	"github.com/Astemirdum/pinjam-rt/stats/internal/model"
	statsRepo "github.com/Astemirdum/pinjam-rt/stats/internal/repository"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type Service struct {
	log   *zap.Logger
	repo  statsRepo.Repository
	cache cache.Cache
}

func NewService(repo statsRepo.Repository, c cache.Cache, log *zap.Logger) *Service {
	return &Service{
		log:   log.Named("service"),
		repo:  repo,
		cache: c,
	}
}

// GetStats returns the per item summary, served from cache when possible.
func (s *Service) GetStats(ctx context.Context) (model.Summary, error) {
	sum, ok, err := s.cache.Get(ctx)
	if err != nil {
		s.log.Warn("cache get", zap.Error(err))
	}
	if ok {
		return sum, nil
	}
	sum, err = s.repo.Summary(ctx)
	if err != nil {
		return model.Summary{}, err
	}
	if err := s.cache.Set(ctx, sum); err != nil {
		s.log.Warn("cache set", zap.Error(err))
	}
	return sum, nil
}

// Stats used by kafka consumer. Redelivered events are ignored.
func (s *Service) Stats(ctx context.Context, event kafka.EventLoan) error {
	if err := s.repo.SaveEvent(ctx, event); err != nil {
		if errors.Is(err, statsRepo.ErrDuplicateEvent) {
			s.log.Debug("duplicate event", zap.String("event_uid", event.EventUid))
			return nil
		}
		return err
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.Warn("cache invalidate", zap.Error(err))
	}
	return nil
}
