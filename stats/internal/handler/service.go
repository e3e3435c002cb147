package handler

import (
	"context"

	"github.com/Astemirdum/pinjam-rt/pkg/kafka"
	"github.com/Astemirdum/pinjam-rt/stats/internal/model"
	"github.com/Astemirdum/pinjam-rt/stats/internal/service"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

type StatsService interface {
	GetStats(ctx context.Context) (model.Summary, error)
	Stats(ctx context.Context, event kafka.EventLoan) error
}

var _ StatsService = (*service.Service)(nil)
