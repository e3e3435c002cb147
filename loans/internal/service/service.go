package service

import (
	"context"
	"time"

	"github.com/Astemirdum/pinjam-rt/loans/internal/model"
	"github.com/Astemirdum/pinjam-rt/loans/internal/publisher"
	"github.com/Astemirdum/pinjam-rt/loans/internal/registry"
	"github.com/Astemirdum/pinjam-rt/pkg/kafka"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Registry interface {
	Submit(req model.SubmitRequest) (model.Loan, error)
	ListPending() []model.Loan
	Get(id int) (model.Loan, error)
	Decide(id int, outcome model.Status) (model.Loan, error)
	ListHistory() []model.Loan
	ClearHistory() int
}

var _ Registry = (*registry.Registry)(nil)

type Service struct {
	log       *zap.Logger
	registry  Registry
	publisher publisher.Publisher
}

func NewService(reg Registry, pub publisher.Publisher, log *zap.Logger) *Service {
	return &Service{
		log:       log.Named("service"),
		registry:  reg,
		publisher: pub,
	}
}

func (s *Service) Submit(ctx context.Context, req model.SubmitRequest) (model.Loan, error) {
	loan, err := s.registry.Submit(req)
	if err != nil {
		return model.Loan{}, err
	}
	s.publish(ctx, loanEvent(kafka.EventSubmitted, loan))
	return loan, nil
}

func (s *Service) ListPending(_ context.Context) ([]model.Loan, error) {
	return s.registry.ListPending(), nil
}

func (s *Service) GetLoan(_ context.Context, id int) (model.Loan, error) {
	return s.registry.Get(id)
}

func (s *Service) Decide(ctx context.Context, id int, outcome model.Status) (model.Loan, error) {
	loan, err := s.registry.Decide(id, outcome)
	if err != nil {
		return model.Loan{}, err
	}
	s.publish(ctx, loanEvent(kafka.EventDecided, loan))
	return loan, nil
}

func (s *Service) ListHistory(_ context.Context) ([]model.Loan, error) {
	return s.registry.ListHistory(), nil
}

func (s *Service) ClearHistory(ctx context.Context) (int, error) {
	n := s.registry.ClearHistory()
	if n > 0 {
		s.publish(ctx, kafka.EventLoan{
			EventUid:  uuid.NewString(),
			Timestamp: time.Now().UTC(),
			EventType: kafka.EventCleared,
			Count:     n,
		})
	}
	return n, nil
}

func (s *Service) ItemTypes(_ context.Context) []model.ItemType {
	return append([]model.ItemType(nil), model.Catalog...)
}

// publish never fails the caller: the registry is the source of truth.
func (s *Service) publish(ctx context.Context, event kafka.EventLoan) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.log.Warn("publish loan event",
			zap.String("type", string(event.EventType)),
			zap.Int("loan_id", event.LoanID),
			zap.Error(err))
	}
}

func loanEvent(eventType kafka.EventType, loan model.Loan) kafka.EventLoan {
	return kafka.EventLoan{
		EventUid:  uuid.NewString(),
		Timestamp: time.Now().UTC(),
		EventType: eventType,
		LoanID:    loan.ID,
		ItemType:  string(loan.ItemType),
		Quantity:  loan.Quantity,
		Status:    string(loan.Status),
	}
}
