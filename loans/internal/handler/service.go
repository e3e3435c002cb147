package handler

import (
	"context"

	"github.com/Astemirdum/pinjam-rt/loans/internal/model"
	"github.com/Astemirdum/pinjam-rt/loans/internal/service"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

type LoanService interface {
	Submit(ctx context.Context, req model.SubmitRequest) (model.Loan, error)
	ListPending(ctx context.Context) ([]model.Loan, error)
	GetLoan(ctx context.Context, id int) (model.Loan, error)
	Decide(ctx context.Context, id int, outcome model.Status) (model.Loan, error)
	ListHistory(ctx context.Context) ([]model.Loan, error)
	ClearHistory(ctx context.Context) (int, error)
	ItemTypes(ctx context.Context) []model.ItemType
}

var _ LoanService = (*service.Service)(nil)
