// Package registry holds the in-memory loan records and their approval lifecycle.
//
// A record is created PENDING by Submit and decided exactly once by Decide.
// Decided records form the history; they are never mutated again and only
// leave the registry through ClearHistory.
package registry

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Astemirdum/pinjam-rt/loans/internal/errs"
	"github.com/Astemirdum/pinjam-rt/loans/internal/model"
	"github.com/pkg/errors"
)

type Registry struct {
	mu      sync.Mutex
	records []model.Loan
	lastID  int
	now     func() time.Time
}

type Option func(r *Registry)

// WithClock overrides the clock used for submittedDate.
func WithClock(now func() time.Time) Option {
	return func(r *Registry) {
		r.now = now
	}
}

func New(opts ...Option) *Registry {
	r := &Registry{
		now: time.Now,
	}
	for _, op := range opts {
		op(r)
	}
	return r
}

func (r *Registry) Submit(req model.SubmitRequest) (model.Loan, error) {
	name := strings.TrimSpace(req.BorrowerName)
	if err := validateSubmit(name, req); err != nil {
		return model.Loan{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastID++
	loan := model.Loan{
		ID:            r.lastID,
		BorrowerName:  name,
		ItemType:      req.ItemType,
		Quantity:      req.Quantity,
		LoanDate:      req.LoanDate,
		ReturnDate:    req.ReturnDate,
		SubmittedDate: model.NewDate(r.now()),
		Status:        model.StatusPending,
	}
	r.records = append(r.records, loan)
	return loan, nil
}

func validateSubmit(name string, req model.SubmitRequest) error {
	switch {
	case name == "":
		return errs.NewValidationError("borrowerName", "must not be empty")
	case !req.ItemType.Valid():
		return errs.NewValidationError("itemType", "unknown item type "+string(req.ItemType))
	case req.Quantity < model.MinQuantity || req.Quantity > model.MaxQuantity:
		return errs.NewValidationError("quantity", "must be between 1 and 50")
	case req.LoanDate.IsZero():
		return errs.NewValidationError("loanDate", "is required")
	case req.ReturnDate.IsZero():
		return errs.NewValidationError("returnDate", "is required")
	case req.ReturnDate.Before(req.LoanDate):
		return errs.NewValidationError("returnDate", "must not be before loanDate")
	}
	return nil
}

// ListPending returns pending loans in submission order.
func (r *Registry) ListPending() []model.Loan {
	r.mu.Lock()
	defer r.mu.Unlock()

	items := make([]model.Loan, 0, len(r.records))
	for _, loan := range r.records {
		if loan.Status == model.StatusPending {
			items = append(items, loan)
		}
	}
	return items
}

func (r *Registry) Get(id int) (model.Loan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return model.Loan{}, errors.Wrapf(errs.ErrNotFound, "id %d", id)
	}
	return r.records[i], nil
}

// Decide moves a pending loan to outcome. The caller is expected to have
// obtained confirmation already.
func (r *Registry) Decide(id int, outcome model.Status) (model.Loan, error) {
	if !outcome.Decided() {
		return model.Loan{}, errs.NewValidationError("outcome", "must be APPROVED or REJECTED")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return model.Loan{}, errors.Wrapf(errs.ErrNotFound, "id %d", id)
	}
	if r.records[i].Status != model.StatusPending {
		return model.Loan{}, errors.Wrapf(errs.ErrInvalidState, "id %d is %s", id, r.records[i].Status)
	}
	r.records[i].Status = outcome
	return r.records[i], nil
}

// ListHistory returns decided loans, newest submission first.
func (r *Registry) ListHistory() []model.Loan {
	r.mu.Lock()
	items := make([]model.Loan, 0, len(r.records))
	for _, loan := range r.records {
		if loan.Status.Decided() {
			items = append(items, loan)
		}
	}
	r.mu.Unlock()

	sort.Slice(items, func(i, j int) bool {
		return items[i].ID > items[j].ID
	})
	return items
}

// ClearHistory drops every decided loan and reports how many were removed.
// Ids of removed loans are never handed out again.
func (r *Registry) ClearHistory() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.records[:0]
	for _, loan := range r.records {
		if !loan.Status.Decided() {
			kept = append(kept, loan)
		}
	}
	removed := len(r.records) - len(kept)
	for i := len(kept); i < len(r.records); i++ {
		r.records[i] = model.Loan{}
	}
	r.records = kept
	return removed
}

// indexOf relies on records being kept in ascending id order.
func (r *Registry) indexOf(id int) int {
	i := sort.Search(len(r.records), func(i int) bool {
		return r.records[i].ID >= id
	})
	if i < len(r.records) && r.records[i].ID == id {
		return i
	}
	return -1
}
