package registry_test

import (
	"testing"
	"time"

	"github.com/Astemirdum/pinjam-rt/loans/internal/errs"
	"github.com/Astemirdum/pinjam-rt/loans/internal/model"
	"github.com/Astemirdum/pinjam-rt/loans/internal/registry"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) model.Date {
	return model.NewDate(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

var today = time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC)

func newRegistry() *registry.Registry {
	return registry.New(registry.WithClock(func() time.Time { return today }))
}

func validRequest(name string) model.SubmitRequest {
	return model.SubmitRequest{
		BorrowerName: name,
		ItemType:     model.ItemTent,
		Quantity:     2,
		LoanDate:     date(2024, 1, 1),
		ReturnDate:   date(2024, 1, 3),
	}
}

func ids(loans []model.Loan) []int {
	out := make([]int, 0, len(loans))
	for _, l := range loans {
		out = append(out, l.ID)
	}
	return out
}

func TestRegistry_Submit(t *testing.T) {
	t.Parallel()
	r := newRegistry()

	loan, err := r.Submit(validRequest("  Andi  "))
	require.NoError(t, err)
	require.Equal(t, model.Loan{
		ID:            1,
		BorrowerName:  "Andi",
		ItemType:      model.ItemTent,
		Quantity:      2,
		LoanDate:      date(2024, 1, 1),
		ReturnDate:    date(2024, 1, 3),
		SubmittedDate: date(2024, 1, 1),
		Status:        model.StatusPending,
	}, loan)

	for i := 2; i <= 5; i++ {
		loan, err := r.Submit(validRequest("Budi"))
		require.NoError(t, err)
		require.Equal(t, i, loan.ID)
	}
	require.Equal(t, []int{1, 2, 3, 4, 5}, ids(r.ListPending()))
	require.Empty(t, r.ListHistory())
}

func TestRegistry_SubmitValidation(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		modify func(req *model.SubmitRequest)
		field  string
	}{
		{name: "empty name", modify: func(req *model.SubmitRequest) { req.BorrowerName = "" }, field: "borrowerName"},
		{name: "blank name", modify: func(req *model.SubmitRequest) { req.BorrowerName = " " }, field: "borrowerName"},
		{name: "unknown item", modify: func(req *model.SubmitRequest) { req.ItemType = "Kulkas" }, field: "itemType"},
		{name: "zero quantity", modify: func(req *model.SubmitRequest) { req.Quantity = 0 }, field: "quantity"},
		{name: "quantity over limit", modify: func(req *model.SubmitRequest) { req.Quantity = 51 }, field: "quantity"},
		{name: "missing loan date", modify: func(req *model.SubmitRequest) { req.LoanDate = model.Date{} }, field: "loanDate"},
		{name: "missing return date", modify: func(req *model.SubmitRequest) { req.ReturnDate = model.Date{} }, field: "returnDate"},
		{name: "return before loan", modify: func(req *model.SubmitRequest) { req.ReturnDate = date(2023, 12, 31) }, field: "returnDate"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := newRegistry()
			req := validRequest("Andi")
			tt.modify(&req)

			_, err := r.Submit(req)
			require.ErrorIs(t, err, errs.ErrValidation)
			var vErr *errs.ValidationError
			require.ErrorAs(t, err, &vErr)
			require.Equal(t, tt.field, vErr.Field)
			require.Empty(t, r.ListPending())

			loan, err := r.Submit(validRequest("Andi"))
			require.NoError(t, err)
			require.Equal(t, 1, loan.ID, "failed submit must not consume an id")
		})
	}
}

func TestRegistry_SubmitBoundaries(t *testing.T) {
	t.Parallel()
	r := newRegistry()
	for _, q := range []int{model.MinQuantity, model.MaxQuantity} {
		req := validRequest("Andi")
		req.Quantity = q
		_, err := r.Submit(req)
		require.NoError(t, err)
	}
	req := validRequest("Andi")
	req.ReturnDate = req.LoanDate
	_, err := r.Submit(req)
	require.NoError(t, err, "same-day return is allowed")
}

func TestRegistry_Decide(t *testing.T) {
	t.Parallel()
	r := newRegistry()
	_, err := r.Submit(validRequest("Andi"))
	require.NoError(t, err)

	loan, err := r.Decide(1, model.StatusApproved)
	require.NoError(t, err)
	require.Equal(t, model.StatusApproved, loan.Status)
	require.Empty(t, r.ListPending())
	require.Equal(t, []model.Loan{loan}, r.ListHistory())

	_, err = r.Decide(1, model.StatusRejected)
	require.ErrorIs(t, err, errs.ErrInvalidState)
	got, err := r.Get(1)
	require.NoError(t, err)
	require.Equal(t, model.StatusApproved, got.Status)
}

func TestRegistry_DecideErrors(t *testing.T) {
	t.Parallel()
	r := newRegistry()
	_, err := r.Submit(validRequest("Andi"))
	require.NoError(t, err)

	_, err = r.Decide(42, model.StatusApproved)
	require.ErrorIs(t, err, errs.ErrNotFound)

	_, err = r.Decide(1, model.StatusPending)
	require.ErrorIs(t, err, errs.ErrValidation)

	_, err = r.Decide(1, "LOST")
	require.ErrorIs(t, err, errs.ErrValidation)

	require.Equal(t, []int{1}, ids(r.ListPending()))
	require.Empty(t, r.ListHistory())
}

func TestRegistry_ListHistoryOrder(t *testing.T) {
	t.Parallel()
	r := newRegistry()
	for _, name := range []string{"Andi", "Budi", "Citra"} {
		_, err := r.Submit(validRequest(name))
		require.NoError(t, err)
	}
	_, err := r.Decide(1, model.StatusApproved)
	require.NoError(t, err)
	_, err = r.Decide(2, model.StatusRejected)
	require.NoError(t, err)

	history := r.ListHistory()
	require.Equal(t, []int{2, 1}, ids(history))
	require.Equal(t, model.StatusRejected, history[0].Status)
	require.Equal(t, model.StatusApproved, history[1].Status)
	require.Equal(t, []int{3}, ids(r.ListPending()))
}

func TestRegistry_ReturnsCopies(t *testing.T) {
	t.Parallel()
	r := newRegistry()
	_, err := r.Submit(validRequest("Andi"))
	require.NoError(t, err)

	pending := r.ListPending()
	pending[0].Status = model.StatusApproved
	pending[0].BorrowerName = "Mallory"

	got, err := r.Get(1)
	require.NoError(t, err)
	require.Equal(t, model.StatusPending, got.Status)
	require.Equal(t, "Andi", got.BorrowerName)
}

func TestRegistry_ClearHistory(t *testing.T) {
	t.Parallel()
	r := newRegistry()
	for _, name := range []string{"Andi", "Budi", "Citra"} {
		_, err := r.Submit(validRequest(name))
		require.NoError(t, err)
	}
	_, err := r.Decide(1, model.StatusApproved)
	require.NoError(t, err)
	_, err = r.Decide(3, model.StatusRejected)
	require.NoError(t, err)

	require.Equal(t, 2, r.ClearHistory())
	require.Empty(t, r.ListHistory())
	require.Equal(t, []int{2}, ids(r.ListPending()))

	require.Equal(t, 0, r.ClearHistory())
	require.Equal(t, []int{2}, ids(r.ListPending()))

	_, err = r.Get(1)
	require.ErrorIs(t, err, errs.ErrNotFound)
	_, err = r.Decide(3, model.StatusApproved)
	require.ErrorIs(t, err, errs.ErrNotFound)

	loan, err := r.Submit(validRequest("Dewi"))
	require.NoError(t, err)
	require.Equal(t, 4, loan.ID, "ids are not reused after clearing")

	_, err = r.Decide(2, model.StatusApproved)
	require.NoError(t, err)
	require.Equal(t, []int{4}, ids(r.ListPending()))
}

func TestRegistry_EndToEnd(t *testing.T) {
	t.Parallel()
	r := newRegistry()

	loan, err := r.Submit(model.SubmitRequest{
		BorrowerName: "Andi",
		ItemType:     "Tenda",
		Quantity:     2,
		LoanDate:     date(2024, 1, 1),
		ReturnDate:   date(2024, 1, 3),
	})
	require.NoError(t, err)
	require.Equal(t, 1, loan.ID)
	require.Equal(t, model.StatusPending, loan.Status)

	loan, err = r.Decide(1, model.StatusRejected)
	require.NoError(t, err)
	require.Equal(t, 1, loan.ID)
	require.Equal(t, model.StatusRejected, loan.Status)

	require.Equal(t, []int{1}, ids(r.ListHistory()))
	r.ClearHistory()
	require.Empty(t, r.ListHistory())
}
