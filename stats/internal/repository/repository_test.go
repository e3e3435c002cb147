package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/Astemirdum/pinjam-rt/pkg/kafka"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestInsertEventQuery(t *testing.T) {
	t.Parallel()
	ts := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	event := kafka.EventLoan{
		EventUid:  "7f1c",
		Timestamp: ts,
		EventType: kafka.EventDecided,
		LoanID:    4,
		ItemType:  "Tenda",
		Quantity:  2,
		Status:    "APPROVED",
	}

	q, args, err := insertEventQuery(event).ToSql()
	require.NoError(t, err)
	require.Equal(t, "INSERT INTO loan_events (event_uid,timestamp,event_type,loan_id,item_type,quantity,status,cnt) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)", q)
	require.Equal(t, []interface{}{"7f1c", ts, kafka.EventDecided, 4, "Tenda", 2, "APPROVED", 0}, args)
}

func TestItemStatsQuery(t *testing.T) {
	t.Parallel()
	q, args, err := itemStatsQuery().ToSql()
	require.NoError(t, err)

	for _, part := range []string{
		"SELECT item_type, ",
		"count(*) filter (where event_type = 'SUBMITTED') as submitted",
		"count(*) filter (where event_type = 'DECIDED' and status = 'APPROVED') as approved",
		"count(*) filter (where event_type = 'DECIDED' and status = 'REJECTED') as rejected",
		"coalesce(sum(quantity) filter (where event_type = 'SUBMITTED'), 0) as quantity",
		"FROM loan_events WHERE event_type <> $1 GROUP BY item_type ORDER BY item_type",
	} {
		require.Contains(t, q, part)
	}
	require.Equal(t, []interface{}{kafka.EventCleared}, args)
}

func TestTotalsQuery(t *testing.T) {
	t.Parallel()
	q, args, err := totalsQuery().ToSql()
	require.NoError(t, err)
	require.Equal(t, "SELECT coalesce(sum(cnt) filter (where event_type = 'CLEARED'), 0), max(timestamp) FROM loan_events", q)
	require.Empty(t, args)
}

func TestSaveError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		err       error
		duplicate bool
	}{
		{
			name:      "unique violation",
			err:       &pgconn.PgError{Code: pgerrcode.UniqueViolation},
			duplicate: true,
		},
		{
			name:      "wrapped unique violation",
			err:       fmt.Errorf("exec: %w", &pgconn.PgError{Code: pgerrcode.UniqueViolation}),
			duplicate: true,
		},
		{
			name: "other pg error",
			err:  &pgconn.PgError{Code: pgerrcode.UndefinedTable},
		},
		{
			name: "connection error",
			err:  errors.New("conn closed"),
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := saveError(tt.err, "7f1c")
			require.Equal(t, tt.duplicate, errors.Is(err, ErrDuplicateEvent))
			if tt.duplicate {
				require.EqualError(t, err, "7f1c: event already stored")
			} else {
				require.Equal(t, tt.err, err)
			}
		})
	}
}
