package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Astemirdum/pinjam-rt/pkg/kafka"
	"github.com/Astemirdum/pinjam-rt/stats/internal/model"
	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var ErrDuplicateEvent = errors.New("event already stored")

type Repository interface {
	SaveEvent(ctx context.Context, event kafka.EventLoan) error
	Summary(ctx context.Context) (model.Summary, error)
}

type repository struct {
	db  *pgxpool.Pool
	log *zap.Logger
}

func NewRepository(db *pgxpool.Pool, log *zap.Logger) (*repository, error) {
	return &repository{
		db:  db,
		log: log.Named("repo"),
	}, nil
}

const (
	eventsTableName = `loan_events`
)

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func insertEventQuery(event kafka.EventLoan) sq.InsertBuilder {
	return qb.Insert(eventsTableName).
		Columns("event_uid", "timestamp", "event_type", "loan_id", "item_type", "quantity", "status", "cnt").
		Values(event.EventUid, event.Timestamp, event.EventType, event.LoanID, event.ItemType, event.Quantity, event.Status, event.Count)
}

func itemStatsQuery() sq.SelectBuilder {
	return qb.Select(
		"item_type",
		"count(*) filter (where event_type = 'SUBMITTED') as submitted",
		"count(*) filter (where event_type = 'DECIDED' and status = 'APPROVED') as approved",
		"count(*) filter (where event_type = 'DECIDED' and status = 'REJECTED') as rejected",
		"coalesce(sum(quantity) filter (where event_type = 'SUBMITTED'), 0) as quantity",
	).
		From(eventsTableName).
		Where(sq.NotEq{"event_type": kafka.EventCleared}).
		GroupBy("item_type").
		OrderBy("item_type")
}

func totalsQuery() sq.SelectBuilder {
	return qb.Select(
		"coalesce(sum(cnt) filter (where event_type = 'CLEARED'), 0)",
		"max(timestamp)",
	).
		From(eventsTableName)
}

// saveError turns a unique violation on event_uid into ErrDuplicateEvent.
func saveError(err error, eventUid string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return errors.Wrap(ErrDuplicateEvent, eventUid)
	}
	return err
}

func (r *repository) SaveEvent(ctx context.Context, event kafka.EventLoan) error {
	q, args, err := insertEventQuery(event).ToSql()
	if err != nil {
		return err
	}
	if _, err := r.db.Exec(ctx, q, args...); err != nil {
		err = saveError(err, event.EventUid)
		if !errors.Is(err, ErrDuplicateEvent) {
			r.log.Error("SaveEvent", zap.String("q", q), zap.Any("args", args))
		}
		return err
	}
	return nil
}

func (r *repository) Summary(ctx context.Context) (model.Summary, error) {
	q, args, err := itemStatsQuery().ToSql()
	if err != nil {
		return model.Summary{}, err
	}
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return model.Summary{}, err
	}
	items, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.ItemStats])
	if err != nil {
		return model.Summary{}, fmt.Errorf("pgx.CollectRows: %w", err)
	}

	q, args, err = totalsQuery().ToSql()
	if err != nil {
		return model.Summary{}, err
	}
	var (
		cleared   int
		updatedAt *time.Time
	)
	if err := r.db.QueryRow(ctx, q, args...).Scan(&cleared, &updatedAt); err != nil {
		return model.Summary{}, err
	}

	sum := model.Summary{Items: items, Cleared: cleared}
	if updatedAt != nil {
		sum.UpdatedAt = updatedAt.UTC()
	}
	return sum, nil
}
