package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/MarkCnw/I-Have-Gpu-sub000/internal/model"
)

const ordersTable = "orders"

var orderColumns = []string{
	"id", "user_id", "items", "total_cents", "status",
	"rejection_reason", "tracking_number", "carrier", "payment_proof",
	"version", "created_at", "updated_at",
}

type repository struct {
	pool *pgxpool.Pool
	sb   sq.StatementBuilderType
}

func NewOrderRepository(pool *pgxpool.Pool) *repository {
	return &repository{
		pool: pool,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *repository) Create(ctx context.Context, ord *model.Order) (uuid.UUID, error) {
	const op = "repository.Create"

	items, err := json.Marshal(ord.Items)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s marshal items: %w", op, err)
	}

	q := r.sb.
		Insert(ordersTable).
		Columns("user_id", "items", "total_cents", "status", "version").
		Values(ord.UserID, items, ord.TotalCents, ord.Status, 1).
		Suffix("RETURNING id")

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	var orderID uuid.UUID
	if err := r.pool.QueryRow(ctx, sqlStr, args...).Scan(&orderID); err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	return orderID, nil
}

func (r *repository) OrderByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	const op = "repository.OrderByID"

	q := r.sb.
		Select(orderColumns...).
		From(ordersTable).
		Where(sq.Eq{"id": id})

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var (
		ord      model.Order
		rawItems []byte
	)
	err = r.pool.QueryRow(ctx, sqlStr, args...).Scan(
		&ord.ID,
		&ord.UserID,
		&rawItems,
		&ord.TotalCents,
		&ord.Status,
		&ord.RejectionReason,
		&ord.TrackingNumber,
		&ord.Carrier,
		&ord.PaymentProof,
		&ord.Version,
		&ord.CreatedAt,
		&ord.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrOrderNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := json.Unmarshal(rawItems, &ord.Items); err != nil {
		return nil, fmt.Errorf("%s unmarshal items: %w", op, err)
	}

	return &ord, nil
}

// Update writes upd back guarded by upd.Version: the row is touched only if
// it still carries that version, and the version is bumped in the same
// statement. A zero-row result means either the order vanished or somebody
// else won the race; the follow-up read tells the two apart.
func (r *repository) Update(ctx context.Context, upd *model.Order) error {
	const op = "repository.Update"

	if upd.ID == uuid.Nil {
		return fmt.Errorf("%s: %w: empty order id", op, model.ErrValidation)
	}

	items, err := json.Marshal(upd.Items)
	if err != nil {
		return fmt.Errorf("%s marshal items: %w", op, err)
	}

	q := r.sb.
		Update(ordersTable).
		Set("items", items).
		Set("total_cents", upd.TotalCents).
		Set("status", upd.Status).
		Set("rejection_reason", upd.RejectionReason).
		Set("tracking_number", upd.TrackingNumber).
		Set("carrier", upd.Carrier).
		Set("payment_proof", upd.PaymentProof).
		Set("version", upd.Version+1).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": upd.ID, "version": upd.Version})

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	ct, err := r.pool.Exec(ctx, sqlStr, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if ct.RowsAffected() == 0 {
		if _, rerr := r.OrderByID(ctx, upd.ID); rerr != nil {
			return rerr
		}
		return model.ErrStaleWrite
	}

	upd.Version++

	return nil
}
