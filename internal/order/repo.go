package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/MikeMC777/cafe-altura/internal/db"
)

var (
	ErrNotFound = errors.New("order not found")
)

type Repository interface {
	Create(ctx context.Context, o *Order) error
	List(ctx context.Context) ([]Order, error)
	GetByID(ctx context.Context, id string) (*Order, error)
	// UpdateStatus overwrites the status and returns the updated order
	// together with the status it had before.
	UpdateStatus(ctx context.Context, id string, status Status) (*Order, Status, error)
}

type PGRepo struct{ db db.Pool }

func NewPGRepo(pool db.Pool) *PGRepo { return &PGRepo{db: pool} }

const orderCols = `id, client_name, channel, detail, total_amount::text, status, created_at`

func (r *PGRepo) Create(ctx context.Context, o *Order) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.db.Exec(ctx, `
		INSERT INTO orders (id, client_name, channel, detail, total_amount, status, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
	`, o.ID, o.ClientName, string(o.Channel), o.Detail, o.TotalAmount.StringFixed(2), string(o.Status), o.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

func (r *PGRepo) List(ctx context.Context) ([]Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT `+orderCols+`
		FROM orders
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	out := []Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (*Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	o, err := scanOrder(r.db.QueryRow(ctx, `
		SELECT `+orderCols+`
		FROM orders WHERE id=$1
	`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return o, err
}

func (r *PGRepo) UpdateStatus(ctx context.Context, id string, status Status) (*Order, Status, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// prev is read under the row lock taken by the UPDATE.
	row := r.db.QueryRow(ctx, `
		WITH prev AS (
			SELECT id, status FROM orders WHERE id=$1 FOR UPDATE
		)
		UPDATE orders o
		SET status = $2
		FROM prev
		WHERE o.id = prev.id
		RETURNING o.id, o.client_name, o.channel, o.detail, o.total_amount::text, o.status, o.created_at, prev.status
	`, id, string(status))

	var (
		o     Order
		total string
		prev  string
	)
	err := row.Scan(&o.ID, &o.ClientName, &o.Channel, &o.Detail, &total, &o.Status, &o.CreatedAt, &prev)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, "", ErrNotFound
	}
	if err != nil {
		return nil, "", fmt.Errorf("update order status: %w", err)
	}
	if o.TotalAmount, err = decimal.NewFromString(total); err != nil {
		return nil, "", fmt.Errorf("order %s total: %w", o.ID, err)
	}
	return &o, Status(prev), nil
}

func scanOrder(row pgx.Row) (*Order, error) {
	var (
		o     Order
		total string
	)
	if err := row.Scan(&o.ID, &o.ClientName, &o.Channel, &o.Detail, &total, &o.Status, &o.CreatedAt); err != nil {
		return nil, err
	}
	amount, err := decimal.NewFromString(total)
	if err != nil {
		return nil, fmt.Errorf("order %s total: %w", o.ID, err)
	}
	o.TotalAmount = amount
	return &o, nil
}
