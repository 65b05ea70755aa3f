// Package product provides the catalog repository and its Postgres, memory
// and Redis-cached implementations.
package product

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/MikeMC777/cafe-altura/internal/db"
)

var (
	ErrNotFound = errors.New("product not found")
)

type Repository interface {
	List(ctx context.Context) ([]Product, error)
	GetByID(ctx context.Context, id string) (*Product, error)
	// ReplaceAll wipes the catalog and inserts ps. Used by the seeder.
	ReplaceAll(ctx context.Context, ps []Product) error
}

type PGRepo struct{ db db.Pool }

func NewPGRepo(pool db.Pool) *PGRepo { return &PGRepo{db: pool} }

const selectProducts = `
		SELECT id, name, origin, notes, prices, roasts, grinds, created_at
		FROM products`

func (r *PGRepo) List(ctx context.Context) ([]Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, selectProducts+` ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	out := []Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (*Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	p, err := scanProduct(r.db.QueryRow(ctx, selectProducts+` WHERE id=$1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return p, err
}

func (r *PGRepo) ReplaceAll(ctx context.Context, ps []Product) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM products`); err != nil {
		return fmt.Errorf("wipe products: %w", err)
	}
	for i := range ps {
		p := &ps[i]
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		prices, roasts, grinds, err := marshalLists(p)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO products (id, name, origin, notes, prices, roasts, grinds, created_at)
			VALUES ($1,$2,$3,$4,$5,$6,$7,NOW())
		`, p.ID, p.Name, p.Origin, p.Notes, prices, roasts, grinds); err != nil {
			return fmt.Errorf("insert product %q: %w", p.Name, err)
		}
	}
	return tx.Commit(ctx)
}

func marshalLists(p *Product) (prices, roasts, grinds []byte, err error) {
	if prices, err = json.Marshal(p.Prices); err != nil {
		return nil, nil, nil, fmt.Errorf("encode prices: %w", err)
	}
	if roasts, err = json.Marshal(p.Roasts); err != nil {
		return nil, nil, nil, fmt.Errorf("encode roasts: %w", err)
	}
	if grinds, err = json.Marshal(p.Grinds); err != nil {
		return nil, nil, nil, fmt.Errorf("encode grinds: %w", err)
	}
	return prices, roasts, grinds, nil
}

func scanProduct(row pgx.Row) (*Product, error) {
	var (
		p                      Product
		prices, roasts, grinds []byte
		created                time.Time
	)
	if err := row.Scan(&p.ID, &p.Name, &p.Origin, &p.Notes, &prices, &roasts, &grinds, &created); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan product: %w", err)
	}
	p.CreatedAt = &created
	if err := json.Unmarshal(prices, &p.Prices); err != nil {
		return nil, fmt.Errorf("decode prices of %s: %w", p.ID, err)
	}
	if err := json.Unmarshal(roasts, &p.Roasts); err != nil {
		return nil, fmt.Errorf("decode roasts of %s: %w", p.ID, err)
	}
	if err := json.Unmarshal(grinds, &p.Grinds); err != nil {
		return nil, fmt.Errorf("decode grinds of %s: %w", p.ID, err)
	}
	return &p, nil
}
