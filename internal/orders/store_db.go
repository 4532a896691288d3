package orders

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"MiniCart/internal/inventory"
)

const (
	pingTimeout  = 1 * time.Second
	queryTimeout = 3 * time.Second
	pgUniqueCode = "23505"
)

const schema = `
CREATE TABLE IF NOT EXISTS orders (
	id          TEXT PRIMARY KEY,
	total_items INTEGER NOT NULL,
	total_price NUMERIC(12, 2) NOT NULL,
	placed_at   TIMESTAMPTZ NOT NULL
);
CREATE TABLE IF NOT EXISTS order_items (
	order_id   TEXT NOT NULL REFERENCES orders (id),
	position   INTEGER NOT NULL,
	product_id INTEGER NOT NULL,
	name       TEXT NOT NULL,
	price      NUMERIC(12, 2) NOT NULL,
	quantity   INTEGER NOT NULL,
	subtotal   NUMERIC(14, 4) NOT NULL,
	PRIMARY KEY (order_id, position)
);`

// PostgresStore expects a *sql.DB opened with the pgx stdlib driver.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Migrate(ctx context.Context) error {
	return withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		if _, err := s.db.ExecContext(ctx, schema); err != nil {
			return fmt.Errorf("orders: migrate: %w", err)
		}
		return nil
	})
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return withTimeout(ctx, pingTimeout, func(ctx context.Context) error {
		return s.db.PingContext(ctx)
	})
}

func (s *PostgresStore) Create(ctx context.Context, o inventory.Order) error {
	return withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
		if err != nil {
			return err
		}
		defer func() { _ = tx.Rollback() }()

		_, err = tx.ExecContext(ctx, `
			INSERT INTO orders (id, total_items, total_price, placed_at)
			VALUES ($1, $2, $3, $4)
		`, o.ID, o.TotalItems, o.TotalPrice, o.PlacedAt)
		if err != nil {
			if isUniqueViolation(err) {
				return ErrDuplicateOrder
			}
			return err
		}

		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO order_items (order_id, position, product_id, name, price, quantity, subtotal)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for i, it := range o.Items {
			if _, err := stmt.ExecContext(ctx, o.ID, i, it.ProductID, it.Name, it.Price, it.Quantity, it.Subtotal); err != nil {
				return err
			}
		}

		return tx.Commit()
	})
}

func (s *PostgresStore) Get(ctx context.Context, id string) (inventory.Order, bool, error) {
	var (
		o     inventory.Order
		found bool
	)

	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		err := s.db.QueryRowContext(ctx, `
			SELECT id, total_items, total_price, placed_at
			FROM orders
			WHERE id = $1
		`, id).Scan(&o.ID, &o.TotalItems, &o.TotalPrice, &o.PlacedAt)
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		if err != nil {
			return err
		}
		found = true

		rows, err := s.db.QueryContext(ctx, `
			SELECT product_id, name, price, quantity, subtotal
			FROM order_items
			WHERE order_id = $1
			ORDER BY position ASC
		`, id)
		if err != nil {
			return err
		}
		defer rows.Close()

		o.Items = make([]inventory.LineItem, 0, 8)
		for rows.Next() {
			var it inventory.LineItem
			if err := rows.Scan(&it.ProductID, &it.Name, &it.Price, &it.Quantity, &it.Subtotal); err != nil {
				return err
			}
			o.Items = append(o.Items, it)
		}
		return rows.Err()
	})

	if err != nil {
		return inventory.Order{}, false, err
	}
	if !found {
		return inventory.Order{}, false, nil
	}
	o.PlacedAt = o.PlacedAt.UTC()
	return o, true, nil
}

func withTimeout(parent context.Context, d time.Duration, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(parent, d)
	defer cancel()
	return fn(ctx)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueCode
}
