package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	domainErrors "storefront/internal/domain/errors"
	"storefront/internal/domain/model"
	"storefront/internal/domain/repository"
)

// pgxPool abstracts the pgxpool methods the storage uses, so tests can swap
// in a mock pool.
type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   pgxPool
	logger *slog.Logger
}

type userRepository struct {
	storage *Storage
}

type productRepository struct {
	storage *Storage
}

type cartRepository struct {
	storage *Storage
}

type orderRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Users() repository.UserRepository {
	return &userRepository{storage: s}
}

func (s *Storage) Products() repository.ProductRepository {
	return &productRepository{storage: s}
}

func (s *Storage) Carts() repository.CartRepository {
	return &cartRepository{storage: s}
}

func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id TEXT PRIMARY KEY,
            login TEXT UNIQUE NOT NULL,
            password_hash TEXT NOT NULL,
            email TEXT NOT NULL DEFAULT '',
            first_name TEXT NOT NULL DEFAULT '',
            last_name TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS products (
            id TEXT PRIMARY KEY,
            name TEXT NOT NULL,
            price NUMERIC(12,2) NOT NULL CHECK (price >= 0),
            stock INT NOT NULL CHECK (stock >= 0),
            active BOOLEAN NOT NULL DEFAULT TRUE,
            image_url TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS carts (
            id TEXT PRIMARY KEY,
            user_id TEXT NOT NULL REFERENCES users(id),
            items JSONB NOT NULL DEFAULT '[]',
            total_amount NUMERIC(12,2) NOT NULL DEFAULT 0,
            total_items INT NOT NULL DEFAULT 0,
            status TEXT NOT NULL,
            active BOOLEAN NOT NULL DEFAULT TRUE,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            id TEXT PRIMARY KEY,
            user_id TEXT NOT NULL REFERENCES users(id),
            user_email TEXT NOT NULL DEFAULT '',
            user_name TEXT NOT NULL DEFAULT '',
            items JSONB NOT NULL DEFAULT '[]',
            total_amount NUMERIC(12,2) NOT NULL DEFAULT 0,
            total_items INT NOT NULL DEFAULT 0,
            shipping_cost NUMERIC(12,2) NOT NULL DEFAULT 0,
            discount_amount NUMERIC(12,2) NOT NULL DEFAULT 0,
            status TEXT NOT NULL,
            payment_method TEXT NOT NULL DEFAULT '',
            payment_status TEXT NOT NULL,
            delivery_address TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            confirmed_at TIMESTAMPTZ,
            shipped_at TIMESTAMPTZ,
            delivered_at TIMESTAMPTZ,
            active BOOLEAN NOT NULL DEFAULT TRUE
        )`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_carts_active_user ON carts(user_id) WHERE status = 'ACTIVE'`,
		`CREATE INDEX IF NOT EXISTS idx_orders_user ON orders(user_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// --- UserRepository implementation ---

func (r *userRepository) Create(ctx context.Context, user *model.User) (*model.User, error) {
	const query = `INSERT INTO users (id, login, password_hash, email, first_name, last_name)
                   VALUES ($1, $2, $3, $4, $5, $6) RETURNING created_at`
	u := *user
	err := r.storage.pool.QueryRow(ctx, query,
		user.ID, user.Login, user.PasswordHash, user.Email, user.FirstName, user.LastName,
	).Scan(&u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	const query = `SELECT id, login, password_hash, email, first_name, last_name, created_at
                   FROM users WHERE login=$1`
	return r.scanUser(r.storage.pool.QueryRow(ctx, query, login))
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	const query = `SELECT id, login, password_hash, email, first_name, last_name, created_at
                   FROM users WHERE id=$1`
	return r.scanUser(r.storage.pool.QueryRow(ctx, query, id))
}

func (r *userRepository) scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Login, &u.PasswordHash, &u.Email, &u.FirstName, &u.LastName, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// --- ProductRepository implementation ---

const productColumns = `id, name, price, stock, active, image_url, created_at, updated_at`

func (r *productRepository) Create(ctx context.Context, product *model.Product) error {
	const query = `INSERT INTO products (id, name, price, stock, active, image_url, created_at, updated_at)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.storage.pool.Exec(ctx, query,
		product.ID, product.Name, product.Price, product.Stock,
		product.Active, product.ImageURL, product.CreatedAt, product.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domainErrors.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *productRepository) GetByID(ctx context.Context, id string) (*model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id=$1`
	var p model.Product
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Price, &p.Stock, &p.Active, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *productRepository) ListActive(ctx context.Context) ([]model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE active ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Product
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Stock, &p.Active, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *productRepository) Update(ctx context.Context, product *model.Product) error {
	const query = `UPDATE products SET name=$2, price=$3, stock=$4, active=$5, image_url=$6, updated_at=$7
                   WHERE id=$1`
	tag, err := r.storage.pool.Exec(ctx, query,
		product.ID, product.Name, product.Price, product.Stock,
		product.Active, product.ImageURL, product.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// --- CartRepository implementation ---

const cartColumns = `id, user_id, items, total_amount, total_items, status, active, created_at, updated_at`

func (r *cartRepository) Create(ctx context.Context, cart *model.Cart) error {
	items, err := json.Marshal(cart.Items)
	if err != nil {
		return fmt.Errorf("marshal cart items: %w", err)
	}
	const query = `INSERT INTO carts (id, user_id, items, total_amount, total_items, status, active, created_at, updated_at)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err = r.storage.pool.Exec(ctx, query,
		cart.ID, cart.UserID, items, cart.TotalAmount, cart.TotalItems,
		cart.Status, cart.Active, cart.CreatedAt, cart.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domainErrors.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *cartRepository) GetByID(ctx context.Context, id string) (*model.Cart, error) {
	query := `SELECT ` + cartColumns + ` FROM carts WHERE id=$1`
	return scanCart(r.storage.pool.QueryRow(ctx, query, id))
}

func (r *cartRepository) GetActiveByUser(ctx context.Context, userID string) (*model.Cart, error) {
	query := `SELECT ` + cartColumns + ` FROM carts WHERE user_id=$1 AND status='ACTIVE'`
	return scanCart(r.storage.pool.QueryRow(ctx, query, userID))
}

func (r *cartRepository) Update(ctx context.Context, cart *model.Cart) error {
	items, err := json.Marshal(cart.Items)
	if err != nil {
		return fmt.Errorf("marshal cart items: %w", err)
	}
	const query = `UPDATE carts SET items=$2, total_amount=$3, total_items=$4, status=$5, active=$6, updated_at=$7
                   WHERE id=$1`
	tag, err := r.storage.pool.Exec(ctx, query,
		cart.ID, items, cart.TotalAmount, cart.TotalItems, cart.Status, cart.Active, cart.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *cartRepository) ListStaleActive(ctx context.Context, idleSince time.Time, limit int) ([]model.Cart, error) {
	query := `SELECT ` + cartColumns + ` FROM carts
              WHERE status='ACTIVE' AND updated_at < $1
              ORDER BY updated_at
              LIMIT $2`
	rows, err := r.storage.pool.Query(ctx, query, idleSince, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Cart
	for rows.Next() {
		cart, err := scanCartRow(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *cart)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func scanCart(row pgx.Row) (*model.Cart, error) {
	cart, err := scanCartRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return cart, nil
}

func scanCartRow(row pgx.Row) (*model.Cart, error) {
	var (
		c     model.Cart
		items []byte
	)
	err := row.Scan(&c.ID, &c.UserID, &items, &c.TotalAmount, &c.TotalItems,
		&c.Status, &c.Active, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &c.Items); err != nil {
		return nil, fmt.Errorf("unmarshal cart items: %w", err)
	}
	return &c, nil
}

// --- OrderRepository implementation ---

const orderColumns = `id, user_id, user_email, user_name, items, total_amount, total_items,
        shipping_cost, discount_amount, status, payment_method, payment_status,
        delivery_address, created_at, updated_at, confirmed_at, shipped_at, delivered_at, active`

// SaveCheckout commits the order insert, the stock decrements, and the cart
// completion in one transaction. Stock rows are locked and re-checked under
// the lock, so two concurrent checkouts cannot both take the last unit.
func (r *orderRepository) SaveCheckout(ctx context.Context, order *model.Order, cart *model.Cart) error {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("marshal order items: %w", err)
	}

	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		for _, item := range order.Items {
			const lockQuery = `SELECT stock FROM products WHERE id=$1 AND active FOR UPDATE`
			var stock int
			if err := tx.QueryRow(ctx, lockQuery, item.ProductID).Scan(&stock); err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return fmt.Errorf("%w: %s", domainErrors.ErrProductUnavailable, item.ProductID)
				}
				return err
			}
			if stock < item.Quantity {
				return &domainErrors.InsufficientStockError{
					ProductID: item.ProductID,
					Requested: item.Quantity,
					Available: stock,
				}
			}
			const decrementQuery = `UPDATE products SET stock = stock - $2, updated_at=NOW() WHERE id=$1`
			if _, err := tx.Exec(ctx, decrementQuery, item.ProductID, item.Quantity); err != nil {
				return err
			}
		}

		const insertOrder = `INSERT INTO orders (id, user_id, user_email, user_name, items,
                total_amount, total_items, shipping_cost, discount_amount, status,
                payment_method, payment_status, delivery_address, created_at, updated_at, active)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
		if _, err := tx.Exec(ctx, insertOrder,
			order.ID, order.UserID, order.UserEmail, order.UserName, items,
			order.TotalAmount, order.TotalItems, order.ShippingCost, order.DiscountAmount,
			order.Status, order.PaymentMethod, order.PaymentStatus, order.DeliveryAddress,
			order.CreatedAt, order.UpdatedAt, order.Active); err != nil {
			return err
		}

		// Only an ACTIVE cart may be completed; a concurrent checkout that
		// already committed leaves zero rows and aborts this transaction.
		const completeCart = `UPDATE carts SET status=$2, active=$3, updated_at=$4 WHERE id=$1 AND status='ACTIVE'`
		tag, err := tx.Exec(ctx, completeCart, cart.ID, cart.Status, cart.Active, cart.UpdatedAt)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domainErrors.ErrCartUnavailable
		}

		return nil
	})
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id=$1`
	order, err := scanOrderRow(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) Update(ctx context.Context, order *model.Order) error {
	const query = `UPDATE orders SET status=$2, payment_status=$3, updated_at=$4,
                   confirmed_at=$5, shipped_at=$6, delivered_at=$7, active=$8
                   WHERE id=$1`
	tag, err := r.storage.pool.Exec(ctx, query,
		order.ID, order.Status, order.PaymentStatus, order.UpdatedAt,
		order.ConfirmedAt, order.ShippedAt, order.DeliveredAt, order.Active)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *orderRepository) ListByUser(ctx context.Context, userID string) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE user_id=$1 ORDER BY created_at DESC`
	return r.list(ctx, query, userID)
}

func (r *orderRepository) ListByStatus(ctx context.Context, status model.OrderStatus) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE status=$1 ORDER BY created_at DESC`
	return r.list(ctx, query, status)
}

func (r *orderRepository) List(ctx context.Context) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC`
	return r.list(ctx, query)
}

func (r *orderRepository) list(ctx context.Context, query string, args ...any) ([]model.Order, error) {
	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		order, err := scanOrderRow(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) Stats(ctx context.Context) (*model.OrderStats, error) {
	const query = `SELECT status, COUNT(*), COALESCE(SUM(total_amount), 0) FROM orders GROUP BY status`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := &model.OrderStats{
		StatusCounts: make(map[model.OrderStatus]int),
		TotalRevenue: decimal.Zero,
	}
	for rows.Next() {
		var (
			status model.OrderStatus
			count  int
			total  decimal.Decimal
		)
		if err := rows.Scan(&status, &count, &total); err != nil {
			return nil, err
		}
		stats.StatusCounts[status] = count
		stats.TotalOrders += count
		if status == model.OrderStatusDelivered {
			stats.TotalRevenue = stats.TotalRevenue.Add(total)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return stats, nil
}

func scanOrderRow(row pgx.Row) (*model.Order, error) {
	var (
		o     model.Order
		items []byte
	)
	err := row.Scan(&o.ID, &o.UserID, &o.UserEmail, &o.UserName, &items,
		&o.TotalAmount, &o.TotalItems, &o.ShippingCost, &o.DiscountAmount,
		&o.Status, &o.PaymentMethod, &o.PaymentStatus, &o.DeliveryAddress,
		&o.CreatedAt, &o.UpdatedAt, &o.ConfirmedAt, &o.ShippedAt, &o.DeliveredAt, &o.Active)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &o.Items); err != nil {
		return nil, fmt.Errorf("unmarshal order items: %w", err)
	}
	return &o, nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}
