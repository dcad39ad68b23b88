// Package pgstore implements storage.Storage on PostgreSQL through database/sql and lib/pq.
package pgstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"productapi/internal/model"
	"productapi/internal/storage"

	"github.com/lib/pq"
)

const uniqueViolation = "23505"

const productColumns = "id, product_id, name, price, featured, rating, created_at, company"

type PostgresStore struct {
	db *sql.DB
}

var _ storage.Storage = (*PostgresStore)(nil)

// NewPostgresStore opens dsn, checks the connection and creates missing tables.
func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	s := New(db)
	if err := s.Init(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func New(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Init() error {
	if err := s.createProductsTable(); err != nil {
		return fmt.Errorf("could not create products table: %w", err)
	}
	if err := s.createUserTable(); err != nil {
		return fmt.Errorf("could not create users table: %w", err)
	}
	return nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func (s *PostgresStore) createProductsTable() error {
	query := `CREATE TABLE IF NOT EXISTS products (
		id TEXT PRIMARY KEY,
		product_id TEXT NOT NULL,
		name TEXT NOT NULL,
		price DOUBLE PRECISION NOT NULL,
		featured BOOLEAN NOT NULL DEFAULT FALSE,
		rating DOUBLE PRECISION,
		created_at TIMESTAMPTZ NOT NULL,
		company TEXT NOT NULL
	)`

	_, err := s.db.Exec(query)
	return err
}

func (s *PostgresStore) createUserTable() error {
	query := `CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL
	)`

	_, err := s.db.Exec(query)
	return err
}

func (s *PostgresStore) CreateUser(ctx context.Context, u *model.User) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, username, password_hash) VALUES ($1, $2, $3)`,
		u.ID, u.Username, u.PasswordHash)
	return wrapError(err)
}

func (s *PostgresStore) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	u := new(model.User)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, username, password_hash FROM users WHERE username = $1`, username,
	).Scan(&u.ID, &u.Username, &u.PasswordHash)
	if err != nil {
		return nil, wrapError(err)
	}
	return u, nil
}

func (s *PostgresStore) CreateProduct(ctx context.Context, p *model.Product) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO products (`+productColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, p.ID, p.ProductID, p.Name, p.Price, p.Featured, p.Rating, p.CreatedAt, p.Company)

	return wrapError(err)
}

func (s *PostgresStore) GetProducts(ctx context.Context, filter model.ProductFilter) ([]*model.Product, error) {
	where, args := productWhere(filter)
	rows, err := s.db.QueryContext(ctx, "SELECT "+productColumns+" FROM products"+where, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []*model.Product{}
	for rows.Next() {
		product, err := scanIntoProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}

	return products, rows.Err()
}

func (s *PostgresStore) GetProductByID(ctx context.Context, id string) (*model.Product, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+productColumns+" FROM products WHERE id = $1", id)
	p, err := scanIntoProduct(row)
	if err != nil {
		return nil, wrapError(err)
	}
	return p, nil
}

func (s *PostgresStore) UpdateProduct(ctx context.Context, id string, patch model.ProductPatch) (*model.Product, error) {
	set, args := productSet(patch)
	if len(set) == 0 {
		return s.GetProductByID(ctx, id)
	}
	args = append(args, id)
	query := fmt.Sprintf("UPDATE products SET %s WHERE id = $%d RETURNING %s",
		strings.Join(set, ", "), len(args), productColumns)

	p, err := scanIntoProduct(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, wrapError(err)
	}
	return p, nil
}

func (s *PostgresStore) DeleteProduct(ctx context.Context, id string) (*model.Product, error) {
	row := s.db.QueryRowContext(ctx, "DELETE FROM products WHERE id = $1 RETURNING "+productColumns, id)
	p, err := scanIntoProduct(row)
	if err != nil {
		return nil, wrapError(err)
	}
	return p, nil
}

func productWhere(f model.ProductFilter) (string, []any) {
	var conds []string
	var args []any
	if f.Featured != nil {
		args = append(args, *f.Featured)
		conds = append(conds, fmt.Sprintf("featured = $%d", len(args)))
	}
	if f.MaxPrice != nil {
		args = append(args, *f.MaxPrice)
		conds = append(conds, fmt.Sprintf("price < $%d", len(args)))
	}
	if f.MinRating != nil {
		args = append(args, *f.MinRating)
		conds = append(conds, fmt.Sprintf("rating > $%d", len(args)))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func productSet(p model.ProductPatch) ([]string, []any) {
	var set []string
	var args []any
	add := func(col string, v any) {
		args = append(args, v)
		set = append(set, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if p.ProductID != nil {
		add("product_id", *p.ProductID)
	}
	if p.Name != nil {
		add("name", *p.Name)
	}
	if p.Price != nil {
		add("price", *p.Price)
	}
	if p.Featured != nil {
		add("featured", *p.Featured)
	}
	if p.Rating != nil {
		add("rating", *p.Rating)
	} else if p.ClearRating {
		set = append(set, "rating = NULL")
	}
	if p.CreatedAt != nil {
		add("created_at", *p.CreatedAt)
	}
	if p.Company != nil {
		add("company", *p.Company)
	}
	return set, args
}

type scanner interface {
	Scan(dest ...any) error
}

func scanIntoProduct(row scanner) (*model.Product, error) {
	product := new(model.Product)
	var rating sql.NullFloat64
	err := row.Scan(
		&product.ID,
		&product.ProductID,
		&product.Name,
		&product.Price,
		&product.Featured,
		&rating,
		&product.CreatedAt,
		&product.Company,
	)
	if err != nil {
		return nil, err
	}
	if rating.Valid {
		product.Rating = &rating.Float64
	}
	return product, nil
}

func wrapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return storage.ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return storage.ErrDuplicate
	}
	return err
}
