package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// PostgresStore persists products in PostgreSQL. Materials and declarations
// live in JSONB columns because their shapes are supplier-controlled and
// sparse.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const productColumns = `
	id, name, category, description, materials, sustainability_score,
	declarations, verification_status, last_verification_date,
	compliance_summary, created_at, updated_at`

func (s *PostgresStore) Create(ctx context.Context, p Product) error {
	materials, err := json.Marshal(p.Materials)
	if err != nil {
		return fmt.Errorf("marshal materials: %w", err)
	}
	declarations, err := json.Marshal(p.Declarations)
	if err != nil {
		return fmt.Errorf("marshal declarations: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO products (
			id, name, category, description, materials, sustainability_score,
			declarations, verification_status, compliance_summary, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, p.ID, p.Name, p.Category, p.Description, materials, p.SustainabilityScore,
		declarations, p.VerificationStatus, p.ComplianceSummary, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, id string) (Product, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+productColumns+`
		FROM products WHERE id = $1
	`, id)
	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Product{}, ErrNotFound
	}
	return p, err
}

func (s *PostgresStore) List(ctx context.Context) ([]Product, error) {
	return s.queryProducts(ctx, `
		SELECT `+productColumns+`
		FROM products ORDER BY created_at
	`)
}

func (s *PostgresStore) ListPending(ctx context.Context) ([]Product, error) {
	return s.queryProducts(ctx, `
		SELECT `+productColumns+`
		FROM products WHERE verification_status = $1 ORDER BY created_at
	`, StatusPending)
}

func (s *PostgresStore) SetStatus(ctx context.Context, id string, status VerificationStatus) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE products SET verification_status = $2, updated_at = now() WHERE id = $1
	`, id, status)
	if err != nil {
		return fmt.Errorf("update product status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update product status: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// ApplyVerifications commits every staged outcome in a single transaction.
// No row locking happens between the pending read and this write; the batch
// is last-writer-wins by design.
func (s *PostgresStore) ApplyVerifications(ctx context.Context, updates []VerificationUpdate) error {
	if len(updates) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin verification batch: %w", err)
	}
	defer tx.Rollback()

	for _, u := range updates {
		_, err := tx.ExecContext(ctx, `
			UPDATE products
			SET verification_status = $2,
			    last_verification_date = $3,
			    compliance_summary = $4,
			    updated_at = $3
			WHERE id = $1
		`, u.ProductID, u.Status, u.LastVerificationDate, u.ComplianceSummary)
		if err != nil {
			return fmt.Errorf("stage verification for %s: %w", u.ProductID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit verification batch: %w", err)
	}
	return nil
}

func (s *PostgresStore) queryProducts(ctx context.Context, query string, args ...any) ([]Product, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (Product, error) {
	var (
		p            Product
		materials    []byte
		declarations []byte
		score        sql.NullInt64
		lastVerified sql.NullTime
	)
	err := row.Scan(&p.ID, &p.Name, &p.Category, &p.Description, &materials, &score,
		&declarations, &p.VerificationStatus, &lastVerified, &p.ComplianceSummary,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return Product{}, err
	}
	if err := json.Unmarshal(materials, &p.Materials); err != nil {
		return Product{}, fmt.Errorf("decode materials: %w", err)
	}
	if err := json.Unmarshal(declarations, &p.Declarations); err != nil {
		return Product{}, fmt.Errorf("decode declarations: %w", err)
	}
	if score.Valid {
		v := int(score.Int64)
		p.SustainabilityScore = &v
	}
	if lastVerified.Valid {
		t := lastVerified.Time
		p.LastVerificationDate = &t
	}
	return p, nil
}
