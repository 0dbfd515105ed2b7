package profile

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// PostgresStore persists profiles in PostgreSQL. Regulation and keyword
// lists map to text[] columns through the pq array adapters.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) ListAll(ctx context.Context) ([]Profile, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, category, regulations, min_sustainability_score,
		       required_keywords, banned_keywords, created_at
		FROM compliance_profiles
		ORDER BY created_at
	`)
	if err != nil {
		return nil, fmt.Errorf("query profiles: %w", err)
	}
	defer rows.Close()

	var profiles []Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

func (s *PostgresStore) Get(ctx context.Context, id string) (Profile, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, category, regulations, min_sustainability_score,
		       required_keywords, banned_keywords, created_at
		FROM compliance_profiles
		WHERE id = $1
	`, id)
	p, err := scanProfile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Profile{}, ErrNotFound
	}
	return p, err
}

func (s *PostgresStore) Create(ctx context.Context, p Profile) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO compliance_profiles (
			id, name, category, regulations, min_sustainability_score,
			required_keywords, banned_keywords, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, p.ID, p.Name, p.Category, pq.Array(p.Regulations), p.Rules.MinSustainabilityScore,
		pq.Array(p.Rules.RequiredKeywords), pq.Array(p.Rules.BannedKeywords), p.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert profile: %w", err)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM compliance_profiles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (Profile, error) {
	var (
		p           Profile
		regulations pq.StringArray
		required    pq.StringArray
		banned      pq.StringArray
		minScore    sql.NullInt64
	)
	err := row.Scan(&p.ID, &p.Name, &p.Category, &regulations, &minScore,
		&required, &banned, &p.CreatedAt)
	if err != nil {
		return Profile{}, err
	}
	p.Regulations = regulations
	p.Rules.RequiredKeywords = required
	p.Rules.BannedKeywords = banned
	if minScore.Valid {
		v := int(minScore.Int64)
		p.Rules.MinSustainabilityScore = &v
	}
	return p, nil
}
