package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/roster/pkg/member"
)

// MemberRepository implements member.Repository backed by PostgreSQL (pgx).
type MemberRepository struct {
	pool *pgxpool.Pool
}

func NewMemberRepository(pool *pgxpool.Pool) (*MemberRepository, error) {
	repo := &MemberRepository{pool: pool}
	if err := repo.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *MemberRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS members (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL,
			role TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			contact TEXT NOT NULL,
			image_url TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_members_created_at ON members(created_at DESC);
	`)
	return err
}

// Create validates against the schema constraints and inserts. Driver errors
// are translated to the domain taxonomy, never returned raw.
func (r *MemberRepository) Create(ctx context.Context, m member.Member) (member.Member, error) {
	if msgs := m.Validate(); len(msgs) > 0 {
		return member.Member{}, &member.ValidationError{Messages: msgs}
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO members (id, name, role, email, contact, image_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, m.ID, m.Name, m.Role, m.Email, m.Contact, m.ImageURL, m.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return member.Member{}, member.ErrDuplicateEmail
		}
		return member.Member{}, &member.StoreError{Err: err}
	}
	return m, nil
}

func (r *MemberRepository) List(ctx context.Context) ([]member.Member, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, role, email, contact, image_url, created_at
		FROM members ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, &member.StoreError{Err: err}
	}
	defer rows.Close()
	var res []member.Member
	for rows.Next() {
		var m member.Member
		var created time.Time
		if err := rows.Scan(&m.ID, &m.Name, &m.Role, &m.Email, &m.Contact, &m.ImageURL, &created); err != nil {
			return nil, &member.StoreError{Err: err}
		}
		m.CreatedAt = created.UTC()
		res = append(res, m)
	}
	if err := rows.Err(); err != nil {
		return nil, &member.StoreError{Err: err}
	}
	return res, nil
}

func (r *MemberRepository) GetByID(ctx context.Context, id uuid.UUID) (member.Member, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, role, email, contact, image_url, created_at
		FROM members WHERE id = $1
	`, id)
	var m member.Member
	var created time.Time
	if err := row.Scan(&m.ID, &m.Name, &m.Role, &m.Email, &m.Contact, &m.ImageURL, &created); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return member.Member{}, member.ErrNotFound
		}
		return member.Member{}, &member.StoreError{Err: err}
	}
	m.CreatedAt = created.UTC()
	return m, nil
}
