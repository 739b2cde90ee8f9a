package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/joedomabylv/QuickSched/internal/model"
)

// OperatorRepository handles operator (lab organizer account) data access.
type OperatorRepository struct {
	pool *pgxpool.Pool
}

// NewOperatorRepository creates a new OperatorRepository.
func NewOperatorRepository(pool *pgxpool.Pool) *OperatorRepository {
	return &OperatorRepository{pool: pool}
}

// GetByEmail retrieves an operator by email, password hash included.
func (r *OperatorRepository) GetByEmail(ctx context.Context, email string) (*model.Operator, error) {
	o := &model.Operator{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, email, password_hash, created_at, updated_at
		 FROM operators WHERE email = $1`, email,
	).Scan(&o.ID, &o.Name, &o.Email, &o.PasswordHash, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return o, nil
}

// GetByID retrieves an operator by its ID.
func (r *OperatorRepository) GetByID(ctx context.Context, id int) (*model.Operator, error) {
	o := &model.Operator{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, email, password_hash, created_at, updated_at
		 FROM operators WHERE id = $1`, id,
	).Scan(&o.ID, &o.Name, &o.Email, &o.PasswordHash, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return o, nil
}

// Create inserts a new operator with an already-hashed password.
func (r *OperatorRepository) Create(ctx context.Context, o *model.Operator) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO operators (name, email, password_hash)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at`,
		o.Name, o.Email, o.PasswordHash,
	).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
}

// UpdatePassword replaces an operator's password hash.
func (r *OperatorRepository) UpdatePassword(ctx context.Context, id int, hash string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE operators SET password_hash = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`,
		hash, id)
	return err
}
