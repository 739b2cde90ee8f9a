package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/joedomabylv/QuickSched/internal/model"
)

// SemesterRepository handles semester data access.
type SemesterRepository struct {
	pool *pgxpool.Pool
}

// NewSemesterRepository creates a new SemesterRepository.
func NewSemesterRepository(pool *pgxpool.Pool) *SemesterRepository {
	return &SemesterRepository{pool: pool}
}

// GetByID retrieves a semester by its ID.
func (r *SemesterRepository) GetByID(ctx context.Context, id int) (*model.Semester, error) {
	s := &model.Semester{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, semester_time, year, created_at, updated_at
		 FROM semesters WHERE id = $1`, id,
	).Scan(&s.ID, &s.Time, &s.Year, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// GetByTerm retrieves the semester for a (time, year) natural key.
func (r *SemesterRepository) GetByTerm(ctx context.Context, t model.SemesterTime, year int) (*model.Semester, error) {
	s := &model.Semester{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, semester_time, year, created_at, updated_at
		 FROM semesters WHERE semester_time = $1 AND year = $2`, t, year,
	).Scan(&s.ID, &s.Time, &s.Year, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// List retrieves all semesters, newest first.
func (r *SemesterRepository) List(ctx context.Context) ([]model.Semester, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, semester_time, year, created_at, updated_at
		 FROM semesters ORDER BY year DESC, semester_time`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var semesters []model.Semester
	for rows.Next() {
		var s model.Semester
		if err := rows.Scan(&s.ID, &s.Time, &s.Year, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		semesters = append(semesters, s)
	}
	return semesters, rows.Err()
}

// Begin opens a transaction for mutations that must commit together with
// writes to other tables.
func (r *SemesterRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	return r.pool.Begin(ctx)
}

// Create inserts a new semester on q, which may be the pool or a caller's
// transaction. The unique (semester_time, year) constraint rejects
// duplicates at the database level.
func (r *SemesterRepository) Create(ctx context.Context, q DBTX, s *model.Semester) error {
	return q.QueryRow(ctx,
		`INSERT INTO semesters (semester_time, year)
		 VALUES ($1, $2)
		 RETURNING id, created_at, updated_at`,
		s.Time, s.Year,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
}

// Delete removes a semester by its ID. Labs and schedules cascade.
func (r *SemesterRepository) Delete(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM semesters WHERE id = $1`, id)
	return err
}
