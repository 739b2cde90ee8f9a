package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/joedomabylv/QuickSched/internal/model"
)

// LabRepository handles lab data access, including the live roster columns
// written by propagation.
type LabRepository struct {
	pool *pgxpool.Pool
}

// NewLabRepository creates a new LabRepository.
func NewLabRepository(pool *pgxpool.Pool) *LabRepository {
	return &LabRepository{pool: pool}
}

const labColumns = `id, semester_id, course_id, class_name, subject, catalog_id, section,
	days, start_minute, end_minute, facility_id, facility_building, instructor,
	assigned_ta_id, staffed, created_at, updated_at`

func scanLab(row interface{ Scan(dest ...any) error }) (*model.Lab, error) {
	l := &model.Lab{}
	var days []string
	err := row.Scan(&l.ID, &l.SemesterID, &l.CourseID, &l.ClassName, &l.Subject,
		&l.CatalogID, &l.Section, &days, &l.StartTime, &l.EndTime,
		&l.FacilityID, &l.FacilityBuilding, &l.Instructor,
		&l.AssignedTAID, &l.Staffed, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, err
	}
	set, err := model.DaySetFromStrings(days)
	if err != nil {
		return nil, err
	}
	l.Days = set
	return l, nil
}

// GetByID retrieves a lab by its ID.
func (r *LabRepository) GetByID(ctx context.Context, id int) (*model.Lab, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+labColumns+` FROM labs WHERE id = $1`, id)
	return scanLab(row)
}

// ListBySemester retrieves every lab in a semester in stable course order.
func (r *LabRepository) ListBySemester(ctx context.Context, semesterID int) ([]model.Lab, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+labColumns+` FROM labs
		 WHERE semester_id = $1
		 ORDER BY course_id, section`, semesterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var labs []model.Lab
	for rows.Next() {
		l, err := scanLab(rows)
		if err != nil {
			return nil, err
		}
		labs = append(labs, *l)
	}
	return labs, rows.Err()
}

// Create inserts a new lab. The unique (semester_id, course_id) constraint
// rejects duplicate course IDs within a semester.
func (r *LabRepository) Create(ctx context.Context, l *model.Lab) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO labs (semester_id, course_id, class_name, subject, catalog_id, section,
		                   days, start_minute, end_minute, facility_id, facility_building, instructor)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 RETURNING id, created_at, updated_at`,
		l.SemesterID, l.CourseID, l.ClassName, l.Subject, l.CatalogID, l.Section,
		l.Days.Strings(), l.StartTime, l.EndTime, l.FacilityID, l.FacilityBuilding, l.Instructor,
	).Scan(&l.ID, &l.CreatedAt, &l.UpdatedAt)
}

// Update modifies an existing lab.
func (r *LabRepository) Update(ctx context.Context, l *model.Lab) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE labs
		 SET course_id = $1, class_name = $2, subject = $3, catalog_id = $4, section = $5,
		     days = $6, start_minute = $7, end_minute = $8,
		     facility_id = $9, facility_building = $10, instructor = $11,
		     updated_at = CURRENT_TIMESTAMP
		 WHERE id = $12`,
		l.CourseID, l.ClassName, l.Subject, l.CatalogID, l.Section,
		l.Days.Strings(), l.StartTime, l.EndTime,
		l.FacilityID, l.FacilityBuilding, l.Instructor, l.ID,
	)
	return err
}

// Delete removes a lab by its ID.
func (r *LabRepository) Delete(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM labs WHERE id = $1`, id)
	return err
}

// SetLive writes a lab's durable live-roster assignment. Used by propagation
// inside its transaction.
func (r *LabRepository) SetLive(ctx context.Context, q DBTX, labID, taID int) error {
	_, err := q.Exec(ctx,
		`UPDATE labs SET assigned_ta_id = $1, staffed = TRUE, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $2`, taID, labID)
	return err
}

// ClearLive empties the live roster for every lab in a semester so repeated
// propagation of the same schedule converges to the same state.
func (r *LabRepository) ClearLive(ctx context.Context, q DBTX, semesterID int) error {
	_, err := q.Exec(ctx,
		`UPDATE labs SET assigned_ta_id = NULL, staffed = FALSE, updated_at = CURRENT_TIMESTAMP
		 WHERE semester_id = $1`, semesterID)
	return err
}
