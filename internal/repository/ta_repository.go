package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/joedomabylv/QuickSched/internal/model"
)

// TARepository handles TA data access, including the experience,
// unavailability, and semester-eligibility child tables.
type TARepository struct {
	pool *pgxpool.Pool
}

// NewTARepository creates a new TARepository.
func NewTARepository(pool *pgxpool.Pool) *TARepository {
	return &TARepository{pool: pool}
}

// GetByID retrieves a TA with all child collections loaded.
func (r *TARepository) GetByID(ctx context.Context, id int) (*model.TA, error) {
	t := &model.TA{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, first_name, last_name, student_id, year, contracted,
		        incomplete_profile, update_availability, update_experience,
		        created_at, updated_at
		 FROM tas WHERE id = $1`, id,
	).Scan(&t.ID, &t.FirstName, &t.LastName, &t.StudentID, &t.Year, &t.Contracted,
		&t.Holds.IncompleteProfile, &t.Holds.UpdateAvailability, &t.Holds.UpdateExperience,
		&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := r.loadChildren(ctx, []*model.TA{t}); err != nil {
		return nil, err
	}
	return t, nil
}

// ListBySemester retrieves every TA eligible for a semester, ordered by
// student ID so scheduling input order is stable and reproducible.
func (r *TARepository) ListBySemester(ctx context.Context, semesterID int) ([]model.TA, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT t.id, t.first_name, t.last_name, t.student_id, t.year, t.contracted,
		        t.incomplete_profile, t.update_availability, t.update_experience,
		        t.created_at, t.updated_at
		 FROM tas t
		 JOIN ta_semesters ts ON ts.ta_id = t.id
		 WHERE ts.semester_id = $1
		 ORDER BY t.student_id`, semesterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.collect(ctx, rows)
}

// ListByIDs retrieves the given TAs preserving the order of ids; unknown IDs
// are silently skipped. The caller's order is the greedy tie-break order.
func (r *TARepository) ListByIDs(ctx context.Context, ids []int) ([]model.TA, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := r.pool.Query(ctx,
		`SELECT t.id, t.first_name, t.last_name, t.student_id, t.year, t.contracted,
		        t.incomplete_profile, t.update_availability, t.update_experience,
		        t.created_at, t.updated_at
		 FROM tas t
		 JOIN unnest($1::int[]) WITH ORDINALITY AS sel(id, ord) ON sel.id = t.id
		 ORDER BY sel.ord`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.collect(ctx, rows)
}

// List retrieves all TAs ordered by student ID.
func (r *TARepository) List(ctx context.Context) ([]model.TA, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, first_name, last_name, student_id, year, contracted,
		        incomplete_profile, update_availability, update_experience,
		        created_at, updated_at
		 FROM tas ORDER BY student_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.collect(ctx, rows)
}

type rowScanner interface{ Scan(dest ...any) error }

func scanTA(row rowScanner) (*model.TA, error) {
	t := &model.TA{}
	err := row.Scan(&t.ID, &t.FirstName, &t.LastName, &t.StudentID, &t.Year, &t.Contracted,
		&t.Holds.IncompleteProfile, &t.Holds.UpdateAvailability, &t.Holds.UpdateExperience,
		&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// Create inserts a new TA.
func (r *TARepository) Create(ctx context.Context, t *model.TA) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO tas (first_name, last_name, student_id, year, contracted)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, incomplete_profile, update_availability, update_experience, created_at, updated_at`,
		t.FirstName, t.LastName, t.StudentID, t.Year, t.Contracted,
	).Scan(&t.ID, &t.Holds.IncompleteProfile, &t.Holds.UpdateAvailability,
		&t.Holds.UpdateExperience, &t.CreatedAt, &t.UpdatedAt)
}

// Update modifies a TA's basic fields and hold flags.
func (r *TARepository) Update(ctx context.Context, t *model.TA) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE tas
		 SET first_name = $1, last_name = $2, year = $3, contracted = $4,
		     incomplete_profile = $5, update_availability = $6, update_experience = $7,
		     updated_at = CURRENT_TIMESTAMP
		 WHERE id = $8`,
		t.FirstName, t.LastName, t.Year, t.Contracted,
		t.Holds.IncompleteProfile, t.Holds.UpdateAvailability, t.Holds.UpdateExperience, t.ID,
	)
	return err
}

// Delete removes a TA by its ID. Child rows cascade; historical template
// assignments restrict deletion while they reference the TA.
func (r *TARepository) Delete(ctx context.Context, id int) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM tas WHERE id = $1`, id)
	return err
}

// ReplaceExperience swaps a TA's full experience set.
func (r *TARepository) ReplaceExperience(ctx context.Context, taID int, courses []model.Experience) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM ta_experience WHERE ta_id = $1`, taID); err != nil {
		return err
	}
	for _, c := range courses {
		if _, err := tx.Exec(ctx,
			`INSERT INTO ta_experience (ta_id, subject, catalog_id) VALUES ($1, $2, $3)`,
			taID, c.Subject, c.CatalogID); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// ReplaceUnavailability swaps a TA's full weekly unavailability set.
func (r *TARepository) ReplaceUnavailability(ctx context.Context, taID int, slots []model.UnavailableSlot) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM ta_unavailability WHERE ta_id = $1`, taID); err != nil {
		return err
	}
	for _, s := range slots {
		if _, err := tx.Exec(ctx,
			`INSERT INTO ta_unavailability (ta_id, days, start_minute, end_minute)
			 VALUES ($1, $2, $3, $4)`,
			taID, s.Days.Strings(), s.StartTime, s.EndTime); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// ReplaceEligibility swaps the set of semesters a TA may be scheduled in.
func (r *TARepository) ReplaceEligibility(ctx context.Context, taID int, semesterIDs []int) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM ta_semesters WHERE ta_id = $1`, taID); err != nil {
		return err
	}
	for _, sid := range semesterIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO ta_semesters (ta_id, semester_id) VALUES ($1, $2)`,
			taID, sid); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// collect scans TA rows then loads child collections in bulk.
func (r *TARepository) collect(ctx context.Context, rows pgx.Rows) ([]model.TA, error) {
	var tas []model.TA
	for rows.Next() {
		t, err := scanTA(rows)
		if err != nil {
			return nil, err
		}
		tas = append(tas, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	refs := make([]*model.TA, len(tas))
	for i := range tas {
		refs[i] = &tas[i]
	}
	if err := r.loadChildren(ctx, refs); err != nil {
		return nil, err
	}
	return tas, nil
}

// loadChildren fills experience, unavailability, and semester eligibility
// for the given TAs with one query per child table.
func (r *TARepository) loadChildren(ctx context.Context, tas []*model.TA) error {
	if len(tas) == 0 {
		return nil
	}
	byID := make(map[int]*model.TA, len(tas))
	ids := make([]int, 0, len(tas))
	for _, t := range tas {
		byID[t.ID] = t
		ids = append(ids, t.ID)
	}

	expRows, err := r.pool.Query(ctx,
		`SELECT ta_id, subject, catalog_id FROM ta_experience
		 WHERE ta_id = ANY($1) ORDER BY subject, catalog_id`, ids)
	if err != nil {
		return err
	}
	defer expRows.Close()
	for expRows.Next() {
		var taID int
		var e model.Experience
		if err := expRows.Scan(&taID, &e.Subject, &e.CatalogID); err != nil {
			return err
		}
		byID[taID].Experience = append(byID[taID].Experience, e)
	}
	if err := expRows.Err(); err != nil {
		return err
	}

	slotRows, err := r.pool.Query(ctx,
		`SELECT id, ta_id, days, start_minute, end_minute FROM ta_unavailability
		 WHERE ta_id = ANY($1) ORDER BY id`, ids)
	if err != nil {
		return err
	}
	defer slotRows.Close()
	for slotRows.Next() {
		var taID int
		var s model.UnavailableSlot
		var days []string
		if err := slotRows.Scan(&s.ID, &taID, &days, &s.StartTime, &s.EndTime); err != nil {
			return err
		}
		set, err := model.DaySetFromStrings(days)
		if err != nil {
			return err
		}
		s.Days = set
		byID[taID].Unavailable = append(byID[taID].Unavailable, s)
	}
	if err := slotRows.Err(); err != nil {
		return err
	}

	semRows, err := r.pool.Query(ctx,
		`SELECT ta_id, semester_id FROM ta_semesters
		 WHERE ta_id = ANY($1) ORDER BY semester_id`, ids)
	if err != nil {
		return err
	}
	defer semRows.Close()
	for semRows.Next() {
		var taID, semID int
		if err := semRows.Scan(&taID, &semID); err != nil {
			return err
		}
		byID[taID].SemesterIDs = append(byID[taID].SemesterIDs, semID)
	}
	return semRows.Err()
}
