package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/joedomabylv/QuickSched/internal/model"
)

// ScheduleRepository handles template schedules, their assignments,
// compatibility scores, and the per-schedule history window.
type ScheduleRepository struct {
	pool *pgxpool.Pool
}

// NewScheduleRepository creates a new ScheduleRepository.
func NewScheduleRepository(pool *pgxpool.Pool) *ScheduleRepository {
	return &ScheduleRepository{pool: pool}
}

// Begin opens a transaction for multi-step mutations (switch + history,
// undo, propagation) so they commit or roll back together.
func (r *ScheduleRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	return r.pool.Begin(ctx)
}

// Create inserts a schedule and its assignments in one transaction. The
// version is allocated per semester: 0 for the first schedule, then max+1.
func (r *ScheduleRepository) Create(ctx context.Context, s *model.TemplateSchedule) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := r.CreateIn(ctx, tx, s); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// CreateIn inserts a schedule and its assignments on the caller's
// transaction, for mutations that must commit together with other writes.
func (r *ScheduleRepository) CreateIn(ctx context.Context, q DBTX, s *model.TemplateSchedule) error {
	s.ID = uuid.New()
	err := q.QueryRow(ctx,
		`INSERT INTO template_schedules (id, semester_id, version, priority_bonus)
		 VALUES ($1, $2,
		         (SELECT COALESCE(MAX(version) + 1, 0)
		          FROM template_schedules WHERE semester_id = $2),
		         $3)
		 RETURNING version, created_at`,
		s.ID, s.SemesterID, s.PriorityBonus,
	).Scan(&s.Version, &s.CreatedAt)
	if err != nil {
		return err
	}

	for i := range s.Assignments {
		a := &s.Assignments[i]
		a.ScheduleID = s.ID
		if err := createAssignment(ctx, q, a); err != nil {
			return err
		}
	}
	return nil
}

// GetByID retrieves a schedule with its assignments loaded.
func (r *ScheduleRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.TemplateSchedule, error) {
	s := &model.TemplateSchedule{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, semester_id, version, priority_bonus, created_at
		 FROM template_schedules WHERE id = $1`, id,
	).Scan(&s.ID, &s.SemesterID, &s.Version, &s.PriorityBonus, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	if s.Assignments, err = r.listAssignments(ctx, s.ID); err != nil {
		return nil, err
	}
	return s, nil
}

// GetLatestBySemester retrieves the highest-version schedule for a semester,
// which is the current working schedule. Returns pgx.ErrNoRows when the
// semester has no schedules yet.
func (r *ScheduleRepository) GetLatestBySemester(ctx context.Context, semesterID int) (*model.TemplateSchedule, error) {
	s := &model.TemplateSchedule{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, semester_id, version, priority_bonus, created_at
		 FROM template_schedules
		 WHERE semester_id = $1
		 ORDER BY version DESC LIMIT 1`, semesterID,
	).Scan(&s.ID, &s.SemesterID, &s.Version, &s.PriorityBonus, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	if s.Assignments, err = r.listAssignments(ctx, s.ID); err != nil {
		return nil, err
	}
	return s, nil
}

// ListBySemester retrieves schedule metadata for a semester, newest version
// first. Assignments are not loaded.
func (r *ScheduleRepository) ListBySemester(ctx context.Context, semesterID int) ([]model.TemplateSchedule, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, semester_id, version, priority_bonus, created_at
		 FROM template_schedules
		 WHERE semester_id = $1
		 ORDER BY version DESC`, semesterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var schedules []model.TemplateSchedule
	for rows.Next() {
		var s model.TemplateSchedule
		if err := rows.Scan(&s.ID, &s.SemesterID, &s.Version, &s.PriorityBonus, &s.CreatedAt); err != nil {
			return nil, err
		}
		schedules = append(schedules, s)
	}
	return schedules, rows.Err()
}

// Delete removes a schedule; assignments, scores, and history cascade.
func (r *ScheduleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM template_schedules WHERE id = $1`, id)
	return err
}

func (r *ScheduleRepository) listAssignments(ctx context.Context, scheduleID uuid.UUID) ([]model.TemplateAssignment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, schedule_id, lab_id, ta_id
		 FROM template_assignments
		 WHERE schedule_id = $1
		 ORDER BY id`, scheduleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assignments []model.TemplateAssignment
	for rows.Next() {
		var a model.TemplateAssignment
		if err := rows.Scan(&a.ID, &a.ScheduleID, &a.LabID, &a.TAID); err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}

// ─── Assignments ────────────────────────────────────────────────────

// CreateAssignment inserts one assignment row, filling its generated ID.
func (r *ScheduleRepository) CreateAssignment(ctx context.Context, q DBTX, a *model.TemplateAssignment) error {
	return createAssignment(ctx, q, a)
}

func createAssignment(ctx context.Context, q DBTX, a *model.TemplateAssignment) error {
	return q.QueryRow(ctx,
		`INSERT INTO template_assignments (schedule_id, lab_id, ta_id)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
		a.ScheduleID, a.LabID, a.TAID,
	).Scan(&a.ID)
}

// DeleteAssignmentByLab removes the assignment for a lab within a schedule
// and reports whether a row was removed.
func (r *ScheduleRepository) DeleteAssignmentByLab(ctx context.Context, q DBTX, scheduleID uuid.UUID, labID int) (bool, error) {
	tag, err := q.Exec(ctx,
		`DELETE FROM template_assignments WHERE schedule_id = $1 AND lab_id = $2`,
		scheduleID, labID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// UpdateAssignmentTA moves an assignment to a different TA. Used by the
// switch primitive, which exchanges TAs between two labs without touching
// the lab bindings.
func (r *ScheduleRepository) UpdateAssignmentTA(ctx context.Context, q DBTX, assignmentID int64, taID int) error {
	_, err := q.Exec(ctx,
		`UPDATE template_assignments SET ta_id = $1 WHERE id = $2`,
		taID, assignmentID)
	return err
}

// ─── Scores ─────────────────────────────────────────────────────────

// ReplaceScores swaps the full score book for a schedule. Bulk-loaded with
// COPY since a generation writes |TAs| x |labs| rows at once.
func (r *ScheduleRepository) ReplaceScores(ctx context.Context, scheduleID uuid.UUID, book model.ScoreBook) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM scores WHERE schedule_id = $1`, scheduleID); err != nil {
		return err
	}

	var rows [][]any
	for taID, labs := range book {
		for labID, score := range labs {
			rows = append(rows, []any{scheduleID, taID, labID, score})
		}
	}
	if len(rows) > 0 {
		_, err = tx.CopyFrom(ctx,
			pgx.Identifier{"scores"},
			[]string{"schedule_id", "ta_id", "lab_id", "score"},
			pgx.CopyFromRows(rows))
		if err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// ReplaceScoresForTA swaps one TA's row of the score book, leaving every
// other TA's scores untouched. Used by the background refresh after a TA's
// availability or experience changes.
func (r *ScheduleRepository) ReplaceScoresForTA(ctx context.Context, scheduleID uuid.UUID, taID int, labScores map[int]int) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`DELETE FROM scores WHERE schedule_id = $1 AND ta_id = $2`,
		scheduleID, taID); err != nil {
		return err
	}
	for labID, score := range labScores {
		if _, err := tx.Exec(ctx,
			`INSERT INTO scores (schedule_id, ta_id, lab_id, score)
			 VALUES ($1, $2, $3, $4)`,
			scheduleID, taID, labID, score); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// GetScores loads the full score book for a schedule.
func (r *ScheduleRepository) GetScores(ctx context.Context, scheduleID uuid.UUID) (model.ScoreBook, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT ta_id, lab_id, score FROM scores WHERE schedule_id = $1`, scheduleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	book := make(model.ScoreBook)
	for rows.Next() {
		var taID, labID, score int
		if err := rows.Scan(&taID, &labID, &score); err != nil {
			return nil, err
		}
		book.Set(taID, labID, score)
	}
	return book, rows.Err()
}

// ─── History ────────────────────────────────────────────────────────

// InsertHistory appends one history node, filling its generated ID and
// creation time.
func (r *ScheduleRepository) InsertHistory(ctx context.Context, q DBTX, n *model.HistoryNode) error {
	return q.QueryRow(ctx,
		`INSERT INTO history_nodes
		   (schedule_id, seq, ta_id, lab_id, other_ta_id, other_lab_id, prior_ta_id, is_assignment)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at`,
		n.ScheduleID, n.Seq, n.TAID, n.LabID, n.OtherTAID, n.OtherLabID, n.PriorTAID, n.IsAssignment,
	).Scan(&n.ID, &n.CreatedAt)
}

// ListHistory loads a schedule's history nodes, oldest first.
func (r *ScheduleRepository) ListHistory(ctx context.Context, scheduleID uuid.UUID) ([]model.HistoryNode, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, schedule_id, seq, ta_id, lab_id, other_ta_id, other_lab_id,
		        prior_ta_id, is_assignment, created_at
		 FROM history_nodes
		 WHERE schedule_id = $1
		 ORDER BY seq`, scheduleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var nodes []model.HistoryNode
	for rows.Next() {
		var n model.HistoryNode
		if err := rows.Scan(&n.ID, &n.ScheduleID, &n.Seq, &n.TAID, &n.LabID,
			&n.OtherTAID, &n.OtherLabID, &n.PriorTAID, &n.IsAssignment, &n.CreatedAt); err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, rows.Err()
}

// DeleteHistory removes the given history nodes. Used both to evict past
// the window cap and to pop the newest node on undo.
func (r *ScheduleRepository) DeleteHistory(ctx context.Context, q DBTX, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := q.Exec(ctx, `DELETE FROM history_nodes WHERE id = ANY($1)`, ids)
	return err
}
