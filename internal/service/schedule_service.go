package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/joedomabylv/QuickSched/internal/config"
	"github.com/joedomabylv/QuickSched/internal/engine"
	"github.com/joedomabylv/QuickSched/internal/model"
	"github.com/joedomabylv/QuickSched/internal/repository"
	"github.com/joedomabylv/QuickSched/internal/websocket"
)

// Schedule operation errors, mapped to response codes by the handlers.
var (
	ErrNoTAsSelected     = errors.New("no TAs selected")
	ErrNoLabsInSemester  = errors.New("semester has no labs")
	ErrTANotEligible     = errors.New("TA is not eligible for this semester")
	ErrLabNotInSemester  = errors.New("lab does not belong to the schedule's semester")
	ErrLabUnassigned     = errors.New("no TA is assigned to this lab")
	ErrSwitchUnavailable = errors.New("switch is no longer available")
	ErrNothingToUndo     = errors.New("history is empty")
	ErrEmptySchedule     = errors.New("schedule has no assignments")
)

// payloadTTL bounds staleness of the cached schedule payload; every
// mutation also invalidates the key explicitly.
const payloadTTL = 10 * time.Minute

// SchedulePayload is the full read model for one schedule: the versioned
// assignment set, the labs still unstaffed, and the undo window.
type SchedulePayload struct {
	Schedule        *model.TemplateSchedule `json:"schedule"`
	UnstaffedLabIDs []int                   `json:"unstaffed_lab_ids"`
	History         []model.HistoryNode     `json:"history"`
}

// GenerationResult reports what a generation run produced.
type GenerationResult struct {
	Schedule        *model.TemplateSchedule `json:"schedule"`
	UnstaffedLabIDs []int                   `json:"unstaffed_lab_ids"`
	Warning         string                  `json:"-"`
}

// ScheduleService orchestrates template schedule lifecycle: generation,
// switch recommendation and confirmation, manual edits, undo, and
// propagation to the live roster. Mutations on one schedule are serialized
// through a per-schedule lock.
type ScheduleService struct {
	cfg          *config.Config
	scheduleRepo *repository.ScheduleRepository
	labRepo      *repository.LabRepository
	taRepo       *repository.TARepository
	semesterRepo *repository.SemesterRepository
	rdb          *redis.Client

	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

// NewScheduleService creates a new ScheduleService.
func NewScheduleService(
	cfg *config.Config,
	scheduleRepo *repository.ScheduleRepository,
	labRepo *repository.LabRepository,
	taRepo *repository.TARepository,
	semesterRepo *repository.SemesterRepository,
	rdb *redis.Client,
) *ScheduleService {
	return &ScheduleService{
		cfg:          cfg,
		scheduleRepo: scheduleRepo,
		labRepo:      labRepo,
		taRepo:       taRepo,
		semesterRepo: semesterRepo,
		rdb:          rdb,
		locks:        make(map[uuid.UUID]*sync.Mutex),
	}
}

// lockSchedule returns the mutex serializing writes to one schedule.
func (s *ScheduleService) lockSchedule(id uuid.UUID) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[id]
	if !ok {
		l = &sync.Mutex{}
		s.locks[id] = l
	}
	return l
}

// Generate builds a new template schedule version for a semester from the
// selected TAs: score every pair, run the greedy builder, and persist the
// schedule, its assignments, and the full score book.
func (s *ScheduleService) Generate(ctx context.Context, semesterID int, req *model.GenerateScheduleRequest) (*GenerationResult, error) {
	if _, err := s.semesterRepo.GetByID(ctx, semesterID); err != nil {
		return nil, err
	}

	labs, err := s.labRepo.ListBySemester(ctx, semesterID)
	if err != nil {
		return nil, fmt.Errorf("list labs: %w", err)
	}
	if len(labs) == 0 {
		return nil, ErrNoLabsInSemester
	}

	tas, err := s.taRepo.ListByIDs(ctx, req.TAIDs)
	if err != nil {
		return nil, fmt.Errorf("list tas: %w", err)
	}
	if len(tas) == 0 {
		return nil, ErrNoTAsSelected
	}
	for i := range tas {
		if !tas[i].EligibleFor(semesterID) {
			return nil, fmt.Errorf("%w: %s", ErrTANotEligible, tas[i].DisplayName())
		}
	}

	weights := engine.Weights{
		ExperienceWeight: s.cfg.ExperienceWeight,
		ConflictPenalty:  s.cfg.ConflictPenalty,
		PriorityBonus:    s.cfg.PriorityBonus(req.PriorityBonus),
	}
	book := engine.ScoreAll(tas, labs, weights)
	built := engine.BuildSchedule(tas, labs, book)

	schedule := &model.TemplateSchedule{
		SemesterID:    semesterID,
		PriorityBonus: weights.PriorityBonus,
	}
	for _, p := range built.Placements {
		schedule.Assign(p.TAID, p.LabID)
	}
	if err := s.scheduleRepo.Create(ctx, schedule); err != nil {
		return nil, fmt.Errorf("create schedule: %w", err)
	}
	if err := s.scheduleRepo.ReplaceScores(ctx, schedule.ID, book); err != nil {
		return nil, fmt.Errorf("store scores: %w", err)
	}

	s.publish(ctx, websocket.EventGenerated, schedule.ID, nil)
	return &GenerationResult{
		Schedule:        schedule,
		UnstaffedLabIDs: built.UnstaffedLabIDs,
		Warning:         built.Warning,
	}, nil
}

// GetPayload returns the full read model for a schedule, served from the
// Redis cache when fresh.
func (s *ScheduleService) GetPayload(ctx context.Context, id uuid.UUID) (*SchedulePayload, error) {
	key := config.CacheKey.SchedulePayloadKey(id.String())
	if cached, err := s.rdb.Get(ctx, key).Bytes(); err == nil {
		payload := &SchedulePayload{}
		if err := json.Unmarshal(cached, payload); err == nil {
			return payload, nil
		}
		// Corrupt entries fall through to a rebuild.
	}

	payload, err := s.buildPayload(ctx, id)
	if err != nil {
		return nil, err
	}
	if raw, err := json.Marshal(payload); err == nil {
		if err := s.rdb.Set(ctx, key, raw, payloadTTL).Err(); err != nil {
			log.Warn().Err(err).Str("schedule_id", id.String()).Msg("failed to cache schedule payload")
		}
	}
	return payload, nil
}

func (s *ScheduleService) buildPayload(ctx context.Context, id uuid.UUID) (*SchedulePayload, error) {
	schedule, err := s.scheduleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	labs, err := s.labRepo.ListBySemester(ctx, schedule.SemesterID)
	if err != nil {
		return nil, fmt.Errorf("list labs: %w", err)
	}
	history, err := s.scheduleRepo.ListHistory(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}

	unstaffed := []int{}
	for i := range labs {
		if schedule.AssignmentByLab(labs[i].ID) == nil {
			unstaffed = append(unstaffed, labs[i].ID)
		}
	}
	return &SchedulePayload{Schedule: schedule, UnstaffedLabIDs: unstaffed, History: history}, nil
}

// ListBySemester retrieves schedule metadata for a semester, newest first.
func (s *ScheduleService) ListBySemester(ctx context.Context, semesterID int) ([]model.TemplateSchedule, error) {
	return s.scheduleRepo.ListBySemester(ctx, semesterID)
}

// Latest retrieves the current working schedule for a semester.
func (s *ScheduleService) Latest(ctx context.Context, semesterID int) (*model.TemplateSchedule, error) {
	return s.scheduleRepo.GetLatestBySemester(ctx, semesterID)
}

// RecommendSwitches ranks swap alternatives for the TA holding the given
// lab on the given schedule.
func (s *ScheduleService) RecommendSwitches(ctx context.Context, scheduleID uuid.UUID, labID int) ([]engine.SwitchCandidate, error) {
	schedule, err := s.scheduleRepo.GetByID(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	lab, err := s.labRepo.GetByID(ctx, labID)
	if err != nil {
		return nil, err
	}
	if lab.SemesterID != schedule.SemesterID {
		return nil, ErrLabNotInSemester
	}
	if schedule.AssignmentByLab(labID) == nil {
		return nil, ErrLabUnassigned
	}

	eligible, err := s.taRepo.ListBySemester(ctx, schedule.SemesterID)
	if err != nil {
		return nil, fmt.Errorf("list tas: %w", err)
	}
	book, err := s.scheduleRepo.GetScores(ctx, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("load scores: %w", err)
	}

	return engine.RecommendSwitches(lab, schedule, eligible, book, engine.SwitchOptions{
		Limit:           s.cfg.SwitchLimit,
		Thresholds:      s.cfg.GradeThresholds,
		Grades:          s.cfg.GradeLabels,
		ExcludeUnscored: s.cfg.SwitchExcludeUnscored,
	}), nil
}

// ConfirmSwitch applies a recommended switch: the TAs on the two labs
// exchange places, and a swap node joins the history window. The exchange
// and the history write commit atomically.
func (s *ScheduleService) ConfirmSwitch(ctx context.Context, scheduleID uuid.UUID, req *model.ConfirmSwitchRequest) error {
	l := s.lockSchedule(scheduleID)
	l.Lock()
	defer l.Unlock()

	schedule, err := s.scheduleRepo.GetByID(ctx, scheduleID)
	if err != nil {
		return err
	}
	selected := schedule.AssignmentByLab(req.SelectedLabID)
	other := schedule.AssignmentByLab(req.OtherLabID)
	if selected == nil || other == nil {
		return ErrSwitchUnavailable
	}

	nodes, err := s.scheduleRepo.ListHistory(ctx, scheduleID)
	if err != nil {
		return fmt.Errorf("list history: %w", err)
	}

	tx, err := s.scheduleRepo.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := s.scheduleRepo.UpdateAssignmentTA(ctx, tx, selected.ID, other.TAID); err != nil {
		return fmt.Errorf("move selected: %w", err)
	}
	if err := s.scheduleRepo.UpdateAssignmentTA(ctx, tx, other.ID, selected.TAID); err != nil {
		return fmt.Errorf("move other: %w", err)
	}

	node := model.HistoryNode{
		ScheduleID: scheduleID,
		Seq:        engine.NextSeq(nodes),
		TAID:       selected.TAID,
		LabID:      req.SelectedLabID,
		OtherTAID:  &other.TAID,
		OtherLabID: &req.OtherLabID,
	}
	if err := s.appendHistory(ctx, tx, nodes, &node); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return err
	}

	s.publish(ctx, websocket.EventSwitched, scheduleID, []int{req.SelectedLabID, req.OtherLabID})
	return nil
}

// ManualAssign places a TA into a lab by operator decision, replacing any
// existing assignment for that lab. The prior holder is recorded so undo
// can restore them.
func (s *ScheduleService) ManualAssign(ctx context.Context, scheduleID uuid.UUID, req *model.ManualAssignRequest) error {
	l := s.lockSchedule(scheduleID)
	l.Lock()
	defer l.Unlock()

	schedule, err := s.scheduleRepo.GetByID(ctx, scheduleID)
	if err != nil {
		return err
	}
	ta, err := s.taRepo.GetByID(ctx, req.TAID)
	if err != nil {
		return err
	}
	if !ta.EligibleFor(schedule.SemesterID) {
		return fmt.Errorf("%w: %s", ErrTANotEligible, ta.DisplayName())
	}
	lab, err := s.labRepo.GetByID(ctx, req.LabID)
	if err != nil {
		return err
	}
	if lab.SemesterID != schedule.SemesterID {
		return ErrLabNotInSemester
	}

	nodes, err := s.scheduleRepo.ListHistory(ctx, scheduleID)
	if err != nil {
		return fmt.Errorf("list history: %w", err)
	}

	tx, err := s.scheduleRepo.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var prior *int
	if existing := schedule.AssignmentByLab(req.LabID); existing != nil {
		prior = &existing.TAID
		if _, err := s.scheduleRepo.DeleteAssignmentByLab(ctx, tx, scheduleID, req.LabID); err != nil {
			return fmt.Errorf("clear lab: %w", err)
		}
	}
	assignment := model.TemplateAssignment{ScheduleID: scheduleID, LabID: req.LabID, TAID: req.TAID}
	if err := s.scheduleRepo.CreateAssignment(ctx, tx, &assignment); err != nil {
		return fmt.Errorf("create assignment: %w", err)
	}

	node := model.HistoryNode{
		ScheduleID:   scheduleID,
		Seq:          engine.NextSeq(nodes),
		TAID:         req.TAID,
		LabID:        req.LabID,
		PriorTAID:    prior,
		IsAssignment: true,
	}
	if err := s.appendHistory(ctx, tx, nodes, &node); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return err
	}

	s.publish(ctx, websocket.EventAssigned, scheduleID, []int{req.LabID})
	return nil
}

// Unassign clears a lab's assignment on a schedule. Unassignments are not
// undoable, so no history node is written.
func (s *ScheduleService) Unassign(ctx context.Context, scheduleID uuid.UUID, labID int) error {
	l := s.lockSchedule(scheduleID)
	l.Lock()
	defer l.Unlock()

	tx, err := s.scheduleRepo.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	removed, err := s.scheduleRepo.DeleteAssignmentByLab(ctx, tx, scheduleID, labID)
	if err != nil {
		return fmt.Errorf("delete assignment: %w", err)
	}
	if !removed {
		return ErrLabUnassigned
	}
	if err := tx.Commit(ctx); err != nil {
		return err
	}

	s.publish(ctx, websocket.EventAssigned, scheduleID, []int{labID})
	return nil
}

// Undo reverts the newest history node: a swap node swaps the two TAs back,
// an assignment node restores the prior holder or clears the lab. The node
// is consumed, so each change can be undone once.
func (s *ScheduleService) Undo(ctx context.Context, scheduleID uuid.UUID) error {
	l := s.lockSchedule(scheduleID)
	l.Lock()
	defer l.Unlock()

	nodes, err := s.scheduleRepo.ListHistory(ctx, scheduleID)
	if err != nil {
		return fmt.Errorf("list history: %w", err)
	}
	node := engine.Newest(nodes)
	if node == nil {
		return ErrNothingToUndo
	}
	schedule, err := s.scheduleRepo.GetByID(ctx, scheduleID)
	if err != nil {
		return err
	}

	tx, err := s.scheduleRepo.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	touched := []int{node.LabID}
	switch {
	case !node.IsAssignment:
		// Swap nodes are their own inverse: exchange the two labs again.
		a := schedule.AssignmentByLab(node.LabID)
		b := schedule.AssignmentByLab(*node.OtherLabID)
		if a == nil || b == nil {
			return ErrSwitchUnavailable
		}
		if err := s.scheduleRepo.UpdateAssignmentTA(ctx, tx, a.ID, b.TAID); err != nil {
			return fmt.Errorf("revert selected: %w", err)
		}
		if err := s.scheduleRepo.UpdateAssignmentTA(ctx, tx, b.ID, a.TAID); err != nil {
			return fmt.Errorf("revert other: %w", err)
		}
		touched = append(touched, *node.OtherLabID)

	case node.PriorTAID != nil:
		a := schedule.AssignmentByLab(node.LabID)
		if a == nil {
			assignment := model.TemplateAssignment{ScheduleID: scheduleID, LabID: node.LabID, TAID: *node.PriorTAID}
			if err := s.scheduleRepo.CreateAssignment(ctx, tx, &assignment); err != nil {
				return fmt.Errorf("restore prior: %w", err)
			}
		} else if err := s.scheduleRepo.UpdateAssignmentTA(ctx, tx, a.ID, *node.PriorTAID); err != nil {
			return fmt.Errorf("restore prior: %w", err)
		}

	default:
		// The lab was empty before the recorded assignment.
		if _, err := s.scheduleRepo.DeleteAssignmentByLab(ctx, tx, scheduleID, node.LabID); err != nil {
			return fmt.Errorf("clear lab: %w", err)
		}
	}

	if err := s.scheduleRepo.DeleteHistory(ctx, tx, []int64{node.ID}); err != nil {
		return fmt.Errorf("consume history: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return err
	}

	s.publish(ctx, websocket.EventUndone, scheduleID, touched)
	return nil
}

// Propagate copies a schedule's assignments onto the semester's live
// roster, replacing whatever the roster held before. The semester's
// previous live state is cleared and rewritten in one transaction.
func (s *ScheduleService) Propagate(ctx context.Context, scheduleID uuid.UUID) error {
	l := s.lockSchedule(scheduleID)
	l.Lock()
	defer l.Unlock()

	schedule, err := s.scheduleRepo.GetByID(ctx, scheduleID)
	if err != nil {
		return err
	}
	if !schedule.HasAssignments() {
		return ErrEmptySchedule
	}

	tx, err := s.scheduleRepo.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := s.labRepo.ClearLive(ctx, tx, schedule.SemesterID); err != nil {
		return fmt.Errorf("clear roster: %w", err)
	}
	for _, a := range schedule.Assignments {
		if err := s.labRepo.SetLive(ctx, tx, a.LabID, a.TAID); err != nil {
			return fmt.Errorf("staff lab %d: %w", a.LabID, err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return err
	}

	if err := s.rdb.Set(ctx, config.CacheKey.CurrentScheduleKey(schedule.SemesterID), scheduleID.String(), 0).Err(); err != nil {
		log.Warn().Err(err).Int("semester_id", schedule.SemesterID).Msg("failed to record propagated schedule")
	}
	s.publish(ctx, websocket.EventPropagated, scheduleID, nil)
	return nil
}

// refreshWeights rebuilds the scoring weights a schedule's book was
// generated with, taking the bonus recorded on the schedule itself so a
// refreshed TA's rows land on the same baseline as everyone else's.
func refreshWeights(cfg *config.Config, schedule *model.TemplateSchedule) engine.Weights {
	return engine.Weights{
		ExperienceWeight: cfg.ExperienceWeight,
		ConflictPenalty:  cfg.ConflictPenalty,
		PriorityBonus:    schedule.PriorityBonus,
	}
}

// RefreshScoresForTA recomputes one TA's scores on a schedule against the
// semester's current labs. Called by the background worker after a TA's
// availability or experience changes.
func (s *ScheduleService) RefreshScoresForTA(ctx context.Context, scheduleID uuid.UUID, taID int) error {
	schedule, err := s.scheduleRepo.GetByID(ctx, scheduleID)
	if err != nil {
		return err
	}
	ta, err := s.taRepo.GetByID(ctx, taID)
	if err != nil {
		return err
	}
	labs, err := s.labRepo.ListBySemester(ctx, schedule.SemesterID)
	if err != nil {
		return fmt.Errorf("list labs: %w", err)
	}

	weights := refreshWeights(s.cfg, schedule)
	labScores := make(map[int]int, len(labs))
	for i := range labs {
		labScores[labs[i].ID] = weights.Score(ta, &labs[i])
	}
	if err := s.scheduleRepo.ReplaceScoresForTA(ctx, scheduleID, taID, labScores); err != nil {
		return fmt.Errorf("store scores: %w", err)
	}
	s.invalidate(ctx, scheduleID)
	return nil
}

// SchedulesForTA lists the latest schedule of every semester the TA is
// eligible for, the set a score refresh must touch.
func (s *ScheduleService) SchedulesForTA(ctx context.Context, taID int) ([]uuid.UUID, error) {
	ta, err := s.taRepo.GetByID(ctx, taID)
	if err != nil {
		return nil, err
	}
	var ids []uuid.UUID
	for _, semID := range ta.SemesterIDs {
		latest, err := s.scheduleRepo.GetLatestBySemester(ctx, semID)
		if err != nil {
			continue // Semester without schedules yet.
		}
		ids = append(ids, latest.ID)
	}
	return ids, nil
}

// appendHistory inserts a node and evicts the oldest nodes past the
// configured window cap, inside the caller's transaction.
func (s *ScheduleService) appendHistory(ctx context.Context, tx repository.DBTX, existing []model.HistoryNode, node *model.HistoryNode) error {
	if err := s.scheduleRepo.InsertHistory(ctx, tx, node); err != nil {
		return fmt.Errorf("insert history: %w", err)
	}
	_, evicted := engine.TrimHistory(append(existing, *node), s.cfg.HistoryCap)
	ids := make([]int64, 0, len(evicted))
	for _, e := range evicted {
		ids = append(ids, e.ID)
	}
	if err := s.scheduleRepo.DeleteHistory(ctx, tx, ids); err != nil {
		return fmt.Errorf("evict history: %w", err)
	}
	return nil
}

// publish invalidates the cached payload and fans the change out to the
// schedule's stream channel. Both are best effort; the database commit has
// already happened.
func (s *ScheduleService) publish(ctx context.Context, event websocket.Event, scheduleID uuid.UUID, labIDs []int) {
	s.invalidate(ctx, scheduleID)

	raw, err := json.Marshal(websocket.StreamEvent{
		Event:      event,
		ScheduleID: scheduleID.String(),
		LabIDs:     labIDs,
	})
	if err != nil {
		return
	}
	channel := config.CacheKey.ScheduleStreamChannel(scheduleID.String())
	if err := s.rdb.Publish(ctx, channel, raw).Err(); err != nil {
		log.Warn().Err(err).Str("schedule_id", scheduleID.String()).Msg("failed to publish schedule event")
	}
}

func (s *ScheduleService) invalidate(ctx context.Context, scheduleID uuid.UUID) {
	key := config.CacheKey.SchedulePayloadKey(scheduleID.String())
	if err := s.rdb.Del(ctx, key).Err(); err != nil {
		log.Warn().Err(err).Str("schedule_id", scheduleID.String()).Msg("failed to invalidate schedule payload")
	}
}
