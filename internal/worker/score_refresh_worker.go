package worker

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/joedomabylv/QuickSched/internal/config"
	"github.com/joedomabylv/QuickSched/internal/service"
)

const (
	RefreshPollTimeout = 1 * time.Second
	// RefreshMaxRequeues bounds how often a failing TA is retried before the
	// job is dropped; the next profile edit re-enqueues it anyway.
	RefreshMaxRequeues = 3
)

// ScoreRefreshWorker drains the score refresh queue: whenever a TA's
// availability or experience changes, the TA's scores are recomputed
// against the current working schedule of every semester they are eligible
// for. Runs off the request path so profile edits stay fast.
type ScoreRefreshWorker struct {
	scheduleService *service.ScheduleService
	rdb             *redis.Client
	log             zerolog.Logger

	requeues map[int]int
}

// NewScoreRefreshWorker creates a new ScoreRefreshWorker.
func NewScoreRefreshWorker(scheduleService *service.ScheduleService, rdb *redis.Client, log zerolog.Logger) *ScoreRefreshWorker {
	return &ScoreRefreshWorker{
		scheduleService: scheduleService,
		rdb:             rdb,
		log:             log.With().Str("component", "score_refresh_worker").Logger(),
		requeues:        make(map[int]int),
	}
}

// Start runs the worker loop until the context is cancelled.
func (w *ScoreRefreshWorker) Start(ctx context.Context) {
	w.log.Info().Msg("ScoreRefreshWorker started")

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Shutdown requested")
			return

		default:
			item, err := w.rdb.BLPop(ctx, RefreshPollTimeout, config.WorkerKey.ScoreRefreshQueue).Result()
			if err != nil {
				if err != redis.Nil && ctx.Err() == nil {
					w.log.Error().Err(err).Msg("BLPop error")
				}
				continue
			}
			if len(item) < 2 {
				continue
			}

			taID, err := strconv.Atoi(item[1])
			if err != nil {
				w.log.Error().Str("payload", item[1]).Msg("Invalid queue payload")
				continue
			}
			w.refresh(ctx, taID)
		}
	}
}

func (w *ScoreRefreshWorker) refresh(ctx context.Context, taID int) {
	scheduleIDs, err := w.scheduleService.SchedulesForTA(ctx, taID)
	if err != nil {
		w.fail(ctx, taID, err)
		return
	}

	for _, id := range scheduleIDs {
		if err := w.scheduleService.RefreshScoresForTA(ctx, id, taID); err != nil {
			w.fail(ctx, taID, err)
			return
		}
	}

	delete(w.requeues, taID)
	w.log.Debug().Int("ta_id", taID).Int("schedules", len(scheduleIDs)).Msg("Scores refreshed")
}

// fail requeues the TA a bounded number of times so a transient database
// error does not lose the refresh.
func (w *ScoreRefreshWorker) fail(ctx context.Context, taID int, err error) {
	w.requeues[taID]++
	if w.requeues[taID] > RefreshMaxRequeues {
		w.log.Error().Err(err).Int("ta_id", taID).Msg("Score refresh failed, giving up")
		delete(w.requeues, taID)
		return
	}
	w.log.Warn().Err(err).Int("ta_id", taID).Msg("Score refresh failed, requeueing")
	w.rdb.RPush(ctx, config.WorkerKey.ScoreRefreshQueue, strconv.Itoa(taID))
}
