package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	auditerrors "hrflow/internal/audit/errors"
	"hrflow/internal/shared/apperror"
)

const (
	scheduleKeyPrefix = "audit-schedule:"
	scheduleIndexKey  = "audit-schedules"
)

type Frequency string

const (
	FrequencyDaily     Frequency = "Daily"
	FrequencyWeekly    Frequency = "Weekly"
	FrequencyMonthly   Frequency = "Monthly"
	FrequencyQuarterly Frequency = "Quarterly"
	FrequencyAnnually  Frequency = "Annually"
)

type ScheduleConfig struct {
	Frequency  Frequency `json:"frequency"`
	DayOfWeek  int       `json:"day_of_week,omitempty"`
	DayOfMonth int       `json:"day_of_month,omitempty"`
	Time       string    `json:"time"`
	Timezone   string    `json:"timezone"`
}

type Schedule struct {
	ID         string         `json:"id"`
	ReportType ReportType     `json:"report_type"`
	Config     ScheduleConfig `json:"config"`
	Recipients []string       `json:"recipients"`
	IsActive   bool           `json:"is_active"`
	CreatedAt  time.Time      `json:"created_at"`
	NextRun    time.Time      `json:"next_run"`
}

// ScheduleStore persists audit report schedules in Redis, one JSON value per
// schedule plus a set index for listing.
type ScheduleStore struct {
	rdb    *redis.Client
	logger *zap.Logger
}

func NewScheduleStore(rdb *redis.Client, logger ...*zap.Logger) *ScheduleStore {
	l := zap.L().Named("audit.schedule")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("audit.schedule")
	}
	return &ScheduleStore{rdb: rdb, logger: l}
}

// Create registers a recurring report generation and computes its first run.
func (s *ScheduleStore) Create(ctx context.Context, reportType ReportType, cfg ScheduleConfig, recipients []string) (*Schedule, error) {
	if _, ok := reportMetadataByType[reportType]; !ok {
		return nil, auditerrors.ErrInvalidReportType
	}
	now := time.Now().UTC()
	nextRun, err := NextRun(cfg, now)
	if err != nil {
		return nil, err
	}

	schedule := &Schedule{
		ID:         fmt.Sprintf("SCHED-%s-%d", reportType, now.UnixMilli()),
		ReportType: reportType,
		Config:     cfg,
		Recipients: recipients,
		IsActive:   true,
		CreatedAt:  now,
		NextRun:    nextRun,
	}

	payload, err := json.Marshal(schedule)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodeInternalError, "failed to encode schedule", http.StatusInternalServerError)
	}
	if err := s.rdb.Set(ctx, scheduleKeyPrefix+schedule.ID, payload, 0).Err(); err != nil {
		return nil, apperror.Wrap(err, apperror.CodeServiceUnavailable, "failed to store schedule", http.StatusServiceUnavailable)
	}
	if err := s.rdb.SAdd(ctx, scheduleIndexKey, schedule.ID).Err(); err != nil {
		return nil, apperror.Wrap(err, apperror.CodeServiceUnavailable, "failed to index schedule", http.StatusServiceUnavailable)
	}

	s.logger.Info("audit schedule created",
		zap.String("schedule_id", schedule.ID),
		zap.String("report_type", string(reportType)),
		zap.String("frequency", string(cfg.Frequency)),
		zap.Time("next_run", nextRun),
	)
	return schedule, nil
}

func (s *ScheduleStore) Get(ctx context.Context, scheduleID string) (*Schedule, error) {
	payload, err := s.rdb.Get(ctx, scheduleKeyPrefix+scheduleID).Result()
	if err == redis.Nil {
		return nil, auditerrors.ErrScheduleNotFound
	}
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodeServiceUnavailable, "failed to load schedule", http.StatusServiceUnavailable)
	}
	var schedule Schedule
	if err := json.Unmarshal([]byte(payload), &schedule); err != nil {
		return nil, apperror.Wrap(err, apperror.CodeInternalError, "failed to decode schedule", http.StatusInternalServerError)
	}
	return &schedule, nil
}

func (s *ScheduleStore) List(ctx context.Context) ([]*Schedule, error) {
	ids, err := s.rdb.SMembers(ctx, scheduleIndexKey).Result()
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodeServiceUnavailable, "failed to list schedules", http.StatusServiceUnavailable)
	}
	sort.Strings(ids)

	schedules := make([]*Schedule, 0, len(ids))
	for _, id := range ids {
		schedule, err := s.Get(ctx, id)
		if err != nil {
			// An index entry whose value expired is skipped, not fatal.
			s.logger.Warn("dangling schedule index entry", zap.String("schedule_id", id), zap.Error(err))
			continue
		}
		schedules = append(schedules, schedule)
	}
	return schedules, nil
}

func (s *ScheduleStore) Delete(ctx context.Context, scheduleID string) error {
	deleted, err := s.rdb.Del(ctx, scheduleKeyPrefix+scheduleID).Result()
	if err != nil {
		return apperror.Wrap(err, apperror.CodeServiceUnavailable, "failed to delete schedule", http.StatusServiceUnavailable)
	}
	if deleted == 0 {
		return auditerrors.ErrScheduleNotFound
	}
	if err := s.rdb.SRem(ctx, scheduleIndexKey, scheduleID).Err(); err != nil {
		return apperror.Wrap(err, apperror.CodeServiceUnavailable, "failed to unindex schedule", http.StatusServiceUnavailable)
	}
	return nil
}

// NextRun computes the first run strictly after now for a schedule config.
func NextRun(cfg ScheduleConfig, now time.Time) (time.Time, error) {
	switch cfg.Frequency {
	case FrequencyDaily:
		return now.AddDate(0, 0, 1), nil
	case FrequencyWeekly:
		days := cfg.DayOfWeek - int(now.Weekday())
		if days <= 0 {
			days += 7
		}
		return now.AddDate(0, 0, days), nil
	case FrequencyMonthly:
		day := cfg.DayOfMonth
		if day <= 0 {
			day = 1
		}
		next := time.Date(now.Year(), now.Month()+1, day, now.Hour(), now.Minute(), 0, 0, now.Location())
		return next, nil
	case FrequencyQuarterly:
		return time.Date(now.Year(), now.Month()+3, 1, now.Hour(), now.Minute(), 0, 0, now.Location()), nil
	case FrequencyAnnually:
		return time.Date(now.Year()+1, time.January, 1, now.Hour(), now.Minute(), 0, 0, now.Location()), nil
	default:
		return time.Time{}, auditerrors.ErrInvalidFrequency
	}
}
