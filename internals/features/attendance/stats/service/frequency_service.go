package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"relawanku_backend/internals/features/attendance/domain"
	"relawanku_backend/internals/features/attendance/stats/repository"
)

// FrequencyService computes attendance frequency from committed
// records. Reads are not linearized with concurrent writes; whatever
// is committed at query time is what gets counted.
type FrequencyService struct {
	reader repository.StatsReader
}

func NewFrequencyService(reader repository.StatsReader) *FrequencyService {
	return &FrequencyService{reader: reader}
}

func normalizeFilter(f repository.RangeFilter) repository.RangeFilter {
	if f.ActivityStatus == "" {
		f.ActivityStatus = domain.ActivityCompleted
	}
	return f
}

func countRows(rows []repository.RecordRow) domain.StatusCounts {
	var c domain.StatusCounts
	for _, row := range rows {
		c.Add(row.Status)
	}
	return c
}

/* ===================== PER USER / PER ACTIVITY ===================== */

func (s *FrequencyService) UserFrequency(ctx context.Context, userID uuid.UUID, f repository.RangeFilter) (domain.Stats, error) {
	rows, err := s.reader.RowsForUser(ctx, userID, normalizeFilter(f))
	if err != nil {
		return domain.Stats{}, err
	}
	return domain.BuildStats(countRows(rows)), nil
}

func (s *FrequencyService) ActivityFrequency(ctx context.Context, activityID uuid.UUID) (domain.Stats, error) {
	rows, err := s.reader.RowsForActivity(ctx, activityID)
	if err != nil {
		return domain.Stats{}, err
	}
	return domain.BuildStats(countRows(rows)), nil
}

/* ===================== PERIOD BUCKETS ===================== */

// PeriodStats is one bucket of the by-period breakdown.
type PeriodStats struct {
	Period string       `json:"period"`
	Stats  domain.Stats `json:"stats"`
}

// ByPeriod buckets a user's records by the activity's scheduled start
// into period keys, ascending.
func (s *FrequencyService) ByPeriod(ctx context.Context, userID uuid.UUID, group domain.PeriodGroup, f repository.RangeFilter) ([]PeriodStats, error) {
	rows, err := s.reader.RowsForUser(ctx, userID, normalizeFilter(f))
	if err != nil {
		return nil, err
	}
	return bucketByPeriod(rows, group), nil
}

func bucketByPeriod(rows []repository.RecordRow, group domain.PeriodGroup) []PeriodStats {
	buckets := make(map[string]*domain.StatusCounts)
	for _, row := range rows {
		key := domain.PeriodKey(group, row.ActivityStart)
		c, ok := buckets[key]
		if !ok {
			c = &domain.StatusCounts{}
			buckets[key] = c
		}
		c.Add(row.Status)
	}

	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]PeriodStats, 0, len(keys))
	for _, k := range keys {
		out = append(out, PeriodStats{Period: k, Stats: domain.BuildStats(*buckets[k])})
	}
	return out
}

/* ===================== TRAILING WINDOW ===================== */

// TrailingWindow builds the [now-days, now] range filter for alerts.
func TrailingWindow(now time.Time, days int) repository.RangeFilter {
	start := now.AddDate(0, 0, -days)
	return repository.RangeFilter{StartDate: &start, EndDate: &now}
}
