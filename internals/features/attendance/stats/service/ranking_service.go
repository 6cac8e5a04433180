package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"relawanku_backend/internals/features/attendance/domain"
	"relawanku_backend/internals/features/attendance/stats/repository"
)

/* ===================== RANKING ===================== */

// RankEntry is one user's position in the attendance ranking.
type RankEntry struct {
	Rank   int          `json:"rank"`
	UserID uuid.UUID    `json:"user_id"`
	Stats  domain.Stats `json:"stats"`
}

type RankingService struct {
	reader repository.StatsReader

	Now func() time.Time
}

func NewRankingService(reader repository.StatsReader) *RankingService {
	return &RankingService{reader: reader, Now: time.Now}
}

// Ranking groups matching records per user, computes the shared stat
// block, and sorts by attendanceRate descending. Ties break on
// ascending user id so the order is deterministic across runs.
func (s *RankingService) Ranking(ctx context.Context, f repository.RangeFilter, limit int) ([]RankEntry, error) {
	rows, err := s.reader.RowsAll(ctx, normalizeFilter(f))
	if err != nil {
		return nil, err
	}

	perUser := make(map[uuid.UUID]*domain.StatusCounts)
	for _, row := range rows {
		c, ok := perUser[row.UserID]
		if !ok {
			c = &domain.StatusCounts{}
			perUser[row.UserID] = c
		}
		c.Add(row.Status)
	}

	entries := make([]RankEntry, 0, len(perUser))
	for uid, c := range perUser {
		entries = append(entries, RankEntry{UserID: uid, Stats: domain.BuildStats(*c)})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Stats.AttendanceRate != entries[j].Stats.AttendanceRate {
			return entries[i].Stats.AttendanceRate > entries[j].Stats.AttendanceRate
		}
		return entries[i].UserID.String() < entries[j].UserID.String()
	})

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries, nil
}

/* ===================== ALERTS ===================== */

const (
	AlertLowAttendance     = "LOW_ATTENDANCE"
	AlertFrequentLate      = "FREQUENT_LATE"
	AlertFrequentEarlyOut  = "FREQUENT_EARLY_LEAVE"
	frequentLateRatio      = 0.30
	frequentEarlyOutRatio  = 0.20
	defaultAlertWindowDays = 30
	defaultMinRate         = 70
)

// Alert is advisory only; nothing is ever enforced from it.
type Alert struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// AlertOptions with zero values fall back to 30 days / 70%.
type AlertOptions struct {
	Days              int
	MinAttendanceRate int
}

func (s *RankingService) Alerts(ctx context.Context, userID uuid.UUID, opt AlertOptions) ([]Alert, error) {
	if opt.Days <= 0 {
		opt.Days = defaultAlertWindowDays
	}
	if opt.MinAttendanceRate <= 0 {
		opt.MinAttendanceRate = defaultMinRate
	}

	f := TrailingWindow(s.Now(), opt.Days)
	rows, err := s.reader.RowsForUser(ctx, userID, normalizeFilter(f))
	if err != nil {
		return nil, err
	}
	stats := domain.BuildStats(countRows(rows))

	alerts := []Alert{}
	if stats.TotalActivities > 0 && stats.AttendanceRate < opt.MinAttendanceRate {
		alerts = append(alerts, Alert{
			Type: AlertLowAttendance,
			Message: fmt.Sprintf("Attendance rate %d%% over the last %d days is below the %d%% threshold",
				stats.AttendanceRate, opt.Days, opt.MinAttendanceRate),
		})
	}
	if stats.PresentCount > 0 {
		if float64(stats.LateCount)/float64(stats.PresentCount) > frequentLateRatio {
			alerts = append(alerts, Alert{
				Type:    AlertFrequentLate,
				Message: fmt.Sprintf("Late on %d of %d attended activities", stats.LateCount, stats.PresentCount),
			})
		}
		if float64(stats.EarlyLeaveCount)/float64(stats.PresentCount) > frequentEarlyOutRatio {
			alerts = append(alerts, Alert{
				Type:    AlertFrequentEarlyOut,
				Message: fmt.Sprintf("Left early on %d of %d attended activities", stats.EarlyLeaveCount, stats.PresentCount),
			})
		}
	}
	return alerts, nil
}
