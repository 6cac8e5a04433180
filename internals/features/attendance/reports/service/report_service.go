package service

import (
	"context"
	"sort"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"relawanku_backend/internals/features/activities"
	"relawanku_backend/internals/features/attendance/domain"
	"relawanku_backend/internals/features/attendance/reports/model"
	"relawanku_backend/internals/features/attendance/reports/repository"
	statsrepo "relawanku_backend/internals/features/attendance/stats/repository"
)

// ReportService materializes point-in-time snapshots. A snapshot is
// computed by re-querying records at generation time and is never
// refreshed afterwards; records arriving later simply do not exist in
// it. Re-running always inserts a new row.
type ReportService struct {
	repo      repository.ReportRepository
	reader    statsrepo.StatsReader
	directory activities.Directory
	log       *zap.Logger

	Now func() time.Time
}

func NewReportService(repo repository.ReportRepository, reader statsrepo.StatsReader, dir activities.Directory, log *zap.Logger) *ReportService {
	return &ReportService{repo: repo, reader: reader, directory: dir, log: log, Now: time.Now}
}

/* =========================================================
 * INPUT / CONTENT SHAPES
 * ========================================================= */

// GenerateInput is the validated parameter set of one generation run;
// it is persisted verbatim alongside the content.
type GenerateInput struct {
	ReportType             domain.ReportType `json:"report_type"`
	Date                   *time.Time        `json:"date,omitempty"`       // daily anchor
	StartDate              *time.Time        `json:"start_date,omitempty"` // range filters
	EndDate                *time.Time        `json:"end_date,omitempty"`
	GroupBy                string            `json:"group_by,omitempty"` // custom: day|week|month|user
	IncludeUserDetails     bool              `json:"include_user_details"`
	IncludeActivityDetails bool              `json:"include_activity_details"`
}

// ReportRecord is one attendance row inside a report breakdown. Role
// is only filled when user details are requested.
type ReportRecord struct {
	UserID       uuid.UUID           `json:"user_id"`
	Role         *string             `json:"role,omitempty"`
	Status       domain.RecordStatus `json:"status"`
	CheckInTime  *time.Time          `json:"check_in_time,omitempty"`
	CheckOutTime *time.Time          `json:"check_out_time,omitempty"`
}

// PeriodBucket is one time bucket of a weekly/monthly/custom report.
type PeriodBucket struct {
	Period string       `json:"period"`
	Stats  domain.Stats `json:"stats"`
}

// ParticipantSummary is one user's row in a summary table. The average
// hours are fractional clock hours (e.g. 9.75 = 09:45) and only set on
// participant_summary reports.
type ParticipantSummary struct {
	UserID          uuid.UUID    `json:"user_id"`
	Role            *string      `json:"role,omitempty"`
	Stats           domain.Stats `json:"stats"`
	AvgCheckInHour  *float64     `json:"avg_check_in_hour,omitempty"`
	AvgCheckOutHour *float64     `json:"avg_check_out_hour,omitempty"`
}

// ReportContent is the serialized snapshot body.
type ReportContent struct {
	Stats        domain.Stats          `json:"stats"`
	Activity     *activities.Activity  `json:"activity,omitempty"`
	Records      []ReportRecord        `json:"records,omitempty"`
	Buckets      []PeriodBucket        `json:"buckets,omitempty"`
	Participants []ParticipantSummary  `json:"participants,omitempty"`
}

/* =========================================================
 * GENERATE
 * ========================================================= */

func (s *ReportService) Generate(ctx context.Context, activityID, requestedBy uuid.UUID, in GenerateInput) (*model.AttendanceReportModel, error) {
	act, err := s.directory.FindActivity(ctx, activityID)
	if err != nil {
		return nil, err
	}

	rows, err := s.reader.RowsForActivity(ctx, activityID)
	if err != nil {
		return nil, err
	}
	rows = filterRange(rows, in.StartDate, in.EndDate)

	content := ReportContent{Stats: buildStats(rows)}
	if in.IncludeActivityDetails {
		content.Activity = act
	}

	switch in.ReportType {
	case domain.ReportDaily:
		anchor := s.Now()
		if in.Date != nil {
			anchor = *in.Date
		}
		content.Records = buildDailyRecords(rows, anchor)
	case domain.ReportWeekly:
		content.Buckets = buildBuckets(rows, domain.GroupByDay)
	case domain.ReportMonthly:
		content.Buckets = buildBuckets(rows, domain.GroupByWeek)
	case domain.ReportActivitySummary:
		content.Participants = buildParticipants(rows, false)
	case domain.ReportParticipantSummary:
		content.Participants = buildParticipants(rows, true)
	case domain.ReportCustom:
		if in.GroupBy == "user" {
			content.Participants = buildParticipants(rows, false)
		} else {
			group := domain.PeriodGroup(in.GroupBy)
			if !group.Valid() {
				return nil, domain.ErrInvalidState
			}
			content.Buckets = buildBuckets(rows, group)
		}
	default:
		return nil, domain.ErrInvalidState
	}

	if in.IncludeUserDetails {
		entries, err := s.directory.RosterEntries(ctx, activityID)
		if err != nil {
			return nil, err
		}
		attachRoles(&content, entries)
	}

	contentJSON, err := sonic.Marshal(content)
	if err != nil {
		return nil, err
	}
	filtersJSON, err := sonic.Marshal(in)
	if err != nil {
		return nil, err
	}

	mdl := &model.AttendanceReportModel{
		AttendanceReportActivityID:  activityID,
		AttendanceReportGeneratedBy: requestedBy,
		AttendanceReportType:        in.ReportType,
		AttendanceReportFilters:     datatypes.JSON(filtersJSON),
		AttendanceReportContent:     datatypes.JSON(contentJSON),
	}
	if err := s.repo.Insert(ctx, mdl); err != nil {
		return nil, err
	}

	s.log.Info("attendance report generated",
		zap.String("activity_id", activityID.String()),
		zap.String("report_type", string(in.ReportType)),
		zap.String("report_id", mdl.AttendanceReportID.String()))
	return mdl, nil
}

/* =========================================================
 * LIST / GET / DELETE
 * ========================================================= */

func (s *ReportService) List(ctx context.Context, activityID uuid.UUID, reportType *domain.ReportType, limit, offset int) ([]model.AttendanceReportModel, int64, error) {
	return s.repo.ListByActivity(ctx, activityID, reportType, limit, offset)
}

func (s *ReportService) Get(ctx context.Context, reportID uuid.UUID) (*model.AttendanceReportModel, error) {
	return s.repo.FindByID(ctx, reportID)
}

// Delete removes a snapshot; only its original generator may.
func (s *ReportService) Delete(ctx context.Context, reportID, requestedBy uuid.UUID) error {
	mdl, err := s.repo.FindByID(ctx, reportID)
	if err != nil {
		return err
	}
	if mdl.AttendanceReportGeneratedBy != requestedBy {
		return domain.ErrForbidden
	}
	return s.repo.Delete(ctx, reportID)
}

/* =========================================================
 * BUILDERS (pure)
 * ========================================================= */

func buildStats(rows []statsrepo.RecordRow) domain.Stats {
	var c domain.StatusCounts
	for _, row := range rows {
		c.Add(row.Status)
	}
	return domain.BuildStats(c)
}

func filterRange(rows []statsrepo.RecordRow, start, end *time.Time) []statsrepo.RecordRow {
	if start == nil && end == nil {
		return rows
	}
	out := make([]statsrepo.RecordRow, 0, len(rows))
	for _, row := range rows {
		if start != nil && row.ActivityStart.Before(*start) {
			continue
		}
		if end != nil && row.ActivityStart.After(*end) {
			continue
		}
		out = append(out, row)
	}
	return out
}

func buildDailyRecords(rows []statsrepo.RecordRow, anchor time.Time) []ReportRecord {
	key := domain.PeriodKey(domain.GroupByDay, anchor)
	out := []ReportRecord{}
	for _, row := range rows {
		if domain.PeriodKey(domain.GroupByDay, row.ActivityStart) != key {
			continue
		}
		out = append(out, ReportRecord{
			UserID:       row.UserID,
			Status:       row.Status,
			CheckInTime:  row.CheckInTime,
			CheckOutTime: row.CheckOutTime,
		})
	}
	return out
}

func buildBuckets(rows []statsrepo.RecordRow, group domain.PeriodGroup) []PeriodBucket {
	counts := map[string]*domain.StatusCounts{}
	keys := []string{}
	for _, row := range rows {
		key := domain.PeriodKey(group, row.ActivityStart)
		c, ok := counts[key]
		if !ok {
			c = &domain.StatusCounts{}
			counts[key] = c
			keys = append(keys, key)
		}
		c.Add(row.Status)
	}
	sort.Strings(keys)

	out := make([]PeriodBucket, 0, len(keys))
	for _, key := range keys {
		out = append(out, PeriodBucket{Period: key, Stats: domain.BuildStats(*counts[key])})
	}
	return out
}

func buildParticipants(rows []statsrepo.RecordRow, withHours bool) []ParticipantSummary {
	type acc struct {
		counts   domain.StatusCounts
		inHours  []float64
		outHours []float64
	}
	perUser := map[uuid.UUID]*acc{}
	order := []uuid.UUID{}
	for _, row := range rows {
		a, ok := perUser[row.UserID]
		if !ok {
			a = &acc{}
			perUser[row.UserID] = a
			order = append(order, row.UserID)
		}
		a.counts.Add(row.Status)
		if row.CheckInTime != nil {
			a.inHours = append(a.inHours, clockHour(*row.CheckInTime))
		}
		if row.CheckOutTime != nil {
			a.outHours = append(a.outHours, clockHour(*row.CheckOutTime))
		}
	}
	sort.Slice(order, func(i, j int) bool { return order[i].String() < order[j].String() })

	out := make([]ParticipantSummary, 0, len(order))
	for _, uid := range order {
		a := perUser[uid]
		p := ParticipantSummary{UserID: uid, Stats: domain.BuildStats(a.counts)}
		if withHours {
			p.AvgCheckInHour = meanOrNil(a.inHours)
			p.AvgCheckOutHour = meanOrNil(a.outHours)
		}
		out = append(out, p)
	}
	return out
}

// attachRoles annotates records and participant rows with the roster
// role of each user. Users no longer on the roster keep a nil role.
func attachRoles(content *ReportContent, entries []activities.RosterEntry) {
	roles := make(map[uuid.UUID]string, len(entries))
	for _, e := range entries {
		roles[e.UserID] = e.Role
	}
	for i := range content.Records {
		if role, ok := roles[content.Records[i].UserID]; ok {
			r := role
			content.Records[i].Role = &r
		}
	}
	for i := range content.Participants {
		if role, ok := roles[content.Participants[i].UserID]; ok {
			r := role
			content.Participants[i].Role = &r
		}
	}
}

func clockHour(t time.Time) float64 {
	return float64(t.Hour()) + float64(t.Minute())/60
}

func meanOrNil(xs []float64) *float64 {
	if len(xs) == 0 {
		return nil
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	m := sum / float64(len(xs))
	return &m
}
