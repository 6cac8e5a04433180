package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"relawanku_backend/internals/features/activities"
	"relawanku_backend/internals/features/attendance/domain"
	"relawanku_backend/internals/features/attendance/reports/model"
	statsrepo "relawanku_backend/internals/features/attendance/stats/repository"
)

/* =========================================================
 * FAKES
 * ========================================================= */

type fakeReportRepo struct {
	rows map[uuid.UUID]*model.AttendanceReportModel
}

func newFakeReportRepo() *fakeReportRepo {
	return &fakeReportRepo{rows: map[uuid.UUID]*model.AttendanceReportModel{}}
}

func (f *fakeReportRepo) Insert(_ context.Context, mdl *model.AttendanceReportModel) error {
	if mdl.AttendanceReportID == uuid.Nil {
		mdl.AttendanceReportID = uuid.New()
	}
	if mdl.AttendanceReportGeneratedAt.IsZero() {
		mdl.AttendanceReportGeneratedAt = time.Now()
	}
	cp := *mdl
	f.rows[mdl.AttendanceReportID] = &cp
	return nil
}

func (f *fakeReportRepo) FindByID(_ context.Context, reportID uuid.UUID) (*model.AttendanceReportModel, error) {
	mdl, ok := f.rows[reportID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *mdl
	return &cp, nil
}

func (f *fakeReportRepo) ListByActivity(_ context.Context, activityID uuid.UUID, reportType *domain.ReportType, limit, offset int) ([]model.AttendanceReportModel, int64, error) {
	out := []model.AttendanceReportModel{}
	for _, mdl := range f.rows {
		if mdl.AttendanceReportActivityID != activityID {
			continue
		}
		if reportType != nil && mdl.AttendanceReportType != *reportType {
			continue
		}
		out = append(out, *mdl)
	}
	return out, int64(len(out)), nil
}

func (f *fakeReportRepo) Delete(_ context.Context, reportID uuid.UUID) error {
	if _, ok := f.rows[reportID]; !ok {
		return domain.ErrNotFound
	}
	delete(f.rows, reportID)
	return nil
}

type fakeReader struct {
	rows []statsrepo.RecordRow
}

func (f *fakeReader) RowsForUser(_ context.Context, userID uuid.UUID, _ statsrepo.RangeFilter) ([]statsrepo.RecordRow, error) {
	out := []statsrepo.RecordRow{}
	for _, row := range f.rows {
		if row.UserID == userID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakeReader) RowsForActivity(_ context.Context, activityID uuid.UUID) ([]statsrepo.RecordRow, error) {
	out := []statsrepo.RecordRow{}
	for _, row := range f.rows {
		if row.ActivityID == activityID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakeReader) RowsAll(_ context.Context, _ statsrepo.RangeFilter) ([]statsrepo.RecordRow, error) {
	return f.rows, nil
}

type fakeDirectory struct {
	act    *activities.Activity
	roster []activities.RosterEntry
}

func (f *fakeDirectory) FindActivity(_ context.Context, activityID uuid.UUID) (*activities.Activity, error) {
	if f.act == nil || f.act.ID != activityID {
		return nil, domain.ErrNotFound
	}
	cp := *f.act
	return &cp, nil
}

func (f *fakeDirectory) IsOnRoster(_ context.Context, _, _ uuid.UUID) (bool, error) { return true, nil }

func (f *fakeDirectory) RosterEntries(_ context.Context, _ uuid.UUID) ([]activities.RosterEntry, error) {
	return f.roster, nil
}

func (f *fakeDirectory) UpdatePresentCount(_ context.Context, _ uuid.UUID, _ int) error { return nil }

/* =========================================================
 * FIXTURE
 * ========================================================= */

type reportFixture struct {
	svc  *ReportService
	repo *fakeReportRepo

	activityID uuid.UUID
	owner      uuid.UUID
	volunteer1 uuid.UUID
	volunteer2 uuid.UUID
}

func ts(d, hh, mm int) time.Time {
	return time.Date(2026, 8, d, hh, mm, 0, 0, time.UTC)
}

func newReportFixture(t *testing.T) *reportFixture {
	t.Helper()

	activityID := uuid.New()
	v1 := uuid.New()
	v2 := uuid.New()

	in1 := ts(30, 10, 0)
	out1 := ts(30, 11, 30)
	in2 := ts(30, 10, 30)

	reader := &fakeReader{rows: []statsrepo.RecordRow{
		{ActivityID: activityID, UserID: v1, Status: domain.RecordPresent,
			CheckInTime: &in1, CheckOutTime: &out1, ActivityStart: ts(30, 10, 0)},
		{ActivityID: activityID, UserID: v2, Status: domain.RecordLate,
			CheckInTime: &in2, ActivityStart: ts(30, 10, 0)},
	}}
	repo := newFakeReportRepo()
	dir := &fakeDirectory{
		act: &activities.Activity{
			ID:        activityID,
			Title:     "Donor Darah PMI",
			Status:    domain.ActivityCompleted,
			StartTime: ts(30, 10, 0),
			EndTime:   ts(30, 12, 0),
		},
		roster: []activities.RosterEntry{
			{UserID: v1, Role: "volunteer"},
			{UserID: v2, Role: "coordinator"},
		},
	}

	svc := NewReportService(repo, reader, dir, zap.NewNop())
	svc.Now = func() time.Time { return ts(30, 14, 0) }
	return &reportFixture{
		svc:        svc,
		repo:       repo,
		activityID: activityID,
		owner:      uuid.New(),
		volunteer1: v1,
		volunteer2: v2,
	}
}

func decodeContent(t *testing.T, mdl *model.AttendanceReportModel) ReportContent {
	t.Helper()
	var content ReportContent
	if err := sonic.Unmarshal(mdl.AttendanceReportContent, &content); err != nil {
		t.Fatalf("decode content: %v", err)
	}
	return content
}

/* =========================================================
 * GENERATE
 * ========================================================= */

func TestGenerateDaily(t *testing.T) {
	fx := newReportFixture(t)

	mdl, err := fx.svc.Generate(context.Background(), fx.activityID, fx.owner, GenerateInput{
		ReportType: domain.ReportDaily,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if mdl.AttendanceReportType != domain.ReportDaily {
		t.Errorf("type = %s", mdl.AttendanceReportType)
	}
	if mdl.AttendanceReportGeneratedBy != fx.owner {
		t.Errorf("generated_by mismatch")
	}

	content := decodeContent(t, mdl)
	if content.Stats.TotalActivities != 2 || content.Stats.PresentCount != 2 {
		t.Errorf("stats = %+v", content.Stats)
	}
	if content.Stats.AttendanceRate != 100 {
		t.Errorf("attendance rate = %d, want 100", content.Stats.AttendanceRate)
	}
	// Anchor default hari ini: kedua record tanggal 30 masuk.
	if len(content.Records) != 2 {
		t.Fatalf("records = %d, want 2", len(content.Records))
	}
	if content.Activity != nil {
		t.Error("activity details excluded by default")
	}
}

func TestGenerateDailyAnchorsOnDate(t *testing.T) {
	fx := newReportFixture(t)

	anchor := ts(29, 0, 0)
	mdl, err := fx.svc.Generate(context.Background(), fx.activityID, fx.owner, GenerateInput{
		ReportType: domain.ReportDaily,
		Date:       &anchor,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	content := decodeContent(t, mdl)
	// Tidak ada record di tanggal 29: daftar kosong, stats tetap utuh.
	if len(content.Records) != 0 {
		t.Fatalf("records = %d, want 0", len(content.Records))
	}
	if content.Stats.TotalActivities != 2 {
		t.Errorf("stats should still cover the fetched rows: %+v", content.Stats)
	}
}

func TestGenerateParticipantSummary(t *testing.T) {
	fx := newReportFixture(t)

	mdl, err := fx.svc.Generate(context.Background(), fx.activityID, fx.owner, GenerateInput{
		ReportType:             domain.ReportParticipantSummary,
		IncludeActivityDetails: true,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	content := decodeContent(t, mdl)
	if len(content.Participants) != 2 {
		t.Fatalf("participants = %d, want 2", len(content.Participants))
	}
	if content.Activity == nil || content.Activity.Title != "Donor Darah PMI" {
		t.Error("activity details missing")
	}

	var v1 *ParticipantSummary
	for i := range content.Participants {
		if content.Participants[i].UserID == fx.volunteer1 {
			v1 = &content.Participants[i]
		}
	}
	if v1 == nil {
		t.Fatal("volunteer1 missing from summary")
	}
	// Check-in 10:00 → 10.0; check-out 11:30 → 11.5.
	if v1.AvgCheckInHour == nil || *v1.AvgCheckInHour != 10.0 {
		t.Errorf("avg check-in hour = %v", v1.AvgCheckInHour)
	}
	if v1.AvgCheckOutHour == nil || *v1.AvgCheckOutHour != 11.5 {
		t.Errorf("avg check-out hour = %v", v1.AvgCheckOutHour)
	}
}

func TestGenerateActivitySummaryHasNoHours(t *testing.T) {
	fx := newReportFixture(t)

	mdl, err := fx.svc.Generate(context.Background(), fx.activityID, fx.owner, GenerateInput{
		ReportType: domain.ReportActivitySummary,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	content := decodeContent(t, mdl)
	for _, p := range content.Participants {
		if p.AvgCheckInHour != nil || p.AvgCheckOutHour != nil {
			t.Fatalf("activity_summary should not compute clock hours: %+v", p)
		}
	}
}

func TestGenerateCustom(t *testing.T) {
	fx := newReportFixture(t)

	t.Run("group by user", func(t *testing.T) {
		mdl, err := fx.svc.Generate(context.Background(), fx.activityID, fx.owner, GenerateInput{
			ReportType: domain.ReportCustom,
			GroupBy:    "user",
		})
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		content := decodeContent(t, mdl)
		if len(content.Participants) != 2 {
			t.Fatalf("participants = %d, want 2", len(content.Participants))
		}
	})

	t.Run("group by day", func(t *testing.T) {
		mdl, err := fx.svc.Generate(context.Background(), fx.activityID, fx.owner, GenerateInput{
			ReportType: domain.ReportCustom,
			GroupBy:    "day",
		})
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		content := decodeContent(t, mdl)
		if len(content.Buckets) != 1 || content.Buckets[0].Period != "2026-08-30" {
			t.Fatalf("buckets = %v", content.Buckets)
		}
	})

	t.Run("invalid group", func(t *testing.T) {
		_, err := fx.svc.Generate(context.Background(), fx.activityID, fx.owner, GenerateInput{
			ReportType: domain.ReportCustom,
			GroupBy:    "decade",
		})
		if !errors.Is(err, domain.ErrInvalidState) {
			t.Fatalf("err = %v, want ErrInvalidState", err)
		}
	})
}

func TestGenerateUnknownActivity(t *testing.T) {
	fx := newReportFixture(t)
	_, err := fx.svc.Generate(context.Background(), uuid.New(), fx.owner, GenerateInput{
		ReportType: domain.ReportDaily,
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

// Snapshot tidak pernah di-refresh: generate ulang selalu baris baru.
func TestRegenerateInsertsNewSnapshot(t *testing.T) {
	fx := newReportFixture(t)

	first, err := fx.svc.Generate(context.Background(), fx.activityID, fx.owner, GenerateInput{ReportType: domain.ReportWeekly})
	if err != nil {
		t.Fatalf("first Generate: %v", err)
	}
	second, err := fx.svc.Generate(context.Background(), fx.activityID, fx.owner, GenerateInput{ReportType: domain.ReportWeekly})
	if err != nil {
		t.Fatalf("second Generate: %v", err)
	}
	if first.AttendanceReportID == second.AttendanceReportID {
		t.Fatal("regenerate reused the snapshot row")
	}

	rows, total, err := fx.svc.List(context.Background(), fx.activityID, nil, 10, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 2 || len(rows) != 2 {
		t.Fatalf("list = %d rows / total %d, want 2/2", len(rows), total)
	}
}

/* =========================================================
 * DELETE
 * ========================================================= */

func TestDeleteOwnerOnly(t *testing.T) {
	fx := newReportFixture(t)

	mdl, err := fx.svc.Generate(context.Background(), fx.activityID, fx.owner, GenerateInput{ReportType: domain.ReportDaily})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	// Bukan pembuat → forbidden, baris tetap ada.
	err = fx.svc.Delete(context.Background(), mdl.AttendanceReportID, uuid.New())
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
	if _, err := fx.svc.Get(context.Background(), mdl.AttendanceReportID); err != nil {
		t.Fatal("snapshot should survive a forbidden delete")
	}

	// Pembuat boleh.
	if err := fx.svc.Delete(context.Background(), mdl.AttendanceReportID, fx.owner); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if _, err := fx.svc.Get(context.Background(), mdl.AttendanceReportID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("after delete: err = %v, want ErrNotFound", err)
	}

	// Hapus dua kali → not found.
	if err := fx.svc.Delete(context.Background(), mdl.AttendanceReportID, fx.owner); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("double delete: err = %v, want ErrNotFound", err)
	}
}

func TestGenerateUserDetailsCarryRosterRoles(t *testing.T) {
	fx := newReportFixture(t)

	mdl, err := fx.svc.Generate(context.Background(), fx.activityID, fx.owner, GenerateInput{
		ReportType:         domain.ReportParticipantSummary,
		IncludeUserDetails: true,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	content := decodeContent(t, mdl)
	roles := map[uuid.UUID]string{}
	for _, p := range content.Participants {
		if p.Role == nil {
			t.Fatalf("participant %s has no role despite include_user_details", p.UserID)
		}
		roles[p.UserID] = *p.Role
	}
	if roles[fx.volunteer1] != "volunteer" || roles[fx.volunteer2] != "coordinator" {
		t.Errorf("roles = %v", roles)
	}

	// Breakdown harian ikut dianotasi.
	mdl, err = fx.svc.Generate(context.Background(), fx.activityID, fx.owner, GenerateInput{
		ReportType:         domain.ReportDaily,
		IncludeUserDetails: true,
	})
	if err != nil {
		t.Fatalf("Generate daily: %v", err)
	}
	content = decodeContent(t, mdl)
	for _, r := range content.Records {
		if r.Role == nil {
			t.Errorf("record for %s has no role despite include_user_details", r.UserID)
		}
	}
}

func TestGenerateWithoutUserDetailsOmitsRoles(t *testing.T) {
	fx := newReportFixture(t)

	mdl, err := fx.svc.Generate(context.Background(), fx.activityID, fx.owner, GenerateInput{
		ReportType: domain.ReportParticipantSummary,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	content := decodeContent(t, mdl)
	for _, p := range content.Participants {
		if p.Role != nil {
			t.Errorf("participant %s carries role %q without include_user_details", p.UserID, *p.Role)
		}
	}
}
