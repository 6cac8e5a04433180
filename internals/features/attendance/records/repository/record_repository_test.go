package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"relawanku_backend/internals/features/attendance/domain"
	"relawanku_backend/internals/features/attendance/records/model"
)

/* =========================================================
 * SQLITE HARNESS
 * ========================================================= */

// Skema dibuat manual (bukan AutoMigrate) karena tag kolom model
// memakai default postgres (gen_random_uuid).
const testSchema = `
CREATE TABLE activities (
	activity_id            TEXT PRIMARY KEY,
	activity_title         TEXT,
	activity_status        TEXT,
	activity_start_time    DATETIME,
	activity_end_time      DATETIME,
	activity_location      TEXT,
	activity_is_online     BOOLEAN DEFAULT FALSE,
	activity_present_count INTEGER DEFAULT 0
);
CREATE TABLE attendance_records (
	attendance_record_id             TEXT PRIMARY KEY,
	attendance_record_activity_id    TEXT NOT NULL,
	attendance_record_user_id        TEXT NOT NULL,
	attendance_record_status         TEXT NOT NULL,
	attendance_record_check_in_time  DATETIME,
	attendance_record_check_out_time DATETIME,
	attendance_record_location       TEXT,
	attendance_record_latitude       REAL,
	attendance_record_longitude      REAL,
	attendance_record_device_info    TEXT,
	attendance_record_notes          TEXT,
	attendance_record_created_at     DATETIME,
	attendance_record_updated_at     DATETIME,
	CONSTRAINT uq_attendance_record_pair
		UNIQUE (attendance_record_activity_id, attendance_record_user_id)
);`

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql.DB: %v", err)
	}
	// Satu koneksi saja: tiap koneksi :memory: adalah database sendiri.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.Exec(testSchema).Error; err != nil {
		t.Fatalf("create schema: %v", err)
	}
	return db
}

func seedActivity(t *testing.T, db *gorm.DB, start time.Time) uuid.UUID {
	t.Helper()
	activityID := uuid.New()
	err := db.Table("activities").Create(map[string]interface{}{
		"activity_id":         activityID,
		"activity_title":      "Donor Darah PMI",
		"activity_status":     string(domain.ActivityInProgress),
		"activity_start_time": start,
		"activity_end_time":   start.Add(2 * time.Hour),
	}).Error
	if err != nil {
		t.Fatalf("seed activity: %v", err)
	}
	return activityID
}

func checkedInRow(activityID, userID uuid.UUID, checkIn time.Time) *model.AttendanceRecordModel {
	in := checkIn
	return &model.AttendanceRecordModel{
		AttendanceRecordID:          uuid.New(),
		AttendanceRecordActivityID:  activityID,
		AttendanceRecordUserID:      userID,
		AttendanceRecordStatus:      domain.RecordPresent,
		AttendanceRecordCheckInTime: &in,
	}
}

/* =========================================================
 * COMPLETE CHECK-OUT (compare-and-set)
 * ========================================================= */

func TestCompleteCheckOutFirstCallSucceeds(t *testing.T) {
	db := newTestDB(t)
	repo := NewRecordRepository(db)
	ctx := context.Background()

	start := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	activityID := seedActivity(t, db, start)
	userID := uuid.New()
	mdl := checkedInRow(activityID, userID, start.Add(5*time.Minute))
	if err := repo.Insert(ctx, mdl); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	checkOut := start.Add(110 * time.Minute)
	updated, err := repo.CompleteCheckOut(ctx, mdl.AttendanceRecordID, checkOut, domain.RecordPresent)
	if err != nil {
		t.Fatalf("first CompleteCheckOut must not conflict, got %v", err)
	}
	if updated.AttendanceRecordCheckOutTime == nil || !updated.AttendanceRecordCheckOutTime.Equal(checkOut) {
		t.Errorf("returned check_out = %v, want %v", updated.AttendanceRecordCheckOutTime, checkOut)
	}
	if updated.AttendanceRecordStatus != domain.RecordPresent {
		t.Errorf("returned status = %s, want %s", updated.AttendanceRecordStatus, domain.RecordPresent)
	}

	// Baris tersimpan harus ikut berubah, bukan cuma nilai kembalian.
	stored, err := repo.FindByPair(ctx, activityID, userID)
	if err != nil {
		t.Fatalf("FindByPair: %v", err)
	}
	if stored.AttendanceRecordCheckOutTime == nil || !stored.AttendanceRecordCheckOutTime.Equal(checkOut) {
		t.Errorf("stored check_out = %v, want %v", stored.AttendanceRecordCheckOutTime, checkOut)
	}
}

func TestCompleteCheckOutSecondCallConflicts(t *testing.T) {
	db := newTestDB(t)
	repo := NewRecordRepository(db)
	ctx := context.Background()

	start := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	activityID := seedActivity(t, db, start)
	userID := uuid.New()
	mdl := checkedInRow(activityID, userID, start.Add(5*time.Minute))
	if err := repo.Insert(ctx, mdl); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	first := start.Add(100 * time.Minute)
	if _, err := repo.CompleteCheckOut(ctx, mdl.AttendanceRecordID, first, domain.RecordPresent); err != nil {
		t.Fatalf("first CompleteCheckOut: %v", err)
	}

	second := start.Add(115 * time.Minute)
	if _, err := repo.CompleteCheckOut(ctx, mdl.AttendanceRecordID, second, domain.RecordEarlyLeave); err == nil || !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("second CompleteCheckOut err = %v, want ErrConflict", err)
	}

	// Check-out pertama tetap menang.
	stored, err := repo.FindByPair(ctx, activityID, userID)
	if err != nil {
		t.Fatalf("FindByPair: %v", err)
	}
	if stored.AttendanceRecordCheckOutTime == nil || !stored.AttendanceRecordCheckOutTime.Equal(first) {
		t.Errorf("stored check_out = %v, want %v", stored.AttendanceRecordCheckOutTime, first)
	}
	if stored.AttendanceRecordStatus != domain.RecordPresent {
		t.Errorf("stored status = %s, want %s", stored.AttendanceRecordStatus, domain.RecordPresent)
	}
}

func TestCompleteCheckOutUnknownRecordConflicts(t *testing.T) {
	db := newTestDB(t)
	repo := NewRecordRepository(db)

	_, err := repo.CompleteCheckOut(context.Background(), uuid.New(), time.Now().UTC(), domain.RecordPresent)
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("err = %v, want ErrConflict", err)
	}
}

/* =========================================================
 * PAIR UNIQUENESS
 * ========================================================= */

func TestInsertDuplicatePairConflicts(t *testing.T) {
	db := newTestDB(t)
	repo := NewRecordRepository(db)
	ctx := context.Background()

	start := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	activityID := seedActivity(t, db, start)
	userID := uuid.New()

	if err := repo.Insert(ctx, checkedInRow(activityID, userID, start)); err != nil {
		t.Fatalf("first Insert: %v", err)
	}
	err := repo.Insert(ctx, checkedInRow(activityID, userID, start.Add(time.Minute)))
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("second Insert err = %v, want ErrConflict", err)
	}
}

/* =========================================================
 * LIST FILTERS
 * ========================================================= */

func TestListByActivityAppliesDateRange(t *testing.T) {
	db := newTestDB(t)
	repo := NewRecordRepository(db)
	ctx := context.Background()

	start := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	activityID := seedActivity(t, db, start)
	if err := repo.Insert(ctx, checkedInRow(activityID, uuid.New(), start)); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if err := repo.Insert(ctx, checkedInRow(activityID, uuid.New(), start.Add(10*time.Minute))); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	// Rentang yang memuat jadwal kegiatan → semua baris.
	from := start.AddDate(0, 0, -1)
	to := start.AddDate(0, 0, 1)
	rows, total, err := repo.ListByActivity(ctx, activityID, ListFilter{StartDate: &from, EndDate: &to}, 50, 0)
	if err != nil {
		t.Fatalf("ListByActivity: %v", err)
	}
	if total != 2 || len(rows) != 2 {
		t.Fatalf("in-range total = %d rows = %d, want 2/2", total, len(rows))
	}

	// Rentang setelah jadwal → kosong, bukan unfiltered.
	after := start.AddDate(0, 0, 2)
	rows, total, err = repo.ListByActivity(ctx, activityID, ListFilter{StartDate: &after}, 50, 0)
	if err != nil {
		t.Fatalf("ListByActivity: %v", err)
	}
	if total != 0 || len(rows) != 0 {
		t.Fatalf("out-of-range total = %d rows = %d, want 0/0", total, len(rows))
	}
}

func TestListByActivityStatusFilter(t *testing.T) {
	db := newTestDB(t)
	repo := NewRecordRepository(db)
	ctx := context.Background()

	start := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	activityID := seedActivity(t, db, start)

	present := checkedInRow(activityID, uuid.New(), start)
	if err := repo.Insert(ctx, present); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	late := checkedInRow(activityID, uuid.New(), start.Add(45*time.Minute))
	late.AttendanceRecordStatus = domain.RecordLate
	if err := repo.Insert(ctx, late); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	st := domain.RecordLate
	rows, total, err := repo.ListByActivity(ctx, activityID, ListFilter{Status: &st}, 50, 0)
	if err != nil {
		t.Fatalf("ListByActivity: %v", err)
	}
	if total != 1 || len(rows) != 1 || rows[0].AttendanceRecordStatus != domain.RecordLate {
		t.Fatalf("status filter total = %d rows = %d, want the single late row", total, len(rows))
	}
}
