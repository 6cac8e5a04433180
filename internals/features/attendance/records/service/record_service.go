package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"relawanku_backend/internals/features/activities"
	"relawanku_backend/internals/features/attendance/domain"
	"relawanku_backend/internals/features/attendance/records/model"
	"relawanku_backend/internals/features/attendance/records/repository"
)

// RecordService is the check-in/check-out/absence state machine. All
// pair-level races are decided by the storage uniqueness constraint,
// not by in-process locks: two concurrent check-ins produce exactly
// one row and one conflict.
type RecordService struct {
	repo      repository.RecordRepository
	directory activities.Directory
	policy    TimePolicy
	log       *zap.Logger

	// Now is the clock; tests pin it to fixed instants.
	Now func() time.Time
}

func NewRecordService(repo repository.RecordRepository, dir activities.Directory, policy TimePolicy, log *zap.Logger) *RecordService {
	return &RecordService{
		repo:      repo,
		directory: dir,
		policy:    policy,
		log:       log,
		Now:       time.Now,
	}
}

// Eligibility is the read-only answer of CanCheckIn.
type Eligibility struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
}

// validateCheckIn runs the shared precondition chain (activity exists,
// activity state, roster, no prior record, time window) and classifies
// the would-be status. CheckIn and CanCheckIn both go through here so
// they can never diverge.
func (s *RecordService) validateCheckIn(ctx context.Context, activityID, userID uuid.UUID, now time.Time) (domain.RecordStatus, *activities.Activity, error) {
	act, err := s.directory.FindActivity(ctx, activityID)
	if err != nil {
		return "", nil, err
	}
	if act.Status == domain.ActivityCancelled || act.Status == domain.ActivityCompleted {
		return "", nil, domain.ErrInvalidState
	}

	onRoster, err := s.directory.IsOnRoster(ctx, activityID, userID)
	if err != nil {
		return "", nil, err
	}
	if !onRoster {
		return "", nil, domain.ErrForbidden
	}

	existing, err := s.repo.FindByPair(ctx, activityID, userID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return "", nil, err
	}
	if existing != nil {
		return "", nil, domain.ErrConflict
	}

	status, oow := s.policy.EvaluateCheckIn(act.StartTime, act.EndTime, now)
	if oow != nil {
		return "", nil, oow
	}
	return status, act, nil
}

/* ===================== CHECK-IN ===================== */

func (s *RecordService) CheckIn(ctx context.Context, activityID, userID uuid.UUID, data CheckInData) (*model.AttendanceRecordModel, error) {
	now := s.Now()

	status, _, err := s.validateCheckIn(ctx, activityID, userID, now)
	if err != nil {
		return nil, err
	}

	mdl, err := applyCheckIn(nil, activityID, userID, status, now, data)
	if err != nil {
		return nil, err
	}
	// Insert kalah balapan → ErrConflict dari unique index; tidak ada
	// state parsial yang tertinggal.
	if err := s.repo.Insert(ctx, mdl); err != nil {
		return nil, err
	}

	s.pushPresentCount(ctx, activityID)
	return mdl, nil
}

/* ===================== CHECK-OUT ===================== */

func (s *RecordService) CheckOut(ctx context.Context, activityID, userID uuid.UUID, notes *string) (*model.AttendanceRecordModel, error) {
	now := s.Now()

	current, err := s.repo.FindByPair(ctx, activityID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidState // harus check-in dulu
		}
		return nil, err
	}

	act, err := s.directory.FindActivity(ctx, activityID)
	if err != nil {
		return nil, err
	}

	next, err := applyCheckOut(current, now, s.policy.IsEarlyLeave(act.EndTime, now))
	if err != nil {
		return nil, err
	}
	if notes != nil {
		next.AttendanceRecordNotes = notes
	}

	// CAS di storage: baris yang sudah punya check-out tidak tersentuh.
	updated, err := s.repo.CompleteCheckOut(ctx, next.AttendanceRecordID, *next.AttendanceRecordCheckOutTime, next.AttendanceRecordStatus)
	if err != nil {
		return nil, err
	}

	s.pushPresentCount(ctx, activityID)
	return updated, nil
}

/* ===================== ABSENCE ===================== */

func (s *RecordService) MarkAbsence(ctx context.Context, activityID, userID uuid.UUID, notes *string, isExcused bool) (*model.AttendanceRecordModel, error) {
	if _, err := s.directory.FindActivity(ctx, activityID); err != nil {
		return nil, err
	}

	onRoster, err := s.directory.IsOnRoster(ctx, activityID, userID)
	if err != nil {
		return nil, err
	}
	if !onRoster {
		return nil, domain.ErrForbidden
	}

	current, err := s.repo.FindByPair(ctx, activityID, userID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	mdl, err := newAbsence(current, activityID, userID, notes, isExcused)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Insert(ctx, mdl); err != nil {
		return nil, err
	}
	return mdl, nil
}

/* ===================== NO-SHOW SWEEP ===================== */

// MarkNoShows stamps no_show for every roster member who confirmed and
// never produced attendance data. Only valid after the activity
// completes; idempotent (duplicates are skipped by the unique index).
func (s *RecordService) MarkNoShows(ctx context.Context, activityID uuid.UUID) (int, error) {
	act, err := s.directory.FindActivity(ctx, activityID)
	if err != nil {
		return 0, err
	}
	if act.Status != domain.ActivityCompleted {
		return 0, domain.ErrInvalidState
	}

	candidates, err := s.repo.NoShowCandidates(ctx, activityID)
	if err != nil {
		return 0, err
	}
	if len(candidates) == 0 {
		return 0, nil
	}

	mdls := make([]model.AttendanceRecordModel, 0, len(candidates))
	for _, uid := range candidates {
		mdls = append(mdls, *newNoShow(activityID, uid))
	}
	return s.repo.InsertIgnoreDuplicates(ctx, mdls)
}

/* ===================== ELIGIBILITY ===================== */

// CanCheckIn mirrors CheckIn's validation without mutating anything.
func (s *RecordService) CanCheckIn(ctx context.Context, activityID, userID uuid.UUID) (Eligibility, error) {
	_, _, err := s.validateCheckIn(ctx, activityID, userID, s.Now())
	if err == nil {
		return Eligibility{Allowed: true}, nil
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		return Eligibility{Reason: "activity not found"}, nil
	case errors.Is(err, domain.ErrInvalidState):
		return Eligibility{Reason: "activity is cancelled or completed"}, nil
	case errors.Is(err, domain.ErrForbidden):
		return Eligibility{Reason: "not on the activity roster"}, nil
	case errors.Is(err, domain.ErrConflict):
		return Eligibility{Reason: "already checked in"}, nil
	}
	if oow, ok := domain.AsOutOfWindow(err); ok {
		return Eligibility{Reason: oow.Reason}, nil
	}
	return Eligibility{}, err
}

/* ===================== QUERIES ===================== */

func (s *RecordService) ListForActivity(ctx context.Context, activityID uuid.UUID, f repository.ListFilter, limit, offset int) ([]model.AttendanceRecordModel, int64, error) {
	return s.repo.ListByActivity(ctx, activityID, f, limit, offset)
}

func (s *RecordService) ListForUser(ctx context.Context, userID uuid.UUID, f repository.ListFilter, limit, offset int) ([]model.AttendanceRecordModel, int64, error) {
	return s.repo.ListByUser(ctx, userID, f, limit, offset)
}

/* ===================== SIDE EFFECT ===================== */

// pushPresentCount recomputes and pushes the live counter. Best-effort:
// a failure is logged, never bubbled into the attendance write.
func (s *RecordService) pushPresentCount(ctx context.Context, activityID uuid.UUID) {
	n, err := s.repo.CountPresent(ctx, activityID)
	if err != nil {
		s.log.Warn("present count recompute failed",
			zap.String("activity_id", activityID.String()), zap.Error(err))
		return
	}
	if err := s.directory.UpdatePresentCount(ctx, activityID, n); err != nil {
		s.log.Warn("present count push failed",
			zap.String("activity_id", activityID.String()), zap.Error(err))
	}
}
