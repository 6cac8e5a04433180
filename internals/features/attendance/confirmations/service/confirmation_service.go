package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"relawanku_backend/internals/features/activities"
	"relawanku_backend/internals/features/attendance/confirmations/model"
	"relawanku_backend/internals/features/attendance/confirmations/repository"
	"relawanku_backend/internals/features/attendance/domain"
)

// Notifier is the reminder-delivery collaborator. Delivery is
// best-effort: failures are logged, never surfaced to the caller.
type Notifier interface {
	SendConfirmationReminder(ctx context.Context, activityID, userID uuid.UUID) error
}

// ZapNotifier is the default stand-in wiring: it records the dispatch
// instead of delivering. Real transports implement Notifier elsewhere.
type ZapNotifier struct {
	Log *zap.Logger
}

func (n *ZapNotifier) SendConfirmationReminder(_ context.Context, activityID, userID uuid.UUID) error {
	n.Log.Info("confirmation reminder dispatched",
		zap.String("activity_id", activityID.String()),
		zap.String("user_id", userID.String()))
	return nil
}

type ConfirmationService struct {
	repo          repository.ConfirmationRepository
	directory     activities.Directory
	notifier      Notifier
	log           *zap.Logger
	dispatchLimit int
}

func NewConfirmationService(repo repository.ConfirmationRepository, dir activities.Directory, notifier Notifier, log *zap.Logger, dispatchLimit int) *ConfirmationService {
	if dispatchLimit <= 0 {
		dispatchLimit = 500
	}
	return &ConfirmationService{
		repo:          repo,
		directory:     dir,
		notifier:      notifier,
		log:           log,
		dispatchLimit: dispatchLimit,
	}
}

// SetConfirmation upserts the RSVP for (activity, user). Timing is not
// validated: a confirmation after the activity is accepted, it is just
// meaningless for attendance.
func (s *ConfirmationService) SetConfirmation(ctx context.Context, activityID, userID uuid.UUID, status domain.ConfirmationStatus, notes *string) (*model.AttendanceConfirmationModel, error) {
	if _, err := s.directory.FindActivity(ctx, activityID); err != nil {
		return nil, err
	}

	mdl := &model.AttendanceConfirmationModel{
		AttendanceConfirmationActivityID: activityID,
		AttendanceConfirmationUserID:     userID,
		AttendanceConfirmationStatus:     status,
		AttendanceConfirmationNotes:      notes,
	}
	if err := s.repo.Upsert(ctx, mdl); err != nil {
		return nil, err
	}
	return mdl, nil
}

func (s *ConfirmationService) ListForActivity(ctx context.Context, activityID uuid.UUID, status *domain.ConfirmationStatus, limit, offset int) ([]model.AttendanceConfirmationModel, int64, error) {
	return s.repo.ListByActivity(ctx, activityID, status, limit, offset)
}

func (s *ConfirmationService) ListForUser(ctx context.Context, userID uuid.UUID, status *domain.ConfirmationStatus, af repository.ActivityFilter, limit, offset int) ([]repository.UserConfirmationRow, int64, error) {
	return s.repo.ListByUser(ctx, userID, status, af, limit, offset)
}

func (s *ConfirmationService) Stats(ctx context.Context, activityID uuid.UUID) (map[domain.ConfirmationStatus]int64, error) {
	if _, err := s.directory.FindActivity(ctx, activityID); err != nil {
		return nil, err
	}
	return s.repo.CountByStatus(ctx, activityID)
}

// SendReminders targets the given users, or every PENDING confirmation
// when userIDs is empty. Dispatch happens off the request path; the
// returned count is how many reminders were handed to the notifier.
func (s *ConfirmationService) SendReminders(ctx context.Context, activityID uuid.UUID, userIDs []uuid.UUID) (int, error) {
	if _, err := s.directory.FindActivity(ctx, activityID); err != nil {
		return 0, err
	}

	targets := userIDs
	if len(targets) == 0 {
		var err error
		targets, err = s.repo.PendingUserIDs(ctx, activityID, s.dispatchLimit)
		if err != nil {
			return 0, err
		}
	}
	if len(targets) == 0 {
		return 0, nil
	}

	// Fire-and-forget: tidak boleh memblokir request, kegagalan cukup
	// dicatat.
	go func(targets []uuid.UUID) {
		bg, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		for _, uid := range targets {
			if err := s.notifier.SendConfirmationReminder(bg, activityID, uid); err != nil {
				s.log.Warn("reminder dispatch failed",
					zap.String("activity_id", activityID.String()),
					zap.String("user_id", uid.String()),
					zap.Error(err))
			}
		}
	}(targets)

	return len(targets), nil
}
