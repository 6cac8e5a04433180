// Package activities is the read-side adapter over the Activity
// Directory. The directory owns activity identity, schedule, status,
// and the roster; this engine only reads those and pushes back a
// single counter (present participants).
package activities

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"relawanku_backend/internals/features/attendance/domain"
)

// Activity is the slice of directory state the engine consumes.
type Activity struct {
	ID           uuid.UUID             `json:"activity_id"`
	Title        string                `json:"activity_title"`
	Status       domain.ActivityStatus `json:"activity_status"`
	StartTime    time.Time             `json:"activity_start_time"`
	EndTime      time.Time             `json:"activity_end_time"`
	Location     *string               `json:"activity_location,omitempty"`
	IsOnline     bool                  `json:"activity_is_online"`
	PresentCount int                   `json:"activity_present_count"`
}

// RosterEntry is one roster member with the role the directory
// assigned them for the activity.
type RosterEntry struct {
	UserID uuid.UUID `json:"user_id"`
	Role   string    `json:"role"`
}

// Directory is the port the attendance services depend on.
type Directory interface {
	// FindActivity returns domain.ErrNotFound when the id is unknown.
	FindActivity(ctx context.Context, activityID uuid.UUID) (*Activity, error)
	// IsOnRoster reports roster membership for the pair.
	IsOnRoster(ctx context.Context, activityID, userID uuid.UUID) (bool, error)
	// RosterEntries lists every user entitled to attend the activity,
	// with their role.
	RosterEntries(ctx context.Context, activityID uuid.UUID) ([]RosterEntry, error)
	// UpdatePresentCount pushes the recomputed counter back.
	UpdatePresentCount(ctx context.Context, activityID uuid.UUID, count int) error
}

/* =========================================================
 * GORM ADAPTER
 * ========================================================= */

// GormDirectory reads the directory's tables directly; the engine has
// no ownership of their schema.
type GormDirectory struct {
	DB *gorm.DB
}

func NewGormDirectory(db *gorm.DB) *GormDirectory { return &GormDirectory{DB: db} }

func (d *GormDirectory) FindActivity(ctx context.Context, activityID uuid.UUID) (*Activity, error) {
	type row struct {
		ID           uuid.UUID `gorm:"column:activity_id"`
		Title        string    `gorm:"column:activity_title"`
		Status       string    `gorm:"column:activity_status"`
		StartTime    time.Time `gorm:"column:activity_start_time"`
		EndTime      time.Time `gorm:"column:activity_end_time"`
		Location     *string   `gorm:"column:activity_location"`
		IsOnline     bool      `gorm:"column:activity_is_online"`
		PresentCount int       `gorm:"column:activity_present_count"`
	}
	var r row
	err := d.DB.WithContext(ctx).Table("activities").
		Select(`activity_id, activity_title, activity_status,
		        activity_start_time, activity_end_time,
		        activity_location, activity_is_online, activity_present_count`).
		Where("activity_id = ?", activityID).
		Take(&r).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &Activity{
		ID:           r.ID,
		Title:        r.Title,
		Status:       domain.ActivityStatus(r.Status),
		StartTime:    r.StartTime,
		EndTime:      r.EndTime,
		Location:     r.Location,
		IsOnline:     r.IsOnline,
		PresentCount: r.PresentCount,
	}, nil
}

func (d *GormDirectory) IsOnRoster(ctx context.Context, activityID, userID uuid.UUID) (bool, error) {
	var n int64
	err := d.DB.WithContext(ctx).Table("activity_participants").
		Where("activity_participant_activity_id = ? AND activity_participant_user_id = ?", activityID, userID).
		Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (d *GormDirectory) RosterEntries(ctx context.Context, activityID uuid.UUID) ([]RosterEntry, error) {
	type row struct {
		UserID uuid.UUID `gorm:"column:activity_participant_user_id"`
		Role   string    `gorm:"column:activity_participant_role"`
	}
	var rows []row
	err := d.DB.WithContext(ctx).Table("activity_participants").
		Select("activity_participant_user_id, activity_participant_role").
		Where("activity_participant_activity_id = ?", activityID).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]RosterEntry, 0, len(rows))
	for _, r := range rows {
		out = append(out, RosterEntry{UserID: r.UserID, Role: r.Role})
	}
	return out, nil
}

func (d *GormDirectory) UpdatePresentCount(ctx context.Context, activityID uuid.UUID, count int) error {
	return d.DB.WithContext(ctx).Table("activities").
		Where("activity_id = ?", activityID).
		Update("activity_present_count", count).Error
}
