package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"relawanku_backend/internals/features/activities"
	"relawanku_backend/internals/features/attendance/domain"
	"relawanku_backend/internals/features/attendance/records/model"
	"relawanku_backend/internals/features/attendance/records/repository"
)

/* =========================================================
 * IN-MEMORY FAKES
 * ========================================================= */

type pairKey struct {
	activityID uuid.UUID
	userID     uuid.UUID
}

// fakeRecordRepo mimics the storage contract including the unique
// index on (activity, user): a second insert for a pair conflicts.
// A mutex stands in for the database's own serialization, so racing
// check-ins hit the same single-winner semantics.
type fakeRecordRepo struct {
	mu   sync.Mutex
	rows map[pairKey]*model.AttendanceRecordModel

	// activityStarts feeds the date-range filter on listings, the way
	// the real implementation joins the activities table.
	activityStarts map[uuid.UUID]time.Time

	// confirmed feeds NoShowCandidates: users with a confirmed RSVP.
	confirmed []uuid.UUID

	insertCalls int
}

func newFakeRecordRepo() *fakeRecordRepo {
	return &fakeRecordRepo{
		rows:           map[pairKey]*model.AttendanceRecordModel{},
		activityStarts: map[uuid.UUID]time.Time{},
	}
}

// inRange mirrors the SQL date filter: unknown activity start means no
// constraint, a known one must fall inside [StartDate, EndDate].
func (f *fakeRecordRepo) inRange(activityID uuid.UUID, filter repository.ListFilter) bool {
	start, ok := f.activityStarts[activityID]
	if !ok {
		return filter.StartDate == nil && filter.EndDate == nil
	}
	if filter.StartDate != nil && start.Before(*filter.StartDate) {
		return false
	}
	if filter.EndDate != nil && start.After(*filter.EndDate) {
		return false
	}
	return true
}

func (f *fakeRecordRepo) Insert(_ context.Context, mdl *model.AttendanceRecordModel) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.insertCalls++
	key := pairKey{mdl.AttendanceRecordActivityID, mdl.AttendanceRecordUserID}
	if _, ok := f.rows[key]; ok {
		return domain.ErrConflict
	}
	if mdl.AttendanceRecordID == uuid.Nil {
		mdl.AttendanceRecordID = uuid.New()
	}
	cp := *mdl
	f.rows[key] = &cp
	return nil
}

func (f *fakeRecordRepo) FindByPair(_ context.Context, activityID, userID uuid.UUID) (*model.AttendanceRecordModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	mdl, ok := f.rows[pairKey{activityID, userID}]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *mdl
	return &cp, nil
}

func (f *fakeRecordRepo) CompleteCheckOut(_ context.Context, recordID uuid.UUID, checkOut time.Time, status domain.RecordStatus) (*model.AttendanceRecordModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, mdl := range f.rows {
		if mdl.AttendanceRecordID != recordID {
			continue
		}
		if mdl.AttendanceRecordCheckOutTime != nil {
			return nil, domain.ErrConflict
		}
		t := checkOut
		mdl.AttendanceRecordCheckOutTime = &t
		mdl.AttendanceRecordStatus = status
		cp := *mdl
		return &cp, nil
	}
	return nil, domain.ErrConflict
}

func (f *fakeRecordRepo) ListByActivity(_ context.Context, activityID uuid.UUID, filter repository.ListFilter, limit, offset int) ([]model.AttendanceRecordModel, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []model.AttendanceRecordModel{}
	if !f.inRange(activityID, filter) {
		return out, 0, nil
	}
	for key, mdl := range f.rows {
		if key.activityID != activityID {
			continue
		}
		if filter.Status != nil && mdl.AttendanceRecordStatus != *filter.Status {
			continue
		}
		out = append(out, *mdl)
	}
	return out, int64(len(out)), nil
}

func (f *fakeRecordRepo) ListByUser(_ context.Context, userID uuid.UUID, filter repository.ListFilter, limit, offset int) ([]model.AttendanceRecordModel, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []model.AttendanceRecordModel{}
	for key, mdl := range f.rows {
		if key.userID != userID {
			continue
		}
		if filter.Status != nil && mdl.AttendanceRecordStatus != *filter.Status {
			continue
		}
		if !f.inRange(key.activityID, filter) {
			continue
		}
		out = append(out, *mdl)
	}
	return out, int64(len(out)), nil
}

func (f *fakeRecordRepo) CountPresent(_ context.Context, activityID uuid.UUID) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for key, mdl := range f.rows {
		if key.activityID == activityID && mdl.AttendanceRecordStatus.CountsAsPresent() {
			n++
		}
	}
	return n, nil
}

func (f *fakeRecordRepo) NoShowCandidates(_ context.Context, activityID uuid.UUID) ([]uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []uuid.UUID{}
	for _, uid := range f.confirmed {
		if _, ok := f.rows[pairKey{activityID, uid}]; !ok {
			out = append(out, uid)
		}
	}
	return out, nil
}

func (f *fakeRecordRepo) InsertIgnoreDuplicates(_ context.Context, mdls []model.AttendanceRecordModel) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, mdl := range mdls {
		key := pairKey{mdl.AttendanceRecordActivityID, mdl.AttendanceRecordUserID}
		if _, ok := f.rows[key]; ok {
			continue
		}
		cp := mdl
		if cp.AttendanceRecordID == uuid.Nil {
			cp.AttendanceRecordID = uuid.New()
		}
		f.rows[key] = &cp
		n++
	}
	return n, nil
}

// fakeDirectory serves a fixed set of activities and rosters and
// remembers the last pushed present count.
type fakeDirectory struct {
	mu     sync.Mutex
	acts   map[uuid.UUID]*activities.Activity
	roster map[pairKey]bool

	pushedCounts map[uuid.UUID]int
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{
		acts:         map[uuid.UUID]*activities.Activity{},
		roster:       map[pairKey]bool{},
		pushedCounts: map[uuid.UUID]int{},
	}
}

func (f *fakeDirectory) addActivity(act activities.Activity, roster ...uuid.UUID) {
	cp := act
	f.acts[act.ID] = &cp
	for _, uid := range roster {
		f.roster[pairKey{act.ID, uid}] = true
	}
}

func (f *fakeDirectory) FindActivity(_ context.Context, activityID uuid.UUID) (*activities.Activity, error) {
	act, ok := f.acts[activityID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *act
	return &cp, nil
}

func (f *fakeDirectory) IsOnRoster(_ context.Context, activityID, userID uuid.UUID) (bool, error) {
	return f.roster[pairKey{activityID, userID}], nil
}

func (f *fakeDirectory) RosterEntries(_ context.Context, activityID uuid.UUID) ([]activities.RosterEntry, error) {
	out := []activities.RosterEntry{}
	for key := range f.roster {
		if key.activityID == activityID {
			out = append(out, activities.RosterEntry{UserID: key.userID, Role: "volunteer"})
		}
	}
	return out, nil
}

func (f *fakeDirectory) UpdatePresentCount(_ context.Context, activityID uuid.UUID, count int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pushedCounts[activityID] = count
	return nil
}
