package domain

import "math"

// StatusCounts tallies record statuses for one user or one activity.
type StatusCounts struct {
	Total      int
	Present    int
	Late       int
	EarlyLeave int
	Partial    int
	Absent     int
	Excused    int
	NoShow     int
}

func (c *StatusCounts) Add(s RecordStatus) {
	c.Total++
	switch s {
	case RecordPresent:
		c.Present++
	case RecordLate:
		c.Late++
	case RecordEarlyLeave:
		c.EarlyLeave++
	case RecordPartial:
		c.Partial++
	case RecordAbsent:
		c.Absent++
	case RecordExcused:
		c.Excused++
	case RecordNoShow:
		c.NoShow++
	}
}

// PresentCount is the attendance-rate numerator:
// present + late + early_leave + partial.
func (c StatusCounts) PresentCount() int {
	return c.Present + c.Late + c.EarlyLeave + c.Partial
}

// Stats is the computed frequency block shared by the aggregator,
// ranking, and every report builder.
type Stats struct {
	TotalActivities int `json:"total_activities"`
	PresentCount    int `json:"present_count"`
	AbsentCount     int `json:"absent_count"`
	LateCount       int `json:"late_count"`
	EarlyLeaveCount int `json:"early_leave_count"`
	ExcusedCount    int `json:"excused_count"`
	NoShowCount     int `json:"no_show_count"`
	AttendanceRate  int `json:"attendance_rate"`
	PunctualityRate int `json:"punctuality_rate"`
}

// BuildStats derives the rate block from raw counts.
//
// attendanceRate  = round(present/total*100), 0 when total = 0.
// punctualityRate = round((present-late)/present*100), 0 when present = 0.
// The punctuality formula deliberately ignores early-leavers; it counts
// only lateness against punctuality.
func BuildStats(c StatusCounts) Stats {
	present := c.PresentCount()
	return Stats{
		TotalActivities: c.Total,
		PresentCount:    present,
		AbsentCount:     c.Absent,
		LateCount:       c.Late,
		EarlyLeaveCount: c.EarlyLeave,
		ExcusedCount:    c.Excused,
		NoShowCount:     c.NoShow,
		AttendanceRate:  ratePercent(present, c.Total),
		PunctualityRate: ratePercent(present-c.Late, present),
	}
}

// ratePercent = round(num/den*100), clamped into [0,100]; 0 on zero den.
func ratePercent(num, den int) int {
	if den <= 0 {
		return 0
	}
	r := int(math.Round(float64(num) / float64(den) * 100))
	if r < 0 {
		return 0
	}
	if r > 100 {
		return 100
	}
	return r
}
