package domain

import "time"

// PeriodGroup selects the bucketing dimension for grouped stats.
type PeriodGroup string

const (
	GroupByDay   PeriodGroup = "day"
	GroupByWeek  PeriodGroup = "week"
	GroupByMonth PeriodGroup = "month"
)

func (g PeriodGroup) Valid() bool {
	switch g {
	case GroupByDay, GroupByWeek, GroupByMonth:
		return true
	}
	return false
}

// PeriodKey buckets t (the activity's scheduled start, not the
// check-in instant) into a sortable key:
//
//	day   → "2026-08-30" (ISO date)
//	week  → ISO date of the Sunday starting that week
//	month → "2026-08"
func PeriodKey(g PeriodGroup, t time.Time) string {
	switch g {
	case GroupByWeek:
		return WeekStart(t).Format("2006-01-02")
	case GroupByMonth:
		return t.Format("2006-01")
	default:
		return t.Format("2006-01-02")
	}
}

// WeekStart returns midnight of the Sunday on or before t.
func WeekStart(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return day.AddDate(0, 0, -int(day.Weekday()))
}
