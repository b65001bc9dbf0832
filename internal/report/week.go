package report

import (
	"errors"
	"time"

	"github.com/Tiliavir/timetrack/internal/timecalc"
)

// Quota is the configured weekly working-hours target, spread evenly over
// the workdays of the week.
type Quota struct {
	WeekHours time.Duration
	Workdays  int
}

// PerDay returns the daily share of the weekly quota.
func (q Quota) PerDay() time.Duration {
	if q.Workdays <= 0 {
		return 0
	}
	return q.WeekHours / time.Duration(q.Workdays)
}

// WeekRow is one day line of a week report. Absent rows mark weekdays
// without a recorded arrival; their duration fields are zero.
type WeekRow struct {
	Date    time.Time
	Absent  bool
	Worked  time.Duration
	Delta   time.Duration // worked minus the daily quota
	Present bool
}

// WeekReport summarizes one calendar week against the quota. The optional
// fields are nil when the corresponding figure does not apply (see Week).
type WeekReport struct {
	Year        int // ISO week year
	Week        int // ISO week number
	Rows        []WeekRow
	DaysCounted int
	Total       time.Duration
	Delta       time.Duration // cumulative signed delta vs. the daily quota

	ExpectedSoFar   *time.Duration // quota share of the days counted, set while the week is incomplete
	Remaining       *time.Duration // time left to reach the weekly quota
	RemainingPerDay *time.Duration // average daily target over the remaining workdays
}

// Week aggregates the day reports of the week offset weeks from now; offset
// 0 is the current week, negative offsets are past weeks. The window is
// capped at tomorrow so future days of the current week are never evaluated.
// Days without a recorded arrival become absent rows on weekdays and are
// skipped silently on weekends; every other day failure aborts the report.
func Week(log EventLog, offset int, now time.Time, quota Quota) (WeekReport, error) {
	start := timecalc.WeekStart(now, offset)
	end := start.AddDate(0, 0, 7)
	if tomorrow := timecalc.NextMidnight(now); tomorrow.Before(end) {
		end = tomorrow
	}

	perDay := quota.PerDay()
	year, week := start.ISOWeek()
	r := WeekReport{Year: year, Week: week}
	presentToday := false

	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		day, err := Day(log, d, now)
		if err != nil {
			var noArrival *NoArrivalError
			if !errors.As(err, &noArrival) {
				return WeekReport{}, err
			}
			if timecalc.Weekend(d) {
				continue
			}
			r.Rows = append(r.Rows, WeekRow{Date: d, Absent: true})
			continue
		}

		r.DaysCounted++
		r.Total += day.Worked
		r.Delta += day.Worked - perDay
		r.Rows = append(r.Rows, WeekRow{
			Date:    d,
			Worked:  day.Worked,
			Delta:   day.Worked - perDay,
			Present: day.Present,
		})
		if day.Present && timecalc.SameDay(d, now) {
			presentToday = true
		}
	}

	if r.DaysCounted < quota.Workdays {
		expected := perDay * time.Duration(r.DaysCounted)
		r.ExpectedSoFar = &expected
	}
	if r.DaysCounted < quota.Workdays || presentToday {
		remaining := quota.WeekHours - r.Total
		r.Remaining = &remaining
		if left := quota.Workdays - r.DaysCounted; left > 1 {
			perLeft := remaining / time.Duration(left)
			r.RemainingPerDay = &perLeft
		}
	}
	return r, nil
}
