package timerange

import "time"

const reportingOffsetHours = 9

// reportingZone is the fixed UTC+9 offset the reports are aligned to. A fixed
// numeric offset never produces ambiguous or non-existent wall-clock times,
// unlike a politically-aware zone with DST transitions.
var reportingZone = time.FixedZone("UTC+9", reportingOffsetHours*60*60)

// TimeRange is a closed interval with both bounds expressed in UTC
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// Compute returns the calendar-month window covering the reference instant's
// local month in the fixed reporting offset. The window spans local 00:00:00 of
// day 1 through local 23:59:59 of the last day of that month.
func Compute(reference time.Time) (TimeRange, error) {
	local := reference.In(reportingZone)
	year, month, _ := local.Date()

	start, err := resolveLocal(year, month, 1, 0, 0, 0)
	if err != nil {
		return TimeRange{}, err
	}

	end, err := resolveLocal(year, month, lastDayOfMonth(year, month), 23, 59, 59)
	if err != nil {
		return TimeRange{}, err
	}

	return TimeRange{
		Start: start.UTC(),
		End:   end.UTC(),
	}, nil
}

// resolveLocal maps a local wall-clock value onto an absolute instant. If the
// zone can not represent the requested wall clock, time.Date normalizes it to a
// different one; that is surfaced as ErrAmbiguousLocalTime instead of silently
// shifting the window.
func resolveLocal(year int, month time.Month, day int, hour int, minute int, sec int) (time.Time, error) {
	resolved := time.Date(year, month, day, hour, minute, sec, 0, reportingZone)

	resolvedYear, resolvedMonth, resolvedDay := resolved.Date()
	resolvedHour, resolvedMinute, resolvedSec := resolved.Clock()
	sameWallClock := resolvedYear == year && resolvedMonth == month && resolvedDay == day &&
		resolvedHour == hour && resolvedMinute == minute && resolvedSec == sec
	if !sameWallClock {
		return time.Time{}, ErrAmbiguousLocalTime
	}

	return resolved, nil
}

// lastDayOfMonth takes day 1 of the following month and steps back one day,
// rolling December over to January of the next year
func lastDayOfMonth(year int, month time.Month) int {
	nextYear, nextMonth := year, month+1
	if month == time.December {
		nextYear, nextMonth = year+1, time.January
	}

	firstOfNext := time.Date(nextYear, nextMonth, 1, 0, 0, 0, 0, reportingZone)

	return firstOfNext.AddDate(0, 0, -1).Day()
}
