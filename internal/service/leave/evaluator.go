package leave

import (
	"fmt"

	"github.com/lumahr/lms-backend-go/internal/domain/leave"
	"github.com/lumahr/lms-backend-go/internal/domain/organization"
	"github.com/lumahr/lms-backend-go/internal/pkg/calendar"
)

// Draft is a candidate leave request under evaluation. A zero StartDate or
// EndDate means the user has not picked one yet.
type Draft struct {
	LeaveTypeID string
	StartDate   calendar.Date
	EndDate     calendar.Date
}

// Classification partitions a date range: every date lands in exactly one of
// working or excluded, where excluded is the union of weekend and holiday
// dates (a Saturday holiday is excluded once, not twice).
type Classification struct {
	WeekendDates []calendar.Date
	HolidayDates []calendar.Date
	WorkingDates []calendar.Date
}

// EffectiveDays is the chargeable day count for the classified range.
func (c Classification) EffectiveDays() int {
	return len(c.WorkingDates)
}

// Evaluation is the outcome of evaluating a draft. Incomplete means the
// draft is missing a selection and no error should be shown yet; otherwise
// Valid/Reason report the first failing rule.
type Evaluation struct {
	TotalCalendarDays int
	WeekendDates      []calendar.Date
	HolidayDates      []calendar.Date
	WorkingDates      []calendar.Date
	EffectiveDays     int

	Incomplete bool
	Valid      bool
	Reason     string
}

// Validity rule messages, surfaced verbatim as inline form errors.
const (
	ReasonInvertedRange    = "Start date cannot be after end date."
	ReasonPastDated        = "You cannot apply leave for past days."
	ReasonSingleNonWorking = "Selected single day is a weekend or a holiday."
	ReasonEmptyRange       = "Selected range contains no valid leave days (all are weekends or holidays)."
)

// EnumerateDates returns every calendar date from start to end inclusive,
// ascending.
func EnumerateDates(start, end calendar.Date) []calendar.Date {
	return calendar.DatesBetween(start, end)
}

// ClassifyDates splits dates into weekend, holiday, and working dates.
// Weekend and holiday classification are independent: a date can appear in
// both lists, but is working only when it is in neither.
func ClassifyDates(dates []calendar.Date, holidays []organization.Holiday) Classification {
	holidaySet := make(map[calendar.Date]struct{}, len(holidays))
	for _, h := range holidays {
		holidaySet[h.Date] = struct{}{}
	}

	var c Classification
	for _, d := range dates {
		weekend := d.IsWeekend()
		_, holiday := holidaySet[d]

		if weekend {
			c.WeekendDates = append(c.WeekendDates, d)
		}
		if holiday {
			c.HolidayDates = append(c.HolidayDates, d)
		}
		if !weekend && !holiday {
			c.WorkingDates = append(c.WorkingDates, d)
		}
	}
	return c
}

// Evaluate classifies the draft's date range and applies the validity rules
// in fixed order, stopping at the first failure. It is pure: no I/O, no
// clock access (today is an argument), and identical inputs always produce
// identical results.
//
// Rule order:
//  1. missing leave type or date -> incomplete, no error text
//  2. inverted range
//  3. start before today
//  4. single-day range on a weekend or holiday
//  5. no working days in range
//  6. insufficient balance (skipped for unlimited types or unknown balance)
func Evaluate(draft Draft, holidays []organization.Holiday, balance *leave.LeaveBalance, unlimited bool, today calendar.Date) Evaluation {
	if draft.LeaveTypeID == "" || draft.StartDate.IsZero() || draft.EndDate.IsZero() {
		return Evaluation{Incomplete: true}
	}

	if draft.StartDate.After(draft.EndDate) {
		return Evaluation{Reason: ReasonInvertedRange}
	}

	dates := EnumerateDates(draft.StartDate, draft.EndDate)
	c := ClassifyDates(dates, holidays)

	ev := Evaluation{
		TotalCalendarDays: len(dates),
		WeekendDates:      c.WeekendDates,
		HolidayDates:      c.HolidayDates,
		WorkingDates:      c.WorkingDates,
		EffectiveDays:     c.EffectiveDays(),
	}

	if draft.StartDate.Before(today) {
		ev.Reason = ReasonPastDated
		return ev
	}

	if draft.StartDate.Equal(draft.EndDate) && ev.EffectiveDays == 0 {
		ev.Reason = ReasonSingleNonWorking
		return ev
	}

	if ev.EffectiveDays == 0 {
		ev.Reason = ReasonEmptyRange
		return ev
	}

	if !unlimited && balance != nil && balance.Remaining != nil {
		if *balance.Remaining < ev.EffectiveDays {
			ev.Reason = fmt.Sprintf(
				"Insufficient balance: you have %d days remaining but selected %d leave days.",
				*balance.Remaining, ev.EffectiveDays,
			)
			return ev
		}
	}

	ev.Valid = true
	return ev
}
