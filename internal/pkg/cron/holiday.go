package cron

import (
	"context"
	"log/slog"
	"time"
)

// HolidayExpander materializes recurring holidays into concrete dates.
type HolidayExpander interface {
	ExpandRecurringHolidays(ctx context.Context, year int) (int, error)
}

// HolidayJobs contains holiday-calendar cron jobs
type HolidayJobs struct {
	expander HolidayExpander
}

// NewHolidayJobs creates holiday cron jobs
func NewHolidayJobs(expander HolidayExpander) *HolidayJobs {
	return &HolidayJobs{expander: expander}
}

// RegisterJobs registers all holiday-related cron jobs
func (j *HolidayJobs) RegisterJobs(scheduler *Scheduler) {
	// Keep the current and upcoming year materialized. Daily cadence is
	// plenty; the job is idempotent.
	scheduler.AddJob(
		"expand_recurring_holidays",
		24*time.Hour,
		j.ExpandRecurringHolidays,
	)
}

// ExpandRecurringHolidays ensures recurring holidays exist for the current
// and next calendar year, so leave evaluation near year-end sees them.
func (j *HolidayJobs) ExpandRecurringHolidays(ctx context.Context) error {
	year := time.Now().Year()
	for _, y := range []int{year, year + 1} {
		created, err := j.expander.ExpandRecurringHolidays(ctx, y)
		if err != nil {
			return err
		}
		if created > 0 {
			slog.Info("Recurring holidays materialized", "year", y, "created", created)
		}
	}
	return nil
}
