package domain

import (
	"time"
)

// CalendarDay is one row of the calendar dimension table, describing a
// single date. Rows are derived purely from the date itself.
type CalendarDay struct {
	Date       time.Time `json:"date"`
	Year       int       `json:"year"`
	Quarter    int       `json:"quarter"`
	Month      int       `json:"month"`
	Week       int       `json:"week"`
	DayOfMonth int       `json:"day_of_month"`
	DayOfWeek  int       `json:"day_of_week"`
	DayOfYear  int       `json:"day_of_year"`
	MonthName  string    `json:"month_name"`
	DayName    string    `json:"day_name"`
	Weekend    bool      `json:"weekend"`
}

// NewCalendarDay derives a CalendarDay for the given date. The time portion
// is truncated to midnight UTC. Week numbers follow ISO 8601, and day of
// week runs Monday=1 through Sunday=7 to match.
func NewCalendarDay(date time.Time) *CalendarDay {
	d := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	_, week := d.ISOWeek()

	dow := int(d.Weekday())
	if dow == 0 {
		dow = 7 // Sunday
	}

	return &CalendarDay{
		Date:       d,
		Year:       d.Year(),
		Quarter:    (int(d.Month())-1)/3 + 1,
		Month:      int(d.Month()),
		Week:       week,
		DayOfMonth: d.Day(),
		DayOfWeek:  dow,
		DayOfYear:  d.YearDay(),
		MonthName:  d.Month().String(),
		DayName:    d.Weekday().String(),
		Weekend:    dow >= 6,
	}
}
