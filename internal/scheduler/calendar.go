package scheduler

import (
	"time"

	"github.com/scmhub/calendar"
	"go.uber.org/zap"
)

// B3 regular session in local time.
const (
	sessionOpenHour  = 10
	sessionCloseHour = 17
)

// TradingCalendar answers whether B3 is trading on a given day or minute.
type TradingCalendar struct {
	Calendar *calendar.Calendar
	Fallback bool
	Timezone *time.Location
}

// NewTradingCalendar loads the B3 (BVMF) exchange calendar. When the calendar cannot be
// loaded it falls back to Mon-Fri 10:00-17:00 in America/Sao_Paulo.
func NewTradingCalendar(logger *zap.Logger) *TradingCalendar {
	if cal := calendar.GetCalendar("bvmf"); cal != nil {
		return &TradingCalendar{Calendar: cal, Timezone: cal.Loc}
	}
	logger.Warn("bvmf calendar unavailable, using Mon-Fri fallback")
	return FallbackCalendar()
}

// FallbackCalendar returns the weekday-only calendar.
func FallbackCalendar() *TradingCalendar {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		loc = time.FixedZone("BRT", -3*60*60)
	}
	return &TradingCalendar{Fallback: true, Timezone: loc}
}

// IsTradingDay reports whether the exchange trades on the date.
func (tc *TradingCalendar) IsTradingDay(date time.Time) bool {
	if tc.Timezone != nil {
		date = date.In(tc.Timezone)
	}
	if tc.Fallback {
		weekday := date.Weekday()
		return weekday != time.Saturday && weekday != time.Sunday
	}
	return tc.Calendar.IsBusinessDay(date)
}

// IsOpen reports whether the regular session is open at t.
func (tc *TradingCalendar) IsOpen(t time.Time) bool {
	if tc.Timezone != nil {
		t = t.In(tc.Timezone)
	}
	if tc.Fallback {
		if !tc.IsTradingDay(t) {
			return false
		}
		return t.Hour() >= sessionOpenHour && t.Hour() < sessionCloseHour
	}
	return tc.Calendar.IsOpen(t)
}
