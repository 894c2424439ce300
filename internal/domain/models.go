package domain

import (
	"strings"
	"time"
)

// Period is one of the six fixed measurement contexts. Canonical values match
// the strings stored with historical readings, so they stay in Russian.
type Period string

const (
	PeriodBeforeBreakfast Period = "Перед завтраком"
	PeriodBeforeLunch     Period = "Перед обедом"
	PeriodBeforeDinner    Period = "Перед ужином"
	PeriodBeforeSleep     Period = "Перед сном"
	PeriodNight           Period = "Ночью"
	PeriodAfterMeal       Period = "Через час после еды"
)

// AllPeriods lists every period in chart display order.
var AllPeriods = []Period{
	PeriodBeforeBreakfast,
	PeriodBeforeLunch,
	PeriodBeforeDinner,
	PeriodBeforeSleep,
	PeriodNight,
	PeriodAfterMeal,
}

// periodLabels maps keyboard button labels (icon prefix included) to the
// canonical period, so domain values are not derived by splitting UI text.
var periodLabels = map[string]Period{
	"🍽 Перед завтраком":     PeriodBeforeBreakfast,
	"🍽 Перед обедом":        PeriodBeforeLunch,
	"🍽 Перед ужином":        PeriodBeforeDinner,
	"🌙 Перед сном":          PeriodBeforeSleep,
	"🌃 Ночью":               PeriodNight,
	"⏱ Через час после еды": PeriodAfterMeal,
}

// ParsePeriodLabel resolves a button label to its canonical period. Labels
// from stale keyboards may carry a different icon, so an unknown label falls
// back to stripping the first whitespace-separated token.
func ParsePeriodLabel(label string) (Period, bool) {
	if p, ok := periodLabels[label]; ok {
		return p, true
	}
	if p := Period(label); p.Valid() {
		return p, true
	}
	if _, rest, found := strings.Cut(label, " "); found {
		if p := Period(rest); p.Valid() {
			return p, true
		}
	}
	return "", false
}

// Valid reports whether p is one of the fixed periods.
func (p Period) Valid() bool {
	for _, known := range AllPeriods {
		if p == known {
			return true
		}
	}
	return false
}

// User represents a telegram user in the system.
type User struct {
	ID           uint
	TelegramID   int64
	Name         string
	IsAdmin      bool
	RegisteredAt time.Time
}

// GlucoseReading is one persisted measurement. UserID references the owning
// user's telegram id, as in the historical schema.
type GlucoseReading struct {
	ID        uint
	UserID    int64
	Value     float64
	Period    Period
	Timestamp time.Time
}

// PendingInput marks that the bot expects a numeric glucose value next,
// tagged with the period it belongs to. Ephemeral, never persisted to the
// primary store.
type PendingInput struct {
	Period Period
}
