package domain

import "testing"

func TestParsePeriodLabel(t *testing.T) {
	tests := []struct {
		label string
		want  Period
		ok    bool
	}{
		{"🍽 Перед завтраком", PeriodBeforeBreakfast, true},
		{"🍽 Перед обедом", PeriodBeforeLunch, true},
		{"🍽 Перед ужином", PeriodBeforeDinner, true},
		{"🌙 Перед сном", PeriodBeforeSleep, true},
		{"🌃 Ночью", PeriodNight, true},
		{"⏱ Через час после еды", PeriodAfterMeal, true},
		// Stale keyboards may carry a different icon; the fallback strips the
		// first token.
		{"🔸 Перед завтраком", PeriodBeforeBreakfast, true},
		{"Перед завтраком", PeriodBeforeBreakfast, true},
		{"📊 График", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := ParsePeriodLabel(tt.label)
		if ok != tt.ok {
			t.Errorf("ParsePeriodLabel(%q) ok = %v, want %v", tt.label, ok, tt.ok)
			continue
		}
		if got != tt.want {
			t.Errorf("ParsePeriodLabel(%q) = %q, want %q", tt.label, got, tt.want)
		}
	}
}

func TestPeriodValid(t *testing.T) {
	for _, p := range AllPeriods {
		if !p.Valid() {
			t.Errorf("Period %q should be valid", p)
		}
	}
	if Period("Завтрак").Valid() {
		t.Error("Unknown period should not be valid")
	}
}
