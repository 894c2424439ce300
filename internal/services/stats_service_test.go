package services

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/Chuk2022/VKBot-GDM/internal/domain"
)

func reading(userID int64, value float64, period domain.Period, ts time.Time) domain.GlucoseReading {
	return domain.GlucoseReading{UserID: userID, Value: value, Period: period, Timestamp: ts}
}

func TestSummarize(t *testing.T) {
	base := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	readings := []domain.GlucoseReading{
		reading(1, 5.0, domain.PeriodBeforeBreakfast, base),
		reading(1, 6.0, domain.PeriodBeforeBreakfast, base.Add(24*time.Hour)),
		reading(1, 7.5, domain.PeriodAfterMeal, base.Add(25*time.Hour)),
		reading(1, 4.5, domain.PeriodNight, base.Add(40*time.Hour)),
	}

	svc := NewStatsService(newFakeUserRepo(), newFakeReadingRepo())
	stats := svc.Summarize(readings)

	if stats.Total != 4 {
		t.Errorf("Expected total 4, got %d", stats.Total)
	}
	if math.Abs(stats.Avg-5.75) > 1e-9 {
		t.Errorf("Expected avg 5.75, got %v", stats.Avg)
	}
	if stats.Min != 4.5 || stats.Max != 7.5 {
		t.Errorf("Expected min 4.5 max 7.5, got %v/%v", stats.Min, stats.Max)
	}
	if !stats.FirstAt.Equal(base) {
		t.Errorf("Expected first date %v, got %v", base, stats.FirstAt)
	}
	if !stats.LastAt.Equal(base.Add(40 * time.Hour)) {
		t.Errorf("Expected last date %v, got %v", base.Add(40*time.Hour), stats.LastAt)
	}

	breakfast := stats.ByPeriod[domain.PeriodBeforeBreakfast]
	if breakfast.Count != 2 || breakfast.Min != 5.0 || breakfast.Max != 6.0 {
		t.Errorf("Unexpected breakfast stats: %+v", breakfast)
	}
	if math.Abs(breakfast.Avg-5.5) > 1e-9 {
		t.Errorf("Expected breakfast avg 5.5, got %v", breakfast.Avg)
	}
}

func TestSummarize_PeriodCountsPartitionTotal(t *testing.T) {
	base := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	var readings []domain.GlucoseReading
	for i := 0; i < 11; i++ {
		period := domain.AllPeriods[i%len(domain.AllPeriods)]
		readings = append(readings, reading(1, 4.0+float64(i)*0.5, period, base.Add(time.Duration(i)*time.Hour)))
	}

	svc := NewStatsService(newFakeUserRepo(), newFakeReadingRepo())
	stats := svc.Summarize(readings)

	sum := 0
	for _, ps := range stats.ByPeriod {
		sum += ps.Count
	}
	if sum != stats.Total {
		t.Errorf("Per-period counts sum to %d, total is %d", sum, stats.Total)
	}
}

func TestSummarize_ZeroReadings(t *testing.T) {
	svc := NewStatsService(newFakeUserRepo(), newFakeReadingRepo())
	stats := svc.Summarize(nil)

	if stats.Total != 0 {
		t.Errorf("Expected total 0, got %d", stats.Total)
	}
	if stats.Avg != 0 || stats.Min != 0 || stats.Max != 0 {
		t.Errorf("Expected zero numeric fields, got %+v", stats)
	}
	if len(stats.ByPeriod) != 0 {
		t.Errorf("Expected empty ByPeriod, got %d entries", len(stats.ByPeriod))
	}
	if !stats.FirstAt.IsZero() || !stats.LastAt.IsZero() {
		t.Errorf("Expected zero dates, got %v/%v", stats.FirstAt, stats.LastAt)
	}
}

func TestAggregate_OmitsUsersWithoutReadings(t *testing.T) {
	users := newFakeUserRepo(
		domain.User{TelegramID: 1, Name: "Анна"},
		domain.User{TelegramID: 2, Name: "Борис"},
		domain.User{TelegramID: 3, Name: "Врач", IsAdmin: true},
	)
	readings := newFakeReadingRepo()
	base := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	ctx := context.Background()
	for i, v := range []float64{5.0, 6.0, 7.0} {
		if _, err := readings.Create(ctx, 1, v, domain.PeriodBeforeBreakfast, base.Add(time.Duration(i)*time.Hour)); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	svc := NewStatsService(users, readings)
	rows, err := svc.Aggregate(ctx)
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}

	if len(rows) != 1 {
		t.Fatalf("Expected 1 row, got %d", len(rows))
	}
	if rows[0].Name != "Анна" || rows[0].Count != 3 {
		t.Errorf("Unexpected row: %+v", rows[0])
	}
	if math.Abs(rows[0].Avg-6.0) > 1e-9 {
		t.Errorf("Expected avg 6.0, got %v", rows[0].Avg)
	}
}

func TestClientList_IncludesUsersWithoutReadings(t *testing.T) {
	users := newFakeUserRepo(
		domain.User{TelegramID: 2, Name: "Борис"},
		domain.User{TelegramID: 1, Name: "Анна"},
	)
	readings := newFakeReadingRepo()
	ctx := context.Background()
	if _, err := readings.Create(ctx, 1, 5.5, domain.PeriodNight, time.Now()); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	svc := NewStatsService(users, readings)
	clients, err := svc.ClientList(ctx)
	if err != nil {
		t.Fatalf("ClientList failed: %v", err)
	}

	if len(clients) != 2 {
		t.Fatalf("Expected 2 clients, got %d", len(clients))
	}
	// Name-sorted.
	if clients[0].Name != "Анна" || clients[0].Count != 1 {
		t.Errorf("Unexpected first client: %+v", clients[0])
	}
	if clients[1].Name != "Борис" || clients[1].Count != 0 {
		t.Errorf("Unexpected second client: %+v", clients[1])
	}
}

func TestCounters(t *testing.T) {
	users := newFakeUserRepo(
		domain.User{TelegramID: 1, Name: "Анна"},
		domain.User{TelegramID: 2, Name: "Борис"},
	)
	readings := newFakeReadingRepo()
	ctx := context.Background()
	now := time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC)

	if _, err := readings.Create(ctx, 1, 5.5, domain.PeriodNight, now.Add(-48*time.Hour)); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := readings.Create(ctx, 1, 6.1, domain.PeriodBeforeSleep, now.Add(-time.Hour)); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	svc := NewStatsService(users, readings)
	svc.now = func() time.Time { return now }

	counters, err := svc.Counters(ctx)
	if err != nil {
		t.Fatalf("Counters failed: %v", err)
	}
	if counters.Users != 2 || counters.Readings != 2 || counters.ReadingsToday != 1 {
		t.Errorf("Unexpected counters: %+v", counters)
	}
}
