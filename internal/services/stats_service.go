package services

import (
	"context"
	"time"

	"github.com/Chuk2022/VKBot-GDM/internal/domain"
)

// PeriodStats are the numeric aggregates over one period's values.
type PeriodStats struct {
	Count int
	Avg   float64
	Min   float64
	Max   float64
}

// Stats summarizes one user's readings. Zero readings yields Total 0, zero
// numeric fields, an empty ByPeriod map and zero time fields.
type Stats struct {
	Total    int
	Avg      float64
	Min      float64
	Max      float64
	FirstAt  time.Time
	LastAt   time.Time
	ByPeriod map[domain.Period]PeriodStats
}

// UserAggregate is one row of the admin-wide statistics report.
type UserAggregate struct {
	Name  string
	Count int
	Avg   float64
}

// AdminCounters are the totals shown on the admin panel.
type AdminCounters struct {
	Users         int64
	Readings      int64
	ReadingsToday int64
}

// StatsService computes aggregate and per-period statistics.
type StatsService struct {
	users    domain.UserRepository
	readings domain.ReadingRepository
	now      func() time.Time
}

func NewStatsService(users domain.UserRepository, readings domain.ReadingRepository) *StatsService {
	return &StatsService{
		users:    users,
		readings: readings,
		now:      time.Now,
	}
}

// Summarize computes per-user statistics over a time-ordered reading list.
func (s *StatsService) Summarize(readings []domain.GlucoseReading) Stats {
	stats := Stats{ByPeriod: make(map[domain.Period]PeriodStats)}
	if len(readings) == 0 {
		return stats
	}

	stats.Total = len(readings)
	stats.FirstAt = readings[0].Timestamp
	stats.LastAt = readings[len(readings)-1].Timestamp
	stats.Min = readings[0].Value
	stats.Max = readings[0].Value

	sum := 0.0
	periodSums := make(map[domain.Period]float64)
	for _, r := range readings {
		sum += r.Value
		if r.Value < stats.Min {
			stats.Min = r.Value
		}
		if r.Value > stats.Max {
			stats.Max = r.Value
		}

		ps := stats.ByPeriod[r.Period]
		if ps.Count == 0 || r.Value < ps.Min {
			ps.Min = r.Value
		}
		if ps.Count == 0 || r.Value > ps.Max {
			ps.Max = r.Value
		}
		ps.Count++
		stats.ByPeriod[r.Period] = ps
		periodSums[r.Period] += r.Value
	}
	stats.Avg = sum / float64(stats.Total)

	for period, ps := range stats.ByPeriod {
		ps.Avg = periodSums[period] / float64(ps.Count)
		stats.ByPeriod[period] = ps
	}

	return stats
}

// Aggregate reports name, reading count and mean value for every non-admin
// user with at least one reading. Users without readings are omitted.
func (s *StatsService) Aggregate(ctx context.Context) ([]UserAggregate, error) {
	users, err := s.users.ListNonAdmins(ctx)
	if err != nil {
		return nil, err
	}

	var rows []UserAggregate
	for _, user := range users {
		readings, err := s.readings.ListByUser(ctx, user.TelegramID, nil)
		if err != nil {
			return nil, err
		}
		if len(readings) == 0 {
			continue
		}

		sum := 0.0
		for _, r := range readings {
			sum += r.Value
		}
		rows = append(rows, UserAggregate{
			Name:  user.Name,
			Count: len(readings),
			Avg:   sum / float64(len(readings)),
		})
	}
	return rows, nil
}

// ClientSummary is one entry of the admin client list.
type ClientSummary struct {
	TelegramID int64
	Name       string
	Count      int64
}

// ClientList returns every non-admin user with their reading count,
// name-sorted. Unlike Aggregate, zero-reading users are included so an admin
// can see who has not started logging yet.
func (s *StatsService) ClientList(ctx context.Context) ([]ClientSummary, error) {
	users, err := s.users.ListNonAdmins(ctx)
	if err != nil {
		return nil, err
	}

	clients := make([]ClientSummary, 0, len(users))
	for _, user := range users {
		count, err := s.readings.CountByUser(ctx, user.TelegramID)
		if err != nil {
			return nil, err
		}
		clients = append(clients, ClientSummary{
			TelegramID: user.TelegramID,
			Name:       user.Name,
			Count:      count,
		})
	}
	return clients, nil
}

// Counters returns the admin panel totals.
func (s *StatsService) Counters(ctx context.Context) (AdminCounters, error) {
	users, err := s.users.CountAll(ctx)
	if err != nil {
		return AdminCounters{}, err
	}
	readings, err := s.readings.CountAll(ctx)
	if err != nil {
		return AdminCounters{}, err
	}
	today, err := s.readings.CountOn(ctx, s.now())
	if err != nil {
		return AdminCounters{}, err
	}
	return AdminCounters{Users: users, Readings: readings, ReadingsToday: today}, nil
}
