package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Chuk2022/VKBot-GDM/internal/apperrors"
	"github.com/Chuk2022/VKBot-GDM/internal/chart"
	"github.com/Chuk2022/VKBot-GDM/internal/domain"
)

// Window restricts a report to a trailing time range.
type Window int

const (
	WindowAll Window = iota
	WindowWeek
	WindowMonth
)

// Since returns the window's lower bound relative to now, or nil for the
// unrestricted window.
func (w Window) Since(now time.Time) *time.Time {
	var since time.Time
	switch w {
	case WindowWeek:
		since = now.AddDate(0, 0, -7)
	case WindowMonth:
		since = now.AddDate(0, 0, -30)
	default:
		return nil
	}
	return &since
}

func (w Window) String() string {
	switch w {
	case WindowWeek:
		return "за неделю"
	case WindowMonth:
		return "за месяц"
	default:
		return "за все время"
	}
}

// Report is a rendered chart with its caption.
type Report struct {
	PNG     []byte
	Caption string
}

// minReadingsForChart is what the charting step needs to avoid degenerate
// axis ranges.
const minReadingsForChart = 2

// ReportService turns a user's readings into a chart artifact.
type ReportService struct {
	users    domain.UserRepository
	readings domain.ReadingRepository
	now      func() time.Time
}

func NewReportService(users domain.UserRepository, readings domain.ReadingRepository) *ReportService {
	return &ReportService{
		users:    users,
		readings: readings,
		now:      time.Now,
	}
}

// ChartForUser renders the glucose chart for one user. Window filtering
// happens before the minimum-count check, so a user with plenty of history
// but a quiet week still gets the insufficient-data response for the weekly
// report.
func (s *ReportService) ChartForUser(ctx context.Context, userID int64, window Window) (*Report, error) {
	user, err := s.users.GetByTelegramID(ctx, userID)
	if err != nil {
		return nil, err
	}

	readings, err := s.readings.ListByUser(ctx, userID, window.Since(s.now()))
	if err != nil {
		return nil, err
	}

	if len(readings) < minReadingsForChart {
		return nil, apperrors.NewInsufficientDataError(
			fmt.Sprintf("недостаточно данных %s (минимум %d замера)", window, minReadingsForChart))
	}

	png, err := chart.Render(readings, fmt.Sprintf("График глюкозы: %s", user.Name))
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrorTypeInternal, "CHART", "failed to render chart")
	}

	return &Report{
		PNG:     png,
		Caption: fmt.Sprintf("📊 График %s (%d замеров)", window, len(readings)),
	}, nil
}
