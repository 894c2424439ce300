package services

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/Chuk2022/VKBot-GDM/internal/apperrors"
	"github.com/Chuk2022/VKBot-GDM/internal/domain"
	"github.com/Chuk2022/VKBot-GDM/internal/logger"
)

// Accepted glucose range in mmol/L, inclusive on both ends.
const (
	MinGlucoseValue = 1.0
	MaxGlucoseValue = 30.0
)

// ErrNoPending is returned by Submit when the user has no pending entry, so
// the caller can fall through to other message classifications.
var ErrNoPending = errors.New("no pending input for user")

// IntakeService is the reading-intake state machine: a period selection puts
// the user into an awaiting-value state, the next parseable in-range number
// becomes a stored reading.
type IntakeService struct {
	readings domain.ReadingRepository
	pending  domain.PendingTracker
	now      func() time.Time
}

// IntakeResult describes an accepted submission.
type IntakeResult struct {
	Value  float64
	Period domain.Period
	Total  int64
}

func NewIntakeService(readings domain.ReadingRepository, pending domain.PendingTracker) *IntakeService {
	return &IntakeService{
		readings: readings,
		pending:  pending,
		now:      time.Now,
	}
}

// SelectPeriod moves the user into the awaiting-value state. A previous
// pending entry is silently overwritten.
func (s *IntakeService) SelectPeriod(userID int64, period domain.Period) {
	s.pending.SetPending(userID, period)
}

// Pending reports the period the user owes a value for, if any.
func (s *IntakeService) Pending(userID int64) (domain.Period, bool) {
	entry, ok := s.pending.GetPending(userID)
	return entry.Period, ok
}

// Abandon drops the pending entry without recording anything.
func (s *IntakeService) Abandon(userID int64) {
	s.pending.ClearPending(userID)
}

// ParseValue parses a submitted glucose value, accepting both "," and "." as
// the decimal separator.
func ParseValue(text string) (float64, error) {
	normalized := strings.ReplaceAll(strings.TrimSpace(text), ",", ".")
	value, err := strconv.ParseFloat(normalized, 64)
	if err != nil {
		return 0, apperrors.NewValidationError("NOT_A_NUMBER", "Введите число (пример: 5,6)")
	}
	return value, nil
}

// Submit runs a text submission against the pending entry. On a validation
// failure the entry is preserved so the next message is retried against the
// same period. The entry is cleared only after the insert is confirmed; a
// store failure keeps it so no data is silently lost.
func (s *IntakeService) Submit(ctx context.Context, userID int64, text string) (*IntakeResult, error) {
	entry, ok := s.pending.GetPending(userID)
	if !ok {
		return nil, ErrNoPending
	}

	value, err := ParseValue(text)
	if err != nil {
		return nil, err
	}

	if value < MinGlucoseValue || value > MaxGlucoseValue {
		return nil, apperrors.NewValidationError("OUT_OF_RANGE",
			"Значение должно быть от 1.0 до 30.0 ммоль/л")
	}

	reading, err := s.readings.Create(ctx, userID, value, entry.Period, s.now())
	if err != nil {
		return nil, err
	}
	s.pending.ClearPending(userID)

	total, err := s.readings.CountByUser(ctx, userID)
	if err != nil {
		// The reading is committed; a failed count only degrades the reply.
		logger.Errorf("failed to count readings for user %d: %v", userID, err)
		total = 0
	}

	return &IntakeResult{
		Value:  reading.Value,
		Period: reading.Period,
		Total:  total,
	}, nil
}
