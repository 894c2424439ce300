package state

import (
	"sync"
	"testing"

	"github.com/Chuk2022/VKBot-GDM/internal/domain"
)

func TestManager_SetGetClear(t *testing.T) {
	m := NewManager()

	if _, ok := m.GetPending(1); ok {
		t.Error("Expected no pending entry for fresh manager")
	}

	m.SetPending(1, domain.PeriodBeforeBreakfast)
	entry, ok := m.GetPending(1)
	if !ok {
		t.Fatal("Expected pending entry after SetPending")
	}
	if entry.Period != domain.PeriodBeforeBreakfast {
		t.Errorf("Expected period %q, got %q", domain.PeriodBeforeBreakfast, entry.Period)
	}

	m.ClearPending(1)
	if _, ok := m.GetPending(1); ok {
		t.Error("Expected entry to be gone after ClearPending")
	}

	// Clearing an absent entry is a no-op.
	m.ClearPending(1)
}

func TestManager_SetOverwrites(t *testing.T) {
	m := NewManager()

	m.SetPending(1, domain.PeriodBeforeBreakfast)
	m.SetPending(1, domain.PeriodNight)

	entry, ok := m.GetPending(1)
	if !ok {
		t.Fatal("Expected pending entry")
	}
	if entry.Period != domain.PeriodNight {
		t.Errorf("Expected overwrite to win, got %q", entry.Period)
	}
}

func TestManager_PerUserIsolation(t *testing.T) {
	m := NewManager()

	m.SetPending(1, domain.PeriodBeforeBreakfast)
	m.SetPending(2, domain.PeriodNight)
	m.ClearPending(1)

	if _, ok := m.GetPending(1); ok {
		t.Error("User 1 entry should be cleared")
	}
	if entry, ok := m.GetPending(2); !ok || entry.Period != domain.PeriodNight {
		t.Errorf("User 2 entry should be untouched, got %v %v", entry, ok)
	}
}

func TestManager_ConcurrentAccess(t *testing.T) {
	m := NewManager()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(userID int64) {
			defer wg.Done()
			m.SetPending(userID, domain.PeriodBeforeSleep)
			m.GetPending(userID)
			m.ClearPending(userID)
		}(int64(i % 10))
	}
	wg.Wait()
}
