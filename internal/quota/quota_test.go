package quota

import (
	"testing"
	"time"

	"dreami/internal/analytics"
)

type fakeStore struct {
	usage map[int64]analytics.UserUsage
}

func (f *fakeStore) RecordInterpretation(userID int64, channel analytics.Channel, tokensUsed int) {}
func (f *fakeStore) RecordError(category string)                                                 {}
func (f *fakeStore) UserUsage(userID int64) analytics.UserUsage                                  { return f.usage[userID] }
func (f *fakeStore) PeriodSummary() analytics.Summary                                            { return analytics.Summary{} }
func (f *fakeStore) DailySummary(date string) (analytics.DailyStats, bool) {
	return analytics.DailyStats{}, false
}

func TestAllow_Boundary(t *testing.T) {
	fs := &fakeStore{usage: map[int64]analytics.UserUsage{
		1: {TotalDreams: 19},
		2: {TotalDreams: 20},
		3: {TotalDreams: 25},
	}}
	p := New(fs)

	if !p.Allow(1) {
		t.Fatalf("19 of 20 should be allowed")
	}
	if p.Allow(2) {
		t.Fatalf("20 of 20 should be rejected")
	}
	if p.Allow(3) {
		t.Fatalf("over limit should be rejected")
	}
	if !p.Allow(99) {
		t.Fatalf("unknown user should be allowed")
	}
}

func TestRemaining_FlooredAtZero(t *testing.T) {
	fs := &fakeStore{usage: map[int64]analytics.UserUsage{
		1: {TotalDreams: 18},
		2: {TotalDreams: 23},
	}}
	p := New(fs)

	if got := p.Remaining(1); got != 2 {
		t.Fatalf("want 2, got %d", got)
	}
	if got := p.Remaining(2); got != 0 {
		t.Fatalf("want 0, got %d", got)
	}
	if got := p.Remaining(99); got != MonthlyLimit {
		t.Fatalf("want %d, got %d", MonthlyLimit, got)
	}
}

func TestDaysUntilReset_Fixed30DayApproximation(t *testing.T) {
	p := New(&fakeStore{usage: map[int64]analytics.UserUsage{}})
	p.now = func() time.Time { return time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC) }

	if got := p.DaysUntilReset(); got != 18 {
		t.Fatalf("want 18, got %d", got)
	}
}
