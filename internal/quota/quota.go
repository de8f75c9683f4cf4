package quota

import (
	"time"

	"dreami/internal/analytics"
)

// MonthlyLimit is the number of interpretations a user gets per calendar
// month, voice and text combined. Follow-up questions are not counted.
const MonthlyLimit = 20

// Policy decides quota eligibility over the current period's usage.
type Policy struct {
	store analytics.Store
	now   func() time.Time
}

func New(store analytics.Store) *Policy {
	return &Policy{store: store, now: time.Now}
}

// Allow reports whether the user may request another interpretation
// this month.
func (p *Policy) Allow(userID int64) bool {
	return p.store.UserUsage(userID).TotalDreams < MonthlyLimit
}

// Remaining returns the interpretations left this month, floored at 0
// for display.
func (p *Policy) Remaining(userID int64) int {
	left := MonthlyLimit - p.store.UserUsage(userID).TotalDreams
	if left < 0 {
		return 0
	}
	return left
}

// DaysUntilReset approximates the days until the quota resets as
// 30 minus the current day of month, matching the message users see.
func (p *Policy) DaysUntilReset() int {
	return 30 - p.now().Day()
}
