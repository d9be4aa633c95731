package domain

import "time"

// Plan enumerates billing plans.
type Plan string

const (
	PlanFree    Plan = "free"
	PlanPremium Plan = "premium"
)

// ParsePlan maps a stored plan value onto a known plan. Anything that is not
// exactly "premium" is treated as the free plan.
func ParsePlan(value string) Plan {
	if value == string(PlanPremium) {
		return PlanPremium
	}
	return PlanFree
}

// IsFree reports whether the plan is subject to the lifetime card quota.
func (p Plan) IsFree() bool {
	return p != PlanPremium
}

// Profile holds per-user settings. The row is created implicitly on first
// upsert; the user record itself is owned by the external identity provider.
type Profile struct {
	UserID     string
	Plan       Plan
	FrontBgURL string
	BackBgURL  string
	UpdatedAt  time.Time
}

// FreeCardLimit is the lifetime number of flashcards a free-plan user may
// generate.
const FreeCardLimit = 100
