package billing

import "time"

// PremiumPlan is the single paid tier: ₦2,500 per month, amount expressed in
// kobo. Currency is fixed by configuration, never per request.
const (
	PremiumPlanTier       = "premium"
	PremiumPlanPeriod     = "monthly"
	PremiumPlanAmountKobo = 250000
	PremiumPlanCurrency   = "NGN"
)

// NextExpiry computes the expiry a successful payment grants: one billing
// period from the greater of now and the currently stored expiry. Renewals
// before the current period ends therefore stack instead of clobbering the
// remaining time.
func NextExpiry(now time.Time, current *time.Time) time.Time {
	base := now
	if current != nil && current.After(now) {
		base = *current
	}
	return base.AddDate(0, 1, 0)
}
