package membership

import "time"

type Plan string

const (
	PlanMonth   Plan = "month"
	PlanQuarter Plan = "quarter"
	PlanYear    Plan = "year"
)

var planDays = map[Plan]int{
	PlanMonth:   30,
	PlanQuarter: 90,
	PlanYear:    365,
}

// Days returns the length of the plan, or 0 for an unknown plan.
func (p Plan) Days() int {
	return planDays[p]
}

func (p Plan) Valid() bool {
	_, ok := planDays[p]
	return ok
}

// Membership is the single membership row of an account. Buying again
// replaces plan and window.
type Membership struct {
	ID        int       `db:"id" json:"id"`
	AccountID int       `db:"account_id" json:"account_id"`
	Plan      Plan      `db:"plan" json:"plan"`
	StartsAt  time.Time `db:"starts_at" json:"starts_at"`
	EndsAt    time.Time `db:"ends_at" json:"ends_at"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// IsActive reports whether t is not past the end of the membership. A nil
// membership is never active.
func (m *Membership) IsActive(t time.Time) bool {
	return m != nil && !t.After(m.EndsAt)
}

type PlanInfo struct {
	Plan Plan   `json:"plan"`
	Name string `json:"name"`
	Days int    `json:"days"`
}

func Plans() []PlanInfo {
	return []PlanInfo{
		{Plan: PlanMonth, Name: "One month", Days: PlanMonth.Days()},
		{Plan: PlanQuarter, Name: "One quarter", Days: PlanQuarter.Days()},
		{Plan: PlanYear, Name: "One year", Days: PlanYear.Days()},
	}
}

type PurchaseRequest struct {
	Plan string `json:"plan" binding:"required,oneof=month quarter year" example:"quarter"`
}

type MembershipResponse struct {
	Membership *Membership `json:"membership"`
	Active     bool        `json:"active"`
}
