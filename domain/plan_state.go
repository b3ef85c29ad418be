package domain

type PlanStatus string

const (
	PlanIdle    PlanStatus = "idle"
	PlanLoading PlanStatus = "loading"
	PlanSuccess PlanStatus = "success"
	PlanFailed  PlanStatus = "failed"
)

// PlanState is a snapshot of one repayment plan request. Token identifies the
// request generation the snapshot belongs to.
type PlanState struct {
	Status    PlanStatus
	Token     uint64
	ProfileID string
	Plan      RepaymentPlan
	Err       error
}

func (s PlanState) Terminal() bool {
	return s.Status == PlanSuccess || s.Status == PlanFailed
}
