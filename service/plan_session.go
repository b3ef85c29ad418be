package service

import (
	"slices"
	"sync"

	"agriconnect/domain"
)

// PlanSession holds the state of the single in-flight repayment plan request.
// Every Begin or Close starts a new generation; results carrying an older
// token are dropped.
type PlanSession struct {
	mu         sync.Mutex
	generation uint64
	state      domain.PlanState
}

func NewPlanSession() *PlanSession {
	return &PlanSession{state: domain.PlanState{Status: domain.PlanIdle}}
}

// Begin supersedes any outstanding request and enters Loading.
func (s *PlanSession) Begin(profileID string) domain.PlanState {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generation++
	s.state = domain.PlanState{
		Status:    domain.PlanLoading,
		Token:     s.generation,
		ProfileID: profileID,
	}
	return s.state
}

// Succeed records plan for token. It reports false when token is stale.
func (s *PlanSession) Succeed(token uint64, plan domain.RepaymentPlan) bool {
	return s.resolve(token, func(st *domain.PlanState) {
		st.Status = domain.PlanSuccess
		st.Plan = slices.Clone(plan)
	})
}

// Fail records err for token. It reports false when token is stale.
func (s *PlanSession) Fail(token uint64, err error) bool {
	return s.resolve(token, func(st *domain.PlanState) {
		st.Status = domain.PlanFailed
		st.Err = err
	})
}

func (s *PlanSession) resolve(token uint64, apply func(*domain.PlanState)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token != s.generation || s.state.Status != domain.PlanLoading {
		return false
	}
	apply(&s.state)
	return true
}

// Close dismisses the current request and returns to Idle.
func (s *PlanSession) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generation++
	s.state = domain.PlanState{Status: domain.PlanIdle, Token: s.generation}
}

func (s *PlanSession) State() domain.PlanState {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.state
	st.Plan = slices.Clone(st.Plan)
	return st
}
