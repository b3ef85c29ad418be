package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"agriconnect/domain"
	"agriconnect/logging"
	"agriconnect/repository"
)

type PlanOptions struct {
	Principal float64
	Strict    bool
	Now       func() time.Time
}

// RepaymentPlanService runs the repayment plan workflow: prompt, one model
// call, parse, and a state transition guarded by the session token.
type RepaymentPlanService struct {
	profiles  repository.ProfileRepository
	generator PlanGenerator
	session   *PlanSession
	principal float64
	strict    bool
	now       func() time.Time
	logger    *zap.Logger

	wg sync.WaitGroup
}

func NewRepaymentPlanService(
	profiles repository.ProfileRepository,
	generator PlanGenerator,
	opts PlanOptions,
	logger *zap.Logger,
) *RepaymentPlanService {
	if opts.Principal <= 0 {
		opts.Principal = DefaultPlanPrincipal
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &RepaymentPlanService{
		profiles:  profiles,
		generator: generator,
		session:   NewPlanSession(),
		principal: opts.Principal,
		strict:    opts.Strict,
		now:       opts.Now,
		logger:    logging.OrNop(logger),
	}
}

type configuredGenerator interface {
	Configured() bool
}

// failFast resolves the request without I/O when the generator reports it has
// no credential.
func (s *RepaymentPlanService) failFast(state domain.PlanState) (domain.PlanState, bool) {
	cg, ok := s.generator.(configuredGenerator)
	if !ok || cg.Configured() {
		return state, false
	}
	err := &PlanError{Kind: KindConfiguration}
	s.session.Fail(state.Token, err)
	s.logger.Warn("repayment plan requested without AI credential", zap.String("profile_id", state.ProfileID))
	state.Status = domain.PlanFailed
	state.Err = err
	return state, true
}

// Start begins a plan request for profileID in the background and returns
// the Loading state. A later Start or Close supersedes it.
func (s *RepaymentPlanService) Start(ctx context.Context, profileID string) (domain.PlanState, error) {
	borrower, err := s.profiles.FindByID(ctx, profileID)
	if err != nil {
		return domain.PlanState{}, err
	}

	state := s.session.Begin(profileID)
	if failed, ok := s.failFast(state); ok {
		return failed, nil
	}

	runCtx := context.WithoutCancel(ctx)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.run(runCtx, borrower, state.Token)
	}()
	return state, nil
}

// Generate runs a plan request to completion and returns its outcome.
func (s *RepaymentPlanService) Generate(ctx context.Context, profileID string) (domain.PlanState, error) {
	borrower, err := s.profiles.FindByID(ctx, profileID)
	if err != nil {
		return domain.PlanState{}, err
	}

	state := s.session.Begin(profileID)
	if failed, ok := s.failFast(state); ok {
		return failed, nil
	}
	return s.run(ctx, borrower, state.Token), nil
}

func (s *RepaymentPlanService) run(ctx context.Context, b domain.Borrower, token uint64) domain.PlanState {
	profileID := b.Details().ID
	log := s.logger.With(zap.String("profile_id", profileID), zap.Uint64("token", token))

	prompt := BuildPrompt(b, s.principal, s.now())
	text, err := s.generator.GenerateText(ctx, prompt, BuildSchema())

	var plan domain.RepaymentPlan
	if err == nil {
		plan, err = ParsePlan(text, s.strict)
	}

	result := domain.PlanState{Token: token, ProfileID: profileID}
	if err != nil {
		err = asPlanError(err)
		log.Warn("repayment plan failed", zap.String("kind", string(KindOf(err))), zap.Error(err))
		if !s.session.Fail(token, err) {
			log.Debug("discarding stale repayment plan failure")
		}
		result.Status = domain.PlanFailed
		result.Err = err
		return result
	}

	log.Info("repayment plan generated", zap.Int("installments", len(plan)), zap.Float64("total", plan.Total()))
	if !s.session.Succeed(token, plan) {
		log.Debug("discarding stale repayment plan")
	}
	result.Status = domain.PlanSuccess
	result.Plan = plan
	return result
}

func (s *RepaymentPlanService) State() domain.PlanState {
	return s.session.State()
}

// Close dismisses the current plan. An outstanding request is not cancelled
// but its result is discarded.
func (s *RepaymentPlanService) Close() {
	s.session.Close()
}

// Wait blocks until background requests started by Start have finished.
func (s *RepaymentPlanService) Wait() {
	s.wg.Wait()
}
