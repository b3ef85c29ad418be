package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"agriconnect/domain"
	"agriconnect/logging"
	"agriconnect/repository"
)

var (
	ErrInvalidLoanRequest = errors.New("invalid loan request")
	ErrRequestNotPending  = errors.New("loan request is not pending")
)

const defaultPurpose = "other"

// roundTo2Decimals rounds a money amount to cents.
func roundTo2Decimals(value float64) float64 {
	return math.Round(value*100) / 100
}

type LoanRequestOptions struct {
	CurrentUserID string
	// SubmitDelay simulates the round trip to the lending network.
	SubmitDelay time.Duration
	Now         func() time.Time
	NewID       func() string
}

type LoanRequestService struct {
	profiles repository.ProfileRepository
	repo     repository.LoanRequestRepository
	opts     LoanRequestOptions
	validate *validator.Validate
	logger   *zap.Logger

	// respondMu makes the pending check and the save in Respond one step.
	respondMu sync.Mutex
}

func NewLoanRequestService(
	profiles repository.ProfileRepository,
	repo repository.LoanRequestRepository,
	opts LoanRequestOptions,
	logger *zap.Logger,
) *LoanRequestService {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	return &LoanRequestService{
		profiles: profiles,
		repo:     repo,
		opts:     opts,
		validate: validator.New(),
		logger:   logging.OrNop(logger),
	}
}

// Submit sends a loan request from the current user to input.ToID.
func (s *LoanRequestService) Submit(ctx context.Context, input domain.LoanRequestInput) (domain.LoanRequest, error) {
	if err := s.validate.Struct(input); err != nil {
		return domain.LoanRequest{}, fmt.Errorf("%w: %v", ErrInvalidLoanRequest, err)
	}
	if input.Amount > MaxLoanAmount {
		return domain.LoanRequest{}, fmt.Errorf("%w: amount exceeds the maximum of %.2f", ErrInvalidLoanRequest, MaxLoanAmount)
	}
	if input.ToID == s.opts.CurrentUserID {
		return domain.LoanRequest{}, fmt.Errorf("%w: cannot request a loan from yourself", ErrInvalidLoanRequest)
	}
	if _, err := s.profiles.FindByID(ctx, input.ToID); err != nil {
		return domain.LoanRequest{}, err
	}

	if s.opts.SubmitDelay > 0 {
		timer := time.NewTimer(s.opts.SubmitDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return domain.LoanRequest{}, ctx.Err()
		case <-timer.C:
		}
	}

	purpose := input.Purpose
	if purpose == "" {
		purpose = defaultPurpose
	}
	req := domain.LoanRequest{
		ID:        s.opts.NewID(),
		FromID:    s.opts.CurrentUserID,
		ToID:      input.ToID,
		Amount:    roundTo2Decimals(input.Amount),
		Message:   input.Message,
		Purpose:   purpose,
		Status:    domain.RequestPending,
		CreatedAt: s.opts.Now().UTC(),
	}
	if err := s.repo.Save(ctx, req); err != nil {
		return domain.LoanRequest{}, fmt.Errorf("save loan request: %w", err)
	}

	s.logger.Info("loan request submitted",
		zap.String("request_id", req.ID),
		zap.String("to_id", req.ToID),
		zap.Float64("amount", req.Amount),
	)
	return req, nil
}

// Respond records the counterparty's answer to a pending request. Only the
// first answer wins; later ones get ErrRequestNotPending.
func (s *LoanRequestService) Respond(ctx context.Context, id string, accept bool) (domain.LoanRequest, error) {
	s.respondMu.Lock()
	defer s.respondMu.Unlock()

	req, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.LoanRequest{}, err
	}
	if req.Status != domain.RequestPending {
		return domain.LoanRequest{}, fmt.Errorf("%w: %s is %s", ErrRequestNotPending, id, req.Status)
	}

	req.Status = domain.RequestDeclined
	if accept {
		req.Status = domain.RequestAccepted
	}
	if err := s.repo.Save(ctx, req); err != nil {
		return domain.LoanRequest{}, fmt.Errorf("save loan request: %w", err)
	}

	s.logger.Info("loan request answered", zap.String("request_id", id), zap.String("status", string(req.Status)))
	return req, nil
}

func (s *LoanRequestService) List(ctx context.Context) ([]domain.LoanRequest, error) {
	return s.repo.List(ctx)
}
