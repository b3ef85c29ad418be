package repository

import (
	"context"
	"errors"

	"agriconnect/domain"
)

var ErrLoanRequestNotFound = errors.New("loan request not found")

type LoanRequestRepository interface {
	Save(ctx context.Context, req domain.LoanRequest) error
	FindByID(ctx context.Context, id string) (domain.LoanRequest, error)
	List(ctx context.Context) ([]domain.LoanRequest, error)
}
