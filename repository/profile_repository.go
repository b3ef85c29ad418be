package repository

import (
	"context"
	"errors"

	"agriconnect/domain"
)

var ErrProfileNotFound = errors.New("profile not found")

// ProfileRepository is the read-only profile store.
type ProfileRepository interface {
	All(ctx context.Context) ([]domain.Borrower, error)
	FindByID(ctx context.Context, id string) (domain.Borrower, error)
}
