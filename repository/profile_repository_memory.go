package repository

import (
	"context"
	"fmt"

	"agriconnect/domain"
)

// ProfileRepositoryMemory holds the profiles loaded at startup. It is never
// written after construction, so reads need no locking.
type ProfileRepositoryMemory struct {
	profiles []domain.Borrower
	byID     map[string]domain.Borrower
}

func NewProfileRepositoryMemory(profiles []domain.Borrower) (*ProfileRepositoryMemory, error) {
	byID := make(map[string]domain.Borrower, len(profiles))
	for _, p := range profiles {
		id := p.Details().ID
		if _, dup := byID[id]; dup {
			return nil, fmt.Errorf("duplicate profile id %q", id)
		}
		byID[id] = p
	}
	return &ProfileRepositoryMemory{
		profiles: profiles,
		byID:     byID,
	}, nil
}

func (r *ProfileRepositoryMemory) All(_ context.Context) ([]domain.Borrower, error) {
	out := make([]domain.Borrower, len(r.profiles))
	copy(out, r.profiles)
	return out, nil
}

func (r *ProfileRepositoryMemory) FindByID(_ context.Context, id string) (domain.Borrower, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrProfileNotFound, id)
	}
	return p, nil
}
