package repository

import (
	"context"
	"sync"

	"agriconnect/domain"
)

// LoanRequestRepositoryMemory is an in-memory implementation of
// LoanRequestRepository. Requests keep their insertion order.
type LoanRequestRepositoryMemory struct {
	mu    sync.RWMutex
	order []string
	data  map[string]domain.LoanRequest
}

// NewLoanRequestRepositoryMemory creates a new in-memory loan request repository.
func NewLoanRequestRepositoryMemory() *LoanRequestRepositoryMemory {
	return &LoanRequestRepositoryMemory{
		data: make(map[string]domain.LoanRequest),
	}
}

// Save inserts the request or replaces the stored one with the same ID.
func (r *LoanRequestRepositoryMemory) Save(_ context.Context, req domain.LoanRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.data[req.ID]; !exists {
		r.order = append(r.order, req.ID)
	}
	r.data[req.ID] = req
	return nil
}

func (r *LoanRequestRepositoryMemory) FindByID(_ context.Context, id string) (domain.LoanRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	req, ok := r.data[id]
	if !ok {
		return domain.LoanRequest{}, ErrLoanRequestNotFound
	}
	return req, nil
}

func (r *LoanRequestRepositoryMemory) List(_ context.Context) ([]domain.LoanRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.LoanRequest, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.data[id])
	}
	return out, nil
}
