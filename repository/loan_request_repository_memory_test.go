package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agriconnect/domain"
)

func TestLoanRequestRepositoryMemory(t *testing.T) {
	ctx := context.Background()
	repo := NewLoanRequestRepositoryMemory()

	require.NoError(t, repo.Save(ctx, domain.LoanRequest{ID: "a", Status: domain.RequestPending}))
	require.NoError(t, repo.Save(ctx, domain.LoanRequest{ID: "b", Status: domain.RequestPending}))
	require.NoError(t, repo.Save(ctx, domain.LoanRequest{ID: "a", Status: domain.RequestAccepted}))

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "a", all[0].ID)
	assert.Equal(t, domain.RequestAccepted, all[0].Status)

	_, err = repo.FindByID(ctx, "zzz")
	assert.True(t, errors.Is(err, ErrLoanRequestNotFound))
}
