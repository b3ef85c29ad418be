package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agriconnect/domain"
	"agriconnect/repository"
)

func TestDashboard(t *testing.T) {
	ctx := context.Background()
	requests := repository.NewLoanRequestRepositoryMemory()
	require.NoError(t, requests.Save(ctx, domain.LoanRequest{ID: "r1", FromID: "6", ToID: "3", Amount: 200, Status: domain.RequestPending}))
	require.NoError(t, requests.Save(ctx, domain.LoanRequest{ID: "r2", FromID: "7", ToID: "6", Amount: 90, Status: domain.RequestPending}))
	require.NoError(t, requests.Save(ctx, domain.LoanRequest{ID: "r3", FromID: "1", ToID: "2", Amount: 10, Status: domain.RequestPending}))

	svc := NewConnectionService(seedProfiles(t), requests)
	d, err := svc.Dashboard(ctx, "6")
	require.NoError(t, err)

	assert.Equal(t, "6", d.UserID)
	assert.Len(t, d.Lent, 3)
	assert.Len(t, d.Borrowed, 2)
	assert.InDelta(t, 500, d.OutstandingLent, 0.001)
	assert.InDelta(t, 1200, d.OutstandingBorrowed, 0.001)
	assert.Equal(t, "Akinyi Odhiambo", d.Lent[0].CounterpartyName)

	require.Len(t, d.Outgoing, 1)
	assert.Equal(t, "r1", d.Outgoing[0].Request.ID)
	assert.Equal(t, "Chidinma Eze", d.Outgoing[0].CounterpartyName)
	require.Len(t, d.Incoming, 1)
	assert.Equal(t, "Lekishon Ole Sankale", d.Incoming[0].CounterpartyName)
}

func TestDashboard_UnknownUser(t *testing.T) {
	svc := NewConnectionService(seedProfiles(t), repository.NewLoanRequestRepositoryMemory())
	_, err := svc.Dashboard(context.Background(), "42")
	assert.ErrorIs(t, err, repository.ErrProfileNotFound)
}

func TestOwesActive(t *testing.T) {
	svc := NewConnectionService(seedProfiles(t), repository.NewLoanRequestRepositoryMemory())
	ctx := context.Background()

	cases := []struct {
		other string
		want  bool
	}{
		{"2", true},  // active, borrowed from 2
		{"1", false}, // 6 lent to 1
		{"5", false}, // repaid
		{"8", false}, // no connection
	}
	for _, tc := range cases {
		got, err := svc.OwesActive(ctx, "6", tc.other)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "other=%s", tc.other)
	}
}

func TestCheckMirrors_Seed(t *testing.T) {
	svc := NewConnectionService(seedProfiles(t), repository.NewLoanRequestRepositoryMemory())
	violations, err := svc.CheckMirrors(context.Background())
	require.NoError(t, err)
	assert.Empty(t, violations)
}

func TestCheckMirrors_ReportsBrokenEdges(t *testing.T) {
	a := domain.Farmer{Profile: domain.Profile{ID: "a", Location: "x", Connections: []domain.Loan{
		{CounterpartyID: "b", Type: domain.LoanLent, Amount: 100, Status: domain.LoanActive},
		{CounterpartyID: "ghost", Type: domain.LoanLent, Amount: 5, Status: domain.LoanActive},
	}}}
	b := domain.Herder{Profile: domain.Profile{ID: "b", Location: "y", Connections: []domain.Loan{
		{CounterpartyID: "a", Type: domain.LoanBorrowed, Amount: 100, Status: domain.LoanRepaid},
	}}}
	repo, err := repository.NewProfileRepositoryMemory([]domain.Borrower{a, b})
	require.NoError(t, err)

	svc := NewConnectionService(repo, repository.NewLoanRequestRepositoryMemory())
	violations, err := svc.CheckMirrors(context.Background())
	require.NoError(t, err)

	require.Len(t, violations, 3)
	assert.Equal(t, "a", violations[0].ProfileID)
	assert.Equal(t, "no borrowed edge on b", violations[0].Reason)
	assert.Equal(t, "unknown counterparty", violations[1].Reason)
	assert.Equal(t, "b", violations[2].ProfileID)
}

func TestCheckMirrors_DueDateMismatch(t *testing.T) {
	a := domain.Farmer{Profile: domain.Profile{ID: "a", Location: "x", Connections: []domain.Loan{
		{CounterpartyID: "b", Type: domain.LoanLent, Amount: 100, Status: domain.LoanActive, DueDate: "2025-01-01"},
	}}}
	b := domain.Herder{Profile: domain.Profile{ID: "b", Location: "y", Connections: []domain.Loan{
		{CounterpartyID: "a", Type: domain.LoanBorrowed, Amount: 100, Status: domain.LoanActive, DueDate: "2030-12-31"},
	}}}
	repo, err := repository.NewProfileRepositoryMemory([]domain.Borrower{a, b})
	require.NoError(t, err)

	svc := NewConnectionService(repo, repository.NewLoanRequestRepositoryMemory())
	violations, err := svc.CheckMirrors(context.Background())
	require.NoError(t, err)

	require.Len(t, violations, 2)
	assert.Equal(t, "a", violations[0].ProfileID)
	assert.Equal(t, "2025-01-01", violations[0].Loan.DueDate)
	assert.Equal(t, "b", violations[1].ProfileID)
}
