package service

import (
	"context"
	"errors"
	"fmt"

	"agriconnect/domain"
	"agriconnect/repository"
)

type ConnectionView struct {
	Loan             domain.Loan `json:"loan"`
	CounterpartyName string      `json:"counterpartyName"`
}

type RequestView struct {
	Request          domain.LoanRequest `json:"request"`
	CounterpartyName string             `json:"counterpartyName"`
}

type ConnectionsDashboard struct {
	UserID              string           `json:"userId"`
	Lent                []ConnectionView `json:"lent"`
	Borrowed            []ConnectionView `json:"borrowed"`
	Incoming            []RequestView    `json:"incomingRequests"`
	Outgoing            []RequestView    `json:"outgoingRequests"`
	OutstandingLent     float64          `json:"outstandingLent"`
	OutstandingBorrowed float64          `json:"outstandingBorrowed"`
}

// MirrorViolation is a loan edge with no matching edge on the counterparty.
type MirrorViolation struct {
	ProfileID string      `json:"profileId"`
	Loan      domain.Loan `json:"loan"`
	Reason    string      `json:"reason"`
}

type ConnectionService struct {
	profiles repository.ProfileRepository
	requests repository.LoanRequestRepository
}

func NewConnectionService(
	profiles repository.ProfileRepository,
	requests repository.LoanRequestRepository,
) *ConnectionService {
	return &ConnectionService{profiles: profiles, requests: requests}
}

// Dashboard groups a user's loans by direction and their loan requests by
// whether they sent or received them.
func (s *ConnectionService) Dashboard(ctx context.Context, userID string) (ConnectionsDashboard, error) {
	user, err := s.profiles.FindByID(ctx, userID)
	if err != nil {
		return ConnectionsDashboard{}, err
	}

	d := ConnectionsDashboard{
		UserID:   userID,
		Lent:     []ConnectionView{},
		Borrowed: []ConnectionView{},
		Incoming: []RequestView{},
		Outgoing: []RequestView{},
	}

	for _, loan := range user.Details().Connections {
		view := ConnectionView{Loan: loan, CounterpartyName: s.nameOf(ctx, loan.CounterpartyID)}
		active := loan.Status == domain.LoanActive
		switch loan.Type {
		case domain.LoanLent:
			d.Lent = append(d.Lent, view)
			if active {
				d.OutstandingLent += loan.Amount
			}
		case domain.LoanBorrowed:
			d.Borrowed = append(d.Borrowed, view)
			if active {
				d.OutstandingBorrowed += loan.Amount
			}
		}
	}

	reqs, err := s.requests.List(ctx)
	if err != nil {
		return ConnectionsDashboard{}, err
	}
	for _, r := range reqs {
		switch userID {
		case r.FromID:
			d.Outgoing = append(d.Outgoing, RequestView{Request: r, CounterpartyName: s.nameOf(ctx, r.ToID)})
		case r.ToID:
			d.Incoming = append(d.Incoming, RequestView{Request: r, CounterpartyName: s.nameOf(ctx, r.FromID)})
		}
	}
	return d, nil
}

func (s *ConnectionService) nameOf(ctx context.Context, id string) string {
	b, err := s.profiles.FindByID(ctx, id)
	if err != nil {
		return id
	}
	return b.Details().Name
}

// OwesActive reports whether userID has an active loan borrowed from otherID.
// That is the condition for offering a repayment plan on otherID's profile.
func (s *ConnectionService) OwesActive(ctx context.Context, userID, otherID string) (bool, error) {
	user, err := s.profiles.FindByID(ctx, userID)
	if err != nil {
		return false, err
	}
	for _, loan := range user.Details().Connections {
		if loan.CounterpartyID == otherID &&
			loan.Type == domain.LoanBorrowed &&
			loan.Status == domain.LoanActive {
			return true, nil
		}
	}
	return false, nil
}

// CheckMirrors verifies that every loan edge has a mirror on the
// counterparty with the opposite type and the same amount, status and due
// date.
func (s *ConnectionService) CheckMirrors(ctx context.Context) ([]MirrorViolation, error) {
	all, err := s.profiles.All(ctx)
	if err != nil {
		return nil, err
	}

	var out []MirrorViolation
	for _, b := range all {
		p := b.Details()
		for _, loan := range p.Connections {
			other, err := s.profiles.FindByID(ctx, loan.CounterpartyID)
			if errors.Is(err, repository.ErrProfileNotFound) {
				out = append(out, MirrorViolation{ProfileID: p.ID, Loan: loan, Reason: "unknown counterparty"})
				continue
			}
			if err != nil {
				return nil, err
			}
			if !hasMirror(other.Details().Connections, p.ID, loan) {
				out = append(out, MirrorViolation{
					ProfileID: p.ID,
					Loan:      loan,
					Reason:    fmt.Sprintf("no %s edge on %s", loan.Type.Mirror(), loan.CounterpartyID),
				})
			}
		}
	}
	return out, nil
}

func hasMirror(edges []domain.Loan, ownerID string, loan domain.Loan) bool {
	for _, e := range edges {
		if e.CounterpartyID == ownerID &&
			e.Type == loan.Type.Mirror() &&
			e.Amount == loan.Amount &&
			e.Status == loan.Status &&
			e.DueDate == loan.DueDate {
			return true
		}
	}
	return false
}
