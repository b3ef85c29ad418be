package domain

import "time"

type LoanRequestStatus string

const (
	RequestPending  LoanRequestStatus = "pending"
	RequestAccepted LoanRequestStatus = "accepted"
	RequestDeclined LoanRequestStatus = "declined"
)

type LoanRequest struct {
	ID        string            `json:"id"`
	FromID    string            `json:"fromId"`
	ToID      string            `json:"toId"`
	Amount    float64           `json:"amount"`
	Message   string            `json:"message"`
	Purpose   string            `json:"purpose"`
	Status    LoanRequestStatus `json:"status"`
	CreatedAt time.Time         `json:"createdAt"`
}

type LoanRequestInput struct {
	ToID    string  `json:"toId" validate:"required"`
	Amount  float64 `json:"amount" validate:"gt=0"`
	Message string  `json:"message" validate:"max=500"`
	Purpose string  `json:"purpose" validate:"omitempty,oneof=feed veterinary transport water_infrastructure processing other"`
}
