package domain

type LoanType string

const (
	LoanLent     LoanType = "lent"
	LoanBorrowed LoanType = "borrowed"
)

// Mirror returns the type the counterparty records for the same loan.
func (t LoanType) Mirror() LoanType {
	if t == LoanLent {
		return LoanBorrowed
	}
	return LoanLent
}

type LoanStatus string

const (
	LoanActive LoanStatus = "Active"
	LoanRepaid LoanStatus = "Repaid"
)

// Loan is one side of a loan between two profiles. The counterparty stores the
// mirrored edge.
type Loan struct {
	CounterpartyID string     `json:"counterpartyId" yaml:"counterparty_id"`
	Type           LoanType   `json:"type" yaml:"type"`
	Amount         float64    `json:"amount" yaml:"amount"`
	Status         LoanStatus `json:"status" yaml:"status"`
	DueDate        string     `json:"dueDate" yaml:"due_date"`
	Purpose        string     `json:"purpose" yaml:"purpose"`
	YearsConnected int        `json:"yearsConnected" yaml:"years_connected"`
	LoansCompleted int        `json:"loansCompleted" yaml:"loans_completed"`
}

type RepaymentHistory struct {
	TotalLoans   int `json:"totalLoans" yaml:"total_loans"`
	RepaidOnTime int `json:"repaidOnTime" yaml:"repaid_on_time"`
	Defaulted    int `json:"defaulted" yaml:"defaulted"`
}

func (h RepaymentHistory) Valid() bool {
	if h.TotalLoans < 0 || h.RepaidOnTime < 0 || h.Defaulted < 0 {
		return false
	}
	return h.RepaidOnTime+h.Defaulted <= h.TotalLoans
}

// RepaymentRate is the on-time percentage; a borrower with no loans rates 100.
func (h RepaymentHistory) RepaymentRate() float64 {
	if h.TotalLoans == 0 {
		return 100
	}
	return float64(h.RepaidOnTime) / float64(h.TotalLoans) * 100
}
