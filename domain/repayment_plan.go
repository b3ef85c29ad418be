package domain

type RepaymentInstallment struct {
	Installment   int     `json:"installment"`
	Amount        float64 `json:"amount"`
	SuggestedDate string  `json:"suggestedDate"`
	Reasoning     string  `json:"reasoning"`
}

type RepaymentPlan []RepaymentInstallment

func (p RepaymentPlan) Total() float64 {
	var total float64
	for _, i := range p {
		total += i.Amount
	}
	return total
}
