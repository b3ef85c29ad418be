package service

const (
	MaxLoanAmount = 1_000_000.0 // upper bound for a single loan request

	// PlanInstallmentCount is the number of installments a plan must have when
	// strict validation is on.
	PlanInstallmentCount = 4
	DefaultPlanPrincipal = 1000.0
	DefaultModel         = "gemini-2.0-flash"

	directoryCachePrefix = "directory:"
)
