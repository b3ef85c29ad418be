package service

import (
	"encoding/json"
	"math"

	"agriconnect/domain"
)

// ParsePlan decodes the model's response text into a plan. With strict set it
// also requires exactly PlanInstallmentCount installments numbered from 1 with
// positive amounts. Both modes reject an empty array. Unknown properties are
// ignored.
func ParsePlan(text string, strict bool) (domain.RepaymentPlan, error) {
	var raw any
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, malformed("decode response: %w", err)
	}

	items, ok := raw.([]any)
	if !ok {
		return nil, malformed("expected a JSON array, got %T", raw)
	}
	if len(items) == 0 {
		return nil, malformed("plan has no installments")
	}

	plan := make(domain.RepaymentPlan, 0, len(items))
	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, malformed("item %d: expected an object, got %T", i, item)
		}
		inst, err := parseInstallment(obj)
		if err != nil {
			return nil, malformed("item %d: %w", i, err)
		}
		plan = append(plan, inst)
	}

	if strict {
		if err := checkStrict(plan); err != nil {
			return nil, err
		}
	}
	return plan, nil
}

func parseInstallment(obj map[string]any) (domain.RepaymentInstallment, error) {
	var inst domain.RepaymentInstallment

	n, err := numberField(obj, "installment")
	if err != nil {
		return inst, err
	}
	if n != math.Trunc(n) || n < math.MinInt32 || n > math.MaxInt32 {
		return inst, &fieldError{field: "installment", reason: "must be a whole number"}
	}
	inst.Installment = int(n)

	if inst.Amount, err = numberField(obj, "amount"); err != nil {
		return inst, err
	}
	if inst.SuggestedDate, err = stringField(obj, "suggestedDate"); err != nil {
		return inst, err
	}
	if inst.Reasoning, err = stringField(obj, "reasoning"); err != nil {
		return inst, err
	}
	return inst, nil
}

func checkStrict(plan domain.RepaymentPlan) error {
	if len(plan) != PlanInstallmentCount {
		return malformed("expected %d installments, got %d", PlanInstallmentCount, len(plan))
	}
	for i, inst := range plan {
		if inst.Installment != i+1 {
			return malformed("item %d: installment is %d, want %d", i, inst.Installment, i+1)
		}
		if inst.Amount <= 0 {
			return malformed("item %d: amount must be positive", i)
		}
	}
	return nil
}

type fieldError struct {
	field  string
	reason string
}

func (e *fieldError) Error() string {
	return e.field + " " + e.reason
}

func numberField(obj map[string]any, name string) (float64, error) {
	v, ok := obj[name]
	if !ok {
		return 0, &fieldError{field: name, reason: "is missing"}
	}
	n, ok := v.(float64)
	if !ok {
		return 0, &fieldError{field: name, reason: "must be a number"}
	}
	return n, nil
}

func stringField(obj map[string]any, name string) (string, error) {
	v, ok := obj[name]
	if !ok {
		return "", &fieldError{field: name, reason: "is missing"}
	}
	s, ok := v.(string)
	if !ok {
		return "", &fieldError{field: name, reason: "must be a string"}
	}
	return s, nil
}
