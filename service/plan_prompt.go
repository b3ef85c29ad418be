package service

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"google.golang.org/genai"

	"agriconnect/domain"
)

var planFields = []string{"installment", "amount", "suggestedDate", "reasoning"}

type promptWording struct {
	audience string
	assets   string
	context  string
	basis    string
}

var wordings = map[domain.BorrowerKind]promptWording{
	domain.KindFarmer: {
		audience: "farmers",
		assets:   "Main crops",
		context:  "Farm operation",
		basis:    "typical crop cycles, potential harvest times, and market price fluctuations for their specific crops and region",
	},
	domain.KindHerder: {
		audience: "herders and pastoralists",
		assets:   "Livestock",
		context:  "Herding context",
		basis:    "seasonal livestock sales, rainfall and pasture cycles, and market price fluctuations for their livestock and region",
	},
}

// BuildPrompt renders the plan instruction for one borrower. It never fails:
// a borrower without assets still gets a well-formed prompt.
func BuildPrompt(b domain.Borrower, principal float64, now time.Time) string {
	w, ok := wordings[b.Kind()]
	if !ok {
		w = wordings[domain.KindFarmer]
	}
	p := b.Details()

	var sb strings.Builder
	fmt.Fprintf(&sb, "You are a financial advisor for small-scale %s in Africa.\n", w.audience)
	fmt.Fprintf(&sb, "Given the following %s profile:\n", b.Kind())
	fmt.Fprintf(&sb, "- Location: %s\n", p.Location)
	fmt.Fprintf(&sb, "- %s: %s\n", w.assets, b.AssetSummary())
	fmt.Fprintf(&sb, "- %s: %s\n\n", w.context, b.IncomeContext())
	fmt.Fprintf(&sb, "Generate a customized, hypothetical %d-installment loan repayment schedule for a $%s loan.\n",
		PlanInstallmentCount, strconv.FormatFloat(principal, 'f', -1, 64))
	fmt.Fprintf(&sb, "Base the schedule on %s.\n", w.basis)
	sb.WriteString("For each installment, provide a suggested date (month and year) and a brief reasoning for that timing.\n")
	fmt.Fprintf(&sb, "The current date is %s.\n", now.Format("January 2006"))
	fmt.Fprintf(&sb, "Provide the output in JSON format as an array of objects with: %s (number), %s (number), %s (string), %s (string).",
		planFields[0], planFields[1], planFields[2], planFields[3])
	return sb.String()
}

// BuildSchema returns the structured output schema for a plan. Every call
// returns an equal, independently mutable value.
func BuildSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"installment":   {Type: genai.TypeNumber},
				"amount":        {Type: genai.TypeNumber},
				"suggestedDate": {Type: genai.TypeString},
				"reasoning":     {Type: genai.TypeString},
			},
			Required:         append([]string(nil), planFields...),
			PropertyOrdering: append([]string(nil), planFields...),
		},
	}
}
