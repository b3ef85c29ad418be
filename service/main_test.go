package service

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"google.golang.org/genai"

	"agriconnect/domain"
	"agriconnect/repository"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("net/http.(*persistConn).readLoop"),
		goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"),
		goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"),
	)
}

func seedProfiles(t *testing.T) *repository.ProfileRepositoryMemory {
	t.Helper()
	profiles, err := repository.DefaultProfiles()
	require.NoError(t, err)
	repo, err := repository.NewProfileRepositoryMemory(profiles)
	require.NoError(t, err)
	return repo
}

type fakeGenerator struct {
	mu      sync.Mutex
	calls   atomic.Int32
	prompts []string
	respond func(ctx context.Context, prompt string) (string, error)
	// unconfigured makes the fake report a missing credential.
	unconfigured bool
}

func (f *fakeGenerator) Configured() bool {
	return !f.unconfigured
}

func (f *fakeGenerator) GenerateText(ctx context.Context, prompt string, schema *genai.Schema) (string, error) {
	f.calls.Add(1)
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	f.mu.Unlock()
	return f.respond(ctx, prompt)
}

func (f *fakeGenerator) lastPrompt() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.prompts) == 0 {
		return ""
	}
	return f.prompts[len(f.prompts)-1]
}

const validPlanJSON = `[
	{"installment": 1, "amount": 250, "suggestedDate": "March 2025", "reasoning": "After the short rains harvest."},
	{"installment": 2, "amount": 250, "suggestedDate": "June 2025", "reasoning": "Main maize harvest is sold."},
	{"installment": 3, "amount": 250, "suggestedDate": "September 2025", "reasoning": "Sorghum sales."},
	{"installment": 4, "amount": 250, "suggestedDate": "December 2025", "reasoning": "Prices peak before the holidays."}
]`

func validPlan() domain.RepaymentPlan {
	return domain.RepaymentPlan{
		{Installment: 1, Amount: 250, SuggestedDate: "March 2025", Reasoning: "After the short rains harvest."},
		{Installment: 2, Amount: 250, SuggestedDate: "June 2025", Reasoning: "Main maize harvest is sold."},
		{Installment: 3, Amount: 250, SuggestedDate: "September 2025", Reasoning: "Sorghum sales."},
		{Installment: 4, Amount: 250, SuggestedDate: "December 2025", Reasoning: "Prices peak before the holidays."},
	}
}
