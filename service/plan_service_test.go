package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agriconnect/domain"
	"agriconnect/repository"
)

func newPlanService(t *testing.T, gen PlanGenerator, strict bool) *RepaymentPlanService {
	t.Helper()
	return NewRepaymentPlanService(seedProfiles(t), gen, PlanOptions{
		Principal: 1000,
		Strict:    strict,
		Now:       func() time.Time { return promptDate },
	}, nil)
}

func respondWith(text string, err error) func(context.Context, string) (string, error) {
	return func(context.Context, string) (string, error) { return text, err }
}

func TestGenerate_Success(t *testing.T) {
	gen := &fakeGenerator{respond: respondWith(validPlanJSON, nil)}
	svc := newPlanService(t, gen, true)

	st, err := svc.Generate(context.Background(), "2")
	require.NoError(t, err)

	assert.Equal(t, domain.PlanSuccess, st.Status)
	assert.Equal(t, validPlan(), st.Plan)
	assert.Equal(t, "2", st.ProfileID)
	assert.Equal(t, st, svc.State())
	assert.EqualValues(t, 1, gen.calls.Load())
	assert.Contains(t, gen.lastPrompt(), "Oyo, Nigeria")
	assert.Contains(t, gen.lastPrompt(), "The current date is January 2025.")
}

func TestGenerate_MissingCredentialFailsWithoutCall(t *testing.T) {
	gen := &fakeGenerator{unconfigured: true, respond: respondWith(validPlanJSON, nil)}
	svc := newPlanService(t, gen, true)

	st, err := svc.Start(context.Background(), "2")
	require.NoError(t, err)

	assert.Equal(t, domain.PlanFailed, st.Status)
	assert.ErrorIs(t, st.Err, ErrConfiguration)
	assert.Equal(t, domain.PlanFailed, svc.State().Status)
	assert.Zero(t, gen.calls.Load())
}

func TestGenerate_Failures(t *testing.T) {
	cases := []struct {
		name    string
		respond func(context.Context, string) (string, error)
		want    error
	}{
		{"service error", respondWith("", &PlanError{Kind: KindService, Err: errors.New("503")}), ErrService},
		{"untyped error", respondWith("", errors.New("dial tcp: refused")), ErrService},
		{"prose", respondWith("Sure! Here is a plan.", nil), ErrMalformedResponse},
		{"wrong count", respondWith(`[{"installment": 1, "amount": 1000, "suggestedDate": "x", "reasoning": "y"}]`, nil), ErrMalformedResponse},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gen := &fakeGenerator{respond: tc.respond}
			svc := newPlanService(t, gen, true)

			st, err := svc.Generate(context.Background(), "1")
			require.NoError(t, err)

			assert.Equal(t, domain.PlanFailed, st.Status)
			assert.ErrorIs(t, st.Err, tc.want)
			assert.Nil(t, st.Plan)
			assert.Equal(t, msgGenerationFailed, UserMessage(st.Err))
			assert.EqualValues(t, 1, gen.calls.Load())
		})
	}
}

func TestGenerate_LenientAcceptsShortPlan(t *testing.T) {
	gen := &fakeGenerator{respond: respondWith(`[{"installment": 1, "amount": 1000, "suggestedDate": "x", "reasoning": "y"}]`, nil)}
	svc := newPlanService(t, gen, false)

	st, err := svc.Generate(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, domain.PlanSuccess, st.Status)
	assert.Len(t, st.Plan, 1)
}

func TestStart_UnknownProfile(t *testing.T) {
	gen := &fakeGenerator{respond: respondWith(validPlanJSON, nil)}
	svc := newPlanService(t, gen, true)

	_, err := svc.Start(context.Background(), "404")

	assert.ErrorIs(t, err, repository.ErrProfileNotFound)
	assert.Equal(t, domain.PlanIdle, svc.State().Status)
	assert.Zero(t, gen.calls.Load())
}

func TestStart_CompletesInBackground(t *testing.T) {
	release := make(chan struct{})
	gen := &fakeGenerator{respond: func(ctx context.Context, _ string) (string, error) {
		<-release
		return validPlanJSON, nil
	}}
	svc := newPlanService(t, gen, true)

	ctx, cancel := context.WithCancel(context.Background())
	st, err := svc.Start(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, domain.PlanLoading, st.Status)

	// The request outlives the caller's context.
	cancel()
	close(release)
	svc.Wait()

	assert.Equal(t, domain.PlanSuccess, svc.State().Status)
	assert.Equal(t, st.Token, svc.State().Token)
}

func TestStart_NewerRequestWins(t *testing.T) {
	firstGate := make(chan struct{})
	secondGate := make(chan struct{})
	gen := &fakeGenerator{respond: func(ctx context.Context, prompt string) (string, error) {
		if strings.Contains(prompt, "Kisumu, Kenya") {
			<-firstGate
			return "", &PlanError{Kind: KindService}
		}
		<-secondGate
		return validPlanJSON, nil
	}}
	svc := newPlanService(t, gen, true)

	first, err := svc.Start(context.Background(), "1")
	require.NoError(t, err)
	second, err := svc.Start(context.Background(), "2")
	require.NoError(t, err)

	// The newer request resolves first, then the older one fails late.
	close(secondGate)
	require.Eventually(t, func() bool {
		return svc.State().Status == domain.PlanSuccess
	}, time.Second, 5*time.Millisecond)
	close(firstGate)
	svc.Wait()

	st := svc.State()
	assert.Equal(t, domain.PlanSuccess, st.Status)
	assert.Equal(t, second.Token, st.Token)
	assert.Equal(t, "2", st.ProfileID)
	assert.NotEqual(t, first.Token, st.Token)
	assert.NoError(t, st.Err)
}

func TestClose_DiscardsInFlightResult(t *testing.T) {
	release := make(chan struct{})
	gen := &fakeGenerator{respond: func(context.Context, string) (string, error) {
		<-release
		return validPlanJSON, nil
	}}
	svc := newPlanService(t, gen, true)

	_, err := svc.Start(context.Background(), "1")
	require.NoError(t, err)
	svc.Close()
	close(release)
	svc.Wait()

	st := svc.State()
	assert.Equal(t, domain.PlanIdle, st.Status)
	assert.Nil(t, st.Plan)
}

func TestNewRepaymentPlanService_Defaults(t *testing.T) {
	gen := &fakeGenerator{respond: respondWith(validPlanJSON, nil)}
	svc := NewRepaymentPlanService(seedProfiles(t), gen, PlanOptions{}, nil)

	_, err := svc.Generate(context.Background(), "1")
	require.NoError(t, err)
	assert.Contains(t, gen.lastPrompt(), "$1000 loan")
}
