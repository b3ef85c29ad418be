package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlanError_Is(t *testing.T) {
	cases := []struct {
		kind ErrorKind
		want error
	}{
		{KindConfiguration, ErrConfiguration},
		{KindService, ErrService},
		{KindMalformedResponse, ErrMalformedResponse},
	}
	for _, tc := range cases {
		t.Run(string(tc.kind), func(t *testing.T) {
			err := fmt.Errorf("wrapped: %w", &PlanError{Kind: tc.kind, Err: errors.New("cause")})
			assert.ErrorIs(t, err, tc.want)
			assert.Equal(t, tc.kind, KindOf(err))
			for _, other := range []error{ErrConfiguration, ErrService, ErrMalformedResponse} {
				if other != tc.want {
					assert.NotErrorIs(t, err, other)
				}
			}
		})
	}
}

func TestPlanError_UnwrapsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := &PlanError{Kind: KindService, Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "API key is not configured.", UserMessage(&PlanError{Kind: KindConfiguration}))
	assert.Equal(t, msgGenerationFailed, UserMessage(&PlanError{Kind: KindService}))
	assert.Equal(t, msgGenerationFailed, UserMessage(&PlanError{Kind: KindMalformedResponse}))
	assert.Equal(t, msgGenerationFailed, UserMessage(errors.New("boom")))
}

func TestAsPlanError(t *testing.T) {
	assert.NoError(t, asPlanError(nil))

	plain := asPlanError(errors.New("boom"))
	assert.ErrorIs(t, plain, ErrService)

	orig := &PlanError{Kind: KindMalformedResponse}
	assert.Same(t, orig, asPlanError(orig))
	assert.Equal(t, ErrorKind(""), KindOf(errors.New("other")))
}
