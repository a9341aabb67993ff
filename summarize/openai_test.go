package summarize

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/require"
)

func TestClassifyErr(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		name        string
		err         error
		credentials bool
	}{
		{
			name:        "unauthorized api error",
			err:         &openai.APIError{HTTPStatusCode: http.StatusUnauthorized, Message: "invalid key"},
			credentials: true,
		},
		{
			name:        "forbidden api error",
			err:         &openai.APIError{HTTPStatusCode: http.StatusForbidden},
			credentials: true,
		},
		{
			name:        "unauthorized request error",
			err:         &openai.RequestError{HTTPStatusCode: http.StatusUnauthorized, Err: errors.New("denied")},
			credentials: true,
		},
		{
			name:        "rate limited",
			err:         &openai.APIError{HTTPStatusCode: http.StatusTooManyRequests},
			credentials: false,
		},
		{
			name:        "plain network error",
			err:         errors.New("connection refused"),
			credentials: false,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got := classifyErr(tc.err)
			require.Equal(t, tc.credentials, errors.Is(got, ErrInvalidCredentials))
		})
	}
}

func TestSummaryPrompt(t *testing.T) {
	t.Parallel()

	rendered := fmt.Sprintf(summaryPrompt, "Japanese")
	require.Contains(t, rendered, "The summary must be in Japanese.")
	require.Contains(t, rendered, `"Title: `)
	require.Contains(t, rendered, `"InsightsHeader: `)
	require.Contains(t, rendered, "'Key Insights' translated into Japanese")
	require.Contains(t, rendered, "MUST begin with '* '")
}
