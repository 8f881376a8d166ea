package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chainsafe/swap-status/pkg/config"
)

const generateURL = "https://llm.example.com/v1beta/models/gemini-1.5-flash:generateContent"

func newTestGemini(t *testing.T) (*Gemini, *httpmock.MockTransport) {
	t.Helper()
	transport := httpmock.NewMockTransport()
	g, err := NewGemini(&config.SummarizerConfig{
		BaseURL: "https://llm.example.com/",
		APIKey:  "key-1",
		Model:   "gemini-1.5-flash",
	}, WithHTTPClient(&http.Client{Transport: transport}))
	require.NoError(t, err)
	return g, transport
}

func TestGenerate_SendsPromptAndJoinsParts(t *testing.T) {
	g, transport := newTestGemini(t)

	var sent generateRequest
	var apiKey string
	transport.RegisterResponder(http.MethodPost, generateURL,
		func(req *http.Request) (*http.Response, error) {
			apiKey = req.Header.Get("x-goog-api-key")
			if err := json.NewDecoder(req.Body).Decode(&sent); err != nil {
				return nil, err
			}
			return httpmock.NewStringResponse(http.StatusOK,
				`{"candidates":[{"content":{"parts":[{"text":"  The user "},{"text":"initiated. "}]}}]}`), nil
		})

	out, err := g.Generate(context.Background(), "summarise")
	require.NoError(t, err)
	assert.Equal(t, "The user initiated.", out)
	assert.Equal(t, "key-1", apiKey)
	require.Len(t, sent.Contents, 1)
	assert.Equal(t, "summarise", sent.Contents[0].Parts[0].Text)
	assert.Zero(t, sent.GenerationConfig.Temperature)
}

func TestGenerate_EmptyCandidateIsNoOutput(t *testing.T) {
	g, transport := newTestGemini(t)
	transport.RegisterResponder(http.MethodPost, generateURL,
		httpmock.NewStringResponder(http.StatusOK, `{"candidates":[]}`))

	_, err := g.Generate(context.Background(), "p")
	assert.ErrorIs(t, err, ErrNoOutput)
}

func TestGenerate_BlockedPrompt(t *testing.T) {
	g, transport := newTestGemini(t)
	transport.RegisterResponder(http.MethodPost, generateURL,
		httpmock.NewStringResponder(http.StatusOK, `{"promptFeedback":{"blockReason":"SAFETY"}}`))

	_, err := g.Generate(context.Background(), "p")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SAFETY")
}

func TestGenerate_HTTPError(t *testing.T) {
	g, transport := newTestGemini(t)
	transport.RegisterResponder(http.MethodPost, generateURL,
		httpmock.NewStringResponder(http.StatusTooManyRequests, "quota exceeded"))

	_, err := g.Generate(context.Background(), "p")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestNewGemini_RequiresKey(t *testing.T) {
	_, err := NewGemini(&config.SummarizerConfig{Model: "m"})
	require.Error(t, err)
}

func TestDisabled(t *testing.T) {
	_, err := Disabled{}.Generate(context.Background(), "p")
	assert.True(t, errors.Is(err, ErrDisabled))
}
