package logquery

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chainsafe/swap-status/pkg/config"
)

const (
	testBaseURL   = "https://logs.example.com"
	queryRangeURL = testBaseURL + queryRangePath
)

const lokiBody = `{
  "status": "success",
  "data": {
    "resultType": "streams",
    "result": [
      {"stream": {"container": "/src"}, "values": [
        ["1700000002000000000", "second"],
        ["1700000000500000000", "first"]
      ]},
      {"stream": {"container": "/src", "level": "warn"}, "values": [
        ["1700000001000000000", "middle", {"trace_id": "abc"}]
      ]}
    ]
  }
}`

func newTestClient(t *testing.T, retries uint64) (*Client, *httpmock.MockTransport) {
	t.Helper()
	transport := httpmock.NewMockTransport()
	c, err := NewClient(&config.LogQueryConfig{
		BaseURL:    testBaseURL,
		Token:      "secret-token",
		MaxRetries: retries,
	}, WithHTTPClient(&http.Client{Transport: transport}))
	require.NoError(t, err)
	return c, transport
}

func TestQueryRange_DecodesAndSortsEntries(t *testing.T) {
	c, transport := newTestClient(t, 0)

	var got *http.Request
	transport.RegisterResponder(http.MethodGet, queryRangeURL,
		func(req *http.Request) (*http.Response, error) {
			got = req
			return httpmock.NewStringResponse(http.StatusOK, lokiBody), nil
		})

	end := time.Unix(1_700_000_100, 0)
	entries, err := c.QueryRange(context.Background(), RangeQuery{
		Query: Selector("container", "/src", "X"),
		Start: time.Unix(1_700_000_000, 0),
		End:   &end,
		Limit: 5000,
	})
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "first", entries[0].Line)
	assert.Equal(t, "middle", entries[1].Line)
	assert.Equal(t, "second", entries[2].Line)
	assert.Equal(t, int64(1_700_000_000), entries[0].Timestamp.Unix())
	assert.Equal(t, 500*time.Millisecond, time.Duration(entries[0].Timestamp.Nanosecond()))

	require.NotNil(t, got)
	assert.Equal(t, "Bearer secret-token", got.Header.Get("Authorization"))
	q := got.URL.Query()
	assert.Equal(t, `{container="/src"} |= "X"`, q.Get("query"))
	assert.Equal(t, "1700000000000000000", q.Get("start"))
	assert.Equal(t, "1700000100000000000", q.Get("end"))
	assert.Equal(t, "5000", q.Get("limit"))
	assert.Equal(t, "forward", q.Get("direction"))
}

func TestQueryRange_OmitsEndInForwardMode(t *testing.T) {
	c, transport := newTestClient(t, 0)

	var got *http.Request
	transport.RegisterResponder(http.MethodGet, queryRangeURL,
		func(req *http.Request) (*http.Response, error) {
			got = req
			return httpmock.NewStringResponse(http.StatusOK, `{"status":"success","data":{"result":[]}}`), nil
		})

	entries, err := c.QueryRange(context.Background(), RangeQuery{Query: "{a=\"b\"}", Start: time.Unix(1, 0), Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.False(t, got.URL.Query().Has("end"))
}

func TestQueryRange_RetriesServerErrors(t *testing.T) {
	c, transport := newTestClient(t, 3)

	calls := 0
	transport.RegisterResponder(http.MethodGet, queryRangeURL,
		func(*http.Request) (*http.Response, error) {
			calls++
			if calls == 1 {
				return httpmock.NewStringResponse(http.StatusServiceUnavailable, "busy"), nil
			}
			return httpmock.NewStringResponse(http.StatusOK, lokiBody), nil
		})

	entries, err := c.QueryRange(context.Background(), RangeQuery{Query: "q", Start: time.Unix(1, 0), Limit: 10})
	require.NoError(t, err)
	assert.Len(t, entries, 3)
	assert.Equal(t, 2, calls)
}

func TestQueryRange_ClientErrorIsPermanent(t *testing.T) {
	c, transport := newTestClient(t, 3)

	transport.RegisterResponder(http.MethodGet, queryRangeURL,
		httpmock.NewStringResponder(http.StatusUnauthorized, "bad token"))

	_, err := c.QueryRange(context.Background(), RangeQuery{Query: "q", Start: time.Unix(1, 0), Limit: 10})
	require.Error(t, err)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusUnauthorized, statusErr.StatusCode)
	assert.Equal(t, "bad token", statusErr.Body)
	assert.Equal(t, 1, transport.GetTotalCallCount())
}

func TestQueryRange_MalformedBody(t *testing.T) {
	c, transport := newTestClient(t, 0)

	transport.RegisterResponder(http.MethodGet, queryRangeURL,
		httpmock.NewStringResponder(http.StatusOK, `{"status":"success","data":{"result":[{"values":[["not-a-number","x"]]}]}}`))

	_, err := c.QueryRange(context.Background(), RangeQuery{Query: "q", Start: time.Unix(1, 0), Limit: 10})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse log timestamp")
}

func TestNewClient_RejectsInvalidBaseURL(t *testing.T) {
	_, err := NewClient(&config.LogQueryConfig{BaseURL: "not a url"})
	require.Error(t, err)

	_, err = NewClient(nil)
	require.Error(t, err)
}

func TestSelector_QuotesValues(t *testing.T) {
	assert.Equal(t, `{container="/a"} |~ "say \"hi\""`, Selector("container", "/a", `say "hi"`))
	assert.Equal(t, `{container="/a"} |~ "say \"hi\"|0x\\.1"`, Selector("container", "/a", `say "hi"`, "0x.1"))
}
