package orderbook

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chainsafe/swap-status/pkg/config"
)

const matchedURL = "https://orderbook.example.com/id/{create_id}/matched"

func newTestClient(t *testing.T) (*Client, *httpmock.MockTransport) {
	t.Helper()
	transport := httpmock.NewMockTransport()
	c, err := NewClient(&config.OrderbookConfig{MatchedOrderURL: matchedURL},
		WithHTTPClient(&http.Client{Transport: transport}))
	require.NoError(t, err)
	return c, transport
}

func TestGetMatchedOrder_DecodesResponse(t *testing.T) {
	c, transport := newTestClient(t)

	body := `{
		"status": "Ok",
		"result": {
			"source_swap": {"swap_id": "S1", "initiate_tx_hash": "0xabc", "current_confirmations": 3, "required_confirmations": 2},
			"destination_swap": {"swap_id": "D1", "redeem_tx_hash": "txid"}
		}
	}`
	transport.RegisterResponder(http.MethodGet, "https://orderbook.example.com/id/order-1/matched",
		httpmock.NewStringResponder(http.StatusOK, body))

	resp, err := c.GetMatchedOrder(context.Background(), "order-1")
	require.NoError(t, err)

	assert.Equal(t, StatusOK, resp.Status)
	require.NotNil(t, resp.Result)
	require.NotNil(t, resp.Result.SourceSwap)
	assert.Equal(t, "0xabc", resp.Result.SourceSwap.InitiateTxHash)
	assert.Equal(t, 3, resp.Result.SourceSwap.CurrentConfirmations)
	require.NotNil(t, resp.Result.SourceSwap.RequiredConfirmations)
	assert.Equal(t, 2, *resp.Result.SourceSwap.RequiredConfirmations)
	require.NotNil(t, resp.Result.DestinationSwap)
	assert.Nil(t, resp.Result.DestinationSwap.RequiredConfirmations)
	assert.JSONEq(t, body, string(resp.Raw))
}

func TestGetMatchedOrder_EscapesCreateID(t *testing.T) {
	c, transport := newTestClient(t)

	transport.RegisterResponder(http.MethodGet, "https://orderbook.example.com/id/a%2Fb/matched",
		httpmock.NewStringResponder(http.StatusOK, `{"status":"Ok"}`))

	_, err := c.GetMatchedOrder(context.Background(), "a/b")
	require.NoError(t, err)
	assert.Equal(t, 1, transport.GetTotalCallCount())
}

func TestGetMatchedOrder_NonSuccessStatus(t *testing.T) {
	c, transport := newTestClient(t)

	transport.RegisterResponder(http.MethodGet, "https://orderbook.example.com/id/order-1/matched",
		httpmock.NewStringResponder(http.StatusBadGateway, "upstream down"))

	_, err := c.GetMatchedOrder(context.Background(), "order-1")
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "order-1", apiErr.CreateID)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Contains(t, err.Error(), "create_id 'order-1'")
	assert.Contains(t, err.Error(), "upstream down")
}

func TestGetMatchedOrder_TransportError(t *testing.T) {
	c, transport := newTestClient(t)

	cause := errors.New("dial tcp: timeout")
	transport.RegisterResponder(http.MethodGet, "https://orderbook.example.com/id/order-1/matched",
		httpmock.NewErrorResponder(cause))

	_, err := c.GetMatchedOrder(context.Background(), "order-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
}

func TestGetMatchedOrder_InvalidJSON(t *testing.T) {
	c, transport := newTestClient(t)

	transport.RegisterResponder(http.MethodGet, "https://orderbook.example.com/id/order-1/matched",
		httpmock.NewStringResponder(http.StatusOK, "<html>"))

	_, err := c.GetMatchedOrder(context.Background(), "order-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode body")
}

func TestNewClient_RequiresPlaceholder(t *testing.T) {
	_, err := NewClient(&config.OrderbookConfig{MatchedOrderURL: "https://orderbook.example.com/matched"})
	require.Error(t, err)
}

func TestMatchedOrder_IsEmpty(t *testing.T) {
	var nilOrder *MatchedOrder
	assert.True(t, nilOrder.IsEmpty())
	assert.True(t, (&MatchedOrder{}).IsEmpty())
	assert.False(t, (&MatchedOrder{SourceSwap: &Swap{}}).IsEmpty())
}
