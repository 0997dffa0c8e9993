package payment_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	ierr "github.com/memberly/memberly/internal/errors"
	"github.com/memberly/memberly/internal/httpclient"
	paymentgw "github.com/memberly/memberly/internal/integration/payment"
	"github.com/memberly/memberly/internal/logger"
	"github.com/memberly/memberly/internal/testutil"
)

func TestProcessPayment(t *testing.T) {
	mock := testutil.NewMockHTTPClient()
	mock.Response = &httpclient.Response{
		StatusCode: http.StatusOK,
		Body:       []byte(`{"payment_transaction_id":"gw_txn_42"}`),
	}
	gw := paymentgw.NewGateway(mock, "http://payments.local", logger.NewNopLogger())

	txnID, err := gw.ProcessPayment(context.Background(), &paymentgw.ProcessPaymentRequest{
		ClientID:    "client_1",
		Amount:      decimal.RequireFromString("208"),
		GatewayCode: "stripe",
		MethodCode:  "card",
	})
	require.NoError(t, err)
	require.Equal(t, "gw_txn_42", txnID)

	require.Len(t, mock.Requests, 1)
	req := mock.Requests[0]
	require.Equal(t, http.MethodPost, req.Method)
	require.Equal(t, "http://payments.local/v1/payments", req.URL)

	var sent map[string]any
	require.NoError(t, json.Unmarshal(req.Body, &sent))
	require.Equal(t, "client_1", sent["client_id"])
	require.Equal(t, "stripe", sent["gateway_code"])
}

func TestProcessPaymentMissingTransactionID(t *testing.T) {
	mock := testutil.NewMockHTTPClient()
	mock.Response = &httpclient.Response{
		StatusCode: http.StatusOK,
		Body:       []byte(`{}`),
	}
	gw := paymentgw.NewGateway(mock, "http://payments.local", logger.NewNopLogger())

	_, err := gw.ProcessPayment(context.Background(), &paymentgw.ProcessPaymentRequest{
		ClientID: "client_1",
		Amount:   decimal.RequireFromString("208"),
	})
	require.Error(t, err)
	require.True(t, ierr.IsHTTPClient(err))
}

func TestProcessPaymentTransportError(t *testing.T) {
	mock := testutil.NewMockHTTPClient()
	mock.Err = httpclient.NewError(http.StatusBadGateway, []byte("bad gateway"))
	gw := paymentgw.NewGateway(mock, "http://payments.local", logger.NewNopLogger())

	_, err := gw.ProcessPayment(context.Background(), &paymentgw.ProcessPaymentRequest{
		ClientID: "client_1",
		Amount:   decimal.RequireFromString("208"),
	})
	require.Error(t, err)
}
