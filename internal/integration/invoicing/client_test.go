package invoicing_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	ierr "github.com/memberly/memberly/internal/errors"
	"github.com/memberly/memberly/internal/httpclient"
	"github.com/memberly/memberly/internal/integration/invoicing"
	"github.com/memberly/memberly/internal/logger"
	"github.com/memberly/memberly/internal/testutil"
)

func TestCreateFutureInvoice(t *testing.T) {
	mock := testutil.NewMockHTTPClient()
	mock.Response = &httpclient.Response{
		StatusCode: http.StatusOK,
		Body:       []byte(`{"invoice_id":"inv_next_7"}`),
	}
	c := invoicing.NewClient(mock, "http://invoicing.local", logger.NewNopLogger())

	id, err := c.CreateFutureInvoice(context.Background(), &invoicing.CreateFutureInvoiceRequest{
		SeedInvoiceID: "inv_seed_1",
		CycleNumber:   3,
		BillingDate:   time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
		ActorID:       "user_1",
	})
	require.NoError(t, err)
	require.Equal(t, "inv_next_7", id)

	require.Len(t, mock.Requests, 1)
	req := mock.Requests[0]
	require.Equal(t, http.MethodPost, req.Method)
	require.Equal(t, "http://invoicing.local/v1/invoices/future", req.URL)

	var sent map[string]any
	require.NoError(t, json.Unmarshal(req.Body, &sent))
	require.Equal(t, "inv_seed_1", sent["seed_invoice_id"])
	require.Equal(t, float64(3), sent["cycle_number"])
}

func TestCreateFutureInvoiceMissingInvoiceID(t *testing.T) {
	mock := testutil.NewMockHTTPClient()
	mock.Response = &httpclient.Response{
		StatusCode: http.StatusOK,
		Body:       []byte(`{}`),
	}
	c := invoicing.NewClient(mock, "http://invoicing.local", logger.NewNopLogger())

	_, err := c.CreateFutureInvoice(context.Background(), &invoicing.CreateFutureInvoiceRequest{
		SeedInvoiceID: "inv_seed_1",
		CycleNumber:   3,
	})
	require.Error(t, err)
	require.True(t, ierr.IsHTTPClient(err))
}

func TestCreateFutureInvoiceTransportError(t *testing.T) {
	mock := testutil.NewMockHTTPClient()
	mock.Err = httpclient.NewError(http.StatusBadGateway, []byte("bad gateway"))
	c := invoicing.NewClient(mock, "http://invoicing.local", logger.NewNopLogger())

	_, err := c.CreateFutureInvoice(context.Background(), &invoicing.CreateFutureInvoiceRequest{
		SeedInvoiceID: "inv_seed_1",
		CycleNumber:   3,
	})
	require.Error(t, err)
}
