package invoicing

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	ierr "github.com/memberly/memberly/internal/errors"
	"github.com/memberly/memberly/internal/httpclient"
	"github.com/memberly/memberly/internal/logger"
)

// Client is the future-invoice collaborator: it creates the invoice for a
// subscription's next billing cycle from a seed invoice.
type Client interface {
	CreateFutureInvoice(ctx context.Context, req *CreateFutureInvoiceRequest) (string, error)
}

// CreateFutureInvoiceRequest identifies the seed invoice and the cycle the
// new invoice covers.
type CreateFutureInvoiceRequest struct {
	SeedInvoiceID     string    `json:"seed_invoice_id"`
	CycleNumber       int       `json:"cycle_number"`
	BillingDate       time.Time `json:"billing_date"`
	ActorID           string    `json:"actor_id"`
	ClientAgreementID string    `json:"client_agreement_id,omitempty"`
}

type createFutureInvoiceResponse struct {
	InvoiceID string `json:"invoice_id"`
}

type client struct {
	http    httpclient.Client
	baseURL string
	logger  *logger.Logger
}

// NewClient creates a future-invoice client against the given base URL.
func NewClient(http httpclient.Client, baseURL string, logger *logger.Logger) Client {
	return &client{
		http:    http,
		baseURL: baseURL,
		logger:  logger,
	}
}

func (c *client) CreateFutureInvoice(ctx context.Context, req *CreateFutureInvoiceRequest) (string, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return "", ierr.WithError(err).
			WithHint("Failed to encode future invoice request").
			Mark(ierr.ErrSystem)
	}

	resp, err := c.http.Send(ctx, &httpclient.Request{
		Method: http.MethodPost,
		URL:    c.baseURL + "/v1/invoices/future",
		Body:   body,
	})
	if err != nil {
		c.logger.Errorw("future invoice creation failed",
			"seed_invoice_id", req.SeedInvoiceID,
			"cycle_number", req.CycleNumber,
			"error", err,
		)
		return "", err
	}

	var out createFutureInvoiceResponse
	if err := json.Unmarshal(resp.Body, &out); err != nil {
		return "", ierr.WithError(err).
			WithHint("Invoicing service returned an unexpected response").
			Mark(ierr.ErrHTTPClient)
	}

	if out.InvoiceID == "" {
		return "", ierr.NewError("invoicing service returned no invoice id").
			WithHint("Invoicing service returned an unexpected response").
			Mark(ierr.ErrHTTPClient)
	}

	return out.InvoiceID, nil
}
