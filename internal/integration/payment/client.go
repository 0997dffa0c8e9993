package payment

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"

	ierr "github.com/memberly/memberly/internal/errors"
	"github.com/memberly/memberly/internal/httpclient"
	"github.com/memberly/memberly/internal/logger"
)

// Gateway is the payment collaborator. Payments are captured synchronously;
// a non-2xx response surfaces as an error, never as a silent continue.
type Gateway interface {
	ProcessPayment(ctx context.Context, req *ProcessPaymentRequest) (string, error)
}

// ProcessPaymentRequest is the capture request sent to the payment service.
type ProcessPaymentRequest struct {
	ClientID    string          `json:"client_id"`
	Amount      decimal.Decimal `json:"amount"`
	GatewayCode string          `json:"gateway_code"`
	MethodCode  string          `json:"method_code"`
}

type processPaymentResponse struct {
	PaymentTransactionID string `json:"payment_transaction_id"`
}

type gateway struct {
	client  httpclient.Client
	baseURL string
	logger  *logger.Logger
}

// NewGateway creates a payment gateway client against the given base URL.
func NewGateway(client httpclient.Client, baseURL string, logger *logger.Logger) Gateway {
	return &gateway{
		client:  client,
		baseURL: baseURL,
		logger:  logger,
	}
}

func (g *gateway) ProcessPayment(ctx context.Context, req *ProcessPaymentRequest) (string, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return "", ierr.WithError(err).
			WithHint("Failed to encode payment request").
			Mark(ierr.ErrSystem)
	}

	resp, err := g.client.Send(ctx, &httpclient.Request{
		Method: http.MethodPost,
		URL:    g.baseURL + "/v1/payments",
		Body:   body,
	})
	if err != nil {
		g.logger.Errorw("payment capture failed",
			"client_id", req.ClientID,
			"amount", req.Amount,
			"error", err,
		)
		return "", err
	}

	var out processPaymentResponse
	if err := json.Unmarshal(resp.Body, &out); err != nil {
		return "", ierr.WithError(err).
			WithHint("Payment service returned an unexpected response").
			Mark(ierr.ErrHTTPClient)
	}

	if out.PaymentTransactionID == "" {
		return "", ierr.NewError("payment service returned no transaction id").
			WithHint("Payment service returned an unexpected response").
			Mark(ierr.ErrHTTPClient)
	}

	return out.PaymentTransactionID, nil
}
