package agreement

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	ierr "github.com/memberly/memberly/internal/errors"
	"github.com/memberly/memberly/internal/httpclient"
	"github.com/memberly/memberly/internal/logger"
)

// Client is the client-agreement collaborator.
type Client interface {
	CreateAgreement(ctx context.Context, meta *AgreementMeta) (string, error)
}

// AgreementMeta describes the agreement to register with the client-agreement
// service.
type AgreementMeta struct {
	ClientID      string     `json:"client_id"`
	AgreementID   string     `json:"agreement_id"`
	LevelID       string     `json:"level_id"`
	ContractStart time.Time  `json:"contract_start"`
	ContractEnd   *time.Time `json:"contract_end,omitempty"`
}

type createAgreementResponse struct {
	ClientAgreementID string `json:"client_agreement_id"`
}

type client struct {
	http    httpclient.Client
	baseURL string
	logger  *logger.Logger
}

// NewClient creates a client-agreement client against the given base URL.
func NewClient(http httpclient.Client, baseURL string, logger *logger.Logger) Client {
	return &client{
		http:    http,
		baseURL: baseURL,
		logger:  logger,
	}
}

func (c *client) CreateAgreement(ctx context.Context, meta *AgreementMeta) (string, error) {
	body, err := json.Marshal(meta)
	if err != nil {
		return "", ierr.WithError(err).
			WithHint("Failed to encode agreement request").
			Mark(ierr.ErrSystem)
	}

	resp, err := c.http.Send(ctx, &httpclient.Request{
		Method: http.MethodPost,
		URL:    c.baseURL + "/v1/client-agreements",
		Body:   body,
	})
	if err != nil {
		c.logger.Errorw("client agreement creation failed",
			"client_id", meta.ClientID,
			"agreement_id", meta.AgreementID,
			"error", err,
		)
		return "", err
	}

	var out createAgreementResponse
	if err := json.Unmarshal(resp.Body, &out); err != nil {
		return "", ierr.WithError(err).
			WithHint("Client agreement service returned an unexpected response").
			Mark(ierr.ErrHTTPClient)
	}

	return out.ClientAgreementID, nil
}
