package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/memberly/memberly/internal/integration/agreement"
	"github.com/memberly/memberly/internal/integration/invoicing"
	paymentgw "github.com/memberly/memberly/internal/integration/payment"
)

// MockPaymentGateway records capture requests and returns a canned
// transaction id or error.
type MockPaymentGateway struct {
	mu       sync.Mutex
	Err      error
	Requests []*paymentgw.ProcessPaymentRequest
}

func NewMockPaymentGateway() *MockPaymentGateway {
	return &MockPaymentGateway{}
}

func (m *MockPaymentGateway) ProcessPayment(ctx context.Context, req *paymentgw.ProcessPaymentRequest) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return "", m.Err
	}
	m.Requests = append(m.Requests, req)
	return fmt.Sprintf("gw_txn_%d", len(m.Requests)), nil
}

// CallCount returns the number of successful captures
func (m *MockPaymentGateway) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Requests)
}

// MockAgreementClient returns a canned client-agreement id.
type MockAgreementClient struct {
	mu       sync.Mutex
	Err      error
	Requests []*agreement.AgreementMeta
}

func NewMockAgreementClient() *MockAgreementClient {
	return &MockAgreementClient{}
}

func (m *MockAgreementClient) CreateAgreement(ctx context.Context, meta *agreement.AgreementMeta) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return "", m.Err
	}
	m.Requests = append(m.Requests, meta)
	return fmt.Sprintf("cag_%d", len(m.Requests)), nil
}

// MockInvoicingClient records future-invoice requests and returns a canned
// invoice id or error.
type MockInvoicingClient struct {
	mu       sync.Mutex
	Err      error
	Requests []*invoicing.CreateFutureInvoiceRequest
}

func NewMockInvoicingClient() *MockInvoicingClient {
	return &MockInvoicingClient{}
}

func (m *MockInvoicingClient) CreateFutureInvoice(ctx context.Context, req *invoicing.CreateFutureInvoiceRequest) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return "", m.Err
	}
	m.Requests = append(m.Requests, req)
	return fmt.Sprintf("inv_future_%d", len(m.Requests)), nil
}

// CallCount returns the number of future invoices created
func (m *MockInvoicingClient) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Requests)
}
