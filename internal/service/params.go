package service

import (
	"github.com/memberly/memberly/internal/config"
	"github.com/memberly/memberly/internal/domain/catalog"
	"github.com/memberly/memberly/internal/domain/discount"
	"github.com/memberly/memberly/internal/domain/invoice"
	"github.com/memberly/memberly/internal/domain/payment"
	"github.com/memberly/memberly/internal/domain/plan"
	"github.com/memberly/memberly/internal/domain/proration"
	"github.com/memberly/memberly/internal/domain/subscription"
	"github.com/memberly/memberly/internal/domain/tax"
	"github.com/memberly/memberly/internal/integration/agreement"
	"github.com/memberly/memberly/internal/integration/invoicing"
	paymentgw "github.com/memberly/memberly/internal/integration/payment"
	"github.com/memberly/memberly/internal/logger"
	"github.com/memberly/memberly/internal/postgres"
)

// ServiceParams holds common dependencies for services
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration
	DB     postgres.IClient

	// Repositories
	InvoiceRepo      invoice.Repository
	TaxRepo          tax.Repository
	DiscountRepo     discount.Repository
	PlanRepo         plan.Repository
	SubscriptionRepo subscription.Repository
	PaymentRepo      payment.Repository
	CatalogRepo      catalog.Repository

	// Calculators
	ProrationCalculator proration.Calculator

	// External collaborators
	PaymentGateway  paymentgw.Gateway
	AgreementClient agreement.Client
	InvoicingClient invoicing.Client
}
