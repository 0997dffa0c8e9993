package service

import (
	"github.com/memberly/memberly/internal/config"
	"github.com/memberly/memberly/internal/domain/proration"
	"github.com/memberly/memberly/internal/logger"
	"github.com/memberly/memberly/internal/testutil"
)

// testStores bundles the in-memory repositories and collaborator mocks a
// service test runs against.
type testStores struct {
	invoice      *testutil.InMemoryInvoiceStore
	tax          *testutil.InMemoryTaxStore
	discount     *testutil.InMemoryDiscountStore
	plan         *testutil.InMemoryPlanStore
	subscription *testutil.InMemorySubscriptionStore
	payment      *testutil.InMemoryPaymentStore
	catalog      *testutil.InMemoryCatalogStore

	gateway    *testutil.MockPaymentGateway
	agreements *testutil.MockAgreementClient
	invoicing  *testutil.MockInvoicingClient
}

func newTestParams() (ServiceParams, *testStores) {
	stores := &testStores{
		invoice:      testutil.NewInMemoryInvoiceStore(),
		tax:          testutil.NewInMemoryTaxStore(),
		discount:     testutil.NewInMemoryDiscountStore(),
		plan:         testutil.NewInMemoryPlanStore(),
		subscription: testutil.NewInMemorySubscriptionStore(),
		payment:      testutil.NewInMemoryPaymentStore(),
		catalog:      testutil.NewInMemoryCatalogStore(),
		gateway:      testutil.NewMockPaymentGateway(),
		agreements:   testutil.NewMockAgreementClient(),
		invoicing:    testutil.NewMockInvoicingClient(),
	}

	params := ServiceParams{
		Logger:              logger.NewNopLogger(),
		Config:              config.GetDefaultConfig(),
		DB:                  testutil.NewInMemoryClient(),
		InvoiceRepo:         stores.invoice,
		TaxRepo:             stores.tax,
		DiscountRepo:        stores.discount,
		PlanRepo:            stores.plan,
		SubscriptionRepo:    stores.subscription,
		PaymentRepo:         stores.payment,
		CatalogRepo:         stores.catalog,
		ProrationCalculator: proration.NewCalculator(proration.CalculatorTypeDay),
		PaymentGateway:      stores.gateway,
		AgreementClient:     stores.agreements,
		InvoicingClient:     stores.invoicing,
	}

	return params, stores
}
