package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"

	"github.com/memberly/memberly/internal/api"
	v1 "github.com/memberly/memberly/internal/api/v1"
	"github.com/memberly/memberly/internal/config"
	"github.com/memberly/memberly/internal/domain/catalog"
	"github.com/memberly/memberly/internal/domain/discount"
	"github.com/memberly/memberly/internal/domain/invoice"
	"github.com/memberly/memberly/internal/domain/payment"
	"github.com/memberly/memberly/internal/domain/plan"
	"github.com/memberly/memberly/internal/domain/proration"
	"github.com/memberly/memberly/internal/domain/subscription"
	"github.com/memberly/memberly/internal/domain/tax"
	"github.com/memberly/memberly/internal/httpclient"
	"github.com/memberly/memberly/internal/integration/agreement"
	"github.com/memberly/memberly/internal/integration/invoicing"
	paymentgw "github.com/memberly/memberly/internal/integration/payment"
	"github.com/memberly/memberly/internal/logger"
	"github.com/memberly/memberly/internal/postgres"
	"github.com/memberly/memberly/internal/repository"
	"github.com/memberly/memberly/internal/service"
	"github.com/memberly/memberly/internal/validator"
)

func init() {
	// All billing date math is done in UTC
	time.Local = time.UTC
}

func main() {
	_ = godotenv.Load()

	app := fx.New(
		fx.Provide(
			config.NewConfig,
			logger.NewLogger,
			postgres.NewDB,
			postgres.NewClient,
			validator.NewValidator,
			newPaymentGateway,
			newAgreementClient,
			newInvoicingClient,
			newProrationCalculator,
			repository.NewInvoiceRepository,
			repository.NewTaxRepository,
			repository.NewDiscountRepository,
			repository.NewPlanRepository,
			repository.NewSubscriptionRepository,
			repository.NewPaymentRepository,
			repository.NewCatalogRepository,
			newServiceParams,
			service.NewTaxService,
			service.NewDiscountService,
			service.NewBillingService,
			service.NewInvoiceService,
			service.NewPlanService,
			v1.NewInvoiceHandler,
			v1.NewPlanHandler,
			api.NewRouter,
		),
		fx.Invoke(startServer),
	)

	app.Run()
}

func newPaymentGateway(cfg *config.Configuration, log *logger.Logger) paymentgw.Gateway {
	client := httpclient.NewClientWithTimeout(cfg.Integration.Payment.Timeout)
	return paymentgw.NewGateway(client, cfg.Integration.Payment.BaseURL, log)
}

func newAgreementClient(cfg *config.Configuration, log *logger.Logger) agreement.Client {
	client := httpclient.NewClientWithTimeout(cfg.Integration.Agreement.Timeout)
	return agreement.NewClient(client, cfg.Integration.Agreement.BaseURL, log)
}

func newInvoicingClient(cfg *config.Configuration, log *logger.Logger) invoicing.Client {
	client := httpclient.NewClientWithTimeout(cfg.Integration.Invoicing.Timeout)
	return invoicing.NewClient(client, cfg.Integration.Invoicing.BaseURL, log)
}

func newProrationCalculator() proration.Calculator {
	return proration.NewCalculator(proration.CalculatorTypeDay)
}

type serviceParamsInput struct {
	fx.In

	Logger *logger.Logger
	Config *config.Configuration
	DB     postgres.IClient

	InvoiceRepo      invoice.Repository
	TaxRepo          tax.Repository
	DiscountRepo     discount.Repository
	PlanRepo         plan.Repository
	SubscriptionRepo subscription.Repository
	PaymentRepo      payment.Repository
	CatalogRepo      catalog.Repository

	ProrationCalculator proration.Calculator

	PaymentGateway  paymentgw.Gateway
	AgreementClient agreement.Client
	InvoicingClient invoicing.Client
}

func newServiceParams(in serviceParamsInput) service.ServiceParams {
	return service.ServiceParams{
		Logger:              in.Logger,
		Config:              in.Config,
		DB:                  in.DB,
		InvoiceRepo:         in.InvoiceRepo,
		TaxRepo:             in.TaxRepo,
		DiscountRepo:        in.DiscountRepo,
		PlanRepo:            in.PlanRepo,
		SubscriptionRepo:    in.SubscriptionRepo,
		PaymentRepo:         in.PaymentRepo,
		CatalogRepo:         in.CatalogRepo,
		ProrationCalculator: in.ProrationCalculator,
		PaymentGateway:      in.PaymentGateway,
		AgreementClient:     in.AgreementClient,
		InvoicingClient:     in.InvoicingClient,
	}
}

func startServer(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	router *gin.Engine,
	db *postgres.DB,
	log *logger.Logger,
) {
	if cfg.Deployment.Mode != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	server := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Infow("starting server", "address", cfg.Server.Address)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatalf("server failed: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Infow("shutting down server")
			db.Close()
			return server.Shutdown(ctx)
		},
	})
}
