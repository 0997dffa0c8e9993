package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/memberly/memberly/internal/api/dto"
	"github.com/memberly/memberly/internal/domain/invoice"
	"github.com/memberly/memberly/internal/domain/payment"
	"github.com/memberly/memberly/internal/domain/plan"
	ierr "github.com/memberly/memberly/internal/errors"
	paymentgw "github.com/memberly/memberly/internal/integration/payment"
	"github.com/memberly/memberly/internal/types"
)

// leafTotalsTolerance bounds the drift allowed between the invoice total and
// the sum of its leaf line totals before a mismatch is logged.
var leafTotalsTolerance = decimal.NewFromFloat(0.01)

// InvoiceService prices purchases into invoices and finalizes them with a
// payment capture.
type InvoiceService interface {
	// CreatePurchaseInvoice prices the purchased entity tree and persists
	// the invoice with all entity, tax and discount rows in one transaction.
	CreatePurchaseInvoice(ctx context.Context, req *dto.CreatePurchaseRequest) (*dto.InvoiceResponse, error)

	// GetInvoice returns an invoice with its entity tree
	GetInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error)

	// FinalizeInvoice captures payment for the invoice and marks it paid.
	// Finalizing an already paid invoice is a no-op reported via
	// AlreadyFinalized, never a double charge.
	FinalizeInvoice(ctx context.Context, invoiceID string, req *dto.FinalizeInvoiceRequest) (*dto.PaymentResponse, error)
}

type invoiceService struct {
	ServiceParams
	taxService      TaxService
	discountService DiscountService
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(params ServiceParams) InvoiceService {
	return &invoiceService{
		ServiceParams:   params,
		taxService:      NewTaxService(params),
		discountService: NewDiscountService(params),
	}
}

func (s *invoiceService) CreatePurchaseInvoice(ctx context.Context, req *dto.CreatePurchaseRequest) (*dto.InvoiceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	inv := &invoice.Invoice{
		ID:            types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE),
		InvoiceNumber: types.GenerateShortIDWithPrefix(types.SHORT_ID_PREFIX_INVOICE_NUMBER),
		InvoiceDate:   time.Now().UTC(),
		ClientID:      req.ClientID,
		LevelID:       req.LevelID,
		InvoiceStatus: types.InvoiceStatusPendingPayment,
		BaseModel:     types.GetDefaultBaseModel(ctx),
	}

	for i := range req.Agreements {
		if err := s.buildAgreementEntity(ctx, inv, &req.Agreements[i], req.LevelID); err != nil {
			return nil, err
		}
	}
	for i := range req.Bundles {
		if _, err := s.buildBundleEntity(ctx, inv, nil, &req.Bundles[i], req.LevelID); err != nil {
			return nil, err
		}
	}
	for i := range req.Items {
		if _, err := s.buildItemEntity(ctx, inv, nil, &req.Items[i], req.LevelID); err != nil {
			return nil, err
		}
	}

	subtotal, taxTotal, discountTotal := decimal.Zero, decimal.Zero, decimal.Zero
	for _, e := range inv.Entities {
		if e.EntityType.IsContainer() {
			continue
		}
		subtotal = subtotal.Add(e.GrossAmount())
		taxTotal = taxTotal.Add(e.TaxAmount)
		discountTotal = discountTotal.Add(e.DiscountAmount)
	}
	inv.Subtotal = types.RoundCurrency(subtotal)
	inv.TaxTotal = types.RoundCurrency(taxTotal)
	inv.DiscountTotal = types.RoundCurrency(discountTotal)
	inv.Total = types.RoundCurrency(inv.Subtotal.Add(inv.TaxTotal).Sub(inv.DiscountTotal))

	if err := inv.Validate(); err != nil {
		return nil, err
	}
	if !inv.LeafTotalsMatch(leafTotalsTolerance) {
		s.Logger.Warnw("invoice total does not reconcile with leaf line totals",
			"invoice_id", inv.ID,
			"total", inv.Total,
		)
	}

	err := s.DB.WithTx(ctx, func(ctx context.Context) error {
		return s.InvoiceRepo.Create(ctx, inv)
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("created purchase invoice",
		"invoice_id", inv.ID,
		"invoice_number", inv.InvoiceNumber,
		"client_id", inv.ClientID,
		"total", inv.Total,
		"lines", len(inv.Entities),
	)

	return &dto.InvoiceResponse{Invoice: inv}, nil
}

// buildAgreementEntity creates a zero-amount header row for the agreement and
// prices its bundles underneath it. Tax, discount and total roll up from the
// children; the unit price stays zero.
func (s *invoiceService) buildAgreementEntity(ctx context.Context, inv *invoice.Invoice, a *dto.PurchaseAgreement, levelID string) error {
	typeName, err := s.CatalogRepo.GetEntityTypeName(ctx, a.EntityTypeID)
	if err != nil {
		return err
	}

	entity := &invoice.InvoiceEntity{
		ID:         types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE_ENTITY),
		InvoiceID:  inv.ID,
		EntityType: types.InvoiceEntityTypeAgreement,
		EntityID:   a.AgreementID,
		Quantity:   decimal.NewFromInt(1),
		UnitPrice:  decimal.Zero,
		BaseModel:  types.GetDefaultBaseModel(ctx),
	}
	inv.Entities = append(inv.Entities, entity)

	for i := range a.Bundles {
		child, err := s.buildBundleEntity(ctx, inv, &entity.ID, &a.Bundles[i], levelID)
		if err != nil {
			return err
		}
		entity.TaxAmount = entity.TaxAmount.Add(child.TaxAmount)
		entity.DiscountAmount = entity.DiscountAmount.Add(child.DiscountAmount)
		entity.TotalAmount = entity.TotalAmount.Add(child.TotalAmount)
	}

	s.Logger.Debugw("priced agreement header",
		"invoice_id", inv.ID,
		"agreement_id", a.AgreementID,
		"entity_type", typeName,
		"total", entity.TotalAmount,
	)

	return nil
}

// buildBundleEntity prices the bundle's items and rolls their amounts up into
// the bundle row: the unit price is the sum of the children's gross amounts.
func (s *invoiceService) buildBundleEntity(ctx context.Context, inv *invoice.Invoice, parentID *string, b *dto.PurchaseBundle, levelID string) (*invoice.InvoiceEntity, error) {
	if _, err := s.CatalogRepo.GetEntityTypeName(ctx, b.EntityTypeID); err != nil {
		return nil, err
	}

	entity := &invoice.InvoiceEntity{
		ID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE_ENTITY),
		InvoiceID:      inv.ID,
		ParentEntityID: parentID,
		EntityType:     types.InvoiceEntityTypeBundle,
		EntityID:       b.BundleID,
		Quantity:       decimal.NewFromInt(1),
		BaseModel:      types.GetDefaultBaseModel(ctx),
	}
	inv.Entities = append(inv.Entities, entity)

	grossSum := decimal.Zero
	for i := range b.Items {
		child, err := s.buildItemEntity(ctx, inv, &entity.ID, &b.Items[i], levelID)
		if err != nil {
			return nil, err
		}
		grossSum = grossSum.Add(child.GrossAmount())
		entity.TaxAmount = entity.TaxAmount.Add(child.TaxAmount)
		entity.DiscountAmount = entity.DiscountAmount.Add(child.DiscountAmount)
		entity.TotalAmount = entity.TotalAmount.Add(child.TotalAmount)
	}
	entity.UnitPrice = grossSum

	return entity, nil
}

// buildItemEntity prices one leaf line: plan-template pricing (first band,
// prorated when the plan calls for it) or the flat request price, then tax
// and at most one discount.
func (s *invoiceService) buildItemEntity(ctx context.Context, inv *invoice.Invoice, parentID *string, item *dto.PurchaseItem, levelID string) (*invoice.InvoiceEntity, error) {
	entityName, levelName, err := s.CatalogRepo.ResolveEntityAndLevel(ctx, item.EntityTypeID, item.ItemID, levelID)
	if err != nil {
		return nil, err
	}

	unitPrice, quantity, err := s.resolveLinePrice(ctx, item)
	if err != nil {
		return nil, err
	}

	entity := &invoice.InvoiceEntity{
		ID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE_ENTITY),
		InvoiceID:      inv.ID,
		ParentEntityID: parentID,
		EntityType:     types.InvoiceEntityTypeItem,
		EntityID:       item.ItemID,
		Quantity:       quantity,
		UnitPrice:      unitPrice,
		PlanTemplateID: item.PlanTemplateID,
		ContractStart:  item.ContractStart,
		BaseModel:      types.GetDefaultBaseModel(ctx),
	}
	gross := entity.GrossAmount()

	taxLines, err := s.taxService.ResolveTaxes(ctx, item.ItemID, levelID, gross)
	if err != nil {
		return nil, err
	}
	for _, line := range taxLines {
		entity.Taxes = append(entity.Taxes, &invoice.EntityTax{
			ID:              types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE_TAX),
			InvoiceEntityID: entity.ID,
			TaxGroupID:      line.TaxGroupID,
			TaxRateID:       line.TaxRateID,
			Rate:            line.Rate,
			Amount:          line.Amount,
			BaseModel:       types.GetDefaultBaseModel(ctx),
		})
		entity.TaxAmount = entity.TaxAmount.Add(line.Amount)
	}

	detail, err := s.discountService.ResolveBestDiscount(ctx, item.ItemID, levelID, item.DiscountIDs)
	if err != nil {
		return nil, err
	}
	if detail != nil {
		amount := detail.Apply(gross, quantity)
		// A discount never drives a line negative
		if amount.GreaterThan(gross) {
			amount = gross
		}
		entity.Discounts = append(entity.Discounts, &invoice.EntityDiscount{
			ID:              types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE_DISCOUNT),
			InvoiceEntityID: entity.ID,
			DiscountID:      detail.DiscountID,
			AdjustmentID:    detail.AdjustmentID,
			CalculationType: detail.CalculationType,
			Rate:            detail.Rate,
			Amount:          amount,
			BaseModel:       types.GetDefaultBaseModel(ctx),
		})
		entity.DiscountAmount = amount
	}

	entity.Finalize()
	inv.Entities = append(inv.Entities, entity)

	s.Logger.Debugw("priced invoice line",
		"invoice_id", inv.ID,
		"item", entityName,
		"level", levelName,
		"unit_price", entity.UnitPrice,
		"quantity", entity.Quantity,
		"total", entity.TotalAmount,
	)

	return entity, nil
}

// resolveLinePrice returns the unit price and quantity to bill for an item.
// Plan-priced lines charged with proration collapse to quantity 1 with the
// computed charge as the unit price, so the line total stays reconcilable
// from its own parts.
func (s *invoiceService) resolveLinePrice(ctx context.Context, item *dto.PurchaseItem) (decimal.Decimal, decimal.Decimal, error) {
	if item.PlanTemplateID == nil {
		return item.UnitPrice, item.Quantity, nil
	}

	planTemplate, err := s.PlanRepo.Get(ctx, *item.PlanTemplateID)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	band := plan.ResolveBand(planTemplate.CyclePrices, 1)
	if band == nil {
		s.Logger.Warnw("plan template has no price band for the first cycle, falling back to flat price",
			"plan_id", planTemplate.ID,
			"item_id", item.ItemID,
		)
		return item.UnitPrice, item.Quantity, nil
	}
	price := band.EffectivePrice()

	if planTemplate.ProrationStrategy == types.ProrationStrategyDaily && item.ContractStart != nil {
		frequency, err := s.CatalogRepo.GetFrequency(ctx, planTemplate.FrequencyID)
		if err != nil {
			return decimal.Zero, decimal.Zero, err
		}
		if frequency.Period.IsMonthAligned() {
			units := band.DownPaymentUnits
			if units < 1 {
				units = 1
			}
			charge, err := s.ProrationCalculator.ProratedPrice(price, units, *item.ContractStart)
			if err != nil {
				return decimal.Zero, decimal.Zero, err
			}
			return charge, decimal.NewFromInt(1), nil
		}
	}

	return price, item.Quantity, nil
}

func (s *invoiceService) GetInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	inv, err := s.InvoiceRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.InvoiceResponse{Invoice: inv}, nil
}

func (s *invoiceService) FinalizeInvoice(ctx context.Context, invoiceID string, req *dto.FinalizeInvoiceRequest) (*dto.PaymentResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	inv, err := s.InvoiceRepo.Get(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	existing, err := s.PaymentRepo.GetByInvoiceID(ctx, invoiceID)
	if err == nil {
		s.Logger.Infow("invoice already finalized, skipping payment capture",
			"invoice_id", invoiceID,
			"transaction_id", existing.ID,
		)
		return &dto.PaymentResponse{
			TransactionID:        existing.ID,
			GatewayTransactionID: existing.GatewayTransactionID,
			Amount:               existing.Amount,
			AlreadyFinalized:     true,
		}, nil
	}
	if !ierr.IsNotFound(err) {
		return nil, err
	}

	if inv.InvoiceStatus == types.InvoiceStatusPaid {
		return &dto.PaymentResponse{
			TransactionID:    types.FromNillableString(inv.PaymentTransactionID),
			Amount:           inv.Total,
			AlreadyFinalized: true,
		}, nil
	}
	if inv.InvoiceStatus == types.InvoiceStatusVoided {
		return nil, ierr.NewError("cannot finalize a void invoice").
			WithHint("Void invoices cannot be paid").
			WithReportableDetails(map[string]any{"invoice_id": invoiceID}).
			Mark(ierr.ErrInvalidOperation)
	}

	gatewayTxnID, err := s.PaymentGateway.ProcessPayment(ctx, &paymentgw.ProcessPaymentRequest{
		ClientID:    inv.ClientID,
		Amount:      inv.Total,
		GatewayCode: req.GatewayCode,
		MethodCode:  req.MethodCode,
	})
	if err != nil {
		return nil, err
	}

	txn := &payment.Transaction{
		ID:                   types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PAYMENT_TRANSACTION),
		InvoiceID:            inv.ID,
		ClientID:             inv.ClientID,
		Amount:               inv.Total,
		GatewayCode:          req.GatewayCode,
		MethodCode:           req.MethodCode,
		GatewayTransactionID: gatewayTxnID,
		BaseModel:            types.GetDefaultBaseModel(ctx),
	}

	err = s.DB.WithTx(ctx, func(ctx context.Context) error {
		if err := s.PaymentRepo.Create(ctx, txn); err != nil {
			return err
		}

		inv.InvoiceStatus = types.InvoiceStatusPaid
		inv.Paid = true
		inv.PaymentTransactionID = &txn.ID
		inv.UpdatedAt = time.Now().UTC()
		inv.UpdatedBy = types.GetUserID(ctx)
		return s.InvoiceRepo.UpdateStatus(ctx, inv)
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("finalized invoice",
		"invoice_id", inv.ID,
		"transaction_id", txn.ID,
		"gateway_transaction_id", gatewayTxnID,
		"amount", txn.Amount,
	)

	return &dto.PaymentResponse{
		TransactionID:        txn.ID,
		GatewayTransactionID: gatewayTxnID,
		Amount:               txn.Amount,
	}, nil
}
