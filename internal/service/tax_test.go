package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/memberly/memberly/internal/domain/tax"
	"github.com/memberly/memberly/internal/testutil"
)

type TaxServiceSuite struct {
	suite.Suite
	ctx     context.Context
	service TaxService
	stores  *testStores
}

func TestTaxService(t *testing.T) {
	suite.Run(t, new(TaxServiceSuite))
}

func (s *TaxServiceSuite) SetupTest() {
	s.ctx = testutil.SetupContext()
	params, stores := newTestParams()
	s.stores = stores
	s.service = NewTaxService(params)
}

func (s *TaxServiceSuite) allocation(groupID, rateID, rate string) *tax.RateAllocation {
	return &tax.RateAllocation{
		TaxGroupID: groupID,
		TaxRateID:  rateID,
		Rate:       decimal.RequireFromString(rate),
	}
}

func (s *TaxServiceSuite) TestLevelGroupBeatsDefault() {
	s.stores.tax.SetDefaultTaxGroup("item_1", "tg_default")
	s.stores.tax.SetLevelTaxGroup("item_1", "level_1", "tg_level")
	s.stores.tax.AddAllocation("level_root", s.allocation("tg_level", "rate_vat", "4"))
	s.stores.tax.AddAllocation("level_root", s.allocation("tg_default", "rate_vat", "20"))

	lines, err := s.service.ResolveTaxes(s.ctx, "item_1", "level_1", decimal.RequireFromString("200"))
	s.Require().NoError(err)
	s.Require().Len(lines, 1)
	s.Equal("tg_level", lines[0].TaxGroupID)
	s.True(lines[0].Amount.Equal(decimal.RequireFromString("8")))
}

func (s *TaxServiceSuite) TestFallsBackToDefaultGroup() {
	s.stores.tax.SetDefaultTaxGroup("item_1", "tg_default")
	s.stores.tax.AddAllocation("level_root", s.allocation("tg_default", "rate_vat", "7.5"))

	lines, err := s.service.ResolveTaxes(s.ctx, "item_1", "level_other", decimal.RequireFromString("199.99"))
	s.Require().NoError(err)
	s.Require().Len(lines, 1)
	s.True(lines[0].Amount.Equal(decimal.RequireFromString("15")),
		"7.5%% of 199.99 rounds to 15.00, got %s", lines[0].Amount)
}

func (s *TaxServiceSuite) TestNoGroupResolvesToZeroTax() {
	lines, err := s.service.ResolveTaxes(s.ctx, "item_untaxed", "level_1", decimal.RequireFromString("100"))
	s.Require().NoError(err)
	s.Empty(lines)
}

func (s *TaxServiceSuite) TestCompositeGroupProducesOneLinePerAllocation() {
	s.stores.tax.SetDefaultTaxGroup("item_1", "tg_composite")
	s.stores.tax.AddAllocation("level_root", s.allocation("tg_composite", "rate_state", "4"))
	s.stores.tax.AddAllocation("level_root", s.allocation("tg_composite", "rate_city", "2.5"))

	lines, err := s.service.ResolveTaxes(s.ctx, "item_1", "level_1", decimal.RequireFromString("100"))
	s.Require().NoError(err)
	s.Require().Len(lines, 2)

	total := tax.TotalAmount(lines)
	s.True(total.Equal(decimal.RequireFromString("6.5")), "got %s", total)
}

func (s *TaxServiceSuite) TestGroupWithoutAllocationsIsZeroTax() {
	s.stores.tax.SetDefaultTaxGroup("item_1", "tg_empty")

	lines, err := s.service.ResolveTaxes(s.ctx, "item_1", "level_1", decimal.RequireFromString("100"))
	s.Require().NoError(err)
	s.Empty(lines)
}
