package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/memberly/memberly/internal/domain/discount"
	"github.com/memberly/memberly/internal/testutil"
	"github.com/memberly/memberly/internal/types"
)

type DiscountServiceSuite struct {
	suite.Suite
	ctx     context.Context
	service DiscountService
	stores  *testStores
}

func TestDiscountService(t *testing.T) {
	suite.Run(t, new(DiscountServiceSuite))
}

func (s *DiscountServiceSuite) SetupTest() {
	s.ctx = testutil.SetupContext()
	params, stores := newTestParams()
	s.stores = stores
	s.service = NewDiscountService(params)
}

func (s *DiscountServiceSuite) seed(id string, itemID, levelID *string, createdAt time.Time) {
	s.stores.discount.Seed(&discount.Discount{
		ID:              id,
		Name:            id,
		AdjustmentID:    "adj_" + id,
		CalculationType: types.DiscountCalculationPercentage,
		Rate:            decimal.RequireFromString("10"),
		ItemID:          itemID,
		LevelID:         levelID,
		StartDate:       time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		BaseModel: types.BaseModel{
			Status:    types.StatusActive,
			CreatedAt: createdAt,
		},
	})
}

func strPtr(v string) *string { return &v }

func (s *DiscountServiceSuite) TestEmptyCandidatesResolveToNil() {
	detail, err := s.service.ResolveBestDiscount(s.ctx, "item_1", "level_1", nil)
	s.Require().NoError(err)
	s.Nil(detail)
}

func (s *DiscountServiceSuite) TestItemSpecificBeatsAnyItem() {
	base := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	s.seed("disc_any", nil, nil, base.AddDate(0, 1, 0))
	s.seed("disc_item", strPtr("item_1"), nil, base)

	detail, err := s.service.ResolveBestDiscount(s.ctx, "item_1", "level_1",
		[]string{"disc_any", "disc_item"})
	s.Require().NoError(err)
	s.Require().NotNil(detail)
	s.Equal("disc_item", detail.DiscountID)
}

func (s *DiscountServiceSuite) TestExactLevelBeatsLevelAgnostic() {
	base := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	s.seed("disc_agnostic", strPtr("item_1"), nil, base.AddDate(0, 1, 0))
	s.seed("disc_level", strPtr("item_1"), strPtr("level_1"), base)

	detail, err := s.service.ResolveBestDiscount(s.ctx, "item_1", "level_1",
		[]string{"disc_agnostic", "disc_level"})
	s.Require().NoError(err)
	s.Require().NotNil(detail)
	s.Equal("disc_level", detail.DiscountID)
}

func (s *DiscountServiceSuite) TestNewestWinsTies() {
	base := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	s.seed("disc_old", nil, nil, base)
	s.seed("disc_new", nil, nil, base.AddDate(0, 2, 0))

	detail, err := s.service.ResolveBestDiscount(s.ctx, "item_1", "level_1",
		[]string{"disc_old", "disc_new"})
	s.Require().NoError(err)
	s.Require().NotNil(detail)
	s.Equal("disc_new", detail.DiscountID)
}

func (s *DiscountServiceSuite) TestWrongItemBindingIsFilteredOut() {
	base := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	s.seed("disc_other_item", strPtr("item_2"), nil, base)

	detail, err := s.service.ResolveBestDiscount(s.ctx, "item_1", "level_1",
		[]string{"disc_other_item"})
	s.Require().NoError(err)
	s.Nil(detail)
}

func (s *DiscountServiceSuite) TestClampIsAppliedAtResolution() {
	s.stores.discount.Seed(&discount.Discount{
		ID:              "disc_clamped",
		AdjustmentID:    "adj_clamped",
		CalculationType: types.DiscountCalculationPercentage,
		Rate:            decimal.RequireFromString("5"),
		MinPercent:      decimal.RequireFromString("10"),
		MaxPercent:      decimal.RequireFromString("20"),
		StartDate:       time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		BaseModel:       types.BaseModel{Status: types.StatusActive},
	})

	detail, err := s.service.ResolveBestDiscount(s.ctx, "item_1", "level_1",
		[]string{"disc_clamped"})
	s.Require().NoError(err)
	s.Require().NotNil(detail)
	s.True(detail.Rate.Equal(decimal.RequireFromString("10")),
		"configured 5%% clamps up to the 10%% floor, got %s", detail.Rate)
}
