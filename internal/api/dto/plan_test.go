package dto

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	ierr "github.com/memberly/memberly/internal/errors"
	"github.com/memberly/memberly/internal/types"
)

func validPlanRequest() *CreatePlanRequest {
	return &CreatePlanRequest{
		Name:        "Gold Plan",
		ItemID:      "item_1",
		ClientID:    "client_1",
		LevelID:     "level_1",
		FrequencyID: "freq_month",
		CyclePrices: []CyclePriceBandRequest{
			{CycleStart: 1, Price: decimal.NewFromInt(60)},
		},
		Term: &TermRequest{StartDate: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
	}
}

func TestCreatePlanRequestValidate(t *testing.T) {
	end := 0

	tests := []struct {
		name    string
		mutate  func(r *CreatePlanRequest)
		wantErr bool
	}{
		{
			name:   "valid request",
			mutate: func(r *CreatePlanRequest) {},
		},
		{
			name:    "missing name",
			mutate:  func(r *CreatePlanRequest) { r.Name = "" },
			wantErr: true,
		},
		{
			name:    "missing frequency",
			mutate:  func(r *CreatePlanRequest) { r.FrequencyID = "" },
			wantErr: true,
		},
		{
			name:    "missing client id",
			mutate:  func(r *CreatePlanRequest) { r.ClientID = "" },
			wantErr: true,
		},
		{
			name:    "unknown proration strategy",
			mutate:  func(r *CreatePlanRequest) { r.ProrationStrategy = "HOURLY" },
			wantErr: true,
		},
		{
			name:    "band starting at cycle zero",
			mutate:  func(r *CreatePlanRequest) { r.CyclePrices[0].CycleStart = 0 },
			wantErr: true,
		},
		{
			name:    "band range inverted",
			mutate:  func(r *CreatePlanRequest) { r.CyclePrices[0].CycleEnd = &end },
			wantErr: true,
		},
		{
			name:    "negative band price",
			mutate:  func(r *CreatePlanRequest) { r.CyclePrices[0].Price = decimal.NewFromInt(-1) },
			wantErr: true,
		},
		{
			name:    "term without start date",
			mutate:  func(r *CreatePlanRequest) { r.Term = &TermRequest{} },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validPlanRequest()
			tt.mutate(req)

			err := req.Validate()
			if tt.wantErr {
				require.Error(t, err)
				require.True(t, ierr.IsValidation(err))
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestCreatePlansRequestValidate(t *testing.T) {
	err := (&CreatePlansRequest{}).Validate()
	require.Error(t, err)
	require.True(t, ierr.IsValidation(err))

	err = (&CreatePlansRequest{
		Mode:  "bulk",
		Plans: []CreatePlanRequest{*validPlanRequest()},
	}).Validate()
	require.Error(t, err)

	require.NoError(t, (&CreatePlansRequest{
		Mode:  types.BatchModePerPlan,
		Plans: []CreatePlanRequest{*validPlanRequest()},
	}).Validate())
}

// Batch validation only checks shape and mode: a plan that would fail its own
// validation must not reject the whole request, so per-plan mode can isolate
// the failure.
func TestCreatePlansRequestDoesNotValidateIndividualPlans(t *testing.T) {
	bad := validPlanRequest()
	bad.FrequencyID = ""

	require.NoError(t, (&CreatePlansRequest{
		Mode:  types.BatchModePerPlan,
		Plans: []CreatePlanRequest{*bad},
	}).Validate())
}
