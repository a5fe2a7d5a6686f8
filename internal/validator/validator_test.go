package validator

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

type amountRequest struct {
	Amount decimal.Decimal  `validate:"required,gt=0"`
	Limit  *decimal.Decimal `validate:"omitempty,gt=0"`
}

type categoryRequest struct {
	Category string `validate:"omitempty,expense_category"`
}

func newValidate() *validator.Validate {
	v := validator.New()
	RegisterOn(v)
	return v
}

func TestDecimalValidation(t *testing.T) {
	v := newValidate()
	neg := decimal.NewFromInt(-1)
	pos := decimal.RequireFromString("0.01")

	tests := []struct {
		name    string
		req     amountRequest
		wantErr bool
	}{
		{name: "positive", req: amountRequest{Amount: decimal.RequireFromString("85.50")}},
		{name: "zero_is_missing", req: amountRequest{Amount: decimal.Zero}, wantErr: true},
		{name: "negative", req: amountRequest{Amount: decimal.NewFromInt(-5)}, wantErr: true},
		{name: "optional_positive", req: amountRequest{Amount: decimal.NewFromInt(1), Limit: &pos}},
		{name: "optional_negative", req: amountRequest{Amount: decimal.NewFromInt(1), Limit: &neg}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.req)
			if (err != nil) != tt.wantErr {
				t.Errorf("Struct() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestExpenseCategoryValidation(t *testing.T) {
	v := newValidate()

	for _, ok := range []string{"", "Food", "subscription", "Other"} {
		if err := v.Struct(categoryRequest{Category: ok}); err != nil {
			t.Errorf("expected %q to be accepted: %v", ok, err)
		}
	}
	for _, bad := range []string{"Groceries", "Food!"} {
		if err := v.Struct(categoryRequest{Category: bad}); err == nil {
			t.Errorf("expected %q to be rejected", bad)
		}
	}
}
