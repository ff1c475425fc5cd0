package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestInvoiceLineItemTotal(t *testing.T) {
	tests := []struct {
		name      string
		quantity  string
		unitPrice string
		want      string
	}{
		{
			name:      "whole hours",
			quantity:  "16",
			unitPrice: "50.00",
			want:      "800.00",
		},
		{
			name:      "fractional hours",
			quantity:  "7.50",
			unitPrice: "42.40",
			want:      "318.00",
		},
		{
			name:      "zero quantity",
			quantity:  "0",
			unitPrice: "99.99",
			want:      "0.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := InvoiceLineItem{
				Quantity:  decimal.RequireFromString(tt.quantity),
				UnitPrice: decimal.RequireFromString(tt.unitPrice),
			}
			assert.Equal(t, tt.want, item.Total().StringFixed(2))
		})
	}
}

func TestInvoiceTotalAmount(t *testing.T) {
	invoice := Invoice{
		LineItems: []InvoiceLineItem{
			{Quantity: decimal.NewFromInt(1), UnitPrice: decimal.RequireFromString("3000.00")},
			{Quantity: decimal.NewFromInt(1), UnitPrice: decimal.RequireFromString("300.00")},
			{Quantity: decimal.RequireFromString("16"), UnitPrice: decimal.RequireFromString("50.00")},
		},
	}

	assert.Equal(t, "4100.00", invoice.TotalAmount().StringFixed(2))
}

func TestInvoiceTotalAmountNoItems(t *testing.T) {
	invoice := Invoice{}
	assert.True(t, invoice.TotalAmount().IsZero())
}

func TestInvoiceClient(t *testing.T) {
	invoice := Invoice{ClientType: ClientTypeEORClient, ClientID: 7}
	assert.Equal(t, EORClientRef(7), invoice.Client())
}

func TestClientRefValidate(t *testing.T) {
	tests := []struct {
		name    string
		ref     ClientRef
		wantErr bool
	}{
		{name: "employer", ref: EmployerRef(1), wantErr: false},
		{name: "eor client", ref: EORClientRef(2), wantErr: false},
		{name: "unknown type", ref: ClientRef{Type: "VENDOR", ID: 1}, wantErr: true},
		{name: "zero id", ref: ClientRef{Type: ClientTypeEmployer, ID: 0}, wantErr: true},
		{name: "empty", ref: ClientRef{}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ref.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestClientRefString(t *testing.T) {
	assert.Equal(t, "EMPLOYER/12", EmployerRef(12).String())
	assert.Equal(t, "EOR_CLIENT/3", EORClientRef(3).String())
}
