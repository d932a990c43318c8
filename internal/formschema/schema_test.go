package formschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validPurchaseRequest() map[string]any {
	return map[string]any{
		"requestor_org":      "Engineering",
		"requestor_eat":      "Platform",
		"requestor_director": "A. Director",
		"account_code":       "ENG-1042",
		"description":        "Team laptops",
		"total_amount":       4200.50,
	}
}

func TestValidate_KnownTypes(t *testing.T) {
	t.Parallel()

	require.NoError(t, Validate("purchase_request", validPurchaseRequest()))

	payment := map[string]any{
		"paying_entity":   "PlanVenture Ltd",
		"payment_amount":  99.0,
		"paying_currency": "EUR",
		"vendor_name":     "Acme Travel",
		"legal_approval":  true,
		"payment_method":  "wire",
	}
	require.NoError(t, Validate("payment_request", payment))
}

func TestValidate_UnknownFormType(t *testing.T) {
	t.Parallel()

	err := Validate("vacation_request", map[string]any{})
	assert.ErrorContains(t, err, "unknown form type")
}

func TestValidate_MissingRequiredField(t *testing.T) {
	t.Parallel()

	data := validPurchaseRequest()
	delete(data, "total_amount")

	err := Validate("purchase_request", data)
	assert.ErrorContains(t, err, `missing required field "total_amount"`)
}

func TestValidate_TypeMismatches(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		field   string
		value   any
		wantErr string
	}{
		{name: "amount as string", field: "total_amount", value: "lots", wantErr: "must be a number"},
		{name: "description as number", field: "description", value: 3.0, wantErr: "must be a string"},
		{name: "docs as scalar", field: "supporting_docs", value: "doc.pdf", wantErr: "must be a array"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			data := validPurchaseRequest()
			data[tt.field] = tt.value
			err := Validate("purchase_request", data)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestValidate_ExtrasAndNilsAccepted(t *testing.T) {
	t.Parallel()

	data := validPurchaseRequest()
	data["free_form_extra"] = map[string]any{"anything": "goes"}
	data["supporting_docs"] = nil

	assert.NoError(t, Validate("purchase_request", data))
}

func TestValidate_DecodedJSONNumbers(t *testing.T) {
	t.Parallel()

	// encoding/json decodes numbers into float64
	data := validPurchaseRequest()
	data["total_amount"] = float64(100)
	assert.NoError(t, Validate("purchase_request", data))
}
