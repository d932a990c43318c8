package formschema

import "fmt"

// FieldType is the coarse JSON type a schema property expects.
type FieldType string

const (
	String  FieldType = "string"
	Number  FieldType = "number"
	Boolean FieldType = "boolean"
	Array   FieldType = "array"
)

type Schema struct {
	Name        string
	Description string
	Category    string
	Required    []string
	Properties  map[string]FieldType
}

// Registry holds the known form types. Unknown types are rejected at
// submission time.
var Registry = map[string]Schema{
	"purchase_request": {
		Name:        "Purchase Request Form",
		Description: "Submit a purchase request for approval",
		Category:    "finance",
		Required: []string{
			"requestor_org", "requestor_eat", "requestor_director",
			"account_code", "description", "total_amount",
		},
		Properties: map[string]FieldType{
			"requestor_org":      String,
			"requestor_eat":      String,
			"requestor_director": String,
			"account_code":       String,
			"description":        String,
			"total_amount":       Number,
			"supporting_docs":    Array,
		},
	},
	"payment_request": {
		Name:        "Payment Request Form",
		Description: "Request a one-time payment to vendor",
		Category:    "finance",
		Required: []string{
			"paying_entity", "payment_amount", "paying_currency",
			"vendor_name", "legal_approval", "payment_method",
		},
		Properties: map[string]FieldType{
			"paying_entity":   String,
			"payment_amount":  Number,
			"paying_currency": String,
			"vendor_name":     String,
			"legal_approval":  Boolean,
			"payment_method":  String,
		},
	},
}

// Validate checks data against the registered schema for formType.
// Required fields must be present; typed properties must match when set.
func Validate(formType string, data map[string]any) error {
	schema, ok := Registry[formType]
	if !ok {
		return fmt.Errorf("unknown form type %q", formType)
	}
	for _, field := range schema.Required {
		if _, present := data[field]; !present {
			return fmt.Errorf("missing required field %q", field)
		}
	}
	for field, value := range data {
		want, known := schema.Properties[field]
		if !known || value == nil {
			continue
		}
		if !matches(want, value) {
			return fmt.Errorf("field %q must be a %s", field, want)
		}
	}
	return nil
}

func matches(want FieldType, value any) bool {
	switch want {
	case String:
		_, ok := value.(string)
		return ok
	case Number:
		switch value.(type) {
		case float64, float32, int, int64:
			return true
		}
		return false
	case Boolean:
		_, ok := value.(bool)
		return ok
	case Array:
		_, ok := value.([]any)
		return ok
	}
	return true
}
