package validation

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/iwvelando/mortgage-calculator/pkg/mortgage"
	"github.com/shopspring/decimal"
)

const validPayload = `{
	"propertyPrice": 500000,
	"downPayment": 50000,
	"annualInterestRate": 5,
	"amortizationPeriod": 25,
	"paymentSchedule": "monthly"
}`

func decodePayload(t *testing.T, body string) MortgagePayload {
	t.Helper()
	var p MortgagePayload
	if err := json.Unmarshal([]byte(body), &p); err != nil {
		t.Fatalf("failed to decode payload: %v", err)
	}
	return p
}

func withField(t *testing.T, key string, value interface{}) MortgagePayload {
	t.Helper()
	var raw map[string]interface{}
	if err := json.Unmarshal([]byte(validPayload), &raw); err != nil {
		t.Fatalf("failed to decode base payload: %v", err)
	}
	if value == nil {
		delete(raw, key)
	} else {
		raw[key] = value
	}
	body, err := json.Marshal(raw)
	if err != nil {
		t.Fatalf("failed to encode payload: %v", err)
	}
	return decodePayload(t, string(body))
}

func TestMortgagePayloadToRequestDefaults(t *testing.T) {
	req, err := decodePayload(t, validPayload).ToRequest()
	if err != nil {
		t.Fatalf("ToRequest() unexpected error = %v", err)
	}

	if !req.PropertyPrice.Equal(decimal.NewFromInt(500000)) {
		t.Errorf("PropertyPrice = %s, want 500000", req.PropertyPrice)
	}
	if !req.DownPayment.Equal(decimal.NewFromInt(50000)) {
		t.Errorf("DownPayment = %s, want 50000", req.DownPayment)
	}
	if req.AmortizationPeriod != 25 {
		t.Errorf("AmortizationPeriod = %d, want 25", req.AmortizationPeriod)
	}
	if req.PaymentSchedule != mortgage.Monthly {
		t.Errorf("PaymentSchedule = %s, want monthly", req.PaymentSchedule)
	}
	if req.DownPaymentSource != mortgage.Traditional {
		t.Errorf("DownPaymentSource = %s, want traditional", req.DownPaymentSource)
	}
	if req.EmploymentType != mortgage.Regular {
		t.Errorf("EmploymentType = %s, want regular", req.EmploymentType)
	}
	if req.IsFirstTimeBuyer || req.IsNewConstruction {
		t.Errorf("expected boolean flags to default to false")
	}
}

func TestMortgagePayloadKeepsDecimalLiterals(t *testing.T) {
	req, err := withField(t, "annualInterestRate", 5.99).ToRequest()
	if err != nil {
		t.Fatalf("ToRequest() unexpected error = %v", err)
	}
	if req.AnnualInterestRate.String() != "5.99" {
		t.Errorf("AnnualInterestRate = %s, want 5.99", req.AnnualInterestRate)
	}
}

func TestMortgagePayloadSchema(t *testing.T) {
	tests := []struct {
		name    string
		payload MortgagePayload
		field   string
		message string
	}{
		{"Missing property price", withField(t, "propertyPrice", nil), "propertyPrice", "is required"},
		{"Zero property price", withField(t, "propertyPrice", 0), "propertyPrice", "must be greater than 0"},
		{"Negative down payment", withField(t, "downPayment", -1), "downPayment", "must be greater than 0"},
		{"Missing interest rate", withField(t, "annualInterestRate", nil), "annualInterestRate", "is required"},
		{"Negative interest rate", withField(t, "annualInterestRate", -0.5), "annualInterestRate", "must be at least 0"},
		{"Interest rate above 100", withField(t, "annualInterestRate", 100.5), "annualInterestRate", "must be at most 100"},
		{"Amortization below range", withField(t, "amortizationPeriod", 0), "amortizationPeriod", "must be at least 5"},
		{"Amortization above range", withField(t, "amortizationPeriod", 35), "amortizationPeriod", "must be at most 30"},
		{"Amortization off step", withField(t, "amortizationPeriod", 22), "amortizationPeriod", "must be a multiple of 5"},
		{"Missing schedule", withField(t, "paymentSchedule", nil), "paymentSchedule", "is required"},
		{"Unknown schedule", withField(t, "paymentSchedule", "weekly"), "paymentSchedule", "must be one of: monthly, biweekly, accelerated-biweekly"},
		{"Unknown source", withField(t, "downPaymentSource", "gift"), "downPaymentSource", "must be one of"},
		{"Unknown employment", withField(t, "employmentType", "contractor"), "employmentType", "must be one of"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.payload.ToRequest()
			var schemaErr *SchemaError
			if !errors.As(err, &schemaErr) {
				t.Fatalf("expected *SchemaError, got %v", err)
			}
			if len(schemaErr.Fields) != 1 {
				t.Fatalf("expected one field error, got %+v", schemaErr.Fields)
			}
			got := schemaErr.Fields[0]
			if got.Field != tt.field {
				t.Errorf("Field = %s, want %s", got.Field, tt.field)
			}
			if !strings.Contains(got.Message, tt.message) {
				t.Errorf("Message = %q, want it to contain %q", got.Message, tt.message)
			}
			if !strings.Contains(schemaErr.Error(), tt.field) {
				t.Errorf("Error() = %q does not name the field", schemaErr.Error())
			}
		})
	}
}

func TestMortgagePayloadAcceptsBoundaries(t *testing.T) {
	payloads := map[string]MortgagePayload{
		"zero interest":    withField(t, "annualInterestRate", 0),
		"interest of 100":  withField(t, "annualInterestRate", 100),
		"five years":       withField(t, "amortizationPeriod", 5),
		"thirty years":     withField(t, "amortizationPeriod", 30),
		"accelerated":      withField(t, "paymentSchedule", "accelerated-biweekly"),
		"non-traditional":  withField(t, "downPaymentSource", "non-traditional"),
		"self-employed":    withField(t, "employmentType", "self-employed-non-verified"),
		"first-time buyer": withField(t, "isFirstTimeBuyer", true),
	}

	for name, p := range payloads {
		t.Run(name, func(t *testing.T) {
			if _, err := p.ToRequest(); err != nil {
				t.Errorf("ToRequest() unexpected error = %v", err)
			}
		})
	}
}

func TestMortgagePayloadCollectsAllErrors(t *testing.T) {
	err := MortgagePayload{}.Validate()
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected *SchemaError, got %v", err)
	}
	if len(schemaErr.Fields) != 5 {
		t.Errorf("expected 5 field errors, got %d: %+v", len(schemaErr.Fields), schemaErr.Fields)
	}
}

func TestPayloadFromRequestRoundTrip(t *testing.T) {
	sample := mortgage.SampleRequest()
	payload := PayloadFromRequest(sample)

	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("failed to encode sample: %v", err)
	}
	for _, want := range []string{`"propertyPrice":600000`, `"annualInterestRate":5.99`, `"isFirstTimeBuyer":true`, `"employmentType":"regular"`} {
		if !strings.Contains(string(body), want) {
			t.Errorf("sample payload %s missing %s", body, want)
		}
	}

	req, err := payload.ToRequest()
	if err != nil {
		t.Fatalf("ToRequest() unexpected error = %v", err)
	}
	if !req.PropertyPrice.Equal(sample.PropertyPrice) ||
		!req.DownPayment.Equal(sample.DownPayment) ||
		!req.AnnualInterestRate.Equal(sample.AnnualInterestRate) ||
		req.AmortizationPeriod != sample.AmortizationPeriod ||
		req.PaymentSchedule != sample.PaymentSchedule ||
		req.IsFirstTimeBuyer != sample.IsFirstTimeBuyer ||
		req.DownPaymentSource != sample.DownPaymentSource ||
		req.EmploymentType != sample.EmploymentType {
		t.Errorf("round trip changed the request: got %+v, want %+v", req, sample)
	}
}

func TestDownPaymentPayload(t *testing.T) {
	price, downPayment := 500000.0, 45000.0

	check, err := DownPaymentPayload{PropertyPrice: &price, DownPayment: &downPayment}.ToCheck()
	if err != nil {
		t.Fatalf("ToCheck() unexpected error = %v", err)
	}
	if check.EmploymentType != mortgage.Regular {
		t.Errorf("EmploymentType = %s, want regular", check.EmploymentType)
	}
	if !check.DownPayment.Equal(decimal.NewFromInt(45000)) {
		t.Errorf("DownPayment = %s, want 45000", check.DownPayment)
	}

	_, err = DownPaymentPayload{PropertyPrice: &price}.ToCheck()
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected *SchemaError, got %v", err)
	}
	if schemaErr.Fields[0].Message != MissingDownPaymentFields {
		t.Errorf("Message = %q, want %q", schemaErr.Fields[0].Message, MissingDownPaymentFields)
	}

	_, err = DownPaymentPayload{PropertyPrice: &price, DownPayment: &downPayment, EmploymentType: "freelance"}.ToCheck()
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected *SchemaError for unknown employment type, got %v", err)
	}
}
