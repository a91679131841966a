package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/iwvelando/mortgage-calculator/pkg/mortgage"
	"github.com/shopspring/decimal"
)

// MissingDownPaymentFields is the message returned when a down payment check
// omits the price or the down payment.
const MissingDownPaymentFields = "Property price and down payment are required"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("step", validateStep); err != nil {
		panic(fmt.Sprintf("register step validation: %v", err))
	}
	return v
}

// validateStep accepts integers that are a multiple of the tag parameter.
func validateStep(fl validator.FieldLevel) bool {
	step, err := strconv.ParseInt(fl.Param(), 10, 64)
	if err != nil || step <= 0 {
		return false
	}
	switch fl.Field().Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return fl.Field().Int()%step == 0
	}
	return false
}

// MortgagePayload is the wire form of a calculation request. Pointer fields
// distinguish a missing value from zero.
type MortgagePayload struct {
	PropertyPrice      *float64 `json:"propertyPrice" yaml:"propertyPrice" validate:"required,gt=0"`
	DownPayment        *float64 `json:"downPayment" yaml:"downPayment" validate:"required,gt=0"`
	AnnualInterestRate *float64 `json:"annualInterestRate" yaml:"annualInterestRate" validate:"required,gte=0,lte=100"`
	AmortizationPeriod *int     `json:"amortizationPeriod" yaml:"amortizationPeriod" validate:"required,gte=5,lte=30,step=5"`
	PaymentSchedule    string   `json:"paymentSchedule" yaml:"paymentSchedule" validate:"required,oneof=monthly biweekly accelerated-biweekly"`
	IsFirstTimeBuyer   bool     `json:"isFirstTimeBuyer" yaml:"isFirstTimeBuyer"`
	IsNewConstruction  bool     `json:"isNewConstruction" yaml:"isNewConstruction"`
	DownPaymentSource  string   `json:"downPaymentSource,omitempty" yaml:"downPaymentSource,omitempty" validate:"omitempty,oneof=traditional non-traditional"`
	EmploymentType     string   `json:"employmentType,omitempty" yaml:"employmentType,omitempty" validate:"omitempty,oneof=regular self-employed-non-verified"`
}

// FieldError describes one schema violation.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// SchemaError collects every schema violation found in a payload.
type SchemaError struct {
	Fields []FieldError
}

func (e *SchemaError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + ": " + f.Message
	}
	return "invalid request: " + strings.Join(parts, "; ")
}

// Validate checks p against the request schema.
func (p MortgagePayload) Validate() error {
	return structErrors(validate.Struct(p))
}

// ToRequest validates p and converts it into a mortgage.Request, filling in
// the default down payment source and employment type.
func (p MortgagePayload) ToRequest() (mortgage.Request, error) {
	if err := p.Validate(); err != nil {
		return mortgage.Request{}, err
	}

	schedule, err := mortgage.ParsePaymentSchedule(p.PaymentSchedule)
	if err != nil {
		return mortgage.Request{}, err
	}
	source, err := mortgage.ParseDownPaymentSource(p.DownPaymentSource)
	if err != nil {
		return mortgage.Request{}, err
	}
	employment, err := mortgage.ParseEmploymentType(p.EmploymentType)
	if err != nil {
		return mortgage.Request{}, err
	}

	return mortgage.Request{
		PropertyPrice:      decimal.NewFromFloat(*p.PropertyPrice),
		DownPayment:        decimal.NewFromFloat(*p.DownPayment),
		AnnualInterestRate: decimal.NewFromFloat(*p.AnnualInterestRate),
		AmortizationPeriod: *p.AmortizationPeriod,
		PaymentSchedule:    schedule,
		IsFirstTimeBuyer:   p.IsFirstTimeBuyer,
		IsNewConstruction:  p.IsNewConstruction,
		DownPaymentSource:  source,
		EmploymentType:     employment,
	}, nil
}

// PayloadFromRequest renders req in wire form.
func PayloadFromRequest(req mortgage.Request) MortgagePayload {
	price := req.PropertyPrice.InexactFloat64()
	downPayment := req.DownPayment.InexactFloat64()
	rate := req.AnnualInterestRate.InexactFloat64()
	years := req.AmortizationPeriod
	return MortgagePayload{
		PropertyPrice:      &price,
		DownPayment:        &downPayment,
		AnnualInterestRate: &rate,
		AmortizationPeriod: &years,
		PaymentSchedule:    string(req.PaymentSchedule),
		IsFirstTimeBuyer:   req.IsFirstTimeBuyer,
		IsNewConstruction:  req.IsNewConstruction,
		DownPaymentSource:  string(req.DownPaymentSource),
		EmploymentType:     string(req.EmploymentType),
	}
}

// DownPaymentPayload is the wire form of a standalone down payment check.
type DownPaymentPayload struct {
	PropertyPrice  *float64 `json:"propertyPrice" validate:"required,gt=0"`
	DownPayment    *float64 `json:"downPayment" validate:"required,gt=0"`
	EmploymentType string   `json:"employmentType,omitempty" validate:"omitempty,oneof=regular self-employed-non-verified"`
}

// DownPaymentCheck is a validated DownPaymentPayload.
type DownPaymentCheck struct {
	PropertyPrice  decimal.Decimal
	DownPayment    decimal.Decimal
	EmploymentType mortgage.EmploymentType
}

// ToCheck validates p. A missing price or down payment yields a SchemaError
// whose single entry carries MissingDownPaymentFields.
func (p DownPaymentPayload) ToCheck() (DownPaymentCheck, error) {
	if p.PropertyPrice == nil || p.DownPayment == nil {
		return DownPaymentCheck{}, &SchemaError{Fields: []FieldError{{Field: "request", Message: MissingDownPaymentFields}}}
	}
	if err := structErrors(validate.Struct(p)); err != nil {
		return DownPaymentCheck{}, err
	}
	employment, err := mortgage.ParseEmploymentType(p.EmploymentType)
	if err != nil {
		return DownPaymentCheck{}, err
	}
	return DownPaymentCheck{
		PropertyPrice:  decimal.NewFromFloat(*p.PropertyPrice),
		DownPayment:    decimal.NewFromFloat(*p.DownPayment),
		EmploymentType: employment,
	}, nil
}

func structErrors(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("failed to validate request: %w", err)
	}
	fields := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, FieldError{Field: fe.Field(), Message: message(fe)})
	}
	return &SchemaError{Fields: fields}
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	case "step":
		return "must be a multiple of " + fe.Param()
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	}
	return "failed " + fe.Tag() + " validation"
}
