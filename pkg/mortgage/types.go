// Package mortgage computes insured mortgage amounts and periodic payments.
//
// A calculation runs three steps in order: the eligibility rules check the
// down payment and amortization against the insurance program, the premium
// rate is selected from the program's rate table, and the insured total is
// amortized into a periodic payment. Every step is a pure function of its
// inputs; a Calculator may be shared between goroutines.
package mortgage

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// PaymentSchedule is the cadence of mortgage payments.
type PaymentSchedule string

const (
	Monthly             PaymentSchedule = "monthly"
	Biweekly            PaymentSchedule = "biweekly"
	AcceleratedBiweekly PaymentSchedule = "accelerated-biweekly"
)

// PaymentSchedules lists every supported schedule.
var PaymentSchedules = []PaymentSchedule{AcceleratedBiweekly, Biweekly, Monthly}

// Valid reports whether s is a supported schedule.
func (s PaymentSchedule) Valid() bool {
	switch s {
	case Monthly, Biweekly, AcceleratedBiweekly:
		return true
	}
	return false
}

// ParsePaymentSchedule converts a raw value into a PaymentSchedule.
func ParsePaymentSchedule(value string) (PaymentSchedule, error) {
	s := PaymentSchedule(value)
	if !s.Valid() {
		return "", fmt.Errorf("%w: payment schedule %q", ErrInvalidArgument, value)
	}
	return s, nil
}

// DownPaymentSource describes where the down payment funds come from.
type DownPaymentSource string

const (
	Traditional    DownPaymentSource = "traditional"
	NonTraditional DownPaymentSource = "non-traditional"
)

// Valid reports whether s is a supported source.
func (s DownPaymentSource) Valid() bool {
	return s == Traditional || s == NonTraditional
}

// ParseDownPaymentSource converts a raw value into a DownPaymentSource. An
// empty value selects Traditional.
func ParseDownPaymentSource(value string) (DownPaymentSource, error) {
	if value == "" {
		return Traditional, nil
	}
	s := DownPaymentSource(value)
	if !s.Valid() {
		return "", fmt.Errorf("%w: down payment source %q", ErrInvalidArgument, value)
	}
	return s, nil
}

// EmploymentType is the borrower's income category.
type EmploymentType string

const (
	Regular                 EmploymentType = "regular"
	SelfEmployedNonVerified EmploymentType = "self-employed-non-verified"
)

// Valid reports whether e is a supported employment type.
func (e EmploymentType) Valid() bool {
	return e == Regular || e == SelfEmployedNonVerified
}

// ParseEmploymentType converts a raw value into an EmploymentType. An empty
// value selects Regular.
func ParseEmploymentType(value string) (EmploymentType, error) {
	if value == "" {
		return Regular, nil
	}
	e := EmploymentType(value)
	if !e.Valid() {
		return "", fmt.Errorf("%w: employment type %q", ErrInvalidArgument, value)
	}
	return e, nil
}

// Request is a fully typed loan request. Range and enum checks happen before
// a Request is built; see the validation package.
type Request struct {
	PropertyPrice      decimal.Decimal
	DownPayment        decimal.Decimal
	AnnualInterestRate decimal.Decimal // percent, e.g. 5.25
	AmortizationPeriod int             // years
	PaymentSchedule    PaymentSchedule
	IsFirstTimeBuyer   bool
	IsNewConstruction  bool
	DownPaymentSource  DownPaymentSource
	EmploymentType     EmploymentType
}

func (r Request) checkEnums() error {
	if !r.PaymentSchedule.Valid() {
		return fmt.Errorf("%w: payment schedule %q", ErrInvalidArgument, r.PaymentSchedule)
	}
	if !r.DownPaymentSource.Valid() {
		return fmt.Errorf("%w: down payment source %q", ErrInvalidArgument, r.DownPaymentSource)
	}
	if !r.EmploymentType.Valid() {
		return fmt.Errorf("%w: employment type %q", ErrInvalidArgument, r.EmploymentType)
	}
	return nil
}

// Result is the outcome of a successful calculation.
type Result struct {
	DownPaymentPercentage   decimal.Decimal `json:"downPaymentPercentage"`
	MortgageBeforeInsurance decimal.Decimal `json:"mortgageBeforeInsurance"`
	InsurancePremiumRate    decimal.Decimal `json:"insurancePremiumRate"`
	InsuranceAmount         decimal.Decimal `json:"insuranceAmount"`
	TotalMortgage           decimal.Decimal `json:"totalMortgage"`
	PaymentAmount           decimal.Decimal `json:"paymentAmount"`
}

// Outcome carries either a Result or the Rejection that prevented one.
type Outcome struct {
	Result    *Result
	Rejection *Rejection
}

// Accepted reports whether the request passed the eligibility rules.
func (o Outcome) Accepted() bool {
	return o.Result != nil && o.Rejection == nil
}
