package mortgage

import (
	"fmt"

	"github.com/iwvelando/mortgage-calculator/pkg/mathutil"
	"github.com/shopspring/decimal"
)

// Calculator runs the eligibility, premium and amortization steps against a
// fixed RuleSet.
type Calculator struct {
	rules RuleSet
}

// NewCalculator returns a Calculator bound to rules.
func NewCalculator(rules RuleSet) *Calculator {
	return &Calculator{rules: rules}
}

// Rules returns a copy of the calculator's rule set.
func (c *Calculator) Rules() RuleSet {
	return c.rules
}

// Calculate validates req and, when it is eligible, prices the insurance and
// the periodic payment.
//
// A request that breaks a business rule yields an Outcome holding the
// Rejection and a nil error. A non-nil error means the request should never
// have reached the calculation (ErrInvalidArgument) or the steps were
// composed wrongly (ErrInvalidState); the Outcome is then empty.
func (c *Calculator) Calculate(req Request) (Outcome, error) {
	if err := req.checkEnums(); err != nil {
		return Outcome{}, err
	}

	if rej := c.rules.Validate(req); rej != nil {
		return Outcome{Rejection: rej}, nil
	}

	pct := mathutil.CalculatePercentage(req.DownPayment, req.PropertyPrice)
	beforeInsurance := req.PropertyPrice.Sub(req.DownPayment)

	rate, err := c.rules.PremiumRate(PremiumFactorsFor(req, pct))
	if err != nil {
		return Outcome{}, fmt.Errorf("failed to select premium rate: %w", err)
	}

	insurance := beforeInsurance.Mul(rate)
	total := beforeInsurance.Add(insurance)

	payment, err := Amortize(total, req.AnnualInterestRate, req.AmortizationPeriod, req.PaymentSchedule)
	if err != nil {
		return Outcome{}, fmt.Errorf("failed to amortize mortgage: %w", err)
	}

	return Outcome{
		Result: &Result{
			DownPaymentPercentage:   pct,
			MortgageBeforeInsurance: beforeInsurance,
			InsurancePremiumRate:    rate,
			InsuranceAmount:         insurance,
			TotalMortgage:           total,
			PaymentAmount:           payment,
		},
	}, nil
}

// CheckDownPayment applies the down payment rules alone and reports the down
// payment percentage alongside any rejection.
func (c *Calculator) CheckDownPayment(price, downPayment decimal.Decimal, employment EmploymentType) (decimal.Decimal, *Rejection, error) {
	if !employment.Valid() {
		return decimal.Zero, nil, fmt.Errorf("%w: employment type %q", ErrInvalidArgument, employment)
	}
	pct := mathutil.CalculatePercentage(downPayment, price)
	return pct, c.rules.ValidateDownPayment(price, downPayment, employment), nil
}
