package mortgage

import (
	"fmt"
	"math"

	"github.com/iwvelando/mortgage-calculator/pkg/constants"
	"github.com/iwvelando/mortgage-calculator/pkg/mathutil"
	"github.com/shopspring/decimal"
)

// PaymentsPerYear returns the number of payments a schedule makes each year.
// Accelerated biweekly shares the biweekly cadence; the acceleration is
// applied to the payment amount afterwards.
func PaymentsPerYear(schedule PaymentSchedule) (int, error) {
	switch schedule {
	case Monthly:
		return constants.MonthsPerYear, nil
	case Biweekly, AcceleratedBiweekly:
		return constants.BiweeklyPaymentsPerYear, nil
	default:
		return 0, fmt.Errorf("%w: invalid payment schedule %q", ErrInvalidArgument, schedule)
	}
}

// Amortize calculates the periodic payment for a loan using the standard
// amortization formula, rounded to cents with halves away from zero.
func Amortize(principal, annualRatePercent decimal.Decimal, amortizationYears int, schedule PaymentSchedule) (decimal.Decimal, error) {
	paymentsPerYear, err := PaymentsPerYear(schedule)
	if err != nil {
		return decimal.Zero, err
	}
	if amortizationYears <= 0 {
		return decimal.Zero, fmt.Errorf("%w: amortization period must be positive, got %d", ErrInvalidArgument, amortizationYears)
	}

	totalPayments := paymentsPerYear * amortizationYears
	periodicRate := mathutil.PercentToFraction(annualRatePercent).InexactFloat64() / float64(paymentsPerYear)

	var payment decimal.Decimal
	if periodicRate == 0 {
		// For zero interest, simply divide the principal by the number of payments
		payment = principal.Div(decimal.NewFromInt(int64(totalPayments)))
	} else {
		// P*r*(1+r)^n / ((1+r)^n - 1), rearranged as P*r / (1 - (1+r)^-n) with
		// log1p/expm1 so rates too small to change 1+r still approach P/n.
		discount := -math.Expm1(-float64(totalPayments) * math.Log1p(periodicRate))
		amount := principal.InexactFloat64() * periodicRate / discount
		if math.IsInf(amount, 0) || math.IsNaN(amount) {
			return decimal.Zero, fmt.Errorf("%w: payment is not finite for rate %s%%", ErrInvalidArgument, annualRatePercent)
		}
		payment = decimal.NewFromFloat(amount)
	}

	if schedule == AcceleratedBiweekly {
		// (12/24) * (26/12): half the monthly-equivalent amount, scaled to 26 payments
		payment = payment.
			Mul(decimal.NewFromInt(constants.BiweeklyPaymentsPerYear)).
			Div(decimal.NewFromInt(2 * constants.MonthsPerYear))
	}

	return mathutil.Round(payment), nil
}
