package mortgage

import (
	"fmt"

	"github.com/iwvelando/mortgage-calculator/pkg/constants"
	"github.com/shopspring/decimal"
)

// PremiumFactors are the request attributes that decide the premium rate.
type PremiumFactors struct {
	DownPaymentPercentage decimal.Decimal
	AmortizationPeriod    int
	IsFirstTimeBuyer      bool
	IsNewConstruction     bool
	DownPaymentSource     DownPaymentSource
	EmploymentType        EmploymentType
}

// PremiumFactorsFor extracts the premium factors from a request.
func PremiumFactorsFor(req Request, downPaymentPercentage decimal.Decimal) PremiumFactors {
	return PremiumFactors{
		DownPaymentPercentage: downPaymentPercentage,
		AmortizationPeriod:    req.AmortizationPeriod,
		IsFirstTimeBuyer:      req.IsFirstTimeBuyer,
		IsNewConstruction:     req.IsNewConstruction,
		DownPaymentSource:     req.DownPaymentSource,
		EmploymentType:        req.EmploymentType,
	}
}

// PremiumRate selects the insurance premium rate, as a fraction of the
// mortgage before insurance. Band edges are inclusive at 10, 15 and 20
// percent. Extended amortization for first-time buyers or new construction
// adds ExtendedAmortizationSurcharge to any insured rate.
func (rs RuleSet) PremiumRate(f PremiumFactors) (decimal.Decimal, error) {
	pct := f.DownPaymentPercentage
	if pct.GreaterThanOrEqual(rs.UninsuredPercent) {
		return decimal.Zero, nil
	}

	mid := decimal.NewFromInt(constants.MidPremiumBandPercent)
	high := decimal.NewFromInt(constants.HighPremiumBandPercent)

	var rate decimal.Decimal
	switch {
	case f.EmploymentType == SelfEmployedNonVerified:
		if pct.LessThan(rs.SelfEmployedMinimumPercent) {
			return decimal.Zero, fmt.Errorf("%w: self-employed premium requested with %s%% down, below the %s%% minimum",
				ErrInvalidState, pct, rs.SelfEmployedMinimumPercent)
		}
		if pct.GreaterThanOrEqual(high) {
			rate = rs.Premiums.SelfEmployed.High
		} else {
			rate = rs.Premiums.SelfEmployed.Mid
		}
	case f.DownPaymentSource == NonTraditional && pct.LessThan(mid):
		rate = rs.Premiums.NonTraditional.Low
	default:
		switch {
		case pct.GreaterThanOrEqual(high):
			rate = rs.Premiums.Regular.High
		case pct.GreaterThanOrEqual(mid):
			rate = rs.Premiums.Regular.Mid
		default:
			rate = rs.Premiums.Regular.Low
		}
	}

	if f.AmortizationPeriod > rs.MaxAmortizationYears && (f.IsFirstTimeBuyer || f.IsNewConstruction) {
		rate = rate.Add(rs.ExtendedAmortizationSurcharge)
	}

	return rate, nil
}
