package mortgage

import (
	"fmt"

	"github.com/iwvelando/mortgage-calculator/pkg/format"
	"github.com/iwvelando/mortgage-calculator/pkg/mathutil"
	"github.com/shopspring/decimal"
)

// MinimumDownPayment returns the smallest down payment the tiered rule
// accepts for price: MinDownPaymentPercent of the first TierThreshold plus
// TieredDownPaymentPercent of the remainder.
func (rs RuleSet) MinimumDownPayment(price decimal.Decimal) decimal.Decimal {
	if price.LessThanOrEqual(rs.TierThreshold) {
		return mathutil.ApplyPercentage(price, rs.MinDownPaymentPercent)
	}
	first := mathutil.ApplyPercentage(rs.TierThreshold, rs.MinDownPaymentPercent)
	rest := mathutil.ApplyPercentage(price.Sub(rs.TierThreshold), rs.TieredDownPaymentPercent)
	return first.Add(rest)
}

// Validate checks a request against the eligibility rules. It returns nil
// when the request may proceed, otherwise the first rule that failed.
func (rs RuleSet) Validate(req Request) *Rejection {
	if rej := rs.ValidateDownPayment(req.PropertyPrice, req.DownPayment, req.EmploymentType); rej != nil {
		return rej
	}

	if req.AmortizationPeriod > rs.MaxAmortizationYears && !(req.IsFirstTimeBuyer || req.IsNewConstruction) {
		return &Rejection{
			Rule: RuleMaxAmortization,
			Reason: fmt.Sprintf("Maximum amortization period is %d years unless first-time buyer or new construction",
				rs.MaxAmortizationYears),
		}
	}

	return nil
}

// ValidateDownPayment applies the down payment rules alone, in precedence
// order. The amortization rule is left to Validate.
func (rs RuleSet) ValidateDownPayment(price, downPayment decimal.Decimal, employment EmploymentType) *Rejection {
	pct := mathutil.CalculatePercentage(downPayment, price)

	if rs.EnforceInsurableCeiling && price.GreaterThan(rs.MaxInsurablePropertyValue) {
		return &Rejection{
			Rule: RuleInsurableCeiling,
			Reason: fmt.Sprintf("Property price exceeds maximum insurable property value of %s",
				format.WholeCurrency(rs.MaxInsurablePropertyValue)),
		}
	}

	if downPayment.GreaterThan(price) {
		return &Rejection{
			Rule:   RuleDownPaymentExceedsPrice,
			Reason: "Down payment cannot exceed property price",
		}
	}

	if employment == SelfEmployedNonVerified && pct.LessThan(rs.SelfEmployedMinimumPercent) {
		return &Rejection{
			Rule: RuleSelfEmployedMinimum,
			Reason: fmt.Sprintf("Self-employed with unverifiable income requires minimum %s%% down payment",
				rs.SelfEmployedMinimumPercent),
		}
	}

	if price.GreaterThan(rs.MaxInsurablePropertyValue) && pct.LessThan(rs.UninsuredPercent) {
		return &Rejection{
			Rule: RuleHighValueMinimum,
			Reason: fmt.Sprintf("Properties over %s require minimum %s%% down payment",
				format.WholeCurrency(rs.MaxInsurablePropertyValue), rs.UninsuredPercent),
		}
	}

	if price.GreaterThan(rs.TierThreshold) {
		minimum := rs.MinimumDownPayment(price)
		if downPayment.LessThan(minimum) {
			return &Rejection{
				Rule: RuleTieredMinimum,
				Reason: fmt.Sprintf("Tiered minimum down payment not met: homes over %s require %s%% of the first %s and %s%% of the remaining amount (%s)",
					format.WholeCurrency(rs.TierThreshold), rs.MinDownPaymentPercent, format.WholeCurrency(rs.TierThreshold),
					rs.TieredDownPaymentPercent, format.Currency(minimum)),
			}
		}
		return nil
	}

	if pct.LessThan(rs.MinDownPaymentPercent) {
		return &Rejection{
			Rule:   RuleMinimumDownPayment,
			Reason: fmt.Sprintf("Minimum down payment must be %s%% of property price", rs.MinDownPaymentPercent),
		}
	}

	return nil
}
