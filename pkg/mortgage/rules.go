package mortgage

import (
	"github.com/iwvelando/mortgage-calculator/pkg/constants"
	"github.com/shopspring/decimal"
)

// PremiumBands holds premium rates, as fractions of the loan, for the three
// insured down payment bands.
type PremiumBands struct {
	Low  decimal.Decimal // 5% to 9.99%
	Mid  decimal.Decimal // 10% to 14.99%
	High decimal.Decimal // 15% to 19.99%
}

// PremiumRates is the insurance premium rate table by borrower category.
type PremiumRates struct {
	Regular        PremiumBands
	NonTraditional PremiumBands
	// SelfEmployed.Low is never charged: self-employed borrowers without
	// verified income need at least 10% down.
	SelfEmployed PremiumBands
}

// RuleSet is the read-only insurance program configuration shared by the
// eligibility rules, the premium rate selector and the rules document.
type RuleSet struct {
	MaxInsurablePropertyValue decimal.Decimal

	// EnforceInsurableCeiling rejects every property above
	// MaxInsurablePropertyValue. When false such properties are accepted
	// with at least UninsuredPercent down.
	EnforceInsurableCeiling bool

	TierThreshold              decimal.Decimal
	MinDownPaymentPercent      decimal.Decimal
	TieredDownPaymentPercent   decimal.Decimal
	SelfEmployedMinimumPercent decimal.Decimal
	UninsuredPercent           decimal.Decimal

	MaxAmortizationYears          int
	MaxExtendedAmortizationYears  int
	ExtendedAmortizationSurcharge decimal.Decimal

	Premiums PremiumRates
}

// DefaultRules returns the standard program rules. Each call returns a new
// value so callers cannot alter another caller's rules.
func DefaultRules() RuleSet {
	return RuleSet{
		MaxInsurablePropertyValue: decimal.NewFromInt(constants.MaxInsurablePropertyValue),

		TierThreshold:              decimal.NewFromInt(constants.TieredDownPaymentThreshold),
		MinDownPaymentPercent:      decimal.NewFromInt(constants.MinDownPaymentPercent),
		TieredDownPaymentPercent:   decimal.NewFromInt(constants.TieredDownPaymentPercent),
		SelfEmployedMinimumPercent: decimal.NewFromInt(constants.SelfEmployedMinDownPaymentPercent),
		UninsuredPercent:           decimal.NewFromInt(constants.UninsuredDownPaymentPercent),

		MaxAmortizationYears:          constants.MaxAmortizationYears,
		MaxExtendedAmortizationYears:  constants.MaxExtendedAmortizationYears,
		ExtendedAmortizationSurcharge: decimal.RequireFromString("0.0020"),

		Premiums: PremiumRates{
			Regular: PremiumBands{
				Low:  decimal.RequireFromString("0.0400"),
				Mid:  decimal.RequireFromString("0.0310"),
				High: decimal.RequireFromString("0.0280"),
			},
			NonTraditional: PremiumBands{
				Low:  decimal.RequireFromString("0.0450"),
				Mid:  decimal.RequireFromString("0.0310"),
				High: decimal.RequireFromString("0.0280"),
			},
			SelfEmployed: PremiumBands{
				Mid:  decimal.RequireFromString("0.0475"),
				High: decimal.RequireFromString("0.0290"),
			},
		},
	}
}
