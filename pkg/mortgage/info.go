package mortgage

import (
	"fmt"

	"github.com/iwvelando/mortgage-calculator/pkg/constants"
	"github.com/iwvelando/mortgage-calculator/pkg/format"
	"github.com/iwvelando/mortgage-calculator/pkg/mathutil"
	"github.com/shopspring/decimal"
)

// Info documents the premium rate table and program thresholds. Rates are
// percentages (4.00 means 4% of the loan).
type Info struct {
	PremiumRates PremiumRateTable `json:"premiumRates" yaml:"premiumRates"`
	Rules        RulesSummary     `json:"rules" yaml:"rules"`
}

// PremiumRateTable maps a down payment band label such as "10-14.99" to a
// premium percentage, per borrower category.
type PremiumRateTable struct {
	Regular        map[string]float64 `json:"regular" yaml:"regular"`
	NonTraditional map[string]float64 `json:"nonTraditional" yaml:"nonTraditional"`
	SelfEmployed   map[string]float64 `json:"selfEmployed" yaml:"selfEmployed"`
}

// RulesSummary lists the thresholds the eligibility rules enforce.
type RulesSummary struct {
	MaxPropertyValue        float64                   `json:"maxPropertyValue" yaml:"maxPropertyValue"`
	EnforceInsurableCeiling bool                      `json:"enforceInsurableCeiling" yaml:"enforceInsurableCeiling"`
	MinDownPaymentRules     MinDownPaymentRules       `json:"minDownPaymentRules" yaml:"minDownPaymentRules"`
	MaxAmortization         MaxAmortization           `json:"maxAmortization" yaml:"maxAmortization"`
	ExtendedAmortization    ExtendedAmortizationRules `json:"extendedAmortization" yaml:"extendedAmortization"`
}

// MinDownPaymentRules describes the minimum down payment per price band.
type MinDownPaymentRules struct {
	UpTo500k        string `json:"upTo500k" yaml:"upTo500k"`
	Over500kTo1500k string `json:"over500kTo1500k" yaml:"over500kTo1500k"`
	Over1500k       string `json:"over1500k" yaml:"over1500k"`
}

// MaxAmortization holds the longest amortization per borrower category, in years.
type MaxAmortization struct {
	Regular                         int `json:"regular" yaml:"regular"`
	FirstTimeBuyerOrNewConstruction int `json:"firstTimeBuyerOrNewConstruction" yaml:"firstTimeBuyerOrNewConstruction"`
}

// ExtendedAmortizationRules describes who may amortize past the regular
// maximum and the premium surcharge, in percent, they pay for it.
type ExtendedAmortizationRules struct {
	Eligibility       []string `json:"eligibility" yaml:"eligibility"`
	AdditionalPremium float64  `json:"additionalPremium" yaml:"additionalPremium"`
}

// Info renders the rule set as a document.
func (rs RuleSet) Info() Info {
	low := rs.MinDownPaymentPercent
	mid := decimal.NewFromInt(constants.MidPremiumBandPercent)
	high := decimal.NewFromInt(constants.HighPremiumBandPercent)
	top := rs.UninsuredPercent

	lowBand := bandLabel(low, mid)
	midBand := bandLabel(mid, high)
	highBand := bandLabel(high, top)
	uninsured := top.String() + "+"

	return Info{
		PremiumRates: PremiumRateTable{
			Regular: map[string]float64{
				lowBand:   percent(rs.Premiums.Regular.Low),
				midBand:   percent(rs.Premiums.Regular.Mid),
				highBand:  percent(rs.Premiums.Regular.High),
				uninsured: 0,
			},
			NonTraditional: map[string]float64{
				lowBand:   percent(rs.Premiums.NonTraditional.Low),
				midBand:   percent(rs.Premiums.NonTraditional.Mid),
				highBand:  percent(rs.Premiums.NonTraditional.High),
				uninsured: 0,
			},
			SelfEmployed: map[string]float64{
				midBand:   percent(rs.Premiums.SelfEmployed.Mid),
				highBand:  percent(rs.Premiums.SelfEmployed.High),
				uninsured: 0,
			},
		},
		Rules: RulesSummary{
			MaxPropertyValue:        rs.MaxInsurablePropertyValue.InexactFloat64(),
			EnforceInsurableCeiling: rs.EnforceInsurableCeiling,
			MinDownPaymentRules: MinDownPaymentRules{
				UpTo500k: fmt.Sprintf("%s%% of purchase price", low),
				Over500kTo1500k: fmt.Sprintf("%s%% of first %s + %s%% of remaining",
					low, format.WholeCurrency(rs.TierThreshold), rs.TieredDownPaymentPercent),
				Over1500k: fmt.Sprintf("%s%% of purchase price", rs.UninsuredPercent),
			},
			MaxAmortization: MaxAmortization{
				Regular:                         rs.MaxAmortizationYears,
				FirstTimeBuyerOrNewConstruction: rs.MaxExtendedAmortizationYears,
			},
			ExtendedAmortization: ExtendedAmortizationRules{
				Eligibility:       []string{"first-time-buyer", "new-construction"},
				AdditionalPremium: percent(rs.ExtendedAmortizationSurcharge),
			},
		},
	}
}

// bandLabel names the half-open band [from, to) as "from-(to-0.01)".
func bandLabel(from, to decimal.Decimal) string {
	return from.String() + "-" + to.Sub(decimal.New(1, -2)).String()
}

func percent(fraction decimal.Decimal) float64 {
	return mathutil.FractionToPercent(fraction).InexactFloat64()
}

// SampleRequest returns an example first-time buyer request: a 600,000
// purchase with 50,000 down at 5.99% over 25 years, paid monthly.
func SampleRequest() Request {
	return Request{
		PropertyPrice:      decimal.NewFromInt(600000),
		DownPayment:        decimal.NewFromInt(50000),
		AnnualInterestRate: decimal.RequireFromString("5.99"),
		AmortizationPeriod: 25,
		PaymentSchedule:    Monthly,
		IsFirstTimeBuyer:   true,
		DownPaymentSource:  Traditional,
		EmploymentType:     Regular,
	}
}
