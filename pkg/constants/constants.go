// Package constants provides shared constants for the mortgage-calculator application.
package constants

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// BiweeklyPaymentsPerYear is the number of biweekly payments in a year
	BiweeklyPaymentsPerYear = 26

	// CurrencyPlaces is the number of decimal places kept for currency amounts
	CurrencyPlaces = 2

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100
)

// Insurance program thresholds. These are served verbatim by the rules
// endpoint, so they must stay in step with the eligibility rules.
const (
	// MaxInsurablePropertyValue is the insurance program ceiling
	MaxInsurablePropertyValue = 1500000

	// TieredDownPaymentThreshold is the price above which the second down payment tier applies
	TieredDownPaymentThreshold = 500000

	// MinDownPaymentPercent is the minimum down payment on the first tier
	MinDownPaymentPercent = 5

	// TieredDownPaymentPercent is the minimum down payment on the portion above the first tier
	TieredDownPaymentPercent = 10

	// SelfEmployedMinDownPaymentPercent is the minimum for self-employed borrowers without verified income
	SelfEmployedMinDownPaymentPercent = 10

	// MidPremiumBandPercent is the lower edge of the 10% to 14.99% premium band
	MidPremiumBandPercent = 10

	// HighPremiumBandPercent is the lower edge of the 15% to 19.99% premium band
	HighPremiumBandPercent = 15

	// UninsuredDownPaymentPercent is the down payment at which no insurance is required
	UninsuredDownPaymentPercent = 20

	// MaxAmortizationYears is the longest amortization for a regular borrower
	MaxAmortizationYears = 25

	// MaxExtendedAmortizationYears is the longest amortization for first-time buyers or new construction
	MaxExtendedAmortizationYears = 30
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the JSON output format
	OutputFormatJSON = "json"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// ExampleConfigFile is the example configuration file name
	ExampleConfigFile = "config.yaml.example"

	// DefaultEnvFile is the optional dotenv file read at startup
	DefaultEnvFile = ".env"

	// EnvPrefix prefixes environment overrides, e.g. MORTGAGE_SERVER_ADDRESS
	EnvPrefix = "MORTGAGE"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address
	DefaultServerAddress = ":8080"

	// DefaultMaxBodySizeBytes is the default maximum request body size (64 KB)
	DefaultMaxBodySizeBytes int64 = 64 * 1024

	// DefaultVersion is reported by the version endpoint when none is configured
	DefaultVersion = "dev"
)
