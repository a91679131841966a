package mortgage

import "errors"

var (
	// ErrInvalidArgument marks input that should never reach the calculation,
	// such as an unknown payment schedule.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidState marks a broken internal invariant, such as selecting a
	// premium for a request the eligibility rules should have rejected.
	ErrInvalidState = errors.New("invalid state")
)

// Rule identifies the eligibility rule behind a Rejection.
type Rule string

const (
	RuleInsurableCeiling        Rule = "insurable-ceiling"
	RuleDownPaymentExceedsPrice Rule = "down-payment-exceeds-price"
	RuleSelfEmployedMinimum     Rule = "self-employed-minimum"
	RuleHighValueMinimum        Rule = "high-value-minimum"
	RuleTieredMinimum           Rule = "tiered-minimum"
	RuleMinimumDownPayment      Rule = "minimum-down-payment"
	RuleMaxAmortization         Rule = "max-amortization"
)

// Rejection is an expected business-rule refusal. It is user facing and
// carries exactly one reason: the first rule the request failed.
type Rejection struct {
	Rule   Rule   `json:"rule"`
	Reason string `json:"reason"`
}

func (r *Rejection) Error() string {
	return r.Reason
}
