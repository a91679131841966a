// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/iwvelando/mortgage-calculator/pkg/mortgage"
	"github.com/shopspring/decimal"
)

// Dec parses a decimal literal and panics on malformed input.
func Dec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

// BaseRequest returns a 500,000 purchase with 20% down at 5% over 25 years,
// paid monthly by a regular borrower with traditional funds.
func BaseRequest() mortgage.Request {
	return mortgage.Request{
		PropertyPrice:      Dec("500000"),
		DownPayment:        Dec("100000"),
		AnnualInterestRate: Dec("5"),
		AmortizationPeriod: 25,
		PaymentSchedule:    mortgage.Monthly,
		DownPaymentSource:  mortgage.Traditional,
		EmploymentType:     mortgage.Regular,
	}
}

// RequestWith returns BaseRequest modified by each option in order.
func RequestWith(opts ...func(*mortgage.Request)) mortgage.Request {
	req := BaseRequest()
	for _, opt := range opts {
		opt(&req)
	}
	return req
}

// Price sets the property price and down payment.
func Price(price, downPayment string) func(*mortgage.Request) {
	return func(r *mortgage.Request) {
		r.PropertyPrice = Dec(price)
		r.DownPayment = Dec(downPayment)
	}
}

// Rate sets the annual interest rate in percent.
func Rate(percent string) func(*mortgage.Request) {
	return func(r *mortgage.Request) {
		r.AnnualInterestRate = Dec(percent)
	}
}

// Years sets the amortization period.
func Years(years int) func(*mortgage.Request) {
	return func(r *mortgage.Request) {
		r.AmortizationPeriod = years
	}
}

// Schedule sets the payment schedule.
func Schedule(schedule mortgage.PaymentSchedule) func(*mortgage.Request) {
	return func(r *mortgage.Request) {
		r.PaymentSchedule = schedule
	}
}

// FirstTimeBuyer marks the borrower as a first-time buyer.
func FirstTimeBuyer(r *mortgage.Request) {
	r.IsFirstTimeBuyer = true
}

// NewConstruction marks the property as newly constructed.
func NewConstruction(r *mortgage.Request) {
	r.IsNewConstruction = true
}

// SelfEmployed marks the borrower as self-employed without verified income.
func SelfEmployed(r *mortgage.Request) {
	r.EmploymentType = mortgage.SelfEmployedNonVerified
}

// NonTraditionalFunds marks the down payment as coming from non-traditional sources.
func NonTraditionalFunds(r *mortgage.Request) {
	r.DownPaymentSource = mortgage.NonTraditional
}
