// Package output provides utilities for formatting and displaying calculation results.
package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/iwvelando/mortgage-calculator/pkg/constants"
	"github.com/iwvelando/mortgage-calculator/pkg/format"
	"github.com/iwvelando/mortgage-calculator/pkg/mortgage"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ResultDocument is the wire form of a mortgage.Result. Each amount is the
// exact decimal text of the result, so totalMortgage still equals
// mortgageBeforeInsurance + insuranceAmount on the wire.
type ResultDocument struct {
	DownPaymentPercentage   json.Number `json:"downPaymentPercentage"`
	MortgageBeforeInsurance json.Number `json:"mortgageBeforeInsurance"`
	InsurancePremiumRate    json.Number `json:"insurancePremiumRate"`
	InsuranceAmount         json.Number `json:"insuranceAmount"`
	TotalMortgage           json.Number `json:"totalMortgage"`
	PaymentAmount           json.Number `json:"paymentAmount"`
}

// NewResultDocument converts res into its wire form.
func NewResultDocument(res mortgage.Result) ResultDocument {
	return ResultDocument{
		DownPaymentPercentage:   json.Number(res.DownPaymentPercentage.String()),
		MortgageBeforeInsurance: json.Number(res.MortgageBeforeInsurance.String()),
		InsurancePremiumRate:    json.Number(res.InsurancePremiumRate.String()),
		InsuranceAmount:         json.Number(res.InsuranceAmount.String()),
		TotalMortgage:           json.Number(res.TotalMortgage.String()),
		PaymentAmount:           json.Number(res.PaymentAmount.String()),
	}
}

// Write renders res for req in the named output format.
func Write(w io.Writer, outputFormat string, req mortgage.Request, res mortgage.Result) error {
	switch outputFormat {
	case constants.OutputFormatPretty:
		return PrettyFormat(w, req, res)
	case constants.OutputFormatCSV:
		return CsvFormat(w, req, res)
	case constants.OutputFormatJSON:
		return JSONFormat(w, res)
	}
	return fmt.Errorf("unsupported output format %q", outputFormat)
}

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(w io.Writer, req mortgage.Request, res mortgage.Result) error {
	p := message.NewPrinter(language.English)
	money := func(amount decimal.Decimal) string {
		return p.Sprintf("$%.2f", amount.InexactFloat64())
	}
	rows := []struct {
		label string
		value string
	}{
		{"Property price", money(req.PropertyPrice)},
		{"Down payment", money(req.DownPayment)},
		{"Down payment percentage", format.Percent(res.DownPaymentPercentage)},
		{"Mortgage before insurance", money(res.MortgageBeforeInsurance)},
		{"Insurance premium rate", format.RateAsPercent(res.InsurancePremiumRate)},
		{"Insurance premium", money(res.InsuranceAmount)},
		{"Total mortgage", money(res.TotalMortgage)},
		{paymentLabel(req.PaymentSchedule), money(res.PaymentAmount)},
	}

	if _, err := fmt.Fprintf(w, "--- Mortgage over %d years at %s%% ---\n", req.AmortizationPeriod, req.AnnualInterestRate); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%-29s | %s\n%-29s | %s\n", "Item", "Amount", "____", "______"); err != nil {
		return err
	}
	for _, row := range rows {
		if _, err := fmt.Fprintf(w, "%-29s | %s\n", row.label, row.value); err != nil {
			return err
		}
	}
	return nil
}

// CsvFormat outputs in comma-separated value format.
func CsvFormat(w io.Writer, req mortgage.Request, res mortgage.Result) error {
	rows := [][2]string{
		{"propertyPrice", req.PropertyPrice.String()},
		{"downPayment", req.DownPayment.String()},
		{"annualInterestRate", req.AnnualInterestRate.String()},
		{"amortizationPeriod", fmt.Sprint(req.AmortizationPeriod)},
		{"paymentSchedule", string(req.PaymentSchedule)},
		{"downPaymentPercentage", res.DownPaymentPercentage.StringFixed(4)},
		{"mortgageBeforeInsurance", res.MortgageBeforeInsurance.StringFixed(constants.CurrencyPlaces)},
		{"insurancePremiumRate", res.InsurancePremiumRate.StringFixed(4)},
		{"insuranceAmount", res.InsuranceAmount.StringFixed(constants.CurrencyPlaces)},
		{"totalMortgage", res.TotalMortgage.StringFixed(constants.CurrencyPlaces)},
		{"paymentAmount", res.PaymentAmount.StringFixed(constants.CurrencyPlaces)},
	}

	if _, err := fmt.Fprintf(w, `"field","value"`+"\n"); err != nil {
		return err
	}
	for _, row := range rows {
		if _, err := fmt.Fprintf(w, `"%s","%s"`+"\n", row[0], row[1]); err != nil {
			return err
		}
	}
	return nil
}

// JSONFormat outputs the result document as indented JSON.
func JSONFormat(w io.Writer, res mortgage.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewResultDocument(res))
}

func paymentLabel(schedule mortgage.PaymentSchedule) string {
	switch schedule {
	case mortgage.Biweekly:
		return "Bi-weekly payment"
	case mortgage.AcceleratedBiweekly:
		return "Accelerated bi-weekly payment"
	}
	return "Monthly payment"
}
