package mortgage_test

import (
	"sync"
	"testing"

	"github.com/iwvelando/mortgage-calculator/pkg/mortgage"
	"github.com/iwvelando/mortgage-calculator/pkg/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func calculate(t *testing.T, req mortgage.Request) mortgage.Outcome {
	t.Helper()
	outcome, err := mortgage.NewCalculator(mortgage.DefaultRules()).Calculate(req)
	require.NoError(t, err)
	return outcome
}

func TestCalculateUninsured(t *testing.T) {
	outcome := calculate(t, testutil.BaseRequest())
	require.True(t, outcome.Accepted())
	require.Nil(t, outcome.Rejection)

	res := outcome.Result
	assertDecimal(t, "20", res.DownPaymentPercentage)
	assertDecimal(t, "0", res.InsurancePremiumRate)
	assertDecimal(t, "0", res.InsuranceAmount)
	assertDecimal(t, "400000", res.MortgageBeforeInsurance)
	assertDecimal(t, "400000", res.TotalMortgage)
	// Standard formula, 400,000 at 5%/12 over 300 payments.
	assertDecimal(t, "2338.36", res.PaymentAmount)
}

func TestCalculateInsuredTenPercent(t *testing.T) {
	outcome := calculate(t, testutil.RequestWith(testutil.Price("500000", "50000")))
	require.True(t, outcome.Accepted())

	res := outcome.Result
	assertDecimal(t, "10", res.DownPaymentPercentage)
	assertDecimal(t, "0.0310", res.InsurancePremiumRate)
	assertDecimal(t, "450000", res.MortgageBeforeInsurance)
	assertDecimal(t, "13950", res.InsuranceAmount)
	assertDecimal(t, "463950", res.TotalMortgage)

	expected, err := mortgage.Amortize(res.TotalMortgage, testutil.Dec("5"), 25, mortgage.Monthly)
	require.NoError(t, err)
	assertDecimal(t, expected.String(), res.PaymentAmount)
	assertDecimal(t, "2712.21", res.PaymentAmount)
}

func TestCalculateRejectsTieredMinimum(t *testing.T) {
	outcome := calculate(t, testutil.RequestWith(testutil.Price("600000", "30000")))
	assert.False(t, outcome.Accepted())
	assert.Nil(t, outcome.Result)
	require.NotNil(t, outcome.Rejection)
	assert.Equal(t, mortgage.RuleTieredMinimum, outcome.Rejection.Rule)
}

func TestCalculateRejectsSelfEmployedBelowTenPercent(t *testing.T) {
	outcome := calculate(t, testutil.RequestWith(testutil.Price("500000", "45000"), testutil.SelfEmployed))
	assert.Nil(t, outcome.Result)
	require.NotNil(t, outcome.Rejection)
	assert.Contains(t, outcome.Rejection.Reason, "requires minimum 10% down payment")
}

func TestCalculateExtendedAmortizationSurcharge(t *testing.T) {
	outcome := calculate(t, testutil.RequestWith(
		testutil.Price("500000", "75000"),
		testutil.Years(30),
		testutil.FirstTimeBuyer,
	))
	require.True(t, outcome.Accepted())
	assertDecimal(t, "0.0300", outcome.Result.InsurancePremiumRate)
	assertDecimal(t, "12750", outcome.Result.InsuranceAmount)
	assertDecimal(t, "437750", outcome.Result.TotalMortgage)
	assertDecimal(t, "2349.94", outcome.Result.PaymentAmount)
}

func TestCalculateZeroInterest(t *testing.T) {
	outcome := calculate(t, testutil.RequestWith(testutil.Rate("0")))
	require.True(t, outcome.Accepted())
	assertDecimal(t, "1333.33", outcome.Result.PaymentAmount)

	for _, schedule := range mortgage.PaymentSchedules {
		outcome := calculate(t, testutil.RequestWith(testutil.Rate("0"), testutil.Schedule(schedule)))
		require.True(t, outcome.Accepted())

		perYear, err := mortgage.PaymentsPerYear(schedule)
		require.NoError(t, err)
		straightLine := outcome.Result.TotalMortgage.Div(decimal.NewFromInt(int64(perYear * 25)))
		if schedule == mortgage.AcceleratedBiweekly {
			straightLine = straightLine.Mul(decimal.NewFromInt(26)).Div(decimal.NewFromInt(24))
		}
		assert.True(t, straightLine.Round(2).Equal(outcome.Result.PaymentAmount),
			"%s: expected %s, got %s", schedule, straightLine.Round(2), outcome.Result.PaymentAmount)
	}
}

func TestCalculateInvalidSchedule(t *testing.T) {
	outcome, err := mortgage.NewCalculator(mortgage.DefaultRules()).
		Calculate(testutil.RequestWith(testutil.Schedule("weekly")))
	assert.ErrorIs(t, err, mortgage.ErrInvalidArgument)
	assert.Nil(t, outcome.Result)
	assert.Nil(t, outcome.Rejection)
}

func TestCalculateInvalidEnums(t *testing.T) {
	calc := mortgage.NewCalculator(mortgage.DefaultRules())

	req := testutil.BaseRequest()
	req.EmploymentType = "contractor"
	_, err := calc.Calculate(req)
	assert.ErrorIs(t, err, mortgage.ErrInvalidArgument)

	req = testutil.BaseRequest()
	req.DownPaymentSource = "lottery"
	_, err = calc.Calculate(req)
	assert.ErrorIs(t, err, mortgage.ErrInvalidArgument)
}

func TestCalculateSelfEmployedWithLoweredMinimum(t *testing.T) {
	rules := mortgage.DefaultRules()
	rules.SelfEmployedMinimumPercent = testutil.Dec("5")

	outcome, err := mortgage.NewCalculator(rules).
		Calculate(testutil.RequestWith(testutil.Price("500000", "30000"), testutil.SelfEmployed))
	require.NoError(t, err)
	require.True(t, outcome.Accepted())
	assertDecimal(t, "0.0475", outcome.Result.InsurancePremiumRate)
}

func TestCalculateInvariants(t *testing.T) {
	calc := mortgage.NewCalculator(mortgage.DefaultRules())

	downPayments := []string{"25000", "37500", "49999.99", "50000", "60000", "74999", "75000", "99999.99", "100000", "250000"}
	for _, dp := range downPayments {
		for _, schedule := range mortgage.PaymentSchedules {
			for _, opt := range []func(*mortgage.Request){testutil.FirstTimeBuyer, testutil.NonTraditionalFunds, testutil.SelfEmployed} {
				req := testutil.RequestWith(testutil.Price("500000", dp), testutil.Schedule(schedule), testutil.Years(30), opt)
				outcome, err := calc.Calculate(req)
				require.NoError(t, err)
				if !outcome.Accepted() {
					require.NotNil(t, outcome.Rejection)
					continue
				}
				res := outcome.Result
				assert.True(t, res.TotalMortgage.Equal(res.MortgageBeforeInsurance.Add(res.InsuranceAmount)),
					"total %s != %s + %s", res.TotalMortgage, res.MortgageBeforeInsurance, res.InsuranceAmount)
				assert.True(t, res.InsuranceAmount.Equal(res.MortgageBeforeInsurance.Mul(res.InsurancePremiumRate)))
				if res.DownPaymentPercentage.GreaterThanOrEqual(testutil.Dec("20")) {
					assert.True(t, res.InsurancePremiumRate.IsZero())
				}
				assert.True(t, res.PaymentAmount.IsPositive())
			}
		}
	}
}

func TestCalculateConcurrentUse(t *testing.T) {
	calc := mortgage.NewCalculator(mortgage.DefaultRules())
	req := testutil.RequestWith(testutil.Price("500000", "50000"))

	var wg sync.WaitGroup
	results := make([]decimal.Decimal, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			outcome, err := calc.Calculate(req)
			if err == nil && outcome.Accepted() {
				results[i] = outcome.Result.PaymentAmount
			}
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assertDecimal(t, "2712.21", got)
	}
}

func TestCheckDownPayment(t *testing.T) {
	calc := mortgage.NewCalculator(mortgage.DefaultRules())

	pct, rej, err := calc.CheckDownPayment(testutil.Dec("500000"), testutil.Dec("50000"), mortgage.Regular)
	require.NoError(t, err)
	assert.Nil(t, rej)
	assertDecimal(t, "10", pct)

	_, rej, err = calc.CheckDownPayment(testutil.Dec("500000"), testutil.Dec("10000"), mortgage.Regular)
	require.NoError(t, err)
	require.NotNil(t, rej)
	assert.Equal(t, mortgage.RuleMinimumDownPayment, rej.Rule)

	_, _, err = calc.CheckDownPayment(testutil.Dec("500000"), testutil.Dec("50000"), "freelance")
	assert.ErrorIs(t, err, mortgage.ErrInvalidArgument)
}
