package tax

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecomposeKnownAmounts(t *testing.T) {
	tests := []struct {
		name      string
		inclusive int64
		code      string
		want      Breakdown
	}{
		{"standard exact", 110, Standard, Breakdown{ExclusiveAmount: 100, TaxAmount: 10, InclusiveAmount: 110}},
		{"reduced exact", 108, Reduced, Breakdown{ExclusiveAmount: 100, TaxAmount: 8, InclusiveAmount: 108}},
		{"standard truncates", 111, Standard, Breakdown{ExclusiveAmount: 100, TaxAmount: 11, InclusiveAmount: 111}},
		{"three item basket", 350, Standard, Breakdown{ExclusiveAmount: 318, TaxAmount: 32, InclusiveAmount: 350}},
		{"zero", 0, Standard, Breakdown{}},
		{"one yen", 1, Reduced, Breakdown{ExclusiveAmount: 0, TaxAmount: 1, InclusiveAmount: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decompose(tt.inclusive, tt.code)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecomposeSumsBackToInclusive(t *testing.T) {
	for _, code := range Codes() {
		for amount := int64(0); amount <= 5000; amount++ {
			got, err := Decompose(amount, code)
			require.NoError(t, err)
			if got.ExclusiveAmount+got.TaxAmount != amount {
				t.Fatalf("code %s amount %d: %d + %d != %d", code, amount, got.ExclusiveAmount, got.TaxAmount, amount)
			}
			assert.Equal(t, amount, got.InclusiveAmount)
		}
	}
}

func TestDecomposeMatchesDecimalFloor(t *testing.T) {
	// Cross-check against Div + Floor on a large amount.
	amount := int64(987654321)
	got, err := Decompose(amount, Standard)
	require.NoError(t, err)

	want := decimal.NewFromInt(amount).Div(decimal.RequireFromString("1.10")).Floor().IntPart()
	assert.Equal(t, want, got.ExclusiveAmount)
}

func TestCompose(t *testing.T) {
	got, err := Compose(100, Standard)
	require.NoError(t, err)
	assert.Equal(t, Breakdown{ExclusiveAmount: 100, TaxAmount: 10, InclusiveAmount: 110}, got)

	got, err = Compose(99, Reduced)
	require.NoError(t, err)
	assert.Equal(t, Breakdown{ExclusiveAmount: 99, TaxAmount: 7, InclusiveAmount: 106}, got)

	got, err = Compose(0, Reduced)
	require.NoError(t, err)
	assert.Equal(t, Breakdown{}, got)
}

func TestComposeThenDecompose(t *testing.T) {
	// Exact when exclusive*rate is a whole yen.
	for _, x := range []int64{0, 100, 10000, 250, 1000000} {
		for _, code := range Codes() {
			composed, err := Compose(x, code)
			require.NoError(t, err)
			back, err := Decompose(composed.InclusiveAmount, code)
			require.NoError(t, err)
			assert.Equal(t, x, back.ExclusiveAmount, "code %s amount %d", code, x)
		}
	}

	// Otherwise the truncated tax can cost at most one yen on the way back.
	for _, x := range []int64{1, 99, 101, 9999} {
		for _, code := range Codes() {
			composed, err := Compose(x, code)
			require.NoError(t, err)
			back, err := Decompose(composed.InclusiveAmount, code)
			require.NoError(t, err)
			assert.LessOrEqual(t, back.ExclusiveAmount, x)
			assert.GreaterOrEqual(t, back.ExclusiveAmount, x-1)
		}
	}
}

func TestInvalidTaxCode(t *testing.T) {
	for _, amount := range []int64{0, 1, 110} {
		_, err := Decompose(amount, "99")
		assert.ErrorIs(t, err, ErrInvalidTaxCode)

		_, err = Compose(amount, "99")
		assert.ErrorIs(t, err, ErrInvalidTaxCode)
	}

	_, err := RateFor("")
	assert.ErrorIs(t, err, ErrInvalidTaxCode)
}

func TestNegativeAmount(t *testing.T) {
	_, err := Decompose(-1, Standard)
	assert.ErrorIs(t, err, ErrNegativeAmount)

	_, err = Compose(-1, Standard)
	assert.ErrorIs(t, err, ErrNegativeAmount)
}

func TestRateFor(t *testing.T) {
	rate, err := RateFor(Standard)
	require.NoError(t, err)
	assert.True(t, rate.Equal(decimal.RequireFromString("0.1")))

	rate, err = RateFor(Reduced)
	require.NoError(t, err)
	assert.True(t, rate.Equal(decimal.RequireFromString("0.08")))

	assert.Equal(t, []string{"08", "10"}, Codes())
}
