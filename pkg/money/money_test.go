package money_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/amirasaad/accountsystem/pkg/money"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Precision(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		cents   int64
		wantErr error
	}{
		{"whole number", "250", 25000, nil},
		{"two decimals", "1250.00", 125000, nil},
		{"one decimal", "99.9", 9990, nil},
		{"surrounding spaces", "  42.10\n", 4210, nil},
		{"rounds half up", "100.995", 10100, nil},
		{"rounds down", "100.994", 10099, nil},
		{"sub-cent rounds to zero", "0.004", 0, nil},
		{"negative", "-25.00", -2500, nil},
		{"negative rounds away from zero", "-0.005", -1, nil},
		{"exponent form", "1e3", 100000, nil},
		{"empty", "", 0, money.ErrInvalidAmount},
		{"non numeric", "abc", 0, money.ErrInvalidAmount},
		{"trailing garbage", "12.5x", 0, money.ErrInvalidAmount},
		{"too large", "1e30", 0, money.ErrAmountOverflow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := money.Parse(tt.input)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.cents, m.Cents())
		})
	}
}

func TestFromFloat(t *testing.T) {
	m, err := money.FromFloat(0.1 + 0.2)
	require.NoError(t, err)
	assert.Equal(t, int64(30), m.Cents())

	m, err = money.FromFloat(250.00)
	require.NoError(t, err)
	assert.Equal(t, money.MustParse("250.00"), m)

	for _, f := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := money.FromFloat(f)
		assert.ErrorIs(t, err, money.ErrInvalidAmount)
	}
}

func TestMoney_Sign(t *testing.T) {
	assert := assert.New(t)

	assert.True(money.MustParse("0.01").IsPositive())
	assert.True(money.Zero.IsZero())
	assert.False(money.Zero.IsPositive())
	assert.False(money.Zero.IsNegative())
	assert.True(money.MustParse("-0.01").IsNegative())
	assert.True(money.MustParse("0.001").IsZero(), "sub-cent values collapse to zero")
}

func TestMoney_Arithmetic(t *testing.T) {
	a := money.MustParse("1000.00")
	b := money.MustParse("250.00")

	t.Run("Add", func(t *testing.T) {
		sum, err := a.Add(b)
		require.NoError(t, err)
		assert.Equal(t, "1250.00", sum.String())
	})

	t.Run("Sub", func(t *testing.T) {
		diff, err := b.Sub(a)
		require.NoError(t, err)
		assert.Equal(t, "-750.00", diff.String())
	})

	t.Run("Add overflow", func(t *testing.T) {
		_, err := money.FromCents(math.MaxInt64).Add(money.FromCents(1))
		assert.ErrorIs(t, err, money.ErrAmountOverflow)
	})

	t.Run("Sub overflow", func(t *testing.T) {
		_, err := money.FromCents(math.MinInt64).Sub(money.FromCents(1))
		assert.ErrorIs(t, err, money.ErrAmountOverflow)
	})

	t.Run("MulRate rounds to cents", func(t *testing.T) {
		interest, err := money.MustParse("1500.00").MulRate(decimal.RequireFromString("0.025"))
		require.NoError(t, err)
		assert.Equal(t, "37.50", interest.String())

		interest, err = money.MustParse("0.33").MulRate(decimal.RequireFromString("0.5"))
		require.NoError(t, err)
		assert.Equal(t, "0.17", interest.String())
	})

	t.Run("Compare", func(t *testing.T) {
		assert.True(t, a.GreaterThan(b))
		assert.True(t, b.LessThan(a))
		assert.Equal(t, 0, a.Cmp(money.FromCents(100000)))
		assert.Equal(t, -1, b.Cmp(a))
		assert.Equal(t, 1, a.Cmp(b))
	})
}

func TestMoney_Legacy(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{0, "000000.00"},
		{125000, "001250.00"},
		{110000, "001100.00"},
		{5, "000000.05"},
		{99999999, "999999.99"},
		{123456789, "1234567.89"},
		{-2550, "-000025.50"},
		{math.MinInt64, "-92233720368547758.08"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, money.FromCents(tt.cents).Legacy())
	}
}

func TestMoney_Text(t *testing.T) {
	type wrapper struct {
		Balance money.Money `json:"balance"`
	}

	data, err := json.Marshal(wrapper{Balance: money.MustParse("1250.5")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"balance":"1250.50"}`, string(data))

	var w wrapper
	require.NoError(t, json.Unmarshal([]byte(`{"balance":"42.00"}`), &w))
	assert.Equal(t, int64(4200), w.Balance.Cents())

	assert.Error(t, json.Unmarshal([]byte(`{"balance":"forty"}`), &w))
}

func TestMoney_Float64(t *testing.T) {
	assert.InDelta(t, 1250.25, money.MustParse("1250.25").Float64(), 0.0001)
}
