package money_test

import (
	"encoding/json"
	"testing"

	"github.com/amirasaad/commission/pkg/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper to create a new Money instance for testing
func mustNew(t *testing.T, amount float64, currency money.Code) *money.Money {
	t.Helper()
	m, err := money.New(amount, currency)
	require.NoError(t, err, "failed to create money for test")
	return m
}

func TestNewMoney_Precision(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		currency money.Code
		expected string
		wantErr  bool
	}{
		{"USD with cents", 100.50, money.USD, "100.50 USD", false},
		{"EUR with cents", 99.99, money.EUR, "99.99 EUR", false},
		{"JPY without cents", 1000.0, money.JPY, "1000 JPY", false},
		{"Invalid currency", 100.50, money.Code("INVALID"), "", true},
		{"USD with more than 2 decimals rounds half-up", 100.999, money.USD, "101.00 USD", false},
		{"USD with exactly 2 decimals", 100.99, money.USD, "100.99 USD", false},
		{"zero", 0, money.USD, "0.00 USD", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := money.New(tt.amount, tt.currency)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.currency, m.CurrencyCode())
			assert.Equal(t, tt.expected, m.String())
		})
	}
}

func TestNewFromSmallestUnit(t *testing.T) {
	m, err := money.NewFromSmallestUnit(615000, money.USD)
	require.NoError(t, err)
	assert.Equal(t, int64(615000), m.Amount())
	assert.Equal(t, "6150.00 USD", m.String())
	assert.InDelta(t, 6150.0, m.AmountFloat(), 0.001)
}

func TestMoney_Arithmetic(t *testing.T) {
	usd100 := mustNew(t, 100.0, money.USD)
	usd50 := mustNew(t, 50.0, money.USD)
	eur100 := mustNew(t, 100.0, money.EUR)

	t.Run("Add same currency", func(t *testing.T) {
		result, err := usd100.Add(usd50)
		require.NoError(t, err)
		assert.Equal(t, int64(15000), result.Amount())
	})

	t.Run("Subtract same currency", func(t *testing.T) {
		result, err := usd50.Subtract(usd100)
		require.NoError(t, err)
		assert.True(t, result.IsNegative())
		assert.Equal(t, "-50.00 USD", result.String())
	})

	t.Run("Add mismatched currencies", func(t *testing.T) {
		_, err := usd100.Add(eur100)
		require.ErrorIs(t, err, money.ErrMismatchedCurrencies)
	})

	t.Run("Subtract mismatched currencies", func(t *testing.T) {
		_, err := usd100.Subtract(eur100)
		require.ErrorIs(t, err, money.ErrMismatchedCurrencies)
	})
}

func TestMoney_Zero(t *testing.T) {
	z := money.Zero(money.USDCurrency)
	assert.True(t, z.IsZero())
	assert.False(t, z.IsNegative())
	assert.Equal(t, "0.00 USD", z.String())
}

func TestMoney_JSONRoundTrip(t *testing.T) {
	m := mustNew(t, 30000.0, money.USD)
	data, err := json.Marshal(m)
	require.NoError(t, err)

	var decoded money.Money
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, m.Amount(), decoded.Amount())
	assert.Equal(t, m.CurrencyCode(), decoded.CurrencyCode())
}

func TestMoney_InvalidInputs(t *testing.T) {
	_, err := money.New(100, 42)
	require.Error(t, err)

	_, err = money.NewFromSmallestUnit(100, money.Code("xxx"))
	require.ErrorIs(t, err, money.ErrInvalidCurrency)
}
