// Package money provides a value object for monetary amounts.
//
// Invariants:
//   - Amount is always stored in the smallest currency unit (e.g., cents for USD).
//   - Currency code must be valid ISO 4217 (3 uppercase letters).
//   - All arithmetic operations require matching currencies.
//   - Rounding to the smallest unit happens once, at construction, half-up.
package money

import (
	"encoding/json"
	"fmt"
	"math"
)

var (
	// ErrInvalidAmount is returned when an invalid amount is provided.
	ErrInvalidAmount = fmt.Errorf("invalid amount")

	// ErrAmountExceedsMaxSafeInt is returned when an amount exceeds the
	// maximum value representable in the smallest currency unit.
	ErrAmountExceedsMaxSafeInt = fmt.Errorf("amount exceeds maximum safe integer value")

	// ErrInvalidCurrency is returned when a currency code is invalid.
	ErrInvalidCurrency = fmt.Errorf("invalid currency code")

	// ErrMismatchedCurrencies is returned when performing operations on
	// money with different currencies.
	ErrMismatchedCurrencies = fmt.Errorf("mismatched currencies")
)

// Amount represents a monetary amount as an integer in the smallest currency unit.
type Amount = int64

// Currency represents a monetary unit with its standard decimal places.
type Currency struct {
	Code     Code // 3-letter ISO 4217 code (e.g., "USD")
	Decimals int  // Number of decimal places (0-8)
}

// IsValid checks if the currency is valid.
func (c Currency) IsValid() bool {
	return c.Decimals >= 0 && c.Decimals <= 8 && c.Code.IsValid()
}

// String returns the currency code as a string.
func (c Currency) String() string { return string(c.Code) }

// USDCurrency is the default currency for commission payouts.
var USDCurrency = Currency{Code: USD, Decimals: 2}

// DefaultCurrency is the default currency (USD).
var DefaultCurrency = USDCurrency

// Money represents a monetary value in a specific currency.
type Money struct {
	amount   Amount
	currency Currency
}

// New creates a new Money value object with the given amount in main units
// (e.g., dollars). The currency parameter can be a string, Code, or Currency.
// The amount is converted to the smallest currency unit with half-up rounding.
func New(amount float64, currency any) (*Money, error) {
	c, err := resolveCurrency(currency)
	if err != nil {
		return nil, err
	}
	smallest, err := toSmallestUnit(amount, c)
	if err != nil {
		return nil, err
	}
	return &Money{amount: smallest, currency: c}, nil
}

// NewFromSmallestUnit creates a Money object directly from the smallest
// currency unit (e.g., cents).
func NewFromSmallestUnit(amount int64, currency any) (*Money, error) {
	c, err := resolveCurrency(currency)
	if err != nil {
		return nil, err
	}
	return &Money{amount: amount, currency: c}, nil
}

// Must creates a Money object or panics. Intended for tests and constants.
func Must(amount float64, currency any) *Money {
	m, err := New(amount, currency)
	if err != nil {
		panic(fmt.Sprintf("money.Must(%v, %v): %v", amount, currency, err))
	}
	return m
}

// Zero creates a Money object with zero amount in the given currency.
func Zero(currency Currency) *Money {
	return &Money{amount: 0, currency: currency}
}

func resolveCurrency(currency any) (Currency, error) {
	switch v := currency.(type) {
	case string:
		code := Code(v)
		if !code.IsValid() {
			return Currency{}, fmt.Errorf("%w: %s", ErrInvalidCurrency, v)
		}
		return code.ToCurrency(), nil
	case Code:
		if !v.IsValid() {
			return Currency{}, fmt.Errorf("%w: %s", ErrInvalidCurrency, v)
		}
		return v.ToCurrency(), nil
	case Currency:
		if !v.IsValid() {
			return Currency{}, fmt.Errorf("%w: %v", ErrInvalidCurrency, v)
		}
		return v, nil
	default:
		return Currency{}, fmt.Errorf("invalid currency type: %T, expected string, Code, or Currency", currency)
	}
}

// toSmallestUnit converts a main-unit amount to the smallest unit, rounding
// half-up at the currency's decimal places.
func toSmallestUnit(amount float64, c Currency) (int64, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, ErrInvalidAmount
	}
	scale := math.Pow10(c.Decimals)
	scaled := amount * scale
	if math.Abs(scaled) > math.MaxInt64/2 {
		return 0, ErrAmountExceedsMaxSafeInt
	}
	return int64(math.Floor(scaled + 0.5)), nil
}

// Amount returns the amount in the smallest currency unit.
func (m Money) Amount() Amount { return m.amount }

// AmountFloat returns the amount in main units (e.g., dollars).
func (m Money) AmountFloat() float64 {
	return float64(m.amount) / math.Pow10(m.currency.Decimals)
}

// Currency returns the currency.
func (m Money) Currency() Currency { return m.currency }

// CurrencyCode returns the currency code.
func (m Money) CurrencyCode() Code { return m.currency.Code }

// IsNegative reports whether the amount is below zero.
func (m Money) IsNegative() bool { return m.amount < 0 }

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool { return m.amount == 0 }

// Add returns the sum of two Money values with matching currencies.
func (m Money) Add(other *Money) (*Money, error) {
	if m.currency != other.currency {
		return nil, fmt.Errorf("%w: %s vs %s", ErrMismatchedCurrencies, m.currency, other.currency)
	}
	return &Money{amount: m.amount + other.amount, currency: m.currency}, nil
}

// Subtract returns the difference of two Money values with matching currencies.
func (m Money) Subtract(other *Money) (*Money, error) {
	if m.currency != other.currency {
		return nil, fmt.Errorf("%w: %s vs %s", ErrMismatchedCurrencies, m.currency, other.currency)
	}
	return &Money{amount: m.amount - other.amount, currency: m.currency}, nil
}

// String formats the amount with the currency's decimal places and code,
// e.g. "30000.00 USD".
func (m Money) String() string {
	if m.currency.Decimals == 0 {
		return fmt.Sprintf("%d %s", m.amount, m.currency.Code)
	}
	sign, a := "", m.amount
	if a < 0 {
		sign, a = "-", -a
	}
	scale := int64(math.Pow10(m.currency.Decimals))
	return fmt.Sprintf("%s%d.%0*d %s", sign, a/scale, m.currency.Decimals, a%scale, m.currency.Code)
}

// MarshalJSON implements json.Marshaler.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"amount":   m.amount,
		"currency": m.currency.Code,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (m *Money) UnmarshalJSON(data []byte) error {
	var aux struct {
		Amount   int64  `json:"amount"`
		Currency string `json:"currency"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	code := Code(aux.Currency)
	if !code.IsValid() {
		return fmt.Errorf("%w: %s", ErrInvalidCurrency, aux.Currency)
	}
	m.amount = aux.Amount
	m.currency = code.ToCurrency()
	return nil
}
