package money

// Code represents an ISO 4217 currency code (e.g., "USD", "EUR").
type Code string

// Currency codes used by the commission domain.
const (
	USD Code = "USD"
	EUR Code = "EUR"
	GBP Code = "GBP"
	JPY Code = "JPY"
)

// IsValid checks that the code is three uppercase ASCII letters.
func (c Code) IsValid() bool {
	if len(c) != 3 {
		return false
	}
	return c[0] >= 'A' && c[0] <= 'Z' &&
		c[1] >= 'A' && c[1] <= 'Z' &&
		c[2] >= 'A' && c[2] <= 'Z'
}

// String returns the string representation of the currency code.
func (c Code) String() string { return string(c) }

// ToCurrency converts a Code to a Currency with its standard decimal places.
func (c Code) ToCurrency() Currency {
	switch c {
	case JPY:
		return Currency{Code: c, Decimals: 0}
	default:
		return Currency{Code: c, Decimals: 2}
	}
}
