// Package commission computes commission figures for a closed transaction.
//
// The calculator is a pure function: same inputs always produce the same
// output, exactly. All math runs on integer cents and basis points, with a
// single half-up rounding at each final figure and no intermediate rounding.
package commission

import (
	"fmt"
	"math"
	"math/big"

	"github.com/amirasaad/commission/pkg/domain"
	"github.com/amirasaad/commission/pkg/money"
)

// bpsScale is the number of basis points in 100 percent.
const bpsScale = 10_000

// Deductions are the non-negative amounts subtracted from the agent's gross.
type Deductions struct {
	FranchiseFee   *money.Money
	EOFee          *money.Money
	TransactionFee *money.Money
}

// Inputs are the financial fields of a transaction that drive the computation.
type Inputs struct {
	SalePrice         *money.Money
	CommissionPercent float64 // 0..100
	AgentSplitPercent float64 // 0..100
	Deductions        Deductions
}

// Result carries the computed commission figures.
type Result struct {
	GrossCommissionIncome *money.Money
	AgentGross            *money.Money
	AgentNetPayout        *money.Money
	// Clamped is set when deductions exceeded the agent gross and the net
	// payout was clamped to zero. A warning, not an error.
	Clamped bool
}

// Compute derives the gross commission income and the agent's net payout
// from a transaction's financial fields.
//
//	GCI      = salePrice × commissionPercent/100
//	agentGross = GCI × agentSplitPercent/100
//	agentNet   = agentGross − Σ(deductions), clamped at zero
func Compute(in Inputs) (*Result, error) {
	if in.SalePrice == nil {
		return nil, fmt.Errorf("%w: sale price is required", domain.ErrValidation)
	}
	if in.SalePrice.IsNegative() {
		return nil, fmt.Errorf("%w: sale price must not be negative", domain.ErrValidation)
	}
	commBps, err := percentToBps("commission percent", in.CommissionPercent)
	if err != nil {
		return nil, err
	}
	splitBps, err := percentToBps("agent split percent", in.AgentSplitPercent)
	if err != nil {
		return nil, err
	}

	currency := in.SalePrice.Currency()
	totalDeductions := money.Zero(currency)
	for _, d := range []struct {
		name   string
		amount *money.Money
	}{
		{"franchise fee", in.Deductions.FranchiseFee},
		{"errors and omissions fee", in.Deductions.EOFee},
		{"transaction fee", in.Deductions.TransactionFee},
	} {
		if d.amount == nil {
			continue
		}
		if d.amount.IsNegative() {
			return nil, fmt.Errorf("%w: %s must not be negative", domain.ErrValidation, d.name)
		}
		totalDeductions, err = totalDeductions.Add(d.amount)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", domain.ErrValidation, d.name, err)
		}
	}

	sale := big.NewInt(in.SalePrice.Amount())

	// GCI in cents, rounded half-up once.
	gciCents := roundHalfUpDiv(
		new(big.Int).Mul(sale, big.NewInt(commBps)),
		big.NewInt(bpsScale),
	)

	// Agent gross in cents: the full sale × commission × split product is
	// divided once, so no intermediate rounding drifts the result.
	grossCents := roundHalfUpDiv(
		new(big.Int).Mul(new(big.Int).Mul(sale, big.NewInt(commBps)), big.NewInt(splitBps)),
		big.NewInt(bpsScale*bpsScale),
	)

	gci, err := money.NewFromSmallestUnit(gciCents, currency)
	if err != nil {
		return nil, err
	}
	gross, err := money.NewFromSmallestUnit(grossCents, currency)
	if err != nil {
		return nil, err
	}

	net, err := gross.Subtract(totalDeductions)
	if err != nil {
		return nil, fmt.Errorf("%w: deductions: %v", domain.ErrValidation, err)
	}
	clamped := false
	if net.IsNegative() {
		net = money.Zero(currency)
		clamped = true
	}

	return &Result{
		GrossCommissionIncome: gci,
		AgentGross:            gross,
		AgentNetPayout:        net,
		Clamped:               clamped,
	}, nil
}

// percentToBps converts a percentage in [0,100] to basis points.
func percentToBps(name string, p float64) (int64, error) {
	if math.IsNaN(p) || p < 0 || p > 100 {
		return 0, fmt.Errorf("%w: %s must be between 0 and 100, got %v", domain.ErrValidation, name, p)
	}
	return int64(math.Floor(p*100 + 0.5)), nil
}

// roundHalfUpDiv divides n by d with half-up rounding. Both operands must be
// non-negative; callers guarantee this by validating inputs first.
func roundHalfUpDiv(n, d *big.Int) int64 {
	q, r := new(big.Int).QuoRem(n, d, new(big.Int))
	if new(big.Int).Lsh(r, 1).Cmp(d) >= 0 {
		q.Add(q, big.NewInt(1))
	}
	return q.Int64()
}
