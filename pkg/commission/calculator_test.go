package commission_test

import (
	"math/rand"
	"testing"

	"github.com/amirasaad/commission/pkg/commission"
	"github.com/amirasaad/commission/pkg/domain"
	"github.com/amirasaad/commission/pkg/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustMoney(t *testing.T, amount float64) *money.Money {
	t.Helper()
	m, err := money.New(amount, money.USD)
	require.NoError(t, err)
	return m
}

func TestCompute_Scenarios(t *testing.T) {
	t.Run("1M sale, 4 percent commission, 75 split, no deductions", func(t *testing.T) {
		result, err := commission.Compute(commission.Inputs{
			SalePrice:         mustMoney(t, 1_000_000),
			CommissionPercent: 4,
			AgentSplitPercent: 75,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(4_000_000), result.GrossCommissionIncome.Amount())
		assert.Equal(t, int64(3_000_000), result.AgentGross.Amount())
		assert.Equal(t, int64(3_000_000), result.AgentNetPayout.Amount())
		assert.Equal(t, "30000.00 USD", result.AgentNetPayout.String())
		assert.False(t, result.Clamped)
	})

	t.Run("500K sale, 3 percent commission, 75 split, with deductions", func(t *testing.T) {
		result, err := commission.Compute(commission.Inputs{
			SalePrice:         mustMoney(t, 500_000),
			CommissionPercent: 3,
			AgentSplitPercent: 75,
			Deductions: commission.Deductions{
				FranchiseFee:   mustMoney(t, 4_500),
				EOFee:          mustMoney(t, 150),
				TransactionFee: mustMoney(t, 450),
			},
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1_500_000), result.GrossCommissionIncome.Amount())
		assert.Equal(t, int64(1_125_000), result.AgentGross.Amount())
		assert.Equal(t, int64(615_000), result.AgentNetPayout.Amount())
		assert.Equal(t, "6150.00 USD", result.AgentNetPayout.String())
		assert.False(t, result.Clamped)
	})

	t.Run("zero sale price yields zero payout", func(t *testing.T) {
		result, err := commission.Compute(commission.Inputs{
			SalePrice:         mustMoney(t, 0),
			CommissionPercent: 4,
			AgentSplitPercent: 75,
		})
		require.NoError(t, err)
		assert.True(t, result.GrossCommissionIncome.IsZero())
		assert.True(t, result.AgentNetPayout.IsZero())
		assert.False(t, result.Clamped)
	})

	t.Run("deductions exceeding gross clamp to zero with flag", func(t *testing.T) {
		result, err := commission.Compute(commission.Inputs{
			SalePrice:         mustMoney(t, 100_000),
			CommissionPercent: 1,
			AgentSplitPercent: 50,
			Deductions: commission.Deductions{
				FranchiseFee: mustMoney(t, 1_000),
			},
		})
		require.NoError(t, err)
		assert.Equal(t, int64(100_000), result.GrossCommissionIncome.Amount())
		assert.Equal(t, int64(50_000), result.AgentGross.Amount())
		assert.True(t, result.AgentNetPayout.IsZero(), "net payout must clamp to zero, never go negative")
		assert.True(t, result.Clamped)
	})

	t.Run("fractional percents round half-up only at the final result", func(t *testing.T) {
		// 333,333.33 × 2.5% × 62.5% = 5208.3332...; a single terminal
		// rounding gives 5208.33, not the drifted result of rounding
		// the GCI first.
		result, err := commission.Compute(commission.Inputs{
			SalePrice:         mustMoney(t, 333_333.33),
			CommissionPercent: 2.5,
			AgentSplitPercent: 62.5,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(833_333), result.GrossCommissionIncome.Amount())
		assert.Equal(t, int64(520_833), result.AgentGross.Amount())
	})
}

func TestCompute_InvalidInputs(t *testing.T) {
	negative, err := money.NewFromSmallestUnit(-100, money.USD)
	require.NoError(t, err)
	negativeFee, err := money.NewFromSmallestUnit(-1, money.USD)
	require.NoError(t, err)
	valid := mustMoney(t, 100_000)

	tests := []struct {
		name   string
		inputs commission.Inputs
	}{
		{"missing sale price", commission.Inputs{CommissionPercent: 3, AgentSplitPercent: 75}},
		{"negative sale price", commission.Inputs{SalePrice: negative, CommissionPercent: 3, AgentSplitPercent: 75}},
		{"commission percent above 100", commission.Inputs{SalePrice: valid, CommissionPercent: 101, AgentSplitPercent: 75}},
		{"commission percent below 0", commission.Inputs{SalePrice: valid, CommissionPercent: -1, AgentSplitPercent: 75}},
		{"split percent above 100", commission.Inputs{SalePrice: valid, CommissionPercent: 3, AgentSplitPercent: 100.5}},
		{"negative deduction", commission.Inputs{
			SalePrice:         valid,
			CommissionPercent: 3,
			AgentSplitPercent: 75,
			Deductions:        commission.Deductions{EOFee: negativeFee},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := commission.Compute(tt.inputs)
			require.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestCompute_Deterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 200; i++ {
		inputs := commission.Inputs{
			SalePrice:         mustMoney(t, float64(rng.Intn(200_000_000))/100),
			CommissionPercent: float64(rng.Intn(10_000)) / 100,
			AgentSplitPercent: float64(rng.Intn(10_000)) / 100,
		}
		first, err := commission.Compute(inputs)
		require.NoError(t, err)
		second, err := commission.Compute(inputs)
		require.NoError(t, err)
		assert.Equal(t, first.GrossCommissionIncome.Amount(), second.GrossCommissionIncome.Amount())
		assert.Equal(t, first.AgentGross.Amount(), second.AgentGross.Amount())
		assert.Equal(t, first.AgentNetPayout.Amount(), second.AgentNetPayout.Amount())
	}
}
