package services

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplitDeposits(t *testing.T) {
	// shares used across the suite: 5% donate, 10% corporate, 10% operation, 15% stake
	const donate, corporate, operation, stake = 500, 1000, 1000, 1500

	tests := []struct {
		name        string
		deposited   int64
		winnerCount int64
		want        settlementSplit
	}{
		{
			name:        "even split",
			deposited:   10000,
			winnerCount: 4,
			want: settlementSplit{
				Donate:           500,
				Corporate:        1000,
				Operation:        1000,
				Staked:           1500,
				TotalPrizePayout: 6000,
				PrizePerWinner:   1500,
			},
		},
		{
			name:        "fixed shares floor and the prize absorbs the dust",
			deposited:   999,
			winnerCount: 1,
			want: settlementSplit{
				Donate:           49,
				Corporate:        99,
				Operation:        99,
				Staked:           149,
				TotalPrizePayout: 603,
				PrizePerWinner:   603,
			},
		},
		{
			name:        "per-winner remainder stays escrowed",
			deposited:   10000,
			winnerCount: 7,
			want: settlementSplit{
				Donate:           500,
				Corporate:        1000,
				Operation:        1000,
				Staked:           1500,
				TotalPrizePayout: 6000,
				PrizePerWinner:   857, // 7*857 = 5999, 1 unit stays in the vault
			},
		},
		{
			name:        "single unit deposit",
			deposited:   1,
			winnerCount: 1,
			want: settlementSplit{
				TotalPrizePayout: 1,
				PrizePerWinner:   1,
			},
		},
		{
			name:        "zero winners carries everything",
			deposited:   12345,
			winnerCount: 0,
			want:        settlementSplit{CarriedOut: 12345},
		},
		{
			name:        "zero deposits",
			deposited:   0,
			winnerCount: 3,
			want:        settlementSplit{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := splitDeposits(tc.deposited, tc.winnerCount, donate, corporate, operation, stake)
			require.Equal(t, tc.want, got)

			// conservation: the settled amounts always account for the full deposit
			settled := got.Donate + got.Corporate + got.Operation + got.Staked + got.TotalPrizePayout + got.CarriedOut
			require.Equal(t, tc.deposited, settled)

			// the prize pool always covers every winner's payout
			require.LessOrEqual(t, got.PrizePerWinner*tc.winnerCount, got.TotalPrizePayout)
		})
	}
}
