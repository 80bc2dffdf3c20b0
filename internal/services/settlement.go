package services

// settlementSplit is the outcome of dividing a round's pooled deposits
// between the prize pool, the fixed stakeholders and the carry-forward pool.
type settlementSplit struct {
	Donate           int64
	Corporate        int64
	Operation        int64
	Staked           int64
	TotalPrizePayout int64
	PrizePerWinner   int64
	CarriedOut       int64
}

// splitDeposits computes the settlement arithmetic for a round.
//
// With winners, each fixed stakeholder takes floor(deposited*bps/10000) and
// the prize pool takes the remainder, so the settled amounts always sum to
// exactly depositedAmount. PrizePerWinner floors the per-ticket share; the
// division remainder stays escrowed in the vault and is never redistributed.
// With no winners nothing is distributed and the full deposit carries
// forward into the next round.
func splitDeposits(deposited, winnerCount, donateBps, corporateBps, operationBps, stakeBps int64) settlementSplit {
	if winnerCount <= 0 {
		return settlementSplit{CarriedOut: deposited}
	}

	split := settlementSplit{
		Donate:    deposited * donateBps / 10000,
		Corporate: deposited * corporateBps / 10000,
		Operation: deposited * operationBps / 10000,
		Staked:    deposited * stakeBps / 10000,
	}
	split.TotalPrizePayout = deposited - split.Donate - split.Corporate - split.Operation - split.Staked
	split.PrizePerWinner = split.TotalPrizePayout / winnerCount
	return split
}
