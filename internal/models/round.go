package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RoundStatus represents the lifecycle status of a round
type RoundStatus string

const (
	RoundStatusNotStarted RoundStatus = "NOT_STARTED"
	RoundStatusProceeding RoundStatus = "PROCEEDING"
	RoundStatusDrawing    RoundStatus = "DRAWING"
	RoundStatusClaiming   RoundStatus = "CLAIMING"
	RoundStatusEnded      RoundStatus = "ENDED"
)

// Round represents one cycle of ticket sales, randomness draw and prize
// settlement. Rounds are append-only history: they are created by StartRound
// and mutated by the engine's transition methods, never deleted.
//
// All amounts are in the payment coin's smallest unit. DepositedAmount for
// round N+1 is seeded from round N's CarriedOutAmount.
type Round struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	RoundID uint64             `bson:"roundId" json:"roundId"` // sequential, starting at 1
	Status  RoundStatus        `bson:"status" json:"status"`

	StartedAt     time.Time `bson:"startedAt,omitempty" json:"startedAt,omitempty"`
	CloseTicketAt time.Time `bson:"closeTicketAt,omitempty" json:"closeTicketAt,omitempty"`
	SettledAt     time.Time `bson:"settledAt,omitempty" json:"settledAt,omitempty"`
	RefundedAt    time.Time `bson:"refundedAt,omitempty" json:"refundedAt,omitempty"`
	EndedAt       time.Time `bson:"endedAt,omitempty" json:"endedAt,omitempty"`

	DepositedAmount  int64 `bson:"depositedAmount" json:"depositedAmount"`
	ClaimedAmount    int64 `bson:"claimedAmount" json:"claimedAmount"`
	TotalPrizePayout int64 `bson:"totalPrizePayout" json:"totalPrizePayout"`
	PrizePerWinner   int64 `bson:"prizePerWinner" json:"prizePerWinner"`
	DonateAmount     int64 `bson:"donateAmount" json:"donateAmount"`
	CorporateAmount  int64 `bson:"corporateAmount" json:"corporateAmount"`
	OperationAmount  int64 `bson:"operationAmount" json:"operationAmount"`
	StakedAmount     int64 `bson:"stakedAmount" json:"stakedAmount"`
	CarriedOutAmount int64 `bson:"carriedOutAmount" json:"carriedOutAmount"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// RoundSettleInfo is the read-only settlement summary exposed for a round.
type RoundSettleInfo struct {
	RoundID          uint64    `json:"roundId"`
	Status           RoundStatus `json:"status"`
	SettledAt        time.Time `json:"settledAt,omitempty"`
	DepositedAmount  int64     `json:"depositedAmount"`
	ClaimedAmount    int64     `json:"claimedAmount"`
	TotalPrizePayout int64     `json:"totalPrizePayout"`
	PrizePerWinner   int64     `json:"prizePerWinner"`
	DonateAmount     int64     `json:"donateAmount"`
	CorporateAmount  int64     `json:"corporateAmount"`
	OperationAmount  int64     `json:"operationAmount"`
	StakedAmount     int64     `json:"stakedAmount"`
	CarriedOutAmount int64     `json:"carriedOutAmount"`
}
