package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ZeroHash is the hex form of the all-zero 32-byte hash, used for winner
// records of rounds that have not been settled yet.
const ZeroHash = "0x0000000000000000000000000000000000000000000000000000000000000000"

// WinnerRecord captures the drawn type-class for a round. One record exists
// per settled round; it is written at settlement time and never mutated.
type WinnerRecord struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	RoundID     uint64             `bson:"roundId" json:"roundId"`
	WinningHash string             `bson:"winningHash" json:"winningHash"` // 0x-hex, ZeroHash until settled
	WinnerCount int                `bson:"winnerCount" json:"winnerCount"` // tickets matching WinningHash at settlement
	Forced      bool               `bson:"forced" json:"forced"`           // settled via the override path
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}
