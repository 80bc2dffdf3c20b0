package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RngCommitment holds the commit-reveal state for one round.
//
// The committer signature is stored at StartRound, before any ticket
// purchase reveals which type-classes exist. The entropy salt (EntropyAt
// plus EntropyCloser) is captured at sale close by whichever ticket holder
// triggers it, so it is the first input the operator cannot predict at
// commit time. RevealedSeed and FinalRandomness are written once at
// settlement and never mutated afterwards.
type RngCommitment struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	RoundID            uint64             `bson:"roundId" json:"roundId"`
	CommitterSignature []byte             `bson:"committerSignature" json:"committerSignature"`
	EntropyAt          time.Time          `bson:"entropyAt,omitempty" json:"entropyAt,omitempty"`
	EntropyCloser      string             `bson:"entropyCloser,omitempty" json:"entropyCloser,omitempty"` // lowercase 0x address
	RevealedSeed       []byte             `bson:"revealedSeed,omitempty" json:"revealedSeed,omitempty"`
	FinalRandomness    string             `bson:"finalRandomness,omitempty" json:"finalRandomness,omitempty"` // 0x-hex
	CreatedAt          time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time          `bson:"updatedAt" json:"updatedAt"`
}
