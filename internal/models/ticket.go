package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Ticket is the round-bound prize token minted by burning five parts.
// A ticket is burned (the document deleted) when it is claimed or refunded,
// so each ticket is claimable or refundable exactly once. Ownership is
// transferable through the ticket ledger; RoundID and TypeHash are permanent.
type Ticket struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	TicketID    uint64             `bson:"ticketId" json:"ticketId"`
	Owner       string             `bson:"owner" json:"owner"` // lowercase 0x address
	RoundID     uint64             `bson:"roundId" json:"roundId"`
	TypeHash    string             `bson:"typeHash" json:"typeHash"` // derived once at mint
	PartIDs     []uint64           `bson:"partIds" json:"partIds"`   // the five burned parts
	PurchasedAt time.Time          `bson:"purchasedAt" json:"purchasedAt"`
}
