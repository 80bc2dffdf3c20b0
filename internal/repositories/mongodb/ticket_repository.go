package mongodb

import (
	"context"

	"github.com/playparts/lotto-backend/internal/models"
	"github.com/playparts/lotto-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// TicketRepository implements the repositories.TicketRepository interface
type TicketRepository struct {
	db         *mongo.Database
	collection *mongo.Collection
}

// NewTicketRepository creates a new TicketRepository
func NewTicketRepository(db *mongo.Database) repositories.TicketRepository {
	return &TicketRepository{
		db:         db,
		collection: db.Collection("tickets"),
	}
}

// Create mints a ticket document
func (r *TicketRepository) Create(ctx context.Context, ticket *models.Ticket) error {
	res, err := r.collection.InsertOne(ctx, ticket)
	if err != nil {
		return err
	}
	ticket.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// FindByTicketID finds a ticket by its ledger id
func (r *TicketRepository) FindByTicketID(ctx context.Context, ticketID uint64) (*models.Ticket, error) {
	var ticket models.Ticket
	err := r.collection.FindOne(ctx, bson.M{"ticketId": ticketID}).Decode(&ticket)
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

// FindByOwner finds all tickets held by an address
func (r *TicketRepository) FindByOwner(ctx context.Context, owner string) ([]*models.Ticket, error) {
	return r.find(ctx, bson.M{"owner": owner})
}

// FindByRoundID finds all live tickets minted in a round
func (r *TicketRepository) FindByRoundID(ctx context.Context, roundID uint64) ([]*models.Ticket, error) {
	return r.find(ctx, bson.M{"roundId": roundID})
}

func (r *TicketRepository) find(ctx context.Context, filter bson.M) ([]*models.Ticket, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var tickets []*models.Ticket
	if err := cursor.All(ctx, &tickets); err != nil {
		return nil, err
	}
	if tickets == nil {
		tickets = []*models.Ticket{}
	}
	return tickets, nil
}

// CountByOwnerAndRound counts an address's tickets in a round
func (r *TicketRepository) CountByOwnerAndRound(ctx context.Context, owner string, roundID uint64) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"owner": owner, "roundId": roundID})
}

// CountByRoundAndTypeHash counts a round's tickets sharing a type-class
func (r *TicketRepository) CountByRoundAndTypeHash(ctx context.Context, roundID uint64, typeHash string) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"roundId": roundID, "typeHash": typeHash})
}

// DistinctTypeHashes lists the distinct type-classes minted in a round
func (r *TicketRepository) DistinctTypeHashes(ctx context.Context, roundID uint64) ([]string, error) {
	values, err := r.collection.Distinct(ctx, "typeHash", bson.M{"roundId": roundID})
	if err != nil {
		return nil, err
	}
	hashes := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			hashes = append(hashes, s)
		}
	}
	return hashes, nil
}

// UpdateOwner transfers a ticket to a new owner
func (r *TicketRepository) UpdateOwner(ctx context.Context, ticketID uint64, newOwner string) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"ticketId": ticketID}, bson.M{"$set": bson.M{"owner": newOwner}})
	return err
}

// Delete burns a ticket
func (r *TicketRepository) Delete(ctx context.Context, ticketID uint64) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"ticketId": ticketID})
	return err
}

// NextTicketID allocates the next sequential ticket id
func (r *TicketRepository) NextTicketID(ctx context.Context) (uint64, error) {
	return nextSequence(ctx, r.db, "tickets")
}
