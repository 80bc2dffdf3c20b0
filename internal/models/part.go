package models

import (
	"sort"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PartCategoryCount is the number of distinct part categories a ticket
// purchase must cover, one part from each.
const PartCategoryCount = 5

// Part is a collectible component token. Burning one part from each of the
// five categories mints a ticket; the parts' canonical codes determine the
// ticket's type-class.
type Part struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	PartID    uint64             `bson:"partId" json:"partId"`
	Owner     string             `bson:"owner" json:"owner"` // lowercase 0x address
	Category  int                `bson:"category" json:"category"` // 0..PartCategoryCount-1
	Code      string             `bson:"code" json:"code"`         // canonical identifier within the category
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// CoversAllCategories reports whether the given parts span the five required
// categories with no duplicates.
func CoversAllCategories(parts []*Part) bool {
	if len(parts) != PartCategoryCount {
		return false
	}
	seen := make(map[int]bool, PartCategoryCount)
	for _, p := range parts {
		if p.Category < 0 || p.Category >= PartCategoryCount || seen[p.Category] {
			return false
		}
		seen[p.Category] = true
	}
	return true
}

// TypeHashOf derives a ticket's type-class from the five burned parts.
// Parts are ordered by category before hashing so the result does not depend
// on the order the buyer listed them in.
func TypeHashOf(parts []*Part) common.Hash {
	sorted := make([]*Part, len(parts))
	copy(sorted, parts)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Category < sorted[j].Category })

	var buf []byte
	for _, p := range sorted {
		buf = append(buf, byte(p.Category))
		buf = append(buf, []byte(p.Code)...)
	}
	return crypto.Keccak256Hash(buf)
}
