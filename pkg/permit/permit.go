// Package permit implements the typed-data deposit authorization the vault
// accepts in place of a prior approval: the coin owner signs
// {owner, spender, value, nonce, deadline} off-line and the vault verifies
// the signature before moving funds. Nonces make each permit single-use.
package permit

import (
	"crypto/ecdsa"
	"encoding/binary"
	"errors"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

const domainTag = "playparts.lotto.coinpermit.v1"

// ErrBadSignature is returned when a permit signature is malformed.
var ErrBadSignature = errors.New("permit: malformed signature")

// Digest computes the digest the coin owner signs:
// keccak256(domainTag || owner || spender || value || nonce || deadline).
func Digest(owner, spender common.Address, value int64, nonce uint64, deadline int64) common.Hash {
	var buf [24]byte
	binary.BigEndian.PutUint64(buf[0:8], uint64(value))
	binary.BigEndian.PutUint64(buf[8:16], nonce)
	binary.BigEndian.PutUint64(buf[16:24], uint64(deadline))
	return crypto.Keccak256Hash([]byte(domainTag), owner.Bytes(), spender.Bytes(), buf[:])
}

// Sign produces a permit signature. Used by client tooling and tests.
func Sign(owner, spender common.Address, value int64, nonce uint64, deadline int64, key *ecdsa.PrivateKey) ([]byte, error) {
	digest := Digest(owner, spender, value, nonce, deadline)
	return crypto.Sign(digest.Bytes(), key)
}

// Verify checks that sig authorizes spender to move value coins out of
// owner's account under the given nonce and deadline.
func Verify(owner, spender common.Address, value int64, nonce uint64, deadline int64, sig []byte) (bool, error) {
	if len(sig) != crypto.SignatureLength {
		return false, ErrBadSignature
	}
	digest := Digest(owner, spender, value, nonce, deadline)
	pub, err := crypto.SigToPub(digest.Bytes(), sig)
	if err != nil {
		return false, ErrBadSignature
	}
	return crypto.PubkeyToAddress(*pub) == owner, nil
}
