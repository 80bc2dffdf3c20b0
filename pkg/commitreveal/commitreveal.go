// Package commitreveal implements the two-phase randomness protocol for
// prize rounds: a designated signer commits to a secret seed before ticket
// sales begin, a second entropy contribution is captured at sale close by a
// non-admin actor, and the seed is revealed and verified at settlement.
// Everything here is a pure function of its inputs so it can be tested
// independently of round progression.
package commitreveal

import (
	"crypto/ecdsa"
	"encoding/binary"
	"errors"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// domainTag fixes the signing domain so a commitment signature cannot be
// replayed as any other kind of message.
const domainTag = "playparts.lotto.seedcommit.v1"

// SeedSize is the required length of a round seed in bytes.
const SeedSize = 32

var (
	// ErrBadSeedSize is returned when a seed is not exactly SeedSize bytes.
	ErrBadSeedSize = errors.New("commitreveal: seed must be 32 bytes")
	// ErrBadSignature is returned when a signature is malformed.
	ErrBadSignature = errors.New("commitreveal: malformed signature")
)

// CommitDigest computes the digest a committer signs for a round:
// keccak256(domainTag || roundId || seed).
func CommitDigest(roundID uint64, seed []byte) (common.Hash, error) {
	if len(seed) != SeedSize {
		return common.Hash{}, ErrBadSeedSize
	}
	var idBuf [8]byte
	binary.BigEndian.PutUint64(idBuf[:], roundID)
	return crypto.Keccak256Hash([]byte(domainTag), idBuf[:], seed), nil
}

// SignCommit produces the commitment signature over {roundId, seed}.
// It is used by the operator signing tool and by tests; the service only
// ever verifies.
func SignCommit(roundID uint64, seed []byte, key *ecdsa.PrivateKey) ([]byte, error) {
	digest, err := CommitDigest(roundID, seed)
	if err != nil {
		return nil, err
	}
	return crypto.Sign(digest.Bytes(), key)
}

// VerifyReveal checks that sig is a valid commitment signature over
// {roundId, seed} recovering to the expected signer. A false result means
// the revealed seed does not match the pre-registered commitment and
// settlement must not proceed.
func VerifyReveal(signer common.Address, roundID uint64, seed []byte, sig []byte) (bool, error) {
	digest, err := CommitDigest(roundID, seed)
	if err != nil {
		return false, err
	}
	if len(sig) != crypto.SignatureLength {
		return false, ErrBadSignature
	}
	pub, err := crypto.SigToPub(digest.Bytes(), sig)
	if err != nil {
		return false, ErrBadSignature
	}
	return crypto.PubkeyToAddress(*pub) == signer, nil
}

// Mix combines the sale-close entropy salt with the revealed seed into the
// round's final randomness: keccak256(closeUnixSeconds || closer || seed).
// Keccak256 gives the collision resistance and uniform distribution the
// draw needs; neither input alone determines the output.
func Mix(entropyAt time.Time, closer common.Address, seed []byte) common.Hash {
	var tsBuf [8]byte
	binary.BigEndian.PutUint64(tsBuf[:], uint64(entropyAt.Unix()))
	return crypto.Keccak256Hash(tsBuf[:], closer.Bytes(), seed)
}

// WinnerIndex maps the final randomness onto an index into the n distinct
// type-classes minted in the round.
func WinnerIndex(randomness common.Hash, n int) int {
	if n <= 0 {
		return 0
	}
	idx := new(big.Int).Mod(new(big.Int).SetBytes(randomness.Bytes()), big.NewInt(int64(n)))
	return int(idx.Int64())
}
