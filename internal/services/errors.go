package services

import "errors"

// Engine errors. Every failure is fatal to the specific call: no partial
// effects are observable and retries are the caller's responsibility.
var (
	// Authorization errors
	ErrNotAdmin     = errors.New("not admin")
	ErrNotPermitted = errors.New("not permitted")

	// State errors
	ErrLastRoundNotEnded  = errors.New("last round not ended")
	ErrRoundNotProceeding = errors.New("round is not proceeding")
	ErrRoundNotDrawing    = errors.New("round is not drawing")
	ErrRoundNotClaiming   = errors.New("round is not claiming")
	ErrRoundNotStarted    = errors.New("round not started")
	ErrRoundAlreadyEnded  = errors.New("round already ended")
	ErrSaleNotOver        = errors.New("sale is not over")
	ErrRefundNotAvailable = errors.New("refund not available")
	ErrEndTooEarly        = errors.New("round end too early")

	// Ownership errors
	ErrNotOwner     = errors.New("not owner")
	ErrNotPartOwner = errors.New("not part owner")

	// Validation errors
	ErrInvalidParts  = errors.New("invalid parts")
	ErrNotWinner     = errors.New("not winner")
	ErrInvalidReveal = errors.New("invalid reveal")
	ErrInvalidPermit = errors.New("invalid permit")
	ErrPermitExpired = errors.New("permit expired")

	// Balance errors
	ErrInsufficientCoin = errors.New("insufficient coin")
	ErrVaultUnderflow   = errors.New("vault underflow")
)
