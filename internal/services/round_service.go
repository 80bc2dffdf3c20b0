package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/exp/slog"

	"github.com/playparts/lotto-backend/internal/config"
	"github.com/playparts/lotto-backend/internal/models"
	"github.com/playparts/lotto-backend/internal/repositories"
	"github.com/playparts/lotto-backend/internal/utils"
	"github.com/playparts/lotto-backend/pkg/commitreveal"
)

// Compile-time check to ensure RoundServiceImpl implements RoundService
var _ RoundService = (*RoundServiceImpl)(nil)

// RoundServiceImpl is the round lifecycle and settlement engine. A single
// mutex serializes every state-mutating operation, so each call executes to
// completion against freshly read state and either completes or fails with
// no partial effects observable to the next caller.
type RoundServiceImpl struct {
	mu sync.Mutex

	roundRepo      repositories.RoundRepository
	ticketRepo     repositories.TicketRepository
	partRepo       repositories.PartRepository
	commitmentRepo repositories.CommitmentRepository
	winnerRepo     repositories.WinnerRecordRepository
	vault          Vault
	roles          RoleStore

	ticketFee       int64
	saleDuration    time.Duration
	refundAvailTime time.Duration
	claimDuration   time.Duration

	committer     common.Address
	donateAddr    common.Address
	corporateAddr common.Address
	operationAddr common.Address
	stakeAddr     common.Address

	donateBps    int64
	corporateBps int64
	operationBps int64
	stakeBps     int64

	now func() time.Time
}

// NewRoundService creates a new RoundServiceImpl from the engine
// configuration. It fails fast on unusable share or address settings rather
// than settling rounds with them later.
func NewRoundService(
	roundRepo repositories.RoundRepository,
	ticketRepo repositories.TicketRepository,
	partRepo repositories.PartRepository,
	commitmentRepo repositories.CommitmentRepository,
	winnerRepo repositories.WinnerRecordRepository,
	vault Vault,
	roles RoleStore,
	cfg config.EngineConfig,
) (*RoundServiceImpl, error) {
	if cfg.TicketFee <= 0 {
		return nil, fmt.Errorf("engine config: ticket fee must be positive, got %d", cfg.TicketFee)
	}
	if sum := cfg.DonateBps + cfg.CorporateBps + cfg.OperationBps + cfg.StakeBps; sum < 0 || sum > 10000 {
		return nil, fmt.Errorf("engine config: fixed shares must total at most 10000 bps, got %d", sum)
	}
	committer, err := utils.ParseAddress(cfg.CommitterAddress)
	if err != nil {
		return nil, fmt.Errorf("engine config: committer address: %w", err)
	}
	donate, err := utils.ParseAddress(cfg.DonateAddress)
	if err != nil {
		return nil, fmt.Errorf("engine config: donate address: %w", err)
	}
	corporate, err := utils.ParseAddress(cfg.CorporateAddress)
	if err != nil {
		return nil, fmt.Errorf("engine config: corporate address: %w", err)
	}
	operation, err := utils.ParseAddress(cfg.OperationAddress)
	if err != nil {
		return nil, fmt.Errorf("engine config: operation address: %w", err)
	}
	stake, err := utils.ParseAddress(cfg.StakeAddress)
	if err != nil {
		return nil, fmt.Errorf("engine config: stake address: %w", err)
	}

	return &RoundServiceImpl{
		roundRepo:       roundRepo,
		ticketRepo:      ticketRepo,
		partRepo:        partRepo,
		commitmentRepo:  commitmentRepo,
		winnerRepo:      winnerRepo,
		vault:           vault,
		roles:           roles,
		ticketFee:       cfg.TicketFee,
		saleDuration:    time.Duration(cfg.SaleDuration) * time.Second,
		refundAvailTime: time.Duration(cfg.RefundAvailTime) * time.Second,
		claimDuration:   time.Duration(cfg.ClaimDuration) * time.Second,
		committer:       committer,
		donateAddr:      donate,
		corporateAddr:   corporate,
		operationAddr:   operation,
		stakeAddr:       stake,
		donateBps:       cfg.DonateBps,
		corporateBps:    cfg.CorporateBps,
		operationBps:    cfg.OperationBps,
		stakeBps:        cfg.StakeBps,
		now:             time.Now,
	}, nil
}

// latestRound returns the most recent round, or nil when no round exists yet.
func (s *RoundServiceImpl) latestRound(ctx context.Context) (*models.Round, error) {
	round, err := s.roundRepo.FindLatest(ctx)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load latest round: %w", err)
	}
	return round, nil
}

func (s *RoundServiceImpl) requireAdmin(ctx context.Context, caller common.Address) error {
	isAdmin, err := s.roles.IsAdmin(ctx, caller)
	if err != nil {
		return fmt.Errorf("failed to check admin role: %w", err)
	}
	if !isAdmin {
		return ErrNotAdmin
	}
	return nil
}

// StartRound opens the next round. The previous round must be ended; the new
// round's deposits are seeded from the previous round's carry-forward and
// the commitment signature is registered before any ticket can be sold.
func (s *RoundServiceImpl) StartRound(ctx context.Context, caller common.Address, commitSignature []byte) (*models.Round, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireAdmin(ctx, caller); err != nil {
		return nil, err
	}
	if len(commitSignature) != ethcrypto.SignatureLength {
		return nil, fmt.Errorf("commitment signature must be %d bytes", ethcrypto.SignatureLength)
	}

	prev, err := s.latestRound(ctx)
	if err != nil {
		return nil, err
	}
	if prev != nil && prev.Status != models.RoundStatusEnded {
		return nil, ErrLastRoundNotEnded
	}

	newID := uint64(1)
	carriedIn := int64(0)
	if prev != nil {
		newID = prev.RoundID + 1
		carriedIn = prev.CarriedOutAmount
	}

	if carriedIn > 0 {
		if err := s.vault.Carry(ctx, prev.RoundID, newID, carriedIn); err != nil {
			return nil, fmt.Errorf("failed to carry pool into round %d: %w", newID, err)
		}
	}

	now := s.now()
	round := &models.Round{
		RoundID:         newID,
		Status:          models.RoundStatusProceeding,
		StartedAt:       now,
		DepositedAmount: carriedIn,
	}
	if err := s.roundRepo.Create(ctx, round); err != nil {
		return nil, fmt.Errorf("failed to create round: %w", err)
	}

	commitment := &models.RngCommitment{
		RoundID:            newID,
		CommitterSignature: commitSignature,
	}
	if err := s.commitmentRepo.Create(ctx, commitment); err != nil {
		return nil, fmt.Errorf("failed to store commitment: %w", err)
	}

	slog.Info("Round started", "roundId", newID, "carriedIn", carriedIn, "caller", utils.AddressKey(caller))
	return round, nil
}

// BuyTicket burns five caller-owned parts covering the five categories,
// deposits the ticket fee via permit and mints a ticket whose type-class is
// derived from the burned parts.
func (s *RoundServiceImpl) BuyTicket(ctx context.Context, caller common.Address, partIDs []uint64, permitDeadline int64, permitSignature []byte) (*models.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	round, err := s.latestRound(ctx)
	if err != nil {
		return nil, err
	}
	if round == nil || round.Status != models.RoundStatusProceeding {
		return nil, ErrRoundNotProceeding
	}

	if len(partIDs) != models.PartCategoryCount {
		return nil, ErrInvalidParts
	}
	seen := make(map[uint64]bool, len(partIDs))
	parts := make([]*models.Part, 0, len(partIDs))
	owner := utils.AddressKey(caller)
	for _, id := range partIDs {
		if seen[id] {
			return nil, ErrInvalidParts
		}
		seen[id] = true
		part, err := s.partRepo.FindByPartID(ctx, id)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, ErrInvalidParts
			}
			return nil, fmt.Errorf("failed to load part %d: %w", id, err)
		}
		if part.Owner != owner {
			return nil, ErrNotPartOwner
		}
		parts = append(parts, part)
	}
	if !models.CoversAllCategories(parts) {
		return nil, ErrInvalidParts
	}

	balance, err := s.vault.CoinBalanceOf(ctx, caller)
	if err != nil {
		return nil, err
	}
	if balance < s.ticketFee {
		return nil, ErrInsufficientCoin
	}

	if err := s.vault.DepositViaPermit(ctx, caller, round.RoundID, s.ticketFee, permitDeadline, permitSignature); err != nil {
		return nil, err
	}

	for _, part := range parts {
		if err := s.partRepo.Delete(ctx, part.PartID); err != nil {
			return nil, fmt.Errorf("failed to burn part %d: %w", part.PartID, err)
		}
	}

	ticketID, err := s.ticketRepo.NextTicketID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate ticket id: %w", err)
	}
	ticket := &models.Ticket{
		TicketID:    ticketID,
		Owner:       owner,
		RoundID:     round.RoundID,
		TypeHash:    models.TypeHashOf(parts).Hex(),
		PartIDs:     partIDs,
		PurchasedAt: s.now(),
	}
	if err := s.ticketRepo.Create(ctx, ticket); err != nil {
		return nil, fmt.Errorf("failed to mint ticket: %w", err)
	}

	round.DepositedAmount += s.ticketFee
	if err := s.roundRepo.Update(ctx, round); err != nil {
		return nil, fmt.Errorf("failed to record deposit: %w", err)
	}

	slog.Info("Ticket purchased", "roundId", round.RoundID, "ticketId", ticketID, "owner", owner, "typeHash", ticket.TypeHash)
	return ticket, nil
}

// CloseTicketRound ends the sale once SALE_DURATION has elapsed. Only a
// holder of a ticket minted in the current round may close it — admins are
// explicitly barred so the entropy salt always comes from a non-admin actor.
func (s *RoundServiceImpl) CloseTicketRound(ctx context.Context, caller common.Address) (*models.Round, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	round, err := s.latestRound(ctx)
	if err != nil {
		return nil, err
	}
	if round == nil || round.Status != models.RoundStatusProceeding {
		return nil, ErrRoundNotProceeding
	}

	isAdmin, err := s.roles.IsAdmin(ctx, caller)
	if err != nil {
		return nil, fmt.Errorf("failed to check admin role: %w", err)
	}
	if isAdmin {
		return nil, ErrNotPermitted
	}
	held, err := s.ticketRepo.CountByOwnerAndRound(ctx, utils.AddressKey(caller), round.RoundID)
	if err != nil {
		return nil, fmt.Errorf("failed to count caller tickets: %w", err)
	}
	if held == 0 {
		return nil, ErrNotPermitted
	}

	now := s.now()
	if now.Sub(round.StartedAt) < s.saleDuration {
		return nil, ErrSaleNotOver
	}

	commitment, err := s.commitmentRepo.FindByRoundID(ctx, round.RoundID)
	if err != nil {
		return nil, fmt.Errorf("failed to load commitment: %w", err)
	}
	commitment.EntropyAt = now
	commitment.EntropyCloser = utils.AddressKey(caller)
	if err := s.commitmentRepo.Update(ctx, commitment); err != nil {
		return nil, fmt.Errorf("failed to store entropy salt: %w", err)
	}

	round.CloseTicketAt = now
	round.Status = models.RoundStatusDrawing
	if err := s.roundRepo.Update(ctx, round); err != nil {
		return nil, fmt.Errorf("failed to close round: %w", err)
	}

	slog.Info("Ticket sale closed", "roundId", round.RoundID, "closer", utils.AddressKey(caller))
	return round, nil
}

// SettleRound verifies the revealed seed against the pre-registered
// commitment, mixes it with the sale-close entropy salt and settles the
// current round on the drawn type-class. A reveal mismatch is fatal and
// leaves the round in DRAWING.
func (s *RoundServiceImpl) SettleRound(ctx context.Context, caller common.Address, revealedSeed []byte) (*models.Round, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireAdmin(ctx, caller); err != nil {
		return nil, err
	}
	round, err := s.latestRound(ctx)
	if err != nil {
		return nil, err
	}
	if round == nil || round.Status != models.RoundStatusDrawing {
		return nil, ErrRoundNotDrawing
	}

	commitment, err := s.commitmentRepo.FindByRoundID(ctx, round.RoundID)
	if err != nil {
		return nil, fmt.Errorf("failed to load commitment: %w", err)
	}
	ok, err := commitreveal.VerifyReveal(s.committer, round.RoundID, revealedSeed, commitment.CommitterSignature)
	if err != nil || !ok {
		slog.Warn("Seed reveal rejected", "roundId", round.RoundID, "error", err)
		return nil, ErrInvalidReveal
	}

	randomness := commitreveal.Mix(commitment.EntropyAt, common.HexToAddress(commitment.EntropyCloser), revealedSeed)

	typeHashes, err := s.ticketRepo.DistinctTypeHashes(ctx, round.RoundID)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate type-classes: %w", err)
	}
	sort.Strings(typeHashes) // deterministic indexing independent of store order

	var winningHash common.Hash
	if len(typeHashes) > 0 {
		winningHash = common.HexToHash(typeHashes[commitreveal.WinnerIndex(randomness, len(typeHashes))])
	}

	commitment.RevealedSeed = revealedSeed
	commitment.FinalRandomness = randomness.Hex()
	if err := s.commitmentRepo.Update(ctx, commitment); err != nil {
		return nil, fmt.Errorf("failed to store reveal: %w", err)
	}

	return s.settle(ctx, round, winningHash, false)
}

// SettleRoundForced settles a round on an operator-supplied winning hash,
// bypassing reveal verification. Governance override path only.
func (s *RoundServiceImpl) SettleRoundForced(ctx context.Context, caller common.Address, roundID uint64, winningHash common.Hash) (*models.Round, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireAdmin(ctx, caller); err != nil {
		return nil, err
	}
	round, err := s.roundRepo.FindByRoundID(ctx, roundID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrRoundNotDrawing
		}
		return nil, fmt.Errorf("failed to load round %d: %w", roundID, err)
	}
	if round.Status != models.RoundStatusDrawing {
		return nil, ErrRoundNotDrawing
	}
	return s.settle(ctx, round, winningHash, true)
}

// settle runs the settlement algorithm and moves the round to CLAIMING.
// Fixed-share amounts leave the pool immediately; the prize pool stays
// escrowed for individual claims.
func (s *RoundServiceImpl) settle(ctx context.Context, round *models.Round, winningHash common.Hash, forced bool) (*models.Round, error) {
	winnerCount, err := s.ticketRepo.CountByRoundAndTypeHash(ctx, round.RoundID, winningHash.Hex())
	if err != nil {
		return nil, fmt.Errorf("failed to count winners: %w", err)
	}

	split := splitDeposits(round.DepositedAmount, winnerCount, s.donateBps, s.corporateBps, s.operationBps, s.stakeBps)

	if winnerCount > 0 {
		payouts := []struct {
			to     common.Address
			amount int64
		}{
			{s.donateAddr, split.Donate},
			{s.corporateAddr, split.Corporate},
			{s.operationAddr, split.Operation},
			{s.stakeAddr, split.Staked},
		}
		for _, p := range payouts {
			if err := s.vault.PayOut(ctx, round.RoundID, p.to, p.amount); err != nil {
				return nil, fmt.Errorf("failed to pay fixed share: %w", err)
			}
		}
	}

	record := &models.WinnerRecord{
		RoundID:     round.RoundID,
		WinningHash: winningHash.Hex(),
		WinnerCount: int(winnerCount),
		Forced:      forced,
	}
	if err := s.winnerRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to store winner record: %w", err)
	}

	round.DonateAmount = split.Donate
	round.CorporateAmount = split.Corporate
	round.OperationAmount = split.Operation
	round.StakedAmount = split.Staked
	round.TotalPrizePayout = split.TotalPrizePayout
	round.PrizePerWinner = split.PrizePerWinner
	round.CarriedOutAmount = split.CarriedOut
	round.Status = models.RoundStatusClaiming
	round.SettledAt = s.now()
	if err := s.roundRepo.Update(ctx, round); err != nil {
		return nil, fmt.Errorf("failed to store settlement: %w", err)
	}

	slog.Info("Round settled",
		"roundId", round.RoundID,
		"winningHash", record.WinningHash,
		"winnerCount", winnerCount,
		"prizePerWinner", split.PrizePerWinner,
		"carriedOut", split.CarriedOut,
		"forced", forced,
	)
	return round, nil
}

// Claim pays prizePerWinner to the holder of a winning ticket and burns the
// ticket, so a second claim on the same ticket fails on ownership lookup.
func (s *RoundServiceImpl) Claim(ctx context.Context, caller common.Address, roundID, ticketID uint64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	round, err := s.roundRepo.FindByRoundID(ctx, roundID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, ErrRoundNotClaiming
		}
		return 0, fmt.Errorf("failed to load round %d: %w", roundID, err)
	}
	if round.Status != models.RoundStatusClaiming {
		return 0, ErrRoundNotClaiming
	}

	ticket, err := s.ticketRepo.FindByTicketID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, ErrNotOwner
		}
		return 0, fmt.Errorf("failed to load ticket %d: %w", ticketID, err)
	}
	if ticket.Owner != utils.AddressKey(caller) {
		return 0, ErrNotOwner
	}
	if ticket.RoundID != roundID {
		return 0, ErrNotWinner
	}

	record, err := s.winnerRepo.FindByRoundID(ctx, roundID)
	if err != nil {
		return 0, fmt.Errorf("failed to load winner record: %w", err)
	}
	if ticket.TypeHash != record.WinningHash {
		return 0, ErrNotWinner
	}

	amount := round.PrizePerWinner
	if round.ClaimedAmount+amount > round.TotalPrizePayout {
		return 0, ErrVaultUnderflow
	}
	if err := s.vault.PayOut(ctx, roundID, caller, amount); err != nil {
		return 0, err
	}
	if err := s.ticketRepo.Delete(ctx, ticketID); err != nil {
		return 0, fmt.Errorf("failed to burn ticket %d: %w", ticketID, err)
	}

	round.ClaimedAmount += amount
	if err := s.roundRepo.Update(ctx, round); err != nil {
		return 0, fmt.Errorf("failed to record claim: %w", err)
	}

	slog.Info("Prize claimed", "roundId", roundID, "ticketId", ticketID, "owner", ticket.Owner, "amount", amount)
	return amount, nil
}

// isRefundEligible is the derived Refunding pseudo-state: a round is
// refundable when neither close nor settlement has advanced it within the
// refund window of its start. Nothing is persisted for it.
func (s *RoundServiceImpl) isRefundEligible(round *models.Round, now time.Time) bool {
	if round.Status != models.RoundStatusProceeding && round.Status != models.RoundStatusDrawing {
		return false
	}
	return now.Sub(round.StartedAt) >= s.refundAvailTime
}

// Refund returns the ticket fee for a ticket of a stalled round and burns
// the ticket.
func (s *RoundServiceImpl) Refund(ctx context.Context, caller common.Address, roundID, ticketID uint64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	round, err := s.roundRepo.FindByRoundID(ctx, roundID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, ErrRefundNotAvailable
		}
		return 0, fmt.Errorf("failed to load round %d: %w", roundID, err)
	}
	now := s.now()
	if !s.isRefundEligible(round, now) {
		return 0, ErrRefundNotAvailable
	}

	ticket, err := s.ticketRepo.FindByTicketID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, ErrNotOwner
		}
		return 0, fmt.Errorf("failed to load ticket %d: %w", ticketID, err)
	}
	if ticket.Owner != utils.AddressKey(caller) || ticket.RoundID != roundID {
		return 0, ErrNotOwner
	}

	if err := s.vault.PayOut(ctx, roundID, caller, s.ticketFee); err != nil {
		return 0, err
	}
	if err := s.ticketRepo.Delete(ctx, ticketID); err != nil {
		return 0, fmt.Errorf("failed to burn ticket %d: %w", ticketID, err)
	}

	round.DepositedAmount -= s.ticketFee
	if round.RefundedAt.IsZero() {
		round.RefundedAt = now
	}
	if err := s.roundRepo.Update(ctx, round); err != nil {
		return 0, fmt.Errorf("failed to record refund: %w", err)
	}

	slog.Info("Ticket refunded", "roundId", roundID, "ticketId", ticketID, "owner", ticket.Owner, "amount", s.ticketFee)
	return s.ticketFee, nil
}

// EndRound permanently closes a round once its claim window (or, for a
// never-settled round, its stall window) has passed, enabling the next
// StartRound. A never-settled round carries its remaining deposits forward.
func (s *RoundServiceImpl) EndRound(ctx context.Context, caller common.Address, roundID uint64) (*models.Round, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireAdmin(ctx, caller); err != nil {
		return nil, err
	}
	round, err := s.roundRepo.FindByRoundID(ctx, roundID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrRoundNotStarted
		}
		return nil, fmt.Errorf("failed to load round %d: %w", roundID, err)
	}
	if round.Status == models.RoundStatusEnded {
		return nil, ErrRoundAlreadyEnded
	}

	now := s.now()
	if !round.SettledAt.IsZero() {
		if now.Sub(round.SettledAt) < s.claimDuration {
			return nil, ErrEndTooEarly
		}
	} else {
		if now.Sub(round.StartedAt) < s.refundAvailTime {
			return nil, ErrEndTooEarly
		}
		// Nothing was distributed; conserve the remaining deposits.
		round.CarriedOutAmount = round.DepositedAmount
	}

	round.Status = models.RoundStatusEnded
	round.EndedAt = now
	if err := s.roundRepo.Update(ctx, round); err != nil {
		return nil, fmt.Errorf("failed to end round: %w", err)
	}

	slog.Info("Round ended", "roundId", roundID, "carriedOut", round.CarriedOutAmount)
	return round, nil
}

// CurrentRoundID returns the id of the most recent round, 0 when no round
// has ever started.
func (s *RoundServiceImpl) CurrentRoundID(ctx context.Context) (uint64, error) {
	round, err := s.latestRound(ctx)
	if err != nil {
		return 0, err
	}
	if round == nil {
		return 0, nil
	}
	return round.RoundID, nil
}

// GetRoundStatus returns the status of a round, NOT_STARTED for ids that
// have not begun.
func (s *RoundServiceImpl) GetRoundStatus(ctx context.Context, roundID uint64) (models.RoundStatus, error) {
	if roundID == 0 {
		return models.RoundStatusNotStarted, nil
	}
	round, err := s.roundRepo.FindByRoundID(ctx, roundID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.RoundStatusNotStarted, nil
		}
		return "", fmt.Errorf("failed to load round %d: %w", roundID, err)
	}
	return round.Status, nil
}

// RoundSettleInfo returns the settlement summary for a round.
func (s *RoundServiceImpl) RoundSettleInfo(ctx context.Context, roundID uint64) (*models.RoundSettleInfo, error) {
	round, err := s.roundRepo.FindByRoundID(ctx, roundID)
	if err != nil {
		return nil, err
	}
	return &models.RoundSettleInfo{
		RoundID:          round.RoundID,
		Status:           round.Status,
		SettledAt:        round.SettledAt,
		DepositedAmount:  round.DepositedAmount,
		ClaimedAmount:    round.ClaimedAmount,
		TotalPrizePayout: round.TotalPrizePayout,
		PrizePerWinner:   round.PrizePerWinner,
		DonateAmount:     round.DonateAmount,
		CorporateAmount:  round.CorporateAmount,
		OperationAmount:  round.OperationAmount,
		StakedAmount:     round.StakedAmount,
		CarriedOutAmount: round.CarriedOutAmount,
	}, nil
}

// RoundWinnerInfo returns the winner record for a round. Before settlement
// the record reports the zero hash and no winners.
func (s *RoundServiceImpl) RoundWinnerInfo(ctx context.Context, roundID uint64) (*models.WinnerRecord, error) {
	record, err := s.winnerRepo.FindByRoundID(ctx, roundID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			if _, rerr := s.roundRepo.FindByRoundID(ctx, roundID); rerr != nil {
				return nil, rerr
			}
			return &models.WinnerRecord{RoundID: roundID, WinningHash: models.ZeroHash}, nil
		}
		return nil, fmt.Errorf("failed to load winner record: %w", err)
	}
	return record, nil
}

// RemainTimeCloseTicketRound returns the seconds until the current round's
// sale may close, or RemainTimeNotApplicable when the round is not
// proceeding.
func (s *RoundServiceImpl) RemainTimeCloseTicketRound(ctx context.Context) (int64, error) {
	round, err := s.latestRound(ctx)
	if err != nil {
		return 0, err
	}
	if round == nil || round.Status != models.RoundStatusProceeding {
		return RemainTimeNotApplicable, nil
	}
	return remainSeconds(round.StartedAt.Add(s.saleDuration), s.now()), nil
}

// RemainTimeRefund returns the seconds until refunds open on the current
// round, or RemainTimeNotApplicable when the round cannot stall anymore.
func (s *RoundServiceImpl) RemainTimeRefund(ctx context.Context) (int64, error) {
	round, err := s.latestRound(ctx)
	if err != nil {
		return 0, err
	}
	if round == nil || (round.Status != models.RoundStatusProceeding && round.Status != models.RoundStatusDrawing) {
		return RemainTimeNotApplicable, nil
	}
	return remainSeconds(round.StartedAt.Add(s.refundAvailTime), s.now()), nil
}

func remainSeconds(deadline, now time.Time) int64 {
	if !now.Before(deadline) {
		return 0
	}
	return int64(deadline.Sub(now) / time.Second)
}
