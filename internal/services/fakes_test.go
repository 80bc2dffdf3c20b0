package services

import (
	"context"
	"crypto/ecdsa"
	"sort"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/playparts/lotto-backend/internal/config"
	"github.com/playparts/lotto-backend/internal/models"
	"github.com/playparts/lotto-backend/internal/utils"
	"github.com/playparts/lotto-backend/pkg/commitreveal"
	"github.com/playparts/lotto-backend/pkg/permit"
)

// Map-backed repository fakes. They mirror the MongoDB implementations'
// contract, including mongo.ErrNoDocuments for missing documents, so the
// services under test exercise the same error paths either way.

type fakeRoundRepo struct {
	rounds map[uint64]*models.Round
}

func newFakeRoundRepo() *fakeRoundRepo {
	return &fakeRoundRepo{rounds: make(map[uint64]*models.Round)}
}

func (r *fakeRoundRepo) Create(_ context.Context, round *models.Round) error {
	cp := *round
	r.rounds[round.RoundID] = &cp
	return nil
}

func (r *fakeRoundRepo) FindByRoundID(_ context.Context, roundID uint64) (*models.Round, error) {
	round, ok := r.rounds[roundID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	cp := *round
	return &cp, nil
}

func (r *fakeRoundRepo) FindLatest(_ context.Context) (*models.Round, error) {
	var latest *models.Round
	for _, round := range r.rounds {
		if latest == nil || round.RoundID > latest.RoundID {
			latest = round
		}
	}
	if latest == nil {
		return nil, mongo.ErrNoDocuments
	}
	cp := *latest
	return &cp, nil
}

func (r *fakeRoundRepo) Update(_ context.Context, round *models.Round) error {
	if _, ok := r.rounds[round.RoundID]; !ok {
		return mongo.ErrNoDocuments
	}
	cp := *round
	r.rounds[round.RoundID] = &cp
	return nil
}

func (r *fakeRoundRepo) FindAll(_ context.Context, _, _ int) ([]*models.Round, error) {
	out := make([]*models.Round, 0, len(r.rounds))
	for _, round := range r.rounds {
		cp := *round
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RoundID < out[j].RoundID })
	return out, nil
}

type fakeTicketRepo struct {
	tickets map[uint64]*models.Ticket
	seq     uint64
}

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{tickets: make(map[uint64]*models.Ticket)}
}

func (r *fakeTicketRepo) Create(_ context.Context, ticket *models.Ticket) error {
	cp := *ticket
	r.tickets[ticket.TicketID] = &cp
	return nil
}

func (r *fakeTicketRepo) FindByTicketID(_ context.Context, ticketID uint64) (*models.Ticket, error) {
	ticket, ok := r.tickets[ticketID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	cp := *ticket
	return &cp, nil
}

func (r *fakeTicketRepo) FindByOwner(_ context.Context, owner string) ([]*models.Ticket, error) {
	var out []*models.Ticket
	for _, t := range r.tickets {
		if t.Owner == owner {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeTicketRepo) FindByRoundID(_ context.Context, roundID uint64) ([]*models.Ticket, error) {
	var out []*models.Ticket
	for _, t := range r.tickets {
		if t.RoundID == roundID {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeTicketRepo) CountByOwnerAndRound(_ context.Context, owner string, roundID uint64) (int64, error) {
	var n int64
	for _, t := range r.tickets {
		if t.Owner == owner && t.RoundID == roundID {
			n++
		}
	}
	return n, nil
}

func (r *fakeTicketRepo) CountByRoundAndTypeHash(_ context.Context, roundID uint64, typeHash string) (int64, error) {
	var n int64
	for _, t := range r.tickets {
		if t.RoundID == roundID && t.TypeHash == typeHash {
			n++
		}
	}
	return n, nil
}

func (r *fakeTicketRepo) DistinctTypeHashes(_ context.Context, roundID uint64) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	for _, t := range r.tickets {
		if t.RoundID == roundID && !seen[t.TypeHash] {
			seen[t.TypeHash] = true
			out = append(out, t.TypeHash)
		}
	}
	return out, nil
}

func (r *fakeTicketRepo) UpdateOwner(_ context.Context, ticketID uint64, newOwner string) error {
	ticket, ok := r.tickets[ticketID]
	if !ok {
		return mongo.ErrNoDocuments
	}
	ticket.Owner = newOwner
	return nil
}

func (r *fakeTicketRepo) Delete(_ context.Context, ticketID uint64) error {
	if _, ok := r.tickets[ticketID]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(r.tickets, ticketID)
	return nil
}

func (r *fakeTicketRepo) NextTicketID(_ context.Context) (uint64, error) {
	r.seq++
	return r.seq, nil
}

type fakePartRepo struct {
	parts map[uint64]*models.Part
	seq   uint64
}

func newFakePartRepo() *fakePartRepo {
	return &fakePartRepo{parts: make(map[uint64]*models.Part)}
}

func (r *fakePartRepo) Create(_ context.Context, part *models.Part) error {
	cp := *part
	r.parts[part.PartID] = &cp
	return nil
}

func (r *fakePartRepo) FindByPartID(_ context.Context, partID uint64) (*models.Part, error) {
	part, ok := r.parts[partID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	cp := *part
	return &cp, nil
}

func (r *fakePartRepo) FindByOwner(_ context.Context, owner string) ([]*models.Part, error) {
	var out []*models.Part
	for _, p := range r.parts {
		if p.Owner == owner {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakePartRepo) Delete(_ context.Context, partID uint64) error {
	if _, ok := r.parts[partID]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(r.parts, partID)
	return nil
}

func (r *fakePartRepo) NextPartID(_ context.Context) (uint64, error) {
	r.seq++
	return r.seq, nil
}

type fakeCommitmentRepo struct {
	commitments map[uint64]*models.RngCommitment
}

func newFakeCommitmentRepo() *fakeCommitmentRepo {
	return &fakeCommitmentRepo{commitments: make(map[uint64]*models.RngCommitment)}
}

func (r *fakeCommitmentRepo) Create(_ context.Context, c *models.RngCommitment) error {
	cp := *c
	r.commitments[c.RoundID] = &cp
	return nil
}

func (r *fakeCommitmentRepo) FindByRoundID(_ context.Context, roundID uint64) (*models.RngCommitment, error) {
	c, ok := r.commitments[roundID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCommitmentRepo) Update(_ context.Context, c *models.RngCommitment) error {
	if _, ok := r.commitments[c.RoundID]; !ok {
		return mongo.ErrNoDocuments
	}
	cp := *c
	r.commitments[c.RoundID] = &cp
	return nil
}

type fakeWinnerRepo struct {
	records map[uint64]*models.WinnerRecord
}

func newFakeWinnerRepo() *fakeWinnerRepo {
	return &fakeWinnerRepo{records: make(map[uint64]*models.WinnerRecord)}
}

func (r *fakeWinnerRepo) Create(_ context.Context, record *models.WinnerRecord) error {
	cp := *record
	r.records[record.RoundID] = &cp
	return nil
}

func (r *fakeWinnerRepo) FindByRoundID(_ context.Context, roundID uint64) (*models.WinnerRecord, error) {
	record, ok := r.records[roundID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	cp := *record
	return &cp, nil
}

type fakeCoinRepo struct {
	accounts map[string]*models.CoinAccount
}

func newFakeCoinRepo() *fakeCoinRepo {
	return &fakeCoinRepo{accounts: make(map[string]*models.CoinAccount)}
}

func (r *fakeCoinRepo) FindByAddress(_ context.Context, address string) (*models.CoinAccount, error) {
	account, ok := r.accounts[address]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	cp := *account
	return &cp, nil
}

func (r *fakeCoinRepo) Upsert(_ context.Context, account *models.CoinAccount) error {
	cp := *account
	r.accounts[account.Address] = &cp
	return nil
}

type fakeVaultRepo struct {
	balances map[uint64]*models.VaultBalance
}

func newFakeVaultRepo() *fakeVaultRepo {
	return &fakeVaultRepo{balances: make(map[uint64]*models.VaultBalance)}
}

func (r *fakeVaultRepo) FindByRoundID(_ context.Context, roundID uint64) (*models.VaultBalance, error) {
	balance, ok := r.balances[roundID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	cp := *balance
	return &cp, nil
}

func (r *fakeVaultRepo) Upsert(_ context.Context, balance *models.VaultBalance) error {
	cp := *balance
	r.balances[balance.RoundID] = &cp
	return nil
}

type fakeAdminRepo struct {
	byEmail  map[string]*models.AdminUser
	byWallet map[string]*models.AdminUser
}

func newFakeAdminRepo() *fakeAdminRepo {
	return &fakeAdminRepo{
		byEmail:  make(map[string]*models.AdminUser),
		byWallet: make(map[string]*models.AdminUser),
	}
}

func (r *fakeAdminRepo) Create(_ context.Context, user *models.AdminUser) error {
	cp := *user
	r.byEmail[user.Email] = &cp
	r.byWallet[user.WalletAddress] = &cp
	return nil
}

func (r *fakeAdminRepo) FindByEmail(_ context.Context, email string) (*models.AdminUser, error) {
	user, ok := r.byEmail[email]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	cp := *user
	return &cp, nil
}

func (r *fakeAdminRepo) FindByWalletAddress(_ context.Context, address string) (*models.AdminUser, error) {
	user, ok := r.byWallet[address]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	cp := *user
	return &cp, nil
}

func (r *fakeAdminRepo) FindByID(_ context.Context, _ primitive.ObjectID) (*models.AdminUser, error) {
	return nil, mongo.ErrNoDocuments
}

func (r *fakeAdminRepo) Update(_ context.Context, user *models.AdminUser) error {
	if _, ok := r.byEmail[user.Email]; !ok {
		return mongo.ErrNoDocuments
	}
	return r.Create(context.Background(), user)
}

// testEnv wires a full engine over the fakes with a controllable clock and
// freshly generated keys for the committer, the vault spender, one admin and
// two buyers.
type testEnv struct {
	engine *RoundServiceImpl
	vault  *VaultServiceImpl

	rounds      *fakeRoundRepo
	tickets     *fakeTicketRepo
	parts       *fakePartRepo
	commitments *fakeCommitmentRepo
	winners     *fakeWinnerRepo
	coins       *fakeCoinRepo
	pools       *fakeVaultRepo

	clock time.Time

	committerKey *ecdsa.PrivateKey
	vaultAddr    common.Address
	admin        common.Address
	buyerKey     *ecdsa.PrivateKey
	buyer        common.Address
	buyer2Key    *ecdsa.PrivateKey
	buyer2       common.Address
}

const (
	testTicketFee       = int64(100)
	testSaleDuration    = int64(3600)
	testRefundAvailTime = int64(7200)
	testClaimDuration   = int64(86400)
)

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		rounds:      newFakeRoundRepo(),
		tickets:     newFakeTicketRepo(),
		parts:       newFakePartRepo(),
		commitments: newFakeCommitmentRepo(),
		winners:     newFakeWinnerRepo(),
		coins:       newFakeCoinRepo(),
		pools:       newFakeVaultRepo(),
		clock:       time.Unix(1700000000, 0),
	}

	var err error
	env.committerKey, err = ethcrypto.GenerateKey()
	require.NoError(t, err)
	env.buyerKey, err = ethcrypto.GenerateKey()
	require.NoError(t, err)
	env.buyer = ethcrypto.PubkeyToAddress(env.buyerKey.PublicKey)
	env.buyer2Key, err = ethcrypto.GenerateKey()
	require.NoError(t, err)
	env.buyer2 = ethcrypto.PubkeyToAddress(env.buyer2Key.PublicKey)

	adminKey, err := ethcrypto.GenerateKey()
	require.NoError(t, err)
	env.admin = ethcrypto.PubkeyToAddress(adminKey.PublicKey)
	env.vaultAddr = common.HexToAddress("0x00000000000000000000000000000000000000aa")

	adminRepo := newFakeAdminRepo()
	require.NoError(t, adminRepo.Create(context.Background(), &models.AdminUser{
		Email:         "ops@playparts.example",
		Role:          "admin",
		WalletAddress: utils.AddressKey(env.admin),
	}))

	env.vault = NewVaultService(env.coins, env.pools, env.vaultAddr)
	env.vault.now = env.now

	cfg := config.EngineConfig{
		TicketFee:        testTicketFee,
		SaleDuration:     testSaleDuration,
		RefundAvailTime:  testRefundAvailTime,
		ClaimDuration:    testClaimDuration,
		CommitterAddress: ethcrypto.PubkeyToAddress(env.committerKey.PublicKey).Hex(),
		VaultAddress:     env.vaultAddr.Hex(),
		DonateBps:        500,
		CorporateBps:     1000,
		OperationBps:     1000,
		StakeBps:         1500,
		DonateAddress:    "0x0000000000000000000000000000000000000001",
		CorporateAddress: "0x0000000000000000000000000000000000000002",
		OperationAddress: "0x0000000000000000000000000000000000000003",
		StakeAddress:     "0x0000000000000000000000000000000000000004",
	}
	engine, err := NewRoundService(env.rounds, env.tickets, env.parts, env.commitments, env.winners, env.vault, NewAdminRoleStore(adminRepo), cfg)
	require.NoError(t, err)
	engine.now = env.now
	env.engine = engine

	return env
}

func (e *testEnv) now() time.Time { return e.clock }

func (e *testEnv) advance(d time.Duration) { e.clock = e.clock.Add(d) }

// startRound signs a fresh seed commitment and opens the next round,
// returning the seed kept aside for the reveal.
func (e *testEnv) startRound(t *testing.T) (uint64, []byte) {
	t.Helper()
	roundID, err := e.engine.CurrentRoundID(context.Background())
	require.NoError(t, err)
	roundID++

	seed := make([]byte, commitreveal.SeedSize)
	seed[0] = byte(roundID) // distinct per round, deterministic per test
	seed[31] = 0x5e
	sig, err := commitreveal.SignCommit(roundID, seed, e.committerKey)
	require.NoError(t, err)

	round, err := e.engine.StartRound(context.Background(), e.admin, sig)
	require.NoError(t, err)
	require.Equal(t, roundID, round.RoundID)
	return roundID, seed
}

// mintParts gives owner one part of each category, all sharing code, and
// returns their ids.
func (e *testEnv) mintParts(t *testing.T, owner common.Address, code string) []uint64 {
	t.Helper()
	ids := make([]uint64, 0, models.PartCategoryCount)
	for cat := 0; cat < models.PartCategoryCount; cat++ {
		id, err := e.parts.NextPartID(context.Background())
		require.NoError(t, err)
		require.NoError(t, e.parts.Create(context.Background(), &models.Part{
			PartID:   id,
			Owner:    utils.AddressKey(owner),
			Category: cat,
			Code:     code,
		}))
		ids = append(ids, id)
	}
	return ids
}

// signPermit produces a ticket-fee permit for the owner's current nonce.
func (e *testEnv) signPermit(t *testing.T, key *ecdsa.PrivateKey, deadline int64) []byte {
	t.Helper()
	owner := ethcrypto.PubkeyToAddress(key.PublicKey)
	nonce, err := e.vault.PermitNonce(context.Background(), owner)
	require.NoError(t, err)
	sig, err := permit.Sign(owner, e.vaultAddr, testTicketFee, nonce, deadline, key)
	require.NoError(t, err)
	return sig
}

// buyTicket funds the buyer if needed and purchases a ticket from parts with
// the given type code.
func (e *testEnv) buyTicket(t *testing.T, key *ecdsa.PrivateKey, code string) *models.Ticket {
	t.Helper()
	owner := ethcrypto.PubkeyToAddress(key.PublicKey)
	balance, err := e.vault.CoinBalanceOf(context.Background(), owner)
	require.NoError(t, err)
	if balance < testTicketFee {
		require.NoError(t, e.vault.Credit(context.Background(), owner, testTicketFee))
	}

	partIDs := e.mintParts(t, owner, code)
	deadline := e.clock.Add(time.Hour).Unix()
	ticket, err := e.engine.BuyTicket(context.Background(), owner, partIDs, deadline, e.signPermit(t, key, deadline))
	require.NoError(t, err)
	return ticket
}
