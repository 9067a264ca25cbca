// Package admission orchestrates spend-bundle submission into the mempool:
// entry construction, conflict resolution, the advisory fee gate, and the
// status surface polled by wallet-facing callers.
package admission

import (
	"fmt"
	"sync"

	"github.com/driftchain/driftnet-chain/internal/chain"
	dlog "github.com/driftchain/driftnet-chain/internal/log"
	"github.com/driftchain/driftnet-chain/internal/mempool"
	"github.com/driftchain/driftnet-chain/pkg/spend"
	"github.com/driftchain/driftnet-chain/pkg/types"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog"
)

// CoinView answers whether a coin exists in the confirmed set. The manager
// uses it to drop stale items when the pool is rebuilt at a new tip.
// A nil view disables the check.
type CoinView interface {
	Has(id types.CoinID) (bool, error)
}

// outcomeHistory bounds the terminal-status cache serving Status polls.
const outcomeHistory = 10_000

// Manager owns the current pool instance and serializes every access to
// it, which is the concurrency contract the pool itself leaves to its
// caller. Swapping pools on a tip change happens here too.
type Manager struct {
	mu       sync.Mutex
	pool     *mempool.Pool
	capacity int
	coins    CoinView
	outcomes *lru.Cache[types.Hash, Result]
	logger   zerolog.Logger

	// floorFeeRate is the operator-configured admission floor. Zero
	// disables it. Distinct from the pool's fullness-driven minimum.
	floorFeeRate float64
}

// New creates a manager with an empty pool bound to the given tip.
func New(tip chain.Tip, capacity int, coins CoinView) (*Manager, error) {
	outcomes, err := lru.New[types.Hash, Result](outcomeHistory)
	if err != nil {
		return nil, fmt.Errorf("outcome cache: %w", err)
	}
	return &Manager{
		pool:     mempool.New(tip, capacity),
		capacity: capacity,
		coins:    coins,
		outcomes: outcomes,
		logger:   dlog.WithComponent("admission"),
	}, nil
}

// SetMinFeeRate sets the operator floor fee rate. Submissions below it
// fail outright. Zero disables the floor.
func (m *Manager) SetMinFeeRate(rate float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.floorFeeRate = rate
}

// SetOutcomeHistory resizes the terminal-status cache.
func (m *Manager) SetOutcomeHistory(n int) {
	if n <= 0 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.outcomes.Resize(n)
}

// BuildItem derives the admission record for a bundle: id, coin sets, fee
// and fee-per-cost rate. It performs no validity checking — that is the
// consensus validator's job, upstream of admission.
func BuildItem(b *spend.Bundle) (*mempool.Item, error) {
	fee, err := b.Fee()
	if err != nil {
		return nil, err
	}
	cost := b.Cost()
	var feeRate float64
	if cost > 0 {
		feeRate = float64(fee) / float64(cost)
	}
	return &mempool.Item{
		ID:       b.Hash(),
		Fee:      fee,
		Cost:     cost,
		FeeRate:  feeRate,
		Consumed: b.Consumed(),
		Produced: b.Produced(),
		Bundle:   b,
	}, nil
}

// Submit offers a bundle for admission and returns the outcome. The same
// outcome is retrievable later via Status.
func (m *Manager) Submit(b *spend.Bundle) Result {
	m.mu.Lock()
	defer m.mu.Unlock()

	item, err := BuildItem(b)
	if err != nil {
		res := Result{Status: StatusFailed, Reason: err.Error()}
		m.outcomes.Add(b.Hash(), res)
		return res
	}
	return m.admitLocked(item)
}

// admitLocked runs conflict resolution and the advisory fee gate, then
// admits. Caller holds m.mu.
func (m *Manager) admitLocked(item *mempool.Item) Result {
	if m.pool.Has(item.ID) {
		return Result{Status: StatusSuccess, Reason: "already in mempool"}
	}

	if m.floorFeeRate > 0 && item.FeeRate < m.floorFeeRate {
		res := Result{
			Status: StatusFailed,
			Reason: fmt.Sprintf("fee rate %g below node minimum %g", item.FeeRate, m.floorFeeRate),
		}
		m.outcomes.Add(item.ID, res)
		return res
	}

	// Conflict detection: a pending item already spends one of the
	// candidate's coins. Replace only when the candidate strictly
	// out-pays every incumbent it conflicts with; otherwise reject.
	incumbents := make(map[types.Hash]*mempool.Item)
	for _, coin := range item.Consumed {
		if inc, ok := m.pool.ConsumerOf(coin); ok {
			incumbents[inc.ID] = inc
		}
	}
	for _, inc := range incumbents {
		if item.FeeRate <= inc.FeeRate {
			res := Result{
				Status: StatusFailed,
				Reason: fmt.Sprintf("conflicting spend: coin already spent by %s at fee rate %g", inc.ID, inc.FeeRate),
			}
			m.outcomes.Add(item.ID, res)
			return res
		}
	}
	for _, inc := range incumbents {
		m.pool.Remove(inc)
		m.outcomes.Add(inc.ID, Result{
			Status: StatusFailed,
			Reason: fmt.Sprintf("replaced by %s at higher fee rate", item.ID),
		})
		m.logger.Debug().
			Str("old", inc.ID.String()).
			Str("new", item.ID.String()).
			Msg("replaced conflicting item")
	}

	// Advisory fee gate: when full, a candidate must beat the current
	// minimum before it is worth evicting for.
	if m.pool.Full() && item.FeeRate <= m.pool.MinFeeRate() {
		res := Result{
			Status: StatusPending,
			Reason: fmt.Sprintf("fee rate %g at or below pool minimum %g", item.FeeRate, m.pool.MinFeeRate()),
		}
		m.outcomes.Add(item.ID, res)
		return res
	}

	// Note the expected eviction victim so its outcome can be recorded.
	var victim *mempool.Item
	if m.pool.Full() {
		victim, _ = m.pool.Min()
	}

	m.pool.Admit(item)

	if victim != nil && !m.pool.Has(victim.ID) {
		m.outcomes.Add(victim.ID, Result{
			Status: StatusFailed,
			Reason: "evicted: displaced by a higher fee rate",
		})
	}
	if !m.pool.Has(item.ID) {
		// Capacity-0 pool: the admit evicted the candidate itself.
		res := Result{Status: StatusPending, Reason: "evicted at admission: pool capacity is zero"}
		m.outcomes.Add(item.ID, res)
		return res
	}

	m.logger.Debug().
		Str("id", item.ID.String()).
		Float64("fee_rate", item.FeeRate).
		Int("count", m.pool.Count()).
		Msg("admitted")
	return Result{Status: StatusSuccess}
}

// Status reports the standing of a submitted bundle: SUCCESS while it is
// admitted, otherwise the recorded outcome. ok is false when the id is
// unknown (never submitted, or its outcome has aged out of the cache).
func (m *Manager) Status(id types.Hash) (Result, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.pool.Has(id) {
		return Result{Status: StatusSuccess}, true
	}
	return m.outcomes.Get(id)
}

// RemoveConfirmed removes items whose bundles were included in a block.
// Polls for them keep answering SUCCESS.
func (m *Manager) RemoveConfirmed(ids []types.Hash) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range ids {
		item, ok := m.pool.Get(id)
		if !ok {
			continue
		}
		m.pool.Remove(item)
		m.outcomes.Add(id, Result{Status: StatusSuccess, Reason: "included in block"})
	}
}

// NewTip rebuilds the pool against a new chain head and re-offers every
// previously admitted item, best fee rate first. Items whose consumed
// coins are no longer in the confirmed set are dropped.
func (m *Manager) NewTip(tip chain.Tip) {
	m.mu.Lock()
	defer m.mu.Unlock()

	old := m.pool.SelectByFeeRate(0)
	m.pool = mempool.New(tip, m.capacity)

	for _, item := range old {
		if !m.coinsAvailable(item) {
			m.outcomes.Add(item.ID, Result{Status: StatusFailed, Reason: "coin spent at new tip"})
			continue
		}
		m.admitLocked(item)
	}

	m.logger.Info().
		Str("tip", tip.String()).
		Int("offered", len(old)).
		Int("kept", m.pool.Count()).
		Msg("mempool rebuilt at new tip")
}

func (m *Manager) coinsAvailable(item *mempool.Item) bool {
	if m.coins == nil {
		return true
	}
	for _, c := range item.Consumed {
		ok, err := m.coins.Has(c)
		if err != nil || !ok {
			return false
		}
	}
	return true
}

// Template returns admitted items ordered by fee rate descending, up to
// limit (limit <= 0 returns all).
func (m *Manager) Template(limit int) []*mempool.Item {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pool.SelectByFeeRate(limit)
}

// Get retrieves an admitted item by id.
func (m *Manager) Get(id types.Hash) (*mempool.Item, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pool.Get(id)
}

// Count returns the number of admitted items.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pool.Count()
}

// Capacity returns the pool's capacity.
func (m *Manager) Capacity() int {
	return m.capacity
}

// Full reports whether the pool is at capacity.
func (m *Manager) Full() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pool.Full()
}

// MinFeeRate returns the pool's advisory admission threshold.
func (m *Manager) MinFeeRate() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pool.MinFeeRate()
}

// Tip returns the chain tip the current pool is bound to.
func (m *Manager) Tip() chain.Tip {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pool.Tip()
}
