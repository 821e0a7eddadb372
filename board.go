package taskflow

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/puzpuzpuz/xsync/v4"

	"github.com/krockxz/taskflow/internal/audit"
	"github.com/krockxz/taskflow/internal/hooks"
	"github.com/krockxz/taskflow/internal/logger"
	"github.com/krockxz/taskflow/internal/metrics"
	"github.com/krockxz/taskflow/partition"
	"github.com/krockxz/taskflow/types"
)

// Board is the optimistic mutation controller for one kanban board.
//
// Board is the main entry point of the taskflow library. It handles:
//   - Canonical work item state, fetched from the remote service
//   - Optimistic reassignment with rollback on remote failure
//   - An in-flight guard rejecting racing mutations per item
//   - Partition recompute and fan-out after every visible change
//   - Invalidation-triggered refetch with debounce coalescing
//
// Thread Safety:
//   - All public methods are safe for concurrent use
//   - Partition snapshots are copy-on-write; a returned snapshot never
//     mutates under the caller
//
// Lifecycle:
//   - Create with NewBoard()
//   - Call Start() to load canonical state and begin the refetch loop
//   - Use hooks to react to mutation resolutions and partition changes
//   - Call Stop() for graceful shutdown
//
// Testing:
// Consumers can define minimal interfaces for mocking:
//
//	type Reassigner interface {
//	    Apply(ctx context.Context, intent taskflow.MutationIntent) (taskflow.MutationResult, error)
//	}
type Board struct {
	cfg    Config
	remote types.RemoteService

	// Optional dependencies
	hooks       *Hooks
	metrics     MetricsCollector
	logger      Logger
	auditor     *audit.Recorder
	participant types.ParticipantID

	// Canonical state. items is the last fetched item list; overrides
	// holds exactly the optimistic assignments of in-flight mutations.
	// When a mutation resolves its override is removed, so the canonical
	// value wins automatically on the next recompute.
	mu        sync.Mutex
	items     []types.WorkItem
	lanes     []types.LaneID
	overrides map[types.ItemID]types.LaneID

	// In-flight guard, keyed by item. An entry exists exactly while one
	// mutation round trip is outstanding for that item.
	inFlight *xsync.Map[types.ItemID, inFlightMutation]

	// Partition fan-out
	snapshot    atomic.Value // types.PartitionMap
	subscribers *xsync.Map[uint64, *partitionSubscriber]
	nextSubID   atomic.Uint64

	// Refetch pipeline. Capacity 1: an invalidation signal that arrives
	// while one is pending folds into it.
	refetchCh chan struct{}

	// Lifecycle management
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	lifeMu sync.Mutex
}

// inFlightMutation snapshots what rollback needs: the lane membership the
// item held before the optimistic apply.
type inFlightMutation struct {
	prev    types.LaneID
	started time.Time
}

// partitionSubscriber wraps a subscriber channel with close-once semantics.
// The mutex covers both the closed check and the send so a concurrent close
// can never race a send on the same channel.
type partitionSubscriber struct {
	ch      chan types.PartitionMap
	mu      sync.Mutex
	closed  bool
	metrics MetricsCollector
}

// trySend delivers a partition snapshot without blocking. Snapshots for
// slow subscribers are dropped; the next recompute supersedes them anyway.
func (s *partitionSubscriber) trySend(p types.PartitionMap) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	select {
	case s.ch <- p:
	default:
		s.metrics.RecordPartitionEventDropped()
	}
}

// close safely closes the subscriber's channel.
func (s *partitionSubscriber) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	close(s.ch)
}

// NewBoard creates a new Board instance with the provided configuration.
//
// Returns a concrete *Board struct following the "accept interfaces,
// return structs" principle. Consumers can define their own interfaces
// for testing if needed.
//
// Parameters:
//   - cfg: Runtime configuration with parsed durations
//   - remote: Remote service boundary for mutations and fetches
//   - lanes: Known lane identities (real assignees; the unassigned
//     sentinel is implied and must not be listed)
//   - opts: Optional configuration (hooks, metrics, logger, audit trail)
//
// Returns:
//   - *Board: Initialized board instance
//   - error: Validation error if configuration is invalid
//
// Example:
//
//	cfg := taskflow.DefaultConfig()
//	remote, _ := transport.NewHTTPRemote("https://api.example.com/v1", nil)
//	board, err := taskflow.NewBoard(&cfg, remote, []taskflow.LaneID{"alice", "bob"})
func NewBoard(cfg *Config, remote types.RemoteService, lanes []types.LaneID, opts ...Option) (*Board, error) {
	if cfg == nil {
		return nil, ErrInvalidConfig
	}
	if remote == nil {
		return nil, ErrRemoteServiceRequired
	}
	if len(lanes) == 0 {
		return nil, ErrNoLanes
	}

	// Fill in missing configuration values with defaults
	SetDefaults(cfg)

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	// Apply options
	options := &boardOptions{}
	for _, opt := range opts {
		opt(options)
	}

	// Provide safe defaults for optional dependencies to avoid nil checks everywhere
	metricsCollector := options.metrics
	if metricsCollector == nil {
		metricsCollector = metrics.NewNop()
	}

	loggerInstance := options.logger
	if loggerInstance == nil {
		loggerInstance = logger.NewNop()
	}

	// Validate with warnings after logger is available
	cfg.ValidateWithWarnings(loggerInstance)

	hooksInstance := options.hooks
	if hooksInstance == nil {
		nopHooks := hooks.NewNop()
		hooksInstance = &nopHooks
	}

	var auditor *audit.Recorder
	if options.auditConn != nil {
		recorder, err := audit.New(options.auditConn, options.auditStream, options.auditPrefix)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize audit trail: %w", err)
		}
		recorder.SetLogger(loggerInstance)
		auditor = recorder
	}

	b := &Board{
		cfg:         *cfg,
		remote:      remote,
		hooks:       hooksInstance,
		metrics:     metricsCollector,
		logger:      loggerInstance,
		auditor:     auditor,
		participant: options.participant,
		lanes:       normalizeLanes(lanes),
		overrides:   make(map[types.ItemID]types.LaneID),
		inFlight:    xsync.NewMap[types.ItemID, inFlightMutation](),
		subscribers: xsync.NewMap[uint64, *partitionSubscriber](),
		refetchCh:   make(chan struct{}, 1),
	}

	b.snapshot.Store(types.PartitionMap(nil))

	return b, nil
}

// normalizeLanes copies the lane list, dropping the unassigned sentinel
// (it is always implied) and duplicates.
func normalizeLanes(lanes []types.LaneID) []types.LaneID {
	seen := make(map[types.LaneID]struct{}, len(lanes))
	out := make([]types.LaneID, 0, len(lanes))
	for _, lane := range lanes {
		if lane.IsUnassigned() {
			continue
		}
		if _, ok := seen[lane]; ok {
			continue
		}
		seen[lane] = struct{}{}
		out = append(out, lane)
	}

	return out
}

// Start loads canonical state and begins the refetch loop.
//
// Blocks until the initial fetch completes and the first partition
// snapshot is published.
//
// Parameters:
//   - ctx: Context for startup cancellation and timeout
//
// Returns:
//   - error: Startup error or context cancellation
func (b *Board) Start(ctx context.Context) error {
	b.lifeMu.Lock()
	if b.ctx != nil {
		b.lifeMu.Unlock()

		return ErrAlreadyStarted
	}

	// Create board context with independent lifetime; the startup context
	// only bounds Start itself.
	b.ctx, b.cancel = context.WithCancel(context.Background())
	b.lifeMu.Unlock()

	if b.auditor != nil {
		if err := b.auditor.EnsureStream(ctx); err != nil {
			return fmt.Errorf("failed to ensure audit stream: %w", err)
		}
	}

	// Initial canonical load
	fetchCtx, cancel := context.WithTimeout(ctx, b.cfg.FetchTimeout)
	defer cancel()

	items, err := b.remote.FetchItems(fetchCtx)
	if err != nil {
		b.metrics.RecordRefetch(false)

		return fmt.Errorf("failed to fetch initial items: %w", err)
	}
	b.metrics.RecordRefetch(true)

	b.mu.Lock()
	b.items = items
	b.recomputeLocked()
	b.mu.Unlock()

	b.logger.Info("board started", "items", len(items), "lane_count", len(b.lanes))

	b.wg.Add(1)
	go b.refetchLoop()

	return nil
}

// Stop gracefully shuts down the board.
//
// Safe to call multiple times; subsequent calls return ErrNotStarted.
// Outstanding mutation round trips are abandoned: their overrides are
// dropped and no further hooks fire for them.
//
// Parameters:
//   - ctx: Context for shutdown timeout
//
// Returns:
//   - error: Shutdown error or timeout
func (b *Board) Stop(ctx context.Context) error {
	b.lifeMu.Lock()
	if b.ctx == nil {
		b.lifeMu.Unlock()

		return ErrNotStarted
	}
	if b.ctx.Err() != nil {
		b.lifeMu.Unlock()

		return ErrNotStarted
	}

	b.cancel()
	b.lifeMu.Unlock()

	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		b.logger.Error("shutdown timeout exceeded, refetch loop may still be running")

		return ctx.Err()
	}

	// Close subscriber channels after the refetch loop stopped publishing.
	b.subscribers.Range(func(id uint64, sub *partitionSubscriber) bool {
		sub.close()
		b.subscribers.Delete(id)

		return true
	})

	b.logger.Info("board stopped gracefully")

	return nil
}

// Apply runs one optimistic mutation cycle for a reassignment intent.
//
// The cycle: validate, discard no-ops, reject racing intents on the same
// item, apply the change optimistically (visible in the next partition
// snapshot before any network round trip), call the remote endpoint, then
// confirm or roll back. Rollback restores the exact pre-apply lane
// membership, not a refetched approximation.
//
// The returned error is non-nil for rejected and reverted outcomes; use
// the result's Outcome to distinguish them. No-op intents return
// OutcomeNoOp with a nil error.
//
// Parameters:
//   - ctx: Context bounding the remote round trip (combined with
//     MutationTimeout)
//
// Returns:
//   - MutationResult: Resolution of the cycle
//   - error: ErrInvalidIntent, ErrMutationInFlight, ErrNotStarted, or the
//     remote failure that caused a revert
func (b *Board) Apply(ctx context.Context, intent types.MutationIntent) (types.MutationResult, error) {
	if !b.started() {
		return types.MutationResult{Intent: intent, Outcome: types.OutcomeRejected, Err: ErrNotStarted}, ErrNotStarted
	}

	if err := intent.Validate(); err != nil {
		result := types.MutationResult{Intent: intent, Outcome: types.OutcomeRejected, Err: err}
		b.metrics.RecordMutationResolved(result.Outcome.String(), 0)

		return result, err
	}

	if intent.IsNoOp() {
		result := types.MutationResult{Intent: intent, Outcome: types.OutcomeNoOp}
		b.metrics.RecordMutationResolved(result.Outcome.String(), 0)

		return result, nil
	}

	// In-flight guard: at most one outstanding mutation per item. Racing
	// intents are rejected outright, never queued.
	entry := inFlightMutation{prev: intent.From, started: time.Now()}
	if _, loaded := b.inFlight.LoadOrStore(intent.Item, entry); loaded {
		result := types.MutationResult{Intent: intent, Outcome: types.OutcomeRejected, Err: ErrMutationInFlight}
		b.metrics.RecordMutationResolved(result.Outcome.String(), 0)

		return result, ErrMutationInFlight
	}
	b.metrics.RecordInFlight(b.inFlight.Size())

	// Optimistic apply: the override makes the move visible in the next
	// snapshot; canonical items are untouched until confirmation.
	b.mu.Lock()
	b.overrides[intent.Item] = intent.To
	b.recomputeLocked()
	b.mu.Unlock()

	b.runHook(func(h *Hooks) func(context.Context) error {
		if h.OnMutationApplied == nil {
			return nil
		}

		return func(hctx context.Context) error { return h.OnMutationApplied(hctx, intent) }
	}, "mutation applied")

	callCtx, cancel := context.WithTimeout(ctx, b.cfg.MutationTimeout)
	defer cancel()

	canonical, err := b.remote.Reassign(callCtx, intent.Item, intent.To)
	elapsed := time.Since(entry.started)

	if err != nil {
		b.rollback(intent)
		result := types.MutationResult{Intent: intent, Outcome: types.OutcomeReverted, Err: err, Elapsed: elapsed}
		b.resolve(result)

		return result, err
	}

	b.confirm(intent, canonical)
	result := types.MutationResult{Intent: intent, Outcome: types.OutcomeConfirmed, Elapsed: elapsed}
	b.resolve(result)

	if b.auditor != nil {
		b.recordAudit([]audit.Event{{
			Item:   intent.Item,
			Action: "reassign",
			Actor:  b.participant,
			From:   intent.From,
			To:     intent.To,
		}})
	}

	return result, nil
}

// confirm folds the canonical post-mutation item into local state and
// releases the in-flight entry. The override is removed rather than kept:
// the canonical item now carries the new assignee, so the recompute
// resolves identically without it.
func (b *Board) confirm(intent types.MutationIntent, canonical types.WorkItem) {
	b.mu.Lock()
	for i := range b.items {
		if b.items[i].ID == canonical.ID {
			b.items[i] = canonical
			break
		}
	}
	delete(b.overrides, intent.Item)
	b.recomputeLocked()
	b.mu.Unlock()

	b.inFlight.Delete(intent.Item)
	b.metrics.RecordInFlight(b.inFlight.Size())
}

// rollback removes the optimistic override and releases the in-flight
// entry. The next recompute resolves the item from its untouched canonical
// assignee, which is exactly the pre-apply membership.
func (b *Board) rollback(intent types.MutationIntent) {
	b.mu.Lock()
	delete(b.overrides, intent.Item)
	b.recomputeLocked()
	b.mu.Unlock()

	b.inFlight.Delete(intent.Item)
	b.metrics.RecordInFlight(b.inFlight.Size())
}

// resolve records metrics and fires the resolution hook for a completed
// mutation cycle.
func (b *Board) resolve(result types.MutationResult) {
	b.metrics.RecordMutationResolved(result.Outcome.String(), result.Elapsed.Seconds())

	if result.Outcome == types.OutcomeReverted {
		b.logger.Warn("mutation reverted",
			"item", result.Intent.Item,
			"from", result.Intent.From,
			"to", result.Intent.To,
			"error", result.Err,
		)
	}

	b.runHook(func(h *Hooks) func(context.Context) error {
		if h.OnMutationResolved == nil {
			return nil
		}

		return func(hctx context.Context) error { return h.OnMutationResolved(hctx, result) }
	}, "mutation resolved")
}

// ApplyBulk applies one action to a set of items through the remote bulk
// endpoint.
//
// Authorization is all-or-nothing: if any target is inaccessible the
// remote mutates nothing and ErrAccessDenied is returned. The mutation
// phase after authorization may apply partially; the result lists the
// items actually mutated, and only those are folded into local state and
// audited. Bulk actions are not applied optimistically because the
// authorization outcome cannot be predicted locally.
//
// Parameters:
//   - ctx: Context bounding the remote round trip (combined with
//     MutationTimeout)
//   - items: Target item ids
//   - action: The action to apply
//
// Returns:
//   - BulkResult: Items actually mutated
//   - error: ErrInvalidPayload, ErrAccessDenied, ErrMutationInFlight, or
//     a transport failure
func (b *Board) ApplyBulk(ctx context.Context, items []types.ItemID, action types.BulkAction) (types.BulkResult, error) {
	if !b.started() {
		return types.BulkResult{}, ErrNotStarted
	}

	if err := action.Validate(); err != nil {
		return types.BulkResult{}, err
	}
	if len(items) == 0 {
		return types.BulkResult{}, nil
	}

	// Reject if any target has an outstanding single mutation: its
	// rollback snapshot would no longer describe reality after a bulk
	// change lands on the same item.
	for _, item := range items {
		if _, ok := b.inFlight.Load(item); ok {
			return types.BulkResult{}, fmt.Errorf("%w: %s", ErrMutationInFlight, item)
		}
	}

	callCtx, cancel := context.WithTimeout(ctx, b.cfg.MutationTimeout)
	defer cancel()

	result, err := b.remote.BulkApply(callCtx, items, action)
	if err != nil {
		b.metrics.RecordBulkAction(string(action.Name), 0, false)
		b.logger.Warn("bulk action failed", "action", action.Name, "targets", len(items), "error", err)

		return types.BulkResult{}, err
	}

	b.metrics.RecordBulkAction(string(action.Name), len(result.Affected), true)

	b.mu.Lock()
	b.applyBulkLocked(result.Affected, action)
	b.recomputeLocked()
	b.mu.Unlock()

	if b.auditor != nil && !action.IsDestructive() {
		events := make([]audit.Event, 0, len(result.Affected))
		for _, item := range result.Affected {
			events = append(events, audit.Event{
				Item:   item,
				Action: string(action.Name),
				Actor:  b.participant,
				To:     action.Assignee,
			})
		}
		b.recordAudit(events)
	}

	return result, nil
}

// applyBulkLocked folds a confirmed bulk action into the canonical item
// list for the affected items only. Callers hold b.mu.
func (b *Board) applyBulkLocked(affected []types.ItemID, action types.BulkAction) {
	hit := make(map[types.ItemID]struct{}, len(affected))
	for _, id := range affected {
		hit[id] = struct{}{}
	}

	switch action.Name {
	case types.BulkDelete:
		kept := b.items[:0]
		for _, item := range b.items {
			if _, ok := hit[item.ID]; !ok {
				kept = append(kept, item)
			}
		}
		b.items = kept
	case types.BulkReassign:
		for i := range b.items {
			if _, ok := hit[b.items[i].ID]; ok {
				b.items[i].Assignee = action.Assignee
			}
		}
	case types.BulkSetStatus:
		for i := range b.items {
			if _, ok := hit[b.items[i].ID]; ok {
				b.items[i].Status = action.Status
			}
		}
	case types.BulkSetPriority:
		for i := range b.items {
			if _, ok := hit[b.items[i].ID]; ok {
				b.items[i].Priority = action.Priority
			}
		}
	}
}

// Invalidate requests a canonical refetch.
//
// Idempotent and non-blocking: signals arriving while a refetch is
// pending fold into it, and signals arriving within RefetchDebounce of
// each other collapse into one fetch. Safe to call from transport
// callbacks.
func (b *Board) Invalidate() {
	select {
	case b.refetchCh <- struct{}{}:
	default:
	}
}

// Partition returns the current partition snapshot.
//
// The snapshot is complete and immutable: every known lane plus the
// unassigned sentinel, with optimistic overrides applied for in-flight
// mutations. A nil map is returned before Start.
//
// Returns:
//   - PartitionMap: Current snapshot (safe to retain)
func (b *Board) Partition() types.PartitionMap {
	if p, ok := b.snapshot.Load().(types.PartitionMap); ok {
		return p
	}

	return nil
}

// SubscribePartition returns a channel receiving partition snapshots.
//
// The current snapshot is delivered immediately, then every recompute.
// Slow subscribers have intermediate snapshots dropped rather than
// blocking the mutation path; the latest snapshot always arrives
// eventually.
//
// Returns:
//   - <-chan PartitionMap: Snapshot channel (closed on Stop or unsubscribe)
//   - func(): Unsubscribe function, safe to call multiple times
func (b *Board) SubscribePartition() (<-chan types.PartitionMap, func()) {
	sub := &partitionSubscriber{ch: make(chan types.PartitionMap, 4), metrics: b.metrics}
	id := b.nextSubID.Add(1)
	b.subscribers.Store(id, sub)

	if p := b.Partition(); p != nil {
		sub.trySend(p)
	}

	unsubscribe := func() {
		if s, ok := b.subscribers.LoadAndDelete(id); ok {
			s.close()
		}
	}

	return sub.ch, unsubscribe
}

// Lanes returns a copy of the known lane identities, excluding the
// unassigned sentinel.
func (b *Board) Lanes() []types.LaneID {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]types.LaneID, len(b.lanes))
	copy(out, b.lanes)

	return out
}

// UpdateLanes replaces the known lane set and recomputes the partition.
//
// Items whose assignee is no longer a known lane degrade into the
// unassigned bucket on the recompute; nothing is dropped.
//
// Parameters:
//   - lanes: New lane identities
//
// Returns:
//   - error: ErrNoLanes when the list is empty
func (b *Board) UpdateLanes(lanes []types.LaneID) error {
	normalized := normalizeLanes(lanes)
	if len(normalized) == 0 {
		return ErrNoLanes
	}

	b.mu.Lock()
	b.lanes = normalized
	b.recomputeLocked()
	b.mu.Unlock()

	return nil
}

// InFlight reports whether the item has an outstanding mutation.
func (b *Board) InFlight(item types.ItemID) bool {
	_, ok := b.inFlight.Load(item)

	return ok
}

// started reports whether the board is between Start and Stop.
func (b *Board) started() bool {
	b.lifeMu.Lock()
	defer b.lifeMu.Unlock()

	return b.ctx != nil && b.ctx.Err() == nil
}

// recomputeLocked rebuilds the partition snapshot and publishes it.
// Callers hold b.mu.
func (b *Board) recomputeLocked() {
	start := time.Now()
	snapshot := partition.Compute(b.items, b.lanes, b.overrides)
	b.snapshot.Store(snapshot)
	b.metrics.RecordPartitionCompute(len(b.items), time.Since(start).Seconds())

	b.subscribers.Range(func(_ uint64, sub *partitionSubscriber) bool {
		sub.trySend(snapshot)

		return true
	})

	b.runHook(func(h *Hooks) func(context.Context) error {
		if h.OnPartitionChanged == nil {
			return nil
		}

		return func(hctx context.Context) error { return h.OnPartitionChanged(hctx, snapshot) }
	}, "partition changed")
}

// refetchLoop serves invalidation signals for the board's lifetime.
//
// Each served signal waits RefetchDebounce for trailing duplicates before
// fetching, so a burst of invalidations costs one canonical fetch.
func (b *Board) refetchLoop() {
	defer b.wg.Done()

	for {
		select {
		case <-b.ctx.Done():
			return
		case <-b.refetchCh:
			if b.cfg.RefetchDebounce > 0 {
				timer := time.NewTimer(b.cfg.RefetchDebounce)
				select {
				case <-b.ctx.Done():
					timer.Stop()

					return
				case <-timer.C:
				}
				// Drain the signal that may have accumulated during the
				// debounce window; this fetch covers it.
				select {
				case <-b.refetchCh:
				default:
				}
			}

			b.refetch()
		}
	}
}

// refetch replaces canonical items wholesale from the remote service.
//
// Overrides are left untouched: an in-flight optimistic assignment wins
// over the refetched canonical value until its mutation resolves.
func (b *Board) refetch() {
	ctx, cancel := context.WithTimeout(b.ctx, b.cfg.FetchTimeout)
	defer cancel()

	items, err := b.remote.FetchItems(ctx)
	if err != nil {
		b.metrics.RecordRefetch(false)
		b.logger.Warn("refetch failed", "error", err)
		b.runHook(func(h *Hooks) func(context.Context) error {
			if h.OnError == nil {
				return nil
			}

			return func(hctx context.Context) error { return h.OnError(hctx, err) }
		}, "refetch error")

		return
	}

	b.metrics.RecordRefetch(true)

	b.mu.Lock()
	b.items = items
	b.recomputeLocked()
	b.mu.Unlock()

	b.logger.Debug("canonical state refetched", "items", len(items))
}

// recordAudit appends audit events in the background; failures are logged
// and reported through OnError but never affect the mutation outcome.
func (b *Board) recordAudit(events []audit.Event) {
	if len(events) == 0 {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(b.ctx, b.cfg.MutationTimeout)
		defer cancel()

		if err := b.auditor.RecordAll(ctx, events); err != nil {
			b.logger.Warn("audit trail write failed", "events", len(events), "error", err)
			b.runHook(func(h *Hooks) func(context.Context) error {
				if h.OnError == nil {
					return nil
				}

				return func(hctx context.Context) error { return h.OnError(hctx, err) }
			}, "audit error")
		}
	}()
}

// runHook fires a hook in the background with the board's lifecycle
// context, logging (never propagating) its error.
func (b *Board) runHook(pick func(*Hooks) func(context.Context) error, name string) {
	fn := pick(b.hooks)
	if fn == nil {
		return
	}

	hctx := b.ctx
	if hctx == nil {
		hctx = context.Background()
	}

	go func() {
		if err := fn(hctx); err != nil {
			b.logger.Error("hook error", "hook", name, "error", err)
		}
	}()
}
