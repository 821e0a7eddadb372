package gesture

import (
	"math"
	"sync"

	"github.com/krockxz/taskflow/types"
)

// DefaultThreshold is the minimum pointer travel, in display units, before
// a press becomes a drag.
const DefaultThreshold = 5.0

// Point is a pointer position in display units.
type Point struct {
	X float64
	Y float64
}

// Distance returns the Euclidean distance to another point.
func (p Point) Distance(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// IntentSink receives the single mutation intent produced by a completed
// drag. Typically this is Board.Apply wrapped by the UI layer.
type IntentSink func(intent types.MutationIntent)

// Tracker is the drag gesture state machine.
//
// Transitions:
//
//	Idle → Pending:    PointerDown on an item
//	Pending → Active:  PointerMove beyond the threshold
//	Pending → Idle:    PointerUp before the threshold (a click)
//	Active → Dropped:  PointerUp over a valid lane target
//	Active/Pending → Cancelled: Cancel (escape, focus loss)
//
// Dropped and Cancelled immediately settle back to Idle; State never
// observes them. Invalid transitions return errors rather than corrupting
// the active drag.
//
// All methods are safe for concurrent use, although the expected caller is
// a single UI event loop.
type Tracker struct {
	mu        sync.Mutex
	threshold float64
	sink      IntentSink
	metrics   types.GestureMetrics

	state   types.DragState
	item    types.ItemID
	from    types.LaneID
	origin  Point
	current Point
}

// New creates a drag tracker.
//
// Parameters:
//   - threshold: Minimum pointer travel before a press becomes a drag
//     (DefaultThreshold when <= 0)
//   - sink: Receiver for produced intents (may be nil; intents are still
//     returned from PointerUp)
//
// Returns:
//   - *Tracker: New tracker in the Idle state
func New(threshold float64, sink IntentSink) *Tracker {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	return &Tracker{
		threshold: threshold,
		sink:      sink,
		state:     types.DragIdle,
	}
}

// SetMetrics sets the metrics collector for drag outcomes.
//
// Optional. If not set, metrics are not recorded.
func (t *Tracker) SetMetrics(metrics types.GestureMetrics) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.metrics = metrics
}

// State returns the current drag state (Idle, Pending, or Dragging).
func (t *Tracker) State() types.DragState {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.state
}

// Preview returns the dragged item and its pointer position while a drag is
// active.
//
// The preview is a transient overlay concern: it never mutates the
// canonical partition.
//
// Returns:
//   - types.ItemID: The dragged item ("" when no drag is active)
//   - Point: Current pointer position
//   - bool: true if a drag is active
func (t *Tracker) Preview() (types.ItemID, Point, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != types.DragActive {
		return "", Point{}, false
	}

	return t.item, t.current, true
}

// PointerDown begins tracking a press on a work item.
//
// Starting a new press while another drag is active is not a supported
// transition; the UI layer must not allow it, and the tracker rejects it.
//
// Parameters:
//   - item: The pressed work item
//   - from: The lane the item currently occupies
//   - at: Pointer position at press time
//
// Returns:
//   - error: ErrDragActive if a drag is already being tracked,
//     ErrInvalidIntent if item or lane is empty
func (t *Tracker) PointerDown(item types.ItemID, from types.LaneID, at Point) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != types.DragIdle {
		return types.ErrDragActive
	}
	if item == "" || from == "" {
		return types.ErrInvalidIntent
	}

	t.state = types.DragPending
	t.item = item
	t.from = from
	t.origin = at
	t.current = at

	return nil
}

// PointerMove updates the pointer position.
//
// A pending press becomes an active drag once travel from the press origin
// exceeds the threshold. Moves while Idle are ignored.
//
// Returns:
//   - types.DragState: State after the move
func (t *Tracker) PointerMove(at Point) types.DragState {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch t.state {
	case types.DragPending:
		t.current = at
		if t.origin.Distance(at) > t.threshold {
			t.state = types.DragActive
		}
	case types.DragActive:
		t.current = at
	default:
	}

	return t.state
}

// PointerUp completes the gesture.
//
// An active drag released over a valid lane whose id differs from the
// item's current lane produces exactly one intent; release over the current
// lane or over no valid target is a no-op drop. A pending press that never
// crossed the threshold is a click, not a drag. In every case the tracker
// returns to Idle.
//
// Parameters:
//   - target: Lane under the pointer at release ("" when over no valid target)
//
// Returns:
//   - types.MutationIntent: The produced intent (zero value when none)
//   - bool: true if an intent was produced and delivered to the sink
func (t *Tracker) PointerUp(target types.LaneID) (types.MutationIntent, bool) {
	t.mu.Lock()

	state := t.state
	item, from := t.item, t.from
	t.reset()

	var (
		intent   types.MutationIntent
		produced bool
		outcome  string
	)

	switch state {
	case types.DragActive:
		if target != "" && target != from {
			intent = types.MutationIntent{Item: item, From: from, To: target}
			produced = true
			outcome = "dropped"
		} else {
			outcome = "noop"
		}
	case types.DragPending:
		// Below-threshold release is a click; not a drag outcome.
	default:
	}

	metrics := t.metrics
	sink := t.sink
	t.mu.Unlock()

	if metrics != nil && outcome != "" {
		metrics.RecordDragResolved(outcome)
	}
	if produced && sink != nil {
		sink(intent)
	}

	return intent, produced
}

// Cancel abandons the gesture with no side effects.
//
// The preview state is discarded, no intent is produced, and no underlying
// data changes.
//
// Returns:
//   - error: ErrNoActiveDrag if nothing is being tracked
func (t *Tracker) Cancel() error {
	t.mu.Lock()

	if t.state != types.DragActive && t.state != types.DragPending {
		t.mu.Unlock()
		return types.ErrNoActiveDrag
	}

	wasActive := t.state == types.DragActive
	t.reset()
	metrics := t.metrics
	t.mu.Unlock()

	if metrics != nil && wasActive {
		metrics.RecordDragResolved("cancelled")
	}

	return nil
}

// reset returns the tracker to Idle. Caller must hold t.mu.
func (t *Tracker) reset() {
	t.state = types.DragIdle
	t.item = ""
	t.from = ""
	t.origin = Point{}
	t.current = Point{}
}
