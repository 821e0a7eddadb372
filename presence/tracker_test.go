package presence

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/krockxz/taskflow/types"
)

func TestTrackerJoinHeartbeatsAndObserves(t *testing.T) {
	t.Parallel()

	tr := newFakeTransport()
	tracker, err := NewTracker(tr, "alice", WithInterval(time.Hour), WithWindow(time.Minute))
	require.NoError(t, err)
	defer tracker.Close()

	leave, err := tracker.Join(context.Background(), "board")
	require.NoError(t, err)
	defer leave()

	// Our own initial heartbeat loops back through the subscription.
	require.Equal(t, []types.ParticipantID{"alice"}, tracker.Present("board"))

	// A remote participant's heartbeat lands in the roster.
	require.NoError(t, tr.Publish(context.Background(), "board", types.Heartbeat{Participant: "bob"}))
	require.Equal(t, []types.ParticipantID{"alice", "bob"}, tracker.Present("board"))
}

func TestTrackerJoinIsRefCounted(t *testing.T) {
	t.Parallel()

	tr := newFakeTransport()
	tracker, err := NewTracker(tr, "alice", WithInterval(time.Hour))
	require.NoError(t, err)
	defer tracker.Close()

	leave1, err := tracker.Join(context.Background(), "board")
	require.NoError(t, err)
	leave2, err := tracker.Join(context.Background(), "board")
	require.NoError(t, err)

	// One shared heartbeater: joining twice publishes once.
	require.Equal(t, 1, tr.publishedCount("board"))

	leave1()
	tracker.mu.Lock()
	_, stillJoined := tracker.joined["board"]
	tracker.mu.Unlock()
	require.True(t, stillJoined)

	leave2()
	tracker.mu.Lock()
	_, stillJoined = tracker.joined["board"]
	tracker.mu.Unlock()
	require.False(t, stillJoined)

	// Leave funcs are safe to call twice.
	leave2()
}

func TestTrackerMultipleChannels(t *testing.T) {
	t.Parallel()

	tr := newFakeTransport()
	tracker, err := NewTracker(tr, "alice", WithInterval(time.Hour))
	require.NoError(t, err)
	defer tracker.Close()

	leaveBoard, err := tracker.Join(context.Background(), "board")
	require.NoError(t, err)
	defer leaveBoard()

	leaveItem, err := tracker.Join(context.Background(), "item-9")
	require.NoError(t, err)
	defer leaveItem()

	require.Equal(t, []types.ParticipantID{"alice"}, tracker.Present("board"))
	require.Equal(t, []types.ParticipantID{"alice"}, tracker.Present("item-9"))
	require.Empty(t, tracker.Present("item-10"))
}

func TestTrackerRequiresSelf(t *testing.T) {
	t.Parallel()

	_, err := NewTracker(newFakeTransport(), "")
	require.ErrorIs(t, err, ErrNoParticipant)
}

func TestTrackerSubscribeSeesRemoteHeartbeats(t *testing.T) {
	t.Parallel()

	tr := newFakeTransport()
	tracker, err := NewTracker(tr, "alice", WithInterval(time.Hour))
	require.NoError(t, err)
	defer tracker.Close()

	leave, err := tracker.Join(context.Background(), "board")
	require.NoError(t, err)
	defer leave()

	ch, unsubscribe := tracker.Subscribe("board")
	defer unsubscribe()

	require.Equal(t, []types.ParticipantID{"alice"}, <-ch)

	require.NoError(t, tr.Publish(context.Background(), "board", types.Heartbeat{Participant: "carol"}))
	require.Equal(t, []types.ParticipantID{"alice", "carol"}, <-ch)
}
