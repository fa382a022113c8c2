package internal

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommitUpdateQueue(t *testing.T) {
	t.Run("runs callbacks in application order", func(t *testing.T) {
		log := []string{}

		current := mount("", appendConfig())
		wip := begin(current)

		a := enqueueText(wip, SyncLane, "A")
		a.SetCallback(func() { log = append(log, "a") })
		enqueueText(wip, SyncLane, "B")
		c := enqueueText(wip, SyncLane, "C")
		c.SetCallback(func(instance any) { log = append(log, "c "+instance.(string)) })

		ProcessUpdateQueue(wip, nil, nil, SyncLane)
		assert.True(t, wip.Flags.Has(FlagCallback))

		err := CommitUpdateQueue(wip.Queue, "instance")
		require.NoError(t, err)

		assert.Equal(t, []string{"a", "c instance"}, log)
		assert.Nil(t, wip.Queue.Effects)
		assert.Nil(t, a.Callback())

		require.NoError(t, CommitUpdateQueue(wip.Queue, "instance"))
		assert.Equal(t, []string{"a", "c instance"}, log)
	})

	t.Run("invalid callback", func(t *testing.T) {
		log := []string{}

		current := mount("", appendConfig())
		wip := begin(current)

		enqueueText(wip, SyncLane, "A").SetCallback(func() { log = append(log, "a") })
		enqueueText(wip, SyncLane, "B").SetCallback(42)
		enqueueText(wip, SyncLane, "C").SetCallback(func() { log = append(log, "c") })

		ProcessUpdateQueue(wip, nil, nil, SyncLane)
		err := CommitUpdateQueue(wip.Queue, nil)

		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidCallback))

		var callbackErr *CallbackError
		require.True(t, errors.As(err, &callbackErr))
		assert.Equal(t, 1, callbackErr.Index)
		assert.Equal(t, 42, callbackErr.Callback)
		assert.Equal(t, []string{"a"}, log)

		// the callbacks after the invalid one wait for the next commit
		require.Len(t, wip.Queue.Effects, 1)
		require.NoError(t, CommitUpdateQueue(wip.Queue, nil))
		assert.Equal(t, []string{"a", "c"}, log)
	})

	t.Run("fires once across a rebase", func(t *testing.T) {
		log := []string{}

		current := mount("", appendConfig())
		wip := begin(current)

		enqueueText(wip, DefaultLane, "A").SetCallback(func() { log = append(log, "a") })
		enqueueText(wip, SyncLane, "B").SetCallback(func() { log = append(log, "b") })

		res := ProcessUpdateQueue(wip, nil, nil, SyncLane)
		require.Equal(t, "B", res.State)
		require.NoError(t, CommitUpdateQueue(wip.Queue, nil))
		assert.Equal(t, []string{"b"}, log)

		// B is replayed on top of A, its clone must not fire again
		current = wip
		wip = begin(current)
		res = ProcessUpdateQueue(wip, nil, nil, DefaultLane)
		require.Equal(t, "AB", res.State)
		require.NoError(t, CommitUpdateQueue(wip.Queue, nil))

		assert.Equal(t, []string{"b", "a"}, log)
	})

	t.Run("discarded pass does not consume callbacks", func(t *testing.T) {
		log := []string{}

		current := mount("", appendConfig())
		enqueueText(current, SyncLane, "A").SetCallback(func() { log = append(log, "a") })

		wip := begin(current)
		ProcessUpdateQueue(wip, nil, nil, SyncLane)

		// thrown away before commit
		wip = begin(current)
		ProcessUpdateQueue(wip, nil, nil, SyncLane)
		require.NoError(t, CommitUpdateQueue(wip.Queue, nil))

		assert.Equal(t, []string{"a"}, log)
		assert.Empty(t, current.Queue.Effects)
	})
}
