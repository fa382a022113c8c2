package internal

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRuntime(t *testing.T) {
	t.Run("force flag is per goroutine", func(t *testing.T) {
		defer ReleaseRuntime()

		node := mount("", nil)
		u := CreateUpdate(0, SyncLane, nil)
		u.Kind = ForceUpdate
		EnqueueUpdate(node, u)
		wip := begin(node)

		res := ProcessUpdateQueue(wip, nil, nil, SyncLane)
		assert.True(t, res.ForceUpdate)
		assert.True(t, GetRuntime().HasForceUpdate())

		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer ReleaseRuntime()
			assert.False(t, GetRuntime().HasForceUpdate())
		}()
		wg.Wait()

		GetRuntime().ResetForceUpdate()
		assert.False(t, GetRuntime().HasForceUpdate())
	})

	t.Run("release starts over", func(t *testing.T) {
		r := GetRuntime()
		assert.Same(t, r, GetRuntime())

		ReleaseRuntime()
		assert.NotSame(t, r, GetRuntime())
		ReleaseRuntime()
	})

	t.Run("processing is scoped to the pass", func(t *testing.T) {
		defer ReleaseRuntime()

		node := mount("", nil)
		r := GetRuntime()
		assert.False(t, r.IsProcessing(node.Queue))

		restore := r.enterProcessing(node.Queue)
		assert.True(t, r.IsProcessing(node.Queue))
		assert.False(t, r.IsProcessing(nil))

		restore()
		assert.False(t, r.IsProcessing(node.Queue))
	})
}
