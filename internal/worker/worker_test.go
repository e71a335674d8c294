package worker

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPool(t *testing.T) {
	p := NewPool(3)
	var mu sync.Mutex
	count := 0
	for i := 0; i < 5; i++ {
		ok := p.Submit(func() {
			mu.Lock()
			count++
			mu.Unlock()
		})
		require.True(t, ok)
	}
	p.Stop()
	require.Equal(t, 5, count)
}

func TestPoolDefaultsToOneWorker(t *testing.T) {
	p := NewPool(0)
	done := make(chan struct{})
	require.True(t, p.Submit(func() { close(done) }))
	<-done
	p.Stop()
}

func TestPoolSubmitAfterStop(t *testing.T) {
	p := NewPool(1)
	p.Stop()
	require.False(t, p.Submit(func() { t.Fatal("task must not run") }))
	require.NotPanics(t, p.Stop)
}

func TestPoolNilTask(t *testing.T) {
	p := NewPool(1)
	require.True(t, p.Submit(nil))
	p.Stop()
}
