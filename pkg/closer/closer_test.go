package closer

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloser_ClosesInReverseOrder(t *testing.T) {
	c := NewCloser(0)

	var order []string
	c.AddFunc("http", func() { order = append(order, "http") })
	c.AddFunc("dispatcher", func() { order = append(order, "dispatcher") })
	c.AddFunc("redis", func() { order = append(order, "redis") })

	require.NoError(t, c.Close(context.Background()))
	assert.Equal(t, []string{"redis", "dispatcher", "http"}, order)
}

func TestCloser_CollectsNamedErrors(t *testing.T) {
	c := NewCloser(0)
	c.Add("redis", func(context.Context) error { return errors.New("connection closed") })
	c.AddFunc("http", func() {})

	err := c.Close(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "[!] redis: connection closed")
}

func TestCloser_CloseRunsOnce(t *testing.T) {
	c := NewCloser(0)
	calls := 0
	c.AddFunc("counter", func() { calls++ })

	require.NoError(t, c.Close(context.Background()))
	require.NoError(t, c.Close(context.Background()))
	assert.Equal(t, 1, calls)
}

func TestCloser_ForcesRemainingOnTimeout(t *testing.T) {
	c := NewCloser(100 * time.Millisecond)

	var mu sync.Mutex
	var forced []string
	c.AddFunc("first", func() {
		mu.Lock()
		forced = append(forced, "first")
		mu.Unlock()
	})
	c.Add("slow", func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := c.Close(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "shutdown interrupted")
	assert.Contains(t, err.Error(), "[FORCED] slow")

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"first"}, forced)
}
