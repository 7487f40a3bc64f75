package telemetry_test

import (
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/bundle/internal/adapters/telemetry"
)

type chunks struct {
	mu  sync.Mutex
	got []string
}

func (c *chunks) add(p []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.got = append(c.got, string(p))
}

func (c *chunks) all() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.got...)
}

func TestBatchProcessor_FlushesOnSize(t *testing.T) {
	var c chunks
	bp := telemetry.NewBatchProcessor(8, time.Hour, c.add)

	_, err := bp.Write([]byte("1234"))
	require.NoError(t, err)
	assert.Empty(t, c.all())

	_, err = bp.Write([]byte("5678"))
	require.NoError(t, err)
	assert.Equal(t, []string{"12345678"}, c.all())
	require.NoError(t, bp.Close())
}

func TestBatchProcessor_FlushesOnTime(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var c chunks
		bp := telemetry.NewBatchProcessor(0, 0, c.add)

		_, _ = bp.Write([]byte("Copying "))
		_, _ = bp.Write([]byte("src/fonts\n"))

		time.Sleep(telemetry.DefaultTimeLimit / 2)
		synctest.Wait()
		assert.Empty(t, c.all())

		time.Sleep(telemetry.DefaultTimeLimit)
		synctest.Wait()
		assert.Equal(t, []string{"Copying src/fonts\n"}, c.all())

		require.NoError(t, bp.Close())
	})
}

func TestBatchProcessor_Close(t *testing.T) {
	var c chunks
	bp := telemetry.NewBatchProcessor(0, time.Hour, c.add)

	_, _ = bp.Write([]byte("tail"))
	require.NoError(t, bp.Close())
	require.NoError(t, bp.Close())
	assert.Equal(t, []string{"tail"}, c.all())

	_, err := bp.Write([]byte("late"))
	require.Error(t, err)
}

func TestBatchProcessor_FlushEmpty(t *testing.T) {
	var c chunks
	bp := telemetry.NewBatchProcessor(0, 0, c.add)
	bp.Flush()
	assert.Empty(t, c.all())
	require.NoError(t, bp.Close())
}
