package telemetry_test

import (
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/prism/internal/adapters/telemetry"
)

type batches struct {
	mu  sync.Mutex
	got [][]string
}

func (b *batches) add(lines []string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.got = append(b.got, lines)
}

func (b *batches) get() [][]string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([][]string(nil), b.got...)
}

func TestLineBatcher_MaxLines(t *testing.T) {
	var b batches
	lb := telemetry.NewLineBatcher(clockwork.NewFakeClock(), 2, time.Hour, b.add)
	defer func() { _ = lb.Close() }()

	n, err := lb.Write([]byte("//a:b failed\n//c:"))
	require.NoError(t, err)
	assert.Equal(t, 17, n)
	assert.Empty(t, b.get())

	_, err = lb.Write([]byte("d failed\n"))
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"//a:b failed", "//c:d failed"}}, b.get())
}

func TestLineBatcher_Interval(t *testing.T) {
	var b batches
	clock := clockwork.NewFakeClock()
	lb := telemetry.NewLineBatcher(clock, 0, time.Second, b.add)
	defer func() { _ = lb.Close() }()

	_, err := lb.Write([]byte("loaded //p\npartial"))
	require.NoError(t, err)

	clock.Advance(time.Second)
	assert.Eventually(t, func() bool { return len(b.get()) == 1 }, time.Second, time.Millisecond)
	assert.Equal(t, [][]string{{"loaded //p"}}, b.get())
}

func TestLineBatcher_CloseDeliversPartialLine(t *testing.T) {
	var b batches
	lb := telemetry.NewLineBatcher(clockwork.NewFakeClock(), 0, 0, b.add)

	_, err := lb.Write([]byte("first\ntail"))
	require.NoError(t, err)
	require.NoError(t, lb.Close())
	require.NoError(t, lb.Close())
	assert.Equal(t, [][]string{{"first", "tail"}}, b.get())

	_, err = lb.Write([]byte("late\n"))
	require.Error(t, err)
	lb.Flush()
	assert.Len(t, b.get(), 1)
}
