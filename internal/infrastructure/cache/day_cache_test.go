package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/dicelog/internal/domain"
	"github.com/doeshing/dicelog/internal/infrastructure/ledger"
	"github.com/doeshing/dicelog/internal/pkg/logger"
	"github.com/doeshing/dicelog/internal/ports"
)

type countingStore struct {
	ports.LedgerStore
	reads map[domain.Day]int
}

func (s *countingStore) ReadDay(ctx context.Context, day domain.Day) ([]domain.RollEvent, error) {
	s.reads[day]++
	return s.LedgerStore.ReadDay(ctx, day)
}

func newCounting(t *testing.T) *countingStore {
	return &countingStore{
		LedgerStore: ledger.NewFileStore(t.TempDir(), logger.Discard()),
		reads:       map[domain.Day]int{},
	}
}

func event(day domain.Day, roll int) domain.RollEvent {
	noon, _ := time.ParseInLocation(domain.DayLayout, day.String(), time.Local)
	return domain.RollEvent{
		ID:        "evt",
		Timestamp: noon.Add(12 * time.Hour).UTC(),
		Dice:      domain.D6.Spec(),
		DiceCount: 1,
		Rolls:     []int{roll},
		Total:     roll,
	}
}

func TestDayCache_CachesPastDaysOnly(t *testing.T) {
	ctx := context.Background()
	today := domain.NewDay(2024, time.March, 10)
	yesterday := today.AddDays(-1)
	store := newCounting(t)
	c := NewDayCache(store, today, 0, logger.Discard())

	require.NoError(t, c.EnsureDay(ctx, yesterday))
	require.NoError(t, c.Append(ctx, yesterday, event(yesterday, 4)))
	require.NoError(t, c.EnsureDay(ctx, today))

	for i := 0; i < 3; i++ {
		events, err := c.ReadDay(ctx, yesterday)
		require.NoError(t, err)
		assert.Len(t, events, 1)
		_, err = c.ReadDay(ctx, today)
		require.NoError(t, err)
	}

	assert.Equal(t, 1, store.reads[yesterday])
	assert.Equal(t, 3, store.reads[today])
	assert.Equal(t, 1, c.Len())

	// Writes to a returned event must not reach the cached day.
	events, err := c.ReadDay(ctx, yesterday)
	require.NoError(t, err)
	events[0].Rolls[0] = 99
	events[0].Total = 99

	again, err := c.ReadDay(ctx, yesterday)
	require.NoError(t, err)
	assert.Equal(t, []int{4}, again[0].Rolls)
	assert.Equal(t, 4, again[0].Total)
}

func TestDayCache_FirstReadIsDetached(t *testing.T) {
	ctx := context.Background()
	today := domain.NewDay(2024, time.March, 10)
	day := today.AddDays(-1)
	c := NewDayCache(newCounting(t), today, 0, logger.Discard())

	require.NoError(t, c.EnsureDay(ctx, day))
	require.NoError(t, c.Append(ctx, day, event(day, 5)))

	first, err := c.ReadDay(ctx, day)
	require.NoError(t, err)
	first[0].Rolls[0] = 1

	cached, err := c.ReadDay(ctx, day)
	require.NoError(t, err)
	assert.Equal(t, []int{5}, cached[0].Rolls)
}

func TestDayCache_AppendInvalidates(t *testing.T) {
	ctx := context.Background()
	today := domain.NewDay(2024, time.March, 10)
	day := today.AddDays(-2)
	c := NewDayCache(newCounting(t), today, 0, logger.Discard())

	require.NoError(t, c.EnsureDay(ctx, day))
	events, err := c.ReadDay(ctx, day)
	require.NoError(t, err)
	assert.Empty(t, events)

	require.NoError(t, c.Append(ctx, day, event(day, 2)))
	events, err = c.ReadDay(ctx, day)
	require.NoError(t, err)
	assert.Len(t, events, 1)
}

func TestDayCache_Evicts(t *testing.T) {
	ctx := context.Background()
	today := domain.NewDay(2024, time.March, 10)
	c := NewDayCache(newCounting(t), today, 2, logger.Discard())

	for i := 1; i <= 5; i++ {
		_, err := c.ReadDay(ctx, today.AddDays(-i))
		require.NoError(t, err)
	}
	assert.Equal(t, 2, c.Len())
}
