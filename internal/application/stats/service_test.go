package stats

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/dicelog/internal/domain"
	"github.com/doeshing/dicelog/internal/infrastructure/ledger"
	"github.com/doeshing/dicelog/internal/pkg/logger"
)

var today = domain.NewDay(2024, time.March, 10)

func newFixture(t *testing.T) (*Service, *ledger.FileStore) {
	t.Helper()
	store := ledger.NewFileStore(t.TempDir(), logger.Discard())
	return &Service{Ledger: store, Logger: logger.Discard(), Today: today, Concurrency: 4}, store
}

func event(day domain.Day, d domain.Dice, rolls ...int) domain.RollEvent {
	t, _ := time.ParseInLocation(domain.DayLayout, day.String(), time.Local)
	total := 0
	for _, r := range rolls {
		total += r
	}
	return domain.RollEvent{
		Timestamp: t.Add(12 * time.Hour).UTC(),
		Dice:      d.Spec(),
		DiceCount: len(rolls),
		Rolls:     rolls,
		Total:     total,
	}
}

func seed(t *testing.T, store *ledger.FileStore, events ...domain.RollEvent) {
	t.Helper()
	ctx := context.Background()
	for _, e := range events {
		require.NoError(t, store.EnsureDay(ctx, e.Day()))
		require.NoError(t, store.Append(ctx, e.Day(), e))
	}
}

func TestQueryRange_SingleDayRoundTrip(t *testing.T) {
	svc, store := newFixture(t)
	e := event(today, domain.D20, 17)
	seed(t, store, e)

	got, err := svc.QueryRange(context.Background(), today.String(), today.String())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, e.Rolls, got[0].Rolls)
	assert.Equal(t, e.Dice, got[0].Dice)
}

func TestQueryRange_ReversedRangeIsEmpty(t *testing.T) {
	svc, store := newFixture(t)
	seed(t, store, event(today, domain.D6, 3))

	got, err := svc.QueryRange(context.Background(), "2024-03-10", "2024-03-01")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestQueryRange_InvalidBoundFallsBackToToday(t *testing.T) {
	svc, store := newFixture(t)
	seed(t, store,
		event(today, domain.D6, 4),
		event(today.AddDays(-1), domain.D6, 5),
	)

	for _, tc := range []struct{ start, end string }{
		{"", ""},
		{"not-a-date", "2024-03-10"},
		{"2024-03-01", "2024-13-45"},
	} {
		got, err := svc.QueryRange(context.Background(), tc.start, tc.end)
		require.NoError(t, err)
		require.Len(t, got, 1, "range %q..%q", tc.start, tc.end)
		assert.Equal(t, []int{4}, got[0].Rolls)
	}
}

func TestQueryRange_ManyDaysPreserveOrder(t *testing.T) {
	svc, store := newFixture(t)
	start := today.AddDays(-9)
	var want []int
	for i := 0; i < 10; i++ {
		day := start.AddDays(i)
		// Every other day has no ledger at all.
		if i%2 == 1 {
			continue
		}
		for j := 0; j < 3; j++ {
			roll := (i+j)%6 + 1
			seed(t, store, event(day, domain.D6, roll))
			want = append(want, roll)
		}
	}

	got, err := svc.QueryRange(context.Background(), start.String(), today.String())
	require.NoError(t, err)
	require.Len(t, got, len(want))
	for i, e := range got {
		assert.Equal(t, want[i], e.Rolls[0], "event %d", i)
	}
}

func TestQueryRange_CorruptDayDoesNotHideOthers(t *testing.T) {
	svc, store := newFixture(t)
	yesterday := today.AddDays(-1)
	seed(t, store, event(today, domain.D8, 8))
	require.NoError(t, os.WriteFile(store.PathFor(yesterday), []byte("{oops"), domain.FilePermissions))

	got, err := svc.QueryRange(context.Background(), yesterday.String(), today.String())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, []int{8}, got[0].Rolls)
}

type failingStore struct{}

func (failingStore) EnsureDay(context.Context, domain.Day) error { return nil }
func (failingStore) Append(context.Context, domain.Day, domain.RollEvent) error {
	return nil
}
func (failingStore) ReadDay(context.Context, domain.Day) ([]domain.RollEvent, error) {
	return nil, &domain.StorageError{Op: "read", Path: "x", Err: errors.New("permission denied")}
}
func (failingStore) Days(context.Context) ([]domain.Day, error) { return nil, nil }
func (failingStore) Location() string                           { return "failing" }

func TestQueryRange_StorageErrorPropagates(t *testing.T) {
	svc := &Service{Ledger: failingStore{}, Today: today}
	_, err := svc.QueryRange(context.Background(), "2024-03-01", "2024-03-02")
	var storageErr *domain.StorageError
	require.True(t, errors.As(err, &storageErr))
}

func TestReport_HistogramsPerStatsDie(t *testing.T) {
	svc, store := newFixture(t)
	seed(t, store,
		event(today, domain.D6, 1, 6, 6),
		event(today, domain.D20, 20),
		event(today, domain.D2, 2),
		event(today, domain.D2Separate, 1, 2),
	)

	report, err := svc.Report(context.Background(), today.String(), today.String())
	require.NoError(t, err)
	assert.Equal(t, 4, report.Events)
	assert.Equal(t, []domain.Day{today}, report.Days)
	require.Len(t, report.Histograms, len(domain.StatsDice()))

	d6, ok := report.Histogram(6)
	require.True(t, ok)
	assert.Equal(t, 3, d6.Total())
	assert.Equal(t, 1, d6.Faces[0].Count)
	assert.Equal(t, 2, d6.Faces[5].Count)

	d2, ok := report.Histogram(2)
	require.True(t, ok)
	assert.Equal(t, 3, d2.Total(), "both d2 display modes share a histogram")

	d20, ok := report.Histogram(20)
	require.True(t, ok)
	assert.Equal(t, 1, d20.Faces[19].Count)
}

func TestReport_RejectsOutOfRangeOutcomes(t *testing.T) {
	svc, store := newFixture(t)
	seed(t, store, event(today, domain.D4, 2, 9, 0))

	report, err := svc.Report(context.Background(), "", "")
	require.NoError(t, err)
	d4, ok := report.Histogram(4)
	require.True(t, ok)
	assert.Equal(t, 1, d4.Total())
	assert.Equal(t, 2, d4.Rejected)
}

func TestQueryRange_LegacyFile(t *testing.T) {
	svc, store := newFixture(t)
	legacy := `[{"date":"2022-09-02T10:00:00.000Z","diceType":{"diceNum":12,"diceName":"d12","display":"add"},"diceCount":1,"rolls":[11],"modifier":0,"total":11}]`
	path := filepath.Join(store.Location(), "dice_roll_log_2022-09-02.json")
	require.NoError(t, os.WriteFile(path, []byte(legacy), domain.FilePermissions))

	got, err := svc.QueryRange(context.Background(), "2022-09-02", "2022-09-02")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, []int{11}, got[0].Rolls)
}
