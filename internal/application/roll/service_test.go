package roll

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/dicelog/internal/domain"
	"github.com/doeshing/dicelog/internal/infrastructure/ledger"
	"github.com/doeshing/dicelog/internal/pkg/logger"
	"github.com/doeshing/dicelog/internal/pkg/random"
)

type spyStore struct {
	mu       sync.Mutex
	ensured  []domain.Day
	appended []domain.RollEvent
	err      error
}

func (s *spyStore) EnsureDay(_ context.Context, day domain.Day) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensured = append(s.ensured, day)
	return nil
}

func (s *spyStore) Append(_ context.Context, _ domain.Day, event domain.RollEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.appended = append(s.appended, event)
	return nil
}

func (s *spyStore) ReadDay(context.Context, domain.Day) ([]domain.RollEvent, error) { return nil, nil }
func (s *spyStore) Days(context.Context) ([]domain.Day, error)                      { return nil, nil }
func (s *spyStore) Location() string                                                { return "spy" }

func (s *spyStore) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ensured) + len(s.appended)
}

func fixedClock() time.Time {
	return time.Date(2024, time.July, 4, 18, 30, 0, 0, time.Local)
}

func newTestService(t *testing.T, store *spyStore) *Service {
	t.Helper()
	svc, err := NewService(Options{
		Ledger: store,
		Random: random.NewSource(7),
		Logger: logger.Discard(),
		Clock:  fixedClock,
	})
	require.NoError(t, err)
	t.Cleanup(svc.Close)
	return svc
}

func TestGenerate_Properties(t *testing.T) {
	src := random.NewSource(42)
	for _, d := range domain.Catalog() {
		for _, count := range []int{1, 2, 7} {
			for _, modifier := range []int{-30, 0, 5} {
				event, err := Generate(src, d, count, modifier, fixedClock())
				require.NoError(t, err)

				spec := d.Spec()
				require.Len(t, event.Rolls, count)
				sum := 0
				for _, r := range event.Rolls {
					assert.GreaterOrEqual(t, r, 1)
					assert.LessOrEqual(t, r, spec.FaceCount)
					sum += r
				}
				assert.Equal(t, sum+modifier, event.Total)
				assert.Equal(t, count, event.DiceCount)
				assert.Equal(t, modifier, event.Modifier)
				assert.Equal(t, spec, event.Dice)
				assert.NotEmpty(t, event.ID)
			}
		}
	}
}

func TestGenerate_NegativeTotalsAreNotClamped(t *testing.T) {
	event, err := Generate(random.NewSource(1), domain.D4, 1, -10, fixedClock())
	require.NoError(t, err)
	assert.Less(t, event.Total, 0)
}

func TestGenerate_Uniformity(t *testing.T) {
	const rollsPerFace = 10000
	src := random.NewSource(2024)

	for _, d := range []domain.Dice{domain.D2, domain.D6, domain.D20} {
		faces := d.Spec().FaceCount
		n := rollsPerFace * faces
		event, err := Generate(src, d, n, 0, fixedClock())
		require.NoError(t, err)

		h := domain.BuildHistogram([]domain.RollEvent{event}, d.Spec())
		require.Equal(t, n, h.Total())
		for _, f := range h.Faces {
			// Expected 10000 per face; 5% is several standard deviations wide.
			assert.InDelta(t, rollsPerFace, f.Count, rollsPerFace*0.05, "%s face %d", d, f.Face)
		}
	}
}

func TestGenerate_SameSeedSameRolls(t *testing.T) {
	a, err := Generate(random.NewSource(99), domain.D100, 10, 0, fixedClock())
	require.NoError(t, err)
	b, err := Generate(random.NewSource(99), domain.D100, 10, 0, fixedClock())
	require.NoError(t, err)
	assert.Equal(t, a.Rolls, b.Rolls)
}

func TestRollAndRecord_ValidationBeforeIO(t *testing.T) {
	store := &spyStore{}
	svc := newTestService(t, store)

	_, err := svc.RollAndRecord(context.Background(), domain.D6, 0, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidDiceCount)

	_, err = svc.RollAndRecord(context.Background(), domain.Dice(0), 1, 0)
	assert.ErrorIs(t, err, domain.ErrUnknownDice)

	assert.Zero(t, store.calls(), "ledger must not be touched")
}

func TestRollAndRecord_EnsuresTheEventDay(t *testing.T) {
	store := &spyStore{}
	svc := newTestService(t, store)

	event, err := svc.RollAndRecord(context.Background(), domain.D20, 3, 2)
	require.NoError(t, err)

	require.Len(t, store.appended, 1)
	assert.Equal(t, event, store.appended[0])
	require.Len(t, store.ensured, 1)
	assert.Equal(t, "2024-07-04", store.ensured[0].String())
}

func TestRollAndRecord_SurfacesStorageFailure(t *testing.T) {
	boom := &domain.StorageError{Op: "write", Path: "/full", Err: errors.New("no space left on device")}
	store := &spyStore{err: boom}
	svc := newTestService(t, store)

	event, err := svc.RollAndRecord(context.Background(), domain.D8, 1, 0)
	require.Error(t, err)
	var storageErr *domain.StorageError
	assert.True(t, errors.As(err, &storageErr))
	assert.Len(t, event.Rolls, 1)
}

func TestRollAndRecord_ConcurrentRollsAreNotLost(t *testing.T) {
	store := ledger.NewFileStore(t.TempDir(), logger.Discard())
	svc, err := NewService(Options{
		Ledger: store,
		Random: random.NewSource(3),
		Logger: logger.Discard(),
		Clock:  fixedClock,
	})
	require.NoError(t, err)
	defer svc.Close()

	const workers = 40
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.RollAndRecord(context.Background(), domain.D6, 2, 0)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	events, err := store.ReadDay(context.Background(), domain.DayOf(fixedClock()))
	require.NoError(t, err)
	assert.Len(t, events, workers)
}

func TestRecord_AfterCloseFails(t *testing.T) {
	store := &spyStore{}
	svc, err := NewService(Options{Ledger: store, Random: random.NewSource(1), Logger: logger.Discard()})
	require.NoError(t, err)
	svc.Close()
	svc.Close()

	_, err = svc.RollAndRecord(context.Background(), domain.D6, 1, 0)
	assert.ErrorIs(t, err, domain.ErrQueueClosed)
}

func TestNewService_RequiresDependencies(t *testing.T) {
	_, err := NewService(Options{})
	assert.Error(t, err)
}
