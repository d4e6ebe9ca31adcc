package stats

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/doeshing/dicelog/internal/domain"
	"github.com/doeshing/dicelog/internal/ports"
)

// Service answers range queries over the day ledgers and aggregates them.
type Service struct {
	Ledger ports.LedgerStore
	Logger ports.Logger
	// Today is resolved once at startup and used when a range is incomplete.
	Today domain.Day
	// Concurrency bounds parallel day reads; values below 1 read sequentially.
	Concurrency int
}

// QueryRange returns the events of every day in [start, end], oldest day first.
// Missing or unreadable days contribute nothing. An end before start is an
// empty result; a missing or malformed bound queries today only.
func (s *Service) QueryRange(ctx context.Context, start, end string) ([]domain.RollEvent, error) {
	events, _, err := s.query(ctx, start, end)
	return events, err
}

// Report queries the range and builds one histogram per statistics die.
func (s *Service) Report(ctx context.Context, start, end string) (domain.StatsReport, error) {
	events, days, err := s.query(ctx, start, end)
	if err != nil {
		return domain.StatsReport{}, err
	}
	report := domain.StatsReport{Days: days, Events: len(events)}
	for _, d := range domain.StatsDice() {
		report.Histograms = append(report.Histograms, s.Histogram(events, d.Spec()))
	}
	return report, nil
}

// Histogram aggregates events for one die and reports corrupt outcomes.
func (s *Service) Histogram(events []domain.RollEvent, dice domain.DiceSpec) domain.Histogram {
	h := domain.BuildHistogram(events, dice)
	if h.Rejected > 0 && s.Logger != nil {
		s.Logger.Warn("ignored out-of-range outcomes", map[string]interface{}{
			"dice":     dice.Name,
			"rejected": h.Rejected,
		})
	}
	return h
}

func (s *Service) query(ctx context.Context, start, end string) ([]domain.RollEvent, []domain.Day, error) {
	if s.Ledger == nil {
		return nil, nil, errors.New("stats.Service dependencies not satisfied")
	}
	days := domain.ResolveRange(start, end, s.Today)
	perDay := make([][]domain.RollEvent, len(days))

	g, gctx := errgroup.WithContext(ctx)
	limit := s.Concurrency
	if limit < 1 {
		limit = 1
	}
	g.SetLimit(limit)
	for i, day := range days {
		g.Go(func() error {
			events, err := s.Ledger.ReadDay(gctx, day)
			if err != nil {
				return fmt.Errorf("read %s: %w", day, err)
			}
			perDay[i] = events
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	total := 0
	for _, events := range perDay {
		total += len(events)
	}
	merged := make([]domain.RollEvent, 0, total)
	for _, events := range perDay {
		merged = append(merged, events...)
	}
	return merged, days, nil
}
