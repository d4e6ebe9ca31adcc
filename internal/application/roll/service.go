package roll

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/doeshing/dicelog/internal/domain"
	"github.com/doeshing/dicelog/internal/ports"
)

// Service generates rolls and records them in the ledger.
type Service struct {
	random ports.RandomSource
	now    func() time.Time
	logger ports.Logger
	queue  *appendQueue
}

// Options configures a Service.
type Options struct {
	Ledger     ports.LedgerStore
	Random     ports.RandomSource
	Logger     ports.Logger
	Clock      func() time.Time
	QueueDepth int
}

// NewService starts the ledger writer. Call Close to stop it.
func NewService(opts Options) (*Service, error) {
	if opts.Ledger == nil || opts.Random == nil || opts.Logger == nil {
		return nil, errors.New("roll.Service dependencies not satisfied")
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	depth := opts.QueueDepth
	if depth == 0 {
		depth = domain.DefaultAppendQueueDepth
	}
	return &Service{
		random: opts.Random,
		now:    clock,
		logger: opts.Logger,
		queue:  newAppendQueue(opts.Ledger, opts.Logger, depth),
	}, nil
}

// Roll generates an event without persisting it.
func (s *Service) Roll(dice domain.Dice, diceCount, modifier int) (domain.RollEvent, error) {
	return Generate(s.random, dice, diceCount, modifier, s.now())
}

// RollAndRecord generates an event and appends it to the ledger of the day
// it was rolled on. Invalid input is rejected before the ledger is touched.
// On a storage failure the event is returned alongside the error.
func (s *Service) RollAndRecord(ctx context.Context, dice domain.Dice, diceCount, modifier int) (domain.RollEvent, error) {
	event, err := s.Roll(dice, diceCount, modifier)
	if err != nil {
		return domain.RollEvent{}, err
	}
	if err := s.Record(ctx, event); err != nil {
		return event, err
	}
	return event, nil
}

// Record appends an already generated event through the single ledger writer.
func (s *Service) Record(ctx context.Context, event domain.RollEvent) error {
	if err := s.queue.Submit(ctx, event); err != nil {
		return fmt.Errorf("record roll: %w", err)
	}
	return nil
}

// Close stops the ledger writer after pending appends finish.
func (s *Service) Close() {
	s.queue.Close()
}
