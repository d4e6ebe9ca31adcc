package stats

import (
	"context"
	"sync/atomic"

	"github.com/doeshing/dicelog/internal/domain"
)

// Tracker stamps range queries with a strictly increasing sequence so a
// superseded query's result can be dropped instead of applied out of order.
type Tracker struct {
	seq atomic.Uint64
}

// Ticket identifies one issued query.
type Ticket uint64

// Begin issues a ticket that supersedes every earlier one.
func (t *Tracker) Begin() Ticket {
	return Ticket(t.seq.Add(1))
}

// Current reports whether no newer ticket has been issued.
func (t *Tracker) Current(ticket Ticket) bool {
	return uint64(ticket) == t.seq.Load()
}

// Result is the completion of a tracked report query.
type Result struct {
	Ticket Ticket
	Start  string
	End    string
	Report domain.StatsReport
	Err    error
}

// Refresher issues report queries asynchronously and delivers only the
// completions that are still current when they finish.
type Refresher struct {
	service *Service
	tracker Tracker
	results chan Result
}

// NewRefresher returns a Refresher over service.
func NewRefresher(service *Service) *Refresher {
	return &Refresher{service: service, results: make(chan Result, 1)}
}

// Results delivers fresh completions.
func (r *Refresher) Results() <-chan Result {
	return r.results
}

// Request starts a report for [start, end] and returns its ticket.
// Any earlier request that has not been delivered yet becomes stale.
func (r *Refresher) Request(ctx context.Context, start, end string) Ticket {
	ticket := r.tracker.Begin()
	go func() {
		report, err := r.service.Report(ctx, start, end)
		if !r.tracker.Current(ticket) {
			return
		}
		res := Result{Ticket: ticket, Start: start, End: end, Report: report, Err: err}
		select {
		case r.results <- res:
		case <-ctx.Done():
		}
	}()
	return ticket
}

// Current reports whether ticket is the latest request.
func (r *Refresher) Current(ticket Ticket) bool {
	return r.tracker.Current(ticket)
}
