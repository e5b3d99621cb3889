// Package planner is the boundary to the external itinerary generator and
// travel-time estimator. It defines the contract those services must satisfy
// and turns their output into validated itinerary items. Failures of the
// external services never cross this boundary: they degrade to an empty
// proposal or an "Unknown" estimate.
package planner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/pkordes/wanderplan/internal/domain"
	"github.com/pkordes/wanderplan/internal/itinerary"
)

// Request is the input of a plan generation.
type Request struct {
	Destination string `json:"destination"`
	Days        int    `json:"days"`
	Interests   string `json:"interests"`
}

// Validate requires a destination and a positive day count.
func (r Request) Validate() error {
	if strings.TrimSpace(r.Destination) == "" {
		return fmt.Errorf("%w: destination is required", domain.ErrValidation)
	}
	if r.Days <= 0 {
		return fmt.Errorf("%w: days must be greater than 0", domain.ErrValidation)
	}
	return nil
}

// Generator produces candidate itinerary items for a request. Implementations
// wrap their failures in domain.ErrExternalService. A call may return a
// different plan each time.
type Generator interface {
	Generate(ctx context.Context, req Request) ([]Candidate, error)
}

// TravelEstimate is a best-effort, human-readable travel time and distance
// (e.g. "20 mins", "5 km"). Neither field is guaranteed to parse.
type TravelEstimate struct {
	Duration string `json:"duration"`
	Distance string `json:"distance"`
}

// UnknownEstimate is returned whenever the estimator cannot answer.
var UnknownEstimate = TravelEstimate{Duration: "Unknown", Distance: "Unknown"}

// Estimator estimates travel time between two places for a transport mode.
type Estimator interface {
	Estimate(ctx context.Context, origin, destination string, mode domain.TransportMode) (TravelEstimate, error)
}

// Unavailable is the Generator and Estimator used when no external service is
// configured. Every call fails with domain.ErrExternalService.
type Unavailable struct{}

func (Unavailable) Generate(context.Context, Request) ([]Candidate, error) {
	return nil, fmt.Errorf("%w: generator is not configured", domain.ErrExternalService)
}

func (Unavailable) Estimate(context.Context, string, string, domain.TransportMode) (TravelEstimate, error) {
	return TravelEstimate{}, fmt.Errorf("%w: estimator is not configured", domain.ErrExternalService)
}

// Proposal is the validated outcome of one generation. Items carry fresh IDs.
// Dropped counts candidates that failed validation.
type Proposal struct {
	Request Request                `json:"request"`
	Items   []domain.ItineraryItem `json:"items"`
	Dropped int                    `json:"dropped"`
}

// Empty reports whether the generation produced zero usable items.
func (p Proposal) Empty() bool { return len(p.Items) == 0 }

// DefaultEstimateTimeout bounds a shared estimate call.
const DefaultEstimateTimeout = 30 * time.Second

// Planner invokes the external services. Only one generation may be
// outstanding at a time; identical concurrent estimates share one call.
type Planner struct {
	gen             Generator
	est             Estimator
	log             *slog.Logger
	busy            atomic.Bool
	estimates       singleflight.Group
	estimateTimeout time.Duration
}

// Option configures a Planner.
type Option func(*Planner)

// WithEstimateTimeout bounds the estimate call shared by concurrent callers.
// Values <= 0 keep DefaultEstimateTimeout.
func WithEstimateTimeout(d time.Duration) Option {
	return func(p *Planner) {
		if d > 0 {
			p.estimateTimeout = d
		}
	}
}

// New constructs a Planner. Nil services are replaced by Unavailable and a
// nil logger by slog.Default.
func New(gen Generator, est Estimator, log *slog.Logger, opts ...Option) *Planner {
	if gen == nil {
		gen = Unavailable{}
	}
	if est == nil {
		est = Unavailable{}
	}
	if log == nil {
		log = slog.Default()
	}
	p := &Planner{gen: gen, est: est, log: log, estimateTimeout: DefaultEstimateTimeout}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Busy reports whether a generation is outstanding.
func (p *Planner) Busy() bool { return p.busy.Load() }

// Propose invokes the generator once and validates each candidate against
// the item rules for a trip of durationDays days. Invalid candidates are
// dropped. A generator failure yields an empty proposal and a nil error.
// Returns domain.ErrValidation for a bad request and domain.ErrBusy while
// another generation is running.
func (p *Planner) Propose(ctx context.Context, req Request, durationDays int) (Proposal, error) {
	if err := req.Validate(); err != nil {
		return Proposal{}, err
	}
	if !p.busy.CompareAndSwap(false, true) {
		return Proposal{}, domain.ErrBusy
	}
	defer p.busy.Store(false)

	out := Proposal{Request: req, Items: []domain.ItineraryItem{}}

	candidates, err := p.gen.Generate(ctx, req)
	if err != nil {
		p.log.WarnContext(ctx, "plan generation failed",
			"destination", req.Destination,
			"days", req.Days,
			"error", err,
		)
		return out, nil
	}

	for i, c := range candidates {
		item, err := c.ToItem()
		if err == nil {
			err = itinerary.ValidateItem(item, durationDays)
		}
		if err != nil {
			out.Dropped++
			p.log.DebugContext(ctx, "dropping generated item", "index", i, "title", c.Title, "error", err)
			continue
		}
		out.Items = append(out.Items, item)
	}

	p.log.InfoContext(ctx, "plan generated",
		"destination", req.Destination,
		"items", len(out.Items),
		"dropped", out.Dropped,
	)
	return out, nil
}

// Estimate returns the travel estimate between origin and destination, or
// UnknownEstimate if the estimator fails or ctx ends first. It never returns
// an error. The shared call is detached from any single caller's ctx and
// bounded by the estimate timeout, so one caller giving up does not fail the
// others waiting on the same key.
func (p *Planner) Estimate(ctx context.Context, origin, destination string, mode domain.TransportMode) TravelEstimate {
	key := origin + "\x00" + destination + "\x00" + string(mode)
	ch := p.estimates.DoChan(key, func() (any, error) {
		sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.estimateTimeout)
		defer cancel()
		return p.est.Estimate(sctx, origin, destination, mode)
	})

	var (
		v   any
		err error
	)
	select {
	case res := <-ch:
		v, err = res.Val, res.Err
	case <-ctx.Done():
		err = ctx.Err()
	}
	if err != nil {
		if !errors.Is(err, domain.ErrExternalService) {
			err = fmt.Errorf("%w: %w", domain.ErrExternalService, err)
		}
		p.log.WarnContext(ctx, "travel estimate failed", "origin", origin, "destination", destination, "error", err)
		return UnknownEstimate
	}
	est := v.(TravelEstimate)
	if est.Duration == "" {
		est.Duration = UnknownEstimate.Duration
	}
	if est.Distance == "" {
		est.Distance = UnknownEstimate.Distance
	}
	return est
}
