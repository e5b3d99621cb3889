package service

import (
	"context"
	"fmt"

	"github.com/pkordes/wanderplan/internal/domain"
	"github.com/pkordes/wanderplan/internal/planner"
)

// ConfirmMode is how a pending plan is applied to the itinerary.
type ConfirmMode string

const (
	// ConfirmReplace discards the current items and keeps only the plan.
	ConfirmReplace ConfirmMode = "replace"
	// ConfirmMerge appends the plan after the current items.
	ConfirmMerge ConfirmMode = "merge"
)

// ProposePlan generates a plan for req outside the session lock. A request
// with Days 0 uses the trip duration. A non-empty proposal becomes the pending
// plan, replacing any earlier one; an empty proposal leaves everything as is.
// Returns domain.ErrValidation for a bad request, domain.ErrBusy while another
// generation is running and domain.ErrNoTrip before Setup.
func (s *TripService) ProposePlan(ctx context.Context, req planner.Request) (planner.Proposal, error) {
	var (
		trip     *domain.TripData
		duration int
	)
	err := s.withTrip("ProposePlan", func() error {
		trip, duration = s.trip, s.trip.DurationDays
		return nil
	})
	if err != nil {
		return planner.Proposal{}, err
	}
	if req.Days == 0 {
		req.Days = duration
	}
	if req.Days > duration {
		return planner.Proposal{}, fmt.Errorf("%w: days must not exceed the trip duration of %d", domain.ErrValidation, duration)
	}

	gctx, cancel := s.external(ctx)
	defer cancel()
	proposal, err := s.planner.Propose(gctx, req, duration)
	if err != nil {
		return planner.Proposal{}, fmt.Errorf("service.TripService.ProposePlan: %w", err)
	}
	if proposal.Empty() {
		return proposal, nil
	}

	err = s.withTrip("ProposePlan", func() error {
		// The trip may have been replaced or resized while generating.
		if s.trip != trip || s.trip.DurationDays != duration {
			return fmt.Errorf("%w: trip changed during generation", domain.ErrValidation)
		}
		p := clonePlan(proposal)
		s.pending = &p
		return nil
	})
	if err != nil {
		return planner.Proposal{}, err
	}
	return proposal, nil
}

// PendingPlan returns the plan awaiting confirmation.
// Returns domain.ErrNoPendingPlan if there is none.
func (s *TripService) PendingPlan(ctx context.Context) (planner.Proposal, error) {
	var out planner.Proposal
	err := s.withTrip("PendingPlan", func() error {
		if s.pending == nil {
			return domain.ErrNoPendingPlan
		}
		out = clonePlan(*s.pending)
		return nil
	})
	return out, err
}

// ConfirmPlan applies the pending plan with mode and clears it. Items are
// revalidated against the current trip; on failure nothing changes and the
// plan stays pending.
func (s *TripService) ConfirmPlan(ctx context.Context, mode ConfirmMode) ([]domain.ItineraryItem, error) {
	var out []domain.ItineraryItem
	err := s.withTrip("ConfirmPlan", func() error {
		if s.pending == nil {
			return domain.ErrNoPendingPlan
		}
		var err error
		switch mode {
		case ConfirmReplace:
			err = s.store.ReplaceItems(s.pending.Items)
		case ConfirmMerge:
			err = s.store.MergeItems(s.pending.Items)
		default:
			err = fmt.Errorf("%w: mode must be replace or merge", domain.ErrValidation)
		}
		if err != nil {
			return err
		}
		s.pending = nil
		out = s.store.Items()
		return nil
	})
	return out, err
}

// DiscardPlan drops the pending plan.
// Returns domain.ErrNoPendingPlan if there is none.
func (s *TripService) DiscardPlan(ctx context.Context) error {
	return s.withTrip("DiscardPlan", func() error {
		if s.pending == nil {
			return domain.ErrNoPendingPlan
		}
		s.pending = nil
		return nil
	})
}

// GenerationBusy reports whether a plan generation is running.
func (s *TripService) GenerationBusy() bool { return s.planner.Busy() }

func clonePlan(p planner.Proposal) planner.Proposal {
	items := make([]domain.ItineraryItem, len(p.Items))
	for i, it := range p.Items {
		items[i] = it.Clone()
	}
	p.Items = items
	return p
}
