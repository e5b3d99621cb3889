package handler

import (
	"net/http"

	"github.com/pkordes/wanderplan/internal/domain"
	"github.com/pkordes/wanderplan/internal/planner"
	"github.com/pkordes/wanderplan/internal/service"
)

// ConfirmRequest is the body of POST /trip/plans/pending/confirm.
type ConfirmRequest struct {
	Mode service.ConfirmMode `json:"mode"`
}

// ProposalResponse is a generated plan. Pending is false when the generation
// produced no usable items and nothing was kept.
type ProposalResponse struct {
	planner.Proposal
	Pending bool   `json:"pending"`
	Message string `json:"message,omitempty"`
}

// ProposePlan handles POST /trip/plans. A non-empty result is held as the
// pending plan and answered with 201; an empty one with 200.
func (s *Server) ProposePlan(w http.ResponseWriter, r *http.Request) {
	var body planner.Request
	if !s.decodeBody(w, r, &body) {
		return
	}
	proposal, err := s.plans.ProposePlan(r.Context(), body)
	if err != nil {
		s.writeError(w, r, err, "trip not found")
		return
	}
	if proposal.Empty() {
		writeJSON(w, http.StatusOK, ProposalResponse{Proposal: proposal, Message: "zero items produced"})
		return
	}
	writeJSON(w, http.StatusCreated, ProposalResponse{Proposal: proposal, Pending: true})
}

// GetPendingPlan handles GET /trip/plans/pending.
func (s *Server) GetPendingPlan(w http.ResponseWriter, r *http.Request) {
	proposal, err := s.plans.PendingPlan(r.Context())
	if err != nil {
		s.writeError(w, r, err, "no pending plan")
		return
	}
	writeJSON(w, http.StatusOK, ProposalResponse{Proposal: proposal, Pending: true})
}

// ConfirmPlan handles POST /trip/plans/pending/confirm and returns the
// resulting itinerary.
func (s *Server) ConfirmPlan(w http.ResponseWriter, r *http.Request) {
	var body ConfirmRequest
	if !s.decodeBody(w, r, &body) {
		return
	}
	items, err := s.plans.ConfirmPlan(r.Context(), body.Mode)
	if err != nil {
		s.writeError(w, r, err, "no pending plan")
		return
	}
	if items == nil {
		items = []domain.ItineraryItem{}
	}
	writeJSON(w, http.StatusOK, ItemList{Data: items})
}

// DiscardPlan handles DELETE /trip/plans/pending.
func (s *Server) DiscardPlan(w http.ResponseWriter, r *http.Request) {
	if err := s.plans.DiscardPlan(r.Context()); err != nil {
		s.writeError(w, r, err, "no pending plan")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
