package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type registerRequest struct {
	Comment string `json:"comment"`
}

func (h *Handler) registerForGroup(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if r.ContentLength > 0 {
		if err := decode(r, &req); err != nil {
			h.writeError(w, http.StatusBadRequest, "malformed body")
			return
		}
	}
	reg, err := h.registrations.RegisterForGroup(r.Context(), participantID(r), chi.URLParam(r, "id"), req.Comment)
	if err != nil {
		h.handleError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, reg)
}

func (h *Handler) registerForWorkshop(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if r.ContentLength > 0 {
		if err := decode(r, &req); err != nil {
			h.writeError(w, http.StatusBadRequest, "malformed body")
			return
		}
	}
	reg, err := h.registrations.RegisterForWorkshop(r.Context(), participantID(r), chi.URLParam(r, "id"), req.Comment)
	if err != nil {
		h.handleError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, reg)
}

func (h *Handler) unregisterFromGroup(w http.ResponseWriter, r *http.Request) {
	if err := h.registrations.UnregisterFromGroup(r.Context(), participantID(r), chi.URLParam(r, "id")); err != nil {
		h.handleError(w, err)
		return
	}
	h.writeJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) unregisterFromWorkshop(w http.ResponseWriter, r *http.Request) {
	if err := h.registrations.UnregisterFromWorkshop(r.Context(), participantID(r), chi.URLParam(r, "id")); err != nil {
		h.handleError(w, err)
		return
	}
	h.writeJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) myRegistrations(w http.ResponseWriter, r *http.Request) {
	id := participantID(r)
	groups, err := h.registrations.MyGroupRegistrations(r.Context(), id)
	if err != nil {
		h.handleError(w, err)
		return
	}
	workshops, err := h.registrations.MyWorkshopRegistrations(r.Context(), id)
	if err != nil {
		h.handleError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"groups":    groups,
		"workshops": workshops,
	})
}

type approvalRequest struct {
	Approved bool `json:"approved"`
}

func (h *Handler) setApproval(w http.ResponseWriter, r *http.Request) {
	var req approvalRequest
	if err := decode(r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, "malformed body")
		return
	}
	reg, err := h.registrations.SetGroupApproval(r.Context(), chi.URLParam(r, "id"), req.Approved)
	if err != nil {
		h.handleError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, reg)
}

func (h *Handler) pendingRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := h.registrations.PendingRequests(r.Context())
	if err != nil {
		h.handleError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, requests)
}
