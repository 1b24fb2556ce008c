package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/adamatova/community-api/internal/domain/entity"
)

type activityRequest struct {
	Title               string     `json:"title"`
	Description         string     `json:"description"`
	StartDate           *time.Time `json:"start_date"`
	MeetingTime         string     `json:"meeting_time"`
	OccurrenceCount     int        `json:"occurrence_count"`
	MaxParticipants     int        `json:"max_participants"`
	RegistrationEndDate *time.Time `json:"registration_end_date"`
	TargetStatuses      []string   `json:"target_statuses"`
}

func (req *activityRequest) toGroup(id, createdBy string) *entity.Group {
	g := &entity.Group{
		ID:              id,
		Title:           req.Title,
		Description:     req.Description,
		MeetingTime:     req.MeetingTime,
		OccurrenceCount: req.OccurrenceCount,
		MaxParticipants: req.MaxParticipants,
		TargetStatuses:  req.TargetStatuses,
		CreatedBy:       createdBy,
	}
	if req.StartDate != nil {
		g.StartDate = *req.StartDate
	}
	if req.RegistrationEndDate != nil {
		g.RegistrationEndDate = *req.RegistrationEndDate
	}
	return g
}

func (req *activityRequest) toWorkshop(id, createdBy string) *entity.Workshop {
	w := &entity.Workshop{
		ID:              id,
		Title:           req.Title,
		Description:     req.Description,
		MeetingTime:     req.MeetingTime,
		MaxParticipants: req.MaxParticipants,
		TargetStatuses:  req.TargetStatuses,
		CreatedBy:       createdBy,
	}
	if req.StartDate != nil {
		w.StartDate = *req.StartDate
	}
	if req.RegistrationEndDate != nil {
		w.RegistrationEndDate = *req.RegistrationEndDate
	}
	return w
}

func (h *Handler) createGroup(w http.ResponseWriter, r *http.Request) {
	var req activityRequest
	if err := decode(r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, "malformed body")
		return
	}
	group, err := h.activities.CreateGroup(r.Context(), req.toGroup("", participantID(r)))
	if err != nil {
		h.handleError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, group)
}

func (h *Handler) createWorkshop(w http.ResponseWriter, r *http.Request) {
	var req activityRequest
	if err := decode(r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, "malformed body")
		return
	}
	workshop, err := h.activities.CreateWorkshop(r.Context(), req.toWorkshop("", participantID(r)))
	if err != nil {
		h.handleError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, workshop)
}

func (h *Handler) updateGroup(w http.ResponseWriter, r *http.Request) {
	var req activityRequest
	if err := decode(r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, "malformed body")
		return
	}
	group, err := h.activities.UpdateGroup(r.Context(), req.toGroup(chi.URLParam(r, "id"), participantID(r)))
	if err != nil {
		h.handleError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, group)
}

func (h *Handler) updateWorkshop(w http.ResponseWriter, r *http.Request) {
	var req activityRequest
	if err := decode(r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, "malformed body")
		return
	}
	workshop, err := h.activities.UpdateWorkshop(r.Context(), req.toWorkshop(chi.URLParam(r, "id"), participantID(r)))
	if err != nil {
		h.handleError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, workshop)
}

func (h *Handler) getGroup(w http.ResponseWriter, r *http.Request) {
	group, err := h.activities.GetGroup(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, group)
}

func (h *Handler) getWorkshop(w http.ResponseWriter, r *http.Request) {
	workshop, err := h.activities.GetWorkshop(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, workshop)
}

func (h *Handler) publishGroup(w http.ResponseWriter, r *http.Request) {
	group, err := h.activities.PublishGroup(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, group)
}

func (h *Handler) publishWorkshop(w http.ResponseWriter, r *http.Request) {
	workshop, err := h.activities.PublishWorkshop(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, workshop)
}

func (h *Handler) endGroup(w http.ResponseWriter, r *http.Request) {
	if err := h.activities.EndGroup(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.handleError(w, err)
		return
	}
	h.writeJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) endWorkshop(w http.ResponseWriter, r *http.Request) {
	if err := h.activities.EndWorkshop(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.handleError(w, err)
		return
	}
	h.writeJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) deleteGroup(w http.ResponseWriter, r *http.Request) {
	if err := h.activities.DeleteGroup(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.handleError(w, err)
		return
	}
	h.writeJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) deleteWorkshop(w http.ResponseWriter, r *http.Request) {
	if err := h.activities.DeleteWorkshop(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.handleError(w, err)
		return
	}
	h.writeJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) uploadImage(w http.ResponseWriter, r *http.Request) {
	file, _, err := r.FormFile("image")
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "image file required")
		return
	}
	defer func() { _ = file.Close() }()

	url, err := h.activities.UploadImage(r.Context(), chi.URLParam(r, "id"), file)
	if err != nil {
		h.handleError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"image_url": url})
}

// listGroupOverviews is the admin board. Expired activities are flipped on
// access, before bucketing, so the board never shows a stale open group.
func (h *Handler) listGroupOverviews(w http.ResponseWriter, r *http.Request) {
	if _, err := h.sweeper.Sweep(r.Context()); err != nil {
		h.logger.Errorf("sweep before listing: %v", err)
	}
	overviews, err := h.activities.ListGroupOverviews(r.Context())
	if err != nil {
		h.handleError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, overviews)
}

func (h *Handler) listWorkshopOverviews(w http.ResponseWriter, r *http.Request) {
	if _, err := h.sweeper.Sweep(r.Context()); err != nil {
		h.logger.Errorf("sweep before listing: %v", err)
	}
	overviews, err := h.activities.ListWorkshopOverviews(r.Context())
	if err != nil {
		h.handleError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, overviews)
}

func (h *Handler) listAdmissibleGroups(w http.ResponseWriter, r *http.Request) {
	showAll := r.URL.Query().Get("all") == "true"
	groups, err := h.activities.AdmissibleGroups(r.Context(), participantID(r), showAll)
	if err != nil {
		h.handleError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, groups)
}

func (h *Handler) listAdmissibleWorkshops(w http.ResponseWriter, r *http.Request) {
	showAll := r.URL.Query().Get("all") == "true"
	workshops, err := h.activities.AdmissibleWorkshops(r.Context(), participantID(r), showAll)
	if err != nil {
		h.handleError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, workshops)
}
