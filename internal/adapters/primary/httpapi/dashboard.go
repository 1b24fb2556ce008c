package httpapi

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/adamatova/community-api/internal/domain/entity"
)

func (h *Handler) todayActivities(w http.ResponseWriter, r *http.Request) {
	activities, err := h.dashboard.TodayActivities(r.Context())
	if err != nil {
		h.handleError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, activities)
}

func (h *Handler) getProfile(w http.ResponseWriter, r *http.Request) {
	id := participantID(r)
	if id == "" {
		h.writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	participant, err := h.participants.Get(r.Context(), id)
	if err != nil {
		h.handleError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, participant)
}

type profileRequest struct {
	FullName          string   `json:"full_name"`
	Phone             string   `json:"phone"`
	CommunityStatuses []string `json:"community_statuses"`
}

func (h *Handler) upsertProfile(w http.ResponseWriter, r *http.Request) {
	identity := identityFrom(r)
	if identity == nil {
		h.writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	var req profileRequest
	if err := decode(r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, "malformed body")
		return
	}
	participant, err := h.participants.Upsert(r.Context(), &entity.Participant{
		ID:                identity.ID,
		Email:             identity.Email,
		FullName:          req.FullName,
		Phone:             req.Phone,
		CommunityStatuses: req.CommunityStatuses,
	})
	if err != nil {
		h.handleError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, participant)
}

func (h *Handler) listNotifications(w http.ResponseWriter, r *http.Request) {
	id := participantID(r)
	if id == "" {
		h.writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	notifications, err := h.notifications.ListForParticipant(r.Context(), id, limit, offset)
	if err != nil {
		h.handleError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, notifications)
}

func (h *Handler) unreadCount(w http.ResponseWriter, r *http.Request) {
	id := participantID(r)
	if id == "" {
		h.writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	count, err := h.notifications.UnreadCount(r.Context(), id)
	if err != nil {
		h.handleError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]int64{"unread": count})
}

func (h *Handler) markNotificationRead(w http.ResponseWriter, r *http.Request) {
	id := participantID(r)
	if id == "" {
		h.writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	if err := h.notifications.MarkRead(r.Context(), chi.URLParam(r, "id"), id); err != nil {
		h.handleError(w, err)
		return
	}
	h.writeJSON(w, http.StatusNoContent, nil)
}

type deviceRequest struct {
	Endpoint string `json:"endpoint"`
}

func (h *Handler) registerDevice(w http.ResponseWriter, r *http.Request) {
	id := participantID(r)
	if id == "" {
		h.writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	var req deviceRequest
	if err := decode(r, &req); err != nil || req.Endpoint == "" {
		h.writeError(w, http.StatusBadRequest, "endpoint required")
		return
	}
	device, err := h.notifications.RegisterDevice(r.Context(), id, req.Endpoint)
	if err != nil {
		h.handleError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, device)
}

type announcementRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

func (h *Handler) publishAnnouncement(w http.ResponseWriter, r *http.Request) {
	var req announcementRequest
	if err := decode(r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, "malformed body")
		return
	}
	announcement, err := h.announcements.Publish(r.Context(), req.Title, req.Body, participantID(r))
	if err != nil {
		h.handleError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, announcement)
}

func (h *Handler) todayAnnouncements(w http.ResponseWriter, r *http.Request) {
	announcements, err := h.announcements.Today(r.Context())
	if err != nil {
		h.handleError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, announcements)
}

func (h *Handler) recentAnnouncements(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	announcements, err := h.announcements.Recent(r.Context(), limit)
	if err != nil {
		h.handleError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, announcements)
}

func (h *Handler) deleteAnnouncement(w http.ResponseWriter, r *http.Request) {
	if err := h.announcements.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.handleError(w, err)
		return
	}
	h.writeJSON(w, http.StatusNoContent, nil)
}
