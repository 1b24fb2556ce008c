package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) groupCalendar(w http.ResponseWriter, r *http.Request) {
	data, err := h.exports.GroupCalendar(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="meetings.ics"`)
	_, _ = w.Write(data)
}

func (h *Handler) groupRoster(w http.ResponseWriter, r *http.Request) {
	data, err := h.exports.GroupRosterXLSX(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleError(w, err)
		return
	}
	writeXLSX(w, data)
}

func (h *Handler) workshopRoster(w http.ResponseWriter, r *http.Request) {
	data, err := h.exports.WorkshopRosterXLSX(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleError(w, err)
		return
	}
	writeXLSX(w, data)
}

func (h *Handler) registrationQR(w http.ResponseWriter, r *http.Request) {
	data, err := h.exports.RegistrationQR(chi.URLParam(r, "id"))
	if err != nil {
		h.handleError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(data)
}

func writeXLSX(w http.ResponseWriter, data []byte) {
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="roster.xlsx"`)
	_, _ = w.Write(data)
}
