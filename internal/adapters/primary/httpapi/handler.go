// Package httpapi is the HTTP surface over the primary ports. Handlers stay
// thin: decode, call the service, map the error.
package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/adamatova/community-api/internal/ports/primary"
	"github.com/adamatova/community-api/internal/ports/secondary"
	"github.com/adamatova/community-api/pkg/logger/types"
)

type Handler struct {
	activities    primary.ActivityService
	registrations primary.RegistrationService
	dashboard     primary.DashboardService
	sweeper       primary.SweeperService
	notifications primary.NotifyService
	announcements primary.AnnouncementService
	participants  primary.ParticipantService
	exports       primary.ExportService

	auth   secondary.AuthProvider
	logger *types.Logger
}

func New(
	logger *types.Logger,
	activities primary.ActivityService,
	registrations primary.RegistrationService,
	dashboard primary.DashboardService,
	sweeper primary.SweeperService,
	notifications primary.NotifyService,
	announcements primary.AnnouncementService,
	participants primary.ParticipantService,
	exports primary.ExportService,
	auth secondary.AuthProvider,
) *Handler {
	return &Handler{
		activities:    activities,
		registrations: registrations,
		dashboard:     dashboard,
		sweeper:       sweeper,
		notifications: notifications,
		announcements: announcements,
		participants:  participants,
		exports:       exports,
		auth:          auth,
		logger:        logger,
	}
}

func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Group(func(r chi.Router) {
		r.Use(h.withIdentity)

		// Participant-facing reads.
		r.Get("/api/groups", h.listAdmissibleGroups)
		r.Get("/api/workshops", h.listAdmissibleWorkshops)
		r.Get("/api/groups/{id}", h.getGroup)
		r.Get("/api/workshops/{id}", h.getWorkshop)
		r.Get("/api/announcements/today", h.todayAnnouncements)
		r.Get("/api/announcements", h.recentAnnouncements)

		// Registration gate.
		r.Post("/api/groups/{id}/register", h.registerForGroup)
		r.Delete("/api/groups/{id}/register", h.unregisterFromGroup)
		r.Post("/api/workshops/{id}/register", h.registerForWorkshop)
		r.Delete("/api/workshops/{id}/register", h.unregisterFromWorkshop)
		r.Get("/api/my/registrations", h.myRegistrations)

		// Profile and notifications.
		r.Get("/api/me", h.getProfile)
		r.Put("/api/me", h.upsertProfile)
		r.Get("/api/notifications", h.listNotifications)
		r.Get("/api/notifications/unread-count", h.unreadCount)
		r.Post("/api/notifications/{id}/read", h.markNotificationRead)
		r.Post("/api/devices", h.registerDevice)

		// Administration.
		r.Group(func(r chi.Router) {
			r.Use(h.requireAdmin)

			r.Get("/api/admin/dashboard/today", h.todayActivities)
			r.Get("/api/admin/groups", h.listGroupOverviews)
			r.Get("/api/admin/workshops", h.listWorkshopOverviews)
			r.Get("/api/admin/requests/pending", h.pendingRequests)
			r.Post("/api/admin/registrations/{id}/approval", h.setApproval)

			r.Post("/api/admin/groups", h.createGroup)
			r.Put("/api/admin/groups/{id}", h.updateGroup)
			r.Post("/api/admin/groups/{id}/publish", h.publishGroup)
			r.Post("/api/admin/groups/{id}/end", h.endGroup)
			r.Delete("/api/admin/groups/{id}", h.deleteGroup)

			r.Post("/api/admin/workshops", h.createWorkshop)
			r.Put("/api/admin/workshops/{id}", h.updateWorkshop)
			r.Post("/api/admin/workshops/{id}/publish", h.publishWorkshop)
			r.Post("/api/admin/workshops/{id}/end", h.endWorkshop)
			r.Delete("/api/admin/workshops/{id}", h.deleteWorkshop)

			r.Post("/api/admin/activities/{id}/image", h.uploadImage)
			r.Post("/api/admin/announcements", h.publishAnnouncement)
			r.Delete("/api/admin/announcements/{id}", h.deleteAnnouncement)

			r.Get("/api/admin/groups/{id}/calendar.ics", h.groupCalendar)
			r.Get("/api/admin/groups/{id}/roster.xlsx", h.groupRoster)
			r.Get("/api/admin/workshops/{id}/roster.xlsx", h.workshopRoster)
			r.Get("/api/admin/activities/{id}/qr.png", h.registrationQR)
		})
	})

	return r
}
