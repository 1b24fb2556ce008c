package httpapi

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/adamatova/community-api/internal/domain/entity"
	"github.com/adamatova/community-api/internal/domain/service"
	"github.com/adamatova/community-api/internal/ports/primary"
	"github.com/adamatova/community-api/internal/ports/secondary"
	"github.com/adamatova/community-api/pkg/logger/types"
)

type stubAuth struct{}

func (stubAuth) Verify(token string) (*secondary.Identity, error) {
	switch token {
	case "participant-token":
		return &secondary.Identity{ID: "p1", Email: "p1@example.org"}, nil
	case "admin-token":
		return &secondary.Identity{ID: "a1", Email: "admin@example.org"}, nil
	default:
		return nil, errors.New("bad token")
	}
}

type stubParticipants struct{}

func (stubParticipants) Get(_ context.Context, id string) (*entity.Participant, error) {
	if id == "p1" {
		return &entity.Participant{ID: "p1", Email: "p1@example.org"}, nil
	}
	return nil, fmt.Errorf("participant %s: %w", id, service.ErrNotFound)
}

func (stubParticipants) Upsert(_ context.Context, p *entity.Participant) (*entity.Participant, error) {
	return p, nil
}

func (stubParticipants) IsAdministrator(_ context.Context, email string) (bool, error) {
	return email == "admin@example.org", nil
}

func newTestHandler() *Handler {
	return &Handler{
		participants: stubParticipants{},
		auth:         stubAuth{},
		logger:       &types.Logger{SugaredLogger: zap.NewNop().Sugar()},
	}
}

func TestHandleErrorMapping(t *testing.T) {
	h := newTestHandler()

	cases := []struct {
		err    error
		status int
	}{
		{service.ErrNotAuthenticated, http.StatusUnauthorized},
		{service.ErrForbidden, http.StatusForbidden},
		{fmt.Errorf("group x: %w", service.ErrNotFound), http.StatusNotFound},
		{service.ErrAlreadyRegistered, http.StatusConflict},
		{fmt.Errorf("bad input: %w", service.ErrValidationFailed), http.StatusUnprocessableEntity},
		{errors.New("database on fire"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		rec := httptest.NewRecorder()
		h.handleError(rec, tc.err)
		assert.Equal(t, tc.status, rec.Code, "error %v", tc.err)
		assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
	}
}

func TestWithIdentity(t *testing.T) {
	h := newTestHandler()

	var seen *secondary.Identity
	next := http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = identityFrom(r)
	})

	t.Run("valid bearer token", func(t *testing.T) {
		seen = nil
		req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
		req.Header.Set("Authorization", "Bearer participant-token")
		h.withIdentity(next).ServeHTTP(httptest.NewRecorder(), req)
		require.NotNil(t, seen)
		assert.Equal(t, "p1", seen.ID)
	})

	t.Run("no token passes through anonymous", func(t *testing.T) {
		seen = &secondary.Identity{}
		req := httptest.NewRequest(http.MethodGet, "/api/groups", nil)
		h.withIdentity(next).ServeHTTP(httptest.NewRecorder(), req)
		assert.Nil(t, seen)
	})

	t.Run("invalid token is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
		req.Header.Set("Authorization", "Bearer forged")
		rec := httptest.NewRecorder()
		h.withIdentity(next).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRequireAdmin(t *testing.T) {
	h := newTestHandler()

	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})
	protected := h.withIdentity(h.requireAdmin(next))

	t.Run("admin email passes", func(t *testing.T) {
		called = false
		req := httptest.NewRequest(http.MethodGet, "/api/admin/groups", nil)
		req.Header.Set("Authorization", "Bearer admin-token")
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)
		assert.True(t, called)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("plain participant is forbidden", func(t *testing.T) {
		called = false
		req := httptest.NewRequest(http.MethodGet, "/api/admin/groups", nil)
		req.Header.Set("Authorization", "Bearer participant-token")
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)
		assert.False(t, called)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("anonymous is unauthorized", func(t *testing.T) {
		called = false
		req := httptest.NewRequest(http.MethodGet, "/api/admin/groups", nil)
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)
		assert.False(t, called)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

type stubActivities struct {
	primary.ActivityService
}

func (stubActivities) UploadImage(_ context.Context, _ string, _ io.Reader) (string, error) {
	return "/files/activity-img.jpg", nil
}

func TestUploadImageReturnsPublicURL(t *testing.T) {
	h := newTestHandler()
	h.activities = stubActivities{}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("image", "img.jpg")
	require.NoError(t, err)
	_, err = part.Write([]byte("jpeg bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/admin/activities/g1/image", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	h.uploadImage(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"image_url":"/files/activity-img.jpg"`)
}

func TestGetProfile(t *testing.T) {
	h := newTestHandler()
	mux := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.getProfile(w, r)
	})

	t.Run("authenticated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
		req.Header.Set("Authorization", "Bearer participant-token")
		rec := httptest.NewRecorder()
		h.withIdentity(mux).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "p1@example.org")
	})

	t.Run("anonymous", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
		rec := httptest.NewRecorder()
		h.withIdentity(mux).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
