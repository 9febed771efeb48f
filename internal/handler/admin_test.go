package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shreepawar22/quickserve/internal/admin"
	"github.com/shreepawar22/quickserve/internal/restaurant"
	"github.com/shreepawar22/quickserve/internal/storage"
)

func newAdminRouter(t *testing.T) chi.Router {
	t.Helper()

	store := storage.NewMemory()
	svc := admin.NewService(admin.NewRepository(store), restaurant.NewRepository(store))

	h := NewAdminHandler(svc, t.TempDir())
	router := chi.NewRouter()
	h.RegisterRoutes(router)
	return router
}

func TestAdminHandler_RegisterStepOne(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		expectedStatus int
	}{
		{
			name: "success",
			body: `{
				"step": "1",
				"username": "spicegarden",
				"email": "owner@spicegarden.in",
				"password": "secret12",
				"confirmPassword": "secret12"
			}`,
			expectedStatus: http.StatusOK,
		},
		{
			name: "password_mismatch",
			body: `{
				"step": "1",
				"username": "spicegarden",
				"email": "owner@spicegarden.in",
				"password": "secret12",
				"confirmPassword": "different"
			}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "missing_email",
			body: `{
				"step": "1",
				"username": "spicegarden",
				"password": "secret12",
				"confirmPassword": "secret12"
			}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unknown_step",
			body:           `{"step": "3", "username": "spicegarden"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid_json",
			body:           `{not json}`,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newAdminRouter(t)

			req := httptest.NewRequest(http.MethodPost, "/api/admin/register", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func registrationForm(t *testing.T, imageName string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	fields := map[string]string{
		"username":        "spicegarden",
		"email":           "owner@spicegarden.in",
		"password":        "secret12",
		"confirmPassword": "secret12",
		"restaurantName":  "Spice Garden",
		"address":         "42 MG Road, Pune",
		"cuisineType":     "South Indian",
		"phoneNumber":     "9876543210",
	}
	for name, value := range fields {
		require.NoError(t, form.WriteField(name, value))
	}
	if imageName != "" {
		part, err := form.CreateFormFile("coverImage", imageName)
		require.NoError(t, err)
		_, err = part.Write([]byte("fake image bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, form.Close())
	return &buf, form.FormDataContentType()
}

func TestAdminHandler_RegisterStepTwo(t *testing.T) {
	router := newAdminRouter(t)

	body, contentType := registrationForm(t, "cover.jpg")
	req := httptest.NewRequest(http.MethodPost, "/api/admin/register", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Success bool             `json:"success"`
		Admin   admin.Registered `json:"admin"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "spicegarden", resp.Admin.Username)
	assert.NotEmpty(t, resp.Admin.RestaurantID)
}

func TestAdminHandler_RegisterStepTwo_Rejections(t *testing.T) {
	tests := []struct {
		name      string
		imageName string
	}{
		{name: "missing_image", imageName: ""},
		{name: "bad_extension", imageName: "cover.gif"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newAdminRouter(t)

			body, contentType := registrationForm(t, tt.imageName)
			req := httptest.NewRequest(http.MethodPost, "/api/admin/register", body)
			req.Header.Set("Content-Type", contentType)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestAdminHandler_LoginFlow(t *testing.T) {
	router := newAdminRouter(t)

	body, contentType := registrationForm(t, "cover.png")
	req := httptest.NewRequest(http.MethodPost, "/api/admin/register", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Wrong password gets 401.
	req = httptest.NewRequest(http.MethodPost, "/api/admin/login",
		bytes.NewBufferString(`{"username": "spicegarden", "password": "wrong"}`))
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Correct credentials open the session.
	req = httptest.NewRequest(http.MethodPost, "/api/admin/login",
		bytes.NewBufferString(`{"username": "spicegarden", "password": "secret12"}`))
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var session admin.Session
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &session))
	assert.Equal(t, "spicegarden", session.Username)

	// The profile endpoint resolves the session without credentials.
	req = httptest.NewRequest(http.MethodGet, "/api/admin/me", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var current admin.Admin
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &current))
	assert.Equal(t, "spicegarden", current.Username)
	assert.Empty(t, current.Password)
	assert.Empty(t, current.PasswordHash)

	// Logout clears the session.
	req = httptest.NewRequest(http.MethodPost, "/api/admin/logout", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/admin/me", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
