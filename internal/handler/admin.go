package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/shreepawar22/quickserve/internal/admin"
)

// maxImageSize caps the restaurant cover image upload at 2MB.
const maxImageSize = 2 << 20

// AdminHandler exposes the two-phase registration endpoint and the
// dashboard login.
type AdminHandler struct {
	service   *admin.Service
	validate  *validator.Validate
	uploadDir string
}

func NewAdminHandler(service *admin.Service, uploadDir string) *AdminHandler {
	return &AdminHandler{
		service:   service,
		validate:  validator.New(),
		uploadDir: uploadDir,
	}
}

func (h *AdminHandler) RegisterRoutes(router chi.Router) {
	router.Post("/api/admin/register", h.handleRegister)
	router.Post("/api/admin/login", h.handleLogin)
	router.Post("/api/admin/logout", h.handleLogout)
	router.Get("/api/admin/me", h.handleCurrent)
}

type registerStepOneRequest struct {
	admin.StepOneInput
	Step string `json:"step"`
}

// handleRegister serves both phases of registration: phase 1 is a JSON
// body with step "1", phase 2 is multipart form data carrying the
// restaurant fields and the cover image.
func (h *AdminHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		h.registerStepTwo(w, r)
		return
	}
	h.registerStepOne(w, r)
}

func (h *AdminHandler) registerStepOne(w http.ResponseWriter, r *http.Request) {
	var payload registerStepOneRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		log.Warn().Err(err).Msg("failed to decode registration request")
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if payload.Step != "1" {
		respondWithError(w, http.StatusBadRequest, "Unknown registration step")
		return
	}

	if err := h.validate.Struct(payload.StepOneInput); err != nil {
		h.respondValidationError(w, err)
		return
	}

	if err := h.service.RegisterStepOne(payload.StepOneInput); err != nil {
		respondWithError(w, mapErrorToStatusCode(err), err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Proceed to step 2",
	})
}

func (h *AdminHandler) registerStepTwo(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImageSize+1<<20)
	if err := r.ParseMultipartForm(maxImageSize); err != nil {
		log.Warn().Err(err).Msg("failed to parse registration form")
		respondWithError(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	file, header, err := r.FormFile("coverImage")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, admin.ErrImageRequired.Error())
		return
	}
	defer file.Close()

	filename, err := h.saveImage(file, header)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	input := admin.StepTwoInput{
		StepOneInput: admin.StepOneInput{
			Username:        r.FormValue("username"),
			Email:           r.FormValue("email"),
			Password:        r.FormValue("password"),
			ConfirmPassword: r.FormValue("confirmPassword"),
		},
		RestaurantName: r.FormValue("restaurantName"),
		Address:        r.FormValue("address"),
		CuisineType:    r.FormValue("cuisineType"),
		PhoneNumber:    r.FormValue("phoneNumber"),
		ImageFilename:  filename,
	}

	if err := h.validate.Struct(input); err != nil {
		h.respondValidationError(w, err)
		return
	}

	registered, err := h.service.RegisterStepTwo(input)
	if err != nil {
		code := mapErrorToStatusCode(err)
		if code == http.StatusInternalServerError {
			log.Error().Err(err).Msg("registration failed")
			respondWithError(w, code, "Server error during registration")
			return
		}
		respondWithError(w, code, err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"admin":   registered,
	})
}

// saveImage stores the uploaded cover image under a timestamped name,
// accepting only JPEG and PNG files.
func (h *AdminHandler) saveImage(file multipart.File, header *multipart.FileHeader) (string, error) {
	if header.Size > maxImageSize {
		return "", fmt.Errorf("image exceeds the %dMB limit", maxImageSize>>20)
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	switch ext {
	case ".jpeg", ".jpg", ".png":
	default:
		return "", fmt.Errorf("images only (JPEG, JPG, PNG)")
	}

	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to prepare upload dir: %w", err)
	}

	filename := fmt.Sprintf("%d%s", time.Now().UnixMilli(), ext)
	dst, err := os.Create(filepath.Join(h.uploadDir, filename))
	if err != nil {
		return "", fmt.Errorf("failed to store image: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", fmt.Errorf("failed to store image: %w", err)
	}
	return filename, nil
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (h *AdminHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var payload loginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := h.validate.Struct(payload); err != nil {
		h.respondValidationError(w, err)
		return
	}

	session, err := h.service.Login(payload.Username, payload.Password)
	if err != nil {
		respondWithError(w, mapErrorToStatusCode(err), err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, session)
}

func (h *AdminHandler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Logout(); err != nil {
		log.Error().Err(err).Msg("failed to clear admin session")
		respondWithError(w, http.StatusInternalServerError, "Failed to sign out")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) handleCurrent(w http.ResponseWriter, r *http.Request) {
	current, err := h.service.Current()
	if err != nil {
		respondWithError(w, mapErrorToStatusCode(err), err.Error())
		return
	}

	// Never expose credentials on the profile surface.
	current.Password = ""
	current.PasswordHash = ""
	respondWithJSON(w, http.StatusOK, current)
}

func (h *AdminHandler) respondValidationError(w http.ResponseWriter, err error) {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		respondWithJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:   "Validation failed",
			Details: formatValidationErrors(validationErrors),
		})
		return
	}
	log.Error().Err(err).Msg("unexpected error type during validation")
	respondWithError(w, http.StatusInternalServerError, "Internal validation error")
}
