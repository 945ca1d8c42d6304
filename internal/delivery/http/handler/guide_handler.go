package handler

import (
	"encoding/json"
	"net/http"

	"neptrip-backend/internal/delivery/dto"
	"neptrip-backend/internal/usecase"
	"neptrip-backend/pkg/response"
	"neptrip-backend/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type GuideHandler struct {
	guideUsecase usecase.GuideUsecase
	validator    *validator.CustomValidator
}

func NewGuideHandler(guideUsecase usecase.GuideUsecase, validator *validator.CustomValidator) *GuideHandler {
	return &GuideHandler{
		guideUsecase: guideUsecase,
		validator:    validator,
	}
}

func (h *GuideHandler) ListGuides(w http.ResponseWriter, r *http.Request) {
	guides, err := h.guideUsecase.ListGuides(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list guides")
		return
	}

	response.Success(w, http.StatusOK, "Guides retrieved successfully", guides)
}

func (h *GuideHandler) GetGuide(w http.ResponseWriter, r *http.Request) {
	guideID, ok := parseGuideID(w, r)
	if !ok {
		return
	}

	guide, err := h.guideUsecase.GetGuide(r.Context(), guideID)
	if err != nil {
		if err == usecase.ErrGuideNotFound {
			response.NotFound(w, "Guide not found")
			return
		}
		response.InternalServerError(w, "Failed to get guide")
		return
	}

	response.Success(w, http.StatusOK, "Guide retrieved successfully", guide)
}

func (h *GuideHandler) CreateGuide(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateGuideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	guide, err := h.guideUsecase.CreateGuide(r.Context(), &req)
	if err != nil {
		if err == usecase.ErrEmailAlreadyExists {
			response.Conflict(w, "Email already exists")
			return
		}
		response.InternalServerError(w, "Failed to create guide")
		return
	}

	response.Success(w, http.StatusCreated, "Guide created successfully", guide)
}

func (h *GuideHandler) UpdateGuideProfile(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateGuideProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	profile, err := h.guideUsecase.UpdateGuideProfile(r.Context(), &req)
	if err != nil {
		if err == usecase.ErrGuideNotFound {
			response.NotFound(w, "Guide profile not found")
			return
		}
		response.InternalServerError(w, "Failed to update guide profile")
		return
	}

	response.Success(w, http.StatusOK, "Guide profile updated successfully", profile)
}

func (h *GuideHandler) DeleteGuide(w http.ResponseWriter, r *http.Request) {
	guideID, ok := parseGuideID(w, r)
	if !ok {
		return
	}

	if err := h.guideUsecase.DeleteGuide(r.Context(), guideID); err != nil {
		if err == usecase.ErrGuideNotFound {
			response.NotFound(w, "Guide not found")
			return
		}
		response.InternalServerError(w, "Failed to delete guide")
		return
	}

	response.Success(w, http.StatusOK, "Guide deleted successfully", nil)
}

func (h *GuideHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.guideUsecase.ListUsers(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list users")
		return
	}

	response.Success(w, http.StatusOK, "Users retrieved successfully", users)
}

func parseGuideID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	guideID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, "Invalid guide ID")
		return uuid.Nil, false
	}
	return guideID, true
}
