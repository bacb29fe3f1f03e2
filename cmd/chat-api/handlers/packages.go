package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/junglore/chat-engine/internal/chat"
	"github.com/junglore/chat-engine/internal/observability"
	"github.com/junglore/chat-engine/internal/storage"
)

// PackageHandler serves detailed package pages.
type PackageHandler struct {
	logger    *observability.Logger
	packages  *storage.PackageStore
	suggester *chat.Suggester
}

// NewPackageHandler creates a new package handler.
func NewPackageHandler(logger *observability.Logger, packages *storage.PackageStore, suggester *chat.Suggester) *PackageHandler {
	return &PackageHandler{logger: logger, packages: packages, suggester: suggester}
}

// PackageDetailsDTO represents the detailed package response.
type PackageDetailsDTO struct {
	Title            string            `json:"title"`
	Image            string            `json:"image"`
	AdditionalImages []string          `json:"additional_images"`
	Description      string            `json:"description"`
	Duration         string            `json:"duration"`
	Region           string            `json:"region"`
	Price            float64           `json:"price"`
	Currency         string            `json:"currency"`
	Type             string            `json:"type"`
	Features         map[string]string `json:"features"`
	Dates            []string          `json:"date"`
	PackageID        string            `json:"package_id"`
}

// Details handles GET /packages/{packageID}/details. The description is
// generated fresh for each request; the stored one is the fallback.
func (h *PackageHandler) Details(w http.ResponseWriter, r *http.Request) {
	packageID := chi.URLParam(r, "packageID")

	pkg, err := h.packages.GetByID(r.Context(), packageID)
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusNotFound, "package not found", "")
		return
	}
	if err != nil {
		h.logger.Error().Err(err).Msg("Package lookup failed")
		writeError(w, http.StatusInternalServerError, "failed to load package", "")
		return
	}

	description := h.suggester.Describe(r.Context(), *pkg, chat.DescriptionDetailed)

	writeJSON(w, http.StatusOK, PackageDetailsDTO{
		Title:            pkg.Title,
		Image:            pkg.Image,
		AdditionalImages: pkg.AdditionalImages,
		Description:      description,
		Duration:         pkg.Duration,
		Region:           pkg.Region,
		Price:            pkg.Price,
		Currency:         pkg.Currency,
		Type:             pkg.Type,
		Features:         pkg.Features,
		Dates:            pkg.Dates,
		PackageID:        pkg.ID,
	})
}
