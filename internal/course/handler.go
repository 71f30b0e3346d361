package course

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/ayush/gyft/backend/internal/auth"
	"github.com/ayush/gyft/backend/internal/models"
	"github.com/ayush/gyft/backend/internal/web"
)

// Handler holds course HTTP handlers.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type indexView struct {
	Authenticated bool            `json:"authenticated"`
	User          *models.User    `json:"user,omitempty"`
	Courses       []models.Course `json:"courses"`
	Flashes       []web.Flash     `json:"flashes"`
}

// Index renders the home page. Anonymous visitors get an empty course list.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	view := indexView{Courses: []models.Course{}}
	if u := auth.UserFromContext(r.Context()); u != nil {
		courses, err := h.svc.List(r.Context(), u.ID)
		if err != nil {
			zerolog.Ctx(r.Context()).Error().Err(err).Msg("list courses")
			web.JSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load courses"})
			return
		}
		view.Authenticated = true
		view.User = u
		view.Courses = courses
	}
	view.Flashes = web.PopFlashes(w, r)
	web.JSON(w, http.StatusOK, view)
}

// Generate creates a course from the submitted topic.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	u := auth.UserFromContext(r.Context())

	c, err := h.svc.Generate(r.Context(), u.ID, r.PostFormValue("topic"))
	switch {
	case err == nil:
		web.FlashRedirect(w, r, "/", web.FlashSuccess, fmt.Sprintf(`Course "%s" generated successfully!`, c.Title))
	case errors.Is(err, models.ErrValidation):
		web.FlashRedirect(w, r, "/", web.FlashError, "Invalid course topic. Please try again.")
	case errors.Is(err, models.ErrGenerationFailed):
		web.FlashRedirect(w, r, "/", web.FlashError, "Failed to generate course. Please try again.")
	default:
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("generate course")
		web.FlashRedirect(w, r, "/", web.FlashError, "Failed to generate course. Please try again.")
	}
}

// View returns a single course owned by the current user.
func (h *Handler) View(w http.ResponseWriter, r *http.Request) {
	u := auth.UserFromContext(r.Context())

	c, err := h.svc.Get(r.Context(), u.ID, chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err, "Course not found.")
		return
	}
	web.JSON(w, http.StatusOK, c)
}

// Delete removes a course owned by the current user.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	u := auth.UserFromContext(r.Context())

	if err := h.svc.Delete(r.Context(), u.ID, chi.URLParam(r, "id")); err != nil {
		h.fail(w, r, err, "Course not found.")
		return
	}
	web.FlashRedirect(w, r, "/", web.FlashSuccess, "Course deleted.")
}

// Export streams the archived course JSON as a download.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	u := auth.UserFromContext(r.Context())

	data, c, err := h.svc.Export(r.Context(), u.ID, chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err, "Course export not available.")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="course-%s.json"`, c.ID.Hex()))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	if errors.Is(err, models.ErrNotFound) {
		web.FlashRedirect(w, r, "/", web.FlashError, notFound)
		return
	}
	zerolog.Ctx(r.Context()).Error().Err(err).Str("course_id", chi.URLParam(r, "id")).Msg("course request")
	web.FlashRedirect(w, r, "/", web.FlashError, "Error loading course.")
}
