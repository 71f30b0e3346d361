package profile

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/ayush/gyft/backend/internal/auth"
	"github.com/ayush/gyft/backend/internal/models"
	"github.com/ayush/gyft/backend/internal/validation"
	"github.com/ayush/gyft/backend/internal/web"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type profileView struct {
	User        *models.User `json:"user"`
	CourseCount int64        `json:"course_count"`
	Flashes     []web.Flash  `json:"flashes"`
}

// Show renders the current user's profile.
func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	current := auth.UserFromContext(r.Context())
	user, n, err := h.svc.Show(r.Context(), current.ID)
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("load profile")
		web.JSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load profile"})
		return
	}
	web.JSON(w, http.StatusOK, profileView{User: user, CourseCount: n, Flashes: web.PopFlashes(w, r)})
}

// Update applies the submitted profile form.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	current := auth.UserFromContext(r.Context())
	form := models.ProfileForm{
		FirstName: r.PostFormValue("first_name"),
		LastName:  r.PostFormValue("last_name"),
		Email:     r.PostFormValue("email"),
		Bio:       r.PostFormValue("bio"),
	}

	_, err := h.svc.Update(r.Context(), current, form)
	switch {
	case err == nil:
		web.FlashRedirect(w, r, "/profile", web.FlashSuccess, "Profile updated successfully!")
	case errors.Is(err, models.ErrValidation):
		web.FlashRedirect(w, r, "/profile", web.FlashError, validation.Message(err))
	case errors.Is(err, models.ErrDuplicateCredential):
		web.FlashRedirect(w, r, "/profile", web.FlashError, "Email already exists")
	default:
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("update profile")
		web.FlashRedirect(w, r, "/profile", web.FlashError, "Profile update failed. Please try again.")
	}
}
