package auth

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/ayush/gyft/backend/internal/models"
	"github.com/ayush/gyft/backend/internal/validation"
	"github.com/ayush/gyft/backend/internal/web"
)

// Handler holds the account pages: login, registration and logout.
type Handler struct {
	svc          *Service
	cookieSecure bool
}

func NewHandler(svc *Service, cookieSecure bool) *Handler {
	return &Handler{svc: svc, cookieSecure: cookieSecure}
}

type accountView struct {
	Forms   map[string][]string `json:"forms"`
	Flashes []web.Flash         `json:"flashes"`
}

// Account shows the login and registration forms, or sends logged-in users
// to their profile.
func (h *Handler) Account(w http.ResponseWriter, r *http.Request) {
	if UserFromContext(r.Context()) != nil {
		web.Redirect(w, r, "/profile")
		return
	}
	web.JSON(w, http.StatusOK, accountView{
		Forms: map[string][]string{
			"login":    {"username", "password"},
			"register": {"username", "email", "first_name", "last_name", "password", "password2"},
		},
		Flashes: web.PopFlashes(w, r),
	})
}

// Register creates a new user and logs them in.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	form := models.RegisterForm{
		Username:  r.PostFormValue("username"),
		Email:     r.PostFormValue("email"),
		FirstName: r.PostFormValue("first_name"),
		LastName:  r.PostFormValue("last_name"),
		Password:  r.PostFormValue("password"),
		Password2: r.PostFormValue("password2"),
	}

	_, sid, err := h.svc.Register(r.Context(), form)
	switch {
	case err == nil:
	case errors.Is(err, models.ErrValidation):
		web.FlashRedirect(w, r, "/account", web.FlashError, validation.Message(err))
		return
	case errors.Is(err, models.ErrDuplicateCredential):
		web.FlashRedirect(w, r, "/account", web.FlashError, "Username or email already exists")
		return
	default:
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("register failed")
		web.FlashRedirect(w, r, "/account", web.FlashError, "Registration failed. Please try again.")
		return
	}

	h.replaceSession(w, r, sid)
	web.FlashRedirect(w, r, "/profile", web.FlashSuccess, "Registration successful!")
}

// Login authenticates a user and creates a session.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	form := models.LoginForm{
		Username: r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
	}

	_, sid, err := h.svc.Login(r.Context(), form)
	switch {
	case err == nil:
	case errors.Is(err, models.ErrValidation):
		web.FlashRedirect(w, r, "/account", web.FlashError, validation.Message(err))
		return
	case errors.Is(err, models.ErrInvalidCredential):
		web.FlashRedirect(w, r, "/account", web.FlashError, "Invalid username or password")
		return
	default:
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("login failed")
		web.FlashRedirect(w, r, "/account", web.FlashError, "Login failed. Please try again.")
		return
	}

	h.replaceSession(w, r, sid)
	web.FlashRedirect(w, r, "/profile", web.FlashSuccess, "Logged in successfully!")
}

// Logout destroys the current session, if any.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.endSession(r)
	http.SetCookie(w, ExpiredSessionCookie(h.cookieSecure))
	web.FlashRedirect(w, r, "/", web.FlashInfo, "You have been logged out")
}

// replaceSession revokes the session the client arrived with before handing
// out sid.
func (h *Handler) replaceSession(w http.ResponseWriter, r *http.Request, sid string) {
	h.endSession(r)
	http.SetCookie(w, NewSessionCookie(sid, h.svc.SessionTTL(), h.cookieSecure))
}

func (h *Handler) endSession(r *http.Request) {
	sid := SessionIDFromContext(r.Context())
	if sid == "" {
		if cookie, err := r.Cookie(SessionCookie); err == nil {
			sid = cookie.Value
		}
	}
	if sid == "" {
		return
	}
	if err := h.svc.Logout(r.Context(), sid); err != nil {
		zerolog.Ctx(r.Context()).Warn().Err(err).Msg("end session")
	}
}
