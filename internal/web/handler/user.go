package handler

import (
	"net/http"
	"time"

	"github.com/accountweb/accountweb/internal/model"
	"github.com/accountweb/accountweb/internal/services/auth"
	"github.com/accountweb/accountweb/internal/web/middleware"
	"github.com/accountweb/accountweb/internal/web/views"
)

// UserHandler handles registration, login and account management pages
type UserHandler struct {
	authService *auth.Service
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(authService *auth.Service) *UserHandler {
	return &UserHandler{
		authService: authService,
	}
}

// RegisterPage renders the registration page
func (h *UserHandler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	if middleware.GetUser(r.Context()) != nil {
		// Already logged in, redirect to home
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	data := views.RegisterData{
		PageData: views.PageData{
			Title: "Register",
			Flash: middleware.GetFlash(r.Context()),
		},
	}
	h.renderRegister(w, data)
}

// Register handles registration form submission
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderRegister(w, views.RegisterData{
			PageData: views.PageData{Title: "Register"},
			Error:    "Invalid form data",
		})
		return
	}

	req := auth.RegisterRequest{
		ID:       r.FormValue("id"),
		Name:     r.FormValue("name"),
		Password: r.FormValue("password"),
	}

	if _, err := h.authService.Register(r.Context(), req); err != nil {
		h.renderRegister(w, views.RegisterData{
			PageData: views.PageData{Title: "Register"},
			Error:    userMessage(err),
			ID:       req.ID,
			Name:     req.Name,
		})
		return
	}

	middleware.SetFlash(w, "success", "Register success, please login")
	http.Redirect(w, r, "/users/login", http.StatusSeeOther)
}

// LoginPage renders the login page
func (h *UserHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if middleware.GetUser(r.Context()) != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	data := views.LoginData{
		PageData: views.PageData{
			Title: "Login",
			Flash: middleware.GetFlash(r.Context()),
		},
	}
	h.renderLogin(w, data)
}

// Login handles login form submission
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderLogin(w, views.LoginData{
			PageData: views.PageData{Title: "Login"},
			Error:    "Invalid form data",
		})
		return
	}

	req := auth.LoginRequest{
		ID:       r.FormValue("id"),
		Password: r.FormValue("password"),
	}

	resp, err := h.authService.Login(r.Context(), req)
	if err != nil {
		h.renderLogin(w, views.LoginData{
			PageData: views.PageData{Title: "Login"},
			Error:    userMessage(err),
			ID:       req.ID,
		})
		return
	}

	session, err := h.authService.CreateSession(r.Context(), resp.User.ID)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.setSessionCookie(w, session.ID)
	middleware.SetFlash(w, "success", "Welcome, "+resp.User.Name+"!")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout destroys the session and clears the cookie
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(middleware.SessionCookieName); err == nil {
		// Best effort; an expired or unknown session still logs out
		_ = h.authService.DestroySession(r.Context(), model.SessionID(cookie.Value))
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	middleware.SetFlash(w, "info", "You have been logged out")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// ProfilePage renders the profile form for the logged-in user
func (h *UserHandler) ProfilePage(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	data := views.ProfileData{
		PageData: views.PageData{
			Title: "Profile",
			User:  user,
			Flash: middleware.GetFlash(r.Context()),
		},
		Name: user.Name,
	}
	h.renderProfile(w, data)
}

// UpdateProfile handles profile form submission
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	if err := r.ParseForm(); err != nil {
		h.renderProfile(w, views.ProfileData{
			PageData: views.PageData{Title: "Profile", User: user},
			Error:    "Invalid form data",
			Name:     user.Name,
		})
		return
	}

	req := auth.ProfileUpdateRequest{
		ID:   string(user.ID),
		Name: r.FormValue("name"),
	}

	if _, err := h.authService.UpdateProfile(r.Context(), req); err != nil {
		h.renderProfile(w, views.ProfileData{
			PageData: views.PageData{Title: "Profile", User: user},
			Error:    userMessage(err),
			Name:     req.Name,
		})
		return
	}

	middleware.SetFlash(w, "success", "Profile updated")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// PasswordPage renders the password change form
func (h *UserHandler) PasswordPage(w http.ResponseWriter, r *http.Request) {
	data := views.PasswordData{
		PageData: views.PageData{
			Title: "Password",
			User:  middleware.GetUser(r.Context()),
			Flash: middleware.GetFlash(r.Context()),
		},
	}
	h.renderPassword(w, data)
}

// UpdatePassword handles password change form submission
func (h *UserHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	if err := r.ParseForm(); err != nil {
		h.renderPassword(w, views.PasswordData{
			PageData: views.PageData{Title: "Password", User: user},
			Error:    "Invalid form data",
		})
		return
	}

	req := auth.PasswordUpdateRequest{
		ID:          string(user.ID),
		OldPassword: r.FormValue("old_password"),
		NewPassword: r.FormValue("new_password"),
	}

	if _, err := h.authService.UpdatePassword(r.Context(), req); err != nil {
		h.renderPassword(w, views.PasswordData{
			PageData: views.PageData{Title: "Password", User: user},
			Error:    userMessage(err),
		})
		return
	}

	middleware.SetFlash(w, "success", "Password updated")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *UserHandler) setSessionCookie(w http.ResponseWriter, id model.SessionID) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    string(id),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// userMessage maps a service error to the message shown on the form.
// Validation and business rule failures carry their own message; anything
// else is reported generically.
func userMessage(err error) string {
	if verr, ok := model.AsValidationError(err); ok {
		return verr.Message
	}
	return "Something went wrong, please try again"
}

func (h *UserHandler) renderRegister(w http.ResponseWriter, data views.RegisterData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := views.Register(w, data); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func (h *UserHandler) renderLogin(w http.ResponseWriter, data views.LoginData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := views.Login(w, data); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func (h *UserHandler) renderProfile(w http.ResponseWriter, data views.ProfileData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := views.Profile(w, data); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func (h *UserHandler) renderPassword(w http.ResponseWriter, data views.PasswordData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := views.Password(w, data); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
