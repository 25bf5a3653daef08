package handler

import (
	"net/http"

	"github.com/accountweb/accountweb/internal/web/middleware"
	"github.com/accountweb/accountweb/internal/web/views"
)

// HomeHandler handles the home page
type HomeHandler struct{}

// NewHomeHandler creates a new HomeHandler
func NewHomeHandler() *HomeHandler {
	return &HomeHandler{}
}

// Home renders the home page
func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	data := views.HomeData{
		PageData: views.PageData{
			Title: "Home",
			User:  middleware.GetUser(r.Context()),
			Flash: middleware.GetFlash(r.Context()),
		},
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := views.Home(w, data); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
