// Package views renders the server-side HTML pages. Templates are embedded
// in the binary; each page shares the header/footer partials from
// layout.gohtml.
package views

import (
	"embed"
	"html/template"
	"io"

	"github.com/accountweb/accountweb/internal/model"
)

//go:embed templates/*.gohtml
var files embed.FS

var tmpl = template.Must(template.ParseFS(files, "templates/*.gohtml"))

// FlashMessage is a one-shot notice shown on the next page load
type FlashMessage struct {
	Type    string // "success", "error", "info"
	Message string
}

// PageData holds the fields every page needs
type PageData struct {
	Title string
	User  *model.User // nil when the request is anonymous
	Flash *FlashMessage
}

type HomeData struct {
	PageData
}

type RegisterData struct {
	PageData
	Error string
	ID    string
	Name  string
}

type LoginData struct {
	PageData
	Error string
	ID    string
}

type ProfileData struct {
	PageData
	Error string
	Name  string
}

type PasswordData struct {
	PageData
	Error string
}

func Home(w io.Writer, data HomeData) error {
	return tmpl.ExecuteTemplate(w, "home", data)
}

func Register(w io.Writer, data RegisterData) error {
	return tmpl.ExecuteTemplate(w, "register", data)
}

func Login(w io.Writer, data LoginData) error {
	return tmpl.ExecuteTemplate(w, "login", data)
}

func Profile(w io.Writer, data ProfileData) error {
	return tmpl.ExecuteTemplate(w, "profile", data)
}

func Password(w io.Writer, data PasswordData) error {
	return tmpl.ExecuteTemplate(w, "password", data)
}
