package auth

import (
	"strings"

	"github.com/accountweb/accountweb/internal/model"
)

// Validation messages are kept byte-for-byte compatible with the system this
// application replaces, including their punctuation quirks.
const (
	msgRegisterBlank       = "Id, Name, Password can not blank"
	msgLoginBlank          = "Id, Password can not blank"
	msgProfileUpdateBlank  = "Id, Name can not blank"
	msgPasswordUpdateBlank = "Id, Old password,New Password can not blank"
)

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// ValidateRegister checks that id, name and password are all non-blank
func ValidateRegister(req RegisterRequest) error {
	if blank(req.ID) || blank(req.Name) || blank(req.Password) {
		return model.NewValidationError(msgRegisterBlank)
	}
	return nil
}

// ValidateLogin checks that id and password are non-blank
func ValidateLogin(req LoginRequest) error {
	if blank(req.ID) || blank(req.Password) {
		return model.NewValidationError(msgLoginBlank)
	}
	return nil
}

// ValidateProfileUpdate checks that id and name are non-blank
func ValidateProfileUpdate(req ProfileUpdateRequest) error {
	if blank(req.ID) || blank(req.Name) {
		return model.NewValidationError(msgProfileUpdateBlank)
	}
	return nil
}

// ValidatePasswordUpdate checks that id and both passwords are non-blank
func ValidatePasswordUpdate(req PasswordUpdateRequest) error {
	if blank(req.ID) || blank(req.OldPassword) || blank(req.NewPassword) {
		return model.NewValidationError(msgPasswordUpdateBlank)
	}
	return nil
}
