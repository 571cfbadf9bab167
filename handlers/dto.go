package handlers

import (
	"net/http"
	"net/mail"
	"strings"

	"todo-backend/utils"
)

const minPasswordLength = 6

// FieldError is one entry in a validation-error response.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *signupRequest) validate() []FieldError {
	var errs []FieldError
	if !validEmail(r.Email) {
		errs = append(errs, FieldError{Field: "email", Message: "Invalid email format"})
	}
	if len(r.Password) < minPasswordLength {
		errs = append(errs, FieldError{Field: "password", Message: "Password must be at least 6 characters"})
	}
	return errs
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *loginRequest) validate() []FieldError {
	var errs []FieldError
	if !validEmail(r.Email) {
		errs = append(errs, FieldError{Field: "email", Message: "Invalid email format"})
	}
	if r.Password == "" {
		errs = append(errs, FieldError{Field: "password", Message: "Password is required"})
	}
	return errs
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

func (r *forgotPasswordRequest) validate() []FieldError {
	if !validEmail(r.Email) {
		return []FieldError{{Field: "email", Message: "Invalid email format"}}
	}
	return nil
}

type resetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

func (r *resetPasswordRequest) validate() []FieldError {
	var errs []FieldError
	if r.Token == "" {
		errs = append(errs, FieldError{Field: "token", Message: "Token is required"})
	}
	if len(r.Password) < minPasswordLength {
		errs = append(errs, FieldError{Field: "password", Message: "Password must be at least 6 characters"})
	}
	return errs
}

type todoRequest struct {
	Text string `json:"text"`
}

func (r *todoRequest) validate() []FieldError {
	if strings.TrimSpace(r.Text) == "" {
		return []FieldError{{Field: "text", Message: "Todo text is required"}}
	}
	return nil
}

func validEmail(email string) bool {
	trimmed := strings.TrimSpace(email)
	if trimmed == "" {
		return false
	}
	addr, err := mail.ParseAddress(trimmed)
	// Reject the name-addr form ("Name <a@b>"): only a bare address is an email.
	return err == nil && addr.Address == trimmed
}

func respondValidationErrors(w http.ResponseWriter, errs []FieldError) {
	utils.ResponseWithJson(w, http.StatusBadRequest, map[string]interface{}{
		"message": "Validation error",
		"errors":  errs,
	})
}
