package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"todo-backend/auth"
	"todo-backend/logger"
	"todo-backend/store"
	"todo-backend/utils"
)

// Neutral reply for both branches of forgot-password, so the response never
// reveals whether the email is registered.
const forgotPasswordMessage = "If email exists, password reset link has been sent"

// AuthHandler serves signup, login and the password-reset flow.
type AuthHandler struct {
	users      UserStore
	tokens     *auth.TokenService
	log        *logger.Logger
	production bool
}

func NewAuthHandler(users UserStore, tokens *auth.TokenService, log *logger.Logger, production bool) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens, log: log, production: production}
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseWithError(w, http.StatusBadRequest, "Invalid request")
		return
	}
	if errs := req.validate(); errs != nil {
		respondValidationErrors(w, errs)
		return
	}

	user, err := h.users.Create(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			utils.ResponseWithError(w, http.StatusBadRequest, "Email already registered")
			return
		}
		h.serverError(w, r, "Signup error", "Error creating user", err, "")
		return
	}

	token, err := h.tokens.Issue(user.ID.Hex(), user.Email)
	if err != nil {
		h.serverError(w, r, "Signup error", "Error creating user", err, user.ID.Hex())
		return
	}

	utils.ResponseWithJson(w, http.StatusCreated, map[string]interface{}{
		"message": "User created successfully",
		"token":   token,
		"user":    user.Summary(),
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseWithError(w, http.StatusBadRequest, "Invalid request")
		return
	}
	if errs := req.validate(); errs != nil {
		respondValidationErrors(w, errs)
		return
	}

	// Unknown email and wrong password must be indistinguishable.
	user, err := h.users.FindByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.ResponseWithError(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		h.serverError(w, r, "Login error", "Error during login", err, "")
		return
	}
	if !h.users.VerifyPassword(user, req.Password) {
		utils.ResponseWithError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := h.tokens.Issue(user.ID.Hex(), user.Email)
	if err != nil {
		h.serverError(w, r, "Login error", "Error during login", err, user.ID.Hex())
		return
	}

	utils.ResponseWithJson(w, http.StatusOK, map[string]interface{}{
		"message": "Login successful",
		"token":   token,
		"user":    user.Summary(),
	})
}

func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseWithError(w, http.StatusBadRequest, "Invalid request")
		return
	}
	if errs := req.validate(); errs != nil {
		respondValidationErrors(w, errs)
		return
	}

	user, err := h.users.FindByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.ResponseWithJson(w, http.StatusOK, map[string]string{"message": forgotPasswordMessage})
			return
		}
		h.serverError(w, r, "Forgot password error", "Error processing request", err, "")
		return
	}

	resetToken, err := auth.GenerateResetToken()
	if err != nil {
		h.serverError(w, r, "Forgot password error", "Error processing request", err, user.ID.Hex())
		return
	}
	expires := time.Now().UTC().Add(auth.ResetTokenValidity)
	if err := h.users.SetResetToken(r.Context(), user.ID, resetToken, expires); err != nil {
		h.serverError(w, r, "Forgot password error", "Error processing request", err, user.ID.Hex())
		return
	}

	body := map[string]interface{}{"message": forgotPasswordMessage}
	if !h.production {
		// Development convenience only. In production the token goes out
		// through a side channel, never in the response.
		body["resetToken"] = resetToken
	}
	utils.ResponseWithJson(w, http.StatusOK, body)
}

func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseWithError(w, http.StatusBadRequest, "Invalid request")
		return
	}
	if errs := req.validate(); errs != nil {
		respondValidationErrors(w, errs)
		return
	}

	user, err := h.users.FindByValidResetToken(r.Context(), req.Token)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.ResponseWithError(w, http.StatusBadRequest, "Invalid or expired reset token")
			return
		}
		h.serverError(w, r, "Reset password error", "Error resetting password", err, "")
		return
	}

	// UpdatePassword clears the reset-token fields, so the token is one-shot.
	if err := h.users.UpdatePassword(r.Context(), user.ID, req.Password); err != nil {
		h.serverError(w, r, "Reset password error", "Error resetting password", err, user.ID.Hex())
		return
	}

	utils.ResponseWithJson(w, http.StatusOK, map[string]string{"message": "Password reset successful"})
}

func (h *AuthHandler) serverError(w http.ResponseWriter, r *http.Request, logMessage, userMessage string, err error, userID string) {
	h.log.Error(r.Context(), logMessage, err, userID, r.URL.Path, r.Method)
	body := map[string]string{"message": userMessage}
	if !h.production {
		body["error"] = err.Error()
	}
	utils.ResponseWithJson(w, http.StatusInternalServerError, body)
}
