package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"recus/internal/auth"
	"recus/internal/domain"
	"recus/internal/mail"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionTokenResponse struct {
	Token  string  `json:"token"`
	User   userDTO `json:"user"`
	Notice string  `json:"notice,omitempty"`
}

type userDTO struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

const resetTokenTTL = time.Hour

func (a *App) AuthSignup(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	email := domain.NormalizeEmail(req.Email)
	if !domain.IsValidEmail(email) {
		a.error(w, http.StatusBadRequest, "bad_request", "Adresse e-mail invalide.")
		return
	}

	user, err := a.Auth.Register(r.Context(), email, req.Password)
	switch {
	case errors.Is(err, auth.ErrWeakPassword):
		a.error(w, http.StatusBadRequest, "bad_request", "Le mot de passe doit contenir au moins 6 caractères.")
		return
	case errors.Is(err, auth.ErrEmailExists):
		a.error(w, http.StatusConflict, "conflict", "Cet e-mail est déjà utilisé.")
		return
	case err != nil:
		a.Logger.Error().Err(err).Msg("signup failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to create account")
		return
	}

	token, err := a.Tokens.Generate(user.ID, user.Email)
	if err != nil {
		a.Logger.Error().Err(err).Msg("sign token failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to sign token")
		return
	}
	a.json(w, http.StatusCreated, sessionTokenResponse{
		Token:  token,
		User:   userDTO{ID: user.ID, Email: user.Email},
		Notice: "Compte créé. Demande à l'admin d'ajouter ton identifiant dans 'admins'.",
	})
}

func (a *App) AuthSignin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}

	user, err := a.Auth.Authenticate(r.Context(), domain.NormalizeEmail(req.Email), req.Password)
	if err != nil {
		a.error(w, http.StatusUnauthorized, "unauthorized", "E-mail ou mot de passe incorrect.")
		return
	}

	token, err := a.Tokens.Generate(user.ID, user.Email)
	if err != nil {
		a.Logger.Error().Err(err).Msg("sign token failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to sign token")
		return
	}
	a.json(w, http.StatusOK, sessionTokenResponse{
		Token: token,
		User:  userDTO{ID: user.ID, Email: user.Email},
	})
}

// AuthSignout only acknowledges: tokens are stateless and expire on their own.
func (a *App) AuthSignout(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

type resetRequest struct {
	Email string `json:"email"`
}

// AuthResetRequest responds identically whether or not the account exists so
// the endpoint cannot be used to enumerate registered emails.
func (a *App) AuthResetRequest(w http.ResponseWriter, r *http.Request) {
	var req resetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	email := domain.NormalizeEmail(req.Email)
	if !domain.IsValidEmail(email) {
		a.error(w, http.StatusBadRequest, "bad_request", "Adresse e-mail invalide.")
		return
	}

	user, err := a.Users.GetUserByEmail(r.Context(), email)
	if err == nil && user != nil {
		token := uuid.NewString()
		if err := a.Users.CreatePasswordReset(r.Context(), token, user.ID, time.Now().UTC().Add(resetTokenTTL)); err != nil {
			a.Logger.Error().Err(err).Msg("create password reset failed")
		} else if err := a.Outbox.Enqueue(r.Context(), a.resetMessage(email, token)); err != nil {
			a.Logger.Error().Err(err).Str("email", email).Msg("enqueue reset mail failed")
		}
	}

	a.json(w, http.StatusOK, map[string]string{"status": "Email de réinitialisation envoyé."})
}

func (a *App) resetMessage(email, token string) mail.Message {
	return mail.Message{
		ID:      uuid.NewString(),
		To:      []string{email},
		BCC:     []string{},
		From:    a.Cfg.MailFrom,
		ReplyTo: a.Cfg.MailReplyTo,
		Subject: "Réinitialisation du mot de passe",
		Text: "Bonjour,\n\nVoici votre code de réinitialisation : " + token + "\n" +
			"Il expire dans une heure.\n\nL'équipe de l'association",
		Status:    mail.StatusPending,
		CreatedAt: time.Now().UTC(),
	}
}

type resetConfirmRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

func (a *App) AuthResetConfirm(w http.ResponseWriter, r *http.Request) {
	var req resetConfirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if err := a.Auth.ValidateCredential(req.Password); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "Le mot de passe doit contenir au moins 6 caractères.")
		return
	}

	userID, err := a.Users.ConsumePasswordReset(r.Context(), req.Token)
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "Code de réinitialisation invalide ou expiré.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		a.Logger.Error().Err(err).Msg("hash password failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to update password")
		return
	}
	if err := a.Users.UpdatePassword(r.Context(), userID, string(hashed)); err != nil {
		a.Logger.Error().Err(err).Msg("update password failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to update password")
		return
	}

	a.json(w, http.StatusOK, map[string]string{"status": "password_updated"})
}
