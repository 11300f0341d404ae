package handlers

import (
	"net/http"

	"recus/internal/domain"
)

type sessionResponse struct {
	Access        string   `json:"access"`
	Email         string   `json:"email,omitempty"`
	SignerOptions []string `json:"signer_options,omitempty"`
	Signer        string   `json:"signer,omitempty"`
	SignerLocked  bool     `json:"signer_locked,omitempty"`
}

// Session reports whether the authenticated identity is on the admin
// allow-list, and if so which signatory it operates as. A failed lookup
// denies: access is never granted on error.
func (a *App) Session(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	email := a.currentUserEmail(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "authentication required")
		return
	}

	state := domain.AccessDenied
	ok, err := a.Admins.Exists(r.Context(), userID)
	if err != nil {
		a.Logger.Error().Err(err).Str("user_id", userID).Msg("admin lookup failed")
	} else if ok {
		state = domain.AccessGranted
	}

	if state != domain.AccessGranted {
		a.json(w, http.StatusOK, sessionResponse{Access: state.String(), Email: email})
		return
	}

	signer, locked := domain.ForcedSigner(email)
	if !locked {
		signer = domain.SignerOptions[0]
	}
	a.json(w, http.StatusOK, sessionResponse{
		Access:        state.String(),
		Email:         email,
		SignerOptions: domain.SignerOptions,
		Signer:        signer,
		SignerLocked:  locked,
	})
}

// RequireAdmin gates a route group on allow-list membership. Lookup errors
// reject the request.
func (a *App) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := a.currentUserID(r)
		if userID == "" {
			a.error(w, http.StatusUnauthorized, "unauthorized", "authentication required")
			return
		}
		ok, err := a.Admins.Exists(r.Context(), userID)
		if err != nil {
			a.Logger.Error().Err(err).Str("user_id", userID).Msg("admin lookup failed")
			a.error(w, http.StatusForbidden, "forbidden", "Accès non autorisé")
			return
		}
		if !ok {
			a.error(w, http.StatusForbidden, "forbidden", "Accès non autorisé")
			return
		}
		next.ServeHTTP(w, r)
	})
}
