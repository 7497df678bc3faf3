package auth

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/dvera/barrioliga/internal/api/apiutil"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Success bool      `json:"success"`
	Token   string    `json:"token"`
	User    loginUser `json:"user"`
}

type loginUser struct {
	Username string `json:"username"`
	IsAdmin  bool   `json:"isAdmin"`
}

// HandleLogin checks the administrator credential and issues a signed bearer
// token. Failed attempts are rate limited per account and per source IP.
func HandleLogin(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if appConfig == nil {
		apiutil.WriteError(w, r, http.StatusInternalServerError, "Error en el servidor", errAuthConfigMissing)
		return
	}

	var req loginRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteError(w, r, http.StatusBadRequest, "Solicitud inválida", nil)
		return
	}

	if loginLimiter != nil {
		if result := loginLimiter.Check(req.Username, r); !result.Allowed {
			logger.Warn().
				Str("reason", result.Reason).
				Dur("retry_after", result.RetryAfter).
				Msg("Login attempt rate limited")
			apiutil.WriteError(w, r, http.StatusTooManyRequests, "Demasiados intentos, intente más tarde", nil)
			return
		}
	}

	if req.Username != appConfig.Admin.Username ||
		!VerifyPassword(appConfig.Admin.PasswordHash, req.Password) {
		if loginLimiter != nil {
			loginLimiter.RecordFailure(req.Username, r)
		}
		logger.Warn().Str("username", req.Username).Msg("Login failed")
		apiutil.WriteError(w, r, http.StatusUnauthorized, "Credenciales incorrectas", nil)
		return
	}

	token, err := IssueToken(req.Username)
	if err != nil {
		apiutil.WriteError(w, r, http.StatusInternalServerError, "Error en el servidor", err)
		return
	}

	if loginLimiter != nil {
		loginLimiter.Reset(req.Username)
	}

	logger.Info().Str("username", req.Username).Msg("Admin logged in")
	_ = apiutil.WriteJSON(w, http.StatusOK, loginResponse{
		Success: true,
		Token:   token,
		User:    loginUser{Username: req.Username, IsAdmin: true},
	})
}
